package dimviz

// Commands is handed to modules and systems for changes to the app itself.
type Commands struct {
	app *App
}

func (cmd *Commands) AddResources(resources ...any) *Commands {
	cmd.app.addResources(resources...)
	return cmd
}

func (cmd *Commands) Quit() {
	cmd.app.Quit()
}
