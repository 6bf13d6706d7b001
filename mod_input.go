package dimviz

const (
	KeyC int = iota
	Key1
	Key2
	Key3
	KeyEscape
	KeyTab
	KeyQ
	MouseButtonLeft

	inputCount
)

// Input holds the keyboard and mouse state for the current tick. The host
// writes it between ticks; JustPressed lasts for exactly one tick.
type Input struct {
	Pressed     [inputCount]bool
	JustPressed [inputCount]bool

	// Framebuffer pixels, origin top-left.
	MouseX, MouseY float64
}

func (in *Input) Press(key int) {
	if key < 0 || key >= inputCount {
		return
	}
	if !in.Pressed[key] {
		in.JustPressed[key] = true
	}
	in.Pressed[key] = true
}

func (in *Input) Release(key int) {
	if key < 0 || key >= inputCount {
		return
	}
	in.Pressed[key] = false
}

func (in *Input) MoveMouse(x, y float64) {
	in.MouseX, in.MouseY = x, y
}

// Click presses and releases the left button at (x, y) within one tick.
func (in *Input) Click(x, y float64) {
	in.MoveMouse(x, y)
	in.Press(MouseButtonLeft)
	in.Release(MouseButtonLeft)
}

func (in *Input) endTick() {
	in.JustPressed = [inputCount]bool{}
}

type InputModule struct{}

func (InputModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Input{})
	app.UseSystem(
		System(inputSystem).
			InStage(Finale).
			RunAlways(),
	)
}

func inputSystem(input *Input) {
	input.endTick()
}
