package dimviz

import (
	"fmt"
)

type Module interface {
	Install(app *App, cmd *Commands)
}

type AppBuilder struct {
	app     *App
	modules []Module
}

func NewAppBuilder() *AppBuilder {
	return &AppBuilder{app: newApp()}
}

// UseStates must be called before any module is installed.
func (b *AppBuilder) UseStates(initialState State, finalState State) *AppBuilder {
	b.app.initialState = initialState
	b.app.finalState = finalState
	for _, stage := range b.app.stages {
		b.app.initStage(stage)
	}
	return b
}

func (b *AppBuilder) UseModule(modules ...Module) *AppBuilder {
	b.modules = append(b.modules, modules...)
	return b
}

// Build installs the modules in order. Modules report fatal setup problems by
// panicking; Build turns the first such panic into an error.
func (b *AppBuilder) Build() (app *App, err error) {
	app = b.app
	commands := &Commands{app: app}

	for _, module := range b.modules {
		if err := install(module, app, commands); err != nil {
			return nil, err
		}
	}
	return app, nil
}

func install(module Module, app *App, cmd *Commands) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("installing %T: %w", module, e)
				return
			}
			err = fmt.Errorf("installing %T: %v", module, r)
		}
	}()
	module.Install(app, cmd)
	return nil
}
