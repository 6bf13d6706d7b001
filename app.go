package dimviz

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
)

type systemFn any

// App owns the resources and the system schedule. All calls happen on the
// thread that drives Tick.
type App struct {
	initialState State
	finalState   State
	state        State
	started      bool
	quit         bool

	stages           []Stage
	systems          map[string]map[State]map[statePhase][]systemFn
	systemsStateless map[string][]systemFn
	resources        map[reflect.Type]any
}

func newApp() *App {
	app := &App{
		systems:          make(map[string]map[State]map[statePhase][]systemFn),
		systemsStateless: make(map[string][]systemFn),
		resources:        make(map[reflect.Type]any),
	}
	for _, stage := range defaultStages() {
		app.stages = append(app.stages, stage)
		app.initStage(stage)
	}
	return app
}

func (app *App) Commands() *Commands {
	return &Commands{app: app}
}

// Startup enters the initial state. The first failing OnEnter system aborts
// startup and its error is returned.
func (app *App) Startup() error {
	if app.started {
		return nil
	}
	app.state = app.initialState
	if err := app.callSystems(app.state, enter); err != nil {
		return fmt.Errorf("entering state %d: %w", app.state, err)
	}
	app.started = true
	return nil
}

// Tick runs every stage once. Errors from systems are logged and the tick
// carries on.
func (app *App) Tick() {
	if !app.started {
		return
	}
	if err := app.callSystems(app.state, execute); err != nil {
		app.Logger().Warnf("%v", err)
	}
}

// Quit asks the host loop to stop after the current tick.
func (app *App) Quit() {
	app.quit = true
}

func (app *App) Done() bool {
	return app.quit
}

// Shutdown runs the exit systems of the current state.
func (app *App) Shutdown() {
	if !app.started {
		return
	}
	if err := app.callSystems(app.state, exit); err != nil {
		app.Logger().Warnf("%v", err)
	}
	app.started = false
}

func (app *App) callSystems(state State, phase statePhase) error {
	var errs []error
	for _, stage := range app.stages {
		if phase == execute {
			for _, system := range app.systemsStateless[stage.Name] {
				if err := app.callSystem(system); err != nil {
					errs = append(errs, err)
				}
			}
		}

		for _, system := range app.systems[stage.Name][state][phase] {
			if err := app.callSystem(system); err != nil {
				if phase == enter {
					return err
				}
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (app *App) addResources(resources ...any) *App {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("resource %s must be a pointer", resourceType))
		}
		if _, ok := app.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}
		app.resources[resourceType.Elem()] = resource
	}
	return app
}

// Resource returns the resource of type *T, or nil.
func Resource[T any](app *App) *T {
	r, ok := app.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil
	}
	return r.(*T)
}

var (
	typeOfCommands = reflect.TypeFor[Commands]()
	typeOfApp      = reflect.TypeFor[App]()
	typeOfLogger   = reflect.TypeFor[Logger]()
	typeOfError    = reflect.TypeFor[error]()

	typeOfLogResource = reflect.TypeFor[logResource]()
)

func systemName(system systemFn) string {
	return runtime.FuncForPC(reflect.ValueOf(system).Pointer()).Name()
}

func (app *App) callSystem(system systemFn) error {
	systemType := reflect.TypeOf(system)
	systemValue := reflect.ValueOf(system)

	args := make([]reflect.Value, systemType.NumIn())
	for i := range args {
		argType := systemType.In(i)

		if argType == typeOfLogger {
			args[i] = reflect.ValueOf(app.Logger())
			continue
		}
		if argType.Kind() != reflect.Pointer {
			panic(app.unresolved(system, argType))
		}

		switch underlyingType := argType.Elem(); underlyingType {
		case typeOfCommands:
			args[i] = reflect.ValueOf(&Commands{app: app})
		case typeOfApp:
			args[i] = reflect.ValueOf(app)
		default:
			resource, ok := app.resources[underlyingType]
			if !ok {
				panic(app.unresolved(system, argType))
			}
			args[i] = reflect.ValueOf(resource)
		}
	}

	out := systemValue.Call(args)
	if len(out) == 1 && systemType.Out(0) == typeOfError && !out[0].IsNil() {
		return fmt.Errorf("%s: %w", systemName(system), out[0].Interface().(error))
	}
	return nil
}

func (app *App) unresolved(system systemFn, dep reflect.Type) string {
	return fmt.Sprintf("unable to resolve system dependency\nsystem: %s\nsystem type: %s\ndependency: %s",
		systemName(system), reflect.TypeOf(system), dep)
}
