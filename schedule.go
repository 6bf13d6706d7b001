package dimviz

import (
	"fmt"
)

type State int

// Running is the only state the visualizer uses. It is entered once at
// startup and never left.
const Running State = 0

type Stage struct {
	Name string
}

var (
	Prelude    = Stage{Name: "Prelude"}
	PreUpdate  = Stage{Name: "PreUpdate"}
	Update     = Stage{Name: "Update"}
	PostUpdate = Stage{Name: "PostUpdate"}
	PreRender  = Stage{Name: "PreRender"}
	Render     = Stage{Name: "Render"}
	PostRender = Stage{Name: "PostRender"}
	Finale     = Stage{Name: "Finale"}
)

func defaultStages() []Stage {
	return []Stage{Prelude, PreUpdate, Update, PostUpdate, PreRender, Render, PostRender, Finale}
}

type statePhase int

const (
	enter statePhase = iota
	execute
	exit
)

func (p statePhase) String() string {
	switch p {
	case enter:
		return "enter"
	case execute:
		return "execute"
	case exit:
		return "exit"
	}
	return "unknown"
}

type stateScheduleBuilder struct {
	state State
	phase statePhase
}

func OnEnter(state State) stateScheduleBuilder {
	return stateScheduleBuilder{state: state, phase: enter}
}

func OnExit(state State) stateScheduleBuilder {
	return stateScheduleBuilder{state: state, phase: exit}
}

type systemScheduleBuilder struct {
	system        systemFn
	inStage       Stage
	runAlways     bool
	inState       State
	inStatePhase  statePhase
	stateProvided bool
}

// System wraps a function for scheduling. Its parameters are resolved from
// the app's resources on every call; it may return nothing or an error.
func System(system systemFn) systemScheduleBuilder {
	return systemScheduleBuilder{system: system, inStage: Update}
}

func (sched systemScheduleBuilder) InStage(s Stage) systemScheduleBuilder {
	sched.inStage = s
	return sched
}

func (sched systemScheduleBuilder) InState(s stateScheduleBuilder) systemScheduleBuilder {
	sched.inState = s.state
	sched.inStatePhase = s.phase
	sched.stateProvided = true
	return sched
}

// RunAlways schedules the system on every tick regardless of state.
func (sched systemScheduleBuilder) RunAlways() systemScheduleBuilder {
	sched.runAlways = true
	return sched
}

func (app *App) UseSystem(system systemScheduleBuilder) *App {
	if _, ok := app.systemsStateless[system.inStage.Name]; !ok {
		panic(fmt.Sprintf("stage %v doesn't exist", system.inStage.Name))
	}

	if system.runAlways || !system.stateProvided {
		app.systemsStateless[system.inStage.Name] = append(app.systemsStateless[system.inStage.Name], system.system)
		return app
	}

	systemsInState, ok := app.systems[system.inStage.Name][system.inState]
	if !ok {
		panic(fmt.Sprintf("state %v doesn't exist", system.inState))
	}
	systemsInState[system.inStatePhase] = append(systemsInState[system.inStatePhase], system.system)
	return app
}

func (app *App) initStage(stage Stage) {
	app.systemsStateless[stage.Name] = nil
	app.systems[stage.Name] = make(map[State]map[statePhase][]systemFn)
	for state := app.initialState; state <= app.finalState; state++ {
		app.systems[stage.Name][state] = map[statePhase][]systemFn{}
	}
}
