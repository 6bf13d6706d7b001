package dimviz

import (
	"github.com/dimviz/dimviz/scene"
	"github.com/dimviz/dimviz/shapes"
)

// Per-tick rotation increments in radians. They are not scaled by frame time.
const (
	spinSlow = 0.005
	spinFast = 0.01
	spin4DZ  = 0.002
)

// Animation tracks the animation loop.
type Animation struct {
	// Handle is the frame requested by the most recent tick.
	Handle FrameHandle
	Ticks  uint64
}

type AnimationModule struct{}

func (AnimationModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&FrameLoop{}, &Animation{})

	app.UseSystem(
		System(startAnimationSystem).
			InStage(Finale).
			InState(OnEnter(Running)),
	)
	app.UseSystem(
		System(animateSystem).
			InStage(PostUpdate).
			RunAlways(),
	)
	app.UseSystem(
		System(renderPanelsSystem).
			InStage(Render).
			RunAlways(),
	)
}

// AnimateTick advances every panel's rotation by one tick. While the
// selection is a cube, the 4D object's first child also spins on its own.
func AnimateTick(panels *PanelRegistry, kind shapes.Kind) {
	if obj := objectOf(panels, Panel1D); obj != nil {
		obj.Rotate(0, 0, spinFast)
	}
	if obj := objectOf(panels, Panel2D); obj != nil {
		obj.Rotate(0, 0, spinFast)
	}
	if obj := objectOf(panels, Panel3D); obj != nil {
		obj.Rotate(spinSlow, spinFast, 0)
	}
	if obj := objectOf(panels, Panel4D); obj != nil {
		obj.Rotate(spinSlow, spinFast, spin4DZ)
		if kind == shapes.Cube {
			if inner := obj.Child(0); inner != nil {
				inner.Rotate(spinFast, spinSlow, 0)
			}
		}
	}
}

// RenderAll renders every panel in key order. Failures are returned
// together after all panels were attempted.
func RenderAll(panels *PanelRegistry) []error {
	var errs []error
	for _, p := range panels.All() {
		if err := p.Renderer.Render(p.Scene, p.Camera); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func objectOf(panels *PanelRegistry, key PanelKey) *scene.Node {
	p := panels.Get(key)
	if p == nil {
		return nil
	}
	return p.Object()
}

func startAnimationSystem(frames *FrameLoop, anim *Animation) {
	anim.Handle = frames.RequestFrame()
}

func animateSystem(frames *FrameLoop, anim *Animation, panels *PanelRegistry, sel *Selection) {
	anim.Handle = frames.RequestFrame()
	anim.Ticks++
	AnimateTick(panels, sel.Kind)
}

func renderPanelsSystem(panels *PanelRegistry, log Logger) {
	for _, err := range RenderAll(panels) {
		log.Warnf("render: %v", err)
	}
}
