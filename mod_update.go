package dimviz

import (
	"fmt"

	"github.com/dimviz/dimviz/scene"
	"github.com/dimviz/dimviz/shapes"
)

// UpdateDriverModule turns selection changes into scene changes. It also
// builds the initial objects once the panels exist.
type UpdateDriverModule struct {
	Initial Selection
}

func (m UpdateDriverModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Selection{Kind: m.Initial.Kind, Color: m.Initial.Color}, &SelectionEvents{})

	app.UseSystem(
		System(initialBuildSystem).
			InStage(Update).
			InState(OnEnter(Running)),
	)
	app.UseSystem(
		System(updateDriverSystem).
			InStage(Update).
			RunAlways(),
	)
}

// RebuildAll replaces the object in every panel, 1D first, using the
// selected kind and color. New objects start unrotated.
func RebuildAll(panels *PanelRegistry, sel Selection, log Logger) error {
	for _, p := range panels.All() {
		node, err := shapes.Build(p.Dimension(), sel.Kind, sel.Color)
		if err != nil {
			return fmt.Errorf("building %s panel: %w", p.Key, err)
		}
		if old := p.Slot.Replace(node); old != nil {
			log.Debugf("%s panel: %s -> %s", p.Key, old, node)
		} else {
			log.Debugf("%s panel: %s", p.Key, node)
		}
	}
	return nil
}

// RetintAll sets color on every material of every panel's object,
// including nested children. Geometry is left alone.
func RetintAll(panels *PanelRegistry, color scene.Color) {
	for _, p := range panels.All() {
		obj := p.Object()
		if obj == nil {
			continue
		}
		obj.Traverse(func(n *scene.Node) {
			for _, m := range n.Materials {
				m.SetColor(color)
			}
		})
	}
}

func initialBuildSystem(panels *PanelRegistry, sel *Selection, log Logger) error {
	log.Infof("initializing application...")
	if err := RebuildAll(panels, *sel, log); err != nil {
		return err
	}
	log.Infof("initialized successfully (%s)", sel)
	return nil
}

func updateDriverSystem(events *SelectionEvents, sel *Selection, panels *PanelRegistry, log Logger) error {
	for _, ev := range events.Drain() {
		switch ev.Type {
		case ShapeChanged:
			if ev.Kind == sel.Kind {
				log.Debugf("shape already %s", ev.Kind)
				continue
			}
			sel.Kind = ev.Kind
			if err := RebuildAll(panels, *sel, log); err != nil {
				return err
			}
			log.Debugf("rebuilt panels as %s", sel.Kind)
		case ColorChanged:
			if ev.Color == sel.Color {
				log.Debugf("color already %s", ev.Color.Hex())
				continue
			}
			sel.Color = ev.Color
			RetintAll(panels, sel.Color)
			log.Debugf("retinted panels %s", sel.Color.Hex())
		}
	}
	return nil
}
