package dimviz

import (
	"fmt"

	"github.com/dimviz/dimviz/scene"
	"github.com/dimviz/dimviz/shapes"
)

// Selection is the shape kind and color every panel shows.
type Selection struct {
	Kind  shapes.Kind
	Color scene.Color
}

func (s Selection) String() string {
	return fmt.Sprintf("%s %s", s.Kind, s.Color.Hex())
}

type SelectionEventType int

const (
	ShapeChanged SelectionEventType = iota
	ColorChanged
)

func (t SelectionEventType) String() string {
	if t == ShapeChanged {
		return "shape"
	}
	return "color"
}

type SelectionEvent struct {
	Type  SelectionEventType
	Kind  shapes.Kind
	Color scene.Color
}

// SelectionEvents queues change notifications from the controls until the
// update driver drains them.
type SelectionEvents struct {
	pending []SelectionEvent
}

func (e *SelectionEvents) SetShape(kind shapes.Kind) {
	e.pending = append(e.pending, SelectionEvent{Type: ShapeChanged, Kind: kind})
}

func (e *SelectionEvents) SetColor(color scene.Color) {
	e.pending = append(e.pending, SelectionEvent{Type: ColorChanged, Color: color})
}

// Apply queues whatever differs between from and to, shape first.
func (e *SelectionEvents) Apply(from, to Selection) {
	if from.Kind != to.Kind {
		e.SetShape(to.Kind)
	}
	if from.Color != to.Color {
		e.SetColor(to.Color)
	}
}

func (e *SelectionEvents) Len() int {
	return len(e.pending)
}

// Drain returns the queued events in order and empties the queue.
func (e *SelectionEvents) Drain() []SelectionEvent {
	out := e.pending
	e.pending = nil
	return out
}
