package dimviz

import (
	"image"
	"slices"

	"github.com/dimviz/dimviz/shapes"
)

const (
	selectorWidth  = 180
	selectorHeight = 28
	selectorMargin = 12
	optionHeight   = 24
)

// Selector is a drop-down list in the control bar.
type Selector struct {
	Label    string
	Options  []string
	Selected int
	Open     bool
	// Hover is the option under the mouse while open, or -1.
	Hover  int
	Bounds image.Rectangle
}

func (s *Selector) Value() string {
	if s.Selected < 0 || s.Selected >= len(s.Options) {
		return ""
	}
	return s.Options[s.Selected]
}

// OptionBounds is where option i is drawn while the list is open.
func (s *Selector) OptionBounds(i int) image.Rectangle {
	y := s.Bounds.Max.Y + i*optionHeight
	return image.Rect(s.Bounds.Min.X, y, s.Bounds.Max.X, y+optionHeight)
}

// optionAt returns the open option under p, or -1.
func (s *Selector) optionAt(p image.Point) int {
	if !s.Open {
		return -1
	}
	for i := range s.Options {
		if p.In(s.OptionBounds(i)) {
			return i
		}
	}
	return -1
}

// Controls is the object and color selectors.
type Controls struct {
	Object *Selector
	Color  *Selector

	kinds   []shapes.Kind
	palette []NamedColor
}

func NewControls(sel Selection, palette []NamedColor) *Controls {
	kinds := shapes.Kinds()
	object := &Selector{Label: "Object", Hover: -1}
	for _, k := range kinds {
		object.Options = append(object.Options, k.String())
	}
	color := &Selector{Label: "Color", Hover: -1}
	for _, c := range palette {
		color.Options = append(color.Options, c.Name)
	}
	c := &Controls{Object: object, Color: color, kinds: kinds, palette: palette}
	c.Sync(sel)
	return c
}

func (c *Controls) Selectors() []*Selector {
	return []*Selector{c.Object, c.Color}
}

// Arrange places the selectors side by side inside the control bar.
func (c *Controls) Arrange(bar image.Rectangle) {
	y := bar.Min.Y + (bar.Dy()-selectorHeight)/2
	x := bar.Min.X + selectorMargin
	for _, s := range c.Selectors() {
		s.Bounds = image.Rect(x, y, x+selectorWidth, y+selectorHeight)
		x += selectorWidth + 2*selectorMargin
	}
}

// Sync points the selectors at sel. A color outside the palette leaves the
// color selector unchanged.
func (c *Controls) Sync(sel Selection) {
	if i := slices.Index(c.kinds, sel.Kind); i >= 0 {
		c.Object.Selected = i
	}
	if i := slices.IndexFunc(c.palette, func(nc NamedColor) bool { return nc.Color == sel.Color }); i >= 0 {
		c.Color.Selected = i
	}
}

func (c *Controls) closeAll() {
	for _, s := range c.Selectors() {
		s.Open = false
		s.Hover = -1
	}
}

func (c *Controls) choose(s *Selector, i int, events *SelectionEvents) {
	s.Selected = i
	switch s {
	case c.Object:
		events.SetShape(c.kinds[i])
	case c.Color:
		events.SetColor(c.palette[i].Color)
	}
}

func (c *Controls) kindIndex(k shapes.Kind) int {
	return max(slices.Index(c.kinds, k), 0)
}

// HandleInput applies one tick of input and reports whether it asked to quit.
// Keys 1-3 pick a shape and Tab steps to the next one. C steps the color.
// Escape closes an open list, or quits when none is open.
func (c *Controls) HandleInput(input *Input, events *SelectionEvents) (quit bool) {
	for i, key := range []int{Key1, Key2, Key3} {
		if input.JustPressed[key] && i < len(c.kinds) {
			c.choose(c.Object, i, events)
		}
	}
	if input.JustPressed[KeyTab] {
		c.choose(c.Object, c.kindIndex(c.kinds[c.Object.Selected].Next()), events)
	}
	if input.JustPressed[KeyC] && len(c.palette) > 0 {
		c.choose(c.Color, (c.Color.Selected+1)%len(c.palette), events)
	}
	if input.JustPressed[KeyQ] {
		return true
	}
	if input.JustPressed[KeyEscape] {
		if !slices.ContainsFunc(c.Selectors(), func(s *Selector) bool { return s.Open }) {
			return true
		}
		c.closeAll()
	}

	mouse := image.Pt(int(input.MouseX), int(input.MouseY))
	for _, s := range c.Selectors() {
		s.Hover = s.optionAt(mouse)
	}
	if !input.JustPressed[MouseButtonLeft] {
		return false
	}

	for _, s := range c.Selectors() {
		if i := s.optionAt(mouse); i >= 0 {
			c.choose(s, i, events)
			c.closeAll()
			return false
		}
	}
	for _, s := range c.Selectors() {
		if mouse.In(s.Bounds) {
			open := !s.Open
			c.closeAll()
			s.Open = open
			return false
		}
	}
	c.closeAll()
	return false
}

type ControlsModule struct {
	Config *Config
}

func (m ControlsModule) Install(app *App, cmd *Commands) {
	cfg := m.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	sel, err := cfg.Selection()
	if err != nil {
		panic(err)
	}
	palette, err := cfg.Colors()
	if err != nil {
		panic(err)
	}
	cmd.AddResources(NewControls(sel, palette))

	app.UseSystem(
		System(controlsSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func controlsSystem(input *Input, layout *Layout, controls *Controls, sel *Selection, events *SelectionEvents, cmd *Commands) {
	controls.Sync(*sel)
	controls.Arrange(layout.ControlBar)
	if controls.HandleInput(input, events) {
		cmd.Quit()
	}
}
