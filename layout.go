package dimviz

import (
	"image"
	"strings"
)

const (
	controlBarHeight = 48
	titleHeight      = 24
	panelGap         = 8
)

// Viewport is the framebuffer size the host reports.
type Viewport struct {
	Width, Height int
	changed       bool
}

// Resize records a new size. Repeating the current size is a no-op.
func (v *Viewport) Resize(width, height int) {
	if v.Width == width && v.Height == height {
		return
	}
	v.Width, v.Height = width, height
	v.changed = true
}

// TakeChanged reports whether the size changed since the last call.
func (v *Viewport) TakeChanged() bool {
	c := v.changed
	v.changed = false
	return c
}

// Container is the window region a panel occupies, title strip included.
type Container struct {
	Key    PanelKey
	Title  string
	Bounds image.Rectangle
}

// Canvas is the part of the container below the title strip.
func (c *Container) Canvas() image.Rectangle {
	r := c.Bounds
	r.Min.Y = min(r.Min.Y+titleHeight, r.Max.Y)
	return r
}

func (c *Container) TitleBounds() image.Rectangle {
	r := c.Bounds
	r.Max.Y = min(r.Min.Y+titleHeight, r.Max.Y)
	return r
}

// Layout places the control bar across the top and the containers in a
// 2x2 grid below it, in declaration order.
type Layout struct {
	ControlBar image.Rectangle
	Containers []*Container
}

func NewLayout(panels []PanelConfig) *Layout {
	l := &Layout{}
	for _, p := range panels {
		title := p.Title
		if title == "" {
			title = strings.ToUpper(string(p.Key))
		}
		l.Containers = append(l.Containers, &Container{Key: p.Key, Title: title})
	}
	return l
}

func (l *Layout) Container(key PanelKey) *Container {
	for _, c := range l.Containers {
		if c.Key == key {
			return c
		}
	}
	return nil
}

func (l *Layout) Arrange(width, height int) {
	width, height = max(width, 0), max(height, 0)
	l.ControlBar = image.Rect(0, 0, width, min(controlBarHeight, height))

	cellW := max((width-3*panelGap)/2, 0)
	cellH := max((height-controlBarHeight-3*panelGap)/2, 0)
	for i, c := range l.Containers {
		col, row := i%2, i/2
		x := panelGap + col*(cellW+panelGap)
		y := controlBarHeight + panelGap + row*(cellH+panelGap)
		c.Bounds = image.Rect(x, y, x+cellW, y+cellH)
	}
}
