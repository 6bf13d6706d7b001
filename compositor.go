package dimviz

import (
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
)

var (
	windowBackground  = color.RGBA{0x1e, 0x1e, 0x1e, 0xff}
	controlBackground = color.RGBA{0x2b, 0x2b, 0x2b, 0xff}
	selectorFill      = color.RGBA{0x3c, 0x3c, 0x3c, 0xff}
	selectorBorder    = color.RGBA{0x66, 0x66, 0x66, 0xff}
	optionHover       = color.RGBA{0x50, 0x50, 0x70, 0xff}
	labelColor        = colornames.White
	mutedLabelColor   = colornames.Lightgray
	bannerFill        = colornames.Red
)

const labelPadding = 8

// Frame is the composed window image the host presents.
type Frame struct {
	Image *image.RGBA
	// Version increases whenever Image is redrawn.
	Version uint64
}

// Compositor assembles the control bar, panel titles and panel images into
// one frame.
type Compositor struct {
	Text *TextRenderer
}

func (c *Compositor) Compose(dst *image.RGBA, layout *Layout, panels *PanelRegistry, controls *Controls) {
	fill(dst, dst.Bounds(), windowBackground)
	fill(dst, layout.ControlBar, controlBackground)

	for _, container := range layout.Containers {
		c.Text.DrawTextCentered(dst, container.Title, container.TitleBounds(), labelColor)
		p := panels.Get(container.Key)
		if p == nil {
			continue
		}
		img := p.Renderer.Image()
		draw.Copy(dst, p.Canvas.Min, img, img.Bounds().Intersect(image.Rect(0, 0, p.Canvas.Dx(), p.Canvas.Dy())), draw.Src, nil)
	}

	if controls == nil {
		return
	}
	for _, s := range controls.Selectors() {
		c.drawSelector(dst, s)
	}
	// open lists go over the panels
	for _, s := range controls.Selectors() {
		if s.Open {
			c.drawOptions(dst, s)
		}
	}
}

func (c *Compositor) drawSelector(dst *image.RGBA, s *Selector) {
	fill(dst, s.Bounds, selectorFill)
	outline(dst, s.Bounds, selectorBorder)
	c.Text.DrawTextIn(dst, s.Label+": "+s.Value(), s.Bounds, labelPadding, labelColor)
	marker := "v"
	if s.Open {
		marker = "^"
	}
	w, _ := c.Text.MeasureText(marker)
	c.Text.DrawTextIn(dst, marker, s.Bounds, s.Bounds.Dx()-w-labelPadding, mutedLabelColor)
}

func (c *Compositor) drawOptions(dst *image.RGBA, s *Selector) {
	for i, opt := range s.Options {
		r := s.OptionBounds(i)
		bg := selectorFill
		if i == s.Hover {
			bg = optionHover
		}
		fill(dst, r, bg)
		col := color.Color(mutedLabelColor)
		if i == s.Selected {
			col = labelColor
		}
		c.Text.DrawTextIn(dst, opt, r, labelPadding, col)
	}
	last := s.OptionBounds(len(s.Options) - 1)
	outline(dst, image.Rect(s.Bounds.Min.X, s.Bounds.Max.Y, s.Bounds.Max.X, last.Max.Y), selectorBorder)
}

// DrawBanner paints a red box across the top of dst with msg in white, one
// line per line of msg.
func (c *Compositor) DrawBanner(dst *image.RGBA, msg string) {
	lines := strings.Split(strings.TrimSpace(msg), "\n")
	_, lh := c.Text.MeasureText("M")
	b := dst.Bounds()
	box := image.Rect(b.Min.X+20, b.Min.Y+20, b.Max.X-20, b.Min.Y+20+2*20+len(lines)*lh)
	fill(dst, box, bannerFill)
	for i, line := range lines {
		c.Text.DrawText(dst, line, box.Min.X+20, box.Min.Y+20+i*lh, labelColor)
	}
}

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func outline(dst draw.Image, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fill(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fill(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fill(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// CompositorModule redraws the Frame after the panels rendered.
type CompositorModule struct {
	FontSize float64
}

func (m CompositorModule) Install(app *App, cmd *Commands) {
	size := m.FontSize
	if size <= 0 {
		size = 16
	}
	text, err := NewTextRenderer(size)
	if err != nil {
		panic(err)
	}
	cmd.AddResources(&Frame{}, &Compositor{Text: text})
	app.UseSystem(
		System(composeSystem).
			InStage(PostRender).
			RunAlways(),
	)
}

func composeSystem(frame *Frame, comp *Compositor, viewport *Viewport, layout *Layout, panels *PanelRegistry, controls *Controls) {
	bounds := image.Rect(0, 0, max(viewport.Width, 1), max(viewport.Height, 1))
	if frame.Image == nil || frame.Image.Bounds() != bounds {
		frame.Image = image.NewRGBA(bounds)
	}
	comp.Compose(frame.Image, layout, panels, controls)
	frame.Version++
}
