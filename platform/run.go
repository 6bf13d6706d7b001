package platform

import (
	"fmt"
	"image"
	"time"

	"github.com/dimviz/dimviz"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var keyFromGlfw = map[glfw.Key]int{
	glfw.KeyC:      dimviz.KeyC,
	glfw.Key1:      dimviz.Key1,
	glfw.Key2:      dimviz.Key2,
	glfw.Key3:      dimviz.Key3,
	glfw.KeyKP1:    dimviz.Key1,
	glfw.KeyKP2:    dimviz.Key2,
	glfw.KeyKP3:    dimviz.Key3,
	glfw.KeyEscape: dimviz.KeyEscape,
	glfw.KeyTab:    dimviz.KeyTab,
	glfw.KeyQ:      dimviz.KeyQ,
}

var buttonFromGlfw = map[glfw.MouseButton]int{
	glfw.MouseButtonLeft: dimviz.MouseButtonLeft,
}

// bind routes window callbacks into the app's input and viewport.
// Cursor positions are scaled from window to framebuffer pixels.
func (w *Window) bind(input *dimviz.Input, viewport *dimviz.Viewport) {
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		k, ok := keyFromGlfw[key]
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			input.Press(k)
		case glfw.Release:
			input.Release(k)
		}
	})
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b, ok := buttonFromGlfw[button]
		if !ok {
			return
		}
		switch action {
		case glfw.Press:
			input.Press(b)
		case glfw.Release:
			input.Release(b)
		}
	})
	w.win.SetCursorPosCallback(func(win *glfw.Window, x, y float64) {
		ww, wh := win.GetSize()
		fw, fh := win.GetFramebufferSize()
		if ww > 0 && wh > 0 {
			x *= float64(fw) / float64(ww)
			y *= float64(fh) / float64(wh)
		}
		input.MoveMouse(x, y)
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.resizeSurface(width, height)
		viewport.Resize(width, height)
	})
}

// Run starts app and drives it until the window closes or the app quits.
// A tick runs whenever the app has requested a frame.
func Run(app *dimviz.App, w *Window) error {
	input := dimviz.Resource[dimviz.Input](app)
	viewport := dimviz.Resource[dimviz.Viewport](app)
	frames := dimviz.Resource[dimviz.FrameLoop](app)
	frame := dimviz.Resource[dimviz.Frame](app)
	if input == nil || viewport == nil || frames == nil || frame == nil {
		return fmt.Errorf("app is missing host resources")
	}

	w.bind(input, viewport)
	viewport.Resize(w.FramebufferSize())

	if err := app.Startup(); err != nil {
		return err
	}
	defer app.Shutdown()

	log := app.Logger()
	for !w.ShouldClose() && !app.Done() {
		if !frames.Due() {
			glfw.WaitEventsTimeout((100 * time.Millisecond).Seconds())
			continue
		}
		glfw.PollEvents()
		app.Tick()
		if frame.Image == nil {
			continue
		}
		if err := w.Present(frame.Image); err != nil {
			log.Warnf("present: %v", err)
		}
	}
	return nil
}

// ShowBanner shows msg in a red box until the window is closed.
func ShowBanner(w *Window, msg string) error {
	text, err := dimviz.NewTextRenderer(16)
	if err != nil {
		return err
	}
	comp := &dimviz.Compositor{Text: text}

	var img *image.RGBA
	for !w.ShouldClose() {
		fw, fh := w.FramebufferSize()
		bounds := image.Rect(0, 0, max(fw, 1), max(fh, 1))
		if img == nil || img.Bounds() != bounds {
			img = image.NewRGBA(bounds)
			comp.DrawBanner(img, msg)
		}
		if err := w.Present(img); err != nil {
			return err
		}
		glfw.WaitEventsTimeout(0.25)
	}
	return nil
}
