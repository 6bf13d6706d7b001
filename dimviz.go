// Package dimviz shows one selected shape across four panels: a 1D line,
// a 2D shape, a 3D solid and a projected 4D counterpart, all rotating.
//
// The app is a schedule of systems over shared resources, grouped into
// modules. A host (see package platform) feeds input and the window size
// into the resources, calls Tick whenever a frame is due, and presents the
// composed Frame.
package dimviz

import (
	"fmt"
	"io"

	"github.com/gogpu/gg"
)

type Options struct {
	// Logger replaces the default stdout/stderr logger.
	Logger Logger
	// NewRenderer defaults to the software renderer.
	NewRenderer RendererFactory
}

// New builds the visualizer for cfg. The returned app still has to be
// started.
func New(cfg *Config, opts Options) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sel, err := cfg.Selection()
	if err != nil {
		return nil, err
	}

	b := NewAppBuilder().
		UseStates(Running, Running).
		UseModule(
			LoggingModule{Prefix: cfg.Log.Prefix, Debug: cfg.Log.Debug, Logger: opts.Logger},
			TimeModule{},
			InputModule{},
			PanelsModule{Config: cfg, NewRenderer: opts.NewRenderer},
			ControlsModule{Config: cfg},
			UpdateDriverModule{Initial: sel},
			AnimationModule{},
			CompositorModule{},
		)
	if cfg.Watch && cfg.Path() != "" {
		b.UseModule(ConfigWatchModule{Path: cfg.Path(), Initial: sel})
	}
	return b.Build()
}

// RunFrames runs up to n ticks, each only if a frame is due.
func RunFrames(app *App, n int) int {
	frames := Resource[FrameLoop](app)
	ran := 0
	for i := 0; i < n && !app.Done(); i++ {
		if frames != nil && !frames.Due() {
			break
		}
		app.Tick()
		ran++
	}
	return ran
}

// Snapshot runs n ticks without a window and writes the composed frame as
// PNG.
func Snapshot(app *App, n int, w io.Writer) error {
	if err := app.Startup(); err != nil {
		return err
	}
	defer app.Shutdown()

	if ran := RunFrames(app, max(n, 1)); ran == 0 {
		return fmt.Errorf("snapshot: no frame was rendered")
	}
	frame := Resource[Frame](app)
	if frame == nil || frame.Image == nil {
		return fmt.Errorf("snapshot: no frame was composed")
	}
	if err := gg.NewContextForImage(frame.Image).EncodePNG(w); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
