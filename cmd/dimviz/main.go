package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dimviz/dimviz"
	"github.com/dimviz/dimviz/platform"
	"github.com/muesli/termenv"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	shape := flag.String("shape", "", "initial shape: cube, sphere or pyramid")
	color := flag.String("color", "", "initial color: #RRGGBB or a color name")
	snapshot := flag.String("snapshot", "", "render without a window and write a PNG to this path")
	frames := flag.Int("frames", 1, "ticks to run before writing the snapshot")
	flag.Parse()

	os.Exit(run(*configPath, *debug, *shape, *color, *snapshot, *frames))
}

func run(configPath string, debug bool, shape, color, snapshot string, frames int) int {
	cfg, err := dimviz.LoadConfig(configPath)
	if err != nil {
		return fail(nil, err)
	}
	if debug {
		cfg.Log.Debug = true
	}
	if shape != "" {
		cfg.Initial.Shape = shape
	}
	if color != "" {
		cfg.Initial.Color = color
	}

	logger := dimviz.NewDefaultLogger(cfg.Log.Prefix, cfg.Log.Debug)

	if snapshot != "" {
		return runSnapshot(cfg, logger, snapshot, frames)
	}

	win, err := platform.Open(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		return fail(logger, fmt.Errorf("graphics: %w", err))
	}
	defer win.Close()

	app, err := dimviz.New(cfg, dimviz.Options{Logger: logger})
	if err == nil {
		err = platform.Run(app, win)
	}
	if err != nil {
		logger.Errorf("failed to initialize: %v", err)
		if bannerErr := platform.ShowBanner(win, bannerText(err)); bannerErr != nil {
			logger.Errorf("showing error banner: %v", bannerErr)
			printBanner(os.Stderr, err)
		}
		return 1
	}
	return 0
}

func runSnapshot(cfg *dimviz.Config, logger dimviz.Logger, path string, frames int) int {
	cfg.Watch = false
	app, err := dimviz.New(cfg, dimviz.Options{Logger: logger})
	if err != nil {
		return fail(logger, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fail(logger, err)
	}
	if err := dimviz.Snapshot(app, frames, f); err != nil {
		f.Close()
		return fail(logger, err)
	}
	if err := f.Close(); err != nil {
		return fail(logger, err)
	}
	logger.Infof("wrote %s", path)
	return 0
}

// fail reports a startup error once, in the log and as a terminal banner.
func fail(logger dimviz.Logger, err error) int {
	if logger != nil {
		logger.Errorf("failed to initialize: %v", err)
	}
	printBanner(os.Stderr, err)
	return 1
}

func bannerText(err error) string {
	return "Error initializing application:\n" + err.Error()
}

func printBanner(w io.Writer, err error) {
	out := termenv.NewOutput(w)
	lines := strings.Split(bannerText(err), "\n")
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	style := func(s string) string {
		return out.String(" " + s + strings.Repeat(" ", width-len(s)) + " ").
			Foreground(out.Color("15")).
			Background(out.Color("1")).
			Bold().
			String()
	}
	fmt.Fprintln(w, style(""))
	for _, l := range lines {
		fmt.Fprintln(w, style(l))
	}
	fmt.Fprintln(w, style(""))
}
