package dimviz

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatchModule reloads the config file when it changes and applies its
// initial selection. The watcher goroutine never touches scene state: it
// hands reloaded selections to a system that runs on the main thread.
type ConfigWatchModule struct {
	Path string
	// Initial is the selection the file held at startup.
	Initial Selection
}

type configWatch struct {
	path    string
	watcher *fsnotify.Watcher
	reloads chan Selection
	done    chan struct{}
	last    Selection
}

func (m ConfigWatchModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&configWatch{
		path:    filepath.Clean(m.Path),
		reloads: make(chan Selection, 4),
		last:    m.Initial,
	})
	// last OnEnter system, so a failed startup never leaves a watcher running
	app.UseSystem(
		System(configWatchStartSystem).
			InStage(Finale).
			InState(OnEnter(Running)),
	)
	app.UseSystem(
		System(configReloadSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
	app.UseSystem(
		System(configWatchStopSystem).
			InStage(Finale).
			InState(OnExit(Running)),
	)
}

func configWatchStartSystem(cw *configWatch, log Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	// editors replace files on save, so watch the directory
	if err := w.Add(filepath.Dir(cw.path)); err != nil {
		w.Close()
		return fmt.Errorf("watching %s: %w", filepath.Dir(cw.path), err)
	}
	cw.watcher = w
	cw.done = make(chan struct{})
	go cw.run(log)
	log.Debugf("watching %s", cw.path)
	return nil
}

func (cw *configWatch) run(log Logger) {
	defer close(cw.done)
	for {
		select {
		case ev, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != cw.path || !ev.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfig(cw.path)
			if err != nil {
				log.Warnf("config reload: %v", err)
				continue
			}
			sel, err := cfg.Selection()
			if err != nil {
				log.Warnf("config reload: %v", err)
				continue
			}
			select {
			case cw.reloads <- sel:
			default:
				log.Warnf("config reload dropped, %d pending", len(cw.reloads))
			}
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			log.Warnf("config watch: %v", err)
		}
	}
}

func (cw *configWatch) Close() error {
	if cw.watcher == nil {
		return nil
	}
	err := cw.watcher.Close()
	<-cw.done
	cw.watcher = nil
	return err
}

// configReloadSystem turns reloaded selections into selection events. Only
// the fields that changed in the file since the last reload are applied, so
// a reload does not undo choices made in the window.
func configReloadSystem(cw *configWatch, events *SelectionEvents, log Logger) {
	for {
		select {
		case next := <-cw.reloads:
			if next == cw.last {
				continue
			}
			log.Infof("config reloaded: %s", next)
			events.Apply(cw.last, next)
			cw.last = next
		default:
			return
		}
	}
}

func configWatchStopSystem(cw *configWatch, log Logger) {
	if err := cw.Close(); err != nil {
		log.Warnf("closing config watcher: %v", err)
	}
}
