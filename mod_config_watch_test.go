package dimviz

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dimviz/dimviz/scene"
	"github.com/dimviz/dimviz/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigReloadSystem_AppliesOnlyFileChanges(t *testing.T) {
	start := Selection{Kind: shapes.Cube, Color: scene.White}
	cw := &configWatch{reloads: make(chan Selection, 4), last: start}
	events := &SelectionEvents{}
	log := &recordingLogger{}

	configReloadSystem(cw, events, log)
	assert.Zero(t, events.Len())

	cw.reloads <- start
	configReloadSystem(cw, events, log)
	assert.Zero(t, events.Len(), "unchanged file")

	cw.reloads <- Selection{Kind: shapes.Cube, Color: scene.Black}
	cw.reloads <- Selection{Kind: shapes.Pyramid, Color: scene.Black}
	configReloadSystem(cw, events, log)

	got := events.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, SelectionEvent{Type: ColorChanged, Color: scene.Black}, got[0])
	assert.Equal(t, SelectionEvent{Type: ShapeChanged, Kind: shapes.Pyramid}, got[1])
	assert.Equal(t, Selection{Kind: shapes.Pyramid, Color: scene.Black}, cw.last)
	assert.Len(t, log.infos, 2)
}

func TestConfigWatchModule_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dimviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("initial: {shape: cube}\n"), 0o644))

	initial := Selection{Kind: shapes.Cube, Color: scene.HexColor(0x3366FF)}
	app := newTestApp(t, ConfigWatchModule{Path: path, Initial: initial})
	app.addResources(&SelectionEvents{})
	require.NoError(t, app.Startup())
	defer app.Shutdown()

	require.NoError(t, os.WriteFile(path, []byte("initial: {shape: sphere}\n"), 0o644))

	events := Resource[SelectionEvents](app)
	cw := Resource[configWatch](app)
	require.Eventually(t, func() bool {
		configReloadSystem(cw, events, NewNopLogger())
		return events.Len() > 0
	}, 5*time.Second, 20*time.Millisecond)

	got := events.Drain()
	assert.Equal(t, SelectionEvent{Type: ShapeChanged, Kind: shapes.Sphere}, got[0])
}

func TestConfigWatchModule_FailedStartupStartsNoWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dimviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("initial: {shape: cube}\n"), 0o644))

	app := newTestApp(t, ConfigWatchModule{Path: path})
	app.addResources(&SelectionEvents{})
	sentinel := errors.New("no container")
	app.UseSystem(System(func() error { return sentinel }).InStage(Prelude).InState(OnEnter(Running)))

	assert.ErrorIs(t, app.Startup(), sentinel)
	cw := Resource[configWatch](app)
	assert.Nil(t, cw.watcher)
	assert.NoError(t, cw.Close())
}

func TestConfigWatchModule_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone", "dimviz.yaml")
	app := newTestApp(t, ConfigWatchModule{Path: path})
	app.addResources(&SelectionEvents{})

	err := app.Startup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watching")
	assert.Nil(t, Resource[configWatch](app).watcher)
}

func TestConfigWatch_CloseTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dimviz.yaml")
	app := newTestApp(t, ConfigWatchModule{Path: path})
	app.addResources(&SelectionEvents{})
	require.NoError(t, app.Startup())

	cw := Resource[configWatch](app)
	require.NotNil(t, cw.watcher)
	app.Shutdown()
	assert.Nil(t, cw.watcher)
	assert.NoError(t, cw.Close())
}
