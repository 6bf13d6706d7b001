package dimviz

import (
	"errors"
	"image"
	"testing"

	"github.com/dimviz/dimviz/scene"
	"github.com/dimviz/dimviz/shapes"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRenderer counts renders and remembers its size.
type fakeRenderer struct {
	width, height int
	renders       int
	failWith      error
	lastChildren  int
}

func newFakeRenderer(width, height int) Renderer {
	return &fakeRenderer{width: width, height: height}
}

func (r *fakeRenderer) Render(s *scene.Scene, cam *scene.PerspectiveCamera) error {
	r.renders++
	r.lastChildren = len(s.Children())
	return r.failWith
}

func (r *fakeRenderer) SetSize(width, height int) error {
	r.width, r.height = width, height
	return nil
}

func (r *fakeRenderer) Size() (int, int) {
	return r.width, r.height
}

func (r *fakeRenderer) Image() *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, max(r.width, 1), max(r.height, 1)))
}

func fakeOf(p *Panel) *fakeRenderer {
	return p.Renderer.(*fakeRenderer)
}

func arrangedLayout(width, height int) *Layout {
	l := NewLayout(DefaultConfig().Panels)
	l.Arrange(width, height)
	return l
}

func TestLayout_Arrange(t *testing.T) {
	l := arrangedLayout(808, 456)

	assert.Equal(t, image.Rect(0, 0, 808, controlBarHeight), l.ControlBar)
	require.Len(t, l.Containers, 4)

	// (808 - 3*8) / 2 = 392, (456 - 48 - 3*8) / 2 = 192
	assert.Equal(t, image.Rect(8, 56, 400, 248), l.Container(Panel1D).Bounds)
	assert.Equal(t, image.Rect(408, 56, 800, 248), l.Container(Panel2D).Bounds)
	assert.Equal(t, image.Rect(8, 256, 400, 448), l.Container(Panel3D).Bounds)
	assert.Equal(t, image.Rect(408, 256, 800, 448), l.Container(Panel4D).Bounds)

	c := l.Container(Panel3D)
	assert.Equal(t, titleHeight, c.TitleBounds().Dy())
	assert.Equal(t, 192-titleHeight, c.Canvas().Dy())
	assert.Equal(t, "3D Object", c.Title)

	assert.Nil(t, l.Container("5d"))
}

func TestLayout_TinyWindow(t *testing.T) {
	l := arrangedLayout(4, 4)
	for _, c := range l.Containers {
		assert.True(t, c.Bounds.Empty(), c.Key)
		assert.GreaterOrEqual(t, c.Canvas().Dy(), 0)
	}
}

func TestViewport_TakeChanged(t *testing.T) {
	v := &Viewport{Width: 100, Height: 100}
	assert.False(t, v.TakeChanged())

	v.Resize(100, 100)
	assert.False(t, v.TakeChanged(), "same size is not a change")

	v.Resize(200, 100)
	assert.True(t, v.TakeChanged())
	assert.False(t, v.TakeChanged())
}

func TestPanelKey(t *testing.T) {
	assert.Equal(t, []PanelKey{Panel1D, Panel2D, Panel3D, Panel4D}, PanelKeys())
	assert.Equal(t, shapes.Dim1, Panel1D.Dimension())
	assert.Equal(t, shapes.Dim4, Panel4D.Dimension())
	assert.False(t, PanelKey("xd").Valid())
}

func TestCreatePanel(t *testing.T) {
	l := arrangedLayout(808, 456)
	container := l.Container(Panel3D)

	p, err := CreatePanel(Panel3D, container, newFakeRenderer)
	require.NoError(t, err)

	assert.Equal(t, "3D Object", p.Title)
	assert.Equal(t, scene.Black, p.Scene.Background)
	assert.Nil(t, p.Object())
	assert.Empty(t, p.Scene.Children())

	require.Len(t, p.Scene.Lights, 2)
	ambient, dir := p.Scene.Lights[0], p.Scene.Lights[1]
	assert.Equal(t, scene.LightAmbient, ambient.Type)
	assert.Equal(t, scene.HexColor(0x404040), ambient.Color)
	assert.Equal(t, scene.LightDirectional, dir.Type)
	assert.Equal(t, scene.White, dir.Color)
	assert.Equal(t, float32(1), dir.Intensity)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, dir.Position)

	canvas := container.Canvas()
	assert.Equal(t, float32(75), p.Camera.FOV)
	assert.Equal(t, float32(0.1), p.Camera.Near)
	assert.Equal(t, float32(1000), p.Camera.Far)
	assert.Equal(t, mgl32.Vec3{0, 0, 5}, p.Camera.Position)
	assert.InDelta(t, float64(canvas.Dx())/float64(canvas.Dy()), p.Camera.Aspect, 1e-6)

	w, h := p.Renderer.Size()
	assert.Equal(t, canvas.Dx(), w)
	assert.Equal(t, canvas.Dy(), h)
	assert.Equal(t, canvas, p.Canvas)
}

func TestCreatePanel_MissingContainer(t *testing.T) {
	_, err := CreatePanel(Panel2D, nil, newFakeRenderer)
	assert.ErrorIs(t, err, ErrMissingContainer)
}

func TestCreatePanel_ZeroSizeContainer(t *testing.T) {
	container := &Container{Key: Panel1D}
	assert.NotPanics(t, func() {
		p, err := CreatePanel(Panel1D, container, NewSoftwareRenderer)
		require.NoError(t, err)
		assert.NoError(t, p.Renderer.Render(p.Scene, p.Camera))
	})
}

func TestPanelRegistry_CreateAll(t *testing.T) {
	reg := NewPanelRegistry(newFakeRenderer)
	require.NoError(t, reg.CreateAll(arrangedLayout(800, 600)))

	all := reg.All()
	require.Len(t, all, 4)
	for i, key := range PanelKeys() {
		assert.Equal(t, key, all[i].Key)
		assert.Same(t, all[i], reg.Get(key))
	}
	assert.Nil(t, reg.Get("xd"))
}

func TestPanelRegistry_CreateAllIsAllOrNothing(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Panels = cfg.Panels[:3]
	l := NewLayout(cfg.Panels)
	l.Arrange(800, 600)

	reg := NewPanelRegistry(newFakeRenderer)
	err := reg.CreateAll(l)
	assert.ErrorIs(t, err, ErrMissingContainer)
	assert.Empty(t, reg.All())
}

func TestPanelRegistry_ResizeAll(t *testing.T) {
	l := arrangedLayout(800, 600)
	reg := NewPanelRegistry(newFakeRenderer)
	require.NoError(t, reg.CreateAll(l))

	l.Arrange(1608, 1056)
	require.NoError(t, reg.ResizeAll(l))

	for _, p := range reg.All() {
		canvas := l.Container(p.Key).Canvas()
		w, h := p.Renderer.Size()
		assert.Equal(t, canvas.Dx(), w, p.Key)
		assert.Equal(t, canvas.Dy(), h, p.Key)
		assert.InDelta(t, float64(w)/float64(h), p.Camera.Aspect, 1e-6)
		assert.Equal(t, canvas, p.Canvas)
	}
}

type failingResize struct{ fakeRenderer }

func (r *failingResize) SetSize(width, height int) error {
	return errors.New("no memory")
}

func TestPanelRegistry_ResizeAllJoinsErrors(t *testing.T) {
	l := arrangedLayout(800, 600)
	reg := NewPanelRegistry(func(w, h int) Renderer { return &failingResize{} })
	require.NoError(t, reg.CreateAll(l))

	err := reg.ResizeAll(l)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resizing 1d panel")
	assert.Contains(t, err.Error(), "resizing 4d panel")
}

func TestPanelsModule_ResizeSystem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Window.Width, cfg.Window.Height = 800, 600
	app := newTestApp(t, PanelsModule{Config: cfg, NewRenderer: newFakeRenderer})
	require.NoError(t, app.Startup())

	panels := Resource[PanelRegistry](app)
	require.Len(t, panels.All(), 4)
	before := panels.Get(Panel4D).Camera.Aspect

	Resource[Viewport](app).Resize(1600, 400)
	app.Tick()

	layout := Resource[Layout](app)
	assert.Equal(t, 1600, layout.ControlBar.Dx())
	p := panels.Get(Panel4D)
	w, h := p.Renderer.Size()
	assert.Equal(t, layout.Container(Panel4D).Canvas().Dx(), w)
	assert.Equal(t, layout.Container(Panel4D).Canvas().Dy(), h)
	assert.NotEqual(t, before, p.Camera.Aspect)
}

func TestPanelsModule_MissingContainerFailsStartup(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Panels = []PanelConfig{{Key: Panel1D}, {Key: Panel2D}, {Key: Panel4D}}
	app := newTestApp(t, PanelsModule{Config: cfg, NewRenderer: newFakeRenderer})

	err := app.Startup()
	assert.ErrorIs(t, err, ErrMissingContainer)
	assert.Contains(t, err.Error(), "3d")
}
