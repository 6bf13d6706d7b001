package dimviz

import (
	"errors"
	"fmt"
	"image"

	"github.com/dimviz/dimviz/render"
	"github.com/dimviz/dimviz/scene"
	"github.com/dimviz/dimviz/shapes"
	"github.com/go-gl/mathgl/mgl32"
)

type PanelKey string

const (
	Panel1D PanelKey = "1d"
	Panel2D PanelKey = "2d"
	Panel3D PanelKey = "3d"
	Panel4D PanelKey = "4d"
)

var panelKeys = [...]PanelKey{Panel1D, Panel2D, Panel3D, Panel4D}

// PanelKeys lists the panels in render order.
func PanelKeys() []PanelKey {
	return panelKeys[:]
}

func (k PanelKey) index() int {
	for i, key := range panelKeys {
		if key == k {
			return i
		}
	}
	return -1
}

func (k PanelKey) Valid() bool {
	return k.index() >= 0
}

func (k PanelKey) Dimension() shapes.Dimension {
	return shapes.Dimension(k.index() + 1)
}

const (
	cameraFOV  = 75
	cameraNear = 0.1
	cameraFar  = 1000
	cameraZ    = 5
)

// Renderer draws one panel's scene into its own image.
type Renderer interface {
	Render(s *scene.Scene, cam *scene.PerspectiveCamera) error
	SetSize(width, height int) error
	Size() (int, int)
	Image() *image.RGBA
}

type RendererFactory func(width, height int) Renderer

func NewSoftwareRenderer(width, height int) Renderer {
	return render.New(width, height)
}

// Panel is one dimensional view: a scene, its camera and renderer, and the
// slot holding the object currently shown.
type Panel struct {
	Key      PanelKey
	Title    string
	Scene    *scene.Scene
	Camera   *scene.PerspectiveCamera
	Renderer Renderer
	Slot     *scene.Slot
	// Canvas is where the renderer's image is placed in the window.
	Canvas image.Rectangle
}

func (p *Panel) Dimension() shapes.Dimension {
	return p.Key.Dimension()
}

// Object is the node currently shown, or nil.
func (p *Panel) Object() *scene.Node {
	return p.Slot.Current()
}

// CreatePanel sets up the scene, lights, camera and renderer for key inside
// container. The camera aspect follows the container even when it is
// degenerate.
func CreatePanel(key PanelKey, container *Container, newRenderer RendererFactory) (*Panel, error) {
	if container == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingContainer, key)
	}
	canvas := container.Canvas()
	w, h := canvas.Dx(), canvas.Dy()

	s := scene.NewScene()
	s.Background = scene.Black
	s.AddLight(scene.NewAmbientLight(scene.HexColor(0x404040)))
	s.AddLight(scene.NewDirectionalLight(scene.White, 1, mgl32.Vec3{1, 1, 1}))

	cam := scene.NewPerspectiveCamera(cameraFOV, float32(w)/float32(h), cameraNear, cameraFar)
	cam.Position = mgl32.Vec3{0, 0, cameraZ}

	return &Panel{
		Key:      key,
		Title:    container.Title,
		Scene:    s,
		Camera:   cam,
		Renderer: newRenderer(w, h),
		Slot:     scene.NewSlot(s),
		Canvas:   canvas,
	}, nil
}

// Resize fits the camera and renderer to container.
func (p *Panel) Resize(container *Container) error {
	p.Canvas = container.Canvas()
	w, h := p.Canvas.Dx(), p.Canvas.Dy()
	p.Camera.Aspect = float32(w) / float32(h)
	p.Camera.UpdateProjectionMatrix()
	if err := p.Renderer.SetSize(w, h); err != nil {
		return fmt.Errorf("resizing %s panel: %w", p.Key, err)
	}
	return nil
}

// PanelRegistry holds the created panels indexed by key.
type PanelRegistry struct {
	panels      [len(panelKeys)]*Panel
	newRenderer RendererFactory
}

func NewPanelRegistry(newRenderer RendererFactory) *PanelRegistry {
	if newRenderer == nil {
		newRenderer = NewSoftwareRenderer
	}
	return &PanelRegistry{newRenderer: newRenderer}
}

func (r *PanelRegistry) Get(key PanelKey) *Panel {
	i := key.index()
	if i < 0 {
		return nil
	}
	return r.panels[i]
}

func (r *PanelRegistry) Set(p *Panel) {
	r.panels[p.Key.index()] = p
}

// All returns the created panels in key order.
func (r *PanelRegistry) All() []*Panel {
	out := make([]*Panel, 0, len(r.panels))
	for _, p := range r.panels {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}

// CreateAll creates every panel from layout. Nothing is registered unless
// all four succeed.
func (r *PanelRegistry) CreateAll(layout *Layout) error {
	var created [len(panelKeys)]*Panel
	for i, key := range panelKeys {
		p, err := CreatePanel(key, layout.Container(key), r.newRenderer)
		if err != nil {
			return err
		}
		created[i] = p
	}
	r.panels = created
	return nil
}

// ResizeAll fits every panel to its container in layout.
func (r *PanelRegistry) ResizeAll(layout *Layout) error {
	var errs []error
	for _, p := range r.All() {
		c := layout.Container(p.Key)
		if c == nil {
			continue
		}
		if err := p.Resize(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PanelsModule creates the four panels on startup and keeps them fitted to
// the window.
type PanelsModule struct {
	Config      *Config
	NewRenderer RendererFactory
}

func (m PanelsModule) Install(app *App, cmd *Commands) {
	cfg := m.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}

	viewport := &Viewport{Width: cfg.Window.Width, Height: cfg.Window.Height}
	layout := NewLayout(cfg.Panels)
	layout.Arrange(viewport.Width, viewport.Height)

	cmd.AddResources(viewport, layout, NewPanelRegistry(m.NewRenderer))

	app.UseSystem(
		System(createPanelsSystem).
			InStage(Prelude).
			InState(OnEnter(Running)),
	)
	app.UseSystem(
		System(resizeSystem).
			InStage(PreUpdate).
			RunAlways(),
	)
}

func createPanelsSystem(panels *PanelRegistry, layout *Layout, log Logger) error {
	if err := panels.CreateAll(layout); err != nil {
		return err
	}
	for _, p := range panels.All() {
		w, h := p.Renderer.Size()
		log.Debugf("created %s panel %q (%dx%d)", p.Key, p.Title, w, h)
	}
	return nil
}

func resizeSystem(viewport *Viewport, layout *Layout, panels *PanelRegistry, log Logger) error {
	if !viewport.TakeChanged() {
		return nil
	}
	layout.Arrange(viewport.Width, viewport.Height)
	log.Debugf("viewport resized to %dx%d", viewport.Width, viewport.Height)
	return panels.ResizeAll(layout)
}
