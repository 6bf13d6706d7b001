package dimviz

import (
	"testing"

	"github.com/dimviz/dimviz/scene"
	"github.com/dimviz/dimviz/shapes"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createdPanels(t *testing.T) *PanelRegistry {
	t.Helper()
	reg := NewPanelRegistry(newFakeRenderer)
	require.NoError(t, reg.CreateAll(arrangedLayout(800, 600)))
	return reg
}

func vertexCounts(n *scene.Node) []int {
	var out []int
	n.Traverse(func(n *scene.Node) {
		if n.Geometry != nil {
			out = append(out, n.Geometry.VertexCount())
		}
	})
	return out
}

func materialColors(n *scene.Node) []scene.Color {
	var out []scene.Color
	n.Traverse(func(n *scene.Node) {
		for _, m := range n.Materials {
			out = append(out, m.Color)
		}
	})
	return out
}

func TestRebuildAll_OneObjectPerPanel(t *testing.T) {
	reg := createdPanels(t)
	red := scene.HexColor(0xFF0000)

	for range 3 {
		for _, kind := range shapes.Kinds() {
			require.NoError(t, RebuildAll(reg, Selection{Kind: kind, Color: red}, NewNopLogger()))
			for _, p := range reg.All() {
				assert.Len(t, p.Scene.Children(), 1, p.Key)
				assert.Same(t, p.Object(), p.Scene.Children()[0])
			}
		}
	}
}

func TestRebuildAll_MatchesBuilders(t *testing.T) {
	reg := createdPanels(t)
	sel := Selection{Kind: shapes.Sphere, Color: scene.HexColor(0x33CC66)}
	require.NoError(t, RebuildAll(reg, sel, NewNopLogger()))

	for _, p := range reg.All() {
		want, err := shapes.Build(p.Dimension(), sel.Kind, sel.Color)
		require.NoError(t, err)
		assert.Equal(t, vertexCounts(want), vertexCounts(p.Object()), p.Key)
		assert.Equal(t, mgl32.Vec3{}, p.Object().Rotation, "new objects start unrotated")
	}
	assert.Len(t, reg.Get(Panel4D).Object().Children(), 5, "hypersphere")
}

func TestRetintAll_ReachesNestedMaterials(t *testing.T) {
	reg := createdPanels(t)
	require.NoError(t, RebuildAll(reg, Selection{Kind: shapes.Cube, Color: scene.HexColor(0x3366FF)}, NewNopLogger()))

	before := map[PanelKey][]int{}
	for _, p := range reg.All() {
		before[p.Key] = vertexCounts(p.Object())
	}
	objects := map[PanelKey]*scene.Node{}
	for _, p := range reg.All() {
		objects[p.Key] = p.Object()
	}

	yellow := scene.HexColor(0xFFCC00)
	RetintAll(reg, yellow)

	for _, p := range reg.All() {
		assert.Same(t, objects[p.Key], p.Object(), "retint keeps the objects")
		assert.Equal(t, before[p.Key], vertexCounts(p.Object()), p.Key)
		colors := materialColors(p.Object())
		require.NotEmpty(t, colors)
		for _, c := range colors {
			assert.Equal(t, yellow, c, p.Key)
		}
	}
}

func TestRetintAll_MultiMaterialNodes(t *testing.T) {
	reg := createdPanels(t)
	p := reg.Get(Panel3D)

	var mats []*scene.Material
	for i := range 6 {
		mats = append(mats, scene.NewPhongMaterial(scene.HexColor(uint32(0x101010*(i+1)))))
	}
	mesh := scene.NewMesh("m", scene.Box(1, 1, 1), mats...)
	group := scene.NewGroup("g")
	group.Add(mesh)
	p.Slot.Replace(group)
	vertices := mesh.Geometry.VertexCount()

	red := scene.HexColor(0xFF3333)
	RetintAll(reg, red)

	for i, m := range mats {
		assert.Equal(t, red, m.Color, "material %d", i)
	}
	assert.Equal(t, vertices, mesh.Geometry.VertexCount())
	assert.Same(t, group, p.Object())
}

func TestRebuildAll_LogsReplacedNodes(t *testing.T) {
	reg := createdPanels(t)
	log := &recordingLogger{debug: true}

	require.NoError(t, RebuildAll(reg, Selection{Kind: shapes.Cube, Color: scene.White}, log))
	require.Len(t, log.debugs, 4)
	first := reg.Get(Panel4D).Object()
	assert.Contains(t, log.debugs[3], first.ID.String()[:8])

	log.debugs = nil
	require.NoError(t, RebuildAll(reg, Selection{Kind: shapes.Sphere, Color: scene.White}, log))
	require.Len(t, log.debugs, 4)
	second := reg.Get(Panel4D).Object()
	assert.NotEqual(t, first.ID, second.ID)
	assert.Contains(t, log.debugs[3], "4d panel: ")
	assert.Contains(t, log.debugs[3], first.ID.String()[:8]+") -> ")
	assert.Contains(t, log.debugs[3], second.ID.String()[:8])
}

func TestRetintAll_SkipsEmptyPanels(t *testing.T) {
	reg := createdPanels(t)
	assert.NotPanics(t, func() { RetintAll(reg, scene.White) })
}

func TestUpdateDriver(t *testing.T) {
	log := &recordingLogger{debug: true}
	initial := Selection{Kind: shapes.Cube, Color: scene.HexColor(0x3366FF)}
	app := newTestApp(t,
		LoggingModule{Logger: log},
		PanelsModule{NewRenderer: newFakeRenderer},
		UpdateDriverModule{Initial: initial},
	)
	require.NoError(t, app.Startup())
	assert.Equal(t, []string{"initializing application...", "initialized successfully (cube #3366FF)"}, log.infos)

	panels := Resource[PanelRegistry](app)
	events := Resource[SelectionEvents](app)
	sel := Resource[Selection](app)
	require.Len(t, panels.Get(Panel4D).Object().Children(), 10, "tesseract")

	first := panels.Get(Panel3D).Object()
	log.debugs = nil
	events.SetShape(shapes.Cube)
	events.SetColor(initial.Color)
	app.Tick()
	assert.Same(t, first, panels.Get(Panel3D).Object(), "duplicate selections are ignored")
	assert.Len(t, log.debugs, 2)

	events.SetShape(shapes.Pyramid)
	app.Tick()
	assert.Equal(t, shapes.Pyramid, sel.Kind)
	assert.NotSame(t, first, panels.Get(Panel3D).Object())
	assert.Len(t, panels.Get(Panel4D).Object().Children(), 6, "hyperpyramid")
	assert.Equal(t, initial.Color, panels.Get(Panel4D).Object().Child(0).Material().Color)

	rebuilt := panels.Get(Panel3D).Object()
	events.SetColor(scene.HexColor(0xCC33FF))
	app.Tick()
	assert.Same(t, rebuilt, panels.Get(Panel3D).Object(), "color changes retint in place")
	for _, p := range panels.All() {
		for _, c := range materialColors(p.Object()) {
			assert.Equal(t, scene.HexColor(0xCC33FF), c)
		}
	}
	assert.Zero(t, events.Len())
}

func TestSelectionEvents_Apply(t *testing.T) {
	var events SelectionEvents
	from := Selection{Kind: shapes.Cube, Color: scene.White}

	events.Apply(from, from)
	assert.Zero(t, events.Len())

	events.Apply(from, Selection{Kind: shapes.Sphere, Color: scene.Black})
	got := events.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, ShapeChanged, got[0].Type)
	assert.Equal(t, shapes.Sphere, got[0].Kind)
	assert.Equal(t, ColorChanged, got[1].Type)
	assert.Equal(t, scene.Black, got[1].Color)
	assert.Zero(t, events.Len())
}
