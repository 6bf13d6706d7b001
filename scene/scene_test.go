package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_AddReparents(t *testing.T) {
	a := NewGroup("a")
	b := NewGroup("b")
	child := NewMesh("child", Box(1, 1, 1), NewPhongMaterial(White))

	a.Add(child)
	b.Add(child)

	assert.Empty(t, a.Children(), "child should have left its first parent")
	require.Len(t, b.Children(), 1)
	assert.Same(t, b, child.Parent())
}

func TestNode_Remove(t *testing.T) {
	g := NewGroup("g")
	c1 := NewGroup("c1")
	c2 := NewGroup("c2")
	g.Add(c1, c2)

	assert.True(t, g.Remove(c1))
	assert.False(t, g.Remove(c1), "second remove should report nothing removed")
	assert.Nil(t, c1.Parent())
	assert.Equal(t, []*Node{c2}, g.Children())
	assert.Nil(t, g.Child(1))
}

func TestNode_TraverseOrder(t *testing.T) {
	root := NewGroup("root")
	inner := NewGroup("inner")
	leaf := NewLine("leaf", Polyline("l", mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}), NewLineBasicMaterial(White))
	sibling := NewGroup("sibling")
	inner.Add(leaf)
	root.Add(inner, sibling)

	var names []string
	root.Traverse(func(n *Node) { names = append(names, n.Name) })

	assert.Equal(t, []string{"root", "inner", "leaf", "sibling"}, names)
}

func TestNode_WorldMatrix(t *testing.T) {
	parent := NewGroup("parent")
	parent.Position = mgl32.Vec3{10, 0, 0}
	parent.Rotation = mgl32.Vec3{0, mgl32.DegToRad(90), 0}

	child := NewGroup("child")
	child.Position = mgl32.Vec3{5, 0, 0}
	parent.Add(child)

	got := child.WorldMatrix().Mul4x1(mgl32.Vec4{0, 0, 0, 1}).Vec3()
	expected := mgl32.Vec3{10, 0, -5}
	if got.Sub(expected).Len() > 1e-4 {
		t.Errorf("child world position: expected %v, got %v", expected, got)
	}
}

func TestNode_Rotate(t *testing.T) {
	n := NewGroup("n")
	n.Rotate(0.005, 0.01, 0.002)
	n.Rotate(0.005, 0.01, 0.002)

	assert.InDelta(t, 0.01, n.Rotation.X(), 1e-7)
	assert.InDelta(t, 0.02, n.Rotation.Y(), 1e-7)
	assert.InDelta(t, 0.004, n.Rotation.Z(), 1e-7)
}

func TestNode_MaterialAt(t *testing.T) {
	red := NewPhongMaterial(HexColor(0xff0000))
	blue := NewPhongMaterial(HexColor(0x0000ff))
	n := NewMesh("m", Box(1, 1, 1), red, blue)

	assert.Same(t, red, n.MaterialAt(0))
	assert.Same(t, blue, n.MaterialAt(1))
	assert.Same(t, red, n.MaterialAt(5), "missing group materials fall back to the first")
	assert.Nil(t, NewGroup("g").Material())
}

func TestSlot_ReplaceKeepsSingleNode(t *testing.T) {
	sc := NewScene()
	slot := NewSlot(sc)

	first := NewMesh("box", Box(2, 2, 2), NewPhongMaterial(White))
	second := NewMesh("box", Box(2, 2, 2), NewPhongMaterial(White))

	assert.Nil(t, slot.Replace(first))
	old := slot.Replace(second)

	assert.Same(t, first, old)
	assert.Nil(t, first.Parent(), "replaced node must be detached")
	require.Len(t, sc.Children(), 1)
	assert.Same(t, second, sc.Children()[0])
	assert.Same(t, second, slot.Current())

	slot.Replace(nil)
	assert.Empty(t, sc.Children())
	assert.Nil(t, slot.Current())
}

func TestScene_TraverseSkipsRoot(t *testing.T) {
	sc := NewScene()
	sc.AddLight(NewAmbientLight(HexColor(0x404040)))
	sc.Add(NewGroup("obj"))

	count := 0
	sc.Traverse(func(n *Node) { count++ })

	assert.Equal(t, 1, count)
	assert.Len(t, sc.Lights, 1)
	assert.Equal(t, Black, sc.Background)
}

func TestCamera_Projection(t *testing.T) {
	cam := NewPerspectiveCamera(75, 2, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 5}

	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(75), 2, 0.1, 1000), cam.ProjectionMatrix())

	cam.Aspect = 0.5
	cam.UpdateProjectionMatrix()
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(75), 0.5, 0.1, 1000), cam.ProjectionMatrix())

	// the origin sits 5 units in front of the camera, in the middle of the view
	clip := cam.ViewProjection().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	assert.InDelta(t, 5, clip.W(), 1e-4)
	assert.InDelta(t, 0, clip.X(), 1e-6)
	assert.InDelta(t, 0, clip.Y(), 1e-6)
}

func TestLight_Direction(t *testing.T) {
	l := NewDirectionalLight(White, 1, mgl32.Vec3{1, 1, 1})
	d := l.Direction()
	assert.InDelta(t, 1, d.Len(), 1e-6)
	assert.InDelta(t, d.X(), d.Y(), 1e-6)
}
