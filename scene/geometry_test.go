package scene

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometry_Counts(t *testing.T) {
	tests := []struct {
		name      string
		geometry  *Geometry
		vertices  int
		triangles int
	}{
		{"plane", Plane(2, 2), 4, 2},
		{"circle", Circle(1, 32), 34, 32},
		{"box", Box(2, 2, 2), 24, 12},
		{"sphere", Sphere(1, 32, 32), 33 * 33, 32*32*2 - 2*32},
		{"cone", Cone(1, 2, 4), 10 + 4 + 5, 8},
		{"torus", Torus(0.95, 0.02, 16, 100), 17 * 101, 16 * 100 * 2},
		{"triangle", Polygon("tri", mgl32.Vec3{0, 1, 0}, mgl32.Vec3{-1, -1, 0}, mgl32.Vec3{1, -1, 0}), 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.vertices, tt.geometry.VertexCount())
			assert.Equal(t, tt.triangles, tt.geometry.TriangleCount())

			seen := 0
			tt.geometry.EachTriangle(func(a, b, c mgl32.Vec3, _ int) { seen++ })
			assert.Equal(t, tt.triangles, seen)
		})
	}
}

func TestGeometry_BoxExtents(t *testing.T) {
	g := Box(2, 4, 6)
	for _, p := range g.Positions {
		assert.InDelta(t, 1, math.Abs(float64(p.X())), 1e-6)
		assert.InDelta(t, 2, math.Abs(float64(p.Y())), 1e-6)
		assert.InDelta(t, 3, math.Abs(float64(p.Z())), 1e-6)
	}

	require.Len(t, g.Groups, 6)
	for i, grp := range g.Groups {
		assert.Equal(t, i, grp.MaterialIndex)
		assert.Equal(t, 6, grp.Count)
	}
}

func TestGeometry_BoxFacesPointOutward(t *testing.T) {
	Box(2, 2, 2).EachTriangle(func(a, b, c mgl32.Vec3, _ int) {
		normal := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Mul(1.0 / 3)
		if normal.Dot(centroid) <= 0 {
			t.Errorf("triangle %v %v %v faces inward", a, b, c)
		}
	})
}

func TestGeometry_ConeApexAndBase(t *testing.T) {
	g := Cone(0.7, 1.4, 4)

	apex := 0
	var corners []mgl32.Vec3
	for _, p := range g.Positions {
		if mgl32.FloatEqualThreshold(p.Y(), 0.7, 1e-6) {
			apex++
			continue
		}
		require.InDelta(t, -0.7, p.Y(), 1e-6)
		if p.Len() > 0.75 {
			corners = append(corners, p)
		}
	}
	assert.Equal(t, 5, apex, "every torso column starts at the apex")

	for _, c := range corners {
		r := math.Hypot(float64(c.X()), float64(c.Z()))
		assert.InDelta(t, 0.7, r, 1e-6)
	}
}

func TestGeometry_TorusRadius(t *testing.T) {
	g := Torus(0.95, 0.02, 16, 100)
	for _, p := range g.Positions {
		r := math.Hypot(float64(p.X()), float64(p.Y()))
		assert.InDelta(t, 0.95, r, 0.0201)
		assert.InDelta(t, 0, p.Z(), 0.0201)
	}
}

func TestGeometry_EachSegment(t *testing.T) {
	line := Polyline("l", mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0})
	n := 0
	line.EachSegment(func(a, b mgl32.Vec3) { n++ })
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, line.TriangleCount())

	edges := 0
	Plane(1, 1).EachSegment(func(a, b mgl32.Vec3) { edges++ })
	assert.Equal(t, 6, edges)
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#3366FF", want: HexColor(0x3366ff)},
		{in: "#fff", want: White},
		{in: "black", want: Black},
		{in: "Red", want: HexColor(0xff0000)},
		{in: "#12345", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "not-a-color", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestColor_Hex(t *testing.T) {
	assert.Equal(t, "#3366FF", HexColor(0x3366ff).Hex())
	assert.Equal(t, "#FFFFFF", Color{2, 2, 2}.Hex(), "hex output clamps")
}
