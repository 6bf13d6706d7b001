package shapes

import (
	"fmt"

	"github.com/dimviz/dimviz/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// Dimension selects which family of builders a panel uses.
type Dimension int

const (
	Dim1 Dimension = iota + 1
	Dim2
	Dim3
	Dim4
)

func (d Dimension) String() string {
	return fmt.Sprintf("%dD", int(d))
}

// Builder produces a fresh node for one panel.
type Builder func(kind Kind, color scene.Color) *scene.Node

type table map[Kind]func(scene.Color) *scene.Node

// build dispatches through t, falling back to the cube entry for kinds the
// table does not know.
func (t table) build(kind Kind, color scene.Color) *scene.Node {
	if fn, ok := t[kind]; ok {
		return fn(color)
	}
	return t[Cube](color)
}

var (
	table2D = table{
		Cube:    square,
		Sphere:  circle,
		Pyramid: triangle,
	}
	table3D = table{
		Cube:    cube,
		Sphere:  sphere,
		Pyramid: pyramid,
	}
	table4D = table{
		Cube:    Tesseract,
		Sphere:  Hypersphere,
		Pyramid: Hyperpyramid,
	}

	builders = map[Dimension]Builder{
		Dim1: Build1D,
		Dim2: Build2D,
		Dim3: Build3D,
		Dim4: Build4D,
	}
)

// Build returns the node for the given panel dimension.
func Build(dim Dimension, kind Kind, color scene.Color) (*scene.Node, error) {
	b, ok := builders[dim]
	if !ok {
		return nil, fmt.Errorf("no builder for dimension %d", int(dim))
	}
	return b(kind, color), nil
}

// Build1D always yields a segment of length 2 on the X axis; a line has no
// cube/sphere/pyramid distinction, so kind is ignored.
func Build1D(_ Kind, color scene.Color) *scene.Node {
	geo := scene.Polyline("segment", mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{1, 0, 0})
	return scene.NewLine("1d-line", geo, scene.NewLineBasicMaterial(color))
}

func Build2D(kind Kind, color scene.Color) *scene.Node {
	return table2D.build(kind, color)
}

func Build3D(kind Kind, color scene.Color) *scene.Node {
	return table3D.build(kind, color)
}

// Build4D builds the 3D projection of the 4D counterpart of kind. Unknown
// kinds fall back to the tesseract.
func Build4D(kind Kind, color scene.Color) *scene.Node {
	return table4D.build(kind, color)
}

func flatMaterial(color scene.Color) *scene.Material {
	m := scene.NewMeshBasicMaterial(color)
	m.Side = scene.DoubleSide
	return m
}

func square(color scene.Color) *scene.Node {
	return scene.NewMesh("2d-square", scene.Plane(2, 2), flatMaterial(color))
}

func circle(color scene.Color) *scene.Node {
	return scene.NewMesh("2d-circle", scene.Circle(1, 32), flatMaterial(color))
}

func triangle(color scene.Color) *scene.Node {
	geo := scene.Polygon("triangle",
		mgl32.Vec3{0, 1, 0},
		mgl32.Vec3{-1, -1, 0},
		mgl32.Vec3{1, -1, 0},
	)
	return scene.NewMesh("2d-triangle", geo, flatMaterial(color))
}

func solidMaterial(color scene.Color) *scene.Material {
	m := scene.NewPhongMaterial(color)
	m.Shininess = 30
	return m
}

func cube(color scene.Color) *scene.Node {
	return scene.NewMesh("3d-cube", scene.Box(2, 2, 2), solidMaterial(color))
}

func sphere(color scene.Color) *scene.Node {
	return scene.NewMesh("3d-sphere", scene.Sphere(1, 32, 32), solidMaterial(color))
}

func pyramid(color scene.Color) *scene.Node {
	return scene.NewMesh("3d-pyramid", scene.Cone(1, 2, 4), solidMaterial(color))
}
