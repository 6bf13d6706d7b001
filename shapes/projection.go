package shapes

import (
	"fmt"
	"math"

	"github.com/dimviz/dimviz/scene"
	"github.com/go-gl/mathgl/mgl32"
)

// A 4D solid is suggested by two concentric copies of its 3D counterpart:
// a smaller, denser inner copy and a larger transparent wireframe outer copy,
// plus connectors that stand in for the edges running along the fourth axis.
// The inner copy is always the first child of the returned group.

const (
	tesseractInner = 1.0
	tesseractOuter = 2.0

	hypersphereInner    = 0.7
	hypersphereOuter    = 1.2
	hypersphereSegments = 24
	ringRadius          = 0.95
	ringTube            = 0.02
	ringRadialSegments  = 16
	ringTubularSegments = 100

	hyperpyramidInner = 0.7
	hyperpyramidOuter = 1.2
	pyramidSides      = 4
)

func innerMaterial(color scene.Color) *scene.Material {
	m := scene.NewPhongMaterial(color)
	m.Opacity = 0.7
	m.Transparent = true
	return m
}

func outerMaterial(color scene.Color, opacity float32) *scene.Material {
	m := scene.NewPhongMaterial(color)
	m.Opacity = opacity
	m.Transparent = true
	m.Wireframe = true
	return m
}

// CubeCorners lists the 8 corners of an origin-centered cube with the given
// half side. Corner i takes -half/+half on X, Y, Z from bits 2, 1, 0 of i,
// so two cubes share one corner ordering and corner i of each lies on the
// same ray from the origin.
func CubeCorners(half float32) [8]mgl32.Vec3 {
	var corners [8]mgl32.Vec3
	for i := range corners {
		for axis := 0; axis < 3; axis++ {
			if i&(4>>axis) != 0 {
				corners[i][axis] = half
			} else {
				corners[i][axis] = -half
			}
		}
	}
	return corners
}

// Tesseract: inner cube, outer wireframe cube, and 8 struts joining
// corresponding corners.
func Tesseract(color scene.Color) *scene.Node {
	group := scene.NewGroup("tesseract")

	inner := scene.NewMesh("inner-cube", scene.Box(tesseractInner, tesseractInner, tesseractInner), innerMaterial(color))
	outer := scene.NewMesh("outer-cube", scene.Box(tesseractOuter, tesseractOuter, tesseractOuter), outerMaterial(color, 0.5))
	group.Add(inner, outer)

	edge := scene.NewLineBasicMaterial(color)
	innerCorners := CubeCorners(tesseractInner / 2)
	outerCorners := CubeCorners(tesseractOuter / 2)
	for i := range innerCorners {
		geo := scene.Polyline("strut", innerCorners[i], outerCorners[i])
		group.Add(scene.NewLine(fmt.Sprintf("edge-%d", i), geo, edge))
	}
	return group
}

// Hypersphere: inner sphere, outer wireframe sphere, and three thin rings
// standing for mutually orthogonal cross-sections.
func Hypersphere(color scene.Color) *scene.Node {
	group := scene.NewGroup("hypersphere")

	inner := scene.NewMesh("inner-sphere", scene.Sphere(hypersphereInner, hypersphereSegments, hypersphereSegments), innerMaterial(color))
	outer := scene.NewMesh("outer-sphere", scene.Sphere(hypersphereOuter, hypersphereSegments, hypersphereSegments), outerMaterial(color, 0.3))
	group.Add(inner, outer)

	for i, rot := range RingRotations() {
		geo := scene.Torus(ringRadius, ringTube, ringRadialSegments, ringTubularSegments)
		ring := scene.NewMesh(fmt.Sprintf("ring-%d", i), geo, scene.NewPhongMaterial(color))
		ring.Rotation = rot
		group.Add(ring)
	}
	return group
}

// RingRotations are the orientations of the hypersphere rings: a quarter
// turn about X, a quarter turn about Y, and the identity.
func RingRotations() [3]mgl32.Vec3 {
	quarter := float32(math.Pi / 2)
	return [3]mgl32.Vec3{
		{quarter, 0, 0},
		{0, quarter, 0},
		{0, 0, 0},
	}
}

// BaseCornerAngle is the angle around the Y axis of base corner i of a
// square pyramid.
func BaseCornerAngle(i int) float64 {
	return float64(i) / pyramidSides * 2 * math.Pi
}

// Hyperpyramid: inner cone, outer wireframe cone, one line joining the
// apexes and one line per base corner. Inner and outer corners share the
// same angle.
func Hyperpyramid(color scene.Color) *scene.Node {
	group := scene.NewGroup("hyperpyramid")

	inner := scene.NewMesh("inner-pyramid", scene.Cone(hyperpyramidInner, 2*hyperpyramidInner, pyramidSides), innerMaterial(color))
	outer := scene.NewMesh("outer-pyramid", scene.Cone(hyperpyramidOuter, 2*hyperpyramidOuter, pyramidSides), outerMaterial(color, 0.3))
	group.Add(inner, outer)

	line := scene.NewLineBasicMaterial(color)
	apex := scene.Polyline("apex",
		mgl32.Vec3{0, hyperpyramidInner, 0},
		mgl32.Vec3{0, hyperpyramidOuter, 0},
	)
	group.Add(scene.NewLine("apex-line", apex, line))

	for i := 0; i < pyramidSides; i++ {
		geo := scene.Polyline("base", baseCorner(hyperpyramidInner, i), baseCorner(hyperpyramidOuter, i))
		group.Add(scene.NewLine(fmt.Sprintf("base-line-%d", i), geo, line))
	}
	return group
}

// baseCorner is corner i of the base of a cone with radius r and height 2r.
func baseCorner(r float64, i int) mgl32.Vec3 {
	angle := BaseCornerAngle(i)
	return mgl32.Vec3{
		float32(r * math.Cos(angle)),
		float32(-r),
		float32(r * math.Sin(angle)),
	}
}
