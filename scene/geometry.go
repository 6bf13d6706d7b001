package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type Topology int

const (
	// Triangles reads Indices three at a time.
	Triangles Topology = iota
	// LineStrip connects consecutive Positions.
	LineStrip
)

// Group assigns a range of indices to one entry of a node's material list.
type Group struct {
	Start         int
	Count         int
	MaterialIndex int
}

// Geometry is an indexed vertex buffer in object space.
type Geometry struct {
	Name      string
	Topology  Topology
	Positions []mgl32.Vec3
	Indices   []uint32
	Groups    []Group
}

func (g *Geometry) VertexCount() int {
	return len(g.Positions)
}

func (g *Geometry) TriangleCount() int {
	if g.Topology != Triangles {
		return 0
	}
	return len(g.Indices) / 3
}

// EachTriangle calls fn for every triangle with the material index of its group.
func (g *Geometry) EachTriangle(fn func(a, b, c mgl32.Vec3, materialIndex int)) {
	if g.Topology != Triangles {
		return
	}
	groups := g.Groups
	if len(groups) == 0 {
		groups = []Group{{Start: 0, Count: len(g.Indices)}}
	}
	for _, grp := range groups {
		end := min(grp.Start+grp.Count, len(g.Indices))
		for i := grp.Start; i+3 <= end; i += 3 {
			fn(g.Positions[g.Indices[i]], g.Positions[g.Indices[i+1]], g.Positions[g.Indices[i+2]], grp.MaterialIndex)
		}
	}
}

// EachSegment calls fn for every drawable line segment. Triangle
// geometries yield their edges, which is what wireframe rendering needs.
func (g *Geometry) EachSegment(fn func(a, b mgl32.Vec3)) {
	switch g.Topology {
	case LineStrip:
		for i := 1; i < len(g.Positions); i++ {
			fn(g.Positions[i-1], g.Positions[i])
		}
	case Triangles:
		g.EachTriangle(func(a, b, c mgl32.Vec3, _ int) {
			fn(a, b)
			fn(b, c)
			fn(c, a)
		})
	}
}

// Polyline connects the given points in order.
func Polyline(name string, points ...mgl32.Vec3) *Geometry {
	pos := make([]mgl32.Vec3, len(points))
	copy(pos, points)
	return &Geometry{Name: name, Topology: LineStrip, Positions: pos}
}

// Polygon fans a convex outline from its first point.
func Polygon(name string, points ...mgl32.Vec3) *Geometry {
	g := &Geometry{Name: name, Topology: Triangles}
	g.Positions = append(g.Positions, points...)
	for i := 1; i+1 < len(points); i++ {
		g.Indices = append(g.Indices, 0, uint32(i), uint32(i+1))
	}
	return g
}

// Plane is a width x height rectangle in the XY plane facing +Z.
func Plane(width, height float32) *Geometry {
	hw, hh := width/2, height/2
	return &Geometry{
		Name:     "plane",
		Topology: Triangles,
		Positions: []mgl32.Vec3{
			{-hw, hh, 0}, {hw, hh, 0},
			{-hw, -hh, 0}, {hw, -hh, 0},
		},
		Indices: []uint32{0, 2, 1, 2, 3, 1},
	}
}

// Circle is a disc in the XY plane built from a center vertex and a rim of
// segments+1 vertices.
func Circle(radius float32, segments int) *Geometry {
	segments = max(segments, 3)
	g := &Geometry{Name: "circle", Topology: Triangles}
	g.Positions = append(g.Positions, mgl32.Vec3{0, 0, 0})
	for s := 0; s <= segments; s++ {
		theta := float64(s) / float64(segments) * 2 * math.Pi
		g.Positions = append(g.Positions, mgl32.Vec3{
			radius * float32(math.Cos(theta)),
			radius * float32(math.Sin(theta)),
			0,
		})
	}
	for i := 1; i <= segments; i++ {
		g.Indices = append(g.Indices, uint32(i), uint32(i+1), 0)
	}
	return g
}

// Box is an axis-aligned box centered at the origin. Each of its six faces
// is its own group so a node may carry one material per face.
func Box(width, height, depth float32) *Geometry {
	g := &Geometry{Name: "box", Topology: Triangles}
	const x, y, z = 0, 1, 2
	g.boxFace(z, y, x, -1, -1, depth, height, width, 0)
	g.boxFace(z, y, x, 1, -1, depth, height, -width, 1)
	g.boxFace(x, z, y, 1, 1, width, depth, height, 2)
	g.boxFace(x, z, y, 1, -1, width, depth, -height, 3)
	g.boxFace(x, y, z, 1, -1, width, height, depth, 4)
	g.boxFace(x, y, z, -1, -1, width, height, -depth, 5)
	return g
}

func (g *Geometry) boxFace(u, v, w int, udir, vdir, width, height, depth float32, materialIndex int) {
	base := uint32(len(g.Positions))
	start := len(g.Indices)
	for iy := 0; iy < 2; iy++ {
		py := float32(iy)*height - height/2
		for ix := 0; ix < 2; ix++ {
			px := float32(ix)*width - width/2
			var p mgl32.Vec3
			p[u] = px * udir
			p[v] = py * vdir
			p[w] = depth / 2
			g.Positions = append(g.Positions, p)
		}
	}
	a, b, c, d := base, base+2, base+3, base+1
	g.Indices = append(g.Indices, a, b, d, b, c, d)
	g.Groups = append(g.Groups, Group{Start: start, Count: 6, MaterialIndex: materialIndex})
}

// Sphere is a UV sphere with (widthSegments+1)*(heightSegments+1) vertices.
func Sphere(radius float32, widthSegments, heightSegments int) *Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)
	g := &Geometry{Name: "sphere", Topology: Triangles}

	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			g.Positions = append(g.Positions, mgl32.Vec3{
				-radius * float32(math.Cos(u*2*math.Pi)*math.Sin(v*math.Pi)),
				radius * float32(math.Cos(v*math.Pi)),
				radius * float32(math.Sin(u*2*math.Pi)*math.Sin(v*math.Pi)),
			})
			row[ix] = uint32(len(g.Positions) - 1)
		}
		grid[iy] = row
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			// poles collapse to single triangles
			if iy != 0 {
				g.Indices = append(g.Indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.Indices = append(g.Indices, b, c, d)
			}
		}
	}
	return g
}

// Cone has its apex at +height/2 and a closed base at -height/2. With four
// radial segments it is a square pyramid whose base corners sit at the
// angles 0, 1/4, 2/4 and 3/4 of a turn.
func Cone(radius, height float32, radialSegments int) *Geometry {
	radialSegments = max(radialSegments, 3)
	g := &Geometry{Name: "cone", Topology: Triangles}
	half := height / 2

	idx := make([][]uint32, 2)
	for yi := 0; yi <= 1; yi++ {
		r := float32(yi) * radius
		row := make([]uint32, radialSegments+1)
		for x := 0; x <= radialSegments; x++ {
			theta := float64(x) / float64(radialSegments) * 2 * math.Pi
			g.Positions = append(g.Positions, mgl32.Vec3{
				r * float32(math.Sin(theta)),
				-float32(yi)*height + half,
				r * float32(math.Cos(theta)),
			})
			row[x] = uint32(len(g.Positions) - 1)
		}
		idx[yi] = row
	}
	for x := 0; x < radialSegments; x++ {
		b, c, d := idx[1][x], idx[1][x+1], idx[0][x+1]
		g.Indices = append(g.Indices, b, c, d)
	}

	centerStart := uint32(len(g.Positions))
	for x := 0; x < radialSegments; x++ {
		g.Positions = append(g.Positions, mgl32.Vec3{0, -half, 0})
	}
	rimStart := uint32(len(g.Positions))
	for x := 0; x <= radialSegments; x++ {
		theta := float64(x) / float64(radialSegments) * 2 * math.Pi
		g.Positions = append(g.Positions, mgl32.Vec3{
			radius * float32(math.Sin(theta)),
			-half,
			radius * float32(math.Cos(theta)),
		})
	}
	for x := uint32(0); x < uint32(radialSegments); x++ {
		c := centerStart + x
		i := rimStart + x
		g.Indices = append(g.Indices, i+1, i, c)
	}
	return g
}

// Torus lies in the XY plane around the Z axis.
func Torus(radius, tube float32, radialSegments, tubularSegments int) *Geometry {
	radialSegments = max(radialSegments, 2)
	tubularSegments = max(tubularSegments, 3)
	g := &Geometry{Name: "torus", Topology: Triangles}

	for j := 0; j <= radialSegments; j++ {
		v := float64(j) / float64(radialSegments) * 2 * math.Pi
		for i := 0; i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * math.Pi
			ring := float64(radius) + float64(tube)*math.Cos(v)
			g.Positions = append(g.Positions, mgl32.Vec3{
				float32(ring * math.Cos(u)),
				float32(ring * math.Sin(u)),
				tube * float32(math.Sin(v)),
			})
		}
	}

	stride := uint32(tubularSegments + 1)
	for j := uint32(1); j <= uint32(radialSegments); j++ {
		for i := uint32(1); i <= uint32(tubularSegments); i++ {
			a := stride*j + i - 1
			b := stride*(j-1) + i - 1
			c := stride*(j-1) + i
			d := stride*j + i
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	return g
}
