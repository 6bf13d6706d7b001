// Package render rasterizes a scene.Scene into an RGBA image on the CPU.
//
// Triangles and line segments are projected with the camera's view-projection
// matrix, sorted back to front and painted with a gg.Context. There is no
// depth buffer; painter's order is enough for the convex, centered objects the
// panels show.
package render

import (
	"cmp"
	"image"
	"image/draw"
	"math"
	"slices"

	"github.com/dimviz/dimviz/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gg"
)

// specular is the fixed highlight color of phong materials.
var specular = scene.HexColor(0x111111)

const lineWidth = 1.25

// Stats describes the last Render call.
type Stats struct {
	Triangles int
	Segments  int
	Culled    int
}

type Renderer struct {
	ctx *gg.Context

	// requested size; the context is never smaller than 1x1
	width, height int

	stats Stats
	prims []primitive
}

type primitive struct {
	depth  float32
	points [3][2]float64
	n      int // 2 for segments, 3 for triangles
	color  scene.Color
	alpha  float32
	filled bool
}

func New(width, height int) *Renderer {
	r := &Renderer{width: width, height: height}
	r.ctx = gg.NewContext(max(width, 1), max(height, 1))
	return r
}

// SetSize resizes the drawing surface. Non-positive sizes are remembered but
// the surface keeps at least one pixel.
func (r *Renderer) SetSize(width, height int) error {
	r.width, r.height = width, height
	return r.ctx.Resize(max(width, 1), max(height, 1))
}

func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

func (r *Renderer) Stats() Stats {
	return r.stats
}

// Image returns a copy of the last rendered frame. The caller owns it; later
// renders do not write to it.
func (r *Renderer) Image() *image.RGBA {
	img := r.ctx.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Src)
	return out
}

// Render clears to the scene background and paints every mesh and line.
func (r *Renderer) Render(s *scene.Scene, cam *scene.PerspectiveCamera) error {
	r.stats = Stats{}
	r.prims = r.prims[:0]

	bg := s.Background
	r.ctx.ClearWithColor(gg.RGB(float64(bg.R), float64(bg.G), float64(bg.B)))

	vp := cam.ViewProjection()
	s.Traverse(func(n *scene.Node) {
		if n.Geometry == nil || len(n.Materials) == 0 {
			return
		}
		world := n.WorldMatrix()
		switch n.Kind {
		case scene.KindLine:
			r.collectLines(n, world, vp)
		case scene.KindMesh:
			r.collectMesh(n, world, vp, s.Lights, cam.Position)
		}
	})

	// far first
	slices.SortStableFunc(r.prims, func(a, b primitive) int {
		return cmp.Compare(b.depth, a.depth)
	})

	for i := range r.prims {
		if err := r.paint(&r.prims[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) collectLines(n *scene.Node, world, vp mgl32.Mat4) {
	m := n.Material()
	mvp := vp.Mul4(world)
	n.Geometry.EachSegment(func(a, b mgl32.Vec3) {
		r.addSegment(mvp, a, b, m.Color, m.Alpha())
	})
}

func (r *Renderer) addSegment(mvp mgl32.Mat4, a, b mgl32.Vec3, c scene.Color, alpha float32) {
	pa, za, oka := r.project(mvp, a)
	pb, zb, okb := r.project(mvp, b)
	if !oka || !okb {
		r.stats.Culled++
		return
	}
	r.prims = append(r.prims, primitive{
		depth:  (za + zb) / 2,
		points: [3][2]float64{pa, pb},
		n:      2,
		color:  c,
		alpha:  alpha,
	})
	r.stats.Segments++
}

func (r *Renderer) collectMesh(n *scene.Node, world, vp mgl32.Mat4, lights []scene.Light, eye mgl32.Vec3) {
	mvp := vp.Mul4(world)
	n.Geometry.EachTriangle(func(a, b, c mgl32.Vec3, group int) {
		m := n.MaterialAt(group)
		if m.Wireframe {
			r.addSegment(mvp, a, b, m.Color, m.Alpha())
			r.addSegment(mvp, b, c, m.Color, m.Alpha())
			r.addSegment(mvp, c, a, m.Color, m.Alpha())
			return
		}

		wa := world.Mul4x1(a.Vec4(1)).Vec3()
		wb := world.Mul4x1(b.Vec4(1)).Vec3()
		wc := world.Mul4x1(c.Vec4(1)).Vec3()
		normal := wb.Sub(wa).Cross(wc.Sub(wa))
		if normal.Len() == 0 {
			r.stats.Culled++
			return
		}
		normal = normal.Normalize()
		centroid := wa.Add(wb).Add(wc).Mul(1.0 / 3)
		view := eye.Sub(centroid).Normalize()
		if normal.Dot(view) < 0 {
			if m.Side == scene.FrontSide {
				r.stats.Culled++
				return
			}
			normal = normal.Mul(-1)
		}

		pa, za, oka := r.project(mvp, a)
		pb, zb, okb := r.project(mvp, b)
		pc, zc, okc := r.project(mvp, c)
		if !oka || !okb || !okc {
			r.stats.Culled++
			return
		}
		r.prims = append(r.prims, primitive{
			depth:  (za + zb + zc) / 3,
			points: [3][2]float64{pa, pb, pc},
			n:      3,
			color:  Shade(m, normal, view, lights),
			alpha:  m.Alpha(),
			filled: true,
		})
		r.stats.Triangles++
	})
}

// project maps an object-space point to pixel coordinates and NDC depth.
// Points behind the camera are rejected.
func (r *Renderer) project(mvp mgl32.Mat4, p mgl32.Vec3) ([2]float64, float32, bool) {
	clip := mvp.Mul4x1(p.Vec4(1))
	if clip.W() <= 1e-6 {
		return [2]float64{}, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	w, h := float64(max(r.width, 1)), float64(max(r.height, 1))
	return [2]float64{
		(float64(ndc.X()) + 1) / 2 * w,
		(1 - float64(ndc.Y())) / 2 * h,
	}, ndc.Z(), true
}

func (r *Renderer) paint(p *primitive) error {
	ctx := r.ctx
	ctx.SetRGBA(float64(p.color.R), float64(p.color.G), float64(p.color.B), float64(p.alpha))
	ctx.MoveTo(p.points[0][0], p.points[0][1])
	for i := 1; i < p.n; i++ {
		ctx.LineTo(p.points[i][0], p.points[i][1])
	}
	if !p.filled {
		ctx.SetLineWidth(lineWidth)
		return ctx.Stroke()
	}
	ctx.ClosePath()
	if p.alpha < 1 {
		return ctx.Fill()
	}
	// a hairline over opaque fills hides anti-aliasing seams between neighbours
	if err := ctx.FillPreserve(); err != nil {
		return err
	}
	ctx.SetLineWidth(0.5)
	return ctx.Stroke()
}

// Shade computes the flat color of a face with the given world-space normal
// and direction to the viewer. Basic materials are unlit.
func Shade(m *scene.Material, normal, view mgl32.Vec3, lights []scene.Light) scene.Color {
	if m.Kind != scene.MeshPhong {
		return m.Color
	}
	var diffuse, spec scene.Color
	for _, l := range lights {
		lc := l.Color.Scale(l.Intensity)
		switch l.Type {
		case scene.LightAmbient:
			diffuse = diffuse.Add(lc)
		case scene.LightDirectional:
			dir := l.Direction()
			ndotl := normal.Dot(dir)
			if ndotl <= 0 {
				continue
			}
			diffuse = diffuse.Add(lc.Scale(ndotl))
			half := dir.Add(view)
			if half.Len() == 0 {
				continue
			}
			ndoth := max(normal.Dot(half.Normalize()), 0)
			k := float32(math.Pow(float64(ndoth), float64(max(m.Shininess, 1))))
			spec = spec.Add(lc.Mul(specular).Scale(k))
		}
	}
	return m.Color.Mul(diffuse).Add(spec).Clamp()
}
