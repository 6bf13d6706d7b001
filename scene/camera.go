package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveCamera looks down -Z from Position with +Y up.
type PerspectiveCamera struct {
	FOV      float32 // vertical, degrees
	Aspect   float32
	Near     float32
	Far      float32
	Position mgl32.Vec3

	projection mgl32.Mat4
}

func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix must be called after changing FOV, Aspect, Near or Far.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

func (c *PerspectiveCamera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

func (c *PerspectiveCamera) ViewMatrix() mgl32.Mat4 {
	target := c.Position.Sub(mgl32.Vec3{0, 0, 1})
	return mgl32.LookAtV(c.Position, target, mgl32.Vec3{0, 1, 0})
}

func (c *PerspectiveCamera) ViewProjection() mgl32.Mat4 {
	return c.projection.Mul4(c.ViewMatrix())
}
