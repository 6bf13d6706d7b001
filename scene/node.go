package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

type NodeKind int

const (
	KindGroup NodeKind = iota
	KindMesh
	KindLine
)

func (k NodeKind) String() string {
	switch k {
	case KindGroup:
		return "group"
	case KindMesh:
		return "mesh"
	case KindLine:
		return "line"
	}
	return "unknown"
}

// Node is one element of the retained scene graph. Groups only carry
// children; meshes and lines carry geometry and at least one material.
type Node struct {
	ID   uuid.UUID
	Name string
	Kind NodeKind

	Position mgl32.Vec3
	Rotation mgl32.Vec3 // Euler angles in radians, applied X then Y then Z
	Scale    mgl32.Vec3

	Geometry  *Geometry
	Materials []*Material

	parent   *Node
	children []*Node
}

func newNode(name string, kind NodeKind) *Node {
	return &Node{
		ID:    uuid.New(),
		Name:  name,
		Kind:  kind,
		Scale: mgl32.Vec3{1, 1, 1},
	}
}

func NewGroup(name string) *Node {
	return newNode(name, KindGroup)
}

func NewMesh(name string, geometry *Geometry, materials ...*Material) *Node {
	n := newNode(name, KindMesh)
	n.Geometry = geometry
	n.Materials = materials
	return n
}

func NewLine(name string, geometry *Geometry, material *Material) *Node {
	n := newNode(name, KindLine)
	n.Geometry = geometry
	n.Materials = []*Material{material}
	return n
}

// Add attaches children in order, detaching each from its previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c == nil || c == n {
			continue
		}
		c.RemoveFromParent()
		c.parent = n
		n.children = append(n.children, c)
	}
}

// Remove detaches child and reports whether it was attached to n.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}

func (n *Node) RemoveFromParent() {
	if n.parent != nil {
		n.parent.Remove(n)
	}
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the attached children. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Traverse visits n and all descendants depth-first, parents before children.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// Material returns the first material, or nil for groups.
func (n *Node) Material() *Material {
	if len(n.Materials) == 0 {
		return nil
	}
	return n.Materials[0]
}

// MaterialAt returns the material for a geometry group, falling back to the
// first material when the node carries fewer materials than groups.
func (n *Node) MaterialAt(i int) *Material {
	if i >= 0 && i < len(n.Materials) {
		return n.Materials[i]
	}
	return n.Material()
}

func (n *Node) Rotate(dx, dy, dz float32) {
	n.Rotation = n.Rotation.Add(mgl32.Vec3{dx, dy, dz})
}

// LocalMatrix is T * Rx * Ry * Rz * S.
func (n *Node) LocalMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := mgl32.HomogRotate3DX(n.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(n.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(n.Rotation.Z()))
	s := mgl32.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// WorldMatrix composes the local matrices from the root down to n.
func (n *Node) WorldMatrix() mgl32.Mat4 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		m = p.LocalMatrix().Mul4(m)
	}
	return m
}

func (n *Node) String() string {
	return fmt.Sprintf("%s %q (%s)", n.Kind, n.Name, n.ID.String()[:8])
}
