package scene

// Scene is the root of one retained graph plus the lights that shade it.
// Lights are kept apart from the object children.
type Scene struct {
	Background Color
	Lights     []Light

	root *Node
}

func NewScene() *Scene {
	return &Scene{
		Background: Black,
		root:       NewGroup("scene"),
	}
}

func (s *Scene) Root() *Node {
	return s.root
}

func (s *Scene) Add(nodes ...*Node) {
	s.root.Add(nodes...)
}

func (s *Scene) Remove(n *Node) bool {
	return s.root.Remove(n)
}

func (s *Scene) Children() []*Node {
	return s.root.Children()
}

func (s *Scene) AddLight(l Light) {
	s.Lights = append(s.Lights, l)
}

// Traverse visits every object node below the root.
func (s *Scene) Traverse(fn func(*Node)) {
	for _, c := range s.root.Children() {
		c.Traverse(fn)
	}
}
