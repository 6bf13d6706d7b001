package scene

// Slot owns the single top-level object node of a scene. Replace always
// detaches the previous occupant before attaching the new one, so a scene
// driven through a Slot never holds two objects at once.
type Slot struct {
	scene   *Scene
	current *Node
}

func NewSlot(s *Scene) *Slot {
	return &Slot{scene: s}
}

// Replace swaps the current node for n and returns the discarded node.
// A nil n just clears the slot.
func (s *Slot) Replace(n *Node) *Node {
	old := s.current
	if old != nil {
		s.scene.Remove(old)
	}
	s.current = n
	if n != nil {
		s.scene.Add(n)
	}
	return old
}

func (s *Slot) Current() *Node {
	return s.current
}
