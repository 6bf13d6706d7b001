package scene

type MaterialKind int

const (
	// LineBasic is an unlit material for line primitives.
	LineBasic MaterialKind = iota
	// MeshBasic is an unlit, flat-filled surface material.
	MeshBasic
	// MeshPhong is lit by the scene lights with a specular highlight.
	MeshPhong
)

func (k MaterialKind) String() string {
	switch k {
	case LineBasic:
		return "line-basic"
	case MeshBasic:
		return "mesh-basic"
	case MeshPhong:
		return "mesh-phong"
	}
	return "unknown"
}

type Side int

const (
	FrontSide Side = iota
	DoubleSide
)

// Material describes how a mesh or line is shaded.
// Color is the only field the update driver mutates after construction.
type Material struct {
	Kind        MaterialKind
	Color       Color
	Opacity     float32
	Transparent bool
	Wireframe   bool
	Side        Side
	Shininess   float32
	FlatShading bool
}

func NewLineBasicMaterial(c Color) *Material {
	return &Material{Kind: LineBasic, Color: c, Opacity: 1}
}

func NewMeshBasicMaterial(c Color) *Material {
	return &Material{Kind: MeshBasic, Color: c, Opacity: 1, FlatShading: true}
}

// NewPhongMaterial returns a lit material with the default shininess of 30.
func NewPhongMaterial(c Color) *Material {
	return &Material{Kind: MeshPhong, Color: c, Opacity: 1, Shininess: 30}
}

func (m *Material) SetColor(c Color) {
	m.Color = c
}

// Alpha is the effective opacity; opacity only applies to transparent materials.
func (m *Material) Alpha() float32 {
	if !m.Transparent {
		return 1
	}
	return clamp01(m.Opacity)
}
