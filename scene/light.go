package scene

import "github.com/go-gl/mathgl/mgl32"

type LightType uint32

const (
	LightAmbient LightType = iota
	LightDirectional
)

// Light is a scene-wide light source. A directional light shines from
// Position towards the origin.
type Light struct {
	Type      LightType
	Color     Color
	Intensity float32
	Position  mgl32.Vec3
}

func NewAmbientLight(c Color) Light {
	return Light{Type: LightAmbient, Color: c, Intensity: 1}
}

func NewDirectionalLight(c Color, intensity float32, position mgl32.Vec3) Light {
	return Light{Type: LightDirectional, Color: c, Intensity: intensity, Position: position}
}

// Direction is the unit vector pointing from the surface towards the light.
func (l Light) Direction() mgl32.Vec3 {
	if l.Position.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return l.Position.Normalize()
}
