package scene

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a linear RGB triple with components in [0, 1].
type Color struct {
	R, G, B float32
}

var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// HexColor builds a color from a packed 0xRRGGBB value.
func HexColor(v uint32) Color {
	return RGB8(uint8(v>>16), uint8(v>>8), uint8(v))
}

func RGB8(r, g, b uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255}
}

// ParseColor accepts "#RRGGBB", "#RGB" or a CSS color name ("crimson").
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Color{}, fmt.Errorf("empty color")
	}
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		switch len(hex) {
		case 3:
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		case 6:
		default:
			return Color{}, fmt.Errorf("color %q: expected #RGB or #RRGGBB", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: %w", s, err)
		}
		return HexColor(uint32(v)), nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return RGB8(c.R, c.G, c.B), nil
	}
	return Color{}, fmt.Errorf("unknown color name %q", s)
}

func (c Color) Hex() string {
	r, g, b := c.bytes()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

func (c Color) RGBA() color.RGBA {
	r, g, b := c.bytes()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func (c Color) Scale(k float32) Color {
	return Color{c.R * k, c.G * k, c.B * k}
}

func (c Color) Add(o Color) Color {
	return Color{c.R + o.R, c.G + o.G, c.B + o.B}
}

func (c Color) Mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B}
}

func (c Color) Clamp() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

func (c Color) String() string {
	return c.Hex()
}

func (c Color) bytes() (uint8, uint8, uint8) {
	cl := c.Clamp()
	return uint8(cl.R*255 + 0.5), uint8(cl.G*255 + 0.5), uint8(cl.B*255 + 0.5)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
