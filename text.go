package dimviz

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextRenderer draws single-line labels with the Go Regular face.
type TextRenderer struct {
	Face font.Face
}

func NewTextRenderer(size float64) (*TextRenderer, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create face: %w", err)
	}
	return &TextRenderer{Face: face}, nil
}

// MeasureText returns the advance width and line height in pixels.
func (tr *TextRenderer) MeasureText(text string) (int, int) {
	if tr == nil {
		return 0, 0
	}
	return font.MeasureString(tr.Face, text).Ceil(), tr.Face.Metrics().Height.Ceil()
}

// DrawText draws text with its top-left corner at (x, y).
func (tr *TextRenderer) DrawText(dst draw.Image, text string, x, y int, c color.Color) {
	if tr == nil {
		return
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: tr.Face,
		Dot:  fixed.P(x, y+tr.Face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// DrawTextIn centers text vertically in r, starting pad pixels from its left.
func (tr *TextRenderer) DrawTextIn(dst draw.Image, text string, r image.Rectangle, pad int, c color.Color) {
	_, h := tr.MeasureText(text)
	tr.DrawText(dst, text, r.Min.X+pad, r.Min.Y+(r.Dy()-h)/2, c)
}

// DrawTextCentered centers text in r.
func (tr *TextRenderer) DrawTextCentered(dst draw.Image, text string, r image.Rectangle, c color.Color) {
	w, _ := tr.MeasureText(text)
	tr.DrawTextIn(dst, text, r, (r.Dx()-w)/2, c)
}
