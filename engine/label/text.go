package label

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Text draws single lines of Go Regular text onto RGBA images.
type Text struct {
	face   font.Face
	ascent int
	height int
}

// NewText loads the Go Regular font at the given pixel size.
//
// Parameters:
//   - size: font size in pixels
//
// Returns:
//   - *Text: the text drawer
//   - error: error if the embedded font cannot be loaded
func NewText(size float64) (*Text, error) {
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
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}
	m := face.Metrics()
	return &Text{face: face, ascent: m.Ascent.Ceil(), height: m.Height.Ceil()}, nil
}

// LineHeight returns the height of one line in pixels.
func (t *Text) LineHeight() int {
	return t.height
}

// Measure returns the advance width of s in pixels.
func (t *Text) Measure(s string) int {
	return font.MeasureString(t.face, s).Ceil()
}

// Draw renders s with its top-left corner at pos.
//
// Parameters:
//   - dst: destination image
//   - pos: top-left corner of the line box
//   - s: the text
//   - c: text color
func (t *Text) Draw(dst draw.Image, pos image.Point, s string, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: t.face,
		Dot:  fixed.P(pos.X, pos.Y+t.ascent),
	}
	d.DrawString(s)
}

// Close releases the font face.
func (t *Text) Close() error {
	return t.face.Close()
}
