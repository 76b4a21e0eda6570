package label

import (
	"image"
	"image/color"
	"image/draw"
	"slices"

	"github.com/Carmen-Shannon/oxy-graph/common"
)

// LabelColor is the color of axis label text.
var LabelColor = color.RGBA{R: 40, G: 40, B: 40, A: 255}

// Layer draws additional content on top of the labels. Version changes whenever
// the layer's appearance changes so the overlay knows to redraw.
type Layer interface {
	Draw(dst *image.RGBA, text *Text)
	Version() uint64
}

// Overlay owns the screen-sized RGBA image composited over the graph.
// It only redraws when the viewport, labels or layer changed.
type Overlay struct {
	text *Text
	img  *image.RGBA

	labels       []Label
	layerVersion uint64
	drawn        bool
}

// NewOverlay creates an empty overlay drawing with text.
func NewOverlay(text *Text) *Overlay {
	return &Overlay{text: text}
}

// Image returns the current overlay image, or nil before the first Update.
func (o *Overlay) Image() *image.RGBA {
	return o.img
}

// Update redraws the overlay if anything changed.
//
// Parameters:
//   - size: viewport size in pixels
//   - labels: axis labels to draw
//   - layer: optional content drawn above the labels
//
// Returns:
//   - bool: true if the image was redrawn and must be uploaded
func (o *Overlay) Update(size common.Size, labels []Label, layer Layer) bool {
	if size.Empty() {
		return false
	}
	var version uint64
	if layer != nil {
		version = layer.Version()
	}
	resized := o.img == nil || o.img.Bounds().Dx() != int(size.Width) || o.img.Bounds().Dy() != int(size.Height)
	if o.drawn && !resized && version == o.layerVersion && slices.Equal(labels, o.labels) {
		return false
	}

	if resized {
		o.img = image.NewRGBA(image.Rect(0, 0, int(size.Width), int(size.Height)))
	} else {
		draw.Draw(o.img, o.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	}
	for _, l := range labels {
		o.drawLabel(l)
	}
	if layer != nil {
		layer.Draw(o.img, o.text)
	}

	o.labels = slices.Clone(labels)
	o.layerVersion = version
	o.drawn = true
	return true
}

// drawLabel keeps the text box fully inside the image.
func (o *Overlay) drawLabel(l Label) {
	b := o.img.Bounds()
	w := o.text.Measure(l.Text)
	x := common.Clamp(int(l.Anchor.X()), 0, max(b.Dx()-w, 0))
	y := common.Clamp(int(l.Anchor.Y()), 0, max(b.Dy()-o.text.LineHeight(), 0))
	o.text.Draw(o.img, image.Pt(x, y), l.Text, LabelColor)
}
