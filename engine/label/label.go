// Package label lays out axis labels in screen space and rasterizes them, together with
// any other 2D overlay content, into an RGBA image composited over the graph.
package label

import (
	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/camera"
	"github.com/Carmen-Shannon/oxy-graph/engine/grid"
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Padding is the pixel gap between an axis and its labels.
const Padding = 4

// Label is a piece of text anchored at a pixel position (top-left of the text box).
type Label struct {
	Text   string
	Anchor mgl32.Vec2
}

var printer = message.NewPrinter(language.English)

// FormatValue formats a grid coordinate with digit grouping and at most three decimals.
func FormatValue(v float32) string {
	return printer.Sprint(number.Decimal(float64(v), number.MaxFractionDigits(3)))
}

// Layout places a label next to each major grid line. X-axis labels follow the x axis and
// stick to the top or bottom edge when it is off screen; y-axis labels do the same horizontally.
// Lines whose projection is non-finite or outside the viewport get no label.
//
// Parameters:
//   - cam: the camera used to project grid positions
//   - size: viewport size in pixels
//
// Returns:
//   - []Label: labels in pixel space
func Layout(cam camera.Camera, size common.Size) []Label {
	if size.Empty() {
		return nil
	}
	w, h := float32(size.Width), float32(size.Height)
	eye := cam.Eye()
	var labels []Label

	for _, l := range grid.Lines(eye, grid.Vertical) {
		if !l.Major() {
			continue
		}
		p := cam.WorldToScreen(mgl32.Vec3{l.Value, 0, 0}, size)
		if !visible(p.X(), w) || !common.IsFinite32(p.Y()) {
			continue
		}
		y := common.Clamp(p.Y()+Padding, 0, h-Padding)
		labels = append(labels, Label{Text: FormatValue(l.Value), Anchor: mgl32.Vec2{p.X() + Padding, y}})
	}
	for _, l := range grid.Lines(eye, grid.Horizontal) {
		if !l.Major() {
			continue
		}
		p := cam.WorldToScreen(mgl32.Vec3{0, l.Value, 0}, size)
		if !visible(p.Y(), h) || !common.IsFinite32(p.X()) {
			continue
		}
		x := common.Clamp(p.X()+Padding, 0, w-Padding)
		labels = append(labels, Label{Text: FormatValue(l.Value), Anchor: mgl32.Vec2{x, p.Y() + Padding}})
	}
	return labels
}

func visible(v, extent float32) bool {
	return common.IsFinite32(v) && v >= 0 && v <= extent
}
