package geometry

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Curve is a named polynomial drawn as a ribbon.
type Curve struct {
	// Label identifies the curve to the editor and scene.
	Label uint32
	// Color is the ribbon color.
	Color common.Color
	// WidthScale is the half-width per unit of zoom.
	WidthScale float32

	coefficients []float64
}

// NewCurve creates a curve with the default width scale.
//
// Parameters:
//   - label: curve identifier
//   - coefficients: weights in ascending powers of x
//   - color: ribbon color
//
// Returns:
//   - *Curve: the new curve
func NewCurve(label uint32, coefficients []float64, color common.Color) *Curve {
	return &Curve{
		Label:        label,
		Color:        color,
		WidthScale:   DefaultWidthScale,
		coefficients: slices.Clone(coefficients),
	}
}

// Coefficients returns a copy of the coefficient list.
func (c *Curve) Coefficients() []float64 {
	return slices.Clone(c.coefficients)
}

// Empty reports whether the curve has no coefficients yet. Empty curves are not drawn.
func (c *Curve) Empty() bool {
	return len(c.coefficients) == 0
}

// SetCoefficients replaces the coefficient list. It takes effect on the next Mesh call.
func (c *Curve) SetCoefficients(coefficients []float64) {
	c.coefficients = slices.Clone(coefficients)
}

// Mesh tessellates the curve over the range visible from eye.
//
// Parameters:
//   - eye: the camera eye position
//
// Returns:
//   - Mesh: a freshly built ribbon mesh
func (c *Curve) Mesh(eye mgl32.Vec3) Mesh {
	xMin, xMax := VisibleRange(eye)
	return Tessellate(c.coefficients, xMin, xMax, c.WidthScale*eye.Z())
}
