// Package grid generates the instanced background grid lines. Line spacing snaps to
// powers of two of the zoom level so the grid density stays roughly constant.
package grid

import (
	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// BaseSpacing is the number of grid lines per power-of-two zoom unit.
	BaseSpacing = 40
	// HalfCount is the number of lines generated on each side of the eye.
	HalfCount = 80
	// MajorEvery is the interval between emphasized (labelled) lines.
	MajorEvery = 5

	AxisAlpha  float32 = 1.0
	MajorAlpha float32 = 0.7
	MinorAlpha float32 = 0.4
)

// Orientation selects vertical (constant x) or horizontal (constant y) lines.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

// Line is one grid line.
type Line struct {
	// Index is the line's position in units of 1/scale; 0 is the axis.
	Index int
	// Value is the world coordinate the line sits on (x for vertical, y for horizontal).
	Value float32
	// Alpha is the emphasis of the line.
	Alpha float32
}

// Major reports whether the line is an emphasized non-axis line.
func (l Line) Major() bool {
	return l.Alpha == MajorAlpha
}

// Scale returns the number of grid lines per world unit at a zoom level.
// The second result is false when the zoom level has no power-of-two bucket.
//
// Parameters:
//   - eyeZ: the zoom level
//
// Returns:
//   - float32: lines per world unit
//   - bool: false if undefined
func Scale(eyeZ float32) (float32, bool) {
	p, ok := common.NextPowerOfTwoFloat(eyeZ)
	if !ok {
		return 0, false
	}
	return BaseSpacing / float32(p), true
}

// Alpha returns the emphasis for the line at index i.
func Alpha(i int) float32 {
	switch {
	case i == 0:
		return AxisAlpha
	case i%MajorEvery == 0:
		return MajorAlpha
	default:
		return MinorAlpha
	}
}

// Lines returns the grid lines around eye in the given orientation.
//
// Parameters:
//   - eye: the camera eye position
//   - o: the line orientation
//
// Returns:
//   - []Line: the lines, or nil if the zoom level is out of range
func Lines(eye mgl32.Vec3, o Orientation) []Line {
	sf, ok := Scale(eye.Z())
	if !ok {
		return nil
	}
	center := eye.X()
	if o == Horizontal {
		center = eye.Y()
	}
	offset := int(center * sf)

	lines := make([]Line, 0, 2*HalfCount)
	for i := -HalfCount + offset; i < HalfCount+offset; i++ {
		lines = append(lines, Line{Index: i, Value: float32(i) / sf, Alpha: Alpha(i)})
	}
	return lines
}

// Instances converts the grid lines around eye into GPU instances.
//
// Parameters:
//   - eye: the camera eye position
//   - o: the line orientation
//   - color: base line color; alpha is replaced per line
//
// Returns:
//   - []common.Instance: one instance per line
func Instances(eye mgl32.Vec3, o Orientation, color common.Color) []common.Instance {
	lines := Lines(eye, o)
	instances := make([]common.Instance, len(lines))
	for i, l := range lines {
		offset := [4]float32{l.Value, eye.Y(), 0, 0}
		if o == Horizontal {
			offset = [4]float32{eye.X(), l.Value, 0, 0}
		}
		instances[i] = common.Instance{Offset: offset, Color: color.WithAlpha(l.Alpha)}
	}
	return instances
}

// LineTemplate returns the two endpoints of the line mesh every instance translates.
// It spans twice the zoom level on each side so it always crosses the viewport.
//
// Parameters:
//   - eyeZ: the zoom level
//   - o: the line orientation
//
// Returns:
//   - []common.Vertex: the two endpoints
func LineTemplate(eyeZ float32, o Orientation) []common.Vertex {
	h := 2 * eyeZ
	if o == Horizontal {
		return []common.Vertex{{Position: [3]float32{-h, 0, 0}}, {Position: [3]float32{h, 0, 0}}}
	}
	return []common.Vertex{{Position: [3]float32{0, -h, 0}}, {Position: [3]float32{0, h, 0}}}
}
