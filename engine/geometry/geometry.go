// Package geometry turns polynomials and markers into triangle meshes for the graph.
// Everything here is pure: meshes are rebuilt from scratch every frame.
package geometry

import (
	"math"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// SamplesPerUnit is the number of sample slots per world unit along x.
	SamplesPerUnit = 20
	// SegmentTarget is the approximate number of ribbon segments per visible range.
	// The sample stride grows with the range so the triangle count stays bounded.
	SegmentTarget = 40
	// RangeScale is the visible half-range on x per unit of zoom (eye.z).
	RangeScale = 1.5
	// DefaultWidthScale is the ribbon half-width per unit of zoom, giving a constant apparent width.
	DefaultWidthScale = 0.004
)

// Mesh is an indexed triangle list.
type Mesh struct {
	Vertices []common.Vertex
	Indices  []uint32
}

// Empty reports whether the mesh has nothing to draw.
func (m Mesh) Empty() bool {
	return len(m.Indices) == 0
}

// Evaluate returns the sum of coefficients[i] * x^i using Horner's rule.
// An empty coefficient list evaluates to 0.
//
// Parameters:
//   - x: the point to evaluate at
//   - coefficients: weights in ascending powers of x
//
// Returns:
//   - float64: the polynomial value
func Evaluate(x float64, coefficients []float64) float64 {
	var y float64
	for i := len(coefficients) - 1; i >= 0; i-- {
		y = y*x + coefficients[i]
	}
	return y
}

// SquarePoints returns the two ribbon vertices offset perpendicular to the segment p1-p2
// by width. They are centered on p1 when initial is set, otherwise on p2.
//
// Parameters:
//   - p1: segment start
//   - p2: segment end
//   - width: half-width of the ribbon
//   - initial: true to center on p1 (the leading cap)
//
// Returns:
//   - [2]common.Vertex: the left and right vertices
func SquarePoints(p1, p2 [2]float64, width float64, initial bool) [2]common.Vertex {
	theta := math.Atan2(p1[0]-p2[0], p1[1]-p2[1])
	dx := math.Cos(theta) * width
	dy := math.Sin(theta) * width

	p := p2
	if initial {
		p = p1
	}
	return [2]common.Vertex{
		{Position: [3]float32{float32(p[0] + dx), float32(p[1] - dy), 0}},
		{Position: [3]float32{float32(p[0] - dx), float32(p[1] + dy), 0}},
	}
}

// SampleStride returns the stride, in sample slots, used to cover [xMin, xMax]
// with roughly SegmentTarget segments. It is never less than 1.
func SampleStride(xMin, xMax int32) int64 {
	span := abs64(int64(xMax)) + abs64(int64(xMin))
	stride := (span + SegmentTarget - 1) / SegmentTarget
	return max(stride, 1)
}

// Tessellate builds a constant-width ribbon following the polynomial over [xMin, xMax].
// The mesh has a leading cap pair followed by one vertex pair per sample, each pair joined
// to the previous by two triangles. An empty range produces an empty mesh.
//
// Parameters:
//   - coefficients: weights in ascending powers of x
//   - xMin, xMax: the integer x-range to cover
//   - width: ribbon half-width in world units
//
// Returns:
//   - Mesh: the ribbon mesh
func Tessellate(coefficients []float64, xMin, xMax int32, width float32) Mesh {
	start := int64(xMin) * SamplesPerUnit
	end := int64(xMax) * SamplesPerUnit
	if end <= start {
		return Mesh{}
	}
	stride := SampleStride(xMin, xMax)
	samples := (end - start + stride - 1) / stride

	mesh := Mesh{
		Vertices: make([]common.Vertex, 0, 2+2*samples),
		Indices:  make([]uint32, 0, 6*samples),
	}
	w := float64(width)
	var i int64
	for n := start; n < end; n += stride {
		x1 := float64(n) / SamplesPerUnit
		x2 := float64(n+1) / SamplesPerUnit
		p1 := [2]float64{x1, Evaluate(x1, coefficients)}
		p2 := [2]float64{x2, Evaluate(x2, coefficients)}

		if i == 0 {
			lead := SquarePoints(p1, p2, w, true)
			mesh.Vertices = append(mesh.Vertices, lead[0], lead[1])
		}
		next := SquarePoints(p1, p2, w, false)
		mesh.Vertices = append(mesh.Vertices, next[0], next[1])

		o := uint32(i * 2)
		mesh.Indices = append(mesh.Indices, o, o+1, o+3, o+2, o, o+3)
		i++
	}
	return mesh
}

// VisibleRange returns the integer x-range visible from eye, widened outward to whole units.
//
// Parameters:
//   - eye: the camera eye position; z is the zoom level
//
// Returns:
//   - xMin, xMax: the range to tessellate
func VisibleRange(eye mgl32.Vec3) (xMin, xMax int32) {
	r := float64(eye.Z()) * RangeScale
	x := float64(eye.X())
	return clampInt32(math.Floor(x - r)), clampInt32(math.Ceil(x + r))
}

// LineWidth returns the ribbon half-width for a zoom level so the curve keeps a constant apparent width.
func LineWidth(eyeZ float32) float32 {
	return DefaultWidthScale * eyeZ
}

// Circle builds a filled circle centered on the origin as a triangle fan.
// Vertex 0 is the center, followed by segments rim vertices.
//
// Parameters:
//   - radius: circle radius
//   - segments: number of rim vertices (at least 3)
//
// Returns:
//   - Mesh: the circle mesh
func Circle(radius float32, segments int) Mesh {
	segments = max(segments, 3)
	mesh := Mesh{
		Vertices: make([]common.Vertex, 0, segments+1),
		Indices:  make([]uint32, 0, 3*segments),
	}
	mesh.Vertices = append(mesh.Vertices, common.Vertex{})
	r := float64(radius)
	for s := range segments {
		a := 2 * math.Pi * float64(s) / float64(segments)
		mesh.Vertices = append(mesh.Vertices, common.Vertex{
			Position: [3]float32{float32(r * math.Cos(a)), float32(r * math.Sin(a)), 0},
		})
	}
	n := uint32(segments)
	mesh.Indices = append(mesh.Indices, 0, n, 1)
	for i := uint32(1); i < n; i++ {
		mesh.Indices = append(mesh.Indices, 0, i, i+1)
	}
	return mesh
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func clampInt32(v float64) int32 {
	if math.IsNaN(v) {
		return 0
	}
	return int32(common.Clamp(v, math.MinInt32, math.MaxInt32))
}
