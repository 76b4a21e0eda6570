package camera

import (
	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ViewSpaceScale is the calibration factor applied by ScreenToView. It was tuned against
// the default projection (fovy 45 degrees, znear 0.1) so that drag and zoom pans track the
// cursor. Cameras built with different projection parameters need a different value.
const ViewSpaceScale = 1.5

// CalculateScreenSpace maps normalized device coordinates to window pixels.
// NDC (-1, 1) is the top-left pixel corner and (1, -1) the bottom-right.
//
// Parameters:
//   - ndc: point in normalized device coordinates
//   - size: viewport size in pixels
//
// Returns:
//   - mgl32.Vec2: pixel position with origin top-left
func CalculateScreenSpace(ndc mgl32.Vec2, size common.Size) mgl32.Vec2 {
	w, h := float32(size.Width), float32(size.Height)
	return mgl32.Vec2{
		w * (ndc.X() + 1) / 2,
		h * (ndc.Y() - 1) / -2,
	}
}

// NormaliseScreenSpace maps window pixels to normalized device coordinates.
// It is the inverse of CalculateScreenSpace.
//
// Parameters:
//   - screen: pixel position with origin top-left
//   - size: viewport size in pixels
//
// Returns:
//   - mgl32.Vec2: point in normalized device coordinates
func NormaliseScreenSpace(screen mgl32.Vec2, size common.Size) mgl32.Vec2 {
	w, h := float32(size.Width), float32(size.Height)
	return mgl32.Vec2{
		(2/w)*screen.X() - 1,
		(-2/h)*screen.Y() + 1,
	}
}

// WorldToScreen projects a world point through viewProj and maps it to window pixels.
// Points on or behind the eye plane produce non-finite coordinates; callers filter them.
//
// Parameters:
//   - viewProj: combined (clip-corrected) view-projection matrix
//   - p: world-space point
//   - size: viewport size in pixels
//
// Returns:
//   - mgl32.Vec2: pixel position with origin top-left
func WorldToScreen(viewProj mgl32.Mat4, p mgl32.Vec3, size common.Size) mgl32.Vec2 {
	clip := viewProj.Mul4x1(p.Vec4(1))
	ndc := mgl32.Vec2{clip.X() / clip.W(), clip.Y() / clip.W()}
	return CalculateScreenSpace(ndc, size)
}

// ScreenToView maps a pixel position into the camera's view space using the inverse of the
// projection-only matrix. The result is not divided by w; it is scaled by ViewSpaceScale and
// is only meaningful as a difference between two points.
//
// Parameters:
//   - invProj: inverse of the clip-corrected projection matrix
//   - screen: pixel position with origin top-left
//   - size: viewport size in pixels
//
// Returns:
//   - mgl32.Vec2: view-space x and y
func ScreenToView(invProj mgl32.Mat4, screen mgl32.Vec2, size common.Size) mgl32.Vec2 {
	ndc := NormaliseScreenSpace(screen, size)
	v := invProj.Mul4x1(mgl32.Vec4{ndc.X(), ndc.Y(), 0, 1})
	return mgl32.Vec2{v.X() * ViewSpaceScale, v.Y() * ViewSpaceScale}
}
