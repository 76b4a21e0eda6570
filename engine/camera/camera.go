package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ErrSingularProjection is returned by NewCamera when the projection parameters
// produce a matrix that cannot be inverted.
var ErrSingularProjection = errors.New("camera projection matrix is singular")

// MaxAspectRatio is the widest aspect ratio Resize will apply. Wider windows keep the previous ratio.
const MaxAspectRatio = 3.0

// openGLToWGPU remaps clip-space depth from [-1, 1] to [0, 1]. Column-major.
var openGLToWGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

type cameraImpl struct {
	eye    mgl32.Vec3
	target mgl32.Vec3
	up     mgl32.Vec3

	fovy   float32
	aspect float32
	near   float32
	far    float32

	viewMatrix              mgl32.Mat4
	projectionMatrix        mgl32.Mat4
	viewProjectionMatrix    mgl32.Mat4
	inverseProjectionMatrix mgl32.Mat4
}

// Camera is a look-at/perspective camera used as a 2D pan/zoom viewport.
// The eye's z component doubles as the zoom level: the graph plane lies at z = 0
// and the visible extent grows linearly with eye.z.
//
// A Camera is owned by the frame loop and is not safe for concurrent use.
type Camera interface {
	// Eye returns the camera position.
	//
	// Returns:
	//   - mgl32.Vec3: world-space eye position
	Eye() mgl32.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - mgl32.Vec3: world-space target position
	Target() mgl32.Vec3

	// Up returns the camera's up vector.
	Up() mgl32.Vec3

	// Fovy returns the vertical field of view in radians.
	Fovy() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// SetEye moves the eye and recomputes matrices.
	//
	// Parameters:
	//   - eye: new world-space eye position
	SetEye(eye mgl32.Vec3)

	// SetTarget moves the look-at point and recomputes matrices.
	//
	// Parameters:
	//   - target: new world-space target position
	SetTarget(target mgl32.Vec3)

	// Translate moves eye and target together by delta and recomputes matrices.
	//
	// Parameters:
	//   - delta: world-space translation
	Translate(delta mgl32.Vec3)

	// SetAspect sets the aspect ratio and recomputes matrices. Non-positive or non-finite values are ignored.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// Resize applies the aspect ratio of a new viewport size. Empty sizes and ratios
	// above MaxAspectRatio leave the aspect unchanged.
	//
	// Parameters:
	//   - size: the new viewport size in pixels
	Resize(size common.Size)

	// ViewMatrix returns the current look-at view matrix (column-major).
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the clip-corrected projection matrix (column-major).
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns correction * projection * view (column-major).
	// This is the matrix uploaded to the GPU each frame.
	ViewProjectionMatrix() mgl32.Mat4

	// InverseProjectionMatrix returns the inverse of the clip-corrected projection matrix.
	InverseProjectionMatrix() mgl32.Mat4

	// WorldToScreen projects a world point to window pixels.
	//
	// Parameters:
	//   - p: world-space point
	//   - size: viewport size in pixels
	//
	// Returns:
	//   - mgl32.Vec2: pixel position, non-finite for points on the eye plane
	WorldToScreen(p mgl32.Vec3, size common.Size) mgl32.Vec2

	// ScreenToView maps window pixels into scaled view space.
	//
	// Parameters:
	//   - screen: pixel position
	//   - size: viewport size in pixels
	//
	// Returns:
	//   - mgl32.Vec2: view-space x and y
	ScreenToView(screen mgl32.Vec2, size common.Size) mgl32.Vec2

	// AdjustPanWithCursorPosition pans eye and target by the view-space distance between
	// cursor and origin, scaled by the zoom level and modifier. When the modifier is large
	// relative to that distance it is snapped to its sign so small pans are not lost.
	//
	// Parameters:
	//   - cursor: cursor position in pixels
	//   - origin: reference position in pixels
	//   - modifier: signed scale applied to the pan
	//   - size: viewport size in pixels
	AdjustPanWithCursorPosition(cursor, origin mgl32.Vec2, modifier float32, size common.Size)

	// Uniform returns the GPU representation of the camera for upload.
	Uniform() GPUCameraUniform
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera at eye (0, 0, 4) looking at the origin with +Y up,
// a 45 degree vertical field of view and clip planes at 0.1 and 100.
// The projection is validated once here; a singular projection is a configuration error.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
//   - error: ErrSingularProjection if the projection cannot be inverted
func NewCamera(options ...CameraBuilderOption) (Camera, error) {
	c := &cameraImpl{
		eye:    mgl32.Vec3{0, 0, 4},
		target: mgl32.Vec3{0, 0, 0},
		up:     mgl32.Vec3{0, 1, 0},
		fovy:   mgl32.DegToRad(45),
		aspect: 1.0,
		near:   0.1,
		far:    100.0,
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()

	det := c.projectionMatrix.Det()
	if det == 0 || !common.IsFinite32(det) {
		return nil, fmt.Errorf("fovy=%v aspect=%v near=%v far=%v: %w", c.fovy, c.aspect, c.near, c.far, ErrSingularProjection)
	}
	return c, nil
}

func (c *cameraImpl) Eye() mgl32.Vec3 {
	return c.eye
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	return c.target
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	return c.up
}

func (c *cameraImpl) Fovy() float32 {
	return c.fovy
}

func (c *cameraImpl) Aspect() float32 {
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) SetEye(eye mgl32.Vec3) {
	c.eye = eye
	c.updateMatrices()
}

func (c *cameraImpl) SetTarget(target mgl32.Vec3) {
	c.target = target
	c.updateMatrices()
}

func (c *cameraImpl) Translate(delta mgl32.Vec3) {
	c.eye = c.eye.Add(delta)
	c.target = c.target.Add(delta)
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 || !common.IsFinite32(aspect) {
		return
	}
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) Resize(size common.Size) {
	if size.Empty() {
		return
	}
	aspect := size.Aspect()
	if aspect > MaxAspectRatio {
		return
	}
	c.SetAspect(aspect)
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	return c.viewProjectionMatrix
}

func (c *cameraImpl) InverseProjectionMatrix() mgl32.Mat4 {
	return c.inverseProjectionMatrix
}

func (c *cameraImpl) WorldToScreen(p mgl32.Vec3, size common.Size) mgl32.Vec2 {
	return WorldToScreen(c.viewProjectionMatrix, p, size)
}

func (c *cameraImpl) ScreenToView(screen mgl32.Vec2, size common.Size) mgl32.Vec2 {
	return ScreenToView(c.inverseProjectionMatrix, screen, size)
}

func (c *cameraImpl) AdjustPanWithCursorPosition(cursor, origin mgl32.Vec2, modifier float32, size common.Size) {
	d := c.ScreenToView(cursor, size).Sub(c.ScreenToView(origin, size))
	zoom := c.eye.Z()
	change := mgl32.Vec3{d.X() * zoom, d.Y() * zoom, 0}

	// Snap tiny fractional pans to a whole step. Not exact convergence.
	dx, dy := math.Abs(float64(d.X())), math.Abs(float64(d.Y()))
	if math.Abs(float64(modifier))/4 >= math.Sqrt(dx*dx*dy*dy) {
		modifier = common.Signum(modifier)
	}

	c.Translate(change.Mul(modifier))
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	return GPUCameraUniform{ViewProj: c.viewProjectionMatrix}
}

// updateMatrices recomputes view, projection, view-projection and inverse projection.
func (c *cameraImpl) updateMatrices() {
	c.viewMatrix = mgl32.LookAtV(c.eye, c.target, c.up)
	c.projectionMatrix = openGLToWGPU.Mul4(mgl32.Perspective(c.fovy, c.aspect, c.near, c.far))
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
	c.inverseProjectionMatrix = c.projectionMatrix.Inv()
}
