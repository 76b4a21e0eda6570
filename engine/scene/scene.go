// Package scene is the graph: it owns the camera, its controller, the curves, the point
// markers and the editor overlay, and turns them into a GPU-free Frame once per tick.
package scene

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/camera"
	"github.com/Carmen-Shannon/oxy-graph/engine/equation"
	"github.com/Carmen-Shannon/oxy-graph/engine/geometry"
	"github.com/Carmen-Shannon/oxy-graph/engine/grid"
	"github.com/Carmen-Shannon/oxy-graph/engine/gui"
	"github.com/Carmen-Shannon/oxy-graph/engine/input"
	"github.com/Carmen-Shannon/oxy-graph/engine/label"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrUnknownCurve is returned when a label does not name a curve in the scene.
	ErrUnknownCurve = errors.New("unknown curve")
	// ErrDuplicateCurve is returned when adding a curve under a label already in use.
	ErrDuplicateCurve = errors.New("curve label already in use")
)

const (
	// PointRadiusScale is the marker radius per unit of zoom.
	PointRadiusScale = 0.005
	// PointSegments is the number of rim vertices of a point marker.
	PointSegments = 32
	// LabelFontSize is the point size of axis labels and editor text.
	LabelFontSize = 13
)

// Palette is the sequence of colors assigned to new curves.
var Palette = []common.Color{
	common.ColorRed,
	common.ColorBlue,
	common.ColorGreen,
	{0.8, 0.45, 0.05, 1},
	{0.5, 0.2, 0.7, 1},
}

type scene struct {
	cam        camera.Camera
	controller camera.CameraController
	editor     gui.Editor

	text    *label.Text
	overlay *label.Overlay

	curves    []*geometry.Curve
	nextLabel uint32
	points    []mgl32.Vec2

	size       common.Size
	clearColor common.Color
	gridColor  common.Color
	pointColor common.Color

	frame *Frame

	// collected by builder options, applied once the components exist
	pendingEquations []string
	pendingPoints    []mgl32.Vec2
}

// Scene is the graph scene. It is driven from a single thread: events go in through
// ProcessEvent, Update advances the camera and rebuilds geometry, and Frame hands the
// result to the renderer.
type Scene interface {
	// ProcessEvent handles resize events and forwards everything else to the editor and then the
	// camera controller, stopping at the first one that consumes it.
	input.Handler

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Controller returns the controller that moves the camera.
	Controller() camera.CameraController

	// Editor returns the equation editor overlay.
	Editor() gui.Editor

	// Size returns the viewport size the scene was last updated for.
	Size() common.Size

	// Update applies pending input to the camera and rebuilds the frame for the given viewport.
	// A zero-sized viewport (minimized window) leaves the previous frame in place.
	//
	// Parameters:
	//   - size: the viewport size in pixels
	Update(size common.Size)

	// Frame returns the frame built by the most recent Update, or nil before the first one.
	Frame() *Frame

	// AddCurve adds a curve and a matching editor box.
	//
	// Parameters:
	//   - label: the curve identifier, must be unused
	//   - coefficients: weights in ascending powers of x
	//   - color: the ribbon color
	//
	// Returns:
	//   - error: ErrDuplicateCurve if the label is taken
	AddCurve(label uint32, coefficients []float64, color common.Color) error

	// AddEquation parses text and adds it as a new curve with the next free label and palette color.
	//
	// Parameters:
	//   - text: the equation, for example "y = x^2 - 1"
	//
	// Returns:
	//   - uint32: the new curve's label
	//   - error: a parse error from the equation package
	AddEquation(text string) (uint32, error)

	// NewCurve adds an empty curve with the next free label and palette color.
	// It is not drawn until it has coefficients.
	//
	// Returns:
	//   - uint32: the new curve's label
	NewCurve() uint32

	// SetCoefficients replaces the coefficients of a curve. The ribbon is rebuilt on the next Update.
	//
	// Parameters:
	//   - label: the curve identifier
	//   - coefficients: weights in ascending powers of x
	//
	// Returns:
	//   - error: ErrUnknownCurve if no curve has the label
	SetCoefficients(label uint32, coefficients []float64) error

	// SetEquation parses text and applies the result with SetCoefficients.
	// On a parse error the curve keeps its previous coefficients.
	//
	// Parameters:
	//   - label: the curve identifier
	//   - text: the equation text
	//
	// Returns:
	//   - error: a parse error or ErrUnknownCurve
	SetEquation(label uint32, text string) error

	// RemoveCurve removes a curve and its editor box.
	//
	// Parameters:
	//   - label: the curve identifier
	//
	// Returns:
	//   - error: ErrUnknownCurve if no curve has the label
	RemoveCurve(label uint32) error

	// Curve looks up a curve by label.
	Curve(label uint32) (*geometry.Curve, bool)

	// Curves returns the curves in insertion order.
	Curves() []*geometry.Curve

	// AddPoint adds a point marker at world position (x, y).
	AddPoint(x, y float32)

	// Points returns a copy of the point marker positions.
	Points() []mgl32.Vec2

	// Close releases the font face used for labels.
	Close() error
}

var _ Scene = &scene{}

// NewScene creates a scene with a default camera and controller unless options supply them.
//
// Parameters:
//   - options: functional options to configure the scene
//
// Returns:
//   - Scene: the new scene
//   - error: ErrSingularProjection from the default camera, a font error, or a parse error from WithEquation
func NewScene(options ...SceneBuilderOption) (Scene, error) {
	s := &scene{
		nextLabel:  1,
		clearColor: common.ColorWhite,
		gridColor:  common.ColorBlack,
		pointColor: common.ColorBlack,
	}
	for _, option := range options {
		option(s)
	}

	if s.cam == nil {
		cam, err := camera.NewCamera()
		if err != nil {
			return nil, fmt.Errorf("failed to create camera: %w", err)
		}
		s.cam = cam
	}
	if s.controller == nil {
		s.controller = camera.NewCameraController()
	}
	s.editor = gui.NewEditor(
		gui.WithCommitHandler(s.SetEquation),
		gui.WithAddHandler(func() (uint32, error) {
			return s.NewCurve(), nil
		}),
	)

	text, err := label.NewText(LabelFontSize)
	if err != nil {
		return nil, fmt.Errorf("failed to load label font: %w", err)
	}
	s.text = text
	s.overlay = label.NewOverlay(text)

	if !s.size.Empty() {
		s.cam.Resize(s.size)
	}
	for _, eq := range s.pendingEquations {
		if _, err := s.AddEquation(eq); err != nil {
			return nil, err
		}
	}
	s.points = append(s.points, s.pendingPoints...)
	s.pendingEquations, s.pendingPoints = nil, nil

	return s, nil
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Controller() camera.CameraController {
	return s.controller
}

func (s *scene) Editor() gui.Editor {
	return s.editor
}

func (s *scene) Size() common.Size {
	return s.size
}

func (s *scene) Frame() *Frame {
	return s.frame
}

func (s *scene) ProcessEvent(e input.Event) bool {
	if ev, ok := e.(input.ResizedEvent); ok {
		s.resize(common.Size{Width: ev.Width, Height: ev.Height})
		return false
	}
	return input.Dispatch(e, s.editor, s.controller)
}

func (s *scene) resize(size common.Size) {
	if size == s.size {
		return
	}
	s.size = size
	s.cam.Resize(size)
	common.Logger().Info("viewport resized", "width", size.Width, "height", size.Height, "aspect", s.cam.Aspect())
}

func (s *scene) Update(size common.Size) {
	s.resize(size)
	if s.size.Empty() {
		return
	}
	s.controller.UpdateCamera(s.cam, s.size)
	eye := s.cam.Eye()

	batches := make([]Batch, 0, 3+len(s.curves))
	batches = append(batches,
		gridBatch(keyGridVertical, eye, grid.Vertical, s.gridColor),
		gridBatch(keyGridHorizontal, eye, grid.Horizontal, s.gridColor),
	)
	for _, c := range s.curves {
		if c.Empty() {
			continue
		}
		mesh := c.Mesh(eye)
		if mesh.Empty() {
			continue
		}
		batches = append(batches, Batch{
			Key:       curveKey(c.Label),
			Primitive: PrimitiveTriangles,
			Mesh:      mesh,
			Instances: []common.Instance{{Color: c.Color}},
		})
	}
	if len(s.points) > 0 {
		batches = append(batches, s.pointBatch(eye.Z()))
	}

	dirty := s.overlay.Update(s.size, label.Layout(s.cam, s.size), s.editor)
	s.frame = &Frame{
		Size:         s.size,
		Camera:       s.cam.Uniform(),
		Clear:        s.clearColor,
		Batches:      batches,
		Overlay:      s.overlay.Image(),
		OverlayDirty: dirty,
	}
}

func gridBatch(key string, eye mgl32.Vec3, o grid.Orientation, color common.Color) Batch {
	return Batch{
		Key:       key,
		Primitive: PrimitiveLines,
		Mesh: geometry.Mesh{
			Vertices: grid.LineTemplate(eye.Z(), o),
			Indices:  []uint32{0, 1},
		},
		Instances: grid.Instances(eye, o, color),
	}
}

// pointBatch sizes the marker with the zoom so it keeps a constant apparent radius.
func (s *scene) pointBatch(eyeZ float32) Batch {
	instances := make([]common.Instance, len(s.points))
	for i, p := range s.points {
		instances[i] = common.Instance{Offset: [4]float32{p.X(), p.Y(), 0, 0}, Color: s.pointColor}
	}
	return Batch{
		Key:       keyPoints,
		Primitive: PrimitiveTriangles,
		Mesh:      geometry.Circle(PointRadiusScale*eyeZ, PointSegments),
		Instances: instances,
	}
}

func curveKey(label uint32) string {
	return "curve/" + strconv.FormatUint(uint64(label), 10)
}

func (s *scene) AddCurve(label uint32, coefficients []float64, color common.Color) error {
	if _, ok := s.Curve(label); ok {
		return fmt.Errorf("curve %d: %w", label, ErrDuplicateCurve)
	}
	s.curves = append(s.curves, geometry.NewCurve(label, coefficients, color))
	s.nextLabel = max(s.nextLabel, label+1)
	text := ""
	if len(coefficients) > 0 {
		text = equation.Format(coefficients)
	}
	s.editor.AddBox(label, text)
	return nil
}

func (s *scene) AddEquation(text string) (uint32, error) {
	coefficients, err := equation.Parse(text)
	if err != nil {
		return 0, fmt.Errorf("equation %q: %w", text, err)
	}
	l := s.nextLabel
	s.curves = append(s.curves, geometry.NewCurve(l, coefficients, s.nextColor()))
	s.nextLabel++
	s.editor.AddBox(l, text)
	common.Logger().Debug("curve added", "label", l, "equation", text, "coefficients", coefficients)
	return l, nil
}

func (s *scene) NewCurve() uint32 {
	l := s.nextLabel
	s.curves = append(s.curves, geometry.NewCurve(l, nil, s.nextColor()))
	s.nextLabel++
	return l
}

func (s *scene) nextColor() common.Color {
	return Palette[len(s.curves)%len(Palette)]
}

func (s *scene) SetCoefficients(label uint32, coefficients []float64) error {
	c, ok := s.Curve(label)
	if !ok {
		return fmt.Errorf("curve %d: %w", label, ErrUnknownCurve)
	}
	c.SetCoefficients(coefficients)
	return nil
}

func (s *scene) SetEquation(label uint32, text string) error {
	if _, ok := s.Curve(label); !ok {
		return fmt.Errorf("curve %d: %w", label, ErrUnknownCurve)
	}
	coefficients, err := equation.Parse(text)
	if err != nil {
		return err
	}
	common.Logger().Debug("equation parsed", "label", label, "equation", text, "coefficients", coefficients)
	return s.SetCoefficients(label, coefficients)
}

func (s *scene) RemoveCurve(label uint32) error {
	i := slices.IndexFunc(s.curves, func(c *geometry.Curve) bool { return c.Label == label })
	if i < 0 {
		return fmt.Errorf("curve %d: %w", label, ErrUnknownCurve)
	}
	s.curves = slices.Delete(s.curves, i, i+1)
	s.editor.RemoveBox(label)
	return nil
}

func (s *scene) Curve(label uint32) (*geometry.Curve, bool) {
	for _, c := range s.curves {
		if c.Label == label {
			return c, true
		}
	}
	return nil, false
}

func (s *scene) Curves() []*geometry.Curve {
	return slices.Clone(s.curves)
}

func (s *scene) AddPoint(x, y float32) {
	s.points = append(s.points, mgl32.Vec2{x, y})
}

func (s *scene) Points() []mgl32.Vec2 {
	return slices.Clone(s.points)
}

func (s *scene) Close() error {
	if s.text == nil {
		return nil
	}
	return s.text.Close()
}
