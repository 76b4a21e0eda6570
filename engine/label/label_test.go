package label

import (
	"image"
	"testing"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/camera"
	"github.com/go-gl/mathgl/mgl32"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{2, "2"},
		{0.5, "0.5"},
		{0.8, "0.8"},
		{1000, "1,000"},
	}
	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func newCamera(t *testing.T, eye mgl32.Vec3) camera.Camera {
	t.Helper()
	cam, err := camera.NewCamera(camera.WithEye(eye), camera.WithTarget(mgl32.Vec3{eye.X(), eye.Y(), eye.Z() - 4}))
	if err != nil {
		t.Fatalf("NewCamera: %v", err)
	}
	return cam
}

func TestLayoutDefaultView(t *testing.T) {
	size := common.Size{Width: 800, Height: 800}
	labels := Layout(newCamera(t, mgl32.Vec3{0, 0, 4}), size)
	if len(labels) == 0 {
		t.Fatal("expected labels in the default view")
	}
	found := false
	for _, l := range labels {
		if l.Anchor.X() < 0 || l.Anchor.X() > 800 || l.Anchor.Y() < 0 || l.Anchor.Y() > 800 {
			t.Errorf("label %q anchored outside the viewport at %v", l.Text, l.Anchor)
		}
		if l.Text == "1" {
			found = true
		}
		if l.Text == "0" {
			t.Error("the axis line itself should not be labelled")
		}
	}
	if !found {
		t.Error("expected a label for 1")
	}
}

func TestLayoutClampsOffscreenAxis(t *testing.T) {
	size := common.Size{Width: 800, Height: 600}
	labels := Layout(newCamera(t, mgl32.Vec3{0, 100, 4}), size)
	var xLabels int
	for _, l := range labels {
		if l.Anchor.Y() == 600-Padding {
			xLabels++
		}
	}
	if xLabels == 0 {
		t.Errorf("x-axis labels should stick to the bottom edge, got %v", labels)
	}
}

func TestLayoutEmptyViewport(t *testing.T) {
	if got := Layout(newCamera(t, mgl32.Vec3{0, 0, 4}), common.Size{}); got != nil {
		t.Errorf("Layout on an empty viewport = %v, want nil", got)
	}
}

type countingLayer struct {
	version uint64
	draws   int
}

func (c *countingLayer) Draw(*image.RGBA, *Text) { c.draws++ }
func (c *countingLayer) Version() uint64         { return c.version }

func TestOverlayRedrawsOnlyOnChange(t *testing.T) {
	text, err := NewText(14)
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	defer text.Close()

	o := NewOverlay(text)
	layer := &countingLayer{}
	size := common.Size{Width: 200, Height: 100}
	labels := []Label{{Text: "1.5", Anchor: mgl32.Vec2{10, 10}}}

	if !o.Update(size, labels, layer) {
		t.Fatal("first update should draw")
	}
	if o.Update(size, labels, layer) {
		t.Error("unchanged update should not redraw")
	}
	layer.version++
	if !o.Update(size, labels, layer) {
		t.Error("layer change should redraw")
	}
	if !o.Update(size, []Label{{Text: "2", Anchor: mgl32.Vec2{10, 10}}}, layer) {
		t.Error("label change should redraw")
	}
	if !o.Update(common.Size{Width: 300, Height: 100}, labels, layer) {
		t.Error("resize should redraw")
	}
	if o.Image().Bounds().Dx() != 300 {
		t.Errorf("image width = %d, want 300", o.Image().Bounds().Dx())
	}
	if layer.draws != 4 {
		t.Errorf("layer drawn %d times, want 4", layer.draws)
	}

	var inked bool
	for i := 3; i < len(o.Image().Pix); i += 4 {
		if o.Image().Pix[i] != 0 {
			inked = true
			break
		}
	}
	if !inked {
		t.Error("expected label pixels in the overlay")
	}
}

func TestTextMeasure(t *testing.T) {
	text, err := NewText(14)
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	defer text.Close()
	if text.Measure("") != 0 {
		t.Error("empty string should have zero width")
	}
	if text.Measure("100") <= text.Measure("1") {
		t.Error("longer text should be wider")
	}
	if text.LineHeight() <= 0 {
		t.Error("line height should be positive")
	}
}
