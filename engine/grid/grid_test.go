package grid

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/go-gl/mathgl/mgl32"
)

func TestScale(t *testing.T) {
	tests := []struct {
		name string
		eyeZ float32
		want float32
		ok   bool
	}{
		{"default zoom", 4, 10, true},
		{"between powers", 5, 5, true},
		{"unit", 1, 40, true},
		{"below unit", 0.5, 40, true},
		{"negative", -1, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Scale(tt.eyeZ)
			if ok != tt.ok || got != tt.want {
				t.Errorf("Scale(%v) = (%v, %v), want (%v, %v)", tt.eyeZ, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestAlpha(t *testing.T) {
	tests := []struct {
		i    int
		want float32
	}{
		{0, AxisAlpha},
		{5, MajorAlpha},
		{-10, MajorAlpha},
		{1, MinorAlpha},
		{-7, MinorAlpha},
	}
	for _, tt := range tests {
		if got := Alpha(tt.i); got != tt.want {
			t.Errorf("Alpha(%d) = %v, want %v", tt.i, got, tt.want)
		}
	}
}

func TestLinesCentredOnEye(t *testing.T) {
	eye := mgl32.Vec3{3, -2, 4}
	v := Lines(eye, Vertical)
	h := Lines(eye, Horizontal)
	if len(v) != 2*HalfCount || len(h) != 2*HalfCount {
		t.Fatalf("got %d vertical / %d horizontal lines", len(v), len(h))
	}
	// scale 10: offsets 30 and -20.
	if v[0].Index != -HalfCount+30 || h[0].Index != -HalfCount-20 {
		t.Errorf("first indices = %d / %d", v[0].Index, h[0].Index)
	}
	if v[0].Value == h[0].Value {
		t.Error("vertical and horizontal lines should differ when eye.x != eye.y")
	}
}

func TestInstancesPlacement(t *testing.T) {
	eye := mgl32.Vec3{1, 2, 4}
	vert := Instances(eye, Vertical, common.ColorBlack)
	horiz := Instances(eye, Horizontal, common.ColorBlack)
	for i, inst := range vert {
		if inst.Offset[1] != eye.Y() {
			t.Fatalf("vertical instance %d at y = %v, want %v", i, inst.Offset[1], eye.Y())
		}
	}
	for i, inst := range horiz {
		if inst.Offset[0] != eye.X() {
			t.Fatalf("horizontal instance %d at x = %v, want %v", i, inst.Offset[0], eye.X())
		}
	}
	for _, inst := range vert {
		if inst.Offset[0] == 0 && inst.Color[3] != AxisAlpha {
			t.Errorf("axis line alpha = %v, want %v", inst.Color[3], AxisAlpha)
		}
	}
}

func TestInstancesDoubleWithZoom(t *testing.T) {
	for _, o := range []Orientation{Vertical, Horizontal} {
		a := Instances(mgl32.Vec3{0, 0, 32}, o, common.ColorBlack)
		b := Instances(mgl32.Vec3{0, 0, 64}, o, common.ColorBlack)
		if len(a) != len(b) {
			t.Fatalf("orientation %d: %d vs %d instances", o, len(a), len(b))
		}
		axis := 0
		if o == Horizontal {
			axis = 1
		}
		for i := range a {
			if b[i].Offset[axis] != 2*a[i].Offset[axis] {
				t.Fatalf("orientation %d instance %d: %v is not twice %v", o, i, b[i].Offset[axis], a[i].Offset[axis])
			}
		}
	}
}

func TestLinesUndefinedZoom(t *testing.T) {
	if got := Lines(mgl32.Vec3{0, 0, -3}, Vertical); got != nil {
		t.Errorf("expected no lines for a negative zoom, got %d", len(got))
	}
}

func TestLineTemplate(t *testing.T) {
	v := LineTemplate(4, Vertical)
	h := LineTemplate(4, Horizontal)
	if v[0].Position != [3]float32{0, -8, 0} || v[1].Position != [3]float32{0, 8, 0} {
		t.Errorf("vertical template = %v", v)
	}
	if h[0].Position != [3]float32{-8, 0, 0} || h[1].Position != [3]float32{8, 0, 0} {
		t.Errorf("horizontal template = %v", h)
	}
}
