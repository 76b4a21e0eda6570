package gui

import (
	"errors"
	"image"
	"testing"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/input"
	"github.com/Carmen-Shannon/oxy-graph/engine/label"
)

func typeText(e Editor, s string) {
	for _, r := range s {
		e.ProcessEvent(input.CharEvent{Char: r})
	}
}

func press(e Editor, key int) bool {
	return e.ProcessEvent(input.KeyEvent{Key: key, Pressed: true})
}

func TestEditorUnfocusedPassesThrough(t *testing.T) {
	e := NewEditor()
	e.AddBox(0, "x")
	tests := []struct {
		name  string
		event input.Event
	}{
		{"movement key", input.KeyEvent{Key: common.KeyW, Pressed: true}},
		{"char", input.CharEvent{Char: 'w'}},
		{"cursor", input.CursorMovedEvent{X: 500, Y: 500}},
		{"wheel", input.MouseWheelEvent{DeltaY: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if e.ProcessEvent(tt.event) {
				t.Errorf("unfocused editor consumed %#v", tt.event)
			}
		})
	}
}

func TestEditorTypingAndCommit(t *testing.T) {
	var committed []string
	e := NewEditor(WithCommitHandler(func(l uint32, text string) error {
		committed = append(committed, text)
		return nil
	}))
	e.AddBox(7, "")
	e.Focus(0)

	typeText(e, "x^2+1")
	if !press(e, common.KeyW) {
		t.Error("focused editor should consume movement keys")
	}
	if e.ProcessEvent(input.KeyEvent{Key: common.KeyW}) {
		t.Error("focused editor should let key releases through")
	}
	press(e, common.KeyBackspace)
	typeText(e, "2")
	press(e, common.KeyEnter)

	if got := e.Boxes()[0].Text; got != "x^2+2" {
		t.Errorf("text = %q, want %q", got, "x^2+2")
	}
	if len(committed) != 1 || committed[0] != "x^2+2" {
		t.Errorf("committed = %v", committed)
	}
}

func TestEditorCommitError(t *testing.T) {
	e := NewEditor(WithCommitHandler(func(uint32, string) error { return errors.New("bad term") }))
	e.AddBox(0, "q")
	e.Focus(0)
	press(e, common.KeyEnter)
	if got := e.Boxes()[0].Err; got != "bad term" {
		t.Errorf("Err = %q, want %q", got, "bad term")
	}
}

func TestEditorFocusCycle(t *testing.T) {
	e := NewEditor()
	if press(e, common.KeyTab) {
		t.Error("Tab with no boxes should not be consumed")
	}
	e.AddBox(0, "")
	e.AddBox(1, "")

	want := []int{0, 1, -1, 0}
	for i, w := range want {
		press(e, common.KeyTab)
		got, ok := e.Focused()
		if (w >= 0) != ok || (ok && got != w) {
			t.Fatalf("step %d: focus = %d/%v, want %d", i, got, ok, w)
		}
	}
	press(e, common.KeyEsc)
	if _, ok := e.Focused(); ok {
		t.Error("Escape should drop focus")
	}
}

func TestEditorAddBox(t *testing.T) {
	next := uint32(3)
	e := NewEditor(WithAddHandler(func() (uint32, error) {
		next++
		return next, nil
	}))
	if !press(e, common.KeyF2) {
		t.Fatal("F2 should be consumed")
	}
	boxes := e.Boxes()
	if len(boxes) != 1 || boxes[0].Label != 4 {
		t.Fatalf("boxes = %v", boxes)
	}
	if i, ok := e.Focused(); !ok || i != 0 {
		t.Errorf("new box should be focused, got %d/%v", i, ok)
	}
}

func TestEditorRemoveBox(t *testing.T) {
	tests := []struct {
		name      string
		focus     int
		remove    uint32
		wantFocus int
	}{
		{"focused box", 1, 11, -1},
		{"box before focus", 2, 10, 1},
		{"box after focus", 0, 12, 0},
		{"unknown label", 1, 99, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEditor()
			e.AddBox(10, "a")
			e.AddBox(11, "b")
			e.AddBox(12, "c")
			e.Focus(tt.focus)
			e.RemoveBox(tt.remove)

			got, ok := e.Focused()
			if !ok {
				got = -1
			}
			if got != tt.wantFocus {
				t.Errorf("focus = %d, want %d", got, tt.wantFocus)
			}
			for _, b := range e.Boxes() {
				if b.Label == tt.remove {
					t.Errorf("box %d still present", tt.remove)
				}
			}
		})
	}
}

func TestEditorClickFocus(t *testing.T) {
	e := NewEditor(WithOrigin(image.Pt(10, 10)))
	e.AddBox(0, "")
	e.AddBox(1, "")

	e.ProcessEvent(input.CursorMovedEvent{X: 20, Y: float32(10 + BoxHeight + BoxGap + 5)})
	if !e.ProcessEvent(input.MouseButtonEvent{Button: common.MouseButtonLeft, Pressed: true}) {
		t.Fatal("click inside a box should be consumed")
	}
	if i, _ := e.Focused(); i != 1 {
		t.Errorf("focused = %d, want 1", i)
	}

	e.ProcessEvent(input.CursorMovedEvent{X: 600, Y: 400})
	if e.ProcessEvent(input.MouseButtonEvent{Button: common.MouseButtonLeft, Pressed: true}) {
		t.Error("click outside the boxes should fall through")
	}
	if _, ok := e.Focused(); ok {
		t.Error("click outside should drop focus")
	}
}

func TestEditorVersionAndDraw(t *testing.T) {
	e := NewEditor()
	v0 := e.Version()
	e.AddBox(0, "x")
	if e.Version() == v0 {
		t.Error("AddBox should bump the version")
	}

	text, err := label.NewText(14)
	if err != nil {
		t.Fatalf("NewText: %v", err)
	}
	defer text.Close()
	img := image.NewRGBA(image.Rect(0, 0, 400, 100))
	e.Draw(img, text)
	if img.RGBAAt(10, 10).A == 0 {
		t.Error("expected the box background to be drawn")
	}
}
