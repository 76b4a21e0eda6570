package gui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"unicode"
	"unicode/utf8"

	"github.com/Carmen-Shannon/oxy-graph/common"
	"github.com/Carmen-Shannon/oxy-graph/engine/input"
	"github.com/Carmen-Shannon/oxy-graph/engine/label"
)

var (
	boxFill     = color.RGBA{R: 250, G: 250, B: 250, A: 235}
	boxBorder   = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	focusBorder = color.RGBA{R: 30, G: 90, B: 200, A: 255}
	textColor   = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	errColor    = color.RGBA{R: 200, G: 30, B: 30, A: 255}
)

type editorImpl struct {
	origin image.Point
	boxes  []Box
	focus  int
	cursor image.Point

	version uint64

	onCommit CommitFunc
	onAdd    AddFunc
}

var _ Editor = &editorImpl{}

// NewEditor creates an empty editor anchored at the top-left corner.
//
// Parameters:
//   - options: functional options to configure the editor
//
// Returns:
//   - Editor: the new editor
func NewEditor(options ...EditorBuilderOption) Editor {
	e := &editorImpl{
		origin: image.Pt(8, 8),
		focus:  -1,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *editorImpl) AddBox(label uint32, text string) {
	e.boxes = append(e.boxes, Box{Label: label, Text: text})
	e.touch()
}

func (e *editorImpl) RemoveBox(label uint32) {
	for i, box := range e.boxes {
		if box.Label != label {
			continue
		}
		e.boxes = append(e.boxes[:i], e.boxes[i+1:]...)
		switch {
		case e.focus == i:
			e.focus = -1
		case e.focus > i:
			e.focus--
		}
		e.touch()
		return
	}
}

func (e *editorImpl) Boxes() []Box {
	out := make([]Box, len(e.boxes))
	copy(out, e.boxes)
	return out
}

func (e *editorImpl) Focused() (int, bool) {
	return e.focus, e.focus >= 0
}

func (e *editorImpl) Focus(i int) {
	if i < 0 || i >= len(e.boxes) {
		i = -1
	}
	if i != e.focus {
		e.focus = i
		e.touch()
	}
}

func (e *editorImpl) Version() uint64 {
	return e.version
}

func (e *editorImpl) ProcessEvent(ev input.Event) bool {
	switch ev := ev.(type) {
	case input.KeyEvent:
		return e.processKey(ev)
	case input.CharEvent:
		if e.focus < 0 {
			return false
		}
		if unicode.IsPrint(ev.Char) {
			e.boxes[e.focus].Text += string(ev.Char)
			e.touch()
		}
		return true
	case input.CursorMovedEvent:
		e.cursor = image.Pt(int(ev.X), int(ev.Y))
		return false
	case input.MouseButtonEvent:
		if ev.Button != common.MouseButtonLeft || !ev.Pressed {
			return false
		}
		for i := range e.boxes {
			if e.cursor.In(boxRect(e.origin, i)) {
				e.Focus(i)
				return true
			}
		}
		e.Focus(-1)
		return false
	}
	return false
}

func (e *editorImpl) processKey(ev input.KeyEvent) bool {
	if ev.Pressed {
		switch ev.Key {
		case common.KeyF2:
			e.addCurve()
			return true
		case common.KeyTab:
			if len(e.boxes) == 0 {
				return false
			}
			next := e.focus + 1
			if next >= len(e.boxes) {
				next = -1
			}
			e.Focus(next)
			return true
		}
	}
	if e.focus < 0 {
		return false
	}
	// Releases pass through so a key held before focus moved still stops the camera.
	if !ev.Pressed {
		return false
	}

	box := &e.boxes[e.focus]
	switch ev.Key {
	case common.KeyBackspace:
		if box.Text != "" {
			_, n := utf8.DecodeLastRuneInString(box.Text)
			box.Text = box.Text[:len(box.Text)-n]
			e.touch()
		}
	case common.KeyEnter:
		e.commit(box)
	case common.KeyEsc:
		e.Focus(-1)
	}
	return true
}

func (e *editorImpl) addCurve() {
	if e.onAdd == nil {
		return
	}
	l, err := e.onAdd()
	if err != nil {
		common.Logger().Warn("failed to add curve", "error", err)
		return
	}
	e.AddBox(l, "")
	e.Focus(len(e.boxes) - 1)
}

func (e *editorImpl) commit(box *Box) {
	box.Err = ""
	if e.onCommit != nil {
		if err := e.onCommit(box.Label, box.Text); err != nil {
			box.Err = err.Error()
			common.Logger().Warn("equation rejected", "label", box.Label, "text", box.Text, "error", err)
		}
	}
	e.touch()
}

func (e *editorImpl) touch() {
	e.version++
}

func (e *editorImpl) Draw(dst *image.RGBA, text *label.Text) {
	for i, box := range e.boxes {
		r := boxRect(e.origin, i)
		draw.Draw(dst, r, image.NewUniform(boxFill), image.Point{}, draw.Over)
		border := boxBorder
		if i == e.focus {
			border = focusBorder
		}
		drawBorder(dst, r, border)

		s := fmt.Sprintf("%d: y = %s", box.Label, box.Text)
		if i == e.focus {
			s += "|"
		}
		textY := r.Min.Y + (BoxHeight-text.LineHeight())/2
		text.Draw(dst, image.Pt(r.Min.X+BoxPadding, textY), s, textColor)
		if box.Err != "" {
			text.Draw(dst, image.Pt(r.Max.X+BoxPadding, textY), box.Err, errColor)
		}
	}
}

func drawBorder(dst *image.RGBA, r image.Rectangle, c color.Color) {
	src := image.NewUniform(c)
	for _, edge := range []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	} {
		draw.Draw(dst, edge, src, image.Point{}, draw.Src)
	}
}
