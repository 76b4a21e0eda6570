// Package gui is the equation editor drawn over the graph: a column of single-line
// text boxes, one per curve, fed by key and character events.
package gui

import (
	"image"

	"github.com/Carmen-Shannon/oxy-graph/engine/input"
	"github.com/Carmen-Shannon/oxy-graph/engine/label"
)

// Box is one equation text box.
type Box struct {
	// Label is the curve the box edits.
	Label uint32
	// Text is the current, possibly uncommitted, equation text.
	Text string
	// Err is the message from the last failed commit, cleared on success.
	Err string
}

// CommitFunc applies the text of a box to its curve.
type CommitFunc func(label uint32, text string) error

// AddFunc creates a new curve and returns its label.
type AddFunc func() (uint32, error)

// Editor is the equation editor overlay. While a box is focused it consumes
// key and character events so typing does not move the camera.
type Editor interface {
	input.Handler
	label.Layer

	// AddBox appends a text box for an existing curve.
	//
	// Parameters:
	//   - label: the curve label
	//   - text: initial text
	AddBox(label uint32, text string)

	// RemoveBox drops the box editing label, if any. Focus follows the remaining boxes.
	RemoveBox(label uint32)

	// Boxes returns a copy of the text boxes in display order.
	Boxes() []Box

	// Focused returns the index of the focused box.
	//
	// Returns:
	//   - int: the box index
	//   - bool: false if no box is focused
	Focused() (int, bool)

	// Focus moves focus to box i; an out-of-range index clears focus.
	Focus(i int)
}

// boxRect returns the screen rectangle of box i.
func boxRect(origin image.Point, i int) image.Rectangle {
	y := origin.Y + i*(BoxHeight+BoxGap)
	return image.Rect(origin.X, y, origin.X+BoxWidth, y+BoxHeight)
}

const (
	BoxWidth  = 280
	BoxHeight = 24
	BoxGap    = 6
	// BoxPadding is the inset of text inside a box.
	BoxPadding = 5
)
