package gui

import "image"

// EditorBuilderOption is a functional option for configuring an Editor.
type EditorBuilderOption func(*editorImpl)

// WithOrigin sets the top-left corner of the first box.
//
// Parameters:
//   - p: pixel position
//
// Returns:
//   - EditorBuilderOption: functional option to set the origin
func WithOrigin(p image.Point) EditorBuilderOption {
	return func(e *editorImpl) {
		e.origin = p
	}
}

// WithCommitHandler sets the function called when Enter is pressed in a box.
//
// Parameters:
//   - fn: the commit handler
//
// Returns:
//   - EditorBuilderOption: functional option to set the commit handler
func WithCommitHandler(fn CommitFunc) EditorBuilderOption {
	return func(e *editorImpl) {
		e.onCommit = fn
	}
}

// WithAddHandler sets the function called to create a curve when F2 is pressed.
//
// Parameters:
//   - fn: the add handler
//
// Returns:
//   - EditorBuilderOption: functional option to set the add handler
func WithAddHandler(fn AddFunc) EditorBuilderOption {
	return func(e *editorImpl) {
		e.onAdd = fn
	}
}
