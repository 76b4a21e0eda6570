// Package input defines window-independent input events delivered by the windowing layer
// to the editor overlay and the camera controller.
package input

// Event is any input event. The concrete types are KeyEvent, MouseWheelEvent,
// CursorMovedEvent, MouseButtonEvent, CharEvent and ResizedEvent.
type Event interface {
	isEvent()
}

// KeyEvent is a key press or release. Repeats are reported as presses.
type KeyEvent struct {
	// Key is a GLFW key code (see common.Key*).
	Key int
	// Pressed is true for press and repeat, false for release.
	Pressed bool
}

// ScrollUnit distinguishes line-based wheels from pixel-precise touchpads.
type ScrollUnit int

const (
	// ScrollLines is a delta measured in wheel notches.
	ScrollLines ScrollUnit = iota
	// ScrollPixels is a delta measured in pixels.
	ScrollPixels
)

// MouseWheelEvent carries the vertical scroll delta.
type MouseWheelEvent struct {
	Unit   ScrollUnit
	DeltaY float32
}

// CursorMovedEvent carries the new cursor position in window pixels (origin top-left).
type CursorMovedEvent struct {
	X, Y float32
}

// MouseButtonEvent is a mouse button press or release.
type MouseButtonEvent struct {
	// Button is a GLFW mouse button code (see common.MouseButton*).
	Button  int
	Pressed bool
}

// CharEvent is a translated unicode character, used for text entry.
type CharEvent struct {
	Char rune
}

// ResizedEvent reports a new framebuffer size in pixels.
type ResizedEvent struct {
	Width, Height uint32
}

func (KeyEvent) isEvent()         {}
func (MouseWheelEvent) isEvent()  {}
func (CursorMovedEvent) isEvent() {}
func (MouseButtonEvent) isEvent() {}
func (CharEvent) isEvent()        {}
func (ResizedEvent) isEvent()     {}

// Handler consumes an event and reports whether it was consumed.
// Unconsumed events propagate to the next handler in the chain.
type Handler interface {
	ProcessEvent(e Event) bool
}

// Dispatch offers e to each handler in order and stops at the first one that consumes it.
//
// Parameters:
//   - e: the event to dispatch
//   - handlers: handlers in priority order
//
// Returns:
//   - bool: true if any handler consumed the event
func Dispatch(e Event, handlers ...Handler) bool {
	for _, h := range handlers {
		if h != nil && h.ProcessEvent(e) {
			return true
		}
	}
	return false
}
