package core

// Event model. Surfaces translate native events into these values and hand
// them out one at a time through Surface.PollEvent.
type Event interface{ isEvent() }

// EventQuit is the OS-level quit request (SIGQUIT-like app termination).
type EventQuit struct{}

func (EventQuit) isEvent() {}

// EventWindowClose is the window manager's close button.
type EventWindowClose struct{}

func (EventWindowClose) isEvent() {}

// EventWindowResized carries the new logical window size.
type EventWindowResized struct{ W, H int }

func (EventWindowResized) isEvent() {}

type EventKey struct {
	Key    Key
	Down   bool
	Repeat bool
	Mods   Mod
}

func (EventKey) isEvent() {}

// EventChar is a unicode text input event.
type EventChar struct{ Rune rune }

func (EventChar) isEvent() {}

// EventMouseMove reports the pointer position in physical pixels.
type EventMouseMove struct{ X, Y float32 }

func (EventMouseMove) isEvent() {}

type EventMouseButton struct {
	Button MouseButton
	Down   bool
	Mods   Mod
}

func (EventMouseButton) isEvent() {}

type EventScroll struct{ Xoff, Yoff float32 }

func (EventScroll) isEvent() {}

// EventFocus is sent when the window gains or loses input focus.
type EventFocus struct{ Focused bool }

func (EventFocus) isEvent() {}

// Key/mod enums (subset the shell and the UI layer care about).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeySpace
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	// KeyBack is the platform "back" action (Android back, mouse back button).
	KeyBack
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)
