// Package input keeps double-buffered keyboard and mouse snapshots and turns
// state transitions into bus events.
package input

import (
	"time"

	"github.com/op/go-logging"

	"github.com/lixenwraith/pincel/event"
)

var log = logging.MustGetLogger("pincel.input")

type keyboardState struct {
	keys [KeyMax]bool
}

type mouseState struct {
	x, y    int16
	buttons [ButtonMax]bool
}

// State holds the current and previous input snapshots
//
// Process* methods compare the proposed value against current, update it and
// publish only on a transition. Update copies current into previous once per
// tick, so previous always equals last tick's current
type State struct {
	keyboardCurrent  keyboardState
	keyboardPrevious keyboardState
	mouseCurrent     mouseState
	mousePrevious    mouseState
	delta            time.Duration
}

// NewState returns a State with every key and button up at (0,0)
func NewState() *State {
	return &State{}
}

// Update rolls current into previous
// Call once per tick, after this tick's events were processed
func (s *State) Update(delta time.Duration) {
	s.keyboardPrevious = s.keyboardCurrent
	s.mousePrevious = s.mouseCurrent
	s.delta = delta
}

// Delta returns the tick duration passed to the last Update
func (s *State) Delta() time.Duration {
	return s.delta
}

// ProcessKey records a key state and publishes KEY_PRESSED / KEY_RELEASED on change
// Holding a key never re-publishes
func (s *State) ProcessKey(ch event.Sender, key Key, pressed bool) {
	if key >= KeyMax {
		log.Warningf("key %#x outside key table ignored", uint16(key))
		return
	}
	if s.keyboardCurrent.keys[key] == pressed {
		return
	}
	s.keyboardCurrent.keys[key] = pressed

	code := event.CodeKeyReleased
	if pressed {
		code = event.CodeKeyPressed
	}
	ch.Publish(code, 0, event.KeyContext(uint16(key)))
}

// ProcessButton records a mouse button state and publishes BUTTON_PRESSED /
// BUTTON_RELEASED on change
func (s *State) ProcessButton(ch event.Sender, button Button, pressed bool) {
	if button >= ButtonMax {
		log.Warningf("button %d outside button table ignored", button)
		return
	}
	if s.mouseCurrent.buttons[button] == pressed {
		return
	}
	s.mouseCurrent.buttons[button] = pressed

	code := event.CodeButtonReleased
	if pressed {
		code = event.CodeButtonPressed
	}
	ch.Publish(code, 0, event.ButtonContext(uint16(button)))
}

// ProcessMouseMove records the pointer position and publishes MOUSE_MOVED
// only when it changed
func (s *State) ProcessMouseMove(ch event.Sender, x, y int16) {
	if s.mouseCurrent.x == x && s.mouseCurrent.y == y {
		return
	}
	s.mouseCurrent.x = x
	s.mouseCurrent.y = y
	ch.Publish(event.CodeMouseMoved, 0, event.MouseMoveContext(x, y))
}

// ProcessWheel publishes MOUSE_WHEEL for a non-zero delta
// The wheel has no held state, every notch is an event
func (s *State) ProcessWheel(ch event.Sender, delta int8) {
	if delta == 0 {
		return
	}
	ch.Publish(event.CodeMouseWheel, 0, event.WheelContext(delta))
}

// IsKeyDown reports the current state of key
func (s *State) IsKeyDown(key Key) bool {
	return key < KeyMax && s.keyboardCurrent.keys[key]
}

// WasKeyDown reports the state of key as of the last Update
func (s *State) WasKeyDown(key Key) bool {
	return key < KeyMax && s.keyboardPrevious.keys[key]
}

// IsButtonDown reports the current state of button
func (s *State) IsButtonDown(button Button) bool {
	return button < ButtonMax && s.mouseCurrent.buttons[button]
}

// WasButtonDown reports the state of button as of the last Update
func (s *State) WasButtonDown(button Button) bool {
	return button < ButtonMax && s.mousePrevious.buttons[button]
}

// MousePosition returns the current pointer position
func (s *State) MousePosition() (x, y int16) {
	return s.mouseCurrent.x, s.mouseCurrent.y
}

// PreviousMousePosition returns the pointer position as of the last Update
func (s *State) PreviousMousePosition() (x, y int16) {
	return s.mousePrevious.x, s.mousePrevious.y
}
