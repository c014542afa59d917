// Package event is the in-process bus: producers enqueue messages through
// cloned Senders, and a Registry drains them on the loop goroutine, firing
// subscribers in registration order until one handles the event.
package event

import "fmt"

// Code identifies a class of occurrence on the bus
type Code uint16

// DefaultCapacity is the subscriber table size used when none is configured
const DefaultCapacity = 16384

const (
	// CodeApplicationQuit shuts the application down on the next dispatch
	// Payload: none
	CodeApplicationQuit Code = 0x01

	// CodeKeyPressed signals a key transition to down
	// Payload: U16(0) = key code
	CodeKeyPressed Code = 0x02

	// CodeKeyReleased signals a key transition to up
	// Payload: U16(0) = key code
	CodeKeyReleased Code = 0x03

	// CodeButtonPressed signals a mouse button transition to down
	// Payload: U16(0) = button id
	CodeButtonPressed Code = 0x04

	// CodeButtonReleased signals a mouse button transition to up
	// Payload: U16(0) = button id
	CodeButtonReleased Code = 0x05

	// CodeMouseMoved signals a pointer position change
	// Payload: I16(0) = x, I16(1) = y
	CodeMouseMoved Code = 0x06

	// CodeMouseWheel signals a wheel impulse
	// Payload: I8(0) = delta, positive away from the user
	CodeMouseWheel Code = 0x07

	// CodeResized signals a surface size change from the platform
	// Payload: U16(0) = width, U16(1) = height
	CodeResized Code = 0x08

	// CodeMax bounds the reserved system range, application codes start above it
	CodeMax Code = 0xFF
)

var systemNames = map[Code]string{
	CodeApplicationQuit: "APPLICATION_QUIT",
	CodeKeyPressed:      "KEY_PRESSED",
	CodeKeyReleased:     "KEY_RELEASED",
	CodeButtonPressed:   "BUTTON_PRESSED",
	CodeButtonReleased:  "BUTTON_RELEASED",
	CodeMouseMoved:      "MOUSE_MOVED",
	CodeMouseWheel:      "MOUSE_WHEEL",
	CodeResized:         "RESIZED",
}

// IsSystem reports whether c lies in the reserved range
func (c Code) IsSystem() bool {
	return c <= CodeMax
}

// Valid reports whether c can index a table of the given capacity
func (c Code) Valid(capacity int) bool {
	return int(c) < capacity
}

func (c Code) String() string {
	if name, ok := systemNames[c]; ok {
		return name
	}
	if c.IsSystem() {
		return fmt.Sprintf("SYSTEM_%#02x", uint16(c))
	}
	return fmt.Sprintf("APP_%#04x", uint16(c))
}
