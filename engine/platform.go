package engine

import (
	"github.com/lixenwraith/pincel/event"
	"github.com/lixenwraith/pincel/input"
)

// Platform is the native windowing and input layer driving the loop
// Implementations live outside the engine; the Application only calls into them
type Platform interface {
	// Startup creates and shows the native surface at the given geometry
	Startup(x, y int16, width, height uint16) error

	// PumpMessages handles at most one pending native event, routing input
	// transitions through in, and may block until one arrives
	// Returns false exactly when the native layer wants the application to stop
	PumpMessages(in *input.State, ch event.Sender) bool

	// Shutdown releases the native surface
	Shutdown()
}
