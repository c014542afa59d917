// Package platform provides the native layers an engine.Application runs on:
// a tcell terminal backend and a scripted headless backend.
package platform

import (
	"strings"
	"time"

	"github.com/op/go-logging"
	"github.com/pkg/errors"

	"github.com/lixenwraith/pincel/engine"
)

var log = logging.MustGetLogger("pincel.platform")

// Backend names accepted by New
const (
	BackendTerminal = "terminal"
	BackendHeadless = "headless"
)

// ErrUnknownBackend reports a backend name New does not recognize
var ErrUnknownBackend = errors.New("unknown platform backend")

// New returns the backend registered under name
// frame bounds how long one PumpMessages call waits for a native event
// A non-positive frame polls without waiting; engine.Config requires a positive one
func New(name string, frame time.Duration) (engine.Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case BackendTerminal:
		return NewTerminal(frame), nil
	case BackendHeadless:
		return NewHeadless(frame), nil
	}
	return nil, errors.Wrapf(ErrUnknownBackend, "%q", name)
}
