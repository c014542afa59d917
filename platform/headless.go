package platform

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/pincel/event"
	"github.com/lixenwraith/pincel/input"
)

// ErrStartupFailed is returned by a Headless prepared with FailStartup
var ErrStartupFailed = errors.New("headless startup failed")

// Step is one scripted native event; it returns false to request termination
type Step func(in *input.State, ch event.Sender) bool

// Headless replays queued steps, one per pump
// An empty script idles for one frame. Steps may be queued from any goroutine
type Headless struct {
	frame time.Duration

	mu        sync.Mutex
	steps     []Step
	failure   error
	started   bool
	pumps     int
	geometry  [4]int
	shutdowns int
}

// NewHeadless creates an empty scripted backend
func NewHeadless(frame time.Duration) *Headless {
	return &Headless{frame: frame}
}

// FailStartup makes the next Startup return err (ErrStartupFailed when nil)
func (h *Headless) FailStartup(err error) *Headless {
	if err == nil {
		err = ErrStartupFailed
	}
	h.mu.Lock()
	h.failure = err
	h.mu.Unlock()
	return h
}

// Queue appends steps to the script
func (h *Headless) Queue(steps ...Step) *Headless {
	h.mu.Lock()
	h.steps = append(h.steps, steps...)
	h.mu.Unlock()
	return h
}

// Startup records the geometry, or returns the error set by FailStartup
func (h *Headless) Startup(x, y int16, width, height uint16) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.failure != nil {
		return h.failure
	}
	h.started = true
	h.geometry = [4]int{int(x), int(y), int(width), int(height)}
	log.Debugf("headless surface %dx%d at %d,%d", width, height, x, y)
	return nil
}

// PumpMessages runs the next queued step, or sleeps one frame when the script is empty
// A non-positive frame returns at once, which only scripted tests should rely on
func (h *Headless) PumpMessages(in *input.State, ch event.Sender) bool {
	h.mu.Lock()
	h.pumps++
	var step Step
	if len(h.steps) > 0 {
		step = h.steps[0]
		h.steps = h.steps[1:]
	}
	h.mu.Unlock()

	if step == nil {
		if h.frame > 0 {
			time.Sleep(h.frame)
		}
		return true
	}
	return step(in, ch)
}

// Shutdown counts the call; the headless surface holds nothing to release
func (h *Headless) Shutdown() {
	h.mu.Lock()
	h.shutdowns++
	h.mu.Unlock()
}

// Started reports whether Startup succeeded
func (h *Headless) Started() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.started
}

// Geometry returns the x, y, width, height passed to Startup
func (h *Headless) Geometry() [4]int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.geometry
}

// Pumps returns the number of PumpMessages calls so far
func (h *Headless) Pumps() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pumps
}

// Pending returns the number of unplayed steps
func (h *Headless) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.steps)
}

// Shutdowns returns the number of Shutdown calls
func (h *Headless) Shutdowns() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.shutdowns
}

// KeyPress reports key down
func KeyPress(key input.Key) Step {
	return func(in *input.State, ch event.Sender) bool {
		in.ProcessKey(ch, key, true)
		return true
	}
}

// KeyRelease reports key up
func KeyRelease(key input.Key) Step {
	return func(in *input.State, ch event.Sender) bool {
		in.ProcessKey(ch, key, false)
		return true
	}
}

// KeyTap returns a press followed by a release on the next pump
func KeyTap(key input.Key) []Step {
	return []Step{KeyPress(key), KeyRelease(key)}
}

// MouseMove reports a pointer position
func MouseMove(x, y int16) Step {
	return func(in *input.State, ch event.Sender) bool {
		in.ProcessMouseMove(ch, x, y)
		return true
	}
}

// Button reports a mouse button state
func Button(button input.Button, pressed bool) Step {
	return func(in *input.State, ch event.Sender) bool {
		in.ProcessButton(ch, button, pressed)
		return true
	}
}

// Wheel reports a wheel movement
func Wheel(delta int8) Step {
	return func(in *input.State, ch event.Sender) bool {
		in.ProcessWheel(ch, delta)
		return true
	}
}

// Resize reports a new surface size
func Resize(width, height uint16) Step {
	return func(_ *input.State, ch event.Sender) bool {
		ch.Publish(event.CodeResized, 0, event.ResizeContext(width, height))
		return true
	}
}

// Publish enqueues an arbitrary event as if the native layer raised it
func Publish(code event.Code, ctx event.Context) Step {
	return func(_ *input.State, ch event.Sender) bool {
		ch.Publish(code, 0, ctx)
		return true
	}
}

// Close requests termination, like a closed native window
func Close() Step {
	return func(*input.State, event.Sender) bool {
		return false
	}
}
