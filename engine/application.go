// Package engine owns the application lifecycle: it wires the event bus, the
// input buffer and the clock to a Platform and runs the main loop.
//
// Loop threading:
//   - Create and Run are called from one goroutine
//   - Handlers fire synchronously inside Run, so application state they touch
//     needs no locking
//   - Platform helpers and OS signal bridges talk to the loop only through
//     cloned event.Sender values
package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/lixenwraith/pincel/event"
	"github.com/lixenwraith/pincel/input"
	"github.com/lixenwraith/pincel/status"
)

// Application is one runtime instance
type Application struct {
	cfg      Config
	platform Platform
	channel  *event.Channel
	registry *event.Registry
	input    *input.State
	clock    *Clock
	stats    *status.Registry
	builtins Builtins
	quitKey  input.Key

	running   atomic.Bool
	suspended atomic.Bool
	looping   atomic.Bool
	closeOnce sync.Once

	// Written by built-in listeners on the loop goroutine
	width, height  uint16
	mouseX, mouseY int16
	lastTime       time.Duration

	statTicks      *atomic.Int64
	statDispatched *atomic.Int64
	statElapsed    *status.AtomicFloat
	statMaxDelta   *status.AtomicFloat
	statRunning    *atomic.Bool
	statSuspended  *atomic.Bool
}

// Create builds an Application on platform and starts the platform surface
// A failed platform startup is fatal: no Application is returned
func Create(cfg Config, platform Platform) (*Application, error) {
	if platform == nil {
		return nil, ErrNoPlatform
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	quitKey, _ := input.ParseKey(cfg.QuitKey)

	stats := status.NewRegistry()
	channel := event.NewChannel(stats)
	registry, err := event.NewRegistry(cfg.Capacity, channel, stats)
	if err != nil {
		return nil, err
	}

	a := &Application{
		cfg:            cfg,
		platform:       platform,
		channel:        channel,
		registry:       registry,
		input:          input.NewState(),
		clock:          NewClock(nil),
		stats:          stats,
		quitKey:        quitKey,
		width:          cfg.Width,
		height:         cfg.Height,
		statTicks:      stats.Ints.Get("app.ticks"),
		statDispatched: stats.Ints.Get("app.dispatched"),
		statElapsed:    stats.Floats.Get("app.elapsed_seconds"),
		statMaxDelta:   stats.Floats.Get("app.max_delta_seconds"),
		statRunning:    stats.Bools.Get("app.running"),
		statSuspended:  stats.Bools.Get("app.suspended"),
	}
	if err := a.registerBuiltins(); err != nil {
		return nil, errors.Wrap(err, "register built-in listeners")
	}

	if err := platform.Startup(cfg.X, cfg.Y, cfg.Width, cfg.Height); err != nil {
		channel.Close()
		return nil, errors.Wrap(err, "platform startup")
	}

	a.running.Store(true)
	a.statRunning.Store(true)
	log.Infof("%s created %dx%d at (%d,%d), drain=%s", cfg.Name, cfg.Width, cfg.Height, cfg.X, cfg.Y, cfg.Drain)
	return a, nil
}

var (
	defaultOnce sync.Once
	defaultApp  *Application
	defaultErr  error
)

// Default creates the process-wide Application on first call
// Later calls ignore their arguments and return the first result
func Default(cfg Config, platform Platform) (*Application, error) {
	defaultOnce.Do(func() {
		defaultApp, defaultErr = Create(cfg, platform)
	})
	return defaultApp, defaultErr
}

// Run loops until the application stops running
//
// Each tick: pump one native event; unless suspended, advance the clock,
// dispatch queued messages per the drain policy and roll the input buffer
// Messages still queued when the loop ends are dropped
func (a *Application) Run() error {
	if !a.looping.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.looping.Store(false)

	sender := a.channel.Sender()
	a.clock.Start()
	a.clock.Update()
	a.lastTime = a.clock.Elapsed()

	for a.running.Load() {
		if !a.platform.PumpMessages(a.input, sender) {
			log.Info("platform requested termination")
			a.running.Store(false)
		}

		if a.suspended.Load() {
			continue
		}

		a.clock.Update()
		now := a.clock.Elapsed()
		delta := now - a.lastTime
		a.lastTime = now

		a.statDispatched.Add(int64(a.dispatch()))
		a.input.Update(delta)

		a.statTicks.Add(1)
		a.statElapsed.Set(now.Seconds())
		a.statMaxDelta.Max(delta.Seconds())

		if a.registry.Closed() {
			log.Info("event registry closed, leaving loop")
			a.running.Store(false)
		}
	}

	a.clock.Stop()
	a.statRunning.Store(false)
	return nil
}

func (a *Application) dispatch() int {
	if a.cfg.Drain == DrainOne {
		if a.registry.ListenMessages() {
			return 1
		}
		return 0
	}
	return a.registry.DispatchPending()
}

// Quit publishes APPLICATION_QUIT
func (a *Application) Quit() {
	a.channel.Sender().Publish(event.CodeApplicationQuit, a.builtins.Listener, event.Context{})
}

// Shutdown enqueues a Shutdown message; the loop ends once it is dispatched
func (a *Application) Shutdown() {
	a.channel.Sender().Shutdown()
}

// Subscribe enqueues a subscription, registered on the next dispatch pass
func (a *Application) Subscribe(code event.Code, listener event.Handle, handler event.Handler) {
	a.channel.Sender().Subscribe(code, listener, handler)
}

// Close stops the loop, releases the platform and closes the channel
// Safe to call more than once
func (a *Application) Close() {
	a.closeOnce.Do(func() {
		a.running.Store(false)
		a.platform.Shutdown()
		a.channel.Close()
		a.statRunning.Store(false)
	})
}

// Suspend pauses clock updates and dispatch; the platform keeps pumping
func (a *Application) Suspend() {
	a.suspended.Store(true)
	a.statSuspended.Store(true)
}

// Resume reverts Suspend
func (a *Application) Resume() {
	a.suspended.Store(false)
	a.statSuspended.Store(false)
}

// IsRunning reports whether Run has not yet been asked to stop
func (a *Application) IsRunning() bool {
	return a.running.Load()
}

// IsSuspended reports whether dispatch and input aging are paused
func (a *Application) IsSuspended() bool {
	return a.suspended.Load()
}

// Size returns the last surface size seen by the resize listener
func (a *Application) Size() (uint16, uint16) {
	return a.width, a.height
}

// MousePosition returns the last pointer cell seen by the mouse listener
func (a *Application) MousePosition() (int16, int16) {
	return a.mouseX, a.mouseY
}

// Config returns the validated configuration the application was created with
func (a *Application) Config() Config {
	return a.cfg
}

// Clock returns the loop clock
func (a *Application) Clock() *Clock {
	return a.clock
}

// Input returns the keyboard and mouse state fed by the platform
// Read it from the loop goroutine only
func (a *Application) Input() *input.State {
	return a.input
}

// Registry returns the event registry; register listeners before Run
func (a *Application) Registry() *event.Registry {
	return a.registry
}

// Sender returns a handle that is safe to publish from any goroutine
func (a *Application) Sender() event.Sender {
	return a.channel.Sender()
}

// Stats returns the metrics shared by the channel, registry and loop
func (a *Application) Stats() *status.Registry {
	return a.stats
}

// Builtins returns the listener and handlers installed by Create
func (a *Application) Builtins() Builtins {
	return a.builtins
}
