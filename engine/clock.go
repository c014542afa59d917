package engine

import "time"

// Clock measures elapsed time since Start
// A zero start time means the clock is stopped; elapsed only changes in Update
type Clock struct {
	provider TimeProvider
	start    time.Time
	elapsed  time.Duration
}

// NewClock creates a stopped clock over provider; nil selects the monotonic source
func NewClock(provider TimeProvider) *Clock {
	if provider == nil {
		provider = NewMonotonicTimeProvider()
	}
	return &Clock{provider: provider}
}

// Start records the current time and resets elapsed to zero
func (c *Clock) Start() {
	c.start = c.provider.Now()
	c.elapsed = 0
}

// Stop marks the clock stopped, elapsed stays readable
func (c *Clock) Stop() {
	c.start = time.Time{}
}

// Update recomputes elapsed; no effect on a stopped clock
func (c *Clock) Update() {
	if c.start.IsZero() {
		return
	}
	c.elapsed = c.provider.Now().Sub(c.start)
}

// Started reports whether Start was called without a later Stop
func (c *Clock) Started() bool {
	return !c.start.IsZero()
}

// Elapsed returns the value computed by the last Update
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}
