package engine

import (
	"sync"
	"time"
)

// TimeProvider is the absolute time source behind a Clock
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads time.Now, whose monotonic component makes
// differences immune to wall clock steps and never wraps within a run
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider returns the real time source
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with its monotonic reading
func (MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider is a manually driven time source for tests
type MockTimeProvider struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockTimeProvider starts the mock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now returns the mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// SetTime jumps to t
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

// Advance moves the mocked time forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
