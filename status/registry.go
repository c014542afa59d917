// Package status collects runtime counters for the bus and the main loop.
// Producers cache metric pointers at construction and update them with atomics.
package status

import (
	"fmt"
	"sync/atomic"
)

// Registry groups named metric maps by value type
// Codes counts dispatches per event code, keyed by the raw code value
type Registry struct {
	Bools   *MetricMap[string, atomic.Bool]
	Ints    *MetricMap[string, atomic.Int64]
	Floats  *MetricMap[string, AtomicFloat]
	Strings *MetricMap[string, AtomicString]
	Codes   *MetricMap[uint16, atomic.Int64]
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[string, atomic.Bool](),
		Ints:    NewMetricMap[string, atomic.Int64](),
		Floats:  NewMetricMap[string, AtomicFloat](),
		Strings: NewMetricMap[string, AtomicString](),
		Codes:   NewMetricMap[uint16, atomic.Int64](),
	}
}

// Or returns r, or a fresh registry when r is nil
func Or(r *Registry) *Registry {
	if r == nil {
		return NewRegistry()
	}
	return r
}

// TotalCount returns the number of metrics across all maps
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count() + r.Codes.Count()
}

// Lines renders every metric as "name=value", grouped by type and sorted by key
// Per-code counters render as "event.code.0x0002=n"
func (r *Registry) Lines() []string {
	lines := make([]string, 0, r.TotalCount())
	r.Bools.Range(func(name string, v *atomic.Bool) {
		lines = append(lines, fmt.Sprintf("%s=%t", name, v.Load()))
	})
	r.Ints.Range(func(name string, v *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("%s=%d", name, v.Load()))
	})
	r.Floats.Range(func(name string, v *AtomicFloat) {
		lines = append(lines, fmt.Sprintf("%s=%.3f", name, v.Get()))
	})
	r.Strings.Range(func(name string, v *AtomicString) {
		lines = append(lines, fmt.Sprintf("%s=%q", name, v.Load()))
	})
	r.Codes.Range(func(code uint16, v *atomic.Int64) {
		lines = append(lines, fmt.Sprintf("event.code.%#06x=%d", code, v.Load()))
	})
	return lines
}
