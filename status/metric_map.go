package status

import (
	"cmp"
	"slices"
	"sync"
)

// MetricMap holds metrics of type T keyed by K
// Named metrics use string keys; per-event-code counters use uint16 keys
// Lookup takes a lock only on first use of a key; callers cache the pointer
type MetricMap[K cmp.Ordered, T any] struct {
	mu    sync.RWMutex
	items map[K]*T
}

// NewMetricMap creates an empty MetricMap
func NewMetricMap[K cmp.Ordered, T any]() *MetricMap[K, T] {
	return &MetricMap[K, T]{items: make(map[K]*T)}
}

// Get returns the metric for key, allocating it on first request
func (m *MetricMap[K, T]) Get(key K) *T {
	m.mu.RLock()
	ptr, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if ptr, ok = m.items[key]; ok {
		return ptr
	}
	ptr = new(T)
	m.items[key] = ptr
	return ptr
}

// Has reports whether key was ever requested
func (m *MetricMap[K, T]) Has(key K) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.items[key]
	return ok
}

// Keys returns every requested key in ascending order
func (m *MetricMap[K, T]) Keys() []K {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]K, 0, len(m.items))
	for key := range m.items {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

// Range visits metrics in key order
// fn runs without the lock held, so it may call Get
func (m *MetricMap[K, T]) Range(fn func(key K, ptr *T)) {
	for _, key := range m.Keys() {
		m.mu.RLock()
		ptr := m.items[key]
		m.mu.RUnlock()
		fn(key, ptr)
	}
}

// Count returns the number of metrics
func (m *MetricMap[K, T]) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
