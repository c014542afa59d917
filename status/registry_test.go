package status

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricMapReturnsCachedPointer(t *testing.T) {
	m := NewMetricMap[string, int]()
	a := m.Get("x")
	b := m.Get("x")
	require.Same(t, a, b)
	assert.True(t, m.Has("x"))
	assert.False(t, m.Has("y"))
	assert.Equal(t, 1, m.Count())
}

func TestMetricMapConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Ints.Get("event.sent").Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(800), r.Ints.Get("event.sent").Load())
}

func TestRegistryLinesSorted(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("b").Store(2)
	r.Ints.Get("a").Store(1)
	r.Floats.Get("clock.elapsed").Set(1.5)
	r.Strings.Get("event.last").Store("KEY_PRESSED")
	r.Bools.Get("app.running").Store(true)

	assert.Equal(t, []string{
		"app.running=true",
		"a=1",
		"b=2",
		"clock.elapsed=1.500",
		`event.last="KEY_PRESSED"`,
	}, r.Lines())
}

func TestMetricMapCodeKeysSorted(t *testing.T) {
	m := NewMetricMap[uint16, int]()
	m.Get(0x100)
	m.Get(0x02)
	m.Get(0x10)
	assert.Equal(t, []uint16{0x02, 0x10, 0x100}, m.Keys())
}

func TestMetricMapRangeMayGet(t *testing.T) {
	m := NewMetricMap[string, int]()
	*m.Get("a") = 1
	var seen []string
	m.Range(func(key string, v *int) {
		seen = append(seen, key)
		m.Get("b")
	})
	assert.Equal(t, []string{"a"}, seen)
	assert.True(t, m.Has("b"))
}

func TestRegistryLinesIncludeCodes(t *testing.T) {
	r := NewRegistry()
	r.Codes.Get(0x100).Add(3)
	r.Codes.Get(0x02).Add(1)
	r.Ints.Get("event.fired").Store(4)

	assert.Equal(t, 3, r.TotalCount())
	assert.Equal(t, []string{
		"event.fired=4",
		"event.code.0x0002=1",
		"event.code.0x0100=3",
	}, r.Lines())
}

func TestAtomicFloatMax(t *testing.T) {
	var f AtomicFloat
	assert.True(t, f.Max(0.5))
	assert.False(t, f.Max(0.25))
	assert.False(t, f.Max(math.NaN()))
	assert.True(t, f.Max(1))
	assert.Equal(t, 1.0, f.Get())
}

func TestAtomicFloatMaxConcurrent(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(v float64) {
			defer wg.Done()
			f.Max(v)
		}(float64(i))
	}
	wg.Wait()
	assert.Equal(t, 50.0, f.Get())
}

func TestAtomicStringTruncates(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())
	long := "0123456789012345678901234567890123456789"
	s.Store(long)
	assert.Equal(t, long[:MaxStringLen], s.Load())
}

func TestOr(t *testing.T) {
	r := NewRegistry()
	assert.Same(t, r, Or(r))
	assert.NotNil(t, Or(nil))
}
