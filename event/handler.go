package event

import (
	"reflect"
	"sync/atomic"
)

// Handle is a stable comparable identity for senders and listeners
// The zero Handle is anonymous
type Handle uint64

var nextHandle atomic.Uint64

// NewHandle returns a process-unique non-zero Handle
func NewHandle() Handle {
	return Handle(nextHandle.Add(1))
}

// Handler receives fired events
// Returning true marks the event handled and stops the dispatch pass
type Handler interface {
	HandleEvent(code Code, sender, listener Handle, ctx Context, ch Sender) bool
}

// HandlerFunc adapts a function to Handler
// Two HandlerFuncs are the same handler when they wrap the same function code,
// so closures of one literal compare equal; use Func for per-value identity
type HandlerFunc func(code Code, sender, listener Handle, ctx Context, ch Sender) bool

// HandleEvent calls f
func (f HandlerFunc) HandleEvent(code Code, sender, listener Handle, ctx Context, ch Sender) bool {
	return f(code, sender, listener, ctx, ch)
}

type funcHandler struct {
	fn HandlerFunc
}

func (h *funcHandler) HandleEvent(code Code, sender, listener Handle, ctx Context, ch Sender) bool {
	return h.fn(code, sender, listener, ctx, ch)
}

// Func wraps fn in a pointer-identity Handler
// Each call yields a distinct identity; keep the result to unregister it
func Func(fn HandlerFunc) Handler {
	return &funcHandler{fn: fn}
}

// sameHandler compares handlers without panicking on uncomparable dynamic types
func sameHandler(a, b Handler) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}
	if ta.Kind() == reflect.Func {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	if !ta.Comparable() {
		return false
	}
	return a == b
}
