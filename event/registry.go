package event

import (
	"math"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/lixenwraith/pincel/status"
)

type subscription struct {
	listener Handle
	handler  Handler
}

// Registry is the subscriber table and the single consumer of its Channel
//
// Threading:
//   - Every method runs on the dispatch goroutine (the application loop)
//   - Handlers run synchronously inside Fire and may publish through the
//     Sender they receive; those messages are queued, never dispatched inline
//
// Dispatch stops at the first handler returning true, so registration order
// decides which listener claims a code
type Registry struct {
	capacity int
	table    [][]subscription
	channel  *Channel
	closed   bool

	statFired      *atomic.Int64
	statHandled    *atomic.Int64
	statUnhandled  *atomic.Int64
	statSubscribed *atomic.Int64
	statRejected   *atomic.Int64
	statDiscarded  *atomic.Int64
	statLast       *status.AtomicString
	statCodes      *status.MetricMap[uint16, atomic.Int64]
	codeFired      []*atomic.Int64
}

// NewRegistry creates a registry of the given capacity consuming ch
// A nil ch gets a fresh channel; stats may be nil
func NewRegistry(capacity int, ch *Channel, stats *status.Registry) (*Registry, error) {
	if capacity <= int(CodeMax) || capacity > math.MaxUint16+1 {
		return nil, errors.Wrapf(ErrInvalidCapacity, "capacity %d", capacity)
	}
	stats = status.Or(stats)
	if ch == nil {
		ch = NewChannel(stats)
	}

	return &Registry{
		capacity:       capacity,
		table:          make([][]subscription, capacity),
		channel:        ch,
		statFired:      stats.Ints.Get("event.fired"),
		statHandled:    stats.Ints.Get("event.handled"),
		statUnhandled:  stats.Ints.Get("event.unhandled"),
		statSubscribed: stats.Ints.Get("event.subscribed"),
		statRejected:   stats.Ints.Get("event.rejected"),
		statDiscarded:  stats.Ints.Get("event.discarded"),
		statLast:       stats.Strings.Get("event.last"),
		statCodes:      stats.Codes,
		codeFired:      make([]*atomic.Int64, capacity),
	}, nil
}

// Capacity returns the table size
func (r *Registry) Capacity() int {
	return r.capacity
}

// Channel returns the consumed channel
func (r *Registry) Channel() *Channel {
	return r.channel
}

// Sender returns a send handle for the consumed channel
func (r *Registry) Sender() Sender {
	return r.channel.Sender()
}

// Closed reports whether a Shutdown message has been processed
func (r *Registry) Closed() bool {
	return r.closed
}

// Subscribers returns the number of subscriptions for code
func (r *Registry) Subscribers(code Code) int {
	if !code.Valid(r.capacity) {
		return 0
	}
	return len(r.table[code])
}

// countCode bumps the per-code dispatch counter, caching its pointer by code
func (r *Registry) countCode(code Code) {
	c := r.codeFired[code]
	if c == nil {
		c = r.statCodes.Get(uint16(code))
		r.codeFired[code] = c
	}
	c.Add(1)
}

func (r *Registry) check(code Code) error {
	if !code.Valid(r.capacity) {
		return errors.Wrapf(ErrCodeOutOfRange, "code %#x, capacity %d", uint16(code), r.capacity)
	}
	return nil
}

// Register appends (listener, handler) to the subscribers of code
// Returns false without error if the identical pair is already registered
func (r *Registry) Register(code Code, listener Handle, handler Handler) (bool, error) {
	if err := r.check(code); err != nil {
		return false, err
	}
	if handler == nil {
		return false, ErrNilHandler
	}
	if r.closed {
		return false, nil
	}

	for _, sub := range r.table[code] {
		if sub.listener == listener && sameHandler(sub.handler, handler) {
			r.statRejected.Add(1)
			return false, nil
		}
	}
	r.table[code] = append(r.table[code], subscription{listener: listener, handler: handler})
	r.statSubscribed.Add(1)
	return true, nil
}

// Unregister removes the first subscription matching (listener, handler)
func (r *Registry) Unregister(code Code, listener Handle, handler Handler) (bool, error) {
	if err := r.check(code); err != nil {
		return false, err
	}

	subs := r.table[code]
	for i, sub := range subs {
		if sub.listener != listener || !sameHandler(sub.handler, handler) {
			continue
		}
		// Copy so a Fire pass iterating the old slice is unaffected
		next := make([]subscription, 0, len(subs)-1)
		next = append(next, subs[:i]...)
		next = append(next, subs[i+1:]...)
		r.table[code] = next
		r.statSubscribed.Add(-1)
		return true, nil
	}
	return false, nil
}

// Fire invokes the subscribers of code in registration order until one
// returns true
// Returns false when no subscriber handled the event or none is registered
func (r *Registry) Fire(code Code, sender Handle, ctx Context, ch Sender) (bool, error) {
	if err := r.check(code); err != nil {
		return false, err
	}

	subs := r.table[code]
	if len(subs) == 0 {
		return false, nil
	}

	r.statFired.Add(1)
	r.countCode(code)
	r.statLast.Store(code.String())
	for _, sub := range subs {
		if sub.handler.HandleEvent(code, sender, sub.listener, ctx, ch) {
			r.statHandled.Add(1)
			return true, nil
		}
	}
	r.statUnhandled.Add(1)
	return false, nil
}

// ListenMessages processes at most one queued message without blocking
// Returns true if a message was taken from the queue
func (r *Registry) ListenMessages() bool {
	if r.closed {
		return false
	}
	msg, ok := r.channel.TryRecv()
	if !ok {
		return false
	}

	switch m := msg.(type) {
	case Publish:
		reply := m.Reply
		if !reply.Attached() {
			reply = r.channel.Sender()
		}
		handled, err := r.Fire(m.Code, m.Sender, m.Context, reply)
		if err != nil {
			log.Errorf("publish rejected: %v", err)
			return true
		}
		log.Debugf("PUB %s handled=%t", m.Code, handled)

	case Subscribe:
		added, err := r.Register(m.Code, m.Listener, m.Handler)
		if err != nil {
			log.Errorf("subscribe rejected: %v", err)
			return true
		}
		if !added {
			log.Debugf("SUB %s listener=%d already registered", m.Code, m.Listener)
		}

	case Shutdown:
		r.shutdown()

	default:
		log.Warningf("unknown message %T ignored", msg)
	}
	return true
}

// DispatchPending processes the messages queued when the pass starts, in order
// Messages published by handlers during the pass wait for the next one
func (r *Registry) DispatchPending() int {
	pending := r.channel.Len()
	n := 0
	for n < pending && r.ListenMessages() {
		n++
	}
	return n
}

// Shutdown clears every subscription
func (r *Registry) Shutdown() {
	for i := range r.table {
		r.table[i] = nil
	}
	r.statSubscribed.Store(0)
}

func (r *Registry) shutdown() {
	r.closed = true
	r.channel.Close()
	dropped := r.channel.Discard()
	r.statDiscarded.Add(int64(dropped))
	r.Shutdown()
	log.Infof("event registry shut down, %d queued messages discarded", dropped)
}
