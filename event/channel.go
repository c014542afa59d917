package event

import (
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/pincel/status"
)

// queue is an unbounded FIFO guarded by a mutex
// Many goroutines may push; only the dispatcher pops
type queue struct {
	mu     sync.Mutex
	items  []Message
	head   int
	closed bool

	statSent    *atomic.Int64
	statDropped *atomic.Int64
}

func (q *queue) push(msg Message) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		q.statDropped.Add(1)
		return false
	}
	q.items = append(q.items, msg)
	q.mu.Unlock()
	q.statSent.Add(1)
	return true
}

func (q *queue) pop() (Message, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.items) {
		return nil, false
	}
	msg := q.items[q.head]
	q.items[q.head] = nil
	q.head++

	// Reclaim the consumed prefix once it dominates the backing array
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 64 && q.head*2 > len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return msg, true
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items) - q.head
}

func (q *queue) discard() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items) - q.head
	clear(q.items)
	q.items = q.items[:0]
	q.head = 0
	return n
}

// Channel is the receive end of the bus
// It is owned by exactly one consumer, normally the Registry
type Channel struct {
	q *queue
}

// NewChannel creates an open channel reporting into stats (may be nil)
func NewChannel(stats *status.Registry) *Channel {
	stats = status.Or(stats)
	return &Channel{
		q: &queue{
			statSent:    stats.Ints.Get("event.sent"),
			statDropped: stats.Ints.Get("event.dropped"),
		},
	}
}

// Sender returns a handle sharing this channel's queue
func (c *Channel) Sender() Sender {
	return Sender{q: c.q}
}

// TryRecv pops the oldest message without blocking
func (c *Channel) TryRecv() (Message, bool) {
	return c.q.pop()
}

// Len returns the number of queued messages
func (c *Channel) Len() int {
	return c.q.len()
}

// Discard drops every queued message and returns how many were dropped
func (c *Channel) Discard() int {
	return c.q.discard()
}

// Close makes every later send a logged drop
// Messages already queued stay receivable until discarded
func (c *Channel) Close() {
	c.q.mu.Lock()
	c.q.closed = true
	c.q.mu.Unlock()
}

// Closed reports whether Close was called
func (c *Channel) Closed() bool {
	c.q.mu.Lock()
	defer c.q.mu.Unlock()
	return c.q.closed
}

// Sender is the cloneable send half of a Channel
// Copies share the same queue and are safe to use from any goroutine
type Sender struct {
	q *queue
}

// Send enqueues msg
// A closed or detached channel logs and drops the message; nothing is returned
func (s Sender) Send(msg Message) {
	if s.q == nil {
		log.Warningf("send on detached sender dropped %T", msg)
		return
	}
	if !s.q.push(msg) {
		log.Warningf("send on closed channel dropped %s", describe(msg))
	}
}

// Publish enqueues a Publish whose reply handle is s
func (s Sender) Publish(code Code, sender Handle, ctx Context) {
	s.Send(Publish{Code: code, Sender: sender, Context: ctx, Reply: s})
}

// Subscribe enqueues a Subscribe for handler
func (s Sender) Subscribe(code Code, listener Handle, handler Handler) {
	s.Send(Subscribe{Code: code, Listener: listener, Handler: handler})
}

// Shutdown enqueues a Shutdown
func (s Sender) Shutdown() {
	s.Send(Shutdown{})
}

// Attached reports whether s refers to a channel
func (s Sender) Attached() bool {
	return s.q != nil
}

func describe(msg Message) string {
	switch m := msg.(type) {
	case Publish:
		return "publish " + m.Code.String()
	case Subscribe:
		return "subscribe " + m.Code.String()
	case Shutdown:
		return "shutdown"
	default:
		return "unknown message"
	}
}
