// Package core provides shared building blocks for the session client and its consumers.
package core

import "sync"

// Cell holds the latest value of T and broadcasts every Set to current subscribers.
// It does not queue: a subscriber that attaches late sees only the latest value, and
// a subscriber still busy with one notification is handed only the newest value once
// it returns. Each subscriber's last notification is always the cell's latest value.
// It is safe for concurrent use.
type Cell[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
	nextID  uint64
	subs    []*subscription[T]
}

type subscription[T any] struct {
	id uint64
	fn func(T)

	// removed is guarded by the cell's mu.
	removed bool

	mu      sync.Mutex
	running bool
	pending bool

	// seen and primed belong to whichever goroutine holds running.
	seen   uint64
	primed bool
}

// NewCell creates a cell holding initial.
func NewCell[T any](initial T) *Cell[T] {
	return &Cell[T]{value: initial}
}

// Get returns the latest value.
func (c *Cell[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set replaces the value and then notifies subscribers in registration order.
// Callbacks run on the caller's goroutine, outside the cell's lock, unless another
// goroutine is already notifying that subscriber; that goroutine then delivers
// the newest value after the current callback returns.
func (c *Cell[T]) Set(v T) {
	c.SetIf(v, nil)
}

// SetIf replaces the value only if cond reports true, evaluating cond under the
// cell's lock so no other Set can slip between the check and the write.
// cond must not call back into the cell. A nil cond always sets.
func (c *Cell[T]) SetIf(v T, cond func() bool) bool {
	c.mu.Lock()
	if cond != nil && !cond() {
		c.mu.Unlock()
		return false
	}
	c.value = v
	c.version++
	subs := make([]*subscription[T], len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, s := range subs {
		c.deliver(s)
	}
	return true
}

// Subscribe registers fn and immediately calls it with the latest value.
// The returned function unsubscribes; calling it more than once is a no-op.
func (c *Cell[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	c.mu.Lock()
	c.nextID++
	s := &subscription[T]{id: c.nextID, fn: fn}
	c.subs = append(c.subs, s)
	c.mu.Unlock()

	c.deliver(s)

	var once sync.Once
	return func() {
		once.Do(func() { c.remove(s.id) })
	}
}

// Subscribers returns the number of registered subscribers.
func (c *Cell[T]) Subscribers() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// deliver runs s.fn with the latest value unless another goroutine is already
// inside s.fn, in which case that goroutine picks up the change when it loops.
func (c *Cell[T]) deliver(s *subscription[T]) {
	s.mu.Lock()
	s.pending = true
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	for s.pending {
		s.pending = false
		s.mu.Unlock()

		c.mu.Lock()
		v, version, removed := c.value, c.version, s.removed
		c.mu.Unlock()

		if !removed && (!s.primed || version != s.seen) {
			s.primed = true
			s.seen = version
			s.fn(v)
		}

		s.mu.Lock()
	}
	s.running = false
	s.mu.Unlock()
}

func (c *Cell[T]) remove(id uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.subs {
		if s.id == id {
			s.removed = true
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}
