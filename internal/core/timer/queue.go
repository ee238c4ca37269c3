// Package timer provides deferred continuations on a virtual clock advanced
// by the frame loop. Nothing here blocks: callbacks run inside Advance.
package timer

import (
	"sort"
	"time"
)

// Handle identifies a scheduled continuation.
type Handle uint64

type entry struct {
	handle   Handle
	name     string
	deadline time.Duration
	epoch    uint64
	fn       func()
}

// Queue holds continuations ordered by deadline, then by scheduling order.
type Queue struct {
	now     time.Duration
	epoch   uint64
	next    Handle
	entries []entry
}

// NewQueue creates an empty queue at virtual time zero.
func NewQueue() *Queue {
	return &Queue{}
}

// Now returns the virtual time.
func (q *Queue) Now() time.Duration { return q.now }

// After schedules fn to run once d has elapsed. Inside a running callback,
// d counts from that callback's own deadline so chained delays do not drift
// with frame size.
func (q *Queue) After(d time.Duration, name string, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	q.next++
	e := entry{handle: q.next, name: name, deadline: q.now + d, epoch: q.epoch, fn: fn}
	i := sort.Search(len(q.entries), func(i int) bool {
		return q.entries[i].deadline > e.deadline
	})
	q.entries = append(q.entries, entry{})
	copy(q.entries[i+1:], q.entries[i:])
	q.entries[i] = e
	return e.handle
}

// Cancel drops one pending continuation. It reports whether it was pending.
func (q *Queue) Cancel(h Handle) bool {
	for i, e := range q.entries {
		if e.handle == h {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return true
		}
	}
	return false
}

// CancelAll drops every pending continuation, including ones a callback
// running in the current Advance has not reached yet.
func (q *Queue) CancelAll() {
	q.epoch++
	q.entries = q.entries[:0]
}

// Epoch changes every time CancelAll runs. Callers compare it across a
// callback to learn whether their chain was cancelled underneath them.
func (q *Queue) Epoch() uint64 { return q.epoch }

// Pending returns the number of scheduled continuations.
func (q *Queue) Pending() int { return len(q.entries) }

// PendingNames lists scheduled continuation names in firing order.
func (q *Queue) PendingNames() []string {
	names := make([]string, len(q.entries))
	for i, e := range q.entries {
		names[i] = e.name
	}
	return names
}

// Advance moves the clock forward by dt and runs every continuation due by
// then, in deadline order. Continuations scheduled by callbacks run in
// the same call when they fall due before the new time.
func (q *Queue) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := q.now + dt
	for len(q.entries) > 0 && q.entries[0].deadline <= target {
		e := q.entries[0]
		q.entries = q.entries[1:]
		if e.epoch != q.epoch {
			continue
		}
		q.now = e.deadline
		e.fn()
	}
	q.now = target
}
