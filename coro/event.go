// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"sync/atomic"
)

// eventWaiter is an intrusive node in the event waiter list.
type eventWaiter struct {
	co   *Coroutine
	next *eventWaiter
}

// eventSet is the sentinel for "set". Its address is distinct from any
// live waiter node.
var eventSet eventWaiter

// Event is a broadcast binary signal for cooperative tasks. The state word
// holds one of three encodings:
//
//	nil        = not set, no waiters
//	&eventSet  = set
//	other      = not set, head of intrusive waiter list
//
// Set resumes every waiter enqueued before the transition exactly once.
// The zero value is an unset event.
type Event struct {
	state atomic.Pointer[eventWaiter]
}

// Set transitions the event to set and resumes all enqueued waiters, in
// list order, inline on the caller's thread of control.
func (e *Event) Set() {
	old := e.state.Swap(&eventSet)
	if old == nil || old == &eventSet {
		return
	}
	// Read next before resuming: the resumed frame may run to completion
	// and drop its node.
	for w := old; w != nil; {
		next := w.next
		w.co.step(nil)
		w = next
	}
}

// Reset returns the event from set to unset. No-op unless the event is
// set (a set event cannot have waiters).
func (e *Event) Reset() {
	e.state.CompareAndSwap(&eventSet, nil)
}

// IsSet reports whether the event is set.
func (e *Event) IsSet() bool {
	return e.state.Load() == &eventSet
}

// Wait suspends co until the event is set. Returns immediately when the
// event is already set. A waiter that enqueued before a Set is resumed by
// that Set exactly once.
func (e *Event) Wait(co *Coroutine) {
	w := eventWaiter{co: co}
	for {
		old := e.state.Load()
		if old == &eventSet {
			return
		}
		w.next = old
		if e.state.CompareAndSwap(old, &w) {
			co.suspend(parkBlocked)
			return
		}
	}
}
