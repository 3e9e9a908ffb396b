// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"sync/atomic"
)

// lockWaiter is an intrusive node in the mutex waiter list. Nodes live on
// the suspended frame's stack and are borrowed by the mutex only while the
// owning frame is parked.
type lockWaiter struct {
	co   *Coroutine
	next *lockWaiter
}

// lockedNoWaiters is the sentinel for "locked, no waiters". Its address is
// distinct from any live waiter node.
var lockedNoWaiters lockWaiter

// AsyncMutex is a lock-free mutex for cooperative tasks. The state word
// holds one of three encodings:
//
//	nil               = unlocked
//	&lockedNoWaiters  = locked, no waiters
//	other pointer     = locked, head of intrusive waiter list
//
// Waiters are resumed LIFO. At most one frame holds the lock; unlock
// resumes exactly one waiter, inline on the unlocking frame's thread of
// control. The zero value is an unlocked mutex.
type AsyncMutex struct {
	state atomic.Pointer[lockWaiter]
}

// ScopedLock is an owning handle for a held AsyncMutex. Unlock releases it
// exactly once; further calls are no-ops.
type ScopedLock struct {
	m *AsyncMutex
}

// Unlock releases the lock, resuming the head waiter if any.
func (l *ScopedLock) Unlock() {
	if l.m == nil {
		return
	}
	m := l.m
	l.m = nil
	m.unlock()
}

// Lock acquires the mutex, suspending co while another frame holds it.
// Fast path: a single CAS from unlocked to locked-no-waiters.
func (m *AsyncMutex) Lock(co *Coroutine) ScopedLock {
	if m.state.CompareAndSwap(nil, &lockedNoWaiters) {
		return ScopedLock{m: m}
	}
	w := lockWaiter{co: co}
	for {
		old := m.state.Load()
		if old == nil {
			// Became unlocked, try to acquire without suspending.
			if m.state.CompareAndSwap(nil, &lockedNoWaiters) {
				return ScopedLock{m: m}
			}
			continue
		}
		if old == &lockedNoWaiters {
			w.next = nil
		} else {
			w.next = old
		}
		if m.state.CompareAndSwap(old, &w) {
			co.suspend(parkBlocked)
			return ScopedLock{m: m}
		}
	}
}

// TryLock acquires the mutex without suspending. Reports whether the lock
// was taken; on success the returned handle owns it.
func (m *AsyncMutex) TryLock() (ScopedLock, bool) {
	if m.state.CompareAndSwap(nil, &lockedNoWaiters) {
		return ScopedLock{m: m}, true
	}
	return ScopedLock{}, false
}

func (m *AsyncMutex) unlock() {
	for {
		old := m.state.Load()
		if old == nil {
			return
		}
		if old == &lockedNoWaiters {
			if m.state.CompareAndSwap(old, nil) {
				return
			}
			continue
		}
		// old is the head waiter: pop it, then resume it inline.
		next := old.next
		var repl *lockWaiter
		if next != nil {
			repl = next
		} else {
			repl = &lockedNoWaiters
		}
		if m.state.CompareAndSwap(old, repl) {
			old.co.step(nil)
			return
		}
	}
}
