// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"sync/atomic"

	"code.hybscloud.com/iox"
)

// parkKind records why a coroutine is suspended. The driver tree uses it
// to decide which frames may be re-stepped on the next tick.
type parkKind uint8

const (
	// parkRunning: the coroutine holds the baton and is executing.
	parkRunning parkKind = iota
	// parkYield: suspended by Yield; the next driver tick re-steps it.
	parkYield
	// parkPoll: suspended inside Await or a combinator wait; tolerates
	// spurious re-steps and re-polls its children.
	parkPoll
	// parkBlocked: enqueued on a primitive (AsyncMutex, Event); resumed
	// only by that primitive, exactly once. Pollers must not step it.
	parkBlocked
)

// Coroutine is one suspendable frame, passed to every task body. The body
// runs on its own goroutine, but a strict baton handshake guarantees that
// at most one frame of the whole task tree executes at any moment: step
// hands the baton to the frame and blocks until the frame yields it back.
//
// All suspension points (Yield, Await, primitive waits, combinators) take
// the current frame explicitly.
type Coroutine struct {
	resumec chan *Coroutine
	yieldc  chan struct{}
	body    func(*Coroutine)

	// cont is the frame awaiting this one's completion, if any.
	cont *Coroutine
	// from is the frame that drove the current step (nil for a root
	// driver). Used at completion to avoid resuming a continuation that
	// is itself mid-drive of this frame.
	from    *Coroutine
	kind    parkKind
	started bool
	// done is atomic so that a root driver observes completion even when
	// the final step ran on another OS thread (an Event set cross-thread).
	done atomic.Bool
}

// Task is a unit of suspendable computation producing a T. Lazy: the body
// does not run until the first Resume (or Get, or an Await from another
// task). A Task is driven to completion at most once; concurrent steps of
// the same task from multiple OS threads are the caller's error.
type Task[T any] struct {
	co     *Coroutine
	result T
}

// New creates a lazy task from fn. fn receives the task's coroutine frame
// and its return value becomes the task result. A panic inside fn crashes
// the process: no recovery is attempted across frames.
func New[T any](fn func(*Coroutine) T) *Task[T] {
	t := &Task[T]{co: &Coroutine{
		resumec: make(chan *Coroutine),
		yieldc:  make(chan struct{}),
	}}
	t.co.body = func(co *Coroutine) { t.result = fn(co) }
	return t
}

// Resume runs the task until its next suspension point or completion.
// No-op on a completed task or one parked on a primitive (the primitive
// resumes it).
func (t *Task[T]) Resume() {
	if t.co.started && t.co.kind == parkBlocked {
		return
	}
	t.co.step(nil)
}

// IsReady reports whether the task has run to completion.
func (t *Task[T]) IsReady() bool {
	return t.co.done.Load()
}

// Result returns the task result. Valid only after IsReady.
func (t *Task[T]) Result() T {
	return t.result
}

// Get drives the task with repeated cooperative steps until it completes,
// then returns its result. Idle steps wait with adaptive backoff, the same
// I/O readiness waiting the non-blocking dispatch boundary uses. A frame
// parked on a primitive is not re-stepped; Get waits for the primitive to
// resume it.
func (t *Task[T]) Get() T {
	var bo iox.Backoff
	for !t.co.done.Load() {
		if !t.co.started || t.co.kind != parkBlocked {
			t.co.step(nil)
			if t.co.done.Load() {
				break
			}
		}
		bo.Wait()
	}
	return t.result
}

// Yield suspends the current task and returns control to its resumer.
// The task continues on the very next step that reaches it.
func Yield(co *Coroutine) {
	co.suspend(parkYield)
}

// Await drives child from co until it completes, then returns its result.
// If the child parks on a primitive, the parent parks too and is resumed
// synchronously by the child's completion. If the child yields, the yield
// propagates to the root driver and the next tick re-steps the child.
func Await[T any](co *Coroutine, child *Task[T]) T {
	c := child.co
	if c.done.Load() {
		return child.result
	}
	c.cont = co
	for {
		if !c.started || c.kind != parkBlocked {
			c.step(co)
			if c.done.Load() {
				break
			}
		}
		co.suspend(parkPoll)
		if c.done.Load() {
			break
		}
	}
	c.cont = nil
	return child.result
}

// step hands the baton to c and blocks until c suspends or completes.
// No-op on a completed coroutine. from identifies the driving frame.
func (c *Coroutine) step(from *Coroutine) {
	if c.done.Load() {
		return
	}
	if !c.started {
		c.started = true
		go c.run()
	}
	c.resumec <- from
	<-c.yieldc
}

// run is the goroutine body: wait for the first baton, execute, then at
// completion resume the awaiting continuation (unless it is the frame
// currently driving us) before releasing the final baton.
func (c *Coroutine) run() {
	c.from = <-c.resumec
	c.kind = parkRunning
	c.body(c)
	c.done.Store(true)
	if c.cont != nil && c.cont != c.from {
		c.cont.step(c)
	}
	c.yieldc <- struct{}{}
}

// suspend parks the current frame with the given kind, releasing the baton
// to the driver and blocking until the next step reaches this frame.
func (c *Coroutine) suspend(kind parkKind) {
	c.kind = kind
	c.yieldc <- struct{}{}
	c.from = <-c.resumec
	c.kind = parkRunning
}
