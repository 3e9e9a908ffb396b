// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package coro

import (
	"time"
)

// Sleep suspends co until d has elapsed, polling the deadline with
// cooperative yields. Adequate for deadline checks driven by a stepping
// root; a timer wheel would replace the poll in a reactor integration.
func Sleep(co *Coroutine, d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		Yield(co)
	}
}

// WithTimeout races op against a deadline loop. Returns (result, true) if
// op completes within d, otherwise (zero, false). The losing op is not
// cancelled: it keeps running to completion if something resumes it, and
// its result is discarded.
func WithTimeout[T any](co *Coroutine, op *Task[T], d time.Duration) (T, bool) {
	deadline := time.Now().Add(d)
	timer := New(func(c *Coroutine) struct{} {
		for time.Now().Before(deadline) {
			Yield(c)
		}
		return struct{}{}
	})
	wrapper := New(func(c *Coroutine) struct{} {
		Await(c, op)
		return struct{}{}
	})
	if WhenAny(co, wrapper, timer) == 0 {
		return op.result, true
	}
	var zero T
	return zero, false
}

// WithTimeoutVoid is the void specialization of WithTimeout: true if op
// completed within d, false on deadline expiry.
func WithTimeoutVoid(co *Coroutine, op *Task[struct{}], d time.Duration) bool {
	deadline := time.Now().Add(d)
	timer := New(func(c *Coroutine) struct{} {
		for time.Now().Before(deadline) {
			Yield(c)
		}
		return struct{}{}
	})
	return WhenAny(co, op, timer) == 0
}
