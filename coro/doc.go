// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package coro provides a single-threaded cooperative coroutine substrate
// and the lock-free synchronization primitives the session engine runs on.
//
// # Architecture
//
//   - Tasks: [New] builds a lazy [Task]; [Task.Resume] is one cooperative
//     step, [Task.Get] drives steps to completion with adaptive backoff
//     ([code.hybscloud.com/iox.Backoff]), [Await] composes tasks.
//   - Suspension: every suspension point takes the current [Coroutine]
//     explicitly. [Yield] gives control back to the driver for one tick.
//   - Primitives: [AsyncMutex] and [Event] encode their waiter lists
//     intrusively in a single atomic pointer word; waiters are resumed
//     inline on the releasing frame's thread of control.
//   - Combinators: [WhenAll], [WhenAny], [WithTimeout], [Sleep]. Losers of
//     a race are never cancelled; cancellation is cooperative via shared
//     flags or an [Event].
//
// # Scheduling model
//
// No executor thread is spawned. A task tree is driven by explicit resume
// calls (or a blocking [Task.Get] on the root); resumptions within one
// step happen in LIFO order. Bodies never block on OS primitives: blocking
// is layered under non-blocking operations returning
// [code.hybscloud.com/iox.ErrWouldBlock] plus [Yield].
//
// The atomic state words of [AsyncMutex] and [Event] are safe under
// concurrent access from multiple OS threads; driving one task's frames
// from two threads at the same time is not.
package coro
