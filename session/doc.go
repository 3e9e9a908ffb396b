// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package session implements the FIX session lifecycle as a cooperative
// state machine on [github.com/SilverstreamsAI/NexusFix/coro].
//
// # Architecture
//
//   - Lifecycle: [Session.Run] sequences connect, logon, active, logout.
//     The active phase runs three concurrent loops (heartbeat driver,
//     receiver, shutdown waiter) under a WhenAny race; the winner decides
//     the phase outcome.
//   - Sequencing: outbound sequence numbers are allocated during message
//     assembly under the send mutex, so allocation order equals
//     transmission order with no gaps. Inbound validation detects gaps,
//     answers them with a ResendRequest, and keeps processing.
//   - Resend: inbound ResendRequests replay the retained range from the
//     message store, or fall back to a SequenceReset gap fill.
//   - Recovery: [RunWithRecovery] retries a failed lifecycle with capped
//     exponential backoff.
//   - Outcomes: fallible operations return [code.hybscloud.com/kont.Either]
//     values, never panic.
//
// # Integration
//
// A [Handler] receives all observable session events; a
// [store.MessageStore] supplies retention and sequence persistence; any
// [transport.Transport] behind a [transport.Async] supplies bytes. The
// session never blocks an OS thread: all waiting is cooperative yields
// over non-blocking operations.
package session
