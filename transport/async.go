// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"errors"

	"github.com/SilverstreamsAI/NexusFix/coro"
)

// Async wraps a non-blocking Transport for use inside cooperative tasks:
// every ErrWouldBlock result becomes one cooperative yield and a retry.
// Any other error, and any success, is returned as-is. The adapter adds
// no blocking of its own; a wrapped operation that blocks (such as
// [TCP.Connect]) still blocks the OS thread.
type Async struct {
	t Transport
}

// NewAsync wraps t.
func NewAsync(t Transport) *Async {
	return &Async{t: t}
}

// Connect establishes the connection, yielding while the transport
// reports ErrWouldBlock.
func (a *Async) Connect(co *coro.Coroutine, host string, port uint16) error {
	for {
		err := a.t.Connect(host, port)
		if err == nil || !errors.Is(err, ErrWouldBlock) {
			return err
		}
		coro.Yield(co)
	}
}

// Send transmits all of p, yielding on ErrWouldBlock between partial
// writes. Returns the byte count written before any terminal error.
func (a *Async) Send(co *coro.Coroutine, p []byte) (int, error) {
	total := 0
	for total < len(p) {
		n, err := a.t.Send(p[total:])
		total += n
		if err != nil {
			if errors.Is(err, ErrWouldBlock) {
				coro.Yield(co)
				continue
			}
			return total, err
		}
	}
	return total, nil
}

// Receive reads into p, yielding on ErrWouldBlock. (0, nil) means no data
// was available on this step.
func (a *Async) Receive(co *coro.Coroutine, p []byte) (int, error) {
	for {
		n, err := a.t.Receive(p)
		if err == nil || !errors.Is(err, ErrWouldBlock) {
			return n, err
		}
		coro.Yield(co)
	}
}

// Disconnect closes the underlying transport.
func (a *Async) Disconnect() {
	a.t.Disconnect()
}

// IsConnected reports the underlying transport's connection state.
func (a *Async) IsConnected() bool {
	return a.t.IsConnected()
}

// Transport returns the wrapped transport.
func (a *Async) Transport() Transport {
	return a.t
}
