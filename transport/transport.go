// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package transport defines the non-blocking transport contract of the
// session engine and two implementations: an in-memory loopback pair on
// bounded lock-free SPSC queues, and a TCP transport.
//
// Operations do not wait for the peer: backpressure and not-ready
// conditions surface as [code.hybscloud.com/iox.ErrWouldBlock], the I/O
// boundary signal the async adapter converts into cooperative yields. The
// exceptions are [TCP.Connect], which dials synchronously for up to its
// dial timeout, and [TCP.Send], which waits at most one millisecond.
package transport

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock is the non-blocking boundary: the operation cannot make
// progress yet and should be retried after a yield.
var ErrWouldBlock = iox.ErrWouldBlock

var (
	// ErrConnectionClosed reports an orderly close by the peer.
	ErrConnectionClosed = errors.New("transport: connection closed")
	// ErrConnectionRefused reports a refused connect.
	ErrConnectionRefused = errors.New("transport: connection refused")
	// ErrConnectionReset reports a reset by the peer.
	ErrConnectionReset = errors.New("transport: connection reset")
	// ErrTimeout reports an operation deadline expiry.
	ErrTimeout = errors.New("transport: timeout")
	// ErrNotConnected reports an operation on an unconnected transport.
	ErrNotConnected = errors.New("transport: not connected")
)

// Transport is a non-blocking byte transport. Receive returning (0, nil)
// means "no data yet"; ErrWouldBlock from any operation means the bounded
// resource cannot make progress until the peer does.
type Transport interface {
	Connect(host string, port uint16) error
	Send(p []byte) (int, error)
	Receive(p []byte) (int, error)
	Disconnect()
	IsConnected() bool
}
