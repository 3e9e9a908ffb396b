// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"errors"
	"io"
	"net"
	"strconv"
	"syscall"
	"time"
)

// TCP is a Transport over a TCP connection. Non-blocking semantics are
// emulated with immediate read deadlines: a deadline-expired read reports
// "no data yet" rather than blocking the calling thread.
type TCP struct {
	conn        net.Conn
	dialTimeout time.Duration
	connected   bool
}

// NewTCP creates an unconnected TCP transport.
func NewTCP() *TCP {
	return &TCP{dialTimeout: 5 * time.Second}
}

// Connect dials host:port. Dialing blocks up to the dial timeout; refusal
// and timeout map onto the transport error kinds.
func (t *TCP) Connect(host string, port uint16) error {
	if t.connected {
		return nil
	}
	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))
	conn, err := net.DialTimeout("tcp", addr, t.dialTimeout)
	if err != nil {
		return mapNetError(err)
	}
	if tc, ok := conn.(*net.TCPConn); ok {
		tc.SetNoDelay(true)
	}
	t.conn = conn
	t.connected = true
	return nil
}

// Send writes p with an immediate deadline. A deadline expiry with no
// bytes written reports ErrWouldBlock.
func (t *TCP) Send(p []byte) (int, error) {
	if !t.connected {
		return 0, ErrNotConnected
	}
	t.conn.SetWriteDeadline(time.Now().Add(time.Millisecond))
	n, err := t.conn.Write(p)
	if err != nil {
		if isDeadline(err) {
			if n == 0 {
				return 0, ErrWouldBlock
			}
			return n, nil
		}
		t.connected = false
		return n, mapNetError(err)
	}
	return n, nil
}

// Receive reads into p with an immediate deadline. (0, nil) means no data
// arrived yet.
func (t *TCP) Receive(p []byte) (int, error) {
	if !t.connected {
		return 0, ErrNotConnected
	}
	t.conn.SetReadDeadline(time.Now())
	n, err := t.conn.Read(p)
	if err != nil {
		if isDeadline(err) {
			return 0, nil
		}
		t.connected = false
		return n, mapNetError(err)
	}
	return n, nil
}

// Disconnect closes the connection.
func (t *TCP) Disconnect() {
	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}
	t.connected = false
}

// IsConnected reports whether the connection is open.
func (t *TCP) IsConnected() bool {
	return t.connected
}

func isDeadline(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func mapNetError(err error) error {
	switch {
	case errors.Is(err, io.EOF):
		return ErrConnectionClosed
	case errors.Is(err, syscall.ECONNREFUSED):
		return ErrConnectionRefused
	case errors.Is(err, syscall.ECONNRESET), errors.Is(err, syscall.EPIPE):
		return ErrConnectionReset
	case errors.Is(err, net.ErrClosed):
		return ErrConnectionClosed
	default:
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			return ErrTimeout
		}
		return err
	}
}
