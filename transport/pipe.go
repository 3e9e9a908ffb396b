// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package transport

import (
	"errors"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/lfq"
)

// pipeCapacity is the bounded frame capacity per direction. Deep enough
// to absorb a resend burst without backpressure in tests.
const pipeCapacity = 64

// serialCounter assigns a monotonically increasing serial to each pipe
// pair.
var serialCounter atomix.Uint32

// pipePair holds both ends, queues, and the shared close counter in a
// single allocation. SPSC queues are embedded as values; only the ring
// buffers are separate heap objects.
type pipePair struct {
	a      Pipe
	b      Pipe
	closed atomix.Uint32
	dataAB lfq.SPSC[[]byte]
	dataBA lfq.SPSC[[]byte]
}

// Pipe is one end of an in-memory loopback transport pair. Each direction
// is a single-producer single-consumer bounded queue of whole frames, so
// one Receive drains exactly one Send.
type Pipe struct {
	sendQ  *lfq.SPSC[[]byte]
	recvQ  *lfq.SPSC[[]byte]
	closed *atomix.Uint32
	serial uint32
}

// NewPipe creates a connected loopback pair. Disconnecting either end
// closes both; in-flight frames remain receivable until drained.
func NewPipe() (*Pipe, *Pipe) {
	s := serialCounter.Add(1)

	pair := &pipePair{}
	pair.dataAB.Init(pipeCapacity)
	pair.dataBA.Init(pipeCapacity)

	pair.a = Pipe{
		sendQ:  &pair.dataAB,
		recvQ:  &pair.dataBA,
		closed: &pair.closed,
		serial: s,
	}
	pair.b = Pipe{
		sendQ:  &pair.dataBA,
		recvQ:  &pair.dataAB,
		closed: &pair.closed,
		serial: s,
	}
	return &pair.a, &pair.b
}

// Serial returns the serial number assigned to this pipe pair.
func (p *Pipe) Serial() uint32 { return p.serial }

// Connect is a no-op on an open pipe; a closed pipe refuses.
func (p *Pipe) Connect(host string, port uint16) error {
	if p.closed.Load() != 0 {
		return ErrConnectionRefused
	}
	return nil
}

// Send enqueues one frame. Returns ErrWouldBlock when the bounded queue
// is full and ErrConnectionClosed after either end disconnected.
func (p *Pipe) Send(data []byte) (int, error) {
	if p.closed.Load() != 0 {
		return 0, ErrConnectionClosed
	}
	frame := make([]byte, len(data))
	copy(frame, data)
	if err := p.sendQ.Enqueue(&frame); err != nil {
		return 0, err
	}
	return len(data), nil
}

// Receive dequeues one frame into buf. (0, nil) means no frame is
// pending; after a disconnect the remaining frames drain first, then
// ErrConnectionClosed.
func (p *Pipe) Receive(buf []byte) (int, error) {
	frame, err := p.recvQ.Dequeue()
	if err != nil {
		if errors.Is(err, ErrWouldBlock) {
			if p.closed.Load() != 0 {
				return 0, ErrConnectionClosed
			}
			return 0, nil
		}
		return 0, err
	}
	n := copy(buf, frame)
	return n, nil
}

// Disconnect closes both ends.
func (p *Pipe) Disconnect() {
	p.closed.Add(1)
}

// IsConnected reports whether neither end has disconnected.
func (p *Pipe) IsConnected() bool {
	return p.closed.Load() == 0
}
