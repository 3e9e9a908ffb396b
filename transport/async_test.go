// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package transport_test

import (
	"errors"
	"testing"

	"github.com/SilverstreamsAI/NexusFix/coro"
	"github.com/SilverstreamsAI/NexusFix/transport"
)

// flakyTransport reports ErrWouldBlock a fixed number of times per
// operation before succeeding.
type flakyTransport struct {
	blocksLeft int
	sent       [][]byte
	connected  bool
}

func (f *flakyTransport) Connect(host string, port uint16) error {
	if f.blocksLeft > 0 {
		f.blocksLeft--
		return transport.ErrWouldBlock
	}
	f.connected = true
	return nil
}

func (f *flakyTransport) Send(p []byte) (int, error) {
	if f.blocksLeft > 0 {
		f.blocksLeft--
		return 0, transport.ErrWouldBlock
	}
	cp := make([]byte, len(p))
	copy(cp, p)
	f.sent = append(f.sent, cp)
	return len(p), nil
}

func (f *flakyTransport) Receive(p []byte) (int, error) {
	if f.blocksLeft > 0 {
		f.blocksLeft--
		return 0, transport.ErrWouldBlock
	}
	return copy(p, "data"), nil
}

func (f *flakyTransport) Disconnect()       { f.connected = false }
func (f *flakyTransport) IsConnected() bool { return f.connected }

// The adapter converts every WouldBlock into one cooperative yield and a
// retry; other results pass through untouched.
func TestAsyncRetriesWouldBlock(t *testing.T) {
	ft := &flakyTransport{blocksLeft: 3}
	async := transport.NewAsync(ft)

	task := coro.New(func(co *coro.Coroutine) error {
		return async.Connect(co, "localhost", 9876)
	})
	yields := 0
	for !task.IsReady() {
		task.Resume()
		yields++
	}
	if err := task.Result(); err != nil {
		t.Fatalf("Connect = %v", err)
	}
	if yields < 3 {
		t.Fatalf("yields = %d, want >= 3 (one per WouldBlock)", yields)
	}
}

func TestAsyncSendAll(t *testing.T) {
	ft := &flakyTransport{blocksLeft: 2, connected: true}
	async := transport.NewAsync(ft)

	task := coro.New(func(co *coro.Coroutine) int {
		n, err := async.Send(co, []byte("payload"))
		if err != nil {
			t.Errorf("Send = %v", err)
		}
		return n
	})
	if got := task.Get(); got != 7 {
		t.Fatalf("sent %d bytes, want 7", got)
	}
	if len(ft.sent) != 1 || string(ft.sent[0]) != "payload" {
		t.Fatalf("transport saw %q", ft.sent)
	}
}

func TestAsyncTerminalErrorPassesThrough(t *testing.T) {
	skipRace(t)
	a, _ := transport.NewPipe()
	a.Disconnect()
	async := transport.NewAsync(a)
	task := coro.New(func(co *coro.Coroutine) error {
		_, err := async.Send(co, []byte("x"))
		return err
	})
	if err := task.Get(); !errors.Is(err, transport.ErrConnectionClosed) {
		t.Fatalf("err = %v, want ErrConnectionClosed", err)
	}
}
