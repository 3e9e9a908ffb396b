// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session_test

import (
	"testing"
	"time"

	"github.com/SilverstreamsAI/NexusFix/coro"
	"github.com/SilverstreamsAI/NexusFix/fix"
	"github.com/SilverstreamsAI/NexusFix/session"
	"github.com/SilverstreamsAI/NexusFix/transport"
)

// recorder captures every session callback for assertions.
type recorder struct {
	transitions []string
	sent        [][]byte
	apps        []*fix.Message
	errors      []session.Error
	logons      int
	logouts     []string
}

func (r *recorder) OnAppMessage(msg *fix.Message)   { r.apps = append(r.apps, msg) }
func (r *recorder) OnAdminMessage(msg *fix.Message) {}
func (r *recorder) OnStateChange(from, to session.State) {
	r.transitions = append(r.transitions, from.String()+"->"+to.String())
}
func (r *recorder) OnSend(msg []byte) bool {
	cp := make([]byte, len(msg))
	copy(cp, msg)
	r.sent = append(r.sent, cp)
	return true
}
func (r *recorder) OnError(err session.Error) { r.errors = append(r.errors, err) }
func (r *recorder) OnLogon()                  { r.logons++ }
func (r *recorder) OnLogout(text string)      { r.logouts = append(r.logouts, text) }

func (r *recorder) sawTransition(want string) bool {
	for _, tr := range r.transitions {
		if tr == want {
			return true
		}
	}
	return false
}

// sentOfType returns the captured outbound messages of the given type.
func (r *recorder) sentOfType(t byte) []*fix.Message {
	var out []*fix.Message
	for _, raw := range r.sent {
		if m, err := fix.Parse(raw); err == nil && m.MsgType() == t {
			out = append(out, m)
		}
	}
	return out
}

// testConfig is the fixture configuration: immediate logout deadline so
// wind-down never waits on a silent peer.
func testConfig() session.Config {
	cfg := session.DefaultConfig()
	cfg.SenderCompID = "SENDER"
	cfg.TargetCompID = "TARGET"
	cfg.HeartBtInt = 30
	cfg.LogonTimeout = 5
	cfg.LogoutTimeout = 0
	return cfg
}

// peerMsg builds a counterparty message (TARGET -> SENDER).
func peerMsg(msgType byte, seq uint32, extra ...fix.Field) []byte {
	hdr := []fix.Field{
		fix.Str(fix.TagSenderCompID, "TARGET"),
		fix.Str(fix.TagTargetCompID, "SENDER"),
		fix.Uint(fix.TagMsgSeqNum, seq),
		fix.Str(fix.TagSendingTime, fix.Timestamp(time.Now())),
	}
	return fix.Build("FIX.4.4", msgType, append(hdr, extra...)...)
}

// peerRecv drains one frame from the peer end, parsed.
func peerRecv(tb testing.TB, peer *transport.Pipe) *fix.Message {
	tb.Helper()
	buf := make([]byte, 4096)
	n, err := peer.Receive(buf)
	if err != nil || n == 0 {
		return nil
	}
	m, perr := fix.Parse(buf[:n])
	if perr != nil {
		tb.Fatalf("peer received unparseable frame %q: %v", buf[:n], perr)
	}
	return m
}

// drive steps the task, invoking tick between steps, until it completes
// or steps run out.
func drive(tb testing.TB, task *coro.Task[session.Result], steps int, tick func(i int)) {
	tb.Helper()
	for i := 0; i < steps && !task.IsReady(); i++ {
		task.Resume()
		if tick != nil {
			tick(i)
		}
	}
}

// logonReplier answers the session's Logon with the peer's Logon reply,
// once, echoing the session's HeartBtInt.
func logonReplier(tb testing.TB, peer *transport.Pipe) func(int) {
	tb.Helper()
	replied := false
	return func(int) {
		if replied {
			return
		}
		if m := peerRecv(tb, peer); m != nil && m.MsgType() == fix.MsgTypeLogon {
			hbi, _ := m.GetInt(fix.TagHeartBtInt)
			peer.Send(peerMsg(fix.MsgTypeLogon, 1, fix.Int(fix.TagHeartBtInt, hbi)))
			replied = true
		}
	}
}

// startActive runs a session through logon over a fresh pipe and returns
// it with its running task and the peer end, one step away from Active
// processing.
func startActive(tb testing.TB, cfg session.Config, rec *recorder) (*session.Session, *coro.Task[session.Result], *transport.Pipe) {
	tb.Helper()
	a, b := transport.NewPipe()
	sess := session.New(cfg, rec, transport.NewAsync(a))
	task := sess.RunTask("peer", 0)
	reply := logonReplier(tb, b)
	for i := 0; i < 100 && sess.State() != session.StateActive; i++ {
		task.Resume()
		reply(i)
	}
	if sess.State() != session.StateActive {
		tb.Fatalf("session did not reach Active, state=%v", sess.State())
	}
	return sess, task, b
}
