// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"strconv"
	"time"

	"code.hybscloud.com/kont"

	"github.com/SilverstreamsAI/NexusFix/coro"
	"github.com/SilverstreamsAI/NexusFix/fix"
	"github.com/SilverstreamsAI/NexusFix/store"
	"github.com/SilverstreamsAI/NexusFix/transport"
)

// Result is a session phase outcome: Left carries the session error,
// Right the value.
type Result = kont.Either[Error, struct{}]

// recvBufSize is the receive buffer for one transport read.
const recvBufSize = 4096

func ok() Result {
	return kont.Right[Error](struct{}{})
}

func fail(code ErrorCode) Result {
	return kont.Left[Error, struct{}](Error{Code: code})
}

// Session is the cooperative FIX session state machine. One Session runs
// one connection lifecycle at a time: connect, logon, active, logout. All
// fields are mutated only between suspension points of the session's own
// coroutine tree; the send mutex serializes outbound bytes across the
// active-phase loops.
type Session struct {
	cfg     Config
	handler Handler
	tr      *transport.Async

	state State
	hb    HeartbeatTimer
	seq   SequenceManager
	stats Stats
	store *store.MessageStore

	sendMu   coro.AsyncMutex
	shutdown coro.Event
}

// New creates a session over tr. cfg is copied and immutable afterwards.
func New(cfg Config, handler Handler, tr *transport.Async) *Session {
	return &Session{
		cfg:     cfg,
		handler: handler,
		tr:      tr,
		state:   StateDisconnected,
		hb:      NewHeartbeatTimer(cfg.HeartBtInt),
		seq:     NewSequenceManager(),
	}
}

// SetMessageStore attaches a message store for resend support and
// sequence persistence. The store is borrowed, not owned.
func (s *Session) SetMessageStore(ms *store.MessageStore) {
	s.store = ms
}

// State returns the current lifecycle state.
func (s *Session) State() State { return s.state }

// Config returns the session configuration.
func (s *Session) Config() Config { return s.cfg }

// Stats returns the session's counters.
func (s *Session) Stats() *Stats { return &s.stats }

// Sequences returns the sequence manager (read-only use).
func (s *Session) Sequences() *SequenceManager { return &s.seq }

// RequestShutdown asks the active phase to wind down gracefully. Safe to
// call before Run; callable from another OS thread only while the session
// driver is otherwise idle.
func (s *Session) RequestShutdown() {
	s.shutdown.Set()
}

// RunTask wraps Run in a lazy task for external driving.
func (s *Session) RunTask(host string, port uint16) *coro.Task[Result] {
	return coro.New(func(co *coro.Coroutine) Result {
		return s.Run(co, host, port)
	})
}

// Run executes the full lifecycle: connect, logon, active until shutdown
// or error, then logout. An active-phase error still attempts a graceful
// logout before the error is returned.
func (s *Session) Run(co *coro.Coroutine, host string, port uint16) Result {
	s.adoptStoredSequences()

	if r := s.connectPhase(co, host, port); r.IsLeft() {
		return r
	}
	if r := s.logonPhase(co); r.IsLeft() {
		return r
	}
	if r := s.activePhase(co); r.IsLeft() {
		s.logoutPhase(co)
		return r
	}
	return s.logoutPhase(co)
}

// SendAppMessage builds and transmits an application message with the
// session header, allocating its sequence under the send mutex. Only
// valid in the Active state.
func (s *Session) SendAppMessage(co *coro.Coroutine, msgType byte, fields ...fix.Field) Result {
	if !canSendAppMessages(s.state) {
		return fail(ErrInvalidState)
	}
	lock := s.sendMu.Lock(co)
	defer lock.Unlock()

	msg, seqNum := s.buildMessage(msgType, fields...)
	if err := s.sendRawUnlocked(co, msg, seqNum); err != nil {
		return fail(ErrNotConnected)
	}
	return ok()
}

// adoptStoredSequences applies the persisted sequence hand-off, or resets
// both sides when the config asks for a sequence reset on logon.
func (s *Session) adoptStoredSequences() {
	if s.store == nil {
		return
	}
	if s.cfg.ResetSeqNumOnLogon {
		s.seq.Reset()
		s.store.Reset()
		return
	}
	s.seq.SetOutbound(s.store.NextSenderSeqNum())
	s.seq.SetInbound(s.store.NextTargetSeqNum())
}

// persistSequences writes the sequence hand-off back to the store.
func (s *Session) persistSequences() {
	if s.store == nil {
		return
	}
	s.store.SetNextSenderSeqNum(s.seq.CurrentOutbound())
	s.store.SetNextTargetSeqNum(s.seq.ExpectedInbound())
	s.store.Flush()
}

// connectPhase establishes the transport connection.
func (s *Session) connectPhase(co *coro.Coroutine, host string, port uint16) Result {
	if err := s.tr.Connect(co, host, port); err != nil {
		s.transition(EventError)
		return fail(ErrNotConnected)
	}
	s.transition(EventConnect)
	return ok()
}

// logonPhase sends the Logon and polls for the reply until the logon
// deadline. A Logout reply is a rejection; silence is a LogonTimeout.
func (s *Session) logonPhase(co *coro.Coroutine) Result {
	lock := s.sendMu.Lock(co)
	msg, seqNum := s.buildMessage(fix.MsgTypeLogon,
		fix.Int(fix.TagEncryptMethod, 0),
		fix.Int(fix.TagHeartBtInt, s.cfg.HeartBtInt),
		fix.Bool(fix.TagResetSeqNumFlag, s.cfg.ResetSeqNumOnLogon),
	)
	err := s.sendRawUnlocked(co, msg, seqNum)
	lock.Unlock()
	if err != nil {
		return fail(ErrNotConnected)
	}
	s.transition(EventLogonSent)

	deadline := time.Now().Add(time.Duration(s.cfg.LogonTimeout) * time.Second)
	s.waitForLogon(co, deadline)

	if s.state != StateActive {
		s.transition(EventHeartbeatTimeout)
		return fail(ErrLogonTimeout)
	}
	s.hb.Reset()
	s.handler.OnLogon()
	return ok()
}

func (s *Session) waitForLogon(co *coro.Coroutine, deadline time.Time) {
	buf := make([]byte, recvBufSize)
	for s.state == StateLogonSent {
		if !time.Now().Before(deadline) {
			return
		}
		n, err := s.tr.Receive(co, buf)
		if err != nil {
			s.transition(EventDisconnect)
			return
		}
		if n == 0 {
			coro.Yield(co)
			continue
		}
		s.hb.MessageReceived()
		s.stats.MessagesReceived.Add(1)
		s.stats.BytesReceived.Add(uint64(n))

		msg, perr := fix.Parse(buf[:n])
		if perr != nil {
			coro.Yield(co)
			continue
		}
		s.seq.ValidateInbound(msg.MsgSeqNum())
		switch msg.MsgType() {
		case fix.MsgTypeLogon:
			if v, ok := msg.GetInt(fix.TagHeartBtInt); ok {
				s.hb.SetInterval(v)
			}
			s.transition(EventLogonReceived)
		case fix.MsgTypeLogout:
			s.transition(EventLogonRejected)
		}
	}
}

// activePhase runs the heartbeat driver, the receiver, and the shutdown
// waiter concurrently and interprets whichever finishes first.
func (s *Session) activePhase(co *coro.Coroutine) Result {
	hb := coro.New(func(c *coro.Coroutine) struct{} {
		s.heartbeatLoop(c)
		return struct{}{}
	})
	rx := coro.New(func(c *coro.Coroutine) struct{} {
		s.receiverLoop(c)
		return struct{}{}
	})
	sd := coro.New(func(c *coro.Coroutine) struct{} {
		s.shutdown.Wait(c)
		return struct{}{}
	})

	switch coro.WhenAny(co, hb, rx, sd) {
	case 0:
		// Heartbeat loop exited: liveness timeout.
		return fail(ErrHeartbeatTimeout)
	case 1:
		// Receiver exited: disconnect unless an orderly logout already
		// moved the state on.
		if s.state != StateLogoutReceived {
			return fail(ErrDisconnected)
		}
		return ok()
	default:
		// Graceful shutdown requested.
		return ok()
	}
}

// heartbeatLoop emits Heartbeats and TestRequests on schedule and exits
// on liveness timeout.
func (s *Session) heartbeatLoop(co *coro.Coroutine) {
	for s.state == StateActive {
		if s.hb.HasTimedOut() {
			s.transition(EventHeartbeatTimeout)
			return
		}
		if s.hb.ShouldSendTestRequest() {
			s.sendTestRequest(co)
		} else if s.hb.ShouldSendHeartbeat() {
			s.sendHeartbeat(co, "")
		}
		coro.Yield(co)
	}
}

// receiverLoop reads, validates, and routes inbound messages while the
// session is Active.
func (s *Session) receiverLoop(co *coro.Coroutine) {
	buf := make([]byte, recvBufSize)
	for s.state == StateActive {
		n, err := s.tr.Receive(co, buf)
		if err != nil {
			s.transition(EventDisconnect)
			return
		}
		if n == 0 {
			coro.Yield(co)
			continue
		}
		s.hb.MessageReceived()
		s.stats.MessagesReceived.Add(1)
		s.stats.BytesReceived.Add(uint64(n))

		msg, perr := fix.Parse(buf[:n])
		if perr != nil {
			s.handler.OnError(Error{Code: ErrInvalidState})
			continue
		}

		switch s.seq.ValidateInbound(msg.MsgSeqNum()) {
		case SeqGapDetected:
			// Request the missing range, then process this message
			// anyway; expected stays put until the gap is filled.
			s.sendResendRequest(co, msg.MsgSeqNum())
		case SeqTooLow:
			if !msg.PossDup() {
				s.handler.OnError(Error{
					Code:     ErrSequenceGap,
					Expected: s.seq.ExpectedInbound(),
					Received: msg.MsgSeqNum(),
				})
			}
			continue
		}

		if fix.IsAdmin(msg.MsgType()) {
			s.handleAdminMessage(co, msg)
		} else {
			s.handler.OnAppMessage(msg)
		}
	}
}

// handleAdminMessage routes one admin message.
func (s *Session) handleAdminMessage(co *coro.Coroutine, msg *fix.Message) {
	s.handler.OnAdminMessage(msg)
	switch msg.MsgType() {
	case fix.MsgTypeHeartbeat:
		s.stats.HeartbeatsReceived.Add(1)
	case fix.MsgTypeTestRequest:
		id, _ := msg.GetString(fix.TagTestReqID)
		s.sendHeartbeat(co, id)
	case fix.MsgTypeLogout:
		text, _ := msg.GetString(fix.TagText)
		s.transition(EventLogoutReceived)
		s.handler.OnLogout(text)
	case fix.MsgTypeResendRequest:
		s.handleResendRequest(co, msg)
	case fix.MsgTypeSequenceReset:
		s.stats.SequenceResets.Add(1)
		if v, ok := msg.GetInt(fix.TagNewSeqNo); ok {
			s.seq.SetInbound(uint32(v))
		}
	case fix.MsgTypeReject:
		s.handler.OnError(Error{Code: ErrInvalidState})
	}
}

// handleResendRequest replays stored messages for the requested range, or
// falls back to a SequenceReset gap fill when nothing is retained.
func (s *Session) handleResendRequest(co *coro.Coroutine, msg *fix.Message) {
	s.stats.ResendRequestsHandled.Add(1)

	begin, okB := msg.GetInt(fix.TagBeginSeqNo)
	end, okE := msg.GetInt(fix.TagEndSeqNo)
	if !okB || !okE {
		return
	}

	lock := s.sendMu.Lock(co)
	defer lock.Unlock()

	if s.store != nil {
		stored := s.store.RetrieveRange(uint32(begin), uint32(end))
		if len(stored) > 0 {
			for _, m := range stored {
				// Replays keep their original sequence; no re-store.
				s.sendRawUnlocked(co, m, 0)
			}
			return
		}
	}

	// Gap fill: advance the peer past the unretained range.
	reset := s.buildWithSeq(fix.MsgTypeSequenceReset, uint32(begin),
		fix.Uint(fix.TagNewSeqNo, s.seq.CurrentOutbound()),
		fix.Bool(fix.TagGapFillFlag, true),
	)
	s.sendRawUnlocked(co, reset, 0)
}

// sendResendRequest asks the peer to replay the missing inbound range.
func (s *Session) sendResendRequest(co *coro.Coroutine, received uint32) {
	begin, end := s.seq.GapRange(received)

	lock := s.sendMu.Lock(co)
	defer lock.Unlock()

	msg, seqNum := s.buildMessage(fix.MsgTypeResendRequest,
		fix.Uint(fix.TagBeginSeqNo, begin),
		fix.Uint(fix.TagEndSeqNo, end),
	)
	if s.sendRawUnlocked(co, msg, seqNum) == nil {
		s.stats.ResendRequestsSent.Add(1)
	}
}

func (s *Session) sendHeartbeat(co *coro.Coroutine, testReqID string) {
	lock := s.sendMu.Lock(co)
	defer lock.Unlock()

	var extra []fix.Field
	if testReqID != "" {
		extra = append(extra, fix.Str(fix.TagTestReqID, testReqID))
	}
	msg, seqNum := s.buildMessage(fix.MsgTypeHeartbeat, extra...)
	if s.sendRawUnlocked(co, msg, seqNum) == nil {
		s.stats.HeartbeatsSent.Add(1)
	}
}

func (s *Session) sendTestRequest(co *coro.Coroutine) {
	id := "TEST" + strconv.FormatUint(s.stats.TestRequestsSent.Load()+1, 10)

	lock := s.sendMu.Lock(co)
	defer lock.Unlock()

	msg, seqNum := s.buildMessage(fix.MsgTypeTestRequest,
		fix.Str(fix.TagTestReqID, id),
	)
	if s.sendRawUnlocked(co, msg, seqNum) == nil {
		s.hb.TestRequestSent()
		s.stats.TestRequestsSent.Add(1)
	}
}

// logoutPhase sends the Logout (when still Active), waits for the reply
// until the logout deadline, then unconditionally winds the session down.
// A failed Logout send is reported as NotConnected after the wind-down.
func (s *Session) logoutPhase(co *coro.Coroutine) Result {
	if s.state != StateActive && s.state != StateLogoutReceived {
		return ok()
	}

	var sendErr error
	if s.state == StateActive {
		lock := s.sendMu.Lock(co)
		msg, seqNum := s.buildMessage(fix.MsgTypeLogout)
		sendErr = s.sendRawUnlocked(co, msg, seqNum)
		lock.Unlock()
		s.transition(EventLogoutSent)

		deadline := time.Now().Add(time.Duration(s.cfg.LogoutTimeout) * time.Second)
		s.waitForLogout(co, deadline)
	}

	s.handler.OnLogout("Session ended")
	s.persistSequences()
	s.tr.Disconnect()
	s.transition(EventDisconnect)
	if sendErr != nil {
		return fail(ErrNotConnected)
	}
	return ok()
}

func (s *Session) waitForLogout(co *coro.Coroutine, deadline time.Time) {
	buf := make([]byte, recvBufSize)
	for s.state == StateLogoutPending {
		if !time.Now().Before(deadline) {
			return
		}
		n, err := s.tr.Receive(co, buf)
		if err != nil {
			return
		}
		if n == 0 {
			coro.Yield(co)
			continue
		}
		msg, perr := fix.Parse(buf[:n])
		if perr != nil {
			coro.Yield(co)
			continue
		}
		if msg.MsgType() == fix.MsgTypeLogout {
			s.transition(EventLogoutReceived)
		}
	}
}

// buildMessage assembles a message with the session header, allocating
// the next outbound sequence. Callers hold the send mutex so allocation
// order equals transmission order.
func (s *Session) buildMessage(msgType byte, fields ...fix.Field) ([]byte, uint32) {
	seqNum := s.seq.NextOutbound()
	return s.buildWithSeq(msgType, seqNum, fields...), seqNum
}

// buildWithSeq assembles a message with an explicit sequence number
// (gap fills reuse the requested begin sequence).
func (s *Session) buildWithSeq(msgType byte, seqNum uint32, fields ...fix.Field) []byte {
	hdr := []fix.Field{
		fix.Str(fix.TagSenderCompID, s.cfg.SenderCompID),
		fix.Str(fix.TagTargetCompID, s.cfg.TargetCompID),
		fix.Uint(fix.TagMsgSeqNum, seqNum),
		fix.Str(fix.TagSendingTime, fix.Timestamp(time.Now())),
	}
	return fix.Build(s.cfg.BeginString, msgType, append(hdr, fields...)...)
}

// sendRawUnlocked stores (when storeSeq != 0) and transmits one message.
// Caller must hold the send mutex.
func (s *Session) sendRawUnlocked(co *coro.Coroutine, msg []byte, storeSeq uint32) error {
	if s.store != nil && storeSeq != 0 {
		s.store.Store(storeSeq, msg)
	}
	if !s.handler.OnSend(msg) {
		return nil
	}
	n, err := s.tr.Send(co, msg)
	if err != nil {
		return err
	}
	s.hb.MessageSent()
	s.stats.MessagesSent.Add(1)
	s.stats.BytesSent.Add(uint64(n))
	return nil
}

// transition applies event to the state table; OnStateChange fires only
// on actual change.
func (s *Session) transition(event Event) {
	prev := s.state
	next := nextState(prev, event)
	if next != prev {
		s.state = next
		s.handler.OnStateChange(prev, next)
	}
}
