// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import "time"

// HeartbeatTimer tracks send/receive liveness against the negotiated
// heartbeat interval H. Thresholds:
//
//	send a Heartbeat    when nothing was sent for H
//	send a TestRequest  when nothing was received for H + H/5 (once)
//	declare timeout     when nothing was received for 2H + H/5
type HeartbeatTimer struct {
	interval           time.Duration
	lastSent           time.Time
	lastReceived       time.Time
	testRequestPending bool
}

// NewHeartbeatTimer returns a timer for an interval of seconds, with both
// marks set to now.
func NewHeartbeatTimer(seconds int) HeartbeatTimer {
	t := HeartbeatTimer{interval: time.Duration(seconds) * time.Second}
	t.Reset()
	return t
}

// SetInterval updates the interval (peer override via tag 108).
func (t *HeartbeatTimer) SetInterval(seconds int) {
	t.interval = time.Duration(seconds) * time.Second
}

// Interval returns the current interval in seconds.
func (t *HeartbeatTimer) Interval() int {
	return int(t.interval / time.Second)
}

// Reset moves both marks to now and clears the pending test request.
func (t *HeartbeatTimer) Reset() {
	now := time.Now()
	t.lastSent = now
	t.lastReceived = now
	t.testRequestPending = false
}

// MessageSent records an outbound message.
func (t *HeartbeatTimer) MessageSent() {
	t.lastSent = time.Now()
}

// MessageReceived records an inbound message and clears any pending test
// request.
func (t *HeartbeatTimer) MessageReceived() {
	t.lastReceived = time.Now()
	t.testRequestPending = false
}

// TestRequestSent records that a TestRequest went out; further test
// requests are suppressed until traffic or timeout.
func (t *HeartbeatTimer) TestRequestSent() {
	t.testRequestPending = true
	t.lastSent = time.Now()
}

// ShouldSendHeartbeat reports whether the send side has been idle for a
// full interval.
func (t *HeartbeatTimer) ShouldSendHeartbeat() bool {
	if t.interval <= 0 {
		return false
	}
	return time.Since(t.lastSent) >= t.interval
}

// ShouldSendTestRequest reports whether the receive side has been silent
// past the grace threshold and no test request is outstanding.
func (t *HeartbeatTimer) ShouldSendTestRequest() bool {
	if t.interval <= 0 || t.testRequestPending {
		return false
	}
	return time.Since(t.lastReceived) >= t.interval+t.interval/5
}

// HasTimedOut reports whether the receive side has been silent for two
// intervals plus tolerance.
func (t *HeartbeatTimer) HasTimedOut() bool {
	if t.interval <= 0 {
		return false
	}
	return time.Since(t.lastReceived) >= 2*t.interval+t.interval/5
}
