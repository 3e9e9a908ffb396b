// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import "testing"

func TestStateTransitions(t *testing.T) {
	cases := []struct {
		from  State
		event Event
		want  State
	}{
		{StateDisconnected, EventConnect, StateSocketConnected},
		{StateSocketConnected, EventLogonSent, StateLogonSent},
		{StateLogonSent, EventLogonReceived, StateActive},
		{StateLogonSent, EventLogonRejected, StateDisconnected},
		{StateLogonSent, EventHeartbeatTimeout, StateError},
		{StateActive, EventLogoutSent, StateLogoutPending},
		{StateActive, EventLogoutReceived, StateLogoutReceived},
		{StateActive, EventHeartbeatTimeout, StateError},
		{StateActive, EventDisconnect, StateDisconnected},
		{StateLogoutPending, EventLogoutReceived, StateLogoutReceived},
		{StateLogoutPending, EventDisconnect, StateDisconnected},
		{StateLogoutReceived, EventDisconnect, StateDisconnected},
		{StateDisconnected, EventError, StateError},
		{StateActive, EventError, StateError},
		{StateError, EventError, StateError},
	}
	for _, c := range cases {
		if got := nextState(c.from, c.event); got != c.want {
			t.Errorf("nextState(%v, %v) = %v, want %v", c.from, c.event, got, c.want)
		}
	}
}

func TestStateInvalidPairsUnchanged(t *testing.T) {
	cases := []struct {
		from  State
		event Event
	}{
		{StateDisconnected, EventLogonReceived},
		{StateActive, EventConnect},
		{StateLogonSent, EventDisconnect},
		{StateLogoutReceived, EventLogonReceived},
	}
	for _, c := range cases {
		if got := nextState(c.from, c.event); got != c.from {
			t.Errorf("nextState(%v, %v) = %v, want unchanged", c.from, c.event, got)
		}
	}
}

func TestCanSendAppMessages(t *testing.T) {
	for s := StateDisconnected; s <= StateError; s++ {
		want := s == StateActive
		if canSendAppMessages(s) != want {
			t.Errorf("canSendAppMessages(%v) = %v", s, !want)
		}
	}
}
