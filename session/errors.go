// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import "fmt"

// ErrorCode classifies session errors surfaced to callers.
type ErrorCode uint8

const (
	ErrNotConnected ErrorCode = iota
	ErrInvalidState
	ErrLogonTimeout
	ErrLogoutTimeout
	ErrHeartbeatTimeout
	ErrSequenceGap
	ErrDisconnected
)

// String implements fmt.Stringer.
func (c ErrorCode) String() string {
	switch c {
	case ErrNotConnected:
		return "NotConnected"
	case ErrInvalidState:
		return "InvalidState"
	case ErrLogonTimeout:
		return "LogonTimeout"
	case ErrLogoutTimeout:
		return "LogoutTimeout"
	case ErrHeartbeatTimeout:
		return "HeartbeatTimeout"
	case ErrSequenceGap:
		return "SequenceGap"
	case ErrDisconnected:
		return "Disconnected"
	default:
		return "Unknown"
	}
}

// Error is a session error value. Expected/Received are populated for
// sequence gaps.
type Error struct {
	Code     ErrorCode
	Expected uint32
	Received uint32
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Code == ErrSequenceGap {
		return fmt.Sprintf("session: sequence gap, expected %d received %d",
			e.Expected, e.Received)
	}
	return "session: " + e.Code.String()
}
