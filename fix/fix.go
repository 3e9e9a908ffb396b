// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fix is the tag/value wire boundary of the session engine: SOH
// delimited tag=value parsing into a [Message], and message assembly with
// BodyLength and CheckSum computed over the assembled bytes.
package fix

// SOH is the FIX field delimiter.
const SOH = byte(0x01)

// Session-level message types.
const (
	MsgTypeHeartbeat     = byte('0')
	MsgTypeTestRequest   = byte('1')
	MsgTypeResendRequest = byte('2')
	MsgTypeReject        = byte('3')
	MsgTypeSequenceReset = byte('4')
	MsgTypeLogout        = byte('5')
	MsgTypeLogon         = byte('A')
)

// Tags used by the session layer.
const (
	TagBeginString     = 8
	TagBodyLength      = 9
	TagCheckSum        = 10
	TagMsgType         = 35
	TagBeginSeqNo      = 7
	TagEndSeqNo        = 16
	TagMsgSeqNum       = 34
	TagNewSeqNo        = 36
	TagPossDupFlag     = 43
	TagSenderCompID    = 49
	TagSendingTime     = 52
	TagTargetCompID    = 56
	TagText            = 58
	TagEncryptMethod   = 98
	TagHeartBtInt      = 108
	TagTestReqID       = 112
	TagGapFillFlag     = 123
	TagResetSeqNumFlag = 141
)

// IsAdmin reports whether t is a session-level administrative type.
func IsAdmin(t byte) bool {
	switch t {
	case MsgTypeHeartbeat, MsgTypeTestRequest, MsgTypeResendRequest,
		MsgTypeReject, MsgTypeSequenceReset, MsgTypeLogout, MsgTypeLogon:
		return true
	}
	return false
}
