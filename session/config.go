// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

// Config is the immutable session configuration. It must outlive the
// session.
type Config struct {
	SenderCompID string
	TargetCompID string
	BeginString  string

	// HeartBtInt is the heartbeat interval in seconds (tag 108). The peer
	// may override it in its Logon reply.
	HeartBtInt int
	// LogonTimeout bounds the wait for the Logon reply, in seconds.
	LogonTimeout int
	// LogoutTimeout bounds the wait for the Logout reply, in seconds.
	LogoutTimeout int

	MaxReconnectAttempts int
	// ReconnectInterval is the backoff base in seconds; the supervisor
	// sleeps base<<attempt, capped at 60.
	ReconnectInterval int

	// ResetSeqNumOnLogon requests sequence reset (tag 141) and discards
	// any persisted sequence hand-off.
	ResetSeqNumOnLogon bool
}

// DefaultConfig returns a config with conventional FIX.4.4 defaults;
// CompIDs must still be filled in.
func DefaultConfig() Config {
	return Config{
		BeginString:          "FIX.4.4",
		HeartBtInt:           30,
		LogonTimeout:         10,
		LogoutTimeout:        5,
		MaxReconnectAttempts: 3,
		ReconnectInterval:    1,
	}
}
