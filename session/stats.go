// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import "code.hybscloud.com/atomix"

// Stats are the session's atomic operation counters. Readable from any
// thread while the session runs.
type Stats struct {
	MessagesSent     atomix.Uint64
	MessagesReceived atomix.Uint64
	BytesSent        atomix.Uint64
	BytesReceived    atomix.Uint64

	HeartbeatsSent     atomix.Uint64
	HeartbeatsReceived atomix.Uint64
	TestRequestsSent   atomix.Uint64
	ResendRequestsSent atomix.Uint64
	// ResendRequestsHandled counts inbound resend requests served from
	// the store or answered with a gap fill.
	ResendRequestsHandled atomix.Uint64
	SequenceResets        atomix.Uint64
}

// Snapshot is a plain-value copy of Stats.
type Snapshot struct {
	MessagesSent     uint64
	MessagesReceived uint64
	BytesSent        uint64
	BytesReceived    uint64

	HeartbeatsSent        uint64
	HeartbeatsReceived    uint64
	TestRequestsSent      uint64
	ResendRequestsSent    uint64
	ResendRequestsHandled uint64
	SequenceResets        uint64
}

// Snapshot returns a plain-value copy of the counters.
func (s *Stats) Snapshot() Snapshot {
	return Snapshot{
		MessagesSent:          s.MessagesSent.Load(),
		MessagesReceived:      s.MessagesReceived.Load(),
		BytesSent:             s.BytesSent.Load(),
		BytesReceived:         s.BytesReceived.Load(),
		HeartbeatsSent:        s.HeartbeatsSent.Load(),
		HeartbeatsReceived:    s.HeartbeatsReceived.Load(),
		TestRequestsSent:      s.TestRequestsSent.Load(),
		ResendRequestsSent:    s.ResendRequestsSent.Load(),
		ResendRequestsHandled: s.ResendRequestsHandled.Load(),
		SequenceResets:        s.SequenceResets.Load(),
	}
}
