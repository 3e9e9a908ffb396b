// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

// SequenceResult classifies an inbound sequence number against the
// expected one.
type SequenceResult uint8

const (
	// SeqExpected: the message carries exactly the expected sequence.
	SeqExpected SequenceResult = iota
	// SeqTooLow: the sequence was already consumed.
	SeqTooLow
	// SeqGapDetected: one or more messages were skipped.
	SeqGapDetected
)

// SequenceManager tracks the outbound allocation counter and the expected
// inbound sequence. Both start at 1 and stay >= 1.
type SequenceManager struct {
	nextOutbound    uint32
	expectedInbound uint32
}

// NewSequenceManager returns a manager with both sequences at 1.
func NewSequenceManager() SequenceManager {
	return SequenceManager{nextOutbound: 1, expectedInbound: 1}
}

// NextOutbound allocates the next outbound sequence: returns the current
// value, then increments. Allocation order is transmission order.
func (m *SequenceManager) NextOutbound() uint32 {
	n := m.nextOutbound
	m.nextOutbound++
	return n
}

// CurrentOutbound returns the next unallocated outbound sequence.
func (m *SequenceManager) CurrentOutbound() uint32 {
	return m.nextOutbound
}

// LastOutbound returns the most recently allocated outbound sequence.
// Zero before the first allocation.
func (m *SequenceManager) LastOutbound() uint32 {
	return m.nextOutbound - 1
}

// ExpectedInbound returns the next expected inbound sequence.
func (m *SequenceManager) ExpectedInbound() uint32 {
	return m.expectedInbound
}

// ValidateInbound classifies received. On SeqExpected the expected
// counter advances by one; SeqTooLow and SeqGapDetected leave it alone.
func (m *SequenceManager) ValidateInbound(received uint32) SequenceResult {
	switch {
	case received == m.expectedInbound:
		m.expectedInbound++
		return SeqExpected
	case received < m.expectedInbound:
		return SeqTooLow
	default:
		return SeqGapDetected
	}
}

// GapRange returns the missing range [expected, received-1] for a
// detected gap.
func (m *SequenceManager) GapRange(received uint32) (begin, end uint32) {
	return m.expectedInbound, received - 1
}

// SetInbound overrides the expected inbound sequence (SequenceReset,
// persisted hand-off).
func (m *SequenceManager) SetInbound(seq uint32) {
	if seq < 1 {
		seq = 1
	}
	m.expectedInbound = seq
}

// SetOutbound overrides the outbound allocation counter (persisted
// hand-off).
func (m *SequenceManager) SetOutbound(seq uint32) {
	if seq < 1 {
		seq = 1
	}
	m.nextOutbound = seq
}

// Reset returns both sequences to 1.
func (m *SequenceManager) Reset() {
	m.nextOutbound = 1
	m.expectedInbound = 1
}
