// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"testing"
	"testing/quick"
)

func TestOutboundAllocation(t *testing.T) {
	m := NewSequenceManager()
	for want := uint32(1); want <= 5; want++ {
		if got := m.NextOutbound(); got != want {
			t.Fatalf("NextOutbound = %d, want %d", got, want)
		}
	}
	if m.CurrentOutbound() != 6 || m.LastOutbound() != 5 {
		t.Fatalf("current=%d last=%d", m.CurrentOutbound(), m.LastOutbound())
	}
}

func TestValidateInbound(t *testing.T) {
	m := NewSequenceManager()

	if r := m.ValidateInbound(1); r != SeqExpected {
		t.Fatalf("seq 1 = %v, want Expected", r)
	}
	if m.ExpectedInbound() != 2 {
		t.Fatalf("expected = %d, want 2", m.ExpectedInbound())
	}

	// Too low does not advance.
	if r := m.ValidateInbound(1); r != SeqTooLow {
		t.Fatalf("replayed seq = %v, want TooLow", r)
	}
	if m.ExpectedInbound() != 2 {
		t.Fatal("TooLow advanced expected")
	}

	// Gap leaves state alone and exposes the missing range.
	if r := m.ValidateInbound(9); r != SeqGapDetected {
		t.Fatalf("seq 9 = %v, want GapDetected", r)
	}
	if m.ExpectedInbound() != 2 {
		t.Fatal("gap advanced expected")
	}
	begin, end := m.GapRange(9)
	if begin != 2 || end != 8 {
		t.Fatalf("GapRange = [%d,%d], want [2,8]", begin, end)
	}
}

func TestSetAndReset(t *testing.T) {
	m := NewSequenceManager()
	m.SetInbound(17)
	m.SetOutbound(9)
	if m.ExpectedInbound() != 17 || m.CurrentOutbound() != 9 {
		t.Fatalf("in=%d out=%d", m.ExpectedInbound(), m.CurrentOutbound())
	}
	m.SetInbound(0) // clamps to 1
	if m.ExpectedInbound() != 1 {
		t.Fatalf("SetInbound(0) left %d", m.ExpectedInbound())
	}
	m.Reset()
	if m.CurrentOutbound() != 1 || m.ExpectedInbound() != 1 {
		t.Fatal("reset did not return both sequences to 1")
	}
}

// Feeding the expected sequence repeatedly advances one at a time with no
// repeats or gaps, regardless of interleaved invalid traffic.
func TestPropertySequenceDiscipline(t *testing.T) {
	property := func(noise []uint16) bool {
		m := NewSequenceManager()
		consumed := uint32(0)
		for _, v := range noise {
			seq := uint32(v)
			switch {
			case seq == m.ExpectedInbound():
				if m.ValidateInbound(seq) != SeqExpected {
					return false
				}
				consumed++
			case seq < m.ExpectedInbound():
				if m.ValidateInbound(seq) != SeqTooLow {
					return false
				}
			default:
				if m.ValidateInbound(seq) != SeqGapDetected {
					return false
				}
			}
			if m.ExpectedInbound() != consumed+1 {
				return false
			}
		}
		return true
	}
	if err := quick.Check(property, nil); err != nil {
		t.Fatal(err)
	}
}
