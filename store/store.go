// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package store provides the session message store: a tagged variant over
// a null sink and a bounded in-memory buffer, dispatched with a switch
// on the variant's kind tag instead of interface calls so store
// operations stay on the send hot path without indirect dispatch.
//
// Both variants carry a session identifier and the sender/target sequence
// fields used for externally persisted sequence recovery.
package store

import "math"

// Type enumerates the store variants.
type Type uint8

const (
	// Null accepts every store as a no-op and retrieves nothing.
	Null Type = iota
	// Memory keeps a bounded ordered buffer of (sequence, bytes) pairs.
	Memory
)

// DefaultMaxMessages bounds a memory store unless configured otherwise.
const DefaultMaxMessages = 10000

// Stats are the operation counters of a store.
type Stats struct {
	MessagesStored    uint64
	MessagesRetrieved uint64
	BytesStored       uint64
	StoreFailures     uint64
}

// NullStore accepts all stores and returns empty retrievals. The sequence
// fields still function, so a sequence hand-off works without retention.
type NullStore struct {
	sessionID  string
	nextSender uint32
	nextTarget uint32
}

// NewNull creates a null store variant.
func NewNull(sessionID string) *MessageStore {
	return &MessageStore{
		kind: Null,
		null: NullStore{sessionID: sessionID, nextSender: 1, nextTarget: 1},
	}
}

func (s *NullStore) store(uint32, []byte) bool       { return true }
func (s *NullStore) retrieve(uint32) ([]byte, bool)  { return nil, false }
func (s *NullStore) retrieveRange(_, _ uint32) [][]byte { return nil }

// entry is one retained message.
type entry struct {
	seq  uint32
	data []byte
}

// MemoryConfig configures a memory store variant.
type MemoryConfig struct {
	SessionID   string
	MaxMessages int
}

// MemoryStore keeps messages in insertion order up to a bounded capacity.
type MemoryStore struct {
	sessionID   string
	messages    []entry
	maxMessages int
	nextSender  uint32
	nextTarget  uint32
	stats       Stats
}

// NewMemory creates a memory store variant with the default capacity.
func NewMemory(sessionID string) *MessageStore {
	return NewMemoryConfig(MemoryConfig{SessionID: sessionID})
}

// NewMemoryConfig creates a memory store variant from cfg.
func NewMemoryConfig(cfg MemoryConfig) *MessageStore {
	max := cfg.MaxMessages
	if max <= 0 {
		max = DefaultMaxMessages
	}
	return &MessageStore{
		kind: Memory,
		memory: MemoryStore{
			sessionID:   cfg.SessionID,
			maxMessages: max,
			nextSender:  1,
			nextTarget:  1,
		},
	}
}

func (s *MemoryStore) store(seq uint32, msg []byte) bool {
	for i := range s.messages {
		if s.messages[i].seq == seq {
			s.messages[i].data = append(s.messages[i].data[:0], msg...)
			return true
		}
	}
	if len(s.messages) >= s.maxMessages {
		s.stats.StoreFailures++
		return false
	}
	data := make([]byte, len(msg))
	copy(data, msg)
	s.messages = append(s.messages, entry{seq: seq, data: data})
	s.stats.MessagesStored++
	s.stats.BytesStored += uint64(len(msg))
	return true
}

func (s *MemoryStore) retrieve(seq uint32) ([]byte, bool) {
	for i := range s.messages {
		if s.messages[i].seq == seq {
			s.stats.MessagesRetrieved++
			out := make([]byte, len(s.messages[i].data))
			copy(out, s.messages[i].data)
			return out, true
		}
	}
	return nil, false
}

func (s *MemoryStore) retrieveRange(begin, end uint32) [][]byte {
	actualEnd := end
	if end == 0 {
		actualEnd = math.MaxUint32
	}
	var out [][]byte
	for i := range s.messages {
		if s.messages[i].seq >= begin && s.messages[i].seq <= actualEnd {
			s.stats.MessagesRetrieved++
			cp := make([]byte, len(s.messages[i].data))
			copy(cp, s.messages[i].data)
			out = append(out, cp)
		}
	}
	return out
}

// MessageStore is the tagged variant over the store implementations.
// Adding a store kind means extending Type and the dispatch switches.
type MessageStore struct {
	kind   Type
	null   NullStore
	memory MemoryStore
}

// Type returns the variant kind.
func (s *MessageStore) Type() Type { return s.kind }

// IsNull reports whether this is the null variant.
func (s *MessageStore) IsNull() bool { return s.kind == Null }

// IsMemory reports whether this is the memory variant.
func (s *MessageStore) IsMemory() bool { return s.kind == Memory }

// Store retains msg under seq. In-place update when seq already exists;
// false on capacity overflow.
func (s *MessageStore) Store(seq uint32, msg []byte) bool {
	switch s.kind {
	case Memory:
		return s.memory.store(seq, msg)
	default:
		return s.null.store(seq, msg)
	}
}

// Retrieve returns the message stored under seq.
func (s *MessageStore) Retrieve(seq uint32) ([]byte, bool) {
	switch s.kind {
	case Memory:
		return s.memory.retrieve(seq)
	default:
		return s.null.retrieve(seq)
	}
}

// RetrieveRange returns, in insertion order, every message whose sequence
// lies in [begin, end]. end == 0 means "through the highest available".
func (s *MessageStore) RetrieveRange(begin, end uint32) [][]byte {
	switch s.kind {
	case Memory:
		return s.memory.retrieveRange(begin, end)
	default:
		return s.null.retrieveRange(begin, end)
	}
}

// SetNextSenderSeqNum sets the persisted outbound sequence field.
func (s *MessageStore) SetNextSenderSeqNum(seq uint32) {
	switch s.kind {
	case Memory:
		s.memory.nextSender = seq
	default:
		s.null.nextSender = seq
	}
}

// SetNextTargetSeqNum sets the persisted inbound sequence field.
func (s *MessageStore) SetNextTargetSeqNum(seq uint32) {
	switch s.kind {
	case Memory:
		s.memory.nextTarget = seq
	default:
		s.null.nextTarget = seq
	}
}

// NextSenderSeqNum returns the persisted outbound sequence field.
func (s *MessageStore) NextSenderSeqNum() uint32 {
	switch s.kind {
	case Memory:
		return s.memory.nextSender
	default:
		return s.null.nextSender
	}
}

// NextTargetSeqNum returns the persisted inbound sequence field.
func (s *MessageStore) NextTargetSeqNum() uint32 {
	switch s.kind {
	case Memory:
		return s.memory.nextTarget
	default:
		return s.null.nextTarget
	}
}

// Reset clears retained messages and returns both sequence fields to 1.
func (s *MessageStore) Reset() {
	switch s.kind {
	case Memory:
		s.memory.messages = s.memory.messages[:0]
		s.memory.nextSender = 1
		s.memory.nextTarget = 1
		s.memory.stats = Stats{}
	default:
		s.null.nextSender = 1
		s.null.nextTarget = 1
	}
}

// Flush is a no-op for both in-process variants.
func (s *MessageStore) Flush() {}

// SessionID returns the store's session identifier.
func (s *MessageStore) SessionID() string {
	switch s.kind {
	case Memory:
		return s.memory.sessionID
	default:
		return s.null.sessionID
	}
}

// Stats returns the operation counters.
func (s *MessageStore) Stats() Stats {
	switch s.kind {
	case Memory:
		return s.memory.stats
	default:
		return Stats{}
	}
}
