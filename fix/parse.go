// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fix

import (
	"errors"
	"strconv"
)

var (
	// ErrMalformed reports a byte stream that is not a tag=value pipe.
	ErrMalformed = errors.New("fix: malformed message")
	// ErrCheckSum reports a trailer checksum that does not match the body.
	ErrCheckSum = errors.New("fix: checksum mismatch")
)

type field struct {
	tag   int
	value string
}

// Message is a parsed inbound message: ordered fields with typed access
// to the session-layer header values.
type Message struct {
	fields  []field
	msgType byte
	seqNum  uint32
	possDup bool
}

// Parse splits an SOH-delimited tag=value buffer into a Message. The
// message must carry MsgType(35); when a CheckSum(10) trailer is present
// it is verified over the preceding bytes.
func Parse(data []byte) (*Message, error) {
	if len(data) == 0 {
		return nil, ErrMalformed
	}
	m := &Message{fields: make([]field, 0, 16)}
	start := 0
	for start < len(data) {
		eq := -1
		end := -1
		for i := start; i < len(data); i++ {
			if data[i] == '=' && eq < 0 {
				eq = i
			} else if data[i] == SOH {
				end = i
				break
			}
		}
		if end < 0 {
			// Tolerate a missing trailing SOH on the final field.
			end = len(data)
		}
		if eq < 0 || eq == start {
			return nil, ErrMalformed
		}
		tag, err := strconv.Atoi(string(data[start:eq]))
		if err != nil {
			return nil, ErrMalformed
		}
		value := string(data[eq+1 : end])
		if tag == TagCheckSum {
			if err := verifyCheckSum(data[:start], value); err != nil {
				return nil, err
			}
		}
		m.fields = append(m.fields, field{tag: tag, value: value})
		start = end + 1
	}

	mt, ok := m.GetString(TagMsgType)
	if !ok || len(mt) != 1 {
		return nil, ErrMalformed
	}
	m.msgType = mt[0]
	if v, ok := m.GetInt(TagMsgSeqNum); ok {
		m.seqNum = uint32(v)
	}
	if v, ok := m.GetString(TagPossDupFlag); ok {
		m.possDup = v == "Y"
	}
	return m, nil
}

// MsgType returns the value of tag 35.
func (m *Message) MsgType() byte { return m.msgType }

// MsgSeqNum returns the value of tag 34, or 0 when absent.
func (m *Message) MsgSeqNum() uint32 { return m.seqNum }

// PossDup reports whether PossDupFlag(43) is set.
func (m *Message) PossDup() bool { return m.possDup }

// GetString returns the first occurrence of tag as a string.
func (m *Message) GetString(tag int) (string, bool) {
	for i := range m.fields {
		if m.fields[i].tag == tag {
			return m.fields[i].value, true
		}
	}
	return "", false
}

// GetInt returns the first occurrence of tag parsed as an integer.
func (m *Message) GetInt(tag int) (int, bool) {
	v, ok := m.GetString(tag)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func verifyCheckSum(body []byte, value string) error {
	want, err := strconv.Atoi(value)
	if err != nil {
		return ErrCheckSum
	}
	var sum uint32
	for _, b := range body {
		sum += uint32(b)
	}
	if int(sum%256) != want {
		return ErrCheckSum
	}
	return nil
}
