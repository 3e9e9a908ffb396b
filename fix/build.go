// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fix

import (
	"strconv"
	"time"
)

// Field is one tag=value pair handed to Build.
type Field struct {
	Tag   int
	Value string
}

// Str builds a string field.
func Str(tag int, v string) Field { return Field{Tag: tag, Value: v} }

// Int builds an integer field.
func Int(tag, v int) Field { return Field{Tag: tag, Value: strconv.Itoa(v)} }

// Uint builds an unsigned integer field.
func Uint(tag int, v uint32) Field {
	return Field{Tag: tag, Value: strconv.FormatUint(uint64(v), 10)}
}

// Bool builds a Y/N flag field.
func Bool(tag int, v bool) Field {
	if v {
		return Field{Tag: tag, Value: "Y"}
	}
	return Field{Tag: tag, Value: "N"}
}

// Timestamp formats t as a FIX UTC timestamp (YYYYMMDD-HH:MM:SS).
func Timestamp(t time.Time) string {
	return t.UTC().Format("20060102-15:04:05")
}

// Build assembles a complete message: BeginString(8), BodyLength(9),
// MsgType(35), the given fields in order, and the CheckSum(10) trailer.
// BodyLength covers the bytes after its own SOH up to the trailer;
// CheckSum is the byte sum modulo 256 over everything before it.
func Build(beginString string, msgType byte, fields ...Field) []byte {
	body := make([]byte, 0, 256)
	body = appendField(body, TagMsgType, string(msgType))
	for _, f := range fields {
		body = appendField(body, f.Tag, f.Value)
	}

	msg := make([]byte, 0, len(body)+64)
	msg = appendField(msg, TagBeginString, beginString)
	msg = appendField(msg, TagBodyLength, strconv.Itoa(len(body)))
	msg = append(msg, body...)

	var sum uint32
	for _, b := range msg {
		sum += uint32(b)
	}
	cks := strconv.Itoa(int(sum % 256))
	for len(cks) < 3 {
		cks = "0" + cks
	}
	msg = appendField(msg, TagCheckSum, cks)
	return msg
}

func appendField(dst []byte, tag int, value string) []byte {
	dst = strconv.AppendInt(dst, int64(tag), 10)
	dst = append(dst, '=')
	dst = append(dst, value...)
	dst = append(dst, SOH)
	return dst
}
