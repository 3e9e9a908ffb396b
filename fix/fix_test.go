// ©Silverstreams AI, Inc. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fix_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/SilverstreamsAI/NexusFix/fix"
)

// soh replaces | with the SOH delimiter in readable fixtures.
func soh(s string) []byte {
	return []byte(strings.ReplaceAll(s, "|", "\x01"))
}

func TestParseLogon(t *testing.T) {
	data := soh("8=FIX.4.4|9=63|35=A|49=TARGET|56=SENDER|34=1|52=20231215-10:30:00|98=0|108=30|10=173|")
	msg, err := fix.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if msg.MsgType() != fix.MsgTypeLogon {
		t.Fatalf("MsgType = %c, want A", msg.MsgType())
	}
	if msg.MsgSeqNum() != 1 {
		t.Fatalf("MsgSeqNum = %d, want 1", msg.MsgSeqNum())
	}
	if v, okInt := msg.GetInt(fix.TagHeartBtInt); !okInt || v != 30 {
		t.Fatalf("HeartBtInt = %d (%v), want 30", v, okInt)
	}
	if v, okStr := msg.GetString(fix.TagSenderCompID); !okStr || v != "TARGET" {
		t.Fatalf("SenderCompID = %q, want TARGET", v)
	}
	if msg.PossDup() {
		t.Fatal("PossDup set without tag 43")
	}
}

func TestParsePossDup(t *testing.T) {
	data := soh("8=FIX.4.4|9=20|35=0|34=5|43=Y|")
	msg, err := fix.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !msg.PossDup() {
		t.Fatal("PossDup not detected")
	}
}

func TestParseRejectsChecksumMismatch(t *testing.T) {
	data := soh("8=FIX.4.4|9=63|35=A|49=TARGET|56=SENDER|34=1|52=20231215-10:30:00|98=0|108=30|10=999|")
	if _, err := fix.Parse(data); err != fix.ErrCheckSum {
		t.Fatalf("err = %v, want ErrCheckSum", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("not a fix message"), soh("8=FIX.4.4|banana|")} {
		if _, err := fix.Parse(data); err == nil {
			t.Fatalf("Parse(%q) accepted garbage", data)
		}
	}
}

func TestBuildMatchesFixture(t *testing.T) {
	got := fix.Build("FIX.4.4", fix.MsgTypeLogon,
		fix.Str(fix.TagSenderCompID, "TARGET"),
		fix.Str(fix.TagTargetCompID, "SENDER"),
		fix.Uint(fix.TagMsgSeqNum, 1),
		fix.Str(fix.TagSendingTime, "20231215-10:30:00"),
		fix.Int(fix.TagEncryptMethod, 0),
		fix.Int(fix.TagHeartBtInt, 30),
	)
	want := soh("8=FIX.4.4|9=63|35=A|49=TARGET|56=SENDER|34=1|52=20231215-10:30:00|98=0|108=30|10=173|")
	if !bytes.Equal(got, want) {
		t.Fatalf("Build = %q, want %q", got, want)
	}
}

func TestBuildRoundTrip(t *testing.T) {
	built := fix.Build("FIX.4.4", fix.MsgTypeTestRequest,
		fix.Str(fix.TagSenderCompID, "A"),
		fix.Str(fix.TagTargetCompID, "B"),
		fix.Uint(fix.TagMsgSeqNum, 7),
		fix.Str(fix.TagSendingTime, fix.Timestamp(time.Now())),
		fix.Str(fix.TagTestReqID, "TEST1"),
	)
	msg, err := fix.Parse(built)
	if err != nil {
		t.Fatalf("Parse of built message: %v", err)
	}
	if msg.MsgType() != fix.MsgTypeTestRequest || msg.MsgSeqNum() != 7 {
		t.Fatalf("round trip lost header: type=%c seq=%d", msg.MsgType(), msg.MsgSeqNum())
	}
	if id, _ := msg.GetString(fix.TagTestReqID); id != "TEST1" {
		t.Fatalf("TestReqID = %q, want TEST1", id)
	}
}

func TestTimestampFormat(t *testing.T) {
	ts := fix.Timestamp(time.Date(2023, 12, 15, 10, 30, 0, 0, time.UTC))
	if ts != "20231215-10:30:00" {
		t.Fatalf("Timestamp = %q", ts)
	}
}

func TestIsAdmin(t *testing.T) {
	for _, mt := range []byte{'0', '1', '2', '3', '4', '5', 'A'} {
		if !fix.IsAdmin(mt) {
			t.Fatalf("IsAdmin(%c) = false", mt)
		}
	}
	for _, mt := range []byte{'D', '8', 'j'} {
		if fix.IsAdmin(mt) {
			t.Fatalf("IsAdmin(%c) = true", mt)
		}
	}
}
