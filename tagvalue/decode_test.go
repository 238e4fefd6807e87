/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package tagvalue

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"prime-fix-engine-go/dictionary"
)

const miniDatatypesXML = `<Datatypes>
  <Datatype Name="int" Base="int"/>
  <Datatype Name="String" Base="String"/>
  <Datatype Name="NUMINGROUP" Base="int"/>
</Datatypes>`

const miniFieldsXML = `<Fields>
  <Field Tag="8" Name="BeginString" Type="String"/>
  <Field Tag="9" Name="BodyLength" Type="int"/>
  <Field Tag="10" Name="CheckSum" Type="String"/>
  <Field Tag="34" Name="MsgSeqNum" Type="int"/>
  <Field Tag="35" Name="MsgType" Type="String"/>
  <Field Tag="49" Name="SenderCompID" Type="String"/>
  <Field Tag="52" Name="SendingTime" Type="String"/>
  <Field Tag="56" Name="TargetCompID" Type="String"/>
  <Field Tag="15" Name="Currency" Type="String"/>
  <Field Tag="59" Name="TimeInForce" Type="String"/>
  <Field Tag="268" Name="NoMDEntries" Type="NUMINGROUP"/>
  <Field Tag="269" Name="MDEntryType" Type="String"/>
  <Field Tag="278" Name="MDEntryID" Type="String"/>
</Fields>`

const miniEnumsXML = `<Enums></Enums>`
const miniComponentsXML = `<Components></Components>`
const miniMessagesXML = `<Messages>
  <Message MsgType="D" Name="NewOrderSingle" Category="app" Section="Trade" ComponentID="1"/>
  <Message MsgType="X" Name="MarketDataIncrementalRefresh" Category="app" Section="MarketData" ComponentID="2"/>
</Messages>`
const miniMsgContentsXML = `<MsgContents>
  <MsgContent ComponentID="1">
    <Field Tag="15" Required="N"/>
    <Field Tag="59" Required="N"/>
  </MsgContent>
  <MsgContent ComponentID="2">
    <Group NumInGroupTag="268" Required="N">
      <Field Tag="269" Required="Y"/>
      <Field Tag="278" Required="N"/>
    </Group>
  </MsgContent>
</MsgContents>`

func writeMiniDict(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"Datatypes.xml":   miniDatatypesXML,
		"Fields.xml":      miniFieldsXML,
		"Enums.xml":       miniEnumsXML,
		"Components.xml":  miniComponentsXML,
		"Messages.xml":    miniMessagesXML,
		"MsgContents.xml": miniMsgContentsXML,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
	return dir
}

func testDictForDecode(t *testing.T) *dictionary.Dictionary {
	d, err := dictionary.Load(writeMiniDict(t), "FIX.4.2", dictionary.Options{})
	if err != nil {
		t.Fatalf("dictionary.Load error = %v", err)
	}
	return d
}

func TestDecodeSimpleMessage(t *testing.T) {
	dict := testDictForDecode(t)
	dec := NewDecoder(dict, testConfig())

	data := withSOH("8=FIX.4.2|9=40|35=D|49=AFUNDMGR|56=ABROKER|15=USD|59=0|10=254|")
	frame, _, status, err := ScanFrame(data, testConfig())
	if err != nil || status != ScanComplete {
		t.Fatalf("ScanFrame: status=%v err=%v", status, err)
	}

	msg, err := dec.Decode(frame)
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}

	if mt, ok := msg.MsgType(); !ok || mt != "D" {
		t.Fatalf("MsgType() = %q, %v", mt, ok)
	}
	if bs, ok := msg.GetString(8); !ok || bs != "FIX.4.2" {
		t.Fatalf("GetString(8) = %q, %v", bs, ok)
	}
	if v, ok := msg.GetString(49); !ok || v != "AFUNDMGR" {
		t.Fatalf("GetString(49) = %q, %v", v, ok)
	}
}

func TestDecodeRepeatingGroup(t *testing.T) {
	dict := testDictForDecode(t)
	dec := NewDecoder(dict, testConfig())

	// 268=NoMDEntries, 269=MDEntryType, 278=MDEntryID — mirrors the
	// rust decoder.rs repeating_group_entries fixture shape.
	body := "35=X\x01268=2\x01269=0\x01278=BID\x01269=1\x01278=OFFER\x01"
	header := "8=FIX.4.2\x019=" + itoa(len(body)) + "\x01"
	full := header + body
	cs := checksumString(full)
	data := []byte(full + "10=" + cs + "\x01")

	frame, _, status, err := ScanFrame(data, testConfig())
	if err != nil || status != ScanComplete {
		t.Fatalf("ScanFrame: status=%v err=%v", status, err)
	}

	msg, err := dec.Decode(frame)
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}

	group, ok := msg.Group(268)
	if !ok || group.Len() != 2 {
		t.Fatalf("Group(268) = %+v, %v", group, ok)
	}

	e0, ok := group.Entry(0)
	if !ok {
		t.Fatal("Entry(0) missing")
	}
	if v, ok := e0.GetRaw(278); !ok || string(v) != "BID" {
		t.Fatalf("Entry(0).GetRaw(278) = %q, %v", v, ok)
	}

	e1, ok := group.Entry(1)
	if !ok {
		t.Fatal("Entry(1) missing")
	}
	if v, ok := e1.GetRaw(278); !ok || string(v) != "OFFER" {
		t.Fatalf("Entry(1).GetRaw(278) = %q, %v", v, ok)
	}
}

func TestDecodeGroupFollowedByTopLevelField(t *testing.T) {
	dict := testDictForDecode(t)
	dec := NewDecoder(dict, testConfig())

	// A group that is not the last thing before CheckSum: 15=USD trails
	// the NoMDEntries group and must land at top level, not inside the
	// group's last entry.
	body := "35=X\x01268=2\x01269=0\x01278=BID\x01269=1\x01278=OFFER\x0115=USD\x01"
	header := "8=FIX.4.2\x019=" + itoa(len(body)) + "\x01"
	full := header + body
	cs := checksumString(full)
	data := []byte(full + "10=" + cs + "\x01")

	frame, _, status, err := ScanFrame(data, testConfig())
	if err != nil || status != ScanComplete {
		t.Fatalf("ScanFrame: status=%v err=%v", status, err)
	}

	msg, err := dec.Decode(frame)
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}

	if v, ok := msg.GetString(15); !ok || v != "USD" {
		t.Fatalf("GetString(15) = %q, %v, want USD, true", v, ok)
	}

	group, ok := msg.Group(268)
	if !ok || group.Len() != 2 {
		t.Fatalf("Group(268) = %+v, %v", group, ok)
	}
	e1, ok := group.Entry(1)
	if !ok {
		t.Fatal("Entry(1) missing")
	}
	if _, ok := e1.GetRaw(15); ok {
		t.Fatal("Entry(1).GetRaw(15) = true, want false (15 belongs to top level, not the group)")
	}
}

func TestDecodeDuplicateTopLevelTag(t *testing.T) {
	dict := testDictForDecode(t)
	dec := NewDecoder(dict, testConfig())

	body := "35=D\x0149=A\x0149=B\x01"
	header := "8=FIX.4.2\x019=" + itoa(len(body)) + "\x01"
	full := header + body
	cs := checksumString(full)
	data := []byte(full + "10=" + cs + "\x01")

	frame, _, status, err := ScanFrame(data, testConfig())
	if err != nil || status != ScanComplete {
		t.Fatalf("ScanFrame: status=%v err=%v", status, err)
	}

	_, err = dec.Decode(frame)
	if err == nil {
		t.Fatal("Decode() error = nil, want duplicate tag error")
	}
	decErr, ok := err.(*DecodeError)
	if !ok || decErr.Kind != DuplicateTag {
		t.Fatalf("Decode() error = %v, want *DecodeError{Kind: DuplicateTag}", err)
	}
}

func TestDecodeDuplicateTagAcrossGroupEntriesIsAllowed(t *testing.T) {
	dict := testDictForDecode(t)
	dec := NewDecoder(dict, testConfig())

	// Tag 278 repeats once per entry; that is not a duplicate, since each
	// occurrence is scoped to a different entry.
	body := "35=X\x01268=2\x01269=0\x01278=BID\x01269=1\x01278=OFFER\x01"
	header := "8=FIX.4.2\x019=" + itoa(len(body)) + "\x01"
	full := header + body
	cs := checksumString(full)
	data := []byte(full + "10=" + cs + "\x01")

	frame, _, status, err := ScanFrame(data, testConfig())
	if err != nil || status != ScanComplete {
		t.Fatalf("ScanFrame: status=%v err=%v", status, err)
	}
	if _, err := dec.Decode(frame); err != nil {
		t.Fatalf("Decode error = %v", err)
	}
}

func TestDecodeUnknownTagStrict(t *testing.T) {
	dict := testDictForDecode(t)
	cfg := testConfig()
	dec := NewDecoder(dict, cfg)

	body := "35=D\x0149=A\x0199999=X\x01"
	header := "8=FIX.4.2\x019=" + itoa(len(body)) + "\x01"
	full := header + body
	cs := checksumString(full)
	data := []byte(full + "10=" + cs + "\x01")

	frame, _, status, err := ScanFrame(data, cfg)
	if err != nil || status != ScanComplete {
		t.Fatalf("ScanFrame: status=%v err=%v", status, err)
	}
	if _, err := dec.Decode(frame); err == nil {
		t.Fatal("Decode() error = nil, want unknown tag error")
	}
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func checksumString(s string) string {
	sum := 0
	for i := 0; i < len(s); i++ {
		sum += int(s[i])
	}
	sum %= 256
	return zeroPadChecksum(sum)
}
