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

package dictionary

import (
	"os"
	"path/filepath"
	"testing"
)

const testDatatypesXML = `<Datatypes>
  <Datatype Name="int" Base="int"/>
  <Datatype Name="String" Base="String"/>
  <Datatype Name="NUMINGROUP" Base="int"/>
  <Datatype Name="Price" Base="float"/>
  <Datatype Name="char" Base="char"/>
</Datatypes>`

const testFieldsXML = `<Fields>
  <Field Tag="11" Name="ClOrdID" Type="String"/>
  <Field Tag="55" Name="Symbol" Type="String"/>
  <Field Tag="54" Name="Side" Type="char" AssociatedDataTag="0"/>
  <Field Tag="44" Name="Price" Type="Price"/>
  <Field Tag="453" Name="NoPartyIDs" Type="NUMINGROUP"/>
  <Field Tag="448" Name="PartyID" Type="String"/>
  <Field Tag="8" Name="BeginString" Type="String"/>
  <Field Tag="9" Name="BodyLength" Type="int"/>
  <Field Tag="35" Name="MsgType" Type="String"/>
  <Field Tag="49" Name="SenderCompID" Type="String"/>
  <Field Tag="56" Name="TargetCompID" Type="String"/>
  <Field Tag="34" Name="MsgSeqNum" Type="int"/>
  <Field Tag="52" Name="SendingTime" Type="String"/>
  <Field Tag="10" Name="CheckSum" Type="String"/>
</Fields>`

const testEnumsXML = `<Enums>
  <Enum Tag="54" Value="1" Symbol="BUY" SortKey="1" Description="Buy"/>
  <Enum Tag="54" Value="2" Symbol="SELL" SortKey="2" Description="Sell"/>
</Enums>`

const testComponentsXML = `<Components>
  <Component ComponentID="1" Name="Instrument"/>
  <Component ComponentID="2" Name="Parties"/>
</Components>`

const testMessagesXML = `<Messages>
  <Message MsgType="D" Name="NewOrderSingle" Category="app" Section="Trade" ComponentID="100"/>
</Messages>`

const testMsgContentsXML = `<MsgContents>
  <MsgContent ComponentID="1">
    <Field Tag="55" Required="Y"/>
  </MsgContent>
  <MsgContent ComponentID="2">
    <Group NumInGroupTag="453" Required="N">
      <Field Tag="448" Required="Y"/>
    </Group>
  </MsgContent>
  <MsgContent ComponentID="100">
    <Field Tag="11" Required="Y"/>
    <Component ComponentID="1" Required="Y"/>
    <Component ComponentID="2" Required="N"/>
    <Field Tag="54" Required="Y"/>
  </MsgContent>
</MsgContents>`

func writeTestDictionaryFiles(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		"Datatypes.xml":   testDatatypesXML,
		"Fields.xml":      testFieldsXML,
		"Enums.xml":       testEnumsXML,
		"Components.xml":  testComponentsXML,
		"Messages.xml":    testMessagesXML,
		"MsgContents.xml": testMsgContentsXML,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", name, err)
		}
	}
}

func TestLoadResolvesFieldsComponentsAndGroups(t *testing.T) {
	dir := t.TempDir()
	writeTestDictionaryFiles(t, dir)

	d, err := Load(dir, "FIX.4.4", Options{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if d.Version() != "FIX.4.4" {
		t.Fatalf("Version() = %q", d.Version())
	}

	price, ok := d.FieldByName("Price")
	if !ok || price.Datatype == nil || price.Datatype.Base != BaseFloat {
		t.Fatalf("Price field not resolved correctly: %+v", price)
	}

	side, ok := d.FieldByTag(54)
	if !ok {
		t.Fatal("Side field missing")
	}
	if ev, ok := side.EnumBySymbol("BUY"); !ok || ev.Value != "1" {
		t.Fatalf("Side enums not resolved: %+v", side.Enums)
	}

	msg, ok := d.MessageByMsgType("D")
	if !ok {
		t.Fatal("NewOrderSingle missing")
	}
	if len(msg.Body) != 4 {
		t.Fatalf("NewOrderSingle.Body len = %d, want 4", len(msg.Body))
	}
	if msg.Body[0].Kind != MemberField || msg.Body[0].Field.Name != "ClOrdID" {
		t.Fatalf("Body[0] = %+v", msg.Body[0])
	}
	if msg.Body[1].Kind != MemberComponent || msg.Body[1].Component.Name != "Instrument" {
		t.Fatalf("Body[1] = %+v", msg.Body[1])
	}

	parties, ok := d.ComponentByName("Parties")
	if !ok || len(parties.Members) != 1 || parties.Members[0].Kind != MemberGroup {
		t.Fatalf("Parties component not resolved: %+v", parties)
	}
	group := parties.Members[0].Group
	if group.CountField.Tag != 453 {
		t.Fatalf("group CountField = %+v", group.CountField)
	}
	if group.Delimiter() != 448 {
		t.Fatalf("group.Delimiter() = %d, want 448", group.Delimiter())
	}

	header, ok := d.ComponentByName("StandardHeader")
	if !ok {
		t.Fatal("StandardHeader was not synthesized")
	}
	if len(header.Members) != 7 {
		t.Fatalf("StandardHeader.Members len = %d, want 7", len(header.Members))
	}

	trailer, ok := d.ComponentByName("StandardTrailer")
	if !ok || len(trailer.Members) != 1 {
		t.Fatalf("StandardTrailer not synthesized correctly: %+v", trailer)
	}
}

func TestLoadDanglingFieldReference(t *testing.T) {
	dir := t.TempDir()
	writeTestDictionaryFiles(t, dir)
	// Reference a tag that does not exist in Fields.xml.
	bad := `<MsgContents>
  <MsgContent ComponentID="1">
    <Field Tag="9999" Required="Y"/>
  </MsgContent>
  <MsgContent ComponentID="2">
    <Group NumInGroupTag="453" Required="N">
      <Field Tag="448" Required="Y"/>
    </Group>
  </MsgContent>
  <MsgContent ComponentID="100">
    <Field Tag="11" Required="Y"/>
  </MsgContent>
</MsgContents>`
	if err := os.WriteFile(filepath.Join(dir, "MsgContents.xml"), []byte(bad), 0o644); err != nil {
		t.Fatalf("rewriting MsgContents.xml: %v", err)
	}

	_, err := Load(dir, "FIX.4.4", Options{})
	if err == nil {
		t.Fatal("Load() error = nil, want dangling reference error")
	}
	le, ok := err.(*LoadError)
	if !ok || le.Kind != DanglingReference {
		t.Fatalf("Load() error = %v, want *LoadError{Kind: DanglingReference}", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir, "FIX.4.4", Options{})
	if err == nil {
		t.Fatal("Load() error = nil, want malformed-XML/read error")
	}
	le, ok := err.(*LoadError)
	if !ok || le.Kind != MalformedXML {
		t.Fatalf("Load() error = %v, want *LoadError{Kind: MalformedXML}", err)
	}
}

func TestLoadDuplicateFieldTag(t *testing.T) {
	dir := t.TempDir()
	writeTestDictionaryFiles(t, dir)
	dup := testFieldsXML[:len(testFieldsXML)-len("</Fields>")] +
		`<Field Tag="11" Name="ClOrdID2" Type="String"/></Fields>`
	if err := os.WriteFile(filepath.Join(dir, "Fields.xml"), []byte(dup), 0o644); err != nil {
		t.Fatalf("rewriting Fields.xml: %v", err)
	}

	_, err := Load(dir, "FIX.4.4", Options{})
	if err == nil {
		t.Fatal("Load() error = nil, want duplicate key error")
	}
	le, ok := err.(*LoadError)
	if !ok || le.Kind != DuplicateKey {
		t.Fatalf("Load() error = %v, want *LoadError{Kind: DuplicateKey}", err)
	}
}
