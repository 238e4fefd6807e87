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

// Dictionary is a queryable, version-parameterized FIX schema. It is
// immutable after Load returns and safe to share by pointer across any
// number of decoders/encoders.
type Dictionary struct {
	version string

	fieldsByTag  map[uint32]*FieldDef
	fieldsByName map[string]*FieldDef
	components   map[uint32]*ComponentDef
	componentsBy map[string]*ComponentDef
	messages     map[string]*MessageDef
	datatypes    map[string]*Datatype

	fieldOrder   []*FieldDef
	messageOrder []*MessageDef

	groupsByCountTag map[uint32]*GroupDef
}

func newDictionary(version string) *Dictionary {
	return &Dictionary{
		version:          version,
		fieldsByTag:      make(map[uint32]*FieldDef),
		fieldsByName:     make(map[string]*FieldDef),
		components:       make(map[uint32]*ComponentDef),
		componentsBy:     make(map[string]*ComponentDef),
		messages:         make(map[string]*MessageDef),
		datatypes:        make(map[string]*Datatype),
		groupsByCountTag: make(map[uint32]*GroupDef),
	}
}

// Version reports the dictionary's protocol identifier, e.g. "FIX.4.4" or
// "FIXT.1.1-SP2".
func (d *Dictionary) Version() string { return d.version }

// FieldByTag looks up a field by its wire tag.
func (d *Dictionary) FieldByTag(tag uint32) (*FieldDef, bool) {
	f, ok := d.fieldsByTag[tag]
	return f, ok
}

// FieldByName looks up a field by its symbolic name.
func (d *Dictionary) FieldByName(name string) (*FieldDef, bool) {
	f, ok := d.fieldsByName[name]
	return f, ok
}

// MessageByMsgType looks up a message definition by its wire MsgType
// token (e.g. "D" for NewOrderSingle).
func (d *Dictionary) MessageByMsgType(msgType string) (*MessageDef, bool) {
	m, ok := d.messages[msgType]
	return m, ok
}

// ComponentByID looks up a component by its numeric id.
func (d *Dictionary) ComponentByID(id uint32) (*ComponentDef, bool) {
	c, ok := d.components[id]
	return c, ok
}

// ComponentByName looks up a component by its symbolic name.
func (d *Dictionary) ComponentByName(name string) (*ComponentDef, bool) {
	c, ok := d.componentsBy[name]
	return c, ok
}

// DatatypeByName looks up a datatype by its symbolic name.
func (d *Dictionary) DatatypeByName(name string) (*Datatype, bool) {
	dt, ok := d.datatypes[name]
	return dt, ok
}

// GroupByCountTag looks up a repeating group's schema by the wire tag of
// its NumInGroup count field. A decoder uses this to learn which tags
// belong to a group's entry template, so it can tell a field that
// continues the group apart from one that terminates it.
func (d *Dictionary) GroupByCountTag(tag uint32) (*GroupDef, bool) {
	g, ok := d.groupsByCountTag[tag]
	return g, ok
}

// Fields returns every field in the dictionary, in load order.
func (d *Dictionary) Fields() []*FieldDef {
	return d.fieldOrder
}

// Messages returns every message in the dictionary, in load order.
func (d *Dictionary) Messages() []*MessageDef {
	return d.messageOrder
}
