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

// Package dictionary models the version-parameterized FIX schema: datatypes,
// fields, components, and messages, loaded from a FIX 2010 repository XML
// tree and exposed for O(1) lookup.
package dictionary

// Base is the primitive base of a Datatype, independent of the symbolic
// name a given FIX version gives it (e.g. "Price" and "Amt" both base on
// BaseFloat).
type Base int

const (
	BaseUnknown Base = iota
	BaseInt
	BaseFloat
	BaseChar
	BaseString
	BaseData
	BaseBoolean
	BaseUTCTimestamp
	BaseUTCTimeOnly
	BaseUTCDateOnly
	BaseLocalMktDate
	BaseMonthYear
	BaseTZTimestamp
	BaseTZTimeOnly
	BaseMultipleCharValue
	BaseMultipleStringValue
)

// Datatype is a named primitive with parsing/formatting rules. Immutable
// once a Dictionary finishes loading.
type Datatype struct {
	Name string
	Base Base
}

// EnumValue is one legal wire value for a Field.
type EnumValue struct {
	Value       string
	Symbol      string
	SortKey     string
	Description string
}

// FieldDef is a field's schema: its wire tag, symbolic name, datatype, and
// (for a Length field) the tag of the data field it governs.
type FieldDef struct {
	Tag               uint32
	Name              string
	Datatype          *Datatype
	Enums             []EnumValue
	AssociatedDataTag uint32 // 0 if this field does not precede a data field
	IsNumInGroup      bool
}

// EnumBySymbol finds an enum value by its symbolic name, or the zero value
// and false if none matches.
func (f *FieldDef) EnumBySymbol(symbol string) (EnumValue, bool) {
	for _, e := range f.Enums {
		if e.Symbol == symbol {
			return e, true
		}
	}
	return EnumValue{}, false
}

// EnumByValue finds an enum value by its wire literal, or the zero value
// and false if none matches.
func (f *FieldDef) EnumByValue(value string) (EnumValue, bool) {
	for _, e := range f.Enums {
		if e.Value == value {
			return e, true
		}
	}
	return EnumValue{}, false
}

// MemberKind distinguishes the three things a MemberSpec can reference.
type MemberKind int

const (
	MemberField MemberKind = iota
	MemberComponent
	MemberGroup
)

// MemberSpec is one entry in a component's or message's ordered member
// list: either a field reference, a nested component reference, or a
// repeating group (a NumInGroup field followed by an entry template).
type MemberSpec struct {
	Kind      MemberKind
	Required  bool
	Field     *FieldDef    // set when Kind == MemberField or MemberGroup (the NumInGroup field)
	Component *ComponentDef // set when Kind == MemberComponent
	Group     *GroupDef    // set when Kind == MemberGroup
}

// GroupDef describes a repeating list: the NumInGroup field controlling
// its entry count, and the ordered entry template whose first member is
// the delimiter.
type GroupDef struct {
	CountField *FieldDef
	Entries    []MemberSpec
}

// Delimiter returns the tag of the first field in the entry template
// (looking inside a leading component, and counting a nested group's
// NumInGroup field as a field), or 0 if the group has no field-typed
// delimiter (malformed dictionary).
func (g *GroupDef) Delimiter() uint32 {
	for _, m := range g.Entries {
		if m.Kind == MemberField && m.Field != nil {
			return m.Field.Tag
		}
		if m.Kind == MemberComponent && m.Component != nil {
			inner := GroupDef{Entries: m.Component.Members}
			if tag := inner.Delimiter(); tag != 0 {
				return tag
			}
		}
		if m.Kind == MemberGroup && m.Group != nil {
			return m.Group.CountField.Tag
		}
	}
	return 0
}

// ComponentDef is a named, ordered list of member specs. Components have
// no wire identity; they are a reuse mechanism for messages and other
// components.
type ComponentDef struct {
	ID      uint32
	Name    string
	Members []MemberSpec
}

// MessageDef describes one FIX message type: its MsgType token, name,
// category/section metadata, and ordered body (standard header/trailer are
// implicit and not part of Body).
type MessageDef struct {
	MsgType  string
	Name     string
	Category string
	Section  string
	Body     []MemberSpec
}
