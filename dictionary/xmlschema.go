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

import "encoding/xml"

// The structs below mirror the FIX 2010 repository layout described in
// spec.md §4.1/§6: one XML file per record kind, cross-referenced by
// primary key (tag, component id, msg type, datatype name). Component and
// message bodies are stored in MsgContents.xml, keyed by the ComponentID
// that Components.xml/Messages.xml entries carry — this mirrors how the
// real FIX repository shares one ComponentID namespace between messages
// and reusable components.

type xmlDatatypes struct {
	XMLName   xml.Name       `xml:"Datatypes"`
	Datatypes []xmlDatatype `xml:"Datatype"`
}

type xmlDatatype struct {
	Name string `xml:"Name,attr"`
	Base string `xml:"Base,attr"`
}

type xmlFields struct {
	XMLName xml.Name   `xml:"Fields"`
	Fields  []xmlField `xml:"Field"`
}

type xmlField struct {
	Tag               uint32 `xml:"Tag,attr"`
	Name              string `xml:"Name,attr"`
	Type              string `xml:"Type,attr"`
	AssociatedDataTag uint32 `xml:"AssociatedDataTag,attr"`
}

type xmlEnums struct {
	XMLName xml.Name  `xml:"Enums"`
	Enums   []xmlEnum `xml:"Enum"`
}

type xmlEnum struct {
	Tag         uint32 `xml:"Tag,attr"`
	Value       string `xml:"Value,attr"`
	Symbol      string `xml:"Symbol,attr"`
	SortKey     string `xml:"SortKey,attr"`
	Description string `xml:"Description,attr"`
}

type xmlComponents struct {
	XMLName    xml.Name       `xml:"Components"`
	Components []xmlComponent `xml:"Component"`
}

type xmlComponent struct {
	ComponentID uint32 `xml:"ComponentID,attr"`
	Name        string `xml:"Name,attr"`
}

type xmlMessages struct {
	XMLName  xml.Name     `xml:"Messages"`
	Messages []xmlMessage `xml:"Message"`
}

type xmlMessage struct {
	MsgType     string `xml:"MsgType,attr"`
	Name        string `xml:"Name,attr"`
	Category    string `xml:"Category,attr"`
	Section     string `xml:"Section,attr"`
	ComponentID uint32 `xml:"ComponentID,attr"`
}

type xmlMsgContents struct {
	XMLName  xml.Name        `xml:"MsgContents"`
	Contents []xmlMsgContent `xml:"MsgContent"`
}

type xmlMsgContent struct {
	ComponentID uint32        `xml:"ComponentID,attr"`
	Members     []xmlMemberEl `xml:",any"`
}

// xmlMemberEl covers <Field>, <Component>, and <Group> children of a
// <MsgContent>. Go's encoding/xml can't discriminate element kinds in a
// single `,any` slot by tag name into distinct struct types, so every
// possible attribute lives here and the loader switches on XMLName.Local.
type xmlMemberEl struct {
	XMLName        xml.Name
	Tag            uint32        `xml:"Tag,attr"`
	ComponentID    uint32        `xml:"ComponentID,attr"`
	NumInGroupTag  uint32        `xml:"NumInGroupTag,attr"`
	Required       string        `xml:"Required,attr"`
	Members        []xmlMemberEl `xml:",any"` // only populated for <Group>
}

func (m xmlMemberEl) required() bool { return m.Required == "Y" }
