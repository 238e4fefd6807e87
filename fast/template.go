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

// Package fast implements the FAST (FIX Adapted for STreaming) binary
// encoding: template-driven presence maps, stateful field operators, and
// stop-bit primitive codecs.
package fast

import (
	"encoding/xml"
	"fmt"
	"os"
)

// Operator names one of the seven FAST field operators.
type Operator int

const (
	OpNone Operator = iota
	OpConstant
	OpDefault
	OpCopy
	OpIncrement
	OpDelta
	OpTail
)

// PrimitiveType names one of the FAST wire primitive encodings a field
// instruction may declare.
type PrimitiveType int

const (
	TypeU32 PrimitiveType = iota
	TypeI32
	TypeU64
	TypeI64
	TypeDecimal
	TypeAsciiString
	TypeUnicodeString
	TypeByteVector
)

// FieldInstruction is one entry in a Template's field sequence: a name, a
// wire id, a primitive type, mandatory/optional presence, an operator, and
// the operator's initial value (if the XML declared one).
type FieldInstruction struct {
	Name       string
	ID         uint32
	Type       PrimitiveType
	Mandatory  bool
	Operator   Operator
	InitialRaw string
	HasInitial bool
}

// Template is a named, ordered sequence of field instructions describing
// one FAST message shape. Templates are immutable once loaded and are
// shared by pointer across Decoders/Encoders that reference the same
// template id.
type Template struct {
	ID           uint32
	Name         string
	Instructions []FieldInstruction
}

// TemplateSet indexes a collection of Templates by id, as a FAST decoder
// needs to resolve the template id carried at the front of each message.
type TemplateSet struct {
	byID map[uint32]*Template
}

// NewTemplateSet builds an empty, mutable set that templates can be
// registered into via Add.
func NewTemplateSet() *TemplateSet {
	return &TemplateSet{byID: make(map[uint32]*Template)}
}

// Add registers t under its own ID, overwriting any prior registration.
func (s *TemplateSet) Add(t *Template) {
	s.byID[t.ID] = t
}

// ByID looks up a previously-registered template. The bool is false if no
// template with that id has been registered — corresponds to FAST's R1/D9
// "unknown template id" condition, which callers turn into an error with
// the right code for their context (decode vs. static reference).
func (s *TemplateSet) ByID(id uint32) (*Template, bool) {
	t, ok := s.byID[id]
	return t, ok
}

// rawElement is a generic XML element capturing its tag name, attributes,
// and element children without a fixed schema — the Go analogue of
// roxmltree's Node, which rustyfast's Template::from_xml walks generically
// rather than via a fixed struct shape.
type rawElement struct {
	XMLName  xml.Name
	Attrs    []xml.Attr   `xml:",any,attr"`
	Children []rawElement `xml:",any"`
}

func (e rawElement) attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// LoadTemplateSet reads a FAST template XML document from path and builds a
// TemplateSet keyed by each template's id attribute. Grounded on
// rustyfast's Template::from_xml: walk each <template>'s children
// generically, treat a <sequence> wrapper as transparent, skip <typeRef>,
// and dispatch every other element on its own tag name via
// xmlTagToPrimitive (the Go analogue of Template::xml_tag_to_instruction).
func LoadTemplateSet(path string) (*TemplateSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, staticErr("", "", S1)
	}

	var doc rawElement
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, staticErr("", "", S1)
	}

	set := NewTemplateSet()
	for _, child := range doc.Children {
		if child.XMLName.Local != "template" {
			continue
		}
		tmpl, err := parseTemplate(child)
		if err != nil {
			return nil, err
		}
		set.Add(tmpl)
	}
	return set, nil
}

func parseTemplate(node rawElement) (*Template, error) {
	name, ok := node.attr("name")
	if !ok {
		return nil, staticErr("", "", S1)
	}

	var id uint32
	if raw, ok := node.attr("id"); ok {
		if _, err := fmt.Sscanf(raw, "%d", &id); err != nil {
			return nil, staticErr(name, "", S1)
		}
	}

	var instructions []FieldInstruction
	for _, child := range node.Children {
		switch child.XMLName.Local {
		case "sequence":
			for _, entry := range child.Children {
				inst, err := parseFieldInstruction(name, entry)
				if err != nil {
					return nil, err
				}
				instructions = append(instructions, inst)
			}
		case "typeRef":
			// Template inheritance is out of scope; typeRef is skipped
			// the same way rustyfast's from_xml ignores it.
		default:
			inst, err := parseFieldInstruction(name, child)
			if err != nil {
				return nil, err
			}
			instructions = append(instructions, inst)
		}
	}

	return &Template{ID: id, Name: name, Instructions: instructions}, nil
}

func parseFieldInstruction(templateName string, node rawElement) (FieldInstruction, error) {
	name, ok := node.attr("name")
	if !ok {
		return FieldInstruction{}, staticErr(templateName, "", S1)
	}

	var id uint64
	if raw, ok := node.attr("id"); ok {
		if _, err := fmt.Sscanf(raw, "%d", &id); err != nil {
			return FieldInstruction{}, staticErr(templateName, name, S1)
		}
	}

	ptype, err := xmlTagToPrimitive(node.XMLName.Local)
	if err != nil {
		return FieldInstruction{}, staticErr(templateName, name, S2)
	}

	mandatory := true
	if raw, ok := node.attr("presence"); ok {
		mandatory = raw == "mandatory" || raw == "true"
	}

	op, initial, hasInitial, err := parseOperator(node)
	if err != nil {
		return FieldInstruction{}, staticErr(templateName, name, err.(StaticError))
	}

	if op == OpConstant && !hasInitial {
		return FieldInstruction{}, staticErr(templateName, name, S4)
	}
	if op == OpDefault && mandatory && !hasInitial {
		return FieldInstruction{}, staticErr(templateName, name, S5)
	}

	return FieldInstruction{
		Name:       name,
		ID:         uint32(id),
		Type:       ptype,
		Mandatory:  mandatory,
		Operator:   op,
		InitialRaw: initial,
		HasInitial: hasInitial,
	}, nil
}

// parseOperator finds the single operator child element (<copy/>,
// <constant value=".../>, ...), matching rustyfast's
// FieldInstruction::operator_from_node which looks at the first element
// child of the field node.
func parseOperator(node rawElement) (Operator, string, bool, error) {
	for _, child := range node.Children {
		initial, hasInitial := child.attr("value")
		switch child.XMLName.Local {
		case "copy":
			return OpCopy, initial, hasInitial, nil
		case "constant":
			return OpConstant, initial, hasInitial, nil
		case "default":
			return OpDefault, initial, hasInitial, nil
		case "increment":
			return OpIncrement, initial, hasInitial, nil
		case "delta":
			return OpDelta, initial, hasInitial, nil
		case "tail":
			return OpTail, initial, hasInitial, nil
		default:
			return OpNone, "", false, S1
		}
	}
	return OpNone, "", false, nil
}

// xmlTagToPrimitive maps a FAST template element's own tag name to a
// PrimitiveType, mirroring rustyfast's xml_tag_to_instruction.
func xmlTagToPrimitive(tag string) (PrimitiveType, error) {
	switch tag {
	case "string":
		return TypeAsciiString, nil
	case "unicode":
		return TypeUnicodeString, nil
	case "uInt32":
		return TypeU32, nil
	case "int32":
		return TypeI32, nil
	case "uInt64":
		return TypeU64, nil
	case "int64":
		return TypeI64, nil
	case "decimal":
		return TypeDecimal, nil
	case "byteVector":
		return TypeByteVector, nil
	case "length":
		return TypeU32, nil
	default:
		return 0, fmt.Errorf("unknown FAST primitive tag %q", tag)
	}
}
