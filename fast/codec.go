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

package fast

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FieldValue is one decoded field's typed value. Exactly one of the typed
// accessors is meaningful, selected by the owning FieldInstruction's Type.
type FieldValue struct {
	Name    string
	ID      uint32
	Null    bool
	Int     int64
	Decimal decimal.Decimal
	Str     string
	Bytes   []byte
}

// DecodedMessage is one decoded FAST message: the template it was decoded
// against and its fields in template order.
type DecodedMessage struct {
	Template *Template
	Fields   []FieldValue
}

// Decoder decodes FAST messages against a fixed TemplateSet, keeping one
// priorState per template id so operator state (copy/increment/delta/
// tail) persists correctly across messages on the same connection.
type Decoder struct {
	templates *TemplateSet
	state     map[uint32]*priorState
	log       *zap.Logger
}

// NewDecoder builds a Decoder over templates. log may be nil.
func NewDecoder(templates *TemplateSet, log *zap.Logger) *Decoder {
	return &Decoder{templates: templates, state: make(map[uint32]*priorState), log: log}
}

// Reset clears the operator state for templateID, per spec.md §4.7's
// per-session reset-on-request.
func (d *Decoder) Reset(templateID uint32) {
	if s, ok := d.state[templateID]; ok {
		s.reset()
	}
}

func (d *Decoder) stateFor(tmpl *Template) *priorState {
	s, ok := d.state[tmpl.ID]
	if !ok {
		s = newPriorState(len(tmpl.Instructions))
		d.state[tmpl.ID] = s
	}
	return s
}

// Decode reads one FAST message from the front of data: template id,
// presence map, then each field instruction in order. Returns the decoded
// message and the number of bytes consumed.
func (d *Decoder) Decode(data []byte) (*DecodedMessage, int, error) {
	tmplID, n, err := decodeUint(data)
	if err != nil {
		return nil, 0, err
	}
	tmpl, ok := d.templates.ByID(uint32(tmplID))
	if !ok {
		return nil, 0, reportableErr("", "", R1, tmplID)
	}

	numPresenceBits := uint(0)
	for _, inst := range tmpl.Instructions {
		if fieldConsumesPresenceBit(inst) {
			numPresenceBits++
		}
	}

	pmap, pn, err := decodePresenceMap(data[n:])
	if err != nil {
		return nil, 0, err
	}
	offset := n + pn
	if numPresenceBits > pmap.len {
		return nil, 0, reportableErr(tmpl.Name, "", R8, numPresenceBits)
	}

	state := d.stateFor(tmpl)
	msg := &DecodedMessage{Template: tmpl, Fields: make([]FieldValue, 0, len(tmpl.Instructions))}

	pmapBit := uint(0)
	for i, inst := range tmpl.Instructions {
		slot := &state.slots[i]

		present := true
		if fieldConsumesPresenceBit(inst) {
			present = pmap.get(pmapBit)
			pmapBit++
		}

		fv, consumed, err := d.decodeField(tmpl, inst, slot, present, data[offset:])
		if err != nil {
			return nil, 0, err
		}
		offset += consumed
		msg.Fields = append(msg.Fields, fv)
	}

	if d.log != nil {
		d.log.Debug("fast decode", zap.String("template", tmpl.Name), zap.Int("bytes", offset))
	}

	return msg, offset, nil
}

func (d *Decoder) decodeField(tmpl *Template, inst FieldInstruction, slot *priorValue, present bool, data []byte) (FieldValue, int, error) {
	fv := FieldValue{Name: inst.Name, ID: inst.ID}

	switch inst.Type {
	case TypeU32, TypeU64:
		var raw uint64
		var n int
		var err error
		if present && inst.Operator != OpDelta && inst.Operator != OpConstant {
			raw, n, err = decodeUint(data)
			if err != nil {
				return fv, 0, err
			}
		} else if inst.Operator == OpDelta {
			var signed int64
			signed, n, err = decodeInt(data)
			if err != nil {
				return fv, 0, err
			}
			raw = uint64(signed)
		}
		initial, _ := parseInitialInt(inst)
		v, null, err := resolveInt(slot, inst.Operator, inst.Mandatory, initial, inst.HasInitial, present, int64(raw))
		if err != nil {
			return fv, 0, err
		}
		fv.Int, fv.Null = v, null
		return fv, n, nil

	case TypeI32, TypeI64:
		var raw int64
		var n int
		var err error
		if present && inst.Operator != OpConstant {
			raw, n, err = decodeInt(data)
			if err != nil {
				return fv, 0, err
			}
		}
		initial, _ := parseInitialInt(inst)
		v, null, err := resolveInt(slot, inst.Operator, inst.Mandatory, initial, inst.HasInitial, present, raw)
		if err != nil {
			return fv, 0, err
		}
		fv.Int, fv.Null = v, null
		return fv, n, nil

	case TypeDecimal:
		var dec decimal.Decimal
		var n int
		var err error
		if present {
			dec, n, err = decodeDecimal(data)
			if err != nil {
				return fv, 0, err
			}
		}
		fv.Decimal, fv.Null = dec, !present && !inst.Mandatory
		if !present && inst.Mandatory {
			return fv, 0, dynamicErr(tmpl.Name, inst.Name, D6, nil)
		}
		slot.assigned, slot.dec = true, dec
		return fv, n, nil

	case TypeAsciiString, TypeUnicodeString:
		var raw string
		var n int
		var err error
		if present && inst.Operator != OpConstant {
			raw, n, err = decodeAsciiString(data)
			if err != nil {
				return fv, 0, err
			}
		}
		v, null, err := resolveString(slot, inst.Operator, inst.Mandatory, inst.InitialRaw, inst.HasInitial, present, raw)
		if err != nil {
			return fv, 0, err
		}
		fv.Str, fv.Null = v, null
		return fv, n, nil

	case TypeByteVector:
		var raw []byte
		var n int
		var err error
		if present {
			raw, n, err = decodeByteVector(data)
			if err != nil {
				return fv, 0, err
			}
		}
		fv.Bytes, fv.Null = raw, !present
		slot.assigned, slot.bytes = true, raw
		return fv, n, nil

	default:
		return fv, 0, staticErr(tmpl.Name, inst.Name, S2)
	}
}

func fieldConsumesPresenceBit(inst FieldInstruction) bool {
	switch inst.Type {
	case TypeAsciiString, TypeUnicodeString:
		return decideStringPresence(inst.Operator, inst.Mandatory)
	default:
		return decideIntPresence(inst.Operator, inst.Mandatory)
	}
}

func parseInitialInt(inst FieldInstruction) (int64, bool) {
	if !inst.HasInitial {
		return 0, false
	}
	var v int64
	if _, err := fmt.Sscanf(inst.InitialRaw, "%d", &v); err != nil {
		return 0, false
	}
	return v, true
}

// Encoder is the mirror of Decoder: it renders FieldValues against a
// template's operators, maintaining the same per-template priorState so a
// copy/increment field only goes on the wire when its value diverges from
// what the operator already implies; a delta field always carries its
// difference from the prior value.
type Encoder struct {
	templates *TemplateSet
	state     map[uint32]*priorState
	log       *zap.Logger
}

// NewEncoder builds an Encoder over templates. log may be nil.
func NewEncoder(templates *TemplateSet, log *zap.Logger) *Encoder {
	return &Encoder{templates: templates, state: make(map[uint32]*priorState), log: log}
}

// Reset clears the operator state for templateID.
func (e *Encoder) Reset(templateID uint32) {
	if s, ok := e.state[templateID]; ok {
		s.reset()
	}
}

func (e *Encoder) stateFor(tmpl *Template) *priorState {
	s, ok := e.state[tmpl.ID]
	if !ok {
		s = newPriorState(len(tmpl.Instructions))
		e.state[tmpl.ID] = s
	}
	return s
}

// Encode renders values (one per instruction in tmpl, in order) against
// templateID: template id, presence map, then each present field's bytes.
func (e *Encoder) Encode(templateID uint32, values []FieldValue) ([]byte, error) {
	tmpl, ok := e.templates.ByID(templateID)
	if !ok {
		return nil, reportableErr("", "", R1, templateID)
	}
	if len(values) != len(tmpl.Instructions) {
		return nil, staticErr(tmpl.Name, "", S1)
	}

	state := e.stateFor(tmpl)
	presenceBits := make([]bool, 0, len(tmpl.Instructions))
	fieldBytes := make([][]byte, 0, len(tmpl.Instructions))

	for i, inst := range tmpl.Instructions {
		slot := &state.slots[i]
		present, raw, err := e.encodeField(tmpl, inst, slot, values[i])
		if err != nil {
			return nil, err
		}
		if fieldConsumesPresenceBit(inst) {
			presenceBits = append(presenceBits, present)
		}
		if present {
			fieldBytes = append(fieldBytes, raw)
		}
	}

	pmap := newPresenceMap(uint(len(presenceBits)))
	for i, b := range presenceBits {
		pmap.set(uint(i), b)
	}

	out := encodeUint(uint64(templateID))
	out = append(out, encodePresenceMap(pmap)...)
	for _, b := range fieldBytes {
		out = append(out, b...)
	}

	if e.log != nil {
		e.log.Debug("fast encode", zap.String("template", tmpl.Name), zap.Int("bytes", len(out)))
	}
	return out, nil
}

// encodeField decides whether field i needs to go on the wire (per its
// operator) and, if so, renders its bytes. present mirrors the PMAP bit
// this field consumes; for fields whose operator carries no PMAP bit it
// only says whether bytes are written (always true for delta, always false
// for constant, which never goes on the wire).
func (e *Encoder) encodeField(tmpl *Template, inst FieldInstruction, slot *priorValue, fv FieldValue) (bool, []byte, error) {
	switch inst.Type {
	case TypeU32, TypeI32, TypeU64, TypeI64:
		switch inst.Operator {
		case OpConstant:
			return false, nil, nil
		case OpDelta:
			base := slot.i64
			if !slot.assigned {
				base, _ = parseInitialInt(inst)
			}
			delta := fv.Int - base
			slot.assigned, slot.i64 = true, fv.Int
			return true, encodeInt(delta), nil
		case OpCopy, OpIncrement:
			implied := slot.i64
			if inst.Operator == OpIncrement {
				implied++
			}
			if slot.assigned && implied == fv.Int && !fv.Null {
				slot.i64 = fv.Int
				return false, nil, nil
			}
			slot.assigned, slot.empty, slot.i64 = true, fv.Null, fv.Int
			if fv.Null {
				return true, nil, nil
			}
			if inst.Type == TypeU32 || inst.Type == TypeU64 {
				return true, encodeUint(uint64(fv.Int)), nil
			}
			return true, encodeInt(fv.Int), nil
		default:
			if fv.Null {
				if inst.Mandatory {
					return false, nil, dynamicErr(tmpl.Name, inst.Name, D6, nil)
				}
				return false, nil, nil
			}
			if inst.Type == TypeU32 || inst.Type == TypeU64 {
				return true, encodeUint(uint64(fv.Int)), nil
			}
			return true, encodeInt(fv.Int), nil
		}

	case TypeDecimal:
		if fv.Null {
			if inst.Mandatory {
				return false, nil, dynamicErr(tmpl.Name, inst.Name, D6, nil)
			}
			return false, nil, nil
		}
		raw, err := encodeDecimal(fv.Decimal)
		if err != nil {
			return false, nil, err
		}
		slot.assigned, slot.dec = true, fv.Decimal
		return true, raw, nil

	case TypeAsciiString, TypeUnicodeString:
		switch inst.Operator {
		case OpConstant:
			return false, nil, nil
		case OpCopy, OpTail:
			if slot.assigned && slot.str == fv.Str && !fv.Null {
				return false, nil, nil
			}
			slot.assigned, slot.empty, slot.str = true, fv.Null, fv.Str
			if fv.Null {
				return true, nil, nil
			}
			return true, encodeAsciiString(fv.Str), nil
		default:
			if fv.Null {
				if inst.Mandatory {
					return false, nil, dynamicErr(tmpl.Name, inst.Name, D6, nil)
				}
				return false, nil, nil
			}
			return true, encodeAsciiString(fv.Str), nil
		}

	case TypeByteVector:
		if fv.Null {
			if inst.Mandatory {
				return false, nil, dynamicErr(tmpl.Name, inst.Name, D6, nil)
			}
			return false, nil, nil
		}
		slot.assigned, slot.bytes = true, fv.Bytes
		return true, encodeByteVector(fv.Bytes), nil

	default:
		return false, nil, staticErr(tmpl.Name, inst.Name, S2)
	}
}
