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
	"strconv"

	"github.com/shopspring/decimal"

	"prime-fix-engine-go/datatype"
	"prime-fix-engine-go/dictionary"
)

// fieldContext disambiguates a tag that appears inside a repeating group
// from the same tag at top level, and from the same tag in a different
// group entry. groupSeq is the position (within the decoded field
// sequence) of the NumInGroup field that started this group occurrence —
// unique per occurrence even for nested groups, so no parent chain is
// needed.
type fieldContext struct {
	groupSeq   int // 0 means top-level; real occurrences start at position > 0
	entryIndex int
}

var topLevel = fieldContext{}

// fieldKey univocally locates a tag within a decoded message.
type fieldKey struct {
	tag uint32
	ctx fieldContext
}

type decodedField struct {
	tag   uint32
	ctx   fieldContext
	value []byte
}

// groupState tracks one active repeating group while decode_frame scans
// sequentially through the payload.
type groupState struct {
	countTag     uint32
	delimiterTag uint32
	numEntries   int
	currentEntry int
	groupSeq     int
}

type pendingGroup struct {
	countTag   uint32
	numEntries int
	groupSeq   int
}

// messageData holds the decoded field sequence and, if the Decoder's
// Config.IndexFields is set, the associative index used for random-access
// lookups. It is shared by value (pointer) between a Message and any
// GroupView/EntryView it produces.
type messageData struct {
	bytes  []byte
	fields []decodedField
	index  map[fieldKey]int // fieldKey -> position in fields; nil if not indexed
	dict   *dictionary.Dictionary
}

// Decoder turns raw frames into Message views using a fixed Dictionary.
// Create one Decoder per connection/stream and reuse it across Decode
// calls; it does not retain references to the bytes fed to previous
// calls.
type Decoder struct {
	dict           *dictionary.Dictionary
	cfg            Config
	numInGroupTags map[uint32]bool
	lengthTags     map[uint32]uint32 // length field tag -> associated data field tag

	groupMemberTags map[uint32]map[uint32]bool // countTag -> tags its entry template owns; built lazily
}

// NewDecoder builds a Decoder for dict. The tag-kind lookup tables used on
// every decoded field are built once here, not per-message.
func NewDecoder(dict *dictionary.Dictionary, cfg Config) *Decoder {
	d := &Decoder{
		dict:            dict,
		cfg:             cfg,
		numInGroupTags:  make(map[uint32]bool),
		lengthTags:      make(map[uint32]uint32),
		groupMemberTags: make(map[uint32]map[uint32]bool),
	}
	for _, f := range dict.Fields() {
		if f.IsNumInGroup {
			d.numInGroupTags[f.Tag] = true
		}
		if f.AssociatedDataTag != 0 {
			d.lengthTags[f.Tag] = f.AssociatedDataTag
		}
	}
	return d
}

// memberTagsOf returns the set of tags that belong to the entry template
// of the group governed by countTag, or nil if the dictionary has no
// group schema registered for it. The result is cached per Decoder since
// a dictionary's group schemas never change after Load.
func (d *Decoder) memberTagsOf(countTag uint32) map[uint32]bool {
	if tags, ok := d.groupMemberTags[countTag]; ok {
		return tags
	}
	group, ok := d.dict.GroupByCountTag(countTag)
	if !ok {
		d.groupMemberTags[countTag] = nil
		return nil
	}
	tags := make(map[uint32]bool)
	collectMemberTags(group.Entries, tags)
	d.groupMemberTags[countTag] = tags
	return tags
}

// collectMemberTags flattens a group entry template's field tags,
// descending into nested components (whose fields are still part of the
// entry) but not into nested groups (whose own entries belong to their
// own scope once pushed — only the nested NumInGroup tag itself is a
// member of the outer entry).
func collectMemberTags(specs []dictionary.MemberSpec, out map[uint32]bool) {
	for _, m := range specs {
		switch m.Kind {
		case dictionary.MemberField:
			if m.Field != nil {
				out[m.Field.Tag] = true
			}
		case dictionary.MemberComponent:
			if m.Component != nil {
				collectMemberTags(m.Component.Members, out)
			}
		case dictionary.MemberGroup:
			if m.Field != nil {
				out[m.Field.Tag] = true
			}
		}
	}
}

// Decode parses one already-framed message. The returned Message aliases
// frame.Bytes; callers must not mutate it while the Message is in use.
func (d *Decoder) Decode(frame RawFrame) (*Message, error) {
	data := &messageData{bytes: frame.Bytes, dict: d.dict}
	if d.cfg.IndexFields {
		data.index = make(map[fieldKey]int)
	}

	seen := make(map[fieldKey]bool)
	store := func(tag uint32, ctx fieldContext, value []byte) error {
		key := fieldKey{tag: tag, ctx: ctx}
		if seen[key] {
			return &DecodeError{Kind: DuplicateTag, Tag: tag, Detail: "tag appears more than once in this scope"}
		}
		seen[key] = true
		pos := len(data.fields)
		data.fields = append(data.fields, decodedField{tag: tag, ctx: ctx, value: value})
		if data.index != nil {
			data.index[key] = pos
		}
		return nil
	}

	// tag 8 (BeginString) sits before the scanned payload; store it
	// explicitly so Message.GetRaw(8) works like any other field.
	if err := store(8, topLevel, []byte(frame.BeginString())); err != nil {
		return nil, err
	}

	var groups []groupState
	var pending *pendingGroup
	var dataFieldLen = -1 // -1 means "use separator scanning", per store_field's data_field_length

	payload := frame.Payload()
	base := frame.bodyStart // payload offset -> frame offset
	i := 0
	for i < len(payload) {
		eq := indexByte(payload, '=', i)
		if eq == -1 {
			break
		}

		var valueEnd int
		if dataFieldLen >= 0 {
			valueEnd = eq + 1 + dataFieldLen
			dataFieldLen = -1
			if valueEnd > len(payload) {
				return nil, &DecodeError{Kind: BadValue, Offset: base + eq + 1, Detail: "data field length exceeds remaining payload"}
			}
		} else {
			sepIdx := indexByte(payload, d.cfg.Separator, eq+1)
			if sepIdx == -1 {
				break
			}
			valueEnd = sepIdx
		}

		tag, err := parseTag(payload[i:eq])
		if err != nil {
			return nil, &DecodeError{Kind: BadValue, Offset: base + i, Detail: "malformed tag number", Err: err}
		}

		value := payload[eq+1 : valueEnd]

		// Resolve this field's context, mirroring store_field in
		// decoder.rs: a field just after a NumInGroup becomes that
		// group's delimiter; a field matching the active group's
		// delimiter advances the entry index; a tag that the dictionary
		// says doesn't belong to the innermost active group's entry
		// template terminates that group — and any enclosing group it
		// also doesn't belong to — per spec.md §4.5 Phase C. Counting
		// entries alone can't detect this: the counter only advances on
		// delimiter re-occurrence, so it never reaches "this group is
		// exhausted" for a group that isn't the last thing in the
		// message.
		var ctx fieldContext
		if pending != nil {
			groupSeq := pending.groupSeq
			groups = append(groups, groupState{
				countTag:     pending.countTag,
				delimiterTag: tag,
				numEntries:   pending.numEntries,
				currentEntry: 0,
				groupSeq:     groupSeq,
			})
			pending = nil
			ctx = fieldContext{groupSeq: groupSeq, entryIndex: 0}
		} else {
			for n := len(groups); n > 0; n = len(groups) {
				members := d.memberTagsOf(groups[n-1].countTag)
				if members != nil && !members[tag] {
					groups = groups[:n-1]
					continue
				}
				break
			}
			if n := len(groups); n > 0 {
				g := &groups[n-1]
				if tag == g.delimiterTag {
					g.currentEntry++
				}
				ctx = fieldContext{groupSeq: g.groupSeq, entryIndex: g.currentEntry}
			} else {
				ctx = topLevel
			}
		}

		if d.cfg.StrictUnknownTags {
			if _, ok := d.dict.FieldByTag(tag); !ok {
				return nil, &DecodeError{Kind: UnknownTag, Offset: base + i, Tag: tag, Detail: "unknown tag"}
			}
		}

		pos := len(data.fields)
		if err := store(tag, ctx, value); err != nil {
			return nil, err
		}

		if d.numInGroupTags[tag] {
			count, err := strconv.Atoi(string(value))
			if err != nil {
				return nil, &DecodeError{Kind: GroupMalformed, Offset: base + eq + 1, Tag: tag, Detail: "NumInGroup value is not an integer", Err: err}
			}
			if d.cfg.MaxGroupEntries > 0 && count > d.cfg.MaxGroupEntries {
				return nil, &DecodeError{Kind: GroupMalformed, Offset: base + eq + 1, Tag: tag, Detail: "NumInGroup exceeds configured maximum"}
			}
			if count > 0 {
				pending = &pendingGroup{countTag: tag, numEntries: count, groupSeq: pos}
			}
		} else if _, ok := d.lengthTags[tag]; ok {
			n, err := strconv.Atoi(string(value))
			if err != nil || n < 0 {
				return nil, &DecodeError{Kind: BadValue, Offset: base + eq + 1, Tag: tag, Detail: "Length value is not a valid non-negative integer", Err: err}
			}
			dataFieldLen = n
		}

		i = valueEnd + 1
	}

	return &Message{data: data}, nil
}

func parseTag(raw []byte) (uint32, error) {
	if len(raw) == 0 {
		return 0, strconv.ErrSyntax
	}
	var tag uint32
	for _, c := range raw {
		if c < '0' || c > '9' {
			return 0, strconv.ErrSyntax
		}
		tag = tag*10 + uint32(c-'0')
	}
	return tag, nil
}

// Message is a read-only, decoded FIX message. Field lookups are O(1)
// when the Decoder was configured with IndexFields; otherwise they fall
// back to an O(n) scan.
type Message struct {
	data *messageData
}

// GetRaw returns the raw wire bytes for a top-level tag.
func (m *Message) GetRaw(tag uint32) ([]byte, bool) {
	return getRaw(m.data, topLevel, tag)
}

// MsgType returns the value of tag 35.
func (m *Message) MsgType() (string, bool) {
	v, ok := m.GetRaw(35)
	if !ok {
		return "", false
	}
	return string(v), true
}

// AsBytes returns the full original frame bytes, including BeginString
// and CheckSum.
func (m *Message) AsBytes() []byte { return m.data.bytes }

// Len reports the number of decoded fields, counting every field at
// every nesting level.
func (m *Message) Len() int { return len(m.data.fields) }

// Group returns a view over the repeating group introduced by the
// NumInGroup field countTag at top level.
func (m *Message) Group(countTag uint32) (GroupView, bool) {
	return groupOf(m.data, topLevel, countTag)
}

// Fields iterates every top-level field in wire order. It does not
// descend into group entries; use Group to access those.
func (m *Message) Fields() []FieldRef {
	var out []FieldRef
	for _, f := range m.data.fields {
		if f.ctx == topLevel {
			out = append(out, FieldRef{Tag: f.tag, Value: f.value})
		}
	}
	return out
}

// FieldRef is one decoded (tag, raw value) pair.
type FieldRef struct {
	Tag   uint32
	Value []byte
}

// GroupView is a repeating group within a decoded Message.
type GroupView struct {
	data     *messageData
	groupSeq int
	length   int
}

// Len returns the number of entries, as declared by the group's
// NumInGroup field.
func (g GroupView) Len() int { return g.length }

// Entry returns the i-th entry (0-indexed), or false if i is out of
// range.
func (g GroupView) Entry(i int) (EntryView, bool) {
	if i < 0 || i >= g.length {
		return EntryView{}, false
	}
	return EntryView{data: g.data, ctx: fieldContext{groupSeq: g.groupSeq, entryIndex: i}}, true
}

// EntryView is one entry within a repeating group.
type EntryView struct {
	data *messageData
	ctx  fieldContext
}

// GetRaw returns the raw wire bytes for tag within this entry.
func (e EntryView) GetRaw(tag uint32) ([]byte, bool) {
	return getRaw(e.data, e.ctx, tag)
}

// Group returns a view over a nested repeating group introduced within
// this entry.
func (e EntryView) Group(countTag uint32) (GroupView, bool) {
	return groupOf(e.data, e.ctx, countTag)
}

func getRaw(data *messageData, ctx fieldContext, tag uint32) ([]byte, bool) {
	if data.index != nil {
		pos, ok := data.index[fieldKey{tag: tag, ctx: ctx}]
		if !ok {
			return nil, false
		}
		return data.fields[pos].value, true
	}
	for _, f := range data.fields {
		if f.tag == tag && f.ctx == ctx {
			return f.value, true
		}
	}
	return nil, false
}

func groupOf(data *messageData, ctx fieldContext, countTag uint32) (GroupView, bool) {
	var pos int
	var found bool
	if data.index != nil {
		p, ok := data.index[fieldKey{tag: countTag, ctx: ctx}]
		pos, found = p, ok
	} else {
		for p, f := range data.fields {
			if f.tag == countTag && f.ctx == ctx {
				pos, found = p, true
				break
			}
		}
	}
	if !found {
		return GroupView{}, false
	}
	count, err := strconv.Atoi(string(data.fields[pos].value))
	if err != nil {
		return GroupView{}, false
	}
	return GroupView{data: data, groupSeq: pos, length: count}, true
}

// ErrFieldMissing is returned by GetInt/GetDecimal when the requested tag
// is absent, mirroring the distinction rust's FieldValueError::Missing
// draws between "absent" and "present but malformed".
var ErrFieldMissing = &DecodeError{Kind: FieldMissing, Detail: "field is missing"}

// GetString, GetInt, and GetDecimal are thin convenience wrappers over
// GetRaw for the most common datatypes; callers needing any other
// datatype.Kind call the datatype package's Parse functions directly on
// the raw bytes.

// GetString returns tag's value decoded as a FIX String.
func (m *Message) GetString(tag uint32) (string, bool) {
	v, ok := m.GetRaw(tag)
	if !ok {
		return "", false
	}
	return string(v), true
}

// GetInt returns tag's value decoded as a FIX int.
func (m *Message) GetInt(tag uint32) (int64, error) {
	v, ok := m.GetRaw(tag)
	if !ok {
		return 0, ErrFieldMissing
	}
	return datatype.ParseInt(string(v))
}

// GetDecimal returns tag's value decoded as a FIX float-family datatype.
func (m *Message) GetDecimal(tag uint32) (decimal.Decimal, error) {
	v, ok := m.GetRaw(tag)
	if !ok {
		return decimal.Decimal{}, ErrFieldMissing
	}
	return datatype.ParseDecimal(string(v))
}
