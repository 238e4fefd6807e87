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
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// standardHeaderFieldNames/standardTrailerFieldNames are synthesized when a
// version's XML tree doesn't carry explicit StandardHeader/StandardTrailer
// components, mirroring quickfix.rs's QuickFixReader::from_xml always
// binding those two components even for FIX 5.0+ dictionaries that leave
// them empty in the XML.
var standardHeaderFieldNames = []string{
	"BeginString", "BodyLength", "MsgType", "SenderCompID", "TargetCompID",
	"MsgSeqNum", "SendingTime",
}

var standardTrailerFieldNames = []string{"CheckSum"}

// Options configures a dictionary Load call.
type Options struct {
	// Logger receives non-fatal diagnostics (e.g. an optional
	// StandardHeader/StandardTrailer synthesis). Load never logs errors
	// it also returns.
	Logger *zap.Logger
}

// Load parses a FIX 2010 repository XML tree rooted at dir, following the
// two-pass algorithm in spec.md §4.1: pass one indexes every record by its
// primary key, pass two resolves cross-references (field datatypes and
// length associations, component/message member bindings, group
// delimiters). All load errors are fatal, per spec.md §4.1.
func Load(dir string, version string, opts Options) (*Dictionary, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	dt, err := loadDatatypes(filepath.Join(dir, "Datatypes.xml"))
	if err != nil {
		return nil, err
	}
	fields, err := loadFields(filepath.Join(dir, "Fields.xml"))
	if err != nil {
		return nil, err
	}
	enums, err := loadEnums(filepath.Join(dir, "Enums.xml"))
	if err != nil {
		return nil, err
	}
	components, err := loadComponents(filepath.Join(dir, "Components.xml"))
	if err != nil {
		return nil, err
	}
	messages, err := loadMessages(filepath.Join(dir, "Messages.xml"))
	if err != nil {
		return nil, err
	}
	contents, err := loadMsgContents(filepath.Join(dir, "MsgContents.xml"))
	if err != nil {
		return nil, err
	}

	d := newDictionary(version)

	// Pass 1: index primary keys.
	for _, raw := range dt.Datatypes {
		if _, dup := d.datatypes[raw.Name]; dup {
			return nil, newLoadError(DuplicateKey, "Datatypes.xml", "datatype "+raw.Name, nil)
		}
		d.datatypes[raw.Name] = &Datatype{Name: raw.Name, Base: parseBase(raw.Base)}
	}

	fieldEnums := make(map[uint32][]EnumValue)
	for _, raw := range enums.Enums {
		fieldEnums[raw.Tag] = append(fieldEnums[raw.Tag], EnumValue{
			Value:       raw.Value,
			Symbol:      raw.Symbol,
			SortKey:     raw.SortKey,
			Description: raw.Description,
		})
	}

	for _, raw := range fields.Fields {
		if _, dup := d.fieldsByTag[raw.Tag]; dup {
			return nil, newLoadError(DuplicateKey, "Fields.xml", fmt.Sprintf("field tag %d", raw.Tag), nil)
		}
		fd := &FieldDef{
			Tag:               raw.Tag,
			Name:              raw.Name,
			AssociatedDataTag: raw.AssociatedDataTag,
			IsNumInGroup:      raw.Type == "NUMINGROUP",
			Enums:             fieldEnums[raw.Tag],
		}
		d.fieldsByTag[raw.Tag] = fd
		d.fieldsByName[raw.Name] = fd
		d.fieldOrder = append(d.fieldOrder, fd)

		// Resolve datatype pointer now; the datatype table was fully
		// indexed above so this is safe within "pass 1" despite touching
		// two tables, unlike component/message member resolution which
		// must wait for pass 2 (forward references across files).
		dtype, ok := d.datatypes[raw.Type]
		if !ok {
			return nil, newLoadError(DanglingReference, "Fields.xml",
				fmt.Sprintf("field %s (tag %d) references unknown datatype %s", raw.Name, raw.Tag, raw.Type), nil)
		}
		fd.Datatype = dtype
	}

	componentNames := make(map[uint32]string)
	for _, raw := range components.Components {
		if _, dup := d.components[raw.ComponentID]; dup {
			return nil, newLoadError(DuplicateKey, "Components.xml", fmt.Sprintf("component id %d", raw.ComponentID), nil)
		}
		cd := &ComponentDef{ID: raw.ComponentID, Name: raw.Name}
		d.components[raw.ComponentID] = cd
		d.componentsBy[raw.Name] = cd
		componentNames[raw.ComponentID] = raw.Name
	}

	type pendingMessage struct {
		def         *MessageDef
		componentID uint32
	}
	var pendingMessages []pendingMessage
	for _, raw := range messages.Messages {
		if _, dup := d.messages[raw.MsgType]; dup {
			return nil, newLoadError(DuplicateKey, "Messages.xml", "msgtype "+raw.MsgType, nil)
		}
		md := &MessageDef{
			MsgType:  raw.MsgType,
			Name:     raw.Name,
			Category: raw.Category,
			Section:  raw.Section,
		}
		d.messages[raw.MsgType] = md
		d.messageOrder = append(d.messageOrder, md)
		pendingMessages = append(pendingMessages, pendingMessage{def: md, componentID: raw.ComponentID})
	}

	contentByID := make(map[uint32][]xmlMemberEl)
	for _, c := range contents.Contents {
		if _, dup := contentByID[c.ComponentID]; dup {
			return nil, newLoadError(DuplicateKey, "MsgContents.xml", fmt.Sprintf("component id %d", c.ComponentID), nil)
		}
		contentByID[c.ComponentID] = c.Members
	}

	// Pass 2: resolve cross-references.
	resolver := &resolver{dict: d, contentByID: contentByID}

	for id, cd := range d.components {
		members, ok := contentByID[id]
		if !ok {
			continue // a component with no body is legal (e.g. marker components)
		}
		resolved, err := resolver.resolveMembers(members, "Components.xml")
		if err != nil {
			return nil, err
		}
		cd.Members = resolved
	}

	for _, pm := range pendingMessages {
		members, ok := contentByID[pm.componentID]
		if !ok {
			return nil, newLoadError(DanglingReference, "Messages.xml",
				fmt.Sprintf("message %s references missing ComponentID %d", pm.def.MsgType, pm.componentID), nil)
		}
		resolved, err := resolver.resolveMembers(members, "MsgContents.xml")
		if err != nil {
			return nil, err
		}
		pm.def.Body = resolved
	}

	if err := synthesizeStandardSections(d, log); err != nil {
		return nil, err
	}

	return d, nil
}

// resolver carries shared lookup state while resolving MsgContents.xml
// member lists into MemberSpec trees.
type resolver struct {
	dict        *Dictionary
	contentByID map[uint32][]xmlMemberEl
}

func (r *resolver) resolveMembers(raw []xmlMemberEl, file string) ([]MemberSpec, error) {
	specs := make([]MemberSpec, 0, len(raw))
	for _, m := range raw {
		switch m.XMLName.Local {
		case "Field":
			fd, ok := r.dict.fieldsByTag[m.Tag]
			if !ok {
				return nil, newLoadError(DanglingReference, file, fmt.Sprintf("member references unknown field tag %d", m.Tag), nil)
			}
			specs = append(specs, MemberSpec{Kind: MemberField, Required: m.required(), Field: fd})
		case "Component":
			cd, ok := r.dict.components[m.ComponentID]
			if !ok {
				return nil, newLoadError(DanglingReference, file, fmt.Sprintf("member references unknown component id %d", m.ComponentID), nil)
			}
			specs = append(specs, MemberSpec{Kind: MemberComponent, Required: m.required(), Component: cd})
		case "Group":
			countField, ok := r.dict.fieldsByTag[m.NumInGroupTag]
			if !ok {
				return nil, newLoadError(DanglingReference, file, fmt.Sprintf("group references unknown NumInGroup tag %d", m.NumInGroupTag), nil)
			}
			entries, err := r.resolveMembers(m.Members, file)
			if err != nil {
				return nil, err
			}
			if len(entries) == 0 {
				return nil, newLoadError(MalformedXML, file, fmt.Sprintf("group on tag %d has no entry template", m.NumInGroupTag), nil)
			}
			group := &GroupDef{CountField: countField, Entries: entries}
			r.dict.groupsByCountTag[countField.Tag] = group
			specs = append(specs, MemberSpec{Kind: MemberGroup, Required: m.required(), Field: countField, Group: group})
		default:
			return nil, newLoadError(MalformedXML, file, "unrecognized member element <"+m.XMLName.Local+">", nil)
		}
	}
	return specs, nil
}

// synthesizeStandardSections ensures StandardHeader/StandardTrailer exist
// as components even when a version's XML tree leaves them out, mirroring
// quickfix.rs's unconditional binding of those two sections.
func synthesizeStandardSections(d *Dictionary, log *zap.Logger) error {
	if _, ok := d.componentsBy["StandardHeader"]; !ok {
		members, err := fieldMembers(d, standardHeaderFieldNames, "StandardHeader")
		if err != nil {
			return err
		}
		cd := &ComponentDef{Name: "StandardHeader", Members: members}
		d.componentsBy["StandardHeader"] = cd
		log.Debug("synthesized StandardHeader component", zap.String("version", d.version))
	}
	if _, ok := d.componentsBy["StandardTrailer"]; !ok {
		members, err := fieldMembers(d, standardTrailerFieldNames, "StandardTrailer")
		if err != nil {
			return err
		}
		cd := &ComponentDef{Name: "StandardTrailer", Members: members}
		d.componentsBy["StandardTrailer"] = cd
		log.Debug("synthesized StandardTrailer component", zap.String("version", d.version))
	}
	return nil
}

func fieldMembers(d *Dictionary, names []string, section string) ([]MemberSpec, error) {
	members := make([]MemberSpec, 0, len(names))
	for _, name := range names {
		fd, ok := d.fieldsByName[name]
		if !ok {
			return nil, newLoadError(DanglingReference, "Fields.xml",
				fmt.Sprintf("%s requires field %s, not present in this version's Fields.xml", section, name), nil)
		}
		members = append(members, MemberSpec{Kind: MemberField, Required: true, Field: fd})
	}
	return members, nil
}

func parseBase(s string) Base {
	switch s {
	case "int":
		return BaseInt
	case "float":
		return BaseFloat
	case "char":
		return BaseChar
	case "String":
		return BaseString
	case "data":
		return BaseData
	case "Boolean":
		return BaseBoolean
	case "UTCTimestamp":
		return BaseUTCTimestamp
	case "UTCTimeOnly":
		return BaseUTCTimeOnly
	case "UTCDateOnly":
		return BaseUTCDateOnly
	case "LocalMktDate":
		return BaseLocalMktDate
	case "MonthYear":
		return BaseMonthYear
	case "TZTimestamp":
		return BaseTZTimestamp
	case "TZTimeOnly":
		return BaseTZTimeOnly
	case "MultipleCharValue":
		return BaseMultipleCharValue
	case "MultipleStringValue":
		return BaseMultipleStringValue
	default:
		return BaseUnknown
	}
}

func loadDatatypes(path string) (*xmlDatatypes, error) {
	var v xmlDatatypes
	if err := unmarshalFile(path, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func loadFields(path string) (*xmlFields, error) {
	var v xmlFields
	if err := unmarshalFile(path, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func loadEnums(path string) (*xmlEnums, error) {
	var v xmlEnums
	if err := unmarshalFile(path, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func loadComponents(path string) (*xmlComponents, error) {
	var v xmlComponents
	if err := unmarshalFile(path, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func loadMessages(path string) (*xmlMessages, error) {
	var v xmlMessages
	if err := unmarshalFile(path, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func loadMsgContents(path string) (*xmlMsgContents, error) {
	var v xmlMsgContents
	if err := unmarshalFile(path, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func unmarshalFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return newLoadError(MalformedXML, path, "reading file", err)
	}
	if err := xml.Unmarshal(data, v); err != nil {
		return newLoadError(MalformedXML, path, "parsing XML", err)
	}
	return nil
}
