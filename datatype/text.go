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

package datatype

import "strings"

// ParseBoolean parses the FIX Boolean datatype: exactly "Y" or "N".
func ParseBoolean(raw string) (bool, error) {
	switch raw {
	case "Y":
		return true, nil
	case "N":
		return false, nil
	default:
		return false, newError("Boolean", raw, errNotBoolean)
	}
}

// FormatBoolean renders a bool back to "Y"/"N".
func FormatBoolean(v bool) string {
	if v {
		return "Y"
	}
	return "N"
}

var errNotBoolean = textErr("value must be exactly \"Y\" or \"N\"")

// ParseChar parses the FIX char datatype: exactly one byte.
func ParseChar(raw string) (byte, error) {
	if len(raw) != 1 {
		return 0, newError("char", raw, errNotChar)
	}
	return raw[0], nil
}

// FormatChar renders a single byte as a one-character string.
func FormatChar(c byte) string {
	return string(c)
}

var errNotChar = textErr("value must be exactly one byte")

// ParseMultipleCharValue splits a space-delimited MultipleCharValue field
// into its individual char tokens.
func ParseMultipleCharValue(raw string) ([]byte, error) {
	parts := strings.Split(raw, " ")
	out := make([]byte, 0, len(parts))
	for _, p := range parts {
		c, err := ParseChar(p)
		if err != nil {
			return nil, newError("MultipleCharValue", raw, err)
		}
		out = append(out, c)
	}
	return out, nil
}

// FormatMultipleCharValue joins chars with a single space, per the FIX
// wire representation.
func FormatMultipleCharValue(chars []byte) string {
	parts := make([]string, len(chars))
	for i, c := range chars {
		parts[i] = string(c)
	}
	return strings.Join(parts, " ")
}

// ParseMultipleStringValue splits a space-delimited MultipleStringValue
// field into its individual string tokens.
func ParseMultipleStringValue(raw string) []string {
	return strings.Split(raw, " ")
}

// FormatMultipleStringValue joins strings with a single space.
func FormatMultipleStringValue(values []string) string {
	return strings.Join(values, " ")
}

// String and data datatypes carry no validation beyond "bytes between the
// preceding and following SOH delimiters" — they pass through unchanged.
// The tagvalue frame scanner and decoder own delimiter handling; this
// package has nothing to add for either datatype.

type textErr string

func (e textErr) Error() string { return string(e) }
