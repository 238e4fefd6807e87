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

import "fmt"

// StaticError is detected solely by examining a template definition, before
// any data stream is involved. A template that fails static validation must
// be discarded entirely.
type StaticError int

const (
	// S1: the template XML is not well-formed or violates the FAST template schema.
	S1 StaticError = iota + 1
	// S2: an operator is specified for a field type it does not apply to.
	S2
	// S3: a constant operator on a mandatory field has no initial value.
	S3
	// S4: a constant operator has no initial value.
	S4
	// S5: a default operator on a mandatory field has no initial value.
	S5
)

func (e StaticError) Error() string {
	switch e {
	case S1:
		return "S1: template is not well-formed FAST template XML"
	case S2:
		return "S2: operator specified for a field type it does not apply to"
	case S3:
		return "S3: no initial value for constant operator on mandatory field"
	case S4:
		return "S4: no initial value specified for constant operator"
	case S5:
		return "S5: no initial value specified for default operator on mandatory field"
	default:
		return fmt.Sprintf("S%d: static template error", int(e))
	}
}

// DynamicError is detected while encoding or decoding a FAST stream.
// Counterparties must signal dynamic errors.
type DynamicError int

const (
	D1 DynamicError = iota + 1
	// D2: an integer in the stream does not fit the field's declared width.
	D2
	// D3: a decimal's exponent falls outside the representable range.
	D3
	D4
	// D5: a mandatory field is absent from the stream with no previous value
	// and no initial value to fall back to.
	D5
	D6
	D7
	D8
	// D9: the decoder does not recognize the template id carried by the stream.
	D9
	D10
	D11
	D12
)

func (e DynamicError) Error() string {
	switch e {
	case D2:
		return "D2: integer does not fall within the bounds of the field's declared type"
	case D3:
		return "D3: decimal exponent out of representable range"
	case D5:
		return "D5: mandatory field missing with no previous or initial value"
	case D9:
		return "D9: no template registered for this template id"
	default:
		return fmt.Sprintf("D%d: dynamic FAST error", int(e))
	}
}

// ReportableError covers violations counterparties may, but are not
// obligated to, signal — typically because detecting them costs more than
// the wire format saves.
type ReportableError int

const (
	// R1: unknown template id referenced by the stream.
	R1 ReportableError = iota + 1
	R2
	R3
	// R4: a presence-map bit disagrees with the operator's expectations.
	R4
	// R5: decoding consumed past the end of the supplied buffer.
	R5
	R6
	R7
	R8
	R9
)

func (e ReportableError) Error() string {
	switch e {
	case R1:
		return "R1: unknown template id"
	case R4:
		return "R4: presence map bit does not match operator expectations"
	case R5:
		return "R5: decoding ran past the end of the buffer"
	default:
		return fmt.Sprintf("R%d: reportable FAST error", int(e))
	}
}

// Error wraps one of the three FAST error classes with positional context:
// the template and field the error was raised against, and (for dynamic/
// reportable decode errors) the offending raw value.
type Error struct {
	Template string
	Field    string
	Value    interface{}
	Err      error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("fast: template %q field %q: %v (value=%v)", e.Template, e.Field, e.Err, e.Value)
	}
	return fmt.Sprintf("fast: template %q: %v", e.Template, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func staticErr(template, field string, code StaticError) *Error {
	return &Error{Template: template, Field: field, Err: code}
}

func dynamicErr(template, field string, code DynamicError, value interface{}) *Error {
	return &Error{Template: template, Field: field, Err: code, Value: value}
}

func reportableErr(template, field string, code ReportableError, value interface{}) *Error {
	return &Error{Template: template, Field: field, Err: code, Value: value}
}
