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

import "fmt"

// FramingErrorKind classifies a problem found while scanning a raw frame
// out of a byte stream, before any field-level decoding happens.
type FramingErrorKind int

const (
	PrematureEof FramingErrorKind = iota
	ChecksumMismatch
	BadBodyLength
)

func (k FramingErrorKind) String() string {
	switch k {
	case PrematureEof:
		return "premature EOF"
	case ChecksumMismatch:
		return "checksum mismatch"
	case BadBodyLength:
		return "bad body length"
	default:
		return "unknown"
	}
}

// FramingError reports a problem found while scanning a raw frame out of
// a byte stream, before any field-level decoding happens. Offset is the
// byte position within the input where the problem was detected.
type FramingError struct {
	Kind   FramingErrorKind
	Offset int
	Detail string
}

func (e *FramingError) Error() string {
	return fmt.Sprintf("tagvalue: %s at offset %d: %s", e.Kind, e.Offset, e.Detail)
}

// DecodeErrorKind classifies a problem found while decoding fields out of
// an already-framed message, per spec.md §4.5/§7.
type DecodeErrorKind int

const (
	UnknownTag DecodeErrorKind = iota
	DuplicateTag
	BadValue
	GroupMalformed
	FieldMissing
)

func (k DecodeErrorKind) String() string {
	switch k {
	case UnknownTag:
		return "unknown tag"
	case DuplicateTag:
		return "duplicate tag"
	case BadValue:
		return "bad value"
	case GroupMalformed:
		return "group malformed"
	case FieldMissing:
		return "field missing"
	default:
		return "unknown"
	}
}

// DecodeError reports a problem found while decoding fields out of an
// already-framed message. Offset is the byte position within the frame.
type DecodeError struct {
	Kind   DecodeErrorKind
	Offset int
	Tag    uint32
	Detail string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tagvalue: %s at offset %d (tag %d): %s: %v", e.Kind, e.Offset, e.Tag, e.Detail, e.Err)
	}
	return fmt.Sprintf("tagvalue: %s at offset %d (tag %d): %s", e.Kind, e.Offset, e.Tag, e.Detail)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeErrorKind classifies a problem found while encoding a message.
type EncodeErrorKind int

const (
	MissingRequiredField EncodeErrorKind = iota
	FormatFailed
)

func (k EncodeErrorKind) String() string {
	switch k {
	case MissingRequiredField:
		return "missing required field"
	case FormatFailed:
		return "format failed"
	default:
		return "unknown"
	}
}

// EncodeError reports a problem found while encoding a message: a
// missing required field, or a value that failed its datatype's Format.
type EncodeError struct {
	Kind   EncodeErrorKind
	Tag    uint32
	Detail string
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tagvalue: %s (tag %d): %s: %v", e.Kind, e.Tag, e.Detail, e.Err)
	}
	return fmt.Sprintf("tagvalue: %s (tag %d): %s", e.Kind, e.Tag, e.Detail)
}

func (e *EncodeError) Unwrap() error { return e.Err }
