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

// Package tagvalue implements the classic FIX tag=value wire encoding: a
// zero-copy frame scanner, a dictionary-driven decoder that exposes a
// read-only Message view, and an encoder that writes the standard header
// and caller-supplied fields in order with computed BodyLength/CheckSum.
package tagvalue

import "prime-fix-engine-go/datatype"

// Config controls the behavior of Decoder, Encoder, and ScanFrame.
type Config struct {
	// Separator is the field delimiter. Production traffic uses SOH
	// (0x01); tests and fixtures commonly substitute '|' for readability.
	Separator byte

	// StrictUnknownTags rejects a tag absent from the dictionary instead
	// of passing it through as an untyped raw field. Defaults to true.
	StrictUnknownTags bool

	// ValidateChecksum verifies the trailing CheckSum(10) field against
	// the frame's actual checksum. Defaults to true; disable only for
	// fixtures captured from a non-conformant counterparty.
	ValidateChecksum bool

	// ValidateBodyLength records whether BodyLength(9) should be verified
	// against the frame's actual body length. Defaults to true. ScanFrame
	// does not read this flag: it always requires BodyLength to end exactly
	// at the CheckSum(10) field, whatever the setting.
	ValidateBodyLength bool

	// MaxFrameBytes bounds the size of a single frame ScanFrame will
	// accept, guarding against a malicious or corrupt BodyLength driving
	// unbounded buffering. Zero means unbounded.
	MaxFrameBytes int

	// MaxGroupEntries bounds the NumInGroup count a decoder will honor,
	// guarding against a corrupt count field driving unbounded group
	// iteration. Zero means unbounded.
	MaxGroupEntries int

	// IndexFields controls whether Decoder builds the associative lookup
	// index (by-tag random access) alongside the sequential field list.
	// Disabling it makes Message.Get*/Group lookups fall back to an O(n)
	// scan of the field list, in exchange for a cheaper decode when only
	// sequential iteration is needed.
	IndexFields bool

	// TimestampPrecision controls how many fractional-second digits
	// Encoder emits for UTCTimestamp fields (SendingTime and
	// MessageBuilder.SetUTCTimestamp).
	TimestampPrecision datatype.Precision
}

// DefaultConfig returns the Config used when none is supplied: SOH
// separator, strict unknown tags, both checksum and body-length
// validation enabled, unbounded frame/group limits, associative indexing
// on, and second-precision timestamps.
func DefaultConfig() Config {
	return Config{
		Separator:          0x01,
		StrictUnknownTags:  true,
		ValidateChecksum:   true,
		ValidateBodyLength: true,
		IndexFields:        true,
		TimestampPrecision: datatype.PrecisionSeconds,
	}
}
