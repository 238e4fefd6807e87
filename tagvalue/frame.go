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

import "strconv"

// ScanStatus reports how far ScanFrame got locating a complete frame
// within a byte buffer fed from a stream.
type ScanStatus int

const (
	// ScanIncomplete means the buffer does not yet hold a full frame;
	// the caller should read more bytes and scan again.
	ScanIncomplete ScanStatus = iota
	// ScanComplete means RawFrame holds exactly one complete frame.
	ScanComplete
	// ScanInvalid means the buffer's prefix cannot be a valid frame
	// regardless of how many more bytes arrive.
	ScanInvalid
)

// checksumFieldLen is the fixed width of "10=" + three digits + separator.
const checksumFieldLen = 3 + 3 + 1

// RawFrame is one complete, unparsed FIX message: the full byte range
// from the start of "8=" through the separator following the CheckSum
// field, plus the byte offsets of the begin-string and body so a decoder
// doesn't need to re-scan for them.
type RawFrame struct {
	Bytes      []byte
	bodyStart  int
	bodyEnd    int
	beginLen   int
}

// BeginString returns the value of tag 8.
func (f RawFrame) BeginString() string {
	return string(f.Bytes[2 : f.beginLen-1])
}

// Payload returns the frame bytes from the start of the first body tag
// (immediately after BodyLength's field) through (but excluding) the
// trailing CheckSum field.
func (f RawFrame) Payload() []byte {
	return f.Bytes[f.bodyStart:f.bodyEnd]
}

// ScanFrame looks for one complete frame at the start of data. It never
// blocks and never retains data beyond the call: on ScanComplete, the
// returned RawFrame.Bytes aliases data[:n] where n is the second return
// value (bytes consumed).
func ScanFrame(data []byte, cfg Config) (RawFrame, int, ScanStatus, error) {
	sep := cfg.Separator

	if len(data) < 2 || data[0] != '8' || data[1] != '=' {
		if len(data) < 2 {
			return RawFrame{}, 0, ScanIncomplete, nil
		}
		return RawFrame{}, 0, ScanInvalid, &FramingError{Kind: PrematureEof, Offset: 0, Detail: "frame must start with \"8=\""}
	}

	beginSepIdx := indexByte(data, sep, 2)
	if beginSepIdx == -1 {
		return RawFrame{}, 0, ScanIncomplete, nil
	}
	beginLen := beginSepIdx + 1

	if len(data) < beginLen+2 {
		return RawFrame{}, 0, ScanIncomplete, nil
	}
	if data[beginLen] != '9' || data[beginLen+1] != '=' {
		return RawFrame{}, 0, ScanInvalid, &FramingError{Kind: PrematureEof, Offset: beginLen, Detail: "second field must be BodyLength (tag 9)"}
	}

	bodyLenValStart := beginLen + 2
	bodyLenSepIdx := indexByte(data, sep, bodyLenValStart)
	if bodyLenSepIdx == -1 {
		return RawFrame{}, 0, ScanIncomplete, nil
	}

	bodyLength, err := strconv.Atoi(string(data[bodyLenValStart:bodyLenSepIdx]))
	if err != nil || bodyLength < 0 {
		return RawFrame{}, 0, ScanInvalid, &FramingError{Kind: BadBodyLength, Offset: bodyLenValStart, Detail: "BodyLength is not a valid non-negative integer"}
	}
	if cfg.MaxFrameBytes > 0 && bodyLength > cfg.MaxFrameBytes {
		return RawFrame{}, 0, ScanInvalid, &FramingError{Kind: BadBodyLength, Offset: bodyLenValStart, Detail: "BodyLength exceeds configured maximum"}
	}

	bodyStart := bodyLenSepIdx + 1
	bodyEnd := bodyStart + bodyLength
	total := bodyEnd + checksumFieldLen

	if cfg.MaxFrameBytes > 0 && total > cfg.MaxFrameBytes {
		return RawFrame{}, 0, ScanInvalid, &FramingError{Kind: BadBodyLength, Offset: bodyStart, Detail: "frame exceeds configured maximum size"}
	}
	if len(data) < total {
		return RawFrame{}, 0, ScanIncomplete, nil
	}

	trailer := data[bodyEnd:total]
	if trailer[0] != '1' || trailer[1] != '0' || trailer[2] != '=' {
		return RawFrame{}, 0, ScanInvalid, &FramingError{Kind: PrematureEof, Offset: bodyEnd, Detail: "expected trailing CheckSum field (tag 10)"}
	}
	if trailer[checksumFieldLen-1] != sep {
		return RawFrame{}, 0, ScanInvalid, &FramingError{Kind: PrematureEof, Offset: total - 1, Detail: "frame must end with the configured separator"}
	}

	if cfg.ValidateChecksum {
		wantChecksum, err := strconv.Atoi(string(trailer[3:6]))
		if err != nil {
			return RawFrame{}, 0, ScanInvalid, &FramingError{Kind: ChecksumMismatch, Offset: bodyEnd + 3, Detail: "CheckSum value is not three decimal digits"}
		}
		if got := computeChecksum(data[:bodyEnd]); got != wantChecksum {
			return RawFrame{}, 0, ScanInvalid, &FramingError{
				Kind:   ChecksumMismatch,
				Offset: bodyEnd,
				Detail: "CheckSum mismatch",
			}
		}
	}

	frame := RawFrame{
		Bytes:     data[:total],
		bodyStart: bodyStart,
		bodyEnd:   bodyEnd,
		beginLen:  beginLen,
	}
	return frame, total, ScanComplete, nil
}

// computeChecksum is the FIX CheckSum algorithm: the sum of all bytes
// modulo 256.
func computeChecksum(b []byte) int {
	var sum int
	for _, c := range b {
		sum += int(c)
	}
	return sum % 256
}

func indexByte(b []byte, c byte, from int) int {
	for i := from; i < len(b); i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}
