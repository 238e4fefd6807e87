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
	"github.com/shopspring/decimal"
)

// encodeUint writes v as an unsigned stop-bit (base-128) integer: 7 bits
// per byte, most-significant group first, with the high bit set on the
// final byte to mark the stop.
func encodeUint(v uint64) []byte {
	var groups []byte
	groups = append(groups, byte(v&0x7f))
	v >>= 7
	for v > 0 {
		groups = append(groups, byte(v&0x7f))
		v >>= 7
	}
	out := make([]byte, len(groups))
	for i, g := range groups {
		out[len(groups)-1-i] = g
	}
	out[len(out)-1] |= 0x80
	return out
}

// decodeUint reads an unsigned stop-bit integer from the front of data,
// returning the value and the number of bytes consumed. Reports R6 if
// more than 10 groups are read without a stop bit (an overlong int64
// cannot need more than 10 groups of 7 bits).
func decodeUint(data []byte) (uint64, int, error) {
	var v uint64
	for i := 0; i < len(data); i++ {
		if i >= 10 {
			return 0, 0, reportableErr("", "", R6, nil)
		}
		b := data[i]
		v = (v << 7) | uint64(b&0x7f)
		if b&0x80 != 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, reportableErr("", "", R5, nil)
}

// encodeInt writes v as a signed stop-bit integer: two's-complement,
// sign-extended into the top bits of the first (most significant) group
// so the sign can be recovered without an external bit. Go's >> on a
// signed int64 is an arithmetic shift, so successive groups are the
// natural sign-extended continuation of the value.
func encodeInt(v int64) []byte {
	var groups []byte
	for {
		group := byte(v & 0x7f)
		v >>= 7
		groups = append(groups, group)
		signBit := group&0x40 != 0
		if (signBit && v == -1) || (!signBit && v == 0) {
			break
		}
		if len(groups) >= 10 {
			break
		}
	}
	out := make([]byte, len(groups))
	for i, g := range groups {
		out[len(groups)-1-i] = g
	}
	out[len(out)-1] |= 0x80
	return out
}

// decodeInt reads a signed stop-bit integer, sign-extending from the first
// group's bit 6.
func decodeInt(data []byte) (int64, int, error) {
	var first byte
	var v int64
	for i := 0; i < len(data); i++ {
		if i >= 10 {
			return 0, 0, reportableErr("", "", R6, nil)
		}
		b := data[i]
		if i == 0 {
			first = b
			if first&0x40 != 0 {
				v = -1 // sign-extend with all-ones
			}
		}
		v = (v << 7) | int64(b&0x7f)
		if b&0x80 != 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, reportableErr("", "", R5, nil)
}

// decodeDecimal reads a FAST decimal as a signed stop-bit exponent
// followed by a signed stop-bit mantissa, per spec.md §4.7's "exponent
// (signed) then mantissa (signed)" primitive codec.
func decodeDecimal(data []byte) (decimal.Decimal, int, error) {
	exp, n1, err := decodeInt(data)
	if err != nil {
		return decimal.Decimal{}, 0, err
	}
	if exp < -63 || exp > 63 {
		return decimal.Decimal{}, 0, dynamicErr("", "", D3, exp)
	}
	mantissa, n2, err := decodeInt(data[n1:])
	if err != nil {
		return decimal.Decimal{}, 0, err
	}
	return decimal.New(mantissa, int32(exp)), n1 + n2, nil
}

// encodeDecimal is the mirror of decodeDecimal: exponent then mantissa,
// each as a signed stop-bit integer.
func encodeDecimal(d decimal.Decimal) ([]byte, error) {
	exp := int64(d.Exponent())
	if exp < -63 || exp > 63 {
		return nil, dynamicErr("", "", D3, exp)
	}
	out := encodeInt(exp)
	out = append(out, encodeInt(d.Coefficient().Int64())...)
	return out, nil
}

// decodeAsciiString reads a stop-bit-terminated ASCII string: every byte
// but the last carries its 7 data bits as one ASCII character; the last
// byte's data bits (after clearing the stop bit) complete the final
// character unless it is the only byte and its data bits are all zero,
// which is the reserved encoding of the empty string (spec.md §4.7).
func decodeAsciiString(data []byte) (string, int, error) {
	var out []byte
	for i := 0; i < len(data); i++ {
		b := data[i]
		stop := b&0x80 != 0
		ch := b & 0x7f
		if stop {
			if ch != 0 || i > 0 {
				out = append(out, ch)
			}
			return string(out), i + 1, nil
		}
		out = append(out, ch)
	}
	return "", 0, reportableErr("", "", R5, nil)
}

// encodeAsciiString is the mirror of decodeAsciiString: every byte but the
// last carries one character's 7 bits, the final byte's stop bit is set.
func encodeAsciiString(s string) []byte {
	if s == "" {
		return []byte{0x80}
	}
	out := make([]byte, len(s))
	copy(out, s)
	out[len(out)-1] |= 0x80
	return out
}

// decodeByteVector reads a length-prefixed raw byte sequence: an unsigned
// stop-bit length followed by that many raw bytes.
func decodeByteVector(data []byte) ([]byte, int, error) {
	length, n, err := decodeUint(data)
	if err != nil {
		return nil, 0, err
	}
	end := n + int(length)
	if end > len(data) {
		return nil, 0, reportableErr("", "", R5, nil)
	}
	out := make([]byte, length)
	copy(out, data[n:end])
	return out, end, nil
}

// encodeByteVector is the mirror of decodeByteVector.
func encodeByteVector(b []byte) []byte {
	out := encodeUint(uint64(len(b)))
	return append(out, b...)
}
