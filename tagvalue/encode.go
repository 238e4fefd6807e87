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
	"bytes"
	"time"

	"github.com/shopspring/decimal"

	"prime-fix-engine-go/datatype"
)

// Encoder builds wire-format FIX messages for a fixed BeginString. Create
// one per session (the BeginString rarely changes mid-connection) and
// call NewMessage per outgoing message.
type Encoder struct {
	cfg         Config
	beginString string
}

// NewEncoder builds an Encoder that stamps beginString (e.g. "FIX.4.4")
// into every message it produces.
func NewEncoder(cfg Config, beginString string) *Encoder {
	return &Encoder{cfg: cfg, beginString: beginString}
}

type fieldWrite struct {
	tag   uint32
	value []byte
}

// MessageBuilder accumulates a single outgoing message's standard header
// and body fields, in the order they should appear on the wire.
type MessageBuilder struct {
	enc          *Encoder
	msgType      string
	senderCompID string
	targetCompID string
	msgSeqNum    int64
	sendingTime  time.Time
	body         []fieldWrite
}

// NewMessage starts building a message with the standard header fields
// every FIX message carries (BeginString/BodyLength are computed at
// Build time, not set here).
func (enc *Encoder) NewMessage(msgType, senderCompID, targetCompID string, msgSeqNum int64, sendingTime time.Time) *MessageBuilder {
	return &MessageBuilder{
		enc:          enc,
		msgType:      msgType,
		senderCompID: senderCompID,
		targetCompID: targetCompID,
		msgSeqNum:    msgSeqNum,
		sendingTime:  sendingTime,
	}
}

// SetRaw appends tag=value to the body in the order called. Repeating
// group entries are produced by calling SetRaw (or a SetX helper) for the
// count field followed by each entry's fields, in wire order — the
// builder trusts the caller to respect group structure, the same way the
// dictionary-driven decoder trusts the wire to respect it.
func (b *MessageBuilder) SetRaw(tag uint32, value []byte) *MessageBuilder {
	b.body = append(b.body, fieldWrite{tag: tag, value: value})
	return b
}

// SetString appends a String-family field.
func (b *MessageBuilder) SetString(tag uint32, value string) *MessageBuilder {
	return b.SetRaw(tag, []byte(value))
}

// SetInt appends an int-family field.
func (b *MessageBuilder) SetInt(tag uint32, value int64) *MessageBuilder {
	return b.SetRaw(tag, []byte(datatype.FormatInt(value)))
}

// SetDecimal appends a float-family field (Price, Amt, Qty, Percentage).
func (b *MessageBuilder) SetDecimal(tag uint32, value decimal.Decimal) *MessageBuilder {
	return b.SetRaw(tag, []byte(datatype.FormatDecimal(value)))
}

// SetBool appends a Boolean field.
func (b *MessageBuilder) SetBool(tag uint32, value bool) *MessageBuilder {
	return b.SetRaw(tag, []byte(datatype.FormatBoolean(value)))
}

// SetUTCTimestamp appends a UTCTimestamp field at the encoder's
// configured precision.
func (b *MessageBuilder) SetUTCTimestamp(tag uint32, value time.Time) *MessageBuilder {
	return b.SetRaw(tag, []byte(datatype.FormatUTCTimestamp(value, b.enc.cfg.TimestampPrecision)))
}

// Build renders the message to wire bytes: standard header, body fields
// in the order added, BodyLength, then CheckSum — each computed in a
// second pass over the first, per the tag=value encoding's two-phase
// length-then-checksum structure.
func (b *MessageBuilder) Build() ([]byte, error) {
	if b.msgType == "" {
		return nil, &EncodeError{Kind: MissingRequiredField, Tag: 35, Detail: "MsgType is required"}
	}

	sep := b.enc.cfg.Separator

	var body bytes.Buffer
	writeField(&body, 35, []byte(b.msgType), sep)
	writeField(&body, 49, []byte(b.senderCompID), sep)
	writeField(&body, 56, []byte(b.targetCompID), sep)
	writeField(&body, 34, []byte(datatype.FormatInt(b.msgSeqNum)), sep)
	writeField(&body, 52, []byte(datatype.FormatUTCTimestamp(b.sendingTime, b.enc.cfg.TimestampPrecision)), sep)
	for _, f := range b.body {
		writeField(&body, f.tag, f.value, sep)
	}

	var out bytes.Buffer
	writeField(&out, 8, []byte(b.enc.beginString), sep)
	writeField(&out, 9, []byte(datatype.FormatInt(int64(body.Len()))), sep)
	out.Write(body.Bytes())

	checksum := computeChecksum(out.Bytes())
	writeField(&out, 10, []byte(zeroPadChecksum(checksum)), sep)

	return out.Bytes(), nil
}

func writeField(buf *bytes.Buffer, tag uint32, value []byte, sep byte) {
	buf.WriteString(datatype.FormatInt(int64(tag)))
	buf.WriteByte('=')
	buf.Write(value)
	buf.WriteByte(sep)
}

func zeroPadChecksum(v int) string {
	s := datatype.FormatInt(int64(v))
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
