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
	"testing"
	"time"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cfg := testConfig()
	enc := NewEncoder(cfg, "FIX.4.2")
	sendingTime := time.Date(2025, 3, 15, 13, 45, 0, 0, time.UTC)

	out, err := enc.NewMessage("D", "AFUNDMGR", "ABROKER", 1, sendingTime).
		SetString(15, "USD").
		SetString(59, "0").
		Build()
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}

	dict := testDictForDecode(t)
	dec := NewDecoder(dict, cfg)

	frame, _, status, err := ScanFrame(out, cfg)
	if err != nil || status != ScanComplete {
		t.Fatalf("ScanFrame: status=%v err=%v", status, err)
	}

	msg, err := dec.Decode(frame)
	if err != nil {
		t.Fatalf("Decode error = %v", err)
	}

	if mt, ok := msg.MsgType(); !ok || mt != "D" {
		t.Fatalf("MsgType() = %q, %v", mt, ok)
	}
	if v, ok := msg.GetString(15); !ok || v != "USD" {
		t.Fatalf("GetString(15) = %q, %v", v, ok)
	}
	if n, err := msg.GetInt(34); err != nil || n != 1 {
		t.Fatalf("GetInt(34) = %d, %v", n, err)
	}
}

func TestEncodeMissingMsgType(t *testing.T) {
	enc := NewEncoder(testConfig(), "FIX.4.2")
	_, err := enc.NewMessage("", "A", "B", 1, time.Now()).Build()
	if err == nil {
		t.Fatal("Build() error = nil, want error for missing MsgType")
	}
}

func TestEncodeBodyLengthAndChecksum(t *testing.T) {
	cfg := testConfig()
	enc := NewEncoder(cfg, "FIX.4.2")
	sendingTime := time.Date(2025, 3, 15, 13, 45, 0, 0, time.UTC)
	out, err := enc.NewMessage("0", "A", "B", 12, sendingTime).Build()
	if err != nil {
		t.Fatalf("Build error = %v", err)
	}

	// Re-scanning the self-produced frame with checksum/body-length
	// validation on must succeed — the two-phase patch must be
	// internally consistent.
	_, _, status, err := ScanFrame(out, cfg)
	if err != nil || status != ScanComplete {
		t.Fatalf("ScanFrame of self-produced frame: status=%v err=%v", status, err)
	}
}
