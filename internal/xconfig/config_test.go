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

package xconfig

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleConfigYAML = `
dictionary_dir: /etc/fix/dictionaries
fast_template_dir: /etc/fix/templates
strict_unknown_tags: true
validate_checksum: true
validate_body_length: false
max_frame_bytes: 65536
max_group_entries: 1000
timestamp_precision: millis
`

func TestLoadEngineConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "engine.yaml"), []byte(sampleConfigYAML), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load[EngineConfig]("engine", dir)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}

	if cfg.DictionaryDir != "/etc/fix/dictionaries" {
		t.Fatalf("DictionaryDir = %q", cfg.DictionaryDir)
	}
	if !cfg.StrictUnknownTags {
		t.Fatal("StrictUnknownTags = false, want true")
	}
	if cfg.ValidateBodyLength {
		t.Fatal("ValidateBodyLength = true, want false")
	}
	if cfg.MaxFrameBytes != 65536 {
		t.Fatalf("MaxFrameBytes = %d, want 65536", cfg.MaxFrameBytes)
	}
}

func TestLoadMissingConfigReturnsError(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load[EngineConfig]("nonexistent", dir); err == nil {
		t.Fatal("Load() error = nil, want error for missing config file")
	}
}

func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()
	if !cfg.StrictUnknownTags || !cfg.ValidateChecksum || !cfg.ValidateBodyLength {
		t.Fatalf("DefaultEngineConfig() = %+v, want all validations on", cfg)
	}
	if cfg.TimestampPrecision != "seconds" {
		t.Fatalf("TimestampPrecision = %q, want seconds", cfg.TimestampPrecision)
	}
}
