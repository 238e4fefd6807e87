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

// Package xconfig loads this module's ambient configuration knobs
// (dictionary paths, default codec settings) via viper, the way the
// teacher's cfg.MustLoad loads per-process YAML config. Unlike
// MustLoad, Load returns an error instead of panicking — this module is a
// library, not a process entrypoint, and must not crash its host on a
// malformed config file.
package xconfig

import (
	"fmt"

	"github.com/spf13/viper"
)

// EngineConfig is the ambient configuration surface for an embedding
// application: where to find FIX dictionaries and FAST templates, and the
// default tagvalue.Config knobs to start every session with.
type EngineConfig struct {
	DictionaryDir      string `mapstructure:"dictionary_dir"`
	FastTemplateDir    string `mapstructure:"fast_template_dir"`
	StrictUnknownTags  bool   `mapstructure:"strict_unknown_tags"`
	ValidateChecksum   bool   `mapstructure:"validate_checksum"`
	ValidateBodyLength bool   `mapstructure:"validate_body_length"`
	MaxFrameBytes      int    `mapstructure:"max_frame_bytes"`
	MaxGroupEntries    int    `mapstructure:"max_group_entries"`
	TimestampPrecision string `mapstructure:"timestamp_precision"`
	ProductionLogging  bool   `mapstructure:"production_logging"`
}

// Load reads configName(.yaml|.json|...) from the given search paths and
// unmarshals it into T. Unlike the teacher's MustLoad[T any], a missing or
// malformed config file is returned as an error rather than a panic.
func Load[T any](configName string, searchPaths ...string) (*T, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	if len(searchPaths) == 0 {
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("xconfig: reading config %q: %w", configName, err)
	}

	var cfg T
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("xconfig: unmarshaling config %q: %w", configName, err)
	}
	return &cfg, nil
}

// DefaultEngineConfig returns the conservative defaults this module's
// codecs use absent an explicit config file: strict tag checking and both
// wire validations on, unbounded frame/group limits, second-precision
// timestamps.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		StrictUnknownTags:  true,
		ValidateChecksum:   true,
		ValidateBodyLength: true,
		TimestampPrecision: "seconds",
	}
}
