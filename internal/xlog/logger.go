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

// Package xlog builds the *zap.Logger this module's packages accept as an
// optional diagnostic sink (dictionary.Load via Options.Logger and
// fast.Decoder/Encoder take a nil-able *zap.Logger rather than reach for a
// package-global logger; the tagvalue package takes no logger).
package xlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production or development zap.Logger depending on isProd,
// returning the logger and its Sync function for the caller to defer.
func New(isProd bool) (*zap.Logger, func() error) {
	var logger *zap.Logger
	if isProd {
		logger = zap.Must(zap.NewProduction())
	} else {
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger = zap.Must(cfg.Build())
	}
	return logger, logger.Sync
}

// Nop returns a logger that discards everything, for callers that want the
// *zap.Logger-accepting APIs without configuring a real sink (tests,
// short-lived CLI invocations).
func Nop() *zap.Logger {
	return zap.NewNop()
}
