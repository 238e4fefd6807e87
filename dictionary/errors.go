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

package dictionary

import "fmt"

// ErrorKind classifies a dictionary load failure. All load errors are
// fatal: dictionary loading is an offline step and the engine has no
// tolerant path for a broken schema.
type ErrorKind int

const (
	MalformedXML ErrorKind = iota
	DanglingReference
	DuplicateKey
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedXML:
		return "malformed XML"
	case DanglingReference:
		return "dangling reference"
	case DuplicateKey:
		return "duplicate key"
	default:
		return "unknown"
	}
}

// LoadError reports a fatal problem found while loading a dictionary.
type LoadError struct {
	Kind   ErrorKind
	File   string
	Detail string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("dictionary: %s in %s: %s: %v", e.Kind, e.File, e.Detail, e.Err)
	}
	return fmt.Sprintf("dictionary: %s in %s: %s", e.Kind, e.File, e.Detail)
}

func (e *LoadError) Unwrap() error { return e.Err }

func newLoadError(kind ErrorKind, file, detail string, err error) *LoadError {
	return &LoadError{Kind: kind, File: file, Detail: detail, Err: err}
}
