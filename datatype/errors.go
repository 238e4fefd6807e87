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

package datatype

import "fmt"

// Error reports a value that could not be parsed as, or is not a legal
// instance of, the named datatype. Raw preserves the offending bytes so
// callers can report a useful diagnostic without re-reading the wire.
type Error struct {
	Datatype string
	Raw      string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("datatype %s: invalid value %q: %v", e.Datatype, e.Raw, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(datatype, raw string, err error) *Error {
	return &Error{Datatype: datatype, Raw: raw, Err: err}
}
