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

package session

import "prime-fix-engine-go/tagvalue"

// Verifier answers accept/reject for an inbound decoded message based on
// session-level checks — CompID match, sending-time skew, sequence
// continuity — independent of the message's application content. The
// codec packages never perform this check themselves; it lives here so an
// embedding application can supply its own session-state source (the
// expected CompIDs, clock skew tolerance, etc.) without the codec
// depending on it.
type Verifier interface {
	// Verify inspects msg and returns a non-nil *Error if the message
	// should be rejected at the session level, or nil to accept it.
	Verify(msg *tagvalue.Message) *Error
}

// Application is the set of callbacks a session-layer implementation
// invokes around the message lifecycle, generalized from the teacher's
// FixApp (OnLogon/OnLogout/FromApp/ToApp/FromAdmin/ToAdmin in
// fixclient/fixapp.go) from quickfix's concrete *quickfix.Message to this
// module's own *tagvalue.Message. Embedding applications implement this
// to react to session events; this package only defines the contract.
type Application interface {
	// OnLogon fires once a Logon exchange completes successfully.
	OnLogon()
	// OnLogout fires when the session ends, successfully or not.
	OnLogout()
	// FromAdmin is called for every inbound session-level (admin)
	// message (Logon, Heartbeat, TestRequest, ResendRequest,
	// SequenceReset, Logout). Returning a non-nil *Error rejects it.
	FromAdmin(msg *tagvalue.Message) *Error
	// ToAdmin is called before every outbound session-level message,
	// giving the application a chance to add fields (e.g. Logon
	// credentials) before it goes on the wire.
	ToAdmin(msg *tagvalue.MessageBuilder)
	// FromApp is called for every inbound application-level message.
	// Returning a non-nil *Error rejects it.
	FromApp(msg *tagvalue.Message) *Error
	// ToApp is called before every outbound application-level message.
	ToApp(msg *tagvalue.MessageBuilder) *Error
}
