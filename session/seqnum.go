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

import "sync"

// SeqNumState tracks the inbound/outbound MsgSeqNum counters for one
// session, servicing SequenceReset-Reset and gap-fill requests per
// spec.md §4.8. Mutex-guarded counters, no external store — the same
// small-state-in-memory discipline as the teacher's FixApp fields
// (lastLogonTime, shouldExit) rather than a database-backed sequence
// store.
type SeqNumState struct {
	mu              sync.Mutex
	expectedInbound int64
	nextOutbound    int64
}

// NewSeqNumState starts a session at MsgSeqNum 1 in both directions, the
// FIX default for a freshly established session.
func NewSeqNumState() *SeqNumState {
	return &SeqNumState{expectedInbound: 1, nextOutbound: 1}
}

// ExpectedInbound returns the MsgSeqNum the next inbound message must
// carry.
func (s *SeqNumState) ExpectedInbound() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expectedInbound
}

// AdvanceInbound records that a message with the expected sequence number
// was received, and increments the expectation. Returns a
// *Error{Kind: UnexpectedMsgSeqNum} if got does not match what was
// expected — the caller should signal a ResendRequest or tear the session
// down rather than silently accept a gap.
func (s *SeqNumState) AdvanceInbound(got int64) *Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if got != s.expectedInbound {
		return newError(UnexpectedMsgSeqNum, "expected inbound MsgSeqNum does not match")
	}
	s.expectedInbound++
	return nil
}

// NextOutbound returns the MsgSeqNum to stamp on the next outbound
// message and increments the counter, matching the one-shot
// "allocate and advance" usage pattern an encoder needs per message.
func (s *SeqNumState) NextOutbound() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.nextOutbound
	s.nextOutbound++
	return n
}

// SetExpected forcibly resets the expected inbound MsgSeqNum, servicing a
// SequenceReset-Reset message (as opposed to gap-fill, which advances
// normally via AdvanceInbound calls for the skipped range).
func (s *SeqNumState) SetExpected(n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expectedInbound = n
}

// SetNextOutbound forcibly sets the next outbound MsgSeqNum, the mirror of
// SetExpected for the send side (used when a counterparty requests a
// specific resend/reset range on the outbound side).
func (s *SeqNumState) SetNextOutbound(n int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextOutbound = n
}
