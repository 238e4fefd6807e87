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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeqNumStateDefaults(t *testing.T) {
	s := NewSeqNumState()
	assert.EqualValues(t, 1, s.ExpectedInbound())
	assert.EqualValues(t, 1, s.NextOutbound())
	assert.EqualValues(t, 2, s.NextOutbound())
}

func TestAdvanceInboundInOrder(t *testing.T) {
	s := NewSeqNumState()
	for i := int64(1); i <= 3; i++ {
		require.Nil(t, s.AdvanceInbound(i))
	}
	assert.EqualValues(t, 4, s.ExpectedInbound())
}

func TestAdvanceInboundUnexpectedSeqNum(t *testing.T) {
	s := NewSeqNumState()
	err := s.AdvanceInbound(5)
	require.NotNil(t, err)
	assert.Equal(t, UnexpectedMsgSeqNum, err.Kind)
	// A rejected message must not advance the counter.
	assert.EqualValues(t, 1, s.ExpectedInbound())
}

func TestSetExpectedServicesSequenceReset(t *testing.T) {
	s := NewSeqNumState()
	s.SetExpected(100)
	assert.EqualValues(t, 100, s.ExpectedInbound())
	assert.Nil(t, s.AdvanceInbound(100))
}

func TestSetNextOutbound(t *testing.T) {
	s := NewSeqNumState()
	s.SetNextOutbound(50)
	assert.EqualValues(t, 50, s.NextOutbound())
}
