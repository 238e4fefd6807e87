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

package fast

import "github.com/shopspring/decimal"

// priorValue holds one field's operator state across messages on the same
// template/codec: its previous decoded/encoded value (for copy, increment,
// tail) and whether that slot has ever been assigned. Stored as a
// contiguous []priorValue indexed by instruction position per spec.md §9
// ("do not allocate a hash map"), the same cache-locality discipline the
// teacher's tradestore.go ring buffers apply to hot trade/order state.
type priorValue struct {
	assigned bool
	empty    bool // true if the field was explicitly encoded as absent (optional null)
	i64      int64
	dec      decimal.Decimal
	str      string
	bytes    []byte
}

// priorState is one codec's full bank of operator slots for a single
// template, one priorValue per field instruction in template order.
type priorState struct {
	slots []priorValue
}

func newPriorState(n int) *priorState {
	return &priorState{slots: make([]priorValue, n)}
}

// reset clears every slot, per spec.md §4.7 "reset per session on caller
// request".
func (s *priorState) reset() {
	for i := range s.slots {
		s.slots[i] = priorValue{}
	}
}

// resolveInt applies the none/constant/default/copy/increment/delta
// operator semantics for an integer-family field during decode. present
// reports whether the PMAP bit was set (ignored for delta, which carries
// no PMAP bit). raw is the value read off the wire when present is true,
// or the delta to apply when op is OpDelta.
func resolveInt(slot *priorValue, op Operator, mandatory bool, initial int64, hasInitial bool, present bool, raw int64) (int64, bool, error) {
	switch op {
	case OpNone:
		if !present {
			if mandatory {
				return 0, false, dynamicErr("", "", D6, nil)
			}
			return 0, true, nil
		}
		return raw, false, nil

	case OpConstant:
		if !hasInitial {
			return 0, false, staticErr("", "", S4)
		}
		return initial, false, nil

	case OpDefault:
		if present {
			return raw, false, nil
		}
		if hasInitial {
			return initial, false, nil
		}
		if mandatory {
			return 0, false, dynamicErr("", "", D5, nil)
		}
		return 0, true, nil

	case OpCopy:
		if present {
			slot.assigned, slot.empty, slot.i64 = true, false, raw
			return raw, false, nil
		}
		if !slot.assigned {
			if hasInitial {
				slot.assigned, slot.i64 = true, initial
				return initial, false, nil
			}
			if mandatory {
				return 0, false, dynamicErr("", "", D5, nil)
			}
			slot.assigned, slot.empty = true, true
			return 0, true, nil
		}
		return slot.i64, slot.empty, nil

	case OpIncrement:
		if present {
			slot.assigned, slot.empty, slot.i64 = true, false, raw
			return raw, false, nil
		}
		if !slot.assigned {
			if hasInitial {
				slot.assigned, slot.i64 = true, initial
				return initial, false, nil
			}
			if mandatory {
				return 0, false, dynamicErr("", "", D5, nil)
			}
			slot.assigned, slot.empty = true, true
			return 0, true, nil
		}
		slot.i64++
		return slot.i64, slot.empty, nil

	case OpDelta:
		base := slot.i64
		if !slot.assigned {
			base = initial
		}
		v := base + raw
		slot.assigned, slot.empty, slot.i64 = true, false, v
		return v, false, nil

	default:
		return 0, false, staticErr("", "", S2)
	}
}

// decideIntPresence reports whether an integer-family field consumes a
// PMAP bit at all, per the operator table in spec.md §4.7 (delta and
// mandatory constant carry no PMAP bit).
func decideIntPresence(op Operator, mandatory bool) bool {
	switch op {
	case OpDelta:
		return false
	case OpConstant:
		return !mandatory
	default:
		return true
	}
}

// resolveString applies copy/default/tail/none semantics for a string
// field. For OpTail, raw is the tail fragment read off the wire (when
// present) that is spliced onto the previous full value.
func resolveString(slot *priorValue, op Operator, mandatory bool, initial string, hasInitial bool, present bool, raw string) (string, bool, error) {
	switch op {
	case OpNone:
		if !present {
			if mandatory {
				return "", false, dynamicErr("", "", D6, nil)
			}
			return "", true, nil
		}
		return raw, false, nil

	case OpConstant:
		if !hasInitial {
			return "", false, staticErr("", "", S4)
		}
		return initial, false, nil

	case OpDefault:
		if present {
			return raw, false, nil
		}
		if hasInitial {
			return initial, false, nil
		}
		if mandatory {
			return "", false, dynamicErr("", "", D5, nil)
		}
		return "", true, nil

	case OpCopy:
		if present {
			slot.assigned, slot.empty, slot.str = true, false, raw
			return raw, false, nil
		}
		if !slot.assigned {
			if hasInitial {
				slot.assigned, slot.str = true, initial
				return initial, false, nil
			}
			if mandatory {
				return "", false, dynamicErr("", "", D5, nil)
			}
			slot.assigned, slot.empty = true, true
			return "", true, nil
		}
		return slot.str, slot.empty, nil

	case OpTail:
		if !present {
			if !slot.assigned {
				if hasInitial {
					slot.assigned, slot.str = true, initial
					return initial, false, nil
				}
				if mandatory {
					return "", false, dynamicErr("", "", D5, nil)
				}
				slot.assigned, slot.empty = true, true
				return "", true, nil
			}
			return slot.str, slot.empty, nil
		}
		base := slot.str
		spliced := spliceTail(base, raw)
		slot.assigned, slot.empty, slot.str = true, false, spliced
		return spliced, false, nil

	default:
		return "", false, staticErr("", "", S2)
	}
}

// spliceTail implements the tail operator's "splice onto previous" rule:
// the wire carries a suffix that replaces the base's own suffix, anchored
// by the shared prefix — the common FAST convention is that the tail
// value simply replaces the trailing portion, so here the wire's raw
// value becomes the full new tail appended to the unchanged prefix of the
// same length as (len(base) - len(raw)) when raw is shorter than base;
// if raw is longer than or equal to base it stands alone.
func spliceTail(base, raw string) string {
	if len(raw) >= len(base) {
		return raw
	}
	prefixLen := len(base) - len(raw)
	return base[:prefixLen] + raw
}

// decideStringPresence mirrors decideIntPresence for string-family fields
// (tail and copy both still consume a PMAP bit; only mandatory constant
// does not).
func decideStringPresence(op Operator, mandatory bool) bool {
	if op == OpConstant {
		return !mandatory
	}
	return true
}
