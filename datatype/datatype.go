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

// Package datatype implements the FIX primitive datatypes: parsing raw
// wire bytes into Go values and formatting Go values back to wire bytes.
// Every datatype here is a plain, dependency-free value type; the
// dictionary package is what maps a field's symbolic type name onto one
// of these.
package datatype

import "prime-fix-engine-go/dictionary"

// Kind is the set of primitive value shapes a FIX datatype decodes to.
// Multiple dictionary.Base values can share a Kind (e.g. Price and Amt
// both decode to KindDecimal).
type Kind int

const (
	KindUnknown Kind = iota
	KindInt
	KindDecimal
	KindChar
	KindString
	KindData
	KindBoolean
	KindUTCTimestamp
	KindUTCTimeOnly
	KindUTCDateOnly
	KindLocalMktDate
	KindMonthYear
	KindTZTimestamp
	KindTZTimeOnly
	KindMultipleCharValue
	KindMultipleStringValue
)

// KindForBase maps a dictionary.Base to the Kind that decodes it.
func KindForBase(b dictionary.Base) Kind {
	switch b {
	case dictionary.BaseInt:
		return KindInt
	case dictionary.BaseFloat:
		return KindDecimal
	case dictionary.BaseChar:
		return KindChar
	case dictionary.BaseString:
		return KindString
	case dictionary.BaseData:
		return KindData
	case dictionary.BaseBoolean:
		return KindBoolean
	case dictionary.BaseUTCTimestamp:
		return KindUTCTimestamp
	case dictionary.BaseUTCTimeOnly:
		return KindUTCTimeOnly
	case dictionary.BaseUTCDateOnly:
		return KindUTCDateOnly
	case dictionary.BaseLocalMktDate:
		return KindLocalMktDate
	case dictionary.BaseMonthYear:
		return KindMonthYear
	case dictionary.BaseTZTimestamp:
		return KindTZTimestamp
	case dictionary.BaseTZTimeOnly:
		return KindTZTimeOnly
	case dictionary.BaseMultipleCharValue:
		return KindMultipleCharValue
	case dictionary.BaseMultipleStringValue:
		return KindMultipleStringValue
	default:
		return KindUnknown
	}
}
