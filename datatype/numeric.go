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

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseInt parses a FIX int-family value (int, Length, SeqNum, NumInGroup,
// TagNum, DayOfMonth). Leading '+' and zero-padding are accepted, per the
// FIX spec's liberal-in-what-you-accept convention for numeric fields.
func ParseInt(raw string) (int64, error) {
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, newError("int", raw, err)
	}
	return v, nil
}

// FormatInt renders an int-family value in canonical (non-padded) form.
func FormatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

// ParseDecimal parses a FIX float-family value (float, Price, PriceOffset,
// Amt, Qty, Percentage) as an exact decimal, never a float64 — binary
// floating point cannot round-trip the tick-exact prices this protocol
// carries.
func ParseDecimal(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, newError("float", raw, err)
	}
	return d, nil
}

// FormatDecimal renders a decimal value in canonical form: no unnecessary
// trailing zeros, no exponent notation, a leading '-' only when negative.
func FormatDecimal(d decimal.Decimal) string {
	s := d.String()
	// decimal.Decimal.String() never emits exponent notation and already
	// strips trailing zeros beyond the stored exponent, but guard against
	// a bare "-0" slipping through from a zero-valued negative decimal.
	if s == "-0" {
		return "0"
	}
	return s
}

// MonthYear holds the components of a YYYYMM[DD|wN] MonthYear value:
// year, month, day (0 if absent), and week code (empty if absent,
// otherwise "w1".."w5" per FIX's optional week indicator).
type MonthYear struct {
	Year  int
	Month int
	Day   int    // 0 if not present
	Week  string // "" if not present
}

// ParseMonthYear parses a MonthYear value. Accepted forms: "YYYYMM",
// "YYYYMMDD", and "YYYYMMWW" where WW is "w1".."w5".
func ParseMonthYear(raw string) (MonthYear, error) {
	if len(raw) < 6 {
		return MonthYear{}, newError("MonthYear", raw, strconv.ErrSyntax)
	}
	year, err := strconv.Atoi(raw[0:4])
	if err != nil {
		return MonthYear{}, newError("MonthYear", raw, err)
	}
	month, err := strconv.Atoi(raw[4:6])
	if err != nil || month < 1 || month > 12 {
		return MonthYear{}, newError("MonthYear", raw, strconv.ErrSyntax)
	}
	my := MonthYear{Year: year, Month: month}
	if len(raw) == 6 {
		return my, nil
	}
	rest := raw[6:]
	if strings.HasPrefix(rest, "w") {
		if len(rest) != 2 || rest[1] < '1' || rest[1] > '5' {
			return MonthYear{}, newError("MonthYear", raw, strconv.ErrSyntax)
		}
		my.Week = rest
		return my, nil
	}
	if len(rest) != 2 {
		return MonthYear{}, newError("MonthYear", raw, strconv.ErrSyntax)
	}
	day, err := strconv.Atoi(rest)
	if err != nil || day < 1 || day > 31 {
		return MonthYear{}, newError("MonthYear", raw, strconv.ErrSyntax)
	}
	my.Day = day
	return my, nil
}

// FormatMonthYear renders a MonthYear back to wire form.
func FormatMonthYear(my MonthYear) string {
	base := zeroPad(my.Year, 4) + zeroPad(my.Month, 2)
	switch {
	case my.Week != "":
		return base + my.Week
	case my.Day != 0:
		return base + zeroPad(my.Day, 2)
	default:
		return base
	}
}

func zeroPad(v, width int) string {
	s := strconv.Itoa(v)
	for len(s) < width {
		s = "0" + s
	}
	return s
}
