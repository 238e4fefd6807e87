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
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseFormatInt(t *testing.T) {
	v, err := ParseInt("042")
	if err != nil || v != 42 {
		t.Fatalf("ParseInt(042) = %d, %v", v, err)
	}
	if got := FormatInt(42); got != "42" {
		t.Fatalf("FormatInt(42) = %q", got)
	}
	if _, err := ParseInt("abc"); err == nil {
		t.Fatal("ParseInt(abc) error = nil")
	}
}

func TestParseFormatDecimal(t *testing.T) {
	d, err := ParseDecimal("123.4500")
	if err != nil {
		t.Fatalf("ParseDecimal error = %v", err)
	}
	want := decimal.RequireFromString("123.45")
	if !d.Equal(want) {
		t.Fatalf("ParseDecimal(123.4500) = %s, want %s", d, want)
	}

	if got := FormatDecimal(decimal.RequireFromString("-0")); got != "0" {
		t.Fatalf("FormatDecimal(-0) = %q, want 0", got)
	}

	if _, err := ParseDecimal("not-a-number"); err == nil {
		t.Fatal("ParseDecimal(not-a-number) error = nil")
	}
}

func TestParseFormatMonthYear(t *testing.T) {
	cases := []struct {
		raw  string
		want MonthYear
	}{
		{"202503", MonthYear{Year: 2025, Month: 3}},
		{"20250315", MonthYear{Year: 2025, Month: 3, Day: 15}},
		{"202503w2", MonthYear{Year: 2025, Month: 3, Week: "w2"}},
	}
	for _, c := range cases {
		got, err := ParseMonthYear(c.raw)
		if err != nil {
			t.Fatalf("ParseMonthYear(%s) error = %v", c.raw, err)
		}
		if got != c.want {
			t.Fatalf("ParseMonthYear(%s) = %+v, want %+v", c.raw, got, c.want)
		}
		if back := FormatMonthYear(got); back != c.raw {
			t.Fatalf("FormatMonthYear(%+v) = %s, want %s", got, back, c.raw)
		}
	}

	if _, err := ParseMonthYear("2025"); err == nil {
		t.Fatal("ParseMonthYear(2025) error = nil, want error for short input")
	}
	if _, err := ParseMonthYear("20251301"); err == nil {
		t.Fatal("ParseMonthYear(20251301) error = nil, want error for invalid month")
	}
}
