// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package retail

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/specialistvlad/retailgrid/internal/frame"
)

// NormalizeTypes fixes the final column types: InvoiceDate is a timestamp
// (text must parse), Quantity is int64 (floats truncate toward zero, nulls
// are an error) and Price and Total Price are float64.
func NormalizeTypes(f *frame.Frame) (*frame.Frame, error) {
	dates, err := timestamps(f, ColInvoiceDate, true)
	if err != nil {
		return nil, err
	}
	qty, err := toInt64(f, ColQuantity)
	if err != nil {
		return nil, err
	}

	out := f
	for _, col := range []*frame.Column{dates, qty} {
		if out, err = out.With(col); err != nil {
			return nil, err
		}
	}
	for _, name := range []string{ColPrice, ColTotalPrice} {
		col, err := toFloat64(f, name)
		if err != nil {
			return nil, err
		}
		if out, err = out.With(col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func toInt64(f *frame.Frame, name string) (*frame.Column, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if col.Kind == frame.KindInt64 && col.NullCount() == 0 {
		return col, nil
	}
	out := frame.NewColumn(name, frame.KindInt64, col.Len())
	for i := 0; i < col.Len(); i++ {
		var n int64
		switch v := col.Value(i).(type) {
		case nil:
			return nil, fmt.Errorf("column %q row %d: cannot convert null to integer", name, i)
		case int64:
			n = v
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("column %q row %d: cannot convert %v to integer", name, i, v)
			}
			n = int64(math.Trunc(v))
		case string:
			if n, err = strconv.ParseInt(strings.TrimSpace(v), 10, 64); err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
			}
		case bool:
			if v {
				n = 1
			}
		default:
			return nil, fmt.Errorf("column %q row %d: cannot convert %T to integer", name, i, v)
		}
		if err := out.Set(i, n); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func toFloat64(f *frame.Frame, name string) (*frame.Column, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if col.Kind == frame.KindFloat64 {
		return col, nil
	}
	out := frame.NewColumn(name, frame.KindFloat64, col.Len())
	for i := 0; i < col.Len(); i++ {
		var x float64
		switch v := col.Value(i).(type) {
		case nil:
			continue
		case int64:
			x = float64(v)
		case string:
			if x, err = strconv.ParseFloat(strings.TrimSpace(v), 64); err != nil {
				return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
			}
		case bool:
			if v {
				x = 1
			}
		default:
			return nil, fmt.Errorf("column %q row %d: cannot convert %T to float", name, i, v)
		}
		if err := out.Set(i, x); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// NormalizeText trims and capitalizes Description, title-cases Country and
// upper-cases StockCode. Non-text cells are rendered as text first.
func NormalizeText(f *frame.Frame) (*frame.Frame, error) {
	textual, err := ToText(f, ColDescription, ColCountry, ColStockCode)
	if err != nil {
		return nil, err
	}

	upper := cases.Upper(language.Und)
	rules := []struct {
		column string
		fn     func(string) string
	}{
		{ColDescription, func(s string) string { return Capitalize(strings.TrimSpace(s)) }},
		{ColCountry, TitleCase},
		{ColStockCode, upper.String},
	}

	out := textual
	for _, rule := range rules {
		col, err := textual.Column(rule.column)
		if err != nil {
			return nil, err
		}
		normalized := frame.NewColumn(rule.column, frame.KindString, col.Len())
		for i := 0; i < col.Len(); i++ {
			s, ok := col.StringAt(i)
			if !ok {
				continue
			}
			if err := normalized.Set(i, rule.fn(s)); err != nil {
				return nil, err
			}
		}
		if out, err = out.With(normalized); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Capitalize upper-cases the first rune of s and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + cases.Lower(language.Und).String(s[size:])
}

// TitleCase upper-cases every letter that follows a non-letter and
// lower-cases the rest, so "cote d'ivoire" becomes "Cote D'Ivoire" and
// "rsa2nd" becomes "Rsa2Nd".
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	afterLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if afterLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToTitle(r)
			}
			afterLetter = true
		} else {
			afterLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
