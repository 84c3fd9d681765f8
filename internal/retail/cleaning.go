// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package retail

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/specialistvlad/retailgrid/internal/frame"
)

// ToText converts the named columns to text. Integral floats render without
// a fractional part so that identifiers such as 13085.0 become "13085".
// Null cells stay null.
func ToText(f *frame.Frame, columns ...string) (*frame.Frame, error) {
	out := f
	for _, name := range columns {
		col, err := f.Column(name)
		if err != nil {
			return nil, err
		}
		if col.Kind == frame.KindString {
			continue
		}
		text := frame.NewColumn(name, frame.KindString, col.Len())
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				continue
			}
			if err := text.Set(i, formatCell(col.Value(i))); err != nil {
				return nil, err
			}
		}
		if out, err = out.With(text); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "True"
		}
		return "False"
	default:
		if t, ok := asTime(v); ok {
			return t.Format(TimestampLayout)
		}
		return fmt.Sprint(v)
	}
}

// Deduplicate drops every row whose values in subset equal those of an
// earlier row. The first occurrence is kept and nulls compare equal to each
// other. It returns the new frame and the number of rows dropped.
func Deduplicate(f *frame.Frame, subset []string) (*frame.Frame, int, error) {
	if len(subset) == 0 {
		subset = f.Names()
	}
	cols := make([]*frame.Column, len(subset))
	for i, name := range subset {
		col, err := f.Column(name)
		if err != nil {
			return nil, 0, err
		}
		cols[i] = col
	}

	seen := make(map[string]struct{}, f.NumRows())
	keep := make([]bool, f.NumRows())
	dropped := 0
	var key strings.Builder
	for row := 0; row < f.NumRows(); row++ {
		key.Reset()
		for _, col := range cols {
			writeKeyPart(&key, col.Value(row))
		}
		k := key.String()
		if _, dup := seen[k]; dup {
			dropped++
			continue
		}
		seen[k] = struct{}{}
		keep[row] = true
	}

	out, err := f.Filter(keep)
	if err != nil {
		return nil, 0, err
	}
	return out, dropped, nil
}

// writeKeyPart appends a type-tagged, unambiguous encoding of v.
func writeKeyPart(b *strings.Builder, v any) {
	if v == nil {
		b.WriteString("n\x1f")
		return
	}
	if t, ok := asTime(v); ok {
		b.WriteString("t")
		b.WriteString(strconv.FormatInt(t.UnixNano(), 10))
		b.WriteByte(0x1f)
		return
	}
	switch x := v.(type) {
	case string:
		b.WriteString("s")
		b.WriteString(strconv.Itoa(len(x)))
		b.WriteByte(':')
		b.WriteString(x)
	case int64:
		b.WriteString("i")
		b.WriteString(strconv.FormatInt(x, 10))
	case float64:
		b.WriteString("f")
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	case bool:
		b.WriteString("b")
		b.WriteString(strconv.FormatBool(x))
	}
	b.WriteByte(0x1f)
}

// Impute replaces nulls in the columns named by fills with the given value,
// converted to the column's kind. It returns the number of cells filled per
// column.
func Impute(f *frame.Frame, fills map[string]string) (*frame.Frame, map[string]int, error) {
	out := f
	counts := make(map[string]int, len(fills))
	for _, name := range sortedKeys(fills) {
		col, err := f.Column(name)
		if err != nil {
			return nil, nil, err
		}
		if col.NullCount() == 0 {
			counts[name] = 0
			continue
		}
		fill, err := parseAs(col.Kind, fills[name])
		if err != nil {
			return nil, nil, fmt.Errorf("fill value for %q: %w", name, err)
		}
		filled := col.Clone()
		for i := 0; i < filled.Len(); i++ {
			if !filled.IsNull(i) {
				continue
			}
			if err := filled.Set(i, fill); err != nil {
				return nil, nil, err
			}
			counts[name]++
		}
		if out, err = out.With(filled); err != nil {
			return nil, nil, err
		}
	}
	return out, counts, nil
}

func parseAs(kind frame.Kind, s string) (any, error) {
	switch kind {
	case frame.KindString:
		return s, nil
	case frame.KindInt64:
		return strconv.ParseInt(s, 10, 64)
	case frame.KindFloat64:
		return strconv.ParseFloat(s, 64)
	case frame.KindBool:
		return strconv.ParseBool(s)
	case frame.KindTimestamp:
		return ParseTimestamp(s)
	default:
		return nil, fmt.Errorf("unsupported kind %s", kind)
	}
}
