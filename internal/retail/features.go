// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package retail

import (
	"fmt"
	"time"

	"github.com/specialistvlad/retailgrid/internal/frame"
)

// DeriveFeatures parses InvoiceDate (cells that do not parse become null) and
// appends Total Price, DayOfWeek Num (Monday=0), DayOfWeek Name and IsWeekend.
// A row without a timestamp gets null weekday cells and IsWeekend=false.
func DeriveFeatures(f *frame.Frame) (*frame.Frame, error) {
	dates, err := timestamps(f, ColInvoiceDate, false)
	if err != nil {
		return nil, err
	}
	price, err := numeric(f, ColPrice)
	if err != nil {
		return nil, err
	}
	qty, err := numeric(f, ColQuantity)
	if err != nil {
		return nil, err
	}

	n := f.NumRows()
	total := frame.NewColumn(ColTotalPrice, frame.KindFloat64, n)
	dayNum := frame.NewColumn(ColDayOfWeekNum, frame.KindInt64, n)
	dayName := frame.NewColumn(ColDayOfWeekName, frame.KindString, n)
	weekend := frame.NewColumn(ColIsWeekend, frame.KindBool, n)

	for i := 0; i < n; i++ {
		p, okP := price.Float64At(i)
		q, okQ := qty.Float64At(i)
		if okP && okQ {
			if err := total.Set(i, p*q); err != nil {
				return nil, err
			}
		}

		isWeekend := false
		if t, ok := dates.TimeAt(i); ok {
			num := weekdayNumber(t.Weekday())
			if err := dayNum.Set(i, int64(num)); err != nil {
				return nil, err
			}
			if err := dayName.Set(i, t.Weekday().String()); err != nil {
				return nil, err
			}
			isWeekend = num >= 5
		}
		if err := weekend.Set(i, isWeekend); err != nil {
			return nil, err
		}
	}

	out := f
	for _, col := range []*frame.Column{dates, total, dayNum, dayName, weekend} {
		if out, err = out.With(col); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// weekdayNumber maps time.Weekday onto Monday=0 .. Sunday=6.
func weekdayNumber(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// FilterOutliers keeps rows with a strictly positive Quantity and Price and
// appends Flag For Review, true when Total Price exceeds threshold. It
// returns the new frame and the number of rows dropped.
func FilterOutliers(f *frame.Frame, threshold float64) (*frame.Frame, int, error) {
	qty, err := numeric(f, ColQuantity)
	if err != nil {
		return nil, 0, err
	}
	price, err := numeric(f, ColPrice)
	if err != nil {
		return nil, 0, err
	}
	total, err := numeric(f, ColTotalPrice)
	if err != nil {
		return nil, 0, err
	}

	keep := make([]bool, f.NumRows())
	flags := frame.NewColumn(ColFlagForReview, frame.KindBool, 0)
	dropped := 0
	for i := range keep {
		q, okQ := qty.Float64At(i)
		p, okP := price.Float64At(i)
		if !okQ || !okP || q <= 0 || p <= 0 {
			dropped++
			continue
		}
		keep[i] = true
		t, ok := total.Float64At(i)
		if err := flags.Append(ok && t > threshold); err != nil {
			return nil, 0, err
		}
	}

	kept, err := f.Filter(keep)
	if err != nil {
		return nil, 0, err
	}
	out, err := kept.With(flags)
	if err != nil {
		return nil, 0, err
	}
	return out, dropped, nil
}

// numeric returns the named column, which must hold integers or floats. A
// text column without a single value (a header-only source reads that way)
// is returned as an all-null float column.
func numeric(f *frame.Frame, name string) (*frame.Column, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	if col.Kind == frame.KindString && col.NullCount() == col.Len() {
		return frame.NewColumn(name, frame.KindFloat64, col.Len()), nil
	}
	if col.Kind != frame.KindInt64 && col.Kind != frame.KindFloat64 {
		return nil, fmt.Errorf("column %q is %s, want a numeric column", name, col.Kind)
	}
	return col, nil
}

// timestamps returns the named column as a timestamp column. Text cells are
// parsed; when strict is false a cell that does not parse becomes null.
func timestamps(f *frame.Frame, name string, strict bool) (*frame.Column, error) {
	col, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	switch col.Kind {
	case frame.KindTimestamp:
		return col, nil
	case frame.KindString:
	default:
		return nil, fmt.Errorf("column %q is %s, cannot convert to timestamp", name, col.Kind)
	}

	out := frame.NewColumn(name, frame.KindTimestamp, col.Len())
	for i := 0; i < col.Len(); i++ {
		s, ok := col.StringAt(i)
		if !ok {
			continue
		}
		t, err := ParseTimestamp(s)
		if err != nil {
			if strict {
				return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
			}
			continue
		}
		if err := out.Set(i, t); err != nil {
			return nil, err
		}
	}
	return out, nil
}
