// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package frame

import (
	"errors"
	"fmt"
	"time"
)

// ErrColumnNotFound is returned when a frame has no column with the requested name.
var ErrColumnNotFound = errors.New("column not found")

// Kind is the logical type of a column.
type Kind int

const (
	KindString Kind = iota
	KindInt64
	KindFloat64
	KindBool
	KindTimestamp
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindBool:
		return "bool"
	case KindTimestamp:
		return "timestamp"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Column is a named, typed, nullable vector of cells. A nil cell is null.
type Column struct {
	Name   string
	Kind   Kind
	values []any
}

// NewColumn creates a column of n null cells.
func NewColumn(name string, kind Kind, n int) *Column {
	return &Column{Name: name, Kind: kind, values: make([]any, n)}
}

// Len returns the number of cells.
func (c *Column) Len() int { return len(c.values) }

// IsNull reports whether cell i is null.
func (c *Column) IsNull(i int) bool { return c.values[i] == nil }

// Value returns the raw cell value (nil when null).
func (c *Column) Value(i int) any { return c.values[i] }

// Set stores v at row i. v must be nil or match the column kind.
func (c *Column) Set(i int, v any) error {
	if err := checkValue(c.Kind, v); err != nil {
		return fmt.Errorf("column %q row %d: %w", c.Name, i, err)
	}
	c.values[i] = v
	return nil
}

// Append adds one cell to the end of the column.
func (c *Column) Append(v any) error {
	if err := checkValue(c.Kind, v); err != nil {
		return fmt.Errorf("column %q row %d: %w", c.Name, len(c.values), err)
	}
	c.values = append(c.values, v)
	return nil
}

// NullCount returns the number of null cells.
func (c *Column) NullCount() int {
	n := 0
	for _, v := range c.values {
		if v == nil {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	values := make([]any, len(c.values))
	copy(values, c.values)
	return &Column{Name: c.Name, Kind: c.Kind, values: values}
}

// StringAt returns the text cell at row i.
func (c *Column) StringAt(i int) (string, bool) {
	s, ok := c.values[i].(string)
	return s, ok
}

// Int64At returns the integer cell at row i.
func (c *Column) Int64At(i int) (int64, bool) {
	n, ok := c.values[i].(int64)
	return n, ok
}

// Float64At returns the numeric cell at row i, promoting integers.
func (c *Column) Float64At(i int) (float64, bool) {
	switch v := c.values[i].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// BoolAt returns the boolean cell at row i.
func (c *Column) BoolAt(i int) (bool, bool) {
	b, ok := c.values[i].(bool)
	return b, ok
}

// TimeAt returns the timestamp cell at row i.
func (c *Column) TimeAt(i int) (time.Time, bool) {
	t, ok := c.values[i].(time.Time)
	return t, ok
}

func checkValue(kind Kind, v any) error {
	if v == nil {
		return nil
	}
	var ok bool
	switch kind {
	case KindString:
		_, ok = v.(string)
	case KindInt64:
		_, ok = v.(int64)
	case KindFloat64:
		_, ok = v.(float64)
	case KindBool:
		_, ok = v.(bool)
	case KindTimestamp:
		_, ok = v.(time.Time)
	}
	if !ok {
		return fmt.Errorf("value %v (%T) does not fit kind %s", v, v, kind)
	}
	return nil
}

// Frame is an ordered set of equally sized columns.
type Frame struct {
	cols  []*Column
	index map[string]int
	rows  int
}

// New builds a frame from columns. Column names must be unique and all
// columns must have the same length.
func New(cols ...*Column) (*Frame, error) {
	f := &Frame{index: make(map[string]int, len(cols))}
	for i, col := range cols {
		if _, dup := f.index[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", col.Name)
		}
		if i == 0 {
			f.rows = col.Len()
		} else if col.Len() != f.rows {
			return nil, fmt.Errorf("column %q has %d rows, want %d", col.Name, col.Len(), f.rows)
		}
		f.index[col.Name] = i
		f.cols = append(f.cols, col)
	}
	return f, nil
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int { return f.rows }

// Columns returns the columns in order. Callers must not modify them.
func (f *Frame) Columns() []*Column { return f.cols }

// Names returns the column names in order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.Name
	}
	return names
}

// Has reports whether the frame has a column called name.
func (f *Frame) Has(name string) bool {
	_, ok := f.index[name]
	return ok
}

// Column looks a column up by name.
func (f *Frame) Column(name string) (*Column, error) {
	i, ok := f.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return f.cols[i], nil
}

// With returns a new frame where col replaces the column of the same name,
// or is appended when no such column exists. The receiver is unchanged.
func (f *Frame) With(col *Column) (*Frame, error) {
	cols := make([]*Column, len(f.cols), len(f.cols)+1)
	copy(cols, f.cols)
	if i, ok := f.index[col.Name]; ok {
		cols[i] = col
	} else {
		cols = append(cols, col)
	}
	if len(f.cols) == 0 {
		return New(cols...)
	}
	if col.Len() != f.rows {
		return nil, fmt.Errorf("column %q has %d rows, want %d", col.Name, col.Len(), f.rows)
	}
	return New(cols...)
}

// Filter returns a new frame with the rows where keep is true.
func (f *Frame) Filter(keep []bool) (*Frame, error) {
	if len(keep) != f.rows {
		return nil, fmt.Errorf("filter mask has %d entries, frame has %d rows", len(keep), f.rows)
	}
	out := make([]*Column, len(f.cols))
	for ci, col := range f.cols {
		filtered := &Column{Name: col.Name, Kind: col.Kind, values: make([]any, 0, f.rows)}
		for i, k := range keep {
			if k {
				filtered.values = append(filtered.values, col.values[i])
			}
		}
		out[ci] = filtered
	}
	return New(out...)
}
