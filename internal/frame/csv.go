// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultNullTokens are the cell values treated as missing when reading CSV.
var DefaultNullTokens = []string{"", "NA", "N/A", "NaN", "nan", "NULL", "null", "<NA>", "None"}

// CSVOptions controls ReadCSV.
type CSVOptions struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune
	// NullTokens overrides DefaultNullTokens when non-nil.
	NullTokens []string
	// TextColumns are read as text without kind inference.
	TextColumns []string
}

// ReadCSV reads a CSV document with a header row into a frame. Column kinds
// are inferred: int64 when every non-null cell is an integer, float64 when
// every non-null cell is a number, string otherwise.
func ReadCSV(r io.Reader, opts CSVOptions) (*Frame, error) {
	reader := csv.NewReader(r)
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}
	reader.ReuseRecord = false

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv: missing header row")
		}
		return nil, fmt.Errorf("csv: reading header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	nullTokens := opts.NullTokens
	if nullTokens == nil {
		nullTokens = DefaultNullTokens
	}
	isNull := make(map[string]struct{}, len(nullTokens))
	for _, tok := range nullTokens {
		isNull[tok] = struct{}{}
	}
	forceText := make(map[string]struct{}, len(opts.TextColumns))
	for _, name := range opts.TextColumns {
		forceText[name] = struct{}{}
	}

	raw := make([][]*string, len(header))
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv: line %d: %w", line, err)
		}
		for i, cell := range record {
			if _, null := isNull[cell]; null {
				raw[i] = append(raw[i], nil)
				continue
			}
			v := cell
			raw[i] = append(raw[i], &v)
		}
	}

	cols := make([]*Column, len(header))
	for i, name := range header {
		kind := KindString
		if _, text := forceText[name]; !text {
			kind = inferKind(raw[i])
		}
		col, err := buildColumn(name, kind, raw[i])
		if err != nil {
			return nil, err
		}
		cols[i] = col
	}
	return New(cols...)
}

func inferKind(cells []*string) Kind {
	allInt, allFloat, seen := true, true, false
	for _, c := range cells {
		if c == nil {
			continue
		}
		seen = true
		if allInt {
			if _, err := strconv.ParseInt(*c, 10, 64); err != nil {
				allInt = false
			}
		}
		if !allInt {
			if _, err := strconv.ParseFloat(*c, 64); err != nil {
				allFloat = false
				break
			}
		}
	}
	switch {
	case !seen:
		return KindString
	case allInt:
		return KindInt64
	case allFloat:
		return KindFloat64
	default:
		return KindString
	}
}

func buildColumn(name string, kind Kind, cells []*string) (*Column, error) {
	col := NewColumn(name, kind, len(cells))
	for i, c := range cells {
		if c == nil {
			continue
		}
		switch kind {
		case KindInt64:
			n, err := strconv.ParseInt(*c, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("csv: column %q row %d: %w", name, i, err)
			}
			col.values[i] = n
		case KindFloat64:
			f, err := strconv.ParseFloat(*c, 64)
			if err != nil {
				return nil, fmt.Errorf("csv: column %q row %d: %w", name, i, err)
			}
			col.values[i] = f
		default:
			col.values[i] = *c
		}
	}
	return col, nil
}
