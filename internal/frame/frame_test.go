// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package frame

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RejectsDuplicateAndRaggedColumns(t *testing.T) {
	a := NewColumn("a", KindString, 2)
	b := NewColumn("a", KindInt64, 2)
	_, err := New(a, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column")

	c := NewColumn("c", KindInt64, 3)
	_, err = New(a, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has 3 rows, want 2")
}

func TestColumn_SetChecksKind(t *testing.T) {
	col := NewColumn("Quantity", KindInt64, 1)

	require.NoError(t, col.Set(0, int64(3)))
	require.NoError(t, col.Set(0, nil))
	err := col.Set(0, "three")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "Quantity" row 0`)
}

func TestColumn_TypedAccessors(t *testing.T) {
	ts := time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC)
	col := NewColumn("x", KindInt64, 2)
	require.NoError(t, col.Set(0, int64(4)))

	n, ok := col.Int64At(0)
	assert.True(t, ok)
	assert.Equal(t, int64(4), n)
	f, ok := col.Float64At(0)
	assert.True(t, ok)
	assert.Equal(t, 4.0, f)
	_, ok = col.Float64At(1)
	assert.False(t, ok)

	tc := NewColumn("t", KindTimestamp, 1)
	require.NoError(t, tc.Set(0, ts))
	got, ok := tc.TimeAt(0)
	assert.True(t, ok)
	assert.True(t, ts.Equal(got))
}

func TestFrame_WithReplacesOrAppends(t *testing.T) {
	a := NewColumn("a", KindString, 1)
	require.NoError(t, a.Set(0, "x"))
	f, err := New(a)
	require.NoError(t, err)

	b := NewColumn("b", KindBool, 1)
	g, err := f.With(b)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, g.Names())
	assert.Equal(t, []string{"a"}, f.Names(), "receiver must be unchanged")

	a2 := a.Clone()
	require.NoError(t, a2.Set(0, "y"))
	h, err := g.With(a2)
	require.NoError(t, err)
	col, err := h.Column("a")
	require.NoError(t, err)
	s, _ := col.StringAt(0)
	assert.Equal(t, "y", s)
	s, _ = a.StringAt(0)
	assert.Equal(t, "x", s, "clone must not alias the original")
}

func TestFrame_ColumnNotFound(t *testing.T) {
	f, err := New()
	require.NoError(t, err)
	_, err = f.Column("missing")
	assert.True(t, errors.Is(err, ErrColumnNotFound))
}

func TestFrame_Filter(t *testing.T) {
	a := NewColumn("a", KindInt64, 3)
	for i := range 3 {
		require.NoError(t, a.Set(i, int64(i)))
	}
	f, err := New(a)
	require.NoError(t, err)

	g, err := f.Filter([]bool{true, false, true})
	require.NoError(t, err)
	require.Equal(t, 2, g.NumRows())
	col, _ := g.Column("a")
	v, _ := col.Int64At(1)
	assert.Equal(t, int64(2), v)

	_, err = f.Filter([]bool{true})
	assert.Error(t, err)
}

func TestReadCSV_InfersKinds(t *testing.T) {
	doc := "\ufeffInvoice,StockCode,Quantity,Price,Customer ID,Country\n" +
		"489434,85048,12,6.95,13085.0,United Kingdom\n" +
		"C489449,22087,-12,2.95,,NA\n"

	f, err := ReadCSV(strings.NewReader(doc), CSVOptions{})
	require.NoError(t, err)
	require.Equal(t, 2, f.NumRows())

	kinds := map[string]Kind{}
	for _, c := range f.Columns() {
		kinds[c.Name] = c.Kind
	}
	assert.Equal(t, map[string]Kind{
		"Invoice":     KindString,
		"StockCode":   KindInt64,
		"Quantity":    KindInt64,
		"Price":       KindFloat64,
		"Customer ID": KindFloat64,
		"Country":     KindString,
	}, kinds)

	cust, _ := f.Column("Customer ID")
	assert.True(t, cust.IsNull(1))
	country, _ := f.Column("Country")
	assert.True(t, country.IsNull(1))
}

func TestReadCSV_TextColumnsSkipInference(t *testing.T) {
	doc := "StockCode,Quantity\n85048,1\n"
	f, err := ReadCSV(strings.NewReader(doc), CSVOptions{TextColumns: []string{"StockCode"}})
	require.NoError(t, err)
	col, _ := f.Column("StockCode")
	assert.Equal(t, KindString, col.Kind)
	s, _ := col.StringAt(0)
	assert.Equal(t, "85048", s)
}

func TestReadCSV_Errors(t *testing.T) {
	_, err := ReadCSV(strings.NewReader(""), CSVOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing header")

	_, err = ReadCSV(strings.NewReader("a,b\n1\n"), CSVOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
