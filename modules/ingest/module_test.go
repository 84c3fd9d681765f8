// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/retailgrid/internal/frame"
	"github.com/specialistvlad/retailgrid/internal/objectstore"
	"github.com/specialistvlad/retailgrid/internal/registry"
	"github.com/specialistvlad/retailgrid/internal/snapshot"
)

func newDeps(t *testing.T) (*registry.Deps, string) {
	t.Helper()
	bucket := t.TempDir()
	store, err := objectstore.NewLocal(bucket)
	require.NoError(t, err)
	return &registry.Deps{Step: "load_data", WorkDir: t.TempDir(), Store: store, Codec: snapshot.NewCodec()}, bucket
}

func TestOnRunIngest(t *testing.T) {
	// --- Arrange ---
	deps, bucket := newDeps(t)
	csv := "Invoice;StockCode;Quantity;Customer ID\n489434;85048;12;13085.0\n489435;22350;3;\n"
	require.NoError(t, os.WriteFile(filepath.Join(bucket, "src.csv"), []byte(csv), 0o644))
	in := newInput()
	in.SourceObject = "src.csv"
	in.Delimiter = ";"

	// --- Act ---
	res, err := OnRunIngest(context.Background(), deps, in)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, snapshot.Path(deps.WorkDir, "raw.parquet"), res.Output)
	assert.Equal(t, int64(2), res.Rows)
	assert.FileExists(t, filepath.Join(deps.WorkDir, "online_retail_II.csv"))

	f, err := deps.Codec.Read(context.Background(), res.Output)
	require.NoError(t, err)
	customer, err := f.Column("Customer ID")
	require.NoError(t, err)
	assert.Equal(t, frame.KindString, customer.Kind)
	assert.Equal(t, "13085", customer.Value(0))
	assert.True(t, customer.IsNull(1))
	qty, err := f.Column("Quantity")
	require.NoError(t, err)
	assert.Equal(t, frame.KindInt64, qty.Kind)
}

func TestOnRunIngest_Errors(t *testing.T) {
	deps, _ := newDeps(t)

	in := newInput()
	in.SourceObject = "src.csv"
	in.Delimiter = ";;"
	_, err := OnRunIngest(context.Background(), deps, in)
	assert.ErrorContains(t, err, "delimiter must be a single character")

	in.Delimiter = ","
	_, err = OnRunIngest(context.Background(), deps, in)
	assert.Error(t, err, "missing source object")
}
