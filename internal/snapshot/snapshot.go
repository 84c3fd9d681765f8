// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package snapshot persists frames as Parquet files. Every pipeline step
// reads the previous step's snapshot and writes a new one; a snapshot is never
// rewritten in place.
package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/frame"
)

// timestampType is the Arrow type used for timestamp columns. Values are
// stored as UTC microseconds.
var timestampType = &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}

// Codec reads and writes Parquet snapshots.
type Codec struct {
	mem         memory.Allocator
	compression compress.Compression
}

// NewCodec returns a codec using the Go allocator and Snappy compression.
func NewCodec() *Codec {
	return &Codec{
		mem:         memory.NewGoAllocator(),
		compression: compress.Codecs.Snappy,
	}
}

// Write stores f at path. The file is written next to its destination and
// renamed into place, so readers never observe a partial snapshot.
func (c *Codec) Write(ctx context.Context, path string, f *frame.Frame) error {
	logger := ctxlog.FromContext(ctx)

	schema, err := Schema(f)
	if err != nil {
		return err
	}
	rec, err := c.record(schema, f)
	if err != nil {
		return err
	}
	defer rec.Release()

	var buf bytes.Buffer
	props := parquet.NewWriterProperties(parquet.WithCompression(c.compression))
	arrowProps := pqarrow.NewArrowWriterProperties(pqarrow.WithStoreSchema())
	w, err := pqarrow.NewFileWriter(schema, &buf, props, arrowProps)
	if err != nil {
		return fmt.Errorf("snapshot: creating parquet writer: %w", err)
	}
	if err := w.Write(rec); err != nil {
		w.Close()
		return fmt.Errorf("snapshot: writing record: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("snapshot: closing parquet writer: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("snapshot: creating directory for %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("snapshot: writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("snapshot: renaming %s: %w", tmp, err)
	}

	logger.Debug("Snapshot written.", "path", path, "rows", f.NumRows(), "columns", len(f.Columns()), "bytes", buf.Len())
	return nil
}

// Read loads the snapshot at path.
func (c *Codec) Read(ctx context.Context, path string) (*frame.Frame, error) {
	logger := ctxlog.FromContext(ctx)

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("snapshot: opening %s: %w", path, err)
	}
	defer file.Close()

	tbl, err := pqarrow.ReadTable(ctx, file, parquet.NewReaderProperties(c.mem), pqarrow.ArrowReadProperties{}, c.mem)
	if err != nil {
		return nil, fmt.Errorf("snapshot: reading %s: %w", path, err)
	}
	defer tbl.Release()

	cols := make([]*frame.Column, 0, tbl.NumCols())
	for i := 0; i < int(tbl.NumCols()); i++ {
		field := tbl.Schema().Field(i)
		col, err := columnFromArrow(field, tbl.Column(i).Data().Chunks())
		if err != nil {
			return nil, fmt.Errorf("snapshot: %s: %w", path, err)
		}
		cols = append(cols, col)
	}

	f, err := frame.New(cols...)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %s: %w", path, err)
	}
	logger.Debug("Snapshot read.", "path", path, "rows", f.NumRows(), "columns", len(cols))
	return f, nil
}

// Schema derives the Arrow schema of a frame. Every field is nullable.
func Schema(f *frame.Frame) (*arrow.Schema, error) {
	fields := make([]arrow.Field, 0, len(f.Columns()))
	for _, col := range f.Columns() {
		dt, err := arrowType(col.Kind)
		if err != nil {
			return nil, fmt.Errorf("snapshot: column %q: %w", col.Name, err)
		}
		fields = append(fields, arrow.Field{Name: col.Name, Type: dt, Nullable: true})
	}
	return arrow.NewSchema(fields, nil), nil
}

func arrowType(kind frame.Kind) (arrow.DataType, error) {
	switch kind {
	case frame.KindString:
		return arrow.BinaryTypes.String, nil
	case frame.KindInt64:
		return arrow.PrimitiveTypes.Int64, nil
	case frame.KindFloat64:
		return arrow.PrimitiveTypes.Float64, nil
	case frame.KindBool:
		return arrow.FixedWidthTypes.Boolean, nil
	case frame.KindTimestamp:
		return timestampType, nil
	default:
		return nil, fmt.Errorf("unsupported kind %s", kind)
	}
}

func (c *Codec) record(schema *arrow.Schema, f *frame.Frame) (arrow.Record, error) {
	b := array.NewRecordBuilder(c.mem, schema)
	defer b.Release()

	for ci, col := range f.Columns() {
		fb := b.Field(ci)
		fb.Reserve(col.Len())
		for i := 0; i < col.Len(); i++ {
			if col.IsNull(i) {
				fb.AppendNull()
				continue
			}
			switch bld := fb.(type) {
			case *array.StringBuilder:
				v, _ := col.StringAt(i)
				bld.Append(v)
			case *array.Int64Builder:
				v, _ := col.Int64At(i)
				bld.Append(v)
			case *array.Float64Builder:
				v, _ := col.Float64At(i)
				bld.Append(v)
			case *array.BooleanBuilder:
				v, _ := col.BoolAt(i)
				bld.Append(v)
			case *array.TimestampBuilder:
				v, _ := col.TimeAt(i)
				bld.Append(arrow.Timestamp(v.UnixMicro()))
			default:
				return nil, fmt.Errorf("snapshot: column %q: no builder for %T", col.Name, fb)
			}
		}
	}
	return b.NewRecord(), nil
}

func columnFromArrow(field arrow.Field, chunks []arrow.Array) (*frame.Column, error) {
	var kind frame.Kind
	switch field.Type.ID() {
	case arrow.STRING, arrow.LARGE_STRING:
		kind = frame.KindString
	case arrow.INT64, arrow.INT32:
		kind = frame.KindInt64
	case arrow.FLOAT64:
		kind = frame.KindFloat64
	case arrow.BOOL:
		kind = frame.KindBool
	case arrow.TIMESTAMP:
		kind = frame.KindTimestamp
	default:
		return nil, fmt.Errorf("column %q: unsupported arrow type %s", field.Name, field.Type)
	}

	col := frame.NewColumn(field.Name, kind, 0)
	for _, chunk := range chunks {
		for i := 0; i < chunk.Len(); i++ {
			if chunk.IsNull(i) {
				if err := col.Append(nil); err != nil {
					return nil, err
				}
				continue
			}
			var v any
			switch arr := chunk.(type) {
			case *array.String:
				v = arr.Value(i)
			case *array.LargeString:
				v = arr.Value(i)
			case *array.Int64:
				v = arr.Value(i)
			case *array.Int32:
				v = int64(arr.Value(i))
			case *array.Float64:
				v = arr.Value(i)
			case *array.Boolean:
				v = arr.Value(i)
			case *array.Timestamp:
				unit := field.Type.(*arrow.TimestampType).Unit
				v = arr.Value(i).ToTime(unit).UTC()
			default:
				return nil, fmt.Errorf("column %q: unexpected array %T", field.Name, chunk)
			}
			if err := col.Append(v); err != nil {
				return nil, err
			}
		}
	}
	return col, nil
}

// Path joins a snapshot file name onto a work directory. Absolute names are
// returned unchanged.
func Path(workDir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(workDir, name)
}
