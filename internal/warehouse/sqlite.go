// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/frame"
	"github.com/specialistvlad/retailgrid/internal/objectstore"
	"github.com/specialistvlad/retailgrid/internal/snapshot"
)

// SQLite loads Parquet objects into a local SQLite database. The table schema
// is taken from the Parquet file on every load.
type SQLite struct {
	db      *sql.DB
	store   objectstore.Store
	codec   *snapshot.Codec
	workDir string
}

// NewSQLite opens (or creates) the database at path.
func NewSQLite(path string, store objectstore.Store, codec *snapshot.Codec, workDir string) (*SQLite, error) {
	if path == "" {
		return nil, errors.New("warehouse: sqlite backend requires a path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("warehouse: creating directory for %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("warehouse: opening sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	return &SQLite{db: db, store: store, codec: codec, workDir: workDir}, nil
}

// TableName is the SQLite table a dataset/table pair maps to.
func TableName(dataset, table string) string {
	if dataset == "" {
		return table
	}
	return dataset + "_" + table
}

// Load implements Loader.
func (s *SQLite) Load(ctx context.Context, job Job) (Result, error) {
	name := TableName(job.Dataset, job.Table)
	logger := ctxlog.FromContext(ctx).With("backend", "sqlite", "table", name)

	local := filepath.Join(s.workDir, "warehouse-"+filepath.Base(job.Object))
	if err := s.store.Download(ctx, job.Object, local); err != nil {
		return Result{}, err
	}
	defer os.Remove(local)

	f, err := s.codec.Read(ctx, local)
	if err != nil {
		return Result{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Result{}, fmt.Errorf("warehouse: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := replaceTable(ctx, tx, name, f); err != nil {
		return Result{}, err
	}
	if err := tx.Commit(); err != nil {
		return Result{}, fmt.Errorf("warehouse: committing load into %s: %w", name, err)
	}

	var rows int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+quoteIdent(name)).Scan(&rows); err != nil {
		return Result{}, fmt.Errorf("warehouse: counting rows in %s: %w", name, err)
	}
	logger.Info("Load finished", "source", job.URI, "rows", rows)
	return Result{Table: name, Rows: rows}, nil
}

func replaceTable(ctx context.Context, tx *sql.Tx, name string, f *frame.Frame) error {
	cols := f.Columns()
	defs := make([]string, len(cols))
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c.Name)
		defs[i] = quoted[i] + " " + sqlType(c.Kind)
	}

	if _, err := tx.ExecContext(ctx, `DROP TABLE IF EXISTS `+quoteIdent(name)); err != nil {
		return fmt.Errorf("warehouse: dropping %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, `CREATE TABLE `+quoteIdent(name)+` (`+strings.Join(defs, ", ")+`)`); err != nil {
		return fmt.Errorf("warehouse: creating %s: %w", name, err)
	}

	ph := strings.TrimSuffix(strings.Repeat("?,", len(cols)), ",")
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+quoteIdent(name)+` (`+strings.Join(quoted, ", ")+`) VALUES (`+ph+`)`)
	if err != nil {
		return fmt.Errorf("warehouse: preparing insert into %s: %w", name, err)
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for row := 0; row < f.NumRows(); row++ {
		for i, c := range cols {
			args[i] = sqlValue(c.Value(row))
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("warehouse: inserting row %d into %s: %w", row, name, err)
		}
	}
	return nil
}

func sqlType(kind frame.Kind) string {
	switch kind {
	case frame.KindInt64, frame.KindBool:
		return "INTEGER"
	case frame.KindFloat64:
		return "REAL"
	default:
		return "TEXT"
	}
}

func sqlValue(v any) any {
	switch x := v.(type) {
	case bool:
		if x {
			return 1
		}
		return 0
	case time.Time:
		return x.UTC().Format(time.RFC3339)
	default:
		return v
	}
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Close implements Loader.
func (s *SQLite) Close() error {
	return s.db.Close()
}
