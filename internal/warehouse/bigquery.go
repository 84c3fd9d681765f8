// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package warehouse

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/bigquery"

	"github.com/specialistvlad/retailgrid/internal/ctxlog"
	"github.com/specialistvlad/retailgrid/internal/objectstore"
)

// BigQuery loads Parquet objects with BigQuery load jobs.
type BigQuery struct {
	client  *bigquery.Client
	store   objectstore.Store
	workDir string
}

// NewBigQuery creates a client for project. An empty location lets BigQuery
// pick the dataset's location.
func NewBigQuery(ctx context.Context, project, location string, store objectstore.Store, workDir string) (*BigQuery, error) {
	if project == "" {
		return nil, errors.New("warehouse: bigquery backend requires a project")
	}
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("warehouse: creating bigquery client: %w", err)
	}
	if location != "" {
		client.Location = location
	}
	return &BigQuery{client: client, store: store, workDir: workDir}, nil
}

// Load implements Loader. Objects already in Cloud Storage are loaded by
// reference; anything else is downloaded and streamed as the job's body.
func (b *BigQuery) Load(ctx context.Context, job Job) (Result, error) {
	logger := ctxlog.FromContext(ctx).With("backend", "bigquery", "dataset", job.Dataset, "table", job.Table)
	table := b.client.Dataset(job.Dataset).Table(job.Table)
	fq := fmt.Sprintf("%s.%s.%s", b.client.Project(), job.Dataset, job.Table)

	var loader *bigquery.Loader
	if strings.HasPrefix(job.URI, "gs://") {
		ref := bigquery.NewGCSReference(job.URI)
		ref.SourceFormat = bigquery.Parquet
		ref.AutoDetect = true
		loader = table.LoaderFrom(ref)
	} else {
		local := filepath.Join(b.workDir, filepath.Base(job.Object))
		if err := b.store.Download(ctx, job.Object, local); err != nil {
			return Result{}, err
		}
		file, err := os.Open(local)
		if err != nil {
			return Result{}, fmt.Errorf("warehouse: opening %s: %w", local, err)
		}
		defer file.Close()
		src := bigquery.NewReaderSource(file)
		src.SourceFormat = bigquery.Parquet
		src.AutoDetect = true
		loader = table.LoaderFrom(src)
	}
	loader.WriteDisposition = bigquery.WriteTruncate
	loader.CreateDisposition = bigquery.CreateIfNeeded

	logger.Info("Starting load job", "source", job.URI)
	j, err := loader.Run(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("warehouse: starting load into %s: %w", fq, err)
	}
	status, err := j.Wait(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("warehouse: waiting for load job %s: %w", j.ID(), err)
	}
	if err := status.Err(); err != nil {
		return Result{}, fmt.Errorf("warehouse: load job %s failed: %w", j.ID(), err)
	}

	rows := int64(-1)
	if status.Statistics != nil {
		if stats, ok := status.Statistics.Details.(*bigquery.LoadStatistics); ok {
			rows = stats.OutputRows
		}
	}
	logger.Info("Load job finished", "job", j.ID(), "rows", rows)
	return Result{Table: fq, Rows: rows}, nil
}

// Close implements Loader.
func (b *BigQuery) Close() error {
	return b.client.Close()
}
