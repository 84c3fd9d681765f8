// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package hcl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/retailgrid/internal/testutil"
)

const pipelineHCL = `
pipeline "etl_retail_gcs_complete" {
  schedule = "0 6 * * *"
  tags     = ["etl", "retail", upper("gcp")]
  work_dir = env("RETAILGRID_TEST_WORK_DIR", "/tmp/fallback")
}

storage "local" {
  root = format("%s/bucket", env("RETAILGRID_TEST_WORK_DIR", "/tmp/fallback"))
}

warehouse "sqlite" {
  table = "retail"
  path  = "/tmp/wh.db"
}

notify "log" {}
`

const stepsHCL = `
step "ingest" "load_data" {
  description = "Download and parse the source CSV."
  arguments {
    source_object = "dags/your_file.csv"
    threshold     = 1500
  }
}

step "deduplicate" "drop_duplicates" {
  depends_on = ["load_data"]
}
`

type testArgs struct {
	SourceObject string  `hcl:"source_object,optional"`
	Output       string  `hcl:"output,optional"`
	Threshold    float64 `hcl:"threshold,optional"`
}

func TestLoader_LoadsDirectory(t *testing.T) {
	// --- Arrange ---
	t.Setenv("RETAILGRID_TEST_WORK_DIR", "/data")
	dir := testutil.WriteFiles(t, map[string]string{"00_pipeline.hcl": pipelineHCL, "10_steps.hcl": stepsHCL})
	ctx := context.Background()

	// --- Act ---
	model, conv, err := NewLoader().Load(ctx, dir)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "etl_retail_gcs_complete", model.Pipeline.Name)
	assert.Equal(t, "/data", model.Pipeline.WorkDir)
	assert.Equal(t, []string{"etl", "retail", "GCP"}, model.Pipeline.Tags)
	assert.Equal(t, "/data/bucket", model.Storage.Root)
	assert.Equal(t, "sqlite", model.Warehouse.Backend)
	require.Len(t, model.Notifiers, 1)
	require.Len(t, model.Steps, 2)
	assert.Equal(t, "ingest", model.Steps[0].RunnerType)
	assert.Equal(t, "load_data", model.Steps[0].Name)
	assert.Equal(t, []string{"load_data"}, model.Steps[1].DependsOn)

	args := &testArgs{Output: "raw.parquet"}
	require.NoError(t, conv.DecodeArguments(ctx, model.Steps[0].ArgumentsBody(), args))
	assert.Equal(t, "dags/your_file.csv", args.SourceObject)
	assert.Equal(t, "raw.parquet", args.Output, "unset attributes keep their defaults")
	assert.Equal(t, 1500.0, args.Threshold)

	empty := &testArgs{Output: "cleaned.parquet"}
	require.NoError(t, conv.DecodeArguments(ctx, model.Steps[1].ArgumentsBody(), empty))
	assert.Equal(t, "cleaned.parquet", empty.Output)
}

func TestLoader_EnvFallbackAndMissing(t *testing.T) {
	ctx := context.Background()

	model, _, err := NewLoader().LoadBytes(ctx, []byte(pipelineHCL+stepsHCL), "main.hcl")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/fallback", model.Pipeline.WorkDir)

	src := `
pipeline "p" { work_dir = env("RETAILGRID_DEFINITELY_UNSET") }
storage "local" { root = "/tmp" }
warehouse "sqlite" {
  table = "t"
  path  = "/tmp/x.db"
}
step "ingest" "a" {}
`
	_, _, err = NewLoader().LoadBytes(ctx, []byte(src), "main.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RETAILGRID_DEFINITELY_UNSET")
}

func TestLoader_Errors(t *testing.T) {
	base := `
storage "local" { root = "/tmp" }
warehouse "sqlite" {
  table = "t"
  path  = "/tmp/x.db"
}
`
	testCases := []struct {
		name        string
		src         string
		errContains string
	}{
		{"syntax error", `step "ingest" "a" {`, "failed to parse"},
		{"missing pipeline", base + `step "ingest" "a" {}`, "pipeline block is required"},
		{"two pipelines", `pipeline "a" { work_dir = "/x" }
pipeline "b" { work_dir = "/y" }` + base + `step "ingest" "a" {}`, "exactly one pipeline"},
		{"unknown block", `pipeline "a" { work_dir = "/x" }
resource "x" "y" {}` + base, "resource"},
		{"bad chain", `pipeline "a" { work_dir = "/x" }` + base + `
step "ingest" "a" {}
step "impute" "b" { depends_on = ["zzz"] }`, "must depend only"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := NewLoader().LoadBytes(context.Background(), []byte(tc.src), "main.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestConverter_RejectsUnknownArguments(t *testing.T) {
	ctx := context.Background()
	model, conv, err := NewLoader().LoadBytes(ctx, []byte(pipelineHCL+`
step "ingest" "load_data" {
  arguments {
    no_such_argument = true
  }
}
`), "main.hcl")
	require.NoError(t, err)

	err = conv.DecodeArguments(ctx, model.Steps[0].ArgumentsBody(), &testArgs{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such_argument")

	err = conv.DecodeArguments(ctx, model.Steps[0].ArgumentsBody(), testArgs{})
	assert.ErrorContains(t, err, "non-nil pointer")
}
