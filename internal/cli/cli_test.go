// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/retailgrid/internal/app"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name       string
		args       []string
		want       *app.Config
		shouldExit bool
		wantErr    string
	}{
		{
			name: "positional path and defaults",
			args: []string{"-run-id", "r1", "pipelines"},
			want: &app.Config{ConfigPath: "pipelines", RunID: "r1", LogFormat: "json", LogLevel: "info"},
		},
		{
			name: "long flag wins over shorthand",
			args: []string{"-config", "a.hcl", "-c", "b.hcl", "-run-id", "r1", "-log-format", "TEXT", "-log-level", "debug"},
			want: &app.Config{ConfigPath: "a.hcl", RunID: "r1", LogFormat: "text", LogLevel: "debug"},
		},
		{
			name: "unit mode",
			args: []string{"-c", "p.hcl", "-step", "load_data", "-run-id", "2025-01-01", "-healthcheck-port", "8080"},
			want: &app.Config{ConfigPath: "p.hcl", Step: "load_data", RunID: "2025-01-01", HealthcheckPort: 8080, LogFormat: "json", LogLevel: "info"},
		},
		{
			name: "plan",
			args: []string{"-plan", "-run-id", "r1", "p.hcl"},
			want: &app.Config{ConfigPath: "p.hcl", RunID: "r1", Plan: true, LogFormat: "json", LogLevel: "info"},
		},
		{name: "help", args: []string{"-h"}, shouldExit: true},
		{name: "no path", args: []string{}, shouldExit: true},
		{name: "unknown flag", args: []string{"-nope"}, wantErr: "flag provided but not defined"},
		{name: "bad log format", args: []string{"-log-format", "xml", "p.hcl"}, wantErr: "invalid log-format"},
		{name: "bad log level", args: []string{"-log-level", "trace", "p.hcl"}, wantErr: "invalid log-level"},
		{name: "bad port", args: []string{"-healthcheck-port", "70000", "p.hcl"}, wantErr: "invalid healthcheck-port"},
		{name: "step without run id", args: []string{"-step", "load_data", "p.hcl"}, wantErr: "run id is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			out := &bytes.Buffer{}

			// --- Act ---
			cfg, shouldExit, err := Parse(tc.args, out)

			// --- Assert ---
			if tc.wantErr != "" {
				require.Error(t, err)
				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, 2, exitErr.Code)
				assert.Contains(t, exitErr.Message, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.shouldExit, shouldExit)
			if tc.shouldExit {
				assert.Contains(t, out.String(), "Usage:")
				return
			}
			assert.Equal(t, tc.want, cfg)
		})
	}
}

func TestParse_GeneratesRunID(t *testing.T) {
	cfg, _, err := Parse([]string{"p.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.RunID)
}
