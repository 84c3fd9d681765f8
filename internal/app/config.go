// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package app

import (
	"errors"

	"github.com/google/uuid"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ConfigPath string // hcl file or directory

	// Step selects unit mode: only the named step runs, reading its upstream
	// from the ledger of RunID.
	Step  string
	RunID string
	// Plan prints the ordered steps instead of running them.
	Plan bool

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and fills in a fresh run id when none is given.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.Plan && cfg.Step != "" {
		return nil, errors.New("plan and step are mutually exclusive")
	}
	if cfg.Step != "" && cfg.RunID == "" {
		return nil, errors.New("a run id is required to run a single step")
	}
	if cfg.RunID == "" {
		cfg.RunID = uuid.NewString()
	}
	return &cfg, nil
}
