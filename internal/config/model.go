// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"github.com/hashicorp/hcl/v2"
)

// Model is the complete configuration of one pipeline.
type Model struct {
	Pipeline  *Pipeline
	Storage   *Storage
	Warehouse *Warehouse
	Notifiers []*Notifier
	Steps     []*Step
}

// Pipeline is the `pipeline "<name>" {}` block. Schedule, Catchup and Tags are
// metadata for the external scheduler that triggers runs.
type Pipeline struct {
	Name        string   `hcl:"name,label" validate:"required"`
	Description string   `hcl:"description,optional"`
	Schedule    string   `hcl:"schedule,optional" validate:"omitempty,cronspec"`
	Catchup     bool     `hcl:"catchup,optional"`
	Tags        []string `hcl:"tags,optional" validate:"dive,required"`
	WorkDir     string   `hcl:"work_dir" validate:"required"`
}

// Storage is the `storage "<backend>" {}` block.
type Storage struct {
	Backend string `hcl:"backend,label" validate:"oneof=gcs local http"`
	Bucket  string `hcl:"bucket,optional" validate:"required_if=Backend gcs"`
	Root    string `hcl:"root,optional" validate:"required_if=Backend local"`
	BaseURL string `hcl:"base_url,optional" validate:"required_if=Backend http,omitempty,url"`
}

// Warehouse is the `warehouse "<backend>" {}` block.
type Warehouse struct {
	Backend  string `hcl:"backend,label" validate:"oneof=bigquery sqlite"`
	Project  string `hcl:"project,optional" validate:"required_if=Backend bigquery"`
	Location string `hcl:"location,optional"`
	Dataset  string `hcl:"dataset,optional" validate:"required_if=Backend bigquery"`
	Table    string `hcl:"table" validate:"required"`
	Path     string `hcl:"path,optional" validate:"required_if=Backend sqlite"`
}

// Notifier is a `notify "<type>" {}` block.
type Notifier struct {
	Type               string `hcl:"type,label" validate:"oneof=log socketio"`
	URL                string `hcl:"url,optional" validate:"required_if=Type socketio,omitempty,url"`
	Namespace          string `hcl:"namespace,optional"`
	Event              string `hcl:"event,optional"`
	Timeout            string `hcl:"timeout,optional" validate:"omitempty,duration"`
	InsecureSkipVerify bool   `hcl:"insecure_skip_verify,optional"`
}

// Step is a `step "<runner>" "<name>" {}` block. Arguments stays undecoded
// until the runner's input type is known.
type Step struct {
	RunnerType  string    `hcl:"runner,label" validate:"required"`
	Name        string    `hcl:"name,label" validate:"required"`
	Description string    `hcl:"description,optional"`
	DependsOn   []string  `hcl:"depends_on,optional"`
	Arguments   *StepArgs `hcl:"arguments,block"`
	DeclRange   hcl.Range `hcl:",def_range"`
}

// StepArgs holds the raw `arguments {}` body of a step.
type StepArgs struct {
	Body hcl.Body `hcl:",remain"`
}

// ArgumentsBody returns the step's arguments, or an empty body when the
// block is absent.
func (s *Step) ArgumentsBody() hcl.Body {
	if s.Arguments == nil || s.Arguments.Body == nil {
		return hcl.EmptyBody()
	}
	return s.Arguments.Body
}

// StepByName finds a step.
func (m *Model) StepByName(name string) (int, *Step, bool) {
	for i, s := range m.Steps {
		if s.Name == name {
			return i, s, true
		}
	}
	return -1, nil, false
}
