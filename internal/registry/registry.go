// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"maps"
	"slices"
)

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds all the registered runners for a single application instance.
type Registry struct {
	runners map[string]*RegisteredRunner
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		runners: make(map[string]*RegisteredRunner),
	}
}

// Runner looks up a runner by type.
func (r *Registry) Runner(runnerType string) (*RegisteredRunner, bool) {
	rr, ok := r.runners[runnerType]
	return rr, ok
}

// RunnerTypes returns the registered runner types in sorted order.
func (r *Registry) RunnerTypes() []string {
	return slices.Sorted(maps.Keys(r.runners))
}
