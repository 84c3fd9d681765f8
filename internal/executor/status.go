// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package executor

import "slices"

// StepStatus is a point-in-time view of one step.
type StepStatus struct {
	Name   string `json:"name"`
	Runner string `json:"runner"`
	State  string `json:"state"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// PlanEntry describes one unit of work for an external scheduler.
type PlanEntry struct {
	Position    int      `json:"position"`
	Name        string   `json:"name"`
	Runner      string   `json:"runner"`
	Description string   `json:"description,omitempty"`
	DependsOn   []string `json:"depends_on,omitempty"`
}

// Plan lists the steps in execution order. Each step after the first
// depends on its predecessor, whether or not depends_on was written out.
func (e *Executor) Plan() []PlanEntry {
	plan := make([]PlanEntry, len(e.steps))
	for i, s := range e.steps {
		plan[i] = PlanEntry{
			Position:    i + 1,
			Name:        s.cfg.Name,
			Runner:      s.cfg.RunnerType,
			Description: s.cfg.Description,
		}
		if plan[i].Description == "" {
			plan[i].Description = s.runner.Description
		}
		if i > 0 {
			plan[i].DependsOn = []string{e.steps[i-1].cfg.Name}
		}
	}
	return plan
}

// Status returns a copy of every step's state. It is safe to call while a
// run is in progress.
func (e *Executor) Status() []StepStatus {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.status)
}

func (e *Executor) sync(i int) {
	s := e.steps[i]
	st := StepStatus{Name: s.cfg.Name, Runner: s.cfg.RunnerType, State: s.life.State(), Output: s.life.Output()}
	if err := s.life.Err(); err != nil {
		st.Error = err.Error()
	}
	e.mu.Lock()
	e.status[i] = st
	e.mu.Unlock()
}
