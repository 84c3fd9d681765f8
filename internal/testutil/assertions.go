// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertStepFinished checks text-format log output for the line that marks
// step as finished.
func AssertStepFinished(t *testing.T, logs, step string) bool {
	t.Helper()
	return assert.True(t, hasStepLine(logs, `msg="✅ Finished step"`, step),
		"expected a finished line for step '%s' in the logs", step)
}

// AssertStepNotStarted checks that step never logged its start line.
func AssertStepNotStarted(t *testing.T, logs, step string) bool {
	t.Helper()
	return assert.False(t, hasStepLine(logs, `msg="▶️ Starting step"`, step),
		"step '%s' should not have started", step)
}

func hasStepLine(logs, msg, step string) bool {
	for _, line := range strings.Split(logs, "\n") {
		if strings.Contains(line, msg) && strings.Contains(line, " step="+step+" ") {
			return true
		}
	}
	return false
}
