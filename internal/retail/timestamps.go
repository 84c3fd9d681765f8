// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package retail

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// TimestampLayout is the text rendering of timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// ParseTimestamp parses an invoice timestamp in whatever layout the export
// uses. Slash dates are read month first. Times without a zone are taken as
// UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := dateparse.ParseIn(s, time.UTC, dateparse.PreferMonthFirst(true))
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

func asTime(v any) (time.Time, bool) {
	t, ok := v.(time.Time)
	return t, ok
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
