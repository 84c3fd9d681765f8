// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package outliers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnRunOutliers_RejectsNegativeThreshold(t *testing.T) {
	_, err := OnRunOutliers(context.Background(), nil, &Input{ReviewThreshold: -1, Output: "outliers.parquet"})
	assert.ErrorContains(t, err, "must not be negative")
}
