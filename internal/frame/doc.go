// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package frame holds the in-memory table every step operates on.
//
// A Frame is a list of named, typed columns of equal length. Cells are
// nullable: a nil cell is a missing value, anything else must match the
// column's Kind (string, int64, float64, bool or time.Time). Steps never edit
// a frame they were handed; they clone the columns they change and build a new
// frame with With or Filter.
//
// ReadCSV loads a delimited file the way a dataframe reader would, inferring
// each column's kind from its non-null cells.
package frame
