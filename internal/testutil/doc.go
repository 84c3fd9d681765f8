// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package testutil holds fixtures and assertions shared by the system tests.
package testutil
