// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui renders client command results for the terminal with
// lipgloss: provider status, sync reports, record listings and warnings.
package tui
