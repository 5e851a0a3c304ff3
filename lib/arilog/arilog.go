// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package arilog provides the structured logger the ace_ari and ace_adm
// CLI drivers use for diagnostic output. Library packages (ari, aritype,
// adm, aritext, aricbor, admtransform) never log directly; they return
// errors, and only the CLI layer constructs and writes to a logger.
package arilog

import (
	"log/slog"
	"os"

	"golang.org/x/term"
)

// NewLogger creates a structured logger for CLI diagnostic output. When
// stderr is a terminal, it uses slog.TextHandler for human-readable
// output; when stderr is piped or redirected (scripts, CI, test
// harnesses), it uses slog.JSONHandler for machine-parseable output.
//
// Callers scope the logger with driver-specific context via With():
//
//	logger := arilog.NewLogger().With("driver", "ace_adm")
func NewLogger() *slog.Logger {
	var handler slog.Handler
	options := &slog.HandlerOptions{Level: slog.LevelInfo}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		handler = slog.NewTextHandler(os.Stderr, options)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, options)
	}
	return slog.New(handler)
}
