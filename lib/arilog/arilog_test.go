// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package arilog

import "testing"

func TestNewLoggerReturnsUsableLogger(t *testing.T) {
	logger := NewLogger()
	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}
	// Stderr is not a terminal under `go test`, so this exercises the
	// JSONHandler branch; the TextHandler branch is only reachable with
	// a real TTY and is not testable headlessly.
	scoped := logger.With("driver", "ace_adm")
	if scoped == nil {
		t.Fatal("With returned nil")
	}
}
