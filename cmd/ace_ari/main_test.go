// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
)

// runWithIO wires up os.Pipe-backed stdin/stdout/stderr around run, since
// run's signature takes *os.File rather than io.Reader/io.Writer (matching
// the real os.Stdin/os.Stdout/os.Stderr passed from main). The stdout and
// stderr reader ends are drained concurrently so run never blocks on a
// full pipe buffer.
func runWithIO(t *testing.T, args []string, input string) (exitCode int, stdout, stderr string) {
	t.Helper()

	stdinRead, stdinWrite, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	stdoutRead, stdoutWrite, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	stderrRead, stderrWrite, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	var outBuf, errBuf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); io.Copy(&outBuf, stdoutRead) }()
	go func() { defer wg.Done(); io.Copy(&errBuf, stderrRead) }()

	go func() {
		io.WriteString(stdinWrite, input)
		stdinWrite.Close()
	}()

	exitCode = run(args, stdinRead, stdoutWrite, stderrWrite)

	stdoutWrite.Close()
	stderrWrite.Close()
	wg.Wait()
	stdinRead.Close()
	stdoutRead.Close()
	stderrRead.Close()

	return exitCode, outBuf.String(), errBuf.String()
}

func TestRunTextToCBORHexProducesHex(t *testing.T) {
	code, out, errOut := runWithIO(t, []string{"--inform=text", "--outform=cborhex"}, "/INT/42\n")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, errOut)
	}
	line := strings.TrimSpace(out)
	if line == "" {
		t.Fatal("no output produced")
	}
	if _, err := hex.DecodeString(line); err != nil {
		t.Fatalf("output %q is not valid hex: %v", line, err)
	}
}

func TestRunCBORHexRoundtripsBackToText(t *testing.T) {
	code, hexOut, errOut := runWithIO(t, []string{"--inform=text", "--outform=cborhex"}, "/INT/42\n")
	if code != 0 {
		t.Fatalf("encode step: exit = %d, stderr = %q", code, errOut)
	}

	code, textOut, errOut := runWithIO(t, []string{"--inform=cborhex", "--outform=text"}, hexOut)
	if code != 0 {
		t.Fatalf("decode step: exit = %d, stderr = %q", code, errOut)
	}
	if strings.TrimSpace(textOut) != "ari:/INT/42" {
		t.Errorf("roundtrip = %q, want ari:/INT/42", strings.TrimSpace(textOut))
	}
}

func TestRunRawCBOROutputIsSingleValueMode(t *testing.T) {
	code, out, errOut := runWithIO(t, []string{"--inform=text", "--outform=cbor"}, "/INT/42")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, errOut)
	}
	if len(out) == 0 {
		t.Fatal("no raw CBOR bytes produced")
	}
	// Single-value mode writes no trailing newline framing of its own.
	if out[len(out)-1] == '\n' {
		t.Errorf("raw cbor output should not be newline-terminated, got %q", out)
	}
}

func TestRunRawCBORRoundtripsBackToText(t *testing.T) {
	_, raw, errOut := runWithIO(t, []string{"--inform=text", "--outform=cbor"}, "/INT/42")
	if raw == "" {
		t.Fatalf("no raw CBOR produced, stderr = %q", errOut)
	}

	code, textOut, errOut := runWithIO(t, []string{"--inform=cbor", "--outform=text"}, raw)
	if code != 0 {
		t.Fatalf("decode step: exit = %d, stderr = %q", code, errOut)
	}
	if strings.TrimSpace(textOut) != "ari:/INT/42" {
		t.Errorf("roundtrip = %q, want ari:/INT/42", strings.TrimSpace(textOut))
	}
}

func TestRunInvalidTextLineFailsWithExitOne(t *testing.T) {
	code, _, errOut := runWithIO(t, []string{"--inform=text", "--outform=text"}, "not a valid ari\n")
	if code != 1 {
		t.Errorf("exit = %d, want 1", code)
	}
	if errOut == "" {
		t.Error("expected an error message on stderr")
	}
}

func TestRunMultiLineStopsAtFirstFailure(t *testing.T) {
	code, out, _ := runWithIO(t, []string{"--inform=text", "--outform=text"}, "/INT/1\nbogus\n/INT/3\n")
	if code != 1 {
		t.Fatalf("exit = %d, want 1", code)
	}
	if strings.Contains(out, "/INT/3") {
		t.Errorf("output should stop at first failure, got %q", out)
	}
}

func TestRunUnknownWireFormIsUsageError(t *testing.T) {
	code, _, _ := runWithIO(t, []string{"--inform=bogus"}, "")
	if code != 2 {
		t.Errorf("exit = %d, want 2", code)
	}
}

func TestRunVersionFlag(t *testing.T) {
	code, out, _ := runWithIO(t, []string{"--version"}, "")
	if code != 0 {
		t.Errorf("exit = %d, want 0", code)
	}
	if strings.TrimSpace(out) == "" {
		t.Error("expected version string on stdout")
	}
}

func TestRunBlankLinesSkipped(t *testing.T) {
	code, out, errOut := runWithIO(t, []string{"--inform=text", "--outform=text"}, "\n/INT/7\n\n")
	if code != 0 {
		t.Fatalf("exit = %d, stderr = %q", code, errOut)
	}
	if strings.TrimSpace(out) != "ari:/INT/7" {
		t.Errorf("output = %q, want ari:/INT/7", out)
	}
}
