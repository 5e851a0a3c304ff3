// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// ace_ari transcodes ARI values between text, binary, and hex-encoded
// binary wire forms.
//
// text and cborhex are both ASCII-safe, newline-free encodings, so in
// those forms ace_ari runs in line mode: one ARI value per input line,
// one encoded value per output line. Raw cbor is neither: a CBOR
// encoding may contain an embedded 0x0A byte, which would corrupt a
// newline-delimited stream on the way out and make a newline-delimited
// stream ambiguous to split on the way in. So whenever either --inform
// or --outform names raw cbor, ace_ari instead runs in single-value
// mode: it reads all of stdin as one encoded value, decodes/encodes it
// once, and writes the result to stdout with no added framing.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/dtnma-ace/ace/lib/adm"
	"github.com/dtnma-ace/ace/lib/ari"
	"github.com/dtnma-ace/ace/lib/aricbor"
	"github.com/dtnma-ace/ace/lib/aritext"
	"github.com/dtnma-ace/ace/lib/arilog"
	"github.com/dtnma-ace/ace/lib/version"
	"github.com/dtnma-ace/ace/lib/wireconfig"
)

// ace_ari has no ADM catalog of its own to load (it transcodes bare ARI
// values, not catalog-relative ones), so every catalog-accepting call
// below is given a nil *adm.Catalog: numeric identifiers pass through
// unresolved rather than being rendered symbolically.

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type wireForm string

const (
	formText    wireForm = "text"
	formCBOR    wireForm = "cbor"
	formCBORHex wireForm = "cborhex"
)

func run(args []string, stdin *os.File, stdout, stderr *os.File) int {
	for _, a := range args {
		if a == "--version" {
			if contains(args, "--full") {
				fmt.Fprintln(stdout, version.Full())
			} else {
				fmt.Fprintln(stdout, version.Info())
			}
			return 0
		}
	}

	var inform, outform string
	var mustNickname, mustTyped, help bool

	flagSet := pflag.NewFlagSet("ace_ari", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&inform, "inform", string(formText), "input wire form: text|cbor|cborhex")
	flagSet.StringVar(&outform, "outform", string(formText), "output wire form: text|cbor|cborhex")
	flagSet.BoolVar(&mustNickname, "must-nickname", false, "force enum (nickname) form for identifiers on output")
	flagSet.BoolVar(&mustTyped, "must-typed", false, "require every output literal in explicit typed form")
	flagSet.BoolVarP(&help, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return 0
		}
		return 2
	}
	if help {
		flagSet.PrintDefaults()
		return 0
	}

	logger := arilog.NewLogger().With("driver", "ace_ari")

	cfg := wireconfig.Default()
	// --must-nickname only swaps the rendering of identifiers that already
	// carry an enum form; with no catalog loaded (see the nil *adm.Catalog
	// note above), a purely symbolic identifier has no enum to convert to
	// and is emitted symbolic regardless of this flag, rather than
	// rejected as an error.
	formatOpts := aritext.FormatOptions{
		NumericNames: mustNickname,
		TextIdentity: true,
	}
	// The text formatter always emits the explicit /TYPE/value form for
	// every scalar literal (see lib/aritext/format.go's formatGenericLiteral);
	// --must-typed names an output contract this formatter already meets
	// unconditionally, so it has no further effect here.
	_ = mustTyped

	in, err := wireFormOf(inform)
	if err != nil {
		fmt.Fprintf(stderr, "ace_ari: %v\n", err)
		return 2
	}
	out, err := wireFormOf(outform)
	if err != nil {
		fmt.Fprintf(stderr, "ace_ari: %v\n", err)
		return 2
	}

	var cat *adm.Catalog

	if in == formCBOR || out == formCBOR {
		return runSingleValue(stdin, stdout, stderr, logger, in, out, cat, cfg, formatOpts)
	}
	return runLineOriented(stdin, stdout, stderr, logger, in, out, cat, cfg, formatOpts)
}

// runLineOriented handles the text/cborhex forms, both of which are
// ASCII-safe and newline-free: one ARI value per input line, one
// encoded value per output line.
func runLineOriented(stdin *os.File, stdout, stderr *os.File, logger *slog.Logger, in, out wireForm, cat *adm.Catalog, cfg wireconfig.Config, formatOpts aritext.FormatOptions) int {
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	writer := bufio.NewWriter(stdout)
	defer writer.Flush()

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		value, err := decodeLine(line, in, cat, cfg)
		if err != nil {
			logger.Error("decode failed", "line", lineNum, "error", err)
			fmt.Fprintf(stderr, "ace_ari: line %d: %v\n", lineNum, err)
			return 1
		}

		rendered, err := encodeLine(value, out, cat, cfg, formatOpts)
		if err != nil {
			logger.Error("encode failed", "line", lineNum, "error", err)
			fmt.Fprintf(stderr, "ace_ari: line %d: %v\n", lineNum, err)
			return 1
		}

		fmt.Fprintln(writer, rendered)
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(stderr, "ace_ari: reading input: %v\n", err)
		return 1
	}
	return 0
}

// runSingleValue handles the raw-cbor form on either side of the
// transcoding: it consumes all of stdin as one encoded value and
// writes the transcoded result with no added delimiter.
func runSingleValue(stdin *os.File, stdout, stderr *os.File, logger *slog.Logger, in, out wireForm, cat *adm.Catalog, cfg wireconfig.Config, formatOpts aritext.FormatOptions) int {
	raw, err := io.ReadAll(stdin)
	if err != nil {
		fmt.Fprintf(stderr, "ace_ari: reading input: %v\n", err)
		return 1
	}

	var value ari.ARI
	switch in {
	case formCBOR:
		value, err = aricbor.Decode(raw, cat, cfg, aricbor.DecodeOptions{})
	case formCBORHex:
		hexBytes, hexErr := hex.DecodeString(strings.TrimSpace(string(raw)))
		if hexErr != nil {
			err = fmt.Errorf("invalid hex input: %w", hexErr)
			break
		}
		value, err = aricbor.Decode(hexBytes, cat, cfg, aricbor.DecodeOptions{})
	case formText:
		value, err = aritext.Parse(strings.TrimSpace(string(raw)))
	}
	if err != nil {
		logger.Error("decode failed", "error", err)
		fmt.Fprintf(stderr, "ace_ari: %v\n", err)
		return 1
	}

	switch out {
	case formCBOR:
		encoded, encErr := aricbor.Encode(value, cat, cfg, aricbor.EncodeOptions{})
		if encErr != nil {
			logger.Error("encode failed", "error", encErr)
			fmt.Fprintf(stderr, "ace_ari: %v\n", encErr)
			return 1
		}
		if _, err := stdout.Write(encoded); err != nil {
			fmt.Fprintf(stderr, "ace_ari: writing output: %v\n", err)
			return 1
		}
	default:
		rendered, encErr := encodeLine(value, out, cat, cfg, formatOpts)
		if encErr != nil {
			logger.Error("encode failed", "error", encErr)
			fmt.Fprintf(stderr, "ace_ari: %v\n", encErr)
			return 1
		}
		fmt.Fprintln(stdout, rendered)
	}
	return 0
}

func wireFormOf(s string) (wireForm, error) {
	switch wireForm(s) {
	case formText, formCBOR, formCBORHex:
		return wireForm(s), nil
	}
	return "", fmt.Errorf("unknown wire form %q (want text, cbor, or cborhex)", s)
}

// decodeLine handles the line-oriented input forms (text, cborhex).
// Raw cbor is never passed here; see runSingleValue.
func decodeLine(line string, form wireForm, cat *adm.Catalog, cfg wireconfig.Config) (ari.ARI, error) {
	switch form {
	case formText:
		return aritext.Parse(line)
	case formCBORHex:
		raw, err := hex.DecodeString(strings.TrimSpace(line))
		if err != nil {
			return nil, fmt.Errorf("invalid hex input: %w", err)
		}
		return aricbor.Decode(raw, cat, cfg, aricbor.DecodeOptions{})
	}
	return nil, fmt.Errorf("unsupported input form %q", form)
}

// encodeLine handles the line-oriented output forms (text, cborhex).
// Raw cbor is never passed here; see runSingleValue.
func encodeLine(value ari.ARI, form wireForm, cat *adm.Catalog, cfg wireconfig.Config, opts aritext.FormatOptions) (string, error) {
	switch form {
	case formText:
		return aritext.Format(value, cat, opts)
	case formCBORHex:
		raw, err := aricbor.Encode(value, cat, cfg, aricbor.EncodeOptions{})
		if err != nil {
			return "", err
		}
		return hex.EncodeToString(raw), nil
	}
	return "", fmt.Errorf("unsupported output form %q", form)
}

func contains(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}
