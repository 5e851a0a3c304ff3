// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// ace_adm applies pure Module transforms to an ADM module record: enum
// assignment, canonical reordering, and lint checks. It reads one module
// per positional argument (or stdin when none is given), applies the
// requested transforms in the order named on the command line, and
// reports the resulting module shape and any lint findings.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/dtnma-ace/ace/lib/adm"
	"github.com/dtnma-ace/ace/lib/admtransform"
	"github.com/dtnma-ace/ace/lib/arierr"
	"github.com/dtnma-ace/ace/lib/arilog"
	"github.com/dtnma-ace/ace/lib/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type sourceForm string

const (
	formYANG sourceForm = "yang"
	formJSON sourceForm = "json"
)

const (
	transformAddEnum      = "adm-add-enum"
	transformCanonicalize = "canonicalize"
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

	var transforms []string
	var form string
	var yangCanonical, ietf, lintHyphenated, help bool

	flagSet := pflag.NewFlagSet("ace_adm", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringArrayVarP(&transforms, "transform", "t", nil, "transform to apply (repeatable): adm-add-enum, canonicalize")
	flagSet.StringVarP(&form, "form", "f", string(formYANG), "source module form: yang|json")
	flagSet.BoolVar(&yangCanonical, "yang-canonical", false, "accepted for compatibility; has no effect (canonicalize always applies its one fixed ordering)")
	flagSet.BoolVar(&ietf, "ietf", false, "apply IETF module naming conventions during lint")
	flagSet.BoolVar(&lintHyphenated, "lint-ensure-hyphenated-names", false, "fail if any object name is not hyphen-separated")
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

	// ace_adm's module record is always ingested through the YAML
	// intermediate form (see lib/adm.FromYAML): YANG's flow-style
	// mapping/sequence syntax and JSON are both valid YAML, so -f only
	// changes what this driver calls the input form for diagnostics, not
	// which parser runs.
	switch sourceForm(form) {
	case formYANG, formJSON:
	default:
		fmt.Fprintf(stderr, "ace_adm: unknown form %q (want yang or json)\n", form)
		return 2
	}

	logger := arilog.NewLogger().With("driver", "ace_adm", "form", form)

	// --ietf names the IETF naming convention, which for this toolchain's
	// lint surface is exactly the hyphenated-name check: either flag
	// enables it.
	lintHyphenated = lintHyphenated || ietf
	_ = yangCanonical // canonicalize's ordering is fixed by spec; no alternate YANG-statement order is implemented

	files := flagSet.Args()
	if len(files) == 0 {
		files = []string{"-"}
	}

	exit := 0
	for _, path := range files {
		if err := processFile(path, stdin, stdout, logger, transforms, lintHyphenated); err != nil {
			logger.Error("processing failed", "file", path, "error", err)
			fmt.Fprintf(stderr, "ace_adm: %s: %v\n", path, err)
			exit = 1
		}
	}
	return exit
}

func processFile(path string, stdin *os.File, stdout *os.File, logger *slog.Logger, transforms []string, lintHyphenated bool) error {
	var r *os.File
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("open: %w", err)
		}
		defer f.Close()
		r = f
	}

	m, err := adm.FromYAML(r)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	for _, t := range transforms {
		switch t {
		case transformAddEnum:
			m = admtransform.AddEnum(m)
		case transformCanonicalize:
			m = admtransform.Canonicalize(m)
		default:
			return fmt.Errorf("unknown transform %q", t)
		}
	}

	var findings arierr.LintReport
	if lintHyphenated {
		findings = append(findings, admtransform.LintHyphenatedNames(m)...)
	}
	findings = append(findings, admtransform.Validate(m)...)

	for _, f := range findings {
		logger.Warn("lint finding", "category", f.Category, "subject", f.Subject, "message", f.Message)
	}

	fmt.Fprintf(stdout, "%s/%s: %d objects, %d lint finding(s)\n", m.Org, m.Name, len(m.Objects), len(findings))

	if !findings.OK() {
		return findings
	}
	return nil
}

func contains(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}
