// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package arierr defines the closed set of error categories produced by
// the ari, aritype, adm, aritext, aricbor, and admtransform packages.
//
// Every error constructed here carries a Category and wraps an underlying
// cause, so callers can use errors.Is/errors.As across the chain while
// still switching on category for coarse-grained handling (CLI exit
// codes, log levels).
package arierr

import "fmt"

// Category classifies an error for coarse-grained handling.
type Category string

const (
	CategoryParse      Category = "parse"
	CategoryDecode     Category = "decode"
	CategoryEncode     Category = "encode"
	CategoryType       Category = "type_mismatch"
	CategoryNotFound   Category = "not_found"
	CategoryAmbiguous  Category = "ambiguous_reference"
	CategoryInvariant  Category = "invariant_violation"
)

// Kind further classifies an Error within its Category, for callers that
// need to branch on a specific failure shape (e.g. a duplicate AM key
// vs. any other parse failure) rather than the coarse Category alone.
// Kind is optional; the zero value KindNone means no finer classification
// applies.
type Kind string

const (
	KindNone            Kind = ""
	KindDuplicateMapKey Kind = "duplicate_map_key"
	KindUnknownTag      Kind = "unknown_tag"
)

// Error is the common shape for every error this package produces.
type Error struct {
	Category Category
	Kind     Kind
	Pos      int // byte or rune offset, -1 if not applicable
	Err      error
}

func (e *Error) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("%s at offset %d: %s", e.Category, e.Pos, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Err.Error())
}

func (e *Error) Unwrap() error { return e.Err }

// WithKind returns a copy of e with Kind set to k, for callers that need
// to attach a finer classification to an already-constructed error.
func (e *Error) WithKind(k Kind) *Error {
	out := *e
	out.Kind = k
	return &out
}

// ParseError reports a failure to lex or parse ARI text at byte offset pos.
func ParseError(pos int, format string, args ...any) *Error {
	return &Error{Category: CategoryParse, Pos: pos, Err: fmt.Errorf(format, args...)}
}

// DecodeError reports a failure to decode a CBOR-encoded ARI.
func DecodeError(format string, args ...any) *Error {
	return &Error{Category: CategoryDecode, Pos: -1, Err: fmt.Errorf(format, args...)}
}

// EncodeError reports a failure to encode an ARI value.
func EncodeError(format string, args ...any) *Error {
	return &Error{Category: CategoryEncode, Pos: -1, Err: fmt.Errorf(format, args...)}
}

// TypeMismatch reports that a value is not compatible with a declared type.
func TypeMismatch(format string, args ...any) *Error {
	return &Error{Category: CategoryType, Pos: -1, Err: fmt.Errorf(format, args...)}
}

// NotFound reports that a catalog lookup found no matching object.
func NotFound(format string, args ...any) *Error {
	return &Error{Category: CategoryNotFound, Pos: -1, Err: fmt.Errorf(format, args...)}
}

// Ambiguous reports that a catalog lookup matched more than one object.
func Ambiguous(format string, args ...any) *Error {
	return &Error{Category: CategoryAmbiguous, Pos: -1, Err: fmt.Errorf(format, args...)}
}

// InvariantViolation reports that a value model invariant was violated.
func InvariantViolation(format string, args ...any) *Error {
	return &Error{Category: CategoryInvariant, Pos: -1, Err: fmt.Errorf(format, args...)}
}

// Finding is one entry in a LintReport: a non-fatal problem surfaced by a
// transform that collects problems rather than aborting on the first one.
type Finding struct {
	Category Category
	Subject  string // e.g. "CONST/max-retries"
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s", f.Category, f.Subject, f.Message)
}

// LintReport collects findings from a transform pass. It implements error
// so a caller that wants "fail if anything was found" can treat it as one,
// while a caller that wants the full collection can range over it directly.
type LintReport []Finding

func (r LintReport) Error() string {
	if len(r) == 0 {
		return "no findings"
	}
	if len(r) == 1 {
		return r[0].String()
	}
	return fmt.Sprintf("%d findings, first: %s", len(r), r[0])
}

// OK reports whether the report is empty.
func (r LintReport) OK() bool { return len(r) == 0 }
