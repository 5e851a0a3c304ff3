// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package aritext implements the `ari:` URI-style text codec: a
// hand-written lexer and recursive-descent parser (deliberately not a
// generated parser — the original Python implementation uses PLY, but
// this spec's design notes call for a hand-rolled approach in Go), plus
// a formatter that renders an ARI value back to text under a set of
// configurable options.
//
// Parse returns object references unresolved; call Resolve separately
// with a catalog to ground relative references and check that each
// reference names an existing catalog object. Resolve does not fill in
// enum forms or check actual parameters against formals. This mirrors the
// two-pass structure the wire codec (package aricbor) also uses.
package aritext
