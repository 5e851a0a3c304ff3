// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package ari implements the Application Resource Identifier value model:
// a closed tagged-sum type covering the undefined value, the null literal,
// typed literals, structured literals (ac, am, tbl, tblt, execset, rptset,
// rpt), and object references into an ADM catalog.
//
// Values are constructed through typed constructors (NewLiteral,
// NewReference, NewAC, ...) rather than composite literals of exported
// struct fields, so that an ARI can never exist in a state that violates
// the value model's invariants: a Literal's Value always matches its
// declared Type, an AM never carries a duplicate key, a Table's row count
// is always a multiple of its declared column count.
//
// Equality is defined by Equal, which follows the usual rules for
// primitive comparison (including NaN inequality for reals, and the single
// exception that two Undefined values compare equal to each other).
package ari
