// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package adm implements the ADM (Application Data Model) catalog: an
// in-memory index of loaded modules and their objects (CONST, CTRL, EDD,
// IDENT, OPER, SBR, TBR, TYPEDEF, VAR), with symbolic-name and numeric-enum
// resolution in both directions.
//
// Catalog follows the reader-writer discipline of
// lib/authorization/index.go: many concurrent readers, or one exclusive
// writer, never both. LoadModule takes the write lock; every lookup
// method takes the read lock. Snapshot performs a deep copy for
// transforms (package admtransform) to mutate without racing the live
// catalog, per the copy-on-write/snapshot-swap pattern.
package adm
