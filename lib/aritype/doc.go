// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package aritype implements the ARI type system: built-in types, typedef
// expansion (alias, union, ulist, dlist, umap, tblt, use), and the
// compatibility/coercion rules a catalog-aware caller applies when
// checking a literal's value against its declared type.
//
// Typedef expansion needs catalog lookups, but package adm (the catalog)
// needs this package's Expr type to describe a TYPEDEF object's
// expansion. To avoid an import cycle, this package depends only on the
// small Resolver interface, which adm.Catalog implements.
package aritype
