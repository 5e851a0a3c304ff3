// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package aritype

import "github.com/dtnma-ace/ace/lib/ari"

// Expr is a closed sum of type-system expressions: the shapes a TYPEDEF
// object's expansion, or an ADM-declared parameter/result type, can take.
type Expr interface {
	isExpr()
}

// Builtin names one of the ARI built-in literal types directly.
type Builtin struct {
	Code ari.BuiltinType
}

func (Builtin) isExpr() {}

// Alias names another TYPEDEF object whose expansion stands in for this
// one (original_source's "typedef of a typedef" chains).
type Alias struct {
	Ref ari.ObjectRef
}

func (Alias) isExpr() {}

// Union is satisfied by any one of its alternatives, tried in
// declaration order (see DESIGN.md's "union-overlap resolution order").
type Union struct {
	Alternatives []Expr
}

func (Union) isExpr() {}

// Ulist is a homogeneous list: an AC literal whose every item matches
// Elem.
type Ulist struct {
	Elem Expr
}

func (Ulist) isExpr() {}

// Dlist is a heterogeneous fixed-arity list: an AC literal whose items
// match Elems positionally.
type Dlist struct {
	Elems []Expr
}

func (Dlist) isExpr() {}

// Umap is a homogeneously-typed map: an AM literal whose keys all match
// Key and whose values all match Val.
type Umap struct {
	Key Expr
	Val Expr
}

func (Umap) isExpr() {}

// TbltType declares a labeled-tuple shape: a fixed, named, typed field
// list a Tblt literal must match.
type TbltType struct {
	Fields []FieldType
}

func (TbltType) isExpr() {}

// FieldType is one named field of a TbltType.
type FieldType struct {
	Name string
	Type Expr
}

// Use refines a base type with additional constraints (range, length,
// pattern, enumeration restriction), mirroring original_source's
// BaseType + Constraint composition.
type Use struct {
	Base        Expr
	Constraints []Constraint
}

func (Use) isExpr() {}
