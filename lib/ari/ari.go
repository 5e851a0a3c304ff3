// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ari

import (
	"bytes"
	"math"
	"time"

	"github.com/dtnma-ace/ace/lib/arierr"
)

// ARI is the closed tagged-sum type: every ARI value is exactly one of
// Undefined, Null, Literal, or Reference. The interface is sealed by the
// unexported isARI method — no type outside this package can implement it.
type ARI interface {
	isARI()
}

// Undefined is the absent-value ARI, distinct from Null. Two Undefined
// values always compare equal (the one exception to ARI equality's
// otherwise type-driven rules).
type Undefined struct{}

func (Undefined) isARI() {}

// Null is the ARI null literal.
type Null struct{}

func (Null) isARI() {}

// Literal is a typed literal value. It is constructed only through
// NewLiteral, which enforces that Value's Go type matches Type for
// builtin types; typedef-typed literals defer the deeper check to the
// type system (package aritype), which has access to the catalog needed
// to expand the typedef.
type Literal struct {
	typ   TypeRef
	value Primitive
}

func (Literal) isARI() {}

// Type returns the literal's declared type.
func (l Literal) Type() TypeRef { return l.typ }

// Value returns the literal's payload.
func (l Literal) Value() Primitive { return l.value }

// NewLiteral constructs a Literal, rejecting a value whose Go type does
// not match a builtin declared type (a BYTE literal carries a Uint64
// payload, as UINT does). Typedef-typed literals are accepted
// structurally here; full compatibility checking against the expanded
// typedef happens in package aritype, which has catalog access.
func NewLiteral(typ TypeRef, value Primitive) (Literal, error) {
	if typ.IsBuiltin {
		got, ok := builtinOf(value)
		if !ok {
			return Literal{}, arierr.InvariantViolation("literal: value has no associated builtin type")
		}
		if got != typ.Builtin && !(typ.Builtin == TypeByte && got == TypeUint) {
			return Literal{}, arierr.InvariantViolation("literal: value type %s does not match declared type %s", got, typ.Builtin)
		}
	}
	return Literal{typ: typ, value: value}, nil
}

// MustLiteral is like NewLiteral but panics on error; for use with
// statically known-good constant literals.
func MustLiteral(typ TypeRef, value Primitive) Literal {
	l, err := NewLiteral(typ, value)
	if err != nil {
		panic(err)
	}
	return l
}

// Reference is an ARI object reference: an identification of one ADM
// catalog object, with optional actual parameters.
type Reference struct {
	ref ObjectRef
}

func (Reference) isARI() {}

// NewReference constructs a Reference, rejecting Undefined actual
// parameters (§3.2 invariant: actual parameters are never Undefined).
func NewReference(ref ObjectRef) (Reference, error) {
	for i, p := range ref.Params {
		if _, ok := p.(Undefined); ok {
			return Reference{}, arierr.InvariantViolation("reference: actual parameter %d is undefined", i)
		}
	}
	return Reference{ref: ref}, nil
}

// Ref returns the object reference's identification.
func (r Reference) Ref() ObjectRef { return r.ref }

// Convenience constructors for the common bare-primitive literals.

func NewBool(v bool) Literal     { return MustLiteral(BuiltinRef(TypeBool), Bool(v)) }
func NewUint64(v uint64) Literal { return MustLiteral(BuiltinRef(TypeUint), Uint64(v)) }
func NewInt64(v int64) Literal   { return MustLiteral(BuiltinRef(TypeInt), Int64(v)) }
func NewUvast(v uint64) Literal  { return MustLiteral(BuiltinRef(TypeUvast), Uvast(v)) }
func NewVast(v int64) Literal    { return MustLiteral(BuiltinRef(TypeVast), Vast(v)) }
func NewReal32(v float32) Literal { return MustLiteral(BuiltinRef(TypeReal32), Real32(v)) }
func NewReal64(v float64) Literal { return MustLiteral(BuiltinRef(TypeReal64), Real64(v)) }
func NewText(v string) Literal   { return MustLiteral(BuiltinRef(TypeTextstr), Text(v)) }
func NewBytes(v []byte) Literal  { return MustLiteral(BuiltinRef(TypeBytestr), Bytes(v)) }
func NewTimepoint(v time.Time) Literal {
	return MustLiteral(BuiltinRef(TypeTP), Timepoint(v))
}
func NewTimeperiod(v time.Duration) Literal {
	return MustLiteral(BuiltinRef(TypeTD), Timeperiod(v))
}
func NewACLiteral(items []ARI) Literal {
	return MustLiteral(BuiltinRef(TypeAC), NewAC(items))
}
func NewAMLiteral(pairs []AMPair) (Literal, error) {
	m, err := NewAM(pairs)
	if err != nil {
		return Literal{}, err
	}
	return MustLiteral(BuiltinRef(TypeAM), m), nil
}

// Equal reports whether a and b denote the same ARI value, per the text
// and wire format's shared equality rules: type-driven comparison with
// Undefined==Undefined as the sole cross-cutting exception, integer
// literals compared by mathematical value across the integer types, and IEEE-754
// NaN inequality preserved for real literals (NaN != NaN even when
// comparing an ARI to itself).
func Equal(a, b ARI) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case Undefined:
		_, ok := b.(Undefined)
		return ok
	case Null:
		_, ok := b.(Null)
		return ok
	case Literal:
		bv, ok := b.(Literal)
		if !ok {
			return false
		}
		// Integer literals compare by value across INT, UINT, VAST and
		// UVAST (see integersEqual), whatever their declared types.
		if _, _, aInt := integerMagnitude(av.value); aInt {
			if _, _, bInt := integerMagnitude(bv.value); bInt {
				return integersEqual(av.value, bv.value)
			}
		}
		return typeRefEqual(av.typ, bv.typ) && primitiveEqual(av.value, bv.value)
	case Reference:
		bv, ok := b.(Reference)
		if !ok {
			return false
		}
		return objectRefEqual(av.ref, bv.ref)
	}
	return false
}

func typeRefEqual(a, b TypeRef) bool {
	if a.IsBuiltin != b.IsBuiltin {
		return false
	}
	if a.IsBuiltin {
		return a.Builtin == b.Builtin
	}
	return objectRefEqual(*a.Typedef, *b.Typedef)
}

func objectRefEqual(a, b ObjectRef) bool {
	if !a.Org.Equal(b.Org) || !a.Model.Equal(b.Model) || a.ObjType != b.ObjType || !a.Name.Equal(b.Name) {
		return false
	}
	if (a.Rev == nil) != (b.Rev == nil) {
		return false
	}
	if a.Rev != nil && !a.Rev.Equal(*b.Rev) {
		return false
	}
	if len(a.Params) != len(b.Params) {
		return false
	}
	for i := range a.Params {
		if !Equal(a.Params[i], b.Params[i]) {
			return false
		}
	}
	return true
}

// integersEqual compares a and b by mathematical value across the four
// integer primitive types (Uint64, Int64, Uvast, Vast), so an Int64 and a
// Uint64 carrying the same non-negative value compare equal. Bare-decoded
// CBOR integers lose their source type family (majorUint always decodes to
// Uint64, majorNeg always decodes to Int64) regardless of which family the
// value was originally encoded from, so equality has to look through the
// Go type to the value it names.
func integersEqual(a, b Primitive) bool {
	am, aneg, aok := integerMagnitude(a)
	bm, bneg, bok := integerMagnitude(b)
	if !aok || !bok {
		return false
	}
	if am == 0 && bm == 0 {
		return true
	}
	return aneg == bneg && am == bm
}

// integerMagnitude decomposes an integer primitive into its sign and
// unsigned magnitude, so values of different Go types can be compared
// without overflow (notably math.MinInt64, whose magnitude doesn't fit in
// an int64).
func integerMagnitude(p Primitive) (mag uint64, neg bool, ok bool) {
	switch v := p.(type) {
	case Uint64:
		return uint64(v), false, true
	case Uvast:
		return uint64(v), false, true
	case Int64:
		return int64Magnitude(int64(v))
	case Vast:
		return int64Magnitude(int64(v))
	}
	return 0, false, false
}

func int64Magnitude(v int64) (mag uint64, neg bool, ok bool) {
	if v >= 0 {
		return uint64(v), false, true
	}
	return uint64(-(v+1)) + 1, true, true
}

func primitiveEqual(a, b Primitive) bool {
	switch av := a.(type) {
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Uint64, Int64, Uvast, Vast:
		return integersEqual(av, b)
	case Real32:
		bv, ok := b.(Real32)
		if !ok {
			return false
		}
		if math.IsNaN(float64(av)) || math.IsNaN(float64(bv)) {
			return false
		}
		return av == bv
	case Real64:
		bv, ok := b.(Real64)
		if !ok {
			return false
		}
		if math.IsNaN(float64(av)) || math.IsNaN(float64(bv)) {
			return false
		}
		return av == bv
	case Text:
		bv, ok := b.(Text)
		return ok && av == bv
	case Bytes:
		bv, ok := b.(Bytes)
		return ok && bytes.Equal(av, bv)
	case Timepoint:
		bv, ok := b.(Timepoint)
		return ok && time.Time(av).Equal(time.Time(bv))
	case Timeperiod:
		bv, ok := b.(Timeperiod)
		return ok && av == bv
	case *AC:
		bv, ok := b.(*AC)
		if !ok || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *AM:
		bv, ok := b.(*AM)
		if !ok || len(av.Pairs) != len(bv.Pairs) {
			return false
		}
		for i, p := range av.Pairs {
			other := bv.Pairs[i]
			if !Equal(p.Key, other.Key) || !Equal(p.Value, other.Value) {
				return false
			}
		}
		return true
	case *Table:
		bv, ok := b.(*Table)
		if !ok || av.Columns != bv.Columns || len(av.Rows) != len(bv.Rows) {
			return false
		}
		for i := range av.Rows {
			if !Equal(av.Rows[i], bv.Rows[i]) {
				return false
			}
		}
		return true
	case *Tblt:
		bv, ok := b.(*Tblt)
		if !ok || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for i := range av.Fields {
			if av.Fields[i].Name != bv.Fields[i].Name || !typeRefEqual(av.Fields[i].Type, bv.Fields[i].Type) || !Equal(av.Fields[i].Value, bv.Fields[i].Value) {
				return false
			}
		}
		return true
	case *ExecSet:
		bv, ok := b.(*ExecSet)
		if !ok || !Equal(av.Nonce, bv.Nonce) || len(av.Targets) != len(bv.Targets) {
			return false
		}
		for i := range av.Targets {
			if !Equal(av.Targets[i], bv.Targets[i]) {
				return false
			}
		}
		return true
	case *RptSet:
		bv, ok := b.(*RptSet)
		if !ok || !Equal(av.Nonce, bv.Nonce) || !time.Time(av.RefTime).Equal(time.Time(bv.RefTime)) || len(av.Reports) != len(bv.Reports) {
			return false
		}
		for i := range av.Reports {
			if !reportEqual(av.Reports[i], bv.Reports[i]) {
				return false
			}
		}
		return true
	}
	return false
}

func reportEqual(a, b Report) bool {
	if a.RelTime != b.RelTime || !Equal(a.Source, b.Source) || len(a.Items) != len(b.Items) {
		return false
	}
	for i := range a.Items {
		if !Equal(a.Items[i], b.Items[i]) {
			return false
		}
	}
	return true
}
