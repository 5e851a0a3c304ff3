// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package aritype

import "github.com/dtnma-ace/ace/lib/ari"

// Constraint narrows the domain of a Use type. Grounded on
// original_source/src/ace/typing.py's Constraint/Length/Range classes,
// translated from Python's portion interval algebra to small closed
// Go types since ADM-declared domains are always simple numeric bounds
// or string lengths in this corpus.
type Constraint interface {
	// Applicable reports whether this constraint applies to a value of
	// the given builtin type (mirrors Constraint.applicable() in the
	// original: a Length constraint only applies to TEXTSTR/BYTESTR, a
	// Range constraint only to numeric types).
	Applicable(t ari.BuiltinType) bool
	// Valid reports whether v satisfies the constraint. Only called
	// when Applicable(builtinOf(v)) is true.
	Valid(v ari.Primitive) bool
}

// IntRange constrains an integer-family value to [Lo, Hi] inclusive.
type IntRange struct {
	Lo, Hi int64
}

func (IntRange) Applicable(t ari.BuiltinType) bool {
	switch t {
	case ari.TypeInt, ari.TypeVast, ari.TypeByte:
		return true
	}
	return false
}

func (r IntRange) Valid(v ari.Primitive) bool {
	var n int64
	switch x := v.(type) {
	case ari.Int64:
		n = int64(x)
	case ari.Vast:
		n = int64(x)
	default:
		return false
	}
	return n >= r.Lo && n <= r.Hi
}

// UintRange constrains an unsigned-integer-family value to [Lo, Hi].
type UintRange struct {
	Lo, Hi uint64
}

func (UintRange) Applicable(t ari.BuiltinType) bool {
	switch t {
	case ari.TypeUint, ari.TypeUvast:
		return true
	}
	return false
}

func (r UintRange) Valid(v ari.Primitive) bool {
	var n uint64
	switch x := v.(type) {
	case ari.Uint64:
		n = uint64(x)
	case ari.Uvast:
		n = uint64(x)
	default:
		return false
	}
	return n >= r.Lo && n <= r.Hi
}

// FloatRange constrains a real-family value to [Lo, Hi].
type FloatRange struct {
	Lo, Hi float64
}

func (FloatRange) Applicable(t ari.BuiltinType) bool {
	return t == ari.TypeReal32 || t == ari.TypeReal64
}

func (r FloatRange) Valid(v ari.Primitive) bool {
	var f float64
	switch x := v.(type) {
	case ari.Real32:
		f = float64(x)
	case ari.Real64:
		f = float64(x)
	default:
		return false
	}
	return f >= r.Lo && f <= r.Hi
}

// Length constrains the length of a TEXTSTR or BYTESTR value.
type Length struct {
	Min, Max int
}

func (Length) Applicable(t ari.BuiltinType) bool {
	return t == ari.TypeTextstr || t == ari.TypeBytestr
}

func (l Length) Valid(v ari.Primitive) bool {
	var n int
	switch x := v.(type) {
	case ari.Text:
		n = len(string(x))
	case ari.Bytes:
		n = len(x)
	default:
		return false
	}
	return n >= l.Min && (l.Max < 0 || n <= l.Max)
}

// EnumRestriction limits a value to one of a declared set under ARI
// equality.
type EnumRestriction struct {
	Allowed []ari.ARI
}

func (EnumRestriction) Applicable(ari.BuiltinType) bool { return true }

func (e EnumRestriction) Valid(v ari.Primitive) bool {
	lit, err := ari.NewLiteral(typeRefOfPrimitive(v), v)
	if err != nil {
		return false
	}
	for _, a := range e.Allowed {
		if ari.Equal(lit, a) {
			return true
		}
	}
	return false
}

func typeRefOfPrimitive(v ari.Primitive) ari.TypeRef {
	// Best-effort: construct a builtin TypeRef guess from the
	// concrete Go type so EnumRestriction can build a comparable
	// Literal. Panics are impossible here because NewLiteral's own
	// structural check is what validates the guess; on mismatch
	// EnumRestriction.Valid simply reports false via the error path.
	switch v.(type) {
	case ari.Bool:
		return ari.BuiltinRef(ari.TypeBool)
	case ari.Uint64:
		return ari.BuiltinRef(ari.TypeUint)
	case ari.Int64:
		return ari.BuiltinRef(ari.TypeInt)
	case ari.Uvast:
		return ari.BuiltinRef(ari.TypeUvast)
	case ari.Vast:
		return ari.BuiltinRef(ari.TypeVast)
	case ari.Real32:
		return ari.BuiltinRef(ari.TypeReal32)
	case ari.Real64:
		return ari.BuiltinRef(ari.TypeReal64)
	case ari.Text:
		return ari.BuiltinRef(ari.TypeTextstr)
	case ari.Bytes:
		return ari.BuiltinRef(ari.TypeBytestr)
	}
	return ari.TypeRef{}
}
