// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ari

import (
	"fmt"
	"strconv"
	"time"
)

// BuiltinType is a literal/primitive type code, reproduced from the
// original ace.ari.StructType enumeration. This is the code space used
// inside typed-literal wire shapes ([type_code, value]); it is distinct
// from the object-reference type code space (see ObjectType).
type BuiltinType uint8

const (
	TypeNull    BuiltinType = 0
	TypeBool    BuiltinType = 1
	TypeByte    BuiltinType = 2
	TypeInt     BuiltinType = 4
	TypeUint    BuiltinType = 5
	TypeVast    BuiltinType = 6
	TypeUvast   BuiltinType = 7
	TypeReal32  BuiltinType = 8
	TypeReal64  BuiltinType = 9
	TypeTextstr BuiltinType = 10
	TypeBytestr BuiltinType = 11
	TypeTP      BuiltinType = 12
	TypeTD      BuiltinType = 13
	TypeLabel   BuiltinType = 14
	TypeCBOR    BuiltinType = 15
	TypeLittype BuiltinType = 16
	TypeAC      BuiltinType = 17
	TypeAM      BuiltinType = 18
	TypeTBL     BuiltinType = 19
	TypeExecSet BuiltinType = 20
	TypeRptSet  BuiltinType = 21
	TypeTblt    BuiltinType = 22
)

var builtinNames = map[BuiltinType]string{
	TypeNull: "NULL", TypeBool: "BOOL", TypeByte: "BYTE", TypeInt: "INT",
	TypeUint: "UINT", TypeVast: "VAST", TypeUvast: "UVAST",
	TypeReal32: "REAL32", TypeReal64: "REAL64", TypeTextstr: "TEXTSTR",
	TypeBytestr: "BYTESTR", TypeTP: "TP", TypeTD: "TD", TypeLabel: "LABEL",
	TypeCBOR: "CBOR", TypeLittype: "LITTYPE", TypeAC: "AC", TypeAM: "AM",
	TypeTBL: "TBL", TypeExecSet: "EXECSET", TypeRptSet: "RPTSET",
	TypeTblt: "TBLT",
}

func (t BuiltinType) String() string {
	if name, ok := builtinNames[t]; ok {
		return name
	}
	return fmt.Sprintf("BuiltinType(%d)", uint8(t))
}

// BuiltinByName resolves the symbolic name of a builtin type, case
// sensitive, matching the text grammar's TYPE token.
func BuiltinByName(name string) (BuiltinType, bool) {
	for code, n := range builtinNames {
		if n == name {
			return code, true
		}
	}
	return 0, false
}

// ObjectType is the in-memory object-type numbering: CONST=0, CTRL=1,
// EDD=2, IDENT=3, OPER=4, SBR=5, TBR=6, TYPEDEF=7, VAR=8. The CBOR wire
// form uses its own negative codes, which package aricbor translates to
// and from.
type ObjectType uint8

const (
	ObjConst   ObjectType = 0
	ObjCtrl    ObjectType = 1
	ObjEdd     ObjectType = 2
	ObjIdent   ObjectType = 3
	ObjOper    ObjectType = 4
	ObjSbr     ObjectType = 5
	ObjTbr     ObjectType = 6
	ObjTypedef ObjectType = 7
	ObjVar     ObjectType = 8
)

var objectTypeNames = map[ObjectType]string{
	ObjConst: "CONST", ObjCtrl: "CTRL", ObjEdd: "EDD", ObjIdent: "IDENT",
	ObjOper: "OPER", ObjSbr: "SBR", ObjTbr: "TBR", ObjTypedef: "TYPEDEF",
	ObjVar: "VAR",
}

func (t ObjectType) String() string {
	if name, ok := objectTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ObjectType(%d)", uint8(t))
}

// ObjectTypeByName resolves the symbolic name of an object type.
func ObjectTypeByName(name string) (ObjectType, bool) {
	for code, n := range objectTypeNames {
		if n == name {
			return code, true
		}
	}
	return 0, false
}

// Ident is either a symbolic name or a numeric enum value. A zero Ident
// is never valid on its own; use Symbolic or Numeric to construct one.
type Ident struct {
	Text    string
	Enum    int64
	HasEnum bool
}

// Symbolic constructs a name-form identifier.
func Symbolic(name string) Ident { return Ident{Text: name} }

// Numeric constructs an enum-form identifier.
func Numeric(n int64) Ident { return Ident{Enum: n, HasEnum: true} }

// IsNumeric reports whether this identifier carries only an enum value.
func (id Ident) IsNumeric() bool { return id.Text == "" && id.HasEnum }

func (id Ident) String() string {
	if id.Text != "" {
		return id.Text
	}
	return strconv.FormatInt(id.Enum, 10)
}

// Equal compares two identifiers for equality of the value they denote.
// A symbolic and a numeric form of the same underlying name are NOT
// considered equal here; resolving that equivalence requires a catalog
// (see package adm).
func (id Ident) Equal(other Ident) bool {
	return id.Text == other.Text && id.Enum == other.Enum && id.HasEnum == other.HasEnum
}

// Revision is an ADM module revision date (YYYY-MM-DD).
type Revision struct {
	Year, Month, Day int
}

func (r Revision) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", r.Year, r.Month, r.Day)
}

func (r Revision) Equal(other Revision) bool { return r == other }

// ObjectRef identifies one ADM catalog object, optionally with actual
// parameters for an object reference that supplies them (CTRL/OPER
// invocation, parameterized CONST, etc).
type ObjectRef struct {
	Org     Ident
	Model   Ident
	Rev     *Revision
	ObjType ObjectType
	Name    Ident
	Params  []ARI
}

// TypeRef names either a builtin type or a TYPEDEF object in the catalog.
type TypeRef struct {
	Builtin   BuiltinType
	IsBuiltin bool
	Typedef   *ObjectRef
}

// BuiltinRef constructs a TypeRef naming a builtin type.
func BuiltinRef(b BuiltinType) TypeRef { return TypeRef{Builtin: b, IsBuiltin: true} }

// TypedefRef constructs a TypeRef naming a TYPEDEF catalog object.
func TypedefRef(ref ObjectRef) TypeRef {
	ref.ObjType = ObjTypedef
	return TypeRef{Typedef: &ref}
}

func (t TypeRef) String() string {
	if t.IsBuiltin {
		return t.Builtin.String()
	}
	return fmt.Sprintf("//%s/%s/TYPEDEF/%s", t.Typedef.Org, t.Typedef.Model, t.Typedef.Name)
}

// Primitive is implemented by every concrete payload type a Literal can
// carry. The set is closed: Bool, Uint64, Int64, Uvast, Vast, Real32,
// Real64, Text, Bytes, Timepoint, Timeperiod, RawCBOR, *AC, *AM, *Table,
// *Tblt, *ExecSet, *RptSet.
type Primitive interface {
	isPrimitive()
}

type (
	Bool       bool
	Uint64     uint64
	Int64      int64
	Uvast      uint64
	Vast       int64
	Real32     float32
	Real64     float64
	Text       string
	Bytes      []byte
	Timepoint  time.Time
	Timeperiod time.Duration
	// RawCBOR carries an opaque, already-encoded CBOR item: the wire
	// codec's escape hatch for a tag it does not recognize but is
	// configured to pass through rather than reject (see lib/aricbor's
	// allow_unknown_tags decode option).
	RawCBOR []byte
)

func (Bool) isPrimitive()       {}
func (Uint64) isPrimitive()     {}
func (Int64) isPrimitive()      {}
func (Uvast) isPrimitive()      {}
func (Vast) isPrimitive()       {}
func (Real32) isPrimitive()     {}
func (Real64) isPrimitive()     {}
func (Text) isPrimitive()       {}
func (Bytes) isPrimitive()      {}
func (Timepoint) isPrimitive()  {}
func (Timeperiod) isPrimitive() {}
func (RawCBOR) isPrimitive()    {}

// builtinOf reports the BuiltinType a bare (non-structured) primitive's Go
// type corresponds to, for structural validation in NewLiteral.
func builtinOf(p Primitive) (BuiltinType, bool) {
	switch p.(type) {
	case Bool:
		return TypeBool, true
	case Uint64:
		return TypeUint, true
	case Int64:
		return TypeInt, true
	case Uvast:
		return TypeUvast, true
	case Vast:
		return TypeVast, true
	case Real32:
		return TypeReal32, true
	case Real64:
		return TypeReal64, true
	case Text:
		return TypeTextstr, true
	case Bytes:
		return TypeBytestr, true
	case Timepoint:
		return TypeTP, true
	case Timeperiod:
		return TypeTD, true
	case RawCBOR:
		return TypeCBOR, true
	case *AC:
		return TypeAC, true
	case *AM:
		return TypeAM, true
	case *Table:
		return TypeTBL, true
	case *Tblt:
		return TypeTblt, true
	case *ExecSet:
		return TypeExecSet, true
	case *RptSet:
		return TypeRptSet, true
	}
	return 0, false
}
