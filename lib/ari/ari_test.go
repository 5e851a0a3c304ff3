// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ari

import "testing"

func TestUndefinedEqualsUndefined(t *testing.T) {
	if !Equal(Undefined{}, Undefined{}) {
		t.Error("Undefined should equal Undefined")
	}
}

func TestNullNotEqualUndefined(t *testing.T) {
	if Equal(Null{}, Undefined{}) {
		t.Error("Null should not equal Undefined")
	}
}

func TestLiteralTypeMismatchRejected(t *testing.T) {
	_, err := NewLiteral(BuiltinRef(TypeInt), Text("nope"))
	if err == nil {
		t.Fatal("expected InvariantViolation for mismatched literal type")
	}
}

func TestRealNaNNeverEqual(t *testing.T) {
	nan := NewReal64(nanValue())
	if Equal(nan, nan) {
		t.Error("NaN literal must not equal itself")
	}
}

func nanValue() float64 {
	var zero float64
	return zero / zero
}

func TestIntLiteralEquality(t *testing.T) {
	a := NewInt64(-7)
	b := NewInt64(-7)
	c := NewInt64(8)
	if !Equal(a, b) {
		t.Error("equal int literals should compare equal")
	}
	if Equal(a, c) {
		t.Error("different int literals should not compare equal")
	}
}

func TestAMRejectsDuplicateKeys(t *testing.T) {
	key := NewInt64(1)
	_, err := NewAM([]AMPair{
		{Key: key, Value: NewText("a")},
		{Key: NewInt64(1), Value: NewText("b")},
	})
	if err == nil {
		t.Fatal("expected InvariantViolation for duplicate AM key")
	}
}

func TestAMPreservesInsertionOrder(t *testing.T) {
	m, err := NewAM([]AMPair{
		{Key: NewInt64(2), Value: NewText("second")},
		{Key: NewInt64(1), Value: NewText("first")},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Pairs) != 2 || !Equal(m.Pairs[0].Key, NewInt64(2)) {
		t.Error("AM must preserve insertion order, not sort keys")
	}
}

func TestTableRowCountMustBeMultipleOfColumns(t *testing.T) {
	_, err := NewTable(2, nil, []ARI{NewInt64(1), NewInt64(2), NewInt64(3)})
	if err == nil {
		t.Fatal("expected InvariantViolation for misaligned row data")
	}
}

func TestTableCellAddressing(t *testing.T) {
	tbl, err := NewTable(2, nil, []ARI{
		NewInt64(1), NewInt64(2),
		NewInt64(3), NewInt64(4),
	})
	if err != nil {
		t.Fatal(err)
	}
	if tbl.NumRows() != 2 {
		t.Fatalf("expected 2 rows, got %d", tbl.NumRows())
	}
	if !Equal(tbl.Cell(1, 0), NewInt64(3)) {
		t.Error("Cell(1,0) should be the first value of the second row")
	}
}

func TestReferenceRejectsUndefinedParam(t *testing.T) {
	_, err := NewReference(ObjectRef{
		Org:     Symbolic("example"),
		Model:   Symbolic("mod"),
		ObjType: ObjCtrl,
		Name:    Symbolic("reset"),
		Params:  []ARI{Undefined{}},
	})
	if err == nil {
		t.Fatal("expected InvariantViolation for undefined actual parameter")
	}
}

func TestReferenceEquality(t *testing.T) {
	a, err := NewReference(ObjectRef{Org: Symbolic("example"), Model: Symbolic("mod"), ObjType: ObjCtrl, Name: Symbolic("reset")})
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewReference(ObjectRef{Org: Symbolic("example"), Model: Symbolic("mod"), ObjType: ObjCtrl, Name: Symbolic("reset")})
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(a, b) {
		t.Error("identical object references should compare equal")
	}
}

func TestExecSetEquality(t *testing.T) {
	nonce := NewBytes([]byte{1, 2, 3})
	target, _ := NewReference(ObjectRef{Org: Symbolic("example"), Model: Symbolic("mod"), ObjType: ObjCtrl, Name: Symbolic("reset")})
	a := MustLiteral(BuiltinRef(TypeExecSet), NewExecSet(nonce, []ARI{target}))
	b := MustLiteral(BuiltinRef(TypeExecSet), NewExecSet(nonce, []ARI{target}))
	if !Equal(a, b) {
		t.Error("execsets with the same nonce and targets should compare equal")
	}
}
