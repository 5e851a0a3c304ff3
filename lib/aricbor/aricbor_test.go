// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package aricbor

import (
	"bytes"
	"encoding/hex"
	"testing"
	"time"

	"github.com/dtnma-ace/ace/lib/ari"
	"github.com/dtnma-ace/ace/lib/wireconfig"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex fixture: %v", err)
	}
	return b
}

// TestEncodeExecSetInspect reproduces the end-to-end EXECSET scenario:
// a single CTRL invocation, parameterized by an EDD reference, executed
// under a nonce.
func TestEncodeExecSetInspect(t *testing.T) {
	cfg := wireconfig.Default()

	eddRef, err := ari.NewReference(ari.ObjectRef{
		Org: ari.Numeric(1), Model: ari.Numeric(1), ObjType: ari.ObjEdd, Name: ari.Numeric(1),
	})
	if err != nil {
		t.Fatalf("NewReference(edd): %v", err)
	}
	ctrlRef, err := ari.NewReference(ari.ObjectRef{
		Org: ari.Numeric(1), Model: ari.Numeric(1), ObjType: ari.ObjCtrl, Name: ari.Numeric(5),
		Params: []ari.ARI{eddRef},
	})
	if err != nil {
		t.Fatalf("NewReference(ctrl): %v", err)
	}
	execSet := ari.MustLiteral(ari.BuiltinRef(ari.TypeExecSet), ari.NewExecSet(ari.NewInt64(123), []ari.ARI{ctrlRef}))

	got, err := Encode(execSet, nil, cfg, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := mustHex(t, "821482187B8501012205818401012301")
	if !bytes.Equal(got, want) {
		t.Fatalf("unexpected wire bytes:\n got  %X\n want %X", got, want)
	}

	back, err := Decode(got, nil, cfg, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !ari.Equal(back, execSet) {
		t.Fatalf("round trip mismatch: got %#v, want %#v", back, execSet)
	}
}

func TestEncodeNull(t *testing.T) {
	cfg := wireconfig.Default()
	got, err := Encode(ari.Null{}, nil, cfg, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := mustHex(t, "F6")
	if !bytes.Equal(got, want) {
		t.Fatalf("unexpected wire bytes: got %X, want %X", got, want)
	}
	back, err := Decode(got, nil, cfg, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if _, ok := back.(ari.Null); !ok {
		t.Fatalf("expected ari.Null, got %#v", back)
	}
}

func TestEncodeNegativeInt(t *testing.T) {
	cfg := wireconfig.Default()
	got, err := Encode(ari.NewInt64(-7), nil, cfg, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := mustHex(t, "820426")
	if !bytes.Equal(got, want) {
		t.Fatalf("unexpected wire bytes: got %X, want %X", got, want)
	}
	back, err := Decode(got, nil, cfg, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	lit, ok := back.(ari.Literal)
	if !ok || lit.Type().Builtin != ari.TypeInt || int64(lit.Value().(ari.Int64)) != -7 {
		t.Fatalf("unexpected decode: %#v", back)
	}
}

func TestRoundTripAC(t *testing.T) {
	cfg := wireconfig.Default()
	ac := ari.NewACLiteral([]ari.ARI{ari.NewInt64(1), ari.NewUint64(2), ari.NewText("three")})
	b, err := Encode(ac, nil, cfg, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(b, nil, cfg, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !ari.Equal(ac, back) {
		t.Fatalf("round trip mismatch: got %#v, want %#v", back, ac)
	}
}

func TestRoundTripAMPreservesOrder(t *testing.T) {
	cfg := wireconfig.Default()
	lit, err := ari.NewAMLiteral([]ari.AMPair{
		{Key: ari.NewInt64(2), Value: ari.NewText("b")},
		{Key: ari.NewInt64(1), Value: ari.NewText("a")},
	})
	if err != nil {
		t.Fatalf("NewAMLiteral: %v", err)
	}
	b, err := Encode(lit, nil, cfg, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(b, nil, cfg, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	am := back.(ari.Literal).Value().(*ari.AM)
	if len(am.Pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(am.Pairs))
	}
	firstKey := am.Pairs[0].Key.(ari.Literal).Value().(ari.Int64)
	if int64(firstKey) != 2 {
		t.Fatalf("expected insertion order preserved (first key 2), got %v", firstKey)
	}
}

func TestRoundTripTimepointAndTimeperiod(t *testing.T) {
	cfg := wireconfig.Default()
	tp := ari.NewTimepoint(time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC))
	b, err := Encode(tp, nil, cfg, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode(tp): %v", err)
	}
	back, err := Decode(b, nil, cfg, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode(tp): %v", err)
	}
	if !ari.Equal(tp, back) {
		t.Fatalf("tp round trip mismatch: got %#v, want %#v", back, tp)
	}

	td := ari.NewTimeperiod(26*time.Hour + 3*time.Minute + 4*time.Second + 500*time.Millisecond)
	b, err = Encode(td, nil, cfg, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode(td): %v", err)
	}
	back, err = Decode(b, nil, cfg, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode(td): %v", err)
	}
	if !ari.Equal(td, back) {
		t.Fatalf("td round trip mismatch: got %#v, want %#v", back, td)
	}
}

func TestRoundTripTable(t *testing.T) {
	cfg := wireconfig.Default()
	tbl, err := ari.NewTable(2, nil, []ari.ARI{
		ari.NewInt64(1), ari.NewText("a"),
		ari.NewInt64(2), ari.NewText("b"),
	})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	lit := ari.MustLiteral(ari.BuiltinRef(ari.TypeTBL), tbl)
	b, err := Encode(lit, nil, cfg, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(b, nil, cfg, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !ari.Equal(lit, back) {
		t.Fatalf("table round trip mismatch: got %#v, want %#v", back, lit)
	}
}

func TestRoundTripReferenceWithRevision(t *testing.T) {
	cfg := wireconfig.Default()
	ref, err := ari.NewReference(ari.ObjectRef{
		Org: ari.Symbolic("example"), Model: ari.Symbolic("mod"),
		Rev: &ari.Revision{Year: 2025, Month: 1, Day: 2},
		ObjType: ari.ObjConst, Name: ari.Symbolic("foo"),
	})
	if err != nil {
		t.Fatalf("NewReference: %v", err)
	}
	b, err := Encode(ref, nil, cfg, EncodeOptions{})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Decode(b, nil, cfg, DecodeOptions{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !ari.Equal(ref, back) {
		t.Fatalf("reference round trip mismatch: got %#v, want %#v", back, ref)
	}
}

func TestDecodeUnknownObjectTypeCodeFails(t *testing.T) {
	cfg := wireconfig.Default()
	// [1, 1, -14, 1]: -14 is not in the object-type wire table.
	raw := writeArray([][]byte{encInt(1), encInt(1), encInt(-14), encInt(1)})
	if _, err := Decode(raw, nil, cfg, DecodeOptions{}); err == nil {
		t.Fatal("expected decode error for unknown object type code")
	}
}
