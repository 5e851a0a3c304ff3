// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package aritext

import (
	"strings"
	"testing"
	"time"

	"github.com/dtnma-ace/ace/lib/adm"
	"github.com/dtnma-ace/ace/lib/ari"
)

func TestParseNull(t *testing.T) {
	v, err := Parse("ari:/NULL")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := v.(ari.Null); !ok {
		t.Fatalf("expected ari.Null, got %T", v)
	}
}

func TestParseFormatRoundTripInt(t *testing.T) {
	v, err := Parse("ari:/INT/-7")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	lit, ok := v.(ari.Literal)
	if !ok {
		t.Fatalf("expected ari.Literal, got %T", v)
	}
	if lit.Type().Builtin != ari.TypeInt {
		t.Fatalf("expected INT type, got %s", lit.Type())
	}
	n, ok := lit.Value().(ari.Int64)
	if !ok || int64(n) != -7 {
		t.Fatalf("expected Int64(-7), got %#v", lit.Value())
	}

	out, err := Format(v, nil, FormatOptions{})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if out != "/INT/-7" {
		t.Fatalf("unexpected format: %q", out)
	}
}

func TestParseBareBool(t *testing.T) {
	v, err := Parse("ari:true")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	lit, ok := v.(ari.Literal)
	if !ok || lit.Type().Builtin != ari.TypeBool {
		t.Fatalf("expected BOOL literal, got %#v", v)
	}
}

func TestParseACLiteral(t *testing.T) {
	v, err := Parse("ari:/AC/(/INT/1,/INT/2,/INT/3)")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	lit, ok := v.(ari.Literal)
	if !ok || lit.Type().Builtin != ari.TypeAC {
		t.Fatalf("expected AC literal, got %#v", v)
	}
	ac, ok := lit.Value().(*ari.AC)
	if !ok || len(ac.Items) != 3 {
		t.Fatalf("expected 3-item AC, got %#v", lit.Value())
	}
}

func TestParseAMDuplicateKeyFails(t *testing.T) {
	_, err := Parse(`ari:/AM/(/TEXTSTR/"a"=/INT/1,/TEXTSTR/"a"=/INT/2)`)
	if err == nil {
		t.Fatal("expected duplicate-key error, got nil")
	}
}

func TestParseAMPreservesOrder(t *testing.T) {
	v, err := Parse(`ari:/AM/(/INT/2=/INT/20,/INT/1=/INT/10)`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	lit := v.(ari.Literal)
	am := lit.Value().(*ari.AM)
	if len(am.Pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(am.Pairs))
	}
	firstKey := am.Pairs[0].Key.(ari.Literal).Value().(ari.Int64)
	if int64(firstKey) != 2 {
		t.Fatalf("expected insertion order preserved (first key 2), got %v", firstKey)
	}
}

func TestParseObjectReference(t *testing.T) {
	v, err := Parse("ari://example/mod/CONST/foo")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ref, ok := v.(ari.Reference)
	if !ok {
		t.Fatalf("expected Reference, got %T", v)
	}
	r := ref.Ref()
	if r.Org.Text != "example" || r.Model.Text != "mod" || r.ObjType != ari.ObjConst || r.Name.Text != "foo" {
		t.Fatalf("unexpected object ref: %#v", r)
	}
}

func TestParseObjectReferenceWithRevision(t *testing.T) {
	v, err := Parse("ari://example/mod@2025-01-02/CTRL/do_thing")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	ref := v.(ari.Reference).Ref()
	if ref.Rev == nil || ref.Rev.Year != 2025 || ref.Rev.Month != 1 || ref.Rev.Day != 2 {
		t.Fatalf("unexpected revision: %#v", ref.Rev)
	}
}

func TestParseByteString(t *testing.T) {
	v, err := Parse(`ari:/BYTESTR/h'0102ff'`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	lit := v.(ari.Literal)
	b := lit.Value().(ari.Bytes)
	want := []byte{0x01, 0x02, 0xff}
	if len(b) != len(want) {
		t.Fatalf("unexpected bytes: %x", b)
	}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("unexpected bytes: %x", b)
		}
	}
}

func TestParseTimeperiod(t *testing.T) {
	v, err := Parse("ari:/TD/P1DT2H3M4S")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	lit := v.(ari.Literal)
	d := time.Duration(lit.Value().(ari.Timeperiod))
	want := (26*time.Hour + 3*time.Minute + 4*time.Second)
	if d != want {
		t.Fatalf("unexpected duration: got %v, want %v", d, want)
	}
}

func TestResolveRejectsUnknownObject(t *testing.T) {
	v, err := Parse("ari://example/mod/CONST/missing")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	cat := adm.NewCatalog()
	if _, err := Resolve(v, cat, ResolveOptions{}); err == nil {
		t.Fatal("expected NotFound error for unresolved catalog object")
	}
}

func TestResolveRelativePath(t *testing.T) {
	sample := `
org: example
name: mod
module_enum: 1
consts:
  - name: foo
    enum: 1
    type:
      builtin: INT
    value:
      type: INT
      raw: "42"
`
	m, err := adm.FromYAML(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	cat := adm.NewCatalog()
	if err := cat.LoadModule(m); err != nil {
		t.Fatalf("LoadModule: %v", err)
	}

	v, err := Parse("ari:./mod/CONST/foo")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	resolved, err := Resolve(v, cat, ResolveOptions{CurrentOrg: ari.Symbolic("example")})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	ref, ok := resolved.(ari.Reference)
	if !ok {
		t.Fatalf("expected Reference, got %T", resolved)
	}
	if ref.Ref().Org.Text != "example" {
		t.Fatalf("expected relative org to resolve to current org, got %q", ref.Ref().Org.Text)
	}
}

func TestFormatResolvesNumericNameFromCatalog(t *testing.T) {
	sample := `
org: example
name: mod
module_enum: 1
consts:
  - name: foo
    enum: 7
    type:
      builtin: INT
    value:
      type: INT
      raw: "42"
`
	m, err := adm.FromYAML(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	cat := adm.NewCatalog()
	if err := cat.LoadModule(m); err != nil {
		t.Fatalf("LoadModule: %v", err)
	}

	ref, err := ari.NewReference(ari.ObjectRef{
		Org: ari.Symbolic("example"), Model: ari.Symbolic("mod"),
		ObjType: ari.ObjConst, Name: ari.Numeric(7),
	})
	if err != nil {
		t.Fatalf("NewReference: %v", err)
	}

	out, err := Format(ref, cat, FormatOptions{})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if out != "//example/mod/CONST/foo" {
		t.Fatalf("expected catalog-resolved symbolic name, got %q", out)
	}
}

func TestFormatNumericNames(t *testing.T) {
	ref, err := ari.NewReference(ari.ObjectRef{
		Org: ari.Ident{Enum: 1, HasEnum: true}, Model: ari.Ident{Enum: 2, HasEnum: true},
		ObjType: ari.ObjConst, Name: ari.Ident{Enum: 3, HasEnum: true},
	})
	if err != nil {
		t.Fatalf("NewReference: %v", err)
	}
	out, err := Format(ref, nil, FormatOptions{NumericNames: true})
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if out != "//1/2/CONST/3" {
		t.Fatalf("unexpected numeric-name format: %q", out)
	}
}
