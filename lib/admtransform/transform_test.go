// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package admtransform

import (
	"testing"

	"github.com/dtnma-ace/ace/lib/adm"
	"github.com/dtnma-ace/ace/lib/ari"
	"github.com/dtnma-ace/ace/lib/aritype"
)

func TestAddEnumAssignsSmallestUnusedPerBucket(t *testing.T) {
	m := adm.Module{
		Org: ari.Symbolic("example"), Name: ari.Symbolic("mod"),
		Objects: []adm.Object{
			adm.ConstObject{Name: ari.Symbolic("zeta"), Enum: adm.NoEnum, Type: aritype.Builtin{Code: ari.TypeInt}, Value: ari.NewInt64(1)},
			adm.ConstObject{Name: ari.Symbolic("alpha"), Enum: 0, Type: aritype.Builtin{Code: ari.TypeInt}, Value: ari.NewInt64(1)},
			adm.ConstObject{Name: ari.Symbolic("beta"), Enum: adm.NoEnum, Type: aritype.Builtin{Code: ari.TypeInt}, Value: ari.NewInt64(1)},
			adm.CtrlObject{Name: ari.Symbolic("reset"), Enum: adm.NoEnum},
		},
	}

	out := AddEnum(m)

	byName := make(map[string]int)
	for _, obj := range out.Objects {
		e, _ := enumOf(obj)
		byName[adm.ObjectName(obj).String()] = e
	}

	// alpha already occupies CONST bucket slot 0; beta and zeta are
	// missing and must get 1 and 2 in sorted-name order (beta < zeta).
	if byName["alpha"] != 0 {
		t.Errorf("alpha enum = %d, want 0 (pre-assigned)", byName["alpha"])
	}
	if byName["beta"] != 1 {
		t.Errorf("beta enum = %d, want 1", byName["beta"])
	}
	if byName["zeta"] != 2 {
		t.Errorf("zeta enum = %d, want 2", byName["zeta"])
	}
	if byName["reset"] != 0 {
		t.Errorf("reset (CTRL bucket, independent of CONST) enum = %d, want 0", byName["reset"])
	}

	// Original module is untouched.
	for _, obj := range m.Objects {
		if obj2, ok := obj.(adm.ConstObject); ok && obj2.Name.String() == "beta" {
			if obj2.Enum != adm.NoEnum {
				t.Errorf("AddEnum mutated the input module's beta object")
			}
		}
	}
}

func TestCanonicalizeOrdersByTypeThenEnum(t *testing.T) {
	m := adm.Module{
		Org: ari.Symbolic("example"), Name: ari.Symbolic("mod"),
		Objects: []adm.Object{
			adm.VarObject{Name: ari.Symbolic("v1"), Enum: 0, Type: aritype.Builtin{Code: ari.TypeInt}, Initial: ari.NewInt64(0)},
			adm.ConstObject{Name: ari.Symbolic("c2"), Enum: 2, Type: aritype.Builtin{Code: ari.TypeInt}, Value: ari.NewInt64(1)},
			adm.ConstObject{Name: ari.Symbolic("c1"), Enum: 1, Type: aritype.Builtin{Code: ari.TypeInt}, Value: ari.NewInt64(1)},
			adm.CtrlObject{Name: ari.Symbolic("ctrl0"), Enum: 0},
		},
	}

	out := Canonicalize(m)

	wantOrder := []string{"c1", "c2", "ctrl0", "v1"}
	if len(out.Objects) != len(wantOrder) {
		t.Fatalf("got %d objects, want %d", len(out.Objects), len(wantOrder))
	}
	for i, name := range wantOrder {
		got := adm.ObjectName(out.Objects[i]).String()
		if got != name {
			t.Errorf("position %d: got %q, want %q", i, got, name)
		}
	}
}

func TestLintHyphenatedNamesFlagsViolations(t *testing.T) {
	m := adm.Module{
		Org: ari.Symbolic("example"), Name: ari.Symbolic("mod"),
		Objects: []adm.Object{
			adm.CtrlObject{Name: ari.Symbolic("good-name"), Enum: 0},
			adm.CtrlObject{Name: ari.Symbolic("BadName"), Enum: 1},
			adm.CtrlObject{Name: ari.Symbolic("-leading"), Enum: 2},
			adm.CtrlObject{Name: ari.Symbolic("double--hyphen"), Enum: 3},
		},
	}

	report := LintHyphenatedNames(m)
	if len(report) != 3 {
		t.Fatalf("got %d findings, want 3: %v", len(report), report)
	}
	subjects := make(map[string]bool)
	for _, f := range report {
		subjects[f.Subject] = true
	}
	for _, want := range []string{"CTRL/BadName", "CTRL/-leading", "CTRL/double--hyphen"} {
		if !subjects[want] {
			t.Errorf("missing finding for %q: %v", want, report)
		}
	}
	if subjects["CTRL/good-name"] {
		t.Errorf("good-name should not be flagged")
	}
}

func TestValidateFlagsTypeMismatch(t *testing.T) {
	m := adm.Module{
		Org: ari.Symbolic("example"), Name: ari.Symbolic("mod"),
		Objects: []adm.Object{
			adm.ConstObject{Name: ari.Symbolic("ok"), Enum: 0, Type: aritype.Builtin{Code: ari.TypeInt}, Value: ari.NewInt64(5)},
			adm.ConstObject{Name: ari.Symbolic("bad"), Enum: 1, Type: aritype.Builtin{Code: ari.TypeInt}, Value: ari.NewText("not an int")},
		},
	}

	report := Validate(m)
	if len(report) != 1 {
		t.Fatalf("got %d findings, want 1: %v", len(report), report)
	}
	if report[0].Subject != "CONST/bad" {
		t.Errorf("finding subject = %q, want CONST/bad", report[0].Subject)
	}
}

func TestValidatePassesCleanModule(t *testing.T) {
	m := adm.Module{
		Org: ari.Symbolic("example"), Name: ari.Symbolic("mod"),
		Objects: []adm.Object{
			adm.ConstObject{Name: ari.Symbolic("ok"), Enum: 0, Type: aritype.Builtin{Code: ari.TypeInt}, Value: ari.NewInt64(5)},
			adm.VarObject{Name: ari.Symbolic("v"), Enum: 0, Type: aritype.Builtin{Code: ari.TypeTextstr}, Initial: ari.NewText("hi")},
		},
	}

	if report := Validate(m); !report.OK() {
		t.Fatalf("expected clean report, got %v", report)
	}
}
