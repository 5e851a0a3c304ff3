// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adm

import (
	"strings"
	"testing"

	"github.com/dtnma-ace/ace/lib/ari"
)

const sampleModuleYAML = `
org: example
name: demo
revision: 2024-01-01
module_enum: 1
consts:
  - name: max-retries
    enum: 0
    type: {builtin: UINT}
    value: {type: UINT, raw: "5"}
ctrls:
  - name: reset
    enum: 0
    formals:
      - name: level
        type: {builtin: INT}
typedefs:
  - name: small-int
    enum: 0
    expr:
      use:
        base: {builtin: INT}
        constraints:
          - range: {lo: 0, hi: 100}
`

func loadSample(t *testing.T) *Catalog {
	t.Helper()
	mod, err := FromYAML(strings.NewReader(sampleModuleYAML))
	if err != nil {
		t.Fatalf("FromYAML: %v", err)
	}
	cat := NewCatalog()
	if err := cat.LoadModule(mod); err != nil {
		t.Fatalf("LoadModule: %v", err)
	}
	return cat
}

func TestLoadAndResolveByName(t *testing.T) {
	cat := loadSample(t)
	obj, err := cat.ResolveByName(ari.ObjectRef{
		Org: ari.Symbolic("example"), Model: ari.Symbolic("demo"),
		ObjType: ari.ObjConst, Name: ari.Symbolic("max-retries"),
	})
	if err != nil {
		t.Fatalf("ResolveByName: %v", err)
	}
	c, ok := obj.(ConstObject)
	if !ok {
		t.Fatalf("expected ConstObject, got %T", obj)
	}
	if !ari.Equal(c.Value, ari.NewUint64(5)) {
		t.Errorf("expected value 5, got %v", c.Value)
	}
}

func TestResolveMissingObject(t *testing.T) {
	cat := loadSample(t)
	_, err := cat.ResolveByName(ari.ObjectRef{
		Org: ari.Symbolic("example"), Model: ari.Symbolic("demo"),
		ObjType: ari.ObjConst, Name: ari.Symbolic("does-not-exist"),
	})
	if err == nil {
		t.Fatal("expected NotFoundError")
	}
}

func TestResolveAmbiguousAcrossModules(t *testing.T) {
	cat := loadSample(t)
	mod2, err := FromYAML(strings.NewReader(strings.Replace(sampleModuleYAML, "name: demo", "name: other", 1)))
	if err != nil {
		t.Fatal(err)
	}
	mod2.ModuleEnum = 2
	if err := cat.LoadModule(mod2); err != nil {
		t.Fatal(err)
	}

	_, _, err = cat.ResolveAmbiguous(ari.ObjConst, ari.Symbolic("max-retries"))
	if err == nil {
		t.Fatal("expected AmbiguousReferenceError")
	}
}

func TestTypedefResolver(t *testing.T) {
	cat := loadSample(t)
	expr, err := cat.Typedef(ari.ObjectRef{
		Org: ari.Symbolic("example"), Model: ari.Symbolic("demo"),
		ObjType: ari.ObjTypedef, Name: ari.Symbolic("small-int"),
	})
	if err != nil {
		t.Fatalf("Typedef: %v", err)
	}
	if expr == nil {
		t.Fatal("expected non-nil expr")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	cat := loadSample(t)
	snap := cat.Snapshot()

	extra, err := FromYAML(strings.NewReader(strings.Replace(sampleModuleYAML, "name: demo", "name: extra", 1)))
	if err != nil {
		t.Fatal(err)
	}
	if err := cat.LoadModule(extra); err != nil {
		t.Fatal(err)
	}

	if len(snap.ListModules()) == len(cat.ListModules()) {
		t.Error("snapshot should not observe modules loaded after it was taken")
	}
}
