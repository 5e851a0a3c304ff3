// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package admtransform implements the pure Module -> Module and
// Module -> []Finding transforms the ace_adm driver applies to a
// loaded ADM module: enum assignment, canonical reordering, naming
// lint, and declared-type validation.
package admtransform

import (
	"sort"

	"github.com/dtnma-ace/ace/lib/adm"
	"github.com/dtnma-ace/ace/lib/ari"
	"github.com/dtnma-ace/ace/lib/arierr"
	"github.com/dtnma-ace/ace/lib/aritype"
)

// AddEnum assigns a unique enum to every object in m missing one
// (Enum == adm.NoEnum), choosing the smallest unused nonnegative
// integer within that object's type bucket. Objects are visited in
// sorted-name order within each bucket so the assignment is
// deterministic regardless of the module's original object order. m is
// not mutated; the returned Module is an independent copy.
func AddEnum(m adm.Module) adm.Module {
	used := make(map[ari.ObjectType]map[int]bool)
	for _, obj := range m.Objects {
		typ := adm.ObjectType(obj)
		if used[typ] == nil {
			used[typ] = make(map[int]bool)
		}
		if e, ok := enumOf(obj); ok && e != adm.NoEnum {
			used[typ][e] = true
		}
	}

	byType := make(map[ari.ObjectType][]int)
	for i, obj := range m.Objects {
		typ := adm.ObjectType(obj)
		byType[typ] = append(byType[typ], i)
	}

	out := m
	out.Objects = append([]adm.Object(nil), m.Objects...)
	for typ, indices := range byType {
		sort.Slice(indices, func(a, b int) bool {
			return adm.ObjectName(out.Objects[indices[a]]).String() < adm.ObjectName(out.Objects[indices[b]]).String()
		})
		next := 0
		nextFree := func() int {
			for used[typ][next] {
				next++
			}
			v := next
			used[typ][v] = true
			next++
			return v
		}
		for _, i := range indices {
			if e, ok := enumOf(out.Objects[i]); ok && e == adm.NoEnum {
				out.Objects[i] = withEnum(out.Objects[i], nextFree())
			}
		}
	}
	return out
}

// enumOf extracts the Enum field of any catalog object.
func enumOf(obj adm.Object) (int, bool) {
	switch o := obj.(type) {
	case adm.ConstObject:
		return o.Enum, true
	case adm.CtrlObject:
		return o.Enum, true
	case adm.EddObject:
		return o.Enum, true
	case adm.VarObject:
		return o.Enum, true
	case adm.IdentObject:
		return o.Enum, true
	case adm.OperObject:
		return o.Enum, true
	case adm.SbrObject:
		return o.Enum, true
	case adm.TbrObject:
		return o.Enum, true
	case adm.TypedefObject:
		return o.Enum, true
	}
	return 0, false
}

// withEnum returns a copy of obj with its Enum field set to e.
func withEnum(obj adm.Object, e int) adm.Object {
	switch o := obj.(type) {
	case adm.ConstObject:
		o.Enum = e
		return o
	case adm.CtrlObject:
		o.Enum = e
		return o
	case adm.EddObject:
		o.Enum = e
		return o
	case adm.VarObject:
		o.Enum = e
		return o
	case adm.IdentObject:
		o.Enum = e
		return o
	case adm.OperObject:
		o.Enum = e
		return o
	case adm.SbrObject:
		o.Enum = e
		return o
	case adm.TbrObject:
		o.Enum = e
		return o
	case adm.TypedefObject:
		o.Enum = e
		return o
	}
	return obj
}

// typeOrder is the canonical object-group ordering Canonicalize imposes:
// CONST, CTRL, EDD, IDENT, OPER, SBR, TBR, TYPEDEF, VAR — the same
// ascending order as the in-memory ari.ObjectType values.
var typeOrder = []ari.ObjectType{
	ari.ObjConst, ari.ObjCtrl, ari.ObjEdd, ari.ObjIdent,
	ari.ObjOper, ari.ObjSbr, ari.ObjTbr, ari.ObjTypedef, ari.ObjVar,
}

// Canonicalize reorders m's objects into a stable, diff-friendly
// ordering: module-level scalars are unaffected (Org/Name/Revision/
// ModuleEnum carry no sequence of their own), then object groups appear
// in typeOrder, then objects within a group sort by enum ascending
// (unassigned-enum objects, if any slipped past AddEnum, sort after all
// assigned ones, ordered by name). m is not mutated.
func Canonicalize(m adm.Module) adm.Module {
	groups := make(map[ari.ObjectType][]adm.Object)
	for _, obj := range m.Objects {
		typ := adm.ObjectType(obj)
		groups[typ] = append(groups[typ], obj)
	}

	out := m
	out.Objects = nil
	for _, typ := range typeOrder {
		group := groups[typ]
		sort.SliceStable(group, func(a, b int) bool {
			ea, aok := enumOf(group[a])
			eb, bok := enumOf(group[b])
			aAssigned := aok && ea != adm.NoEnum
			bAssigned := bok && eb != adm.NoEnum
			if aAssigned != bAssigned {
				return aAssigned
			}
			if aAssigned && bAssigned {
				return ea < eb
			}
			return adm.ObjectName(group[a]).String() < adm.ObjectName(group[b]).String()
		})
		out.Objects = append(out.Objects, group...)
	}
	return out
}

// LintHyphenatedNames reports every object whose symbolic name is not
// hyphen-cased: lowercase ASCII letters, digits, and hyphens only, never
// starting or ending with a hyphen and never containing a run of two or
// more. This is IETF YANG-module naming convention, not something
// spec.md's text/wire grammars enforce, so it is surfaced as lint
// findings rather than a parse or encode failure.
func LintHyphenatedNames(m adm.Module) arierr.LintReport {
	var report arierr.LintReport
	for _, obj := range m.Objects {
		name := adm.ObjectName(obj)
		if name.IsNumeric() {
			continue
		}
		if reason, bad := hyphenNameViolation(name.Text); bad {
			report = append(report, arierr.Finding{
				Category: arierr.CategoryInvariant,
				Subject:  adm.ObjectType(obj).String() + "/" + name.Text,
				Message:  reason,
			})
		}
	}
	return report
}

func hyphenNameViolation(name string) (string, bool) {
	if name == "" {
		return "name is empty", true
	}
	if name[0] == '-' || name[len(name)-1] == '-' {
		return "name must not start or end with a hyphen", true
	}
	prevHyphen := false
	for _, r := range name {
		switch {
		case r == '-':
			if prevHyphen {
				return "name must not contain consecutive hyphens", true
			}
			prevHyphen = true
			continue
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			prevHyphen = false
		default:
			return "name must use only lowercase letters, digits, and hyphens", true
		}
	}
	return "", false
}

// Validate applies the type system (lib/aritype) to every CONST's
// declared value and every VAR's initial value, collecting a
// TypeMismatch finding for each value that does not satisfy its
// declared type instead of aborting on the first one. TYPEDEF objects
// are not checked, and reference-valued CONST/VAR values are skipped:
// Validate operates on a single module snapshot and has no catalog to
// resolve references.
func Validate(m adm.Module) arierr.LintReport {
	var report arierr.LintReport
	for _, obj := range m.Objects {
		switch o := obj.(type) {
		case adm.ConstObject:
			checkDeclaredValue(&report, "CONST/"+o.Name.String(), o.Type, o.Value)
		case adm.VarObject:
			checkDeclaredValue(&report, "VAR/"+o.Name.String(), o.Type, o.Initial)
		case adm.TypedefObject:
			if _, ok := o.Expr.(aritype.Alias); ok {
				continue
			}
		}
	}
	return report
}

func checkDeclaredValue(report *arierr.LintReport, subject string, typ aritype.Expr, value ari.ARI) {
	lit, ok := value.(ari.Literal)
	if !ok {
		// A reference-valued CONST/VAR default cannot be checked without
		// a catalog; Validate is a single-module, catalog-free transform.
		return
	}
	if !aritype.Compatible(lit.Value(), typ, nil) {
		*report = append(*report, arierr.Finding{
			Category: arierr.CategoryType,
			Subject:  subject,
			Message:  "declared value is not compatible with the declared type",
		})
	}
}
