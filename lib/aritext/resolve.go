// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package aritext

import (
	"github.com/dtnma-ace/ace/lib/adm"
	"github.com/dtnma-ace/ace/lib/ari"
	"github.com/dtnma-ace/ace/lib/arierr"
)

// ResolveOptions configures catalog resolution.
type ResolveOptions struct {
	// CurrentOrg grounds the org of the supplemented relative object
	// path forms ("./model/TYPE/name", "../model/TYPE/name"), which both
	// name the model explicitly. Resolve does not consult CurrentModel.
	CurrentOrg   ari.Ident
	CurrentModel ari.Ident
}

// Resolve walks a parsed ARI and resolves its object references: relative
// paths are grounded against opts.CurrentOrg and, when cat is non-nil,
// every visited reference is checked to name an existing catalog object
// (NotFoundError otherwise). References are returned as written; Resolve
// does not fill in enum forms or check actual parameters against formals.
// It visits references at top level and inside AC, AM and EXECSET
// literals, not those inside TBL or RPTSET literals or actual parameters.
func Resolve(a ari.ARI, cat *adm.Catalog, opts ResolveOptions) (ari.ARI, error) {
	switch v := a.(type) {
	case ari.Undefined, ari.Null, ari.Literal:
		return resolveWithinLiteral(v, cat, opts)
	case ari.Reference:
		return resolveReference(v, cat, opts)
	}
	return nil, arierr.InvariantViolation("aritext: unknown ARI kind")
}

func resolveWithinLiteral(a ari.ARI, cat *adm.Catalog, opts ResolveOptions) (ari.ARI, error) {
	lit, ok := a.(ari.Literal)
	if !ok {
		return a, nil
	}
	switch val := lit.Value().(type) {
	case *ari.AC:
		items := make([]ari.ARI, len(val.Items))
		for i, item := range val.Items {
			resolved, err := Resolve(item, cat, opts)
			if err != nil {
				return nil, err
			}
			items[i] = resolved
		}
		return ari.MustLiteral(lit.Type(), ari.NewAC(items)), nil
	case *ari.AM:
		pairs := make([]ari.AMPair, len(val.Pairs))
		for i, p := range val.Pairs {
			k, err := Resolve(p.Key, cat, opts)
			if err != nil {
				return nil, err
			}
			v, err := Resolve(p.Value, cat, opts)
			if err != nil {
				return nil, err
			}
			pairs[i] = ari.AMPair{Key: k, Value: v}
		}
		m, err := ari.NewAM(pairs)
		if err != nil {
			return nil, err
		}
		return ari.MustLiteral(lit.Type(), m), nil
	case *ari.ExecSet:
		targets := make([]ari.ARI, len(val.Targets))
		for i, t := range val.Targets {
			resolved, err := Resolve(t, cat, opts)
			if err != nil {
				return nil, err
			}
			targets[i] = resolved
		}
		return ari.MustLiteral(lit.Type(), ari.NewExecSet(val.Nonce, targets)), nil
	default:
		return a, nil
	}
}

func resolveReference(ref ari.Reference, cat *adm.Catalog, opts ResolveOptions) (ari.ARI, error) {
	r := ref.Ref()

	if r.Org.Text == "." || r.Org.Text == ".." {
		r.Org = opts.CurrentOrg
		if r.Org.Text == "" && !r.Org.HasEnum {
			return nil, arierr.NotFound("aritext: relative reference with no current org in scope")
		}
	}

	if cat != nil {
		if _, err := cat.ResolveByName(r); err != nil {
			return nil, err
		}
	}
	resolved, err := ari.NewReference(r)
	if err != nil {
		return nil, err
	}
	return resolved, nil
}
