// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package aricbor

import (
	"time"

	"github.com/dtnma-ace/ace/lib/adm"
	"github.com/dtnma-ace/ace/lib/ari"
	"github.com/dtnma-ace/ace/lib/arierr"
	"github.com/dtnma-ace/ace/lib/wireconfig"
)

// EncodeOptions configures reference encoding. StrictResolve requires
// every Reference to resolve against cat before its wire form is
// emitted, failing the encode otherwise. PreferNumericNames substitutes
// a resolved enum for a reference's object name wherever cat can resolve
// one, producing the more compact numeric wire form even when the
// in-memory ARI carries a symbolic name; org and model are encoded as
// given.
type EncodeOptions struct {
	StrictResolve      bool
	PreferNumericNames bool
}

// Encode renders a to its CBOR wire form under cfg and opts. cat, if
// non-nil, is consulted for reference resolution per opts.
func Encode(a ari.ARI, cat *adm.Catalog, cfg wireconfig.Config, opts EncodeOptions) ([]byte, error) {
	return encodeARI(a, cat, cfg, opts)
}

func encodeARI(a ari.ARI, cat *adm.Catalog, cfg wireconfig.Config, opts EncodeOptions) ([]byte, error) {
	switch v := a.(type) {
	case ari.Undefined:
		return wireUndefined, nil
	case ari.Null:
		return wireNull, nil
	case ari.Literal:
		return encodeLiteral(v, cat, cfg, opts)
	case ari.Reference:
		return encodeReference(v.Ref(), cat, cfg, opts)
	}
	return nil, arierr.EncodeError("aricbor: unknown ARI kind %T", a)
}

func typeCodeItem(code ari.BuiltinType) []byte { return encUint(uint64(code)) }

func encodeLiteral(lit ari.Literal, cat *adm.Catalog, cfg wireconfig.Config, opts EncodeOptions) ([]byte, error) {
	typ := lit.Type()
	if !typ.IsBuiltin {
		return encodeBareValue(lit.Value(), cfg)
	}
	switch typ.Builtin {
	case ari.TypeBool:
		return encBool(bool(lit.Value().(ari.Bool))), nil
	case ari.TypeTextstr:
		return encText(string(lit.Value().(ari.Text))), nil
	case ari.TypeBytestr:
		return encBytes([]byte(lit.Value().(ari.Bytes))), nil
	case ari.TypeCBOR:
		// The stored value is already a complete encoded CBOR item
		// (opaque tag-unknown passthrough); no type_code wrapper is added.
		return []byte(lit.Value().(ari.RawCBOR)), nil
	case ari.TypeInt:
		return wrapLiteral(ari.TypeInt, encInt(int64(lit.Value().(ari.Int64)))), nil
	case ari.TypeUint:
		return wrapLiteral(ari.TypeUint, encUint(uint64(lit.Value().(ari.Uint64)))), nil
	case ari.TypeVast:
		return wrapLiteral(ari.TypeVast, encInt(int64(lit.Value().(ari.Vast)))), nil
	case ari.TypeUvast:
		return wrapLiteral(ari.TypeUvast, encUint(uint64(lit.Value().(ari.Uvast)))), nil
	case ari.TypeByte:
		// ari.Literal has no dedicated Go type for BYTE distinct from
		// UINT (see DESIGN.md); BYTE-typed literals carry an ari.Uint64
		// payload and are wrapped with the BYTE type code here.
		return wrapLiteral(ari.TypeByte, encUint(uint64(lit.Value().(ari.Uint64)))), nil
	case ari.TypeReal32:
		return wrapLiteral(ari.TypeReal32, encFloat32(float32(lit.Value().(ari.Real32)))), nil
	case ari.TypeReal64:
		return wrapLiteral(ari.TypeReal64, encFloat64(float64(lit.Value().(ari.Real64)))), nil
	case ari.TypeTP:
		t := time.Time(lit.Value().(ari.Timepoint))
		return wrapLiteral(ari.TypeTP, encodeTimepointValue(t, cfg)), nil
	case ari.TypeTD:
		d := time.Duration(lit.Value().(ari.Timeperiod))
		return wrapLiteral(ari.TypeTD, encodeTimeperiodValue(d, cfg)), nil
	case ari.TypeAC:
		ac := lit.Value().(*ari.AC)
		items := make([][]byte, len(ac.Items))
		for i, it := range ac.Items {
			b, err := encodeARI(it, cat, cfg, opts)
			if err != nil {
				return nil, err
			}
			items[i] = b
		}
		return wrapLiteral(ari.TypeAC, writeArray(items)), nil
	case ari.TypeAM:
		am := lit.Value().(*ari.AM)
		pairs := make([][2][]byte, len(am.Pairs))
		for i, p := range am.Pairs {
			k, err := encodeARI(p.Key, cat, cfg, opts)
			if err != nil {
				return nil, err
			}
			v, err := encodeARI(p.Value, cat, cfg, opts)
			if err != nil {
				return nil, err
			}
			pairs[i] = [2][]byte{k, v}
		}
		// Insertion order is preserved, not sorted by key bytes: see
		// DESIGN.md's "AM key ordering" decision.
		return wrapLiteral(ari.TypeAM, writeMapPairs(pairs)), nil
	case ari.TypeTBL:
		tbl := lit.Value().(*ari.Table)
		inner := make([][]byte, 0, 1+len(tbl.Rows))
		inner = append(inner, encUint(uint64(tbl.Columns)))
		for _, cell := range tbl.Rows {
			b, err := encodeARI(cell, cat, cfg, opts)
			if err != nil {
				return nil, err
			}
			inner = append(inner, b)
		}
		return wrapLiteral(ari.TypeTBL, writeArray(inner)), nil
	case ari.TypeTblt:
		t := lit.Value().(*ari.Tblt)
		vals := make([][]byte, len(t.Fields))
		for i, f := range t.Fields {
			b, err := encodeARI(f.Value, cat, cfg, opts)
			if err != nil {
				return nil, err
			}
			vals[i] = b
		}
		return wrapLiteral(ari.TypeTblt, writeArray(vals)), nil
	case ari.TypeExecSet:
		es := lit.Value().(*ari.ExecSet)
		nonceB, err := encodeNonce(es.Nonce, cfg)
		if err != nil {
			return nil, err
		}
		elems := make([][]byte, 0, 1+len(es.Targets))
		elems = append(elems, nonceB)
		for _, target := range es.Targets {
			b, err := encodeARI(target, cat, cfg, opts)
			if err != nil {
				return nil, err
			}
			elems = append(elems, b)
		}
		return wrapLiteral(ari.TypeExecSet, writeArray(elems)), nil
	case ari.TypeRptSet:
		rs := lit.Value().(*ari.RptSet)
		nonceB, err := encodeNonce(rs.Nonce, cfg)
		if err != nil {
			return nil, err
		}
		reftimeB := encodeTimepointValue(time.Time(rs.RefTime), cfg)
		elems := make([][]byte, 0, 2+len(rs.Reports))
		elems = append(elems, nonceB, reftimeB)
		for _, rep := range rs.Reports {
			relB := encodeTimeperiodValue(time.Duration(rep.RelTime), cfg)
			srcB, err := encodeARI(rep.Source, cat, cfg, opts)
			if err != nil {
				return nil, err
			}
			repElems := make([][]byte, 0, 2+len(rep.Items))
			repElems = append(repElems, relB, srcB)
			for _, it := range rep.Items {
				b, err := encodeARI(it, cat, cfg, opts)
				if err != nil {
					return nil, err
				}
				repElems = append(repElems, b)
			}
			elems = append(elems, writeArray(repElems))
		}
		return wrapLiteral(ari.TypeRptSet, writeArray(elems)), nil
	default:
		return encodeBareValue(lit.Value(), cfg)
	}
}

func wrapLiteral(code ari.BuiltinType, value []byte) []byte {
	return writeArray([][]byte{typeCodeItem(code), value})
}

// encodeNonce encodes a literal bare, with no type_code wrapper, matching
// the original codec's "untyped literal" convention observed for
// EXECSET/RPTSET nonce fields in the worked wire example.
func encodeNonce(a ari.ARI, cfg wireconfig.Config) ([]byte, error) {
	lit, ok := a.(ari.Literal)
	if !ok {
		return encodeARI(a, nil, cfg, EncodeOptions{})
	}
	return encodeBareValue(lit.Value(), cfg)
}

func encodeBareValue(v ari.Primitive, cfg wireconfig.Config) ([]byte, error) {
	switch x := v.(type) {
	case ari.Bool:
		return encBool(bool(x)), nil
	case ari.Uint64:
		return encUint(uint64(x)), nil
	case ari.Int64:
		return encInt(int64(x)), nil
	case ari.Uvast:
		return encUint(uint64(x)), nil
	case ari.Vast:
		return encInt(int64(x)), nil
	case ari.Real32:
		return encFloat32(float32(x)), nil
	case ari.Real64:
		return encFloat64(float64(x)), nil
	case ari.Text:
		return encText(string(x)), nil
	case ari.Bytes:
		return encBytes([]byte(x)), nil
	case ari.RawCBOR:
		return []byte(x), nil
	case ari.Timepoint:
		return encodeTimepointValue(time.Time(x), cfg), nil
	case ari.Timeperiod:
		return encodeTimeperiodValue(time.Duration(x), cfg), nil
	}
	return nil, arierr.EncodeError("aricbor: value of type %T has no bare wire form", v)
}

func encodeTimepointValue(t time.Time, cfg wireconfig.Config) []byte {
	item := encodeTimeval(t.Sub(cfg.Epoch))
	if cfg.UseTimeTags {
		return writeTag(1, item)
	}
	return item
}

func encodeTimeperiodValue(d time.Duration, cfg wireconfig.Config) []byte {
	item := encodeTimeval(d)
	if cfg.UseTimeTags {
		return writeTag(cfg.TimeperiodTag, item)
	}
	return item
}

func encodeReference(ref ari.ObjectRef, cat *adm.Catalog, cfg wireconfig.Config, opts EncodeOptions) ([]byte, error) {
	wireCode, ok := wireObjectType(ref.ObjType)
	if !ok {
		return nil, arierr.EncodeError("aricbor: unknown object type %s", ref.ObjType)
	}

	var resolvedObj adm.Object
	var resolveErr error
	if cat != nil && (opts.StrictResolve || opts.PreferNumericNames) {
		resolvedObj, resolveErr = cat.ResolveByName(ref)
	}
	if opts.StrictResolve && resolveErr != nil {
		return nil, arierr.EncodeError("aricbor: reference %s/%s/%s/%s does not resolve: %v", ref.Org, ref.Model, ref.ObjType, ref.Name, resolveErr)
	}

	name := ref.Name
	if opts.PreferNumericNames && !name.IsNumeric() && resolvedObj != nil {
		if enum, ok := adm.ObjectEnum(resolvedObj); ok {
			name = ari.Numeric(int64(enum))
		}
	}

	items := [][]byte{
		encodeIdent(ref.Org),
		encodeIdent(ref.Model),
		encInt(wireCode),
		encodeIdent(name),
	}
	if len(ref.Params) > 0 {
		paramItems := make([][]byte, len(ref.Params))
		for i, p := range ref.Params {
			b, err := encodeARI(p, cat, cfg, opts)
			if err != nil {
				return nil, err
			}
			paramItems[i] = b
		}
		items = append(items, writeArray(paramItems))
	}
	if ref.Rev != nil {
		pairs := [][2][]byte{
			{encText("y"), encUint(uint64(ref.Rev.Year))},
			{encText("m"), encUint(uint64(ref.Rev.Month))},
			{encText("d"), encUint(uint64(ref.Rev.Day))},
		}
		items = append(items, writeMapPairs(pairs))
	}
	return writeArray(items), nil
}
