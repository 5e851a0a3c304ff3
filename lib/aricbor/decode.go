// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package aricbor

import (
	"github.com/dtnma-ace/ace/lib/adm"
	"github.com/dtnma-ace/ace/lib/ari"
	"github.com/dtnma-ace/ace/lib/arierr"
	"github.com/dtnma-ace/ace/lib/wireconfig"
)

// DecodeOptions configures decode-time strictness. StrictResolve
// requires every decoded Reference to resolve against cat, failing the
// decode otherwise. AllowUnknownTags controls what happens on an
// unrecognized CBOR tag number: when false (the default) decoding fails
// with a DecodeError carrying arierr.KindUnknownTag; when true the
// tagged item's raw bytes are preserved as an opaque CBOR-typed literal
// instead of being rejected.
type DecodeOptions struct {
	StrictResolve    bool
	AllowUnknownTags bool
}

// Decode parses one CBOR-encoded ARI value from data under cfg and opts.
// Trailing bytes after the first complete item are ignored, mirroring
// the original decoder's tolerance of extra buffer content. cat, if
// non-nil, is consulted for reference resolution per opts.
func Decode(data []byte, cat *adm.Catalog, cfg wireconfig.Config, opts DecodeOptions) (ari.ARI, error) {
	n, err := itemLen(data)
	if err != nil {
		return nil, err
	}
	return decodeARI(data[:n], cat, cfg, opts)
}

func decodeARI(data []byte, cat *adm.Catalog, cfg wireconfig.Config, opts DecodeOptions) (ari.ARI, error) {
	major, arg, _, err := readHeader(data)
	if err != nil {
		return nil, err
	}
	switch major {
	case majorSimple:
		switch arg {
		case 22:
			return ari.Null{}, nil
		case 23:
			return ari.Undefined{}, nil
		case 20:
			return ari.NewBool(false), nil
		case 21:
			return ari.NewBool(true), nil
		}
		f, err := decFloat64(data)
		if err != nil {
			return nil, err
		}
		return ari.NewReal64(f), nil
	case majorText:
		s, err := decText(data)
		if err != nil {
			return nil, err
		}
		return ari.NewText(s), nil
	case majorBytes:
		b, err := decBytes(data)
		if err != nil {
			return nil, err
		}
		return ari.NewBytes(b), nil
	case majorTag:
		tagNum, content, err := readTagContent(data)
		if err != nil {
			return nil, err
		}
		if tagNum == 1 {
			d, err := decodeTimeval(content)
			if err != nil {
				return nil, err
			}
			return ari.NewTimepoint(cfg.Epoch.Add(d)), nil
		}
		if tagNum == cfg.TimeperiodTag {
			d, err := decodeTimeval(content)
			if err != nil {
				return nil, err
			}
			return ari.NewTimeperiod(d), nil
		}
		if !opts.AllowUnknownTags {
			return nil, arierr.DecodeError("aricbor: unsupported CBOR tag %d", tagNum).WithKind(arierr.KindUnknownTag)
		}
		return ari.MustLiteral(ari.BuiltinRef(ari.TypeCBOR), ari.RawCBOR(append([]byte(nil), data...))), nil
	case majorArray:
		items, err := readArrayItems(data)
		if err != nil {
			return nil, err
		}
		switch {
		case len(items) == 2:
			return decodeTypedLiteral(items[0], items[1], cat, cfg, opts)
		case len(items) >= 4:
			return decodeReference(items, cat, cfg, opts)
		default:
			return nil, arierr.DecodeError("aricbor: array of length %d is not a valid ARI wire form", len(items))
		}
	case majorUint, majorNeg:
		n, err := decInt(data)
		if err != nil {
			return nil, err
		}
		return ari.NewInt64(n), nil
	case majorMap:
		return nil, arierr.DecodeError("aricbor: a bare CBOR map is not a valid top-level ARI wire form")
	}
	return nil, arierr.DecodeError("aricbor: unsupported major type %d", major)
}

func decodeTypedLiteral(codeRaw, valRaw []byte, cat *adm.Catalog, cfg wireconfig.Config, opts DecodeOptions) (ari.ARI, error) {
	code, err := decUint(codeRaw)
	if err != nil {
		return nil, err
	}
	builtin := ari.BuiltinType(code)
	switch builtin {
	case ari.TypeInt:
		n, err := decInt(valRaw)
		if err != nil {
			return nil, err
		}
		return ari.NewInt64(n), nil
	case ari.TypeUint, ari.TypeByte:
		n, err := decUint(valRaw)
		if err != nil {
			return nil, err
		}
		return ari.NewUint64(n), nil
	case ari.TypeVast:
		n, err := decInt(valRaw)
		if err != nil {
			return nil, err
		}
		return ari.NewVast(n), nil
	case ari.TypeUvast:
		n, err := decUint(valRaw)
		if err != nil {
			return nil, err
		}
		return ari.NewUvast(n), nil
	case ari.TypeReal32:
		f, err := decFloat64(valRaw)
		if err != nil {
			return nil, err
		}
		return ari.NewReal32(float32(f)), nil
	case ari.TypeReal64:
		f, err := decFloat64(valRaw)
		if err != nil {
			return nil, err
		}
		return ari.NewReal64(f), nil
	case ari.TypeTP:
		d, err := decodeTimeval(valRaw)
		if err != nil {
			return nil, err
		}
		return ari.NewTimepoint(cfg.Epoch.Add(d)), nil
	case ari.TypeTD:
		d, err := decodeTimeval(valRaw)
		if err != nil {
			return nil, err
		}
		return ari.NewTimeperiod(d), nil
	case ari.TypeAC:
		subItems, err := readArrayItems(valRaw)
		if err != nil {
			return nil, err
		}
		items := make([]ari.ARI, len(subItems))
		for i, it := range subItems {
			items[i], err = decodeARI(it, cat, cfg, opts)
			if err != nil {
				return nil, err
			}
		}
		return ari.NewACLiteral(items), nil
	case ari.TypeAM:
		pairs, err := readMapPairs(valRaw)
		if err != nil {
			return nil, err
		}
		amPairs := make([]ari.AMPair, len(pairs))
		for i, p := range pairs {
			k, err := decodeARI(p[0], cat, cfg, opts)
			if err != nil {
				return nil, err
			}
			v, err := decodeARI(p[1], cat, cfg, opts)
			if err != nil {
				return nil, err
			}
			amPairs[i] = ari.AMPair{Key: k, Value: v}
		}
		lit, err := ari.NewAMLiteral(amPairs)
		if err != nil {
			return nil, err
		}
		return lit, nil
	case ari.TypeTBL:
		subItems, err := readArrayItems(valRaw)
		if err != nil {
			return nil, err
		}
		if len(subItems) < 1 {
			return nil, arierr.DecodeError("aricbor: TBL value is missing its column count")
		}
		cols, err := decUint(subItems[0])
		if err != nil {
			return nil, err
		}
		rows := make([]ari.ARI, len(subItems)-1)
		for i, it := range subItems[1:] {
			rows[i], err = decodeARI(it, cat, cfg, opts)
			if err != nil {
				return nil, err
			}
		}
		tbl, err := ari.NewTable(int(cols), nil, rows)
		if err != nil {
			return nil, err
		}
		return ari.MustLiteral(ari.BuiltinRef(ari.TypeTBL), tbl), nil
	case ari.TypeTblt:
		subItems, err := readArrayItems(valRaw)
		if err != nil {
			return nil, err
		}
		fields := make([]ari.TbltField, len(subItems))
		for i, it := range subItems {
			v, err := decodeARI(it, cat, cfg, opts)
			if err != nil {
				return nil, err
			}
			fields[i] = ari.TbltField{Value: v}
		}
		return ari.MustLiteral(ari.BuiltinRef(ari.TypeTblt), ari.NewTblt(fields)), nil
	case ari.TypeExecSet:
		elems, err := readArrayItems(valRaw)
		if err != nil {
			return nil, err
		}
		if len(elems) < 1 {
			return nil, arierr.DecodeError("aricbor: EXECSET value is missing its nonce")
		}
		nonce, err := decodeBareOrWrapped(elems[0], cat, cfg, opts)
		if err != nil {
			return nil, err
		}
		targets := make([]ari.ARI, len(elems)-1)
		for i, it := range elems[1:] {
			targets[i], err = decodeARI(it, cat, cfg, opts)
			if err != nil {
				return nil, err
			}
		}
		return ari.MustLiteral(ari.BuiltinRef(ari.TypeExecSet), ari.NewExecSet(nonce, targets)), nil
	case ari.TypeRptSet:
		elems, err := readArrayItems(valRaw)
		if err != nil {
			return nil, err
		}
		if len(elems) < 2 {
			return nil, arierr.DecodeError("aricbor: RPTSET value is missing its nonce or reference time")
		}
		nonce, err := decodeBareOrWrapped(elems[0], cat, cfg, opts)
		if err != nil {
			return nil, err
		}
		refDur, err := decodeTimeval(elems[1])
		if err != nil {
			return nil, err
		}
		reports := make([]ari.Report, len(elems)-2)
		for i, it := range elems[2:] {
			repElems, err := readArrayItems(it)
			if err != nil {
				return nil, err
			}
			if len(repElems) < 2 {
				return nil, arierr.DecodeError("aricbor: RPTSET report is missing its relative time or source")
			}
			relDur, err := decodeTimeval(repElems[0])
			if err != nil {
				return nil, err
			}
			source, err := decodeARI(repElems[1], cat, cfg, opts)
			if err != nil {
				return nil, err
			}
			repItems := make([]ari.ARI, len(repElems)-2)
			for j, ri := range repElems[2:] {
				repItems[j], err = decodeARI(ri, cat, cfg, opts)
				if err != nil {
					return nil, err
				}
			}
			reports[i] = ari.Report{RelTime: ari.Timeperiod(relDur), Source: source, Items: repItems}
		}
		refTime := ari.Timepoint(cfg.Epoch.Add(refDur))
		return ari.MustLiteral(ari.BuiltinRef(ari.TypeRptSet), ari.NewRptSet(nonce, refTime, reports)), nil
	default:
		return nil, arierr.DecodeError("aricbor: unsupported typed literal type code %d", code)
	}
}

// decodeBareOrWrapped decodes a nonce field: bare per the wire convention
// observed for EXECSET/RPTSET, but tolerates a fully wrapped literal too.
func decodeBareOrWrapped(raw []byte, cat *adm.Catalog, cfg wireconfig.Config, opts DecodeOptions) (ari.ARI, error) {
	major, _, _, err := readHeader(raw)
	if err != nil {
		return nil, err
	}
	switch major {
	case majorUint:
		n, err := decUint(raw)
		if err != nil {
			return nil, err
		}
		return ari.NewUint64(n), nil
	case majorNeg:
		n, err := decInt(raw)
		if err != nil {
			return nil, err
		}
		return ari.NewInt64(n), nil
	case majorText:
		s, err := decText(raw)
		if err != nil {
			return nil, err
		}
		return ari.NewText(s), nil
	case majorBytes:
		b, err := decBytes(raw)
		if err != nil {
			return nil, err
		}
		return ari.NewBytes(b), nil
	}
	return decodeARI(raw, cat, cfg, opts)
}

func decodeReference(items [][]byte, cat *adm.Catalog, cfg wireconfig.Config, opts DecodeOptions) (ari.ARI, error) {
	org, err := decodeIdent(items[0])
	if err != nil {
		return nil, err
	}
	model, err := decodeIdent(items[1])
	if err != nil {
		return nil, err
	}
	wireCode, err := decInt(items[2])
	if err != nil {
		return nil, err
	}
	objType, ok := objectTypeFromWireCode(wireCode)
	if !ok {
		return nil, arierr.DecodeError("aricbor: unknown object type code %d", wireCode)
	}
	name, err := decodeIdent(items[3])
	if err != nil {
		return nil, err
	}

	var params []ari.ARI
	var rev *ari.Revision
	for _, extra := range items[4:] {
		major, _, _, err := readHeader(extra)
		if err != nil {
			return nil, err
		}
		switch major {
		case majorArray:
			paramItems, err := readArrayItems(extra)
			if err != nil {
				return nil, err
			}
			params = make([]ari.ARI, len(paramItems))
			for i, p := range paramItems {
				params[i], err = decodeARI(p, cat, cfg, opts)
				if err != nil {
					return nil, err
				}
			}
		case majorMap:
			pairs, err := readMapPairs(extra)
			if err != nil {
				return nil, err
			}
			r := ari.Revision{}
			for _, p := range pairs {
				key, err := decText(p[0])
				if err != nil {
					return nil, err
				}
				val, err := decUint(p[1])
				if err != nil {
					return nil, err
				}
				switch key {
				case "y":
					r.Year = int(val)
				case "m":
					r.Month = int(val)
				case "d":
					r.Day = int(val)
				}
			}
			rev = &r
		default:
			return nil, arierr.DecodeError("aricbor: unexpected trailing reference element of major type %d", major)
		}
	}

	ref, err := ari.NewReference(ari.ObjectRef{
		Org: org, Model: model, Rev: rev, ObjType: objType, Name: name, Params: params,
	})
	if err != nil {
		return nil, err
	}
	if opts.StrictResolve && cat != nil {
		if _, err := cat.ResolveByName(ref.Ref()); err != nil {
			return nil, arierr.DecodeError("aricbor: reference does not resolve: %v", err)
		}
	}
	return ref, nil
}
