// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package adm

import (
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dtnma-ace/ace/lib/ari"
	"github.com/dtnma-ace/ace/lib/arierr"
	"github.com/dtnma-ace/ace/lib/aritype"
)

// FromYAML parses a module record in the YAML intermediate form this
// catalog consumes, standing in for the YANG-ingestion pipeline's output
// (the pipeline itself is out of scope; see SPEC_FULL.md's DOMAIN STACK).
func FromYAML(r io.Reader) (Module, error) {
	var doc yamlModule
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return Module{}, arierr.ParseError(-1, "adm: decoding module YAML: %v", err)
	}
	return doc.toModule()
}

type yamlModule struct {
	Org        string         `yaml:"org"`
	Name       string         `yaml:"name"`
	Revision   string         `yaml:"revision,omitempty"`
	ModuleEnum int            `yaml:"module_enum"`
	Consts     []yamlConst    `yaml:"consts,omitempty"`
	Ctrls      []yamlCtrl     `yaml:"ctrls,omitempty"`
	Edds       []yamlEdd      `yaml:"edds,omitempty"`
	Vars       []yamlVar      `yaml:"vars,omitempty"`
	Idents     []yamlIdent    `yaml:"idents,omitempty"`
	Opers      []yamlOper     `yaml:"opers,omitempty"`
	Sbrs       []yamlSbr      `yaml:"sbrs,omitempty"`
	Tbrs       []yamlTbr      `yaml:"tbrs,omitempty"`
	Typedefs   []yamlTypedef  `yaml:"typedefs,omitempty"`
}

type yamlConst struct {
	Name  string    `yaml:"name"`
	Enum  int       `yaml:"enum"`
	Type  yamlType  `yaml:"type"`
	Value yamlValue `yaml:"value"`
}

type yamlParameter struct {
	Name    string     `yaml:"name"`
	Type    yamlType   `yaml:"type"`
	Default *yamlValue `yaml:"default,omitempty"`
}

type yamlCtrl struct {
	Name    string          `yaml:"name"`
	Enum    int             `yaml:"enum"`
	Formals []yamlParameter `yaml:"formals,omitempty"`
}

type yamlEdd struct {
	Name string   `yaml:"name"`
	Enum int      `yaml:"enum"`
	Type yamlType `yaml:"type"`
}

type yamlVar struct {
	Name    string    `yaml:"name"`
	Enum    int       `yaml:"enum"`
	Type    yamlType  `yaml:"type"`
	Initial yamlValue `yaml:"initial"`
}

type yamlObjectRefSpec struct {
	Org      string `yaml:"org"`
	Model    string `yaml:"model"`
	Revision string `yaml:"revision,omitempty"`
	ObjType  string `yaml:"obj_type"`
	Name     string `yaml:"name"`
}

type yamlIdent struct {
	Name  string              `yaml:"name"`
	Enum  int                 `yaml:"enum"`
	Bases []yamlObjectRefSpec `yaml:"bases,omitempty"`
}

type yamlOper struct {
	Name     string          `yaml:"name"`
	Enum     int             `yaml:"enum"`
	Operands []yamlParameter `yaml:"operands,omitempty"`
	Result   yamlType        `yaml:"result"`
}

type yamlSbr struct {
	Name      string `yaml:"name"`
	Enum      int    `yaml:"enum"`
	Condition string `yaml:"condition"` // ARI text form, parsed by aritext
	Action    string `yaml:"action"`
}

type yamlTbr struct {
	Name   string `yaml:"name"`
	Enum   int    `yaml:"enum"`
	Period string `yaml:"period"` // ISO-8601 duration text
	Action string `yaml:"action"`
}

type yamlTypedef struct {
	Name string   `yaml:"name"`
	Enum int      `yaml:"enum"`
	Expr yamlType `yaml:"expr"`
}

type yamlType struct {
	Builtin string              `yaml:"builtin,omitempty"`
	Alias   *yamlObjectRefSpec  `yaml:"alias,omitempty"`
	Union   []yamlType          `yaml:"union,omitempty"`
	Ulist   *yamlType           `yaml:"ulist,omitempty"`
	Dlist   []yamlType          `yaml:"dlist,omitempty"`
	Umap    *yamlUmap           `yaml:"umap,omitempty"`
	Tblt    []yamlField         `yaml:"tblt,omitempty"`
	Use     *yamlUse            `yaml:"use,omitempty"`
}

type yamlUmap struct {
	Key yamlType `yaml:"key"`
	Val yamlType `yaml:"val"`
}

type yamlField struct {
	Name string   `yaml:"name"`
	Type yamlType `yaml:"type"`
}

type yamlUse struct {
	Base        yamlType         `yaml:"base"`
	Constraints []yamlConstraint `yaml:"constraints,omitempty"`
}

type yamlConstraint struct {
	Range  *yamlRange  `yaml:"range,omitempty"`
	Length *yamlLength `yaml:"length,omitempty"`
}

type yamlRange struct {
	Lo int64 `yaml:"lo"`
	Hi int64 `yaml:"hi"`
}

type yamlLength struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// yamlValue is the YAML intermediate form for a scalar ARI literal.
// Structured literals (ac, am, tbl, tblt, execset, rptset) are not
// expressible in module-record YAML — catalog records carry declared
// constants and defaults, which in every ADM this catalog has seen are
// scalar values; structured defaults, if ever needed, are built
// programmatically via package ari rather than through this schema.
type yamlValue struct {
	Type string `yaml:"type"`
	Raw  string `yaml:"raw"`
}

func (v yamlValue) toARI() (ari.ARI, error) {
	switch v.Type {
	case "undefined":
		return ari.Undefined{}, nil
	case "null", "NULL":
		return ari.Null{}, nil
	}
	code, ok := ari.BuiltinByName(v.Type)
	if !ok {
		return nil, arierr.ParseError(-1, "adm: unknown value type %q", v.Type)
	}
	switch code {
	case ari.TypeBool:
		b, err := strconv.ParseBool(v.Raw)
		if err != nil {
			return nil, arierr.ParseError(-1, "adm: bool value %q: %v", v.Raw, err)
		}
		return ari.NewBool(b), nil
	case ari.TypeInt:
		n, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return nil, err
		}
		return ari.NewInt64(n), nil
	case ari.TypeUint:
		n, err := strconv.ParseUint(v.Raw, 10, 64)
		if err != nil {
			return nil, err
		}
		return ari.NewUint64(n), nil
	case ari.TypeVast:
		n, err := strconv.ParseInt(v.Raw, 10, 64)
		if err != nil {
			return nil, err
		}
		return ari.NewVast(n), nil
	case ari.TypeUvast:
		n, err := strconv.ParseUint(v.Raw, 10, 64)
		if err != nil {
			return nil, err
		}
		return ari.NewUvast(n), nil
	case ari.TypeReal32:
		f, err := strconv.ParseFloat(v.Raw, 32)
		if err != nil {
			return nil, err
		}
		return ari.NewReal32(float32(f)), nil
	case ari.TypeReal64:
		f, err := strconv.ParseFloat(v.Raw, 64)
		if err != nil {
			return nil, err
		}
		return ari.NewReal64(f), nil
	case ari.TypeTextstr:
		return ari.NewText(v.Raw), nil
	case ari.TypeBytestr:
		b, err := hex.DecodeString(v.Raw)
		if err != nil {
			return nil, err
		}
		return ari.NewBytes(b), nil
	case ari.TypeTP:
		t, err := time.Parse(time.RFC3339Nano, v.Raw)
		if err != nil {
			return nil, err
		}
		return ari.NewTimepoint(t), nil
	case ari.TypeTD:
		d, err := parseISODuration(v.Raw)
		if err != nil {
			return nil, err
		}
		return ari.NewTimeperiod(d), nil
	}
	return nil, arierr.ParseError(-1, "adm: value type %q is not a scalar type supported in module YAML", v.Type)
}

// parseISODuration parses a minimal ISO-8601 duration subset matching
// original_source's t_TIMEPERIOD lexer rule: [+-]?P(nD)?T(nH)?(nM)?(nS)?
func parseISODuration(s string) (time.Duration, error) {
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if !strings.HasPrefix(s, "P") {
		return 0, fmt.Errorf("adm: duration %q missing P prefix", s)
	}
	s = s[1:]
	var days int64
	if idx := strings.Index(s, "D"); idx >= 0 {
		n, err := strconv.ParseInt(s[:idx], 10, 64)
		if err != nil {
			return 0, err
		}
		days = n
		s = s[idx+1:]
	}
	var d time.Duration = time.Duration(days) * 24 * time.Hour
	if strings.HasPrefix(s, "T") {
		s = s[1:]
		if idx := strings.Index(s, "H"); idx >= 0 {
			n, err := strconv.ParseInt(s[:idx], 10, 64)
			if err != nil {
				return 0, err
			}
			d += time.Duration(n) * time.Hour
			s = s[idx+1:]
		}
		if idx := strings.Index(s, "M"); idx >= 0 {
			n, err := strconv.ParseInt(s[:idx], 10, 64)
			if err != nil {
				return 0, err
			}
			d += time.Duration(n) * time.Minute
			s = s[idx+1:]
		}
		if idx := strings.Index(s, "S"); idx >= 0 {
			f, err := strconv.ParseFloat(s[:idx], 64)
			if err != nil {
				return 0, err
			}
			d += time.Duration(f * float64(time.Second))
		}
	}
	if neg {
		d = -d
	}
	return d, nil
}

func (spec yamlObjectRefSpec) toObjectRef() (ari.ObjectRef, error) {
	objType, ok := ari.ObjectTypeByName(spec.ObjType)
	if !ok {
		return ari.ObjectRef{}, arierr.ParseError(-1, "adm: unknown object type %q", spec.ObjType)
	}
	ref := ari.ObjectRef{
		Org:     ari.Symbolic(spec.Org),
		Model:   ari.Symbolic(spec.Model),
		ObjType: objType,
		Name:    ari.Symbolic(spec.Name),
	}
	if spec.Revision != "" {
		rev, err := parseRevision(spec.Revision)
		if err != nil {
			return ari.ObjectRef{}, err
		}
		ref.Rev = &rev
	}
	return ref, nil
}

func parseRevision(s string) (ari.Revision, error) {
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%04d-%02d-%02d", &y, &m, &d); err != nil {
		return ari.Revision{}, arierr.ParseError(-1, "adm: invalid revision %q", s)
	}
	return ari.Revision{Year: y, Month: m, Day: d}, nil
}

func (t yamlType) toExpr() (aritype.Expr, error) {
	switch {
	case t.Builtin != "":
		code, ok := ari.BuiltinByName(t.Builtin)
		if !ok {
			return nil, arierr.ParseError(-1, "adm: unknown builtin type %q", t.Builtin)
		}
		return aritype.Builtin{Code: code}, nil
	case t.Alias != nil:
		ref, err := t.Alias.toObjectRef()
		if err != nil {
			return nil, err
		}
		return aritype.Alias{Ref: ref}, nil
	case len(t.Union) > 0:
		alts := make([]aritype.Expr, len(t.Union))
		for i, u := range t.Union {
			e, err := u.toExpr()
			if err != nil {
				return nil, err
			}
			alts[i] = e
		}
		return aritype.Union{Alternatives: alts}, nil
	case t.Ulist != nil:
		e, err := t.Ulist.toExpr()
		if err != nil {
			return nil, err
		}
		return aritype.Ulist{Elem: e}, nil
	case len(t.Dlist) > 0:
		elems := make([]aritype.Expr, len(t.Dlist))
		for i, d := range t.Dlist {
			e, err := d.toExpr()
			if err != nil {
				return nil, err
			}
			elems[i] = e
		}
		return aritype.Dlist{Elems: elems}, nil
	case t.Umap != nil:
		key, err := t.Umap.Key.toExpr()
		if err != nil {
			return nil, err
		}
		val, err := t.Umap.Val.toExpr()
		if err != nil {
			return nil, err
		}
		return aritype.Umap{Key: key, Val: val}, nil
	case len(t.Tblt) > 0:
		fields := make([]aritype.FieldType, len(t.Tblt))
		for i, f := range t.Tblt {
			e, err := f.Type.toExpr()
			if err != nil {
				return nil, err
			}
			fields[i] = aritype.FieldType{Name: f.Name, Type: e}
		}
		return aritype.TbltType{Fields: fields}, nil
	case t.Use != nil:
		base, err := t.Use.Base.toExpr()
		if err != nil {
			return nil, err
		}
		constraints := make([]aritype.Constraint, 0, len(t.Use.Constraints))
		for _, c := range t.Use.Constraints {
			switch {
			case c.Range != nil:
				constraints = append(constraints, aritype.IntRange{Lo: c.Range.Lo, Hi: c.Range.Hi})
			case c.Length != nil:
				constraints = append(constraints, aritype.Length{Min: c.Length.Min, Max: c.Length.Max})
			}
		}
		return aritype.Use{Base: base, Constraints: constraints}, nil
	}
	return nil, arierr.ParseError(-1, "adm: empty type expression")
}

func (doc yamlModule) toModule() (Module, error) {
	m := Module{
		Org:        ari.Symbolic(doc.Org),
		Name:       ari.Symbolic(doc.Name),
		ModuleEnum: doc.ModuleEnum,
	}
	if doc.Revision != "" {
		rev, err := parseRevision(doc.Revision)
		if err != nil {
			return Module{}, err
		}
		m.Revision = &rev
	}

	for _, c := range doc.Consts {
		typ, err := c.Type.toExpr()
		if err != nil {
			return Module{}, err
		}
		val, err := c.Value.toARI()
		if err != nil {
			return Module{}, err
		}
		m.Objects = append(m.Objects, ConstObject{Name: ari.Symbolic(c.Name), Enum: c.Enum, Type: typ, Value: val})
	}
	for _, c := range doc.Ctrls {
		formals, err := toParameters(c.Formals)
		if err != nil {
			return Module{}, err
		}
		m.Objects = append(m.Objects, CtrlObject{Name: ari.Symbolic(c.Name), Enum: c.Enum, Formals: formals})
	}
	for _, e := range doc.Edds {
		typ, err := e.Type.toExpr()
		if err != nil {
			return Module{}, err
		}
		m.Objects = append(m.Objects, EddObject{Name: ari.Symbolic(e.Name), Enum: e.Enum, Type: typ})
	}
	for _, v := range doc.Vars {
		typ, err := v.Type.toExpr()
		if err != nil {
			return Module{}, err
		}
		initial, err := v.Initial.toARI()
		if err != nil {
			return Module{}, err
		}
		m.Objects = append(m.Objects, VarObject{Name: ari.Symbolic(v.Name), Enum: v.Enum, Type: typ, Initial: initial})
	}
	for _, id := range doc.Idents {
		bases := make([]ari.ObjectRef, len(id.Bases))
		for i, b := range id.Bases {
			ref, err := b.toObjectRef()
			if err != nil {
				return Module{}, err
			}
			bases[i] = ref
		}
		m.Objects = append(m.Objects, IdentObject{Name: ari.Symbolic(id.Name), Enum: id.Enum, Bases: bases})
	}
	for _, o := range doc.Opers {
		operands, err := toParameters(o.Operands)
		if err != nil {
			return Module{}, err
		}
		result, err := o.Result.toExpr()
		if err != nil {
			return Module{}, err
		}
		m.Objects = append(m.Objects, OperObject{Name: ari.Symbolic(o.Name), Enum: o.Enum, Operands: operands, Result: result})
	}
	for _, td := range doc.Typedefs {
		expr, err := td.Expr.toExpr()
		if err != nil {
			return Module{}, err
		}
		m.Objects = append(m.Objects, TypedefObject{Name: ari.Symbolic(td.Name), Enum: td.Enum, Expr: expr})
	}
	// SBR/TBR conditions/actions are ARI text that requires package
	// aritext to parse; the catalog itself only stores module records
	// that have already been parsed, so FromYAMLWithParser (below)
	// handles those two object kinds.
	return m, nil
}

func toParameters(in []yamlParameter) ([]Parameter, error) {
	out := make([]Parameter, len(in))
	for i, p := range in {
		typ, err := p.Type.toExpr()
		if err != nil {
			return nil, err
		}
		var def ari.ARI
		if p.Default != nil {
			d, err := p.Default.toARI()
			if err != nil {
				return nil, err
			}
			def = d
		}
		out[i] = Parameter{Name: p.Name, Type: typ, Default: def}
	}
	return out, nil
}

// ParseAction parses an ARI-text condition/action string using the
// caller-supplied parser function, so this package does not need to
// import aritext (which itself imports adm, so a direct import would be a
// cycle; adm depends on aritext only through this narrow function value,
// mirroring the Resolver pattern used for aritype).
type ActionParser func(text string) (ari.ARI, error)

// FromYAMLWithParser is like FromYAML but also populates SBR/TBR objects,
// whose condition/action fields are ARI text parsed by parseAction.
func FromYAMLWithParser(r io.Reader, parseAction ActionParser) (Module, error) {
	var doc yamlModule
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return Module{}, arierr.ParseError(-1, "adm: decoding module YAML: %v", err)
	}
	m, err := doc.toModule()
	if err != nil {
		return Module{}, err
	}
	for _, s := range doc.Sbrs {
		cond, err := parseAction(s.Condition)
		if err != nil {
			return Module{}, err
		}
		action, err := parseAction(s.Action)
		if err != nil {
			return Module{}, err
		}
		m.Objects = append(m.Objects, SbrObject{Name: ari.Symbolic(s.Name), Enum: s.Enum, Condition: cond, Action: action})
	}
	for _, tb := range doc.Tbrs {
		period, err := parseISODuration(tb.Period)
		if err != nil {
			return Module{}, err
		}
		action, err := parseAction(tb.Action)
		if err != nil {
			return Module{}, err
		}
		m.Objects = append(m.Objects, TbrObject{Name: ari.Symbolic(tb.Name), Enum: tb.Enum, Period: ari.Timeperiod(period), Action: action})
	}
	return m, nil
}
