// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package aritext

import (
	"fmt"

	"github.com/dtnma-ace/ace/lib/ari"
	"github.com/dtnma-ace/ace/lib/arierr"
)

// Parse parses a single ARI text value. Object references are returned
// unresolved (symbolic names intact, enum forms empty); call Resolve
// separately against a catalog.
func Parse(s string) (ari.ARI, error) {
	toks, err := lex(s)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokARIPrefix {
		p.advance()
	}
	val, err := p.parseSSP()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokEOF {
		return nil, arierr.ParseError(p.peek().pos, "parse: unexpected trailing input %q", p.peek().text)
	}
	return val, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) advance() token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(k tokenKind) (token, error) {
	if p.peek().kind != k {
		return token{}, arierr.ParseError(p.peek().pos, "parse: unexpected token %q", p.peek().text)
	}
	return p.advance(), nil
}

func (p *parser) parseSSP() (ari.ARI, error) {
	switch p.peek().kind {
	case tokSlash:
		return p.parseSlashForm()
	case tokDot, tokDotDot:
		return p.parseRelativeObjPath()
	case tokBool, tokInt, tokFloat, tokTStr, tokBStr, tokTimepoint, tokTimeperiod:
		return p.parsePrimitiveToken()
	default:
		return nil, arierr.ParseError(p.peek().pos, "parse: unexpected token %q starting ARI", p.peek().text)
	}
}

func (p *parser) parsePrimitiveToken() (ari.ARI, error) {
	t := p.advance()
	switch t.kind {
	case tokBool:
		return ari.NewBool(t.boolVal), nil
	case tokInt:
		return ari.NewInt64(t.intVal), nil
	case tokFloat:
		return ari.NewReal64(t.floatVal), nil
	case tokTStr:
		return ari.NewText(t.strVal), nil
	case tokBStr:
		return ari.NewBytes(t.bytesVal), nil
	case tokTimepoint:
		return ari.NewTimepoint(t.timeVal), nil
	case tokTimeperiod:
		return ari.NewTimeperiod(t.durVal), nil
	}
	return nil, arierr.ParseError(t.pos, "parse: not a primitive token")
}

func (p *parser) parseSlashForm() (ari.ARI, error) {
	p.advance() // consume first "/"
	if p.peek().kind == tokSlash {
		p.advance()
		return p.parseObjPath()
	}
	if p.peek().kind != tokIdent {
		return nil, arierr.ParseError(p.peek().pos, "parse: expected a type or AC/AM/TBL/EXECSET/RPTSET name")
	}
	name := p.advance()
	switch name.strVal {
	case "NULL":
		return ari.Null{}, nil
	case "AC":
		if _, err := p.expect(tokSlash); err != nil {
			return nil, err
		}
		items, err := p.parseACBracket()
		if err != nil {
			return nil, err
		}
		return ari.NewACLiteral(items), nil
	case "AM":
		if _, err := p.expect(tokSlash); err != nil {
			return nil, err
		}
		pairs, err := p.parseAMBracket()
		if err != nil {
			return nil, err
		}
		return ari.NewAMLiteral(pairs)
	case "TBL":
		if _, err := p.expect(tokSlash); err != nil {
			return nil, err
		}
		return p.parseTBL()
	case "EXECSET":
		if _, err := p.expect(tokSlash); err != nil {
			return nil, err
		}
		return p.parseExecSet()
	case "RPTSET":
		if _, err := p.expect(tokSlash); err != nil {
			return nil, err
		}
		return p.parseRptSet()
	default:
		return p.parseGenericTypedLiteral(name.strVal)
	}
}

func (p *parser) parseGenericTypedLiteral(typeName string) (ari.ARI, error) {
	code, ok := ari.BuiltinByName(typeName)
	if !ok {
		return nil, arierr.ParseError(p.peek().pos, "parse: unknown type %q", typeName)
	}
	if _, err := p.expect(tokSlash); err != nil {
		return nil, err
	}
	val, err := p.parseValueForBuiltin(code)
	if err != nil {
		return nil, err
	}
	lit, err := ari.NewLiteral(ari.BuiltinRef(code), val)
	if err != nil {
		return nil, arierr.ParseError(p.peek().pos, "parse: %v", err)
	}
	return lit, nil
}

func (p *parser) parseValueForBuiltin(code ari.BuiltinType) (ari.Primitive, error) {
	t := p.advance()
	switch code {
	case ari.TypeBool:
		if t.kind != tokBool {
			return nil, arierr.ParseError(t.pos, "parse: expected BOOL value")
		}
		return ari.Bool(t.boolVal), nil
	case ari.TypeInt:
		if t.kind != tokInt {
			return nil, arierr.ParseError(t.pos, "parse: expected INT value")
		}
		return ari.Int64(t.intVal), nil
	case ari.TypeUint:
		if t.kind != tokInt || t.intVal < 0 {
			return nil, arierr.ParseError(t.pos, "parse: expected non-negative UINT value")
		}
		return ari.Uint64(uint64(t.intVal)), nil
	case ari.TypeVast:
		if t.kind != tokInt {
			return nil, arierr.ParseError(t.pos, "parse: expected VAST value")
		}
		return ari.Vast(t.intVal), nil
	case ari.TypeUvast:
		if t.kind != tokInt || t.intVal < 0 {
			return nil, arierr.ParseError(t.pos, "parse: expected non-negative UVAST value")
		}
		return ari.Uvast(uint64(t.intVal)), nil
	case ari.TypeByte:
		if t.kind != tokInt || t.intVal < 0 || t.intVal > 255 {
			return nil, arierr.ParseError(t.pos, "parse: expected BYTE value in [0,255]")
		}
		return ari.Uint64(uint64(t.intVal)), nil
	case ari.TypeReal32:
		f, err := floatOf(t)
		if err != nil {
			return nil, err
		}
		return ari.Real32(f), nil
	case ari.TypeReal64:
		f, err := floatOf(t)
		if err != nil {
			return nil, err
		}
		return ari.Real64(f), nil
	case ari.TypeTextstr:
		if t.kind != tokTStr && t.kind != tokIdent {
			return nil, arierr.ParseError(t.pos, "parse: expected TEXTSTR value")
		}
		return ari.Text(t.strVal), nil
	case ari.TypeBytestr:
		if t.kind != tokBStr {
			return nil, arierr.ParseError(t.pos, "parse: expected BYTESTR value")
		}
		return ari.Bytes(t.bytesVal), nil
	case ari.TypeTP:
		if t.kind != tokTimepoint {
			return nil, arierr.ParseError(t.pos, "parse: expected TP value")
		}
		return ari.Timepoint(t.timeVal), nil
	case ari.TypeTD:
		if t.kind != tokTimeperiod {
			return nil, arierr.ParseError(t.pos, "parse: expected TD value")
		}
		return ari.Timeperiod(t.durVal), nil
	}
	return nil, arierr.ParseError(t.pos, "parse: type %s cannot appear in a generic /TYPE/value literal", code)
}

func floatOf(t token) (float64, error) {
	switch t.kind {
	case tokFloat:
		return t.floatVal, nil
	case tokInt:
		return float64(t.intVal), nil
	}
	return 0, arierr.ParseError(t.pos, "parse: expected numeric value")
}

func (p *parser) parseACBracket() ([]ari.ARI, error) {
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	var items []ari.ARI
	if p.peek().kind == tokRParen {
		p.advance()
		return items, nil
	}
	for {
		item, err := p.parseSSPOrPrimitive()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
		if p.peek().kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return items, nil
}

// parseSSPOrPrimitive parses one AC/AM-element position, which may be a
// nested object path, a typed literal, or a bare primitive token.
func (p *parser) parseSSPOrPrimitive() (ari.ARI, error) {
	return p.parseSSP()
}

func (p *parser) parseAMBracket() ([]ari.AMPair, error) {
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	var pairs []ari.AMPair
	if p.peek().kind == tokRParen {
		p.advance()
		return pairs, nil
	}
	for {
		keyPos := p.peek().pos
		key, err := p.parseSSPOrPrimitive()
		if err != nil {
			return nil, err
		}
		for _, existing := range pairs {
			if ari.Equal(existing.Key, key) {
				return nil, arierr.ParseError(keyPos, "parse: duplicate AM key").WithKind(arierr.KindDuplicateMapKey)
			}
		}
		if _, err := p.expect(tokEq); err != nil {
			return nil, err
		}
		val, err := p.parseSSPOrPrimitive()
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ari.AMPair{Key: key, Value: val})
		if p.peek().kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return pairs, nil
}

// parseFieldList parses the "key=value;key=value;" struct header used by
// TBL/EXECSET/RPTSET to carry named scalar fields (column count, nonce,
// reference time, relative time, source reference). Unlike an AC/AM
// bracket, a field list has no enclosing parens of its own and is
// terminated by the absence of another leading identifier: each field
// ends with a mandatory trailing ";" rather than being comma-separated.
func (p *parser) parseFieldList() (map[string]ari.ARI, error) {
	out := make(map[string]ari.ARI)
	for p.peek().kind == tokIdent {
		keyTok := p.advance()
		if _, err := p.expect(tokEq); err != nil {
			return nil, err
		}
		val, err := p.parseSSPOrPrimitive()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokSemi); err != nil {
			return nil, err
		}
		out[keyTok.strVal] = val
	}
	return out, nil
}

func (p *parser) parseTBL() (ari.ARI, error) {
	fields, err := p.parseFieldList()
	if err != nil {
		return nil, err
	}
	colsLit, ok := fields["c"]
	if !ok {
		return nil, arierr.ParseError(p.peek().pos, "parse: tbl header missing c field")
	}
	cols, err := intFromARI(colsLit)
	if err != nil {
		return nil, err
	}
	var rows []ari.ARI
	for p.peek().kind == tokLParen {
		rowItems, err := p.parseACBracket()
		if err != nil {
			return nil, err
		}
		rows = append(rows, rowItems...)
	}
	tbl, err := ari.NewTable(int(cols), nil, rows)
	if err != nil {
		return nil, arierr.ParseError(p.peek().pos, "parse: %v", err)
	}
	return ari.MustLiteral(ari.BuiltinRef(ari.TypeTBL), tbl), nil
}

func (p *parser) parseExecSet() (ari.ARI, error) {
	fields, err := p.parseFieldList()
	if err != nil {
		return nil, err
	}
	nonce, ok := fields["n"]
	if !ok {
		nonce = ari.NewNonce()
	}
	targets, err := p.parseACBracket()
	if err != nil {
		return nil, err
	}
	return ari.MustLiteral(ari.BuiltinRef(ari.TypeExecSet), ari.NewExecSet(nonce, targets)), nil
}

func (p *parser) parseRptSet() (ari.ARI, error) {
	fields, err := p.parseFieldList()
	if err != nil {
		return nil, err
	}
	nonce, ok := fields["n"]
	if !ok {
		nonce = ari.NewNonce()
	}
	refTimeVal, ok := fields["r"]
	if !ok {
		return nil, arierr.ParseError(p.peek().pos, "parse: rptset header missing r field")
	}
	refTime, err := timepointFromARI(refTimeVal)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	var reports []ari.Report
	if p.peek().kind != tokRParen {
		for {
			reportFields, err := p.parseFieldList()
			if err != nil {
				return nil, err
			}
			relVal, ok := reportFields["t"]
			if !ok {
				return nil, arierr.ParseError(p.peek().pos, "parse: report header missing t field")
			}
			relTime, err := timeperiodFromARI(relVal)
			if err != nil {
				return nil, err
			}
			source, ok := reportFields["s"]
			if !ok {
				return nil, arierr.ParseError(p.peek().pos, "parse: report header missing s field")
			}
			items, err := p.parseACBracket()
			if err != nil {
				return nil, err
			}
			reports = append(reports, ari.Report{RelTime: ari.Timeperiod(relTime), Source: source, Items: items})
			if p.peek().kind == tokComma {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return ari.MustLiteral(ari.BuiltinRef(ari.TypeRptSet), ari.NewRptSet(nonce, ari.Timepoint(refTime), reports)), nil
}

func intFromARI(a ari.ARI) (int64, error) {
	lit, ok := a.(ari.Literal)
	if !ok {
		return 0, arierr.ParseError(-1, "parse: expected integer value")
	}
	switch v := lit.Value().(type) {
	case ari.Int64:
		return int64(v), nil
	case ari.Uint64:
		return int64(v), nil
	case ari.Vast:
		return int64(v), nil
	case ari.Uvast:
		return int64(v), nil
	}
	return 0, arierr.ParseError(-1, "parse: expected integer value")
}

func timepointFromARI(a ari.ARI) (timeValue, error) {
	lit, ok := a.(ari.Literal)
	if !ok {
		return timeValue{}, arierr.ParseError(-1, "parse: expected TP value")
	}
	tp, ok := lit.Value().(ari.Timepoint)
	if !ok {
		return timeValue{}, arierr.ParseError(-1, "parse: expected TP value")
	}
	return timeValue(tp), nil
}

func timeperiodFromARI(a ari.ARI) (timeperiodValue, error) {
	lit, ok := a.(ari.Literal)
	if !ok {
		return 0, arierr.ParseError(-1, "parse: expected TD value")
	}
	td, ok := lit.Value().(ari.Timeperiod)
	if !ok {
		return 0, arierr.ParseError(-1, "parse: expected TD value")
	}
	return timeperiodValue(td), nil
}

type timeValue = ari.Timepoint
type timeperiodValue = ari.Timeperiod

// parseIdentOrNumeric parses an org/model/object-name position, which may
// be spelled either as a symbolic identifier or, for the nickname form,
// as an "!"-prefixed numeric enum.
func (p *parser) parseIdentOrNumeric() (ari.Ident, error) {
	if p.peek().kind == tokNumericIdent {
		t := p.advance()
		return ari.Numeric(t.intVal), nil
	}
	t, err := p.expect(tokIdent)
	if err != nil {
		return ari.Ident{}, err
	}
	return ari.Symbolic(t.strVal), nil
}

func (p *parser) parseObjPath() (ari.ARI, error) {
	org, err := p.parseIdentOrNumeric()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokSlash); err != nil {
		return nil, err
	}
	model, err := p.parseIdentOrNumeric()
	if err != nil {
		return nil, err
	}
	var rev *ari.Revision
	if p.peek().kind == tokAt {
		at := p.advance()
		r, err := parseRevision(at.strVal)
		if err != nil {
			return nil, arierr.ParseError(at.pos, "parse: %v", err)
		}
		rev = &r
	}
	if _, err := p.expect(tokSlash); err != nil {
		return nil, err
	}
	objTypeTok, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	objType, ok := ari.ObjectTypeByName(objTypeTok.strVal)
	if !ok {
		return nil, arierr.ParseError(objTypeTok.pos, "parse: unknown object type %q", objTypeTok.strVal)
	}
	if _, err := p.expect(tokSlash); err != nil {
		return nil, err
	}
	namePos := p.peek().pos
	name, err := p.parseIdentOrNumeric()
	if err != nil {
		return nil, err
	}

	var params []ari.ARI
	if p.peek().kind == tokLParen {
		params, err = p.parseACBracket()
		if err != nil {
			return nil, err
		}
	}

	ref, err := ari.NewReference(ari.ObjectRef{
		Org: org, Model: model, Rev: rev,
		ObjType: objType, Name: name, Params: params,
	})
	if err != nil {
		return nil, arierr.ParseError(namePos, "parse: %v", err)
	}
	return ref, nil
}

// parseRelativeObjPath supports the supplemented "./model/TYPE/name" and
// "../model/TYPE/name" forms. Both name the model explicitly and leave a
// "." or ".." org placeholder, which Resolve replaces with the caller's
// current org; an explicit org after "../" is not accepted.
func (p *parser) parseRelativeObjPath() (ari.ARI, error) {
	up := p.peek().kind == tokDotDot
	p.advance()
	if _, err := p.expect(tokSlash); err != nil {
		return nil, err
	}
	model, err := p.parseIdentOrNumeric()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokSlash); err != nil {
		return nil, err
	}
	objTypeTok, err := p.expect(tokIdent)
	if err != nil {
		return nil, err
	}
	objType, ok := ari.ObjectTypeByName(objTypeTok.strVal)
	if !ok {
		return nil, arierr.ParseError(objTypeTok.pos, "parse: unknown object type %q", objTypeTok.strVal)
	}
	if _, err := p.expect(tokSlash); err != nil {
		return nil, err
	}
	namePos := p.peek().pos
	name, err := p.parseIdentOrNumeric()
	if err != nil {
		return nil, err
	}
	orgPlaceholder := "."
	if up {
		orgPlaceholder = ".."
	}
	ref, err := ari.NewReference(ari.ObjectRef{
		Org: ari.Symbolic(orgPlaceholder), Model: model,
		ObjType: objType, Name: name,
	})
	if err != nil {
		return nil, arierr.ParseError(namePos, "parse: %v", err)
	}
	return ref, nil
}

func parseRevision(s string) (ari.Revision, error) {
	var y, m, d int
	if _, err := fmt.Sscanf(s, "%04d-%02d-%02d", &y, &m, &d); err != nil {
		return ari.Revision{}, fmt.Errorf("invalid revision %q", s)
	}
	return ari.Revision{Year: y, Month: m, Day: d}, nil
}
