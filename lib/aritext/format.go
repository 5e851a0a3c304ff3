// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package aritext

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dtnma-ace/ace/lib/adm"
	"github.com/dtnma-ace/ace/lib/ari"
	"github.com/dtnma-ace/ace/lib/arierr"
)

// TimeFormat selects how tp/td values are rendered.
type TimeFormat int

const (
	TimeFormatISO8601 TimeFormat = iota
	TimeFormatNumeric
)

// FloatFormat selects how real values are rendered.
type FloatFormat int

const (
	FloatFormatAuto FloatFormat = iota
	FloatFormatFixed
)

// FormatOptions configures text rendering, matching spec's four codec
// options: numeric vs. symbolic names, scheme-prefix inclusion, time
// format, and float format.
type FormatOptions struct {
	NumericNames bool
	TextIdentity bool // when true, emit the "ari:" scheme prefix
	TimeFormat   TimeFormat
	FloatFormat  FloatFormat
}

// Format renders a to its text form under opts. cat, if non-nil, is
// consulted to prefer a symbolic object name over a numeric one when the
// value being rendered only carries the enum form (see writeIdent).
func Format(a ari.ARI, cat *adm.Catalog, opts FormatOptions) (string, error) {
	var b strings.Builder
	if opts.TextIdentity {
		b.WriteString("ari:")
	}
	if err := formatInto(&b, a, cat, opts); err != nil {
		return "", err
	}
	return b.String(), nil
}

func formatInto(b *strings.Builder, a ari.ARI, cat *adm.Catalog, opts FormatOptions) error {
	switch v := a.(type) {
	case ari.Undefined:
		b.WriteString("/UNDEFINED")
		return nil
	case ari.Null:
		b.WriteString("/NULL")
		return nil
	case ari.Literal:
		return formatLiteral(b, v, cat, opts)
	case ari.Reference:
		return formatReference(b, v.Ref(), cat, opts)
	}
	return arierr.EncodeError("aritext: unknown ARI kind")
}

func formatLiteral(b *strings.Builder, lit ari.Literal, cat *adm.Catalog, opts FormatOptions) error {
	typ := lit.Type()
	if !typ.IsBuiltin {
		return formatGenericLiteral(b, typ.Builtin, lit.Value(), opts)
	}
	switch typ.Builtin {
	case ari.TypeAC:
		return formatAC(b, lit.Value().(*ari.AC), cat, opts)
	case ari.TypeAM:
		return formatAM(b, lit.Value().(*ari.AM), cat, opts)
	case ari.TypeTBL:
		return formatTBL(b, lit.Value().(*ari.Table), cat, opts)
	case ari.TypeExecSet:
		return formatExecSet(b, lit.Value().(*ari.ExecSet), cat, opts)
	case ari.TypeRptSet:
		return formatRptSet(b, lit.Value().(*ari.RptSet), cat, opts)
	case ari.TypeTblt:
		return formatTblt(b, lit.Value().(*ari.Tblt), cat, opts)
	default:
		return formatGenericLiteral(b, typ.Builtin, lit.Value(), opts)
	}
}

func formatGenericLiteral(b *strings.Builder, code ari.BuiltinType, v ari.Primitive, opts FormatOptions) error {
	fmt.Fprintf(b, "/%s/", code)
	s, err := formatScalar(v, opts)
	if err != nil {
		return err
	}
	b.WriteString(s)
	return nil
}

func formatScalar(v ari.Primitive, opts FormatOptions) (string, error) {
	switch x := v.(type) {
	case ari.Bool:
		if x {
			return "true", nil
		}
		return "false", nil
	case ari.Int64:
		return strconv.FormatInt(int64(x), 10), nil
	case ari.Uint64:
		return strconv.FormatUint(uint64(x), 10), nil
	case ari.Vast:
		return strconv.FormatInt(int64(x), 10), nil
	case ari.Uvast:
		return strconv.FormatUint(uint64(x), 10), nil
	case ari.Real32:
		return formatFloat(float64(x), opts), nil
	case ari.Real64:
		return formatFloat(float64(x), opts), nil
	case ari.Text:
		return `"` + percentEncode(string(x)) + `"`, nil
	case ari.Bytes:
		return "h'" + hexEncode(x) + "'", nil
	case ari.RawCBOR:
		return "h'" + hexEncode(x) + "'", nil
	case ari.Timepoint:
		return formatTimepoint(time.Time(x), opts), nil
	case ari.Timeperiod:
		return formatTimeperiod(time.Duration(x)), nil
	}
	return "", arierr.EncodeError("aritext: value has no text form")
}

func hexEncode(b []byte) string {
	const digits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, c := range b {
		out[i*2] = digits[c>>4]
		out[i*2+1] = digits[c&0xf]
	}
	return string(out)
}

func formatFloat(f float64, opts FormatOptions) string {
	switch {
	case f != f:
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if opts.FloatFormat == FloatFormatFixed {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatTimepoint(t time.Time, opts FormatOptions) string {
	if opts.TimeFormat == TimeFormatNumeric {
		return strconv.FormatInt(t.Unix(), 10)
	}
	return t.UTC().Format("2006-01-02T15:04:05.999999Z")
}

func formatTimeperiod(d time.Duration) string {
	neg := d < 0
	if neg {
		d = -d
	}
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	seconds := d.Seconds()

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('P')
	if days > 0 {
		fmt.Fprintf(&b, "%dD", days)
	}
	if hours > 0 || minutes > 0 || seconds > 0 {
		b.WriteByte('T')
		if hours > 0 {
			fmt.Fprintf(&b, "%dH", hours)
		}
		if minutes > 0 {
			fmt.Fprintf(&b, "%dM", minutes)
		}
		if seconds > 0 {
			b.WriteString(strconv.FormatFloat(seconds, 'f', -1, 64))
			b.WriteByte('S')
		}
	}
	return b.String()
}

func formatAC(b *strings.Builder, ac *ari.AC, cat *adm.Catalog, opts FormatOptions) error {
	b.WriteString("/AC/(")
	for i, item := range ac.Items {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := formatInto(b, item, cat, opts); err != nil {
			return err
		}
	}
	b.WriteByte(')')
	return nil
}

func formatAM(b *strings.Builder, am *ari.AM, cat *adm.Catalog, opts FormatOptions) error {
	b.WriteString("/AM/(")
	for i, p := range am.Pairs {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := formatInto(b, p.Key, cat, opts); err != nil {
			return err
		}
		b.WriteByte('=')
		if err := formatInto(b, p.Value, cat, opts); err != nil {
			return err
		}
	}
	b.WriteByte(')')
	return nil
}

func formatTBL(b *strings.Builder, tbl *ari.Table, cat *adm.Catalog, opts FormatOptions) error {
	fmt.Fprintf(b, "/TBL/c=%d;", tbl.Columns)
	for row := 0; row < tbl.NumRows(); row++ {
		b.WriteByte('(')
		for col := 0; col < tbl.Columns; col++ {
			if col > 0 {
				b.WriteByte(',')
			}
			if err := formatInto(b, tbl.Cell(row, col), cat, opts); err != nil {
				return err
			}
		}
		b.WriteByte(')')
	}
	return nil
}

func formatTblt(b *strings.Builder, t *ari.Tblt, cat *adm.Catalog, opts FormatOptions) error {
	b.WriteString("/TBLT(")
	for i, f := range t.Fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.Name)
		b.WriteByte('=')
		if err := formatInto(b, f.Value, cat, opts); err != nil {
			return err
		}
	}
	b.WriteByte(')')
	return nil
}

func formatExecSet(b *strings.Builder, es *ari.ExecSet, cat *adm.Catalog, opts FormatOptions) error {
	b.WriteString("/EXECSET/n=")
	if err := formatInto(b, es.Nonce, cat, opts); err != nil {
		return err
	}
	b.WriteByte(';')
	b.WriteByte('(')
	for i, t := range es.Targets {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := formatInto(b, t, cat, opts); err != nil {
			return err
		}
	}
	b.WriteByte(')')
	return nil
}

func formatRptSet(b *strings.Builder, rs *ari.RptSet, cat *adm.Catalog, opts FormatOptions) error {
	b.WriteString("/RPTSET/n=")
	if err := formatInto(b, rs.Nonce, cat, opts); err != nil {
		return err
	}
	b.WriteString(";r=")
	b.WriteString(formatTimepoint(time.Time(rs.RefTime), opts))
	b.WriteByte(';')
	b.WriteByte('(')
	for i, rep := range rs.Reports {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "t=%s;s=", formatTimeperiod(time.Duration(rep.RelTime)))
		if err := formatInto(b, rep.Source, cat, opts); err != nil {
			return err
		}
		b.WriteByte(';')
		b.WriteByte('(')
		for j, item := range rep.Items {
			if j > 0 {
				b.WriteByte(',')
			}
			if err := formatInto(b, item, cat, opts); err != nil {
				return err
			}
		}
		b.WriteByte(')')
	}
	b.WriteByte(')')
	return nil
}

func formatReference(b *strings.Builder, ref ari.ObjectRef, cat *adm.Catalog, opts FormatOptions) error {
	b.WriteString("//")
	writeIdent(b, ref.Org, opts.NumericNames)
	b.WriteByte('/')
	writeIdent(b, ref.Model, opts.NumericNames)
	if ref.Rev != nil {
		b.WriteByte('@')
		b.WriteString(ref.Rev.String())
	}
	b.WriteByte('/')
	b.WriteString(ref.ObjType.String())
	b.WriteByte('/')
	name := ref.Name
	if !opts.NumericNames && name.IsNumeric() && cat != nil {
		if resolved, ok := cat.ResolveObjectName(ref); ok {
			name = resolved
		}
	}
	writeIdent(b, name, opts.NumericNames)
	if len(ref.Params) > 0 {
		b.WriteByte('(')
		for i, p := range ref.Params {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := formatInto(b, p, cat, opts); err != nil {
				return err
			}
		}
		b.WriteByte(')')
	}
	return nil
}

func writeIdent(b *strings.Builder, id ari.Ident, numeric bool) {
	if numeric && id.HasEnum {
		b.WriteString(strconv.FormatInt(id.Enum, 10))
		return
	}
	if id.HasEnum && id.Text == "" {
		// No symbolic spelling is known for this identifier (the catalog
		// couldn't resolve it, or none was consulted): fall back to the
		// "!"-prefixed nickname form so the text round-trips.
		b.WriteByte('!')
		b.WriteString(strconv.FormatInt(id.Enum, 10))
		return
	}
	b.WriteString(percentEncode(id.String()))
}
