// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package ari

import "github.com/dtnma-ace/ace/lib/arierr"

// AC is an ARI collection literal: an ordered list of ARI values.
type AC struct {
	Items []ARI
}

func (*AC) isPrimitive() {}

// NewAC constructs an AC literal from items, copying the slice.
func NewAC(items []ARI) *AC {
	return &AC{Items: append([]ARI(nil), items...)}
}

// AMPair is one key/value entry of an AM literal.
type AMPair struct {
	Key   ARI
	Value ARI
}

// AM is an ARI ordered map literal. It is backed by a slice, not a Go
// map, so that insertion order survives encode/decode/format round
// trips (see DESIGN.md's "AM key ordering" decision).
type AM struct {
	Pairs []AMPair
}

func (*AM) isPrimitive() {}

// NewAM constructs an AM literal, rejecting duplicate keys under ARI
// equality (§3.2 invariant).
func NewAM(pairs []AMPair) (*AM, error) {
	for i, p := range pairs {
		for j := 0; j < i; j++ {
			if Equal(pairs[j].Key, p.Key) {
				return nil, arierr.InvariantViolation("am: duplicate key %v", p.Key)
			}
		}
	}
	return &AM{Pairs: append([]AMPair(nil), pairs...)}, nil
}

// Get looks up a value by key under ARI equality.
func (m *AM) Get(key ARI) (ARI, bool) {
	for _, p := range m.Pairs {
		if Equal(p.Key, key) {
			return p.Value, true
		}
	}
	return nil, false
}

// Table is an ARI table literal: a flat, row-major value list whose
// length is always a multiple of the declared column count.
type Table struct {
	Columns     int
	ColumnTypes []TypeRef
	Rows        []ARI
}

func (*Table) isPrimitive() {}

// NewTable constructs a Table, rejecting a row count that is not a
// multiple of columns.
func NewTable(columns int, columnTypes []TypeRef, rows []ARI) (*Table, error) {
	if columns <= 0 {
		return nil, arierr.InvariantViolation("tbl: column count must be positive, got %d", columns)
	}
	if len(rows)%columns != 0 {
		return nil, arierr.InvariantViolation("tbl: row value count %d is not a multiple of column count %d", len(rows), columns)
	}
	return &Table{Columns: columns, ColumnTypes: append([]TypeRef(nil), columnTypes...), Rows: append([]ARI(nil), rows...)}, nil
}

// NumRows returns the number of complete rows.
func (t *Table) NumRows() int { return len(t.Rows) / t.Columns }

// Cell returns the value at (row, col).
func (t *Table) Cell(row, col int) ARI { return t.Rows[row*t.Columns+col] }

// TbltField is one named, typed field of a Tblt literal.
type TbltField struct {
	Name  string
	Type  TypeRef
	Value ARI
}

// Tblt is a labeled-tuple literal: a fixed set of named, typed fields,
// distinct from Table's anonymous row/column grid.
type Tblt struct {
	Fields []TbltField
}

func (*Tblt) isPrimitive() {}

// NewTblt constructs a Tblt literal.
func NewTblt(fields []TbltField) *Tblt {
	return &Tblt{Fields: append([]TbltField(nil), fields...)}
}

// ExecSet is an execution-set literal: a nonce plus a list of target
// object references (typically CTRL references) to execute together.
type ExecSet struct {
	Nonce   ARI
	Targets []ARI
}

func (*ExecSet) isPrimitive() {}

// NewExecSet constructs an ExecSet with an explicit nonce.
func NewExecSet(nonce ARI, targets []ARI) *ExecSet {
	return &ExecSet{Nonce: nonce, Targets: append([]ARI(nil), targets...)}
}

// Report is one report entry of an RptSet: a relative time offset from
// the set's reference time, the reporting object, and its item values.
type Report struct {
	RelTime Timeperiod
	Source  ARI
	Items   []ARI
}

// RptSet is a report-set literal: a nonce, a reference time, and the
// reports collected relative to it.
type RptSet struct {
	Nonce   ARI
	RefTime Timepoint
	Reports []Report
}

func (*RptSet) isPrimitive() {}

// NewRptSet constructs an RptSet with an explicit nonce.
func NewRptSet(nonce ARI, refTime Timepoint, reports []Report) *RptSet {
	return &RptSet{Nonce: nonce, RefTime: refTime, Reports: append([]Report(nil), reports...)}
}
