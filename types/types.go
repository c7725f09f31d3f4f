// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package types implements the closed type universe: primitives, functions,
// tuples/records (via a row representation borrowed from row-polymorphic
// unification), lists, datatypes and type variables. Every Type has a
// canonical moniker; the TypeSystem interns by moniker so that structurally
// equal types are pointer-equal.
package types

import (
	"sort"
	"strconv"
	"strings"
)

// Type is implemented by every member of the closed type universe.
type Type interface {
	// Moniker is the canonical textual key used for interning.
	Moniker() string
	// Description is the user-facing rendering (identical to Moniker for
	// this closed universe, but kept distinct so printing concerns stay
	// out of the interning path).
	Description() string
	isType()
}

// Primitive is one of SML's six built-in base types.
type Primitive struct {
	name string
}

func (p *Primitive) Moniker() string     { return p.name }
func (p *Primitive) Description() string { return p.name }
func (*Primitive) isType()               {}

var (
	Unit   = &Primitive{"unit"}
	Bool   = &Primitive{"bool"}
	Char   = &Primitive{"char"}
	Int    = &Primitive{"int"}
	Real   = &Primitive{"real"}
	String = &Primitive{"string"}
)

// Arrow is a function type, Param -> Result.
type Arrow struct {
	Param, Result Type
}

func (a *Arrow) Moniker() string {
	return parenIfArrow(a.Param) + " -> " + a.Result.Moniker()
}
func (a *Arrow) Description() string { return a.Moniker() }
func (*Arrow) isType()               {}

func parenIfArrow(t Type) string {
	if _, ok := RealType(t).(*Arrow); ok {
		return "(" + t.Moniker() + ")"
	}
	return t.Moniker()
}

// Row is the tail of a record type: either RowEmpty (closed), a RowExtend
// link in a field chain, or an unbound Var standing for "more fields, not
// yet known" — used while inferring a record pattern's ellipsis (`{a, ...}`).
type Row interface {
	Type
	isRow()
}

// RowEmpty terminates a closed record row.
type RowEmpty struct{}

func (*RowEmpty) Moniker() string     { return "" }
func (*RowEmpty) Description() string { return "" }
func (*RowEmpty) isType()             {}
func (*RowEmpty) isRow()              {}

// RowExtend is one labelled field of a record, followed by the rest of the
// row. Fields are kept sorted by canonical label order as the row is built,
// so Moniker/Description never need to re-sort.
type RowExtend struct {
	Label string
	Field Type
	Rest  Row
}

func (r *RowExtend) Moniker() string {
	labels, fields, tail := FlattenRow(r)
	return recordMoniker(labels, fields, tail)
}
func (r *RowExtend) Description() string { return r.Moniker() }
func (*RowExtend) isType()               {}
func (*RowExtend) isRow()                {}

// Record wraps a row into a first-class type. A Record whose row is closed
// (terminates in RowEmpty) with labels "1","2",...,"n" in order is printed
// and treated as a tuple by callers that care (see IsTuple).
type Record struct {
	Row Row
}

func (r *Record) Moniker() string {
	labels, fields, tail := FlattenRow(r.Row)
	return recordMoniker(labels, fields, tail)
}
func (r *Record) Description() string { return r.Moniker() }
func (*Record) isType()               {}

// FlattenRow walks a row chain and returns its labels (in chain order,
// which is always canonical order by construction), their field types, and
// the terminating tail (RowEmpty, or an unresolved Var for an open row).
func FlattenRow(row Row) (labels []string, fields []Type, tail Row) {
	for {
		switch r := row.(type) {
		case *RowExtend:
			labels = append(labels, r.Label)
			fields = append(fields, r.Field)
			row = r.Rest
		case *RowEmpty:
			return labels, fields, r
		default:
			// An unbound row variable: open tail.
			return labels, fields, row
		}
	}
}

func recordMoniker(labels []string, fields []Type, tail Row) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, l := range labels {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(l)
		b.WriteByte(':')
		b.WriteString(fields[i].Moniker())
	}
	if _, closed := tail.(*RowEmpty); !closed {
		if len(labels) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
	}
	b.WriteByte('}')
	return b.String()
}

// NewRecordType builds a closed Record type from a label/type map, sorting
// labels into canonical order ("numeric first, then lexicographic").
func NewRecordType(fields map[string]Type) *Record {
	labels := make([]string, 0, len(fields))
	for l := range fields {
		labels = append(labels, l)
	}
	SortLabels(labels)
	var row Row = &RowEmpty{}
	for i := len(labels) - 1; i >= 0; i-- {
		row = &RowExtend{Label: labels[i], Field: fields[labels[i]], Rest: row}
	}
	return &Record{Row: row}
}

// NewTupleType builds a Record type whose labels are "1".."n" in order,
// SML's encoding of tuples as records.
func NewTupleType(elems []Type) *Record {
	var row Row = &RowEmpty{}
	for i := len(elems) - 1; i >= 0; i-- {
		row = &RowExtend{Label: strconv.Itoa(i + 1), Field: elems[i], Rest: row}
	}
	return &Record{Row: row}
}

// IsTuple reports whether r's labels are exactly "1",...,"n" in order, and
// if so returns the element types in position order.
func (r *Record) IsTuple() (elems []Type, ok bool) {
	labels, fields, tail := FlattenRow(r.Row)
	if _, closed := tail.(*RowEmpty); !closed {
		return nil, false
	}
	for i, l := range labels {
		if l != strconv.Itoa(i+1) {
			return nil, false
		}
	}
	return fields, true
}

// SortLabels sorts labels by ML's canonical record-field order: numeric
// labels first (in numeric order), then the rest lexicographically.
func SortLabels(labels []string) {
	sort.Slice(labels, func(i, j int) bool { return LabelLess(labels[i], labels[j]) })
}

// LabelLess implements the "numeric first, then lexicographic" ordering.
func LabelLess(a, b string) bool {
	na, aok := asLabelNum(a)
	nb, bok := asLabelNum(b)
	switch {
	case aok && bok:
		return na < nb
	case aok && !bok:
		return true
	case !aok && bok:
		return false
	default:
		return a < b
	}
}

func asLabelNum(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// ListType is the type `elem list`.
type ListType struct {
	Elem Type
}

func (l *ListType) Moniker() string     { return parenIfArrow(l.Elem) + " list" }
func (l *ListType) Description() string { return l.Moniker() }
func (*ListType) isType()               {}

// RealType dereferences a chain of linked type variables, returning the
// first non-Var (or unbound Var) type reachable from t.
func RealType(t Type) Type {
	for {
		v, ok := t.(*Var)
		if !ok || v.Link == nil {
			return t
		}
		t = v.Link
	}
}
