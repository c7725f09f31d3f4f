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

// Package core defines the core AST: the normalised, fully-typed form the
// resolver produces and the compiler consumes. Every node is immutable
// once built and carries its inferred type; node kinds dispatch by Go
// type switch rather than by visitor, so adding a case the compiler or
// printer doesn't handle is a compile-time error at every consumer.
package core

import (
	"github.com/gtejedap/morel/ast"
	"github.com/gtejedap/morel/types"
)

// Pat is a core pattern: identifier, literal, wildcard, 0-/1-ary
// constructor, tuple, list, record (already expanded to one sub-pattern
// per label, in the record type's canonical order) or cons.
type Pat interface {
	Op() ast.Op
	Type() types.Type
}

// Exp is a core expression.
type Exp interface {
	Op() ast.Op
	Type() types.Type
}

// Decl is a core declaration: either a value binding or a datatype
// declaration (purely compile-time, contributes nothing to evaluation).
type Decl interface {
	Op() ast.Op
}

// --- Patterns ---

type IdPat struct {
	Name string
	Ty   types.Type
}

func (p *IdPat) Op() ast.Op      { return ast.IdPat }
func (p *IdPat) Type() types.Type { return p.Ty }

type WildcardPat struct{ Ty types.Type }

func (p *WildcardPat) Op() ast.Op       { return ast.WildcardPat }
func (p *WildcardPat) Type() types.Type { return p.Ty }

type LiteralPat struct {
	Value interface{}
	Ty    types.Type
}

func (p *LiteralPat) Op() ast.Op       { return ast.LiteralPat }
func (p *LiteralPat) Type() types.Type { return p.Ty }

// ConPat matches a datatype constructor. Arg is nil for a 0-ary ctor.
type ConPat struct {
	Name string
	Arg  Pat
	Ty   types.Type
}

func (p *ConPat) Op() ast.Op       { return ast.ConPat }
func (p *ConPat) Type() types.Type { return p.Ty }

type TuplePat struct {
	Elems []Pat
	Ty    types.Type
}

func (p *TuplePat) Op() ast.Op       { return ast.TuplePat }
func (p *TuplePat) Type() types.Type { return p.Ty }

// RecordFieldPat is one expanded `label = pat` slot of a RecordPat.
type RecordFieldPat struct {
	Label string
	Pat   Pat
}

// RecordPat always carries exactly one sub-pattern per label of its
// record type, in the type's canonical label order (the resolver's
// expand-record-pattern rewrite guarantees this before the compiler ever
// sees one).
type RecordPat struct {
	Fields []RecordFieldPat
	Ty     types.Type
}

func (p *RecordPat) Op() ast.Op       { return ast.RecordPat }
func (p *RecordPat) Type() types.Type { return p.Ty }

type ListPat struct {
	Elems []Pat
	Ty    types.Type
}

func (p *ListPat) Op() ast.Op       { return ast.ListPat }
func (p *ListPat) Type() types.Type { return p.Ty }

type ConsPat struct {
	Head, Tail Pat
	Ty         types.Type
}

func (p *ConsPat) Op() ast.Op       { return ast.ConsPat }
func (p *ConsPat) Type() types.Type { return p.Ty }

// --- Expressions ---

// BuiltIn identifies a built-in function by name; it is the value a
// Literal carries when it stands for a function, the core encoding of
// infix operators and list literals (Resolver's FnLiteral(op)). Op is set
// for the operators that also have surface infix syntax (so the printer
// can re-derive `a + b` instead of printing a call); it is the ast.Op
// zero value (BoolLiteral) for named built-ins like Z_LIST or List.map,
// which the printer special-cases by Name instead.
type BuiltIn struct {
	Name   string
	Op     ast.Op
	IsInfix bool
}

// ZList is the built-in Apply's Fn position resolves a list literal to.
const ZList = "Z_LIST"

type Literal struct {
	Value interface{} // primitive value, or *BuiltIn
	Ty    types.Type
}

func (e *Literal) Op() ast.Op       { return opForLiteral(e.Value) }
func (e *Literal) Type() types.Type { return e.Ty }

func opForLiteral(v interface{}) ast.Op {
	switch v.(type) {
	case bool:
		return ast.BoolLiteral
	case rune:
		return ast.CharLiteral
	case int64, int:
		return ast.IntLiteral
	case float64:
		return ast.RealLiteral
	case string:
		return ast.StringLiteral
	case *BuiltIn:
		return ast.Id // a function literal prints/behaves like an identifier reference
	default:
		return ast.UnitLiteral
	}
}

type Id struct {
	Name string
	Ty   types.Type
}

func (e *Id) Op() ast.Op       { return ast.Id }
func (e *Id) Type() types.Type { return e.Ty }

// RecordSelector projects the Slot-th field (zero-based) of its record
// argument; Ty is the Arrow record -> field.
type RecordSelector struct {
	Slot int
	Ty   types.Type
}

func (e *RecordSelector) Op() ast.Op       { return ast.Id }
func (e *RecordSelector) Type() types.Type { return e.Ty }

// Tuple evaluates its elements left to right; records are represented as
// a Tuple over the record type's canonical label order (the resolver
// performs this conversion, so by the time the compiler sees a Tuple its
// Ty may be either a tuple-shaped or label-shaped *types.Record).
type Tuple struct {
	Elems []Exp
	Ty    types.Type
}

func (e *Tuple) Op() ast.Op       { return ast.Tuple }
func (e *Tuple) Type() types.Type { return e.Ty }

// WithElems returns a Tuple with Elems replaced by elems, or e itself
// if elems is pointer-identical element-wise to e.Elems (used by the
// optimiser's fixpoint check).
func (e *Tuple) WithElems(elems []Exp) *Tuple {
	if sameExps(e.Elems, elems) {
		return e
	}
	return &Tuple{Elems: elems, Ty: e.Ty}
}

func sameExps(a, b []Exp) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

type Apply struct {
	Fn, Arg Exp
	Ty      types.Type
}

func (e *Apply) Op() ast.Op       { return ast.Apply }
func (e *Apply) Type() types.Type { return e.Ty }

func (e *Apply) WithChildren(fn, arg Exp) *Apply {
	if fn == e.Fn && arg == e.Arg {
		return e
	}
	return &Apply{Fn: fn, Arg: arg, Ty: e.Ty}
}

// Match is one (pattern, body) clause of a Fn or Case.
type Match struct {
	Pat  Pat
	Body Exp
}

// Fn is always single-argument; a multi-clause source fn keeps all of its
// clauses here as Matches, the same list a Case scrutinee would dispatch
// against, rather than being desugared into a separate case expression.
type Fn struct {
	Matches []Match
	Ty      types.Type
}

func (e *Fn) Op() ast.Op       { return ast.Fn }
func (e *Fn) Type() types.Type { return e.Ty }

// Case also encodes `if` (Case(c, [(true,a),(_,b)])).
type Case struct {
	Scrutinee Exp
	Matches   []Match
	Ty        types.Type
}

func (e *Case) Op() ast.Op       { return ast.Case }
func (e *Case) Type() types.Type { return e.Ty }

func (e *Case) WithScrutinee(s Exp) *Case {
	if s == e.Scrutinee {
		return e
	}
	return &Case{Scrutinee: s, Matches: e.Matches, Ty: e.Ty}
}

// Let's Decl is either a ValDecl or a DatatypeDecl.
type Let struct {
	Decl Decl
	Body Exp
	Ty   types.Type
}

func (e *Let) Op() ast.Op       { return ast.Let }
func (e *Let) Type() types.Type { return e.Ty }

func (e *Let) WithBody(body Exp) *Let {
	if body == e.Body {
		return e
	}
	return &Let{Decl: e.Decl, Body: body, Ty: e.Ty}
}

// --- From query ---

type FromSource struct {
	Pat Pat
	Exp Exp
}

type WhereStep struct{ Pred Exp }

func (WhereStep) Op() ast.Op { return ast.WhereStep }

// AggregateCall is one `name = aggFn arg` compute item; AggFn is the
// aggregate's *BuiltIn literal (count, sum, min, max, ...), Arg nil when
// the aggregate takes the whole partition (count).
type AggregateCall struct {
	Name  string
	AggFn Exp
	Arg   Exp
}

type GroupStep struct {
	KeyLabels []string
	KeyExps   []Exp
	Aggs      []AggregateCall
}

func (GroupStep) Op() ast.Op { return ast.GroupStep }

type OrderItem struct {
	Exp  Exp
	Desc bool
}

type OrderStep struct{ Items []OrderItem }

func (OrderStep) Op() ast.Op { return ast.OrderStep }

// FromStep is one of WhereStep, GroupStep, OrderStep.
type FromStep interface{ Op() ast.Op }

type From struct {
	Sources []FromSource
	Steps   []FromStep
	Yield   Exp
	Ty      types.Type
}

func (e *From) Op() ast.Op       { return ast.From }
func (e *From) Type() types.Type { return e.Ty }

// --- Declarations ---

// ValBind is one identifier-or-tuple-pattern binding; simultaneous `val
// ... and ...` bindings have already been flattened by the resolver into
// a single TuplePat/Tuple pair, so ValDecl never needs a slice of binds.
type ValDecl struct {
	Rec bool
	Pat Pat
	Exp Exp
}

func (*ValDecl) Op() ast.Op { return ast.ValDecl }

// DatatypeDecl contributes no runtime behaviour: it only extends the
// compile-time type environment with Types and their constructors.
type DatatypeDecl struct {
	Types []*types.DataType
}

func (*DatatypeDecl) Op() ast.Op { return ast.DatatypeDecl }
