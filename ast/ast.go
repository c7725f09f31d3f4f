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

package ast

// Pos is a source position, carried by TypeError per the error design.
// The lexer/parser that produces it is an external collaborator; Pos is
// opaque here beyond its string rendering.
type Pos struct {
	Line, Col int
}

func (p Pos) String() string {
	if p.Line == 0 {
		return "?"
	}
	return itoa(p.Line) + ":" + itoa(p.Col)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b [20]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		b[i] = '-'
	}
	return string(b[i:])
}

// Exp is any surface expression node.
type Exp interface {
	Op() Op
	Pos() Pos
}

// Pat is any surface pattern node.
type Pat interface {
	Op() Op
	Pos() Pos
}

// Decl is any surface declaration node.
type Decl interface {
	Op() Op
	Pos() Pos
}

type base struct {
	op Op
	at Pos
}

func (b base) Op() Op  { return b.op }
func (b base) Pos() Pos { return b.at }

// Literal is a constant of one of the six primitive kinds; Value is a
// bool, rune (char), int64, float64, or string respectively, and nil for
// UnitLiteral.
type Literal struct {
	base
	Value interface{}
}

func NewLiteral(at Pos, op Op, value interface{}) *Literal {
	return &Literal{base{op, at}, value}
}

// IdExp references a lexical binding by name.
type IdExp struct {
	base
	Name string
}

func NewId(at Pos, name string) *IdExp { return &IdExp{base{Id, at}, name} }

// IfExp is `if Cond then Then else Else`.
type IfExp struct {
	base
	Cond, Then, Else Exp
}

func NewIf(at Pos, cond, then, els Exp) *IfExp {
	return &IfExp{base{If, at}, cond, then, els}
}

// Match is one `pat => exp` clause of a Fn or Case.
type Match struct {
	Pat Pat
	Exp Exp
}

// FnExp is `fn p1 => e1 | p2 => e2 | ...`.
type FnExp struct {
	base
	Matches []Match
}

func NewFn(at Pos, matches []Match) *FnExp { return &FnExp{base{Fn, at}, matches} }

// CaseExp is `case Scrutinee of p1 => e1 | ...`.
type CaseExp struct {
	base
	Scrutinee Exp
	Matches   []Match
}

func NewCase(at Pos, scrutinee Exp, matches []Match) *CaseExp {
	return &CaseExp{base{Case, at}, scrutinee, matches}
}

// LetExp is `let d1; d2; ...; dn in Body end`.
type LetExp struct {
	base
	Decls []Decl
	Body  Exp
}

func NewLet(at Pos, decls []Decl, body Exp) *LetExp {
	return &LetExp{base{Let, at}, decls, body}
}

// ApplyExp is function application, Fn applied to Arg.
type ApplyExp struct {
	base
	Fn, Arg Exp
}

func NewApply(at Pos, fn, arg Exp) *ApplyExp { return &ApplyExp{base{Apply, at}, fn, arg} }

// InfixExp is `A op B` for one of the fixed infix operators; the resolver
// rewrites it to a core Apply(FnLiteral(op), Tuple(A,B)), except for
// andalso/orelse, which it lowers to the Case encoding of `if`.
type InfixExp struct {
	base
	A, B Exp
}

func NewInfix(at Pos, op Op, a, b Exp) *InfixExp { return &InfixExp{base{op, at}, a, b} }

// TupleExp is `(e1, e2, ..., en)`.
type TupleExp struct {
	base
	Elems []Exp
}

func NewTuple(at Pos, elems []Exp) *TupleExp { return &TupleExp{base{Tuple, at}, elems} }

// LabelExp is one `label = exp` field of a RecordExp.
type LabelExp struct {
	Label string
	Exp   Exp
}

// RecordExp is `{l1 = e1, l2 = e2, ...}`.
type RecordExp struct {
	base
	Fields []LabelExp
}

func NewRecord(at Pos, fields []LabelExp) *RecordExp {
	return &RecordExp{base{Record, at}, fields}
}

// ListExp is `[e1, e2, ..., en]`.
type ListExp struct {
	base
	Elems []Exp
}

func NewListExp(at Pos, elems []Exp) *ListExp { return &ListExp{base{List, at}, elems} }

// FromStep is one where/group/order step of a From expression.
type FromStep interface {
	Op() Op
}

// WhereExp filters: `where Pred`.
type WhereExp struct {
	Pred Exp
}

func (WhereExp) Op() Op { return WhereStep }

// AggregateItem is one `name = aggFn arg` of a group...compute clause.
type AggregateItem struct {
	Name string
	Agg  Exp // the aggregate function, e.g. `count` or `sum`
	Arg  Exp // nil for aggregates that take no argument, e.g. `count`
}

// GroupExp partitions by Keys and computes Aggregates per partition.
type GroupExp struct {
	Keys       []LabelExp
	Aggregates []AggregateItem
}

func (GroupExp) Op() Op { return GroupStep }

// OrderItem is one `exp [asc|desc]` sort key.
type OrderItem struct {
	Exp   Exp
	Desc  bool
}

// OrderExp sorts by Items, stably, ties preserving input order.
type OrderExp struct {
	Items []OrderItem
}

func (OrderExp) Op() Op { return OrderStep }

// FromSource is one `pat in exp` clause of a From expression's source list.
type FromSource struct {
	Pat Pat
	Exp Exp
}

// FromExp is `from src1, src2, ... step1 step2 ... yield Yield`. Yield is
// nil when the query has no explicit yield clause (defaults to the record
// of all bound source fields, resolved later).
type FromExp struct {
	base
	Sources []FromSource
	Steps   []FromStep
	Yield   Exp
}

func NewFrom(at Pos, sources []FromSource, steps []FromStep, yield Exp) *FromExp {
	return &FromExp{base{From, at}, sources, steps, yield}
}

// --- Patterns ---

// IdPatNode binds a value to Name. Wildcards are a distinct node
// (WildcardPatNode) so the resolver never needs to special-case "_".
type IdPatNode struct {
	base
	Name string
}

func NewIdPat(at Pos, name string) *IdPatNode { return &IdPatNode{base{IdPat, at}, name} }

type WildcardPatNode struct{ base }

func NewWildcardPat(at Pos) *WildcardPatNode { return &WildcardPatNode{base{WildcardPat, at}} }

type LiteralPatNode struct {
	base
	Value interface{}
}

func NewLiteralPat(at Pos, value interface{}) *LiteralPatNode {
	return &LiteralPatNode{base{LiteralPat, at}, value}
}

// ConPatNode matches a datatype constructor, Arg nil for a 0-ary ctor.
type ConPatNode struct {
	base
	Name string
	Arg  Pat
}

func NewConPat(at Pos, name string, arg Pat) *ConPatNode {
	return &ConPatNode{base{ConPat, at}, name, arg}
}

type TuplePatNode struct {
	base
	Elems []Pat
}

func NewTuplePat(at Pos, elems []Pat) *TuplePatNode {
	return &TuplePatNode{base{TuplePat, at}, elems}
}

// LabelPat is one `label = pat` field of a RecordPatNode.
type LabelPat struct {
	Label string
	Pat   Pat
}

// RecordPatNode is `{l1 = p1, ..., [...]}`; Ellipsis marks the `...` that
// permits omitted labels (the record's value may carry fields this
// pattern doesn't mention). The resolver expands and reorders Fields to
// the record type's canonical label order before handing the pattern to
// the compiler.
type RecordPatNode struct {
	base
	Fields   []LabelPat
	Ellipsis bool
}

func NewRecordPat(at Pos, fields []LabelPat, ellipsis bool) *RecordPatNode {
	return &RecordPatNode{base{RecordPat, at}, fields, ellipsis}
}

type ListPatNode struct {
	base
	Elems []Pat
}

func NewListPat(at Pos, elems []Pat) *ListPatNode {
	return &ListPatNode{base{ListPat, at}, elems}
}

// ConsPatNode is `Head :: Tail`.
type ConsPatNode struct {
	base
	Head, Tail Pat
}

func NewConsPat(at Pos, head, tail Pat) *ConsPatNode {
	return &ConsPatNode{base{ConsPat, at}, head, tail}
}

// --- Declarations ---

// ValBind is one `pat = exp` clause of a (possibly `and`-joined) ValDecl.
type ValBind struct {
	Pat Pat
	Exp Exp
}

// ValDeclNode is `val [rec] x1 = e1 [and x2 = e2 ...]`. Rec is the logical
// OR of however many clauses carried the `rec` keyword (SML attaches `rec`
// once per `val`, but the resolver treats it this way per the simultaneous
// `and`-binding rewrite).
type ValDeclNode struct {
	base
	Rec   bool
	Binds []ValBind
}

func NewValDecl(at Pos, rec bool, binds []ValBind) *ValDeclNode {
	return &ValDeclNode{base{ValDecl, at}, rec, binds}
}

// DatatypeBind is one `name params = Ctor1 [of ty1] | Ctor2 [of ty2] | ...`
// clause of a (possibly simultaneous) datatype declaration.
type DatatypeBind struct {
	Name    string
	Params  []string
	CtorOrd []string
	Ctors   map[string]TypeExp // nil TypeExp for a 0-ary constructor
}

// TypeExp is a surface type expression, as written in a `datatype` or
// annotation; kept minimal since the spec's inferencer does not need rich
// surface type syntax beyond constructor argument types.
type TypeExp interface{ typeExpTag() }

type VarTypeExp struct{ Name string }
type ConTypeExp struct {
	Name string
	Args []TypeExp
}
type TupleTypeExp struct{ Elems []TypeExp }
type FnTypeExp struct{ Param, Result TypeExp }

func (VarTypeExp) typeExpTag()   {}
func (ConTypeExp) typeExpTag()   {}
func (TupleTypeExp) typeExpTag() {}
func (FnTypeExp) typeExpTag()    {}

// DatatypeDeclNode is a (possibly simultaneous, `and`-joined) set of
// mutually-recursive datatype declarations.
type DatatypeDeclNode struct {
	base
	Binds []DatatypeBind
}

func NewDatatypeDecl(at Pos, binds []DatatypeBind) *DatatypeDeclNode {
	return &DatatypeDeclNode{base{DatatypeDecl, at}, binds}
}
