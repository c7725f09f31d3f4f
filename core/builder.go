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

package core

import (
	"github.com/gtejedap/morel/ast"
	"github.com/gtejedap/morel/types"
)

// Builder centralises core-node construction the way CoreBuilder does in
// the reference implementation: callers never build a node struct
// directly, so adding a required invariant (e.g. interning, slot
// numbering) only needs a change in one place.
type Builder struct{ TS *types.TypeSystem }

func NewBuilder(ts *types.TypeSystem) *Builder { return &Builder{TS: ts} }

func (b *Builder) Id(name string, ty types.Type) *Id { return &Id{Name: name, Ty: ty} }

func (b *Builder) Literal(value interface{}, ty types.Type) *Literal {
	return &Literal{Value: value, Ty: ty}
}

// BuiltInLiteral builds the function-literal core encodes an infix
// operator or a named built-in (Z_LIST, List.map, ...) as, per the
// universal infix-encoding rule: an Apply whose Fn is this literal
// prints and compiles as the built-in it names.
func (b *Builder) BuiltInLiteral(name string, op ast.Op, isInfix bool, ty types.Type) *Literal {
	return &Literal{Value: &BuiltIn{Name: name, Op: op, IsInfix: isInfix}, Ty: ty}
}

func (b *Builder) Tuple(elems []Exp, ty types.Type) *Tuple {
	return &Tuple{Elems: elems, Ty: ty}
}

func (b *Builder) Apply(fn, arg Exp, ty types.Type) *Apply {
	return &Apply{Fn: fn, Arg: arg, Ty: ty}
}

// ApplyInfix builds Apply(BuiltInLiteral(op), Tuple(a, b)) — the
// resolver's infix rewrite, factored out so both the resolver and any
// test fixtures build the exact same shape.
func (b *Builder) ApplyInfix(op ast.Op, a, b2 Exp, operandTy, resultTy types.Type) *Apply {
	fnTy := b.TS.Fn(b.TS.Tuple(operandTy, operandTy), resultTy)
	lit := b.BuiltInLiteral(ast.Symbol(op), op, true, fnTy)
	tup := b.Tuple([]Exp{a, b2}, b.TS.Tuple(a.Type(), b2.Type()))
	return b.Apply(lit, tup, resultTy)
}

// ApplyZList builds Apply(BuiltInLiteral(Z_LIST), Tuple(elems)) — the
// resolver's list-literal rewrite.
func (b *Builder) ApplyZList(elems []Exp, elemTy types.Type) *Apply {
	listTy := b.TS.List(elemTy)
	argTupleTy := make([]types.Type, len(elems))
	for i, e := range elems {
		argTupleTy[i] = e.Type()
	}
	fnTy := b.TS.Fn(b.TS.Tuple(argTupleTy...), listTy)
	lit := b.BuiltInLiteral(ZList, ast.List, false, fnTy)
	return b.Apply(lit, b.Tuple(elems, b.TS.Tuple(argTupleTy...)), listTy)
}

// FieldSelect builds Apply(RecordSelector{Slot}, row) — a projection of
// row's Slot-th canonical field, used wherever a from-query's bare field
// reference is resolved against the whole row it was never explicitly
// destructured from.
func (b *Builder) FieldSelect(row Exp, slot int, fieldTy types.Type) *Apply {
	sel := &RecordSelector{Slot: slot, Ty: b.TS.Fn(row.Type(), fieldTy)}
	return b.Apply(sel, row, fieldTy)
}

func (b *Builder) Fn(matches []Match, ty types.Type) *Fn { return &Fn{Matches: matches, Ty: ty} }

func (b *Builder) Case(scrutinee Exp, matches []Match, ty types.Type) *Case {
	return &Case{Scrutinee: scrutinee, Matches: matches, Ty: ty}
}

// If builds the Case encoding of `if cond then t else e`, per the
// resolver's if-to-case rewrite.
func (b *Builder) If(cond, then, els Exp) *Case {
	return b.Case(cond, []Match{
		{Pat: &LiteralPat{Value: true, Ty: types.Bool}, Body: then},
		{Pat: &WildcardPat{Ty: types.Bool}, Body: els},
	}, then.Type())
}

func (b *Builder) Let(decl Decl, body Exp, ty types.Type) *Let {
	return &Let{Decl: decl, Body: body, Ty: ty}
}

func (b *Builder) ValDecl(rec bool, pat Pat, exp Exp) *ValDecl {
	return &ValDecl{Rec: rec, Pat: pat, Exp: exp}
}
