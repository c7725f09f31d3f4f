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

// Package ast defines the surface syntax: the grammar the parser produces,
// before type inference or core lowering touch it.
package ast

// Op tags every AST node kind, surface and infix alike. The interpreter's
// own logic only ever compares tags (exhaustive switches in the resolver
// and printer); the precedence bands attached below exist for the
// pretty-printer and for deciding when surface parentheses are needed.
type Op int

const (
	// Literals and identifiers.
	BoolLiteral Op = iota
	CharLiteral
	IntLiteral
	RealLiteral
	StringLiteral
	UnitLiteral
	Id

	// Structural forms.
	If
	Fn
	Case
	Let
	Apply
	Tuple
	Record
	List
	From

	// Infix operators, each with its own precedence band. Listed in
	// increasing precedence. Comparison, ::, additive and multiplicative
	// operators keep SML's relative order; ^ has its own band above the
	// multiplicative operators.
	OrElse
	AndAlso
	Eq
	Ne
	Lt
	Gt
	Le
	Ge
	Cons
	Plus
	Minus
	Times
	Divide
	Div
	Mod
	Caret

	// Declarations.
	ValDecl
	DatatypeDecl

	// Patterns (share the Op space so a single switch can dispatch over
	// either an Exp or a Pat without ambiguity).
	IdPat
	LiteralPat
	WildcardPat
	ConPat
	TuplePat
	RecordPat
	ListPat
	ConsPat

	// From-query steps.
	WhereStep
	GroupStep
	OrderStep
)

// precedence holds the (left, right) binding-power band for each infix
// operator, used by the pretty-printer to decide when a sub-expression
// needs parenthesising. Non-infix ops are absent and treated as atomic
// (maximum precedence, never parenthesised by Infix itself).
var precedence = map[Op][2]int{
	OrElse:  {1, 2},
	AndAlso: {3, 4},
	Eq:      {5, 6}, Ne: {5, 6}, Lt: {5, 6}, Gt: {5, 6}, Le: {5, 6}, Ge: {5, 6},
	Cons:   {8, 7}, // right-associative: left band higher than right
	Plus:   {9, 10}, Minus: {9, 10},
	Times: {11, 12}, Divide: {11, 12}, Div: {11, 12}, Mod: {11, 12},
	Caret: {13, 14},
}

// Precedence returns op's (left, right) band and whether op is infix.
func Precedence(op Op) (left, right int, ok bool) {
	p, ok := precedence[op]
	if !ok {
		return 0, 0, false
	}
	return p[0], p[1], true
}

// Symbol returns the surface spelling of an infix operator, used by the
// pretty-printer, as the name the inferencer looks the operator's
// built-in up under, and as the name of the resolver's BuiltIn literal.
func Symbol(op Op) string {
	switch op {
	case OrElse:
		return "orelse"
	case AndAlso:
		return "andalso"
	case Eq:
		return "="
	case Ne:
		return "<>"
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Le:
		return "<="
	case Ge:
		return ">="
	case Cons:
		return "::"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Times:
		return "*"
	case Divide:
		return "/"
	case Div:
		return "div"
	case Mod:
		return "mod"
	case Caret:
		return "^"
	default:
		return ""
	}
}

// IsInfix reports whether op is one of the binary infix operators. The
// resolver rewrites each of them to Apply(FnLiteral(op), Tuple(a,b)),
// except andalso/orelse, which it lowers to the Case encoding of `if`.
func IsInfix(op Op) bool {
	_, ok := precedence[op]
	return ok
}
