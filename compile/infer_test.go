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

package compile

import (
	"testing"

	"github.com/gtejedap/morel/ast"
	"github.com/gtejedap/morel/types"
	"github.com/kr/pretty"
)

var noPos ast.Pos

func intLit(v int64) *ast.Literal { return ast.NewLiteral(noPos, ast.IntLiteral, v) }

// TestInferInfixAppliesBuiltinScheme mirrors `1 + 2 : int`.
func TestInferInfixAppliesBuiltinScheme(t *testing.T) {
	s := newTestSession()
	e := ast.NewInfix(noPos, ast.Plus, intLit(1), intLit(2))
	ty, err := s.inf.InferExp(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.Moniker() != "int" {
		t.Errorf("type = %s, want int", ty.Moniker())
	}
}

// TestInferIfUnifiesBranches mirrors `if true then 1 else 2 : int`.
func TestInferIfUnifiesBranches(t *testing.T) {
	s := newTestSession()
	e := ast.NewIf(noPos, ast.NewId(noPos, "true"), intLit(1), intLit(2))
	ty, err := s.inf.InferExp(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.Moniker() != "int" {
		t.Errorf("type = %s, want int", ty.Moniker())
	}
}

// TestInferIfBranchMismatchFails mirrors `if true then 1 else "x"`, a
// type error since the branches disagree.
func TestInferIfBranchMismatchFails(t *testing.T) {
	s := newTestSession()
	e := ast.NewIf(noPos, ast.NewId(noPos, "true"), intLit(1), ast.NewLiteral(noPos, ast.StringLiteral, "x"))
	if _, err := s.inf.InferExp(e); err == nil {
		t.Fatalf("expected a type error, got none")
	}
}

// TestInferUnboundIdentifierFails mirrors referencing a name nothing
// binds.
func TestInferUnboundIdentifierFails(t *testing.T) {
	s := newTestSession()
	if _, err := s.inf.InferExp(ast.NewId(noPos, "nope")); err == nil {
		t.Fatalf("expected an unbound-identifier error, got none")
	}
}

// TestInferLetGeneralizesIdentityFunction mirrors
// `let val id = fn x => x in (id 1, id true) end`, which only type-checks
// because `id`'s scheme is generalized over its argument's type variable
// at the let boundary rather than fixed to int by its first use.
func TestInferLetGeneralizesIdentityFunction(t *testing.T) {
	s := newTestSession()
	idFn := ast.NewFn(noPos, []ast.Match{
		{Pat: ast.NewIdPat(noPos, "x"), Exp: ast.NewId(noPos, "x")},
	})
	decl := ast.NewValDecl(noPos, false, []ast.ValBind{{Pat: ast.NewIdPat(noPos, "id"), Exp: idFn}})
	body := ast.NewTuple(noPos, []ast.Exp{
		ast.NewApply(noPos, ast.NewId(noPos, "id"), intLit(1)),
		ast.NewApply(noPos, ast.NewId(noPos, "id"), ast.NewId(noPos, "true")),
	})
	e := ast.NewLet(noPos, []ast.Decl{decl}, body)
	ty, err := s.inf.InferExp(e)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ty.Moniker() != "int * bool" {
		t.Errorf("type = %s, want int * bool", ty.Moniker())
	}
}

// TestInferValRecFactorial mirrors `val rec fact = fn 0 => 1 | n => n * fact(n-1)`,
// checking the bound scheme is `int -> int`.
func TestInferValRecFactorial(t *testing.T) {
	s := newTestSession()
	factBody := ast.NewInfix(noPos, ast.Times,
		ast.NewId(noPos, "n"),
		ast.NewApply(noPos, ast.NewId(noPos, "fact"),
			ast.NewInfix(noPos, ast.Minus, ast.NewId(noPos, "n"), intLit(1))))
	fn := ast.NewFn(noPos, []ast.Match{
		{Pat: ast.NewLiteralPat(noPos, int64(0)), Exp: intLit(1)},
		{Pat: ast.NewIdPat(noPos, "n"), Exp: factBody},
	})
	decl := ast.NewValDecl(noPos, true, []ast.ValBind{{Pat: ast.NewIdPat(noPos, "fact"), Exp: fn}})

	env, err := s.inf.InferDecl(decl)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, ok := env.Lookup("fact")
	if !ok {
		t.Fatalf("fact not bound")
	}
	if got, want := b.Scheme.Type.Moniker(), "int -> int"; got != want {
		t.Errorf("fact : %s, want %s", got, want)
	}
}

// TestInferAndBindingsUseOriginalEnvironment mirrors
// `let val x = 3 and y = x in ... end`, which must fail to type-check
// because the `and` group's right-hand sides are typed against the
// environment as it stood before the declaration, not against each
// other's bindings.
func TestInferAndBindingsUseOriginalEnvironment(t *testing.T) {
	s := newTestSession()
	decl := ast.NewValDecl(noPos, false, []ast.ValBind{
		{Pat: ast.NewIdPat(noPos, "x"), Exp: intLit(3)},
		{Pat: ast.NewIdPat(noPos, "y"), Exp: ast.NewId(noPos, "x")},
	})
	if _, err := s.inf.InferDecl(decl); err == nil {
		t.Fatalf("expected an unbound-identifier error for y's use of x, got none")
	}
}

// TestInferEmptyListLeavesOpenElementVar mirrors `[]`, whose element type
// is an unconstrained variable until DefaultUnresolved links it.
func TestInferEmptyListLeavesOpenElementVar(t *testing.T) {
	s := newTestSession()
	ty, err := s.inf.InferExp(ast.NewListExp(noPos, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lt, ok := types.RealType(ty).(*types.ListType)
	if !ok {
		t.Fatalf("type = %s, want *types.ListType", pretty.Sprint(ty))
	}
	if _, ok := types.RealType(lt.Elem).(*types.Var); !ok {
		t.Fatalf("element type = %T, want an unbound *types.Var before defaulting", lt.Elem)
	}
	DefaultUnresolved(ty)
	if got, want := ty.Moniker(), "unit list"; got != want {
		t.Errorf("after defaulting, type = %s, want %s", got, want)
	}
}

// TestInferFromWhereYieldRecordsFieldOrder mirrors
// `from x in [1,2,3] where x > 1`, with no explicit yield, checking the
// implicit yield is the record of the bound source fields, {x:int}, and
// that FromFields records its field order.
func TestInferFromWhereYieldRecordsFieldOrder(t *testing.T) {
	s := newTestSession()
	src := ast.FromSource{Pat: ast.NewIdPat(noPos, "x"), Exp: ast.NewListExp(noPos, []ast.Exp{intLit(1), intLit(2), intLit(3)})}
	pred := ast.NewInfix(noPos, ast.Gt, ast.NewId(noPos, "x"), intLit(1))
	from := ast.NewFrom(noPos, []ast.FromSource{src}, []ast.FromStep{ast.WhereExp{Pred: pred}}, nil)

	ty, err := s.inf.InferExp(from)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lt, ok := types.RealType(ty).(*types.ListType)
	if !ok {
		t.Fatalf("type = %T, want *types.ListType", ty)
	}
	if lt.Elem.Moniker() != "{x:int}" {
		t.Errorf("element type = %s, want {x:int} (the record of the bound source fields)", lt.Elem.Moniker())
	}

	fields := s.inf.FromFields[from]
	if fields == nil {
		t.Fatalf("FromFields[from] not recorded")
	}
	if len(fields.Order) != 1 || fields.Order[0] != "x" {
		t.Errorf("FromFields.Order = %v, want [x]", fields.Order)
	}
}
