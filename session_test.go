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

package morel

import (
	"testing"

	"github.com/gtejedap/morel/ast"
)

var noPos ast.Pos

func lit(op ast.Op, v interface{}) *ast.Literal { return ast.NewLiteral(noPos, op, v) }

func intLit(v int64) *ast.Literal { return lit(ast.IntLiteral, v) }

// TestOnePlusTwo mirrors `1 + 2` => `val it = 3 : int`.
func TestOnePlusTwo(t *testing.T) {
	s := NewSession()
	node := ast.NewInfix(noPos, ast.Plus, intLit(1), intLit(2))
	res := s.Run(node)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if got, want := res.Output, "val it = 3 : int\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// TestValListBinding mirrors `val xs = [1,2,3]` => `val xs = [1,2,3] : int list`.
func TestValListBinding(t *testing.T) {
	s := NewSession()
	listExp := ast.NewListExp(noPos, []ast.Exp{intLit(1), intLit(2), intLit(3)})
	decl := ast.NewValDecl(noPos, false, []ast.ValBind{{Pat: ast.NewIdPat(noPos, "xs"), Exp: listExp}})
	res := s.Run(decl)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if got, want := res.Output, "val xs = [1,2,3] : int list\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// TestLetAndBinding mirrors `let val x = 3 and y = 4 in x + y end` =>
// `val it = 7 : int`.
func TestLetAndBinding(t *testing.T) {
	s := NewSession()
	decl := ast.NewValDecl(noPos, false, []ast.ValBind{
		{Pat: ast.NewIdPat(noPos, "x"), Exp: intLit(3)},
		{Pat: ast.NewIdPat(noPos, "y"), Exp: intLit(4)},
	})
	body := ast.NewInfix(noPos, ast.Plus, ast.NewId(noPos, "x"), ast.NewId(noPos, "y"))
	node := ast.NewLet(noPos, []ast.Decl{decl}, body)
	res := s.Run(node)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if got, want := res.Output, "val it = 7 : int\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// TestRecursiveFactorialStatement mirrors the two-statement sequence
// `val rec fact = fn 0 => 1 | n => n * fact (n - 1); fact 5`.
func TestRecursiveFactorialStatement(t *testing.T) {
	s := NewSession()

	factBody := ast.NewInfix(noPos, ast.Times,
		ast.NewId(noPos, "n"),
		ast.NewApply(noPos, ast.NewId(noPos, "fact"),
			ast.NewInfix(noPos, ast.Minus, ast.NewId(noPos, "n"), intLit(1))))

	fn := ast.NewFn(noPos, []ast.Match{
		{Pat: ast.NewLiteralPat(noPos, int64(0)), Exp: intLit(1)},
		{Pat: ast.NewIdPat(noPos, "n"), Exp: factBody},
	})
	decl := ast.NewValDecl(noPos, true, []ast.ValBind{{Pat: ast.NewIdPat(noPos, "fact"), Exp: fn}})

	res := s.Run(decl)
	if res.Err != nil {
		t.Fatalf("unexpected error preparing val rec: %v", res.Err)
	}
	if got, want := res.Output, "val fact = fn : int -> int\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}

	call := ast.NewApply(noPos, ast.NewId(noPos, "fact"), intLit(5))
	res2 := s.Run(call)
	if res2.Err != nil {
		t.Fatalf("unexpected error evaluating fact 5: %v", res2.Err)
	}
	if got, want := res2.Output, "val it = 120 : int\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// TestConsPatternDestructuring mirrors `(fn (x::xs) => x) [10,20,30]` =>
// `val it = 10 : int`.
func TestConsPatternDestructuring(t *testing.T) {
	s := NewSession()
	fn := ast.NewFn(noPos, []ast.Match{
		{Pat: ast.NewConsPat(noPos, ast.NewIdPat(noPos, "x"), ast.NewIdPat(noPos, "xs")), Exp: ast.NewId(noPos, "x")},
	})
	arg := ast.NewListExp(noPos, []ast.Exp{intLit(10), intLit(20), intLit(30)})
	node := ast.NewApply(noPos, fn, arg)
	res := s.Run(node)
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if got, want := res.Output, "val it = 10 : int\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

// TestNonExhaustiveMatchFailure mirrors `(fn 0 => 1) 2`, which raises a
// MatchFailure rather than a compile error.
func TestNonExhaustiveMatchFailure(t *testing.T) {
	s := NewSession()
	fn := ast.NewFn(noPos, []ast.Match{
		{Pat: ast.NewLiteralPat(noPos, int64(0)), Exp: intLit(1)},
	})
	node := ast.NewApply(noPos, fn, intLit(2))
	res := s.Run(node)
	if res.Err == nil {
		t.Fatalf("expected a MatchFailure, got none (output %q)", res.Output)
	}
}
