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
	"github.com/gtejedap/morel/eval"
)

// compileTopExp runs the full infer -> resolve -> compile pipeline for a
// bare top-level expression against s, the way PrepareStatement does.
func compileTopExp(s *testSession, e ast.Exp) (eval.Code, error) {
	if _, err := s.inf.InferExp(e); err != nil {
		return nil, err
	}
	ce, err := NewResolver(s.inf).ResolveExp(e)
	if err != nil {
		return nil, err
	}
	return s.comp.CompileExp(ce)
}

// TestCompileApplyOfBuiltinEvaluates mirrors `1 + 2` end to end through
// the compiler and the runtime evaluator.
func TestCompileApplyOfBuiltinEvaluates(t *testing.T) {
	s := newTestSession()
	code, err := compileTopExp(s, ast.NewInfix(noPos, ast.Plus, intLit(1), intLit(2)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, err := code.Eval(s.env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v.(int64) != 3 {
		t.Errorf("got %v, want 3", v)
	}
}

// TestCompileValRecBindsLinkCodeCell mirrors
// `val rec fact = fn 0 => 1 | n => n * fact (n - 1)`, checking the
// compiled right-hand side is the forward-reference cell itself and that
// calling the resulting closure with 5 yields 120.
func TestCompileValRecBindsLinkCodeCell(t *testing.T) {
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

	if _, err := s.inf.InferDecl(decl); err != nil {
		t.Fatalf("infer: %v", err)
	}
	cd, err := NewResolver(s.inf).ResolveDecl(decl)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	vd, err := s.comp.CompileDecl(cd)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if _, ok := vd.Rhs.(*eval.LinkCode); !ok {
		t.Fatalf("ValDecl.Rhs = %T, want *eval.LinkCode", vd.Rhs)
	}

	fv, err := vd.Rhs.Eval(s.env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	fc := fv.(eval.Callable)
	got, err := fc.Call(int64(5))
	if err != nil {
		t.Fatalf("fact 5: %v", err)
	}
	if got.(int64) != 120 {
		t.Errorf("fact 5 = %v, want 120", got)
	}
}

// TestCompileIdOutsideRecLooksUpRuntime mirrors a plain reference to a
// previously-bound name, checking it compiles to an ordinary Lookup
// rather than an inlined cell (only `val rec` self-references do that).
func TestCompileIdOutsideRecLooksUpRuntime(t *testing.T) {
	s := newTestSession()
	decl := ast.NewValDecl(noPos, false, []ast.ValBind{{Pat: ast.NewIdPat(noPos, "x"), Exp: intLit(3)}})
	env, err := s.inf.InferDecl(decl)
	if err != nil {
		t.Fatalf("infer: %v", err)
	}
	s.inf.Env = env
	cd, err := NewResolver(s.inf).ResolveDecl(decl)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	vd, err := s.comp.CompileDecl(cd)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	rhsVal, err := vd.Rhs.Eval(s.env)
	if err != nil {
		t.Fatalf("eval rhs: %v", err)
	}
	bound, ok := eval.Bind(vd.Pat, rhsVal, s.env)
	if !ok {
		t.Fatalf("bind failed")
	}

	code, err := compileTopExp(s, ast.NewId(noPos, "x"))
	if err != nil {
		t.Fatalf("compile reference to x: %v", err)
	}
	if _, ok := code.(eval.Lookup); !ok {
		t.Fatalf("reference to x compiled to %T, want eval.Lookup", code)
	}
	v, err := code.Eval(bound)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if v.(int64) != 3 {
		t.Errorf("x = %v, want 3", v)
	}
}
