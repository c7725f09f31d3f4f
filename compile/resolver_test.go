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
	"github.com/gtejedap/morel/core"
	"github.com/kr/pretty"
)

// TestResolveInfixLowersToApplyOfBuiltin mirrors `1 + 2`, checking the
// resolver's universal infix encoding: Apply(BuiltInLiteral("+"), Tuple(a,b)).
func TestResolveInfixLowersToApplyOfBuiltin(t *testing.T) {
	s := newTestSession()
	e := ast.NewInfix(noPos, ast.Plus, intLit(1), intLit(2))
	if _, err := s.inf.InferExp(e); err != nil {
		t.Fatalf("infer: %v", err)
	}
	ce, err := NewResolver(s.inf).ResolveExp(e)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	ap, ok := ce.(*core.Apply)
	if !ok {
		t.Fatalf("resolved to %T, want *core.Apply", ce)
	}
	lit, ok := ap.Fn.(*core.Literal)
	if !ok {
		t.Fatalf("Apply.Fn = %T, want *core.Literal", ap.Fn)
	}
	bi, ok := lit.Value.(*core.BuiltIn)
	if !ok || bi.Name != "+" {
		t.Errorf("Apply.Fn's BuiltIn = %s, want name +", pretty.Sprint(lit.Value))
	}
	if _, ok := ap.Arg.(*core.Tuple); !ok {
		t.Errorf("Apply.Arg = %T, want *core.Tuple", ap.Arg)
	}
}

// TestResolveAndOrDesugarsToIfCase mirrors `true andalso false`, checking
// andalso lowers to the same If/Case encoding as `if`, never to a direct
// Apply of the infix symbol (which would break short-circuiting).
func TestResolveAndOrDesugarsToIfCase(t *testing.T) {
	s := newTestSession()
	e := ast.NewInfix(noPos, ast.AndAlso, ast.NewId(noPos, "true"), ast.NewId(noPos, "false"))
	if _, err := s.inf.InferExp(e); err != nil {
		t.Fatalf("infer: %v", err)
	}
	ce, err := NewResolver(s.inf).ResolveExp(e)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, ok := ce.(*core.Case); !ok {
		t.Errorf("andalso resolved to %T, want *core.Case (the if/then/else encoding)", ce)
	}
}

// TestResolveAndBindingsDesugarToTuplePat mirrors
// `val x = 3 and y = 4`, checking the simultaneous bind group flattens
// into one ValDecl with a TuplePat/Tuple pair rather than two separate
// declarations.
func TestResolveAndBindingsDesugarToTuplePat(t *testing.T) {
	s := newTestSession()
	decl := ast.NewValDecl(noPos, false, []ast.ValBind{
		{Pat: ast.NewIdPat(noPos, "x"), Exp: intLit(3)},
		{Pat: ast.NewIdPat(noPos, "y"), Exp: intLit(4)},
	})
	if _, err := s.inf.InferDecl(decl); err != nil {
		t.Fatalf("infer: %v", err)
	}
	cd, err := NewResolver(s.inf).ResolveDecl(decl)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	vd, ok := cd.(*core.ValDecl)
	if !ok {
		t.Fatalf("resolved to %T, want *core.ValDecl", cd)
	}
	tp, ok := vd.Pat.(*core.TuplePat)
	if !ok || len(tp.Elems) != 2 {
		t.Fatalf("ValDecl.Pat = %+v, want a 2-element TuplePat", vd.Pat)
	}
	if _, ok := vd.Exp.(*core.Tuple); !ok {
		t.Errorf("ValDecl.Exp = %T, want *core.Tuple", vd.Exp)
	}
}

// TestResolveSingleBindPassesThrough mirrors `val x = 3`: a single bind
// must not be wrapped in a tuple.
func TestResolveSingleBindPassesThrough(t *testing.T) {
	s := newTestSession()
	decl := ast.NewValDecl(noPos, false, []ast.ValBind{{Pat: ast.NewIdPat(noPos, "x"), Exp: intLit(3)}})
	if _, err := s.inf.InferDecl(decl); err != nil {
		t.Fatalf("infer: %v", err)
	}
	cd, err := NewResolver(s.inf).ResolveDecl(decl)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	vd := cd.(*core.ValDecl)
	if _, ok := vd.Pat.(*core.IdPat); !ok {
		t.Errorf("ValDecl.Pat = %T, want *core.IdPat", vd.Pat)
	}
}

// TestResolveGroupAggregateNeedsNoBinding mirrors
// `from e in xs group e compute c = count`: the aggregate function name
// "count" resolves structurally without ever being bound in any
// environment.
func TestResolveGroupAggregateNeedsNoBinding(t *testing.T) {
	s := newTestSession()
	src := ast.FromSource{Pat: ast.NewIdPat(noPos, "e"), Exp: ast.NewListExp(noPos, []ast.Exp{intLit(1), intLit(2)})}
	group := ast.GroupExp{
		Keys:       []ast.LabelExp{{Label: "e", Exp: ast.NewId(noPos, "e")}},
		Aggregates: []ast.AggregateItem{{Name: "c", Agg: ast.NewId(noPos, "count")}},
	}
	from := ast.NewFrom(noPos, []ast.FromSource{src}, []ast.FromStep{group}, nil)

	if _, err := s.inf.InferExp(from); err != nil {
		t.Fatalf("infer: %v", err)
	}
	ce, err := NewResolver(s.inf).ResolveExp(from)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	cf, ok := ce.(*core.From)
	if !ok {
		t.Fatalf("resolved to %T, want *core.From", ce)
	}
	gs, ok := cf.Steps[0].(core.GroupStep)
	if !ok {
		t.Fatalf("Steps[0] = %T, want core.GroupStep", cf.Steps[0])
	}
	id, ok := gs.Aggs[0].AggFn.(*core.Id)
	if !ok || id.Name != "count" {
		t.Errorf("Aggs[0].AggFn = %s, want *core.Id{Name: count}", pretty.Sprint(gs.Aggs[0].AggFn))
	}
}

// TestResolveGroupKeyByBareFieldOfWholeRowSource mirrors
// `from e in [{id=1,dept=10}, ...] group dept compute c = count yield
// {dept, c}`: the source pattern binds only the whole row `e`, never
// destructuring it, yet the group key `dept` is a bare reference to one
// of e's record fields. This must resolve to a projection off e rather
// than an unbound identifier.
func TestResolveGroupKeyByBareFieldOfWholeRowSource(t *testing.T) {
	s := newTestSession()
	row := func(id, dept int64) ast.Exp {
		return ast.NewRecord(noPos, []ast.LabelExp{
			{Label: "id", Exp: intLit(id)},
			{Label: "dept", Exp: intLit(dept)},
		})
	}
	rows := ast.NewListExp(noPos, []ast.Exp{row(1, 10), row(2, 10), row(3, 20)})
	src := ast.FromSource{Pat: ast.NewIdPat(noPos, "e"), Exp: rows}
	group := ast.GroupExp{
		Keys:       []ast.LabelExp{{Label: "dept", Exp: ast.NewId(noPos, "dept")}},
		Aggregates: []ast.AggregateItem{{Name: "c", Agg: ast.NewId(noPos, "count")}},
	}
	yield := ast.NewRecord(noPos, []ast.LabelExp{
		{Label: "dept", Exp: ast.NewId(noPos, "dept")},
		{Label: "c", Exp: ast.NewId(noPos, "c")},
	})
	from := ast.NewFrom(noPos, []ast.FromSource{src}, []ast.FromStep{group}, yield)

	if _, err := s.inf.InferExp(from); err != nil {
		t.Fatalf("infer: %v", err)
	}
	ce, err := NewResolver(s.inf).ResolveExp(from)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	cf, ok := ce.(*core.From)
	if !ok {
		t.Fatalf("resolved to %T, want *core.From", ce)
	}
	gs, ok := cf.Steps[0].(core.GroupStep)
	if !ok {
		t.Fatalf("Steps[0] = %T, want core.GroupStep", cf.Steps[0])
	}
	ap, ok := gs.KeyExps[0].(*core.Apply)
	if !ok {
		t.Fatalf("KeyExps[0] = %s, want *core.Apply (field projection off e)", pretty.Sprint(gs.KeyExps[0]))
	}
	sel, ok := ap.Fn.(*core.RecordSelector)
	if !ok {
		t.Fatalf("KeyExps[0].Fn = %T, want *core.RecordSelector", ap.Fn)
	}
	rowID, ok := ap.Arg.(*core.Id)
	if !ok || rowID.Name != "e" {
		t.Errorf("KeyExps[0].Arg = %s, want *core.Id{Name: e}", pretty.Sprint(ap.Arg))
	}
	if sel.Slot != 0 {
		t.Errorf("RecordSelector.Slot = %d, want 0 (dept sorts before id)", sel.Slot)
	}
}
