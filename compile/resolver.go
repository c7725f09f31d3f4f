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
	"github.com/gtejedap/morel/ast"
	"github.com/gtejedap/morel/core"
	"github.com/gtejedap/morel/types"
)

// Resolver lowers a type-annotated surface AST to Core: it is a pure
// structural rewrite, consulting the Inferencer's ExpTypes/PatTypes tables
// for every node's type rather than re-deriving anything. The only scope
// it tracks is a from-query's field projections (fieldProj, shadow).
// Running a Resolver over an AST the Inferencer has not yet visited is a
// bug: the table lookups then return a nil type rather than failing.
type Resolver struct {
	TS  *types.TypeSystem
	B   *core.Builder
	Inf *Inferencer

	// fieldProj is active only while resolving a from-query's own
	// where/group/order/yield clauses: it maps a bare field name to the
	// row it projects from, for sources bound to a single name over a
	// record row rather than destructured field by field. nil outside a
	// from-query, and cleared the moment a group step replaces row scope.
	fieldProj map[string]fieldProjection
}

// fieldProjection is "Name resolves to row.Slot", the resolver's
// counterpart to the extra field bindings inferFrom adds to its local
// row scope for the same kind of source.
type fieldProjection struct {
	Row  *core.Id
	Slot int
	Ty   types.Type
}

func NewResolver(inf *Inferencer) *Resolver {
	return &Resolver{TS: inf.TS, B: core.NewBuilder(inf.TS), Inf: inf}
}

// shadow suppresses any active field projections a newly bound pattern
// name shadows, for the duration of resolving whatever that pattern
// scopes over; restore puts them back.
func (r *Resolver) shadow(names []string) (restore func()) {
	if r.fieldProj == nil || len(names) == 0 {
		return func() {}
	}
	saved := map[string]fieldProjection{}
	for _, name := range names {
		if p, ok := r.fieldProj[name]; ok {
			saved[name] = p
			delete(r.fieldProj, name)
		}
	}
	if len(saved) == 0 {
		return func() {}
	}
	return func() {
		for name, p := range saved {
			r.fieldProj[name] = p
		}
	}
}

// patNames collects every name an ast.Pat binds, so shadow can suppress
// field projections for exactly the names a nested pattern rebinds.
func patNames(p ast.Pat) []string {
	switch n := p.(type) {
	case *ast.IdPatNode:
		return []string{n.Name}
	case *ast.ConPatNode:
		if n.Arg != nil {
			return patNames(n.Arg)
		}
		return nil
	case *ast.TuplePatNode:
		var out []string
		for _, e := range n.Elems {
			out = append(out, patNames(e)...)
		}
		return out
	case *ast.RecordPatNode:
		var out []string
		for _, f := range n.Fields {
			out = append(out, patNames(f.Pat)...)
		}
		return out
	case *ast.ListPatNode:
		var out []string
		for _, e := range n.Elems {
			out = append(out, patNames(e)...)
		}
		return out
	case *ast.ConsPatNode:
		return append(patNames(n.Head), patNames(n.Tail)...)
	default:
		return nil
	}
}

func (r *Resolver) expType(e ast.Exp) types.Type { return r.Inf.ExpTypes[e] }
func (r *Resolver) patType(p ast.Pat) types.Type { return r.Inf.PatTypes[p] }

// ResolveExp lowers a single top-level expression.
func (r *Resolver) ResolveExp(e ast.Exp) (core.Exp, error) { return r.resolveExp(e) }

// ResolveDecl lowers a single top-level declaration.
func (r *Resolver) ResolveDecl(d ast.Decl) (core.Decl, error) { return r.resolveDecl(d) }

func (r *Resolver) resolveExp(e ast.Exp) (core.Exp, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return r.B.Literal(n.Value, r.expType(n)), nil

	case *ast.IdExp:
		if proj, ok := r.fieldProj[n.Name]; ok {
			return r.B.FieldSelect(proj.Row, proj.Slot, proj.Ty), nil
		}
		return r.B.Id(n.Name, r.expType(n)), nil

	case *ast.IfExp:
		cond, err := r.resolveExp(n.Cond)
		if err != nil {
			return nil, err
		}
		then, err := r.resolveExp(n.Then)
		if err != nil {
			return nil, err
		}
		els, err := r.resolveExp(n.Else)
		if err != nil {
			return nil, err
		}
		return r.B.If(cond, then, els), nil

	case *ast.FnExp:
		matches, err := r.resolveMatches(n.Matches)
		if err != nil {
			return nil, err
		}
		return r.B.Fn(matches, r.expType(n)), nil

	case *ast.CaseExp:
		scrutinee, err := r.resolveExp(n.Scrutinee)
		if err != nil {
			return nil, err
		}
		matches, err := r.resolveMatches(n.Matches)
		if err != nil {
			return nil, err
		}
		return r.B.Case(scrutinee, matches, r.expType(n)), nil

	case *ast.LetExp:
		return r.resolveLetChain(n.Decls, n.Body)

	case *ast.ApplyExp:
		fn, err := r.resolveExp(n.Fn)
		if err != nil {
			return nil, err
		}
		arg, err := r.resolveExp(n.Arg)
		if err != nil {
			return nil, err
		}
		return r.B.Apply(fn, arg, r.expType(n)), nil

	case *ast.InfixExp:
		return r.resolveInfix(n)

	case *ast.TupleExp:
		elems, err := r.resolveExps(n.Elems)
		if err != nil {
			return nil, err
		}
		return r.B.Tuple(elems, r.expType(n)), nil

	case *ast.RecordExp:
		return r.resolveRecordExp(n)

	case *ast.ListExp:
		elems, err := r.resolveExps(n.Elems)
		if err != nil {
			return nil, err
		}
		lt, ok := types.RealType(r.expType(n)).(*types.ListType)
		if !ok {
			return nil, newCompileError("list literal did not infer a list type")
		}
		return r.B.ApplyZList(elems, lt.Elem), nil

	case *ast.FromExp:
		return r.resolveFrom(n)

	default:
		return nil, newCompileError("resolver: unhandled expression kind at %s", e.Pos())
	}
}

func (r *Resolver) resolveExps(es []ast.Exp) ([]core.Exp, error) {
	out := make([]core.Exp, len(es))
	for i, e := range es {
		c, err := r.resolveExp(e)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func (r *Resolver) resolveMatches(matches []ast.Match) ([]core.Match, error) {
	out := make([]core.Match, len(matches))
	for i, m := range matches {
		p, err := r.resolvePat(m.Pat)
		if err != nil {
			return nil, err
		}
		restore := r.shadow(patNames(m.Pat))
		b, err := r.resolveExp(m.Exp)
		restore()
		if err != nil {
			return nil, err
		}
		out[i] = core.Match{Pat: p, Body: b}
	}
	return out, nil
}

func (r *Resolver) resolveLetChain(decls []ast.Decl, body ast.Exp) (core.Exp, error) {
	if len(decls) == 0 {
		return r.resolveExp(body)
	}
	d, err := r.resolveDecl(decls[0])
	if err != nil {
		return nil, err
	}
	var restore func()
	if vd, ok := decls[0].(*ast.ValDeclNode); ok {
		var names []string
		for _, b := range vd.Binds {
			names = append(names, patNames(b.Pat)...)
		}
		restore = r.shadow(names)
	} else {
		restore = func() {}
	}
	rest, err := r.resolveLetChain(decls[1:], body)
	restore()
	if err != nil {
		return nil, err
	}
	return r.B.Let(d, rest, rest.Type()), nil
}

// resolveInfix rewrites every infix operator to the universal
// Apply(BuiltInLiteral(op), Tuple(a,b)) encoding, except andalso/orelse:
// compiling those as an eager call would evaluate both operands before
// the call ever happened, which is wrong for a short-circuiting operator.
// They lower to the same Case-based if/then/else encoding `if` itself
// uses instead, so evaluation order is correct by construction.
func (r *Resolver) resolveInfix(n *ast.InfixExp) (core.Exp, error) {
	op := n.Op()
	a, err := r.resolveExp(n.A)
	if err != nil {
		return nil, err
	}
	b, err := r.resolveExp(n.B)
	if err != nil {
		return nil, err
	}
	switch op {
	case ast.AndAlso:
		return r.B.If(a, b, r.B.Literal(false, types.Bool)), nil
	case ast.OrElse:
		return r.B.If(a, r.B.Literal(true, types.Bool), b), nil
	}
	resultTy := r.expType(n)
	fnTy := r.TS.Fn(r.TS.Tuple(a.Type(), b.Type()), resultTy)
	lit := r.B.BuiltInLiteral(ast.Symbol(op), op, true, fnTy)
	tup := r.B.Tuple([]core.Exp{a, b}, r.TS.Tuple(a.Type(), b.Type()))
	return r.B.Apply(lit, tup, resultTy), nil
}

func (r *Resolver) resolveRecordExp(n *ast.RecordExp) (core.Exp, error) {
	rt, ok := types.RealType(r.expType(n)).(*types.Record)
	if !ok {
		return nil, newCompileError("record expression did not infer a record type")
	}
	labels, _, _ := types.FlattenRow(rt.Row)
	byLabel := map[string]ast.Exp{}
	for _, f := range n.Fields {
		byLabel[f.Label] = f.Exp
	}
	elems := make([]core.Exp, len(labels))
	for i, l := range labels {
		src, ok := byLabel[l]
		if !ok {
			return nil, newCompileError("record expression missing field %s", l)
		}
		c, err := r.resolveExp(src)
		if err != nil {
			return nil, err
		}
		elems[i] = c
	}
	return r.B.Tuple(elems, rt), nil
}

func (r *Resolver) resolveFrom(n *ast.FromExp) (core.Exp, error) {
	savedProj := r.fieldProj
	defer func() { r.fieldProj = savedProj }()

	// Each source's own Exp resolves against the scope built by the
	// sources before it (so one source can reference an earlier source's
	// flattened field), mirroring inferFrom's progressively extended env.
	proj := map[string]fieldProjection{}
	for k, v := range savedProj {
		proj[k] = v
	}
	r.fieldProj = proj

	sources := make([]core.FromSource, len(n.Sources))
	for i, src := range n.Sources {
		p, err := r.resolvePat(src.Pat)
		if err != nil {
			return nil, err
		}
		e, err := r.resolveExp(src.Exp)
		if err != nil {
			return nil, err
		}
		sources[i] = core.FromSource{Pat: p, Exp: e}

		idp, ok := src.Pat.(*ast.IdPatNode)
		if !ok {
			continue
		}
		rowTy := r.patType(src.Pat)
		rt, ok := types.RealType(rowTy).(*types.Record)
		if !ok {
			continue
		}
		labels, fields, _ := types.FlattenRow(rt.Row)
		rowID := r.B.Id(idp.Name, rowTy)
		for slot, l := range labels {
			proj[l] = fieldProjection{Row: rowID, Slot: slot, Ty: fields[slot]}
		}
	}

	steps := make([]core.FromStep, len(n.Steps))
	for i, step := range n.Steps {
		cs, err := r.resolveFromStep(step)
		if err != nil {
			return nil, err
		}
		steps[i] = cs
		// A group step replaces row scope outright: after it, bare names
		// refer directly to the group's key/aggregate labels the runtime
		// binds by name, not to a projection off the original row.
		if _, ok := step.(ast.GroupExp); ok {
			r.fieldProj = nil
		}
	}

	var yield core.Exp
	if n.Yield != nil {
		y, err := r.resolveExp(n.Yield)
		if err != nil {
			return nil, err
		}
		yield = y
	} else {
		fields := r.Inf.FromFields[n]
		if fields == nil {
			return nil, newCompileError("from-query missing row-field information")
		}
		elems := make([]core.Exp, len(fields.Order))
		for i, name := range fields.Order {
			elems[i] = r.B.Id(name, fields.Types[name])
		}
		yield = r.B.Tuple(elems, r.TS.Record(fields.Types))
	}

	return &core.From{Sources: sources, Steps: steps, Yield: yield, Ty: r.expType(n)}, nil
}

func (r *Resolver) resolveFromStep(step ast.FromStep) (core.FromStep, error) {
	switch s := step.(type) {
	case ast.WhereExp:
		pred, err := r.resolveExp(s.Pred)
		if err != nil {
			return nil, err
		}
		return core.WhereStep{Pred: pred}, nil

	case ast.GroupExp:
		keyLabels := make([]string, len(s.Keys))
		keyExps := make([]core.Exp, len(s.Keys))
		for i, k := range s.Keys {
			ce, err := r.resolveExp(k.Exp)
			if err != nil {
				return nil, err
			}
			keyLabels[i] = k.Label
			keyExps[i] = ce
		}
		aggs := make([]core.AggregateCall, len(s.Aggregates))
		for i, a := range s.Aggregates {
			aggFn, err := r.resolveExp(a.Agg)
			if err != nil {
				return nil, err
			}
			var arg core.Exp
			if a.Arg != nil {
				arg, err = r.resolveExp(a.Arg)
				if err != nil {
					return nil, err
				}
			}
			aggs[i] = core.AggregateCall{Name: a.Name, AggFn: aggFn, Arg: arg}
		}
		return core.GroupStep{KeyLabels: keyLabels, KeyExps: keyExps, Aggs: aggs}, nil

	case ast.OrderExp:
		items := make([]core.OrderItem, len(s.Items))
		for i, it := range s.Items {
			ce, err := r.resolveExp(it.Exp)
			if err != nil {
				return nil, err
			}
			items[i] = core.OrderItem{Exp: ce, Desc: it.Desc}
		}
		return core.OrderStep{Items: items}, nil

	default:
		return nil, newCompileError("resolver: unhandled from-step kind")
	}
}

func (r *Resolver) resolvePat(p ast.Pat) (core.Pat, error) {
	ty := r.patType(p)
	switch n := p.(type) {
	case *ast.IdPatNode:
		return &core.IdPat{Name: n.Name, Ty: ty}, nil

	case *ast.WildcardPatNode:
		return &core.WildcardPat{Ty: ty}, nil

	case *ast.LiteralPatNode:
		return &core.LiteralPat{Value: n.Value, Ty: ty}, nil

	case *ast.ConPatNode:
		var arg core.Pat
		if n.Arg != nil {
			a, err := r.resolvePat(n.Arg)
			if err != nil {
				return nil, err
			}
			arg = a
		}
		return &core.ConPat{Name: n.Name, Arg: arg, Ty: ty}, nil

	case *ast.TuplePatNode:
		elems, err := r.resolvePats(n.Elems)
		if err != nil {
			return nil, err
		}
		return &core.TuplePat{Elems: elems, Ty: ty}, nil

	case *ast.RecordPatNode:
		return r.resolveRecordPat(n, ty)

	case *ast.ListPatNode:
		elems, err := r.resolvePats(n.Elems)
		if err != nil {
			return nil, err
		}
		return &core.ListPat{Elems: elems, Ty: ty}, nil

	case *ast.ConsPatNode:
		head, err := r.resolvePat(n.Head)
		if err != nil {
			return nil, err
		}
		tail, err := r.resolvePat(n.Tail)
		if err != nil {
			return nil, err
		}
		return &core.ConsPat{Head: head, Tail: tail, Ty: ty}, nil

	default:
		return nil, newCompileError("resolver: unhandled pattern kind at %s", p.Pos())
	}
}

func (r *Resolver) resolvePats(ps []ast.Pat) ([]core.Pat, error) {
	out := make([]core.Pat, len(ps))
	for i, p := range ps {
		c, err := r.resolvePat(p)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

// resolveRecordPat expands Fields to the record type's full, canonically
// ordered label set: omitted labels (only legal when Ellipsis was set,
// already enforced by the inferencer's row unification) become a
// Wildcard, so the compiler's pattern matcher never has to know about
// ellipsis at all.
func (r *Resolver) resolveRecordPat(n *ast.RecordPatNode, ty types.Type) (core.Pat, error) {
	rt, ok := types.RealType(ty).(*types.Record)
	if !ok {
		return nil, newCompileError("record pattern did not infer a record type")
	}
	labels, fields, _ := types.FlattenRow(rt.Row)
	byLabel := map[string]ast.Pat{}
	for _, lf := range n.Fields {
		byLabel[lf.Label] = lf.Pat
	}
	out := make([]core.RecordFieldPat, len(labels))
	for i, l := range labels {
		if p, ok := byLabel[l]; ok {
			cp, err := r.resolvePat(p)
			if err != nil {
				return nil, err
			}
			out[i] = core.RecordFieldPat{Label: l, Pat: cp}
		} else {
			out[i] = core.RecordFieldPat{Label: l, Pat: &core.WildcardPat{Ty: fields[i]}}
		}
	}
	return &core.RecordPat{Fields: out, Ty: ty}, nil
}

func (r *Resolver) resolveDecl(d ast.Decl) (core.Decl, error) {
	switch n := d.(type) {
	case *ast.ValDeclNode:
		return r.resolveValDecl(n)
	case *ast.DatatypeDeclNode:
		return r.resolveDatatypeDecl(n)
	default:
		return nil, newCompileError("resolver: unhandled declaration kind at %s", d.Pos())
	}
}

// resolveValDecl flattens a simultaneous `val p1 = e1 and p2 = e2 ...`
// into the single (Pat, Exp) pair ValDecl carries, by pairing up the
// binds' patterns and expressions into parallel tuples. A single bind
// passes through unchanged.
func (r *Resolver) resolveValDecl(n *ast.ValDeclNode) (core.Decl, error) {
	if len(n.Binds) == 1 {
		pat, err := r.resolvePat(n.Binds[0].Pat)
		if err != nil {
			return nil, err
		}
		exp, err := r.resolveExp(n.Binds[0].Exp)
		if err != nil {
			return nil, err
		}
		return r.B.ValDecl(n.Rec, pat, exp), nil
	}

	pats := make([]core.Pat, len(n.Binds))
	exps := make([]core.Exp, len(n.Binds))
	patTys := make([]types.Type, len(n.Binds))
	expTys := make([]types.Type, len(n.Binds))
	for i, b := range n.Binds {
		p, err := r.resolvePat(b.Pat)
		if err != nil {
			return nil, err
		}
		e, err := r.resolveExp(b.Exp)
		if err != nil {
			return nil, err
		}
		pats[i], exps[i] = p, e
		patTys[i], expTys[i] = p.Type(), e.Type()
	}
	tuplePat := &core.TuplePat{Elems: pats, Ty: r.TS.Tuple(patTys...)}
	tupleExp := r.B.Tuple(exps, r.TS.Tuple(expTys...))
	return r.B.ValDecl(n.Rec, tuplePat, tupleExp), nil
}

func (r *Resolver) resolveDatatypeDecl(n *ast.DatatypeDeclNode) (core.Decl, error) {
	dts := make([]*types.DataType, len(n.Binds))
	for i, b := range n.Binds {
		dt, ok := r.Inf.Datatypes[b.Name]
		if !ok {
			return nil, newCompileError("resolver: datatype %s was never inferred", b.Name)
		}
		dts[i] = dt
	}
	return &core.DatatypeDecl{Types: dts}, nil
}
