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
	"github.com/gtejedap/morel/core"
	"github.com/gtejedap/morel/eval"
	"github.com/gtejedap/morel/types"
)

// Compiler lowers Core to executable Code. It carries its own Environment
// — separate from the Inferencer's and the runtime eval.Env — used solely
// to decide, at every Id site, whether that name is mid-compilation of a
// `val rec` binding: such a name's Binding.Value holds the LinkCode cell
// to compile in place of an ordinary runtime lookup.
type Compiler struct {
	TS  *types.TypeSystem
	Env *Environment
}

func NewCompiler(ts *types.TypeSystem, env *Environment) *Compiler {
	return &Compiler{TS: ts, Env: env}
}

// CompileExp is the entry point for compiling a bare top-level expression.
func (c *Compiler) CompileExp(e core.Exp) (eval.Code, error) { return c.compileExp(e) }

// valDecl is the compiled form of a core.ValDecl: a pattern to bind the
// evaluated Rhs against.
type valDecl struct {
	Pat eval.Pat
	Rhs eval.Code
}

// CompileDecl compiles d, extending the Compiler's own Environment with
// whatever names it binds (so a later declaration's Id references resolve
// correctly), and returns the compiled (pattern, value) pair for a
// ValDecl. A DatatypeDecl contributes nothing at runtime and compiles to
// nil.
func (c *Compiler) CompileDecl(d core.Decl) (*valDecl, error) {
	switch n := d.(type) {
	case *core.ValDecl:
		return c.compileValDecl(n)
	case *core.DatatypeDecl:
		return nil, nil
	default:
		return nil, newCompileError("compiler: unhandled declaration kind")
	}
}

func (c *Compiler) compileExp(e core.Exp) (eval.Code, error) {
	switch n := e.(type) {
	case *core.Literal:
		if bi, ok := n.Value.(*core.BuiltIn); ok {
			return eval.Lookup{Name: bi.Name}, nil
		}
		return eval.Constant{Value: n.Value}, nil

	case *core.Id:
		if b, ok := c.Env.Lookup(n.Name); ok && b.Value != nil {
			code, ok := b.Value.(eval.Code)
			if !ok {
				return nil, newCompileError("compiler: %s's forward-reference cell was not linkable code", n.Name)
			}
			return code, nil
		}
		return eval.Lookup{Name: n.Name}, nil

	case *core.Tuple:
		elems, err := c.compileExps(n.Elems)
		if err != nil {
			return nil, err
		}
		return eval.TupleCode{Elems: elems}, nil

	case *core.Apply:
		return c.compileApply(n)

	case *core.Fn:
		clauses, err := c.compileMatches(n.Matches)
		if err != nil {
			return nil, err
		}
		return eval.FnCode{Clauses: clauses}, nil

	case *core.Case:
		scrutinee, err := c.compileExp(n.Scrutinee)
		if err != nil {
			return nil, err
		}
		clauses, err := c.compileMatches(n.Matches)
		if err != nil {
			return nil, err
		}
		return eval.CaseCode{Scrutinee: scrutinee, Clauses: clauses}, nil

	case *core.Let:
		return c.compileLet(n)

	case *core.From:
		return c.compileFrom(n)

	default:
		return nil, newCompileError("compiler: unhandled expression kind")
	}
}

func (c *Compiler) compileExps(es []core.Exp) ([]eval.Code, error) {
	out := make([]eval.Code, len(es))
	for i, e := range es {
		code, err := c.compileExp(e)
		if err != nil {
			return nil, err
		}
		out[i] = code
	}
	return out, nil
}

// compileApply special-cases the two Apply shapes the resolver and
// builder never let reach an ordinary runtime call: a record selector
// (compiles straight to Nth, no Callable involved) and the Z_LIST
// built-in tag a list literal resolves to (compiles to ZListCode, since
// Z_LIST is a compiler convention, not a name bound in the runtime
// environment).
func (c *Compiler) compileApply(n *core.Apply) (eval.Code, error) {
	if rs, ok := n.Fn.(*core.RecordSelector); ok {
		arg, err := c.compileExp(n.Arg)
		if err != nil {
			return nil, err
		}
		return eval.Nth{Slot: rs.Slot, Of: arg}, nil
	}
	if lit, ok := n.Fn.(*core.Literal); ok {
		if bi, ok := lit.Value.(*core.BuiltIn); ok && bi.Name == core.ZList {
			tup, ok := n.Arg.(*core.Tuple)
			if !ok {
				return nil, newCompileError("compiler: Z_LIST argument was not a tuple")
			}
			elems, err := c.compileExps(tup.Elems)
			if err != nil {
				return nil, err
			}
			return eval.ZListCode{Elems: elems}, nil
		}
	}
	fn, err := c.compileExp(n.Fn)
	if err != nil {
		return nil, err
	}
	arg, err := c.compileExp(n.Arg)
	if err != nil {
		return nil, err
	}
	return eval.ApplyCode{Fn: fn, Arg: arg}, nil
}

func (c *Compiler) compileMatches(matches []core.Match) ([]eval.Clause, error) {
	out := make([]eval.Clause, len(matches))
	for i, m := range matches {
		p, err := c.compilePat(m.Pat)
		if err != nil {
			return nil, err
		}
		b, err := c.compileExp(m.Body)
		if err != nil {
			return nil, err
		}
		out[i] = eval.Clause{Pat: p, Body: b}
	}
	return out, nil
}

func (c *Compiler) compileLet(n *core.Let) (eval.Code, error) {
	switch d := n.Decl.(type) {
	case *core.DatatypeDecl:
		return c.compileExp(n.Body)
	case *core.ValDecl:
		vd, err := c.compileValDecl(d)
		if err != nil {
			return nil, err
		}
		saved := c.Env
		body, err := c.compileExp(n.Body)
		c.Env = saved
		if err != nil {
			return nil, err
		}
		return eval.LetCode{Pat: vd.Pat, Rhs: vd.Rhs, Body: body}, nil
	default:
		return nil, newCompileError("compiler: unhandled let-declaration kind")
	}
}

// compileValDecl compiles d.Exp and binds d.Pat's names into c.Env for
// whatever compiles next (a let body, or a later top-level declaration).
// A non-rec binding compiles its right-hand side against the environment
// as it stood before the binding; a rec binding makes every bound name
// resolve, within its own (and any `and`-joined sibling's) right-hand
// side, to a forward-reference cell instead — see compileRecExp.
func (c *Compiler) compileValDecl(d *core.ValDecl) (*valDecl, error) {
	pat, err := c.compilePat(d.Pat)
	if err != nil {
		return nil, err
	}

	if !d.Rec {
		rhs, err := c.compileExp(d.Exp)
		if err != nil {
			return nil, err
		}
		c.bindPatNames(d.Pat)
		return &valDecl{Pat: pat, Rhs: rhs}, nil
	}

	names := collectPatNames(d.Pat)
	cells := make(map[string]*eval.LinkCode, len(names))
	recEnv := c.Env
	for _, name := range names {
		cell := &eval.LinkCode{}
		cells[name] = cell
		recEnv = recEnv.Bind(name, &Binding{Name: name, Value: cell})
	}
	rhs, err := c.compileRecExp(d.Pat, d.Exp, recEnv, cells)
	if err != nil {
		return nil, err
	}
	c.bindPatNames(d.Pat)
	return &valDecl{Pat: pat, Rhs: rhs}, nil
}

// compileRecExp walks pat and exp in lockstep — they always share shape,
// per the resolver's simultaneous-bindings rewrite: a leaf IdPat pairs
// with that binding's own right-hand side, a TuplePat (the `and`-joined
// case) pairs with a Tuple of each sibling's right-hand side. Each leaf's
// compiled code is linked into its forward-reference cell and the cell
// itself, not the code, is what gets returned — any self- or mutual
// reference already compiled to that same cell sees it update in place.
func (c *Compiler) compileRecExp(pat core.Pat, exp core.Exp, env *Environment, cells map[string]*eval.LinkCode) (eval.Code, error) {
	switch p := pat.(type) {
	case *core.IdPat:
		code, err := c.compileExpIn(env, exp)
		if err != nil {
			return nil, err
		}
		cell := cells[p.Name]
		cell.Link(code)
		return cell, nil

	case *core.TuplePat:
		texp, ok := exp.(*core.Tuple)
		if !ok || len(texp.Elems) != len(p.Elems) {
			return nil, newCompileError("val rec: pattern and expression shapes differ")
		}
		elems := make([]eval.Code, len(p.Elems))
		for i := range p.Elems {
			ec, err := c.compileRecExp(p.Elems[i], texp.Elems[i], env, cells)
			if err != nil {
				return nil, err
			}
			elems[i] = ec
		}
		return eval.TupleCode{Elems: elems}, nil

	default:
		return nil, newCompileError("val rec requires identifier or tuple-of-identifier patterns")
	}
}

func (c *Compiler) compileExpIn(env *Environment, e core.Exp) (eval.Code, error) {
	saved := c.Env
	c.Env = env
	code, err := c.compileExp(e)
	c.Env = saved
	return code, err
}

func (c *Compiler) bindPatNames(pat core.Pat) {
	for _, name := range collectPatNames(pat) {
		c.Env = c.Env.Bind(name, &Binding{Name: name})
	}
}

// collectPatNames flattens every identifier a pattern binds, in
// left-to-right order.
func collectPatNames(pat core.Pat) []string {
	switch p := pat.(type) {
	case *core.IdPat:
		return []string{p.Name}
	case *core.TuplePat:
		var names []string
		for _, e := range p.Elems {
			names = append(names, collectPatNames(e)...)
		}
		return names
	case *core.RecordPat:
		var names []string
		for _, f := range p.Fields {
			names = append(names, collectPatNames(f.Pat)...)
		}
		return names
	case *core.ListPat:
		var names []string
		for _, e := range p.Elems {
			names = append(names, collectPatNames(e)...)
		}
		return names
	case *core.ConsPat:
		return append(collectPatNames(p.Head), collectPatNames(p.Tail)...)
	case *core.ConPat:
		if p.Arg != nil {
			return collectPatNames(p.Arg)
		}
		return nil
	default:
		return nil
	}
}

func (c *Compiler) compilePat(p core.Pat) (eval.Pat, error) {
	switch n := p.(type) {
	case *core.IdPat:
		return eval.IdPat{Name: n.Name}, nil

	case *core.WildcardPat:
		return eval.WildcardPat{}, nil

	case *core.LiteralPat:
		return eval.LiteralPat{Value: n.Value}, nil

	case *core.ConPat:
		var arg eval.Pat
		if n.Arg != nil {
			a, err := c.compilePat(n.Arg)
			if err != nil {
				return nil, err
			}
			arg = a
		}
		return eval.ConPat{Name: n.Name, Arg: arg}, nil

	case *core.TuplePat:
		elems, err := c.compilePats(n.Elems)
		if err != nil {
			return nil, err
		}
		return eval.TuplePat{Elems: elems}, nil

	case *core.RecordPat:
		// Fields is already exactly one sub-pattern per label in the
		// record's canonical order (the resolver's expand-record-pattern
		// rewrite), so the underlying Tuple's slot for field i is simply i.
		fields := make([]eval.RecordFieldPat, len(n.Fields))
		slots := make([]int, len(n.Fields))
		for i, f := range n.Fields {
			fp, err := c.compilePat(f.Pat)
			if err != nil {
				return nil, err
			}
			fields[i] = eval.RecordFieldPat{Label: f.Label, Pat: fp}
			slots[i] = i
		}
		return eval.RecordPat{Fields: fields, Slots: slots}, nil

	case *core.ListPat:
		elems, err := c.compilePats(n.Elems)
		if err != nil {
			return nil, err
		}
		return eval.ListPat{Elems: elems}, nil

	case *core.ConsPat:
		head, err := c.compilePat(n.Head)
		if err != nil {
			return nil, err
		}
		tail, err := c.compilePat(n.Tail)
		if err != nil {
			return nil, err
		}
		return eval.ConsPat{Head: head, Tail: tail}, nil

	default:
		return nil, newCompileError("compiler: unhandled pattern kind")
	}
}

func (c *Compiler) compilePats(ps []core.Pat) ([]eval.Pat, error) {
	out := make([]eval.Pat, len(ps))
	for i, p := range ps {
		cp, err := c.compilePat(p)
		if err != nil {
			return nil, err
		}
		out[i] = cp
	}
	return out, nil
}

func (c *Compiler) compileFrom(n *core.From) (eval.Code, error) {
	sources := make([]eval.FromSourceCode, len(n.Sources))
	for i, s := range n.Sources {
		pat, err := c.compilePat(s.Pat)
		if err != nil {
			return nil, err
		}
		src, err := c.compileExp(s.Exp)
		if err != nil {
			return nil, err
		}
		sources[i] = eval.FromSourceCode{Pat: pat, Src: src}
	}

	steps := make([]eval.Step, len(n.Steps))
	for i, st := range n.Steps {
		cs, err := c.compileFromStep(st)
		if err != nil {
			return nil, err
		}
		steps[i] = cs
	}

	yield, err := c.compileExp(n.Yield)
	if err != nil {
		return nil, err
	}
	return eval.FromCode{Sources: sources, Steps: steps, Yield: yield}, nil
}

func (c *Compiler) compileFromStep(step core.FromStep) (eval.Step, error) {
	switch s := step.(type) {
	case core.WhereStep:
		pred, err := c.compileExp(s.Pred)
		if err != nil {
			return nil, err
		}
		return eval.WhereCode{Pred: pred}, nil

	case core.GroupStep:
		keyCodes, err := c.compileExps(s.KeyExps)
		if err != nil {
			return nil, err
		}
		aggs := make([]eval.AggCode, len(s.Aggs))
		for i, a := range s.Aggs {
			kind, err := aggregateKindOf(a.AggFn)
			if err != nil {
				return nil, err
			}
			var arg eval.Code
			if a.Arg != nil {
				arg, err = c.compileExp(a.Arg)
				if err != nil {
					return nil, err
				}
			}
			aggs[i] = eval.AggCode{Label: a.Name, Kind: kind, Arg: arg}
		}
		return eval.GroupCode{KeyLabels: s.KeyLabels, KeyCodes: keyCodes, Aggs: aggs}, nil

	case core.OrderStep:
		items := make([]eval.OrderItemCode, len(s.Items))
		for i, it := range s.Items {
			ec, err := c.compileExp(it.Exp)
			if err != nil {
				return nil, err
			}
			items[i] = eval.OrderItemCode{Exp: ec, Desc: it.Desc}
		}
		return eval.OrderCode{Items: items}, nil

	default:
		return nil, newCompileError("compiler: unhandled from-step kind")
	}
}

// aggregateKindOf resolves a group step's aggregate function — always a
// bare identifier reference (count, sum, min, max) — to the from-query
// evaluator's internal Kind tag.
func aggregateKindOf(aggFn core.Exp) (string, error) {
	id, ok := aggFn.(*core.Id)
	if !ok {
		return "", newCompileError("compiler: aggregate function must be a named built-in")
	}
	kind, ok := aggregateKinds[id.Name]
	if !ok {
		return "", newCompileError("compiler: unknown aggregate %s", id.Name)
	}
	return kind, nil
}
