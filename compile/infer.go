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
	"github.com/gtejedap/morel/types"
)

// Inferencer runs Algorithm W over a surface AST, using levels rather than
// an explicit free-variable scan to decide what generalizes at a `let`.
// One Inferencer belongs to exactly one compilation session: TS interns
// every type it allocates, and Ctors/Datatypes/tempsByName accumulate
// across every declaration inferred so far in that session.
type Inferencer struct {
	TS  *types.TypeSystem
	Env *Environment

	// Ctors maps a constructor name to the DataType that declares it;
	// Datatypes maps a type's own name to its DataType. Both grow as
	// datatype declarations are inferred and never shrink.
	Ctors     map[string]*types.DataType
	Datatypes map[string]*types.DataType

	// ExpTypes and PatTypes record the type inferred for every AST node
	// visited, keyed by node identity; the resolver reads them back when
	// lowering surface nodes to Core, which carries its own Ty field per
	// node instead of a side table.
	ExpTypes map[ast.Exp]types.Type
	PatTypes map[ast.Pat]types.Type

	// FromFields records, for every from-query inferred, the row scope's
	// field names (in canonical order) and their types at the point the
	// yield clause is typed — the resolver consults this to build the
	// implicit "yield the whole row" record when a query has no explicit
	// yield clause, since that shape exists nowhere in the surface AST.
	FromFields map[*ast.FromExp]*FromRowFields

	tempsByName map[string]*types.Temporary
	level       int
}

// FromRowFields is the row scope snapshot inferFrom leaves behind for a
// given from-query's yield point.
type FromRowFields struct {
	Order []string
	Types map[string]types.Type
}

func NewInferencer(ts *types.TypeSystem, env *Environment) *Inferencer {
	return &Inferencer{
		TS:          ts,
		Env:         env,
		Ctors:       map[string]*types.DataType{},
		Datatypes:   map[string]*types.DataType{},
		ExpTypes:    map[ast.Exp]types.Type{},
		PatTypes:    map[ast.Pat]types.Type{},
		FromFields:  map[*ast.FromExp]*FromRowFields{},
		tempsByName: map[string]*types.Temporary{},
	}
}

// InferExp is the entry point for inferring a bare top-level expression
// (an SML "it" declaration).
func (inf *Inferencer) InferExp(e ast.Exp) (types.Type, error) { return inf.infer(e) }

// InferDecl is the entry point for inferring a top-level declaration,
// returning the environment extended with whatever it binds.
func (inf *Inferencer) InferDecl(d ast.Decl) (*Environment, error) { return inf.inferDecl(d) }

// DefaultUnresolved walks t and links every still-unbound, non-generic Var
// reachable from it to unit (an open record row defaults to the empty
// row). SML's monomorphism restriction leaves some top-level bindings with
// type variables that were never constrained by anything; the REPL must
// still print a concrete type for them.
func DefaultUnresolved(t types.Type) {
	switch n := types.RealType(t).(type) {
	case *types.Var:
		if !n.Generic {
			n.SetLink(types.Unit)
		}
	case *types.Arrow:
		DefaultUnresolved(n.Param)
		DefaultUnresolved(n.Result)
	case *types.ListType:
		DefaultUnresolved(n.Elem)
	case *types.Record:
		defaultUnresolvedRow(n.Row)
	case *types.DataType:
		for _, p := range n.Params {
			DefaultUnresolved(p)
		}
	}
}

func defaultUnresolvedRow(r types.Row) {
	switch n := r.(type) {
	case *types.RowExtend:
		DefaultUnresolved(n.Field)
		defaultUnresolvedRow(n.Rest)
	case *types.Var:
		if !n.Generic {
			n.SetLink(&types.RowEmpty{})
		}
	}
}

// boundVar is one (name, type) pair a pattern introduces.
type boundVar struct {
	Name string
	Type types.Type
}

// infer dispatches on e's concrete kind and records the result in
// ExpTypes before returning it, so every node visited during inference —
// not just the outermost one — ends up with a recorded type.
func (inf *Inferencer) infer(e ast.Exp) (types.Type, error) {
	t, err := inf.inferExp(e)
	if err != nil {
		return nil, err
	}
	inf.ExpTypes[e] = t
	return t, nil
}

// inferIn infers e against a specific environment, restoring inf.Env
// afterward; used wherever a sub-expression's scope differs from the
// caller's ambient inf.Env (from-query row scopes, let bodies).
func (inf *Inferencer) inferIn(env *Environment, e ast.Exp) (types.Type, error) {
	saved := inf.Env
	inf.Env = env
	t, err := inf.infer(e)
	inf.Env = saved
	return t, err
}

func (inf *Inferencer) inferExp(e ast.Exp) (types.Type, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return literalValueType(n.Value), nil

	case *ast.IdExp:
		b, ok := inf.Env.Lookup(n.Name)
		if !ok {
			return nil, newTypeError(n.Pos(), "unbound identifier %s", n.Name)
		}
		return instantiate(inf.TS, inf.level, b.Scheme), nil

	case *ast.IfExp:
		ct, err := inf.infer(n.Cond)
		if err != nil {
			return nil, err
		}
		if err := inf.unify(n.Cond.Pos(), ct, types.Bool); err != nil {
			return nil, err
		}
		tt, err := inf.infer(n.Then)
		if err != nil {
			return nil, err
		}
		et, err := inf.infer(n.Else)
		if err != nil {
			return nil, err
		}
		if err := inf.unify(n.Pos(), tt, et); err != nil {
			return nil, err
		}
		return tt, nil

	case *ast.FnExp:
		return inf.inferFn(n)

	case *ast.CaseExp:
		return inf.inferCase(n)

	case *ast.LetExp:
		return inf.inferLet(n)

	case *ast.ApplyExp:
		ft, err := inf.infer(n.Fn)
		if err != nil {
			return nil, err
		}
		at, err := inf.infer(n.Arg)
		if err != nil {
			return nil, err
		}
		rv := inf.TS.NewVar(inf.level)
		if err := inf.unify(n.Pos(), ft, inf.TS.Fn(at, rv)); err != nil {
			return nil, err
		}
		return rv, nil

	case *ast.InfixExp:
		return inf.inferInfix(n)

	case *ast.TupleExp:
		elems := make([]types.Type, len(n.Elems))
		for i, el := range n.Elems {
			t, err := inf.infer(el)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return inf.TS.Tuple(elems...), nil

	case *ast.RecordExp:
		fields := map[string]types.Type{}
		for _, f := range n.Fields {
			t, err := inf.infer(f.Exp)
			if err != nil {
				return nil, err
			}
			fields[f.Label] = t
		}
		return inf.TS.Record(fields), nil

	case *ast.ListExp:
		if len(n.Elems) == 0 {
			return inf.TS.List(inf.TS.NewVar(inf.level)), nil
		}
		first, err := inf.infer(n.Elems[0])
		if err != nil {
			return nil, err
		}
		for _, el := range n.Elems[1:] {
			t, err := inf.infer(el)
			if err != nil {
				return nil, err
			}
			if err := inf.unify(el.Pos(), t, first); err != nil {
				return nil, err
			}
		}
		return inf.TS.List(first), nil

	case *ast.FromExp:
		return inf.inferFrom(n)

	default:
		return nil, newCompileError("unhandled expression kind at %s", e.Pos())
	}
}

func (inf *Inferencer) inferFn(n *ast.FnExp) (types.Type, error) {
	argVar := inf.TS.NewVar(inf.level)
	resVar := inf.TS.NewVar(inf.level)
	for _, m := range n.Matches {
		env2, _, err := inf.inferPat(inf.Env, m.Pat, argVar)
		if err != nil {
			return nil, err
		}
		bt, err := inf.inferIn(env2, m.Exp)
		if err != nil {
			return nil, err
		}
		if err := inf.unify(m.Exp.Pos(), bt, resVar); err != nil {
			return nil, err
		}
	}
	return inf.TS.Fn(argVar, resVar), nil
}

func (inf *Inferencer) inferCase(n *ast.CaseExp) (types.Type, error) {
	st, err := inf.infer(n.Scrutinee)
	if err != nil {
		return nil, err
	}
	resVar := inf.TS.NewVar(inf.level)
	for _, m := range n.Matches {
		env2, _, err := inf.inferPat(inf.Env, m.Pat, st)
		if err != nil {
			return nil, err
		}
		bt, err := inf.inferIn(env2, m.Exp)
		if err != nil {
			return nil, err
		}
		if err := inf.unify(m.Exp.Pos(), bt, resVar); err != nil {
			return nil, err
		}
	}
	return resVar, nil
}

func (inf *Inferencer) inferLet(n *ast.LetExp) (types.Type, error) {
	saved := inf.Env
	env := inf.Env
	for _, d := range n.Decls {
		inf.Env = env
		newEnv, err := inf.inferDecl(d)
		if err != nil {
			inf.Env = saved
			return nil, err
		}
		env = newEnv
	}
	inf.Env = env
	bt, err := inf.infer(n.Body)
	inf.Env = saved
	return bt, err
}

// inferInfix treats every infix operator except the short-circuiting
// andalso/orelse as an ordinary call to the built-in bound under its
// symbol, matching the resolver's lowering of InfixExp to
// Apply(BuiltInLiteral(op), Tuple(a,b)) — see resolver.go. andalso/orelse
// are lowered to Case-based if/then/else instead, so they are typed
// directly here rather than through a built-in scheme.
func (inf *Inferencer) inferInfix(n *ast.InfixExp) (types.Type, error) {
	op := n.Op()
	if op == ast.AndAlso || op == ast.OrElse {
		at, err := inf.infer(n.A)
		if err != nil {
			return nil, err
		}
		if err := inf.unify(n.A.Pos(), at, types.Bool); err != nil {
			return nil, err
		}
		bt, err := inf.infer(n.B)
		if err != nil {
			return nil, err
		}
		if err := inf.unify(n.B.Pos(), bt, types.Bool); err != nil {
			return nil, err
		}
		return types.Bool, nil
	}

	sym := ast.Symbol(op)
	b, ok := inf.Env.Lookup(sym)
	if !ok {
		return nil, newTypeError(n.Pos(), "unbound operator %s", sym)
	}
	fnTy := instantiate(inf.TS, inf.level, b.Scheme)
	at, err := inf.infer(n.A)
	if err != nil {
		return nil, err
	}
	bt, err := inf.infer(n.B)
	if err != nil {
		return nil, err
	}
	resVar := inf.TS.NewVar(inf.level)
	if err := inf.unify(n.Pos(), fnTy, inf.TS.Fn(inf.TS.Tuple(at, bt), resVar)); err != nil {
		return nil, err
	}
	return resVar, nil
}

// inferFrom types a from-query: each source contributes its pattern's
// bindings to a row scope; where narrows without changing it; group
// replaces it wholesale with the key and aggregate fields; order leaves it
// untouched; yield (explicit or the implicit "whole row" default) produces
// the query's element type.
func (inf *Inferencer) inferFrom(e *ast.FromExp) (types.Type, error) {
	outer := inf.Env
	env := outer
	var fieldOrder []string
	fieldTypes := map[string]types.Type{}

	for _, src := range e.Sources {
		st, err := inf.inferIn(env, src.Exp)
		if err != nil {
			return nil, err
		}
		var elemTy types.Type
		if lt, ok := types.RealType(st).(*types.ListType); ok {
			elemTy = lt.Elem
		} else {
			ev := inf.TS.NewVar(inf.level)
			if err := inf.unify(src.Exp.Pos(), st, inf.TS.List(ev)); err != nil {
				return nil, err
			}
			elemTy = ev
		}
		env2, bound, err := inf.inferPat(env, src.Pat, elemTy)
		if err != nil {
			return nil, err
		}
		env = env2
		for _, bv := range bound {
			if _, exists := fieldTypes[bv.Name]; !exists {
				fieldOrder = append(fieldOrder, bv.Name)
			}
			fieldTypes[bv.Name] = bv.Type
		}

		// A source bound to a single name over a record row (`from e in
		// rows`, as opposed to `from {id, dept} in rows`) still makes its
		// fields addressable by bare name within this from-query's own
		// where/group/order/yield clauses — the default-yield rule already
		// treats "the record of currently-bound source fields" as scope,
		// and this extends that to record-typed whole-row bindings. These
		// extra names live only in the local row scope `env`, never in
		// fieldOrder/fieldTypes, so they never leak into an implicit
		// whole-row yield or survive past a `group` step that replaces the
		// scope outright.
		if rt, ok := types.RealType(elemTy).(*types.Record); ok {
			labels, fields, _ := types.FlattenRow(rt.Row)
			for i, l := range labels {
				if _, shadowed := fieldTypes[l]; shadowed {
					continue
				}
				env = env.Bind(l, &Binding{Name: l, Scheme: monoScheme(fields[i])})
			}
		}
	}

	for _, step := range e.Steps {
		switch s := step.(type) {
		case ast.WhereExp:
			pt, err := inf.inferIn(env, s.Pred)
			if err != nil {
				return nil, err
			}
			if err := inf.unify(s.Pred.Pos(), pt, types.Bool); err != nil {
				return nil, err
			}

		case ast.GroupExp:
			var newOrder []string
			newFields := map[string]types.Type{}
			for _, k := range s.Keys {
				kt, err := inf.inferIn(env, k.Exp)
				if err != nil {
					return nil, err
				}
				newFields[k.Label] = kt
				newOrder = append(newOrder, k.Label)
			}
			for _, a := range s.Aggregates {
				var argT types.Type
				if a.Arg != nil {
					var err error
					argT, err = inf.inferIn(env, a.Arg)
					if err != nil {
						return nil, err
					}
				}
				kind, _ := aggregateNameOf(a.Agg)
				newFields[a.Name] = aggregateResultType(kind, argT)
				newOrder = append(newOrder, a.Name)
			}
			fieldOrder = newOrder
			fieldTypes = newFields
			env = outer
			for _, name := range fieldOrder {
				env = env.Bind(name, &Binding{Name: name, Scheme: monoScheme(fieldTypes[name])})
			}

		case ast.OrderExp:
			for _, it := range s.Items {
				if _, err := inf.inferIn(env, it.Exp); err != nil {
					return nil, err
				}
			}
		}
	}

	orderSnapshot := append([]string(nil), fieldOrder...)
	typesSnapshot := make(map[string]types.Type, len(fieldTypes))
	for k, v := range fieldTypes {
		typesSnapshot[k] = v
	}
	inf.FromFields[e] = &FromRowFields{Order: orderSnapshot, Types: typesSnapshot}

	var yieldTy types.Type
	if e.Yield != nil {
		var err error
		yieldTy, err = inf.inferIn(env, e.Yield)
		if err != nil {
			return nil, err
		}
	} else {
		fields := map[string]types.Type{}
		for _, n := range fieldOrder {
			fields[n] = fieldTypes[n]
		}
		yieldTy = inf.TS.Record(fields)
	}
	return inf.TS.List(yieldTy), nil
}

func aggregateNameOf(agg ast.Exp) (string, bool) {
	id, ok := agg.(*ast.IdExp)
	if !ok {
		return "", false
	}
	return id.Name, true
}

func aggregateResultType(kind string, argT types.Type) types.Type {
	if kind == "count" {
		return types.Int
	}
	if argT != nil {
		return argT
	}
	return types.Int
}

// --- Declarations ---

func (inf *Inferencer) inferDecl(d ast.Decl) (*Environment, error) {
	switch n := d.(type) {
	case *ast.ValDeclNode:
		return inf.inferValDecl(n)
	case *ast.DatatypeDeclNode:
		return inf.inferDatatypeDecl(n)
	default:
		return nil, newCompileError("unhandled declaration kind at %s", d.Pos())
	}
}

func (inf *Inferencer) inferValDecl(d *ast.ValDeclNode) (*Environment, error) {
	inf.level++

	if d.Rec {
		env := inf.Env
		preVars := make([]*types.Var, len(d.Binds))
		names := make([]string, len(d.Binds))
		for i, b := range d.Binds {
			idp, ok := b.Pat.(*ast.IdPatNode)
			if !ok {
				inf.level--
				return nil, newTypeError(d.Pos(), "val rec requires a simple identifier pattern")
			}
			names[i] = idp.Name
			v := inf.TS.NewVar(inf.level)
			preVars[i] = v
			env = env.Bind(idp.Name, &Binding{Name: idp.Name, Scheme: monoScheme(v)})
		}
		saved := inf.Env
		inf.Env = env
		for i, b := range d.Binds {
			et, err := inf.infer(b.Exp)
			if err != nil {
				inf.Env = saved
				inf.level--
				return nil, err
			}
			if err := inf.unify(b.Exp.Pos(), preVars[i], et); err != nil {
				inf.Env = saved
				inf.level--
				return nil, err
			}
		}
		inf.Env = saved
		inf.level--

		result := inf.Env
		for i, b := range d.Binds {
			var scheme *Scheme
			if inf.isSyntacticValue(b.Exp) {
				scheme = generalize(inf.level, preVars[i])
			} else {
				scheme = monoScheme(preVars[i])
			}
			result = result.Bind(names[i], &Binding{Name: names[i], Scheme: scheme})
		}
		return result, nil
	}

	result := inf.Env
	type bindGroup struct {
		isVal bool
		bound []boundVar
	}
	groups := make([]bindGroup, len(d.Binds))
	for i, b := range d.Binds {
		et, err := inf.infer(b.Exp)
		if err != nil {
			inf.level--
			return nil, err
		}
		_, bound, err := inf.inferPat(inf.Env, b.Pat, et)
		if err != nil {
			inf.level--
			return nil, err
		}
		groups[i] = bindGroup{isVal: inf.isSyntacticValue(b.Exp), bound: bound}
	}
	inf.level--

	// Generalizing only after the level drop back to the enclosing scope's
	// level is what makes a var created while inferring the right-hand side
	// "deeper" than its surroundings, and therefore eligible to be marked
	// generic instead of left monomorphic.
	for _, g := range groups {
		for _, bv := range g.bound {
			var scheme *Scheme
			if g.isVal {
				scheme = generalize(inf.level, bv.Type)
			} else {
				scheme = monoScheme(bv.Type)
			}
			result = result.Bind(bv.Name, &Binding{Name: bv.Name, Scheme: scheme})
		}
	}
	return result, nil
}

// isSyntacticValue implements the value restriction: only a binding whose
// right-hand side is a syntactic value (not an arbitrary computation) is
// eligible for polymorphic generalization. Constructor application counts
// as a value exactly when its argument does.
func (inf *Inferencer) isSyntacticValue(e ast.Exp) bool {
	switch n := e.(type) {
	case *ast.Literal, *ast.IdExp, *ast.FnExp:
		return true
	case *ast.TupleExp:
		for _, el := range n.Elems {
			if !inf.isSyntacticValue(el) {
				return false
			}
		}
		return true
	case *ast.RecordExp:
		for _, f := range n.Fields {
			if !inf.isSyntacticValue(f.Exp) {
				return false
			}
		}
		return true
	case *ast.ListExp:
		for _, el := range n.Elems {
			if !inf.isSyntacticValue(el) {
				return false
			}
		}
		return true
	case *ast.ApplyExp:
		id, ok := n.Fn.(*ast.IdExp)
		if !ok {
			return false
		}
		if _, isCtor := inf.Ctors[id.Name]; !isCtor {
			return false
		}
		return inf.isSyntacticValue(n.Arg)
	default:
		return false
	}
}

func (inf *Inferencer) inferDatatypeDecl(d *ast.DatatypeDeclNode) (*Environment, error) {
	env := inf.Env
	placeholders := make([]*types.Temporary, len(d.Binds))
	params := make([][]*types.Var, len(d.Binds))

	for i, b := range d.Binds {
		placeholders[i] = inf.TS.NewTemporary(b.Name)
		inf.tempsByName[b.Name] = placeholders[i]
		ps := make([]*types.Var, len(b.Params))
		for j, pname := range b.Params {
			v := inf.TS.NewVar(0)
			v.Name = pname
			v.SetGeneric()
			ps[j] = v
		}
		params[i] = ps
	}

	for i, b := range d.Binds {
		ctors := map[string]*types.Constructor{}
		for _, name := range b.CtorOrd {
			texp := b.Ctors[name]
			var arg types.Type
			if texp != nil {
				var err error
				arg, err = inf.resolveTypeExp(texp, params[i])
				if err != nil {
					return nil, err
				}
			}
			ctors[name] = &types.Constructor{Name: name, Arg: arg}
		}
		real := &types.DataType{Name: b.Name, Params: params[i], Ctors: ctors, Order: b.CtorOrd}
		finished := inf.TS.FinishDatatype(placeholders[i], real)
		inf.Datatypes[b.Name] = finished
		for _, name := range b.CtorOrd {
			inf.Ctors[name] = finished
			ctor := finished.Ctors[name]
			var scheme *Scheme
			if ctor.Arg == nil {
				scheme = &Scheme{Vars: finished.Params, Type: finished}
			} else {
				scheme = &Scheme{Vars: finished.Params, Type: &types.Arrow{Param: ctor.Arg, Result: finished}}
			}
			env = env.Bind(name, &Binding{Name: name, Scheme: scheme})
		}
	}
	return env, nil
}

func (inf *Inferencer) resolveTypeExp(te ast.TypeExp, params []*types.Var) (types.Type, error) {
	switch t := te.(type) {
	case ast.VarTypeExp:
		for _, p := range params {
			if p.Name == t.Name {
				return p, nil
			}
		}
		return nil, newCompileError("type variable '%s not in scope", t.Name)
	case ast.TupleTypeExp:
		elems := make([]types.Type, len(t.Elems))
		for i, el := range t.Elems {
			r, err := inf.resolveTypeExp(el, params)
			if err != nil {
				return nil, err
			}
			elems[i] = r
		}
		return inf.TS.Tuple(elems...), nil
	case ast.FnTypeExp:
		p, err := inf.resolveTypeExp(t.Param, params)
		if err != nil {
			return nil, err
		}
		r, err := inf.resolveTypeExp(t.Result, params)
		if err != nil {
			return nil, err
		}
		return inf.TS.Fn(p, r), nil
	case ast.ConTypeExp:
		if t.Name == "list" && len(t.Args) == 1 {
			el, err := inf.resolveTypeExp(t.Args[0], params)
			if err != nil {
				return nil, err
			}
			return inf.TS.List(el), nil
		}
		if prim := primitiveByName(t.Name); prim != nil && len(t.Args) == 0 {
			return prim, nil
		}
		if tmp, ok := inf.tempsByName[t.Name]; ok {
			return tmp, nil
		}
		if dt, ok := inf.Datatypes[t.Name]; ok {
			return dt, nil
		}
		return nil, newCompileError("unknown type constructor %s", t.Name)
	default:
		return nil, newCompileError("unsupported type expression")
	}
}

func primitiveByName(name string) types.Type {
	switch name {
	case "unit":
		return types.Unit
	case "bool":
		return types.Bool
	case "char":
		return types.Char
	case "int":
		return types.Int
	case "real":
		return types.Real
	case "string":
		return types.String
	default:
		return nil
	}
}

func literalValueType(v interface{}) types.Type {
	switch v.(type) {
	case bool:
		return types.Bool
	case rune:
		return types.Char
	case int64:
		return types.Int
	case float64:
		return types.Real
	case string:
		return types.String
	default:
		return types.Unit
	}
}

// --- Patterns ---

// inferPat unifies pat's shape against ty, extends env with every
// identifier pat binds (monomorphically — generalization, if any, is the
// caller's job once the whole right-hand side has been inferred), and
// returns the extended environment plus the flat list of bindings
// introduced, in left-to-right order.
func (inf *Inferencer) inferPat(env *Environment, pat ast.Pat, ty types.Type) (*Environment, []boundVar, error) {
	inf.PatTypes[pat] = ty
	switch p := pat.(type) {
	case *ast.IdPatNode:
		env2 := env.Bind(p.Name, &Binding{Name: p.Name, Scheme: monoScheme(ty)})
		return env2, []boundVar{{p.Name, ty}}, nil

	case *ast.WildcardPatNode:
		return env, nil, nil

	case *ast.LiteralPatNode:
		if err := inf.unify(p.Pos(), ty, literalValueType(p.Value)); err != nil {
			return nil, nil, err
		}
		return env, nil, nil

	case *ast.ConPatNode:
		dt, ctor, ok := inf.lookupCtor(p.Name)
		if !ok {
			return nil, nil, newTypeError(p.Pos(), "unbound constructor %s", p.Name)
		}
		instDT, sub := inf.instantiateDataType(dt)
		if err := inf.unify(p.Pos(), ty, instDT); err != nil {
			return nil, nil, err
		}
		if p.Arg == nil {
			if ctor.Arg != nil {
				return nil, nil, newTypeError(p.Pos(), "constructor %s requires an argument", p.Name)
			}
			return env, nil, nil
		}
		if ctor.Arg == nil {
			return nil, nil, newTypeError(p.Pos(), "constructor %s takes no argument", p.Name)
		}
		argTy := instantiateType(sub, ctor.Arg)
		return inf.inferPat(env, p.Arg, argTy)

	case *ast.TuplePatNode:
		elemVars := make([]types.Type, len(p.Elems))
		for i := range elemVars {
			elemVars[i] = inf.TS.NewVar(inf.level)
		}
		if err := inf.unify(p.Pos(), ty, inf.TS.Tuple(elemVars...)); err != nil {
			return nil, nil, err
		}
		curEnv := env
		var all []boundVar
		for i, sub := range p.Elems {
			e2, bs, err := inf.inferPat(curEnv, sub, elemVars[i])
			if err != nil {
				return nil, nil, err
			}
			curEnv = e2
			all = append(all, bs...)
		}
		return curEnv, all, nil

	case *ast.RecordPatNode:
		fieldVars := map[string]types.Type{}
		for _, lf := range p.Fields {
			fieldVars[lf.Label] = inf.TS.NewVar(inf.level)
		}
		var rowTy types.Type
		if p.Ellipsis {
			labels := make([]string, 0, len(fieldVars))
			for l := range fieldVars {
				labels = append(labels, l)
			}
			types.SortLabels(labels)
			var row types.Row = inf.TS.NewVar(inf.level)
			for i := len(labels) - 1; i >= 0; i-- {
				row = &types.RowExtend{Label: labels[i], Field: fieldVars[labels[i]], Rest: row}
			}
			rowTy = &types.Record{Row: row}
		} else {
			rowTy = types.NewRecordType(fieldVars)
		}
		if err := inf.unify(p.Pos(), ty, rowTy); err != nil {
			return nil, nil, err
		}
		curEnv := env
		var all []boundVar
		for _, lf := range p.Fields {
			e2, bs, err := inf.inferPat(curEnv, lf.Pat, fieldVars[lf.Label])
			if err != nil {
				return nil, nil, err
			}
			curEnv = e2
			all = append(all, bs...)
		}
		return curEnv, all, nil

	case *ast.ListPatNode:
		elemVar := inf.TS.NewVar(inf.level)
		if err := inf.unify(p.Pos(), ty, inf.TS.List(elemVar)); err != nil {
			return nil, nil, err
		}
		curEnv := env
		var all []boundVar
		for _, sub := range p.Elems {
			e2, bs, err := inf.inferPat(curEnv, sub, elemVar)
			if err != nil {
				return nil, nil, err
			}
			curEnv = e2
			all = append(all, bs...)
		}
		return curEnv, all, nil

	case *ast.ConsPatNode:
		elemVar := inf.TS.NewVar(inf.level)
		if err := inf.unify(p.Pos(), ty, inf.TS.List(elemVar)); err != nil {
			return nil, nil, err
		}
		e2, bs1, err := inf.inferPat(env, p.Head, elemVar)
		if err != nil {
			return nil, nil, err
		}
		e3, bs2, err := inf.inferPat(e2, p.Tail, ty)
		if err != nil {
			return nil, nil, err
		}
		return e3, append(bs1, bs2...), nil

	default:
		return nil, nil, newCompileError("unhandled pattern kind at %s", pat.Pos())
	}
}

func (inf *Inferencer) lookupCtor(name string) (*types.DataType, *types.Constructor, bool) {
	dt, ok := inf.Ctors[name]
	if !ok {
		return nil, nil, false
	}
	c, ok := dt.Ctor(name)
	return dt, c, ok
}

// instantiateDataType builds a fresh, monomorphic copy of dt at the
// inferencer's current level, substituting fresh Vars for dt's (generic)
// Params, and returns the substitution so the caller can instantiate a
// constructor's argument type with the same fresh Vars.
func (inf *Inferencer) instantiateDataType(dt *types.DataType) (*types.DataType, map[*types.Var]*types.Var) {
	sub := map[*types.Var]*types.Var{}
	for _, p := range dt.Params {
		sub[p] = inf.TS.NewVar(inf.level)
	}
	inst := instantiateType(sub, dt)
	return inst.(*types.DataType), sub
}
