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
	"fmt"
	"io"

	"github.com/gtejedap/morel/ast"
	"github.com/gtejedap/morel/core"
	"github.com/gtejedap/morel/eval"
)

// Options carries the two host-configurable knobs: how many optimiser
// fixpoint passes PrepareStatement runs, and whether to swap in a
// relational-pushdown compiler for `from` queries. Hybrid is accepted and
// threaded through but the pushdown variant itself is an external
// collaborator; PrepareStatement always falls back to the base compiler.
type Options struct {
	InlinePassCount int
	Hybrid          bool
}

// withDefaults fills unset fields the way the teacher's constructors treat
// a zero-value argument as "unset" rather than "explicitly zero".
func (o Options) withDefaults() Options {
	if o.InlinePassCount <= 0 {
		o.InlinePassCount = DefaultInlinePassCount
	}
	return o
}

// ctorBinding is one runtime binding a datatype declaration installs: a
// 0-ary constructor binds a bare eval.Con value, an n-ary one binds a
// Callable that wraps its argument into a Con.
type ctorBinding struct {
	name  string
	value interface{}
}

// CompiledStatement is a fully prepared top-level statement — a value or
// datatype declaration, or a bare expression evaluated for its value and
// bound to "it" — ready to run against a runtime environment. Preparing a
// statement immediately commits its type-level effects to the
// Inferencer's and Compiler's own environments (a type error aborts
// before any of that happens); Eval only has runtime effects left to
// perform.
type CompiledStatement struct {
	names   []string
	schemes []*Scheme
	pat     eval.Pat
	rhs     eval.Code
	ctors   []ctorBinding
}

// Names reports every name this statement binds, in declaration order
// ("it" for a bare expression).
func (cs *CompiledStatement) Names() []string { return cs.names }

// PrepareStatement infers, resolves, optimises and compiles node — either
// an ast.Decl (*ast.ValDeclNode, *ast.DatatypeDeclNode) or a bare
// ast.Exp — against inf and comp, which are mutated in place to carry the
// statement's bindings forward to whatever is prepared next.
func PrepareStatement(inf *Inferencer, comp *Compiler, node interface{}, opts Options) (*CompiledStatement, error) {
	opts = opts.withDefaults()
	switch n := node.(type) {
	case *ast.ValDeclNode:
		return prepareDecl(inf, comp, n, opts)
	case *ast.DatatypeDeclNode:
		return prepareDecl(inf, comp, n, opts)
	case ast.Exp:
		return prepareExp(inf, comp, n, opts)
	default:
		return nil, newCompileError("statement: unrecognized node of type %T", node)
	}
}

func prepareDecl(inf *Inferencer, comp *Compiler, d ast.Decl, opts Options) (*CompiledStatement, error) {
	before := inf.Env
	after, err := inf.InferDecl(d)
	if err != nil {
		return nil, err
	}
	names := boundNames(before, after)
	schemes := make([]*Scheme, len(names))
	for i, name := range names {
		b, _ := after.Lookup(name)
		DefaultUnresolved(b.Scheme.Type)
		schemes[i] = b.Scheme
	}
	inf.Env = after

	res := NewResolver(inf)
	cd, err := res.ResolveDecl(d)
	if err != nil {
		return nil, err
	}

	if dt, ok := d.(*ast.DatatypeDeclNode); ok {
		ctors := datatypeCtorBindings(inf, dt)
		for _, c := range ctors {
			comp.Env = comp.Env.Bind(c.name, &Binding{Name: c.name})
		}
		return &CompiledStatement{names: names, schemes: schemes, ctors: ctors}, nil
	}

	vn, ok := cd.(*core.ValDecl)
	if !ok {
		return nil, newCompileError("statement: unexpected resolved declaration kind")
	}
	vn = OptimizeDecl(vn, opts.InlinePassCount)

	vd, err := comp.CompileDecl(vn)
	if err != nil {
		return nil, err
	}
	return &CompiledStatement{names: names, schemes: schemes, pat: vd.Pat, rhs: vd.Rhs}, nil
}

func prepareExp(inf *Inferencer, comp *Compiler, e ast.Exp, opts Options) (*CompiledStatement, error) {
	ty, err := inf.InferExp(e)
	if err != nil {
		return nil, err
	}
	DefaultUnresolved(ty)

	res := NewResolver(inf)
	ce, err := res.ResolveExp(e)
	if err != nil {
		return nil, err
	}
	ce = Optimize(ce, opts.InlinePassCount)

	rhs, err := comp.CompileExp(ce)
	if err != nil {
		return nil, err
	}

	scheme := monoScheme(ty)
	inf.Env = inf.Env.Bind("it", &Binding{Name: "it", Scheme: scheme})
	comp.Env = comp.Env.Bind("it", &Binding{Name: "it"})

	return &CompiledStatement{
		names:   []string{"it"},
		schemes: []*Scheme{scheme},
		pat:     eval.IdPat{Name: "it"},
		rhs:     rhs,
	}, nil
}

// datatypeCtorBindings builds the runtime value for every constructor a
// datatype declaration introduces: a bare Con for a 0-ary constructor, a
// NativeFn wrapping construction for an n-ary one.
func datatypeCtorBindings(inf *Inferencer, d *ast.DatatypeDeclNode) []ctorBinding {
	var out []ctorBinding
	for _, b := range d.Binds {
		dt, ok := inf.Datatypes[b.Name]
		if !ok {
			continue
		}
		for _, name := range dt.Order {
			ctor := dt.Ctors[name]
			if ctor.Arg == nil {
				out = append(out, ctorBinding{name: name, value: eval.Con{Name: name}})
				continue
			}
			ctorName := name
			out = append(out, ctorBinding{name: name, value: &eval.NativeFn{
				Name: ctorName,
				Fn: func(arg interface{}) (interface{}, error) {
					return eval.Con{Name: ctorName, Arg: arg}, nil
				},
			}})
		}
	}
	return out
}

// boundNames reports the names after added to before, beyond before's own
// length, in insertion order — the set of names a single declaration just
// bound.
func boundNames(before, after *Environment) []string {
	skip := before.chain.Len()
	var names []string
	i := 0
	after.chain.Range(func(name string, _ interface{}) bool {
		if i >= skip {
			names = append(names, name)
		}
		i++
		return true
	})
	return names
}

// Eval runs the statement's runtime effects against env: evaluating its
// right-hand side (if any), extending env with its bound names, and
// writing one "val name = value : type" line per name to out, in the
// form §6 specifies. A datatype declaration has no right-hand side to
// evaluate; it only extends env with its constructors.
func (cs *CompiledStatement) Eval(env *eval.Env, out io.Writer) (*eval.Env, error) {
	if cs.rhs == nil {
		for _, c := range cs.ctors {
			env = env.Bind(c.name, c.value)
		}
		return env, nil
	}

	v, err := cs.rhs.Eval(env)
	if err != nil {
		return env, err
	}
	env2, ok := eval.Bind(cs.pat, v, env)
	if !ok {
		return env, &eval.MatchFailure{Value: v}
	}
	for i, name := range cs.names {
		bv, _ := env2.Lookup(name)
		ty := cs.schemes[i].Type
		fmt.Fprintf(out, "val %s = %s : %s\n", name, eval.Pretty(bv, ty), ty.Description())
	}
	return env2, nil
}
