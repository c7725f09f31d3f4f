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

package eval

// Code is the executable tree the compiler produces from a core
// expression. Every Code node is evaluated to completion before its
// parent returns: the evaluator is single-threaded and synchronous, with
// no suspension points inside Eval.
type Code interface {
	Eval(env *Env) (interface{}, error)
}

// Tuple is the runtime representation of both tuple and record values:
// an ordered slice of fields, in the value's type's canonical label
// order. A Con (constructor application) carries at most one value, so
// it does not need this representation.
type Tuple []interface{}

// Con is a datatype constructor application. Arg is nil for a 0-ary
// constructor.
type Con struct {
	Name string
	Arg  interface{}
}

// Callable is implemented by every function value: user closures and
// built-ins alike, so Apply's Code doesn't need to distinguish them.
type Callable interface {
	Call(arg interface{}) (interface{}, error)
}

// Clause is one (pattern, body) pair of a closure.
type Clause struct {
	Pat  Pat
	Body Code
}

// Closure is a function value: a captured evaluator environment plus an
// ordered list of clauses. Applying it to v tries each clause's pattern
// against v in order; the first match's body is evaluated in the
// extended environment. Exhausting every clause raises MatchFailure.
type Closure struct {
	Env     *Env
	Clauses []Clause
}

func (c *Closure) Call(arg interface{}) (interface{}, error) {
	for _, clause := range c.Clauses {
		env2, ok := Bind(clause.Pat, arg, c.Env)
		if ok {
			return clause.Body.Eval(env2)
		}
	}
	return nil, &MatchFailure{Value: arg}
}

// NativeFn wraps a built-in implementation as a Callable.
type NativeFn struct {
	Name string
	Fn   func(arg interface{}) (interface{}, error)
}

func (f *NativeFn) Call(arg interface{}) (interface{}, error) { return f.Fn(arg) }

// LinkCode is a forward-reference cell for a `val rec` binding: created
// before the recursive right-hand side is compiled, installed into the
// compile-time environment under the bound name, and linked to the real
// Code exactly once, after compilation of the right-hand side completes.
// It is the only mutable field anywhere in the evaluator; Eval asserts it
// has been linked (a nil Target here is a compiler bug, not a user-
// reachable error) before delegating.
type LinkCode struct {
	Target Code
}

func (c *LinkCode) Eval(env *Env) (interface{}, error) {
	if c.Target == nil {
		panic("eval: LinkCode read before being linked")
	}
	return c.Target.Eval(env)
}

func (c *LinkCode) Link(target Code) { c.Target = target }

// --- Basic combinators ---

// Constant always evaluates to the same value, ignoring env.
type Constant struct{ Value interface{} }

func (c Constant) Eval(env *Env) (interface{}, error) { return c.Value, nil }

// Lookup evaluates to the value bound to Name in env.
type Lookup struct{ Name string }

func (c Lookup) Eval(env *Env) (interface{}, error) {
	v, ok := env.Lookup(c.Name)
	if !ok {
		panic("eval: unbound identifier " + c.Name + " reached the evaluator")
	}
	return v, nil
}

// ApplyCode evaluates Fn and Arg, then calls Fn's value (a Callable) on
// Arg's value.
type ApplyCode struct{ Fn, Arg Code }

func (c ApplyCode) Eval(env *Env) (interface{}, error) {
	fv, err := c.Fn.Eval(env)
	if err != nil {
		return nil, err
	}
	av, err := c.Arg.Eval(env)
	if err != nil {
		return nil, err
	}
	callable, ok := fv.(Callable)
	if !ok {
		panic("eval: Apply's function position did not evaluate to a Callable")
	}
	return callable.Call(av)
}

// TupleCode evaluates its elements left to right and collects them into a
// Tuple.
type TupleCode struct{ Elems []Code }

func (c TupleCode) Eval(env *Env) (interface{}, error) {
	out := make(Tuple, len(c.Elems))
	for i, e := range c.Elems {
		v, err := e.Eval(env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Nth projects the Slot-th field (zero-based) of a Tuple — the compiled
// form of a record selector.
type Nth struct {
	Slot int
	Of   Code
}

func (c Nth) Eval(env *Env) (interface{}, error) {
	v, err := c.Of.Eval(env)
	if err != nil {
		return nil, err
	}
	t, ok := v.(Tuple)
	if !ok {
		panic("eval: Nth applied to a non-Tuple value")
	}
	return t[c.Slot], nil
}

// LetCode evaluates Rhs, binds it against Pat, and evaluates Body in the
// extended environment.
type LetCode struct {
	Pat  Pat
	Rhs  Code
	Body Code
}

func (c LetCode) Eval(env *Env) (interface{}, error) {
	v, err := c.Rhs.Eval(env)
	if err != nil {
		return nil, err
	}
	env2, ok := Bind(c.Pat, v, env)
	if !ok {
		return nil, &MatchFailure{Value: v}
	}
	return c.Body.Eval(env2)
}

// ZListCode evaluates each Elem and collects them into a List — the
// compiled form of a list literal, recognised at compile time from the
// Z_LIST built-in tag the resolver leaves on its Apply node.
type ZListCode struct{ Elems []Code }

func (c ZListCode) Eval(env *Env) (interface{}, error) {
	out := make([]interface{}, len(c.Elems))
	for i, e := range c.Elems {
		v, err := e.Eval(env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return SliceToList(out), nil
}

// FnCode evaluates to a Closure capturing env and Clauses.
type FnCode struct{ Clauses []Clause }

func (c FnCode) Eval(env *Env) (interface{}, error) {
	return &Closure{Env: env, Clauses: c.Clauses}, nil
}

// CaseCode evaluates Scrutinee, then tries Clauses against its value in
// the current environment (no closure indirection — a case expression
// runs immediately, it doesn't produce a function value).
type CaseCode struct {
	Scrutinee Code
	Clauses   []Clause
}

func (c CaseCode) Eval(env *Env) (interface{}, error) {
	v, err := c.Scrutinee.Eval(env)
	if err != nil {
		return nil, err
	}
	for _, clause := range c.Clauses {
		env2, ok := Bind(clause.Pat, v, env)
		if ok {
			return clause.Body.Eval(env2)
		}
	}
	return nil, &MatchFailure{Value: v}
}
