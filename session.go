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

// Package morel ties the type system, compile-time environment and
// runtime environment together into a single session: the external
// interface a host (REPL, test, script runner) drives one statement at a
// time. Everything upstream of a surface AST node — lexing, parsing, the
// REPL loop itself — is an external collaborator; a Session only accepts
// already-parsed ast.Decl/ast.Exp values.
package morel

import (
	"bytes"
	"io"

	"github.com/gtejedap/morel/compile"
	"github.com/gtejedap/morel/eval"
	"github.com/gtejedap/morel/types"
)

// Session is one long-lived compilation+evaluation context: one
// *types.TypeSystem (so every type it allocates interns into the same
// table), one compile-time Environment, one runtime Env, advanced
// together one statement at a time. A Session must not be shared between
// concurrent callers — per §5, the type system's interning table is
// exclusively owned by one session.
type Session struct {
	TS   *types.TypeSystem
	Inf  *compile.Inferencer
	Comp *compile.Compiler
	Env  *eval.Env

	Options compile.Options
}

// NewSession builds a session with the fixed built-in registry (true,
// false, nil, arithmetic, comparison, list and string operators) bound
// into both the compile-time environment, as type schemes, and the
// runtime environment, as callables/constants.
func NewSession() *Session {
	ts := types.NewTypeSystem()
	env := compile.NewEnvironment()
	runtime := eval.NewEnv()

	for name, def := range compile.Registry(ts) {
		env = env.Bind(name, &compile.Binding{Name: name, Scheme: def.Scheme(ts)})
		runtime = runtime.Bind(name, def.Callable())
	}

	return &Session{
		TS:   ts,
		Inf:  compile.NewInferencer(ts, env),
		Comp: compile.NewCompiler(ts, env),
		Env:  runtime,
	}
}

// Result is the outcome of running one top-level statement: the names it
// bound, the REPL-style output lines (one per bound name, §6's "val name
// = value : type" form), and the error that aborted it, if any.
type Result struct {
	Names  []string
	Output string
	Err    error
}

// Run prepares and evaluates node (an *ast.ValDeclNode, *ast.DatatypeDeclNode
// or a bare ast.Exp) against the session's current state. A TypeError or
// CompileError returned by preparation leaves the session's environments
// untouched beyond what PrepareStatement itself already committed (see
// compile.PrepareStatement); a MatchFailure or RuntimeError from
// evaluation still keeps whatever this statement already bound before
// failing, per §7's propagation policy — Run does not roll that back.
func (s *Session) Run(node interface{}) Result {
	stmt, err := compile.PrepareStatement(s.Inf, s.Comp, node, s.Options)
	if err != nil {
		return Result{Err: err}
	}

	var buf bytes.Buffer
	env2, err := stmt.Eval(s.Env, &buf)
	s.Env = env2
	return Result{Names: stmt.Names(), Output: buf.String(), Err: err}
}

// RunTo is Run, but writes output directly to out instead of buffering it
// into Result.Output — the form a REPL loop actually wants.
func (s *Session) RunTo(node interface{}, out io.Writer) error {
	stmt, err := compile.PrepareStatement(s.Inf, s.Comp, node, s.Options)
	if err != nil {
		return err
	}
	env2, err := stmt.Eval(s.Env, out)
	s.Env = env2
	return err
}
