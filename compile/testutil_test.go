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
	"github.com/gtejedap/morel/eval"
	"github.com/gtejedap/morel/types"
)

// testSession wires an Inferencer, Compiler and runtime Env against the
// fixed built-in registry, the way NewSession does at the morel package
// level, so compile-package tests can drive the three stages directly
// without going through an ast.Decl-only public surface.
type testSession struct {
	ts   *types.TypeSystem
	inf  *Inferencer
	comp *Compiler
	env  *eval.Env
}

func newTestSession() *testSession {
	ts := types.NewTypeSystem()
	env := NewEnvironment()
	runtime := eval.NewEnv()

	for name, def := range Registry(ts) {
		env = env.Bind(name, &Binding{Name: name, Scheme: def.Scheme(ts)})
		runtime = runtime.Bind(name, def.Callable())
	}

	return &testSession{
		ts:   ts,
		inf:  NewInferencer(ts, env),
		comp: NewCompiler(ts, env),
		env:  runtime,
	}
}

// run prepares and evaluates node against the session's current state,
// threading the inferencer/compiler/runtime forward the way Session.Run
// does, and returns the evaluated value of the last name node bound (or
// nil for a datatype declaration).
func (s *testSession) run(node interface{}) (*CompiledStatement, interface{}, error) {
	stmt, err := PrepareStatement(s.inf, s.comp, node, Options{})
	if err != nil {
		return nil, nil, err
	}
	env2, err := stmt.Eval(s.env, discard{})
	s.env = env2
	if err != nil {
		return stmt, nil, err
	}
	names := stmt.Names()
	if len(names) == 0 {
		return stmt, nil, nil
	}
	v, _ := env2.Lookup(names[len(names)-1])
	return stmt, v, nil
}

// discard is an io.Writer that throws away every write, used where a test
// only cares about the returned value rather than the "val x = ..." line.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
