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
	"github.com/gtejedap/morel/internal/util"
	"github.com/gtejedap/morel/types"
)

// Binding is an immutable (name, type, value) triple. Value is nil for an
// ordinary compile-time binding (its runtime value only exists once
// evaluated); it holds an *eval.LinkCode forward-reference cell for a
// `val rec` binding, whose presence Id compilation checks for so the
// referenced code can be inlined in place rather than looked up at
// runtime (see compiler.go).
type Binding struct {
	Name    string
	Scheme  *Scheme
	Value   interface{} // non-nil only for LinkCode forward-reference cells
	IsParam bool        // marks a function-parameter binding; nothing sets or reads it
}

// Scheme is a type, optionally polymorphic over a set of generic type
// variables bound at the `let` that generalised it. Monomorphic bindings
// have an empty Vars.
type Scheme struct {
	Vars []*types.Var
	Type types.Type
}

// Environment is a persistent, ordered compile-time mapping from name to
// Binding. Each Bind returns a new Environment sharing structure with its
// parent.
type Environment struct{ chain *util.Chain }

func NewEnvironment() *Environment { return &Environment{chain: util.Empty} }

func (e *Environment) Bind(name string, b *Binding) *Environment {
	return &Environment{chain: e.chain.Bind(name, b)}
}

func (e *Environment) Lookup(name string) (*Binding, bool) {
	v, ok := e.chain.Lookup(name)
	if !ok {
		return nil, false
	}
	return v.(*Binding), true
}

// Range iterates bindings in insertion order.
func (e *Environment) Range(f func(name string, b *Binding) bool) {
	e.chain.Range(func(name string, v interface{}) bool { return f(name, v.(*Binding)) })
}
