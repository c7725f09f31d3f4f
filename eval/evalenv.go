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

import "github.com/gtejedap/morel/internal/util"

// Env is the runtime (name -> value) environment Code trees evaluate
// against: a persistent chain, just like compile.Environment, but mapping
// straight to values instead of bindings.
type Env struct{ chain *util.Chain }

func NewEnv() *Env { return &Env{chain: util.Empty} }

func (e *Env) Bind(name string, v interface{}) *Env {
	return &Env{chain: e.chain.Bind(name, v)}
}

func (e *Env) Lookup(name string) (interface{}, bool) {
	return e.chain.Lookup(name)
}

func (e *Env) Range(f func(name string, v interface{}) bool) {
	e.chain.Range(f)
}
