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

import "github.com/gtejedap/morel/core"

// DefaultInlinePassCount bounds the optimizer's fixpoint loop. Each pass
// currently leaves the tree unchanged, so the loop always exits after one
// round; the constant and the loop stay in place so a profitable rewrite
// (constant folding, trivial-binding inlining) can be dropped in later
// without touching the resolver or compiler.
const DefaultInlinePassCount = 4

// Optimize runs up to passes rounds of rewriting over e, stopping as soon
// as a round leaves the tree unchanged (checked by reference equality,
// since every rewrite below either returns its input unchanged or
// allocates a new node).
func Optimize(e core.Exp, passes int) core.Exp {
	for i := 0; i < passes; i++ {
		next := optimizePass(e)
		if next == e {
			return e
		}
		e = next
	}
	return e
}

// OptimizeDecl optimizes the expression side of a value declaration,
// leaving the pattern untouched.
func OptimizeDecl(d *core.ValDecl, passes int) *core.ValDecl {
	return &core.ValDecl{Rec: d.Rec, Pat: d.Pat, Exp: Optimize(d.Exp, passes)}
}

// optimizePass is the identity rewrite: it returns e unchanged without
// walking it.
func optimizePass(e core.Exp) core.Exp {
	return e
}
