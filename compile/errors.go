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

// Package compile holds the three typed stages between surface AST and
// executable Code: the inferencer (infer.go), the surface->core resolver
// (resolver.go), and the core->Code compiler (compiler.go), plus the
// environment, built-in registry, optimiser slot and session glue shared
// between them.
package compile

import (
	"fmt"

	"github.com/gtejedap/morel/ast"
)

// TypeError is produced by the inferencer: unbound identifier,
// unification failure, a non-exhaustive record pattern with no ellipsis,
// constructor arity mismatch. It carries the source position of the
// offending node.
type TypeError struct {
	Pos     ast.Pos
	Message string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("type error at %s: %s", e.Pos, e.Message)
}

func newTypeError(pos ast.Pos, format string, args ...interface{}) *TypeError {
	return &TypeError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// CompileError indicates an internal invariant violation — an unhandled
// core operator and similar bugs that a correct implementation should
// never hit. It is fatal to the session. (A forward-reference cell left
// unlinked is not reported this way: eval.LinkCode panics when read.)
type CompileError struct{ Message string }

func (e *CompileError) Error() string { return "compile error: " + e.Message }

func newCompileError(format string, args ...interface{}) *CompileError {
	return &CompileError{Message: fmt.Sprintf(format, args...)}
}
