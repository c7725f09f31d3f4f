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

package ast

import "strings"

// Writer accumulates the textual form of an expression tree, threading
// precedence context through infix operators so that only the
// parentheses actually required by the surrounding context get written.
// Out of scope for the REPL (the parser/printer pair is an external
// collaborator there); used internally by core's printer and by tests
// that check round-trip properties.
type Writer struct {
	sb strings.Builder
}

func NewWriter() *Writer { return &Writer{} }

func (w *Writer) String() string { return w.sb.String() }

func (w *Writer) Raw(s string) *Writer {
	w.sb.WriteString(s)
	return w
}

// Infix writes "a op b", parenthesising the whole expression if the
// ambient context (leftCtx, rightCtx) binds tighter than op's own
// precedence band (opLeft, opRight) allows. writeA and writeB are called
// with the precedence context their respective operand must satisfy.
func (w *Writer) Infix(leftCtx, rightCtx int, writeA func(left, right int), opLeft int, sym string, opRight int, writeB func(left, right int)) {
	paren := leftCtx > opLeft || rightCtx > opRight
	if paren {
		w.Raw("(")
	}
	writeA(leftCtx, opLeft)
	w.Raw(" ")
	w.Raw(sym)
	w.Raw(" ")
	writeB(opRight, rightCtx)
	if paren {
		w.Raw(")")
	}
}

// MinPrec and MaxPrec bound the precedence range: an atomic expression
// (literal, identifier, parenthesised or bracketed form) may be written in
// any context, so callers pass MinPrec/MaxPrec as its (left, right) band.
const (
	MinPrec = 0
	MaxPrec = 1 << 30
)
