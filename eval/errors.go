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

// Package eval executes compiled Code trees: the closure/pattern matcher,
// the persistent runtime environment, the from-query evaluator and the
// canonical value pretty-printer.
package eval

import "fmt"

// MatchFailure is raised when no clause of a function application or
// case expression accepts its argument. Distinct from RuntimeError per
// the error taxonomy; pattern exhaustiveness is never checked ahead of
// time, so this is the only signal a caller gets.
type MatchFailure struct{ Value interface{} }

func (e *MatchFailure) Error() string { return "match failure" }

// RuntimeError covers division by zero, head/tail of an empty list, and
// similar runtime faults that are not a match failure.
type RuntimeError struct{ Message string }

func (e *RuntimeError) Error() string { return e.Message }

func runtimeErrorf(format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Message: fmt.Sprintf(format, args...)}
}
