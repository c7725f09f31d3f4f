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

package types

import (
	"strconv"

	"github.com/benbjohnson/immutable"
)

// TypeSystem interns every Type it constructs by moniker, so that two
// structurally equal types are the same pointer (the invariant a
// one-session compiler relies on when comparing types with ==). It owns
// the monotonic counters for fresh type variables and datatype
// placeholders; it must not be shared between concurrent sessions.
type TypeSystem struct {
	interned  *immutable.SortedMap
	nextVarId int
	nextTemp  int
}

func NewTypeSystem() *TypeSystem {
	return &TypeSystem{interned: immutable.NewSortedMap(nil)}
}

// Intern returns the canonical pointer for t: if a structurally equal type
// (same moniker) has already been interned, that existing pointer is
// returned; otherwise t itself is interned and returned.
func (ts *TypeSystem) Intern(t Type) Type {
	m := t.Moniker()
	if existing, ok := ts.interned.Get(m); ok {
		return existing.(Type)
	}
	ts.interned = ts.interned.Set(m, t)
	return t
}

// Fn interns an Arrow(param, result).
func (ts *TypeSystem) Fn(param, result Type) *Arrow {
	return ts.Intern(&Arrow{Param: param, Result: result}).(*Arrow)
}

// List interns a `elem list`.
func (ts *TypeSystem) List(elem Type) *ListType {
	return ts.Intern(&ListType{Elem: elem}).(*ListType)
}

// Record interns a closed record type built from a label->type map.
func (ts *TypeSystem) Record(fields map[string]Type) *Record {
	return ts.Intern(NewRecordType(fields)).(*Record)
}

// Tuple interns a tuple, i.e. a record with labels "1".."n".
func (ts *TypeSystem) Tuple(elems ...Type) *Record {
	return ts.Intern(NewTupleType(elems)).(*Record)
}

// NewVar allocates a fresh, un-interned type variable at the given level.
// Type variables are never interned (their identity, not their moniker,
// is what the unifier cares about).
func (ts *TypeSystem) NewVar(level int) *Var {
	ts.nextVarId++
	return NewVar(ts.nextVarId, level)
}

// NewTemporary allocates a fresh placeholder for a datatype declaration
// currently being resolved.
func (ts *TypeSystem) NewTemporary(name string) *Temporary {
	ts.nextTemp++
	return &Temporary{Name: name + "$tmp" + strconv.Itoa(ts.nextTemp)}
}

// FinishDatatype installs real as the DataType that placeholder stood in
// for, resolving every reference to placeholder reachable from real's own
// constructor argument types (the self-referential case), and returns the
// version of real with those references patched. The placeholder itself
// must not be read again after this call.
func (ts *TypeSystem) FinishDatatype(placeholder *Temporary, real *DataType) *DataType {
	placeholder.Replacement = real
	resolved := ResolveTemporary(real, placeholder, real)
	return ts.Intern(resolved).(*DataType)
}
