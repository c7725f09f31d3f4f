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

import "github.com/benbjohnson/immutable"

var emptyList = immutable.NewList()

// List is an SML list value, backed by an immutable.List. Tail (and
// pattern matching on `h::t`) is O(1) and shares structure with l, since
// it is just l's underlying vector re-sliced; Cons is not — the
// underlying vector is optimised for indexed access and append, not
// prepend, so consing rebuilds the whole list into a fresh one.
type List struct{ l *immutable.List }

var EmptyList = List{emptyList}

func NewList(elems ...interface{}) List {
	b := immutable.NewListBuilder(emptyList)
	for _, e := range elems {
		b.Append(e)
	}
	return List{b.List()}
}

func (l List) Len() int { return l.listOrEmpty().Len() }

func (l List) Get(i int) interface{} { return l.listOrEmpty().Get(i) }

func (l List) IsEmpty() bool { return l.Len() == 0 }

// Cons prepends v, returning a new list. Unlike Tail, this copies every
// element of l into the new list (see the List doc comment).
func (l List) Cons(v interface{}) List {
	b := immutable.NewListBuilder(emptyList)
	b.Append(v)
	it := l.listOrEmpty().Iterator()
	for !it.Done() {
		_, x := it.Next()
		b.Append(x)
	}
	return List{b.List()}
}

// Head and Tail implement list destructuring for `::` pattern matching
// and the built-in hd/tl functions; both raise RuntimeError on an empty
// list (per §7, distinct from MatchFailure).
func (l List) Head() (interface{}, error) {
	if l.IsEmpty() {
		return nil, runtimeErrorf("hd: empty list")
	}
	return l.Get(0), nil
}

func (l List) Tail() (List, error) {
	if l.IsEmpty() {
		return EmptyList, runtimeErrorf("tl: empty list")
	}
	return List{l.listOrEmpty().Slice(1, l.Len())}, nil
}

func (l List) Range(f func(int, interface{}) bool) {
	it := l.listOrEmpty().Iterator()
	for !it.Done() {
		i, v := it.Next()
		if !f(i, v) {
			return
		}
	}
}

func (l List) Slice(start, end int) List { return List{l.listOrEmpty().Slice(start, end)} }

func (l List) listOrEmpty() *immutable.List {
	if l.l == nil {
		return emptyList
	}
	return l.l
}

// ToSlice materialises l for uses (sorting, grouping) that need random
// access and reordering; the from-query evaluator works on slices
// internally and only rebuilds a List at the end.
func (l List) ToSlice() []interface{} {
	out := make([]interface{}, 0, l.Len())
	l.Range(func(_ int, v interface{}) bool { out = append(out, v); return true })
	return out
}

func SliceToList(elems []interface{}) List { return NewList(elems...) }
