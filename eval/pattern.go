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

// Pat is the compiled (type-erased) form of a core pattern: the compiler
// strips types once matching no longer needs them, keeping only the
// structure Bind needs to test and destructure a runtime value.
type Pat interface{ isPat() }

type IdPat struct{ Name string }

func (IdPat) isPat() {}

type WildcardPat struct{}

func (WildcardPat) isPat() {}

// LiteralPat matches by structural equality for strings/chars and by ==
// for numerics, per §4.4.
type LiteralPat struct{ Value interface{} }

func (LiteralPat) isPat() {}

// ConPat matches a datatype constructor by name; Arg is nil for a 0-ary
// constructor.
type ConPat struct {
	Name string
	Arg  Pat
}

func (ConPat) isPat() {}

type TuplePat struct{ Elems []Pat }

func (TuplePat) isPat() {}

// RecordFieldPat is one already-positioned `label = pat` slot.
type RecordFieldPat struct {
	Label string
	Pat   Pat
}

// RecordPat matches a Tuple value that has at least the labels listed
// (superset match, per §4.4); the compiler has already expanded the
// pattern to record exactly which positions of the underlying Tuple each
// field corresponds to.
type RecordPat struct {
	Fields []RecordFieldPat
	Slots  []int // Slots[i] is the Tuple index RecordFieldPat[i] binds against
}

func (RecordPat) isPat() {}

type ListPat struct{ Elems []Pat }

func (ListPat) isPat() {}

type ConsPat struct{ Head, Tail Pat }

func (ConsPat) isPat() {}

// Bind attempts to match pat against v, returning an environment extended
// with every binding pat introduces, or ok=false on failure. Bindings
// from earlier sub-patterns are visible to later ones because env is
// threaded left to right through composite patterns.
func Bind(pat Pat, v interface{}, env *Env) (*Env, bool) {
	switch p := pat.(type) {
	case IdPat:
		return env.Bind(p.Name, v), true
	case WildcardPat:
		return env, true
	case LiteralPat:
		if literalEquals(p.Value, v) {
			return env, true
		}
		return env, false
	case ConPat:
		con, ok := v.(Con)
		if !ok || con.Name != p.Name {
			return env, false
		}
		if p.Arg == nil {
			return env, con.Arg == nil
		}
		return Bind(p.Arg, con.Arg, env)
	case TuplePat:
		t, ok := v.(Tuple)
		if !ok || len(t) != len(p.Elems) {
			return env, false
		}
		for i, sub := range p.Elems {
			var ok2 bool
			env, ok2 = Bind(sub, t[i], env)
			if !ok2 {
				return env, false
			}
		}
		return env, true
	case RecordPat:
		t, ok := v.(Tuple)
		if !ok {
			return env, false
		}
		for i, f := range p.Fields {
			slot := p.Slots[i]
			if slot >= len(t) {
				return env, false
			}
			var ok2 bool
			env, ok2 = Bind(f.Pat, t[slot], env)
			if !ok2 {
				return env, false
			}
		}
		return env, true
	case ListPat:
		l, ok := v.(List)
		if !ok || l.Len() != len(p.Elems) {
			return env, false
		}
		for i, sub := range p.Elems {
			var ok2 bool
			env, ok2 = Bind(sub, l.Get(i), env)
			if !ok2 {
				return env, false
			}
		}
		return env, true
	case ConsPat:
		l, ok := v.(List)
		if !ok || l.IsEmpty() {
			return env, false
		}
		head, _ := l.Head()
		tail, _ := l.Tail()
		env, ok = Bind(p.Head, head, env)
		if !ok {
			return env, false
		}
		return Bind(p.Tail, tail, env)
	default:
		return env, false
	}
}

func literalEquals(want, got interface{}) bool {
	switch w := want.(type) {
	case float64:
		g, ok := got.(float64)
		return ok && g == w
	case int64:
		g, ok := got.(int64)
		return ok && g == w
	default:
		return want == got
	}
}
