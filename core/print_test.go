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

package core

import (
	"testing"

	"github.com/gtejedap/morel/types"
)

func TestStringLiteral(t *testing.T) {
	ts := types.NewTypeSystem()
	b := NewBuilder(ts)
	lit := b.Literal(int64(3), types.Int)
	if got, want := String(lit), "3"; got != want {
		t.Errorf("String(3) = %q, want %q", got, want)
	}
}

func TestStringApply(t *testing.T) {
	ts := types.NewTypeSystem()
	b := NewBuilder(ts)
	f := b.Id("f", &types.Arrow{Param: types.Int, Result: types.Int})
	arg := b.Literal(int64(1), types.Int)
	app := b.Apply(f, arg, types.Int)
	if got, want := String(app), "f 1"; got != want {
		t.Errorf("String(f 1) = %q, want %q", got, want)
	}
}

func TestStringZList(t *testing.T) {
	ts := types.NewTypeSystem()
	b := NewBuilder(ts)
	elems := []Exp{b.Literal(int64(1), types.Int), b.Literal(int64(2), types.Int)}
	list := b.ApplyZList(elems, types.Int)
	if got, want := String(list), "[1, 2]"; got != want {
		t.Errorf("String([1, 2]) = %q, want %q", got, want)
	}
}

func TestStringTuple(t *testing.T) {
	ts := types.NewTypeSystem()
	b := NewBuilder(ts)
	tup := b.Tuple([]Exp{
		b.Literal(int64(1), types.Int),
		b.Literal(true, types.Bool),
	}, ts.Tuple(types.Int, types.Bool))
	if got, want := String(tup), "(1, true)"; got != want {
		t.Errorf("String((1, true)) = %q, want %q", got, want)
	}
}

func TestStringIf(t *testing.T) {
	ts := types.NewTypeSystem()
	b := NewBuilder(ts)
	cond := b.Literal(true, types.Bool)
	then := b.Literal(int64(1), types.Int)
	els := b.Literal(int64(2), types.Int)
	ifExp := b.If(cond, then, els)
	got := String(ifExp)
	want := "if true then 1 else 2"
	if got != want {
		t.Errorf("String(if...) = %q, want %q", got, want)
	}
}
