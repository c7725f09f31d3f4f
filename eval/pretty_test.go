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

import (
	"testing"

	"github.com/gtejedap/morel/types"
)

func TestPrettyInt(t *testing.T) {
	if got, want := Pretty(int64(3), types.Int), "3"; got != want {
		t.Errorf("Pretty(3) = %q, want %q", got, want)
	}
	if got, want := Pretty(int64(-3), types.Int), "~3"; got != want {
		t.Errorf("Pretty(-3) = %q, want %q", got, want)
	}
}

func TestPrettyString(t *testing.T) {
	if got, want := Pretty("hi", types.String), `"hi"`; got != want {
		t.Errorf("Pretty(\"hi\") = %q, want %q", got, want)
	}
}

func TestPrettyList(t *testing.T) {
	l := NewList(int64(1), int64(2), int64(3))
	ty := &types.ListType{Elem: types.Int}
	if got, want := Pretty(l, ty), "[1,2,3]"; got != want {
		t.Errorf("Pretty([1,2,3]) = %q, want %q", got, want)
	}
}

func TestPrettyTuple(t *testing.T) {
	ts := types.NewTypeSystem()
	ty := ts.Tuple(types.Int, types.Bool)
	v := Tuple{int64(1), true}
	if got, want := Pretty(v, ty), "(1,true)"; got != want {
		t.Errorf("Pretty((1,true)) = %q, want %q", got, want)
	}
}

func TestPrettyRecordCanonicalLabelOrder(t *testing.T) {
	ts := types.NewTypeSystem()
	ty := ts.Record(map[string]types.Type{"dept": types.Int, "c": types.Int})
	// Fields are stored in canonical label order ("c" before "dept"),
	// matching FlattenRow's traversal of the interned row.
	v := Tuple{int64(2), int64(10)}
	if got, want := Pretty(v, ty), "{c=2,dept=10}"; got != want {
		t.Errorf("Pretty({c=2,dept=10}) = %q, want %q", got, want)
	}
}

func TestPrettyArrowAlwaysFn(t *testing.T) {
	ty := &types.Arrow{Param: types.Int, Result: types.Int}
	if got, want := Pretty(nil, ty), "fn"; got != want {
		t.Errorf("Pretty(fn) = %q, want %q", got, want)
	}
}

func TestPrettyUnit(t *testing.T) {
	if got, want := Pretty(nil, types.Unit), "()"; got != want {
		t.Errorf("Pretty(unit) = %q, want %q", got, want)
	}
}

func TestPrettyDatatypeConstructor(t *testing.T) {
	dt := &types.DataType{
		Name: "option",
		Ctors: map[string]*types.Constructor{
			"SOME": {Name: "SOME", Arg: types.Int},
			"NONE": {Name: "NONE"},
		},
		Order: []string{"NONE", "SOME"},
	}
	some := Con{Name: "SOME", Arg: int64(5)}
	if got, want := Pretty(some, dt), "SOME 5"; got != want {
		t.Errorf("Pretty(SOME 5) = %q, want %q", got, want)
	}
	none := Con{Name: "NONE"}
	if got, want := Pretty(none, dt), "NONE"; got != want {
		t.Errorf("Pretty(NONE) = %q, want %q", got, want)
	}
}
