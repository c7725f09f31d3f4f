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

import "testing"

func TestBindIdPat(t *testing.T) {
	env := NewEnv()
	env2, ok := Bind(IdPat{Name: "x"}, int64(5), env)
	if !ok {
		t.Fatalf("Bind(IdPat) = false, want true")
	}
	v, ok := env2.Lookup("x")
	if !ok || v.(int64) != 5 {
		t.Errorf("env2.Lookup(x) = %v, %v, want 5, true", v, ok)
	}
}

func TestBindLiteralPat(t *testing.T) {
	env := NewEnv()
	if _, ok := Bind(LiteralPat{Value: int64(0)}, int64(0), env); !ok {
		t.Errorf("Bind(0, 0) = false, want true")
	}
	if _, ok := Bind(LiteralPat{Value: int64(0)}, int64(1), env); ok {
		t.Errorf("Bind(0, 1) = true, want false")
	}
}

func TestBindConsPat(t *testing.T) {
	env := NewEnv()
	l := NewList(int64(10), int64(20), int64(30))
	pat := ConsPat{Head: IdPat{Name: "x"}, Tail: IdPat{Name: "xs"}}
	env2, ok := Bind(pat, l, env)
	if !ok {
		t.Fatalf("Bind(x::xs) against non-empty list = false, want true")
	}
	x, _ := env2.Lookup("x")
	if x.(int64) != 10 {
		t.Errorf("x = %v, want 10", x)
	}
	xs, _ := env2.Lookup("xs")
	if xs.(List).Len() != 2 {
		t.Errorf("xs has len %d, want 2", xs.(List).Len())
	}
}

func TestBindConsPatOnEmptyFails(t *testing.T) {
	env := NewEnv()
	pat := ConsPat{Head: IdPat{Name: "x"}, Tail: IdPat{Name: "xs"}}
	if _, ok := Bind(pat, EmptyList, env); ok {
		t.Errorf("Bind(x::xs, []) = true, want false")
	}
}

func TestBindConPat(t *testing.T) {
	env := NewEnv()
	some := Con{Name: "SOME", Arg: int64(7)}
	pat := ConPat{Name: "SOME", Arg: IdPat{Name: "v"}}
	env2, ok := Bind(pat, some, env)
	if !ok {
		t.Fatalf("Bind(SOME v, SOME 7) = false, want true")
	}
	v, _ := env2.Lookup("v")
	if v.(int64) != 7 {
		t.Errorf("v = %v, want 7", v)
	}

	none := Con{Name: "NONE"}
	if _, ok := Bind(pat, none, env); ok {
		t.Errorf("Bind(SOME v, NONE) = true, want false")
	}
}

func TestBindRecordPatEllipsis(t *testing.T) {
	env := NewEnv()
	// {a=1, b=2, c=3} represented as the underlying Tuple in field order
	// a, b, c; the pattern {a, ...} only binds slot 0.
	rec := Tuple{int64(1), int64(2), int64(3)}
	pat := RecordPat{
		Fields: []RecordFieldPat{{Label: "a", Pat: IdPat{Name: "a"}}},
		Slots:  []int{0},
	}
	env2, ok := Bind(pat, rec, env)
	if !ok {
		t.Fatalf("Bind({a, ...}) = false, want true")
	}
	a, _ := env2.Lookup("a")
	if a.(int64) != 1 {
		t.Errorf("a = %v, want 1", a)
	}
}

func TestBindTuplePatLengthMismatch(t *testing.T) {
	env := NewEnv()
	pat := TuplePat{Elems: []Pat{IdPat{Name: "a"}, IdPat{Name: "b"}}}
	if _, ok := Bind(pat, Tuple{int64(1)}, env); ok {
		t.Errorf("Bind((a,b), (1)) = true, want false")
	}
}
