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

import "testing"

func TestPrimitiveMoniker(t *testing.T) {
	if Int.Moniker() != "int" {
		t.Errorf("Int.Moniker() = %q, want %q", Int.Moniker(), "int")
	}
	if Bool.Description() != "bool" {
		t.Errorf("Bool.Description() = %q, want %q", Bool.Description(), "bool")
	}
}

func TestArrowMoniker(t *testing.T) {
	a := &Arrow{Param: Int, Result: Bool}
	if got, want := a.Moniker(), "int -> bool"; got != want {
		t.Errorf("Moniker() = %q, want %q", got, want)
	}

	// a function-typed parameter is parenthesised on the left.
	higher := &Arrow{Param: a, Result: Int}
	if got, want := higher.Moniker(), "(int -> bool) -> int"; got != want {
		t.Errorf("Moniker() = %q, want %q", got, want)
	}
}

func TestListTypeMoniker(t *testing.T) {
	lt := &ListType{Elem: Int}
	if got, want := lt.Moniker(), "int list"; got != want {
		t.Errorf("Moniker() = %q, want %q", got, want)
	}

	ofArrow := &ListType{Elem: &Arrow{Param: Int, Result: Int}}
	if got, want := ofArrow.Moniker(), "(int -> int) list"; got != want {
		t.Errorf("Moniker() = %q, want %q", got, want)
	}
}

func TestNewTupleType(t *testing.T) {
	tup := NewTupleType([]Type{Int, Bool})
	elems, ok := tup.IsTuple()
	if !ok {
		t.Fatalf("IsTuple() = false, want true")
	}
	if len(elems) != 2 || elems[0] != Int || elems[1] != Bool {
		t.Errorf("IsTuple() elems = %v, want [int bool]", elems)
	}
}

func TestNewRecordTypeIsNotTuple(t *testing.T) {
	rec := NewRecordType(map[string]Type{"a": Int, "b": Bool})
	if _, ok := rec.IsTuple(); ok {
		t.Errorf("IsTuple() = true for labelled record, want false")
	}
	labels, fields, _ := FlattenRow(rec.Row)
	if len(labels) != 2 {
		t.Fatalf("FlattenRow() labels = %v, want 2 entries", labels)
	}
	_ = fields
}

func TestSortLabelsNumericFirst(t *testing.T) {
	labels := []string{"b", "2", "a", "1"}
	SortLabels(labels)
	want := []string{"1", "2", "a", "b"}
	for i, l := range labels {
		if l != want[i] {
			t.Errorf("SortLabels() = %v, want %v", labels, want)
			break
		}
	}
}

func TestRealTypeDereferencesLinkedVars(t *testing.T) {
	ts := NewTypeSystem()
	v := ts.NewVar(0)
	if RealType(v) != v {
		t.Errorf("RealType(unbound var) = %v, want itself", RealType(v))
	}
	v.Link = Int
	if RealType(v) != Int {
		t.Errorf("RealType(linked var) = %v, want Int", RealType(v))
	}
}
