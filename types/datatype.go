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

import "strings"

// Constructor is one value-constructor of a DataType: a name and an
// optional argument type (nil for a 0-ary constructor like `nil` or
// `NONE`).
type Constructor struct {
	Name string
	Arg  Type // nil for a 0-ary constructor
}

// DataType is a named, possibly self-referential datatype. Ctors is
// immutable once the defining declaration completes; Order preserves the
// declaration's constructor order for deterministic enumeration (pattern
// matching order has no effect on semantics, but printing and test output
// do care).
type DataType struct {
	Name   string
	Params []*Var
	Ctors  map[string]*Constructor
	Order  []string
}

func (d *DataType) Moniker() string {
	if len(d.Params) == 0 {
		return d.Name
	}
	parts := make([]string, len(d.Params))
	for i, p := range d.Params {
		parts[i] = p.Moniker()
	}
	return "(" + strings.Join(parts, ", ") + ") " + d.Name
}

func (d *DataType) Description() string { return d.Moniker() }
func (*DataType) isType()               {}

// Ctor looks up a constructor by name, in declaration order semantics
// (map lookup; Order is only for iteration).
func (d *DataType) Ctor(name string) (*Constructor, bool) {
	c, ok := d.Ctors[name]
	return c, ok
}

// Temporary stands in for a DataType while its constructors are still
// being resolved — it lets a self-referential constructor argument (e.g.
// `datatype tree = Leaf | Node of tree * tree`) unify against something
// before the real DataType object exists. ResolveTemporary walks a type
// and replaces every reachable Temporary with its Replacement, in place
// of the structural-copy the original implementation performs, since our
// Apply/Tuple/Record constructors never share a Temporary except through
// the chain of references being substituted here.
type Temporary struct {
	Name        string
	Replacement Type // set exactly once, before the placeholder is read further
}

func (t *Temporary) Moniker() string {
	if t.Replacement != nil {
		return t.Replacement.Moniker()
	}
	return t.Name
}
func (t *Temporary) Description() string { return t.Moniker() }
func (*Temporary) isType()               {}

// ResolveTemporary replaces every Temporary reachable from t (through
// Arrow, Record rows, ListType and DataType parameters/constructor
// arguments) with real, once the defining declaration has installed
// real as the Replacement. No placeholder escapes the declaration that
// created it: every Temporary created by TypeSystem.NewTemporary is
// resolved before TypeSystem.FinishDatatype returns.
func ResolveTemporary(t Type, placeholder *Temporary, real Type) Type {
	switch v := t.(type) {
	case *Temporary:
		if v == placeholder {
			return real
		}
		return v
	case *Arrow:
		return &Arrow{
			Param:  ResolveTemporary(v.Param, placeholder, real),
			Result: ResolveTemporary(v.Result, placeholder, real),
		}
	case *ListType:
		return &ListType{Elem: ResolveTemporary(v.Elem, placeholder, real)}
	case *Record:
		return &Record{Row: resolveTemporaryRow(v.Row, placeholder, real)}
	case *DataType:
		changed := false
		newCtors := make(map[string]*Constructor, len(v.Ctors))
		for name, c := range v.Ctors {
			arg := c.Arg
			if arg != nil {
				resolved := ResolveTemporary(arg, placeholder, real)
				if resolved != arg {
					changed = true
				}
				arg = resolved
			}
			newCtors[name] = &Constructor{Name: c.Name, Arg: arg}
		}
		if !changed {
			return v
		}
		return &DataType{Name: v.Name, Params: v.Params, Ctors: newCtors, Order: v.Order}
	default:
		return t
	}
}

func resolveTemporaryRow(r Row, placeholder *Temporary, real Type) Row {
	switch v := r.(type) {
	case *RowExtend:
		return &RowExtend{
			Label: v.Label,
			Field: ResolveTemporary(v.Field, placeholder, real),
			Rest:  resolveTemporaryRow(v.Rest, placeholder, real),
		}
	default:
		return r
	}
}
