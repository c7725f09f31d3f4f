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

package compile

import "github.com/gtejedap/morel/types"

// generalize builds a Scheme for t by finding every unbound Var reachable
// from t whose Level is deeper than the enclosing let's level and marking
// it generic. Only called at `let` boundaries, and only for syntactic
// values (the value restriction) — monomorphic positions call
// monoScheme instead.
func generalize(level int, t types.Type) *Scheme {
	var vars []*types.Var
	seen := map[*types.Var]bool{}
	var walk func(types.Type)
	walk = func(t types.Type) {
		t = types.RealType(t)
		switch n := t.(type) {
		case *types.Var:
			if n.Level > level && !seen[n] {
				seen[n] = true
				n.SetGeneric()
				vars = append(vars, n)
			}
		case *types.Arrow:
			walk(n.Param)
			walk(n.Result)
		case *types.ListType:
			walk(n.Elem)
		case *types.Record:
			walkRow(n.Row, walk)
		case *types.DataType:
			for _, p := range n.Params {
				walk(p)
			}
		}
	}
	walk(t)
	return &Scheme{Vars: vars, Type: t}
}

func walkRow(r types.Row, walk func(types.Type)) {
	switch n := r.(type) {
	case *types.RowExtend:
		walk(n.Field)
		walkRow(n.Rest, walk)
	case *types.Var:
		walk(n)
	}
}

// instantiate creates a fresh, monomorphic copy of scheme's type at the
// given level, substituting a fresh Var for every one of scheme.Vars.
func instantiate(ts *types.TypeSystem, level int, scheme *Scheme) types.Type {
	if len(scheme.Vars) == 0 {
		return scheme.Type
	}
	sub := map[*types.Var]*types.Var{}
	for _, v := range scheme.Vars {
		sub[v] = ts.NewVar(level)
	}
	return instantiateType(sub, scheme.Type)
}

func instantiateType(sub map[*types.Var]*types.Var, t types.Type) types.Type {
	t = types.RealType(t)
	switch n := t.(type) {
	case *types.Var:
		if n.Generic {
			if fresh, ok := sub[n]; ok {
				return fresh
			}
		}
		return n
	case *types.Arrow:
		return &types.Arrow{Param: instantiateType(sub, n.Param), Result: instantiateType(sub, n.Result)}
	case *types.ListType:
		return &types.ListType{Elem: instantiateType(sub, n.Elem)}
	case *types.Record:
		return &types.Record{Row: instantiateRow(sub, n.Row)}
	case *types.DataType:
		if len(n.Params) == 0 {
			return n
		}
		newParams := make([]*types.Var, len(n.Params))
		changed := false
		for i, p := range n.Params {
			r := instantiateType(sub, p)
			rv, ok := r.(*types.Var)
			if !ok {
				rv = p
			}
			if rv != p {
				changed = true
			}
			newParams[i] = rv
		}
		if !changed {
			return n
		}
		return &types.DataType{Name: n.Name, Params: newParams, Ctors: n.Ctors, Order: n.Order}
	default:
		return t
	}
}

func instantiateRow(sub map[*types.Var]*types.Var, r types.Row) types.Row {
	switch n := r.(type) {
	case *types.RowExtend:
		return &types.RowExtend{Label: n.Label, Field: instantiateType(sub, n.Field), Rest: instantiateRow(sub, n.Rest)}
	case *types.Var:
		if real, ok := types.RealType(n).(types.Row); ok && n.Link != nil {
			return instantiateRow(sub, real)
		}
		if n.Generic {
			if fresh, ok := sub[n]; ok {
				return fresh
			}
		}
		return n
	default:
		return r
	}
}
