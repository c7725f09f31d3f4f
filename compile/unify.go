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

import (
	"github.com/gtejedap/morel/ast"
	"github.com/gtejedap/morel/types"
)

// unify structurally unifies a and b, walking through Var links, binding
// unbound Vars (with a level-adjusting occurs check so a variable never
// ends up referring to something bound at a deeper level than itself),
// and recursing through Arrow/ListType/Record rows/DataType parameters.
// An open record row (from an ellipsis pattern) unifies against a closed
// record by growing the row's tail var to cover whatever fields the
// closed side has that the open side doesn't mention yet.
func (inf *Inferencer) unify(pos ast.Pos, a, b types.Type) error {
	a, b = types.RealType(a), types.RealType(b)
	if a == b {
		return nil
	}
	if av, ok := a.(*types.Var); ok {
		return inf.bindVar(pos, av, b)
	}
	if bv, ok := b.(*types.Var); ok {
		return inf.bindVar(pos, bv, a)
	}
	switch at := a.(type) {
	case *types.Primitive:
		if bt, ok := b.(*types.Primitive); ok && at == bt {
			return nil
		}
	case *types.Arrow:
		if bt, ok := b.(*types.Arrow); ok {
			if err := inf.unify(pos, at.Param, bt.Param); err != nil {
				return err
			}
			return inf.unify(pos, at.Result, bt.Result)
		}
	case *types.ListType:
		if bt, ok := b.(*types.ListType); ok {
			return inf.unify(pos, at.Elem, bt.Elem)
		}
	case *types.Record:
		if bt, ok := b.(*types.Record); ok {
			return inf.unifyRows(pos, at.Row, bt.Row)
		}
	case *types.DataType:
		if bt, ok := b.(*types.DataType); ok && at.Name == bt.Name {
			for i := range at.Params {
				if err := inf.unify(pos, at.Params[i], bt.Params[i]); err != nil {
					return err
				}
			}
			return nil
		}
	}
	return newTypeError(pos, "cannot unify %s with %s", a.Moniker(), b.Moniker())
}

func (inf *Inferencer) bindVar(pos ast.Pos, v *types.Var, t types.Type) error {
	if tv, ok := t.(*types.Var); ok && tv == v {
		return nil
	}
	if err := inf.occursAdjust(pos, v, t); err != nil {
		return err
	}
	v.SetLink(t)
	return nil
}

// occursAdjust fails if v occurs within t (a cyclic, infinite type), and
// otherwise lowers every unbound Var reachable from t to at most v's
// level — the "levels" technique that makes generalization a cheap
// level-comparison instead of a full free-variable scan.
func (inf *Inferencer) occursAdjust(pos ast.Pos, v *types.Var, t types.Type) error {
	t = types.RealType(t)
	switch n := t.(type) {
	case *types.Var:
		if n == v {
			return newTypeError(pos, "occurs check failed: %s occurs in itself", v.Moniker())
		}
		if n.Level > v.Level {
			n.Level = v.Level
		}
		return nil
	case *types.Arrow:
		if err := inf.occursAdjust(pos, v, n.Param); err != nil {
			return err
		}
		return inf.occursAdjust(pos, v, n.Result)
	case *types.ListType:
		return inf.occursAdjust(pos, v, n.Elem)
	case *types.Record:
		return inf.occursAdjustRow(pos, v, n.Row)
	case *types.DataType:
		for _, p := range n.Params {
			if err := inf.occursAdjust(pos, v, p); err != nil {
				return err
			}
		}
		return nil
	default:
		return nil
	}
}

func (inf *Inferencer) occursAdjustRow(pos ast.Pos, v *types.Var, r types.Row) error {
	switch n := r.(type) {
	case *types.RowExtend:
		if err := inf.occursAdjust(pos, v, n.Field); err != nil {
			return err
		}
		return inf.occursAdjustRow(pos, v, n.Rest)
	case *types.RowEmpty:
		return nil
	default:
		// Unbound row-tail var: treat like any other var.
		if rv, ok := r.(*types.Var); ok {
			return inf.occursAdjust(pos, v, rv)
		}
		return nil
	}
}

// unifyRows merges two record rows, per Leijen's scoped-labels algorithm
// simplified to the closed/open distinction this language actually needs:
// any label present on one side and absent on the other must be covered
// by the other side's tail being an open (unbound-Var) row; two closed
// rows must have exactly the same label set.
func (inf *Inferencer) unifyRows(pos ast.Pos, ra, rb types.Row) error {
	la, fa, ta := types.FlattenRow(ra)
	lb, fb, tb := types.FlattenRow(rb)

	aSet := map[string]types.Type{}
	for i, l := range la {
		aSet[l] = fa[i]
	}
	bSet := map[string]types.Type{}
	for i, l := range lb {
		bSet[l] = fb[i]
	}

	for l, ft := range aSet {
		if gt, ok := bSet[l]; ok {
			if err := inf.unify(pos, ft, gt); err != nil {
				return err
			}
		}
	}

	aOpen := isOpenRow(ta)
	bOpen := isOpenRow(tb)

	var missingInB, missingInA []string
	for _, l := range la {
		if _, ok := bSet[l]; !ok {
			missingInB = append(missingInB, l)
		}
	}
	for _, l := range lb {
		if _, ok := aSet[l]; !ok {
			missingInA = append(missingInA, l)
		}
	}

	if len(missingInB) > 0 && !bOpen {
		return newTypeError(pos, "record is missing field(s) %v", missingInB)
	}
	if len(missingInA) > 0 && !aOpen {
		return newTypeError(pos, "record is missing field(s) %v", missingInA)
	}

	switch {
	case aOpen && bOpen:
		// Both sides still open: unify their tails directly; whichever
		// extra fields either side contributes are simply the union,
		// discovered the next time each tail gets constrained further.
		return inf.unify(pos, ta, tb)
	case aOpen:
		// a's tail can grow to cover the fields only b has.
		return inf.unify(pos, ta, closeRowFrom(missingInA, bSet))
	case bOpen:
		// b's tail can grow to cover the fields only a has.
		return inf.unify(pos, tb, closeRowFrom(missingInB, aSet))
	default:
		// Both closed: the missing-field checks above already proved
		// the label sets are identical.
		return nil
	}
}

func isOpenRow(tail types.Row) bool {
	_, closed := tail.(*types.RowEmpty)
	return !closed
}

// closeRowFrom builds a closed row chain out of the given labels, using
// fields from src, terminating in RowEmpty.
func closeRowFrom(labels []string, src map[string]types.Type) types.Row {
	types.SortLabels(labels)
	var row types.Row = &types.RowEmpty{}
	for i := len(labels) - 1; i >= 0; i-- {
		row = &types.RowExtend{Label: labels[i], Field: src[labels[i]], Rest: row}
	}
	return row
}
