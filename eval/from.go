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
	"fmt"
	"sort"
)

// FromSourceCode is one `pat in exp` clause of a from-query's source list.
type FromSourceCode struct {
	Pat Pat
	Src Code
}

// Step is one where/group/order step of a compiled from-query.
type Step interface{ isStep() }

type WhereCode struct{ Pred Code }

func (WhereCode) isStep() {}

// AggCode is one `name = aggFn arg` compute item; Kind is one of
// "count", "sum", "min", "max", resolved from the aggregate's built-in
// name at compile time. Arg is nil for "count".
type AggCode struct {
	Label string
	Kind  string
	Arg   Code
}

type GroupCode struct {
	KeyLabels []string
	KeyCodes  []Code
	Aggs      []AggCode
}

func (GroupCode) isStep() {}

type OrderItemCode struct {
	Exp  Code
	Desc bool
}

type OrderCode struct{ Items []OrderItemCode }

func (OrderCode) isStep() {}

// FromCode is the compiled from-query: cartesian product of Sources,
// steps applied in order, then Yield mapped over the survivors. Execution
// materialises the whole intermediate sequence at each step rather than
// streaming, consistent with the host being an interpreter rather than a
// relational engine.
type FromCode struct {
	Sources []FromSourceCode
	Steps   []Step
	Yield   Code
}

func (c FromCode) Eval(env *Env) (interface{}, error) {
	rows := []*Env{env}
	for _, src := range c.Sources {
		var next []*Env
		for _, row := range rows {
			v, err := src.Src.Eval(row)
			if err != nil {
				return nil, err
			}
			l, ok := v.(List)
			if !ok {
				return nil, runtimeErrorf("from: source did not evaluate to a list")
			}
			l.Range(func(_ int, el interface{}) bool {
				row2, ok := Bind(src.Pat, el, row)
				if ok {
					next = append(next, row2)
				}
				return true
			})
		}
		rows = next
	}

	for _, step := range c.Steps {
		var err error
		rows, err = applyStep(step, rows)
		if err != nil {
			return nil, err
		}
	}

	out := make([]interface{}, 0, len(rows))
	for _, row := range rows {
		v, err := c.Yield.Eval(row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return SliceToList(out), nil
}

func applyStep(step Step, rows []*Env) ([]*Env, error) {
	switch s := step.(type) {
	case WhereCode:
		var kept []*Env
		for _, row := range rows {
			v, err := s.Pred.Eval(row)
			if err != nil {
				return nil, err
			}
			if b, _ := v.(bool); b {
				kept = append(kept, row)
			}
		}
		return kept, nil
	case GroupCode:
		return applyGroup(s, rows)
	case OrderCode:
		return applyOrder(s, rows)
	default:
		return rows, nil
	}
}

func applyGroup(s GroupCode, rows []*Env) ([]*Env, error) {
	type partition struct {
		keys []interface{}
		rows []*Env
	}
	index := map[string]int{}
	var partitions []*partition
	for _, row := range rows {
		keys := make([]interface{}, len(s.KeyCodes))
		for i, kc := range s.KeyCodes {
			v, err := kc.Eval(row)
			if err != nil {
				return nil, err
			}
			keys[i] = v
		}
		gk := groupKeyString(keys)
		idx, ok := index[gk]
		if !ok {
			idx = len(partitions)
			index[gk] = idx
			partitions = append(partitions, &partition{keys: keys})
		}
		partitions[idx].rows = append(partitions[idx].rows, row)
	}

	sort.SliceStable(partitions, func(i, j int) bool {
		return compareValueSlices(partitions[i].keys, partitions[j].keys) < 0
	})

	out := make([]*Env, len(partitions))
	for i, p := range partitions {
		row := NewEnv()
		for k, label := range s.KeyLabels {
			row = row.Bind(label, p.keys[k])
		}
		for _, agg := range s.Aggs {
			v, err := computeAggregate(agg, p.rows)
			if err != nil {
				return nil, err
			}
			row = row.Bind(agg.Label, v)
		}
		out[i] = row
	}
	return out, nil
}

func computeAggregate(agg AggCode, rows []*Env) (interface{}, error) {
	switch agg.Kind {
	case "count":
		return int64(len(rows)), nil
	case "sum", "min", "max":
		var acc interface{}
		for i, row := range rows {
			v, err := agg.Arg.Eval(row)
			if err != nil {
				return nil, err
			}
			if i == 0 {
				acc = v
				continue
			}
			switch agg.Kind {
			case "sum":
				acc = addNumeric(acc, v)
			case "min":
				if compareValues(v, acc) < 0 {
					acc = v
				}
			case "max":
				if compareValues(v, acc) > 0 {
					acc = v
				}
			}
		}
		if acc == nil {
			return int64(0), nil
		}
		return acc, nil
	default:
		return nil, runtimeErrorf("from: unknown aggregate %q", agg.Kind)
	}
}

func addNumeric(a, b interface{}) interface{} {
	if af, ok := a.(float64); ok {
		bf, _ := b.(float64)
		return af + bf
	}
	ai, _ := a.(int64)
	bi, _ := b.(int64)
	return ai + bi
}

func applyOrder(s OrderCode, rows []*Env) ([]*Env, error) {
	keyed := make([][]interface{}, len(rows))
	for i, row := range rows {
		keys := make([]interface{}, len(s.Items))
		for j, item := range s.Items {
			v, err := item.Exp.Eval(row)
			if err != nil {
				return nil, err
			}
			keys[j] = v
		}
		keyed[i] = keys
	}
	idx := make([]int, len(rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, kb := keyed[idx[a]], keyed[idx[b]]
		for j, item := range s.Items {
			c := compareValues(ka[j], kb[j])
			if item.Desc {
				c = -c
			}
			if c != 0 {
				return c < 0
			}
		}
		return false
	})
	out := make([]*Env, len(rows))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out, nil
}

func groupKeyString(vals []interface{}) string {
	s := ""
	for i, v := range vals {
		if i > 0 {
			s += "\x00"
		}
		s += fmt.Sprintf("%v", v)
	}
	return s
}

func compareValueSlices(a, b []interface{}) int {
	for i := range a {
		if c := compareValues(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

// compareValues orders two runtime values of the same type: numerically
// for int64/float64/char, lexicographically for string, false<true for
// bool. Used by both the `order` step and group-key sorting (groups are
// sorted by key for deterministic output).
func compareValues(a, b interface{}) int {
	switch av := a.(type) {
	case int64:
		bv, _ := b.(int64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case float64:
		bv, _ := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case string:
		bv, _ := b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case rune:
		bv, _ := b.(rune)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case bool:
		bv, _ := b.(bool)
		if av == bv {
			return 0
		}
		if !av {
			return -1
		}
		return 1
	default:
		return 0
	}
}
