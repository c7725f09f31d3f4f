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
	"github.com/gtejedap/morel/eval"
	"github.com/gtejedap/morel/types"
)

// BuiltinDef is one entry of the fixed built-in registry both the
// inferencer (via Scheme) and the compiler (via Callable) consult, per
// §6: "The set of built-ins is fixed and enumerated by a single registry
// that each stage consults."
type BuiltinDef struct {
	Name     string
	Scheme   func(ts *types.TypeSystem) *Scheme
	Callable func() eval.Callable
}

// monoScheme wraps a concrete type with no generic variables.
func monoScheme(t types.Type) *Scheme { return &Scheme{Type: t} }

// polyScheme builds a scheme generalised over the given fresh generic
// variables.
func polyScheme(t types.Type, vars ...*types.Var) *Scheme {
	for _, v := range vars {
		v.SetGeneric()
	}
	return &Scheme{Vars: vars, Type: t}
}

func arithScheme(ts *types.TypeSystem, numTy types.Type) *Scheme {
	return monoScheme(ts.Fn(ts.Tuple(numTy, numTy), numTy))
}

func cmpScheme(ts *types.TypeSystem, a *types.Var) *Scheme {
	return polyScheme(ts.Fn(ts.Tuple(a, a), types.Bool), a)
}

// builtinTable is built once per lookup via Registry(ts); the closures
// capture ts so every scheme uses that session's fresh type variables.
func builtinTable(ts *types.TypeSystem) []*BuiltinDef {
	a := ts.NewVar(0)
	b := ts.NewVar(0)
	return []*BuiltinDef{
		{"true", func(ts *types.TypeSystem) *Scheme { return monoScheme(types.Bool) },
			func() eval.Callable { return constCallable(true) }},
		{"false", func(ts *types.TypeSystem) *Scheme { return monoScheme(types.Bool) },
			func() eval.Callable { return constCallable(false) }},

		{"+", func(ts *types.TypeSystem) *Scheme { return arithScheme(ts, types.Int) }, arithCallable("+", intAdd)},
		{"-", func(ts *types.TypeSystem) *Scheme { return arithScheme(ts, types.Int) }, arithCallable("-", intSub)},
		{"*", func(ts *types.TypeSystem) *Scheme { return arithScheme(ts, types.Int) }, arithCallable("*", intMul)},
		{"/", func(ts *types.TypeSystem) *Scheme { return arithScheme(ts, types.Real) }, realDivCallable()},
		{"div", func(ts *types.TypeSystem) *Scheme { return arithScheme(ts, types.Int) }, intDivCallable()},
		{"mod", func(ts *types.TypeSystem) *Scheme { return arithScheme(ts, types.Int) }, intModCallable()},
		{"^", func(ts *types.TypeSystem) *Scheme { return monoScheme(ts.Fn(ts.Tuple(types.String, types.String), types.String)) }, stringConcatCallable()},
		{"~", func(ts *types.TypeSystem) *Scheme { return monoScheme(ts.Fn(types.Int, types.Int)) }, negCallable()},

		{"=", func(ts *types.TypeSystem) *Scheme { return cmpScheme(ts, a) }, eqCallable(true)},
		{"<>", func(ts *types.TypeSystem) *Scheme { return cmpScheme(ts, a) }, eqCallable(false)},
		{"<", func(ts *types.TypeSystem) *Scheme { return cmpScheme(ts, a) }, ordCallable(func(c int) bool { return c < 0 })},
		{">", func(ts *types.TypeSystem) *Scheme { return cmpScheme(ts, a) }, ordCallable(func(c int) bool { return c > 0 })},
		{"<=", func(ts *types.TypeSystem) *Scheme { return cmpScheme(ts, a) }, ordCallable(func(c int) bool { return c <= 0 })},
		{">=", func(ts *types.TypeSystem) *Scheme { return cmpScheme(ts, a) }, ordCallable(func(c int) bool { return c >= 0 })},

		{"::", func(ts *types.TypeSystem) *Scheme {
			return polyScheme(ts.Fn(ts.Tuple(a, ts.List(a)), ts.List(a)), a)
		}, consCallable()},

		{"nil", func(ts *types.TypeSystem) *Scheme { return polyScheme(ts.List(a), a) },
			func() eval.Callable { return constCallable(eval.EmptyList) }},

		{"hd", func(ts *types.TypeSystem) *Scheme { return polyScheme(ts.Fn(ts.List(a), a), a) }, hdCallable()},
		{"tl", func(ts *types.TypeSystem) *Scheme { return polyScheme(ts.Fn(ts.List(a), ts.List(a)), a) }, tlCallable()},
		{"null", func(ts *types.TypeSystem) *Scheme { return polyScheme(ts.Fn(ts.List(a), types.Bool), a) }, nullCallable()},
		{"length", func(ts *types.TypeSystem) *Scheme { return polyScheme(ts.Fn(ts.List(a), types.Int), a) }, lengthCallable()},
		{"rev", func(ts *types.TypeSystem) *Scheme { return polyScheme(ts.Fn(ts.List(a), ts.List(a)), a) }, revCallable()},
		{"@", func(ts *types.TypeSystem) *Scheme {
			return polyScheme(ts.Fn(ts.Tuple(ts.List(a), ts.List(a)), ts.List(a)), a)
		}, appendCallable()},

		{"List.map", func(ts *types.TypeSystem) *Scheme {
			return polyScheme(ts.Fn(ts.Tuple(ts.Fn(a, b), ts.List(a)), ts.List(b)), a, b)
		}, listMapCallable()},
		{"List.filter", func(ts *types.TypeSystem) *Scheme {
			return polyScheme(ts.Fn(ts.Tuple(ts.Fn(a, types.Bool), ts.List(a)), ts.List(a)), a)
		}, listFilterCallable()},

		{"String.size", func(ts *types.TypeSystem) *Scheme { return monoScheme(ts.Fn(types.String, types.Int)) }, stringSizeCallable()},
		{"String.sub", func(ts *types.TypeSystem) *Scheme {
			return monoScheme(ts.Fn(ts.Tuple(types.String, types.Int), types.Char))
		}, stringSubCallable()},
	}
}

// Registry returns the fixed built-in table for a session's type system.
func Registry(ts *types.TypeSystem) map[string]*BuiltinDef {
	out := map[string]*BuiltinDef{}
	for _, d := range builtinTable(ts) {
		out[d.Name] = d
	}
	return out
}

// aggregateKinds maps an aggregate function's surface name to the
// from-query evaluator's internal Kind tag (count/sum/min/max); consulted
// by the compiler (aggregateKindOf) when compiling a
// `group ... compute name = aggFn arg` clause.
var aggregateKinds = map[string]string{
	"count": "count",
	"sum":   "sum",
	"min":   "min",
	"max":   "max",
}

// --- Callable constructors ---

func constCallable(v interface{}) eval.Callable {
	return &eval.NativeFn{Name: "const", Fn: func(interface{}) (interface{}, error) { return v, nil }}
}

func intAdd(a, b int64) (int64, error) {
	r := a + b
	if (b > 0 && r < a) || (b < 0 && r > a) {
		return 0, &eval.RuntimeError{Message: "integer overflow in +"}
	}
	return r, nil
}

func intSub(a, b int64) (int64, error) {
	r := a - b
	if (b < 0 && r < a) || (b > 0 && r > a) {
		return 0, &eval.RuntimeError{Message: "integer overflow in -"}
	}
	return r, nil
}

func intMul(a, b int64) (int64, error) {
	r := a * b
	if a != 0 && r/a != b {
		return 0, &eval.RuntimeError{Message: "integer overflow in *"}
	}
	return r, nil
}

func arithCallable(name string, f func(int64, int64) (int64, error)) func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: name, Fn: func(arg interface{}) (interface{}, error) {
			t := arg.(eval.Tuple)
			return f(t[0].(int64), t[1].(int64))
		}}
	}
}

func realDivCallable() func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "/", Fn: func(arg interface{}) (interface{}, error) {
			t := arg.(eval.Tuple)
			return t[0].(float64) / t[1].(float64), nil
		}}
	}
}

func intDivCallable() func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "div", Fn: func(arg interface{}) (interface{}, error) {
			t := arg.(eval.Tuple)
			a, b := t[0].(int64), t[1].(int64)
			if b == 0 {
				return nil, &eval.RuntimeError{Message: "div: division by zero"}
			}
			return a / b, nil
		}}
	}
}

func intModCallable() func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "mod", Fn: func(arg interface{}) (interface{}, error) {
			t := arg.(eval.Tuple)
			a, b := t[0].(int64), t[1].(int64)
			if b == 0 {
				return nil, &eval.RuntimeError{Message: "mod: division by zero"}
			}
			return a % b, nil
		}}
	}
}

func stringConcatCallable() func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "^", Fn: func(arg interface{}) (interface{}, error) {
			t := arg.(eval.Tuple)
			return t[0].(string) + t[1].(string), nil
		}}
	}
}

func negCallable() func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "~", Fn: func(arg interface{}) (interface{}, error) {
			return -arg.(int64), nil
		}}
	}
}

func eqCallable(wantEqual bool) func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "=", Fn: func(arg interface{}) (interface{}, error) {
			t := arg.(eval.Tuple)
			eq := valuesEqual(t[0], t[1])
			return eq == wantEqual, nil
		}}
	}
}

func valuesEqual(a, b interface{}) bool {
	if ta, ok := a.(eval.Tuple); ok {
		tb, ok2 := b.(eval.Tuple)
		if !ok2 || len(ta) != len(tb) {
			return false
		}
		for i := range ta {
			if !valuesEqual(ta[i], tb[i]) {
				return false
			}
		}
		return true
	}
	if la, ok := a.(eval.List); ok {
		lb, ok2 := b.(eval.List)
		if !ok2 || la.Len() != lb.Len() {
			return false
		}
		for i := 0; i < la.Len(); i++ {
			if !valuesEqual(la.Get(i), lb.Get(i)) {
				return false
			}
		}
		return true
	}
	if ca, ok := a.(eval.Con); ok {
		cb, ok2 := b.(eval.Con)
		if !ok2 || ca.Name != cb.Name {
			return false
		}
		return valuesEqual(ca.Arg, cb.Arg)
	}
	return a == b
}

func ordCallable(accept func(int) bool) func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "cmp", Fn: func(arg interface{}) (interface{}, error) {
			t := arg.(eval.Tuple)
			return accept(compareOrd(t[0], t[1])), nil
		}}
	}
}

func compareOrd(a, b interface{}) int {
	switch av := a.(type) {
	case int64:
		bv := b.(int64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case float64:
		bv := b.(float64)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case string:
		bv := b.(string)
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	default:
		return 0
	}
}

func consCallable() func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "::", Fn: func(arg interface{}) (interface{}, error) {
			t := arg.(eval.Tuple)
			l := t[1].(eval.List)
			return l.Cons(t[0]), nil
		}}
	}
}

func hdCallable() func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "hd", Fn: func(arg interface{}) (interface{}, error) {
			return arg.(eval.List).Head()
		}}
	}
}

func tlCallable() func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "tl", Fn: func(arg interface{}) (interface{}, error) {
			return arg.(eval.List).Tail()
		}}
	}
}

func nullCallable() func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "null", Fn: func(arg interface{}) (interface{}, error) {
			return arg.(eval.List).IsEmpty(), nil
		}}
	}
}

func lengthCallable() func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "length", Fn: func(arg interface{}) (interface{}, error) {
			return int64(arg.(eval.List).Len()), nil
		}}
	}
}

func revCallable() func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "rev", Fn: func(arg interface{}) (interface{}, error) {
			l := arg.(eval.List)
			elems := l.ToSlice()
			out := make([]interface{}, len(elems))
			for i, e := range elems {
				out[len(elems)-1-i] = e
			}
			return eval.SliceToList(out), nil
		}}
	}
}

func appendCallable() func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "@", Fn: func(arg interface{}) (interface{}, error) {
			t := arg.(eval.Tuple)
			a, b := t[0].(eval.List), t[1].(eval.List)
			out := append(a.ToSlice(), b.ToSlice()...)
			return eval.SliceToList(out), nil
		}}
	}
}

func listMapCallable() func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "List.map", Fn: func(arg interface{}) (interface{}, error) {
			t := arg.(eval.Tuple)
			f := t[0].(eval.Callable)
			l := t[1].(eval.List)
			out := make([]interface{}, 0, l.Len())
			var err error
			l.Range(func(_ int, v interface{}) bool {
				var r interface{}
				r, err = f.Call(v)
				if err != nil {
					return false
				}
				out = append(out, r)
				return true
			})
			if err != nil {
				return nil, err
			}
			return eval.SliceToList(out), nil
		}}
	}
}

func listFilterCallable() func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "List.filter", Fn: func(arg interface{}) (interface{}, error) {
			t := arg.(eval.Tuple)
			f := t[0].(eval.Callable)
			l := t[1].(eval.List)
			out := make([]interface{}, 0, l.Len())
			var err error
			l.Range(func(_ int, v interface{}) bool {
				var r interface{}
				r, err = f.Call(v)
				if err != nil {
					return false
				}
				if b, _ := r.(bool); b {
					out = append(out, v)
				}
				return true
			})
			if err != nil {
				return nil, err
			}
			return eval.SliceToList(out), nil
		}}
	}
}

func stringSizeCallable() func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "String.size", Fn: func(arg interface{}) (interface{}, error) {
			return int64(len(arg.(string))), nil
		}}
	}
}

func stringSubCallable() func() eval.Callable {
	return func() eval.Callable {
		return &eval.NativeFn{Name: "String.sub", Fn: func(arg interface{}) (interface{}, error) {
			t := arg.(eval.Tuple)
			s := t[0].(string)
			i := t[1].(int64)
			if i < 0 || int(i) >= len(s) {
				return nil, &eval.RuntimeError{Message: "String.sub: index out of range"}
			}
			return rune(s[i]), nil
		}}
	}
}
