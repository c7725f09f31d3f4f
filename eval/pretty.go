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
	"strconv"
	"strings"

	"github.com/gtejedap/morel/types"
)

// Pretty renders v (of type ty) in canonical ML form: strings quoted,
// chars as #"x", negative numerics prefixed with the ML tilde, tuples
// parenthesised and comma-separated, lists bracketed, records with
// labels in canonical order. This is the only place textual fidelity
// matters for tests — the REPL's own output line wraps this verbatim.
func Pretty(v interface{}, ty types.Type) string {
	ty = types.RealType(ty)
	switch t := ty.(type) {
	case *types.Primitive:
		return prettyPrimitive(v, t)
	case *types.ListType:
		l, ok := v.(List)
		if !ok {
			return "[]"
		}
		var parts []string
		l.Range(func(_ int, el interface{}) bool {
			parts = append(parts, Pretty(el, t.Elem))
			return true
		})
		return "[" + strings.Join(parts, ",") + "]"
	case *types.Record:
		return prettyRecord(v, t)
	case *types.Arrow:
		return "fn"
	case *types.DataType:
		return prettyCon(v, t)
	case *types.Var:
		return prettyDynamic(v)
	default:
		return prettyDynamic(v)
	}
}

func prettyPrimitive(v interface{}, t *types.Primitive) string {
	switch t {
	case types.Unit:
		return "()"
	case types.Bool:
		if b, _ := v.(bool); b {
			return "true"
		}
		return "false"
	case types.Char:
		r, _ := v.(rune)
		return "#" + strconv.Quote(string(r))
	case types.Int:
		n, _ := v.(int64)
		return formatIntTilde(n)
	case types.Real:
		f, _ := v.(float64)
		return formatRealTilde(f)
	case types.String:
		s, _ := v.(string)
		return strconv.Quote(s)
	default:
		return prettyDynamic(v)
	}
}

func formatIntTilde(n int64) string {
	if n < 0 {
		return "~" + strconv.FormatInt(-n, 10)
	}
	return strconv.FormatInt(n, 10)
}

func formatRealTilde(f float64) string {
	neg := f < 0
	if neg {
		f = -f
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	if neg {
		return "~" + s
	}
	return s
}

func prettyRecord(v interface{}, t *types.Record) string {
	tuple, ok := v.(Tuple)
	if !ok {
		return "()"
	}
	labels, fields, _ := types.FlattenRow(t.Row)
	if _, isTuple := t.IsTuple(); isTuple {
		parts := make([]string, len(tuple))
		for i, f := range tuple {
			parts[i] = Pretty(f, fields[i])
		}
		return "(" + strings.Join(parts, ",") + ")"
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		parts[i] = l + "=" + Pretty(tuple[i], fields[i])
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func prettyCon(v interface{}, t *types.DataType) string {
	c, ok := v.(Con)
	if !ok {
		return prettyDynamic(v)
	}
	if c.Arg == nil {
		return c.Name
	}
	ctor, ok := t.Ctor(c.Name)
	var argTy types.Type
	if ok {
		argTy = ctor.Arg
	}
	return c.Name + " " + Pretty(c.Arg, argTy)
}

// prettyDynamic is a fallback for values whose static type wasn't
// threaded through (e.g. constructing test fixtures ad hoc); never
// reached from compiled code, which always carries a type alongside
// every value.
func prettyDynamic(v interface{}) string {
	switch x := v.(type) {
	case bool:
		if x {
			return "true"
		}
		return "false"
	case int64:
		return formatIntTilde(x)
	case float64:
		return formatRealTilde(x)
	case string:
		return strconv.Quote(x)
	case rune:
		return "#\"" + string(x) + "\""
	case nil:
		return "()"
	default:
		return "?"
	}
}
