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
	"fmt"
	"strconv"

	"github.com/gtejedap/morel/ast"
)

// String renders e as surface-ish SML text. This is the round-trip
// printer §8 checks, not a REPL feature: it exists so an infix
// expression or list literal lowered to Apply/Tuple prints back close to
// how it was written, by re-deriving infix and list syntax from the
// BuiltIn function-literal tag the resolver leaves on Apply.Fn.
func String(e Exp) string {
	w := ast.NewWriter()
	unparse(w, e, ast.MinPrec, ast.MaxPrec)
	return w.String()
}

func unparse(w *ast.Writer, e Exp, left, right int) {
	switch n := e.(type) {
	case *Literal:
		writeLiteral(w, n)
	case *Id:
		w.Raw(n.Name)
	case *RecordSelector:
		w.Raw("#" + strconv.Itoa(n.Slot+1))
	case *Apply:
		unparseApply(w, n, left, right)
	case *Tuple:
		unparseTuple(w, n)
	case *Fn:
		w.Raw("fn ")
		unparseMatches(w, n.Matches)
	case *Case:
		unparseCase(w, n)
	case *Let:
		unparseLet(w, n)
	case *From:
		unparseFrom(w, n)
	default:
		w.Raw(fmt.Sprintf("<%T>", e))
	}
}

func writeLiteral(w *ast.Writer, n *Literal) {
	switch v := n.Value.(type) {
	case bool:
		if v {
			w.Raw("true")
		} else {
			w.Raw("false")
		}
	case rune:
		w.Raw("#" + strconv.Quote(string(v)))
	case int64:
		w.Raw(formatInt(v))
	case int:
		w.Raw(formatInt(int64(v)))
	case float64:
		w.Raw(formatReal(v))
	case string:
		w.Raw(strconv.Quote(v))
	case *BuiltIn:
		w.Raw(v.Name)
	default:
		w.Raw("()")
	}
}

func formatInt(v int64) string {
	if v < 0 {
		return "~" + strconv.FormatInt(-v, 10)
	}
	return strconv.FormatInt(v, 10)
}

func formatReal(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg, s = true, s[1:]
	}
	hasDot := false
	for _, c := range s {
		if c == '.' || c == 'e' {
			hasDot = true
			break
		}
	}
	if !hasDot {
		s += ".0"
	}
	if neg {
		return "~" + s
	}
	return s
}

func unparseApply(w *ast.Writer, n *Apply, left, right int) {
	if lit, ok := n.Fn.(*Literal); ok {
		if bi, ok := lit.Value.(*BuiltIn); ok {
			if bi.Name == ZList {
				unparseListLiteral(w, n.Arg)
				return
			}
			if bi.IsInfix {
				if tup, ok := n.Arg.(*Tuple); ok && len(tup.Elems) == 2 {
					opLeft, opRight, _ := ast.Precedence(bi.Op)
					w.Infix(left, right,
						func(l, r int) { unparse(w, tup.Elems[0], l, r) }, opLeft,
						ast.Symbol(bi.Op), opRight,
						func(l, r int) { unparse(w, tup.Elems[1], l, r) })
					return
				}
			}
		}
	}
	unparse(w, n.Fn, ast.MaxPrec, ast.MaxPrec)
	w.Raw(" ")
	unparse(w, n.Arg, ast.MaxPrec, ast.MaxPrec)
}

func unparseListLiteral(w *ast.Writer, arg Exp) {
	tup, ok := arg.(*Tuple)
	if !ok {
		unparse(w, arg, ast.MinPrec, ast.MaxPrec)
		return
	}
	w.Raw("[")
	for i, el := range tup.Elems {
		if i > 0 {
			w.Raw(", ")
		}
		unparse(w, el, ast.MinPrec, ast.MaxPrec)
	}
	w.Raw("]")
}

func unparseTuple(w *ast.Writer, n *Tuple) {
	w.Raw("(")
	for i, el := range n.Elems {
		if i > 0 {
			w.Raw(", ")
		}
		unparse(w, el, ast.MinPrec, ast.MaxPrec)
	}
	w.Raw(")")
}

func unparseMatches(w *ast.Writer, matches []Match) {
	for i, m := range matches {
		if i > 0 {
			w.Raw(" | ")
		}
		unparsePat(w, m.Pat)
		w.Raw(" => ")
		unparse(w, m.Body, ast.MinPrec, ast.MaxPrec)
	}
}

func unparseCase(w *ast.Writer, n *Case) {
	if isIfEncoding(n) {
		w.Raw("if ")
		unparse(w, n.Scrutinee, ast.MinPrec, ast.MaxPrec)
		w.Raw(" then ")
		unparse(w, n.Matches[0].Body, ast.MinPrec, ast.MaxPrec)
		w.Raw(" else ")
		unparse(w, n.Matches[1].Body, ast.MinPrec, ast.MaxPrec)
		return
	}
	w.Raw("case ")
	unparse(w, n.Scrutinee, ast.MinPrec, ast.MaxPrec)
	w.Raw(" of ")
	unparseMatches(w, n.Matches)
}

// isIfEncoding recognises the exact shape the resolver's if-to-case
// rewrite produces: two clauses, `true` then wildcard.
func isIfEncoding(n *Case) bool {
	if len(n.Matches) != 2 {
		return false
	}
	lit, ok := n.Matches[0].Pat.(*LiteralPat)
	if !ok {
		return false
	}
	b, ok := lit.Value.(bool)
	if !ok || !b {
		return false
	}
	_, ok = n.Matches[1].Pat.(*WildcardPat)
	return ok
}

func unparsePat(w *ast.Writer, p Pat) {
	switch n := p.(type) {
	case *IdPat:
		w.Raw(n.Name)
	case *WildcardPat:
		w.Raw("_")
	case *LiteralPat:
		writeLiteral(w, &Literal{Value: n.Value, Ty: n.Ty})
	case *ConPat:
		w.Raw(n.Name)
		if n.Arg != nil {
			w.Raw(" ")
			unparsePat(w, n.Arg)
		}
	case *TuplePat:
		w.Raw("(")
		for i, e := range n.Elems {
			if i > 0 {
				w.Raw(", ")
			}
			unparsePat(w, e)
		}
		w.Raw(")")
	case *ListPat:
		w.Raw("[")
		for i, e := range n.Elems {
			if i > 0 {
				w.Raw(", ")
			}
			unparsePat(w, e)
		}
		w.Raw("]")
	case *ConsPat:
		unparsePat(w, n.Head)
		w.Raw(" :: ")
		unparsePat(w, n.Tail)
	case *RecordPat:
		w.Raw("{")
		for i, f := range n.Fields {
			if i > 0 {
				w.Raw(", ")
			}
			w.Raw(f.Label)
			w.Raw(" = ")
			unparsePat(w, f.Pat)
		}
		w.Raw("}")
	}
}

func unparseLet(w *ast.Writer, n *Let) {
	w.Raw("let ")
	switch d := n.Decl.(type) {
	case *ValDecl:
		if d.Rec {
			w.Raw("val rec ")
		} else {
			w.Raw("val ")
		}
		unparsePat(w, d.Pat)
		w.Raw(" = ")
		unparse(w, d.Exp, ast.MinPrec, ast.MaxPrec)
	case *DatatypeDecl:
		w.Raw("datatype ...")
	}
	w.Raw(" in ")
	unparse(w, n.Body, ast.MinPrec, ast.MaxPrec)
	w.Raw(" end")
}

func unparseFrom(w *ast.Writer, n *From) {
	w.Raw("from ")
	for i, s := range n.Sources {
		if i > 0 {
			w.Raw(", ")
		}
		unparsePat(w, s.Pat)
		w.Raw(" in ")
		unparse(w, s.Exp, ast.MinPrec, ast.MaxPrec)
	}
	for _, step := range n.Steps {
		switch s := step.(type) {
		case WhereStep:
			w.Raw(" where ")
			unparse(w, s.Pred, ast.MinPrec, ast.MaxPrec)
		case GroupStep:
			w.Raw(" group ")
			for i := range s.KeyLabels {
				if i > 0 {
					w.Raw(", ")
				}
				w.Raw(s.KeyLabels[i])
			}
		case OrderStep:
			w.Raw(" order ")
			for i, it := range s.Items {
				if i > 0 {
					w.Raw(", ")
				}
				unparse(w, it.Exp, ast.MinPrec, ast.MaxPrec)
				if it.Desc {
					w.Raw(" desc")
				}
			}
		}
	}
	if n.Yield != nil {
		w.Raw(" yield ")
		unparse(w, n.Yield, ast.MinPrec, ast.MaxPrec)
	}
}
