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

import "strconv"

// Var is a type variable used during Hindley-Milner inference. Unlinked,
// it stands for "unknown, introduced at Level"; once unified it Links to
// the type it was resolved to; once generalized at a let-boundary it
// becomes Generic and prints as a bound scheme variable 'a, 'b, ....
type Var struct {
	Id      int
	Level   int
	Link    Type
	Generic bool
	// Name, if non-empty, is the source-level name ('a) this var was
	// declared with. Fresh inference variables leave it empty and print
	// by Id instead.
	Name string
}

func NewVar(id, level int) *Var { return &Var{Id: id, Level: level} }

func (v *Var) SetLink(t Type) { v.Link = t }

func (v *Var) SetGeneric() { v.Generic = true; v.Link = nil }

func (v *Var) Moniker() string {
	if v.Link != nil {
		return v.Link.Moniker()
	}
	if v.Name != "" {
		return "'" + v.Name
	}
	return "'_" + strconv.Itoa(v.Id)
}

func (v *Var) Description() string { return v.Moniker() }
func (*Var) isType()                {}

// isRow lets an unbound Var stand in for an open record row's tail (the
// "more fields, not yet known" case used while inferring a `{a, ...}`
// pattern); see Row in types.go.
func (*Var) isRow() {}

// IsGeneric reports whether v has been generalized (bound in a scheme).
func (v *Var) IsGeneric() bool { return v.Generic }
