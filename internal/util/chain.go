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

package util

import "github.com/benbjohnson/immutable"

// indexThreshold is the chain length past which Chain builds a lazy
// immutable.SortedMap index instead of doing a linear scan on Lookup.
// Below it, a linear scan over a handful of cons cells beats allocating
// and populating a map.
const indexThreshold = 8

// Chain is a persistent, ordered, singly-linked name->value mapping: each
// Bind prepends one cell and returns a new Chain sharing the rest of the
// structure with its parent, so a reader holding an older Chain is
// unaffected by later binds. Lookup walks newest-to-oldest (shadowing);
// once a chain grows past indexThreshold entries it lazily builds a
// SortedMap index of name->value so repeated lookups don't keep re-walking
// the whole tail.
type Chain struct {
	name   string
	value  interface{}
	parent *Chain
	length int

	index *immutable.SortedMap // built lazily, nil until first indexed lookup
}

// Empty is the empty chain; every session starts from it.
var Empty = &Chain{}

func (c *Chain) Bind(name string, value interface{}) *Chain {
	return &Chain{name: name, value: value, parent: c, length: c.length + 1}
}

func (c *Chain) Len() int { return c.length }

func (c *Chain) Lookup(name string) (interface{}, bool) {
	if c.length > indexThreshold {
		return c.lookupIndexed(name)
	}
	for n := c; n.parent != nil; n = n.parent {
		if n.name == name {
			return n.value, true
		}
	}
	return nil, false
}

func (c *Chain) lookupIndexed(name string) (interface{}, bool) {
	if c.index == nil {
		c.buildIndex()
	}
	v, ok := c.index.Get(name)
	return v, ok
}

func (c *Chain) buildIndex() {
	m := immutable.NewSortedMap(nil)
	// Walk oldest-to-newest so later (shadowing) binds overwrite earlier
	// ones in the index, matching Lookup's newest-wins semantics.
	var frames []*Chain
	for n := c; n.parent != nil; n = n.parent {
		frames = append(frames, n)
	}
	for i := len(frames) - 1; i >= 0; i-- {
		m = m.Set(frames[i].name, frames[i].value)
	}
	c.index = m
}

// Range calls f for every (name, value) pair, in insertion order (oldest
// first), stopping early if f returns false. Used for the result
// environment's "iteration in insertion order" requirement.
func (c *Chain) Range(f func(name string, value interface{}) bool) {
	var frames []*Chain
	for n := c; n.parent != nil; n = n.parent {
		frames = append(frames, n)
	}
	for i := len(frames) - 1; i >= 0; i-- {
		if !f(frames[i].name, frames[i].value) {
			return
		}
	}
}
