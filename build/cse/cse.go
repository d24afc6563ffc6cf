// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cse eliminates common subexpressions. A subexpression is
// common when the same node is reached through several parents of the
// graph; such nodes are hoisted into let bindings so that later stages
// compute them once. Hoisting respects lexical scope: a let delimits a
// region, and a node shared inside it is bound inside it, never above
// the let whose variable it may reference. The pass is pure and
// idempotent.
package cse

import (
	"fmt"
	"slices"

	"golang.org/x/exp/maps"

	"github.com/syoummer/Halide/build/ir"
)

type entry struct {
	expr  ir.Expr
	index int // first-visit order, parents before children
	count int
}

// Eliminate rewrites the expression so that every shared non-trivial
// node is bound once by a let and referenced by name below it. Nodes
// reached through a single parent are returned unchanged.
func Eliminate(e ir.Expr) ir.Expr {
	if e == nil {
		return nil
	}
	return eliminateRegion(e, newNamer(e))
}

// eliminateRegion hoists the sharing of one lexical region. The values
// and bodies of let nodes are separate regions, rewritten recursively:
// sharing never moves across a let boundary, so a binding cannot end
// up above the let that scopes a variable it references.
func eliminateRegion(e ir.Expr, names *namer) ir.Expr {
	counts := countParents(e)
	entries := maps.Values(counts)
	slices.SortFunc(entries, func(a, b *entry) int { return a.index - b.index })

	var hoisted []*entry
	for _, ent := range entries {
		if ent.count > 1 && worthHoisting(ent.expr) {
			hoisted = append(hoisted, ent)
		}
	}
	bind := make(map[ir.Expr]string, len(hoisted))
	for _, ent := range hoisted {
		bind[ent.expr] = names.fresh()
	}
	r := &rewriter{bind: bind, names: names, memo: make(map[ir.Expr]ir.Expr)}
	body := r.rewrite(e)

	// Parents come before children in visit order, so wrapping in that
	// order leaves every binding visible to the bindings that use it.
	for _, ent := range hoisted {
		body = &ir.Let{
			Name:  bind[ent.expr],
			Value: r.rewriteChildren(ent.expr),
			Body:  body,
		}
	}
	return body
}

// regionChildren returns the children explored within one region. Let
// nodes are opaque: their value and body belong to inner regions.
func regionChildren(e ir.Expr) []ir.Expr {
	if _, ok := e.(*ir.Let); ok {
		return nil
	}
	return ir.Children(e)
}

// countParents counts, for every distinct node of the region, how many
// times the node is reached. Children of a node are only explored on
// the first visit.
func countParents(root ir.Expr) map[ir.Expr]*entry {
	counts := make(map[ir.Expr]*entry)
	var walk func(ir.Expr)
	walk = func(e ir.Expr) {
		if e == nil {
			return
		}
		if ent, ok := counts[e]; ok {
			ent.count++
			return
		}
		counts[e] = &entry{expr: e, index: len(counts), count: 1}
		for _, child := range regionChildren(e) {
			walk(child)
		}
	}
	walk(root)
	return counts
}

// worthHoisting returns false for nodes cheaper than the binding that
// would replace them.
func worthHoisting(e ir.Expr) bool {
	switch e.(type) {
	case *ir.Variable, *ir.IntImm, *ir.FloatImm:
		return false
	default:
		return true
	}
}

// namer generates binding names that collide with no variable or let
// name anywhere in the expression being rewritten.
type namer struct {
	taken map[string]bool
	next  int
}

func newNamer(e ir.Expr) *namer {
	n := &namer{taken: make(map[string]bool)}
	ir.Visit(e, func(sub ir.Expr) bool {
		switch x := sub.(type) {
		case *ir.Variable:
			n.taken[x.VarName] = true
		case *ir.Let:
			n.taken[x.Name] = true
		}
		return true
	})
	return n
}

func (n *namer) fresh() string {
	for {
		name := fmt.Sprintf("t%d", n.next)
		n.next++
		if !n.taken[name] {
			return name
		}
	}
}

type rewriter struct {
	bind  map[ir.Expr]string
	names *namer
	memo  map[ir.Expr]ir.Expr
}

// rewrite replaces hoisted nodes with a reference to their binding and
// rebuilds the nodes above them.
func (r *rewriter) rewrite(e ir.Expr) ir.Expr {
	if name, ok := r.bind[e]; ok {
		return &ir.Variable{VarName: name, Typ: e.Type()}
	}
	return r.rewriteChildren(e)
}

// rewriteChildren rebuilds a node if any of its children changed,
// without replacing the node itself.
func (r *rewriter) rewriteChildren(e ir.Expr) ir.Expr {
	if e == nil {
		return nil
	}
	if done, ok := r.memo[e]; ok {
		return done
	}
	done := r.rewriteNode(e)
	r.memo[e] = done
	return done
}

func (r *rewriter) rewriteNode(e ir.Expr) ir.Expr {
	switch x := e.(type) {
	case *ir.Cast:
		if sub := r.rewrite(x.X); sub != x.X {
			return &ir.Cast{X: sub, Typ: x.Typ}
		}
	case *ir.Binary:
		sx, sy := r.rewrite(x.X), r.rewrite(x.Y)
		if sx != x.X || sy != x.Y {
			return &ir.Binary{Op: x.Op, X: sx, Y: sy}
		}
	case *ir.Select:
		cond, tr, fl := r.rewrite(x.Cond), r.rewrite(x.True), r.rewrite(x.False)
		if cond != x.Cond || tr != x.True || fl != x.False {
			return &ir.Select{Cond: cond, True: tr, False: fl}
		}
	case *ir.Let:
		value := eliminateRegion(x.Value, r.names)
		body := eliminateRegion(x.Body, r.names)
		if value != x.Value || body != x.Body {
			return &ir.Let{Name: x.Name, Value: value, Body: body}
		}
	case *ir.Call:
		args := x.Args
		changed := false
		for i, arg := range x.Args {
			sub := r.rewrite(arg)
			if sub == arg {
				continue
			}
			if !changed {
				args = append([]ir.Expr{}, x.Args...)
				changed = true
			}
			args[i] = sub
		}
		if changed {
			return &ir.Call{CallType: x.CallType, FuncName: x.FuncName, Args: args, Typ: x.Typ, Func: x.Func}
		}
	}
	return e
}
