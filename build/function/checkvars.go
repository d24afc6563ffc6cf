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

package function

import (
	"slices"

	"go.uber.org/multierr"

	"github.com/syoummer/Halide/build/fmterr"
	"github.com/syoummer/Halide/build/ir"
)

// varCheck validates every variable reference of a definition in a
// single pass over the expression graph. A variable must resolve to
// exactly one of: a bound parameter, an enclosing let binding, a pure
// argument, or a variable of the single admissible reduction domain.
// Recursive references to the Func being defined must repeat the pure
// variables of the left-hand side at their positions.
type varCheck struct {
	fn       *Func
	pureArgs []string

	// scope counts the let bindings currently enclosing the visit.
	scope map[string]int

	// domain is the single reduction domain observed so far.
	domain *ir.ReductionDomain

	visited map[ir.Expr]bool
	errs    error
}

// checkVars runs the legality check over the given expressions and
// returns the reduction domain they reference, if any. All faults
// found are accumulated into the returned error, in visit order.
func (f *Func) checkVars(pureArgs []string, exprs ...ir.Expr) (*ir.ReductionDomain, error) {
	c := &varCheck{
		fn:       f,
		pureArgs: pureArgs,
		scope:    make(map[string]int),
		visited:  make(map[ir.Expr]bool),
	}
	for _, e := range exprs {
		c.visit(e)
	}
	return c.domain, c.errs
}

func (c *varCheck) visit(e ir.Expr) {
	if e == nil || c.visited[e] {
		return
	}
	c.visited[e] = true
	switch x := e.(type) {
	case *ir.Let:
		// The bound value resolves in the enclosing scope: a let
		// cannot see its own name.
		c.visit(x.Value)
		c.scope[x.Name]++
		c.visit(x.Body)
		c.scope[x.Name]--
	case *ir.Call:
		for _, arg := range x.Args {
			c.visit(arg)
		}
		c.checkSelfCall(x)
	case *ir.Variable:
		c.checkVariable(x)
	default:
		for _, child := range ir.Children(e) {
			c.visit(child)
		}
	}
}

func (c *varCheck) checkSelfCall(x *ir.Call) {
	if x.CallType != ir.CallFunc || x.Func != ir.Callee(c.fn) {
		return
	}
	if len(x.Args) != len(c.pureArgs) {
		c.errs = multierr.Append(c.errs, fmterr.Referentialf(
			"self-reference to %s has %d arguments, but the definition has %d",
			c.fn.name, len(x.Args), len(c.pureArgs)))
		return
	}
	for i, arg := range x.Args {
		if c.pureArgs[i] == "" {
			continue
		}
		v, ok := arg.(*ir.Variable)
		if !ok || v.VarName != c.pureArgs[i] {
			c.errs = multierr.Append(c.errs, fmterr.Referentialf(
				"all of a function's recursive references to itself must contain the same pure variables in the same places as on the left-hand side"))
		}
	}
}

func (c *varCheck) checkVariable(v *ir.Variable) {
	if v.Param != nil {
		return
	}
	if c.scope[v.VarName] > 0 {
		return
	}
	if slices.Contains(c.pureArgs, v.VarName) {
		return
	}
	if v.Domain != nil {
		switch {
		case c.domain == nil:
			c.domain = v.Domain
		case c.domain.SameAs(v.Domain):
		default:
			c.errs = multierr.Append(c.errs, fmterr.Referentialf(
				"multiple reduction domains found in function definition"))
		}
		return
	}
	c.errs = multierr.Append(c.errs, fmterr.Referentialf(
		"undefined variable in function definition: %s", v.VarName))
}
