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

package cse_test

import (
	"testing"

	"github.com/syoummer/Halide/build/cse"
	"github.com/syoummer/Halide/build/ir"
	"github.com/syoummer/Halide/build/ir/irhelper"
)

func TestNoSharingUnchanged(t *testing.T) {
	x := irhelper.Var("x")
	y := irhelper.Var("y")
	e := irhelper.Add(irhelper.Mul(x, y), irhelper.Int(1))
	if got := cse.Eliminate(e); got != ir.Expr(e) {
		t.Errorf("expression without sharing was rewritten: got %s", got)
	}
}

func TestSharedVariableNotHoisted(t *testing.T) {
	x := irhelper.Var("x")
	e := irhelper.Add(x, x)
	if got := cse.Eliminate(e); got != ir.Expr(e) {
		t.Errorf("shared variable was hoisted: got %s", got)
	}
}

func TestSharedSubexpressionHoisted(t *testing.T) {
	x := irhelper.Var("x")
	y := irhelper.Var("y")
	shared := irhelper.Add(x, y)
	e := irhelper.Mul(shared, shared)
	got := cse.Eliminate(e)
	let, ok := got.(*ir.Let)
	if !ok {
		t.Fatalf("got %s, want a let binding at the root", got)
	}
	if let.Value != ir.Expr(shared) {
		t.Errorf("let binds %s, want the shared node %s", let.Value, shared)
	}
	body, ok := let.Body.(*ir.Binary)
	if !ok || body.Op != ir.Mul {
		t.Fatalf("let body is %s, want a product", let.Body)
	}
	for _, operand := range []ir.Expr{body.X, body.Y} {
		v, ok := operand.(*ir.Variable)
		if !ok || v.VarName != let.Name {
			t.Errorf("operand %s does not reference binding %s", operand, let.Name)
		}
	}
}

func TestNestedSharing(t *testing.T) {
	x := irhelper.Var("x")
	y := irhelper.Var("y")
	inner := irhelper.Add(x, y)
	outer := irhelper.Mul(inner, inner)
	top := irhelper.Add(outer, outer)
	got := cse.Eliminate(top)
	want := "(let t1 = (x + y) in (let t0 = (t1 * t1) in (t0 + t0)))"
	if got.String() != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestSharedNodeUnderLetStaysBound(t *testing.T) {
	x := irhelper.Var("x")
	shared := irhelper.Add(irhelper.Var("t"), irhelper.Int(2))
	e := irhelper.Let("t",
		irhelper.Add(x, irhelper.Int(1)),
		irhelper.Mul(shared, shared))
	got := cse.Eliminate(e)
	want := "(let t = (x + 1) in (let t0 = (t + 2) in (t0 * t0)))"
	if got.String() != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestSharedNodeInLetValueStaysInValue(t *testing.T) {
	x := irhelper.Var("x")
	shared := irhelper.Add(x, irhelper.Int(1))
	e := irhelper.Let("u",
		irhelper.Mul(shared, shared),
		irhelper.Add(irhelper.Var("u"), irhelper.Int(3)))
	got := cse.Eliminate(e)
	want := "(let u = (let t0 = (x + 1) in (t0 * t0)) in (u + 3))"
	if got.String() != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestBindingNameAvoidsCapture(t *testing.T) {
	shared := irhelper.Add(irhelper.Var("t0"), irhelper.Int(1))
	e := irhelper.Mul(shared, shared)
	got := cse.Eliminate(e)
	want := "(let t1 = (t0 + 1) in (t1 * t1))"
	if got.String() != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestIdempotent(t *testing.T) {
	x := irhelper.Var("x")
	y := irhelper.Var("y")
	shared := irhelper.Add(x, y)
	e := irhelper.Mul(irhelper.Add(shared, irhelper.Int(2)), shared)
	once := cse.Eliminate(e)
	twice := cse.Eliminate(once)
	if once.String() != twice.String() {
		t.Errorf("second pass changed the expression:\nonce:  %s\ntwice: %s", once, twice)
	}
}

func TestTypePreserved(t *testing.T) {
	x := irhelper.Var("x")
	shared := irhelper.Add(x, irhelper.Int(3))
	e := irhelper.Mul(shared, shared)
	got := cse.Eliminate(e)
	if got.Type() != e.Type() {
		t.Errorf("rewrite changed the type from %s to %s", e.Type().String(), got.Type().String())
	}
}
