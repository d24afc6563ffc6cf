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

// Package irhelper provides helper functions to build expression
// graphs programmatically.
package irhelper

import (
	"github.com/gx-org/backend/dtype"

	"github.com/syoummer/Halide/build/ir"
)

// Var returns an index variable.
func Var(name string) *ir.Variable {
	return &ir.Variable{VarName: name, Typ: ir.IndexType}
}

// TypedVar returns a variable of the given element type.
func TypedVar(name string, typ dtype.DataType) *ir.Variable {
	return &ir.Variable{VarName: name, Typ: typ}
}

// Int returns an index-typed integer immediate.
func Int(value int64) *ir.IntImm {
	return &ir.IntImm{Value: value, Typ: ir.IndexType}
}

// Float returns a float32 immediate.
func Float(value float64) *ir.FloatImm {
	return &ir.FloatImm{Value: value, Typ: dtype.Float32}
}

// Bin returns a binary operation.
func Bin(op ir.Op, x, y ir.Expr) *ir.Binary {
	return &ir.Binary{Op: op, X: x, Y: y}
}

// Add returns the sum of two expressions.
func Add(x, y ir.Expr) *ir.Binary {
	return Bin(ir.Add, x, y)
}

// Mul returns the product of two expressions.
func Mul(x, y ir.Expr) *ir.Binary {
	return Bin(ir.Mul, x, y)
}

// Let binds name to value within body.
func Let(name string, value, body ir.Expr) *ir.Let {
	return &ir.Let{Name: name, Value: value, Body: body}
}

// Call returns a call node targeting a function defined in this layer.
// The result type must be supplied by the caller since the callee may
// not be defined yet.
func Call(fn ir.Callee, typ dtype.DataType, args ...ir.Expr) *ir.Call {
	return &ir.Call{
		CallType: ir.CallFunc,
		FuncName: fn.Name(),
		Args:     args,
		Typ:      typ,
		Func:     fn,
	}
}

// Intrinsic returns a call node targeting a compiler primitive.
func Intrinsic(name string, typ dtype.DataType, args ...ir.Expr) *ir.Call {
	return &ir.Call{
		CallType: ir.CallIntrinsic,
		FuncName: name,
		Args:     args,
		Typ:      typ,
	}
}
