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

// Package ir is the scalar expression graph of the pipeline compiler.
// Expressions form a directed acyclic graph: a node may be shared by
// several parents and is compared by identity, never by structure.
// The graph is built programmatically by the caller and consumed by the
// definition layer in build/function.
package ir

import (
	"fmt"
	"strings"

	"github.com/gx-org/backend/dtype"
)

// Op is a binary operator.
type Op int

// Binary operators.
const (
	Add Op = iota
	Sub
	Mul
	Div
	Mod
	Min
	Max
	EQ
	NE
	LT
	LE
	GT
	GE
)

var opNames = [...]string{
	Add: "+", Sub: "-", Mul: "*", Div: "/", Mod: "%",
	Min: "min", Max: "max",
	EQ: "==", NE: "!=", LT: "<", LE: "<=", GT: ">", GE: ">=",
}

// IsComparison returns true if the operator produces a boolean.
func (op Op) IsComparison() bool {
	return op >= EQ
}

// String representation of the operator.
func (op Op) String() string {
	if int(op) < len(opNames) {
		return opNames[op]
	}
	return fmt.Sprintf("op(%d)", int(op))
}

// CallType tells what a call node targets.
type CallType int

const (
	// CallFunc targets a function defined in this layer.
	CallFunc CallType = iota
	// CallExtern targets an externally linked routine.
	CallExtern
	// CallIntrinsic targets a compiler primitive.
	CallIntrinsic
	// CallImage reads an input image or buffer.
	CallImage
)

// ----------------------------------------------------------------------------
// Nodes of the expression graph.
type (
	// Node in the expression graph.
	Node interface {
		// node marks a structure as a node structure.
		// It prevents external implementations of the interface.
		node()
	}

	// Expr is an expression computing a typed scalar value.
	Expr interface {
		Node

		// Type returns the element type the expression evaluates to.
		Type() dtype.DataType

		// String representation of the expression.
		String() string
	}

	// Callee is a non-owning reference from a call node back to the
	// function it targets. Callees are compared by identity.
	Callee interface {
		Name() string
	}

	// Variable is a named leaf. At definition time it must resolve to a
	// bound parameter, an enclosing let binding, a pure argument, or a
	// variable of a reduction domain.
	Variable struct {
		VarName string
		Typ     dtype.DataType

		// Param is set when the variable is bound to a parameter.
		Param *Parameter

		// Domain is set when the variable iterates a reduction domain.
		Domain *ReductionDomain
	}

	// IntImm is an integer immediate.
	IntImm struct {
		Value int64
		Typ   dtype.DataType
	}

	// FloatImm is a floating point immediate.
	FloatImm struct {
		Value float64
		Typ   dtype.DataType
	}

	// Cast converts X to another element type.
	Cast struct {
		X   Expr
		Typ dtype.DataType
	}

	// Binary applies an operator to two operands.
	Binary struct {
		Op   Op
		X, Y Expr
	}

	// Select evaluates to True or False depending on Cond.
	Select struct {
		Cond, True, False Expr
	}

	// Let binds Name to Value within Body. The binding is strictly
	// lexical: Value cannot see Name.
	Let struct {
		Name        string
		Value, Body Expr
	}

	// Call invokes a function, an extern routine, an intrinsic, or
	// reads an image.
	Call struct {
		CallType CallType
		FuncName string
		Args     []Expr
		Typ      dtype.DataType

		// Func refers back to the called function for CallFunc calls.
		// The reference is non-owning: the graph never keeps a
		// function alive.
		Func Callee
	}
)

var (
	_ Expr = (*Variable)(nil)
	_ Expr = (*IntImm)(nil)
	_ Expr = (*FloatImm)(nil)
	_ Expr = (*Cast)(nil)
	_ Expr = (*Binary)(nil)
	_ Expr = (*Select)(nil)
	_ Expr = (*Let)(nil)
	_ Expr = (*Call)(nil)
)

// IndexType is the element type of index variables.
var IndexType = dtype.Int64

func (*Variable) node() {}

// Type returns the element type of the variable.
func (v *Variable) Type() dtype.DataType { return v.Typ }

// String representation of the variable.
func (v *Variable) String() string { return v.VarName }

func (*IntImm) node() {}

// Type returns the element type of the immediate.
func (x *IntImm) Type() dtype.DataType { return x.Typ }

// String representation of the immediate.
func (x *IntImm) String() string { return fmt.Sprintf("%d", x.Value) }

func (*FloatImm) node() {}

// Type returns the element type of the immediate.
func (x *FloatImm) Type() dtype.DataType { return x.Typ }

// String representation of the immediate.
func (x *FloatImm) String() string { return fmt.Sprintf("%g", x.Value) }

func (*Cast) node() {}

// Type returns the target element type of the cast.
func (x *Cast) Type() dtype.DataType { return x.Typ }

// String representation of the cast.
func (x *Cast) String() string {
	return fmt.Sprintf("%s(%s)", x.Typ.String(), x.X.String())
}

func (*Binary) node() {}

// Type returns the element type of the operation: the type of the left
// operand, or bool for comparisons.
func (x *Binary) Type() dtype.DataType {
	if x.Op.IsComparison() {
		return dtype.Bool
	}
	return x.X.Type()
}

// String representation of the operation.
func (x *Binary) String() string {
	switch x.Op {
	case Min, Max:
		return fmt.Sprintf("%s(%s, %s)", x.Op, x.X, x.Y)
	default:
		return fmt.Sprintf("(%s %s %s)", x.X, x.Op, x.Y)
	}
}

func (*Select) node() {}

// Type returns the element type of the selected branches.
func (x *Select) Type() dtype.DataType { return x.True.Type() }

// String representation of the select.
func (x *Select) String() string {
	return fmt.Sprintf("select(%s, %s, %s)", x.Cond, x.True, x.False)
}

func (*Let) node() {}

// Type returns the element type of the body.
func (x *Let) Type() dtype.DataType { return x.Body.Type() }

// String representation of the binding.
func (x *Let) String() string {
	return fmt.Sprintf("(let %s = %s in %s)", x.Name, x.Value, x.Body)
}

func (*Call) node() {}

// Type returns the element type of the call result.
func (x *Call) Type() dtype.DataType { return x.Typ }

// String representation of the call.
func (x *Call) String() string {
	args := make([]string, len(x.Args))
	for i, arg := range x.Args {
		args[i] = arg.String()
	}
	return fmt.Sprintf("%s(%s)", x.FuncName, strings.Join(args, ", "))
}
