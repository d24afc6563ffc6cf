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

// Package random gives stochastic primitives deterministic,
// collision-free identities. Every definition lowers its right-hand
// sides through Lower, which stamps each random intrinsic call with
// the definition's tag and the variables in scope. Two random calls in
// the same definition therefore produce the same stream iff they see
// the same free variables, and calls in different definitions never
// collide.
package random

import (
	"sync/atomic"

	"github.com/syoummer/Halide/build/ir"
)

// Names of the stochastic intrinsics recognized by Lower.
const (
	// Float is the intrinsic producing uniform floats in [0, 1).
	Float = "random_float"
	// Int is the intrinsic producing uniformly distributed integers.
	Int = "random_int"
)

// Session owns the tag counter. Tags increase monotonically and are
// unique within a session, across every function defined in it.
type Session struct {
	counter atomic.Int64
}

// NewSession returns a session with its counter at zero.
func NewSession() *Session {
	return &Session{}
}

// NextTag returns a fresh tag. Safe for concurrent use.
func (s *Session) NextTag() int64 {
	return s.counter.Add(1) - 1
}

var defaultSession = NewSession()

// Default returns the process-wide session.
func Default() *Session {
	return defaultSession
}

type lowerer struct {
	freeVars []string
	tag      int64
	memo     map[ir.Expr]ir.Expr
}

// Lower rewrites every random intrinsic call in the expression so that
// it carries the free variables and the definition tag as trailing
// arguments. Nodes without random calls underneath are returned
// unchanged, and sharing in the graph is preserved: a node reached
// through several parents is rewritten once.
func Lower(e ir.Expr, freeVars []string, tag int64) ir.Expr {
	l := &lowerer{
		freeVars: freeVars,
		tag:      tag,
		memo:     make(map[ir.Expr]ir.Expr),
	}
	return l.lower(e)
}

func (l *lowerer) lower(e ir.Expr) ir.Expr {
	if e == nil {
		return nil
	}
	if done, ok := l.memo[e]; ok {
		return done
	}
	done := l.lowerNode(e)
	l.memo[e] = done
	return done
}

func (l *lowerer) lowerNode(e ir.Expr) ir.Expr {
	switch x := e.(type) {
	case *ir.Cast:
		if sub := l.lower(x.X); sub != x.X {
			return &ir.Cast{X: sub, Typ: x.Typ}
		}
	case *ir.Binary:
		sx, sy := l.lower(x.X), l.lower(x.Y)
		if sx != x.X || sy != x.Y {
			return &ir.Binary{Op: x.Op, X: sx, Y: sy}
		}
	case *ir.Select:
		cond, tr, fl := l.lower(x.Cond), l.lower(x.True), l.lower(x.False)
		if cond != x.Cond || tr != x.True || fl != x.False {
			return &ir.Select{Cond: cond, True: tr, False: fl}
		}
	case *ir.Let:
		value, body := l.lower(x.Value), l.lower(x.Body)
		if value != x.Value || body != x.Body {
			return &ir.Let{Name: x.Name, Value: value, Body: body}
		}
	case *ir.Call:
		return l.lowerCall(x)
	}
	return e
}

func (l *lowerer) lowerCall(x *ir.Call) ir.Expr {
	args := x.Args
	changed := false
	for i, arg := range x.Args {
		sub := l.lower(arg)
		if sub == arg {
			continue
		}
		if !changed {
			args = append([]ir.Expr{}, x.Args...)
			changed = true
		}
		args[i] = sub
	}
	if !isRandom(x) {
		if !changed {
			return x
		}
		return &ir.Call{CallType: x.CallType, FuncName: x.FuncName, Args: args, Typ: x.Typ, Func: x.Func}
	}
	tagged := append([]ir.Expr{}, args...)
	for _, name := range l.freeVars {
		tagged = append(tagged, &ir.Variable{VarName: name, Typ: ir.IndexType})
	}
	tagged = append(tagged, &ir.IntImm{Value: l.tag, Typ: ir.IndexType})
	return &ir.Call{CallType: ir.CallIntrinsic, FuncName: x.FuncName, Args: tagged, Typ: x.Typ}
}

func isRandom(x *ir.Call) bool {
	if x.CallType != ir.CallIntrinsic {
		return false
	}
	return x.FuncName == Float || x.FuncName == Int
}
