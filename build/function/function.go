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

// Package function is the symbolic definition layer of the pipeline
// compiler. A Func names a pure mapping from index variables to output
// values, optionally extended by ordered update definitions that
// mutate the result over a reduction domain, or bound to an externally
// implemented computation instead. The package validates every
// definition before committing it: later stages (bounds inference,
// scheduling, lowering) rely on the invariants enforced here and never
// re-check them.
package function

import (
	"github.com/gx-org/backend/dtype"

	"github.com/syoummer/Halide/base/uname"
	"github.com/syoummer/Halide/build/cse"
	"github.com/syoummer/Halide/build/fmterr"
	"github.com/syoummer/Halide/build/ir"
	"github.com/syoummer/Halide/build/random"
)

type (
	// Func is a named symbolic computation. The zero of a Func is not
	// usable; create one with New.
	//
	// A Func goes through exactly one of two lifecycles: a pure
	// definition followed by any number of update definitions, or a
	// single extern definition. Definitions are established
	// sequentially by one goroutine; once committed they are never
	// removed or reordered.
	Func struct {
		name      string
		debugInfo string

		session  *random.Session
		reporter fmterr.Reporter
		simplify func(ir.Expr) ir.Expr

		args          []string
		values        []ir.Expr
		outputTypes   []dtype.DataType
		outputBuffers []*ir.Parameter
		updates       []*UpdateDef
		schedule      Schedule

		externName string
		externArgs []ExternArgument
	}

	// UpdateDef is one committed update rule. It is owned by its Func
	// and immutable once appended.
	UpdateDef struct {
		args     []ir.Expr
		values   []ir.Expr
		domain   *ir.ReductionDomain
		schedule Schedule
		selfRefs int
	}

	// ExternArgument binds one argument of an extern definition.
	// Exactly one field is set. The binding is opaque to this layer.
	ExternArgument struct {
		Expr   ir.Expr
		Func   *Func
		Buffer *ir.Parameter
	}

	// Options configures the collaborators of a Func. The zero value
	// selects the process-wide defaults.
	Options struct {
		// DebugInfo is caller-supplied source information, prefixed to
		// every diagnostic about the Func.
		DebugInfo string

		// Session provides the random-primitive tags. Defaults to the
		// process-wide session.
		Session *random.Session

		// Reporter receives non-fatal diagnostics. Defaults to stderr.
		Reporter fmterr.Reporter

		// Simplify is applied to every committed expression. Defaults
		// to common-subexpression elimination.
		Simplify func(ir.Expr) ir.Expr
	}
)

var _ ir.Callee = (*Func)(nil)

// New returns an empty Func. An empty name is replaced by a fresh
// generated one.
func New(name string) *Func {
	return NewWith(name, Options{})
}

// NewWith returns an empty Func with explicit collaborators.
func NewWith(name string, opts Options) *Func {
	if name == "" {
		name = uname.Default().Char('f')
	}
	f := &Func{
		name:      name,
		debugInfo: opts.DebugInfo,
		session:   opts.Session,
		reporter:  opts.Reporter,
		simplify:  opts.Simplify,
	}
	if f.session == nil {
		f.session = random.Default()
	}
	if f.reporter == nil {
		f.reporter = fmterr.Stderr()
	}
	if f.simplify == nil {
		f.simplify = cse.Eliminate
	}
	return f
}

// Name of the Func.
func (f *Func) Name() string { return f.name }

// DebugInfo returns the caller-supplied source information, or an
// empty string.
func (f *Func) DebugInfo() string { return f.debugInfo }

// HasPureDefinition returns true once Define has succeeded.
func (f *Func) HasPureDefinition() bool { return len(f.values) > 0 }

// HasUpdateDefinition returns true once at least one update definition
// has been appended.
func (f *Func) HasUpdateDefinition() bool { return len(f.updates) > 0 }

// HasExternDefinition returns true once DefineExtern has succeeded.
func (f *Func) HasExternDefinition() bool { return f.externName != "" }

// Dimensions returns the dimensionality of the Func.
func (f *Func) Dimensions() int { return len(f.args) }

// Args returns the pure argument names, in declaration order. For an
// extern Func these are the synthesized placeholder dimensions.
func (f *Func) Args() []string { return f.args }

// Values returns the right-hand-side tuple of the pure definition.
func (f *Func) Values() []ir.Expr { return f.values }

// OutputTypes returns one element type per output tuple element.
func (f *Func) OutputTypes() []dtype.DataType { return f.outputTypes }

// OutputBuffers returns one externally visible buffer parameter per
// output tuple element.
func (f *Func) OutputBuffers() []*ir.Parameter { return f.outputBuffers }

// Updates returns the committed update definitions, in definition
// order.
func (f *Func) Updates() []*UpdateDef { return f.updates }

// Schedule of the pure definition.
func (f *Func) Schedule() *Schedule { return &f.schedule }

// ExternName returns the entry point of the extern definition, or an
// empty string.
func (f *Func) ExternName() string { return f.externName }

// ExternArguments returns the argument bindings of the extern
// definition.
func (f *Func) ExternArguments() []ExternArgument { return f.externArgs }

// Call returns a call node targeting the Func. The result type is the
// type of the i-th output tuple element once the Func is defined; a
// call built before definition carries an invalid type and may be used
// for self-references inside an update definition only.
func (f *Func) Call(args ...ir.Expr) *ir.Call {
	typ := dtype.Invalid
	if len(f.outputTypes) > 0 {
		typ = f.outputTypes[0]
	}
	return &ir.Call{
		CallType: ir.CallFunc,
		FuncName: f.name,
		Args:     args,
		Typ:      typ,
		Func:     f,
	}
}

// errf annotates an error with the Func's name and debug information.
func (f *Func) errf(err error) error {
	return fmterr.WithFunc(f.name, f.debugInfo, err)
}

// Args returns the left-hand-side index expressions of the update.
func (u *UpdateDef) Args() []ir.Expr { return u.args }

// Values returns the right-hand-side tuple of the update.
func (u *UpdateDef) Values() []ir.Expr { return u.values }

// Domain returns the reduction domain of the update, or nil.
func (u *UpdateDef) Domain() *ir.ReductionDomain { return u.domain }

// Schedule of the update definition.
func (u *UpdateDef) Schedule() *Schedule { return &u.schedule }

// SelfRefs returns the number of distinct call nodes in the update
// that refer back to the Func.
func (u *UpdateDef) SelfRefs() int { return u.selfRefs }
