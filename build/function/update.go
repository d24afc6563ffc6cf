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
	"fmt"

	"go.uber.org/multierr"

	"github.com/syoummer/Halide/build/fmterr"
	"github.com/syoummer/Halide/build/ir"
	"github.com/syoummer/Halide/build/random"
)

// DefineUpdate appends an update rule to the Func: an in-place
// mutation of the result at the indices named by args, applied after
// the pure definition and after every earlier update, iterating the
// reduction domain the right-hand side references, if any. The value
// tuple must match the pure definition in arity and element types;
// sizing the backing storage depends on it. An argument that is the
// bare pure variable of its position stays a free dimension of the
// update; every other argument pins or computes its index.
func (f *Func) DefineUpdate(args []ir.Expr, values []ir.Expr) error {
	if f.name == "" {
		return f.errf(fmterr.Structuralf("a function needs a name"))
	}
	if !f.HasPureDefinition() {
		return f.errf(fmterr.Structuralf("cannot add an update definition without a pure definition first"))
	}
	for _, value := range values {
		if value == nil {
			return f.errf(fmterr.Structuralf("undefined expression in right-hand side of update definition"))
		}
	}
	if len(args) != f.Dimensions() {
		return f.errf(fmterr.Structuralf(
			"dimensionality of update definition (%d) must match dimensionality of pure definition (%d)",
			len(args), f.Dimensions()))
	}
	if len(values) != len(f.values) {
		return f.errf(fmterr.Structuralf(
			"number of tuple elements for update definition (%d) must match number of tuple elements for pure definition (%d)",
			len(values), len(f.values)))
	}
	vals := make([]ir.Expr, len(values))
	var typeErrs error
	for i, value := range values {
		if got, want := value.Type(), f.values[i].Type(); got != want {
			typeErrs = multierr.Append(typeErrs, fmterr.Structuralf(
				"update definition element %d has type %s, but the pure definition has type %s; the backing storage would be sized incorrectly",
				i, got.String(), want.String()))
			continue
		}
		vals[i] = f.simplify(value)
	}
	if typeErrs != nil {
		return f.errf(typeErrs)
	}
	uargs := make([]ir.Expr, len(args))
	for i, arg := range args {
		if arg == nil {
			return f.errf(fmterr.Structuralf("undefined expression in left-hand side of update definition"))
		}
		uargs[i] = f.simplify(arg)
	}

	// An argument is pure at its position iff it is the bare variable
	// of the corresponding pure argument, bound to neither a parameter
	// nor a reduction domain.
	pure := true
	pureArgs := make([]string, len(uargs))
	for i, arg := range uargs {
		v, ok := arg.(*ir.Variable)
		if ok && v.Param == nil && v.Domain == nil && v.VarName == f.args[i] {
			pureArgs[i] = v.VarName
		} else {
			pure = false
		}
	}

	domain, err := f.checkVars(pureArgs, append(append([]ir.Expr{}, uargs...), vals...)...)
	if err != nil {
		return f.errf(err)
	}

	var freeVars []string
	for _, arg := range pureArgs {
		if arg != "" {
			freeVars = append(freeVars, arg)
		}
	}
	if domain != nil {
		for _, rv := range domain.Domain() {
			freeVars = append(freeVars, rv.Var)
		}
	}
	tag := f.session.NextTag()
	for i, arg := range uargs {
		uargs[i] = random.Lower(arg, freeVars, tag)
	}
	for i, value := range vals {
		vals[i] = random.Lower(value, freeVars, tag)
	}

	selfRefs, err := countSelfRefs(f, append(append([]ir.Expr{}, uargs...), vals...)...)
	if err != nil {
		return f.errf(err)
	}

	u := &UpdateDef{
		args:     uargs,
		values:   vals,
		domain:   domain,
		selfRefs: selfRefs,
	}
	// Domain dimensions come first: the domain always iterates coarser
	// than the surviving pure dimensions.
	if domain != nil {
		for _, rv := range domain.Domain() {
			u.schedule.Dims = append(u.schedule.Dims, Dim{Var: rv.Var, Kind: Serial})
		}
	}
	for _, arg := range pureArgs {
		if arg != "" {
			u.schedule.Dims = append(u.schedule.Dims, Dim{Var: arg, Kind: Serial})
		}
	}

	if domain == nil && selfRefs == 0 && pure {
		f.reporter.Report(fmterr.Warning, fmt.Sprintf(
			"update definition %d of function %s completely hides earlier definitions, because all its arguments are pure and it has no self-reference and no reduction domain. This may be an accidental redefinition of an already defined function",
			len(f.updates), f.name))
	}

	f.updates = append(f.updates, u)
	return nil
}
