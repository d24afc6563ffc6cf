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
	"slices"

	"github.com/gx-org/backend/dtype"
	"go.uber.org/multierr"

	"github.com/syoummer/Halide/build/fmterr"
	"github.com/syoummer/Halide/build/ir"
	"github.com/syoummer/Halide/build/random"
)

// Define establishes the pure definition of the Func: the unconditional
// mapping from the given argument variables to the value tuple. Every
// free variable of the values must resolve to an argument, a bound
// parameter, or an enclosing let binding; a reduction domain cannot
// appear in a pure definition. Define commits one output type, one
// output buffer parameter, one Serial loop dimension and one storage
// dimension per axis, in declaration order.
func (f *Func) Define(args []string, values ...ir.Expr) error {
	if f.HasExternDefinition() {
		return f.errf(fmterr.Structuralf("a function with an extern definition cannot be given a pure definition"))
	}
	if f.name == "" {
		return f.errf(fmterr.Structuralf("a function needs a name"))
	}
	if len(values) == 0 {
		return f.errf(fmterr.Structuralf("a definition needs at least one value"))
	}
	for _, value := range values {
		if value == nil {
			return f.errf(fmterr.Structuralf("undefined expression in right-hand side of function definition"))
		}
	}
	domain, err := f.checkVars(args, values...)
	if err != nil {
		return f.errf(err)
	}
	if err := f.checkArgNames(args); err != nil {
		return f.errf(err)
	}
	vals := make([]ir.Expr, len(values))
	tag := f.session.NextTag()
	for i, value := range values {
		vals[i] = random.Lower(f.simplify(value), args, tag)
	}
	if domain != nil {
		return f.errf(fmterr.Structuralf("reduction domain referenced in pure function definition"))
	}
	if f.HasPureDefinition() {
		return f.errf(fmterr.Structuralf("function is already defined"))
	}

	f.args = slices.Clone(args)
	f.values = vals
	f.outputTypes = make([]dtype.DataType, len(vals))
	for i, value := range vals {
		f.outputTypes[i] = value.Type()
	}
	for _, arg := range args {
		f.schedule.Dims = append(f.schedule.Dims, Dim{Var: arg, Kind: Serial})
		f.schedule.StorageDims = append(f.schedule.StorageDims, arg)
	}
	f.outputBuffers = make([]*ir.Parameter, len(vals))
	for i, typ := range f.outputTypes {
		f.outputBuffers[i] = ir.NewParameter(typ, true, f.bufferName(i, len(vals)))
	}
	return nil
}

// checkArgNames verifies that the left-hand-side argument names are
// non-empty and pairwise distinct. All faults are reported, in
// argument order.
func (f *Func) checkArgNames(args []string) error {
	var errs error
	for i, arg := range args {
		if arg == "" {
			errs = multierr.Append(errs, fmterr.Structuralf(
				"in the left-hand side of the definition of %s, argument %d has an empty name", f.name, i))
			continue
		}
		for j := range i {
			if args[j] != arg {
				continue
			}
			errs = multierr.Append(errs, fmterr.Structuralf(
				"in the left-hand side of the definition of %s, arguments %d and %d have the same name: %s", f.name, j, i, arg))
		}
	}
	return errs
}

// bufferName names the backing buffer of the i-th output tuple
// element. The index suffix only appears when the tuple has more than
// one element.
func (f *Func) bufferName(i, arity int) string {
	if arity == 1 {
		return f.name
	}
	return fmt.Sprintf("%s.%d", f.name, i)
}
