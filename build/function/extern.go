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

	"github.com/gx-org/backend/dtype"

	"github.com/syoummer/Halide/base/uname"
	"github.com/syoummer/Halide/build/fmterr"
	"github.com/syoummer/Halide/build/ir"
)

// DefineExtern binds the Func to an externally implemented
// computation. The right-hand side is opaque to this layer, so no
// legality checking happens beyond mutual exclusivity with pure and
// update definitions. Placeholder dimension names are synthesized so
// that generic scheduling operations addressing storage dimensions
// have something to name.
func (f *Func) DefineExtern(entryPoint string, args []ExternArgument, types []dtype.DataType, dimensionality int) error {
	if f.HasPureDefinition() || f.HasUpdateDefinition() {
		return f.errf(fmterr.Structuralf("a function with a pure definition cannot have an extern definition"))
	}
	if f.HasExternDefinition() {
		return f.errf(fmterr.Structuralf("function already has an extern definition"))
	}
	if entryPoint == "" {
		return f.errf(fmterr.Structuralf("an extern definition needs an entry point name"))
	}
	if dimensionality < 0 {
		return f.errf(fmterr.Structuralf("extern definition has negative dimensionality %d", dimensionality))
	}

	f.externName = entryPoint
	f.externArgs = slices.Clone(args)
	f.outputTypes = slices.Clone(types)
	f.outputBuffers = make([]*ir.Parameter, len(types))
	for i, typ := range types {
		f.outputBuffers[i] = ir.NewParameter(typ, true, f.bufferName(i, len(types)))
	}

	f.args = make([]string, dimensionality)
	for i := range f.args {
		arg := uname.Default().Char('e')
		f.args[i] = arg
		f.schedule.StorageDims = append(f.schedule.StorageDims, arg)
	}
	return nil
}
