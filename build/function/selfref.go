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
	"github.com/syoummer/Halide/build/fmterr"
	"github.com/syoummer/Halide/build/ir"
)

// countSelfRefs returns the number of distinct call nodes in the given
// expressions that refer back to f. Identity, not occurrence: a shared
// call node reached through several parents counts once.
//
// A call node whose callee is f but whose recorded name disagrees with
// f means the graph was corrupted while it was built; that is a bug in
// the layer that produced it, not a user error.
func countSelfRefs(f *Func, exprs ...ir.Expr) (int, error) {
	calls := make(map[*ir.Call]bool)
	var err error
	for _, e := range exprs {
		ir.Visit(e, func(n ir.Expr) bool {
			c, ok := n.(*ir.Call)
			if !ok || c.Func != ir.Callee(f) {
				return true
			}
			if c.FuncName != f.name && err == nil {
				err = fmterr.Internalf("self-reference targets %s but is named %s", f.name, c.FuncName)
			}
			calls[c] = true
			return true
		})
	}
	return len(calls), err
}
