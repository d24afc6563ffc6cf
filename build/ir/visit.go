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

package ir

// Children returns the direct sub-expressions of a node in a
// deterministic order.
func Children(e Expr) []Expr {
	switch x := e.(type) {
	case *Cast:
		return []Expr{x.X}
	case *Binary:
		return []Expr{x.X, x.Y}
	case *Select:
		return []Expr{x.Cond, x.True, x.False}
	case *Let:
		return []Expr{x.Value, x.Body}
	case *Call:
		return x.Args
	default:
		return nil
	}
}

// Visit walks the graph depth-first in pre-order, visiting each
// distinct node exactly once. A node shared by several parents is
// visited the first time it is reached. Visit stops descending into a
// node when the callback returns false.
func Visit(root Expr, visit func(Expr) bool) {
	seen := make(map[Expr]bool)
	var walk func(Expr)
	walk = func(e Expr) {
		if e == nil || seen[e] {
			return
		}
		seen[e] = true
		if !visit(e) {
			return
		}
		for _, child := range Children(e) {
			walk(child)
		}
	}
	walk(root)
}
