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

import "fmt"

// ForKind is the iteration strategy of one loop dimension.
type ForKind int

const (
	// Serial iterates the dimension sequentially. Every dimension
	// starts Serial; later scheduling stages refine it.
	Serial ForKind = iota
	// Parallel distributes the dimension across threads.
	Parallel
	// Vectorized maps the dimension onto vector lanes.
	Vectorized
	// Unrolled unrolls the dimension.
	Unrolled
)

// String representation of the iteration strategy.
func (k ForKind) String() string {
	switch k {
	case Serial:
		return "Serial"
	case Parallel:
		return "Parallel"
	case Vectorized:
		return "Vectorized"
	case Unrolled:
		return "Unrolled"
	default:
		return fmt.Sprintf("ForKind(%d)", int(k))
	}
}

// Dim is one loop dimension of a schedule: a named axis and its
// iteration strategy.
type Dim struct {
	Var  string
	Kind ForKind
}

// Schedule holds the loop nest and storage order of one definition.
// The definition layer seeds it with one Serial dimension per axis;
// every later transformation is out of scope here.
type Schedule struct {
	// Dims is the loop nest. A pure definition lists its axes in
	// declaration order; an update definition lists its domain axes
	// before the surviving pure axes, so domain iteration is always
	// coarser grained.
	Dims []Dim

	// StorageDims is the in-memory layout order of the axes.
	StorageDims []string
}
