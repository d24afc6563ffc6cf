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

// Package uname provides unique names.
package uname

import (
	"fmt"
	"sync"
)

// Unique generates unique names.
type Unique struct {
	mu    sync.Mutex
	names map[string]int
}

// New name generator.
func New() *Unique {
	return &Unique{names: make(map[string]int)}
}

// Name returns a unique name given a desired base name.
// If the base name is available, it is returned directly. Else, a unique suffix is appended.
func (n *Unique) Name(root string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	nextIndex, ok := n.names[root]
	if !ok {
		n.names[root] = 1
		return root
	}
	name := fmt.Sprintf("%s%d", root, nextIndex)
	n.names[root] = nextIndex + 1
	return name
}

// Char returns a fresh name in the category identified by a single
// character, e.g. Char('f') yields f0, f1, f2, ...
// The bare category character is never returned.
func (n *Unique) Char(category byte) string {
	root := string(category)
	n.mu.Lock()
	defer n.mu.Unlock()
	nextIndex := n.names[root]
	n.names[root] = nextIndex + 1
	return fmt.Sprintf("%s%d", root, nextIndex)
}

var def = New()

// Default returns the process-wide name generator.
func Default() *Unique {
	return def
}
