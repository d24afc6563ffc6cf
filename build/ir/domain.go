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

// ReductionVariable is one named, bounded iteration variable of a
// reduction domain.
type ReductionVariable struct {
	Var         string
	Min, Extent Expr
}

// ReductionDomain enumerates the iteration variables an update
// definition ranges over. A domain is shared: any number of update
// definitions may reference the same domain, and two domains are the
// same only if they are the same object. No field changes once the
// domain has been built.
type ReductionDomain struct {
	vars []ReductionVariable
}

// NewReductionDomain returns a domain iterating over the given
// variables, in order.
func NewReductionDomain(vars ...ReductionVariable) *ReductionDomain {
	d := &ReductionDomain{vars: make([]ReductionVariable, len(vars))}
	copy(d.vars, vars)
	return d
}

// Domain returns the iteration variables, in declaration order.
func (d *ReductionDomain) Domain() []ReductionVariable {
	return d.vars
}

// Var returns a variable expression iterating the i-th dimension of
// the domain.
func (d *ReductionDomain) Var(i int) *Variable {
	return &Variable{
		VarName: d.vars[i].Var,
		Typ:     IndexType,
		Domain:  d,
	}
}

// SameAs returns true if other is the same domain object.
func (d *ReductionDomain) SameAs(other *ReductionDomain) bool {
	return d == other
}
