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

import "github.com/gx-org/backend/dtype"

// Parameter is a named placeholder for a value bound at run time:
// either a scalar argument or an externally visible buffer. The
// definition layer creates one buffer parameter per output tuple
// element; scalar parameters are created by the caller and attached to
// variables.
type Parameter struct {
	name   string
	typ    dtype.DataType
	buffer bool
}

// NewParameter returns a parameter given its element type, whether it
// names a buffer, and its name.
func NewParameter(typ dtype.DataType, buffer bool, name string) *Parameter {
	return &Parameter{name: name, typ: typ, buffer: buffer}
}

// Name of the parameter.
func (p *Parameter) Name() string { return p.name }

// Type returns the element type of the parameter.
func (p *Parameter) Type() dtype.DataType { return p.typ }

// IsBuffer returns true if the parameter names a buffer rather than a
// scalar.
func (p *Parameter) IsBuffer() bool { return p.buffer }

// Var returns a scalar variable expression bound to the parameter.
func (p *Parameter) Var() *Variable {
	return &Variable{
		VarName: p.name,
		Typ:     p.typ,
		Param:   p,
	}
}
