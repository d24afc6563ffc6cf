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

// Package fmterr classifies and formats the errors of the definition
// layer, and provides the reporting interface for non-fatal
// diagnostics.
package fmterr

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// Severity of a diagnostic.
type Severity int

const (
	// Warning reports a suspicious but legal construction.
	Warning Severity = iota
	// Error reports a fault that invalidates a definition.
	Error
)

// String representation of the severity.
func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// Reporter receives diagnostics that do not stop construction.
type Reporter interface {
	Report(sev Severity, msg string)
}

// Error kinds. Every error returned by a define operation wraps exactly
// one of these, so callers can branch on the category with errors.Is.
var (
	// ErrStructural marks malformed inputs: undefined expressions,
	// empty or duplicate argument names, arity or type mismatches,
	// redefinitions.
	ErrStructural = stderrors.New("structural error")

	// ErrReferential marks variables or self-calls that do not resolve
	// to a legal binding.
	ErrReferential = stderrors.New("referential error")

	// ErrInvariant marks internal consistency violations. These
	// indicate a bug in the compiler, not in user code.
	ErrInvariant = stderrors.New("internal invariant violation")
)

// Structuralf returns a structural error.
func Structuralf(format string, a ...any) error {
	return errors.Wrapf(ErrStructural, format, a...)
}

// Referentialf returns a referential error.
func Referentialf(format string, a ...any) error {
	return errors.Wrapf(ErrReferential, format, a...)
}

// Internalf returns an invariant violation error, marked as a bug.
func Internalf(format string, a ...any) error {
	err := errors.Wrapf(ErrInvariant, format, a...)
	return fmt.Errorf("internal error. This is a bug in the compiler. Please report it. Error:\n%w", err)
}

// WithFunc annotates an error with the name of the function being
// defined and, when present, caller-supplied debug information.
func WithFunc(name, debugInfo string, err error) error {
	if err == nil {
		return nil
	}
	if debugInfo == "" {
		return fmt.Errorf("%w (Func: %s)", err, name)
	}
	return fmt.Errorf("%s: %w (Func: %s)", debugInfo, err, name)
}
