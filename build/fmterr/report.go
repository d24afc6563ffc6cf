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

package fmterr

import (
	"fmt"
	"io"
	"os"
)

type writerReporter struct {
	w io.Writer
}

// NewReporter returns a reporter writing diagnostics to w, one per
// line, prefixed with their severity.
func NewReporter(w io.Writer) Reporter {
	return writerReporter{w: w}
}

// Stderr returns the default reporter, writing to standard error.
func Stderr() Reporter {
	return writerReporter{w: os.Stderr}
}

// Report writes the diagnostic.
func (r writerReporter) Report(sev Severity, msg string) {
	fmt.Fprintf(r.w, "%s: %s\n", sev, msg)
}
