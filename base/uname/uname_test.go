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

package uname_test

import (
	"testing"

	"github.com/syoummer/Halide/base/uname"
)

func TestName(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{
			name: "a",
			want: "a",
		},
		{
			name: "a",
			want: "a1",
		},
		{
			name: "a",
			want: "a2",
		},
		{
			name: "b",
			want: "b",
		},
		{
			name: "b",
			want: "b1",
		},
	}
	unames := uname.New()
	for i, test := range tests {
		got := unames.Name(test.name)
		if got != test.want {
			t.Errorf("test %d: for name %s, got %s but want %s", i, test.name, got, test.want)
		}
	}
}

func TestChar(t *testing.T) {
	unames := uname.New()
	tests := []struct {
		category byte
		want     string
	}{
		{category: 'f', want: "f0"},
		{category: 'f', want: "f1"},
		{category: 'e', want: "e0"},
		{category: 'f', want: "f2"},
		{category: 'e', want: "e1"},
	}
	for i, test := range tests {
		got := unames.Char(test.category)
		if got != test.want {
			t.Errorf("test %d: for category %c, got %s but want %s", i, test.category, got, test.want)
		}
	}
}

func TestDefaultIsShared(t *testing.T) {
	first := uname.Default().Char('q')
	second := uname.Default().Char('q')
	if first == second {
		t.Errorf("Default generator returned %s twice", first)
	}
}
