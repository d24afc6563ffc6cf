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

package random_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/gx-org/backend/dtype"

	"github.com/syoummer/Halide/build/ir"
	"github.com/syoummer/Halide/build/ir/irhelper"
	"github.com/syoummer/Halide/build/random"
)

func TestSessionTags(t *testing.T) {
	s := random.NewSession()
	for want := int64(0); want < 5; want++ {
		if got := s.NextTag(); got != want {
			t.Errorf("got tag %d but want %d", got, want)
		}
	}
}

func TestLowerTagsRandomCall(t *testing.T) {
	r := irhelper.Intrinsic(random.Float, dtype.Float32)
	got := random.Lower(r, []string{"x", "y"}, 7)
	call, ok := got.(*ir.Call)
	if !ok || call.CallType != ir.CallIntrinsic || call.FuncName != random.Float {
		t.Fatalf("got %s, want a %s intrinsic call", got, random.Float)
	}
	if call.Type() != dtype.Float32 {
		t.Errorf("lowering changed the call type to %s", call.Type().String())
	}
	var args []string
	for _, arg := range call.Args {
		args = append(args, arg.String())
	}
	want := []string{"x", "y", "7"}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Errorf("unexpected tagged arguments (-want +got):\n%s", diff)
	}
}

func TestLowerRewritesUnderOperators(t *testing.T) {
	r := irhelper.Intrinsic(random.Int, dtype.Int64)
	e := irhelper.Add(irhelper.Var("x"), r)
	got := random.Lower(e, []string{"x"}, 3)
	bin, ok := got.(*ir.Binary)
	if !ok {
		t.Fatalf("got %s, want a binary operation", got)
	}
	if bin.X != ir.Expr(e.X) {
		t.Errorf("untouched operand was rebuilt")
	}
	call, ok := bin.Y.(*ir.Call)
	if !ok || len(call.Args) != 2 {
		t.Fatalf("random call was not tagged: %s", bin.Y)
	}
}

func TestLowerWithoutRandomIsIdentity(t *testing.T) {
	e := irhelper.Add(irhelper.Var("x"), irhelper.Int(1))
	if got := random.Lower(e, []string{"x"}, 1); got != ir.Expr(e) {
		t.Errorf("expression without random calls was rebuilt: got %s", got)
	}
}

func TestLowerPreservesSharing(t *testing.T) {
	r := irhelper.Intrinsic(random.Float, dtype.Float32)
	shared := irhelper.Add(r, irhelper.Float(1))
	e := irhelper.Mul(shared, shared)
	got, ok := random.Lower(e, nil, 0).(*ir.Binary)
	if !ok {
		t.Fatalf("lowering did not return a binary operation")
	}
	if got.X != got.Y {
		t.Errorf("lowering broke the sharing of %s", shared)
	}
}
