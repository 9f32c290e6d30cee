// Copyright 2026 fanjia1024
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

package errors

import (
	"errors"
	"testing"
)

func TestWrap(t *testing.T) {
	if Wrap(nil, "msg") != nil {
		t.Error("Wrap(nil, msg) should return nil")
	}
	err := errors.New("base")
	wrapped := Wrap(err, "context")
	if wrapped == nil {
		t.Fatal("Wrap(err, msg) should not return nil")
	}
	if !errors.Is(wrapped, err) {
		t.Error("wrapped error should unwrap to base")
	}
	if wrapped.Error() != "context: base" {
		t.Errorf("Wrap message: got %q", wrapped.Error())
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "format %s", "x") != nil {
		t.Error("Wrapf(nil, ...) should return nil")
	}
	err := errors.New("base")
	wrapped := Wrapf(err, "store_id=%d", 7)
	if wrapped == nil {
		t.Fatal("Wrapf(err, ...) should not return nil")
	}
	if !Is(wrapped, err) {
		t.Error("wrapped error should unwrap to base")
	}
	if wrapped.Error() != "store_id=7: base" {
		t.Errorf("Wrapf message: got %q", wrapped.Error())
	}
}

func TestSentinels(t *testing.T) {
	domain := Wrap(ErrNotFound, "store 9")
	if !Is(domain, ErrNotFound) {
		t.Error("wrapped ErrNotFound should match ErrNotFound")
	}
	if Is(domain, ErrInvalidArg) {
		t.Error("wrapped ErrNotFound should not match ErrInvalidArg")
	}
	if Is(ErrUnavailable, ErrNotFound) {
		t.Error("ErrUnavailable should not match ErrNotFound")
	}
}
