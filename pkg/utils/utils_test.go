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

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesceString(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{"empty slice", []string{}, ""},
		{"all blank", []string{"", "  ", "\t"}, ""},
		{"first non-empty", []string{"a", "", "c"}, "a"},
		{"skips blank", []string{" ", "b", "c"}, "b"},
		{"keeps inner spaces", []string{"", " x "}, " x "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CoalesceString(tt.in...))
		})
	}
}

func TestPositiveOr(t *testing.T) {
	tests := []struct {
		v, defaultVal, want int
	}{
		{0, 15, 15},
		{-3, 15, 15},
		{1, 15, 1},
		{40, 15, 40},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PositiveOr(tt.v, tt.defaultVal), "PositiveOr(%d, %d)", tt.v, tt.defaultVal)
	}
}
