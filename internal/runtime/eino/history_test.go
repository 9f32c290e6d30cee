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

package eino

import (
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var conversation = []Turn{
	{Role: RoleUser, Content: "Which salons are near Broadway?"},
	{Role: RoleAssistant, Content: "Relaxation Station is at 789 Broadway."},
	{Role: "tool", Content: "ignored"},
	{Role: RoleUser, Content: "What do they offer?"},
}

func TestUserTurnsOnly(t *testing.T) {
	got := UserTurnsOnly(conversation)
	require.Len(t, got, 2)
	for _, m := range got {
		assert.Equal(t, schema.User, m.Role)
	}
	assert.Equal(t, "Which salons are near Broadway?", got[0].Content)
	assert.Equal(t, "What do they offer?", got[1].Content)
}

func TestAssistantAsSystem(t *testing.T) {
	got := AssistantAsSystem(conversation)
	require.Len(t, got, 3)
	assert.Equal(t, schema.User, got[0].Role)
	assert.Equal(t, schema.System, got[1].Role)
	assert.Equal(t, "Relaxation Station is at 789 Broadway.", got[1].Content)
	assert.Equal(t, schema.User, got[2].Role)
}

func TestHistory_Empty(t *testing.T) {
	assert.Empty(t, UserTurnsOnly(nil))
	assert.Empty(t, AssistantAsSystem(nil))
}
