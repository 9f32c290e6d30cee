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
	"github.com/cloudwego/eino/schema"
)

// 对话角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn 客户端携带的一条历史消息
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// UserTurnsOnly 主部署的历史映射：只保留 user 轮次，其余角色（含 assistant）丢弃
func UserTurnsOnly(turns []Turn) []*schema.Message {
	out := make([]*schema.Message, 0, len(turns))
	for _, t := range turns {
		if t.Role == RoleUser {
			out = append(out, schema.UserMessage(t.Content))
		}
	}
	return out
}

// AssistantAsSystem 调试部署的历史映射：user 为用户消息，assistant 作为系统消息重放
func AssistantAsSystem(turns []Turn) []*schema.Message {
	out := make([]*schema.Message, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case RoleUser:
			out = append(out, schema.UserMessage(t.Content))
		case RoleAssistant:
			out = append(out, schema.SystemMessage(t.Content))
		}
	}
	return out
}
