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
	"encoding/json"
	"strings"
)

// 文本 ReAct 协议的行前缀
const (
	actionMarker      = "Action:"
	actionInputMarker = "Action Input:"
	observationMarker = "Observation:"
	thoughtMarker     = "Thought:"

	finalAnswerAction = "Final Answer"
)

// textAction 模型以文本协议（而非原生 tool call）请求的一次工具调用
type textAction struct {
	Tool    string
	Input   string
	Thought string
}

// actionBlob {"action": ..., "action_input": ...} 形式的 JSON 调用
type actionBlob struct {
	Action      string          `json:"action"`
	ActionInput json.RawMessage `json:"action_input"`
}

// requestsAction 回复中出现 Action 但没有 Final Answer，说明模型还在等待观察结果
func requestsAction(content string) bool {
	if strings.Contains(content, finalAnswerMarker) {
		return false
	}
	if strings.Contains(content, actionMarker) {
		return true
	}
	_, ok := parseActionBlob(content)
	return ok
}

// parseTextAction 解析 "Action: / Action Input:" 行或 JSON 调用对象；
// action 为 "Final Answer" 时第二个返回值是最终回答
func parseTextAction(content string) (textAction, string, bool) {
	thought := extractThought(content)
	if blob, ok := parseActionBlob(content); ok {
		input := normalizeInput(string(blob.ActionInput))
		if blob.Action == finalAnswerAction {
			return textAction{}, unquote(input), true
		}
		return textAction{Tool: blob.Action, Input: input, Thought: thought}, "", true
	}

	var (
		name    string
		input   []string
		inInput bool
	)
lines:
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, actionInputMarker):
			inInput = true
			input = append(input, strings.TrimPrefix(trimmed, actionInputMarker))
		case strings.HasPrefix(trimmed, actionMarker):
			if name != "" {
				break lines
			}
			inInput = false
			name = strings.TrimSpace(strings.TrimPrefix(trimmed, actionMarker))
		case strings.HasPrefix(trimmed, observationMarker):
			// 模型自行编造的 Observation 及其后内容忽略，只执行第一个 Action
			break lines
		case inInput:
			input = append(input, line)
		}
	}
	name = strings.Trim(name, "`\"' ")
	if name == "" {
		return textAction{}, "", false
	}
	raw := normalizeInput(strings.Join(input, "\n"))
	// Action Input 本身也可能是完整的 JSON 调用对象
	if blob, ok := parseActionBlob(raw); ok {
		name, raw = blob.Action, normalizeInput(string(blob.ActionInput))
	}
	if name == finalAnswerAction {
		return textAction{}, unquote(raw), true
	}
	return textAction{Tool: name, Input: raw, Thought: thought}, "", true
}

// parseActionBlob 在内容中查找 {"action": ...} 对象
func parseActionBlob(content string) (actionBlob, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return actionBlob{}, false
	}
	var blob actionBlob
	if err := json.Unmarshal([]byte(content[start:end+1]), &blob); err != nil {
		return actionBlob{}, false
	}
	if blob.Action == "" {
		return actionBlob{}, false
	}
	return blob, true
}

// normalizeInput 去掉代码围栏与空白
func normalizeInput(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func unquote(s string) string {
	var str string
	if err := json.Unmarshal([]byte(s), &str); err == nil {
		return str
	}
	return s
}

// extractThought Action 之前的推理文本
func extractThought(content string) string {
	if i := strings.Index(content, actionMarker); i >= 0 {
		content = content[:i]
	} else if i := strings.Index(content, "{"); i >= 0 {
		content = content[:i]
	}
	content = strings.TrimSpace(content)
	if i := strings.LastIndex(content, thoughtMarker); i >= 0 {
		content = content[i+len(thoughtMarker):]
	}
	return strings.TrimSpace(content)
}
