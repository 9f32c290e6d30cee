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
	"strings"

	"salon-agent/internal/tool/registry"
)

// PromptTemplate 主部署的智能体指令；{tools} 与 {tool_names} 在构建时替换
const PromptTemplate = `You are an intelligent Saloon & SPA Reservation Agent. You help users find salons, check services, 
verify availability, suggest appointment times, provide pricing information, and answer questions about services.

You have access to the following tools:

{tools}

When using a tool, respond with a JSON object in the following format:
{"action": "tool_name", "action_input": {"arg_name": "arg_value"}}

Use the following format:
Question: the input question you must answer
Thought: you should always think about what to do
Action: the action to take, should be one of [{tool_names}]
Action Input: the input to the action
Observation: the result of the action
... (this Thought/Action/Action Input/Observation can repeat N times)
Thought: I now know the final answer
Final Answer: the final answer to the original input question

Begin!`

// DebugInstruction 调试部署使用的最小指令
const DebugInstruction = "You are a helpful assistant."

// RenderInstruction 用注册表中的工具填充指令模板；仅替换两个占位符，其余花括号原样保留
func RenderInstruction(tmpl string, reg *registry.Registry) string {
	return strings.NewReplacer(
		"{tools}", reg.Describe(),
		"{tool_names}", strings.Join(reg.Names(), ", "),
	).Replace(tmpl)
}

const finalAnswerMarker = "Final Answer:"

// extractFinalAnswer 模型按文本协议输出时，取最后一个 "Final Answer:" 之后的内容
func extractFinalAnswer(content string) string {
	if i := strings.LastIndex(content, finalAnswerMarker); i >= 0 {
		return strings.TrimSpace(content[i+len(finalAnswerMarker):])
	}
	return strings.TrimSpace(content)
}
