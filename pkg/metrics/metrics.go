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

package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// 全局 Registry，供主部署与调试部署注册与暴露
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(
		ChatRequestsTotal, ChatDuration,
		ToolDuration, ToolCallsTotal,
		LLMTokensTotal, AgentSteps,
	)
}

// ChatRequestsTotal 聊天请求总数（按部署与结果）
var ChatRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "salon_chat_requests_total",
		Help: "聊天请求总数",
	},
	[]string{"deployment", "status"}, // status: ok | invalid | error
)

// ChatDuration 一次聊天请求中 Agent 推理耗时（秒）
var ChatDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "salon_chat_duration_seconds",
		Help:    "Agent 推理耗时（秒）",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
	},
	[]string{"deployment"},
)

// ToolDuration 工具调用耗时（秒）
var ToolDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "salon_tool_duration_seconds",
		Help:    "工具调用耗时（秒）",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"tool"},
)

// ToolCallsTotal 工具调用次数（按结果）
var ToolCallsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "salon_tool_calls_total",
		Help: "工具调用次数",
	},
	[]string{"tool", "result"}, // result: ok | not_found | error
)

// LLMTokensTotal LLM 调用 token 数
var LLMTokensTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "salon_llm_tokens_total",
		Help: "LLM 调用 token 总数",
	},
	[]string{"direction"}, // input | output
)

// AgentSteps 每次请求中 Agent 调用工具的步数
var AgentSteps = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "salon_agent_steps",
		Help:    "每次请求的工具调用步数",
		Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
	},
)

// WritePrometheus 将 Prometheus 文本格式写入 w（供 Hertz 等复用）
func WritePrometheus(w io.Writer) error {
	metrics, err := DefaultRegistry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range metrics {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
