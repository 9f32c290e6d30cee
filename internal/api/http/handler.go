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

package http

import (
	"bytes"
	"context"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/prometheus/common/expfmt"

	"salon-agent/internal/api/http/middleware"
	"salon-agent/internal/runtime/eino"
	"salon-agent/pkg/metrics"
	"salon-agent/pkg/tracing"
)

// 部署名（metrics/span 标签）
const (
	DeploymentPrimary = "primary"
	DeploymentDebug   = "debug"
)

const rootMessage = "Saloon & SPA AI Agent is running!"

// Capabilities 主部署在响应中展示的能力列表（仅为展示文案）
var Capabilities = []string{
	"Find nearby saloons",
	"Check service availability",
	"Provide pricing information",
	"Suggest appointment times",
	"Answer service questions",
	"Provide directions",
	"Explain policies",
	"Check real-time availability",
	"Handle booking requests",
}

// ChatRequest POST /api/ai/chat 请求体
type ChatRequest struct {
	Message string      `json:"message"`
	History []eino.Turn `json:"history"`
}

// ChatResponse 聊天响应；调试部署不返回 agent_capabilities
type ChatResponse struct {
	Message           string   `json:"message"`
	Model             string   `json:"model"`
	AgentCapabilities []string `json:"agent_capabilities,omitempty"`
}

// ChatHandler 主部署处理器
type ChatHandler struct {
	reasoner eino.Reasoner
	model    string
	probe    ModelProbe
}

// NewChatHandler 创建主部署处理器；probe 为 nil 时健康检查不探测模型服务
func NewChatHandler(reasoner eino.Reasoner, model string, probe ModelProbe) *ChatHandler {
	return &ChatHandler{reasoner: reasoner, model: model, probe: probe}
}

// Root 存活信息
// GET /
func (h *ChatHandler) Root(c context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, map[string]string{"message": rootMessage})
}

// Chat 主部署聊天
// POST /api/ai/chat
func (h *ChatHandler) Chat(c context.Context, ctx *app.RequestContext) {
	var req ChatRequest
	if err := ctx.BindJSON(&req); err != nil || req.Message == "" {
		metrics.ChatRequestsTotal.WithLabelValues(DeploymentPrimary, "invalid").Inc()
		ctx.JSON(consts.StatusBadRequest, map[string]string{"detail": "Message is required"})
		return
	}

	answer, err := runChat(c, h.reasoner, DeploymentPrimary, req.Message, eino.UserTurnsOnly(req.History))
	if err != nil {
		hlog.CtxErrorf(c, "chat failed request_id=%s: %v", middleware.GetRequestID(ctx), err)
		ctx.JSON(consts.StatusInternalServerError, map[string]string{"detail": "Error processing AI request"})
		return
	}
	ctx.JSON(consts.StatusOK, ChatResponse{
		Message:           answer,
		Model:             h.model,
		AgentCapabilities: Capabilities,
	})
}

// runChat 两个部署共用的推理调用：span、耗时与结果计数
func runChat(c context.Context, reasoner eino.Reasoner, deployment, message string, history []*schema.Message) (string, error) {
	c, span := tracing.StartChatSpan(c, deployment, len(history))
	start := time.Now()
	res, err := reasoner.Run(c, &eino.RunRequest{Input: message, History: history})
	metrics.ChatDuration.WithLabelValues(deployment).Observe(time.Since(start).Seconds())
	tracing.EndSpan(span, err)
	if err != nil {
		metrics.ChatRequestsTotal.WithLabelValues(deployment, "error").Inc()
		return "", err
	}
	metrics.ChatRequestsTotal.WithLabelValues(deployment, "ok").Inc()
	return res.Answer, nil
}

// Metrics Prometheus 文本格式指标
// GET /metrics
func Metrics(c context.Context, ctx *app.RequestContext) {
	var buf bytes.Buffer
	if err := metrics.WritePrometheus(&buf); err != nil {
		hlog.CtxErrorf(c, "write metrics: %v", err)
		ctx.String(consts.StatusInternalServerError, err.Error())
		return
	}
	ctx.Data(consts.StatusOK, string(expfmt.NewFormat(expfmt.TypeTextPlain)), buf.Bytes())
}
