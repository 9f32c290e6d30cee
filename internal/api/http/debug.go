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
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"salon-agent/internal/api/http/middleware"
	"salon-agent/internal/runtime/eino"
	"salon-agent/pkg/metrics"
)

// DebugChatHandler 调试部署处理器：assistant 历史按系统消息重放，错误详情原样返回
type DebugChatHandler struct {
	reasoner eino.Reasoner
	model    string
}

// NewDebugChatHandler 创建调试部署处理器
func NewDebugChatHandler(reasoner eino.Reasoner, model string) *DebugChatHandler {
	return &DebugChatHandler{reasoner: reasoner, model: model}
}

// Chat 调试部署聊天
// POST /api/ai/chat
func (h *DebugChatHandler) Chat(c context.Context, ctx *app.RequestContext) {
	var req ChatRequest
	if err := ctx.BindJSON(&req); err != nil || req.Message == "" {
		metrics.ChatRequestsTotal.WithLabelValues(DeploymentDebug, "invalid").Inc()
		ctx.JSON(consts.StatusBadRequest, map[string]string{"error": "Message is required"})
		return
	}

	answer, err := runChat(c, h.reasoner, DeploymentDebug, req.Message, eino.AssistantAsSystem(req.History))
	if err != nil {
		hlog.CtxErrorf(c, "debug chat failed request_id=%s: %v", middleware.GetRequestID(ctx), err)
		ctx.JSON(consts.StatusInternalServerError, map[string]string{
			"error": "Error processing AI request: " + err.Error(),
		})
		return
	}
	ctx.JSON(consts.StatusOK, ChatResponse{Message: answer, Model: h.model})
}
