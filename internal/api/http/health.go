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
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/go-resty/resty/v2"
)

// ModelProbe 探测模型服务是否可达
type ModelProbe interface {
	Probe(ctx context.Context) error
}

// OllamaProbe 通过 GET <base_url>/api/tags 探测 Ollama
type OllamaProbe struct {
	client *resty.Client
}

// NewOllamaProbe 创建探测器；baseURL 如 http://localhost:11434
func NewOllamaProbe(baseURL string, timeout time.Duration) *OllamaProbe {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &OllamaProbe{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
	}
}

// Probe 实现 ModelProbe
func (p *OllamaProbe) Probe(ctx context.Context) error {
	resp, err := p.client.R().SetContext(ctx).Get("/api/tags")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return fmt.Errorf("model server returned %s", resp.Status())
	}
	return nil
}

// Health 服务与模型服务状态；模型服务不可达时为 degraded，始终返回 200
// GET /api/health
func (h *ChatHandler) Health(c context.Context, ctx *app.RequestContext) {
	body := map[string]string{
		"status":       "ok",
		"model":        h.model,
		"model_server": "unchecked",
	}
	if h.probe != nil {
		if err := h.probe.Probe(c); err != nil {
			body["status"] = "degraded"
			body["model_server"] = "unreachable"
			body["error"] = err.Error()
		} else {
			body["model_server"] = "reachable"
		}
	}
	ctx.JSON(consts.StatusOK, body)
}
