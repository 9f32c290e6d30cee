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
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/config"

	"salon-agent/internal/api/http/middleware"
)

// Router 路由装配；primary 与 debug 二选一
type Router struct {
	primary    *ChatHandler
	debug      *DebugChatHandler
	middleware *middleware.Middleware
	metrics    bool
}

// NewRouter 主部署路由
func NewRouter(handler *ChatHandler, mw *middleware.Middleware) *Router {
	return &Router{primary: handler, middleware: mw, metrics: true}
}

// NewDebugRouter 调试部署路由
func NewDebugRouter(handler *DebugChatHandler, mw *middleware.Middleware) *Router {
	return &Router{debug: handler, middleware: mw, metrics: true}
}

// SetMetricsEnabled 是否暴露 /metrics
func (r *Router) SetMetricsEnabled(enable bool) {
	r.metrics = enable
}

// Build 创建 Hertz 实例并注册路由；opts 可追加 tracer 等 server 选项
func (r *Router) Build(addr string, opts ...config.Option) *server.Hertz {
	options := append([]config.Option{server.WithHostPorts(addr)}, opts...)
	h := server.Default(options...)

	if r.middleware != nil {
		h.Use(r.middleware.RequestID(), r.middleware.CORS(), r.middleware.AccessLog())
	}

	if r.primary != nil {
		h.GET("/", r.primary.Root)
		api := h.Group("/api")
		api.GET("/health", r.primary.Health)
		api.POST("/ai/chat", r.primary.Chat)
	}
	if r.debug != nil {
		h.POST("/api/ai/chat", r.debug.Chat)
	}
	if r.metrics {
		h.GET("/metrics", Metrics)
	}
	return h
}
