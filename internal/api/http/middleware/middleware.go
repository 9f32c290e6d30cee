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

// Package middleware Hertz 中间件：CORS、请求 ID、访问日志
package middleware

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/google/uuid"

	"salon-agent/pkg/config"
)

// HeaderRequestID 请求 ID 头
const HeaderRequestID = "X-Request-ID"

const requestIDKey = "request_id"

// Middleware 中间件管理器
type Middleware struct {
	cors config.CORSConfig
}

// NewMiddleware 创建中间件管理器
func NewMiddleware(cors config.CORSConfig) *Middleware {
	return &Middleware{cors: cors}
}

// CORS 跨域中间件；允许源包含 "*" 时回显请求的 Origin，以便与 credentials 共存
func (m *Middleware) CORS() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		if !m.cors.Enable {
			c.Next(ctx)
			return
		}
		origin := string(c.GetHeader("Origin"))
		if allowed := m.allowOrigin(origin); allowed != "" {
			c.Header("Access-Control-Allow-Origin", allowed)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Vary", "Origin")
		}
		if string(c.Method()) == consts.MethodOptions {
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			if reqHeaders := c.GetHeader("Access-Control-Request-Headers"); len(reqHeaders) > 0 {
				c.Header("Access-Control-Allow-Headers", string(reqHeaders))
			} else {
				c.Header("Access-Control-Allow-Headers", "*")
			}
			c.Header("Access-Control-Max-Age", "600")
			c.AbortWithStatus(consts.StatusNoContent)
			return
		}
		c.Next(ctx)
	}
}

func (m *Middleware) allowOrigin(origin string) string {
	for _, o := range m.cors.AllowOrigins {
		if o == "*" {
			if origin != "" {
				return origin
			}
			return "*"
		}
		if o == origin {
			return origin
		}
	}
	return ""
}

// RequestID 沿用客户端传入的 X-Request-ID，否则生成一个；写回响应头
func (m *Middleware) RequestID() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		id := string(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next(ctx)
	}
}

// GetRequestID 当前请求的 ID；未经过 RequestID 中间件时为空
func GetRequestID(c *app.RequestContext) string {
	return c.GetString(requestIDKey)
}

// AccessLog 请求结束后记录方法、路径、状态码与耗时
func (m *Middleware) AccessLog() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		start := time.Now()
		c.Next(ctx)
		hlog.CtxInfof(ctx, "access method=%s path=%s status=%d latency=%s request_id=%s",
			c.Method(), c.Path(), c.Response.StatusCode(), time.Since(start), GetRequestID(c))
	}
}
