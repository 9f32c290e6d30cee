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

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

// turn 与服务端 history 元素一致
type turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Message string `json:"message"`
	History []turn `json:"history"`
}

type chatReply struct {
	Message           string   `json:"message"`
	Model             string   `json:"model"`
	AgentCapabilities []string `json:"agent_capabilities,omitempty"`
}

// apiError 两个部署的错误体分别使用 detail 与 error 字段
type apiError struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (e apiError) message() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Error
}

func apiBaseURL() string {
	if u := os.Getenv("SALON_API_URL"); u != "" {
		return u
	}
	return "http://localhost:5002"
}

func newClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(5 * time.Minute).
		SetHeader("Content-Type", "application/json")
}

func getHealth(c *resty.Client) (map[string]interface{}, error) {
	var out map[string]interface{}
	resp, err := c.R().
		SetResult(&out).
		Get("/api/health")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("GET /api/health: %s", resp.String())
	}
	return out, nil
}

func postChat(c *resty.Client, message string, history []turn) (*chatReply, error) {
	var out chatReply
	var apiErr apiError
	resp, err := c.R().
		SetBody(chatRequest{Message: message, History: history}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/api/ai/chat")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		if msg := apiErr.message(); msg != "" {
			return nil, fmt.Errorf("POST /api/ai/chat: %d %s", resp.StatusCode(), msg)
		}
		return nil, fmt.Errorf("POST /api/ai/chat: %d %s", resp.StatusCode(), resp.String())
	}
	return &out, nil
}
