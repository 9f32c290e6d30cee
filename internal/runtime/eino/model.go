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
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"salon-agent/pkg/config"
)

// ollamaPlaceholderKey Ollama 的 OpenAI 兼容接口不校验 key，但客户端要求非空
const ollamaPlaceholderKey = "ollama"

// NewChatModel 根据默认模型配置创建 ChatModel（Ollama 走 <base_url>/v1 的 OpenAI 兼容接口）
func NewChatModel(ctx context.Context, spec config.ModelSpec) (model.ToolCallingChatModel, error) {
	if spec.Name == "" {
		return nil, fmt.Errorf("model name is empty")
	}
	apiKey := spec.APIKey
	if apiKey == "" {
		apiKey = ollamaPlaceholderKey
	}
	cfg := &openai.ChatModelConfig{
		Model:   spec.Name,
		APIKey:  apiKey,
		BaseURL: openAICompatibleURL(spec),
	}
	if spec.Temperature > 0 {
		temp := float32(spec.Temperature)
		cfg.Temperature = &temp
	}
	if spec.MaxTokens > 0 {
		maxTokens := spec.MaxTokens
		cfg.MaxTokens = &maxTokens
	}
	cm, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("创建 ChatModel failed: %w", err)
	}
	return cm, nil
}

func openAICompatibleURL(spec config.ModelSpec) string {
	if spec.BaseURL == "" {
		return ""
	}
	if spec.Provider == config.DefaultModelProvider {
		return spec.BaseURL + "/v1"
	}
	return spec.BaseURL
}
