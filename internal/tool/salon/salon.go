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

// Package salon 门店与服务查询工具：对 catalog 的只读查询包装为 tool.Tool
package salon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"salon-agent/internal/catalog"
	"salon-agent/internal/tool"
	"salon-agent/internal/tool/registry"
	"salon-agent/pkg/errors"
)

// 领域失败时返回给模型的固定文案
const (
	msgStoreNotFound = "Store not found"
	msgDayNotFound   = "Day not found in schedule"
)

// Register 注册主部署的五个查询工具（顺序即提示词中的顺序）
func Register(reg *registry.Registry, cat *catalog.Catalog) error {
	for _, t := range PrimaryTools(cat) {
		if err := reg.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// PrimaryTools 主部署的工具集
func PrimaryTools(cat *catalog.Catalog) []tool.Tool {
	return []tool.Tool{
		NewFindSalonsTool(cat),
		NewServicesByStoreTool(cat),
		NewServicesByNameTool(cat),
		NewStoreInfoTool(cat),
		NewOpeningHoursTool(cat),
	}
}

// RegisterDebug 注册调试部署唯一的 find_salons 工具
func RegisterDebug(reg *registry.Registry, cat *catalog.Catalog) error {
	return reg.Register(NewDebugFindSalonsTool(cat))
}

// jsonResult 观察结果按原文输出，"&" 等字符不做 HTML 转义
func jsonResult(v any) (tool.ToolResult, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return tool.ToolResult{}, errors.Wrap(err, "encode tool result")
	}
	return tool.ToolResult{Content: strings.TrimSuffix(buf.String(), "\n")}, nil
}

func failure(msg string) tool.ToolResult {
	return tool.ToolResult{Err: msg}
}

// lookupFailure 将 catalog 的哨兵错误映射为观察结果；其他错误原样上抛
func lookupFailure(err error) (tool.ToolResult, error) {
	switch {
	case errors.Is(err, catalog.ErrStoreNotFound):
		return failure(msgStoreNotFound), nil
	case errors.Is(err, catalog.ErrDayNotFound):
		return failure(msgDayNotFound), nil
	default:
		return tool.ToolResult{}, err
	}
}

// intArg 读取整数参数；模型可能传 1、1.0 或 "1"
func intArg(input map[string]any, key string) (int, error) {
	v, ok := input[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%s is required", key)
	}
	if _, isBool := v.(bool); isBool {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	if f, isFloat := v.(float64); isFloat && f != float64(int(f)) {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return n, nil
}

// stringArg 读取可选字符串参数；缺失时返回空串，不做裁剪
func stringArg(input map[string]any, key string) (string, error) {
	v, ok := input[key]
	if !ok || v == nil {
		return "", nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", fmt.Errorf("%s must be a string", key)
	}
	return s, nil
}
