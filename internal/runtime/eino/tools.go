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
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	einotool "github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"salon-agent/internal/tool"
	"salon-agent/pkg/errors"
	"salon-agent/pkg/metrics"
	"salon-agent/pkg/tracing"
)

// 工具调用结果标签
const (
	toolResultOK       = "ok"
	toolResultNotFound = "not_found"
	toolResultError    = "error"
)

// bridgedTool 将 tool.Tool 适配为 eino InvokableTool
type bridgedTool struct {
	t    tool.Tool
	info *schema.ToolInfo
}

// BridgeTools 将工具适配为 eino 工具；ToolInfo 由工具 Schema 推导
func BridgeTools(tools []tool.Tool) []einotool.BaseTool {
	out := make([]einotool.BaseTool, 0, len(tools))
	for _, t := range tools {
		out = append(out, bridge(t))
	}
	return out
}

func bridge(t tool.Tool) *bridgedTool {
	return &bridgedTool{t: t, info: toolInfo(t)}
}

func toolInfo(t tool.Tool) *schema.ToolInfo {
	s := t.Schema()
	required := make(map[string]bool, len(s.Required))
	for _, r := range s.Required {
		required[r] = true
	}
	params := make(map[string]*schema.ParameterInfo, len(s.Properties))
	for name, p := range s.Properties {
		params[name] = &schema.ParameterInfo{
			Type:     dataType(p.Type),
			Desc:     p.Description,
			Required: required[name],
		}
	}
	return &schema.ToolInfo{
		Name:        t.Name(),
		Desc:        t.Description(),
		ParamsOneOf: schema.NewParamsOneOfByParams(params),
	}
}

func dataType(t string) schema.DataType {
	switch t {
	case "integer":
		return schema.Integer
	case "number":
		return schema.Number
	case "boolean":
		return schema.Boolean
	case "object":
		return schema.Object
	case "array":
		return schema.Array
	default:
		return schema.String
	}
}

// Info 实现 einotool.BaseTool
func (b *bridgedTool) Info(ctx context.Context) (*schema.ToolInfo, error) {
	return b.info, nil
}

// InvokableRun 实现 einotool.InvokableTool；领域失败渲染为 {"error": ...} 观察结果
func (b *bridgedTool) InvokableRun(ctx context.Context, argumentsInJSON string, _ ...einotool.Option) (string, error) {
	name := b.t.Name()
	ctx, span := tracing.StartToolSpan(ctx, name)
	start := time.Now()

	out, label, err := b.invoke(ctx, argumentsInJSON)

	metrics.ToolDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	metrics.ToolCallsTotal.WithLabelValues(name, label).Inc()
	tracing.EndSpan(span, err)
	if err != nil {
		slog.ErrorContext(ctx, "工具调用失败", "tool", name, "error", err)
	}
	return out, err
}

func (b *bridgedTool) invoke(ctx context.Context, argumentsInJSON string) (string, string, error) {
	input, err := parseArguments(argumentsInJSON)
	if err != nil {
		return "", toolResultError, errors.Wrapf(err, "tool %q", b.t.Name())
	}
	res, err := b.t.Execute(ctx, input)
	if err != nil {
		return "", toolResultError, errors.Wrapf(err, "tool %q", b.t.Name())
	}
	if res.Failed() {
		obs, err := errorObservation(res.Err)
		return obs, toolResultNotFound, err
	}
	return res.Content, toolResultOK, nil
}

func parseArguments(argumentsInJSON string) (map[string]any, error) {
	raw := strings.TrimSpace(argumentsInJSON)
	if raw == "" {
		return map[string]any{}, nil
	}
	var input map[string]any
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		return nil, fmt.Errorf("%w: malformed arguments %q", errors.ErrInvalidArg, raw)
	}
	if input == nil {
		input = map[string]any{}
	}
	return input, nil
}

func errorObservation(msg string) (string, error) {
	b, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		return "", err
	}
	return string(b), nil
}
