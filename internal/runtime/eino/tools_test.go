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
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	einotool "github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"salon-agent/internal/tool"
	"salon-agent/pkg/errors"
	"salon-agent/pkg/metrics"
)

type stubTool struct {
	name  string
	exec  func(map[string]any) (tool.ToolResult, error)
	calls []map[string]any
}

func (s *stubTool) Name() string        { return s.name }
func (s *stubTool) Description() string { return s.name + " description" }
func (s *stubTool) Schema() tool.Schema {
	return tool.Schema{
		Type: "object",
		Properties: map[string]tool.SchemaProperty{
			"store_id": {Type: "integer", Description: "Store id"},
			"day":      {Type: "string"},
		},
		Required: []string{"store_id"},
	}
}
func (s *stubTool) Execute(_ context.Context, input map[string]any) (tool.ToolResult, error) {
	s.calls = append(s.calls, input)
	return s.exec(input)
}

func invokable(t *testing.T, st *stubTool) einotool.InvokableTool {
	t.Helper()
	tools := BridgeTools([]tool.Tool{st})
	require.Len(t, tools, 1)
	inv, ok := tools[0].(einotool.InvokableTool)
	require.True(t, ok)
	return inv
}

func TestBridge_Info(t *testing.T) {
	inv := invokable(t, &stubTool{name: "get_store_opening_hours"})
	info, err := inv.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "get_store_opening_hours", info.Name)
	assert.Equal(t, "get_store_opening_hours description", info.Desc)
	assert.NotNil(t, info.ParamsOneOf)
}

func TestBridge_Success(t *testing.T) {
	st := &stubTool{name: "bridge_ok", exec: func(map[string]any) (tool.ToolResult, error) {
		return tool.ToolResult{Content: `{"open":"09:00","close":"20:00"}`}, nil
	}}
	before := testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("bridge_ok", "ok"))

	out, err := invokable(t, st).InvokableRun(context.Background(), `{"store_id": 1, "day": "Monday"}`)
	require.NoError(t, err)
	assert.Equal(t, `{"open":"09:00","close":"20:00"}`, out)
	require.Len(t, st.calls, 1)
	assert.Equal(t, float64(1), st.calls[0]["store_id"])
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("bridge_ok", "ok")))
}

func TestBridge_DomainFailureBecomesObservation(t *testing.T) {
	st := &stubTool{name: "bridge_nf", exec: func(map[string]any) (tool.ToolResult, error) {
		return tool.ToolResult{Err: "Day not found in schedule"}, nil
	}}
	out, err := invokable(t, st).InvokableRun(context.Background(), `{"store_id": 1, "day": "Funday"}`)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Day not found in schedule"}`, out)
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("bridge_nf", "not_found")))
}

func TestBridge_EmptyArguments(t *testing.T) {
	st := &stubTool{name: "bridge_empty", exec: func(in map[string]any) (tool.ToolResult, error) {
		return tool.ToolResult{Content: "[]"}, nil
	}}
	_, err := invokable(t, st).InvokableRun(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, st.calls, 1)
	assert.NotNil(t, st.calls[0])
}

func TestBridge_MalformedArguments(t *testing.T) {
	st := &stubTool{name: "bridge_bad", exec: func(map[string]any) (tool.ToolResult, error) {
		return tool.ToolResult{}, nil
	}}
	_, err := invokable(t, st).InvokableRun(context.Background(), `{"store_id":`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidArg))
	assert.Empty(t, st.calls)
}

func TestBridge_InfrastructureError(t *testing.T) {
	st := &stubTool{name: "bridge_err", exec: func(map[string]any) (tool.ToolResult, error) {
		return tool.ToolResult{}, errors.New("boom")
	}}
	_, err := invokable(t, st).InvokableRun(context.Background(), `{}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ToolCallsTotal.WithLabelValues("bridge_err", "error")))
}

func TestDataType(t *testing.T) {
	assert.Equal(t, schema.Integer, dataType("integer"))
	assert.Equal(t, schema.String, dataType(""))
	assert.Equal(t, schema.Number, dataType("number"))
}
