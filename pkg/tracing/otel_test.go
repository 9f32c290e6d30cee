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

package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	sr := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
	return sr
}

func TestStartToolSpan_EndWithError(t *testing.T) {
	sr := withRecorder(t)

	_, span := StartToolSpan(context.Background(), "get_store_info")
	EndSpan(span, errors.New("boom"))

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "tool.invoke", ended[0].Name())
	assert.Equal(t, codes.Error, ended[0].Status().Code)
}

func TestStartChatSpan_Attributes(t *testing.T) {
	sr := withRecorder(t)

	_, span := StartChatSpan(context.Background(), "primary", 3)
	EndSpan(span, nil)

	ended := sr.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "agent.chat", ended[0].Name())
	assert.NotEqual(t, codes.Error, ended[0].Status().Code)

	attrs := map[string]any{}
	for _, kv := range ended[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, "primary", attrs["deployment"])
	assert.Equal(t, int64(3), attrs["history.length"])
}
