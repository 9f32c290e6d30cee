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

package api

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/devops"

	"salon-agent/internal/api/http"
	"salon-agent/internal/api/http/middleware"
	"salon-agent/internal/app"
	"salon-agent/internal/catalog"
	"salon-agent/internal/runtime/eino"
	"salon-agent/internal/tool/registry"
	"salon-agent/internal/tool/salon"
	"salon-agent/pkg/config"
)

const probeTimeout = 3 * time.Second

// NewApp 创建主部署应用：完整目录、五个查询工具（由 cmd/api 调用）
func NewApp(bootstrap *app.Bootstrap) (*App, error) {
	ctx := context.Background()
	cat, err := app.LoadCatalog()
	if err != nil {
		return nil, err
	}
	reg := registry.New()
	if err := salon.Register(reg, cat); err != nil {
		return nil, fmt.Errorf("注册工具失败: %w", err)
	}
	reasoner, spec, err := bootstrap.NewReasoner(ctx, eino.RenderInstruction(eino.PromptTemplate, reg), reg)
	if err != nil {
		return nil, err
	}

	var probe http.ModelProbe
	if spec.Provider == config.DefaultModelProvider && spec.BaseURL != "" {
		probe = http.NewOllamaProbe(spec.BaseURL, probeTimeout)
	}
	handler := http.NewChatHandler(reasoner, spec.Name, probe)
	router := http.NewRouter(handler, middleware.NewMiddleware(bootstrap.Config.API.CORS))
	router.SetMetricsEnabled(bootstrap.Config.Monitoring.Prometheus.Enable)

	return &App{
		config:     bootstrap,
		deployment: http.DeploymentPrimary,
		router:     router,
		probe:      probe,
	}, nil
}

// NewDebugApp 创建调试部署应用：单门店目录、单个 find_salons 工具、最小指令（由 cmd/debug 调用）
func NewDebugApp(bootstrap *app.Bootstrap) (*App, error) {
	ctx := context.Background()
	// Eino Dev 调试服务须在 Agent 编译前初始化
	if bootstrap.Config.Agent.Devops {
		if err := devops.Init(ctx); err != nil {
			return nil, fmt.Errorf("[eino dev] init failed: %w", err)
		}
		bootstrap.Logger.Info("Eino Dev 调试服务已启动")
	}

	reg := registry.New()
	if err := salon.RegisterDebug(reg, catalog.Minimal()); err != nil {
		return nil, fmt.Errorf("注册工具失败: %w", err)
	}
	reasoner, spec, err := bootstrap.NewReasoner(ctx, eino.DebugInstruction, reg)
	if err != nil {
		return nil, err
	}

	handler := http.NewDebugChatHandler(reasoner, spec.Name)
	router := http.NewDebugRouter(handler, middleware.NewMiddleware(bootstrap.Config.API.CORS))
	router.SetMetricsEnabled(bootstrap.Config.Monitoring.Prometheus.Enable)

	return &App{
		config:     bootstrap,
		deployment: http.DeploymentDebug,
		router:     router,
	}, nil
}
