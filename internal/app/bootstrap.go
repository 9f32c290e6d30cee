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

package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"salon-agent/internal/catalog"
	"salon-agent/internal/runtime/eino"
	"salon-agent/internal/tool/registry"
	"salon-agent/pkg/config"
	"salon-agent/pkg/log"
	"salon-agent/pkg/secrets"
)

// Bootstrap 统一初始化：供主部署与调试部署复用
type Bootstrap struct {
	Config *config.Config
	Logger *log.Logger
}

// NewBootstrap 根据配置创建 Bootstrap（日志）
func NewBootstrap(cfg *config.Config) (*Bootstrap, error) {
	logCfg := &log.Config{}
	if cfg != nil {
		logCfg.Level = cfg.Log.Level
		logCfg.Format = cfg.Log.Format
		logCfg.File = cfg.Log.File
	}
	logger, err := log.NewLogger(logCfg)
	if err != nil {
		return nil, fmt.Errorf("初始化日志failed: %w", err)
	}
	slog.SetDefault(logger.Logger)

	if cfg == nil {
		cfg = &config.Config{}
		cfg.ApplyDefaults(0)
	}
	return &Bootstrap{
		Config: cfg,
		Logger: logger,
	}, nil
}

// NewReasoner 用默认模型与给定工具集构建推理器
func (b *Bootstrap) NewReasoner(ctx context.Context, instruction string, reg *registry.Registry) (*eino.ADKReasoner, config.ModelSpec, error) {
	spec, err := b.Config.DefaultLLM()
	if err != nil {
		return nil, spec, fmt.Errorf("解析默认模型failed: %w", err)
	}
	if spec.APIKey, err = b.resolveSecret(ctx, spec.APIKey); err != nil {
		return nil, spec, fmt.Errorf("解析模型 api_key failed: %w", err)
	}
	cm, err := eino.NewChatModel(ctx, spec)
	if err != nil {
		return nil, spec, err
	}
	reasoner, err := eino.NewADKReasoner(ctx, eino.ReasonerConfig{
		Name:          b.Config.Agent.Name,
		Instruction:   instruction,
		Model:         cm,
		Tools:         reg,
		MaxIterations: b.Config.Agent.MaxIterations,
		Verbose:       b.Config.Agent.Verbose,
		Logger:        b.Logger,
	})
	if err != nil {
		return nil, spec, err
	}
	b.Logger.Info("Agent 初始化成功",
		"agent", b.Config.Agent.Name,
		"model", spec.Name,
		"base_url", spec.BaseURL,
		"tools", reg.Names(),
	)
	return reasoner, spec, nil
}

// resolveSecret 解析 vault: 引用；仅在需要时创建 Vault 客户端
func (b *Bootstrap) resolveSecret(ctx context.Context, ref string) (string, error) {
	if !secrets.IsReference(ref) {
		return ref, nil
	}
	var store secrets.Store
	if strings.HasPrefix(ref, "vault:") {
		vs, err := secrets.NewVaultStore(b.Config.Secrets.Vault)
		if err != nil {
			return "", err
		}
		store = vs
	}
	return secrets.NewResolver(store).Resolve(ctx, ref)
}

// LoadCatalog 主部署目录
func LoadCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.Default()
	if err != nil {
		return nil, fmt.Errorf("加载门店目录failed: %w", err)
	}
	return cat, nil
}
