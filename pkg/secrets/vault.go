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

package secrets

import (
	"context"
	"fmt"
	"strings"

	vault "github.com/hashicorp/vault/api"
)

// VaultConfig Vault 配置；Address/Token 为空时沿用 VAULT_ADDR / VAULT_TOKEN
type VaultConfig struct {
	Address    string `mapstructure:"address"`
	Token      string `mapstructure:"token"`
	PathPrefix string `mapstructure:"path_prefix"` // 如 "secret"
}

type vaultStore struct {
	client     *vault.Client
	pathPrefix string
}

// NewVaultStore 创建 Vault 读取端；不在创建时连接
func NewVaultStore(config VaultConfig) (Store, error) {
	cfg := vault.DefaultConfig()
	if config.Address != "" {
		cfg.Address = config.Address
	}
	client, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}
	if config.Token != "" {
		client.SetToken(config.Token)
	}
	return &vaultStore{
		client:     client,
		pathPrefix: strings.Trim(config.PathPrefix, "/"),
	}, nil
}

// Get key 形如 "secret/data/salon#api_key"；未指定字段时取 "value"，再退回第一个字符串值
func (v *vaultStore) Get(ctx context.Context, key string) (string, error) {
	path, field, _ := strings.Cut(key, "#")
	secret, err := v.client.Logical().ReadWithContext(ctx, v.buildPath(path))
	if err != nil {
		return "", fmt.Errorf("failed to read secret from vault: %w", err)
	}
	if secret == nil || secret.Data == nil {
		return "", fmt.Errorf("secret not found: %s", path)
	}

	data := secret.Data
	// KV v2 将实际数据放在 data.data 下
	if nested, ok := data["data"].(map[string]interface{}); ok {
		data = nested
	}
	if field == "" {
		field = "value"
	}
	if val, ok := data[field].(string); ok {
		return val, nil
	}
	if field == "value" {
		for _, val := range data {
			if str, ok := val.(string); ok {
				return str, nil
			}
		}
	}
	return "", fmt.Errorf("secret field %q not found: %s", field, path)
}

func (v *vaultStore) buildPath(path string) string {
	path = strings.Trim(path, "/")
	if v.pathPrefix == "" || strings.HasPrefix(path, v.pathPrefix+"/") {
		return path
	}
	return v.pathPrefix + "/" + path
}
