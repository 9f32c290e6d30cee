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

// Package secrets 解析配置中的密钥引用：${VAR} 取环境变量，vault:<path>[#field] 读 Vault
package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"
)

const vaultScheme = "vault:"

// Store secret 读取接口
type Store interface {
	Get(ctx context.Context, key string) (string, error)
}

// IsReference 是否为需要解析的引用（而非明文）
func IsReference(v string) bool {
	return strings.HasPrefix(v, vaultScheme) || (strings.HasPrefix(v, "${") && strings.HasSuffix(v, "}"))
}

// Resolver 按引用类型分派到环境变量或 Vault
type Resolver struct {
	vault Store
}

// NewResolver vault 可为 nil，此时 vault: 引用解析失败
func NewResolver(vault Store) *Resolver {
	return &Resolver{vault: vault}
}

// Resolve 解析 ref；明文原样返回
func (r *Resolver) Resolve(ctx context.Context, ref string) (string, error) {
	switch {
	case strings.HasPrefix(ref, vaultScheme):
		if r.vault == nil {
			return "", fmt.Errorf("secret %q references vault but vault is not configured", ref)
		}
		return r.vault.Get(ctx, strings.TrimPrefix(ref, vaultScheme))
	case strings.HasPrefix(ref, "${") && strings.HasSuffix(ref, "}"):
		return os.Getenv(strings.TrimSuffix(strings.TrimPrefix(ref, "${"), "}")), nil
	default:
		return ref, nil
	}
}
