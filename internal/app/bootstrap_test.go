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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salon-agent/pkg/config"
	"salon-agent/pkg/secrets"
)

func TestNewBootstrap_NilConfig(t *testing.T) {
	b, err := NewBootstrap(nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultMaxIterations, b.Config.Agent.MaxIterations)
	spec, err := b.Config.DefaultLLM()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultModelName, spec.Name)
}

func TestResolveSecret(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/v1/secret/data/salon" {
			_, _ = w.Write([]byte(`{"data":{"data":{"api_key":"sk-from-vault"}}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := &config.Config{Secrets: config.SecretsConfig{Vault: secrets.VaultConfig{Address: srv.URL, Token: "t"}}}
	cfg.ApplyDefaults(5002)
	b, err := NewBootstrap(cfg)
	require.NoError(t, err)

	got, err := b.resolveSecret(context.Background(), "ollama")
	require.NoError(t, err)
	assert.Equal(t, "ollama", got)

	got, err = b.resolveSecret(context.Background(), "vault:secret/data/salon#api_key")
	require.NoError(t, err)
	assert.Equal(t, "sk-from-vault", got)

	t.Setenv("SALON_BOOTSTRAP_KEY", "sk-env")
	got, err = b.resolveSecret(context.Background(), "${SALON_BOOTSTRAP_KEY}")
	require.NoError(t, err)
	assert.Equal(t, "sk-env", got)
}

func TestLoadCatalog(t *testing.T) {
	cat, err := LoadCatalog()
	require.NoError(t, err)
	assert.Len(t, cat.Stores(), 3)
	assert.Len(t, cat.Services(), 8)
}
