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

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"salon-agent/pkg/secrets"
)

const (
	// DefaultModelProvider 默认 LLM provider（本地 Ollama）
	DefaultModelProvider = "ollama"
	// DefaultModelBaseURL Ollama 默认监听地址
	DefaultModelBaseURL = "http://localhost:11434"
	// DefaultModelName 对外返回的模型标识
	DefaultModelName = "qwen2.5:latest"
	// DefaultTemperature 采样温度
	DefaultTemperature = 0.7
	// DefaultMaxIterations Agent 单次请求最多的 think/act 轮数
	DefaultMaxIterations = 15

	// OllamaHostEnv 覆盖 Ollama base_url 的环境变量
	OllamaHostEnv = "OLLAMA_HOST"
)

// Config 应用配置结构体
type Config struct {
	API        APIConfig        `mapstructure:"api"`
	Agent      AgentConfig      `mapstructure:"agent"`
	Model      ModelConfig      `mapstructure:"model"`
	Log        LogConfig        `mapstructure:"log"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	Secrets    SecretsConfig    `mapstructure:"secrets"`
}

// SecretsConfig 密钥来源；api_key 写成 vault:<path>#<field> 时从 Vault 读取
type SecretsConfig struct {
	Vault secrets.VaultConfig `mapstructure:"vault"`
}

// APIConfig API 服务配置
type APIConfig struct {
	Port int        `mapstructure:"port"`
	Host string     `mapstructure:"host"`
	CORS CORSConfig `mapstructure:"cors"`
	GRPC GRPCConfig `mapstructure:"grpc"`
}

// GRPCConfig gRPC 健康检查服务（grpc.health.v1）
type GRPCConfig struct {
	Enable bool `mapstructure:"enable"`
	Port   int  `mapstructure:"port"`
}

// CORSConfig CORS 配置
type CORSConfig struct {
	Enable       bool     `mapstructure:"enable"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// AgentConfig Agent 相关配置
type AgentConfig struct {
	Name          string `mapstructure:"name"`
	MaxIterations int    `mapstructure:"max_iterations"` // <=0 使用默认 15
	Verbose       bool   `mapstructure:"verbose"`        // true 时逐步记录 Thought/Action/Observation
	Devops        bool   `mapstructure:"devops"`         // true 时启动 Eino Dev 调试服务（仅 debug 部署）
}

// ModelConfig 模型配置
type ModelConfig struct {
	LLM      LLMConfig      `mapstructure:"llm"`
	Defaults DefaultsConfig `mapstructure:"defaults"`
}

// LLMConfig LLM 模型配置
type LLMConfig struct {
	Providers map[string]ProviderConfig `mapstructure:"providers"`
}

// ProviderConfig 模型提供商配置
type ProviderConfig struct {
	APIKey  string               `mapstructure:"api_key"`
	BaseURL string               `mapstructure:"base_url"`
	Models  map[string]ModelInfo `mapstructure:"models"`
}

// ModelInfo 模型信息
type ModelInfo struct {
	Name        string  `mapstructure:"name"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// DefaultsConfig 默认模型配置，格式 provider.model_key
type DefaultsConfig struct {
	LLM string `mapstructure:"llm"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// MonitoringConfig 监控配置
type MonitoringConfig struct {
	Prometheus PrometheusConfig `mapstructure:"prometheus"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
}

// TracingConfig 链路追踪配置（OpenTelemetry）
type TracingConfig struct {
	Enable         bool   `mapstructure:"enable"`
	ServiceName    string `mapstructure:"service_name"`
	ExportEndpoint string `mapstructure:"export_endpoint"`
	Insecure       bool   `mapstructure:"insecure"`
	Protocol       string `mapstructure:"protocol"` // grpc（默认，hertz-contrib provider）| http（OTLP/HTTP）
}

// PrometheusConfig Prometheus 配置；Enable 为 true 时在 API 端口暴露 /metrics
type PrometheusConfig struct {
	Enable bool `mapstructure:"enable"`
}

// LoadConfig 加载配置文件
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("无法读取配置文件: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("无法解析配置文件: %w", err)
	}

	replaceEnvVars(&config)
	return &config, nil
}

// replaceEnvVars 替换配置中的环境变量（${VAR} 形式的 api_key；OLLAMA_HOST 覆盖 ollama base_url）
func replaceEnvVars(config *Config) {
	for provider, providerConfig := range config.Model.LLM.Providers {
		if strings.HasPrefix(providerConfig.APIKey, "$") {
			envVar := strings.TrimPrefix(strings.TrimSuffix(providerConfig.APIKey, "}"), "${")
			providerConfig.APIKey = os.Getenv(envVar)
		}
		if provider == DefaultModelProvider {
			if host := os.Getenv(OllamaHostEnv); host != "" {
				providerConfig.BaseURL = host
			}
		}
		config.Model.LLM.Providers[provider] = providerConfig
	}
}

// ApplyDefaults 补齐未配置的字段；未配置任何 provider 时使用本地 Ollama + qwen2.5:latest
func (c *Config) ApplyDefaults(defaultPort int) {
	if c.API.Port <= 0 {
		c.API.Port = defaultPort
	}
	if c.Agent.MaxIterations <= 0 {
		c.Agent.MaxIterations = DefaultMaxIterations
	}
	if c.Model.LLM.Providers == nil {
		c.Model.LLM.Providers = make(map[string]ProviderConfig)
	}
	if len(c.Model.LLM.Providers) == 0 {
		baseURL := DefaultModelBaseURL
		if host := os.Getenv(OllamaHostEnv); host != "" {
			baseURL = host
		}
		c.Model.LLM.Providers[DefaultModelProvider] = ProviderConfig{
			BaseURL: baseURL,
			Models: map[string]ModelInfo{
				"qwen": {Name: DefaultModelName, Temperature: DefaultTemperature},
			},
		}
		if c.Model.Defaults.LLM == "" {
			c.Model.Defaults.LLM = DefaultModelProvider + ".qwen"
		}
	}
}

// ModelSpec 解析后的默认 LLM 配置
type ModelSpec struct {
	Provider    string
	BaseURL     string
	APIKey      string
	Name        string
	Temperature float64
	MaxTokens   int
}

// DefaultLLM 根据 defaults.llm（provider.model_key）解析默认模型
func (c *Config) DefaultLLM() (ModelSpec, error) {
	if c.Model.Defaults.LLM == "" {
		return ModelSpec{}, fmt.Errorf("model.defaults.llm 未配置")
	}
	provider, modelKey, err := parseDefaultKey(c.Model.Defaults.LLM)
	if err != nil {
		return ModelSpec{}, err
	}
	pc, ok := c.Model.LLM.Providers[provider]
	if !ok {
		return ModelSpec{}, fmt.Errorf("LLM provider %q 未配置", provider)
	}
	mi, ok := pc.Models[modelKey]
	if !ok {
		return ModelSpec{}, fmt.Errorf("LLM model %q 未在 provider %q 中配置", modelKey, provider)
	}
	baseURL := pc.BaseURL
	if baseURL == "" && provider == DefaultModelProvider {
		baseURL = DefaultModelBaseURL
	}
	name := mi.Name
	if name == "" {
		name = DefaultModelName
	}
	return ModelSpec{
		Provider:    provider,
		BaseURL:     strings.TrimRight(baseURL, "/"),
		APIKey:      pc.APIKey,
		Name:        name,
		Temperature: mi.Temperature,
		MaxTokens:   mi.MaxTokens,
	}, nil
}

func parseDefaultKey(key string) (provider, modelKey string, err error) {
	parts := strings.SplitN(key, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("default key 格式应为 provider.model_key，如 ollama.qwen，当前: %q", key)
	}
	return parts[0], parts[1], nil
}

// loadWithModel 加载服务配置并合并同目录下的 model.yaml
func loadWithModel(configPath string, defaultPort int) (*Config, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	modelPath := "configs/model.yaml"
	if abs, errAbs := filepath.Abs(configPath); errAbs == nil {
		modelPath = filepath.Join(filepath.Dir(abs), "model.yaml")
	}
	modelCfg, err := LoadConfig(modelPath)
	if err == nil {
		cfg.Model = modelCfg.Model
	} else if len(cfg.Model.LLM.Providers) == 0 {
		log.Printf("[config] 未加载 model 配置 %q，使用默认 Ollama 模型: %v", modelPath, err)
	}
	cfg.ApplyDefaults(defaultPort)
	return cfg, nil
}

// LoadAPIConfigWithModel 加载主部署配置（configs/api.yaml + configs/model.yaml），默认端口 5002
func LoadAPIConfigWithModel() (*Config, error) {
	return loadWithModel("configs/api.yaml", 5002)
}

// LoadDebugConfigWithModel 加载调试部署配置（configs/debug.yaml + configs/model.yaml），默认端口 5003
func LoadDebugConfigWithModel() (*Config, error) {
	return loadWithModel("configs/debug.yaml", 5003)
}
