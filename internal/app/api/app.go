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
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	hertzslog "github.com/hertz-contrib/logger/slog"
	"github.com/hertz-contrib/obs-opentelemetry/provider"
	hertztracing "github.com/hertz-contrib/obs-opentelemetry/tracing"
	"google.golang.org/grpc"

	apigrpc "salon-agent/internal/api/grpc"
	"salon-agent/internal/api/http"
	"salon-agent/internal/app"
	"salon-agent/pkg/log"
	"salon-agent/pkg/tracing"
	"salon-agent/pkg/utils"
)

// otelProviderShutdown 用于优雅关闭时关闭 OpenTelemetry provider
type otelProviderShutdown interface {
	Shutdown(ctx context.Context) error
}

// App HTTP 应用（主部署或调试部署）
type App struct {
	config       *app.Bootstrap
	deployment   string
	router       *http.Router
	hertz        *server.Hertz
	otelProvider otelProviderShutdown
	probe        http.ModelProbe
	grpcRun      *grpcRun
}

// grpcRun 运行中的 gRPC 健康检查服务
type grpcRun struct {
	srv    *grpc.Server
	health *apigrpc.Server
	lis    net.Listener
}

// Run 启动 HTTP 服务并阻塞，addr 如 ":5002"
func (a *App) Run(addr string) error {
	if err := a.prepare(addr); err != nil {
		return err
	}
	return a.hertz.Run()
}

// Serve 运行服务直到收到信号或服务异常退出（如端口被占用）；
// 收到信号时在 timeout 内优雅关闭，异常退出时释放已启动的资源并返回该错误
func (a *App) Serve(addr string, sig <-chan os.Signal, timeout time.Duration) error {
	if err := a.prepare(addr); err != nil {
		a.stopAuxiliary(context.Background())
		return err
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- a.hertz.Run()
	}()

	select {
	case err := <-errCh:
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		a.stopAuxiliary(ctx)
		if err == nil {
			err = fmt.Errorf("%s 服务意外退出", a.deployment)
		}
		return err
	case s := <-sig:
		a.config.Logger.Info("收到退出信号", "signal", s.String())
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return a.Shutdown(ctx)
}

// prepare 装配日志、追踪、gRPC 与 Hertz 实例，不开始监听 HTTP
func (a *App) prepare(addr string) error {
	a.config.Logger.Info("服务启动", "deployment", a.deployment, "addr", addr)

	// Hertz 框架日志与 bootstrap 共用输出与级别
	levelVar := &slog.LevelVar{}
	levelVar.Set(log.ParseLevel(a.config.Config.Log.Level))
	hlog.SetLogger(hertzslog.NewLogger(
		hertzslog.WithOutput(a.config.Logger.Output()),
		hertzslog.WithLevel(levelVar),
	))

	enabled, err := a.setupTracing()
	if err != nil {
		return err
	}
	if gc := a.config.Config.API.GRPC; gc.Enable {
		run, err := startGRPC(a.probe, gc.Port)
		if err != nil {
			return fmt.Errorf("启动 gRPC 健康检查服务失败: %w", err)
		}
		a.grpcRun = run
		a.config.Logger.Info("gRPC 健康检查服务启动", "addr", run.lis.Addr().String())
	}
	if enabled {
		tracerOpt, cfg := hertztracing.NewServerTracer()
		a.hertz = a.router.Build(addr, tracerOpt)
		a.hertz.Use(hertztracing.ServerMiddleware(cfg))
	} else {
		a.hertz = a.router.Build(addr)
	}
	return nil
}

// setupTracing 按配置初始化 OpenTelemetry provider；未启用或缺少 endpoint 时返回 false
func (a *App) setupTracing() (bool, error) {
	tc := a.config.Config.Monitoring.Tracing
	if !tc.Enable {
		return false, nil
	}
	serviceName := utils.CoalesceString(tc.ServiceName, "salon-agent-"+a.deployment)
	endpoint := utils.CoalesceString(tc.ExportEndpoint, os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"))
	if endpoint == "" {
		a.config.Logger.Warn("链路追踪已启用但未配置 export_endpoint，跳过")
		return false, nil
	}

	switch strings.ToLower(tc.Protocol) {
	case "http":
		tp, err := tracing.InitTracer(tracing.OTelConfig{
			ServiceName:    serviceName,
			ExportEndpoint: endpoint,
			Insecure:       tc.Insecure,
		})
		if err != nil {
			return false, fmt.Errorf("初始化链路追踪失败: %w", err)
		}
		a.otelProvider = tp
	default:
		popts := []provider.Option{
			provider.WithServiceName(serviceName),
			provider.WithExportEndpoint(endpoint),
		}
		if tc.Insecure {
			popts = append(popts, provider.WithInsecure())
		}
		a.otelProvider = provider.NewOpenTelemetryProvider(popts...)
	}
	a.config.Logger.Info("链路追踪已启用", "service_name", serviceName, "endpoint", endpoint, "protocol", tc.Protocol)
	return true, nil
}

// startGRPC 创建并启动 gRPC 服务（在 goroutine 中 Serve），返回 grpcRun 以便 Shutdown 时 GracefulStop
func startGRPC(probe http.ModelProbe, port int) (*grpcRun, error) {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		return nil, err
	}
	var prober apigrpc.Prober
	if probe != nil {
		prober = probe
	}
	hs := apigrpc.NewServer(prober, 0)
	srv := grpc.NewServer()
	hs.Register(srv)
	hs.Start(context.Background())
	go func() {
		_ = srv.Serve(lis)
	}()
	return &grpcRun{srv: srv, health: hs, lis: lis}, nil
}

// Shutdown 优雅关闭（传入 ctx 以支持超时）
func (a *App) Shutdown(ctx context.Context) error {
	a.stopAuxiliary(ctx)
	if a.hertz != nil {
		if err := a.hertz.Shutdown(ctx); err != nil {
			return err
		}
	}
	a.config.Logger.Info("服务已关闭", "deployment", a.deployment)
	return a.config.Logger.Close()
}

// stopAuxiliary 关闭 gRPC 健康检查服务与 OpenTelemetry provider
func (a *App) stopAuxiliary(ctx context.Context) {
	if a.grpcRun != nil {
		a.grpcRun.health.Stop()
		a.grpcRun.srv.GracefulStop()
		a.grpcRun = nil
	}
	if a.otelProvider != nil {
		_ = a.otelProvider.Shutdown(ctx)
		a.otelProvider = nil
	}
}

// Router 已装配的路由（测试用）
func (a *App) Router() *http.Router {
	return a.router
}
