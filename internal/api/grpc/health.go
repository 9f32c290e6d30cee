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

// Package grpc 提供 gRPC 健康检查服务（grpc.health.v1），状态取自模型服务探测
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName 对外注册的服务名；空串 "" 表示整体状态
const ServiceName = "salon.agent.Chat"

const defaultProbeInterval = 15 * time.Second

// Prober 模型服务探测（与 HTTP /api/health 共用实现）
type Prober interface {
	Probe(ctx context.Context) error
}

// Server gRPC 健康检查服务端
type Server struct {
	health   *health.Server
	probe    Prober
	interval time.Duration
	cancel   context.CancelFunc
}

// NewServer probe 为 nil 时始终 SERVING
func NewServer(probe Prober, interval time.Duration) *Server {
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	s := &Server{
		health:   health.NewServer(),
		probe:    probe,
		interval: interval,
	}
	s.setStatus(healthpb.HealthCheckResponse_SERVING)
	return s
}

// Register 注册 Health 服务到 grpc.Server
func (s *Server) Register(grpcServer *grpc.Server) {
	healthpb.RegisterHealthServer(grpcServer, s.health)
}

// Refresh 探测一次并更新状态
func (s *Server) Refresh(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING
	if s.probe != nil {
		pctx, cancel := context.WithTimeout(ctx, s.interval)
		err := s.probe.Probe(pctx)
		cancel()
		if err != nil {
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
	}
	s.setStatus(status)
	return status
}

// Start 后台按 interval 周期性探测，Stop 时退出
func (s *Server) Start(ctx context.Context) {
	if s.probe == nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	go func() {
		s.Refresh(ctx)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Refresh(ctx)
			}
		}
	}()
}

// Stop 停止探测并将所有服务置为 NOT_SERVING
func (s *Server) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.health.Shutdown()
}

func (s *Server) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
