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

// debug 调试部署：单门店、单工具、最小指令；错误详情直接返回
// agent.devops 为 true 时同时启动 Eino Dev 调试服务
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salon-agent/internal/app"
	"salon-agent/internal/app/api"
	"salon-agent/pkg/config"
)

func main() {
	cfg, err := config.LoadDebugConfigWithModel()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	bootstrap, err := app.NewBootstrap(cfg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	application, err := api.NewDebugApp(bootstrap)
	if err != nil {
		log.Fatalf("创建调试应用失败: %v", err)
	}

	addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	if err := application.Serve(addr, sigChan, 30*time.Second); err != nil {
		log.Fatalf("调试服务异常退出: %v", err)
	}
	log.Println("调试服务已关闭")
}
