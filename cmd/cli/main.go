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

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/go-resty/resty/v2"

	"salon-agent/pkg/config"
)

const version = "salon-agent cli 0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(0)
	}
	cmd := os.Args[1]
	args := os.Args[2:]
	client := newClient(apiBaseURL())
	switch cmd {
	case "version":
		fmt.Println(version)
	case "health":
		os.Exit(runHealth(client, os.Stdout, os.Stderr))
	case "config":
		os.Exit(runConfig(args, os.Stdout, os.Stderr))
	case "chat":
		if len(args) == 0 {
			fmt.Fprintf(os.Stderr, "Usage: salon chat <message>\n")
			os.Exit(1)
		}
		os.Exit(runChatOnce(client, strings.Join(args, " "), os.Stdout, os.Stderr))
	case "repl":
		runREPL(client, os.Stdin, os.Stdout, os.Stderr)
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: salon <command> [args]")
	fmt.Println("  version          - 显示版本")
	fmt.Println("  health           - 服务与模型服务状态（SALON_API_URL，默认 http://localhost:5002）")
	fmt.Println("  config [debug]   - 显示配置概要")
	fmt.Println("  chat <message>   - 发送单条消息")
	fmt.Println("  repl             - 交互式对话（携带历史）")
}

func runHealth(c *resty.Client, stdout, stderr io.Writer) int {
	out, err := getHealth(c)
	if err != nil {
		fmt.Fprintf(stderr, "健康检查失败: %v\n", err)
		return 1
	}
	keys := make([]string, 0, len(out))
	for k := range out {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(stdout, "%s=%v\n", k, out[k])
	}
	return 0
}

func runConfig(args []string, stdout, stderr io.Writer) int {
	load := config.LoadAPIConfigWithModel
	if len(args) > 0 && args[0] == "debug" {
		load = config.LoadDebugConfigWithModel
	}
	cfg, err := load()
	if err != nil {
		fmt.Fprintf(stderr, "加载配置失败: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "api.port=%d\n", cfg.API.Port)
	fmt.Fprintf(stdout, "api.host=%s\n", cfg.API.Host)
	fmt.Fprintf(stdout, "agent.max_iterations=%d\n", cfg.Agent.MaxIterations)
	if spec, err := cfg.DefaultLLM(); err == nil {
		fmt.Fprintf(stdout, "model.name=%s\n", spec.Name)
		fmt.Fprintf(stdout, "model.base_url=%s\n", spec.BaseURL)
	}
	return 0
}

func runChatOnce(c *resty.Client, message string, stdout, stderr io.Writer) int {
	reply, err := postChat(c, message, nil)
	if err != nil {
		fmt.Fprintf(stderr, "发送失败: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, reply.Message)
	return 0
}

// runREPL 逐行读取问题；每轮的问答追加到历史，随下一次请求发送
func runREPL(c *resty.Client, stdin io.Reader, stdout, stderr io.Writer) {
	var history []turn
	reader := bufio.NewReader(stdin)
	for {
		fmt.Fprint(stdout, "> ")
		line, err := reader.ReadString('\n')
		msg := strings.TrimSpace(line)
		if msg == "exit" || msg == "quit" {
			return
		}
		if msg != "" {
			reply, errChat := postChat(c, msg, history)
			if errChat != nil {
				fmt.Fprintf(stderr, "发送失败: %v\n", errChat)
			} else {
				fmt.Fprintln(stdout, reply.Message)
				history = append(history,
					turn{Role: "user", Content: msg},
					turn{Role: "assistant", Content: reply.Message},
				)
			}
		}
		if err != nil {
			return
		}
	}
}
