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

// Package eino 基于 Eino ADK 的推理循环适配层：指令模板、历史映射、模型与工具桥接
package eino

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/adk"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"salon-agent/internal/tool"
	"salon-agent/internal/tool/registry"
	"salon-agent/pkg/config"
	"salon-agent/pkg/errors"
	"salon-agent/pkg/log"
	"salon-agent/pkg/metrics"
	"salon-agent/pkg/utils"
)

// ErrNoFinalAnswer 推理结束但模型没有给出最终回答
var ErrNoFinalAnswer = errors.Wrap(errors.ErrUnavailable, "agent produced no final answer")

// Reasoner 推理循环：给定新问题与已映射的历史，返回最终回答
type Reasoner interface {
	Run(ctx context.Context, req *RunRequest) (*RunResult, error)
}

// RunRequest 一次推理的输入；History 按时间先后排列
type RunRequest struct {
	Input   string
	History []*schema.Message
}

// Step 一次工具调用
type Step struct {
	Tool        string `json:"tool"`
	Arguments   string `json:"arguments"`
	Observation string `json:"observation"`
	Thought     string `json:"thought,omitempty"`

	callID string
}

// RunResult 推理结果
type RunResult struct {
	Answer string
	Trace  []Step
}

// ReasonerConfig ADK 推理器配置
type ReasonerConfig struct {
	Name          string
	Description   string
	Instruction   string
	Model         model.ToolCallingChatModel
	Tools         *registry.Registry
	MaxIterations int
	Verbose       bool
	Logger        *log.Logger
}

// ADKReasoner 基于 adk.ChatModelAgent 的 Reasoner；模型与桥接工具共享，
// Agent 与 Runner 每次 Run 单独构建（编译后的图不能被并发请求共用）
type ADKReasoner struct {
	agentCfg      adk.ChatModelAgentConfig
	tools         *registry.Registry
	maxIterations int
	verbose       bool
	logger        *log.Logger
}

// NewADKReasoner 校验配置并准备 Agent 模板
func NewADKReasoner(ctx context.Context, cfg ReasonerConfig) (*ADKReasoner, error) {
	if cfg.Model == nil {
		return nil, errors.New("chat model is required")
	}
	tools := cfg.Tools
	if tools == nil {
		tools = registry.New()
	}
	maxIterations := utils.PositiveOr(cfg.MaxIterations, config.DefaultMaxIterations)
	agentCfg := adk.ChatModelAgentConfig{
		Name:          utils.CoalesceString(cfg.Name, "salon_agent"),
		Description:   utils.CoalesceString(cfg.Description, "Saloon & SPA reservation agent"),
		Instruction:   cfg.Instruction,
		Model:         cfg.Model,
		MaxIterations: maxIterations,
		GenModelInput: genModelInput,
	}
	if list := tools.List(); len(list) > 0 {
		agentCfg.ToolsConfig = adk.ToolsConfig{
			ToolsNodeConfig: compose.ToolsNodeConfig{
				Tools: BridgeTools(list),
			},
		}
	}
	r := &ADKReasoner{
		agentCfg:      agentCfg,
		tools:         tools,
		maxIterations: maxIterations,
		verbose:       cfg.Verbose,
		logger:        cfg.Logger,
	}
	if _, err := r.newRunner(ctx); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ADKReasoner) newRunner(ctx context.Context) (*adk.Runner, error) {
	agentCfg := r.agentCfg
	agent, err := adk.NewChatModelAgent(ctx, &agentCfg)
	if err != nil {
		return nil, fmt.Errorf("创建 ChatModelAgent failed: %w", err)
	}
	return adk.NewRunner(ctx, adk.RunnerConfig{Agent: agent}), nil
}

// genModelInput 指令作为首条系统消息，之后原样接历史与新问题（不做模板格式化，指令中的 JSON 花括号保持原样）
func genModelInput(_ context.Context, instruction string, input *adk.AgentInput) ([]adk.Message, error) {
	msgs := make([]adk.Message, 0, len(input.Messages)+1)
	if instruction != "" {
		msgs = append(msgs, schema.SystemMessage(instruction))
	}
	return append(msgs, input.Messages...), nil
}

// Run 实现 Reasoner。原生 tool call 由 ADK 循环执行；模型按指令以文本协议
// 给出 Action 时，在此执行该工具并把 Observation 追加到对话后继续
func (r *ADKReasoner) Run(ctx context.Context, req *RunRequest) (*RunResult, error) {
	msgs := make([]adk.Message, 0, len(req.History)+1)
	msgs = append(msgs, req.History...)
	msgs = append(msgs, schema.UserMessage(req.Input))

	res := &RunResult{}
	defer func() {
		metrics.AgentSteps.Observe(float64(len(res.Trace)))
		r.logTrace(ctx, res.Trace)
	}()

	for turn := 0; ; turn++ {
		content, err := r.runAgent(ctx, msgs, res)
		if err != nil {
			return nil, err
		}
		if !requestsAction(content) {
			res.Answer = extractFinalAnswer(content)
			break
		}
		action, answer, ok := parseTextAction(content)
		if !ok {
			return nil, errors.Wrap(ErrNoFinalAnswer, "unparsable action")
		}
		if action.Tool == "" {
			res.Answer = strings.TrimSpace(answer)
			break
		}
		if turn >= r.maxIterations {
			return nil, errors.Wrapf(ErrNoFinalAnswer, "exceeded %d iterations", r.maxIterations)
		}
		obs, err := r.dispatch(ctx, action)
		if err != nil {
			return nil, err
		}
		res.Trace = append(res.Trace, Step{
			Tool:        action.Tool,
			Arguments:   action.Input,
			Observation: obs,
			Thought:     action.Thought,
		})
		msgs = append(msgs,
			schema.AssistantMessage(content, nil),
			schema.UserMessage(observationMarker+" "+obs),
		)
	}
	if res.Answer == "" {
		return nil, ErrNoFinalAnswer
	}
	return res, nil
}

// runAgent 运行一次 ADK 循环，返回最后一条不含 tool call 的助手消息
func (r *ADKReasoner) runAgent(ctx context.Context, msgs []adk.Message, res *RunResult) (string, error) {
	runner, err := r.newRunner(ctx)
	if err != nil {
		return "", err
	}
	iter := runner.Run(ctx, msgs)
	var content string
	for {
		event, ok := iter.Next()
		if !ok {
			break
		}
		if event.Err != nil {
			return "", errors.Wrap(event.Err, "agent run")
		}
		if event.Output == nil || event.Output.MessageOutput == nil {
			continue
		}
		msg, err := event.Output.MessageOutput.GetMessage()
		if err != nil {
			return "", errors.Wrap(err, "read agent message")
		}
		if msg == nil {
			continue
		}
		switch msg.Role {
		case schema.Assistant:
			countTokens(msg)
			if len(msg.ToolCalls) > 0 {
				for _, tc := range msg.ToolCalls {
					res.Trace = append(res.Trace, Step{
						Tool:      tc.Function.Name,
						Arguments: tc.Function.Arguments,
						Thought:   strings.TrimSpace(msg.Content),
						callID:    tc.ID,
					})
				}
				continue
			}
			content = msg.Content
		case schema.Tool:
			fillObservation(res.Trace, msg)
		}
	}
	return content, nil
}

// dispatch 执行文本协议请求的工具；未知工具作为观察结果返回给模型
func (r *ADKReasoner) dispatch(ctx context.Context, action textAction) (string, error) {
	t, ok := r.tools.Get(action.Tool)
	if !ok {
		return errorObservation(fmt.Sprintf("%s is not a valid tool, try one of [%s]",
			action.Tool, strings.Join(r.tools.Names(), ", ")))
	}
	return bridge(t).InvokableRun(ctx, textArguments(t, action.Input))
}

// textArguments Action Input 为 JSON 对象时原样使用；单参数工具允许直接给出参数值
func textArguments(t tool.Tool, input string) string {
	if input == "" {
		return "{}"
	}
	if strings.HasPrefix(input, "{") {
		return input
	}
	props := t.Schema().Properties
	if len(props) != 1 {
		return input
	}
	for name := range props {
		b, err := json.Marshal(map[string]string{name: unquote(input)})
		if err != nil {
			return input
		}
		return string(b)
	}
	return input
}

// fillObservation 按 ToolCallID 回填观察结果；缺少 id 时回填第一条同名且未填的步骤
func fillObservation(trace []Step, msg *schema.Message) {
	for i := range trace {
		if msg.ToolCallID != "" && trace[i].callID == msg.ToolCallID {
			trace[i].Observation = msg.Content
			return
		}
	}
	for i := range trace {
		if trace[i].Observation == "" && trace[i].Tool == msg.ToolName {
			trace[i].Observation = msg.Content
			return
		}
	}
}

func countTokens(msg *schema.Message) {
	if msg.ResponseMeta == nil || msg.ResponseMeta.Usage == nil {
		return
	}
	usage := msg.ResponseMeta.Usage
	metrics.LLMTokensTotal.WithLabelValues("input").Add(float64(usage.PromptTokens))
	metrics.LLMTokensTotal.WithLabelValues("output").Add(float64(usage.CompletionTokens))
}

func (r *ADKReasoner) logTrace(ctx context.Context, trace []Step) {
	if !r.verbose || r.logger == nil {
		return
	}
	for i, s := range trace {
		r.logger.InfoContext(ctx, "agent step",
			"step", i+1,
			"thought", s.Thought,
			"action", s.Tool,
			"action_input", s.Arguments,
			"observation", s.Observation,
		)
	}
}
