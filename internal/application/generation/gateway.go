// Package generation 封装对外部补全接口的单次调用
package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	apperrors "story-engine/pkg/errors"
	"story-engine/pkg/logger"
	"story-engine/pkg/metrics"
)

// DefaultTimeout 单次生成调用的固定时间预算
const DefaultTimeout = 120 * time.Second

// ChatModelFactory 应用层对 LLM ChatModel 的最小依赖（port），由基础设施层实现
type ChatModelFactory interface {
	Get(ctx context.Context) (model.BaseChatModel, error)
}

// Generator 生成接口，便于上层替换
type Generator interface {
	Generate(ctx context.Context, prompt, modelID string) (string, error)
}

// Gateway 生成网关：每次调用恰好发起一次外部请求，不重试、不去重、不缓存
type Gateway struct {
	factory ChatModelFactory
	timeout time.Duration
}

// NewGateway 创建生成网关
func NewGateway(factory ChatModelFactory, timeout time.Duration) *Gateway {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Gateway{factory: factory, timeout: timeout}
}

// Generate 发送一条用户消息，返回首个候选去除首尾空白后的文本
//
// modelID 原样透传，仅要求非空。任何传输、鉴权或接口错误都包装为 CodeGenerationFailed。
func (g *Gateway) Generate(ctx context.Context, prompt, modelID string) (string, error) {
	modelID = strings.TrimSpace(modelID)
	if modelID == "" {
		return "", apperrors.Validation("model is required")
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	text, err := g.call(ctx, prompt, modelID)
	elapsed := time.Since(start)

	metrics.LLMCallDuration.WithLabelValues(modelID).Observe(elapsed.Seconds())
	if err != nil {
		metrics.LLMCallTotal.WithLabelValues(modelID, "error").Inc()
		logger.Warn(ctx, "generation failed", "model", modelID, "elapsed_ms", elapsed.Milliseconds(), "error", err.Error())
		return "", apperrors.Wrap(err, apperrors.CodeGenerationFailed, "generation failed")
	}

	metrics.LLMCallTotal.WithLabelValues(modelID, "success").Inc()
	logger.Info(ctx, "generation completed", "model", modelID, "elapsed_ms", elapsed.Milliseconds(), "chars", len(text))
	return text, nil
}

func (g *Gateway) call(ctx context.Context, prompt, modelID string) (string, error) {
	chatModel, err := g.factory.Get(ctx)
	if err != nil {
		return "", err
	}

	ctx = callbacks.InitCallbacks(ctx, &callbacks.RunInfo{
		Name:      "generation",
		Type:      "OpenRouter",
		Component: components.ComponentOfChatModel,
	})
	msg, err := chatModel.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)}, model.WithModel(modelID))
	if err != nil {
		return "", err
	}
	if msg == nil {
		return "", errors.New("empty response from model")
	}
	return strings.TrimSpace(msg.Content), nil
}

// IsGenerationError 判断是否为生成失败
func IsGenerationError(err error) bool {
	return apperrors.HasCode(err, apperrors.CodeGenerationFailed)
}

// Placeholder 将生成错误渲染为可直接放入页面的占位文本
func Placeholder(err error) string {
	cause := err
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Err != nil {
		cause = appErr.Err
	}
	return fmt.Sprintf("[AI Error: %s]", cause.Error())
}
