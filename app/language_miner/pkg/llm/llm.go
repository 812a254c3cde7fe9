// Package llm 封装模型调用：一条用户消息、指定温度与输出上限，返回首段文本
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/config"
)

// ErrEmptyResponse 模型没有返回任何内容
var ErrEmptyResponse = errors.New("llm: empty response")

// Request 单次调用参数
type Request struct {
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// Client 模型客户端
//
// 超时由具体实现负责，调用方不做重试。
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// NewClient 根据配置创建模型客户端
func NewClient(ctx context.Context, cfg config.LLMConfig) (Client, error) {
	switch cfg.Provider {
	case "", config.ProviderOpenAI:
		return NewOpenAIClient(ctx, cfg)
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
