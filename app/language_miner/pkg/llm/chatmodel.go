package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/iWorld-y/language_miner/app/language_miner/pkg/config"
)

// ChatModelClient 基于 eino ChatModel 的客户端
type ChatModelClient struct {
	cm model.BaseChatModel
}

// NewChatModelClient 包装任意 eino ChatModel
func NewChatModelClient(cm model.BaseChatModel) *ChatModelClient {
	return &ChatModelClient{cm: cm}
}

// NewOpenAIClient 创建 OpenAI 协议兼容的客户端
func NewOpenAIClient(ctx context.Context, cfg config.LLMConfig) (*ChatModelClient, error) {
	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.BaseURL,
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		Timeout: cfg.TimeoutDuration(),
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}
	return NewChatModelClient(cm), nil
}

// Complete 实现 Client 接口
func (c *ChatModelClient) Complete(ctx context.Context, req Request) (string, error) {
	opts := []model.Option{model.WithTemperature(req.Temperature)}
	if req.MaxTokens > 0 {
		opts = append(opts, model.WithMaxTokens(req.MaxTokens))
	}

	resp, err := c.cm.Generate(ctx, []*schema.Message{schema.UserMessage(req.Prompt)}, opts...)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", ErrEmptyResponse
	}
	return resp.Content, nil
}
