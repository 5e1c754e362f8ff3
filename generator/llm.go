package generator

import (
	"context"
	"time"
)

// Backend 抽象大模型客户端，便于替换/Mock。
type Backend interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// TextGenerator turns a single prompt string into a completion.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// LLMSettings 提供给具体实现的基础配置。
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	// Timeout is applied by the SDK transport; zero means none.
	Timeout time.Duration
}
