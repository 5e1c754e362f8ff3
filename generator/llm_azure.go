package generator

import (
	"context"
	"errors"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"
)

// AzureLLM implements Backend against an Azure OpenAI deployment.
type AzureLLM struct {
	client *goopenai.Client
	model  string
}

// NewAzureLLMFromConfig expects BaseURL to be the resource endpoint and
// Model the deployment name.
func NewAzureLLMFromConfig(cfg *LLMSettings) (*AzureLLM, error) {
	if cfg == nil {
		return nil, errors.New("llm config is nil")
	}
	if cfg.APIKey == "" {
		return nil, errors.New("azure api key missing; set TURING_LLM_API_KEY")
	}
	if cfg.BaseURL == "" {
		return nil, errors.New("llm provider azure requires base_url (resource endpoint)")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}

	config := goopenai.DefaultAzureConfig(cfg.APIKey, cfg.BaseURL)
	if cfg.Timeout > 0 {
		config.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &AzureLLM{
		client: goopenai.NewClientWithConfig(config),
		model:  cfg.Model,
	}, nil
}

func (a *AzureLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	var msgs []goopenai.ChatCompletionMessage
	if prompt.System != "" {
		msgs = append(msgs, goopenai.ChatCompletionMessage{
			Role:    goopenai.ChatMessageRoleSystem,
			Content: prompt.System,
		})
	}
	msgs = append(msgs, goopenai.ChatCompletionMessage{
		Role:    goopenai.ChatMessageRoleUser,
		Content: prompt.User,
	})

	resp, err := a.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:    a.model,
		Messages: msgs,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("azure: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}
