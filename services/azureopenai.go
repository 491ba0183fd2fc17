package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
)

type AzureOpenAIConfig struct {
	Endpoint   string
	APIKey     string
	APIVersion string
	Deployment string
}

// AzureOpenAIProvider talks to a chat completions deployment on Azure OpenAI.
type AzureOpenAIProvider struct {
	client     openai.Client
	deployment string
}

func NewAzureOpenAIProvider(cfg AzureOpenAIConfig, opts ...option.RequestOption) *AzureOpenAIProvider {
	base := []option.RequestOption{
		azure.WithEndpoint(cfg.Endpoint, cfg.APIVersion),
		azure.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	return &AzureOpenAIProvider{
		client:     openai.NewClient(append(base, opts...)...),
		deployment: cfg.Deployment,
	}
}

func (p *AzureOpenAIProvider) Name() LLMProvider { return ProviderAzureOpenAI }

func (p *AzureOpenAIProvider) Model() string { return p.deployment }

func (p *AzureOpenAIProvider) Complete(ctx context.Context, req VisionRequest) (*LLMResponse, error) {
	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(req.Images)+1)
	parts = append(parts, openai.TextContentPart(req.Prompt))
	for _, img := range req.Images {
		dataURL := fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data))
		parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
			URL: dataURL,
		}))
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.deployment),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(parts),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, errors.New("no choices in chat completion")
	}

	return &LLMResponse{
		Response:         resp.Choices[0].Message.Content,
		Model:            p.deployment,
		InputTokenCount:  resp.Usage.PromptTokens,
		OutputTokenCount: resp.Usage.CompletionTokens,
		TotalTokenCount:  resp.Usage.TotalTokens,
	}, nil
}
