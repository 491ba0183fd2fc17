package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"
)

// GeminiModelName is a Gemini model the service is known to work with.
type GeminiModelName int32

const (
	Flash25 GeminiModelName = iota
	Pro25
	FlashLite25
)

func (t GeminiModelName) String() string {
	switch t {
	case Pro25:
		return "gemini-2.5-pro"
	case FlashLite25:
		return "gemini-2.5-flash-lite"
	default:
		return "gemini-2.5-flash"
	}
}

type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint. Empty means the default.
	BaseURL string
}

type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	model := cfg.Model
	if model == "" {
		model = Flash25.String()
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Name() LLMProvider { return ProviderGemini }

func (p *GeminiProvider) Model() string { return p.model }

func (p *GeminiProvider) Complete(ctx context.Context, req VisionRequest) (*LLMResponse, error) {
	parts := make([]*genai.Part, 0, len(req.Images)+1)
	parts = append(parts, genai.NewPartFromText(req.Prompt))
	for _, img := range req.Images {
		parts = append(parts, &genai.Part{InlineData: &genai.Blob{Data: img.Data, MIMEType: img.MIMEType}})
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, &genai.GenerateContentConfig{
		CandidateCount: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}
	if result.PromptFeedback != nil && result.PromptFeedback.BlockReason != "" {
		return nil, fmt.Errorf("prompt blocked: %s %s", result.PromptFeedback.BlockReason, result.PromptFeedback.BlockReasonMessage)
	}
	text, err := firstCandidateText(result)
	if err != nil {
		return nil, err
	}

	resp := &LLMResponse{Response: text, Model: p.model}
	if result.UsageMetadata != nil {
		resp.InputTokenCount = int64(result.UsageMetadata.PromptTokenCount)
		resp.OutputTokenCount = int64(result.UsageMetadata.CandidatesTokenCount)
		resp.TotalTokenCount = int64(result.UsageMetadata.TotalTokenCount)
	}
	log.Debug().
		Str("model", p.model).
		Int64("input_tokens", resp.InputTokenCount).
		Int64("output_tokens", resp.OutputTokenCount).
		Msg("gemini vision response")
	return resp, nil
}

// firstCandidateText rejects safety-blocked candidates and returns the reply text.
func firstCandidateText(result *genai.GenerateContentResponse) (string, error) {
	if len(result.Candidates) == 0 {
		return "", errors.New("no candidates from Gemini")
	}
	for _, rating := range result.Candidates[0].SafetyRatings {
		if rating.Blocked {
			return "", fmt.Errorf("content blocked by safety setting: %s", rating.Category)
		}
	}
	if result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("empty candidate from Gemini")
	}

	var text string
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Thought {
			continue
		}
		text += part.Text
	}
	return text, nil
}
