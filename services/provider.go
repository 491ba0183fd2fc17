package services

import "context"

// LLMProvider names the remote inference backend.
type LLMProvider string

const (
	ProviderAzureOpenAI LLMProvider = "azure"
	ProviderGemini      LLMProvider = "gemini"
)

type LLMResponse struct {
	Response         string `json:"response"`
	Model            string `json:"model"`
	InputTokenCount  int64  `json:"input_token_count"`
	OutputTokenCount int64  `json:"output_token_count"`
	TotalTokenCount  int64  `json:"total_token_count"`
}

type VisionImage struct {
	Data     []byte
	MIMEType string
}

// VisionRequest is a single user turn: the instruction followed by the photos.
type VisionRequest struct {
	Prompt string
	Images []VisionImage
}

// VisionProvider sends one multimodal request and returns the raw reply text.
// Implementations must honour ctx cancellation and must not retry.
type VisionProvider interface {
	Complete(ctx context.Context, req VisionRequest) (*LLMResponse, error)
	Name() LLMProvider
	Model() string
}
