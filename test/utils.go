package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"fakecheckapi/services"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func NewJSONRequestRaw(method string, target string, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

// VisionProviderMock replays a canned reply and records what it was sent.
type VisionProviderMock struct {
	Reply string
	Err   error
	// Delay blocks the call until it elapses or the context is done.
	Delay time.Duration

	mu       sync.Mutex
	requests []services.VisionRequest
}

func (m *VisionProviderMock) Name() services.LLMProvider { return "mock" }

func (m *VisionProviderMock) Model() string { return "mock-vision" }

func (m *VisionProviderMock) Complete(ctx context.Context, req services.VisionRequest) (*services.LLMResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &services.LLMResponse{Response: m.Reply, Model: m.Model(), TotalTokenCount: 42}, nil
}

func (m *VisionProviderMock) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

func (m *VisionProviderMock) LastRequest() services.VisionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return services.VisionRequest{}
	}
	return m.requests[len(m.requests)-1]
}

// FakeImages returns n distinct base64 payloads starting with a JPEG header.
func FakeImages(n int) []string {
	images := make([]string, n)
	for i := range images {
		images[i] = FakeJPEG(byte(i))
	}
	return images
}
