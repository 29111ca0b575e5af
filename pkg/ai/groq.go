package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/momsgrove/grove-api/pkg/config"
)

// ChatCompleter sends a chat completion and returns the assistant content
type ChatCompleter interface {
	Complete(ctx context.Context, req ChatRequest) (string, error)
}

// ChatClient is a minimal client for OpenAI-compatible chat completion APIs (Groq by default)
type ChatClient struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

// NewChatClient creates a chat client using values from the provided config.
// Pass a nil config to fall back to environment variables.
func NewChatClient(cfg *config.SummarizerConfig) *ChatClient {
	var apiKey, base, model string
	timeout := 30 * time.Second
	if cfg != nil {
		apiKey = cfg.APIKey
		base = cfg.BaseURL
		model = cfg.Model
		if cfg.Timeout > 0 {
			timeout = cfg.Timeout
		}
	}
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}
	if base == "" {
		base = os.Getenv("GROQ_API_URL")
		if base == "" {
			base = "https://api.groq.com"
		}
	}
	if model == "" {
		model = "llama-3.1-8b-instant"
	}

	return &ChatClient{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(base, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

// Message is a single chat turn
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ResponseFormat asks the model for a constrained output type
type ResponseFormat struct {
	Type string `json:"type"`
}

// ChatRequest is the shape for chat completion requests
type ChatRequest struct {
	Model          string          `json:"model,omitempty"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *ResponseFormat `json:"response_format,omitempty"`
}

// ChatResponse is a minimal response shape
type ChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends req and returns the first choice's content
func (g *ChatClient) Complete(ctx context.Context, req ChatRequest) (string, error) {
	if req.Model == "" {
		req.Model = g.model
	}

	b, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	endpoint := g.baseURL + "/openai/v1/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("chat completion returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cr ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("failed to decode chat completion: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty chat completion response")
	}
	return cr.Choices[0].Message.Content, nil
}
