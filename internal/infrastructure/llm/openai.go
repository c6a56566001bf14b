package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/doeshing/voicehook/internal/ports"
)

const openaiEndpoint = "https://api.openai.com/v1/chat/completions"

type openaiProvider struct {
	modelID    string
	apiKey     string
	httpClient *http.Client
}

func newOpenAIProvider(modelID, apiKey string, client *http.Client) ports.Provider {
	return &openaiProvider{
		modelID:    modelID,
		apiKey:     apiKey,
		httpClient: client,
	}
}

func (p *openaiProvider) Name() string {
	return "openai"
}

func (p *openaiProvider) ModelID() string {
	return p.modelID
}

func (p *openaiProvider) Generate(ctx context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	if p.apiKey == "" {
		return ports.ProviderResponse{}, errors.New("openai: OPENAI_API_KEY not set")
	}

	payload := openaiRequest{
		Model:       apiModelID(p.modelID),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Messages: []openaiMessage{
			{Role: "user", Content: req.Prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return ports.ProviderResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, openaiEndpoint, bytes.NewReader(body))
	if err != nil {
		return ports.ProviderResponse{}, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return ports.ProviderResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return ports.ProviderResponse{}, fmt.Errorf("openai: %s", resp.Status)
	}

	var decoded openaiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.ProviderResponse{}, err
	}

	if len(decoded.Choices) == 0 {
		return ports.ProviderResponse{}, errors.New("openai: no choices in response")
	}
	text := strings.TrimSpace(decoded.Choices[0].Message.Content)
	if text == "" {
		return ports.ProviderResponse{}, errors.New("openai: empty response")
	}

	return ports.ProviderResponse{
		Text:         text,
		InputTokens:  decoded.Usage.PromptTokens,
		OutputTokens: decoded.Usage.CompletionTokens,
	}, nil
}

type openaiRequest struct {
	Model       string          `json:"model"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature,omitempty"`
	Messages    []openaiMessage `json:"messages"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}
