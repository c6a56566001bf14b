// Package llm implements the multi-model generation client and the
// HTTP adapters for the individual providers. Which backend serves a
// model is inferred from the model identifier itself, so the priority
// list in the config can mix vendors freely.
package llm

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/doeshing/voicehook/internal/ports"
)

const httpClientTimeout = 60 * time.Second

// Factory creates provider instances based on model identifiers.
// It maintains a single HTTP client shared across all providers.
type Factory struct {
	httpClient *http.Client
}

// NewFactory creates a new provider factory with a configured HTTP client.
func NewFactory() *Factory {
	return &Factory{
		httpClient: &http.Client{Timeout: httpClientTimeout},
	}
}

// ForModel builds the provider serving the given model identifier.
// Identifiers may carry a vendor prefix ("gemini/...", "ollama/...")
// which is stripped before the API call.
func (f *Factory) ForModel(modelID string) (ports.Provider, error) {
	lower := strings.ToLower(modelID)

	switch {
	case strings.Contains(lower, "gemini"):
		return newGeminiProvider(modelID, os.Getenv("GEMINI_API_KEY"), f.httpClient), nil
	case strings.Contains(lower, "claude"), strings.Contains(lower, "anthropic"):
		return newAnthropicProvider(modelID, os.Getenv("ANTHROPIC_API_KEY"), f.httpClient), nil
	case strings.Contains(lower, "gpt"), strings.Contains(lower, "openai"):
		return newOpenAIProvider(modelID, os.Getenv("OPENAI_API_KEY"), f.httpClient), nil
	case strings.Contains(lower, "ollama"), strings.Contains(lower, "local"):
		return newOllamaProvider(modelID, ollamaHost(), f.httpClient), nil
	default:
		return nil, fmt.Errorf("no provider for model %q", modelID)
	}
}

func ollamaHost() string {
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		return host
	}
	return "http://localhost:11434"
}

// apiModelID strips the vendor routing prefix from a model identifier,
// e.g. "gemini/gemini-2.0-flash-exp" -> "gemini-2.0-flash-exp".
func apiModelID(modelID string) string {
	if idx := strings.Index(modelID, "/"); idx >= 0 {
		return modelID[idx+1:]
	}
	return modelID
}

var _ ports.ProviderFactory = (*Factory)(nil)
