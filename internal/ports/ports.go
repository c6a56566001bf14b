// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the application to remain independent of specific
// implementations like HTTP clients, files, or CLI frameworks.
package ports

import (
	"context"

	"github.com/doeshing/voicehook/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.voicehook/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// ContextExtractor parses a raw execution report into a structured record.
// Extraction is total: absence of matches yields unknown/empty fields,
// never an error.
type ContextExtractor interface {
	Extract(text string) domain.ExecutionContext
}

// ProviderRequest contains everything a single model attempt needs.
type ProviderRequest struct {
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// ProviderResponse carries the generated text plus the token counts the
// provider reported (or estimated) for cost accounting.
type ProviderResponse struct {
	Text         string
	InputTokens  int
	OutputTokens int
}

// Provider wraps one text-generation backend for one model identifier.
type Provider interface {
	Name() string
	ModelID() string
	Generate(context.Context, ProviderRequest) (ProviderResponse, error)
}

// ProviderFactory builds a provider for a model identifier. The backend is
// inferred from the identifier itself (vendor substring / prefix).
type ProviderFactory interface {
	ForModel(modelID string) (Provider, error)
}

// GenerationClient tries the configured models in priority order against a
// single prompt. It returns empty text (and no error) when the daily budget
// is exhausted or every model fails.
type GenerationClient interface {
	GenerateSummary(ctx context.Context, prompt string, maxLength int) (text string, model string, err error)
}

// UsageStore persists the daily usage ledger.
type UsageStore interface {
	LoadToday() domain.UsageRecord
	Save(domain.UsageRecord) error
	IsUnderBudget(limitUSD float64) bool
	Record(model string, inputTokens, outputTokens int, costUSD float64)
}

// SpeechEngine turns a finished text string into audible output.
type SpeechEngine interface {
	Speak(ctx context.Context, message string) error
	SpeakAsync(message string) error
	AvailableVoices(ctx context.Context) ([]string, error)
}

// HistoryRepository persists spoken notifications.
type HistoryRepository interface {
	Save(domain.NotificationRecord) error
	Recent(limit int) ([]domain.NotificationRecord, error)
	Clear() error
}

// TranscriptReader extracts the trailing assistant text from a session
// transcript when the hook input carries no inline output.
type TranscriptReader interface {
	AssistantTail(path string, limit int) (string, error)
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, files).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
