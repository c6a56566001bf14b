package llm

import (
	"context"
	"time"

	"github.com/doeshing/voicehook/internal/domain"
	"github.com/doeshing/voicehook/internal/ports"
)

// Client tries the configured models in fixed priority order against a
// single prompt, falling back to the next model on any failure. Budget
// exhaustion is a hard stop checked before the first attempt; a model
// that succeeds ends the chain immediately.
type Client struct {
	models      []string
	parameters  domain.GenerationParameters
	costControl domain.CostControl
	factory     ports.ProviderFactory
	usage       ports.UsageStore
	logger      ports.Logger
}

// NewClient builds a generation client from the LLM settings. The model
// priority list is fixed at construction and never reordered at runtime.
func NewClient(settings domain.LLMSettings, factory ports.ProviderFactory, usage ports.UsageStore, logger ports.Logger) *Client {
	return &Client{
		models:      settings.Models.Priority(),
		parameters:  settings.Parameters,
		costControl: settings.CostControl,
		factory:     factory,
		usage:       usage,
		logger:      logger,
	}
}

// attemptResult is the typed outcome of a single model attempt. Failures
// are data driving the fallback loop, not propagated faults.
type attemptResult struct {
	model    string
	response ports.ProviderResponse
	err      error
}

// GenerateSummary implements ports.GenerationClient. It returns empty
// text and a nil error when the budget is exhausted or every model fails;
// the caller absorbs that with its offline fallback.
func (c *Client) GenerateSummary(ctx context.Context, prompt string, maxLength int) (string, string, error) {
	if c.trackingEnabled() && !c.usage.IsUnderBudget(c.costControl.DailyLimitUSD) {
		c.logger.Warn("daily budget exhausted, skipping generation", map[string]interface{}{
			"limit_usd": c.costControl.DailyLimitUSD,
		})
		return "", "", nil
	}

	request := ports.ProviderRequest{
		Prompt:      prompt,
		MaxTokens:   c.parameters.MaxTokens,
		Temperature: c.parameters.Temperature,
	}

	for _, model := range c.models {
		result := c.attempt(ctx, model, request)
		if result.err != nil {
			c.logger.Warn("model attempt failed", map[string]interface{}{
				"model": model,
				"error": result.err.Error(),
			})
			continue
		}

		text := truncateRunes(result.response.Text, maxLength)
		if c.trackingEnabled() {
			cost := EstimateCost(model, result.response.InputTokens, result.response.OutputTokens)
			c.usage.Record(model, result.response.InputTokens, result.response.OutputTokens, cost)
		}

		c.logger.Info("generated summary", map[string]interface{}{"model": model})
		return text, model, nil
	}

	c.logger.Error("all models failed to generate summary", nil, map[string]interface{}{
		"models": len(c.models),
	})
	return "", "", nil
}

// attempt gives one model exactly one try under its own timeout. There is
// no retry within an attempt and no cancellation mid-call: the caller
// waits for completion or timeout before the next model.
func (c *Client) attempt(ctx context.Context, model string, request ports.ProviderRequest) attemptResult {
	provider, err := c.factory.ForModel(model)
	if err != nil {
		return attemptResult{model: model, err: err}
	}

	attemptCtx := ctx
	if c.parameters.TimeoutSeconds > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, time.Duration(c.parameters.TimeoutSeconds)*time.Second)
		defer cancel()
	}

	response, err := provider.Generate(attemptCtx, request)
	return attemptResult{model: model, response: response, err: err}
}

func (c *Client) trackingEnabled() bool {
	return c.costControl.UsageTracking && c.usage != nil
}

func truncateRunes(text string, maxLength int) string {
	if maxLength <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength])
}

var _ ports.GenerationClient = (*Client)(nil)
