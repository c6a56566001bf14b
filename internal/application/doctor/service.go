package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/doeshing/voicehook/internal/domain"
	"github.com/doeshing/voicehook/internal/pkg/filesystem"
	"github.com/doeshing/voicehook/internal/ports"
)

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Speech         ports.SpeechEngine
}

// Run executes checks and returns a report.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config file", fmt.Sprintf("loaded, format version %s", cfg.ConfigFormatVersion)))

	if !cfg.Enabled {
		checks = append(checks, warn("Notifications", "disabled in config"))
	} else {
		checks = append(checks, ok("Notifications", "enabled"))
	}

	models := cfg.LLM.Models.Priority()
	if len(models) == 0 {
		checks = append(checks, warn("Models", "no models configured, summaries use the offline fallback"))
	} else {
		checks = append(checks, ok("Models", strings.Join(models, " > ")))
		checks = append(checks, apiKeyCheck(models))
	}

	checks = append(checks, speechCheck(ctx, s.Speech))
	checks = append(checks, usageFileCheck(cfg.LLM.CostControl))

	return domain.HealthReport{Checks: checks}, nil
}

func apiKeyCheck(models []string) domain.HealthCheck {
	var missing []string
	for _, modelID := range models {
		id := strings.ToLower(modelID)
		switch {
		case strings.Contains(id, "gemini"):
			if os.Getenv("GEMINI_API_KEY") == "" {
				missing = append(missing, "GEMINI_API_KEY")
			}
		case strings.Contains(id, "claude") || strings.Contains(id, "anthropic"):
			if os.Getenv("ANTHROPIC_API_KEY") == "" {
				missing = append(missing, "ANTHROPIC_API_KEY")
			}
		case strings.Contains(id, "gpt") || strings.Contains(id, "openai"):
			if os.Getenv("OPENAI_API_KEY") == "" {
				missing = append(missing, "OPENAI_API_KEY")
			}
		}
	}
	if len(missing) > 0 {
		return warn("API keys", strings.Join(dedupe(missing), ", ")+" missing")
	}
	return ok("API keys", "detected for configured providers")
}

func speechCheck(ctx context.Context, speech ports.SpeechEngine) domain.HealthCheck {
	if _, err := exec.LookPath("say"); err != nil {
		return fail("Voice engine", "`say` not found on PATH")
	}
	if speech != nil {
		if voices, err := speech.AvailableVoices(ctx); err == nil {
			return ok("Voice engine", fmt.Sprintf("%d voices installed", len(voices)))
		}
	}
	return ok("Voice engine", "`say` available")
}

func usageFileCheck(cc domain.CostControl) domain.HealthCheck {
	if !cc.UsageTracking {
		return warn("Usage tracking", "disabled, daily budget not enforced")
	}
	path := filesystem.ExpandPath(cc.UsageFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fail("Usage tracking", fmt.Sprintf("cannot create %s: %v", filepath.Dir(path), err))
	}
	return ok("Usage tracking", fmt.Sprintf("ledger at %s, daily limit $%.2f", path, cc.DailyLimitUSD))
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	var out []string
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
