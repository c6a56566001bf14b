// Package config loads the YAML configuration file, writing the embedded
// defaults on first run.
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/doeshing/voicehook/assets"
	"github.com/doeshing/voicehook/internal/domain"
	"github.com/doeshing/voicehook/internal/pkg/filesystem"
	"github.com/doeshing/voicehook/internal/ports"
)

// FileLoader loads YAML configuration from ~/.voicehook/config.yaml
// (overridable via VOICEHOOK_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := os.WriteFile(path, assets.DefaultConfigYAML, 0o600); err != nil {
				return domain.Config{}, err
			}
			data = assets.DefaultConfigYAML
		} else {
			return domain.Config{}, err
		}
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

// Path returns the resolved config file path.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return filesystem.ExpandPath(l.overridePath)
	}
	if custom := os.Getenv("VOICEHOOK_CONFIG"); custom != "" {
		return filesystem.ExpandPath(custom)
	}
	return filepath.Join(filesystem.UserHomeDir(), ".voicehook", "config.yaml")
}

// hydrateDefaults fills zero-valued fields a partial user config left out.
func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.ConfigFormatVersion == "" {
		cfg.ConfigFormatVersion = "1"
	}
	if cfg.LLM.Parameters.MaxTokens == 0 {
		cfg.LLM.Parameters.MaxTokens = 100
	}
	if cfg.LLM.Parameters.Temperature == 0 {
		cfg.LLM.Parameters.Temperature = 0.3
	}
	if cfg.LLM.Parameters.TimeoutSeconds == 0 {
		cfg.LLM.Parameters.TimeoutSeconds = 10
	}
	if cfg.LLM.CostControl.DailyLimitUSD == 0 {
		cfg.LLM.CostControl.DailyLimitUSD = 0.10
	}
	if cfg.LLM.CostControl.UsageFile == "" {
		cfg.LLM.CostControl.UsageFile = filepath.Join(filesystem.UserHomeDir(), ".voicehook", "usage.json")
	}
	if cfg.Voice.Engine == "" {
		cfg.Voice.Engine = "say"
	}
	if cfg.Voice.MaxSummaryLength == 0 {
		cfg.Voice.MaxSummaryLength = 50
	}
	if cfg.Voice.Rate == 0 {
		cfg.Voice.Rate = 200
	}
	if cfg.Summarization.PromptTemplate == "" {
		cfg.Summarization.PromptTemplate = "Summarize this coding-assistant result in one short spoken sentence, max {max_length} characters: {context}"
	}
	if cfg.Logging.LogFile == "" {
		cfg.Logging.LogFile = filepath.Join(filesystem.UserHomeDir(), ".voicehook", "logs", "voicehook.log")
	}
	if cfg.Logging.LogLevel == "" {
		cfg.Logging.LogLevel = "info"
	}
	if cfg.Advanced.FallbackMessage == "" {
		cfg.Advanced.FallbackMessage = "Task completed"
	}
	return cfg
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
