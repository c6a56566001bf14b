// Package app wires infrastructure adapters into application services.
package app

import (
	"context"

	"github.com/doeshing/voicehook/internal/application/doctor"
	"github.com/doeshing/voicehook/internal/application/notify"
	"github.com/doeshing/voicehook/internal/application/summarize"
	"github.com/doeshing/voicehook/internal/domain"
	"github.com/doeshing/voicehook/internal/infrastructure/config"
	"github.com/doeshing/voicehook/internal/infrastructure/extract"
	"github.com/doeshing/voicehook/internal/infrastructure/history"
	"github.com/doeshing/voicehook/internal/infrastructure/llm"
	"github.com/doeshing/voicehook/internal/infrastructure/transcript"
	"github.com/doeshing/voicehook/internal/infrastructure/usage"
	"github.com/doeshing/voicehook/internal/infrastructure/voice"
	"github.com/doeshing/voicehook/internal/pkg/filesystem"
	"github.com/doeshing/voicehook/internal/pkg/logger"
	"github.com/doeshing/voicehook/internal/ports"
)

// Container holds the wired application services.
type Container struct {
	Config        domain.Config
	ConfigLoader  *config.FileLoader
	Logger        ports.Logger
	Usage         ports.UsageStore
	History       *history.SQLiteStore
	Speech        ports.SpeechEngine
	NotifyService *notify.Service
	DoctorService *doctor.Service
}

// BuildContainer loads config and constructs the dependency graph.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	loader := config.NewFileLoader("")
	cfg, err := loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := buildLogger(cfg.Logging, verbose)

	ledger := usage.NewFileLedger(filesystem.ExpandPath(cfg.LLM.CostControl.UsageFile), log)
	client := llm.NewClient(cfg.LLM, llm.NewFactory(), ledger, log)

	summarizer := &summarize.Service{
		Extractor: extract.NewExtractor(),
		Client:    client,
		Settings:  cfg.Summarization,
		Logger:    log,
	}

	speech := voice.NewSayEngine(cfg.Voice, log)
	historyStore := history.NewSQLiteStore("")

	notifyService := &notify.Service{
		Config:     cfg,
		Summarizer: summarizer,
		Speech:     speech,
		History:    historyStore,
		Transcript: transcript.NewReader(),
		Logger:     log,
	}

	doctorService := &doctor.Service{
		ConfigProvider: loader,
		Speech:         speech,
	}

	return &Container{
		Config:        cfg,
		ConfigLoader:  loader,
		Logger:        log,
		Usage:         ledger,
		History:       historyStore,
		Speech:        speech,
		NotifyService: notifyService,
		DoctorService: doctorService,
	}, nil
}

// buildLogger prefers the persistent file log when enabled, falling back
// to stderr.
func buildLogger(settings domain.LoggingSettings, verbose bool) ports.Logger {
	if settings.Enabled {
		level := settings.LogLevel
		if verbose {
			level = "debug"
		}
		if fileLog, err := logger.NewFile(filesystem.ExpandPath(settings.LogFile), level); err == nil {
			return fileLog
		}
	}
	return logger.NewStd(verbose)
}
