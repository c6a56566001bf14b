// Package notify orchestrates one hook invocation end-to-end: trigger
// evaluation, summarization, speech output and history recording.
package notify

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/voicehook/internal/application/summarize"
	"github.com/doeshing/voicehook/internal/domain"
	"github.com/doeshing/voicehook/internal/ports"
)

const (
	defaultFallbackMessage = "Task completed"
	defaultMaxLength       = 50
	transcriptTailMessages = 5
)

// Summarizer is the slice of the summarize service this package needs.
type Summarizer interface {
	Summarize(ctx context.Context, rawOutput string, maxLength int, fallbackText string) summarize.Summary
}

// Service handles a single hook event. Every failure past the trigger
// check degrades: the user hears at least the fallback phrase rather
// than silence.
type Service struct {
	Config     domain.Config
	Summarizer Summarizer
	Speech     ports.SpeechEngine
	History    ports.HistoryRepository
	Transcript ports.TranscriptReader
	Logger     ports.Logger
}

// HandleHook processes one hook input. It returns the spoken text, or
// empty when the event was skipped.
func (s *Service) HandleHook(ctx context.Context, input domain.HookInput) (string, error) {
	if s.Summarizer == nil || s.Speech == nil || s.Logger == nil {
		return "", errors.New("notify.Service dependencies not satisfied")
	}

	// Loop guard: a Stop hook fired while another one is active must
	// exit immediately.
	if input.StopHookActive {
		s.Logger.Warn("stop hook already active, skipping", nil)
		return "", nil
	}

	if input.HookEventName == domain.EventNotification {
		return s.handleNotification(ctx, input)
	}

	if !s.shouldTrigger(input) {
		s.Logger.Info("trigger conditions not met, skipping", map[string]interface{}{
			"duration":  input.Duration,
			"exit_code": input.ExitCode,
		})
		return "", nil
	}

	output := s.resolveOutput(input)

	maxLength := s.Config.Voice.MaxSummaryLength
	if maxLength <= 0 {
		maxLength = defaultMaxLength
	}
	fallback := s.Config.Advanced.FallbackMessage
	if fallback == "" {
		fallback = defaultFallbackMessage
	}

	summary := s.Summarizer.Summarize(ctx, output, maxLength, fallback)
	text := summary.Text
	if text == "" {
		text = fallback
	}

	s.speak(ctx, text)
	s.recordHistory(domain.NotificationRecord{
		ID:              uuid.NewString(),
		Timestamp:       time.Now(),
		Summary:         text,
		OperationKind:   summary.Context.OperationKind,
		ResultStatus:    summary.Context.ResultStatus,
		Model:           summary.Model,
		DurationSeconds: input.Duration,
		Source:          summary.Source,
	})

	return text, nil
}

// handleNotification speaks an assistant notification message directly,
// without summarization.
func (s *Service) handleNotification(ctx context.Context, input domain.HookInput) (string, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		s.Logger.Info("notification event without message, skipping", nil)
		return "", nil
	}

	s.speak(ctx, message)
	s.recordHistory(domain.NotificationRecord{
		ID:            uuid.NewString(),
		Timestamp:     time.Now(),
		Summary:       message,
		OperationKind: domain.OpUnknown,
		ResultStatus:  domain.StatusUnknown,
		Source:        "notification",
	})
	return message, nil
}

// shouldTrigger is the threshold/keyword check deciding whether this
// event produces a notification at all.
func (s *Service) shouldTrigger(input domain.HookInput) bool {
	if !s.Config.Enabled {
		return false
	}

	if input.Duration < s.Config.Triggers.MinDurationSeconds {
		return false
	}

	if input.ExitCode != 0 || s.containsErrorKeyword(input.Output) {
		return s.Config.Triggers.OnError
	}

	return s.Config.Triggers.OnCompletion
}

func (s *Service) containsErrorKeyword(output string) bool {
	lower := strings.ToLower(output)
	for _, keyword := range s.Config.Triggers.ErrorKeywords {
		if keyword != "" && strings.Contains(lower, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

// resolveOutput prefers the inline output, falls back to the transcript
// tail, and finally to a neutral placeholder so summarization always has
// something to chew on.
func (s *Service) resolveOutput(input domain.HookInput) string {
	if strings.TrimSpace(input.Output) != "" {
		return input.Output
	}

	if input.TranscriptPath != "" && s.Transcript != nil {
		tail, err := s.Transcript.AssistantTail(input.TranscriptPath, transcriptTailMessages)
		if err != nil {
			s.Logger.Warn("transcript read failed", map[string]interface{}{
				"path":  input.TranscriptPath,
				"error": err.Error(),
			})
		} else if strings.TrimSpace(tail) != "" {
			return tail
		}
	}

	return defaultFallbackMessage
}

// speak plays the message sync or async per config. Speech failure is
// logged, never fatal.
func (s *Service) speak(ctx context.Context, message string) {
	var err error
	if s.Config.Voice.Async {
		err = s.Speech.SpeakAsync(message)
	} else {
		err = s.Speech.Speak(ctx, message)
	}
	if err != nil {
		s.Logger.Error("voice playback failed", err, map[string]interface{}{
			"async": s.Config.Voice.Async,
		})
	}
}

func (s *Service) recordHistory(record domain.NotificationRecord) {
	if s.History == nil {
		return
	}
	if err := s.History.Save(record); err != nil {
		s.Logger.Warn("history save failed", map[string]interface{}{"error": err.Error()})
	}
}
