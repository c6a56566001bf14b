// Package voice wraps the macOS `say` command as the speech engine.
package voice

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/doeshing/voicehook/internal/domain"
	"github.com/doeshing/voicehook/internal/ports"
)

const (
	defaultVoice = "Samantha"
	defaultRate  = 200
	minRate      = 90
	maxRate      = 300
)

// supportedVoices is the validated set; anything else falls back to the
// default with a warning.
var supportedVoices = []string{"Samantha", "Alex", "Ting-Ting", "Mei-Jia", "Sin-ji"}

// SayEngine implements ports.SpeechEngine via the `say` subprocess.
type SayEngine struct {
	voiceName string
	rate      int
	logger    ports.Logger
}

// NewSayEngine builds an engine from the voice settings, clamping the
// rate and validating the voice name.
func NewSayEngine(settings domain.VoiceSettings, logger ports.Logger) *SayEngine {
	voiceName := settings.VoiceName
	if !isSupported(voiceName) {
		if voiceName != "" {
			logger.Warn("unsupported voice, using default", map[string]interface{}{
				"voice":   voiceName,
				"default": defaultVoice,
			})
		}
		voiceName = defaultVoice
	}

	rate := settings.Rate
	if rate < minRate || rate > maxRate {
		if rate != 0 {
			logger.Warn("rate out of range, using default", map[string]interface{}{
				"rate":    rate,
				"default": defaultRate,
			})
		}
		rate = defaultRate
	}

	return &SayEngine{voiceName: voiceName, rate: rate, logger: logger}
}

func isSupported(voice string) bool {
	for _, v := range supportedVoices {
		if v == voice {
			return true
		}
	}
	return false
}

// Speak plays the message and waits for completion.
func (e *SayEngine) Speak(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		e.logger.Warn("empty message, skipping voice playback", nil)
		return nil
	}
	cmd := exec.CommandContext(ctx, "say", "-v", e.voiceName, "-r", strconv.Itoa(e.rate), message)
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("say: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// SpeakAsync starts playback without waiting for it to finish.
func (e *SayEngine) SpeakAsync(message string) error {
	if strings.TrimSpace(message) == "" {
		e.logger.Warn("empty message, skipping voice playback", nil)
		return nil
	}
	cmd := exec.Command("say", "-v", e.voiceName, "-r", strconv.Itoa(e.rate), message)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("say: %w", err)
	}
	// Reap the child when it exits; playback outcome is not observed.
	go func() { _ = cmd.Wait() }()
	return nil
}

// AvailableVoices lists the voices installed on the system.
func (e *SayEngine) AvailableVoices(ctx context.Context) ([]string, error) {
	cmd := exec.CommandContext(ctx, "say", "-v", "?")
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("say -v ?: %w", err)
	}
	var voices []string
	for _, line := range strings.Split(string(output), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			voices = append(voices, fields[0])
		}
	}
	if len(voices) == 0 {
		return nil, errors.New("no voices reported")
	}
	return voices, nil
}

// VoiceName returns the validated voice in use.
func (e *SayEngine) VoiceName() string {
	return e.voiceName
}

var _ ports.SpeechEngine = (*SayEngine)(nil)
