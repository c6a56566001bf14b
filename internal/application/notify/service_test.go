package notify

import (
	"context"
	"testing"

	"github.com/doeshing/voicehook/internal/application/summarize"
	"github.com/doeshing/voicehook/internal/domain"
)

type stubSummarizer struct {
	summary summarize.Summary
	inputs  []string
}

func (s *stubSummarizer) Summarize(ctx context.Context, rawOutput string, maxLength int, fallbackText string) summarize.Summary {
	s.inputs = append(s.inputs, rawOutput)
	return s.summary
}

type stubSpeech struct {
	spoken []string
	async  []string
}

func (s *stubSpeech) Speak(ctx context.Context, message string) error {
	s.spoken = append(s.spoken, message)
	return nil
}

func (s *stubSpeech) SpeakAsync(message string) error {
	s.async = append(s.async, message)
	return nil
}

func (s *stubSpeech) AvailableVoices(ctx context.Context) ([]string, error) {
	return []string{"Samantha"}, nil
}

type stubHistory struct {
	saved []domain.NotificationRecord
}

func (h *stubHistory) Save(record domain.NotificationRecord) error {
	h.saved = append(h.saved, record)
	return nil
}

func (h *stubHistory) Recent(limit int) ([]domain.NotificationRecord, error) { return nil, nil }
func (h *stubHistory) Clear() error                                          { return nil }

type stubTranscript struct {
	tail string
}

func (t *stubTranscript) AssistantTail(path string, limit int) (string, error) {
	return t.tail, nil
}

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

func testConfig() domain.Config {
	return domain.Config{
		Enabled: true,
		Voice:   domain.VoiceSettings{MaxSummaryLength: 50},
		Triggers: domain.TriggerSettings{
			OnCompletion:       true,
			OnError:            true,
			MinDurationSeconds: 5,
			ErrorKeywords:      []string{"error", "failed"},
		},
		Advanced: domain.AdvancedSettings{FallbackMessage: "Task completed"},
	}
}

func newTestService(cfg domain.Config) (*Service, *stubSummarizer, *stubSpeech, *stubHistory) {
	summarizer := &stubSummarizer{summary: summarize.Summary{
		Text:   "Ran tests successfully",
		Source: "llm",
		Model:  "claude-haiku",
		Context: domain.ExecutionContext{
			OperationKind: domain.OpTesting,
			ResultStatus:  domain.StatusSuccess,
		},
	}}
	speech := &stubSpeech{}
	history := &stubHistory{}
	svc := &Service{
		Config:     cfg,
		Summarizer: summarizer,
		Speech:     speech,
		History:    history,
		Transcript: &stubTranscript{},
		Logger:     nopLogger{},
	}
	return svc, summarizer, speech, history
}

func TestHandleHookSpeaksAndRecords(t *testing.T) {
	svc, _, speech, history := newTestService(testConfig())

	spoken, err := svc.HandleHook(context.Background(), domain.HookInput{
		Output:   "All 12 tests passed",
		Duration: 10,
	})
	if err != nil {
		t.Fatalf("HandleHook() error = %v", err)
	}
	if spoken != "Ran tests successfully" {
		t.Fatalf("spoken = %q", spoken)
	}
	if len(speech.spoken) != 1 {
		t.Fatalf("spoken messages = %v", speech.spoken)
	}

	if len(history.saved) != 1 {
		t.Fatalf("history saves = %d, want 1", len(history.saved))
	}
	rec := history.saved[0]
	if rec.Summary != "Ran tests successfully" || rec.Model != "claude-haiku" || rec.Source != "llm" {
		t.Fatalf("record = %+v", rec)
	}
	if rec.ID == "" {
		t.Fatal("record must carry a generated ID")
	}
}

func TestHandleHookStopHookActiveGuard(t *testing.T) {
	svc, summarizer, speech, _ := newTestService(testConfig())

	spoken, err := svc.HandleHook(context.Background(), domain.HookInput{
		Output:         "output",
		Duration:       10,
		StopHookActive: true,
	})
	if err != nil || spoken != "" {
		t.Fatalf("HandleHook() = (%q, %v), want skip", spoken, err)
	}
	if len(summarizer.inputs) != 0 || len(speech.spoken) != 0 {
		t.Fatal("active stop hook must short-circuit everything")
	}
}

func TestHandleHookBelowMinDurationSkips(t *testing.T) {
	svc, _, speech, _ := newTestService(testConfig())

	spoken, err := svc.HandleHook(context.Background(), domain.HookInput{
		Output:   "quick thing",
		Duration: 1,
	})
	if err != nil || spoken != "" {
		t.Fatalf("HandleHook() = (%q, %v), want skip", spoken, err)
	}
	if len(speech.spoken) != 0 {
		t.Fatalf("spoken = %v", speech.spoken)
	}
}

func TestHandleHookErrorKeywordGating(t *testing.T) {
	cfg := testConfig()
	cfg.Triggers.OnCompletion = false
	cfg.Triggers.OnError = true
	svc, _, speech, _ := newTestService(cfg)

	// A clean completion is gated off.
	spoken, err := svc.HandleHook(context.Background(), domain.HookInput{
		Output:   "all good",
		Duration: 10,
	})
	if err != nil || spoken != "" {
		t.Fatalf("clean run: HandleHook() = (%q, %v), want skip", spoken, err)
	}

	// An error keyword flips it to the error trigger.
	spoken, err = svc.HandleHook(context.Background(), domain.HookInput{
		Output:   "build FAILED with 2 problems",
		Duration: 10,
	})
	if err != nil || spoken == "" {
		t.Fatalf("error run: HandleHook() = (%q, %v), want spoken", spoken, err)
	}
	if len(speech.spoken) != 1 {
		t.Fatalf("spoken = %v", speech.spoken)
	}
}

func TestHandleHookNonZeroExitTreatedAsError(t *testing.T) {
	cfg := testConfig()
	cfg.Triggers.OnCompletion = false
	svc, _, speech, _ := newTestService(cfg)

	spoken, err := svc.HandleHook(context.Background(), domain.HookInput{
		Output:   "done",
		Duration: 10,
		ExitCode: 2,
	})
	if err != nil || spoken == "" {
		t.Fatalf("HandleHook() = (%q, %v), want spoken", spoken, err)
	}
	if len(speech.spoken) != 1 {
		t.Fatalf("spoken = %v", speech.spoken)
	}
}

func TestHandleHookDisabledConfigSkips(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	svc, _, speech, _ := newTestService(cfg)

	spoken, err := svc.HandleHook(context.Background(), domain.HookInput{
		Output:   "output",
		Duration: 10,
	})
	if err != nil || spoken != "" || len(speech.spoken) != 0 {
		t.Fatalf("disabled config must skip, got (%q, %v)", spoken, err)
	}
}

func TestHandleHookUsesTranscriptWhenOutputEmpty(t *testing.T) {
	svc, summarizer, _, _ := newTestService(testConfig())
	svc.Transcript = &stubTranscript{tail: "I finished refactoring the parser."}

	_, err := svc.HandleHook(context.Background(), domain.HookInput{
		Duration:       10,
		TranscriptPath: "/tmp/session.jsonl",
	})
	if err != nil {
		t.Fatalf("HandleHook() error = %v", err)
	}
	if len(summarizer.inputs) != 1 || summarizer.inputs[0] != "I finished refactoring the parser." {
		t.Fatalf("summarizer inputs = %v", summarizer.inputs)
	}
}

func TestHandleHookNotificationEventSpeaksMessageDirectly(t *testing.T) {
	svc, summarizer, speech, history := newTestService(testConfig())

	spoken, err := svc.HandleHook(context.Background(), domain.HookInput{
		HookEventName: domain.EventNotification,
		Message:       "Waiting for your input",
	})
	if err != nil {
		t.Fatalf("HandleHook() error = %v", err)
	}
	if spoken != "Waiting for your input" {
		t.Fatalf("spoken = %q", spoken)
	}
	if len(summarizer.inputs) != 0 {
		t.Fatal("notification events must bypass summarization")
	}
	if len(speech.spoken) != 1 {
		t.Fatalf("spoken = %v", speech.spoken)
	}
	if len(history.saved) != 1 || history.saved[0].Source != "notification" {
		t.Fatalf("history = %+v", history.saved)
	}
}

func TestHandleHookAsyncVoice(t *testing.T) {
	cfg := testConfig()
	cfg.Voice.Async = true
	svc, _, speech, _ := newTestService(cfg)

	_, err := svc.HandleHook(context.Background(), domain.HookInput{
		Output:   "all 3 tests passed",
		Duration: 10,
	})
	if err != nil {
		t.Fatalf("HandleHook() error = %v", err)
	}
	if len(speech.async) != 1 || len(speech.spoken) != 0 {
		t.Fatalf("async=%v sync=%v, want async only", speech.async, speech.spoken)
	}
}

func TestHandleHookEmptySummaryFallsBackToFixedPhrase(t *testing.T) {
	svc, summarizer, speech, _ := newTestService(testConfig())
	summarizer.summary = summarize.Summary{}

	spoken, err := svc.HandleHook(context.Background(), domain.HookInput{
		Output:   "something happened",
		Duration: 10,
	})
	if err != nil {
		t.Fatalf("HandleHook() error = %v", err)
	}
	if spoken != "Task completed" {
		t.Fatalf("spoken = %q, want fallback message", spoken)
	}
	if len(speech.spoken) != 1 {
		t.Fatalf("spoken = %v", speech.spoken)
	}
}
