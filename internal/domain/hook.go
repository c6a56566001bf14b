package domain

import "time"

// Hook event names delivered by the coding assistant.
const (
	EventStop         = "Stop"
	EventNotification = "Notification"
)

// HookInput is the JSON record received on stdin when the assistant fires
// a hook. Output and ExitCode may be absent; absence means empty / zero.
type HookInput struct {
	Output    string  `json:"output"`
	Duration  float64 `json:"duration"`
	ExitCode  int     `json:"exit_code"`
	Timestamp string  `json:"timestamp"`

	// Stop/Notification hook envelope fields.
	SessionID        string `json:"session_id,omitempty"`
	TranscriptPath   string `json:"transcript_path,omitempty"`
	HookEventName    string `json:"hook_event_name,omitempty"`
	StopHookActive   bool   `json:"stop_hook_active,omitempty"`
	Message          string `json:"message,omitempty"`
	NotificationType string `json:"notification_type,omitempty"`
}

// NotificationRecord is one spoken notification, persisted to history.
type NotificationRecord struct {
	ID              string        `json:"id"`
	Timestamp       time.Time     `json:"timestamp"`
	Summary         string        `json:"summary"`
	OperationKind   OperationKind `json:"operation_kind"`
	ResultStatus    ResultStatus  `json:"result_status"`
	Model           string        `json:"model,omitempty"`
	DurationSeconds float64       `json:"duration_seconds"`
	// Source records which path produced the summary: "llm" or "fallback".
	Source string `json:"source"`
}
