// Package domain defines core business entities and value objects for voicehook.
//
// The domain layer is independent of infrastructure concerns and represents pure
// business logic and data structures.
package domain

// Config mirrors ~/.voicehook/config.yaml.
type Config struct {
	ConfigFormatVersion string           `yaml:"config_format_version"`
	Enabled             bool             `yaml:"enabled"`
	LLM                 LLMSettings      `yaml:"llm"`
	Voice               VoiceSettings    `yaml:"voice"`
	Triggers            TriggerSettings  `yaml:"triggers"`
	Summarization       SummarySettings  `yaml:"summarization"`
	Logging             LoggingSettings  `yaml:"logging"`
	Advanced            AdvancedSettings `yaml:"advanced"`
}

// LLMSettings groups everything the generation client needs.
type LLMSettings struct {
	Models      ModelSlots           `yaml:"models"`
	Parameters  GenerationParameters `yaml:"parameters"`
	CostControl CostControl          `yaml:"cost_control"`
}

// ModelSlots holds the three optional model identifiers tried in order.
type ModelSlots struct {
	Primary  string `yaml:"primary"`
	Fallback string `yaml:"fallback"`
	Local    string `yaml:"local"`
}

// Priority returns the configured model identifiers in fixed try order,
// skipping any slot left unset. The order never changes at runtime.
func (m ModelSlots) Priority() []string {
	var models []string
	if m.Primary != "" {
		models = append(models, m.Primary)
	}
	if m.Fallback != "" {
		models = append(models, m.Fallback)
	}
	if m.Local != "" {
		models = append(models, m.Local)
	}
	return models
}

// GenerationParameters are applied to every model attempt.
type GenerationParameters struct {
	MaxTokens      int     `yaml:"max_tokens"`
	Temperature    float64 `yaml:"temperature"`
	TimeoutSeconds int     `yaml:"timeout"`
}

// CostControl configures daily budget enforcement and usage accounting.
type CostControl struct {
	DailyLimitUSD float64 `yaml:"daily_limit_usd"`
	UsageTracking bool    `yaml:"usage_tracking"`
	UsageFile     string  `yaml:"usage_file"`
}

// VoiceSettings configures the speech engine.
type VoiceSettings struct {
	Engine           string `yaml:"engine"`
	VoiceName        string `yaml:"voice_name"`
	Rate             int    `yaml:"rate"`
	Volume           int    `yaml:"volume"`
	MaxSummaryLength int    `yaml:"max_summary_length"`
	Async            bool   `yaml:"async"`
}

// TriggerSettings decides whether a hook event produces a notification at all.
type TriggerSettings struct {
	OnCompletion       bool     `yaml:"on_completion"`
	OnError            bool     `yaml:"on_error"`
	MinDurationSeconds float64  `yaml:"min_duration_seconds"`
	ErrorKeywords      []string `yaml:"error_keywords"`
}

// SummarySettings shapes the generated summary.
type SummarySettings struct {
	Language       string        `yaml:"language"`
	Format         string        `yaml:"format"`
	Include        IncludeFields `yaml:"include"`
	PromptTemplate string        `yaml:"prompt_template"`
}

// IncludeFields gates which extracted fields enter the prompt context string.
// Error text, modified files and duration are always included when present.
type IncludeFields struct {
	OperationKind bool `yaml:"operation_kind"`
	ResultStatus  bool `yaml:"result_status"`
	KeyFacts      bool `yaml:"key_facts"`
}

// LoggingSettings controls the process log file.
type LoggingSettings struct {
	Enabled  bool   `yaml:"enabled"`
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
}

// AdvancedSettings captures escape hatches.
type AdvancedSettings struct {
	FallbackMessage string `yaml:"fallback_message"`
}
