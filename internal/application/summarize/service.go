// Package summarize turns a raw execution report into a short spoken
// notification. It orchestrates context extraction, prompt construction
// and the generation client, and degrades to a fully offline summary
// when generation is unavailable or fails.
package summarize

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/doeshing/voicehook/internal/domain"
	"github.com/doeshing/voicehook/internal/ports"
)

// Context strings are truncated before prompt interpolation so a huge
// report cannot blow up the request.
const maxContextChars = 2000

// Summary is the outcome of one summarization, carrying enough detail
// for history recording.
type Summary struct {
	Text    string
	Context domain.ExecutionContext
	// Model is the identifier that produced the text; empty on the
	// offline fallback path.
	Model string
	// Source is "llm" or "fallback".
	Source string
}

// Service implements the summarization pipeline. Summarize is total:
// any internal failure degrades to the offline fallback summary.
type Service struct {
	Extractor ports.ContextExtractor
	Client    ports.GenerationClient
	Settings  domain.SummarySettings
	Logger    ports.Logger
}

// Summarize produces a summary of rawOutput no longer than maxLength
// characters. fallbackText is the phrase used when the operation kind is
// unknown on the offline path.
func (s *Service) Summarize(ctx context.Context, rawOutput string, maxLength int, fallbackText string) Summary {
	extracted := s.Extractor.Extract(rawOutput)

	contextStr := s.buildContextString(extracted)
	prompt := s.buildPrompt(contextStr, maxLength)

	text, model, err := s.Client.GenerateSummary(ctx, prompt, maxLength)
	if err != nil {
		s.Logger.Error("generation failed, using offline fallback", err, nil)
	}
	if err == nil && text != "" {
		// The client already truncates; enforce the bound here anyway.
		return Summary{
			Text:    truncateRunes(text, maxLength),
			Context: extracted,
			Model:   model,
			Source:  "llm",
		}
	}

	return Summary{
		Text:    truncateRunes(offlineSummary(extracted, fallbackText), maxLength),
		Context: extracted,
		Source:  "fallback",
	}
}

// buildContextString assembles the semicolon-joined context fed to the
// prompt template. Operation kind, status and key facts are gated by the
// include flags; error text, files and duration are always included when
// present.
func (s *Service) buildContextString(extracted domain.ExecutionContext) string {
	var parts []string

	if s.Settings.Include.OperationKind {
		parts = append(parts, fmt.Sprintf("Operation: %s", extracted.OperationKind))
	}
	if s.Settings.Include.ResultStatus {
		parts = append(parts, fmt.Sprintf("Status: %s", extracted.ResultStatus))
	}
	if s.Settings.Include.KeyFacts && len(extracted.KeyFacts) > 0 {
		parts = append(parts, fmt.Sprintf("Data: %s", strings.Join(extracted.KeyFacts, ", ")))
	}
	if extracted.ErrorText != "" {
		parts = append(parts, fmt.Sprintf("Error: %s", extracted.ErrorText))
	}
	if len(extracted.ModifiedFiles) > 0 {
		parts = append(parts, fmt.Sprintf("Files: %s", strings.Join(extracted.ModifiedFiles, ", ")))
	}
	if extracted.DurationSeconds != nil {
		parts = append(parts, fmt.Sprintf("Duration: %ss", strconv.FormatFloat(*extracted.DurationSeconds, 'f', -1, 64)))
	}

	return strings.Join(parts, "; ")
}

func (s *Service) buildPrompt(contextStr string, maxLength int) string {
	contextStr = truncateRunes(contextStr, maxContextChars)
	prompt := s.Settings.PromptTemplate
	prompt = strings.ReplaceAll(prompt, "{max_length}", strconv.Itoa(maxLength))
	prompt = strings.ReplaceAll(prompt, "{context}", contextStr)
	return prompt
}

// fallbackPhrases maps each operation kind to a fixed short phrase for
// the offline path. Unknown uses the caller-supplied fallback text.
var fallbackPhrases = map[domain.OperationKind]string{
	domain.OpCodeGeneration:   "Generated code",
	domain.OpCodeModification: "Modified code",
	domain.OpFileOperation:    "Processed files",
	domain.OpGitOperation:     "Ran a git operation",
	domain.OpSearch:           "Searched the codebase",
	domain.OpAnalysis:         "Analyzed the code",
	domain.OpTesting:          "Ran tests",
	domain.OpBuild:            "Built the project",
	domain.OpDebugging:        "Fixed an issue",
	domain.OpDocumentation:    "Updated documentation",
}

// statusSuffixes carry their own leading separator; phrase and suffix
// are concatenated directly. Unknown maps to the empty string.
var statusSuffixes = map[domain.ResultStatus]string{
	domain.StatusSuccess:        " successfully",
	domain.StatusPartialSuccess: " with partial success",
	domain.StatusFailure:        " unsuccessfully",
	domain.StatusError:          " with errors",
}

// offlineSummary builds a summary from the fixed phrase tables without
// any generation call. This path cannot fail.
func offlineSummary(extracted domain.ExecutionContext, fallbackText string) string {
	phrase, ok := fallbackPhrases[extracted.OperationKind]
	if !ok {
		phrase = fallbackText
	}
	return phrase + statusSuffixes[extracted.ResultStatus]
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
