// Package extract implements the deterministic, pattern-driven context
// extractor. It classifies a raw execution report into an operation kind
// and result status and pulls out the short facts worth surfacing to the
// summary prompt.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/doeshing/voicehook/internal/domain"
	"github.com/doeshing/voicehook/internal/ports"
)

// Extractor implements ports.ContextExtractor. All patterns are compiled
// once at construction; Extract itself performs no I/O and never fails.
type Extractor struct {
	operations []operationMatcher
	success    []*regexp.Regexp
	failure    []*regexp.Regexp
}

// operationMatcher pairs one operation kind with its detection patterns.
// The slice order is the classification priority and is part of the
// observable contract: the first kind with any match wins.
type operationMatcher struct {
	kind     domain.OperationKind
	patterns []*regexp.Regexp
}

var (
	countPhrasePattern = regexp.MustCompile(`\b\d+\s+(?:files?|lines?|tests?|errors?|warnings?)\b`)
	pathPattern        = regexp.MustCompile(`[/~]?[\w\-./]+\.(?:py|js|ts|json|md|txt|yaml|yml)`)
	hashPattern        = regexp.MustCompile(`\b[0-9a-f]{7,40}\b`)
	errorTextPattern   = regexp.MustCompile(`(?i)(?:error|exception|failed):\s*([^\n]+)`)
	filePattern        = regexp.MustCompile(`(?i)(?:modified|created|updated|edited):\s*(\S+\.\w+)`)
	commandPattern     = regexp.MustCompile(`[$>]\s*([a-z][\w\-]+(?:\s+[^\n]+)?)`)
	secondsPattern     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:s|sec|second)s?`)
	minutesPattern     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:m|min|minute)s?`)
)

const (
	maxKeyFactPaths  = 3
	maxKeyFactHashes = 2
	maxFiles         = 5
	maxCommands      = 3
)

// NewExtractor compiles all detection patterns.
func NewExtractor() *Extractor {
	return &Extractor{
		operations: []operationMatcher{
			{domain.OpCodeGeneration, compileAll(
				`creat(ed|ing).*\.(py|js|ts|java|go|rs)`,
				`generat(ed|ing) code`,
				`writ(ing|e) new file`,
				`created new file`,
			)},
			{domain.OpCodeModification, compileAll(
				`modif(y|ied|ying)`,
				`updat(ed|ing)`,
				`edit(ed|ing)`,
				`refactor(ed|ing)`,
			)},
			{domain.OpFileOperation, compileAll(
				`(read|writ(e|ing)|delet(e|ing)|mov(e|ing))\s+file`,
				`file.*created`,
				`director(y|ies) created`,
			)},
			{domain.OpGitOperation, compileAll(
				`git (commit|push|pull|clone|branch|merge|checkout)`,
				`committ(ed|ing)`,
				`push(ed|ing) to`,
			)},
			{domain.OpSearch, compileAll(
				`search(ing|ed) for`,
				`grep`,
				`find.*file`,
			)},
			{domain.OpAnalysis, compileAll(
				`analyz(e|ed|ing)`,
				`review(ed|ing) (code|the)`,
				`inspect(ed|ing)`,
			)},
			{domain.OpTesting, compileAll(
				`test(s|ing|ed)`,
				`pytest`,
				`jest`,
				`unit test`,
				`integration test`,
			)},
			{domain.OpBuild, compileAll(
				`build(ing|s)?`,
				`compil(e|ing|ed)`,
				`npm (run|build)`,
				`bun build`,
			)},
			{domain.OpDebugging, compileAll(
				`debug(ging)?`,
				`fix(ed|ing) (bug|error)`,
				`troubleshoot`,
			)},
			{domain.OpDocumentation, compileAll(
				`document(ed|ing|ation)`,
				`readme`,
				`docstring`,
				`changelog`,
			)},
		},
		failure: compileAll(
			`error:`,
			`failed:`,
			`exception:`,
			`fatal:`,
			`❌`,
			`✗`,
		),
		success: compileAll(
			`success(ful|fully)?`,
			`complete(d)?`,
			`done`,
			`passed`,
			`✓`,
			`✅`,
		),
	}
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// Extract implements ports.ContextExtractor.
func (e *Extractor) Extract(text string) domain.ExecutionContext {
	return domain.ExecutionContext{
		RawText:          text,
		OperationKind:    e.detectOperation(text),
		ResultStatus:     e.detectStatus(text),
		KeyFacts:         extractKeyFacts(text),
		ErrorText:        extractErrorText(text),
		ModifiedFiles:    extractFiles(text),
		ExecutedCommands: extractCommands(text),
		DurationSeconds:  extractDuration(text),
	}
}

func (e *Extractor) detectOperation(text string) domain.OperationKind {
	lower := strings.ToLower(text)
	for _, op := range e.operations {
		for _, pattern := range op.patterns {
			if pattern.MatchString(lower) {
				return op.kind
			}
		}
	}
	return domain.OpUnknown
}

// detectStatus checks error markers before success markers: an error
// keyword anywhere forces error even when success keywords co-occur.
func (e *Extractor) detectStatus(text string) domain.ResultStatus {
	lower := strings.ToLower(text)
	for _, pattern := range e.failure {
		if pattern.MatchString(lower) {
			return domain.StatusError
		}
	}
	for _, pattern := range e.success {
		if pattern.MatchString(lower) {
			return domain.StatusSuccess
		}
	}
	if strings.Contains(lower, "partial") || strings.Contains(lower, "warning") {
		return domain.StatusPartialSuccess
	}
	return domain.StatusUnknown
}

// extractKeyFacts collects count phrases, then path-like tokens (max 3),
// then commit-hash-like tokens (max 2), appended in that order.
func extractKeyFacts(text string) []string {
	var facts []string

	facts = append(facts, countPhrasePattern.FindAllString(text, -1)...)

	paths := pathPattern.FindAllString(text, -1)
	if len(paths) > maxKeyFactPaths {
		paths = paths[:maxKeyFactPaths]
	}
	facts = append(facts, paths...)

	hashes := hashPattern.FindAllString(text, -1)
	if len(hashes) > maxKeyFactHashes {
		hashes = hashes[:maxKeyFactHashes]
	}
	facts = append(facts, hashes...)

	return facts
}

func extractErrorText(text string) string {
	if match := errorTextPattern.FindStringSubmatch(text); match != nil {
		return strings.TrimSpace(match[1])
	}
	return ""
}

func extractFiles(text string) []string {
	var files []string
	for _, match := range filePattern.FindAllStringSubmatch(text, -1) {
		files = append(files, match[1])
	}
	return dedupe(files, maxFiles)
}

// extractCommands captures shell-prompt fragments ($ or > followed by a
// lowercase-initial token plus the rest of that line). The pattern is
// heuristic and may capture trailing prose; downstream prompt text
// tolerates the noise.
func extractCommands(text string) []string {
	var commands []string
	for _, match := range commandPattern.FindAllStringSubmatch(text, -1) {
		commands = append(commands, match[1])
	}
	return dedupe(commands, maxCommands)
}

// extractDuration tries the seconds family first, then minutes scaled by
// 60. Only the first match of one family is used; minutes-and-seconds
// phrases are not combined.
func extractDuration(text string) *float64 {
	if match := secondsPattern.FindStringSubmatch(text); match != nil {
		if value, err := strconv.ParseFloat(match[1], 64); err == nil {
			return &value
		}
	}
	if match := minutesPattern.FindStringSubmatch(text); match != nil {
		if value, err := strconv.ParseFloat(match[1], 64); err == nil {
			value *= 60
			return &value
		}
	}
	return nil
}

func dedupe(values []string, limit int) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == limit {
			break
		}
	}
	return out
}

var _ ports.ContextExtractor = (*Extractor)(nil)
