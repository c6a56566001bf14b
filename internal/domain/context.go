package domain

// OperationKind is the closed category describing what the underlying
// assistant action was.
type OperationKind string

const (
	OpCodeGeneration   OperationKind = "code-generation"
	OpCodeModification OperationKind = "code-modification"
	OpFileOperation    OperationKind = "file-operation"
	OpGitOperation     OperationKind = "git-operation"
	OpSearch           OperationKind = "search"
	OpAnalysis         OperationKind = "analysis"
	OpTesting          OperationKind = "testing"
	OpBuild            OperationKind = "build"
	OpDebugging        OperationKind = "debugging"
	OpDocumentation    OperationKind = "documentation"
	OpUnknown          OperationKind = "unknown"
)

// ResultStatus is the closed category describing the outcome of that action.
type ResultStatus string

const (
	StatusSuccess        ResultStatus = "success"
	StatusPartialSuccess ResultStatus = "partial-success"
	StatusFailure        ResultStatus = "failure"
	StatusError          ResultStatus = "error"
	StatusCancelled      ResultStatus = "cancelled"
	StatusUnknown        ResultStatus = "unknown"
)

// ExecutionContext is the structured record extracted from one raw
// execution report. Built once per extraction call, then read-only.
type ExecutionContext struct {
	RawText          string
	OperationKind    OperationKind
	ResultStatus     ResultStatus
	KeyFacts         []string
	ErrorText        string
	ModifiedFiles    []string
	ExecutedCommands []string
	// DurationSeconds is nil when the text carries no duration phrase.
	DurationSeconds *float64
}
