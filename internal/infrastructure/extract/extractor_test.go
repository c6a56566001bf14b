package extract

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/doeshing/voicehook/internal/domain"
)

func TestDetectOperation(t *testing.T) {
	cases := []struct {
		name string
		text string
		want domain.OperationKind
	}{
		{"code generation", "Created new file test.py with 100 lines", domain.OpCodeGeneration},
		{"code modification", "Modified src/main.js to handle nil input", domain.OpCodeModification},
		{"git operation", "Ran git commit -m 'initial'", domain.OpGitOperation},
		{"search", "Searching for usages of Extract", domain.OpSearch},
		{"testing", "All 12 tests passed", domain.OpTesting},
		{"build", "Compiling the project", domain.OpBuild},
		{"update beats documentation", "Updated the README section", domain.OpCodeModification},
		{"unknown", "Hello there", domain.OpUnknown},
	}

	e := NewExtractor()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Extract(tc.text)
			if got.OperationKind != tc.want {
				t.Fatalf("OperationKind = %q, want %q", got.OperationKind, tc.want)
			}
		})
	}
}

func TestDetectOperationPriorityOrder(t *testing.T) {
	e := NewExtractor()

	// Both generation and testing keywords present; generation comes
	// first in the priority order and must win.
	got := e.Extract("Created new file runner_test.go and ran tests")
	if got.OperationKind != domain.OpCodeGeneration {
		t.Fatalf("OperationKind = %q, want %q", got.OperationKind, domain.OpCodeGeneration)
	}
}

func TestDetectStatusErrorOverridesSuccess(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("Tests passed successfully but then error: connection timeout")
	if got.ResultStatus != domain.StatusError {
		t.Fatalf("ResultStatus = %q, want %q", got.ResultStatus, domain.StatusError)
	}
	if got.ErrorText != "connection timeout" {
		t.Fatalf("ErrorText = %q, want %q", got.ErrorText, "connection timeout")
	}
}

func TestDetectStatus(t *testing.T) {
	cases := []struct {
		name string
		text string
		want domain.ResultStatus
	}{
		{"success", "Operation completed", domain.StatusSuccess},
		{"error marker", "fatal: not a git repository", domain.StatusError},
		{"partial", "2 warnings remain", domain.StatusPartialSuccess},
		{"unknown", "nothing of note here", domain.StatusUnknown},
	}

	e := NewExtractor()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Extract(tc.text)
			if got.ResultStatus != tc.want {
				t.Fatalf("ResultStatus = %q, want %q", got.ResultStatus, tc.want)
			}
		})
	}
}

func TestExtractKeyFactsOrderAndCaps(t *testing.T) {
	e := NewExtractor()

	text := "Refactored 3 files and 120 lines across a.py b.js c.ts d.md, commit deadbeef1 then cafebabe2 then abc1234 pushed"
	got := e.Extract(text)

	want := []string{
		"3 files",
		"120 lines",
		"a.py",
		"b.js",
		"c.ts",
		"deadbeef1",
		"cafebabe2",
	}
	if diff := cmp.Diff(want, got.KeyFacts); diff != "" {
		t.Fatalf("KeyFacts mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractFilesDedupesAndCaps(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("Modified: a.py\nModified: b.py\nModified: a.py\nUpdated: c.py")
	want := []string{"a.py", "b.py", "c.py"}
	if diff := cmp.Diff(want, got.ModifiedFiles); diff != "" {
		t.Fatalf("ModifiedFiles mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractCommandsDedupes(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("$ go vet ./...\n$ go vet ./...\n$ make lint")
	want := []string{"go vet ./...", "make lint"}
	if diff := cmp.Diff(want, got.ExecutedCommands); diff != "" {
		t.Fatalf("ExecutedCommands mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractDuration(t *testing.T) {
	e := NewExtractor()

	t.Run("seconds", func(t *testing.T) {
		got := e.Extract("finished in 2.5s")
		if got.DurationSeconds == nil || *got.DurationSeconds != 2.5 {
			t.Fatalf("DurationSeconds = %v, want 2.5", got.DurationSeconds)
		}
	})

	t.Run("minutes scaled", func(t *testing.T) {
		got := e.Extract("took 3 minutes overall")
		if got.DurationSeconds == nil || *got.DurationSeconds != 180 {
			t.Fatalf("DurationSeconds = %v, want 180", got.DurationSeconds)
		}
	})

	t.Run("absent", func(t *testing.T) {
		got := e.Extract("no timing info")
		if got.DurationSeconds != nil {
			t.Fatalf("DurationSeconds = %v, want nil", got.DurationSeconds)
		}
	})
}

func TestExtractNeverFailsOnEmptyInput(t *testing.T) {
	e := NewExtractor()

	got := e.Extract("")
	if got.OperationKind != domain.OpUnknown {
		t.Fatalf("OperationKind = %q, want %q", got.OperationKind, domain.OpUnknown)
	}
	if got.ResultStatus != domain.StatusUnknown {
		t.Fatalf("ResultStatus = %q, want %q", got.ResultStatus, domain.StatusUnknown)
	}
	if len(got.KeyFacts) != 0 || got.ErrorText != "" {
		t.Fatalf("expected empty facts, got %+v", got)
	}
}
