package llm

import (
	"testing"
)

func TestForModelRouting(t *testing.T) {
	cases := []struct {
		modelID string
		want    string
	}{
		{"gemini/gemini-2.0-flash-exp", "gemini"},
		{"claude-3-haiku-20240307", "anthropic"},
		{"anthropic/claude-sonnet", "anthropic"},
		{"gpt-4o-mini", "openai"},
		{"ollama/llama3.2", "ollama"},
	}

	factory := NewFactory()
	for _, tc := range cases {
		t.Run(tc.modelID, func(t *testing.T) {
			provider, err := factory.ForModel(tc.modelID)
			if err != nil {
				t.Fatalf("ForModel(%q) error = %v", tc.modelID, err)
			}
			if provider.Name() != tc.want {
				t.Fatalf("provider = %q, want %q", provider.Name(), tc.want)
			}
			if provider.ModelID() != tc.modelID {
				t.Fatalf("ModelID() = %q, want %q", provider.ModelID(), tc.modelID)
			}
		})
	}
}

func TestForModelUnknownVendor(t *testing.T) {
	if _, err := NewFactory().ForModel("mystery-9000"); err == nil {
		t.Fatal("expected error for unroutable model")
	}
}

func TestAPIModelIDStripsVendorPrefix(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"gemini/gemini-2.0-flash-exp", "gemini-2.0-flash-exp"},
		{"ollama/llama3.2", "llama3.2"},
		{"claude-3-haiku-20240307", "claude-3-haiku-20240307"},
	}
	for _, tc := range cases {
		if got := apiModelID(tc.in); got != tc.want {
			t.Fatalf("apiModelID(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
