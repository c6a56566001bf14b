package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestModelSlotsPriority(t *testing.T) {
	cases := []struct {
		name  string
		slots ModelSlots
		want  []string
	}{
		{
			"all set",
			ModelSlots{Primary: "gemini/flash", Fallback: "claude-haiku", Local: "ollama/llama3.2"},
			[]string{"gemini/flash", "claude-haiku", "ollama/llama3.2"},
		},
		{
			"gaps skipped",
			ModelSlots{Fallback: "claude-haiku"},
			[]string{"claude-haiku"},
		},
		{
			"empty",
			ModelSlots{},
			nil,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.slots.Priority()); diff != "" {
				t.Fatalf("Priority() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUsageRecordAdd(t *testing.T) {
	record := NewUsageRecord("2026-08-24")
	record.Add("gemini/flash", 1000, 500, 0.000225)
	record.Add("gemini/flash", 100, 50, 0.00002)

	if record.Calls != 2 {
		t.Fatalf("Calls = %d, want 2", record.Calls)
	}
	if record.Tokens.Total != 1650 {
		t.Fatalf("Tokens.Total = %d, want 1650", record.Tokens.Total)
	}

	per := record.Models["gemini/flash"]
	if per.Calls != 2 || per.Tokens.Input != 1100 {
		t.Fatalf("per-model usage = %+v", per)
	}
}
