package usage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/doeshing/voicehook/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Debug(string, map[string]interface{})        {}
func (nopLogger) Info(string, map[string]interface{})         {}
func (nopLogger) Warn(string, map[string]interface{})         {}
func (nopLogger) Error(string, error, map[string]interface{}) {}

func tempLedger(t *testing.T) *FileLedger {
	t.Helper()
	return NewFileLedger(filepath.Join(t.TempDir(), "usage.json"), nopLogger{})
}

func TestLoadTodayMissingFile(t *testing.T) {
	ledger := tempLedger(t)

	record := ledger.LoadToday()
	if record.Date != time.Now().Format("2006-01-02") {
		t.Fatalf("Date = %q, want today", record.Date)
	}
	if record.CostUSD != 0 || record.Calls != 0 {
		t.Fatalf("expected zeroed record, got %+v", record)
	}
}

func TestLoadTodayCorruptFile(t *testing.T) {
	ledger := tempLedger(t)
	if err := os.WriteFile(ledger.Path(), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	record := ledger.LoadToday()
	if record.CostUSD != 0 || record.Calls != 0 {
		t.Fatalf("expected zeroed record after corrupt file, got %+v", record)
	}
}

func TestLoadTodayStaleDateRollsOver(t *testing.T) {
	ledger := tempLedger(t)

	stale := domain.NewUsageRecord("2001-01-01")
	stale.Add("claude-haiku", 1000, 500, 0.50)
	if err := ledger.Save(stale); err != nil {
		t.Fatal(err)
	}

	record := ledger.LoadToday()
	if record.Date == "2001-01-01" {
		t.Fatalf("stale record survived rollover: %+v", record)
	}
	if record.CostUSD != 0 {
		t.Fatalf("CostUSD = %v, want 0 after rollover", record.CostUSD)
	}
}

func TestRecordAccumulates(t *testing.T) {
	ledger := tempLedger(t)

	ledger.Record("gemini/flash", 1000, 500, 0.000225)
	ledger.Record("gemini/flash", 200, 100, 0.00005)
	ledger.Record("claude-haiku", 100, 50, 0.0001)

	record := ledger.LoadToday()
	if record.Calls != 3 {
		t.Fatalf("Calls = %d, want 3", record.Calls)
	}
	if record.Tokens.Input != 1300 || record.Tokens.Output != 650 || record.Tokens.Total != 1950 {
		t.Fatalf("Tokens = %+v", record.Tokens)
	}

	gemini := record.Models["gemini/flash"]
	if gemini.Calls != 2 || gemini.Tokens.Total != 1800 {
		t.Fatalf("gemini usage = %+v", gemini)
	}
}

func TestIsUnderBudget(t *testing.T) {
	ledger := tempLedger(t)

	if !ledger.IsUnderBudget(0.10) {
		t.Fatal("fresh ledger should be under budget")
	}

	ledger.Record("claude-haiku", 0, 0, 0.10)
	if ledger.IsUnderBudget(0.10) {
		t.Fatal("cost equal to limit must count as exhausted")
	}
	if !ledger.IsUnderBudget(0.20) {
		t.Fatal("raised limit should be under budget again")
	}
}

func TestIsUnderBudgetWritesRolloverRecord(t *testing.T) {
	ledger := tempLedger(t)

	stale := domain.NewUsageRecord("2001-01-01")
	stale.Add("claude-haiku", 10, 10, 9.99)
	if err := ledger.Save(stale); err != nil {
		t.Fatal(err)
	}

	if !ledger.IsUnderBudget(0.10) {
		t.Fatal("yesterday's overspend must not block a fresh day")
	}

	// The zeroed record must have been persisted.
	data, err := os.ReadFile(ledger.Path())
	if err != nil {
		t.Fatal(err)
	}
	var stored domain.UsageRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		t.Fatal(err)
	}
	if stored.Date != time.Now().Format("2006-01-02") || stored.CostUSD != 0 {
		t.Fatalf("stored record = %+v, want today's zeroed record", stored)
	}
}

func TestLedgerFileFormat(t *testing.T) {
	ledger := tempLedger(t)
	ledger.Record("gemini/flash", 100, 50, 0.001)

	data, err := os.ReadFile(ledger.Path())
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"date", "cost_usd", "calls", "tokens", "models"} {
		if _, ok := raw[key]; !ok {
			t.Fatalf("ledger file missing %q key: %s", key, data)
		}
	}
}
