// Package usage persists the daily token/cost ledger as a single JSON
// file. The file always holds one day's record; a stored record from an
// earlier date is discarded on rollover, not archived.
package usage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/doeshing/voicehook/internal/domain"
	"github.com/doeshing/voicehook/internal/pkg/filesystem"
	"github.com/doeshing/voicehook/internal/ports"
)

// FileLedger implements ports.UsageStore over a whole-file JSON
// read-modify-write. There is no cross-process locking: two invocations
// racing on the file may lose an update, which is accepted for a
// low-stakes budget counter.
type FileLedger struct {
	path   string
	logger ports.Logger
}

// NewFileLedger creates a ledger at the given path ("~" expanded).
func NewFileLedger(path string, logger ports.Logger) *FileLedger {
	if path == "" {
		path = filepath.Join(filesystem.UserHomeDir(), ".voicehook", "usage.json")
	}
	return &FileLedger{
		path:   filesystem.ExpandPath(path),
		logger: logger,
	}
}

// Path returns the backing file path.
func (l *FileLedger) Path() string {
	return l.path
}

// LoadToday returns the stored record when it exists and carries today's
// date. A missing file, a failed read and a stale date all degrade the
// same way: a fresh zeroed record for today.
func (l *FileLedger) LoadToday() domain.UsageRecord {
	today := currentDate()

	data, err := os.ReadFile(l.path)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.Warn("usage file unreadable, starting fresh", map[string]interface{}{
				"path":  l.path,
				"error": err.Error(),
			})
		}
		return domain.NewUsageRecord(today)
	}

	var record domain.UsageRecord
	if err := json.Unmarshal(data, &record); err != nil {
		l.logger.Warn("usage file corrupt, starting fresh", map[string]interface{}{
			"path":  l.path,
			"error": err.Error(),
		})
		return domain.NewUsageRecord(today)
	}

	if record.Date != today {
		return domain.NewUsageRecord(today)
	}
	if record.Models == nil {
		record.Models = map[string]domain.ModelUsage{}
	}
	return record
}

// Save writes the whole record back to disk.
func (l *FileLedger) Save(record domain.UsageRecord) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(l.path, data, 0o644)
}

// IsUnderBudget reports whether today's accumulated cost is still below
// the limit. On a day rollover the zeroed record is written back, so
// yesterday's overspend never blocks a fresh day.
func (l *FileLedger) IsUnderBudget(limitUSD float64) bool {
	record := l.LoadToday()
	if record.Calls == 0 && record.CostUSD == 0 {
		if err := l.Save(record); err != nil {
			l.logger.Warn("usage rollover write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return record.CostUSD < limitUSD
}

// Record folds one successful generation call into today's record and
// writes it back. The read-modify-write is not atomic across processes.
func (l *FileLedger) Record(model string, inputTokens, outputTokens int, costUSD float64) {
	record := l.LoadToday()
	record.Add(model, inputTokens, outputTokens, costUSD)
	if err := l.Save(record); err != nil {
		l.logger.Warn("usage record write failed", map[string]interface{}{
			"model": model,
			"error": err.Error(),
		})
		return
	}
	l.logger.Info("recorded usage", map[string]interface{}{
		"model":    model,
		"cost_usd": costUSD,
		"tokens":   inputTokens + outputTokens,
	})
}

func currentDate() string {
	return time.Now().Format("2006-01-02")
}

var _ ports.UsageStore = (*FileLedger)(nil)
