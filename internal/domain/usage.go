package domain

// TokenCounts accumulates token totals for one day.
type TokenCounts struct {
	Input  int `json:"input"`
	Output int `json:"output"`
	Total  int `json:"total"`
}

// ModelUsage is the per-model slice of a day's usage.
type ModelUsage struct {
	Calls   int         `json:"calls"`
	CostUSD float64     `json:"cost_usd"`
	Tokens  TokenCounts `json:"tokens"`
}

// UsageRecord is the persisted daily counter of calls, tokens and spend.
// The ledger file always holds exactly one day's worth of data: whenever
// the stored date differs from the current date the record rolls over to
// a fresh zeroed one and the stale data is discarded.
type UsageRecord struct {
	Date    string                `json:"date"`
	CostUSD float64               `json:"cost_usd"`
	Calls   int                   `json:"calls"`
	Tokens  TokenCounts           `json:"tokens"`
	Models  map[string]ModelUsage `json:"models"`
}

// NewUsageRecord returns a zeroed record for the given date.
func NewUsageRecord(date string) UsageRecord {
	return UsageRecord{
		Date:   date,
		Models: map[string]ModelUsage{},
	}
}

// Add folds one successful generation call into the record.
func (u *UsageRecord) Add(model string, inputTokens, outputTokens int, costUSD float64) {
	u.Calls++
	u.CostUSD += costUSD
	u.Tokens.Input += inputTokens
	u.Tokens.Output += outputTokens
	u.Tokens.Total += inputTokens + outputTokens

	if u.Models == nil {
		u.Models = map[string]ModelUsage{}
	}
	per := u.Models[model]
	per.Calls++
	per.CostUSD += costUSD
	per.Tokens.Input += inputTokens
	per.Tokens.Output += outputTokens
	per.Tokens.Total += inputTokens + outputTokens
	u.Models[model] = per
}
