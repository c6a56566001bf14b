package llm

import "strings"

// providerPricing is one row of the static price table, in USD per 1000
// input/output tokens.
type providerPricing struct {
	match      string
	inputPerK  float64
	outputPerK float64
}

// pricingTable is evaluated in order; the first row whose match substring
// appears in the model identifier wins. The order is part of the contract.
var pricingTable = []providerPricing{
	{match: "gemini", inputPerK: 0.000075, outputPerK: 0.00030},
	{match: "claude", inputPerK: 0.00025, outputPerK: 0.00125},
	{match: "gpt-4o-mini", inputPerK: 0.00015, outputPerK: 0.00060},
	{match: "ollama", inputPerK: 0, outputPerK: 0},
}

// defaultPricing is applied when no known vendor substring matches.
var defaultPricing = pricingTable[1] // claude

// EstimateCost estimates the USD cost of one call for the given model
// identifier and token counts.
func EstimateCost(modelID string, inputTokens, outputTokens int) float64 {
	pricing := defaultPricing
	lower := strings.ToLower(modelID)
	for _, row := range pricingTable {
		if strings.Contains(lower, row.match) {
			pricing = row
			break
		}
	}
	return float64(inputTokens)/1000*pricing.inputPerK + float64(outputTokens)/1000*pricing.outputPerK
}
