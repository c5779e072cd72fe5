package domain

type HistoricalPrice struct {
	Open  float64 `json:"open"`
	Close float64 `json:"close"`
}

// HistoricalPricing maps ISO date strings to daily open/close pairs.
type HistoricalPricing map[string]HistoricalPrice

// Stock is the aggregate root for a single listed company. The processing
// pipeline mutates a working copy and only persists it once the whole run
// succeeds, so a failed fetch never corrupts the stored series.
type Stock struct {
	Symbol              string              `json:"symbol"`
	Exchange            string              `json:"exchange"`
	Name                string              `json:"name"`
	CurrentPrice        float64             `json:"currentPrice"`
	SharesOutstanding   int64               `json:"sharesOutstanding"`
	HistoricalPricing   HistoricalPricing   `json:"historicalPricing"`
	FinancialStatements FinancialStatements `json:"financialStatements"`
	Valuation           Valuation           `json:"valuation"`
	LastUpdated         string              `json:"lastUpdated"`
}

// HasStatements reports whether all three statement maps are populated.
// A stock missing any statement type cannot be valued.
func (s Stock) HasStatements() bool {
	return len(s.FinancialStatements.IncomeStatements) > 0 &&
		len(s.FinancialStatements.BalanceSheets) > 0 &&
		len(s.FinancialStatements.CashFlowStatements) > 0
}
