// Package statements reconciles overlapping, partially missing statement
// series of mixed cadence into one gap-free quarterly series per type.
package statements

import (
	"stockval/internal/domain"
	"stockval/internal/trend"
)

// FillOptions selects the gap-fill behavior for one reconciliation run.
// Exactly one trend strategy applies to the whole run.
type FillOptions struct {
	Strategy trend.Strategy
	Validity ValidityPolicy
}

// Make rebuilds the reconciled quarterly series by merging the prior
// reconciled statements with a freshly fetched dual-cadence set, then
// filling every hole. Returns nil when there are no usable dates at all,
// which callers treat as a no-op rather than an error.
func Make(existing domain.FinancialStatements, latest domain.DualCadenceStatements, opts FillOptions) *domain.FinancialStatements {
	if opts.Strategy == "" {
		opts.Strategy = trend.StrategyGrowthRate
	}

	dates := quarterDates(observedDates(existing, latest))
	if len(dates) == 0 {
		return nil
	}

	out := domain.NewFinancialStatements()

	out.IncomeStatements = fillSeries[domain.IncomeStatement](
		dates,
		mergeSeries[domain.IncomeStatement](dates, existing.IncomeStatements, latest.IncomeStatements.Quarterly),
		latest.IncomeStatements.Yearly,
		opts.Validity.ValidIncomeStatement,
		fillRules{divideYearly: true, trendForward: true},
		opts.Strategy,
	)

	out.BalanceSheets = fillSeries[domain.BalanceSheet](
		dates,
		mergeSeries[domain.BalanceSheet](dates, existing.BalanceSheets, latest.BalanceSheets.Quarterly),
		latest.BalanceSheets.Yearly,
		opts.Validity.ValidBalanceSheet,
		fillRules{divideYearly: false, trendForward: false},
		opts.Strategy,
	)

	out.CashFlowStatements = fillSeries[domain.CashFlowStatement](
		dates,
		mergeSeries[domain.CashFlowStatement](dates, existing.CashFlowStatements, latest.CashFlowStatements.Quarterly),
		latest.CashFlowStatements.Yearly,
		opts.Validity.ValidCashFlowStatement,
		fillRules{divideYearly: true, trendForward: false},
		opts.Strategy,
	)

	return &out
}

func observedDates(existing domain.FinancialStatements, latest domain.DualCadenceStatements) []string {
	dates := []string{}
	dates = append(dates, mapDates(existing.IncomeStatements)...)
	dates = append(dates, mapDates(existing.BalanceSheets)...)
	dates = append(dates, mapDates(existing.CashFlowStatements)...)
	dates = append(dates, mapDates(latest.IncomeStatements.Quarterly)...)
	dates = append(dates, mapDates(latest.IncomeStatements.Yearly)...)
	dates = append(dates, mapDates(latest.BalanceSheets.Quarterly)...)
	dates = append(dates, mapDates(latest.BalanceSheets.Yearly)...)
	dates = append(dates, mapDates(latest.CashFlowStatements.Quarterly)...)
	dates = append(dates, mapDates(latest.CashFlowStatements.Yearly)...)
	return dates
}

func mapDates[S any](m map[string]S) []string {
	dates := make([]string, 0, len(m))
	for date := range m {
		dates = append(dates, date)
	}
	return dates
}
