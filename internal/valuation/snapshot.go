package valuation

import (
	"time"

	"stockval/internal/domain"
	"stockval/internal/util"
)

// HistoricalPriceAt returns the open price on date, walking backward one
// day at a time over non-trading days. The walk is bounded by the
// earliest priced date; dates before the known range yield 0.
func HistoricalPriceAt(stock domain.Stock, date time.Time) float64 {
	dates := make([]string, 0, len(stock.HistoricalPricing))
	for d := range stock.HistoricalPricing {
		dates = append(dates, d)
	}
	earliest := util.SmallestDate(dates)
	if earliest == "" {
		return 0
	}

	for {
		dateString := util.TimeToDateString(date)
		if dateString < earliest {
			return 0
		}
		if price, ok := stock.HistoricalPricing[dateString]; ok {
			return price.Open
		}
		date = date.AddDate(0, 0, -1)
	}
}

// Snapshot reconstructs the view of a stock as it existed on date:
// the price on that day and only the statements published by then.
// Shares outstanding carry forward unchanged since share count history
// is not tracked. Returns nil when the stock cannot be valued at that
// date.
func Snapshot(stock domain.Stock, date time.Time) *domain.Stock {
	price := HistoricalPriceAt(stock, date)
	if price == 0 {
		return nil
	}

	cutoff := util.TimeToDateString(date)
	snapshot := domain.Stock{
		Symbol:              stock.Symbol,
		Exchange:            stock.Exchange,
		CurrentPrice:        price,
		SharesOutstanding:   stock.SharesOutstanding,
		HistoricalPricing:   stock.HistoricalPricing,
		FinancialStatements: domain.NewFinancialStatements(),
		LastUpdated:         cutoff,
	}

	for d, s := range stock.FinancialStatements.IncomeStatements {
		if d <= cutoff {
			snapshot.FinancialStatements.IncomeStatements[d] = s
		}
	}
	for d, s := range stock.FinancialStatements.BalanceSheets {
		if d <= cutoff {
			snapshot.FinancialStatements.BalanceSheets[d] = s
		}
	}
	for d, s := range stock.FinancialStatements.CashFlowStatements {
		if d <= cutoff {
			snapshot.FinancialStatements.CashFlowStatements[d] = s
		}
	}

	if !snapshot.HasStatements() {
		return nil
	}

	return &snapshot
}
