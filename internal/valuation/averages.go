package valuation

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"stockval/internal/domain"
	"stockval/internal/trend"
	"stockval/internal/util"
)

// quarters per smoothing window for the trailing averages
const avgWindowQuarters = 12

type datedValue struct {
	Date  string
	Value float64
}

// historicalValues returns the trailing non-zero values of one field in
// chronological order, at most limit statements back from the latest.
// Zero means the field was missing, so those entries are skipped.
func historicalValues[S domain.Statement](statements map[string]S, field string, limit int) []datedValue {
	dates := make([]string, 0, len(statements))
	for date := range statements {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	if limit > 0 && limit < len(dates) {
		dates = dates[len(dates)-limit:]
	}

	values := make([]datedValue, 0, len(dates))
	for _, date := range dates {
		value := statements[date].Field(field)
		if value != 0 {
			values = append(values, datedValue{Date: date, Value: value})
		}
	}
	return values
}

// averagePe is the mean trailing-window P/E at each statement date's
// historical price, annualized.
func averagePe(stock domain.Stock) float64 {
	historicalNetIncomes := historicalValues(stock.FinancialStatements.IncomeStatements, domain.FieldNetIncome, avgWindowQuarters)

	peValues := []float64{}
	for _, item := range historicalNetIncomes {
		date, err := util.DateStringToTime(item.Date)
		if err != nil {
			continue
		}
		historicalEps := Eps(item.Value, stock.SharesOutstanding)
		historicalPrice := HistoricalPriceAt(stock, date)
		peValues = append(peValues, Pe(historicalPrice, historicalEps))
	}

	if len(peValues) == 0 {
		return 0
	}

	mean, err := stats.Mean(peValues)
	if err != nil {
		return 0
	}
	return 4 * mean
}

func averageRoe(stock domain.Stock) float64 {
	netIncomes := historicalValues(stock.FinancialStatements.IncomeStatements, domain.FieldNetIncome, avgWindowQuarters)
	assets := historicalValues(stock.FinancialStatements.BalanceSheets, domain.FieldAssets, avgWindowQuarters)
	liabilities := historicalValues(stock.FinancialStatements.BalanceSheets, domain.FieldLiabilities, avgWindowQuarters)

	length := min(len(netIncomes), len(assets), len(liabilities))
	roeValues := []float64{}
	for i := 0; i < length; i++ {
		equity := Equity(assets[i].Value, liabilities[i].Value)
		if equity != 0 {
			roeValues = append(roeValues, Roe(netIncomes[i].Value, equity))
		}
	}

	if len(roeValues) == 0 {
		return 0
	}

	mean, err := stats.Mean(roeValues)
	if err != nil {
		return 0
	}
	return 4 * mean
}

func dividendYieldForYear(stock domain.Stock) float64 {
	dividends := historicalValues(stock.FinancialStatements.CashFlowStatements, domain.FieldDividendsPaid, 4)

	paidInLastYear := 0.0
	for _, item := range dividends {
		paidInLastYear += item.Value
	}

	return DividendYield(paidInLastYear, stock.SharesOutstanding, stock.CurrentPrice)
}

func fcfForYear(stock domain.Stock) float64 {
	cashFromOperations := historicalValues(stock.FinancialStatements.CashFlowStatements, domain.FieldCashFromOperations, 4)
	capex := historicalValues(stock.FinancialStatements.CashFlowStatements, domain.FieldCapex, 4)

	length := min(len(cashFromOperations), len(capex))
	fcf := 0.0
	for i := 0; i < length; i++ {
		fcf += Fcf(cashFromOperations[i].Value, capex[i].Value)
	}
	return fcf
}

func netIncomeForYears(stock domain.Stock, years int) float64 {
	if years == 0 {
		return 0
	}
	netIncomes := historicalValues(stock.FinancialStatements.IncomeStatements, domain.FieldNetIncome, years*4)

	total := 0.0
	for _, item := range netIncomes {
		total += item.Value
	}
	return total / float64(years)
}

func totalRevenueForYear(stock domain.Stock) float64 {
	revenues := historicalValues(stock.FinancialStatements.IncomeStatements, domain.FieldTotalRevenue, 4)

	total := 0.0
	for _, item := range revenues {
		total += item.Value
	}
	return total
}

// ebitForYear sums the trailing year's pre-tax income.
// TODO: fold in |interestExpense| and |interestIncome|; omitting them
// understates EBIT but changing it shifts every Altman score.
func ebitForYear(stock domain.Stock) float64 {
	incomeBeforeTax := historicalValues(stock.FinancialStatements.IncomeStatements, domain.FieldIncomeBeforeTax, 4)

	total := 0.0
	for _, item := range incomeBeforeTax {
		total += item.Value
	}
	return total
}

// valueGrowthRate is the compounding growth rate of one statement field
// over a trailing window.
func valueGrowthRate[S domain.Statement](statements map[string]S, field string, limit int) float64 {
	historical := historicalValues(statements, field, limit)
	values := make([]float64, 0, len(historical))
	for _, item := range historical {
		values = append(values, item.Value)
	}
	return trend.GrowthRate(values)
}

// priceGrowthRate is the growth rate of the daily open price over the
// year leading up to the latest priced date.
func priceGrowthRate(stock domain.Stock) float64 {
	dates := make([]string, 0, len(stock.HistoricalPricing))
	for date := range stock.HistoricalPricing {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	if len(dates) == 0 {
		return 0
	}

	latest, err := util.DateStringToTime(dates[len(dates)-1])
	if err != nil {
		return 0
	}
	cutoff := util.TimeToDateString(latest.AddDate(0, 0, -365))

	values := []float64{}
	for _, date := range dates {
		if date > cutoff {
			if price := stock.HistoricalPricing[date].Open; price != 0 {
				values = append(values, price)
			}
		}
	}

	return trend.GrowthRate(values)
}

func statementYears(stock domain.Stock) int {
	return min(
		int(math.Floor(float64(len(stock.FinancialStatements.IncomeStatements))/4)),
		int(math.Floor(float64(len(stock.FinancialStatements.BalanceSheets))/4)),
		int(math.Floor(float64(len(stock.FinancialStatements.CashFlowStatements))/4)),
	)
}
