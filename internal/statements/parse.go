package statements

import (
	"math"

	"stockval/internal/domain"
	"stockval/internal/util"
	"stockval/pkg/eodhistorical"
)

// ParseFundamentals converts a raw provider payload into domain
// statements. Currency strings that fail to parse become 0, which the
// validity predicates later treat as missing.
func ParseFundamentals(raw *eodhistorical.FundamentalsResponse) domain.DualCadenceStatements {
	return domain.DualCadenceStatements{
		IncomeStatements: domain.DualCadence[domain.IncomeStatement]{
			Quarterly: parseStatements(raw.Financials.IncomeStatement.Quarterly, parseIncomeStatement),
			Yearly:    parseStatements(raw.Financials.IncomeStatement.Yearly, parseIncomeStatement),
		},
		BalanceSheets: domain.DualCadence[domain.BalanceSheet]{
			Quarterly: parseStatements(raw.Financials.BalanceSheet.Quarterly, parseBalanceSheet),
			Yearly:    parseStatements(raw.Financials.BalanceSheet.Yearly, parseBalanceSheet),
		},
		CashFlowStatements: domain.DualCadence[domain.CashFlowStatement]{
			Quarterly: parseStatements(raw.Financials.CashFlow.Quarterly, parseCashFlowStatement),
			Yearly:    parseStatements(raw.Financials.CashFlow.Yearly, parseCashFlowStatement),
		},
	}
}

func parseStatements[F any, S domain.Statement](raw map[string]F, parse func(F) S) map[string]S {
	parsed := map[string]S{}
	for date, fields := range raw {
		parsed[date] = parse(fields)
	}
	return parsed
}

func parseIncomeStatement(raw eodhistorical.IncomeStatementFields) domain.IncomeStatement {
	// one-off disposals shouldn't inflate the valuation, so when
	// discontinued operations dominate we take continuing-ops income
	netIncome := util.ParseCurrency(raw.NetIncome)
	if util.ParseCurrency(raw.DiscontinuedOperations) > netIncome {
		netIncome = util.ParseCurrency(raw.NetIncomeFromContinuingOps)
	}

	interestIncome := util.ParseCurrency(raw.InterestIncome)
	if interestIncome == 0 {
		interestIncome = util.ParseCurrency(raw.NetInterestIncome)
	}

	return domain.IncomeStatement{
		TotalRevenue:    util.ParseCurrency(raw.TotalRevenue),
		NetIncome:       netIncome,
		IncomeBeforeTax: util.ParseCurrency(raw.IncomeBeforeTax),
		InterestIncome:  interestIncome,
		InterestExpense: util.ParseCurrency(raw.InterestExpense),
	}
}

func parseBalanceSheet(raw eodhistorical.BalanceSheetFields) domain.BalanceSheet {
	cash := util.ParseCurrency(raw.Cash)
	if cash == 0 {
		cash = util.ParseCurrency(raw.NetWorkingCapital)
	}

	return domain.BalanceSheet{
		Assets:             util.ParseCurrency(raw.TotalAssets),
		CurrentAssets:      util.ParseCurrency(raw.TotalCurrentAssets),
		Liabilities:        util.ParseCurrency(raw.TotalLiab),
		CurrentLiabilities: util.ParseCurrency(raw.TotalCurrentLiabilities),
		RetainedEarnings:   util.ParseCurrency(raw.RetainedEarnings),
		Cash:               cash,
	}
}

func parseCashFlowStatement(raw eodhistorical.CashFlowFields) domain.CashFlowStatement {
	cashFromOperations := util.ParseCurrency(raw.TotalCashFromOperatingActivities)

	capex := util.ParseCurrency(raw.CapitalExpenditures)
	if capex == 0 {
		if fcf := util.ParseCurrency(raw.FreeCashFlow); fcf != 0 {
			capex = util.Round2(cashFromOperations - fcf)
		}
	}

	return domain.CashFlowStatement{
		// providers report dividends as an outflow
		DividendsPaid:      math.Abs(util.ParseCurrency(raw.DividendsPaid)),
		CashFromOperations: cashFromOperations,
		Capex:              capex,
	}
}

// ParsePriceHistory keys daily bars by their ISO date.
func ParsePriceHistory(bars []eodhistorical.PriceBar) domain.HistoricalPricing {
	pricing := domain.HistoricalPricing{}
	for _, bar := range bars {
		pricing[bar.Date] = domain.HistoricalPrice{Open: bar.Open, Close: bar.Close}
	}
	return pricing
}
