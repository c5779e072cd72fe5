// Package valuation derives fundamental ratios, intrinsic-value
// estimates and a trading instruction from a reconciled statement
// series. Every stored ratio is rounded to 2 decimal places as it is
// computed; the viability gate compares the rounded values.
package valuation

import (
	"stockval/internal/domain"
	"stockval/internal/statements"
	"stockval/internal/util"
)

func latestStatement[S domain.Statement](m map[string]S) (S, bool) {
	var latest S
	latestDate := ""
	for date := range m {
		if date > latestDate {
			latestDate = date
		}
	}
	if latestDate == "" {
		return latest, false
	}
	return m[latestDate], true
}

// Evaluate values a stock against a model. When the latest statement of
// any type is missing or invalid the company cannot be assessed and a
// zero Valuation is returned, never an error.
func Evaluate(stock domain.Stock, model domain.ValuationModel) domain.Valuation {
	latestIncome, okIncome := latestStatement(stock.FinancialStatements.IncomeStatements)
	latestBalance, okBalance := latestStatement(stock.FinancialStatements.BalanceSheets)
	latestCashFlow, okCashFlow := latestStatement(stock.FinancialStatements.CashFlowStatements)

	policy := statements.ValidityPolicy{RequireRetainedEarnings: model.RequireRetainedEarnings}
	if !okIncome || !okBalance || !okCashFlow ||
		!policy.ValidIncomeStatement(latestIncome) ||
		!policy.ValidBalanceSheet(latestBalance) ||
		!policy.ValidCashFlowStatement(latestCashFlow) {
		return domain.Valuation{}
	}

	shares := stock.SharesOutstanding
	price := stock.CurrentPrice

	assets := latestBalance.Assets
	liabilities := latestBalance.Liabilities
	currentLiabilities := latestBalance.CurrentLiabilities
	equity := Equity(assets, liabilities)

	avgPe := averagePe(stock)
	avgRoe := averageRoe(stock)

	netIncomeAvg := netIncomeForYears(stock, model.YearsForEarningsCalcs)
	eps := util.Round2(Eps(netIncomeAvg, shares))
	pe := util.Round2(Pe(price, eps))
	pb := util.Round2(Pb(price, equity, shares))
	// the margin-of-safety haircut is baked into the growth rate used
	// for every projection, not applied separately
	growthRate := util.Round2(
		valueGrowthRate(stock.FinancialStatements.IncomeStatements, domain.FieldNetIncome, model.YearsForEarningsCalcs*4) * (1 - model.MinMos))
	fcf := util.Round2(fcfForYear(stock))
	dividendYield := util.Round2(dividendYieldForYear(stock))

	valuation := domain.Valuation{
		DividendYield:     dividendYield,
		MarketCap:         util.Round2(MarketCap(shares, price)),
		Roe:               util.Round2(Roe(netIncomeAvg, equity)),
		Roa:               util.Round2(Roa(netIncomeAvg, assets)),
		GrowthRate:        growthRate,
		PriceGrowthRate:   util.Round2(priceGrowthRate(stock)),
		Dte:               util.Round2(Dte(currentLiabilities, equity)),
		Cr:                util.Round2(Cr(latestBalance.CurrentAssets, currentLiabilities)),
		Eps:               eps,
		Pe:                pe,
		Peg:               util.Round2(Peg(pe, growthRate)),
		Pb:                pb,
		BlendedMultiplier: util.Round2(pe * pb),
		Fcf:               fcf,
		LiquidationIv:     util.Round2(LiquidationIv(equity, shares)),
		PeMultipleIv:      util.Round2(PeMultipleIv(eps, avgPe, growthRate, model.DiscountRate)),
		GrahamIv:          util.Round2(GrahamIv(eps, growthRate, model.DiscountRate)),
		DcfIv:             util.Round2(DcfIv(fcf, latestBalance.Cash, currentLiabilities, shares, growthRate, model.DeclineRate, model.DiscountRate)),
		RoeIv:             util.Round2(RoeIv(equity, avgRoe, shares, dividendYield, growthRate, model.DiscountRate)),
		AltmanZScore:      util.Round2(AltmanZScore(assets, liabilities, latestBalance.RetainedEarnings, ebitForYear(stock), totalRevenueForYear(stock))),
		StatementYears:    statementYears(stock),
	}

	valuation.FairValue = valuation.PeMultipleIv
	valuation.ExpectedReturn = util.Round2(100 * util.SafeDivide(valuation.FairValue-price, price))
	valuation.Mos = util.Round2(util.SafeDivide(valuation.FairValue-price, valuation.FairValue))
	valuation.HealthCategory = healthCategory(valuation.AltmanZScore)
	valuation.Instruction = instruction(valuation, price, model)

	return valuation
}

// Viable reports whether a valuation clears every threshold in the
// model. A zero valuation never does.
func Viable(v domain.Valuation, model domain.ValuationModel) bool {
	if v.Roe < model.MinRoe ||
		v.GrowthRate < model.MinGrowthRate ||
		v.Dte > model.MaxDte || v.Dte < 0 ||
		v.Cr < model.MinCr ||
		v.Eps < model.MinEps ||
		v.Pe > model.MaxPe || v.Pe <= 0 ||
		v.Peg > model.MaxPeg || v.Peg <= 0 ||
		v.Pb > model.MaxPb || v.Pb < 0 ||
		v.BlendedMultiplier > model.MaxBlendedMultiplier || v.BlendedMultiplier <= 0 ||
		v.AltmanZScore < model.MinAltmanZScore ||
		v.StatementYears < model.MinStatementYears {
		return false
	}
	return true
}

// instruction resolves a tie at currentPrice == fairValue to SELL: the
// overvalued check runs first and uses >=.
func instruction(v domain.Valuation, currentPrice float64, model domain.ValuationModel) string {
	viable := Viable(v, model)
	overvalued := currentPrice >= v.FairValue
	undervalued := currentPrice <= v.FairValue

	if !viable || overvalued {
		return domain.InstructionSell
	}
	if undervalued {
		return domain.InstructionBuy
	}
	return domain.InstructionHold
}

func healthCategory(altmanZScore float64) string {
	switch {
	case altmanZScore < 1.8:
		return domain.HealthDying
	case altmanZScore >= 3.0:
		return domain.HealthHealthy
	default:
		return domain.HealthAverage
	}
}
