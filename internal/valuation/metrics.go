package valuation

import (
	"math"

	"stockval/internal/util"
)

func Equity(assets, liabilities float64) float64 {
	return assets - liabilities
}

func Roe(netIncome, equity float64) float64 {
	return util.SafeDivide(netIncome, equity)
}

func Roa(netIncome, assets float64) float64 {
	return util.SafeDivide(netIncome, assets)
}

func Dte(totalDebt, equity float64) float64 {
	return util.SafeDivide(totalDebt, equity)
}

func Cr(currentAssets, currentLiabilities float64) float64 {
	return util.SafeDivide(currentAssets, currentLiabilities)
}

func Fcf(cashFromOperations, capex float64) float64 {
	return cashFromOperations - math.Abs(capex)
}

func Eps(netIncome float64, sharesOutstanding int64) float64 {
	return util.SafeDivide(netIncome, float64(sharesOutstanding))
}

func Pe(currentPrice, eps float64) float64 {
	return util.SafeDivide(currentPrice, eps)
}

// Peg divides P/E by the growth rate expressed in percent. When both
// inputs are negative the division would look spuriously positive, so
// the sign is restored.
func Peg(pe, growthRate float64) float64 {
	if growthRate == 0 {
		return 0
	}

	peg := pe / (100 * growthRate)
	if pe < 0 && growthRate < 0 {
		return -peg
	}
	return peg
}

func Pb(currentPrice, equity float64, sharesOutstanding int64) float64 {
	return util.SafeDivide(currentPrice, util.SafeDivide(equity, float64(sharesOutstanding)))
}

func DividendYield(dividendsPaid float64, sharesOutstanding int64, currentPrice float64) float64 {
	return util.SafeDivide(util.SafeDivide(dividendsPaid, float64(sharesOutstanding)), currentPrice)
}

func MarketCap(sharesOutstanding int64, currentPrice float64) float64 {
	return float64(sharesOutstanding) * currentPrice
}

// Npv discounts a future value back over noYrs. Zero years means the
// value is already present.
func Npv(futureValue, discountRate float64, noYrs int) float64 {
	if noYrs == 0 {
		return futureValue
	}
	return futureValue / math.Pow(1+discountRate, float64(noYrs))
}

// AltmanZScore is the classic five-ratio bankruptcy score. Returns 0
// when liabilities or revenue is zero since the score is meaningless
// without them.
func AltmanZScore(assets, liabilities, retainedEarnings, ebit, totalRevenue float64) float64 {
	if liabilities == 0 || totalRevenue == 0 {
		return 0
	}
	equity := Equity(assets, liabilities)

	return 1.2*equity/assets +
		1.4*retainedEarnings/assets +
		3.3*ebit/assets +
		0.6*equity/liabilities +
		1.0*totalRevenue/assets
}
