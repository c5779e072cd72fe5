package valuation

import (
	"math"

	"stockval/internal/util"
)

// PeMultipleIv projects earnings forward five years, applies the average
// historical multiple and discounts back.
func PeMultipleIv(eps, avgPe, growthRate, discountRate float64) float64 {
	noYrs := 5
	futureValue := eps * avgPe * math.Pow(1+growthRate, float64(noYrs))

	return Npv(futureValue, discountRate, noYrs)
}

// GrahamIv is Benjamin Graham's revised formula with a growth multiplier
// of 1 (Graham's 2 is aggressive) and his 4.4% risk-free rate.
func GrahamIv(eps, growthRate, discountRate float64) float64 {
	typicalPeForNoGrowthCompany := 7.0
	growthMultiplier := 1.0
	rrr := 4.4

	grahamIv := eps * (typicalPeForNoGrowthCompany + growthMultiplier*growthRate*100) * rrr / (discountRate * 100)

	// a negative eps and growth rate cancel out and appear positive
	if eps < 0 && growthRate < 0 {
		return -grahamIv
	}
	return grahamIv
}

// DcfIv projects free cash flow over ten years with the growth rate
// fading by declineRate each year, discounts every year's flow, adds a
// conservative 12x terminal multiple on year ten, adds cash, subtracts
// liabilities and divides by the share count.
func DcfIv(fcf, cash, liabilities float64, sharesOutstanding int64, growthRate, declineRate, discountRate float64) float64 {
	noYrs := 10

	futureFcf := make([]float64, noYrs)
	for i := 0; i < noYrs; i++ {
		prevFcf := fcf
		if i > 0 {
			prevFcf = futureFcf[i-1]
		}
		declineFactor := math.Pow(1-declineRate, float64(i))
		futureFcf[i] = prevFcf * (1 + growthRate*declineFactor)
	}

	totalNpv := 0.0
	lastNpv := 0.0
	for i := 0; i < noYrs; i++ {
		lastNpv = Npv(futureFcf[i], discountRate, i+1)
		totalNpv += lastNpv
	}

	terminalMultiple := 12.0
	year10FcfValue := lastNpv * terminalMultiple

	companyValue := totalNpv + year10FcfValue + cash - liabilities

	return util.SafeDivide(companyValue, float64(sharesOutstanding))
}

// RoeIv projects equity per share and dividends per share forward ten
// years, capitalizes year ten's implied net income as a perpetuity at
// the discount rate and adds the discounted dividend stream.
func RoeIv(equity, avgRoe float64, sharesOutstanding int64, dividendYield, growthRate, discountRate float64) float64 {
	noYrs := 10
	equityPerShare := util.SafeDivide(equity, float64(sharesOutstanding))

	futureEquityPerShare := make([]float64, noYrs)
	for i := 0; i < noYrs; i++ {
		prev := equityPerShare
		if i > 0 {
			prev = futureEquityPerShare[i-1]
		}
		futureEquityPerShare[i] = prev * (1 + growthRate)
	}

	futureDividendPerShare := make([]float64, noYrs)
	for i := 0; i < noYrs; i++ {
		prev := dividendYield
		if i > 0 {
			prev = futureDividendPerShare[i-1]
		}
		futureDividendPerShare[i] = prev * (1 + growthRate)
	}

	npvDividends := 0.0
	for i := 0; i < noYrs; i++ {
		npvDividends += Npv(futureDividendPerShare[i], discountRate, i)
	}

	year10NetIncome := futureEquityPerShare[noYrs-1] * avgRoe
	requiredValue := util.SafeDivide(year10NetIncome, discountRate)
	npvRequiredValue := Npv(requiredValue, discountRate, noYrs)

	return npvRequiredValue + npvDividends
}

// LiquidationIv is the book-value floor.
func LiquidationIv(equity float64, sharesOutstanding int64) float64 {
	return util.SafeDivide(equity, float64(sharesOutstanding))
}
