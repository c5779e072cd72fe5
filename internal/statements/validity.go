package statements

import (
	"stockval/internal/domain"
)

// ValidityPolicy decides when a present statement is still unusable.
// Invalid statements are treated as absent and become gap-fill
// candidates, never errors.
type ValidityPolicy struct {
	// Some companies legitimately carry zero retained earnings, so the
	// stricter check is off by default.
	RequireRetainedEarnings bool
}

func (p ValidityPolicy) ValidIncomeStatement(s domain.IncomeStatement) bool {
	return s.TotalRevenue != 0 && s.NetIncome != 0 && s.IncomeBeforeTax != 0
}

func (p ValidityPolicy) ValidBalanceSheet(s domain.BalanceSheet) bool {
	if s.Assets == 0 || s.CurrentAssets == 0 || s.Liabilities == 0 ||
		s.CurrentLiabilities == 0 || s.Cash == 0 {
		return false
	}
	if p.RequireRetainedEarnings && s.RetainedEarnings == 0 {
		return false
	}
	return true
}

func (p ValidityPolicy) ValidCashFlowStatement(s domain.CashFlowStatement) bool {
	return s.CashFromOperations != 0 && s.Capex != 0
}
