package statements

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"stockval/internal/domain"
)

const (
	q1 = "2020-03-31"
	q2 = "2020-06-30"
	q3 = "2020-09-30"
	q4 = "2020-12-31"
)

func Test_Make_NoUsableDates(t *testing.T) {
	result := Make(domain.NewFinancialStatements(), domain.DualCadenceStatements{}, FillOptions{})
	require.Nil(t, result)
}

func Test_Make_FieldLevelMerge(t *testing.T) {
	existing := domain.NewFinancialStatements()
	existing.IncomeStatements[q1] = domain.IncomeStatement{
		TotalRevenue:    100,
		NetIncome:       10,
		IncomeBeforeTax: 12,
		Source:          domain.SourceActual,
	}

	latest := domain.DualCadenceStatements{
		IncomeStatements: domain.DualCadence[domain.IncomeStatement]{
			Quarterly: map[string]domain.IncomeStatement{
				q1: {TotalRevenue: 200, NetIncome: 0, IncomeBeforeTax: 20},
			},
		},
	}

	result := Make(existing, latest, FillOptions{})
	require.NotNil(t, result)

	got := result.IncomeStatements[q1]
	want := domain.IncomeStatement{
		TotalRevenue:    200, // latest wins when non-zero
		NetIncome:       10,  // falls back to existing
		IncomeBeforeTax: 20,
		Estimate:        false,
		Source:          domain.SourceActual,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("merged statement mismatch (-want +got):\n%s", diff)
	}
}

func Test_Make_DiscardsEstimatesAndInterpolates(t *testing.T) {
	existing := domain.NewFinancialStatements()
	existing.IncomeStatements[q1] = domain.IncomeStatement{
		TotalRevenue: 100, NetIncome: 10, IncomeBeforeTax: 12,
		Source: domain.SourceActual,
	}
	existing.IncomeStatements[q2] = domain.IncomeStatement{
		TotalRevenue: 999, NetIncome: 99, IncomeBeforeTax: 99,
		Estimate: true, Source: domain.SourceTrend,
	}
	existing.IncomeStatements[q3] = domain.IncomeStatement{
		TotalRevenue: 200, NetIncome: 20, IncomeBeforeTax: 24,
		Source: domain.SourceActual,
	}

	result := Make(existing, domain.DualCadenceStatements{}, FillOptions{})
	require.NotNil(t, result)

	t.Run("actuals survive untouched", func(t *testing.T) {
		require.Equal(t, 100.0, result.IncomeStatements[q1].TotalRevenue)
		require.Equal(t, domain.SourceActual, result.IncomeStatements[q1].Source)
		require.Equal(t, 200.0, result.IncomeStatements[q3].TotalRevenue)
	})

	t.Run("estimate is recomputed, not carried", func(t *testing.T) {
		got := result.IncomeStatements[q2]
		want := domain.IncomeStatement{
			TotalRevenue:    150,
			NetIncome:       15,
			IncomeBeforeTax: 18,
			Estimate:        true,
			Source:          domain.SourceInterpolated,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("interpolated statement mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rerunning with empty latest is idempotent", func(t *testing.T) {
		again := Make(*result, domain.DualCadenceStatements{}, FillOptions{})
		require.NotNil(t, again)
		if diff := cmp.Diff(result, again); diff != "" {
			t.Errorf("series changed on rerun (-first +second):\n%s", diff)
		}
	})
}

func Test_Make_InvalidStatementBecomesFillCandidate(t *testing.T) {
	existing := domain.NewFinancialStatements()
	existing.IncomeStatements[q1] = domain.IncomeStatement{
		TotalRevenue: 100, NetIncome: 10, IncomeBeforeTax: 12,
		Source: domain.SourceActual,
	}
	existing.IncomeStatements[q3] = domain.IncomeStatement{
		TotalRevenue: 200, NetIncome: 20, IncomeBeforeTax: 24,
		Source: domain.SourceActual,
	}

	latest := domain.DualCadenceStatements{
		IncomeStatements: domain.DualCadence[domain.IncomeStatement]{
			Quarterly: map[string]domain.IncomeStatement{
				// revenue present but no income fields: fails validity
				q2: {TotalRevenue: 170},
			},
		},
	}

	result := Make(existing, latest, FillOptions{})
	require.NotNil(t, result)

	got := result.IncomeStatements[q2]
	require.Equal(t, domain.SourceInterpolated, got.Source)
	require.True(t, got.Estimate)
	require.Equal(t, 150.0, got.TotalRevenue)
}

func Test_Make_YearlySubstitution(t *testing.T) {
	existing := domain.NewFinancialStatements()
	existing.IncomeStatements[q1] = domain.IncomeStatement{
		TotalRevenue: 100, NetIncome: 10, IncomeBeforeTax: 12,
		Source: domain.SourceActual,
	}

	latest := domain.DualCadenceStatements{
		IncomeStatements: domain.DualCadence[domain.IncomeStatement]{
			Yearly: map[string]domain.IncomeStatement{
				q2: {TotalRevenue: 400, NetIncome: 40, IncomeBeforeTax: 48},
			},
		},
		BalanceSheets: domain.DualCadence[domain.BalanceSheet]{
			Yearly: map[string]domain.BalanceSheet{
				q2: {Assets: 1000, CurrentAssets: 500, Liabilities: 400, CurrentLiabilities: 200, Cash: 100, RetainedEarnings: 50},
			},
		},
		CashFlowStatements: domain.DualCadence[domain.CashFlowStatement]{
			Yearly: map[string]domain.CashFlowStatement{
				q2: {DividendsPaid: 40, CashFromOperations: 400, Capex: 100},
			},
		},
	}

	result := Make(existing, latest, FillOptions{})
	require.NotNil(t, result)

	t.Run("income flows are quartered", func(t *testing.T) {
		got := result.IncomeStatements[q2]
		require.Equal(t, 100.0, got.TotalRevenue)
		require.Equal(t, 10.0, got.NetIncome)
		require.Equal(t, 12.0, got.IncomeBeforeTax)
		require.Equal(t, domain.SourceYearlyDerived, got.Source)
		require.False(t, got.Estimate)
	})

	t.Run("balance sheet values carry over undivided", func(t *testing.T) {
		got := result.BalanceSheets[q2]
		require.Equal(t, 1000.0, got.Assets)
		require.Equal(t, 200.0, got.CurrentLiabilities)
		require.Equal(t, domain.SourceYearlyDerived, got.Source)
	})

	t.Run("cash flow flows are quartered", func(t *testing.T) {
		got := result.CashFlowStatements[q2]
		require.Equal(t, 10.0, got.DividendsPaid)
		require.Equal(t, 100.0, got.CashFromOperations)
		require.Equal(t, 25.0, got.Capex)
		require.Equal(t, domain.SourceYearlyDerived, got.Source)
	})
}

func Test_Make_TrendsIncomeForwardOnly(t *testing.T) {
	existing := domain.NewFinancialStatements()
	existing.IncomeStatements[q1] = domain.IncomeStatement{
		TotalRevenue: 100, NetIncome: 10, IncomeBeforeTax: 20,
		Source: domain.SourceActual,
	}
	existing.IncomeStatements[q2] = domain.IncomeStatement{
		TotalRevenue: 121, NetIncome: 12.1, IncomeBeforeTax: 24.2,
		Source: domain.SourceActual,
	}
	existing.CashFlowStatements[q1] = domain.CashFlowStatement{
		DividendsPaid: 5, CashFromOperations: 50, Capex: 10,
		Source: domain.SourceActual,
	}
	// q4 only exists in the date range because of this entry
	existing.BalanceSheets[q4] = domain.BalanceSheet{
		Assets: 1, CurrentAssets: 1, Liabilities: 1, CurrentLiabilities: 1, Cash: 1,
		Source: domain.SourceActual,
	}

	result := Make(existing, domain.DualCadenceStatements{}, FillOptions{})
	require.NotNil(t, result)

	t.Run("income projects with compounding growth", func(t *testing.T) {
		got := result.IncomeStatements[q3]
		require.Equal(t, 133.1, got.TotalRevenue)
		require.Equal(t, 13.31, got.NetIncome)
		require.Equal(t, 26.62, got.IncomeBeforeTax)
		require.Equal(t, domain.SourceTrend, got.Source)
		require.True(t, got.Estimate)

		q4Got := result.IncomeStatements[q4]
		require.Equal(t, 146.41, q4Got.TotalRevenue)
		require.Equal(t, domain.SourceTrend, q4Got.Source)
	})

	t.Run("cash flow is never trended forward", func(t *testing.T) {
		got := result.CashFlowStatements[q3]
		require.True(t, got.IsZero())
		require.Equal(t, domain.SourceTrend, got.Source)
		require.True(t, got.Estimate)
	})

	t.Run("balance sheet gaps before a known sheet interpolate nothing from one side", func(t *testing.T) {
		got := result.BalanceSheets[q2]
		require.True(t, got.IsZero())
		require.True(t, got.Estimate)
	})
}

func Test_quarterDates(t *testing.T) {
	t.Run("steps three months snapping to month end", func(t *testing.T) {
		dates := quarterDates([]string{q1, q4})
		require.Equal(t, []string{q1, q2, q3, q4}, dates)
	})

	t.Run("off quarter start keeps its own calendar", func(t *testing.T) {
		dates := quarterDates([]string{"2020-01-15", "2020-05-01"})
		require.Equal(t, []string{"2020-01-15", "2020-04-30", "2020-07-31"}, dates)
	})

	t.Run("empty input", func(t *testing.T) {
		require.Nil(t, quarterDates(nil))
	})
}
