package valuation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stockval/internal/domain"
	"stockval/internal/util"
)

func Test_HistoricalPriceAt(t *testing.T) {
	stock := domain.Stock{
		HistoricalPricing: domain.HistoricalPricing{
			"2020-06-01": {Open: 10, Close: 11},
		},
	}

	t.Run("exact match", func(t *testing.T) {
		require.Equal(t, 10.0, HistoricalPriceAt(stock, util.NewDate(2020, 6, 1)))
	})

	t.Run("walks back over non trading days", func(t *testing.T) {
		require.Equal(t, 10.0, HistoricalPriceAt(stock, util.NewDate(2020, 6, 3)))
	})

	t.Run("before the earliest priced date", func(t *testing.T) {
		require.Equal(t, 0.0, HistoricalPriceAt(stock, util.NewDate(2020, 5, 31)))
	})

	t.Run("no pricing at all", func(t *testing.T) {
		require.Equal(t, 0.0, HistoricalPriceAt(domain.Stock{}, util.NewDate(2020, 6, 1)))
	})
}

func Test_Snapshot(t *testing.T) {
	statements := domain.NewFinancialStatements()
	statements.IncomeStatements["2020-03-31"] = domain.IncomeStatement{NetIncome: 5}
	statements.IncomeStatements["2020-09-30"] = domain.IncomeStatement{NetIncome: 7}
	statements.BalanceSheets["2020-03-31"] = domain.BalanceSheet{Assets: 100}
	statements.CashFlowStatements["2020-03-31"] = domain.CashFlowStatement{CashFromOperations: 3}

	stock := domain.Stock{
		Symbol:            "TST",
		Exchange:          "XTST",
		CurrentPrice:      42,
		SharesOutstanding: 1000,
		HistoricalPricing: domain.HistoricalPricing{
			"2020-06-01": {Open: 10, Close: 11},
		},
		FinancialStatements: statements,
	}

	t.Run("only statements published by the date survive", func(t *testing.T) {
		snapshot := Snapshot(stock, util.NewDate(2020, 6, 3))
		require.NotNil(t, snapshot)
		require.Equal(t, 10.0, snapshot.CurrentPrice)
		require.Equal(t, "2020-06-03", snapshot.LastUpdated)
		require.Equal(t, int64(1000), snapshot.SharesOutstanding)

		require.Contains(t, snapshot.FinancialStatements.IncomeStatements, "2020-03-31")
		require.NotContains(t, snapshot.FinancialStatements.IncomeStatements, "2020-09-30")
		require.Len(t, snapshot.FinancialStatements.BalanceSheets, 1)
		require.Len(t, snapshot.FinancialStatements.CashFlowStatements, 1)
	})

	t.Run("nil before the first priced date", func(t *testing.T) {
		require.Nil(t, Snapshot(stock, util.NewDate(2020, 5, 1)))
	})

	t.Run("nil when no statements existed yet", func(t *testing.T) {
		early := stock
		early.FinancialStatements = domain.NewFinancialStatements()
		early.FinancialStatements.IncomeStatements["2020-09-30"] = domain.IncomeStatement{NetIncome: 7}
		require.Nil(t, Snapshot(early, util.NewDate(2020, 6, 3)))
	})
}
