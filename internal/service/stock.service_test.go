package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stockval/internal/domain"
	"stockval/internal/repository"
	"stockval/internal/util"
	"stockval/pkg/eodhistorical"
)

type fakeStockRepository struct {
	stocks  map[string]domain.Stock
	removed []string
}

func newFakeStockRepository() *fakeStockRepository {
	return &fakeStockRepository{stocks: map[string]domain.Stock{}}
}

func (f *fakeStockRepository) Get(symbol, exchange string) (*domain.Stock, error) {
	stock, ok := f.stocks[symbol+"."+exchange]
	if !ok {
		return nil, nil
	}
	return &stock, nil
}

func (f *fakeStockRepository) List(exchange string) ([]domain.Stock, error) {
	out := []domain.Stock{}
	for _, stock := range f.stocks {
		out = append(out, stock)
	}
	return out, nil
}

func (f *fakeStockRepository) Save(stock domain.Stock, exchange string) error {
	f.stocks[stock.Symbol+"."+exchange] = stock
	return nil
}

func (f *fakeStockRepository) Remove(symbol, exchange string) error {
	delete(f.stocks, symbol+"."+exchange)
	f.removed = append(f.removed, symbol)
	return nil
}

type fakeUniverseRepository struct {
	entries []repository.UniverseEntry
}

func (f fakeUniverseRepository) List(exchange string) ([]repository.UniverseEntry, error) {
	return f.entries, nil
}

type fakeFundamentals struct {
	response *eodhistorical.FundamentalsResponse
	bars     []eodhistorical.PriceBar
	calls    int
}

func (f *fakeFundamentals) GetFundamentals(symbol, exchange string) (*eodhistorical.FundamentalsResponse, error) {
	f.calls++
	return f.response, nil
}

func (f *fakeFundamentals) GetPriceHistory(symbol, exchange string, from time.Time) ([]eodhistorical.PriceBar, error) {
	return f.bars, nil
}

type fakeQuotes struct {
	price         float64
	shares        int64
	dividendYield float64
}

func (f fakeQuotes) LatestPrice(symbol string) (float64, error) { return f.price, nil }

func (f fakeQuotes) SharesOutstanding(symbol string) (int64, error) { return f.shares, nil }

func (f fakeQuotes) DividendYield(symbol string) (float64, error) { return f.dividendYield, nil }

func usableFundamentals() *eodhistorical.FundamentalsResponse {
	response := &eodhistorical.FundamentalsResponse{}
	response.General.Name = "Test Corp"
	response.SharesStats.SharesOutstanding = 500
	response.Financials.IncomeStatement.Quarterly = map[string]eodhistorical.IncomeStatementFields{
		"2020-03-31": {TotalRevenue: "100", NetIncome: "10", IncomeBeforeTax: "12"},
	}
	response.Financials.BalanceSheet.Quarterly = map[string]eodhistorical.BalanceSheetFields{
		"2020-03-31": {
			TotalAssets: "100", TotalCurrentAssets: "50",
			TotalLiab: "40", TotalCurrentLiabilities: "20", Cash: "5",
		},
	}
	response.Financials.CashFlow.Quarterly = map[string]eodhistorical.CashFlowFields{
		"2020-03-31": {DividendsPaid: "4", TotalCashFromOperatingActivities: "20", CapitalExpenditures: "5"},
	}
	return response
}

func newTestService(stockRepo *fakeStockRepository, fundamentals *fakeFundamentals, quotes fakeQuotes) *stockServiceHandler {
	handler := NewStockService(
		stockRepo,
		fakeUniverseRepository{entries: []repository.UniverseEntry{{Symbol: "TST"}}},
		fundamentals,
		quotes,
		domain.DefaultValuationModel(),
	).(*stockServiceHandler)
	handler.Now = func() time.Time { return util.NewDate(2020, 6, 1) }
	return handler
}

func Test_ProcessSymbol(t *testing.T) {
	stockRepo := newFakeStockRepository()
	fundamentals := &fakeFundamentals{
		response: usableFundamentals(),
		bars:     []eodhistorical.PriceBar{{Date: "2020-03-31", Open: 9, Close: 9.5}},
	}
	handler := newTestService(stockRepo, fundamentals, fakeQuotes{price: 10, shares: 1000})

	stock, err := handler.ProcessSymbol("TST", "US")
	require.NoError(t, err)
	require.NotNil(t, stock)

	require.Equal(t, 10.0, stock.CurrentPrice)
	require.Equal(t, "Test Corp", stock.Name)
	require.Equal(t, int64(1000), stock.SharesOutstanding)
	require.Equal(t, "2020-06-01", stock.LastUpdated)
	require.Equal(t, 9.0, stock.HistoricalPricing["2020-03-31"].Open)

	income := stock.FinancialStatements.IncomeStatements["2020-03-31"]
	require.Equal(t, 100.0, income.TotalRevenue)
	require.Equal(t, domain.SourceActual, income.Source)

	// a single quarter of data never clears the viability gate
	require.Equal(t, domain.InstructionSell, stock.Valuation.Instruction)

	saved, err := stockRepo.Get("TST", "US")
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.Equal(t, "2020-06-01", saved.LastUpdated)
}

func Test_ProcessSymbol_SkipsWhenCurrent(t *testing.T) {
	stockRepo := newFakeStockRepository()
	stockRepo.stocks["TST.US"] = domain.Stock{Symbol: "TST", Exchange: "US", LastUpdated: "2020-06-01"}

	fundamentals := &fakeFundamentals{response: usableFundamentals()}
	handler := newTestService(stockRepo, fundamentals, fakeQuotes{price: 10, shares: 1000})

	stock, err := handler.ProcessSymbol("TST", "US")
	require.NoError(t, err)
	require.NotNil(t, stock)
	require.Equal(t, 0, fundamentals.calls)
}

func Test_ProcessSymbol_RemovesWhenNoUsableStatements(t *testing.T) {
	stockRepo := newFakeStockRepository()
	stockRepo.stocks["TST.US"] = domain.Stock{
		Symbol: "TST", Exchange: "US",
		FinancialStatements: domain.NewFinancialStatements(),
	}

	handler := newTestService(stockRepo, &fakeFundamentals{response: &eodhistorical.FundamentalsResponse{}}, fakeQuotes{price: 10})

	stock, err := handler.ProcessSymbol("TST", "US")
	require.NoError(t, err)
	require.Nil(t, stock)
	require.Equal(t, []string{"TST"}, stockRepo.removed)
}

func Test_backfillDividends(t *testing.T) {
	statements := domain.NewFinancialStatements()
	statements.CashFlowStatements["2020-03-31"] = domain.CashFlowStatement{CashFromOperations: 20}
	statements.CashFlowStatements["2020-06-30"] = domain.CashFlowStatement{CashFromOperations: 20, DividendsPaid: 99}

	stock := domain.Stock{
		Symbol:              "TST",
		SharesOutstanding:   1000,
		FinancialStatements: statements,
	}

	handler := newTestService(newFakeStockRepository(), &fakeFundamentals{}, fakeQuotes{dividendYield: 2})

	require.NoError(t, handler.backfillDividends(&stock))

	// 2 * 1000 / 4 per quarter, only where the statement had nothing
	require.Equal(t, 500.0, stock.FinancialStatements.CashFlowStatements["2020-03-31"].DividendsPaid)
	require.Equal(t, 99.0, stock.FinancialStatements.CashFlowStatements["2020-06-30"].DividendsPaid)
}

func Test_backfillDividends_NoYield(t *testing.T) {
	statements := domain.NewFinancialStatements()
	statements.CashFlowStatements["2020-03-31"] = domain.CashFlowStatement{CashFromOperations: 20}

	stock := domain.Stock{Symbol: "TST", SharesOutstanding: 1000, FinancialStatements: statements}
	handler := newTestService(newFakeStockRepository(), &fakeFundamentals{}, fakeQuotes{})

	require.NoError(t, handler.backfillDividends(&stock))
	require.Equal(t, 0.0, stock.FinancialStatements.CashFlowStatements["2020-03-31"].DividendsPaid)
}
