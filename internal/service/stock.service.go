package service

import (
	"fmt"
	"time"

	"stockval/internal/domain"
	"stockval/internal/logger"
	"stockval/internal/repository"
	"stockval/internal/statements"
	"stockval/internal/util"
	"stockval/internal/valuation"
	"stockval/pkg/eodhistorical"
)

// FundamentalsProvider returns raw dual-cadence statement data and
// end-of-day pricing for a listed symbol.
type FundamentalsProvider interface {
	GetFundamentals(symbol, exchange string) (*eodhistorical.FundamentalsResponse, error)
	GetPriceHistory(symbol, exchange string, from time.Time) ([]eodhistorical.PriceBar, error)
}

// QuotesProvider returns live per-symbol figures from the quote feed.
type QuotesProvider interface {
	LatestPrice(symbol string) (float64, error)
	SharesOutstanding(symbol string) (int64, error)
	DividendYield(symbol string) (float64, error)
}

// StockService runs the per-symbol processing pipeline: fetch, merge and
// fill statements, refresh pricing and share counts, backfill dividends,
// evaluate and persist. The stored stock is only written back once the
// whole run for that symbol succeeds.
type StockService interface {
	ProcessSymbol(symbol, exchange string) (*domain.Stock, error)
	ProcessExchange(exchange string) error
	EvaluateExchange(exchange string, model domain.ValuationModel) error
}

type stockServiceHandler struct {
	StockRepository    repository.StockRepository
	UniverseRepository repository.UniverseRepository
	Fundamentals       FundamentalsProvider
	Quotes             QuotesProvider
	Model              domain.ValuationModel
	Now                func() time.Time
}

func NewStockService(
	stockRepository repository.StockRepository,
	universeRepository repository.UniverseRepository,
	fundamentals FundamentalsProvider,
	quotes QuotesProvider,
	model domain.ValuationModel,
) StockService {
	return &stockServiceHandler{
		StockRepository:    stockRepository,
		UniverseRepository: universeRepository,
		Fundamentals:       fundamentals,
		Quotes:             quotes,
		Model:              model,
		Now:                func() time.Time { return time.Now().UTC() },
	}
}

func (h *stockServiceHandler) ProcessSymbol(symbol, exchange string) (*domain.Stock, error) {
	today := util.TimeToDateString(h.Now())

	stored, err := h.StockRepository.Get(symbol, exchange)
	if err != nil {
		return nil, err
	}

	stock := domain.Stock{
		Symbol:              symbol,
		Exchange:            exchange,
		FinancialStatements: domain.NewFinancialStatements(),
	}
	if stored != nil {
		stock = *stored
	}

	if stock.LastUpdated == today {
		logger.Debug("%s already processed today, skipping", symbol)
		return &stock, nil
	}

	price, err := h.Quotes.LatestPrice(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to process %s: %w", symbol, err)
	}
	stock.CurrentPrice = price

	raw, err := h.Fundamentals.GetFundamentals(symbol, exchange)
	if err != nil {
		return nil, fmt.Errorf("failed to process %s: %w", symbol, err)
	}
	if raw.General.Name != "" {
		stock.Name = raw.General.Name
	}

	opts := statements.FillOptions{
		Validity: statements.ValidityPolicy{RequireRetainedEarnings: h.Model.RequireRetainedEarnings},
	}
	merged := statements.Make(stock.FinancialStatements, statements.ParseFundamentals(raw), opts)
	if merged == nil {
		// nothing to value; drop whatever we had stored
		logger.Info("%s has no usable statements, removing", symbol)
		if err = h.StockRepository.Remove(symbol, exchange); err != nil {
			return nil, err
		}
		return nil, nil
	}
	stock.FinancialStatements = *merged

	if err = h.refreshPricing(&stock); err != nil {
		return nil, fmt.Errorf("failed to process %s: %w", symbol, err)
	}

	shares, err := h.Quotes.SharesOutstanding(symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to process %s: %w", symbol, err)
	}
	if shares == 0 {
		shares = raw.SharesStats.SharesOutstanding
	}
	stock.SharesOutstanding = shares

	if err = h.backfillDividends(&stock); err != nil {
		return nil, fmt.Errorf("failed to process %s: %w", symbol, err)
	}

	stock.Valuation = valuation.Evaluate(stock, h.Model)
	stock.LastUpdated = today

	if err = h.StockRepository.Save(stock, exchange); err != nil {
		return nil, err
	}

	return &stock, nil
}

// refreshPricing replaces the stored price history with a fresh series
// starting at the earliest statement on record. A provider failure keeps
// the old series rather than wiping it.
func (h *stockServiceHandler) refreshPricing(stock *domain.Stock) error {
	dates := []string{}
	for date := range stock.FinancialStatements.IncomeStatements {
		dates = append(dates, date)
	}
	from := util.SmallestDate(dates)
	if from == "" {
		return nil
	}
	fromDate, err := util.DateStringToTime(from)
	if err != nil {
		return fmt.Errorf("bad statement date %q: %w", from, err)
	}

	bars, err := h.Fundamentals.GetPriceHistory(stock.Symbol, stock.Exchange, fromDate)
	if err != nil {
		logger.Warn("failed to refresh pricing for %s, keeping stored series: %v", stock.Symbol, err)
		return nil
	}

	pricing := statements.ParsePriceHistory(bars)
	if len(pricing) > 0 {
		stock.HistoricalPricing = pricing
	}
	return nil
}

// backfillDividends estimates dividendsPaid for cash flow statements
// that lack it, from the dividend yield and the current share count. A
// symbol without a yield pays nothing and the statements stay as-is.
func (h *stockServiceHandler) backfillDividends(stock *domain.Stock) error {
	dividendYield, err := h.Quotes.DividendYield(stock.Symbol)
	if err != nil {
		return err
	}
	if dividendYield == 0 || stock.SharesOutstanding == 0 {
		return nil
	}

	// annual payout spread across quarterly statements
	quarterlyDividends := dividendYield * float64(stock.SharesOutstanding) / 4

	for date, statement := range stock.FinancialStatements.CashFlowStatements {
		if statement.DividendsPaid == 0 {
			statement.DividendsPaid = quarterlyDividends
			stock.FinancialStatements.CashFlowStatements[date] = statement
		}
	}
	return nil
}

func (h *stockServiceHandler) ProcessExchange(exchange string) error {
	entries, err := h.UniverseRepository.List(exchange)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		logger.Info("processing %s.%s", entry.Symbol, exchange)
		_, err = h.ProcessSymbol(entry.Symbol, exchange)
		if err != nil {
			// one bad symbol shouldn't sink the whole run
			logger.Error(fmt.Errorf("failed to process %s.%s: %w", entry.Symbol, exchange, err))
		}
	}
	return nil
}

// EvaluateExchange re-runs the valuation over every stored stock without
// touching the providers. Used to apply a new model to existing data.
func (h *stockServiceHandler) EvaluateExchange(exchange string, model domain.ValuationModel) error {
	stocks, err := h.StockRepository.List(exchange)
	if err != nil {
		return err
	}

	for _, stock := range stocks {
		stock.Valuation = valuation.Evaluate(stock, model)
		if err = h.StockRepository.Save(stock, exchange); err != nil {
			return err
		}
		logger.Info("%s: %s (fair value %.2f, price %.2f)",
			stock.Symbol, stock.Valuation.Instruction, stock.Valuation.FairValue, stock.CurrentPrice)
	}
	return nil
}
