// Package simulation replays a valuation model against historical
// snapshots, one calendar day at a time. Portfolio state carries forward
// between days so the walk is strictly sequential.
package simulation

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stockval/internal/domain"
	"stockval/internal/logger"
	"stockval/internal/util"
	"stockval/internal/valuation"
)

// Deposit adds cash to the portfolio and records the transaction.
func Deposit(portfolio *domain.Portfolio, date time.Time, amount float64) {
	portfolio.Cash = portfolio.Cash.Add(decimal.NewFromFloat(amount)).Round(2)
	portfolio.TransactionHistory[uuid.NewString()] = domain.Transaction{
		Date:   util.TimeToDateString(date),
		Type:   domain.TransactionDeposit,
		Amount: amount,
	}
}

// Purchase buys as many whole shares as the model's buy limit and the
// available cash allow. Buying into an existing position averages the
// old and new prices.
func Purchase(portfolio *domain.Portfolio, date time.Time, stock domain.Stock, model domain.ValuationModel) {
	price := decimal.NewFromFloat(stock.CurrentPrice)
	if price.IsZero() || portfolio.Cash.LessThan(price) {
		return
	}

	budget := portfolio.Cash
	if budget.GreaterThan(decimal.NewFromFloat(model.BuyLimit)) {
		budget = decimal.NewFromFloat(model.BuyLimit)
	}
	noShares := budget.Div(price).IntPart()
	if noShares == 0 {
		return
	}

	position, owned := portfolio.Positions[stock.Symbol]
	if owned {
		position.AvgPrice = util.Round2((position.AvgPrice + stock.CurrentPrice) / 2)
		position.NoShares += noShares
	} else {
		position = domain.Position{AvgPrice: stock.CurrentPrice, NoShares: noShares}
	}
	portfolio.Positions[stock.Symbol] = position

	cost := price.Mul(decimal.NewFromInt(noShares)).Round(2)
	portfolio.Cash = portfolio.Cash.Sub(cost).Round(2)

	portfolio.TransactionHistory[uuid.NewString()] = domain.Transaction{
		Date:     util.TimeToDateString(date),
		Type:     domain.TransactionBuy,
		Amount:   cost.InexactFloat64(),
		Symbol:   stock.Symbol,
		Price:    stock.CurrentPrice,
		NoShares: noShares,
	}
}

// Sale liquidates the whole position. Capital gains are taxed at the
// model's rate; losses are not deducted.
func Sale(portfolio *domain.Portfolio, date time.Time, stock domain.Stock, model domain.ValuationModel) {
	position, owned := portfolio.Positions[stock.Symbol]
	if !owned {
		return
	}

	capitalGained := float64(position.NoShares) * (stock.CurrentPrice - position.AvgPrice)
	if capitalGained < 0 {
		capitalGained = 0
	}

	cashFromSale := util.Round2(
		float64(position.NoShares)*stock.CurrentPrice - capitalGained*(1-model.TaxRate))

	portfolio.Cash = portfolio.Cash.Add(decimal.NewFromFloat(cashFromSale)).Round(2)
	delete(portfolio.Positions, stock.Symbol)

	portfolio.TransactionHistory[uuid.NewString()] = domain.Transaction{
		Date:     util.TimeToDateString(date),
		Type:     domain.TransactionSell,
		Amount:   cashFromSale,
		Symbol:   stock.Symbol,
		Price:    stock.CurrentPrice,
		NoShares: position.NoShares,
	}
}

// DividendPayment credits one quarter's worth of dividends for an owned
// position, net of tax. A stock without a yield pays nothing.
func DividendPayment(portfolio *domain.Portfolio, date time.Time, stock domain.Stock, model domain.ValuationModel) {
	position, owned := portfolio.Positions[stock.Symbol]
	if !owned || position.NoShares == 0 || stock.Valuation.DividendYield == 0 {
		return
	}

	dividendsDue := util.Round2(
		stock.Valuation.DividendYield * float64(position.NoShares) * (1 - model.TaxRate))

	portfolio.Cash = portfolio.Cash.Add(decimal.NewFromFloat(dividendsDue)).Round(2)
	portfolio.TransactionHistory[uuid.NewString()] = domain.Transaction{
		Date:   util.TimeToDateString(date),
		Type:   domain.TransactionDividend,
		Amount: dividendsDue,
		Symbol: stock.Symbol,
	}
}

// trade applies one day's decisions: top up on the last day of the
// month, buy the deepest discounts first, sell anything flagged that we
// own, then pay dividends for positions whose cash flow statements fall
// on this date.
func trade(portfolio *domain.Portfolio, toBuy, toSell []domain.Stock, date time.Time, stocks map[string]domain.Stock, model domain.ValuationModel) {
	if util.IsEndOfMonth(date) {
		Deposit(portfolio, date, model.TopUp)
	}

	sort.SliceStable(toBuy, func(i, j int) bool {
		return toBuy[i].Valuation.Mos > toBuy[j].Valuation.Mos
	})
	for _, stock := range toBuy {
		Purchase(portfolio, date, stock, model)
	}

	for _, stock := range toSell {
		Sale(portfolio, date, stock, model)
	}

	dateString := util.TimeToDateString(date)
	for _, symbol := range portfolio.HeldSymbols() {
		stock, ok := stocks[symbol]
		if !ok {
			continue
		}
		if _, published := stock.FinancialStatements.CashFlowStatements[dateString]; published {
			DividendPayment(portfolio, date, stock, model)
		}
	}
}

// Roi annualizes the portfolio's return over the simulated window. Runs
// shorter than a year are treated as one year so short windows don't
// inflate the rate.
func Roi(portfolio *domain.Portfolio, stocks map[string]domain.Stock, startDate, endDate time.Time) float64 {
	priceMap := map[string]float64{}
	for symbol, stock := range stocks {
		priceMap[symbol] = stock.CurrentPrice
	}
	value := portfolio.TotalValue(priceMap)

	invested := portfolio.TotalInvested()
	if invested == 0 {
		return 0
	}

	years := yearsBetween(startDate, endDate)
	if years < 1 {
		years = 1
	}

	return (value - invested) / invested / float64(years)
}

func yearsBetween(start, end time.Time) int {
	years := end.Year() - start.Year()
	if end.Month() < start.Month() ||
		(end.Month() == start.Month() && end.Day() < start.Day()) {
		years--
	}
	return years
}

// earliestStatementDate finds the first date any stock has a statement
// for, across all three statement types.
func earliestStatementDate(stocks map[string]domain.Stock) string {
	dates := []string{}
	for _, stock := range stocks {
		for date := range stock.FinancialStatements.IncomeStatements {
			dates = append(dates, date)
		}
		for date := range stock.FinancialStatements.BalanceSheets {
			dates = append(dates, date)
		}
		for date := range stock.FinancialStatements.CashFlowStatements {
			dates = append(dates, date)
		}
	}
	return util.SmallestDate(dates)
}

func hasPriceOn(stock domain.Stock, date time.Time) bool {
	price, ok := stock.HistoricalPricing[util.TimeToDateString(date)]
	return ok && price.Open != 0
}

// Simulate walks every day in [startDate, endDate], re-evaluates each
// priced stock against its snapshot as of that day and trades on the
// resulting instructions. A zero startDate falls back to the model's
// start date, then to the earliest statement on record; a zero endDate
// means today. The portfolio is mutated in place and returned with its
// annualized roi and the model it was run under.
func Simulate(portfolio *domain.Portfolio, stocks map[string]domain.Stock, model domain.ValuationModel, startDate, endDate time.Time) (*domain.Portfolio, error) {
	log := logger.New()

	if startDate.IsZero() {
		startDateString := model.StartDate
		if startDateString == "" {
			startDateString = earliestStatementDate(stocks)
		}
		if startDateString == "" {
			return nil, fmt.Errorf("no start date and no statements to infer one from")
		}
		parsed, err := util.DateStringToTime(startDateString)
		if err != nil {
			return nil, fmt.Errorf("parsing start date %q: %w", startDateString, err)
		}
		startDate = parsed
	}
	if endDate.IsZero() {
		endDate = time.Now().UTC()
	}

	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		toBuy := []domain.Stock{}
		toSell := []domain.Stock{}

		for _, stock := range stocks {
			if !hasPriceOn(stock, date) {
				continue
			}
			snapshot := valuation.Snapshot(stock, date)
			if snapshot == nil {
				continue
			}
			snapshot.Valuation = valuation.Evaluate(*snapshot, model)

			switch snapshot.Valuation.Instruction {
			case domain.InstructionBuy:
				log.Debugf("%s: buying %s at %.2f (mos %.2f)",
					util.TimeToDateString(date), snapshot.Symbol, snapshot.CurrentPrice, snapshot.Valuation.Mos)
				toBuy = append(toBuy, *snapshot)
			case domain.InstructionSell:
				toSell = append(toSell, *snapshot)
			}
		}

		trade(portfolio, toBuy, toSell, date, stocks, model)
	}

	portfolio.Roi = Roi(portfolio, stocks, startDate, endDate)
	portfolio.Model = model

	return portfolio, nil
}
