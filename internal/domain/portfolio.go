package domain

import (
	"github.com/shopspring/decimal"
)

const (
	TransactionDeposit  = "DEPOSIT"
	TransactionBuy      = "BUY"
	TransactionSell     = "SELL"
	TransactionDividend = "DIVIDEND"
)

// Transaction is an immutable ledger entry. Deposits and dividends carry
// only an amount; buys and sells also record price and share count.
type Transaction struct {
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Type     string  `json:"transactionType"`
	Symbol   string  `json:"symbol,omitempty"`
	Price    float64 `json:"price,omitempty"`
	NoShares int64   `json:"noShares,omitempty"`
}

// Position holds whole shares only. AvgPrice is the running average of
// purchase prices and feeds the capital gains calculation on sale.
type Position struct {
	AvgPrice float64 `json:"avgPrice"`
	NoShares int64   `json:"noShares"`
}

// Portfolio is simulated trading state. Cash is exact decimal so repeated
// small deposits and sale proceeds never drift.
type Portfolio struct {
	Cash               decimal.Decimal        `json:"cash"`
	TransactionHistory map[string]Transaction `json:"transactionHistory"`
	Positions          map[string]Position    `json:"stocks"`
	Roi                float64                `json:"roi"`
	Model              ValuationModel         `json:"model"`
}

func NewPortfolio(model ValuationModel) *Portfolio {
	return &Portfolio{
		Cash:               decimal.Zero,
		TransactionHistory: map[string]Transaction{},
		Positions:          map[string]Position{},
		Model:              model,
	}
}

func (p Portfolio) HeldSymbols() []string {
	symbols := []string{}
	for symbol := range p.Positions {
		symbols = append(symbols, symbol)
	}
	return symbols
}

func (p Portfolio) DeepCopy() *Portfolio {
	newPortfolio := &Portfolio{
		Cash:               p.Cash,
		TransactionHistory: map[string]Transaction{},
		Positions:          map[string]Position{},
		Roi:                p.Roi,
		Model:              p.Model,
	}
	for id, transaction := range p.TransactionHistory {
		newPortfolio.TransactionHistory[id] = transaction
	}
	for symbol, position := range p.Positions {
		newPortfolio.Positions[symbol] = position
	}

	return newPortfolio
}

// TotalValue is cash plus every position marked at the supplied prices.
// Symbols missing from the price map are valued at their average cost.
func (p Portfolio) TotalValue(priceMap map[string]float64) float64 {
	totalValue := p.Cash.InexactFloat64()
	for symbol, position := range p.Positions {
		price, ok := priceMap[symbol]
		if !ok {
			price = position.AvgPrice
		}
		totalValue += float64(position.NoShares) * price
	}

	return totalValue
}

// TotalInvested sums all deposits in the transaction history.
func (p Portfolio) TotalInvested() float64 {
	total := 0.0
	for _, transaction := range p.TransactionHistory {
		if transaction.Type == TransactionDeposit {
			total += transaction.Amount
		}
	}
	return total
}
