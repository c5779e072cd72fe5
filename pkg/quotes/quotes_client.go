// Package quotes wraps the Yahoo finance endpoints used for current
// price, share count, dividend yield and daily price history.
package quotes

import (
	"fmt"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/piquette/finance-go/quote"

	"stockval/internal/domain"
	"stockval/internal/util"
)

type Client struct{}

func (c Client) LatestPrice(symbol string) (float64, error) {
	q, err := quote.Get(symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}
	if q == nil {
		return 0, fmt.Errorf("no quote returned for %s", symbol)
	}
	return q.RegularMarketPrice, nil
}

func (c Client) SharesOutstanding(symbol string) (int64, error) {
	e, err := equity.Get(symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to get equity for %s: %w", symbol, err)
	}
	if e == nil {
		return 0, fmt.Errorf("no equity returned for %s", symbol)
	}
	return int64(e.SharesOutstanding), nil
}

// DividendYield is the trailing annual dividend yield. Yahoo does not
// expose a longer average through this endpoint.
func (c Client) DividendYield(symbol string) (float64, error) {
	e, err := equity.Get(symbol)
	if err != nil {
		return 0, fmt.Errorf("failed to get equity for %s: %w", symbol, err)
	}
	if e == nil {
		return 0, fmt.Errorf("no equity returned for %s", symbol)
	}
	return e.TrailingAnnualDividendYield, nil
}

func (c Client) PriceHistory(symbol string, start, end time.Time) (domain.HistoricalPricing, error) {
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	pricing := domain.HistoricalPricing{}
	for iter.Next() {
		bar := iter.Bar()
		date := util.TimeToDateString(time.Unix(int64(bar.Timestamp), 0).UTC())
		pricing[date] = domain.HistoricalPrice{
			Open:  bar.Open.InexactFloat64(),
			Close: bar.Close.InexactFloat64(),
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}

	return pricing, nil
}
