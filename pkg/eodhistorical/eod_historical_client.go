// Package eodhistorical is a thin client for the EOD Historical Data
// fundamentals and end-of-day pricing endpoints. Statement fields come
// back as numeric strings; parsing them into domain values is the
// caller's concern.
package eodhistorical

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stockval/internal/logger"
)

const (
	defaultBaseUrl    = "https://eodhistoricaldata.com"
	defaultRetryDelay = 60 * time.Second
	maxRetries        = 5
)

type Client struct {
	HttpClient *http.Client
	ApiKey     string
	// BaseUrl overrides the production endpoint. Tests point it at a
	// local server; empty means production.
	BaseUrl string
	// RetryDelay is the pause between rate-limited attempts; zero means
	// the default.
	RetryDelay time.Duration
}

func (c Client) baseUrl() string {
	if c.BaseUrl != "" {
		return c.BaseUrl
	}
	return defaultBaseUrl
}

func (c Client) retryDelay() time.Duration {
	if c.RetryDelay != 0 {
		return c.RetryDelay
	}
	return defaultRetryDelay
}

type IncomeStatementFields struct {
	TotalRevenue               string `json:"totalRevenue"`
	NetIncome                  string `json:"netIncome"`
	NetIncomeFromContinuingOps string `json:"netIncomeFromContinuingOps"`
	DiscontinuedOperations     string `json:"discontinuedOperations"`
	IncomeBeforeTax            string `json:"incomeBeforeTax"`
	InterestIncome             string `json:"interestIncome"`
	NetInterestIncome          string `json:"netInterestIncome"`
	InterestExpense            string `json:"interestExpense"`
}

type BalanceSheetFields struct {
	TotalAssets             string `json:"totalAssets"`
	TotalCurrentAssets      string `json:"totalCurrentAssets"`
	TotalLiab               string `json:"totalLiab"`
	TotalCurrentLiabilities string `json:"totalCurrentLiabilities"`
	RetainedEarnings        string `json:"retainedEarnings"`
	Cash                    string `json:"cash"`
	NetWorkingCapital       string `json:"netWorkingCapital"`
}

type CashFlowFields struct {
	DividendsPaid                    string `json:"dividendsPaid"`
	TotalCashFromOperatingActivities string `json:"totalCashFromOperatingActivities"`
	CapitalExpenditures              string `json:"capitalExpenditures"`
	FreeCashFlow                     string `json:"freeCashFlow"`
}

type StatementHistory[F any] struct {
	Quarterly map[string]F `json:"quarterly"`
	Yearly    map[string]F `json:"yearly"`
}

type FundamentalsResponse struct {
	General struct {
		Code         string `json:"Code"`
		Exchange     string `json:"Exchange"`
		Name         string `json:"Name"`
		CurrencyCode string `json:"CurrencyCode"`
	} `json:"General"`
	SharesStats struct {
		SharesOutstanding int64 `json:"SharesOutstanding"`
	} `json:"SharesStats"`
	Financials struct {
		IncomeStatement StatementHistory[IncomeStatementFields] `json:"Income_Statement"`
		BalanceSheet    StatementHistory[BalanceSheetFields]    `json:"Balance_Sheet"`
		CashFlow        StatementHistory[CashFlowFields]        `json:"Cash_Flow"`
	} `json:"Financials"`
}

func (c Client) GetFundamentals(symbol, exchange string) (*FundamentalsResponse, error) {
	url := fmt.Sprintf("%s/api/fundamentals/%s.%s?api_token=%s&fmt=json", c.baseUrl(), symbol, exchange, c.ApiKey)
	responseBytes, err := c.get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fundamentals for %s.%s: %w", symbol, exchange, err)
	}

	var responseJson FundamentalsResponse
	err = json.Unmarshal(responseBytes, &responseJson)
	if err != nil {
		return nil, err
	}

	return &responseJson, nil
}

type PriceBar struct {
	Date  string  `json:"date"`
	Open  float64 `json:"open"`
	Close float64 `json:"close"`
}

func (c Client) GetPriceHistory(symbol, exchange string, from time.Time) ([]PriceBar, error) {
	url := fmt.Sprintf("%s/api/eod/%s.%s?api_token=%s&fmt=json&period=d&from=%s",
		c.baseUrl(), symbol, exchange, c.ApiKey, from.Format("2006-01-02"))
	responseBytes, err := c.get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch price history for %s.%s: %w", symbol, exchange, err)
	}

	var bars []PriceBar
	err = json.Unmarshal(responseBytes, &bars)
	if err != nil {
		return nil, err
	}

	return bars, nil
}

// get fetches a url, waiting out rate limits up to maxRetries times
// before giving up.
func (c Client) get(url string) ([]byte, error) {
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequest(http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		response, err := c.HttpClient.Do(req)
		if err != nil {
			return nil, err
		}

		responseBytes, err := io.ReadAll(response.Body)
		response.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
		}

		if response.StatusCode == 429 {
			if attempt == maxRetries {
				return nil, fmt.Errorf("still rate limited after %d retries", maxRetries)
			}
			logger.Debug("hit rate limit. sleeping...")
			time.Sleep(c.retryDelay())
			continue
		}
		if response.StatusCode != 200 {
			return nil, fmt.Errorf("failed with status code %d: %s", response.StatusCode, string(responseBytes))
		}

		return responseBytes, nil
	}
}
