package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/wonny/buyside/internal/marketdata"
	"github.com/wonny/buyside/pkg/httputil"
	"github.com/wonny/buyside/pkg/logger"
)

// Client fetches daily price history from the Yahoo Finance chart API
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	baseURL    string
}

// NewClient creates a new Yahoo Finance client
func NewClient(httpClient *httputil.Client, log *logger.Logger, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://query1.finance.yahoo.com"
	}
	return &Client{
		httpClient: httpClient,
		logger:     log,
		baseURL:    baseURL,
	}
}

// chartResponse mirrors the subset of the chart API payload we consume
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDailyCloses fetches daily closing prices for [from, to)
func (c *Client) FetchDailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]marketdata.DailyClose, error) {
	fullURL := fmt.Sprintf(
		"%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=history",
		c.baseURL, symbol, from.Unix(), to.Unix(),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body failed: %w", err)
	}

	closes, err := c.parseChartResponse(symbol, body, from, to)
	if err != nil {
		return nil, fmt.Errorf("parse response failed: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol": symbol,
		"count":  len(closes),
	}).Debug("Fetched daily closes")
	return closes, nil
}

// parseChartResponse extracts daily closes from the chart payload
func (c *Client) parseChartResponse(symbol string, body []byte, from, to time.Time) ([]marketdata.DailyClose, error) {
	var parsed chartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode chart JSON failed: %w", err)
	}

	if parsed.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error: %s (%s)",
			parsed.Chart.Error.Code, parsed.Chart.Error.Description)
	}

	if len(parsed.Chart.Result) == 0 {
		return nil, nil
	}

	result := parsed.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, nil
	}

	quote := result.Indicators.Quote[0]

	var closes []marketdata.DailyClose
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue // Halted/partial days come back as null
		}

		tradeDate := time.Unix(ts, 0).UTC()
		if tradeDate.Before(from) || !tradeDate.Before(to) {
			continue
		}

		closes = append(closes, marketdata.DailyClose{
			Symbol:    symbol,
			TradeDate: tradeDate,
			Close:     *quote.Close[i],
		})
	}

	sort.Slice(closes, func(i, j int) bool {
		return closes[i].TradeDate.Before(closes[j].TradeDate)
	})

	return closes, nil
}
