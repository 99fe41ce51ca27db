package marketdata

import (
	"context"
	"time"
)

// DailyClose represents one daily closing price observation
type DailyClose struct {
	Symbol    string    `json:"symbol"`
	TradeDate time.Time `json:"trade_date"`
	Close     float64   `json:"close"`
}

// Provider fetches daily closing prices from an external time-series source.
// Closes are returned in ascending trade-date order for the half-open window
// [from, to).
type Provider interface {
	FetchDailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]DailyClose, error)
}
