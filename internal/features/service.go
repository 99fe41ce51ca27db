package features

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/buyside/internal/marketdata"
	"github.com/wonny/buyside/pkg/logger"
	"github.com/wonny/buyside/pkg/redis"
)

// Window size around the event date used for feature computation:
// [event date - 2 days, event date + 1 day)
const (
	windowDaysBack    = 2
	windowDaysForward = 1

	cacheTTL = 6 * time.Hour
)

// Service computes per-event features from external price history.
// Both operations are total: any lookup failure or data gap degrades to the
// neutral default instead of surfacing an error.
type Service struct {
	provider marketdata.Provider
	cache    *redis.Cache
	logger   *logger.Logger
}

// NewService creates a new feature service
func NewService(provider marketdata.Provider, cache *redis.Cache, log *logger.Logger) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
		logger:   log,
	}
}

// PctReturn computes the percent return over the prior trading session for
// symbol at ts. Returns 0.0 when fewer than two closes exist in the window
// or the lookup fails.
func (s *Service) PctReturn(ctx context.Context, symbol string, ts time.Time) float64 {
	closes := s.fetchWindow(ctx, symbol, ts)
	if len(closes) < 2 {
		return 0.0
	}

	last := closes[len(closes)-1].Close
	prev := closes[len(closes)-2].Close
	if prev == 0 {
		return 0.0
	}

	return (last - prev) / prev
}

// EntryPrice returns the most recent close in the window for symbol at ts.
// The second return value is false when no observation exists or the lookup
// fails.
func (s *Service) EntryPrice(ctx context.Context, symbol string, ts time.Time) (float64, bool) {
	closes := s.fetchWindow(ctx, symbol, ts)
	if len(closes) == 0 {
		return 0, false
	}

	return closes[len(closes)-1].Close, true
}

// fetchWindow loads the close window for symbol around ts, consulting the
// cache first. Never returns an error; failures yield an empty window.
func (s *Service) fetchWindow(ctx context.Context, symbol string, ts time.Time) []marketdata.DailyClose {
	date := ts.UTC().Truncate(24 * time.Hour)
	from := date.AddDate(0, 0, -windowDaysBack)
	to := date.AddDate(0, 0, windowDaysForward)

	cacheKey := fmt.Sprintf("closes:%s:%s", symbol, date.Format("2006-01-02"))

	var cached []marketdata.DailyClose
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return cached
	}

	closes, err := s.provider.FetchDailyCloses(ctx, symbol, from, to)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"symbol": symbol,
			"date":   date.Format("2006-01-02"),
			"error":  err.Error(),
		}).Warn("Price history lookup failed, degrading to empty window")
		return nil
	}

	if err := s.cache.Set(ctx, cacheKey, closes, cacheTTL); err != nil {
		s.logger.WithError(err).Debug("Close window cache write failed")
	}

	return closes
}
