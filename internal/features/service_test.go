package features

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/buyside/internal/marketdata"
	"github.com/wonny/buyside/pkg/config"
	"github.com/wonny/buyside/pkg/logger"
	"github.com/wonny/buyside/pkg/redis"
)

type fakeProvider struct {
	closes []marketdata.DailyClose
	err    error

	lastFrom time.Time
	lastTo   time.Time
}

func (f *fakeProvider) FetchDailyCloses(ctx context.Context, symbol string, from, to time.Time) ([]marketdata.DailyClose, error) {
	f.lastFrom = from
	f.lastTo = to
	return f.closes, f.err
}

func newTestService(t *testing.T, provider marketdata.Provider) *Service {
	t.Helper()
	rc, err := redis.New(&config.Config{}) // Redis disabled, cache always misses
	require.NoError(t, err)
	return NewService(provider, redis.NewCache(rc, "buyside-test"), logger.NewNop())
}

func closesAt(prices ...float64) []marketdata.DailyClose {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]marketdata.DailyClose, 0, len(prices))
	for i, p := range prices {
		out = append(out, marketdata.DailyClose{
			Symbol:    "AAPL",
			TradeDate: base.AddDate(0, 0, i),
			Close:     p,
		})
	}
	return out
}

func TestPctReturn(t *testing.T) {
	ts := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		closes []marketdata.DailyClose
		err    error
		want   float64
	}{
		{
			name:   "two observations compute the ratio",
			closes: closesAt(100, 110),
			want:   0.1,
		},
		{
			name:   "three observations use the last two",
			closes: closesAt(90, 100, 105),
			want:   0.05,
		},
		{
			name:   "single observation degrades to zero",
			closes: closesAt(100),
			want:   0.0,
		},
		{
			name:   "empty window degrades to zero",
			closes: nil,
			want:   0.0,
		},
		{
			name: "lookup error degrades to zero",
			err:  errors.New("transport down"),
			want: 0.0,
		},
		{
			name:   "zero previous close degrades to zero",
			closes: closesAt(0, 110),
			want:   0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, &fakeProvider{closes: tt.closes, err: tt.err})
			got := svc.PctReturn(context.Background(), "AAPL", ts)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestEntryPrice(t *testing.T) {
	ts := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	t.Run("most recent close in window", func(t *testing.T) {
		svc := newTestService(t, &fakeProvider{closes: closesAt(100, 185.5)})
		price, ok := svc.EntryPrice(context.Background(), "AAPL", ts)
		require.True(t, ok)
		assert.Equal(t, 185.5, price)
	})

	t.Run("absent when window empty", func(t *testing.T) {
		svc := newTestService(t, &fakeProvider{})
		_, ok := svc.EntryPrice(context.Background(), "AAPL", ts)
		assert.False(t, ok)
	})

	t.Run("absent on lookup error", func(t *testing.T) {
		svc := newTestService(t, &fakeProvider{err: errors.New("boom")})
		_, ok := svc.EntryPrice(context.Background(), "AAPL", ts)
		assert.False(t, ok)
	})
}

func TestFetchWindowBounds(t *testing.T) {
	provider := &fakeProvider{}
	svc := newTestService(t, provider)

	// Mid-day timestamp truncates to the UTC date
	ts := time.Date(2024, 1, 3, 14, 30, 0, 0, time.UTC)
	svc.PctReturn(context.Background(), "AAPL", ts)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), provider.lastFrom)
	assert.Equal(t, time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), provider.lastTo)
}
