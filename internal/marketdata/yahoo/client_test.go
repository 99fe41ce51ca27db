package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/buyside/pkg/httputil"
	"github.com/wonny/buyside/pkg/logger"
)

func testWindow() (time.Time, time.Time) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	return from, to
}

func TestParseChartResponse(t *testing.T) {
	from, to := testWindow()

	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{
			name: "valid data",
			body: `{"chart":{"result":[{"timestamp":[1704240000,1704326400],
				"indicators":{"quote":[{"close":[185.5,186.2]}]}}],"error":null}}`,
			want:    2,
			wantErr: false,
		},
		{
			name: "null close entries skipped",
			body: `{"chart":{"result":[{"timestamp":[1704240000,1704326400],
				"indicators":{"quote":[{"close":[185.5,null]}]}}],"error":null}}`,
			want:    1,
			wantErr: false,
		},
		{
			name: "observations outside window excluded",
			body: `{"chart":{"result":[{"timestamp":[1604240000,1704326400],
				"indicators":{"quote":[{"close":[100.0,186.2]}]}}],"error":null}}`,
			want:    1,
			wantErr: false,
		},
		{
			name:    "no result",
			body:    `{"chart":{"result":[],"error":null}}`,
			want:    0,
			wantErr: false,
		},
		{
			name:    "API error",
			body:    `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`,
			want:    0,
			wantErr: true,
		},
		{
			name:    "malformed JSON",
			body:    `{"chart":`,
			want:    0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Client{logger: logger.NewNop()}
			got, err := c.parseChartResponse("AAPL", []byte(tt.body), from, to)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)

			for i := 1; i < len(got); i++ {
				assert.True(t, got[i-1].TradeDate.Before(got[i].TradeDate),
					"closes must be in ascending trade-date order")
			}
		})
	}
}

func TestFetchDailyCloses(t *testing.T) {
	from, to := testWindow()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "/v8/finance/chart/AAPL")
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		w.Write([]byte(`{"chart":{"result":[{"timestamp":[1704240000],
			"indicators":{"quote":[{"close":[185.5]}]}}],"error":null}}`))
	}))
	defer server.Close()

	log := logger.NewNop()
	client := NewClient(httputil.New(log), log, server.URL)

	closes, err := client.FetchDailyCloses(context.Background(), "AAPL", from, to)
	require.NoError(t, err)
	require.Len(t, closes, 1)
	assert.Equal(t, "AAPL", closes[0].Symbol)
	assert.Equal(t, 185.5, closes[0].Close)
}

func TestFetchDailyClosesHTTPError(t *testing.T) {
	from, to := testWindow()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	log := logger.NewNop()
	client := NewClient(httputil.New(log).DisableRetry(), log, server.URL)

	_, err := client.FetchDailyCloses(context.Background(), "AAPL", from, to)
	require.Error(t, err)
}
