package quotes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	mux.HandleFunc("/v1/markets/quotes", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbols"))
		fmt.Fprint(w, `{"quotes":{"quote":[{"symbol":"AAPL","last":175.0}]}}`)
	})

	mux.HandleFunc("/v1/markets/history", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "daily", r.URL.Query().Get("interval"))
		fmt.Fprint(w, `{"history":{"day":[
			{"date":"2025-01-06","close":100.0},
			{"date":"2025-01-07","close":102.0},
			{"date":"2025-01-08","close":101.0},
			{"date":"2025-01-09","close":103.0},
			{"date":"2025-01-10","close":102.5}
		]}}`)
	})

	mux.HandleFunc("/v1/markets/options/expirations", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"expirations":{"date":["2025-01-31","2025-02-14","2025-03-21"]}}`)
	})

	mux.HandleFunc("/v1/markets/options/chains", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025-02-14", r.URL.Query().Get("expiration"))
		fmt.Fprint(w, `{"options":{"option":[
			{"strike":160,"option_type":"call"},
			{"strike":165,"option_type":"call"},
			{"strike":170,"option_type":"call"},
			{"strike":170,"option_type":"put"},
			{"strike":175,"option_type":"call"},
			{"strike":180,"option_type":"call"},
			{"strike":185,"option_type":"call"},
			{"strike":175,"option_type":"call"}
		]}}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestFetchQuote(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL, "test-token")

	spot, err := client.FetchQuote("AAPL")
	require.NoError(t, err)
	assert.Equal(t, 175.0, spot)
}

func TestFetchQuoteServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "test-token")

	_, err := client.FetchQuote("AAPL")
	assert.ErrorContains(t, err, "failed to fetch /v1/markets/quotes")
}

func TestFetchHistoricalVolatility(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL, "test-token")

	volatility, err := client.FetchHistoricalVolatility("AAPL", testNow.AddDate(0, 0, -60), testNow)
	require.NoError(t, err)

	// four daily returns around +0.6% with roughly 1.4% spread, annualized
	assert.Greater(t, volatility, 0.05)
	assert.Less(t, volatility, 1.0)
}

func TestFetchHistoricalVolatilityNotEnoughHistory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"history":{"day":[{"date":"2025-01-10","close":100.0}]}}`)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "test-token")

	_, err := client.FetchHistoricalVolatility("AAPL", testNow.AddDate(0, 0, -60), testNow)
	assert.ErrorContains(t, err, "not enough history")
}

func TestFetchCallStrikes(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL, "test-token")

	strikes, err := client.FetchCallStrikes("AAPL", "2025-02-14")
	require.NoError(t, err)

	// puts dropped, duplicates collapsed, sorted ascending
	assert.Equal(t, []float64{160, 165, 170, 175, 180, 185}, strikes)
}

func TestSelectExpiration(t *testing.T) {
	expirations := []string{"2025-01-31", "2025-02-14", "2025-03-21"}

	t.Run("picks the listed date within a week of the horizon", func(t *testing.T) {
		expiration, err := selectExpiration(expirations, 30, testNow)
		require.NoError(t, err)
		assert.Equal(t, "2025-02-14", expiration)
	})

	t.Run("falls back to the first listed date", func(t *testing.T) {
		expiration, err := selectExpiration(expirations, 300, testNow)
		require.NoError(t, err)
		assert.Equal(t, "2025-01-31", expiration)
	})
}

func TestBuildLiveConfigs(t *testing.T) {
	server := newTestServer(t)
	client := NewClient(server.URL, "test-token")

	configs, err := client.BuildLiveConfigs("AAPL", 30, testNow)
	require.NoError(t, err)
	require.Len(t, configs, 4)

	// four strikes bracketing the 175 spot
	assert.Equal(t, 165.0, configs[0].StrikePrice)
	assert.Equal(t, 170.0, configs[1].StrikePrice)
	assert.Equal(t, 175.0, configs[2].StrikePrice)
	assert.Equal(t, 180.0, configs[3].StrikePrice)

	for _, config := range configs {
		assert.Equal(t, "AAPL", config.Ticker)
		assert.Equal(t, 175.0, config.CurrentPrice)
		assert.Equal(t, "2025-02-14", config.ExpirationDate)
		assert.Equal(t, "call", config.OptionType)
		require.NotNil(t, config.ImpliedVolatility)
		assert.Greater(t, *config.ImpliedVolatility, 0.0)
	}

	assert.Equal(t, "AAPL Call $165.00", configs[0].Name)
}
