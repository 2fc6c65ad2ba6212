package finnhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/quote", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "secret", r.Header.Get("X-Finnhub-Token"))
		if r.URL.Query().Get("symbol") == "BAD" {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":"API limit reached"}`))
			return
		}
		w.Write([]byte(`{"c":170.5,"d":1.5,"dp":0.88,"h":171,"l":168,"o":169,"pc":169,"t":1700000000}`))
	})
	mux.HandleFunc("/stock/profile2", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"Apple Inc","ticker":"AAPL","finnhubIndustry":"Technology","marketCapitalization":2800000}`))
	})
	mux.HandleFunc("/stock/metric", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "all", r.URL.Query().Get("metric"))
		w.Write([]byte(`{"symbol":"AAPL","metricType":"all","metric":{"10DayAverageTradingVolume":52.1,"peTTM":28.4,"52WeekHighDate":"2024-01-01"}}`))
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestClient(t *testing.T) {
	server := newTestServer(t)
	client := Client{
		HttpClient: server.Client(),
		ApiKey:     "secret",
		BaseURL:    server.URL,
	}
	ctx := context.Background()

	t.Run("quote", func(t *testing.T) {
		quote, err := client.GetQuote(ctx, "AAPL")
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff(&QuoteResponse{
			Current:       170.5,
			Change:        1.5,
			PercentChange: 0.88,
			High:          171,
			Low:           168,
			Open:          169,
			PreviousClose: 169,
			Timestamp:     1700000000,
		}, quote))
	})

	t.Run("error body is surfaced", func(t *testing.T) {
		_, err := client.GetQuote(ctx, "BAD")
		require.ErrorContains(t, err, "429")
		require.ErrorContains(t, err, "API limit reached")
	})

	t.Run("profile", func(t *testing.T) {
		profile, err := client.GetProfile(ctx, "AAPL")
		require.NoError(t, err)
		require.Equal(t, "Apple Inc", profile.Name)
		require.Equal(t, "Technology", profile.FinnhubIndustry)
	})

	t.Run("metrics", func(t *testing.T) {
		metrics, err := client.GetMetrics(ctx, "AAPL")
		require.NoError(t, err)

		v, ok := metrics.Float("peTTM")
		require.True(t, ok)
		require.Equal(t, 28.4, v)

		_, ok = metrics.Float("52WeekHighDate")
		require.False(t, ok)
		_, ok = metrics.Float("marketCapitalization")
		require.False(t, ok)
	})

	t.Run("status without body", func(t *testing.T) {
		err := client.get(ctx, "/broken", nil, &QuoteResponse{})
		require.EqualError(t, err, "failed with status code 500")
	})
}
