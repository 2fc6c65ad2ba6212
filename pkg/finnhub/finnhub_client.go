package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://finnhub.io/api/v1"

type Client struct {
	HttpClient *http.Client
	ApiKey     string
	BaseURL    string
}

func NewClient(apiKey string, httpClient *http.Client) Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return Client{
		HttpClient: httpClient,
		ApiKey:     apiKey,
		BaseURL:    DefaultBaseURL,
	}
}

type QuoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	PercentChange float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Open          float64 `json:"o"`
	PreviousClose float64 `json:"pc"`
	Timestamp     int64   `json:"t"`
}

type ProfileResponse struct {
	Country              string  `json:"country"`
	Currency             string  `json:"currency"`
	Exchange             string  `json:"exchange"`
	FinnhubIndustry      string  `json:"finnhubIndustry"`
	Ipo                  string  `json:"ipo"`
	Logo                 string  `json:"logo"`
	MarketCapitalization float64 `json:"marketCapitalization"`
	Name                 string  `json:"name"`
	Phone                string  `json:"phone"`
	ShareOutstanding     float64 `json:"shareOutstanding"`
	Ticker               string  `json:"ticker"`
	WebUrl               string  `json:"weburl"`
}

// MetricResponse is the metric=all payload. Values are mostly numbers but
// a few keys hold strings, so they are left untyped.
type MetricResponse struct {
	Symbol     string         `json:"symbol"`
	MetricType string         `json:"metricType"`
	Metric     map[string]any `json:"metric"`
}

// Float returns the named metric when it is present and numeric.
func (m MetricResponse) Float(name string) (float64, bool) {
	v, ok := m.Metric[name]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

func (c Client) GetQuote(ctx context.Context, symbol string) (*QuoteResponse, error) {
	out := QuoteResponse{}
	if err := c.get(ctx, "/quote", url.Values{"symbol": {symbol}}, &out); err != nil {
		return nil, fmt.Errorf("failed to get quote for %s: %w", symbol, err)
	}
	return &out, nil
}

func (c Client) GetProfile(ctx context.Context, symbol string) (*ProfileResponse, error) {
	out := ProfileResponse{}
	if err := c.get(ctx, "/stock/profile2", url.Values{"symbol": {symbol}}, &out); err != nil {
		return nil, fmt.Errorf("failed to get profile for %s: %w", symbol, err)
	}
	return &out, nil
}

func (c Client) GetMetrics(ctx context.Context, symbol string) (*MetricResponse, error) {
	out := MetricResponse{}
	if err := c.get(ctx, "/stock/metric", url.Values{"symbol": {symbol}, "metric": {"all"}}, &out); err != nil {
		return nil, fmt.Errorf("failed to get metrics for %s: %w", symbol, err)
	}
	return &out, nil
}

func (c Client) get(ctx context.Context, path string, params url.Values, out any) error {
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	endpoint := strings.TrimSuffix(baseURL, "/") + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-Finnhub-Token", c.ApiKey)

	response, err := c.HttpClient.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode != http.StatusOK {
		type errResponse struct {
			Error string `json:"error"`
		}
		errJson := errResponse{}
		if err := json.Unmarshal(responseBytes, &errJson); err != nil || errJson.Error == "" {
			return fmt.Errorf("failed with status code %d", response.StatusCode)
		}
		return fmt.Errorf("failed with status code %d: %s", response.StatusCode, errJson.Error)
	}

	if err := json.Unmarshal(responseBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
