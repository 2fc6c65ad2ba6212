package repository

import (
	"context"
	"fmt"
	"net/http"
	"stockdash/internal/config"
	"stockdash/internal/domain"
	"stockdash/internal/logger"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

// zero would mean the library default of several retries with a 1s sleep
const alpacaNoRetries = -1

type alpacaRepositoryHandler struct {
	Client   *alpaca.Client
	MdClient *marketdata.Client
}

func NewAlpacaRepository(secrets config.AlpacaSecrets, timeout time.Duration) QuoteProviderRepository {
	httpClient := &http.Client{Timeout: timeout}

	client := alpaca.NewClient(alpaca.ClientOpts{
		APIKey:     secrets.ApiKey,
		APISecret:  secrets.ApiSecret,
		BaseURL:    secrets.Endpoint,
		RetryLimit: alpacaNoRetries,
		HTTPClient: httpClient,
	})

	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		BaseURL:    secrets.DataEndpoint,
		APIKey:     secrets.ApiKey,
		APISecret:  secrets.ApiSecret,
		RetryLimit: alpacaNoRetries,
		HTTPClient: httpClient,
	})

	return &alpacaRepositoryHandler{
		Client:   client,
		MdClient: mdClient,
	}
}

func (h alpacaRepositoryHandler) Name() string {
	return config.ProviderAlpaca
}

func (h alpacaRepositoryHandler) GetQuote(ctx context.Context, symbol string) (*domain.RawQuote, error) {
	snapshot, err := callWithContext(ctx, func() (*marketdata.Snapshot, error) {
		return h.MdClient.GetSnapshot(symbol, marketdata.GetSnapshotRequest{})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot for %s: %w", symbol, err)
	}
	if snapshot == nil || snapshot.LatestTrade == nil {
		return nil, fmt.Errorf("no trades for %s", symbol)
	}

	out := &domain.RawQuote{
		Current:   snapshot.LatestTrade.Price,
		Timestamp: snapshot.LatestTrade.Timestamp.Unix(),
	}
	if bar := snapshot.DailyBar; bar != nil {
		out.High = bar.High
		out.Low = bar.Low
		out.Open = bar.Open
	}
	if bar := snapshot.PrevDailyBar; bar != nil && bar.Close != 0 {
		out.PreviousClose = bar.Close
		out.Change = out.Current - bar.Close
		out.PercentChange = 100 * out.Change / bar.Close
	}

	return out, nil
}

func (h alpacaRepositoryHandler) GetProfile(ctx context.Context, symbol string) (*domain.CompanyProfile, error) {
	asset, err := callWithContext(ctx, func() (*alpaca.Asset, error) {
		return h.Client.GetAsset(symbol)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get asset %s: %w", symbol, err)
	}
	return &domain.CompanyProfile{
		Ticker:   asset.Symbol,
		Name:     asset.Name,
		Exchange: asset.Exchange,
	}, nil
}

// alpaca has no fundamentals, so metrics are always empty
func (h alpacaRepositoryHandler) GetMetrics(ctx context.Context, symbol string) (*domain.TradingMetrics, error) {
	logger.FromContext(ctx).Debugf("alpaca has no trading metrics for %s", symbol)
	return &domain.TradingMetrics{}, nil
}
