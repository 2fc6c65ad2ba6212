package repository

import (
	"context"
	"fmt"
	"net/http"
	"stockdash/internal/config"
	"stockdash/internal/domain"
	"stockdash/pkg/finnhub"
)

// QuoteProviderRepository is one upstream market data source. Profile and
// metrics are best effort; callers decide how to degrade when they fail.
type QuoteProviderRepository interface {
	Name() string
	GetQuote(ctx context.Context, symbol string) (*domain.RawQuote, error)
	GetProfile(ctx context.Context, symbol string) (*domain.CompanyProfile, error)
	GetMetrics(ctx context.Context, symbol string) (*domain.TradingMetrics, error)
}

// StockSnapshot is a quote together with the profile and metrics of the
// same symbol.
type StockSnapshot struct {
	Quote   *domain.RawQuote
	Profile *domain.CompanyProfile
	Metrics *domain.TradingMetrics
}

// SnapshotRepository is implemented by providers whose upstream returns
// quote, profile and metrics in a single response.
type SnapshotRepository interface {
	GetSnapshot(ctx context.Context, symbol string) (*StockSnapshot, error)
}

func NewQuoteProviderRepository(cfg *config.Config) (QuoteProviderRepository, error) {
	switch cfg.QuoteProvider {
	case config.ProviderFinnhub:
		client := finnhub.NewClient(cfg.FinnhubApiKey, &http.Client{Timeout: cfg.UpstreamTimeout})
		client.BaseURL = cfg.FinnhubBaseURL
		return NewFinnhubRepository(client), nil
	case config.ProviderYahoo:
		return NewYahooRepository(), nil
	case config.ProviderAlpaca:
		return NewAlpacaRepository(cfg.Alpaca, cfg.UpstreamTimeout), nil
	}
	return nil, fmt.Errorf("unknown quote provider %q", cfg.QuoteProvider)
}

// callWithContext runs a client call that takes no context and returns
// ctx.Err() as soon as ctx is done. The call itself is left to finish under
// its own http client timeout.
func callWithContext[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		v, err := fn()
		ch <- result{v, err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-ch:
		return r.v, r.err
	}
}

type finnhubRepositoryHandler struct {
	Client finnhub.Client
}

func NewFinnhubRepository(client finnhub.Client) QuoteProviderRepository {
	return finnhubRepositoryHandler{Client: client}
}

func (h finnhubRepositoryHandler) Name() string {
	return config.ProviderFinnhub
}

func (h finnhubRepositoryHandler) GetQuote(ctx context.Context, symbol string) (*domain.RawQuote, error) {
	q, err := h.Client.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return &domain.RawQuote{
		Current:       q.Current,
		Change:        q.Change,
		PercentChange: q.PercentChange,
		High:          q.High,
		Low:           q.Low,
		Open:          q.Open,
		PreviousClose: q.PreviousClose,
		Timestamp:     q.Timestamp,
	}, nil
}

func (h finnhubRepositoryHandler) GetProfile(ctx context.Context, symbol string) (*domain.CompanyProfile, error) {
	p, err := h.Client.GetProfile(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return &domain.CompanyProfile{
		Ticker:               p.Ticker,
		Name:                 p.Name,
		Country:              p.Country,
		Currency:             p.Currency,
		Exchange:             p.Exchange,
		Industry:             p.FinnhubIndustry,
		Ipo:                  p.Ipo,
		Logo:                 p.Logo,
		MarketCapitalization: p.MarketCapitalization,
		ShareOutstanding:     p.ShareOutstanding,
		WebUrl:               p.WebUrl,
	}, nil
}

func (h finnhubRepositoryHandler) GetMetrics(ctx context.Context, symbol string) (*domain.TradingMetrics, error) {
	m, err := h.Client.GetMetrics(ctx, symbol)
	if err != nil {
		return nil, err
	}

	out := &domain.TradingMetrics{}
	// a zero volume means finnhub has no data for the symbol
	if v, ok := m.Float("10DayAverageTradingVolume"); ok && v != 0 {
		out.AverageVolume10Day = &v
	}
	if v, ok := m.Float("marketCapitalization"); ok {
		out.MarketCap = &v
	}
	if v, ok := m.Float("peNormalizedAnnual"); ok {
		out.PeRatio = &v
	}
	return out, nil
}
