package repository

import (
	"context"
	"fmt"
	"stockdash/internal/config"
	"stockdash/internal/domain"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/equity"
)

// yahoo reports raw units; finnhub reports volume and market cap in millions
const yahooUnitDivisor = 1_000_000

type yahooRepositoryHandler struct {
	getEquity func(symbol string) (*finance.Equity, error)
}

func NewYahooRepository() QuoteProviderRepository {
	return yahooRepositoryHandler{getEquity: equity.Get}
}

func (h yahooRepositoryHandler) Name() string {
	return config.ProviderYahoo
}

func (h yahooRepositoryHandler) fetch(ctx context.Context, symbol string) (*finance.Equity, error) {
	e, err := callWithContext(ctx, func() (*finance.Equity, error) {
		return h.getEquity(symbol)
	})
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, fmt.Errorf("no yahoo data for %s", symbol)
	}
	return e, nil
}

// GetSnapshot serves quote, profile and metrics from one equity lookup.
func (h yahooRepositoryHandler) GetSnapshot(ctx context.Context, symbol string) (*StockSnapshot, error) {
	e, err := h.fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return &StockSnapshot{
		Quote:   yahooQuote(e),
		Profile: yahooProfile(e),
		Metrics: yahooMetrics(e),
	}, nil
}

func (h yahooRepositoryHandler) GetQuote(ctx context.Context, symbol string) (*domain.RawQuote, error) {
	e, err := h.fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return yahooQuote(e), nil
}

func (h yahooRepositoryHandler) GetProfile(ctx context.Context, symbol string) (*domain.CompanyProfile, error) {
	e, err := h.fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return yahooProfile(e), nil
}

func (h yahooRepositoryHandler) GetMetrics(ctx context.Context, symbol string) (*domain.TradingMetrics, error) {
	e, err := h.fetch(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return yahooMetrics(e), nil
}

func yahooQuote(e *finance.Equity) *domain.RawQuote {
	return &domain.RawQuote{
		Current:       e.RegularMarketPrice,
		Change:        e.RegularMarketChange,
		PercentChange: e.RegularMarketChangePercent,
		High:          e.RegularMarketDayHigh,
		Low:           e.RegularMarketDayLow,
		Open:          e.RegularMarketOpen,
		PreviousClose: e.RegularMarketPreviousClose,
		Timestamp:     int64(e.RegularMarketTime),
	}
}

func yahooProfile(e *finance.Equity) *domain.CompanyProfile {
	name := e.LongName
	if name == "" {
		name = e.ShortName
	}
	return &domain.CompanyProfile{
		Ticker:               e.Symbol,
		Name:                 name,
		Currency:             e.CurrencyID,
		Exchange:             e.FullExchangeName,
		MarketCapitalization: float64(e.MarketCap) / yahooUnitDivisor,
		ShareOutstanding:     float64(e.SharesOutstanding) / yahooUnitDivisor,
	}
}

func yahooMetrics(e *finance.Equity) *domain.TradingMetrics {
	out := &domain.TradingMetrics{}
	if e.AverageDailyVolume10Day != 0 {
		v := float64(e.AverageDailyVolume10Day) / yahooUnitDivisor
		out.AverageVolume10Day = &v
	}
	if e.MarketCap != 0 {
		v := float64(e.MarketCap) / yahooUnitDivisor
		out.MarketCap = &v
	}
	if e.TrailingPE != 0 {
		v := e.TrailingPE
		out.PeRatio = &v
	}
	return out
}
