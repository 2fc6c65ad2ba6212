package service

import (
	"context"
	"stockdash/internal/domain"
	"stockdash/internal/logger"
	"stockdash/internal/repository"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentSymbols = 8

type QuoteService interface {
	GetQuotes(ctx context.Context, symbols []string) ([]domain.Quote, error)
	GetStock(ctx context.Context, symbol string) (*domain.StockDetail, error)
	GetLatestPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error)
}

type quoteServiceHandler struct {
	Provider repository.QuoteProviderRepository
	Timeout  time.Duration
}

func NewQuoteService(provider repository.QuoteProviderRepository, timeout time.Duration) QuoteService {
	return quoteServiceHandler{
		Provider: provider,
		Timeout:  timeout,
	}
}

// ParseSymbols splits a comma separated list, normalizing each entry and
// dropping blanks.
func ParseSymbols(raw string) []string {
	out := []string{}
	for _, s := range strings.Split(raw, ",") {
		if s = domain.NormalizeSymbol(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (h quoteServiceHandler) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.Timeout)
}

func (h quoteServiceHandler) upstreamError(symbol string, err error) error {
	return &domain.UpstreamError{
		Provider: h.Provider.Name(),
		Symbol:   symbol,
		Err:      err,
	}
}

// GetQuotes returns one quote per requested symbol, in request order. A
// failed price lookup fails the whole batch; missing profile or metrics
// only degrade the affected fields.
func (h quoteServiceHandler) GetQuotes(ctx context.Context, symbols []string) ([]domain.Quote, error) {
	normalized := []string{}
	for _, s := range symbols {
		if s = domain.NormalizeSymbol(s); s != "" {
			normalized = append(normalized, s)
		}
	}
	if len(normalized) == 0 {
		return nil, domain.NewValidationError("at least one symbol is required")
	}

	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	out := make([]domain.Quote, len(normalized))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSymbols)
	for i, symbol := range normalized {
		g.Go(func() error {
			quote, err := h.getQuote(gctx, symbol)
			if err != nil {
				return err
			}
			out[i] = *quote
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (h quoteServiceHandler) getQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	log := logger.FromContext(ctx)

	if snapshots, ok := h.Provider.(repository.SnapshotRepository); ok {
		snapshot, err := snapshots.GetSnapshot(ctx, symbol)
		if err != nil {
			return nil, h.upstreamError(symbol, err)
		}
		return newQuote(symbol, snapshot.Quote, snapshot.Profile, snapshot.Metrics), nil
	}

	var (
		raw     *domain.RawQuote
		profile *domain.CompanyProfile
		metrics *domain.TradingMetrics
	)

	g := errgroup.Group{}
	g.Go(func() error {
		var err error
		raw, err = h.Provider.GetQuote(ctx, symbol)
		if err != nil {
			return h.upstreamError(symbol, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		profile, err = h.Provider.GetProfile(ctx, symbol)
		if err != nil {
			log.Warnw("profile unavailable", "symbol", symbol, "provider", h.Provider.Name(), "error", err)
			profile = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		metrics, err = h.Provider.GetMetrics(ctx, symbol)
		if err != nil {
			log.Warnw("metrics unavailable", "symbol", symbol, "provider", h.Provider.Name(), "error", err)
			metrics = nil
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return newQuote(symbol, raw, profile, metrics), nil
}

func newQuote(symbol string, raw *domain.RawQuote, profile *domain.CompanyProfile, metrics *domain.TradingMetrics) *domain.Quote {
	out := &domain.Quote{
		Symbol:    symbol,
		Name:      "N/A",
		Volume:    domain.MetricNotAvailable(),
		MarketCap: domain.MetricNotAvailable(),
		PE:        domain.MetricNotAvailable(),
	}
	if profile != nil && profile.Name != "" {
		out.Name = profile.Name
	}
	if metrics != nil {
		out.Volume = domain.MetricFromPointer(metrics.AverageVolume10Day)
		out.MarketCap = domain.MetricFromPointer(metrics.MarketCap)
		out.PE = domain.MetricFromPointer(metrics.PeRatio)
	}

	// an all zero quote is how finnhub answers for symbols it does not know
	if raw == nil || (raw.Current == 0 && raw.Timestamp == 0) {
		return out
	}
	current, change, percent, high, low := raw.Current, raw.Change, raw.PercentChange, raw.High, raw.Low
	out.Current = &current
	out.Change = &change
	out.Percent = &percent
	out.High = &high
	out.Low = &low

	return out
}

func (h quoteServiceHandler) GetStock(ctx context.Context, symbol string) (*domain.StockDetail, error) {
	symbol = domain.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, domain.NewValidationError("symbol is required")
	}

	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	if snapshots, ok := h.Provider.(repository.SnapshotRepository); ok {
		snapshot, err := snapshots.GetSnapshot(ctx, symbol)
		if err != nil {
			return nil, h.upstreamError(symbol, err)
		}
		return &domain.StockDetail{Quote: *snapshot.Quote, Profile: *snapshot.Profile}, nil
	}

	out := &domain.StockDetail{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		quote, err := h.Provider.GetQuote(gctx, symbol)
		if err != nil {
			return h.upstreamError(symbol, err)
		}
		out.Quote = *quote
		return nil
	})
	g.Go(func() error {
		profile, err := h.Provider.GetProfile(gctx, symbol)
		if err != nil {
			return h.upstreamError(symbol, err)
		}
		out.Profile = *profile
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// GetLatestPrices is best effort: symbols whose price cannot be fetched are
// left out of the result.
func (h quoteServiceHandler) GetLatestPrices(ctx context.Context, symbols []string) (map[string]decimal.Decimal, error) {
	log := logger.FromContext(ctx)
	if len(symbols) == 0 {
		return map[string]decimal.Decimal{}, nil
	}

	ctx, cancel := h.withTimeout(ctx)
	defer cancel()

	prices := make([]*decimal.Decimal, len(symbols))
	g := errgroup.Group{}
	g.SetLimit(maxConcurrentSymbols)
	for i, symbol := range symbols {
		g.Go(func() error {
			quote, err := h.Provider.GetQuote(ctx, symbol)
			if err != nil {
				log.Warnw("using stored price", "symbol", symbol, "provider", h.Provider.Name(), "error", err)
				return nil
			}
			if quote.Current > 0 {
				p := decimal.NewFromFloat(quote.Current)
				prices[i] = &p
			}
			return nil
		})
	}
	_ = g.Wait()

	out := map[string]decimal.Decimal{}
	for i, symbol := range symbols {
		if prices[i] != nil {
			out[symbol] = *prices[i]
		}
	}
	return out, nil
}
