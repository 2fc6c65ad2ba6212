package service

import (
	"context"
	"fmt"
	"stockdash/internal/calculator"
	"stockdash/internal/domain"
	"stockdash/internal/logger"
	"stockdash/internal/repository"
	"sync"

	"github.com/shopspring/decimal"
)

type PortfolioService interface {
	List(ctx context.Context) (domain.Holdings, error)
	Add(ctx context.Context, req AddHoldingRequest) (domain.Holdings, error)
	Adjust(ctx context.Context, req AdjustHoldingRequest) (domain.Holdings, error)
	Sell(ctx context.Context, req SellHoldingRequest) (domain.Holdings, error)
	Remove(ctx context.Context, symbol string) (domain.Holdings, error)
	Valuation(ctx context.Context) (*domain.PortfolioValuation, error)
}

type AddHoldingRequest struct {
	Symbol      string
	CompanyName string
	// zero when the caller had no price
	Price    decimal.Decimal
	Quantity int64
}

type AdjustHoldingRequest struct {
	Symbol      string
	Quantity    int64
	Price       *decimal.Decimal
	CompanyName *string
}

type SellHoldingRequest struct {
	Symbol   string
	Quantity int64
}

type portfolioServiceHandler struct {
	HoldingsRepository repository.HoldingsRepository
	QuoteService       QuoteService

	// serializes every load, mutate, save cycle
	mu *sync.Mutex
}

func NewPortfolioService(holdingsRepository repository.HoldingsRepository, quoteService QuoteService) PortfolioService {
	return portfolioServiceHandler{
		HoldingsRepository: holdingsRepository,
		QuoteService:       quoteService,
		mu:                 &sync.Mutex{},
	}
}

// load treats unreadable state as an empty portfolio so the service stays
// up; the repository keeps a copy of a corrupt file before we get here.
func (h portfolioServiceHandler) load(ctx context.Context) domain.Holdings {
	holdings, err := h.HoldingsRepository.List(ctx)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to load portfolio, continuing with an empty one", "error", err)
		return domain.Holdings{}
	}
	return holdings
}

func (h portfolioServiceHandler) mutate(ctx context.Context, fn func(domain.Holdings) (domain.Holdings, error)) (domain.Holdings, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	updated, err := fn(h.load(ctx))
	if err != nil {
		return nil, err
	}
	if err := h.HoldingsRepository.Save(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to save portfolio: %w", err)
	}

	return updated, nil
}

func (h portfolioServiceHandler) List(ctx context.Context) (domain.Holdings, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.load(ctx), nil
}

func (h portfolioServiceHandler) Add(ctx context.Context, req AddHoldingRequest) (domain.Holdings, error) {
	return h.mutate(ctx, func(holdings domain.Holdings) (domain.Holdings, error) {
		return calculator.AddHolding(holdings, calculator.AddHoldingInput{
			Symbol:      req.Symbol,
			CompanyName: req.CompanyName,
			Price:       req.Price,
			Quantity:    req.Quantity,
		})
	})
}

func (h portfolioServiceHandler) Adjust(ctx context.Context, req AdjustHoldingRequest) (domain.Holdings, error) {
	return h.mutate(ctx, func(holdings domain.Holdings) (domain.Holdings, error) {
		return calculator.AdjustHoldingQuantity(holdings, calculator.AdjustHoldingInput{
			Symbol:      req.Symbol,
			Delta:       req.Quantity,
			Price:       req.Price,
			CompanyName: req.CompanyName,
		})
	})
}

func (h portfolioServiceHandler) Sell(ctx context.Context, req SellHoldingRequest) (domain.Holdings, error) {
	return h.mutate(ctx, func(holdings domain.Holdings) (domain.Holdings, error) {
		return calculator.SellHolding(holdings, req.Symbol, req.Quantity)
	})
}

func (h portfolioServiceHandler) Remove(ctx context.Context, symbol string) (domain.Holdings, error) {
	if domain.NormalizeSymbol(symbol) == "" {
		return nil, domain.NewValidationError("symbol is required")
	}
	return h.mutate(ctx, func(holdings domain.Holdings) (domain.Holdings, error) {
		return calculator.RemoveHolding(holdings, symbol), nil
	})
}

// Valuation reprices the portfolio with live quotes. The lock is only held
// while reading so slow quote lookups do not block mutations.
func (h portfolioServiceHandler) Valuation(ctx context.Context) (*domain.PortfolioValuation, error) {
	holdings, err := h.List(ctx)
	if err != nil {
		return nil, err
	}

	livePrices, err := h.QuoteService.GetLatestPrices(ctx, holdings.HeldSymbols())
	if err != nil {
		return nil, fmt.Errorf("failed to get latest prices: %w", err)
	}

	return calculator.ValuePortfolio(holdings, livePrices)
}
