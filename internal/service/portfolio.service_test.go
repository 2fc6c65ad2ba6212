package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"stockdash/internal/domain"
	"stockdash/internal/repository"
	mock_repository "stockdash/internal/repository/mocks"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var decimalComparer = cmp.Comparer(func(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThan(decimal.NewFromFloat(0.01))
})

func newFilePortfolioService(t *testing.T, quoteService QuoteService) (PortfolioService, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio.json")
	return NewPortfolioService(repository.NewHoldingsRepository(path), quoteService), path
}

func Test_portfolioServiceHandler_lifecycle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFilePortfolioService(t, nil)

	holdings, err := svc.Add(ctx, AddHoldingRequest{Symbol: "aapl", CompanyName: "Apple Inc", Price: decimal.NewFromInt(150), Quantity: 10})
	require.NoError(t, err)
	require.Len(t, holdings, 1)

	holdings, err = svc.Add(ctx, AddHoldingRequest{Symbol: "AAPL", Price: decimal.NewFromInt(170), Quantity: 5})
	require.NoError(t, err)
	require.Equal(t, "", cmp.Diff(domain.Holdings{{
		Symbol:      "AAPL",
		CompanyName: "Apple Inc",
		Price:       decimal.NewFromInt(170),
		Quantity:    15,
		Invested:    decimal.NewFromInt(2350),
	}}, holdings, decimalComparer))

	holdings, err = svc.Sell(ctx, SellHoldingRequest{Symbol: "AAPL", Quantity: 20})
	var insufficient *domain.InsufficientQuantityError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, int64(15), insufficient.Held)
	require.Nil(t, holdings)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(15), listed[0].Quantity)

	holdings, err = svc.Sell(ctx, SellHoldingRequest{Symbol: "AAPL", Quantity: 5})
	require.NoError(t, err)
	require.True(t, holdings[0].Invested.Sub(decimal.RequireFromString("1566.67")).Abs().LessThan(decimal.NewFromFloat(0.01)))

	holdings, err = svc.Adjust(ctx, AdjustHoldingRequest{Symbol: "AAPL", Quantity: -100})
	require.NoError(t, err)
	require.Empty(t, holdings)

	_, err = svc.Adjust(ctx, AdjustHoldingRequest{Symbol: "AAPL", Quantity: -1})
	require.True(t, domain.IsNotFoundError(err))

	_, err = svc.Add(ctx, AddHoldingRequest{Symbol: "IBM", Price: decimal.NewFromInt(140), Quantity: 1})
	require.NoError(t, err)
	holdings, err = svc.Remove(ctx, "ibm")
	require.NoError(t, err)
	require.Empty(t, holdings)

	_, err = svc.Remove(ctx, " ")
	require.True(t, domain.IsValidationError(err))
}

func Test_portfolioServiceHandler_concurrentMutations(t *testing.T) {
	ctx := context.Background()
	svc, _ := newFilePortfolioService(t, nil)

	wg := sync.WaitGroup{}
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Add(ctx, AddHoldingRequest{Symbol: "AAPL", Price: decimal.NewFromInt(10), Quantity: 2})
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	holdings, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, holdings, 1)
	require.Equal(t, int64(50), holdings[0].Quantity)
	require.True(t, holdings[0].Invested.Equal(decimal.NewFromInt(500)))
}

func Test_portfolioServiceHandler_corruptState(t *testing.T) {
	ctx := context.Background()
	svc, path := newFilePortfolioService(t, nil)
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))

	holdings, err := svc.List(ctx)
	require.NoError(t, err)
	require.Empty(t, holdings)

	holdings, err = svc.Add(ctx, AddHoldingRequest{Symbol: "IBM", Quantity: 1})
	require.NoError(t, err)
	require.Len(t, holdings, 1)

	matches, err := filepath.Glob(path + ".corrupt-*")
	require.NoError(t, err)
	require.NotEmpty(t, matches)
}

func Test_portfolioServiceHandler_saveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	holdingsRepository := mock_repository.NewMockHoldingsRepository(ctrl)
	holdingsRepository.EXPECT().List(gomock.Any()).Return(domain.Holdings{}, nil)
	holdingsRepository.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	svc := NewPortfolioService(holdingsRepository, nil)
	_, err := svc.Add(context.Background(), AddHoldingRequest{Symbol: "IBM", Quantity: 1})
	require.ErrorContains(t, err, "disk full")
	require.False(t, domain.IsValidationError(err))
}

func Test_portfolioServiceHandler_validationDoesNotSave(t *testing.T) {
	ctrl := gomock.NewController(t)
	holdingsRepository := mock_repository.NewMockHoldingsRepository(ctrl)
	holdingsRepository.EXPECT().List(gomock.Any()).Return(domain.Holdings{}, nil)

	svc := NewPortfolioService(holdingsRepository, nil)
	_, err := svc.Add(context.Background(), AddHoldingRequest{Symbol: "IBM", Quantity: 0})
	require.True(t, domain.IsValidationError(err))
}

func Test_portfolioServiceHandler_Valuation(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	provider := mock_repository.NewMockQuoteProviderRepository(ctrl)
	provider.EXPECT().Name().Return("finnhub").AnyTimes()
	provider.EXPECT().GetQuote(gomock.Any(), "AAPL").Return(&domain.RawQuote{Current: 200}, nil)
	provider.EXPECT().GetQuote(gomock.Any(), "IBM").Return(nil, errors.New("boom"))

	svc, _ := newFilePortfolioService(t, NewQuoteService(provider, time.Second))
	_, err := svc.Add(ctx, AddHoldingRequest{Symbol: "AAPL", Price: decimal.NewFromInt(150), Quantity: 10})
	require.NoError(t, err)
	_, err = svc.Add(ctx, AddHoldingRequest{Symbol: "IBM", Price: decimal.NewFromInt(100), Quantity: 10})
	require.NoError(t, err)

	valuation, err := svc.Valuation(ctx)
	require.NoError(t, err)
	require.Len(t, valuation.Holdings, 2)
	require.True(t, valuation.Holdings[0].PriceIsLive)
	require.False(t, valuation.Holdings[1].PriceIsLive)
	require.True(t, valuation.TotalMarketValue.Equal(decimal.NewFromInt(3000)))
	require.True(t, valuation.TotalUnrealizedGain.Equal(decimal.NewFromInt(500)))
}
