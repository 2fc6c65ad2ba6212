package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"stockdash/internal/domain"
	"stockdash/internal/service"
	mock_service "stockdash/internal/service/mocks"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testApi struct {
	handler   ApiHandler
	quotes    *mock_service.MockQuoteService
	portfolio *mock_service.MockPortfolioService
}

func newTestApi(t *testing.T) testApi {
	ctrl := gomock.NewController(t)
	quotes := mock_service.NewMockQuoteService(ctrl)
	portfolio := mock_service.NewMockPortfolioService(ctrl)
	return testApi{
		handler: ApiHandler{
			QuoteService:     quotes,
			PortfolioService: portfolio,
		},
		quotes:    quotes,
		portfolio: portfolio,
	}
}

func (a testApi) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.handler.InitializeRouterEngine().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

var appleHoldings = domain.Holdings{{
	Symbol:      "AAPL",
	CompanyName: "Apple Inc",
	Price:       decimal.NewFromInt(170),
	Quantity:    15,
	Invested:    decimal.NewFromInt(2350),
}}

func TestWelcome(t *testing.T) {
	w := newTestApi(t).do(http.MethodGet, "/", "")
	require.Equal(t, 200, w.Code)
	require.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestGetQuotes(t *testing.T) {
	t.Run("happy path", func(t *testing.T) {
		a := newTestApi(t)
		current := 170.0
		a.quotes.EXPECT().GetQuotes(gomock.Any(), []string{"AAPL", "IBM"}).Return([]domain.Quote{
			{Symbol: "AAPL", Name: "Apple Inc", Current: &current, PE: domain.NewMetric(28.4)},
			{Symbol: "IBM", Name: "N/A"},
		}, nil)

		w := a.do(http.MethodGet, "/api/quotes?symbols=aapl,IBM", "")
		require.Equal(t, 200, w.Code)

		out := []map[string]any{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Len(t, out, 2)
		require.Equal(t, "AAPL", out[0]["symbol"])
		require.Equal(t, 170.0, out[0]["current"])
		require.Equal(t, 28.4, out[0]["pe"])
		require.Equal(t, "N/A", out[0]["volume"])
		require.Nil(t, out[1]["current"])
	})

	t.Run("missing symbols", func(t *testing.T) {
		w := newTestApi(t).do(http.MethodGet, "/api/quotes?symbols=,", "")
		require.Equal(t, 400, w.Code)
	})

	t.Run("upstream failure", func(t *testing.T) {
		a := newTestApi(t)
		a.quotes.EXPECT().GetQuotes(gomock.Any(), gomock.Any()).Return(nil, &domain.UpstreamError{
			Provider: "finnhub",
			Symbol:   "AAPL",
			Err:      errors.New("timeout"),
		})

		w := a.do(http.MethodGet, "/api/quotes?symbols=AAPL", "")
		require.Equal(t, 502, w.Code)
		require.Contains(t, decodeBody(t, w)["error"], "timeout")
	})
}

func TestGetStock(t *testing.T) {
	a := newTestApi(t)
	a.quotes.EXPECT().GetStock(gomock.Any(), "aapl").Return(&domain.StockDetail{
		Quote:   domain.RawQuote{Current: 170, PreviousClose: 168},
		Profile: domain.CompanyProfile{Name: "Apple Inc", Ticker: "AAPL"},
	}, nil)

	w := a.do(http.MethodGet, "/api/stock/aapl", "")
	require.Equal(t, 200, w.Code)

	out := decodeBody(t, w)
	require.Equal(t, 170.0, out["quote"].(map[string]any)["c"])
	require.Equal(t, 168.0, out["quote"].(map[string]any)["pc"])
	require.Equal(t, "Apple Inc", out["profile"].(map[string]any)["name"])
}

func TestAddHolding(t *testing.T) {
	t.Run("numeric strings accepted", func(t *testing.T) {
		a := newTestApi(t)
		a.portfolio.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, req service.AddHoldingRequest) (domain.Holdings, error) {
				require.Equal(t, "aapl", req.Symbol)
				require.Equal(t, int64(5), req.Quantity)
				require.True(t, req.Price.Equal(decimal.NewFromInt(170)))
				return appleHoldings, nil
			},
		)

		w := a.do(http.MethodPost, "/api/portfolio", `{"symbol":"aapl","companyName":"Apple Inc","price":"170","quantity":"5"}`)
		require.Equal(t, 201, w.Code)

		out := []map[string]any{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Equal(t, 2350.0, out[0]["invested"])
		require.Equal(t, 15.0, out[0]["quantity"])
	})

	t.Run("non numeric price means zero", func(t *testing.T) {
		a := newTestApi(t)
		a.portfolio.EXPECT().Add(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, req service.AddHoldingRequest) (domain.Holdings, error) {
				require.True(t, req.Price.IsZero())
				return appleHoldings, nil
			},
		)

		w := a.do(http.MethodPost, "/api/portfolio", `{"symbol":"AAPL","price":"abc","quantity":1}`)
		require.Equal(t, 201, w.Code)
	})

	t.Run("fractional quantity rejected", func(t *testing.T) {
		w := newTestApi(t).do(http.MethodPost, "/api/portfolio", `{"symbol":"AAPL","price":1,"quantity":1.5}`)
		require.Equal(t, 400, w.Code)
	})

	t.Run("missing symbol", func(t *testing.T) {
		w := newTestApi(t).do(http.MethodPost, "/api/portfolio", `{"price":1,"quantity":1}`)
		require.Equal(t, 400, w.Code)
		require.Equal(t, "symbol is required", decodeBody(t, w)["error"])
	})

	t.Run("malformed body", func(t *testing.T) {
		w := newTestApi(t).do(http.MethodPost, "/api/portfolio", `{`)
		require.Equal(t, 400, w.Code)
	})

	t.Run("save failure", func(t *testing.T) {
		a := newTestApi(t)
		a.portfolio.EXPECT().Add(gomock.Any(), gomock.Any()).Return(nil, errors.New("disk full"))

		w := a.do(http.MethodPost, "/api/portfolio", `{"symbol":"AAPL","quantity":1}`)
		require.Equal(t, 500, w.Code)
	})
}

func TestAdjustHolding(t *testing.T) {
	t.Run("signed quantity and optional fields", func(t *testing.T) {
		a := newTestApi(t)
		a.portfolio.EXPECT().Adjust(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, req service.AdjustHoldingRequest) (domain.Holdings, error) {
				require.Equal(t, "AAPL", req.Symbol)
				require.Equal(t, int64(-3), req.Quantity)
				require.Nil(t, req.Price)
				require.NotNil(t, req.CompanyName)
				require.Equal(t, "Apple", *req.CompanyName)
				return appleHoldings, nil
			},
		)

		w := a.do(http.MethodPatch, "/api/portfolio/AAPL", `{"quantity":-3,"companyName":"Apple"}`)
		require.Equal(t, 200, w.Code)
	})

	t.Run("absent symbol", func(t *testing.T) {
		a := newTestApi(t)
		a.portfolio.EXPECT().Adjust(gomock.Any(), gomock.Any()).Return(nil, &domain.NotFoundError{Symbol: "MSFT"})

		w := a.do(http.MethodPatch, "/api/portfolio/MSFT", `{"quantity":-3}`)
		require.Equal(t, 404, w.Code)
		require.Equal(t, "MSFT is not in the portfolio", decodeBody(t, w)["error"])
	})

	t.Run("missing quantity", func(t *testing.T) {
		w := newTestApi(t).do(http.MethodPatch, "/api/portfolio/AAPL", `{"price":3}`)
		require.Equal(t, 400, w.Code)
	})
}

func TestSellHolding(t *testing.T) {
	t.Run("insufficient quantity", func(t *testing.T) {
		a := newTestApi(t)
		a.portfolio.EXPECT().Sell(gomock.Any(), service.SellHoldingRequest{Symbol: "AAPL", Quantity: 20}).Return(nil, &domain.InsufficientQuantityError{
			Symbol:    "AAPL",
			Held:      15,
			Requested: 20,
		})

		w := a.do(http.MethodPost, "/api/portfolio/sell", `{"symbol":"AAPL","quantity":20}`)
		require.Equal(t, 400, w.Code)

		out := decodeBody(t, w)
		require.Equal(t, 15.0, out["held"])
		require.Equal(t, 20.0, out["requested"])
		require.Contains(t, out["error"], "only 15 held")
	})

	t.Run("happy path", func(t *testing.T) {
		a := newTestApi(t)
		a.portfolio.EXPECT().Sell(gomock.Any(), service.SellHoldingRequest{Symbol: "AAPL", Quantity: 5}).Return(domain.Holdings{}, nil)

		w := a.do(http.MethodPost, "/api/portfolio/sell", `{"symbol":"AAPL","quantity":5}`)
		require.Equal(t, 200, w.Code)
		require.JSONEq(t, "[]", w.Body.String())
	})
}

func TestDeleteHolding(t *testing.T) {
	a := newTestApi(t)
	a.portfolio.EXPECT().Remove(gomock.Any(), "AAPL").Return(domain.Holdings{}, nil)

	w := a.do(http.MethodDelete, "/api/portfolio/AAPL", "")
	require.Equal(t, 200, w.Code)
	require.JSONEq(t, "[]", w.Body.String())
}

func TestPortfolioValuation(t *testing.T) {
	a := newTestApi(t)
	a.portfolio.EXPECT().Valuation(gomock.Any()).Return(&domain.PortfolioValuation{
		Holdings: []domain.HoldingValuation{{
			Symbol:      "AAPL",
			Quantity:    10,
			Price:       decimal.NewFromInt(200),
			PriceIsLive: true,
			MarketValue: decimal.NewFromInt(2000),
			Invested:    decimal.NewFromInt(1500),
			Weight:      decimal.NewFromInt(1),
		}},
		TotalMarketValue:    decimal.NewFromInt(2000),
		TotalInvested:       decimal.NewFromInt(1500),
		TotalUnrealizedGain: decimal.NewFromInt(500),
		LargestWeight:       1,
	}, nil)

	w := a.do(http.MethodGet, "/api/portfolio/valuation", "")
	require.Equal(t, 200, w.Code)

	out := decodeBody(t, w)
	require.Equal(t, 2000.0, out["totalMarketValue"])
	require.Equal(t, 500.0, out["totalUnrealizedGain"])
	holding := out["holdings"].([]any)[0].(map[string]any)
	require.Equal(t, true, holding["priceIsLive"])
}

func TestExportPortfolio(t *testing.T) {
	a := newTestApi(t)
	a.portfolio.EXPECT().List(gomock.Any()).Return(appleHoldings, nil)

	w := a.do(http.MethodGet, "/api/portfolio/export", "")
	require.Equal(t, 200, w.Code)
	require.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	require.Equal(t,
		"symbol,company_name,quantity,price,invested,average_cost\nAAPL,Apple Inc,15,170.00,2350.00,156.6667\n",
		w.Body.String(),
	)
}
