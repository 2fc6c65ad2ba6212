package api

import (
	"stockdash/internal/domain"

	"github.com/gin-gonic/gin"
)

type holdingValuationResponse struct {
	Symbol                string  `json:"symbol"`
	CompanyName           string  `json:"companyName"`
	Quantity              int64   `json:"quantity"`
	Price                 float64 `json:"price"`
	PriceIsLive           bool    `json:"priceIsLive"`
	MarketValue           float64 `json:"marketValue"`
	Invested              float64 `json:"invested"`
	AverageCost           float64 `json:"averageCost"`
	UnrealizedGain        float64 `json:"unrealizedGain"`
	UnrealizedGainPercent float64 `json:"unrealizedGainPercent"`
	Weight                float64 `json:"weight"`
}

type portfolioValuationResponse struct {
	Holdings                   []holdingValuationResponse `json:"holdings"`
	TotalMarketValue           float64                    `json:"totalMarketValue"`
	TotalInvested              float64                    `json:"totalInvested"`
	TotalUnrealizedGain        float64                    `json:"totalUnrealizedGain"`
	TotalUnrealizedGainPercent float64                    `json:"totalUnrealizedGainPercent"`
	LargestWeight              float64                    `json:"largestWeight"`
	WeightStdDev               float64                    `json:"weightStdDev"`
}

func valuationResponse(v *domain.PortfolioValuation) portfolioValuationResponse {
	out := portfolioValuationResponse{
		Holdings:                   []holdingValuationResponse{},
		TotalMarketValue:           v.TotalMarketValue.Round(2).InexactFloat64(),
		TotalInvested:              v.TotalInvested.Round(2).InexactFloat64(),
		TotalUnrealizedGain:        v.TotalUnrealizedGain.Round(2).InexactFloat64(),
		TotalUnrealizedGainPercent: v.TotalUnrealizedGainPercent.Round(2).InexactFloat64(),
		LargestWeight:              v.LargestWeight,
		WeightStdDev:               v.WeightStdDev,
	}
	for _, h := range v.Holdings {
		out.Holdings = append(out.Holdings, holdingValuationResponse{
			Symbol:                h.Symbol,
			CompanyName:           h.CompanyName,
			Quantity:              h.Quantity,
			Price:                 h.Price.InexactFloat64(),
			PriceIsLive:           h.PriceIsLive,
			MarketValue:           h.MarketValue.Round(2).InexactFloat64(),
			Invested:              h.Invested.Round(2).InexactFloat64(),
			AverageCost:           h.AverageCost.Round(4).InexactFloat64(),
			UnrealizedGain:        h.UnrealizedGain.Round(2).InexactFloat64(),
			UnrealizedGainPercent: h.UnrealizedGainPercent.Round(2).InexactFloat64(),
			Weight:                h.Weight.Round(4).InexactFloat64(),
		})
	}
	return out
}

func (m ApiHandler) portfolioValuation(c *gin.Context) {
	valuation, err := m.PortfolioService.Valuation(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, valuationResponse(valuation))
}
