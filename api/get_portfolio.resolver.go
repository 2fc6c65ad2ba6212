package api

import (
	"stockdash/internal/domain"

	"github.com/gin-gonic/gin"
)

type holdingResponse struct {
	Symbol      string  `json:"symbol"`
	CompanyName string  `json:"companyName"`
	Price       float64 `json:"price"`
	Quantity    int64   `json:"quantity"`
	Invested    float64 `json:"invested"`
	AverageCost float64 `json:"averageCost"`
}

func holdingsResponse(holdings domain.Holdings) []holdingResponse {
	out := []holdingResponse{}
	for _, h := range holdings {
		out = append(out, holdingResponse{
			Symbol:      h.Symbol,
			CompanyName: h.CompanyName,
			Price:       h.Price.InexactFloat64(),
			Quantity:    h.Quantity,
			Invested:    h.Invested.Round(2).InexactFloat64(),
			AverageCost: h.AverageCost().Round(4).InexactFloat64(),
		})
	}
	return out
}

func (m ApiHandler) getPortfolio(c *gin.Context) {
	holdings, err := m.PortfolioService.List(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, holdingsResponse(holdings))
}
