package api

import (
	"encoding/json"
	"stockdash/internal/domain"
	"stockdash/internal/service"

	"github.com/gin-gonic/gin"
)

type sellHoldingRequest struct {
	Symbol   json.RawMessage `json:"symbol"`
	Quantity json.RawMessage `json:"quantity"`
}

func (m ApiHandler) sellHolding(c *gin.Context) {
	var requestBody sellHoldingRequest
	if err := bindBody(c, &requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	symbol := parseString(requestBody.Symbol)
	if domain.NormalizeSymbol(symbol) == "" {
		returnErrorJson(domain.NewValidationError("symbol is required"), c)
		return
	}
	quantity, err := parseQuantity(requestBody.Quantity)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	holdings, err := m.PortfolioService.Sell(c.Request.Context(), service.SellHoldingRequest{
		Symbol:   symbol,
		Quantity: quantity,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, holdingsResponse(holdings))
}
