package api

import (
	"encoding/json"
	"stockdash/internal/domain"
	"stockdash/internal/service"

	"github.com/gin-gonic/gin"
)

type addHoldingRequest struct {
	Symbol      json.RawMessage `json:"symbol"`
	CompanyName json.RawMessage `json:"companyName"`
	Price       json.RawMessage `json:"price"`
	Quantity    json.RawMessage `json:"quantity"`
}

func (m ApiHandler) addHolding(c *gin.Context) {
	var requestBody addHoldingRequest
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

	holdings, err := m.PortfolioService.Add(c.Request.Context(), service.AddHoldingRequest{
		Symbol:      symbol,
		CompanyName: parseString(requestBody.CompanyName),
		Price:       parsePrice(requestBody.Price),
		Quantity:    quantity,
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(201, holdingsResponse(holdings))
}
