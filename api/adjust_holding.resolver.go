package api

import (
	"encoding/json"
	"stockdash/internal/service"

	"github.com/gin-gonic/gin"
)

type adjustHoldingRequest struct {
	// signed change, not the new total
	Quantity    json.RawMessage `json:"quantity"`
	Price       json.RawMessage `json:"price"`
	CompanyName json.RawMessage `json:"companyName"`
}

func (m ApiHandler) adjustHolding(c *gin.Context) {
	var requestBody adjustHoldingRequest
	if err := bindBody(c, &requestBody); err != nil {
		returnErrorJson(err, c)
		return
	}

	quantity, err := parseQuantity(requestBody.Quantity)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	holdings, err := m.PortfolioService.Adjust(c.Request.Context(), service.AdjustHoldingRequest{
		Symbol:      c.Param("symbol"),
		Quantity:    quantity,
		Price:       parseOptionalPrice(requestBody.Price),
		CompanyName: parseOptionalString(requestBody.CompanyName),
	})
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, holdingsResponse(holdings))
}
