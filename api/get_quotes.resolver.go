package api

import (
	"stockdash/internal/domain"
	"stockdash/internal/service"

	"github.com/gin-gonic/gin"
)

func (m ApiHandler) getQuotes(c *gin.Context) {
	symbols := service.ParseSymbols(c.Query("symbols"))
	if len(symbols) == 0 {
		returnErrorJson(domain.NewValidationError("symbols query parameter is required"), c)
		return
	}

	quotes, err := m.QuoteService.GetQuotes(c.Request.Context(), symbols)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, quotes)
}
