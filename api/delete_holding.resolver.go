package api

import (
	"github.com/gin-gonic/gin"
)

func (m ApiHandler) deleteHolding(c *gin.Context) {
	holdings, err := m.PortfolioService.Remove(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, holdingsResponse(holdings))
}
