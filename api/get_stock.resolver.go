package api

import (
	"github.com/gin-gonic/gin"
)

func (m ApiHandler) getStock(c *gin.Context) {
	detail, err := m.QuoteService.GetStock(c.Request.Context(), c.Param("symbol"))
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.JSON(200, detail)
}
