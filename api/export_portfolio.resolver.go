package api

import (
	"fmt"
	"stockdash/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gocarina/gocsv"
)

type holdingCsvRow struct {
	Symbol      string `csv:"symbol"`
	CompanyName string `csv:"company_name"`
	Quantity    int64  `csv:"quantity"`
	Price       string `csv:"price"`
	Invested    string `csv:"invested"`
	AverageCost string `csv:"average_cost"`
}

func MarshalHoldingsCsv(holdings domain.Holdings) ([]byte, error) {
	rows := []holdingCsvRow{}
	for _, h := range holdings {
		rows = append(rows, holdingCsvRow{
			Symbol:      h.Symbol,
			CompanyName: h.CompanyName,
			Quantity:    h.Quantity,
			Price:       h.Price.StringFixed(2),
			Invested:    h.Invested.StringFixed(2),
			AverageCost: h.AverageCost().StringFixed(4),
		})
	}

	b, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return b, nil
}

func (m ApiHandler) exportPortfolio(c *gin.Context) {
	holdings, err := m.PortfolioService.List(c.Request.Context())
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	b, err := MarshalHoldingsCsv(holdings)
	if err != nil {
		returnErrorJson(err, c)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="portfolio.csv"`)
	c.Data(200, "text/csv", b)
}
