package domain

import "github.com/shopspring/decimal"

type HoldingValuation struct {
	Symbol                string
	CompanyName           string
	Quantity              int64
	Price                 decimal.Decimal
	PriceIsLive           bool
	MarketValue           decimal.Decimal
	Invested              decimal.Decimal
	AverageCost           decimal.Decimal
	UnrealizedGain        decimal.Decimal
	UnrealizedGainPercent decimal.Decimal
	Weight                decimal.Decimal
}

type PortfolioValuation struct {
	Holdings                   []HoldingValuation
	TotalMarketValue           decimal.Decimal
	TotalInvested              decimal.Decimal
	TotalUnrealizedGain        decimal.Decimal
	TotalUnrealizedGainPercent decimal.Decimal
	// concentration across holdings, by market value weight
	LargestWeight float64
	WeightStdDev  float64
}
