package calculator

import (
	"fmt"
	"stockdash/internal/domain"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ValuePortfolio prices every holding with the live price when one is
// known, falling back to the last stored price.
func ValuePortfolio(holdings domain.Holdings, livePrices map[string]decimal.Decimal) (*domain.PortfolioValuation, error) {
	out := &domain.PortfolioValuation{
		Holdings: []domain.HoldingValuation{},
	}

	for _, h := range holdings {
		price, isLive := livePrices[h.Symbol]
		if !isLive || !price.IsPositive() {
			price, isLive = h.Price, false
		}
		marketValue := price.Mul(decimal.NewFromInt(h.Quantity))
		gain := marketValue.Sub(h.Invested)

		out.Holdings = append(out.Holdings, domain.HoldingValuation{
			Symbol:                h.Symbol,
			CompanyName:           h.CompanyName,
			Quantity:              h.Quantity,
			Price:                 price,
			PriceIsLive:           isLive,
			MarketValue:           marketValue,
			Invested:              h.Invested,
			AverageCost:           h.AverageCost(),
			UnrealizedGain:        gain,
			UnrealizedGainPercent: percentOf(gain, h.Invested),
		})
		out.TotalMarketValue = out.TotalMarketValue.Add(marketValue)
		out.TotalInvested = out.TotalInvested.Add(h.Invested)
	}

	out.TotalUnrealizedGain = out.TotalMarketValue.Sub(out.TotalInvested)
	out.TotalUnrealizedGainPercent = percentOf(out.TotalUnrealizedGain, out.TotalInvested)

	if len(out.Holdings) == 0 || out.TotalMarketValue.IsZero() {
		return out, nil
	}

	weights := []float64{}
	for i := range out.Holdings {
		w := out.Holdings[i].MarketValue.Div(out.TotalMarketValue)
		out.Holdings[i].Weight = w
		weights = append(weights, w.InexactFloat64())
	}

	largest, err := stats.Max(weights)
	if err != nil {
		return nil, fmt.Errorf("failed to compute largest weight: %w", err)
	}
	stdDev, err := stats.StandardDeviationPopulation(weights)
	if err != nil {
		return nil, fmt.Errorf("failed to compute weight deviation: %w", err)
	}
	out.LargestWeight = largest
	out.WeightStdDev = stdDev

	return out, nil
}

func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
