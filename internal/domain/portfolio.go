package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Holding struct {
	Symbol      string          `json:"symbol"`
	CompanyName string          `json:"companyName"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	Invested    decimal.Decimal `json:"invested"`
}

// AverageCost is the cost basis per held share, zero when nothing is held.
func (h Holding) AverageCost() decimal.Decimal {
	if h.Quantity == 0 {
		return decimal.Zero
	}
	return h.Invested.Div(decimal.NewFromInt(h.Quantity))
}

func (h Holding) DeepCopy() Holding {
	return Holding{
		Symbol:      h.Symbol,
		CompanyName: h.CompanyName,
		Price:       h.Price,
		Quantity:    h.Quantity,
		Invested:    h.Invested,
	}
}

// Holdings is the persisted portfolio, ordered and unique by symbol.
type Holdings []Holding

func (h Holdings) DeepCopy() Holdings {
	out := make(Holdings, 0, len(h))
	for _, holding := range h {
		out = append(out, holding.DeepCopy())
	}
	return out
}

// IndexOf returns the position of symbol, or -1.
func (h Holdings) IndexOf(symbol string) int {
	for i, holding := range h {
		if holding.Symbol == symbol {
			return i
		}
	}
	return -1
}

func (h Holdings) HeldSymbols() []string {
	symbols := []string{}
	for _, holding := range h {
		symbols = append(symbols, holding.Symbol)
	}
	return symbols
}

func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
