package calculator

import (
	"stockdash/internal/domain"

	"github.com/shopspring/decimal"
)

// The functions in this file never modify the holdings they are given;
// each returns a fresh collection that the caller persists.

type AddHoldingInput struct {
	Symbol      string
	CompanyName string
	Price       decimal.Decimal
	Quantity    int64
}

// AddHolding records a purchase. An existing holding keeps its average cost
// and the new shares blend into it.
func AddHolding(holdings domain.Holdings, in AddHoldingInput) (domain.Holdings, error) {
	symbol := domain.NormalizeSymbol(in.Symbol)
	if symbol == "" {
		return nil, domain.NewValidationError("symbol is required")
	}
	if in.Quantity <= 0 {
		return nil, domain.NewValidationError("quantity must be a positive number")
	}
	if in.Price.IsNegative() {
		return nil, domain.NewValidationError("price cannot be negative")
	}

	out := holdings.DeepCopy()
	cost := in.Price.Mul(decimal.NewFromInt(in.Quantity))

	i := out.IndexOf(symbol)
	if i < 0 {
		return append(out, domain.Holding{
			Symbol:      symbol,
			CompanyName: in.CompanyName,
			Price:       in.Price,
			Quantity:    in.Quantity,
			Invested:    cost,
		}), nil
	}

	h := &out[i]
	h.Quantity += in.Quantity
	h.Invested = h.Invested.Add(cost)
	if !in.Price.IsZero() {
		h.Price = in.Price
	}
	if in.CompanyName != "" {
		h.CompanyName = in.CompanyName
	}

	return out, nil
}

type AdjustHoldingInput struct {
	Symbol string
	// signed; positive buys, negative sells
	Delta       int64
	Price       *decimal.Decimal
	CompanyName *string
}

// AdjustHoldingQuantity applies a signed quantity change. Sells beyond the
// held quantity are clamped to what is held, which removes the holding.
func AdjustHoldingQuantity(holdings domain.Holdings, in AdjustHoldingInput) (domain.Holdings, error) {
	symbol := domain.NormalizeSymbol(in.Symbol)
	if symbol == "" {
		return nil, domain.NewValidationError("symbol is required")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.NewValidationError("price cannot be negative")
	}

	out := holdings.DeepCopy()
	if in.Delta == 0 {
		return out, nil
	}

	i := out.IndexOf(symbol)
	if in.Delta < 0 {
		if i < 0 {
			return nil, &domain.NotFoundError{Symbol: symbol}
		}
		sellQuantity := min(out[i].Quantity, -in.Delta)
		out = sellFromHolding(out, i, sellQuantity)
		if j := out.IndexOf(symbol); j >= 0 {
			refreshDisplayFields(&out[j], in.Price, in.CompanyName)
		}
		return out, nil
	}

	if i < 0 {
		price := decimal.Zero
		if in.Price != nil {
			price = *in.Price
		}
		companyName := ""
		if in.CompanyName != nil {
			companyName = *in.CompanyName
		}
		return append(out, domain.Holding{
			Symbol:      symbol,
			CompanyName: companyName,
			Price:       price,
			Quantity:    in.Delta,
			Invested:    price.Mul(decimal.NewFromInt(in.Delta)),
		}), nil
	}

	h := &out[i]
	price := h.Price
	if in.Price != nil && !in.Price.IsZero() {
		price = *in.Price
	}
	h.Quantity += in.Delta
	h.Invested = h.Invested.Add(price.Mul(decimal.NewFromInt(in.Delta)))
	refreshDisplayFields(h, in.Price, in.CompanyName)

	return out, nil
}

// SellHolding is the strict sell: it refuses to sell more than is held.
func SellHolding(holdings domain.Holdings, symbol string, quantity int64) (domain.Holdings, error) {
	symbol = domain.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, domain.NewValidationError("symbol is required")
	}
	if quantity <= 0 {
		return nil, domain.NewValidationError("quantity must be a positive number")
	}

	i := holdings.IndexOf(symbol)
	if i < 0 {
		return nil, &domain.NotFoundError{Symbol: symbol}
	}
	if quantity > holdings[i].Quantity {
		return nil, &domain.InsufficientQuantityError{
			Symbol:    symbol,
			Held:      holdings[i].Quantity,
			Requested: quantity,
		}
	}

	return sellFromHolding(holdings.DeepCopy(), i, quantity), nil
}

// RemoveHolding drops symbol if present.
func RemoveHolding(holdings domain.Holdings, symbol string) domain.Holdings {
	symbol = domain.NormalizeSymbol(symbol)
	out := domain.Holdings{}
	for _, h := range holdings {
		if h.Symbol != symbol {
			out = append(out, h.DeepCopy())
		}
	}
	return out
}

// sellFromHolding reduces holdings[i] at its average cost. Any invested
// remainder left when the quantity reaches zero is discarded with the holding.
func sellFromHolding(holdings domain.Holdings, i int, quantity int64) domain.Holdings {
	h := holdings[i]
	remaining := h.Quantity - quantity
	if remaining <= 0 {
		return append(holdings[:i:i], holdings[i+1:]...)
	}

	soldCost := h.AverageCost().Mul(decimal.NewFromInt(quantity))
	h.Invested = decimal.Max(h.Invested.Sub(soldCost), decimal.Zero)
	h.Quantity = remaining
	holdings[i] = h

	return holdings
}

func refreshDisplayFields(h *domain.Holding, price *decimal.Decimal, companyName *string) {
	if price != nil && price.IsPositive() {
		h.Price = *price
	}
	if companyName != nil && *companyName != "" {
		h.CompanyName = *companyName
	}
}
