package api

import (
	"bytes"
	"encoding/json"
	"stockdash/internal/domain"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Bodies are decoded into json.RawMessage fields first: clients send
// numbers either as JSON numbers or as numeric strings.

func bindBody(c *gin.Context, out any) error {
	if err := c.ShouldBindJSON(out); err != nil {
		return domain.NewValidationError("invalid request body: %v", err)
	}
	return nil
}

func isMissing(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// numericText returns the literal of a JSON number or the contents of a
// JSON string.
func numericText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false
	}
	return n.String(), true
}

func parseDecimal(raw json.RawMessage) (decimal.Decimal, bool) {
	text, ok := numericText(raw)
	if !ok {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// parsePrice treats a missing or non-numeric price as zero.
func parsePrice(raw json.RawMessage) decimal.Decimal {
	price, _ := parseDecimal(raw)
	return price
}

// parseOptionalPrice is nil when the field was not sent at all.
func parseOptionalPrice(raw json.RawMessage) *decimal.Decimal {
	if isMissing(raw) {
		return nil
	}
	price := parsePrice(raw)
	return &price
}

func parseQuantity(raw json.RawMessage) (int64, error) {
	if isMissing(raw) {
		return 0, domain.NewValidationError("quantity is required")
	}
	d, ok := parseDecimal(raw)
	if !ok || !d.IsInteger() {
		return 0, domain.NewValidationError("quantity must be a whole number")
	}
	if d.GreaterThan(decimal.NewFromInt(1_000_000_000_000)) || d.LessThan(decimal.NewFromInt(-1_000_000_000_000)) {
		return 0, domain.NewValidationError("quantity is out of range")
	}
	return d.IntPart(), nil
}

func parseString(raw json.RawMessage) string {
	if isMissing(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func parseOptionalString(raw json.RawMessage) *string {
	if isMissing(raw) {
		return nil
	}
	s := parseString(raw)
	return &s
}
