package api

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func Test_parseQuantity(t *testing.T) {
	valid := map[string]int64{
		`5`:     5,
		`"5"`:   5,
		`-3`:    -3,
		`" 7 "`: 7,
		`2.0`:   2,
	}
	for raw, expected := range valid {
		q, err := parseQuantity(json.RawMessage(raw))
		require.NoError(t, err, raw)
		require.Equal(t, expected, q, raw)
	}

	for _, raw := range []string{``, `null`, `1.5`, `"abc"`, `true`, `{}`, `1e20`} {
		_, err := parseQuantity(json.RawMessage(raw))
		require.Error(t, err, raw)
	}
}

func Test_parsePrice(t *testing.T) {
	require.True(t, parsePrice(json.RawMessage(`170.25`)).Equal(decimal.RequireFromString("170.25")))
	require.True(t, parsePrice(json.RawMessage(`"170.25"`)).Equal(decimal.RequireFromString("170.25")))
	require.True(t, parsePrice(json.RawMessage(`"n/a"`)).IsZero())
	require.True(t, parsePrice(nil).IsZero())

	require.Nil(t, parseOptionalPrice(json.RawMessage(`null`)))
	require.NotNil(t, parseOptionalPrice(json.RawMessage(`"bad"`)))
}
