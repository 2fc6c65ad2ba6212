package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func runCli(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	root := newRootCommand()
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestPortfolioCommands(t *testing.T) {
	file := filepath.Join(t.TempDir(), "portfolio.json")
	base := []string{"--provider", "yahoo", "--file", file}

	out, err := runCli(t, append(base, "buy", "aapl", "10", "--price", "150", "--name", "Apple Inc")...)
	require.NoError(t, err)
	require.Contains(t, out, "AAPL")
	require.Contains(t, out, "1500.00")

	_, err = runCli(t, append(base, "buy", "AAPL", "5", "--price", "170")...)
	require.NoError(t, err)

	out, err = runCli(t, append(base, "holdings")...)
	require.NoError(t, err)
	require.Contains(t, out, "2350.00")
	require.Contains(t, out, "156.67")

	_, err = runCli(t, append(base, "sell", "AAPL", "20")...)
	require.ErrorContains(t, err, "only 15 held")

	out, err = runCli(t, append(base, "adjust", "AAPL", "-100")...)
	require.NoError(t, err)
	require.Equal(t, "no holdings", strings.TrimSpace(out))

	_, err = runCli(t, append(base, "buy", "IBM", "2", "--price", "140")...)
	require.NoError(t, err)
	out, err = runCli(t, append(base, "export")...)
	require.NoError(t, err)
	require.Equal(t, "symbol,company_name,quantity,price,invested,average_cost\nIBM,,2,140.00,280.00,140.0000\n", out)

	out, err = runCli(t, append(base, "remove", "IBM")...)
	require.NoError(t, err)
	require.Equal(t, "no holdings", strings.TrimSpace(out))
}

func TestInvalidArguments(t *testing.T) {
	file := filepath.Join(t.TempDir(), "portfolio.json")

	_, err := runCli(t, "--provider", "yahoo", "--file", file, "buy", "AAPL", "ten")
	require.ErrorContains(t, err, `invalid quantity "ten"`)

	_, err = runCli(t, "--provider", "bloomberg", "--file", file, "holdings")
	require.ErrorContains(t, err, "unknown QUOTE_PROVIDER")
}
