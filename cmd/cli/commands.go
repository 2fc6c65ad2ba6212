package main

import (
	"context"
	"fmt"
	"stockdash/api"
	"stockdash/internal/poller"
	"stockdash/internal/service"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func newQuotesCommand(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "quotes [SYMBOL...]",
		Short: "Print quotes, defaulting to WATCH_SYMBOLS",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, handler, err := flags.load()
			if err != nil {
				return err
			}
			symbols := args
			if len(symbols) == 0 {
				symbols = cfg.WatchSymbols
			}
			quotes, err := handler.QuoteService.GetQuotes(c.Context(), symbols)
			if err != nil {
				return err
			}
			return writeQuotes(c.OutOrStdout(), quotes)
		},
	}
}

func newWatchCommand(flags *cliFlags) *cobra.Command {
	var interval time.Duration
	c := &cobra.Command{
		Use:   "watch [SYMBOL...]",
		Short: "Refresh quotes periodically until interrupted",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, handler, err := flags.load()
			if err != nil {
				return err
			}
			symbols := args
			if len(symbols) == 0 {
				symbols = cfg.WatchSymbols
			}
			if interval <= 0 {
				interval = cfg.WatchInterval
			}

			p := poller.Poller{
				Interval: interval,
				Timeout:  cfg.UpstreamTimeout,
				Fn: func(ctx context.Context) error {
					quotes, err := handler.QuoteService.GetQuotes(ctx, symbols)
					if err != nil {
						return err
					}
					fmt.Fprintf(c.OutOrStdout(), "\n%s\n", time.Now().Format(time.TimeOnly))
					return writeQuotes(c.OutOrStdout(), quotes)
				},
			}
			return p.Run(c.Context())
		},
	}
	c.Flags().DurationVar(&interval, "interval", 0, "refresh interval; overrides WATCH_INTERVAL_SECONDS")
	return c
}

func newHoldingsCommand(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "holdings",
		Short: "List portfolio holdings",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			_, handler, err := flags.load()
			if err != nil {
				return err
			}
			holdings, err := handler.PortfolioService.List(c.Context())
			if err != nil {
				return err
			}
			return writeHoldings(c.OutOrStdout(), holdings)
		},
	}
}

func newBuyCommand(flags *cliFlags) *cobra.Command {
	var price, name string
	c := &cobra.Command{
		Use:   "buy SYMBOL QUANTITY",
		Short: "Add shares to the portfolio",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			quantity, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			p, err := parsePriceFlag(price)
			if err != nil {
				return err
			}
			_, handler, err := flags.load()
			if err != nil {
				return err
			}
			holdings, err := handler.PortfolioService.Add(c.Context(), service.AddHoldingRequest{
				Symbol:      args[0],
				CompanyName: name,
				Price:       p,
				Quantity:    quantity,
			})
			if err != nil {
				return err
			}
			return writeHoldings(c.OutOrStdout(), holdings)
		},
	}
	c.Flags().StringVar(&price, "price", "", "price per share")
	c.Flags().StringVar(&name, "name", "", "company name")
	return c
}

func newSellCommand(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "sell SYMBOL QUANTITY",
		Short: "Sell shares, failing if fewer are held",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			quantity, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			_, handler, err := flags.load()
			if err != nil {
				return err
			}
			holdings, err := handler.PortfolioService.Sell(c.Context(), service.SellHoldingRequest{
				Symbol:   args[0],
				Quantity: quantity,
			})
			if err != nil {
				return err
			}
			return writeHoldings(c.OutOrStdout(), holdings)
		},
	}
}

func newAdjustCommand(flags *cliFlags) *cobra.Command {
	var price, name string
	c := &cobra.Command{
		Use:   "adjust SYMBOL DELTA",
		Short: "Change a holding by a signed number of shares",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			delta, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}
			req := service.AdjustHoldingRequest{
				Symbol:   args[0],
				Quantity: delta,
			}
			if c.Flags().Changed("price") {
				p, err := parsePriceFlag(price)
				if err != nil {
					return err
				}
				req.Price = &p
			}
			if c.Flags().Changed("name") {
				req.CompanyName = &name
			}

			_, handler, err := flags.load()
			if err != nil {
				return err
			}
			holdings, err := handler.PortfolioService.Adjust(c.Context(), req)
			if err != nil {
				return err
			}
			return writeHoldings(c.OutOrStdout(), holdings)
		},
	}
	c.Flags().StringVar(&price, "price", "", "price per share")
	c.Flags().StringVar(&name, "name", "", "company name")
	// allow "adjust AAPL -3"
	c.Flags().SetInterspersed(false)
	return c
}

func newRemoveCommand(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "remove SYMBOL",
		Short: "Drop a holding entirely",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			_, handler, err := flags.load()
			if err != nil {
				return err
			}
			holdings, err := handler.PortfolioService.Remove(c.Context(), args[0])
			if err != nil {
				return err
			}
			return writeHoldings(c.OutOrStdout(), holdings)
		},
	}
}

func newValuationCommand(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "valuation",
		Short: "Value the portfolio at live prices",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			_, handler, err := flags.load()
			if err != nil {
				return err
			}
			valuation, err := handler.PortfolioService.Valuation(c.Context())
			if err != nil {
				return err
			}
			return writeValuation(c.OutOrStdout(), valuation)
		},
	}
}

func newExportCommand(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write holdings as CSV to stdout",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			_, handler, err := flags.load()
			if err != nil {
				return err
			}
			holdings, err := handler.PortfolioService.List(c.Context())
			if err != nil {
				return err
			}
			b, err := api.MarshalHoldingsCsv(holdings)
			if err != nil {
				return err
			}
			_, err = c.OutOrStdout().Write(b)
			return err
		},
	}
}

func parsePriceFlag(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	p, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q", s)
	}
	return p, nil
}
