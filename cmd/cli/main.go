package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"stockdash/api"
	"stockdash/cmd"
	"stockdash/internal/config"
	"syscall"

	"github.com/spf13/cobra"
)

type cliFlags struct {
	provider      string
	portfolioFile string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	flags := &cliFlags{}
	root := &cobra.Command{
		Use:          "stockdash",
		Short:        "Stock quotes and a simulated portfolio",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&flags.provider, "provider", "", "quote provider (finnhub, yahoo, alpaca); overrides QUOTE_PROVIDER")
	root.PersistentFlags().StringVar(&flags.portfolioFile, "file", "", "portfolio file; overrides PORTFOLIO_FILE")

	root.AddCommand(
		newServeCommand(flags),
		newQuotesCommand(flags),
		newWatchCommand(flags),
		newHoldingsCommand(flags),
		newBuyCommand(flags),
		newSellCommand(flags),
		newAdjustCommand(flags),
		newRemoveCommand(flags),
		newValuationCommand(flags),
		newExportCommand(flags),
	)
	return root
}

func (f cliFlags) load() (*config.Config, *api.ApiHandler, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if f.provider != "" {
		cfg.QuoteProvider = f.provider
	}
	if f.portfolioFile != "" {
		cfg.PortfolioFile = f.portfolioFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	handler, err := cmd.InitializeDependencies(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	return cfg, handler, nil
}

func newServeCommand(flags *cliFlags) *cobra.Command {
	var port int
	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard API",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			cfg, handler, err := flags.load()
			if err != nil {
				return err
			}
			if port == 0 {
				port = cfg.Port
			}
			return handler.StartApi(port)
		},
	}
	c.Flags().IntVar(&port, "port", 0, "listen port; overrides PORT")
	return c
}
