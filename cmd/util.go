package cmd

import (
	"fmt"
	"stockdash/api"
	"stockdash/internal/config"
	"stockdash/internal/logger"
	"stockdash/internal/repository"
	"stockdash/internal/service"
)

func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func InitializeDependencies(cfg *config.Config) (*api.ApiHandler, error) {
	quoteProviderRepository, err := repository.NewQuoteProviderRepository(cfg)
	if err != nil {
		return nil, err
	}
	holdingsRepository := repository.NewHoldingsRepository(cfg.PortfolioFile)

	quoteService := service.NewQuoteService(quoteProviderRepository, cfg.UpstreamTimeout)
	portfolioService := service.NewPortfolioService(holdingsRepository, quoteService)

	log := logger.New()
	log.Infow("dependencies initialized",
		"quoteProvider", quoteProviderRepository.Name(),
		"portfolioFile", cfg.PortfolioFile,
	)

	return &api.ApiHandler{
		QuoteService:     quoteService,
		PortfolioService: portfolioService,
		Logger:           log,
		CorsAllowOrigins: cfg.CorsAllowOrigins,
	}, nil
}
