package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"linkscraper/config"
	"linkscraper/domain"
	"linkscraper/repositories"
	"linkscraper/services"
)

func main() {
	// Optional .env for local runs; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	store := repositories.NewAirtableStore(
		cfg.AirtableAPIURL, cfg.AirtableAPIKey,
		cfg.AirtableBaseID, cfg.AirtableTableID, logger)

	fetcher := repositories.NewPageFetcher(cfg.RequestTimeout, cfg.FollowRedirects, cfg.UserAgent)

	extractor := services.NewExtractorService(domain.SelectorSet{
		ExcludeSelectors: cfg.ExcludeSelectors,
		LinkSelectors:    cfg.LinkSelectors,
	})

	policyFilter := services.NewLinkFilter(domain.FilterPolicy{
		RequiredPrefix:    cfg.RequiredPrefix,
		MinLinkLength:     cfg.MinLinkLength,
		DomainSubstring:   cfg.DomainSubstring,
		BlockedExtensions: cfg.BlockedExtensions,
		ExcludedPaths:     cfg.ExcludedPaths,
	}, logger)

	scraper := services.NewScraperService(fetcher, extractor, policyFilter, cfg.MaxLinksPerPage, logger)

	opts := []services.OrchestratorOption{
		services.WithRecordStore(store),
		services.WithScraper(scraper),
		services.WithSiteFilter(services.PrefixFilter{Prefix: cfg.CanonicalPrefix}),
		services.WithRequestDelay(cfg.RequestDelay),
		services.WithRecordLimit(cfg.MaxRecords),
		services.WithColumns(cfg.LinkColumnName, cfg.OutputColumnName),
		services.WithWriteBack(cfg.UpdateRecords),
		services.WithLogger(logger),
	}

	if cfg.SaveToFile {
		opts = append(opts, services.WithReportWriter(repositories.NewFileReportWriter(cfg.OutputPath)))
	}

	if cfg.DatabaseURL != "" {
		db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
		if err != nil {
			logger.Fatal("failed to connect to db", zap.Error(err))
		}
		opts = append(opts, services.WithRunRepository(repositories.NewRunRepository(db, 0)))
	}

	orchestrator := services.NewOrchestratorService(opts...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received signal, stopping after current record", zap.String("signal", sig.String()))
		cancel()
	}()

	orchestrator.Run(ctx)
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
