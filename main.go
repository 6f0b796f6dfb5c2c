package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"boataround-scraper/config"
	"boataround-scraper/models"
	"boataround-scraper/scraper/boataround"
	"boataround-scraper/services"
	"boataround-scraper/storage"
	"boataround-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Boataround Scraping System starting ===")
	logger.Info("Config — destination: %s | range: %s → %s | concurrency: %d | section retries: %d",
		cfg.Destination, cfg.StartDate, cfg.EndDate, cfg.MaxConcurrency, cfg.MaxSectionRetries)

	start, err := time.Parse(models.DateLayout, cfg.StartDate)
	if err != nil {
		logger.Error("Invalid START_DATE %q: %v", cfg.StartDate, err)
		os.Exit(1)
	}
	end, err := time.Parse(models.DateLayout, cfg.EndDate)
	if err != nil {
		logger.Error("Invalid END_DATE %q: %v", cfg.EndDate, err)
		os.Exit(1)
	}

	csvWriter, err := storage.NewCSVWriter(cfg.CSVOutputPath)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	defer csvWriter.Close()

	client := boataround.NewClient(boataround.ClientOptions{
		UserAgent:       cfg.UserAgent,
		Timeout:         time.Duration(cfg.HTTPTimeoutSec) * time.Second,
		RequestInterval: time.Duration(cfg.RateLimitMs) * time.Millisecond,
	})

	scraper := boataround.New(cfg, logger, client)
	records, err := scraper.ScrapeDestination(context.Background(), cfg.Destination, start, end)
	if err != nil {
		// Transport failures are fatal: partial data is written out and the
		// process exits non-zero.
		var fatal *boataround.FatalError
		if errors.As(err, &fatal) {
			logger.Error("Scrape aborted: %v", fatal)
			if len(records) > 0 {
				_ = csvWriter.WriteRecords(records)
			}
			os.Exit(1)
		}
		logger.Error("Boataround scrape failed: %v", err)
	}

	if len(records) == 0 {
		logger.Error("No listings were scraped. Exiting.")
		os.Exit(1)
	}

	logger.Info("Scraped %d raw records — writing to CSV...", len(records))

	if err := csvWriter.WriteRecords(records); err != nil {
		logger.Error("CSV write failed: %v", err)
	} else {
		logger.Info("Raw records saved to %s", cfg.CSVOutputPath)
	}

	cleaner := services.NewCleaner(logger)
	listings := cleaner.Clean(records)

	if len(listings) == 0 {
		logger.Error("All records were dropped during cleaning. Exiting.")
		os.Exit(1)
	}

	excelWriter := storage.NewExcelWriter(cfg.XLSXOutputPath)
	if err := excelWriter.Write(listings); err != nil {
		logger.Error("Excel write failed: %v", err)
	} else {
		logger.Info("Formatted workbook saved to %s", cfg.XLSXOutputPath)
	}

	if cfg.PostgresEnabled {
		pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), logger)
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
		} else {
			defer pgWriter.Close()
			if err := pgWriter.Write(listings); err != nil {
				logger.Error("PostgreSQL write failed: %v", err)
			} else {
				logger.Info("Clean listings stored in PostgreSQL (table: boat_listings)")
			}
			if fetched, err := pgWriter.FetchAll(); err == nil {
				listings = fetched
			}
		}
	}

	insightSvc := services.NewInsightService(logger)
	report := insightSvc.Generate(listings)
	insightSvc.Print(report)

	fmt.Printf("  Done. Raw CSV → %s | Formatted workbook → %s\n\n",
		cfg.CSVOutputPath, cfg.XLSXOutputPath)
}
