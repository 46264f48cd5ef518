package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"jobharvest/internal/collector/factory"
	"jobharvest/internal/config"
	"jobharvest/internal/exporter"
	"jobharvest/internal/logging"
	"jobharvest/pkg/models"
	"jobharvest/pkg/utils"
)

func main() {
	var (
		configPath = flag.String("config", "configs/config.yaml", "path to configuration file")
		source     = flag.String("source", "jobup", fmt.Sprintf("job board to crawl (%s)", strings.Join(factory.SupportedSources(), ", ")))
		terms      = flag.String("terms", "", "comma-separated search terms, overrides configured defaults")
		maxPages   = flag.Int("max-pages", 0, "max result pages per search term")
		limit      = flag.Int("limit", 0, "total job limit across all terms")
		details    = flag.Bool("details", true, "visit each detail page for the full description")
		headless   = flag.Bool("headless", true, "run the browser headless")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
		outDir     = flag.String("out", "", "output directory, overrides configured default")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.Scraper.HeadlessMode = *headless
	if *verbose {
		cfg.Logging.Level = "debug"
	}
	if *outDir != "" {
		cfg.Crawler.OutputDir = *outDir
	}

	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()

	opts := models.CollectOptions{
		Terms:           cfg.Crawler.Terms,
		MaxPagesPerTerm: cfg.Crawler.MaxPagesPerTerm,
		TotalLimit:      cfg.Crawler.TotalLimit,
		FetchDetails:    *details,
		MaxNoNewPages:   cfg.Crawler.MaxNoNewPages,
	}
	if *terms != "" {
		opts.Terms = splitTerms(*terms)
	}
	if *maxPages > 0 {
		opts.MaxPagesPerTerm = *maxPages
	}
	if *limit > 0 {
		opts.TotalLimit = *limit
	}

	coll, err := factory.New(*source, cfg, logger)
	if err != nil {
		logger.Error("Unknown source", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
	defer coll.Cleanup()

	started := time.Now()
	logger.Info("Starting crawl", map[string]interface{}{
		"source": coll.Name(),
		"terms":  opts.Terms,
	})

	rows, err := coll.Collect(context.Background(), opts)
	if err != nil {
		logger.Error("Crawl failed, no output written", map[string]interface{}{
			"source": coll.Name(),
			"error":  err.Error(),
		})
		os.Exit(1)
	}

	path, err := exporter.WriteCSV(cfg.Crawler.OutputDir, coll.Name(), rows, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to write output", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	logger.Info("Crawl complete", map[string]interface{}{
		"source":   coll.Name(),
		"jobs":     len(rows),
		"output":   path,
		"duration": utils.FormatDuration(time.Since(started)),
	})
}

func splitTerms(raw string) []string {
	var terms []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}
