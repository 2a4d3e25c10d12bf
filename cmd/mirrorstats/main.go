package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/Jpfonseca/Mirrors-Statistics-Crawler/archive"
	"github.com/Jpfonseca/Mirrors-Statistics-Crawler/awstats"
	"github.com/Jpfonseca/Mirrors-Statistics-Crawler/config"
	"github.com/Jpfonseca/Mirrors-Statistics-Crawler/report"
	"github.com/Jpfonseca/Mirrors-Statistics-Crawler/stats"
)

const defaultConfigPath = "config.yaml"

func main() {
	var (
		configPath = flag.String("config", defaultConfigPath, "Path to the crawler configuration file")
		startYear  = flag.Int("start-year", 0, "First year of the range (required)")
		startMonth = flag.Int("start-month", 0, "First month of the range, 1-12 (required)")
		endYear    = flag.Int("end-year", 0, "Last year of the range (required)")
		endMonth   = flag.Int("end-month", 0, "Last month of the range, 1-12 (required)")
	)
	flag.Parse()
	log.SetFlags(log.LstdFlags | log.LUTC)

	if *startYear == 0 || *startMonth == 0 || *endYear == 0 || *endMonth == 0 {
		flag.Usage()
		log.Fatalf("start-year, start-month, end-year, and end-month are required")
	}
	if *startMonth < 1 || *startMonth > 12 || *endMonth < 1 || *endMonth > 12 {
		flag.Usage()
		log.Fatalf("months must be between 1 and 12")
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	cfg.Print()

	client := awstats.NewClient(cfg.Source.BaseURL, cfg.Source.Config, cfg.Source.UserAgent,
		time.Duration(cfg.Source.TimeoutSeconds)*time.Second)
	tracker := stats.NewTracker()

	var store *archive.Store
	if cfg.Archive.Enabled {
		store, err = archive.Open(cfg.Archive.DBPath)
		if err != nil {
			log.Fatalf("failed to open archive: %v", err)
		}
		defer store.Close()
	}

	ctx := context.Background()
	result, err := report.Generate(ctx, report.Options{
		Client:      client,
		Start:       report.Period{Year: *startYear, Month: *startMonth},
		End:         report.Period{Year: *endYear, Month: *endMonth},
		CSVPath:     cfg.Output.CSV,
		JSONPath:    cfg.Output.JSON,
		ChartPath:   cfg.Output.Chart,
		ChartWidth:  cfg.Output.ChartWidth,
		ChartHeight: cfg.Output.ChartHeight,
		Workers:     cfg.Source.Workers,
		Tracker:     tracker,
		Archive:     store,
		Logger:      log.Default(),
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Monthly bandwidth data saved to %s\n", result.CSVPath)
	if result.JSONPath != "" {
		fmt.Printf("JSON data saved to %s\n", result.JSONPath)
	}
	fmt.Printf("Bandwidth usage chart saved to %s\n", result.ChartPath)
	if result.RunID != 0 {
		fmt.Printf("Recorded run %d in %s\n", result.RunID, store.Path())
		if n, countErr := store.RunCount(ctx); countErr == nil {
			fmt.Printf("Archive holds %d run(s)\n", n)
		}
	}
	for _, line := range tracker.SnapshotLines() {
		fmt.Println(line)
	}
	fmt.Printf("Completed in %s\n", tracker.Uptime().Round(time.Millisecond))
}

// loadConfig treats a missing file as fatal only when the operator named it;
// the default path may simply not exist yet.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.Printf("No config file at %s; using defaults", path)
			cfg := config.DefaultConfig()
			return &cfg, nil
		}
	}
	return config.Load(path)
}
