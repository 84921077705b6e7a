// Command fetcher downloads the Zillow ZHVI housing datasets into the
// local data directory. It exits 0 when every resource downloaded and
// non-zero when any fetch failed; failures are not retried.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"homepulse/internal/config"
	"homepulse/internal/dataprocessing"
	"homepulse/internal/fetch"
	"homepulse/internal/infrastructure"
)

func main() {
	outDir := flag.String("out", "", "directory to save datasets (defaults to the data dir)")
	flag.Parse()

	paths, err := config.GetPaths()
	if err != nil {
		fmt.Printf("Error: failed to initialize paths: %v\n", err)
		os.Exit(1)
	}

	if *outDir == "" {
		*outDir = paths.DataDir
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Warning: failed to load config, using defaults: %v\n", err)
		cfg = config.Default()
		cfg.Logging.FilePath = paths.GetLogPath("fetcher.log")
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		fmt.Printf("Warning: failed to initialize logger, using default: %v\n", err)
		logger = slog.Default()
	}

	os.Exit(run(cfg, *outDir, logger, fetch.DefaultResources()))
}

// run downloads the given resources and validates what arrived.
// Returns the process exit code.
func run(cfg *config.Config, outDir string, logger *slog.Logger, resources []fetch.Resource) int {
	ctx := context.Background()

	fetcher := fetch.New(cfg.Fetch, outDir, logger)

	logger.Info("fetch starting",
		slog.String("output_dir", outDir),
		slog.Int("resources", len(resources)))

	datasets, err := fetcher.FetchAll(ctx, resources)
	if err != nil {
		logger.Error("fetch failed", slog.String("error", err.Error()))
		fmt.Printf("Download failed: %v\n", err)
		fmt.Println("The Zillow URL may have changed. You can manually download the data:")
		fmt.Println("  1. Go to https://www.zillow.com/research/data/")
		fmt.Println("  2. Select the ZHVI All Homes (SFR, Condo/Co-op), smoothed, seasonally adjusted series")
		fmt.Println("  3. Choose 'State' as the geography")
		fmt.Printf("  4. Save the CSV to %s\n", outDir)
	}

	// Quick validation of each downloaded file: parse it and report the
	// shape so operators can spot a schema change immediately.
	for _, dataset := range datasets {
		table, loadErr := dataprocessing.LoadZHVIFile(dataset.LocalPath)
		if loadErr != nil {
			logger.Error("downloaded file failed validation",
				slog.String("resource", dataset.Name),
				slog.String("path", dataset.LocalPath),
				slog.String("error", loadErr.Error()))
			fmt.Printf("Downloaded %s but it failed validation: %v\n", dataset.Name, loadErr)
			if err == nil {
				err = loadErr
			}
			continue
		}

		regions := dataprocessing.Regions(table.Rows)
		logger.Info("resource validated",
			slog.String("resource", dataset.Name),
			slog.String("path", dataset.LocalPath),
			slog.Int("regions", len(regions)),
			slog.Int("observations", table.Len()))
		fmt.Printf("Saved %s (%d regions, %d observations)\n", dataset.LocalPath, len(regions), table.Len())
	}

	if err != nil {
		return 1
	}
	return 0
}
