package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/umn-housing/listings-cli/internal/config"
	"github.com/umn-housing/listings-cli/internal/geo"
	"github.com/umn-housing/listings-cli/internal/pipeline"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "listings-cli",
	Short: "Rental-listing collection pipeline for the housing-affordability study",
	Long:  "Normalizes raw apartment-listing extractions into one record schema, geocodes addresses, filters by distance from campus, and accumulates deduplicated results across sessions.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// radiusFilter builds the distance filter from config.
func radiusFilter() *geo.Filter {
	mode := geo.ModeStrict
	if cfg.Filter.Mode == string(geo.ModeCityFallback) {
		mode = geo.ModeCityFallback
	}
	return &geo.Filter{
		Ref:            geo.Point{Lat: cfg.Filter.RefLat, Lon: cfg.Filter.RefLon},
		RadiusKM:       cfg.Filter.RadiusKM,
		Mode:           mode,
		AcceptedCities: cfg.Filter.AcceptedCities,
	}
}

// outputPaths resolves the configured artifact paths under the output dir.
func outputPaths() pipeline.Paths {
	dir := cfg.Output.Dir
	return pipeline.Paths{
		Store:    filepath.Join(dir, cfg.Output.StoreFile),
		Snapshot: filepath.Join(dir, cfg.Output.SnapshotFile),
		All:      filepath.Join(dir, cfg.Output.AllFile),
		URLs:     filepath.Join(dir, cfg.Output.URLsFile),
	}
}
