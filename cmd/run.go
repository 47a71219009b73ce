package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/umn-housing/listings-cli/internal/extract"
	"github.com/umn-housing/listings-cli/internal/pipeline"
	"github.com/umn-housing/listings-cli/internal/store"
	"github.com/umn-housing/listings-cli/pkg/nominatim"
)

var (
	runInput       string
	runNoPrefilter bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Process one session of raw building extractions",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		buildings, err := extract.LoadFile(runInput)
		if err != nil {
			return eris.Wrap(err, "load input")
		}

		paths := outputPaths()

		// URL log: advisory skip of buildings already processed in an
		// earlier session. listing_id dedup downstream remains the
		// source of truth.
		if cfg.Session.SkipKnownURLs {
			known := store.LoadURLs(paths.URLs)
			var filtered []extract.Building
			for _, b := range buildings {
				if _, ok := known[b.SourceURL]; ok {
					continue
				}
				filtered = append(filtered, b)
			}
			if skipped := len(buildings) - len(filtered); skipped > 0 {
				zap.L().Info("skipping already-processed buildings", zap.Int("skipped", skipped))
			}
			buildings = filtered
		}

		geocoder := nominatim.NewClient(cfg.Geocode.Email,
			nominatim.WithBaseURL(cfg.Geocode.BaseURL),
			nominatim.WithMinDelay(cfg.Geocode.Delay()),
			nominatim.WithTimeout(cfg.Geocode.Timeout()),
		)

		p := pipeline.New(pipeline.Params{
			Geocoder:           geocoder,
			Filter:             radiusFilter(),
			MaxPerBuilding:     cfg.Sampler.MaxPerBuilding,
			GeocodeConcurrency: cfg.Geocode.Concurrency,
			PrefilterKnown:     cfg.Session.PrefilterKnown && !runNoPrefilter,
			RefilterOnLoad:     cfg.Filter.RefilterOnLoad,
			Paths:              paths,
		})

		sum, err := p.Run(ctx, buildings)
		if err != nil {
			return eris.Wrap(err, "run session")
		}

		urls := make([]string, 0, len(buildings))
		for _, b := range buildings {
			if b.SourceURL != "" {
				urls = append(urls, b.SourceURL)
			}
		}
		if err := store.AppendNewURLs(paths.URLs, urls); err != nil {
			zap.L().Warn("append url log", zap.Error(err))
		}

		zap.L().Info("session summary",
			zap.String("session_id", sum.SessionID),
			zap.Int("buildings", sum.Buildings),
			zap.Int("units_parsed", sum.UnitsParsed),
			zap.Int("sampled", sum.Sampled),
			zap.Int("skipped_known", sum.SkippedKnown),
			zap.Int("geocoded", sum.Geocoded),
			zap.Int("geocode_failed", sum.GeocodeFailed),
			zap.Int("excluded_by_radius", sum.Excluded),
			zap.Int("kept", sum.Kept),
			zap.Int("newly_merged", sum.NewlyMerged),
			zap.Int("dropped_on_load", sum.DroppedOnLoad),
			zap.Int("store_total", sum.StoreTotal),
		)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "JSON file of raw building extractions (required)")
	runCmd.Flags().BoolVar(&runNoPrefilter, "no-prefilter", false, "geocode even listings whose id already exists in the store")
	_ = runCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(runCmd)
}
