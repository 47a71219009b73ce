package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/umn-housing/listings-cli/internal/store"
)

var locationsCmd = &cobra.Command{
	Use:   "locations",
	Short: "Show search locations in least-scraped-first order",
	Long:  "Orders the configured search locations by session count so coverage stays balanced: no location is scraped again before the others have caught up.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(cfg.Session.Locations) == 0 {
			fmt.Println("no search locations configured (session.locations)")
			return nil
		}

		countsPath := filepath.Join(cfg.Output.Dir, cfg.Output.LocationsFile)
		counts := store.LoadLocationCounts(countsPath)

		for i, loc := range store.BalancedOrder(cfg.Session.Locations, counts) {
			fmt.Printf("%2d. %-40s sessions=%d\n", i+1, loc, counts[loc])
		}
		return nil
	},
}

var locationsMarkCmd = &cobra.Command{
	Use:   "mark <location>",
	Short: "Record one completed session for a location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		countsPath := filepath.Join(cfg.Output.Dir, cfg.Output.LocationsFile)
		counts := store.LoadLocationCounts(countsPath)
		counts[args[0]]++
		if err := store.SaveLocationCounts(countsPath, counts); err != nil {
			return err
		}
		fmt.Printf("%s: %d sessions\n", args[0], counts[args[0]])
		return nil
	},
}

func init() {
	locationsCmd.AddCommand(locationsMarkCmd)
	rootCmd.AddCommand(locationsCmd)
}
