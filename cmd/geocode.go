package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umn-housing/listings-cli/internal/geo"
	"github.com/umn-housing/listings-cli/pkg/nominatim"
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode <address>",
	Short: "Resolve one address with variant fallback (debugging aid)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address := args[0]

		client := nominatim.NewClient(cfg.Geocode.Email,
			nominatim.WithBaseURL(cfg.Geocode.BaseURL),
			nominatim.WithMinDelay(cfg.Geocode.Delay()),
			nominatim.WithTimeout(cfg.Geocode.Timeout()),
		)

		res, err := client.Geocode(cmd.Context(), address)
		if err != nil {
			return err
		}
		if !res.Matched {
			fmt.Println("unresolved")
			for _, v := range nominatim.Variants(address) {
				fmt.Printf("  tried: %s\n", v)
			}
			return nil
		}

		f := radiusFilter()
		dist := geo.DistanceKM(geo.Point{Lat: res.Lat, Lon: res.Lon}, f.Ref)
		fmt.Printf("lat:      %.6f\n", res.Lat)
		fmt.Printf("lon:      %.6f\n", res.Lon)
		fmt.Printf("variant:  %s\n", res.Variant)
		fmt.Printf("dist_km:  %.2f\n", dist)
		fmt.Printf("in range: %v (radius %.1f km)\n", dist <= f.RadiusKM, f.RadiusKM)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(geocodeCmd)
}
