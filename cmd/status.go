package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umn-housing/listings-cli/internal/model"
	"github.com/umn-housing/listings-cli/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the accumulated listing store",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := outputPaths()

		existing, stats, err := store.Load(paths.Store, store.LoadOptions{})
		if err != nil {
			return err
		}
		if stats.Missing {
			fmt.Println("no accumulated store yet")
			return nil
		}

		buildings := make(map[string]struct{})
		byPriceType := make(map[model.PriceType]int)
		var perBed, studentBranded, located int
		for _, l := range existing {
			if l.BuildingName != "" {
				buildings[l.BuildingName] = struct{}{}
			}
			byPriceType[l.PriceType]++
			if l.IsPerBed != nil && *l.IsPerBed {
				perBed++
			}
			if l.IsStudentBranded != nil && *l.IsStudentBranded {
				studentBranded++
			}
			if l.Located() {
				located++
			}
		}

		fmt.Printf("listings:          %d\n", len(existing))
		fmt.Printf("unique buildings:  %d\n", len(buildings))
		fmt.Printf("geocoded:          %d\n", located)
		fmt.Printf("per-bed priced:    %d\n", perBed)
		fmt.Printf("student-branded:   %d\n", studentBranded)
		fmt.Printf("bad rows skipped:  %d\n", stats.BadRows)
		fmt.Println("by price type:")
		for _, pt := range []model.PriceType{
			model.PriceTypePerUnit, model.PriceTypeRange, model.PriceTypeFromPrice,
			model.PriceTypePerBed, model.PriceTypeTotal, model.PriceTypeUnknown,
		} {
			if byPriceType[pt] > 0 {
				fmt.Printf("  %-12s %d\n", pt, byPriceType[pt])
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
