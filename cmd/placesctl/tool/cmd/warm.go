package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var warmLocations []string

// warmCmd runs one cache warming pass
var warmCmd = &cobra.Command{
	Use:   "warm",
	Short: "Refresh the cached category search for the warm locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		container, err := newContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer container.Close()

		warmer := container.CacheWarmerService
		if len(warmLocations) > 0 {
			warmer = warmer.WithLocations(warmLocations)
		}
		if err := warmer.WarmAll(cmd.Context()); err != nil {
			return fmt.Errorf("cache warming finished with errors: %w", err)
		}
		return nil
	},
}

func init() {
	warmCmd.Flags().StringSliceVar(&warmLocations, "location", nil, "\"lat,lng\" to warm instead of CACHE_WARMER_LOCATIONS (repeatable)")
	rootCmd.AddCommand(warmCmd)
}
