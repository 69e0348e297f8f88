package cmd

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"

	"places-server/models"
	services "places-server/service"
	"places-server/util"

	"github.com/spf13/cobra"
)

var (
	searchLocation    string
	searchKeys        []int
	searchKeywords    string
	searchLimit       int
	searchOpenNow     bool
	searchBypassCache bool
	searchPlotPath    string
	searchSummary     bool
)

// searchCmd runs one search through the same pipeline as the HTTP routes
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one places search and print the result",
	Long: `search runs the category search (--key) or, with --keywords, the nearby keyword search,
and prints the JSON response. --plot writes an HTML scatter map of the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		vals := url.Values{}
		vals.Set(services.LOCATION_QUERY_ARG, searchLocation)
		for _, k := range searchKeys {
			vals.Add(services.KEY_QUERY_ARG, strconv.Itoa(k))
		}
		if searchLimit > 0 {
			vals.Set(services.LIMIT_QUERY_ARG, strconv.Itoa(searchLimit))
		}
		if cmd.Flags().Changed("open-now") {
			vals.Set(services.OPEN_NOW_QUERY_ARG, strconv.FormatBool(searchOpenNow))
		}
		if searchBypassCache {
			vals.Set(services.BYPASS_CACHE_QUERY_ARG, "true")
		}

		container, err := newContainer(cmd.Context())
		if err != nil {
			return err
		}
		defer container.Close()

		var resp *models.PlacesResponse
		if searchKeywords != "" {
			vals.Set(services.TEXT_QUERY_ARG, searchKeywords)
			params, err := services.ExtractNearbyParams(vals)
			if err != nil {
				return err
			}
			resp, err = container.PlacesSearchService.NearbyPlaces(cmd.Context(), params)
			if err != nil {
				return err
			}
		} else {
			params, err := services.ExtractSearchParams(vals)
			if err != nil {
				return err
			}
			resp, err = container.PlacesSearchService.SearchPlaces(cmd.Context(), params)
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if searchSummary {
			util.PrintPlacesResponsePartially(out, resp)
		} else {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(resp); err != nil {
				return err
			}
		}

		if searchPlotPath != "" {
			f, err := os.Create(searchPlotPath)
			if err != nil {
				return fmt.Errorf("create plot file: %w", err)
			}
			defer f.Close()
			if err := util.PlotPlaces(f, "Places near "+searchLocation, resp.Data); err != nil {
				return fmt.Errorf("render plot: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Map written to %s\n", searchPlotPath)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "search center as \"lat,lng\"")
	searchCmd.Flags().IntSliceVarP(&searchKeys, "key", "k", nil, "category keys (1-10), all when omitted")
	searchCmd.Flags().StringVar(&searchKeywords, "keywords", "", "pipe-delimited keywords for the nearby search, e.g. \"coffee|bar\"")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum number of places (1-60)")
	searchCmd.Flags().BoolVar(&searchOpenNow, "open-now", false, "only places open now")
	searchCmd.Flags().BoolVar(&searchBypassCache, "bypass-cache", false, "skip the cache lookup")
	searchCmd.Flags().StringVar(&searchPlotPath, "plot", "", "write an HTML map of the result to this file")
	searchCmd.Flags().BoolVar(&searchSummary, "summary", false, "print one line per place instead of JSON")
	_ = searchCmd.MarkFlagRequired("location")
	rootCmd.AddCommand(searchCmd)
}
