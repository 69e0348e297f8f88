package util

import (
	"fmt"
	"io"

	"places-server/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

// PlotPlaces renders the places as a geo scatter chart, one series per category.
func PlotPlaces(w io.Writer, title string, places []models.NormalizedPlace) error {
	series := make(map[string][]opts.GeoData)
	var order []string
	for _, p := range places {
		label := fmt.Sprintf("%s %s", p.Emoji, p.Category)
		if _, ok := series[label]; !ok {
			order = append(order, label)
		}
		series[label] = append(series[label], opts.GeoData{
			Name:  p.Name,
			Value: []float64{p.Location.Longitude, p.Location.Latitude},
		})
	}

	geo := charts.NewGeo()
	geo.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Width:     "1000px",
			Height:    "700px",
		}),
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithGeoComponentOpts(opts.GeoComponent{
			Map:    "world",
			Silent: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	for _, label := range order {
		geo.AddSeries(label, types.ChartScatter, series[label],
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(false),
				Formatter: "{b}",
			}),
		)
	}

	if err := geo.Render(w); err != nil {
		return fmt.Errorf("failed to render places chart: %w", err)
	}
	return nil
}
