package util

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"places-server/models"
	"places-server/models/placesapi"
)

func readJSON(filePath string, out interface{}) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	return json.Unmarshal(data, out)
}

// ReadSearchTextResponseFromJSON loads a places:searchText response from JSON on disk.
func ReadSearchTextResponseFromJSON(filePath string) (*placesapi.SearchTextResponse, error) {
	var resp placesapi.SearchTextResponse
	if err := readJSON(filePath, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal SearchTextResponse: %w", err)
	}
	return &resp, nil
}

// ReadLegacyNearbyResponseFromJSON loads a legacy Nearby Search response from JSON on disk.
func ReadLegacyNearbyResponseFromJSON(filePath string) (*placesapi.LegacyNearbyResponse, error) {
	var resp placesapi.LegacyNearbyResponse
	if err := readJSON(filePath, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal LegacyNearbyResponse: %w", err)
	}
	return &resp, nil
}

// ReadPlaceFromJSON loads a single new-shape place from JSON on disk.
func ReadPlaceFromJSON(filePath string) (*placesapi.NewPlace, error) {
	var p placesapi.NewPlace
	if err := readJSON(filePath, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal NewPlace: %w", err)
	}
	return &p, nil
}

// PrintPlacesResponsePartially prints a one-line summary per place.
func PrintPlacesResponsePartially(w io.Writer, resp *models.PlacesResponse) {
	fmt.Fprintf(w, "Places: %d (cache hit: %v)\n", resp.Count, resp.CacheHit)
	for _, p := range resp.Data {
		fmt.Fprintf(w, "%s %-30s %-12s (%.6f, %.6f)\n", p.Emoji, p.Name, p.Category, p.Location.Latitude, p.Location.Longitude)
	}
}
