package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"places-server/api/googleplaces"
	"places-server/models"
	"places-server/models/placesapi"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// FetchMode selects the upstream endpoint used for a search.
type FetchMode int

const (
	// FetchSearchText uses the new API places:searchText.
	FetchSearchText FetchMode = iota
	// FetchNearby uses the legacy Nearby Search with a keyword query.
	FetchNearby
)

func (m FetchMode) String() string {
	if m == FetchNearby {
		return "nearby"
	}
	return "searchText"
}

// FetcherConfig holds the batching settings of PlacesFetcher.
type FetcherConfig struct {
	MaxTermsPerRequest   int
	MaxResultsPerRequest int
	DefaultRadiusMeters  int
	Concurrency          int
}

// PlacesFetcher splits search terms into batches, queries the upstream once per
// batch and merges the results.
type PlacesFetcher struct {
	placesAPI googleplaces.GooglePlacesAPI
	cfg       FetcherConfig
	logger    *zap.Logger
}

func NewPlacesFetcher(placesAPI googleplaces.GooglePlacesAPI, cfg FetcherConfig, logger *zap.Logger) *PlacesFetcher {
	if cfg.MaxTermsPerRequest <= 0 {
		cfg.MaxTermsPerRequest = 1
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	return &PlacesFetcher{
		placesAPI: placesAPI,
		cfg:       cfg,
		logger:    logger.Named("places_fetcher"),
	}
}

// Fetch runs one upstream request per batch of terms. Results are merged in batch
// order and deduplicated by place id, first occurrence wins. Failed batches are
// logged and skipped; ErrUpstreamUnavailable is returned only when all fail.
func (f *PlacesFetcher) Fetch(ctx context.Context, mode FetchMode, params models.SearchParams, terms []string) ([]placesapi.RawPlace, error) {
	batches := BatchTerms(terms, f.cfg.MaxTermsPerRequest)
	if len(batches) == 0 {
		return nil, nil
	}

	results := make([][]placesapi.RawPlace, len(batches))
	errs := make([]error, len(batches))

	var g errgroup.Group
	g.SetLimit(f.cfg.Concurrency)
	for i, batch := range batches {
		i, batch := i, batch
		g.Go(func() error {
			results[i], errs[i] = f.fetchBatch(ctx, mode, params, batch)
			return nil
		})
	}
	// Batch errors are collected in errs so one failure does not cancel the others; Wait is always nil.
	_ = g.Wait()

	var failed []error
	seen := make(map[string]struct{})
	var merged []placesapi.RawPlace
	for i := range batches {
		if errs[i] != nil {
			f.logger.Warn("Batch failed, skipping",
				zap.Stringer("mode", mode),
				zap.Int("batch", i),
				zap.Strings("terms", batches[i]),
				zap.Error(errs[i]))
			failed = append(failed, errs[i])
			continue
		}
		for _, p := range results[i] {
			id := p.PlaceID()
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, p)
		}
	}

	if len(failed) == len(batches) {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, errors.Join(failed...))
	}

	f.logger.Debug("Fetched places",
		zap.Stringer("mode", mode),
		zap.Int("batches", len(batches)),
		zap.Int("failed", len(failed)),
		zap.Int("places", len(merged)))
	return merged, nil
}

func (f *PlacesFetcher) fetchBatch(ctx context.Context, mode FetchMode, params models.SearchParams, batch []string) ([]placesapi.RawPlace, error) {
	query := strings.Join(batch, TEXT_QUERY_SEPARATOR)
	radius := f.cfg.DefaultRadiusMeters
	if params.RadiusMeters != nil {
		radius = *params.RadiusMeters
	}

	if mode == FetchNearby {
		return f.placesAPI.NearbySearch(ctx, googleplaces.NearbySearchRequest{
			Location:     params.Location,
			RadiusMeters: radius,
			Keyword:      query,
			OpenNow:      params.OpenNow,
		})
	}

	req := placesapi.SearchTextRequest{
		TextQuery:      query,
		MaxResultCount: f.cfg.MaxResultsPerRequest,
		OpenNow:        params.OpenNow,
	}
	if lat, lng, ok := ParseCoordinates(params.Location); ok {
		req.LocationBias = &placesapi.LocationBias{Circle: placesapi.Circle{
			Center: placesapi.LatLng{Latitude: lat, Longitude: lng},
			Radius: float64(radius),
		}}
	}
	return f.placesAPI.SearchText(ctx, req)
}

// BatchTerms partitions terms into consecutive batches of at most size terms.
func BatchTerms(terms []string, size int) [][]string {
	if size <= 0 {
		size = 1
	}
	var batches [][]string
	for start := 0; start < len(terms); start += size {
		end := min(start+size, len(terms))
		batches = append(batches, terms[start:end])
	}
	return batches
}
