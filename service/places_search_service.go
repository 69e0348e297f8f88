package services

import (
	"context"
	"errors"
	"fmt"

	"places-server/dao/redis"
	"places-server/db"
	"places-server/metrics"
	"places-server/models"

	"go.uber.org/zap"
)

const (
	searchCacheKind = "search"
	nearbyCacheKind = "nearby"
)

// PlacesSearchService runs the cache-backed search pipeline for both search routes.
type PlacesSearchService struct {
	placesDao  *redis.RedisPlacesDAO
	fetcher    *PlacesFetcher
	normalizer *PlaceNormalizer
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

// NewPlacesSearchService constructs a new PlacesSearchService.
func NewPlacesSearchService(
	placesDao *redis.RedisPlacesDAO,
	fetcher *PlacesFetcher,
	normalizer *PlaceNormalizer,
	m *metrics.Metrics,
	logger *zap.Logger,
) *PlacesSearchService {
	return &PlacesSearchService{
		placesDao:  placesDao,
		fetcher:    fetcher,
		normalizer: normalizer,
		metrics:    m,
		logger:     logger.Named("places_search_service"),
	}
}

// SearchPlaces serves the category search: terms come from params.Keys and the
// new searchText API is queried on a miss.
func (s *PlacesSearchService) SearchPlaces(ctx context.Context, params models.SearchParams) (*models.PlacesResponse, error) {
	terms := TermsFromKeys(params.Keys)
	cacheKey := redis.GenerateSearchCacheKey(params)
	return s.run(ctx, searchCacheKind, cacheKey, FetchSearchText, params, terms)
}

// NearbyPlaces serves the keyword search: terms are params.Keywords and the
// legacy Nearby Search API is queried on a miss.
func (s *PlacesSearchService) NearbyPlaces(ctx context.Context, params models.SearchParams) (*models.PlacesResponse, error) {
	cacheKey := redis.GenerateNearbySearchCacheKey(params)
	return s.run(ctx, nearbyCacheKind, cacheKey, FetchNearby, params, params.Keywords)
}

func (s *PlacesSearchService) run(
	ctx context.Context,
	kind, cacheKey string,
	mode FetchMode,
	params models.SearchParams,
	terms []string,
) (*models.PlacesResponse, error) {
	log := s.logger.With(zap.String("kind", kind), zap.String("cache_key", cacheKey))

	if params.BypassCache {
		s.metrics.CacheLookup(kind, metrics.CacheBypass)
	} else if cached, ok := s.lookup(ctx, log, kind, cacheKey, params.Limit); ok {
		data := truncate(cached, params.Limit)
		return &models.PlacesResponse{Data: data, Count: len(data), CacheHit: true}, nil
	}

	raws, err := s.fetcher.Fetch(ctx, mode, params, terms)
	if err != nil {
		return nil, fmt.Errorf("fetch %s places: %w", kind, err)
	}
	places := s.normalizer.NormalizeAll(raws, terms)

	if err := s.placesDao.SetPlaces(ctx, cacheKey, places); err != nil {
		log.Warn("Failed to write places to cache", zap.Error(err))
	}

	data := truncate(places, params.Limit)
	log.Info("Served places from upstream", zap.Int("fetched", len(raws)), zap.Int("count", len(data)))
	return &models.PlacesResponse{Data: data, Count: len(data), CacheHit: false}, nil
}

// lookup treats read errors and entries shorter than the requested limit as misses.
func (s *PlacesSearchService) lookup(ctx context.Context, log *zap.Logger, kind, cacheKey string, limit *int) ([]models.NormalizedPlace, bool) {
	cached, err := s.placesDao.GetPlaces(ctx, cacheKey)
	switch {
	case errors.Is(err, db.ErrCacheMiss):
		s.metrics.CacheLookup(kind, metrics.CacheMiss)
		return nil, false
	case err != nil:
		log.Warn("Cache read failed, treating as miss", zap.Error(err))
		s.metrics.CacheLookup(kind, metrics.CacheError)
		return nil, false
	case limit != nil && len(cached) < *limit:
		log.Debug("Cached places fewer than requested limit", zap.Int("cached", len(cached)), zap.Int("limit", *limit))
		s.metrics.CacheLookup(kind, metrics.CacheInsufficient)
		return nil, false
	}
	s.metrics.CacheLookup(kind, metrics.CacheHit)
	return cached, true
}

func truncate(places []models.NormalizedPlace, limit *int) []models.NormalizedPlace {
	if places == nil {
		places = []models.NormalizedPlace{}
	}
	if limit != nil && len(places) > *limit {
		return places[:*limit]
	}
	return places
}
