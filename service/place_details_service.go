package services

import (
	"context"
	"errors"
	"fmt"

	"places-server/api"
	"places-server/api/googleplaces"
	"places-server/dao/redis"
	"places-server/db"
	"places-server/metrics"
	"places-server/models"

	"go.uber.org/zap"
)

const detailsCacheKind = "details"

type PlaceDetailsService struct {
	placesDao  *redis.RedisPlacesDAO
	placesAPI  googleplaces.GooglePlacesAPI
	normalizer *PlaceNormalizer
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewPlaceDetailsService(
	placesDao *redis.RedisPlacesDAO,
	placesAPI googleplaces.GooglePlacesAPI,
	normalizer *PlaceNormalizer,
	m *metrics.Metrics,
	logger *zap.Logger,
) *PlaceDetailsService {
	return &PlaceDetailsService{
		placesDao:  placesDao,
		placesAPI:  placesAPI,
		normalizer: normalizer,
		metrics:    m,
		logger:     logger.Named("place_details_service"),
	}
}

// GetPlaceDetail returns the cached detail for params.ID or fetches it.
func (s *PlaceDetailsService) GetPlaceDetail(ctx context.Context, params models.PlaceLookupParams) (*models.PlaceDetailResponse, error) {
	log := s.logger.With(zap.String("place_id", params.ID))

	if !params.BypassCache {
		cached, err := s.placesDao.GetPlaceDetail(ctx, params.ID)
		switch {
		case err == nil:
			s.metrics.CacheLookup(detailsCacheKind, metrics.CacheHit)
			return &models.PlaceDetailResponse{Data: *cached, CacheHit: true}, nil
		case errors.Is(err, db.ErrCacheMiss):
			s.metrics.CacheLookup(detailsCacheKind, metrics.CacheMiss)
		default:
			log.Warn("Cache read failed, treating as miss", zap.Error(err))
			s.metrics.CacheLookup(detailsCacheKind, metrics.CacheError)
		}
	}

	place, err := s.placesAPI.GetPlace(ctx, params.ID)
	if err != nil {
		return nil, translateLookupError(err)
	}
	detail := s.normalizer.NormalizeDetail(place)

	if err := s.placesDao.SetPlaceDetail(ctx, &detail); err != nil {
		log.Warn("Failed to write place detail to cache", zap.Error(err))
	}
	return &models.PlaceDetailResponse{Data: detail, CacheHit: false}, nil
}

// translateLookupError maps upstream 404s to ErrPlaceNotFound and everything
// else to ErrUpstreamUnavailable.
func translateLookupError(err error) error {
	if api.IsNotFound(err) {
		return fmt.Errorf("%w: %w", ErrPlaceNotFound, err)
	}
	return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
}
