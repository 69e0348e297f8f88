package services

import (
	"context"
	"errors"
	"strings"

	"places-server/api/googleplaces"
	"places-server/dao/redis"
	"places-server/db"
	"places-server/metrics"
	"places-server/models"

	"go.uber.org/zap"
)

const (
	photosCacheKind = "photos"

	DEFAULT_PHOTO_MAX_WIDTH_PX = 800
)

type PlacePhotosService struct {
	placesDao  *redis.RedisPlacesDAO
	placesAPI  googleplaces.GooglePlacesAPI
	normalizer *PlaceNormalizer
	metrics    *metrics.Metrics
	logger     *zap.Logger
}

func NewPlacePhotosService(
	placesDao *redis.RedisPlacesDAO,
	placesAPI googleplaces.GooglePlacesAPI,
	normalizer *PlaceNormalizer,
	m *metrics.Metrics,
	logger *zap.Logger,
) *PlacePhotosService {
	return &PlacePhotosService{
		placesDao:  placesDao,
		placesAPI:  placesAPI,
		normalizer: normalizer,
		metrics:    m,
		logger:     logger.Named("place_photos_service"),
	}
}

// GetPlacePhotos lists the photos of a place. Each MediaURL targets the media
// redirect route with the requested width.
func (s *PlacePhotosService) GetPlacePhotos(ctx context.Context, params models.PlaceLookupParams) (*models.PlacePhotosResponse, error) {
	log := s.logger.With(zap.String("place_id", params.ID))
	width := maxWidthOr(params.MaxWidthPx)

	if !params.BypassCache {
		cached, err := s.placesDao.GetPlacePhotos(ctx, params.ID)
		switch {
		case err == nil:
			s.metrics.CacheLookup(photosCacheKind, metrics.CacheHit)
			data := withMediaURLs(cached, width)
			return &models.PlacePhotosResponse{Data: data, Count: len(data), CacheHit: true}, nil
		case errors.Is(err, db.ErrCacheMiss):
			s.metrics.CacheLookup(photosCacheKind, metrics.CacheMiss)
		default:
			log.Warn("Cache read failed, treating as miss", zap.Error(err))
			s.metrics.CacheLookup(photosCacheKind, metrics.CacheError)
		}
	}

	place, err := s.placesAPI.GetPlace(ctx, params.ID)
	if err != nil {
		return nil, translateLookupError(err)
	}
	photos := s.normalizer.NormalizePhotos(place)

	if err := s.placesDao.SetPlacePhotos(ctx, params.ID, photos); err != nil {
		log.Warn("Failed to write place photos to cache", zap.Error(err))
	}

	data := withMediaURLs(photos, width)
	return &models.PlacePhotosResponse{Data: data, Count: len(data), CacheHit: false}, nil
}

// ResolvePhotoMedia returns the short-lived upstream URI of a photo.
func (s *PlacePhotosService) ResolvePhotoMedia(ctx context.Context, photoName string, maxWidthPx *int) (string, error) {
	photoName = strings.TrimSpace(photoName)
	if photoName == "" {
		return "", &MissingParameterError{Field: NAME_QUERY_ARG}
	}
	if !strings.HasPrefix(photoName, "places/") || !strings.Contains(photoName, "/photos/") {
		return "", &InvalidParameterError{Field: NAME_QUERY_ARG, Reason: "expected places/<id>/photos/<ref>"}
	}
	if err := validateParams(models.PlaceLookupParams{ID: photoName, MaxWidthPx: maxWidthPx}); err != nil {
		return "", err
	}

	media, err := s.placesAPI.GetPhotoMedia(ctx, photoName, maxWidthOr(maxWidthPx))
	if err != nil {
		return "", translateLookupError(err)
	}
	return media.PhotoURI, nil
}

func withMediaURLs(photos []models.PlacePhoto, maxWidthPx int) []models.PlacePhoto {
	out := make([]models.PlacePhoto, len(photos))
	for i, p := range photos {
		p.MediaURL = PhotoMediaURL(p.Name, maxWidthPx)
		out[i] = p
	}
	return out
}

func maxWidthOr(maxWidthPx *int) int {
	if maxWidthPx == nil {
		return DEFAULT_PHOTO_MAX_WIDTH_PX
	}
	return *maxWidthPx
}
