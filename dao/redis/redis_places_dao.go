package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"places-server/db"
	"places-server/models"
)

// RedisPlacesDAO stores normalized places, details and photos as JSON with per-kind TTLs.
type RedisPlacesDAO struct {
	client     db.RedisClient
	searchTTL  time.Duration
	detailsTTL time.Duration
	photosTTL  time.Duration
}

// NewRedisPlacesDAO initializes a RedisPlacesDAO with the Redis client.
func NewRedisPlacesDAO(client db.RedisClient, searchTTL, detailsTTL, photosTTL time.Duration) *RedisPlacesDAO {
	return &RedisPlacesDAO{
		client:     client,
		searchTTL:  searchTTL,
		detailsTTL: detailsTTL,
		photosTTL:  photosTTL,
	}
}

// GetPlaces returns the cached search result under key, or db.ErrCacheMiss.
func (dao *RedisPlacesDAO) GetPlaces(ctx context.Context, key string) ([]models.NormalizedPlace, error) {
	var places []models.NormalizedPlace
	if err := dao.getJSON(ctx, key, &places); err != nil {
		return nil, err
	}
	return places, nil
}

func (dao *RedisPlacesDAO) SetPlaces(ctx context.Context, key string, places []models.NormalizedPlace) error {
	return dao.setJSON(ctx, key, places, dao.searchTTL)
}

func (dao *RedisPlacesDAO) GetPlaceDetail(ctx context.Context, placeID string) (*models.PlaceDetail, error) {
	var detail models.PlaceDetail
	if err := dao.getJSON(ctx, GeneratePlaceDetailsCacheKey(placeID), &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (dao *RedisPlacesDAO) SetPlaceDetail(ctx context.Context, detail *models.PlaceDetail) error {
	return dao.setJSON(ctx, GeneratePlaceDetailsCacheKey(detail.ID), detail, dao.detailsTTL)
}

func (dao *RedisPlacesDAO) GetPlacePhotos(ctx context.Context, placeID string) ([]models.PlacePhoto, error) {
	var photos []models.PlacePhoto
	if err := dao.getJSON(ctx, GeneratePlacePhotosCacheKey(placeID), &photos); err != nil {
		return nil, err
	}
	return photos, nil
}

func (dao *RedisPlacesDAO) SetPlacePhotos(ctx context.Context, placeID string, photos []models.PlacePhoto) error {
	return dao.setJSON(ctx, GeneratePlacePhotosCacheKey(placeID), photos, dao.photosTTL)
}

// Ping checks the underlying store.
func (dao *RedisPlacesDAO) Ping(ctx context.Context) error {
	return dao.client.Ping(ctx)
}

func (dao *RedisPlacesDAO) getJSON(ctx context.Context, key string, out interface{}) error {
	str, err := dao.client.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("[RedisPlacesDAO] failed to get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(str), out); err != nil {
		return fmt.Errorf("[RedisPlacesDAO] failed to unmarshal %s: %w", key, err)
	}
	return nil
}

func (dao *RedisPlacesDAO) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("[RedisPlacesDAO] failed to marshal %s: %w", key, err)
	}
	if err := dao.client.Set(ctx, key, string(data), ttl); err != nil {
		return fmt.Errorf("[RedisPlacesDAO] failed to set %s: %w", key, err)
	}
	return nil
}
