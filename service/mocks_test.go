package services

import (
	"context"
	"time"

	"places-server/api/googleplaces"
	"places-server/dao/redis"
	"places-server/db"
	"places-server/models/placesapi"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// MockGooglePlacesAPI is a testify mock of googleplaces.GooglePlacesAPI.
type MockGooglePlacesAPI struct {
	mock.Mock
}

func (m *MockGooglePlacesAPI) SearchText(ctx context.Context, req placesapi.SearchTextRequest) ([]placesapi.RawPlace, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]placesapi.RawPlace), args.Error(1)
}

func (m *MockGooglePlacesAPI) NearbySearch(ctx context.Context, req googleplaces.NearbySearchRequest) ([]placesapi.RawPlace, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]placesapi.RawPlace), args.Error(1)
}

func (m *MockGooglePlacesAPI) GetPlace(ctx context.Context, placeID string) (*placesapi.NewPlace, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*placesapi.NewPlace), args.Error(1)
}

func (m *MockGooglePlacesAPI) GetPhotoMedia(ctx context.Context, photoName string, maxWidthPx int) (*placesapi.PhotoMedia, error) {
	args := m.Called(ctx, photoName, maxWidthPx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*placesapi.PhotoMedia), args.Error(1)
}

func (m *MockGooglePlacesAPI) SetCredentials(apiKey string) {}

func newCoffeePlace(id, name string) *placesapi.NewPlace {
	open := true
	return &placesapi.NewPlace{
		ID:                  id,
		DisplayName:         &placesapi.LocalizedText{Text: name},
		PrimaryType:         "cafe",
		Types:               []string{"cafe", "food"},
		Location:            &placesapi.LatLng{Latitude: 40.75, Longitude: -73.98},
		PriceLevel:          placesapi.PriceLevelModerate,
		CurrentOpeningHours: &placesapi.OpeningHours{OpenNow: &open},
	}
}

func rawPlaces(places ...placesapi.RawPlace) []placesapi.RawPlace {
	return places
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func testFetcherConfig() FetcherConfig {
	return FetcherConfig{
		MaxTermsPerRequest:   10,
		MaxResultsPerRequest: 20,
		DefaultRadiusMeters:  5000,
		Concurrency:          4,
	}
}

func newTestDAO() (*redis.RedisPlacesDAO, *db.MockRedisClient) {
	client := db.NewMockRedisClient()
	return redis.NewRedisPlacesDAO(client, 7*24*time.Hour, 7*24*time.Hour, 7*24*time.Hour), client
}

func newTestSearchService(placesAPI googleplaces.GooglePlacesAPI) (*PlacesSearchService, *db.MockRedisClient) {
	dao, client := newTestDAO()
	logger := zap.NewNop()
	fetcher := NewPlacesFetcher(placesAPI, testFetcherConfig(), logger)
	return NewPlacesSearchService(dao, fetcher, NewPlaceNormalizer(nil, logger), nil, logger), client
}
