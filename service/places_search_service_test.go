package services

import (
	"context"
	"errors"
	"testing"

	"places-server/api/googleplaces"
	"places-server/models"
	"places-server/models/placesapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func coffeeSearchParams() models.SearchParams {
	return models.SearchParams{Keys: []int{4}, Location: "40.7128,-74.0060"}
}

func TestSearchPlaces_MissThenHit(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("SearchText", mock.Anything, mock.Anything).
		Return(rawPlaces(newCoffeePlace("p1", "Blue Bottle"), newCoffeePlace("p2", "Stumptown")), nil).Once()
	service, client := newTestSearchService(placesAPI)

	first, err := service.SearchPlaces(context.Background(), coffeeSearchParams())
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	assert.Equal(t, 2, first.Count)
	assert.Equal(t, 1, client.Len())

	second, err := service.SearchPlaces(context.Background(), coffeeSearchParams())
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Data, second.Data)

	placesAPI.AssertNumberOfCalls(t, "SearchText", 1)
}

func TestSearchPlaces_LimitTruncatesResponseButCachesAll(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("SearchText", mock.Anything, mock.Anything).
		Return(rawPlaces(newCoffeePlace("p1", "A"), newCoffeePlace("p2", "B"), newCoffeePlace("p3", "C")), nil).Once()
	service, _ := newTestSearchService(placesAPI)

	params := coffeeSearchParams()
	params.Limit = intPtr(2)
	resp, err := service.SearchPlaces(context.Background(), params)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Count)
	assert.Len(t, resp.Data, 2)

	params.Limit = intPtr(3)
	resp, err = service.SearchPlaces(context.Background(), params)
	require.NoError(t, err)
	assert.True(t, resp.CacheHit)
	assert.Equal(t, 3, resp.Count)

	placesAPI.AssertNumberOfCalls(t, "SearchText", 1)
}

func TestSearchPlaces_InsufficientCacheRefetches(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("SearchText", mock.Anything, mock.Anything).
		Return(rawPlaces(newCoffeePlace("p1", "A")), nil)
	service, _ := newTestSearchService(placesAPI)

	_, err := service.SearchPlaces(context.Background(), coffeeSearchParams())
	require.NoError(t, err)

	params := coffeeSearchParams()
	params.Limit = intPtr(5)
	resp, err := service.SearchPlaces(context.Background(), params)
	require.NoError(t, err)
	assert.False(t, resp.CacheHit)
	assert.Equal(t, 1, resp.Count)

	placesAPI.AssertNumberOfCalls(t, "SearchText", 2)
}

func TestSearchPlaces_BypassCache(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("SearchText", mock.Anything, mock.Anything).
		Return(rawPlaces(newCoffeePlace("p1", "A")), nil)
	service, client := newTestSearchService(placesAPI)

	params := coffeeSearchParams()
	params.BypassCache = true
	for i := 0; i < 2; i++ {
		resp, err := service.SearchPlaces(context.Background(), params)
		require.NoError(t, err)
		assert.False(t, resp.CacheHit)
	}

	gets, sets := client.Calls()
	assert.Equal(t, 0, gets)
	assert.Equal(t, 2, sets)
	placesAPI.AssertNumberOfCalls(t, "SearchText", 2)
}

func TestSearchPlaces_UpstreamFailureLeavesCacheUntouched(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("SearchText", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))
	service, client := newTestSearchService(placesAPI)

	resp, err := service.SearchPlaces(context.Background(), coffeeSearchParams())

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
	assert.Equal(t, 0, client.Len())
}

func TestSearchPlaces_CacheReadErrorIsAMiss(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("SearchText", mock.Anything, mock.Anything).
		Return(rawPlaces(newCoffeePlace("p1", "A")), nil)
	service, client := newTestSearchService(placesAPI)
	client.GetErr = errors.New("redis: connection pool timeout")

	resp, err := service.SearchPlaces(context.Background(), coffeeSearchParams())

	require.NoError(t, err)
	assert.False(t, resp.CacheHit)
	assert.Equal(t, 1, resp.Count)
}

func TestSearchPlaces_CacheWriteErrorStillServes(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("SearchText", mock.Anything, mock.Anything).
		Return(rawPlaces(newCoffeePlace("p1", "A")), nil)
	service, client := newTestSearchService(placesAPI)
	client.SetErr = errors.New("READONLY")

	resp, err := service.SearchPlaces(context.Background(), coffeeSearchParams())

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 0, client.Len())
}

func TestSearchPlaces_EmptyResultIsEmptyArray(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("SearchText", mock.Anything, mock.Anything).Return(rawPlaces(), nil)
	service, _ := newTestSearchService(placesAPI)

	resp, err := service.SearchPlaces(context.Background(), coffeeSearchParams())

	require.NoError(t, err)
	assert.NotNil(t, resp.Data)
	assert.Equal(t, 0, resp.Count)
}

func TestNearbyPlaces_BatchesKeywordsIntoOneRequest(t *testing.T) {
	point := func(lat, lng float64) *placesapi.LegacyGeometry {
		return &placesapi.LegacyGeometry{Location: &placesapi.LegacyLatLng{Lat: lat, Lng: lng}}
	}
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("NearbySearch", mock.Anything, googleplaces.NearbySearchRequest{
		Location:     "40.7128,-74.0060",
		RadiusMeters: 5000,
		Keyword:      "coffee|restaurant|bar",
	}).Return(rawPlaces(
		&placesapi.LegacyPlace{ID: "l1", Name: "Stumptown Coffee Roasters", Types: []string{"cafe"}, Geometry: point(40.74, -73.98)},
		&placesapi.LegacyPlace{ID: "l2", Name: "Balthazar", Types: []string{"restaurant"}, Geometry: point(40.72, -73.99), PriceLevel: intPtr(3)},
		&placesapi.LegacyPlace{ID: "l3", Name: "Please Don't Tell", Types: []string{"bar"}, Geometry: point(40.72, -73.98)},
	), nil).Once()
	service, _ := newTestSearchService(placesAPI)

	resp, err := service.NearbyPlaces(context.Background(), models.SearchParams{
		Location: "40.7128,-74.0060",
		Keywords: []string{"coffee", "restaurant", "bar"},
	})

	require.NoError(t, err)
	placesAPI.AssertNumberOfCalls(t, "NearbySearch", 1)
	categories := map[string]bool{}
	for _, p := range resp.Data {
		categories[p.Category] = true
	}
	assert.Equal(t, map[string]bool{"Coffee": true, "Restaurant": true, "Bar": true}, categories)
	assert.Equal(t, intPtr(3), resp.Data[1].PriceLevel)
}

func TestNearbyPlaces_UsesSeparateCacheFromSearch(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("SearchText", mock.Anything, mock.Anything).Return(rawPlaces(newCoffeePlace("p1", "A")), nil)
	placesAPI.On("NearbySearch", mock.Anything, mock.Anything).Return(rawPlaces(newCoffeePlace("p1", "A")), nil)
	service, client := newTestSearchService(placesAPI)

	_, err := service.SearchPlaces(context.Background(), coffeeSearchParams())
	require.NoError(t, err)
	resp, err := service.NearbyPlaces(context.Background(), models.SearchParams{Location: "40.7128,-74.0060", Keywords: []string{"coffee"}})
	require.NoError(t, err)

	assert.False(t, resp.CacheHit)
	assert.Equal(t, 2, client.Len())
}
