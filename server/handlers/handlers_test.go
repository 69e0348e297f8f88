package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"places-server/api/googleplaces"
	"places-server/dao/redis"
	"places-server/db"
	"places-server/models"
	services "places-server/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const resourcesDir = "../../resources"

type fixtureServices struct {
	search  *services.PlacesSearchService
	details *services.PlaceDetailsService
	photos  *services.PlacePhotosService
	cache   *db.MockRedisClient
}

func newFixtureServices() fixtureServices {
	logger := zap.NewNop()
	cache := db.NewMockRedisClient()
	dao := redis.NewRedisPlacesDAO(cache, time.Hour, time.Hour, time.Hour)
	placesAPI := googleplaces.NewGooglePlacesApiClientMock(resourcesDir)
	normalizer := services.NewPlaceNormalizer(nil, logger)
	fetcher := services.NewPlacesFetcher(placesAPI, services.FetcherConfig{
		MaxTermsPerRequest:   10,
		MaxResultsPerRequest: 20,
		DefaultRadiusMeters:  5000,
		Concurrency:          2,
	}, logger)
	return fixtureServices{
		search:  services.NewPlacesSearchService(dao, fetcher, normalizer, nil, logger),
		details: services.NewPlaceDetailsService(dao, placesAPI, normalizer, nil, logger),
		photos:  services.NewPlacePhotosService(dao, placesAPI, normalizer, nil, logger),
		cache:   cache,
	}
}

type failingSearcher struct{}

func (failingSearcher) SearchPlaces(ctx context.Context, params models.SearchParams) (*models.PlacesResponse, error) {
	return nil, services.ErrUpstreamUnavailable
}

func (failingSearcher) NearbyPlaces(ctx context.Context, params models.SearchParams) (*models.PlacesResponse, error) {
	return nil, services.ErrUpstreamUnavailable
}

type stubDetails struct{ err error }

func (s stubDetails) GetPlaceDetail(ctx context.Context, params models.PlaceLookupParams) (*models.PlaceDetailResponse, error) {
	return nil, s.err
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

func serve(handler http.HandlerFunc, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v))
	return v
}

func TestSearchPlaces(t *testing.T) {
	fx := newFixtureServices()
	h := NewPlacesHandler(fx.search, zap.NewNop())

	rr := serve(h.SearchPlaces, "/api/places/search?key=4&location=40.7128,-74.0060")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	first := decode[models.PlacesResponse](t, rr)
	assert.False(t, first.CacheHit)
	require.Equal(t, 1, first.Count)
	assert.Equal(t, "Blue Bottle Coffee", first.Data[0].Name)
	assert.Equal(t, "☕", first.Data[0].Emoji)

	rr = serve(h.SearchPlaces, "/api/places/search?key=4&location=40.7128,-74.0060")
	require.Equal(t, http.StatusOK, rr.Code)
	second := decode[models.PlacesResponse](t, rr)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Data, second.Data)
}

func TestSearchPlaces_ParamErrors(t *testing.T) {
	h := NewPlacesHandler(failingSearcher{}, zap.NewNop())

	tests := []struct {
		name    string
		handler http.HandlerFunc
		target  string
		want    string
	}{
		{"missing location", h.SearchPlaces, "/api/places/search?key=4", "Missing required parameter: location"},
		{"malformed location", h.SearchPlaces, "/api/places/search?location=north,", "Invalid parameter: location"},
		{"NaN location", h.SearchPlaces, "/api/places/search?location=NaN,NaN", "Invalid parameter: location"},
		{"infinite location", h.NearbyPlaces, "/api/places/nearby?location=Inf,-Infinity", "Invalid parameter: location"},
		{"zero limit", h.SearchPlaces, "/api/places/search?location=1,2&limit=0", "Invalid parameter: limit"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := serve(tc.handler, tc.target)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tc.want, decode[models.ErrorResponse](t, rr).Error)
		})
	}
}

func TestSearchPlaces_LargeLimitIsClamped(t *testing.T) {
	fx := newFixtureServices()
	h := NewPlacesHandler(fx.search, zap.NewNop())

	rr := serve(h.SearchPlaces, "/api/places/search?location=40.7128,-74.0060&limit=500")

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[models.PlacesResponse](t, rr)
	assert.LessOrEqual(t, body.Count, 60)
}

func TestSearchPlaces_UpstreamFailure(t *testing.T) {
	h := NewPlacesHandler(failingSearcher{}, zap.NewNop())

	rr := serve(h.SearchPlaces, "/api/places/search?location=1,2")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, SEARCH_FAILED_MESSAGE, decode[models.ErrorResponse](t, rr).Error)

	rr = serve(h.NearbyPlaces, "/api/places/nearby?location=1,2")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, NEARBY_FAILED_MESSAGE, decode[models.ErrorResponse](t, rr).Error)
}

func TestNearbyPlaces(t *testing.T) {
	fx := newFixtureServices()
	h := NewPlacesHandler(fx.search, zap.NewNop())

	rr := serve(h.NearbyPlaces, "/api/places/nearby?location=40.7128,-74.0060&textQuery=coffee%7Crestaurant%7Cbar&limit=2")
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[models.PlacesResponse](t, rr)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "Coffee", resp.Data[0].Category)
	assert.Equal(t, "Restaurant", resp.Data[1].Category)

	rr = serve(h.NearbyPlaces, "/api/places/nearby?location=40.7128,-74.0060&textQuery=coffee%7Crestaurant%7Cbar&limit=3")
	resp = decode[models.PlacesResponse](t, rr)
	assert.True(t, resp.CacheHit)
	assert.Equal(t, 3, resp.Count)
}

func TestGetPlaceDetail(t *testing.T) {
	fx := newFixtureServices()
	h := NewPlaceDetailsHandler(fx.details, zap.NewNop())

	rr := serve(h.GetPlaceDetail, "/api/places/details?id=ChIJdetails0001")
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[models.PlaceDetailResponse](t, rr)
	assert.Equal(t, "Levain Bakery", resp.Data.Name)

	rr = serve(h.GetPlaceDetail, "/api/places/details?id=unknown")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, PLACE_NOT_FOUND_MESSAGE, decode[models.ErrorResponse](t, rr).Error)

	rr = serve(h.GetPlaceDetail, "/api/places/details")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Missing required parameter: id", decode[models.ErrorResponse](t, rr).Error)
}

func TestGetPlaceDetail_UpstreamFailure(t *testing.T) {
	h := NewPlaceDetailsHandler(stubDetails{err: errors.New("timeout")}, zap.NewNop())

	rr := serve(h.GetPlaceDetail, "/api/places/details?id=x")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, DETAILS_FAILED_MESSAGE, decode[models.ErrorResponse](t, rr).Error)
}

func TestGetPlacePhotos(t *testing.T) {
	fx := newFixtureServices()
	h := NewPlacePhotosHandler(fx.photos, zap.NewNop())

	rr := serve(h.GetPlacePhotos, "/api/places/photos?id=ChIJdetails0001&maxWidthPx=400")
	require.Equal(t, http.StatusOK, rr.Code)
	resp := decode[models.PlacePhotosResponse](t, rr)
	require.Equal(t, 2, resp.Count)
	assert.Equal(t, services.PhotoMediaURL("places/ChIJdetails0001/photos/AUc7tXphoto1", 400), resp.Data[0].MediaURL)

	rr = serve(h.GetPlacePhotos, "/api/places/photos?id=unknown")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetPhotoMedia(t *testing.T) {
	fx := newFixtureServices()
	h := NewPlacePhotosHandler(fx.photos, zap.NewNop())

	rr := serve(h.GetPhotoMedia, services.PhotoMediaURL("places/ChIJdetails0001/photos/AUc7tXphoto1", 400))
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Contains(t, rr.Header().Get("Location"), "https://lh3.googleusercontent.com/mock/")
	assert.Contains(t, rr.Header().Get("Location"), "w=400")

	rr = serve(h.GetPhotoMedia, "/api/places/photos/media?name=ChIJdetails0001")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = serve(h.GetPhotoMedia, "/api/places/photos/media")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Missing required parameter: name", decode[models.ErrorResponse](t, rr).Error)
}

func TestHealth(t *testing.T) {
	rr := serve(NewHealthHandler(stubPinger{}, zap.NewNop()).Health, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = serve(NewHealthHandler(stubPinger{err: errors.New("down")}, zap.NewNop()).Health, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
