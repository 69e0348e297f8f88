package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"places-server/api/googleplaces"
	"places-server/models"
	"places-server/models/placesapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBatchTerms(t *testing.T) {
	terms := []string{"a", "b", "c", "d", "e"}

	assert.Equal(t, [][]string{{"a", "b", "c", "d", "e"}}, BatchTerms(terms, 10))
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}, {"e"}}, BatchTerms(terms, 2))
	assert.Nil(t, BatchTerms(nil, 3))
}

func TestPlacesFetcher_SingleBatch(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("NearbySearch", mock.Anything, googleplaces.NearbySearchRequest{
		Location:     "40.7,-74",
		RadiusMeters: 5000,
		Keyword:      "coffee|restaurant|bar",
	}).Return(rawPlaces(newCoffeePlace("p1", "Blue Bottle")), nil).Once()

	fetcher := NewPlacesFetcher(placesAPI, testFetcherConfig(), zap.NewNop())
	places, err := fetcher.Fetch(context.Background(), FetchNearby, models.SearchParams{Location: "40.7,-74"}, []string{"coffee", "restaurant", "bar"})

	require.NoError(t, err)
	assert.Len(t, places, 1)
	placesAPI.AssertNumberOfCalls(t, "NearbySearch", 1)
}

func TestPlacesFetcher_SearchTextRequest(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("SearchText", mock.Anything, placesapi.SearchTextRequest{
		TextQuery:      "Coffee|cafe|espresso",
		MaxResultCount: 20,
		OpenNow:        boolPtr(true),
		LocationBias: &placesapi.LocationBias{Circle: placesapi.Circle{
			Center: placesapi.LatLng{Latitude: 40.7, Longitude: -74},
			Radius: 1200,
		}},
	}).Return(rawPlaces(), nil).Once()

	fetcher := NewPlacesFetcher(placesAPI, testFetcherConfig(), zap.NewNop())
	params := models.SearchParams{Location: "40.7,-74", OpenNow: boolPtr(true), RadiusMeters: intPtr(1200)}
	_, err := fetcher.Fetch(context.Background(), FetchSearchText, params, []string{"Coffee", "cafe", "espresso"})

	require.NoError(t, err)
	placesAPI.AssertExpectations(t)
}

func TestPlacesFetcher_NonNumericLocationSkipsBias(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("SearchText", mock.Anything, mock.MatchedBy(func(req placesapi.SearchTextRequest) bool {
		return req.LocationBias == nil
	})).Return(rawPlaces(), nil).Once()

	fetcher := NewPlacesFetcher(placesAPI, testFetcherConfig(), zap.NewNop())
	_, err := fetcher.Fetch(context.Background(), FetchSearchText, models.SearchParams{Location: "custom,-74"}, []string{"Coffee"})

	require.NoError(t, err)
	placesAPI.AssertExpectations(t)
}

func TestPlacesFetcher_MergesInBatchOrderAndDedupes(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	first := newCoffeePlace("shared", "From first batch")
	second := newCoffeePlace("shared", "From second batch")
	placesAPI.On("SearchText", mock.Anything, mock.MatchedBy(func(req placesapi.SearchTextRequest) bool {
		return req.TextQuery == "a|b"
	})).Return(rawPlaces(first, newCoffeePlace("p1", "One")), nil)
	placesAPI.On("SearchText", mock.Anything, mock.MatchedBy(func(req placesapi.SearchTextRequest) bool {
		return req.TextQuery == "c|d"
	})).Return(rawPlaces(second, newCoffeePlace("p2", "Two")), nil)
	placesAPI.On("SearchText", mock.Anything, mock.MatchedBy(func(req placesapi.SearchTextRequest) bool {
		return req.TextQuery == "e"
	})).Return(rawPlaces(newCoffeePlace("p3", "Three")), nil)

	cfg := testFetcherConfig()
	cfg.MaxTermsPerRequest = 2
	fetcher := NewPlacesFetcher(placesAPI, cfg, zap.NewNop())

	places, err := fetcher.Fetch(context.Background(), FetchSearchText, models.SearchParams{Location: "1,2"}, []string{"a", "b", "c", "d", "e"})

	require.NoError(t, err)
	ids := make([]string, len(places))
	for i, p := range places {
		ids[i] = p.PlaceID()
	}
	assert.Equal(t, []string{"shared", "p1", "p2", "p3"}, ids)
	assert.Equal(t, "From first batch", places[0].Title())
	placesAPI.AssertNumberOfCalls(t, "SearchText", 3)
}

func TestPlacesFetcher_PartialFailure(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("SearchText", mock.Anything, mock.MatchedBy(func(req placesapi.SearchTextRequest) bool {
		return req.TextQuery == "a"
	})).Return(nil, errors.New("boom"))
	placesAPI.On("SearchText", mock.Anything, mock.MatchedBy(func(req placesapi.SearchTextRequest) bool {
		return req.TextQuery == "b"
	})).Return(rawPlaces(newCoffeePlace("p1", "One")), nil)

	cfg := testFetcherConfig()
	cfg.MaxTermsPerRequest = 1
	fetcher := NewPlacesFetcher(placesAPI, cfg, zap.NewNop())

	places, err := fetcher.Fetch(context.Background(), FetchSearchText, models.SearchParams{Location: "1,2"}, []string{"a", "b"})

	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "p1", places[0].PlaceID())
}

func TestPlacesFetcher_TotalFailure(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("SearchText", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("upstream 503"))

	cfg := testFetcherConfig()
	cfg.MaxTermsPerRequest = 1
	fetcher := NewPlacesFetcher(placesAPI, cfg, zap.NewNop())

	_, err := fetcher.Fetch(context.Background(), FetchSearchText, models.SearchParams{Location: "1,2"}, []string{"a", "b", "c"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable))
	assert.Contains(t, err.Error(), "upstream 503")
	placesAPI.AssertNumberOfCalls(t, "SearchText", 3)
}
