package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"places-server/api"
	"places-server/models"
	"places-server/models/placesapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestPhotosService(placesAPI *MockGooglePlacesAPI) *PlacePhotosService {
	dao, _ := newTestDAO()
	logger := zap.NewNop()
	return NewPlacePhotosService(dao, placesAPI, NewPlaceNormalizer(nil, logger), nil, logger)
}

func TestGetPlacePhotos_MediaURLFollowsRequestedWidth(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("GetPlace", mock.Anything, "ChIJdetails0001").Return(levainPlace(), nil).Once()
	service := newTestPhotosService(placesAPI)

	first, err := service.GetPlacePhotos(context.Background(), models.PlaceLookupParams{ID: "ChIJdetails0001"})
	require.NoError(t, err)
	assert.False(t, first.CacheHit)
	require.Equal(t, 2, first.Count)
	assert.Equal(t, PhotoMediaURL("places/ChIJdetails0001/photos/a", DEFAULT_PHOTO_MAX_WIDTH_PX), first.Data[0].MediaURL)

	second, err := service.GetPlacePhotos(context.Background(), models.PlaceLookupParams{ID: "ChIJdetails0001", MaxWidthPx: intPtr(400)})
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, PhotoMediaURL("places/ChIJdetails0001/photos/b", 400), second.Data[1].MediaURL)

	placesAPI.AssertNumberOfCalls(t, "GetPlace", 1)
}

func TestGetPlacePhotos_NotFound(t *testing.T) {
	placesAPI := new(MockGooglePlacesAPI)
	placesAPI.On("GetPlace", mock.Anything, "nope").Return(nil, &api.APIError{StatusCode: http.StatusNotFound})

	_, err := newTestPhotosService(placesAPI).GetPlacePhotos(context.Background(), models.PlaceLookupParams{ID: "nope"})

	assert.True(t, errors.Is(err, ErrPlaceNotFound))
}

func TestResolvePhotoMedia(t *testing.T) {
	const photoName = "places/ChIJdetails0001/photos/a"

	t.Run("default width", func(t *testing.T) {
		placesAPI := new(MockGooglePlacesAPI)
		placesAPI.On("GetPhotoMedia", mock.Anything, photoName, DEFAULT_PHOTO_MAX_WIDTH_PX).
			Return(&placesapi.PhotoMedia{Name: photoName + "/media", PhotoURI: "https://lh3.example.com/a"}, nil).Once()

		uri, err := newTestPhotosService(placesAPI).ResolvePhotoMedia(context.Background(), photoName, nil)

		require.NoError(t, err)
		assert.Equal(t, "https://lh3.example.com/a", uri)
		placesAPI.AssertExpectations(t)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := newTestPhotosService(new(MockGooglePlacesAPI)).ResolvePhotoMedia(context.Background(), "  ", nil)
		var missing *MissingParameterError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, NAME_QUERY_ARG, missing.Field)
	})

	t.Run("malformed name", func(t *testing.T) {
		_, err := newTestPhotosService(new(MockGooglePlacesAPI)).ResolvePhotoMedia(context.Background(), "https://evil.example.com", nil)
		var invalid *InvalidParameterError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, NAME_QUERY_ARG, invalid.Field)
	})

	t.Run("width out of range", func(t *testing.T) {
		_, err := newTestPhotosService(new(MockGooglePlacesAPI)).ResolvePhotoMedia(context.Background(), photoName, intPtr(10000))
		var invalid *InvalidParameterError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, MAX_WIDTH_PX_QUERY_ARG, invalid.Field)
	})
}
