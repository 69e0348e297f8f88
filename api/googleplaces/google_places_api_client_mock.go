package googleplaces

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"places-server/api"
	"places-server/config"
	"places-server/models/placesapi"
	"places-server/util"
)

// GooglePlacesApiClientMock serves canned responses from the resources directory.
type GooglePlacesApiClientMock struct {
	resourcesDir string
}

// NewGooglePlacesApiClientMock creates a new instance of GooglePlacesApiClientMock
func NewGooglePlacesApiClientMock(resourcesDir string) *GooglePlacesApiClientMock {
	return &GooglePlacesApiClientMock{resourcesDir: resourcesDir}
}

func (c *GooglePlacesApiClientMock) SetCredentials(apiKey string) {}

func (c *GooglePlacesApiClientMock) path(resource string) string {
	return filepath.Join(c.resourcesDir, resource)
}

func (c *GooglePlacesApiClientMock) SearchText(ctx context.Context, req placesapi.SearchTextRequest) ([]placesapi.RawPlace, error) {
	response, err := util.ReadSearchTextResponseFromJSON(c.path(config.SEARCH_TEXT_RESPONSE_RESOURCE))
	if err != nil {
		return nil, err
	}
	return placesapi.DecodeRawPlaces(response.Places)
}

func (c *GooglePlacesApiClientMock) NearbySearch(ctx context.Context, req NearbySearchRequest) ([]placesapi.RawPlace, error) {
	response, err := util.ReadLegacyNearbyResponseFromJSON(c.path(config.LEGACY_NEARBY_RESPONSE_RESOURCE))
	if err != nil {
		return nil, err
	}
	if err := response.Check(); err != nil {
		return nil, err
	}
	return placesapi.DecodeRawPlaces(response.Results)
}

// GetPlace returns the details fixture, or a search fixture place, whose id matches.
func (c *GooglePlacesApiClientMock) GetPlace(ctx context.Context, placeID string) (*placesapi.NewPlace, error) {
	place, err := util.ReadPlaceFromJSON(c.path(config.PLACE_DETAILS_RESPONSE_RESOURCE))
	if err != nil {
		return nil, err
	}
	if place.PlaceID() == placeID {
		return place, nil
	}

	places, err := c.SearchText(ctx, placesapi.SearchTextRequest{})
	if err != nil {
		return nil, err
	}
	for _, p := range places {
		if np, ok := p.(*placesapi.NewPlace); ok && np.PlaceID() == placeID {
			return np, nil
		}
	}
	return nil, &api.APIError{
		StatusCode: http.StatusNotFound,
		Message:    "place not found",
		Endpoint:   fmt.Sprintf(PLACE_ENDPOINT_FORMAT, placeID),
	}
}

func (c *GooglePlacesApiClientMock) GetPhotoMedia(ctx context.Context, photoName string, maxWidthPx int) (*placesapi.PhotoMedia, error) {
	params := url.Values{}
	params.Set("w", strconv.Itoa(maxWidthPx))
	return &placesapi.PhotoMedia{
		Name:     photoName + "/media",
		PhotoURI: "https://lh3.googleusercontent.com/mock/" + url.PathEscape(photoName) + "?" + params.Encode(),
	}, nil
}
