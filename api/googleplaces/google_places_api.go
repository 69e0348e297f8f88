package googleplaces

import (
	"context"

	"places-server/models/placesapi"
)

// NearbySearchRequest is the input of a legacy Nearby Search call. Keyword may
// hold several terms joined with "|".
type NearbySearchRequest struct {
	Location     string
	RadiusMeters int
	Keyword      string
	OpenNow      *bool
}

// GooglePlacesAPI defines the interface for interacting with the Google Places APIs
type GooglePlacesAPI interface {
	SearchText(ctx context.Context, req placesapi.SearchTextRequest) ([]placesapi.RawPlace, error)
	NearbySearch(ctx context.Context, req NearbySearchRequest) ([]placesapi.RawPlace, error)
	GetPlace(ctx context.Context, placeID string) (*placesapi.NewPlace, error)
	GetPhotoMedia(ctx context.Context, photoName string, maxWidthPx int) (*placesapi.PhotoMedia, error)
	SetCredentials(apiKey string)
}
