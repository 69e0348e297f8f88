package googleplaces

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"places-server/api"
	"places-server/metrics"
	"places-server/models/placesapi"

	"go.uber.org/zap"
)

const (
	API_KEY_HEADER    = "X-Goog-Api-Key"
	FIELD_MASK_HEADER = "X-Goog-FieldMask"

	SEARCH_TEXT_ENDPOINT   = "/places:searchText"
	NEARBY_SEARCH_ENDPOINT = "/nearbysearch/json"
	PLACE_ENDPOINT_FORMAT  = "/places/%s"
	PHOTO_MEDIA_FORMAT     = "/%s/media"
)

// Field masks requested from the new API.
var (
	SearchFieldMask = strings.Join([]string{
		"places.id", "places.name", "places.displayName", "places.primaryType",
		"places.primaryTypeDisplayName", "places.types", "places.formattedAddress",
		"places.location", "places.priceLevel", "places.rating", "places.userRatingCount",
		"places.currentOpeningHours.openNow", "places.regularOpeningHours.openNow",
		"places.takeout", "places.delivery", "places.dineIn", "places.outdoorSeating",
		"places.reservable", "places.servesVegetarianFood", "places.goodForChildren",
		"places.allowsDogs",
	}, ",")

	DetailsFieldMask = strings.Join([]string{
		"id", "name", "displayName", "primaryType", "types", "formattedAddress", "location",
		"priceLevel", "rating", "userRatingCount", "currentOpeningHours", "regularOpeningHours",
		"nationalPhoneNumber", "internationalPhoneNumber", "websiteUri", "googleMapsUri",
		"editorialSummary", "photos", "takeout", "delivery", "dineIn", "outdoorSeating",
		"reservable", "servesVegetarianFood", "goodForChildren", "allowsDogs",
	}, ",")
)

// GooglePlacesApiClient talks to the new Places API and the legacy Maps Places API.
type GooglePlacesApiClient struct {
	*api.HTTPClient
	legacy  *api.HTTPClient
	apiKey  string
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewGooglePlacesApiClient creates a client. httpClient targets the new API base URL,
// legacyClient the legacy Maps Places base URL.
func NewGooglePlacesApiClient(httpClient, legacyClient *api.HTTPClient, m *metrics.Metrics, logger *zap.Logger) *GooglePlacesApiClient {
	return &GooglePlacesApiClient{
		HTTPClient: httpClient,
		legacy:     legacyClient,
		metrics:    m,
		logger:     logger.Named("google_places_client"),
	}
}

func (c *GooglePlacesApiClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

func (c *GooglePlacesApiClient) headers(fieldMask string) map[string]string {
	return map[string]string{
		API_KEY_HEADER:    c.apiKey,
		FIELD_MASK_HEADER: fieldMask,
	}
}

// SearchText runs one places:searchText request.
func (c *GooglePlacesApiClient) SearchText(ctx context.Context, req placesapi.SearchTextRequest) ([]placesapi.RawPlace, error) {
	var response placesapi.SearchTextResponse
	err := c.Request(ctx, http.MethodPost, SEARCH_TEXT_ENDPOINT, c.headers(SearchFieldMask), req, &response)
	c.metrics.UpstreamRequest("searchText", err)
	if err != nil {
		return nil, fmt.Errorf("searchText %q: %w", req.TextQuery, err)
	}

	places, err := placesapi.DecodeRawPlaces(response.Places)
	if err != nil {
		return nil, fmt.Errorf("searchText %q: malformed response: %w", req.TextQuery, err)
	}
	c.logger.Debug("searchText completed", zap.String("query", req.TextQuery), zap.Int("places", len(places)))
	return places, nil
}

// NearbySearch runs one legacy Nearby Search request.
func (c *GooglePlacesApiClient) NearbySearch(ctx context.Context, req NearbySearchRequest) ([]placesapi.RawPlace, error) {
	params := url.Values{}
	params.Set("location", req.Location)
	params.Set("radius", strconv.Itoa(req.RadiusMeters))
	if req.Keyword != "" {
		params.Set("keyword", req.Keyword)
	}
	if req.OpenNow != nil && *req.OpenNow {
		params.Set("opennow", "true")
	}
	params.Set("key", c.apiKey)

	var response placesapi.LegacyNearbyResponse
	err := c.legacy.Request(ctx, http.MethodGet, NEARBY_SEARCH_ENDPOINT+"?"+params.Encode(), nil, nil, &response)
	if err == nil {
		err = response.Check()
	}
	c.metrics.UpstreamRequest("nearbysearch", err)
	if err != nil {
		return nil, fmt.Errorf("nearbysearch %q: %w", req.Keyword, err)
	}

	places, err := placesapi.DecodeRawPlaces(response.Results)
	if err != nil {
		return nil, fmt.Errorf("nearbysearch %q: malformed response: %w", req.Keyword, err)
	}
	return places, nil
}

// GetPlace retrieves a place by id. An unknown id surfaces as an *api.APIError with status 404.
func (c *GooglePlacesApiClient) GetPlace(ctx context.Context, placeID string) (*placesapi.NewPlace, error) {
	var response placesapi.NewPlace
	endpoint := fmt.Sprintf(PLACE_ENDPOINT_FORMAT, url.PathEscape(placeID))
	err := c.Request(ctx, http.MethodGet, endpoint, c.headers(DetailsFieldMask), nil, &response)
	c.metrics.UpstreamRequest("details", err)
	if err != nil {
		return nil, fmt.Errorf("get place %s: %w", placeID, err)
	}
	if err := response.Validate(); err != nil {
		return nil, fmt.Errorf("get place %s: %w", placeID, err)
	}
	return &response, nil
}

// GetPhotoMedia resolves a photo resource name ("places/<id>/photos/<ref>") to a short-lived URI.
func (c *GooglePlacesApiClient) GetPhotoMedia(ctx context.Context, photoName string, maxWidthPx int) (*placesapi.PhotoMedia, error) {
	params := url.Values{}
	params.Set("maxWidthPx", strconv.Itoa(maxWidthPx))
	params.Set("skipHttpRedirect", "true")

	var response placesapi.PhotoMedia
	endpoint := fmt.Sprintf(PHOTO_MEDIA_FORMAT, photoName) + "?" + params.Encode()
	err := c.Request(ctx, http.MethodGet, endpoint, map[string]string{API_KEY_HEADER: c.apiKey}, nil, &response)
	c.metrics.UpstreamRequest("photoMedia", err)
	if err != nil {
		return nil, fmt.Errorf("get photo media %s: %w", photoName, err)
	}
	return &response, nil
}
