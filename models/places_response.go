package models

// PlacesResponse is the success envelope of the search routes.
type PlacesResponse struct {
	Data     []NormalizedPlace `json:"data"`
	Count    int               `json:"count"`
	CacheHit bool              `json:"cacheHit"`
}

// PlaceDetailResponse is the success envelope of the details route.
type PlaceDetailResponse struct {
	Data     PlaceDetail `json:"data"`
	CacheHit bool        `json:"cacheHit"`
}

// PlacePhotosResponse is the success envelope of the photos route.
type PlacePhotosResponse struct {
	Data     []PlacePhoto `json:"data"`
	Count    int          `json:"count"`
	CacheHit bool         `json:"cacheHit"`
}

// ErrorResponse is the failure envelope shared by every route.
type ErrorResponse struct {
	Error string `json:"error"`
}
