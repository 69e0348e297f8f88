package models

// LatLng is a WGS84 coordinate.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Amenities are the optional service flags reported by the new Places API.
type Amenities struct {
	Takeout              *bool `json:"takeout,omitempty"`
	Delivery             *bool `json:"delivery,omitempty"`
	DineIn               *bool `json:"dineIn,omitempty"`
	OutdoorSeating       *bool `json:"outdoorSeating,omitempty"`
	Reservable           *bool `json:"reservable,omitempty"`
	ServesVegetarianFood *bool `json:"servesVegetarianFood,omitempty"`
	GoodForChildren      *bool `json:"goodForChildren,omitempty"`
	AllowsDogs           *bool `json:"allowsDogs,omitempty"`
}

// NormalizedPlace is the shape-agnostic place returned by the search routes.
type NormalizedPlace struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Location        LatLng   `json:"location"`
	Category        string   `json:"category"`
	Emoji           string   `json:"emoji"`
	PriceLevel      *int     `json:"priceLevel"`
	IsFree          bool     `json:"isFree,omitempty"`
	OpenNow         *bool    `json:"openNow"`
	Rating          *float64 `json:"rating,omitempty"`
	UserRatingCount *int     `json:"userRatingCount,omitempty"`
	Address         string   `json:"address,omitempty"`
	Amenities
}
