package models

// PlaceDetail is the normalized payload of the place details route.
type PlaceDetail struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Address          string   `json:"address,omitempty"`
	Location         LatLng   `json:"location"`
	PhoneNumber      string   `json:"phoneNumber,omitempty"`
	WebsiteURI       string   `json:"websiteUri,omitempty"`
	GoogleMapsURI    string   `json:"googleMapsUri,omitempty"`
	PrimaryType      string   `json:"primaryType,omitempty"`
	Types            []string `json:"types,omitempty"`
	Rating           *float64 `json:"rating,omitempty"`
	UserRatingCount  *int     `json:"userRatingCount,omitempty"`
	PriceLevel       *int     `json:"priceLevel"`
	IsFree           bool     `json:"isFree,omitempty"`
	OpenNow          *bool    `json:"openNow"`
	WeekdayHours     []string `json:"weekdayHours,omitempty"`
	EditorialSummary string   `json:"editorialSummary,omitempty"`
	Amenities
}
