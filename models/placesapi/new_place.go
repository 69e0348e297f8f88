package placesapi

import (
	"errors"
	"strings"
)

// Price levels of the new Places API.
const (
	PriceLevelUnspecified   = "PRICE_LEVEL_UNSPECIFIED"
	PriceLevelFree          = "PRICE_LEVEL_FREE"
	PriceLevelInexpensive   = "PRICE_LEVEL_INEXPENSIVE"
	PriceLevelModerate      = "PRICE_LEVEL_MODERATE"
	PriceLevelExpensive     = "PRICE_LEVEL_EXPENSIVE"
	PriceLevelVeryExpensive = "PRICE_LEVEL_VERY_EXPENSIVE"
)

const placeResourcePrefix = "places/"

type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type LocalizedText struct {
	Text         string `json:"text"`
	LanguageCode string `json:"languageCode,omitempty"`
}

type OpeningHours struct {
	OpenNow             *bool    `json:"openNow,omitempty"`
	WeekdayDescriptions []string `json:"weekdayDescriptions,omitempty"`
}

type AuthorAttribution struct {
	DisplayName string `json:"displayName"`
	URI         string `json:"uri,omitempty"`
	PhotoURI    string `json:"photoUri,omitempty"`
}

type Photo struct {
	Name               string              `json:"name"`
	WidthPx            int                 `json:"widthPx"`
	HeightPx           int                 `json:"heightPx"`
	AuthorAttributions []AuthorAttribution `json:"authorAttributions,omitempty"`
}

// NewPlace is a place in the shape of the Places API (New).
type NewPlace struct {
	ID                       string         `json:"id"`
	Name                     string         `json:"name,omitempty"`
	DisplayName              *LocalizedText `json:"displayName,omitempty"`
	PrimaryType              string         `json:"primaryType,omitempty"`
	PrimaryTypeDisplayName   *LocalizedText `json:"primaryTypeDisplayName,omitempty"`
	Types                    []string       `json:"types,omitempty"`
	FormattedAddress         string         `json:"formattedAddress,omitempty"`
	Location                 *LatLng        `json:"location,omitempty"`
	PriceLevel               string         `json:"priceLevel,omitempty"`
	Rating                   *float64       `json:"rating,omitempty"`
	UserRatingCount          *int           `json:"userRatingCount,omitempty"`
	CurrentOpeningHours      *OpeningHours  `json:"currentOpeningHours,omitempty"`
	RegularOpeningHours      *OpeningHours  `json:"regularOpeningHours,omitempty"`
	NationalPhoneNumber      string         `json:"nationalPhoneNumber,omitempty"`
	InternationalPhoneNumber string         `json:"internationalPhoneNumber,omitempty"`
	WebsiteURI               string         `json:"websiteUri,omitempty"`
	GoogleMapsURI            string         `json:"googleMapsUri,omitempty"`
	EditorialSummary         *LocalizedText `json:"editorialSummary,omitempty"`
	Photos                   []Photo        `json:"photos,omitempty"`

	Takeout              *bool `json:"takeout,omitempty"`
	Delivery             *bool `json:"delivery,omitempty"`
	DineIn               *bool `json:"dineIn,omitempty"`
	OutdoorSeating       *bool `json:"outdoorSeating,omitempty"`
	Reservable           *bool `json:"reservable,omitempty"`
	ServesVegetarianFood *bool `json:"servesVegetarianFood,omitempty"`
	GoodForChildren      *bool `json:"goodForChildren,omitempty"`
	AllowsDogs           *bool `json:"allowsDogs,omitempty"`
}

func (*NewPlace) rawPlace() {}

// Validate checks the fields every new-shape place must carry.
func (p *NewPlace) Validate() error {
	if p.PlaceID() == "" {
		return errors.New("new place: missing id")
	}
	return nil
}

// PlaceID returns id, or the id part of the "places/<id>" resource name.
func (p *NewPlace) PlaceID() string {
	if p.ID != "" {
		return p.ID
	}
	return strings.TrimPrefix(p.Name, placeResourcePrefix)
}

func (p *NewPlace) Coordinates() (LatLng, bool) {
	if p.Location == nil {
		return LatLng{}, false
	}
	return *p.Location, true
}

// IsOpenNow prefers the current hours over the regular schedule.
func (p *NewPlace) IsOpenNow() *bool {
	if p.CurrentOpeningHours != nil && p.CurrentOpeningHours.OpenNow != nil {
		return p.CurrentOpeningHours.OpenNow
	}
	if p.RegularOpeningHours != nil {
		return p.RegularOpeningHours.OpenNow
	}
	return nil
}

func (p *NewPlace) PriceOrdinal() (*int, bool) {
	switch p.PriceLevel {
	case PriceLevelFree:
		return intPtr(1), true
	case PriceLevelInexpensive:
		return intPtr(1), false
	case PriceLevelModerate:
		return intPtr(2), false
	case PriceLevelExpensive:
		return intPtr(3), false
	case PriceLevelVeryExpensive:
		return intPtr(4), false
	default:
		return nil, false
	}
}

func (p *NewPlace) Title() string {
	if p.DisplayName != nil && p.DisplayName.Text != "" {
		return p.DisplayName.Text
	}
	return ""
}

func (p *NewPlace) Address() string { return p.FormattedAddress }

func (p *NewPlace) StarRating() *float64 { return p.Rating }

func (p *NewPlace) RatingCount() *int { return p.UserRatingCount }

func (p *NewPlace) MatchFields() []string {
	fields := make([]string, 0, len(p.Types)+5)
	fields = append(fields, p.PrimaryType)
	fields = append(fields, p.Types...)
	if p.PrimaryTypeDisplayName != nil {
		fields = append(fields, p.PrimaryTypeDisplayName.Text)
	}
	fields = append(fields, p.Title(), p.Name, p.FormattedAddress)
	return fields
}

// WeekdayHours returns the weekday descriptions of the best available schedule.
func (p *NewPlace) WeekdayHours() []string {
	if p.CurrentOpeningHours != nil && len(p.CurrentOpeningHours.WeekdayDescriptions) > 0 {
		return p.CurrentOpeningHours.WeekdayDescriptions
	}
	if p.RegularOpeningHours != nil {
		return p.RegularOpeningHours.WeekdayDescriptions
	}
	return nil
}
