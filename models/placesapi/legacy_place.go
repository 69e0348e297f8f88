package placesapi

import "errors"

type LegacyLatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type LegacyGeometry struct {
	Location *LegacyLatLng `json:"location,omitempty"`
}

type LegacyOpeningHours struct {
	OpenNow *bool `json:"open_now,omitempty"`
}

// LegacyPlace is a place in the shape of the legacy Nearby Search API.
type LegacyPlace struct {
	ID               string              `json:"place_id"`
	Name             string              `json:"name"`
	Geometry         *LegacyGeometry     `json:"geometry,omitempty"`
	Types            []string            `json:"types,omitempty"`
	Vicinity         string              `json:"vicinity,omitempty"`
	FormattedAddress string              `json:"formatted_address,omitempty"`
	PriceLevel       *int                `json:"price_level,omitempty"`
	Rating           *float64            `json:"rating,omitempty"`
	UserRatingsTotal *int                `json:"user_ratings_total,omitempty"`
	OpeningHours     *LegacyOpeningHours `json:"opening_hours,omitempty"`
	BusinessStatus   string              `json:"business_status,omitempty"`
}

func (*LegacyPlace) rawPlace() {}

// Validate checks the fields every legacy place must carry.
func (p *LegacyPlace) Validate() error {
	if p.ID == "" {
		return errors.New("legacy place: missing place_id")
	}
	return nil
}

func (p *LegacyPlace) PlaceID() string { return p.ID }

func (p *LegacyPlace) Coordinates() (LatLng, bool) {
	if p.Geometry == nil || p.Geometry.Location == nil {
		return LatLng{}, false
	}
	return LatLng{Latitude: p.Geometry.Location.Lat, Longitude: p.Geometry.Location.Lng}, true
}

func (p *LegacyPlace) IsOpenNow() *bool {
	if p.OpeningHours == nil {
		return nil
	}
	return p.OpeningHours.OpenNow
}

// PriceOrdinal keeps 1..4 as is and lifts the legacy 0 (free) to 1.
func (p *LegacyPlace) PriceOrdinal() (*int, bool) {
	if p.PriceLevel == nil {
		return nil, false
	}
	switch level := *p.PriceLevel; {
	case level == 0:
		return intPtr(1), true
	case level >= 1 && level <= 4:
		return intPtr(level), false
	default:
		return nil, false
	}
}

func (p *LegacyPlace) Title() string { return p.Name }

func (p *LegacyPlace) Address() string {
	if p.FormattedAddress != "" {
		return p.FormattedAddress
	}
	return p.Vicinity
}

func (p *LegacyPlace) StarRating() *float64 { return p.Rating }

func (p *LegacyPlace) RatingCount() *int { return p.UserRatingsTotal }

func (p *LegacyPlace) MatchFields() []string {
	fields := make([]string, 0, len(p.Types)+2)
	fields = append(fields, p.Types...)
	return append(fields, p.Name, p.Address())
}
