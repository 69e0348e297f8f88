package placesapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownShape is returned when a place payload matches neither known upstream shape.
var ErrUnknownShape = errors.New("unknown place shape")

// RawPlace is a place as returned by one of the upstream APIs. The only
// implementations are *NewPlace and *LegacyPlace.
type RawPlace interface {
	PlaceID() string
	Coordinates() (LatLng, bool)
	IsOpenNow() *bool
	// PriceOrdinal maps the upstream price level to 1..4. FREE maps to 1 and sets isFree.
	PriceOrdinal() (level *int, isFree bool)
	Title() string
	Address() string
	StarRating() *float64
	RatingCount() *int
	// MatchFields lists the text fields scanned for category keywords, highest priority first.
	MatchFields() []string

	rawPlace()
}

// DecodeRawPlace decodes a single place, choosing the shape from the keys present.
// Each shape validates its own required fields.
func DecodeRawPlace(data json.RawMessage) (RawPlace, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode place: %w", err)
	}

	_, hasID := probe["id"]
	_, hasDisplayName := probe["displayName"]
	_, hasPlaceID := probe["place_id"]

	switch {
	case hasID || hasDisplayName:
		var p NewPlace
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode new place: %w", err)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		return &p, nil
	case hasPlaceID:
		var p LegacyPlace
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("failed to decode legacy place: %w", err)
		}
		if err := p.Validate(); err != nil {
			return nil, err
		}
		return &p, nil
	default:
		return nil, ErrUnknownShape
	}
}

// DecodeRawPlaces decodes every element of a places array.
func DecodeRawPlaces(items []json.RawMessage) ([]RawPlace, error) {
	places := make([]RawPlace, 0, len(items))
	for i, item := range items {
		p, err := DecodeRawPlace(item)
		if err != nil {
			return nil, fmt.Errorf("place %d: %w", i, err)
		}
		places = append(places, p)
	}
	return places, nil
}

func intPtr(v int) *int {
	return &v
}
