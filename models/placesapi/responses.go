package placesapi

import (
	"encoding/json"
	"fmt"
)

// SearchTextRequest is the body of POST places:searchText.
type SearchTextRequest struct {
	TextQuery      string        `json:"textQuery"`
	MaxResultCount int           `json:"maxResultCount,omitempty"`
	OpenNow        *bool         `json:"openNow,omitempty"`
	LocationBias   *LocationBias `json:"locationBias,omitempty"`
	LanguageCode   string        `json:"languageCode,omitempty"`
}

type LocationBias struct {
	Circle Circle `json:"circle"`
}

type Circle struct {
	Center LatLng  `json:"center"`
	Radius float64 `json:"radius"`
}

// SearchTextResponse keeps places undecoded so each one is validated on its own.
type SearchTextResponse struct {
	Places []json.RawMessage `json:"places"`
}

// Legacy Nearby Search statuses that carry a usable result list.
const (
	LegacyStatusOK          = "OK"
	LegacyStatusZeroResults = "ZERO_RESULTS"
)

type LegacyNearbyResponse struct {
	Status       string            `json:"status"`
	ErrorMessage string            `json:"error_message,omitempty"`
	Results      []json.RawMessage `json:"results"`
}

// Check returns an error for statuses other than OK and ZERO_RESULTS.
func (r *LegacyNearbyResponse) Check() error {
	switch r.Status {
	case LegacyStatusOK, LegacyStatusZeroResults:
		return nil
	default:
		return fmt.Errorf("legacy nearby search status %s: %s", r.Status, r.ErrorMessage)
	}
}

// PhotoMedia is the response of a photo media request with skipHttpRedirect=true.
type PhotoMedia struct {
	Name     string `json:"name"`
	PhotoURI string `json:"photoUri"`
}
