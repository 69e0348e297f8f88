package services

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
	"unicode"

	"places-server/models"

	"github.com/go-playground/validator/v10"
)

const (
	KEY_QUERY_ARG          = "key"
	LOCATION_QUERY_ARG     = "location"
	BYPASS_CACHE_QUERY_ARG = "bypassCache"
	LIMIT_QUERY_ARG        = "limit"
	OPEN_NOW_QUERY_ARG     = "openNow"
	RADIUS_METERS_ARG      = "radiusMeters"
	RADIUS_ARG             = "radius"
	TEXT_QUERY_ARG         = "textQuery"
	TYPE_QUERY_ARG         = "type"
	ID_QUERY_ARG           = "id"
	NAME_QUERY_ARG         = "name"
	MAX_WIDTH_PX_QUERY_ARG = "maxWidthPx"

	MAX_LIMIT = 60
)

var validate = validator.New()

// IsValidLocation accepts "a,b" where both sides are non-empty and at least one is numeric.
func IsValidLocation(location string) bool {
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return false
	}
	lat, lng := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if lat == "" || lng == "" {
		return false
	}
	_, latOK := parseFinite(lat)
	_, lngOK := parseFinite(lng)
	return latOK || lngOK
}

// ParseCoordinates returns the numeric latitude and longitude of location, if both are numeric.
func ParseCoordinates(location string) (lat, lng float64, ok bool) {
	parts := strings.Split(location, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, latOK := parseFinite(strings.TrimSpace(parts[0]))
	lng, lngOK := parseFinite(strings.TrimSpace(parts[1]))
	if !latOK || !lngOK {
		return 0, 0, false
	}
	return lat, lng, true
}

// parseFinite rejects NaN and infinities, which ParseFloat accepts.
func parseFinite(s string) (float64, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// ExtractSearchParams reads the category search route parameters.
func ExtractSearchParams(vals url.Values) (models.SearchParams, error) {
	params, err := extractCommon(vals)
	if err != nil {
		return params, err
	}

	params.RadiusMeters, err = parseOptionalInt(vals, RADIUS_METERS_ARG)
	if err != nil {
		return params, err
	}
	params.Keys = ResolveKeys(parseKeys(vals[KEY_QUERY_ARG]))

	return params, validateParams(params)
}

// ExtractNearbyParams reads the keyword-driven nearby route parameters. textQuery
// wins over type; with neither, every category term is searched.
func ExtractNearbyParams(vals url.Values) (models.SearchParams, error) {
	params, err := extractCommon(vals)
	if err != nil {
		return params, err
	}

	radiusArg := RADIUS_METERS_ARG
	if vals.Get(RADIUS_METERS_ARG) == "" {
		radiusArg = RADIUS_ARG
	}
	params.RadiusMeters, err = parseOptionalInt(vals, radiusArg)
	if err != nil {
		return params, err
	}

	switch {
	case strings.TrimSpace(vals.Get(TEXT_QUERY_ARG)) != "":
		params.Keywords = SplitTextQuery(vals.Get(TEXT_QUERY_ARG))
	case strings.TrimSpace(vals.Get(TYPE_QUERY_ARG)) != "":
		params.Keywords = []string{strings.TrimSpace(vals.Get(TYPE_QUERY_ARG))}
	}
	if len(params.Keywords) == 0 {
		params.Keywords = TermsFromKeys(nil)
	}

	return params, validateParams(params)
}

// ExtractPlaceLookupParams reads the details and photos route parameters.
func ExtractPlaceLookupParams(vals url.Values) (models.PlaceLookupParams, error) {
	params := models.PlaceLookupParams{
		ID:          strings.TrimSpace(vals.Get(ID_QUERY_ARG)),
		BypassCache: ParseBypassCache(vals),
	}
	if params.ID == "" {
		return params, &MissingParameterError{Field: ID_QUERY_ARG}
	}

	var err error
	params.MaxWidthPx, err = parseOptionalInt(vals, MAX_WIDTH_PX_QUERY_ARG)
	if err != nil {
		return params, err
	}
	return params, validateParams(params)
}

// ParseBypassCache is true when the flag is present bare, empty, or "true" in any case.
func ParseBypassCache(vals url.Values) bool {
	raw, present := vals[BYPASS_CACHE_QUERY_ARG]
	if !present {
		return false
	}
	if len(raw) == 0 {
		return true
	}
	v := strings.TrimSpace(raw[0])
	return v == "" || strings.EqualFold(v, "true")
}

func extractCommon(vals url.Values) (models.SearchParams, error) {
	var params models.SearchParams

	location := strings.TrimSpace(vals.Get(LOCATION_QUERY_ARG))
	if location == "" {
		return params, &MissingParameterError{Field: LOCATION_QUERY_ARG}
	}
	if !IsValidLocation(location) {
		return params, &InvalidParameterError{Field: LOCATION_QUERY_ARG, Reason: "expected \"lat,lng\""}
	}
	params.Location = location
	params.BypassCache = ParseBypassCache(vals)

	var err error
	if params.Limit, err = parseOptionalInt(vals, LIMIT_QUERY_ARG); err != nil {
		return params, err
	}
	if params.Limit != nil && *params.Limit > MAX_LIMIT {
		*params.Limit = MAX_LIMIT
	}
	if params.OpenNow, err = parseOptionalBool(vals, OPEN_NOW_QUERY_ARG); err != nil {
		return params, err
	}
	return params, nil
}

// parseKeys drops values that are not integers; range checks happen in ResolveKeys.
func parseKeys(raw []string) []int {
	keys := make([]int, 0, len(raw))
	for _, r := range raw {
		if k, err := strconv.Atoi(strings.TrimSpace(r)); err == nil {
			keys = append(keys, k)
		}
	}
	return keys
}

func parseOptionalInt(vals url.Values, name string) (*int, error) {
	raw := strings.TrimSpace(vals.Get(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &InvalidParameterError{Field: name, Reason: "expected an integer"}
	}
	return &v, nil
}

// parseOptionalBool treats a bare flag as true.
func parseOptionalBool(vals url.Values, name string) (*bool, error) {
	raw, present := vals[name]
	if !present {
		return nil, nil
	}
	v := true
	if len(raw) > 0 && strings.TrimSpace(raw[0]) != "" {
		parsed, err := strconv.ParseBool(strings.TrimSpace(raw[0]))
		if err != nil {
			return nil, &InvalidParameterError{Field: name, Reason: "expected a boolean"}
		}
		v = parsed
	}
	return &v, nil
}

func validateParams(params interface{}) error {
	err := validate.Struct(params)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &InvalidParameterError{Field: lowerFirst(verrs[0].Field()), Reason: verrs[0].Tag()}
	}
	return err
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

// ExtractPhotoMediaParams reads the photo media route parameters. The name is
// checked by PlacePhotosService.ResolvePhotoMedia.
func ExtractPhotoMediaParams(vals url.Values) (name string, maxWidthPx *int, err error) {
	maxWidthPx, err = parseOptionalInt(vals, MAX_WIDTH_PX_QUERY_ARG)
	return vals.Get(NAME_QUERY_ARG), maxWidthPx, err
}
