package redis

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"places-server/models"
)

const PLACES_SEARCH_KEY_PREFIX_V2 = "places-v2"
const PLACES_NEARBY_KEY_PREFIX_V2 = "places-nearby-v2"
const PLACE_DETAILS_KEY_FORMAT_V1 = "place-details-v1:%s"
const PLACE_PHOTOS_KEY_FORMAT_V1 = "place-photos-v1:%s"

// GenerateCacheKey builds "places-v2:<lat>,<lng>:<keys>" with the keys sorted and
// deduplicated, so the same request in any key order maps to one entry.
func GenerateCacheKey(location string, keys []int) string {
	return fmt.Sprintf("%s:%s:%s", PLACES_SEARCH_KEY_PREFIX_V2, normalizeLocation(location), joinKeys(keys))
}

// GenerateNearbyCacheKey builds "places-nearby-v2:<lat>,<lng>:<keywords>".
func GenerateNearbyCacheKey(location string, keywords []string) string {
	return fmt.Sprintf("%s:%s:%s", PLACES_NEARBY_KEY_PREFIX_V2, normalizeLocation(location), joinKeywords(keywords))
}

// GenerateSearchCacheKey is GenerateCacheKey plus the optional request modifiers.
func GenerateSearchCacheKey(params models.SearchParams) string {
	return GenerateCacheKey(params.Location, params.Keys) + modifiers(params)
}

// GenerateNearbySearchCacheKey is GenerateNearbyCacheKey plus the optional request modifiers.
func GenerateNearbySearchCacheKey(params models.SearchParams) string {
	return GenerateNearbyCacheKey(params.Location, params.Keywords) + modifiers(params)
}

func GeneratePlaceDetailsCacheKey(placeID string) string {
	return fmt.Sprintf(PLACE_DETAILS_KEY_FORMAT_V1, placeID)
}

func GeneratePlacePhotosCacheKey(placeID string) string {
	return fmt.Sprintf(PLACE_PHOTOS_KEY_FORMAT_V1, placeID)
}

// normalizeLocation rounds numeric components to 3 decimals (about 110m) and
// lower-cases the others.
func normalizeLocation(location string) string {
	parts := strings.Split(location, ",")
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if v, err := strconv.ParseFloat(part, 64); err == nil {
			rounded := math.Round(v*1000) / 1000
			if rounded == 0 {
				rounded = 0
			}
			parts[i] = strconv.FormatFloat(rounded, 'f', 3, 64)
			continue
		}
		parts[i] = strings.ToLower(part)
	}
	return strings.Join(parts, ",")
}

func joinKeys(keys []int) string {
	seen := make(map[int]struct{}, len(keys))
	unique := make([]int, 0, len(keys))
	for _, k := range keys {
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, k)
	}
	sort.Ints(unique)

	parts := make([]string, len(unique))
	for i, k := range unique {
		parts[i] = strconv.Itoa(k)
	}
	return strings.Join(parts, ",")
}

func joinKeywords(keywords []string) string {
	seen := make(map[string]struct{}, len(keywords))
	unique := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, k)
	}
	sort.Strings(unique)
	return strings.Join(unique, ",")
}

func modifiers(params models.SearchParams) string {
	var b strings.Builder
	if params.OpenNow != nil {
		fmt.Fprintf(&b, ":open=%t", *params.OpenNow)
	}
	if params.RadiusMeters != nil {
		fmt.Fprintf(&b, ":r=%d", *params.RadiusMeters)
	}
	return b.String()
}
