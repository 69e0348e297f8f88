package models

// SearchParams is the validated, normalized input of the places search routes.
// Optional values stay nil when the caller omitted them.
type SearchParams struct {
	Keys         []int
	Keywords     []string
	Location     string
	BypassCache  bool
	OpenNow      *bool
	Limit        *int `validate:"omitempty,min=1"`
	RadiusMeters *int `validate:"omitempty,min=1,max=50000"`
}

// PlaceLookupParams is the input of the details and photos routes.
type PlaceLookupParams struct {
	ID          string
	BypassCache bool
	MaxWidthPx  *int `validate:"omitempty,min=1,max=4800"`
}
