package services

import (
	"net/url"
	"strconv"
	"strings"

	"places-server/metrics"
	"places-server/models"
	"places-server/models/placesapi"

	"go.uber.org/zap"
)

// Reasons a place is dropped during normalization.
const (
	DropNoMatch      = "no_match"
	DropNoCategory   = "no_category"
	DropNoCoordinate = "no_coordinates"
)

const PHOTO_MEDIA_ROUTE = "/api/places/photos/media"

// PlaceNormalizer maps upstream places into the service's response types.
type PlaceNormalizer struct {
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewPlaceNormalizer(m *metrics.Metrics, logger *zap.Logger) *PlaceNormalizer {
	return &PlaceNormalizer{
		metrics: m,
		logger:  logger.Named("place_normalizer"),
	}
}

// MatchTerm scans fields in priority order and, within each field, terms in
// request order. The first case-insensitive substring hit wins.
func MatchTerm(fields []string, terms []string) (string, bool) {
	lowered := make([]string, len(terms))
	for i, t := range terms {
		lowered[i] = strings.ToLower(strings.TrimSpace(t))
	}
	for _, field := range fields {
		field = strings.ToLower(field)
		if field == "" {
			continue
		}
		for i, term := range lowered {
			if term != "" && strings.Contains(field, term) {
				return terms[i], true
			}
		}
	}
	return "", false
}

// Normalize converts one raw place. The second result is false when the place is
// dropped: it matches no term, or the matched term has no category with an emoji.
func (n *PlaceNormalizer) Normalize(raw placesapi.RawPlace, terms []string) (models.NormalizedPlace, bool) {
	term, ok := MatchTerm(raw.MatchFields(), terms)
	if !ok {
		n.metrics.DroppedPlace(DropNoMatch)
		return models.NormalizedPlace{}, false
	}

	category, ok := models.CategoryForTerm(term)
	if !ok || category.Emoji == "" {
		n.logger.Warn("Matched term has no configured category emoji, dropping place",
			zap.String("place_id", raw.PlaceID()),
			zap.String("term", term))
		n.metrics.DroppedPlace(DropNoCategory)
		return models.NormalizedPlace{}, false
	}

	coords, ok := raw.Coordinates()
	if !ok {
		n.logger.Debug("Place has no coordinates, dropping", zap.String("place_id", raw.PlaceID()))
		n.metrics.DroppedPlace(DropNoCoordinate)
		return models.NormalizedPlace{}, false
	}

	priceLevel, isFree := raw.PriceOrdinal()
	place := models.NormalizedPlace{
		ID:              raw.PlaceID(),
		Name:            raw.Title(),
		Location:        models.LatLng{Latitude: coords.Latitude, Longitude: coords.Longitude},
		Category:        category.Name,
		Emoji:           category.Emoji,
		PriceLevel:      priceLevel,
		IsFree:          isFree,
		OpenNow:         raw.IsOpenNow(),
		Rating:          raw.StarRating(),
		UserRatingCount: raw.RatingCount(),
		Address:         raw.Address(),
	}
	if p, isNew := raw.(*placesapi.NewPlace); isNew {
		place.Amenities = amenitiesOf(p)
	}
	return place, true
}

// NormalizeAll normalizes raws in order, skipping dropped places.
func (n *PlaceNormalizer) NormalizeAll(raws []placesapi.RawPlace, terms []string) []models.NormalizedPlace {
	places := make([]models.NormalizedPlace, 0, len(raws))
	for _, raw := range raws {
		if place, ok := n.Normalize(raw, terms); ok {
			places = append(places, place)
		}
	}
	return places
}

// NormalizeDetail maps a details payload. It applies the same price convention as Normalize.
func (n *PlaceNormalizer) NormalizeDetail(p *placesapi.NewPlace) models.PlaceDetail {
	priceLevel, isFree := p.PriceOrdinal()
	detail := models.PlaceDetail{
		ID:              p.PlaceID(),
		Name:            p.Title(),
		Address:         p.Address(),
		PhoneNumber:     firstNonEmpty(p.InternationalPhoneNumber, p.NationalPhoneNumber),
		WebsiteURI:      p.WebsiteURI,
		GoogleMapsURI:   p.GoogleMapsURI,
		PrimaryType:     p.PrimaryType,
		Types:           p.Types,
		Rating:          p.Rating,
		UserRatingCount: p.UserRatingCount,
		PriceLevel:      priceLevel,
		IsFree:          isFree,
		OpenNow:         p.IsOpenNow(),
		WeekdayHours:    p.WeekdayHours(),
		Amenities:       amenitiesOf(p),
	}
	if coords, ok := p.Coordinates(); ok {
		detail.Location = models.LatLng{Latitude: coords.Latitude, Longitude: coords.Longitude}
	}
	if p.EditorialSummary != nil {
		detail.EditorialSummary = p.EditorialSummary.Text
	}
	return detail
}

// NormalizePhotos maps the photo references of a place. MediaURL is left empty;
// see PhotoMediaURL.
func (n *PlaceNormalizer) NormalizePhotos(p *placesapi.NewPlace) []models.PlacePhoto {
	photos := make([]models.PlacePhoto, 0, len(p.Photos))
	for _, ph := range p.Photos {
		var attributions []string
		for _, a := range ph.AuthorAttributions {
			if a.DisplayName != "" {
				attributions = append(attributions, a.DisplayName)
			}
		}
		photos = append(photos, models.PlacePhoto{
			Name:         ph.Name,
			WidthPx:      ph.WidthPx,
			HeightPx:     ph.HeightPx,
			Attributions: attributions,
		})
	}
	return photos
}

// PhotoMediaURL points at this server's media redirect route for a photo.
func PhotoMediaURL(photoName string, maxWidthPx int) string {
	vals := url.Values{}
	vals.Set(NAME_QUERY_ARG, photoName)
	vals.Set(MAX_WIDTH_PX_QUERY_ARG, strconv.Itoa(maxWidthPx))
	return PHOTO_MEDIA_ROUTE + "?" + vals.Encode()
}

func amenitiesOf(p *placesapi.NewPlace) models.Amenities {
	return models.Amenities{
		Takeout:              p.Takeout,
		Delivery:             p.Delivery,
		DineIn:               p.DineIn,
		OutdoorSeating:       p.OutdoorSeating,
		Reservable:           p.Reservable,
		ServesVegetarianFood: p.ServesVegetarianFood,
		GoodForChildren:      p.GoodForChildren,
		AllowsDogs:           p.AllowsDogs,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
