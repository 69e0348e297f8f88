package handlers

import (
	"context"
	"net/http"

	"places-server/models"
	services "places-server/service"

	"go.uber.org/zap"
)

const (
	SEARCH_FAILED_MESSAGE = "An error occurred while processing your request"
	NEARBY_FAILED_MESSAGE = "Failed to fetch nearby places"
)

// PlacesSearcher runs the cached search pipeline.
type PlacesSearcher interface {
	SearchPlaces(ctx context.Context, params models.SearchParams) (*models.PlacesResponse, error)
	NearbyPlaces(ctx context.Context, params models.SearchParams) (*models.PlacesResponse, error)
}

type PlacesHandler struct {
	searcher PlacesSearcher
	logger   *zap.Logger
}

func NewPlacesHandler(searcher PlacesSearcher, logger *zap.Logger) *PlacesHandler {
	return &PlacesHandler{
		searcher: searcher,
		logger:   logger.Named("places_handler"),
	}
}

// SearchPlaces handles GET /api/places/search
func (h *PlacesHandler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	params, err := services.ExtractSearchParams(r.URL.Query())
	if writeParamError(w, h.logger, err) {
		return
	}

	resp, err := h.searcher.SearchPlaces(r.Context(), params)
	if err != nil {
		h.logger.Error("Error searching places", zap.String("location", params.Location), zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, SEARCH_FAILED_MESSAGE)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}

// NearbyPlaces handles GET /api/places/nearby
func (h *PlacesHandler) NearbyPlaces(w http.ResponseWriter, r *http.Request) {
	params, err := services.ExtractNearbyParams(r.URL.Query())
	if writeParamError(w, h.logger, err) {
		return
	}

	resp, err := h.searcher.NearbyPlaces(r.Context(), params)
	if err != nil {
		h.logger.Error("Error fetching nearby places", zap.String("location", params.Location), zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, NEARBY_FAILED_MESSAGE)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, resp)
}
