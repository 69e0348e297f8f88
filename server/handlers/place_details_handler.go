package handlers

import (
	"context"
	"errors"
	"net/http"

	"places-server/models"
	services "places-server/service"

	"go.uber.org/zap"
)

const (
	PLACE_NOT_FOUND_MESSAGE = "Place not found"
	DETAILS_FAILED_MESSAGE  = "Failed to fetch place details"
)

type PlaceDetailsGetter interface {
	GetPlaceDetail(ctx context.Context, params models.PlaceLookupParams) (*models.PlaceDetailResponse, error)
}

type PlaceDetailsHandler struct {
	details PlaceDetailsGetter
	logger  *zap.Logger
}

func NewPlaceDetailsHandler(details PlaceDetailsGetter, logger *zap.Logger) *PlaceDetailsHandler {
	return &PlaceDetailsHandler{
		details: details,
		logger:  logger.Named("place_details_handler"),
	}
}

// GetPlaceDetail handles GET /api/places/details
func (h *PlaceDetailsHandler) GetPlaceDetail(w http.ResponseWriter, r *http.Request) {
	params, err := services.ExtractPlaceLookupParams(r.URL.Query())
	if writeParamError(w, h.logger, err) {
		return
	}

	resp, err := h.details.GetPlaceDetail(r.Context(), params)
	switch {
	case errors.Is(err, services.ErrPlaceNotFound):
		writeError(w, h.logger, http.StatusNotFound, PLACE_NOT_FOUND_MESSAGE)
	case err != nil:
		h.logger.Error("Error fetching place details", zap.String("place_id", params.ID), zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, DETAILS_FAILED_MESSAGE)
	default:
		writeJSON(w, h.logger, http.StatusOK, resp)
	}
}
