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
	PHOTOS_FAILED_MESSAGE   = "Failed to fetch place photos"
	PHOTO_NOT_FOUND_MESSAGE = "Photo not found"
	PHOTO_FAILED_MESSAGE    = "Failed to fetch photo"
)

type PlacePhotosProvider interface {
	GetPlacePhotos(ctx context.Context, params models.PlaceLookupParams) (*models.PlacePhotosResponse, error)
	ResolvePhotoMedia(ctx context.Context, photoName string, maxWidthPx *int) (string, error)
}

type PlacePhotosHandler struct {
	photos PlacePhotosProvider
	logger *zap.Logger
}

func NewPlacePhotosHandler(photos PlacePhotosProvider, logger *zap.Logger) *PlacePhotosHandler {
	return &PlacePhotosHandler{
		photos: photos,
		logger: logger.Named("place_photos_handler"),
	}
}

// GetPlacePhotos handles GET /api/places/photos
func (h *PlacePhotosHandler) GetPlacePhotos(w http.ResponseWriter, r *http.Request) {
	params, err := services.ExtractPlaceLookupParams(r.URL.Query())
	if writeParamError(w, h.logger, err) {
		return
	}

	resp, err := h.photos.GetPlacePhotos(r.Context(), params)
	switch {
	case errors.Is(err, services.ErrPlaceNotFound):
		writeError(w, h.logger, http.StatusNotFound, PLACE_NOT_FOUND_MESSAGE)
	case err != nil:
		h.logger.Error("Error fetching place photos", zap.String("place_id", params.ID), zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, PHOTOS_FAILED_MESSAGE)
	default:
		writeJSON(w, h.logger, http.StatusOK, resp)
	}
}

// GetPhotoMedia handles GET /api/places/photos/media by redirecting to the
// upstream photo URI.
func (h *PlacePhotosHandler) GetPhotoMedia(w http.ResponseWriter, r *http.Request) {
	name, maxWidthPx, err := services.ExtractPhotoMediaParams(r.URL.Query())
	if writeParamError(w, h.logger, err) {
		return
	}

	uri, err := h.photos.ResolvePhotoMedia(r.Context(), name, maxWidthPx)
	if writeParamError(w, h.logger, err) {
		return
	}
	switch {
	case errors.Is(err, services.ErrPlaceNotFound):
		writeError(w, h.logger, http.StatusNotFound, PHOTO_NOT_FOUND_MESSAGE)
	case err != nil:
		h.logger.Error("Error resolving photo media", zap.String("name", name), zap.Error(err))
		writeError(w, h.logger, http.StatusInternalServerError, PHOTO_FAILED_MESSAGE)
	default:
		http.Redirect(w, r, uri, http.StatusFound)
	}
}
