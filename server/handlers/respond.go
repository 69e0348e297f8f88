package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"places-server/models"
	services "places-server/service"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Error encoding response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	writeJSON(w, logger, status, models.ErrorResponse{Error: message})
}

// writeParamError answers 400 when err is a request parameter error.
func writeParamError(w http.ResponseWriter, logger *zap.Logger, err error) bool {
	var missing *services.MissingParameterError
	var invalid *services.InvalidParameterError
	if errors.As(err, &missing) || errors.As(err, &invalid) {
		writeError(w, logger, http.StatusBadRequest, err.Error())
		return true
	}
	return false
}
