package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type PlacesRoutes interface {
	SearchPlaces(w http.ResponseWriter, r *http.Request)
	NearbyPlaces(w http.ResponseWriter, r *http.Request)
}

type PlaceDetailsRoutes interface {
	GetPlaceDetail(w http.ResponseWriter, r *http.Request)
}

type PlacePhotosRoutes interface {
	GetPlacePhotos(w http.ResponseWriter, r *http.Request)
	GetPhotoMedia(w http.ResponseWriter, r *http.Request)
}

type HealthRoutes interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type Router struct {
	placesHandler  PlacesRoutes
	detailsHandler PlaceDetailsRoutes
	photosHandler  PlacePhotosRoutes
	healthHandler  HealthRoutes
	metricsHandler http.Handler
	router         *mux.Router
	logger         *zap.Logger
}

// NewRouter creates a router with the app's routes.
func NewRouter(
	placesHandler PlacesRoutes,
	detailsHandler PlaceDetailsRoutes,
	photosHandler PlacePhotosRoutes,
	healthHandler HealthRoutes,
	metricsHandler http.Handler,
	router *mux.Router,
	logger *zap.Logger,
) *Router {
	return &Router{
		placesHandler:  placesHandler,
		detailsHandler: detailsHandler,
		photosHandler:  photosHandler,
		healthHandler:  healthHandler,
		metricsHandler: metricsHandler,
		router:         router,
		logger:         logger.Named("router"),
	}
}

func (r *Router) RegisterRoutes() {
	r.router.Use(RequestID, RequestLogger(r.logger), Recoverer(r.logger))

	places := r.router.PathPrefix("/api/places").Subrouter()
	// expects ?location={lat,lng}&key={categoryKey}...
	places.HandleFunc("/search", r.placesHandler.SearchPlaces).Methods(http.MethodGet)
	// expects ?location={lat,lng}&textQuery={a|b|c} or &type={keyword}
	places.HandleFunc("/nearby", r.placesHandler.NearbyPlaces).Methods(http.MethodGet)
	places.HandleFunc("/details", r.detailsHandler.GetPlaceDetail).Methods(http.MethodGet)
	places.HandleFunc("/photos", r.photosHandler.GetPlacePhotos).Methods(http.MethodGet)
	places.HandleFunc("/photos/media", r.photosHandler.GetPhotoMedia).Methods(http.MethodGet)

	r.router.HandleFunc("/health", r.healthHandler.Health).Methods(http.MethodGet)
	if r.metricsHandler != nil {
		r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)
	}
}
