package di

import (
	"context"
	"fmt"
	"path/filepath"

	"places-server/api"
	"places-server/api/googleplaces"
	"places-server/config"
	"places-server/dao/redis"
	"places-server/db"
	"places-server/metrics"
	"places-server/server"
	"places-server/server/handlers"
	services "places-server/service"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Container holds all application dependencies.
type Container struct {
	Config              *config.Config
	Logger              *zap.Logger
	Metrics             *metrics.Metrics
	RedisClient         db.RedisClient
	PlacesDao           *redis.RedisPlacesDAO
	GooglePlacesAPI     googleplaces.GooglePlacesAPI
	PlacesSearchService *services.PlacesSearchService
	PlaceDetailsService *services.PlaceDetailsService
	PlacePhotosService  *services.PlacePhotosService
	CacheWarmerService  *services.CacheWarmerService
	MuxRouter           *mux.Router
	Router              *server.Router
	PlacesHttpServer    *server.PlacesHttpServer

	closers []func() error
}

// NewLogger builds a production logger in prod and a development logger otherwise.
// level overrides the default level when it parses.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProd() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	if lvl, err := zapcore.ParseLevel(cfg.Log.Level); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	return zcfg.Build()
}

// NewContainer initializes and wires up all dependencies.
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	logger.Info("Initializing container",
		zap.String("env", cfg.Env),
		zap.String("cache_backend", string(cfg.Cache.Backend)))

	c := &Container{Config: cfg, Logger: logger}
	m := metrics.New()

	// Initialize cache store
	switch cfg.Cache.Backend {
	case config.CacheBackendMemory:
		logger.Info("Using in-memory cache store")
		c.RedisClient = db.NewMemoryCacheClient()
	default:
		redisInternalClient := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		redisClient, err := db.NewGoRedisClient(ctx, redisInternalClient, logger.Named("redis"))
		if err != nil {
			redisInternalClient.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		c.RedisClient = redisClient
		c.closers = append(c.closers, redisClient.Close)
	}

	placesDao := redis.NewRedisPlacesDAO(c.RedisClient, cfg.Cache.SearchTTL, cfg.Cache.DetailsTTL, cfg.Cache.PhotosTTL)

	// Initialize Google Places API - fixtures outside prod
	var placesAPI googleplaces.GooglePlacesAPI
	if !cfg.IsProd() {
		resourcesDir := filepath.Join(config.BaseDir(), config.RESOURCES_PATH_PREFIX)
		logger.Info("Using mock google places api", zap.String("resources", resourcesDir))
		placesAPI = googleplaces.NewGooglePlacesApiClientMock(resourcesDir)
	} else {
		logger.Info("Using prod google places api")
		clientOpts := []api.ClientOption{
			api.WithTimeout(cfg.Upstream.Timeout),
			api.WithRateLimit(cfg.Upstream.RequestsPerSecond),
			api.WithMaxRetries(cfg.Upstream.MaxRetries),
		}
		httpClient := api.NewHTTPClient(cfg.GooglePlaces.BaseURL, clientOpts...)
		legacyClient := api.NewHTTPClient(cfg.GooglePlaces.LegacyBaseURL, clientOpts...)
		placesAPI = googleplaces.NewGooglePlacesApiClient(httpClient, legacyClient, m, logger)
		placesAPI.SetCredentials(cfg.GooglePlaces.APIKey)
	}

	// Initialize service layer
	normalizer := services.NewPlaceNormalizer(m, logger)
	fetcher := services.NewPlacesFetcher(placesAPI, services.FetcherConfig{
		MaxTermsPerRequest:   cfg.GooglePlaces.MaxTermsPerRequest,
		MaxResultsPerRequest: cfg.GooglePlaces.MaxResultsPerRequest,
		DefaultRadiusMeters:  cfg.GooglePlaces.DefaultRadiusMeters,
		Concurrency:          cfg.Upstream.BatchConcurrency,
	}, logger)
	searchService := services.NewPlacesSearchService(placesDao, fetcher, normalizer, m, logger)
	detailsService := services.NewPlaceDetailsService(placesDao, placesAPI, normalizer, m, logger)
	photosService := services.NewPlacePhotosService(placesDao, placesAPI, normalizer, m, logger)
	warmerService := services.NewCacheWarmerService(searchService, cfg.Warmer.Schedule, cfg.Warmer.Locations, logger)

	// Initialize handlers and router
	muxRouter := mux.NewRouter()
	router := server.NewRouter(
		handlers.NewPlacesHandler(searchService, logger),
		handlers.NewPlaceDetailsHandler(detailsService, logger),
		handlers.NewPlacePhotosHandler(photosService, logger),
		handlers.NewHealthHandler(placesDao, logger),
		m.Handler(),
		muxRouter,
		logger,
	)

	c.Metrics = m
	c.PlacesDao = placesDao
	c.GooglePlacesAPI = placesAPI
	c.PlacesSearchService = searchService
	c.PlaceDetailsService = detailsService
	c.PlacePhotosService = photosService
	c.CacheWarmerService = warmerService
	c.MuxRouter = muxRouter
	c.Router = router
	c.PlacesHttpServer = server.NewPlacesHttpServer(router, muxRouter, cfg.Server.Port, cfg.Server.ShutdownTimeout, logger)
	return c, nil
}

// Close releases the cache connection.
func (c *Container) Close() error {
	var firstErr error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
