package services

import (
	"context"
	"errors"
	"fmt"

	"places-server/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CacheWarmerService periodically re-runs the category search for a fixed list of
// locations so popular areas are served from cache.
type CacheWarmerService struct {
	searchService *PlacesSearchService
	schedule      string
	locations     []string
	cron          *cron.Cron
	logger        *zap.Logger
}

// NewCacheWarmerService constructs a warmer. An empty schedule disables the periodic job.
func NewCacheWarmerService(searchService *PlacesSearchService, schedule string, locations []string, logger *zap.Logger) *CacheWarmerService {
	return &CacheWarmerService{
		searchService: searchService,
		schedule:      schedule,
		locations:     locations,
		logger:        logger.Named("cache_warmer_service"),
	}
}

// WithLocations returns an unscheduled copy of w that warms locations instead.
func (w *CacheWarmerService) WithLocations(locations []string) *CacheWarmerService {
	return &CacheWarmerService{
		searchService: w.searchService,
		schedule:      w.schedule,
		locations:     locations,
		logger:        w.logger,
	}
}

// StartPeriodicJob registers WarmAll on the cron schedule and starts the scheduler.
func (w *CacheWarmerService) StartPeriodicJob() error {
	if w.schedule == "" {
		w.logger.Info("No cache warmer schedule configured, periodic job disabled")
		return nil
	}

	c := cron.New()
	if _, err := c.AddFunc(w.schedule, func() {
		w.logger.Info("Running periodic cache warmer job")
		if err := w.WarmAll(context.Background()); err != nil {
			w.logger.Error("WarmAll returned error", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("invalid cache warmer schedule %q: %w", w.schedule, err)
	}
	c.Start()
	w.cron = c
	w.logger.Info("Cache warmer scheduled", zap.String("schedule", w.schedule), zap.Int("locations", len(w.locations)))
	return nil
}

// Stop halts the scheduler and waits for a running job.
func (w *CacheWarmerService) Stop() {
	if w.cron == nil {
		return
	}
	<-w.cron.Stop().Done()
}

// WarmAll refreshes every configured location with all category keys, bypassing
// the cache. Failures are collected and returned together.
func (w *CacheWarmerService) WarmAll(ctx context.Context) error {
	var errs []error
	warmed := 0
	for _, location := range w.locations {
		if !IsValidLocation(location) {
			w.logger.Warn("Skipping invalid warm location", zap.String("location", location))
			errs = append(errs, &InvalidParameterError{Field: LOCATION_QUERY_ARG, Reason: location})
			continue
		}

		resp, err := w.searchService.SearchPlaces(ctx, models.SearchParams{
			Keys:        models.ValidCategoryKeys(),
			Location:    location,
			BypassCache: true,
		})
		if err != nil {
			w.logger.Error("Failed to warm location", zap.String("location", location), zap.Error(err))
			errs = append(errs, fmt.Errorf("warm %s: %w", location, err))
			continue
		}
		warmed++
		w.logger.Info("Warmed location", zap.String("location", location), zap.Int("places", resp.Count))
	}

	w.logger.Info("Cache warmer pass completed", zap.Int("warmed", warmed), zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}
