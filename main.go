package main

import (
	"context"
	"log"

	"places-server/config"
	"places-server/di"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := di.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	container, err := di.NewContainer(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize container", zap.Error(err))
	}
	defer container.Close()

	if err := container.CacheWarmerService.StartPeriodicJob(); err != nil {
		logger.Fatal("Failed to start cache warmer", zap.Error(err))
	}
	defer container.CacheWarmerService.Stop()

	if err := container.PlacesHttpServer.Start(); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
