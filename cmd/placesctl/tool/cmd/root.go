package cmd

import (
	"context"
	"fmt"
	"os"

	"places-server/config"
	"places-server/di"

	"github.com/spf13/cobra"
)

var (
	envOverride   string
	cacheOverride string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "placesctl",
	Short:         "Operations tool for places-server",
	Long:          `placesctl runs the places search pipeline, warms the cache and probes a running server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envOverride, "env", "", "overrides APP_ENV (prod uses the real Google Places API)")
	rootCmd.PersistentFlags().StringVar(&cacheOverride, "cache-backend", "", "overrides CACHE_BACKEND (redis or memory)")
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

// newContainer loads the configuration, applies the persistent flag overrides
// and wires the application.
func newContainer(ctx context.Context) (*di.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if envOverride != "" {
		cfg.Env = envOverride
	}
	switch config.CacheBackend(cacheOverride) {
	case "":
	case config.CacheBackendRedis, config.CacheBackendMemory:
		cfg.Cache.Backend = config.CacheBackend(cacheOverride)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cacheOverride)
	}

	logger, err := di.NewLogger(cfg)
	if err != nil {
		return nil, err
	}
	return di.NewContainer(ctx, cfg, logger)
}
