package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Cache TTLs
const PLACES_SEARCH_CACHE_TTL = 7 * 24 * time.Hour
const PLACE_DETAILS_CACHE_TTL = 7 * 24 * time.Hour
const PLACE_PHOTOS_CACHE_TTL = 7 * 24 * time.Hour

// Google Places API
const GOOGLE_PLACES_ENDPOINT_BASE_V1 = "https://places.googleapis.com/v1"
const GOOGLE_MAPS_LEGACY_ENDPOINT_BASE = "https://maps.googleapis.com/maps/api/place"
const GOOGLE_PLACES_MAX_TERMS_PER_REQUEST = 10
const GOOGLE_PLACES_MAX_RESULTS_PER_REQUEST = 20
const GOOGLE_PLACES_DEFAULT_RADIUS_METERS = 5000

// Upstream client behaviour
const UPSTREAM_REQUESTS_PER_SECOND = 10
const UPSTREAM_MAX_RETRIES = 2
const UPSTREAM_REQUEST_TIMEOUT = 10 * time.Second
const UPSTREAM_BATCH_CONCURRENCY = 4

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const SEARCH_TEXT_RESPONSE_RESOURCE = "search_text_response.json"
const LEGACY_NEARBY_RESPONSE_RESOURCE = "legacy_nearby_response.json"
const PLACE_DETAILS_RESPONSE_RESOURCE = "place_details_response.json"

const ENV_PROD = "prod"

// CacheBackend selects the key-value store behind the cache adapter.
type CacheBackend string

const (
	CacheBackendRedis  CacheBackend = "redis"
	CacheBackendMemory CacheBackend = "memory"
)

// Config holds application configuration
type Config struct {
	Env          string
	Server       ServerConfig
	Redis        RedisConfig
	Cache        CacheConfig
	GooglePlaces GooglePlacesConfig
	Upstream     UpstreamConfig
	Warmer       WarmerConfig
	Log          LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            string
	ShutdownTimeout time.Duration
}

// RedisConfig holds the redis connection settings
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// CacheConfig holds the cache backend and per-payload TTLs
type CacheConfig struct {
	Backend    CacheBackend
	SearchTTL  time.Duration
	DetailsTTL time.Duration
	PhotosTTL  time.Duration
}

// GooglePlacesConfig holds upstream API settings
type GooglePlacesConfig struct {
	APIKey               string
	BaseURL              string
	LegacyBaseURL        string
	MaxTermsPerRequest   int
	MaxResultsPerRequest int
	DefaultRadiusMeters  int
}

// UpstreamConfig controls the shared HTTP client used for upstream calls
type UpstreamConfig struct {
	RequestsPerSecond int
	MaxRetries        int
	Timeout           time.Duration
	BatchConcurrency  int
}

// WarmerConfig controls the periodic cache warming job. An empty Schedule disables it.
type WarmerConfig struct {
	Schedule  string
	Locations []string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level string
}

// IsProd reports whether the real upstream clients should be wired.
func (c *Config) IsProd() bool {
	return c.Env == ENV_PROD
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	_ = godotenv.Load()

	backend := CacheBackend(getEnv("CACHE_BACKEND", string(CacheBackendRedis)))
	if backend != CacheBackendRedis && backend != CacheBackendMemory {
		backend = CacheBackendRedis
	}

	cfg := &Config{
		Env: getEnv("APP_ENV", ENV_PROD),
		Server: ServerConfig{
			Port:            getEnv("APP_PORT", "8080"),
			ShutdownTimeout: getEnvAsDuration("APP_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDR", REDIS_DB_ADDRESS),
			Password: getEnv("REDIS_PASSWORD", REDIS_DB_PASSWORD),
			DB:       getEnvAsInt("REDIS_DB", REDIS_DB),
		},
		Cache: CacheConfig{
			Backend:    backend,
			SearchTTL:  getEnvAsDuration("PLACES_SEARCH_CACHE_TTL", PLACES_SEARCH_CACHE_TTL),
			DetailsTTL: getEnvAsDuration("PLACE_DETAILS_CACHE_TTL", PLACE_DETAILS_CACHE_TTL),
			PhotosTTL:  getEnvAsDuration("PLACE_PHOTOS_CACHE_TTL", PLACE_PHOTOS_CACHE_TTL),
		},
		GooglePlaces: GooglePlacesConfig{
			APIKey:               getEnv("GOOGLE_PLACES_API_KEY", ""),
			BaseURL:              getEnv("GOOGLE_PLACES_BASE_URL", GOOGLE_PLACES_ENDPOINT_BASE_V1),
			LegacyBaseURL:        getEnv("GOOGLE_MAPS_LEGACY_BASE_URL", GOOGLE_MAPS_LEGACY_ENDPOINT_BASE),
			MaxTermsPerRequest:   getEnvAsInt("GOOGLE_PLACES_MAX_TERMS_PER_REQUEST", GOOGLE_PLACES_MAX_TERMS_PER_REQUEST),
			MaxResultsPerRequest: getEnvAsInt("GOOGLE_PLACES_MAX_RESULTS_PER_REQUEST", GOOGLE_PLACES_MAX_RESULTS_PER_REQUEST),
			DefaultRadiusMeters:  getEnvAsInt("GOOGLE_PLACES_DEFAULT_RADIUS_METERS", GOOGLE_PLACES_DEFAULT_RADIUS_METERS),
		},
		Upstream: UpstreamConfig{
			RequestsPerSecond: getEnvAsInt("UPSTREAM_REQUESTS_PER_SECOND", UPSTREAM_REQUESTS_PER_SECOND),
			MaxRetries:        getEnvAsInt("UPSTREAM_MAX_RETRIES", UPSTREAM_MAX_RETRIES),
			Timeout:           getEnvAsDuration("UPSTREAM_REQUEST_TIMEOUT", UPSTREAM_REQUEST_TIMEOUT),
			BatchConcurrency:  getEnvAsInt("UPSTREAM_BATCH_CONCURRENCY", UPSTREAM_BATCH_CONCURRENCY),
		},
		Warmer: WarmerConfig{
			Schedule:  getEnv("CACHE_WARMER_SCHEDULE", ""),
			Locations: getEnvAsSlice("CACHE_WARMER_LOCATIONS", ";"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsSlice(key, sep string) []string {
	value := os.Getenv(key)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, sep)
	var result []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
