// Package config provides configuration management for the proposal service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Engine   EngineConfig
	Catalog  CatalogConfig
	Audit    AuditConfig
	Database DatabaseConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port       string
	RateLimit  int
	RateWindow time.Duration
	// RequestTimeout bounds one API request end to end.
	RequestTimeout time.Duration
	CORSOrigins    []string
}

// EngineConfig holds quote orchestration configuration.
type EngineConfig struct {
	// Debounce is how long an identical in-flight request waits before
	// triggering its own computation.
	Debounce time.Duration
	// Timeout bounds one quote computation.
	Timeout time.Duration
}

// CatalogConfig holds the product lookup cache configuration.
type CatalogConfig struct {
	CacheSize int
	CacheTTL  time.Duration
}

// AuditConfig holds the async quote audit recorder configuration.
type AuditConfig struct {
	Enabled      bool
	BufferSize   int
	NumWorkers   int
	WriteTimeout time.Duration
}

// DatabaseConfig holds MongoDB configuration.
type DatabaseConfig struct {
	URI          string
	DatabaseName string
	LogsTTL      time.Duration
	Enabled      bool
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			RateLimit:      getEnvInt("RATE_LIMIT", 100),
			RateWindow:     getEnvDuration("RATE_WINDOW", time.Minute),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
			CORSOrigins:    parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
		},
		Engine: EngineConfig{
			Debounce: getEnvDuration("QUOTE_DEBOUNCE", 300*time.Millisecond),
			Timeout:  getEnvDuration("QUOTE_TIMEOUT", 10*time.Second),
		},
		Catalog: CatalogConfig{
			CacheSize: getEnvInt("CATALOG_CACHE_SIZE", 1000),
			CacheTTL:  getEnvDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		},
		Audit: AuditConfig{
			Enabled:      getEnvBool("AUDIT_ENABLED", true),
			BufferSize:   getEnvInt("AUDIT_BUFFER_SIZE", 1000),
			NumWorkers:   getEnvInt("AUDIT_WORKERS", 2),
			WriteTimeout: getEnvDuration("AUDIT_WRITE_TIMEOUT", 5*time.Second),
		},
		Database: DatabaseConfig{
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "proposal_service"),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			Enabled:                        getEnvBool("MONGODB_ENABLED", false),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts)+len(defaults))
	result = append(result, defaults...)
	for _, p := range parts {
		if origin := strings.TrimSpace(p); origin != "" {
			result = append(result, origin)
		}
	}
	return result
}
