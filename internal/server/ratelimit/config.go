package ratelimit

import (
	"net/http"
	"strings"
	"time"

	"github.com/jonathan/ats-scorer/internal/config"
)

// Scored endpoint paths.
const (
	PathScore       = "/calculate_weighted_score"
	PathScoreStream = "/calculate_weighted_score/stream"
	PathKeyphrases  = "/extract_jd_keywords"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig converts the application rate limit settings.
func LoadConfig(cfg config.RateLimitConfig) *Config {
	if !cfg.Enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    cfg.DefaultLimit,
		DefaultWindow:   cfg.DefaultWindow,
		CleanupInterval: cfg.CleanupInterval,
		Whitelist:       ipSet(cfg.Whitelist),
		Blacklist:       ipSet(cfg.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(cfg.ScoreLimit, cfg.ScoreWindow, cfg.ScoreBurst),
	}
}

// DefaultEndpointConfigs returns the limits for endpoints that call model
// providers. Every other route falls back to the default limit, and the
// health check is unlimited.
func DefaultEndpointConfigs(limit int, window time.Duration, burst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: PathScore, Method: http.MethodPost, Limit: limit, Window: window, Burst: burst},
		{Path: PathScoreStream, Method: http.MethodPost, Limit: limit, Window: window, Burst: burst},
		{Path: PathKeyphrases, Method: http.MethodPost, Limit: limit, Window: window, Burst: burst},
	}
}

func ipSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, ip := range list {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
