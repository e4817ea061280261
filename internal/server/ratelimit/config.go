package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is one throttling tier: a path pattern (exact, or a
// prefix when it ends in "/"), method, window limit and burst capacity.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int // defaults to Limit when 0
}

// DefaultEndpointConfigs returns the per-endpoint tiers. Everything not
// listed here uses the global default limit; the health check is
// exempted in the matcher.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Generation runs the full pipeline and may write to the database.
		{Path: "/api/v1/generate", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},

		// Token issuance involves a bcrypt comparison.
		{Path: "/api/v1/auth/token", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
	}
}

// LoadConfig reads the limiter configuration from environment
// variables, falling back to permissive defaults.
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       envIPSet("RATE_LIMIT_WHITELIST"),
		Blacklist:       envIPSet("RATE_LIMIT_BLACKLIST"),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

func envBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// envIPSet parses a comma-separated address list into a lookup set.
func envIPSet(key string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(os.Getenv(key), ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
