package ratelimit

import "strings"

// MatchEndpoint resolves a request path and method to its endpoint
// tier. Exact path matches win; configs whose path ends in "/" act as
// prefix matches (so "/api/v1/runs/" covers "/api/v1/runs/{id}").
// Returns nil when no tier applies, which means the global default.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	// The health check is never throttled.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
