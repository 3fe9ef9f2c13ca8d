package auth

import "strings"

// PublicEndpoints defines endpoints that don't require authentication.
// These endpoints are accessible without a valid JWT token.
//
// Justification for each public endpoint:
//   - /health, /ready, /live: orchestration health checks
//   - /metrics: Prometheus scraping
//   - /auth/register: account signup
//   - /auth/token: token issue (can't require a token to get a token)
//   - /auth/password-reset, /auth/password-reset/confirm: reset flow for
//     users who cannot log in
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/auth/register",
	"/auth/token",
	"/auth/password-reset",
	"/auth/password-reset/confirm",
}

// IsPublicEndpoint checks if a given path is a public endpoint.
// Public endpoints can be accessed without authentication.
//
// Matching logic:
//   - Endpoints ending with '/' use prefix matching
//   - Endpoints without '/' require an exact match, a trailing slash, or
//     query params only (so /health matches /health?x=1 but not /healthcheck)
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}

		if path == endpoint {
			return true
		}
		if path == endpoint+"/" {
			return true
		}
		if strings.HasPrefix(path, endpoint+"?") {
			return true
		}
	}
	return false
}
