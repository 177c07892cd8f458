package config

import (
	"strconv"
	"time"
)

// JWTSecret returns the token signing secret.
func JWTSecret() []byte {
	return []byte(getEnv("JWT_SECRET", "supersecret"))
}

// TokenTTL returns the access-token lifetime. Defaults to one day.
func TokenTTL() time.Duration {
	hours, err := strconv.Atoi(getEnv("TOKEN_TTL_HOURS", "24"))
	if err != nil || hours <= 0 {
		hours = 24
	}
	return time.Duration(hours) * time.Hour
}

// RoutingBaseURL returns the base URL of the OSRM-compatible provider used
// by the alternative-routes proxy.
func RoutingBaseURL() string {
	return getEnv("ROUTING_BASE_URL", "https://router.project-osrm.org")
}

// OverpassURL returns the Overpass API endpoint used for bus stop discovery.
func OverpassURL() string {
	return getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
}

// ListenAddr returns the address the HTTP server binds to.
func ListenAddr() string {
	return "0.0.0.0:" + getEnv("PORT", "8080")
}
