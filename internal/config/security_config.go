// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityAccess                      // Access token required
)

// EndpointSecurityConfig maps "METHOD route-template" to the required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Health and auth - Public
	"GET /health":                SecurityPublic,
	"POST /api/v1/auth/register": SecurityPublic,
	"POST /api/v1/auth/login":    SecurityPublic,

	// Browsing - Public
	"GET /api/v1/listings":              SecurityPublic,
	"GET /api/v1/listings/latest":       SecurityPublic,
	"GET /api/v1/listings/{id}":         SecurityPublic,
	"GET /api/v1/listings/{id}/reviews": SecurityPublic,

	// Account - Access Protected
	"GET /api/v1/me":        SecurityAccess,
	"GET /api/v1/dashboard": SecurityAccess,

	// Listings - Access Protected
	"POST /api/v1/listings":        SecurityAccess,
	"PUT /api/v1/listings/{id}":    SecurityAccess,
	"DELETE /api/v1/listings/{id}": SecurityAccess,

	// Bookings - Access Protected
	"POST /api/v1/listings/{id}/bookings":        SecurityAccess,
	"GET /api/v1/bookings/{id}":                  SecurityAccess,
	"POST /api/v1/bookings/{id}/status/{status}": SecurityAccess,

	// Reviews - Access Protected
	"POST /api/v1/listings/{id}/reviews": SecurityAccess,
}

// GetSecurityLevel returns the security level for a given method and route template
func GetSecurityLevel(method, routeTemplate string) SecurityLevel {
	if level, exists := EndpointSecurityConfig[method+" "+routeTemplate]; exists {
		return level
	}
	// Default to highest security for unknown endpoints
	return SecurityAccess
}
