// Package http exposes the housing services as a JSON API.
package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"campus-housing-backend/internal/security"
)

type Handlers struct {
	Auth      *AuthHandler
	Listings  *ListingHandler
	Bookings  *BookingHandler
	Reviews   *ReviewHandler
	Dashboard *DashboardHandler
}

// NewRouter registers every route and wraps the router with the middleware
// chain and CORS. An empty allowedOrigins allows any origin.
func NewRouter(h Handlers, tokens security.TokenManager, allowedOrigins []string) http.Handler {
	router := mux.NewRouter()
	router.Use(requestID, accessLog, recoverer, NewAuthMiddleware(tokens).Middleware)

	router.HandleFunc("/health", health).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/auth/register", h.Auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.Auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/me", h.Auth.Me).Methods(http.MethodGet)
	api.HandleFunc("/dashboard", h.Dashboard.Get).Methods(http.MethodGet)

	// latest must be registered ahead of {id}
	api.HandleFunc("/listings/latest", h.Listings.Latest).Methods(http.MethodGet)
	api.HandleFunc("/listings", h.Listings.Search).Methods(http.MethodGet)
	api.HandleFunc("/listings", h.Listings.Create).Methods(http.MethodPost)
	api.HandleFunc("/listings/{id}", h.Listings.Get).Methods(http.MethodGet)
	api.HandleFunc("/listings/{id}", h.Listings.Update).Methods(http.MethodPut)
	api.HandleFunc("/listings/{id}", h.Listings.Delete).Methods(http.MethodDelete)

	api.HandleFunc("/listings/{id}/bookings", h.Bookings.Request).Methods(http.MethodPost)
	api.HandleFunc("/bookings/{id}", h.Bookings.Get).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{id}/status/{status}", h.Bookings.UpdateStatus).Methods(http.MethodPost)

	api.HandleFunc("/listings/{id}/reviews", h.Reviews.Create).Methods(http.MethodPost)
	api.HandleFunc("/listings/{id}/reviews", h.Reviews.List).Methods(http.MethodGet)

	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}).Handler(router)
}

func health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
