package routes

import (
	"net/http"
	"strings"

	httpSwagger "github.com/swaggo/http-swagger"

	"WAYFARE_BACK-END/internal/config"
	"WAYFARE_BACK-END/internal/handlers"
	"WAYFARE_BACK-END/internal/middleware"
)

// Handlers bundles everything SetupRoutes needs to wire
type Handlers struct {
	Auth           *handlers.AuthHandler
	GoogleAuth     *handlers.GoogleAuthHandler
	ForgotPassword *handlers.ForgotPasswordHandler
	Profile        *handlers.ProfileHandler
	Itineraries    *handlers.ItinerariesHandler
	Bookmarks      *handlers.BookmarksHandler
	Health         *handlers.HealthHandler
}

// SetupRoutes configures all application routes
func SetupRoutes(h Handlers, cfg *config.Config) {
	jwtCfg := &cfg.JWT

	// Health check routes
	http.HandleFunc("/healthz", h.Health.HealthCheck)
	http.HandleFunc("/livez", h.Health.LivenessCheck)
	http.HandleFunc("/readyz", h.Health.ReadinessCheck)

	// Authentication routes
	http.HandleFunc("/api/auth/register", h.Auth.Register)
	http.HandleFunc("/api/auth/login", h.Auth.Login)
	http.HandleFunc("/api/auth/profile", middleware.AuthMiddleware(h.Auth.GetProfile, jwtCfg))
	http.HandleFunc("/api/auth/google/login", h.GoogleAuth.GoogleLogin)
	http.HandleFunc("/api/auth/google/callback", h.GoogleAuth.GoogleCallback)
	http.HandleFunc("/api/auth/forgot-password", h.ForgotPassword.ForgotPassword)
	http.HandleFunc("/api/auth/verify-otp", h.ForgotPassword.VerifyOTP)
	http.HandleFunc("/api/auth/reset-password", h.ForgotPassword.ResetPassword)

	// Travel profile
	http.HandleFunc("/api/profile", middleware.AuthMiddleware(h.Profile.Handle, jwtCfg))

	// Itineraries. The bare path serves the collection; the trailing-slash
	// pattern catches /{id} and its sub-resources.
	http.HandleFunc("/api/itineraries", middleware.AuthMiddleware(h.Itineraries.Itineraries, jwtCfg))
	http.HandleFunc("/api/itineraries/", middleware.AuthMiddleware(itinerarySubtree(h), jwtCfg))

	// Bookmarks
	http.HandleFunc("/api/bookmarks", middleware.AuthMiddleware(h.Bookmarks.ListBookmarks, jwtCfg))

	// Swagger UI
	http.HandleFunc("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// Root route
	http.HandleFunc("/", rootHandler)
}

// itinerarySubtree routes /{id}/bookmark to the bookmarks handler and
// everything else under /{id} to the itineraries handler.
func itinerarySubtree(h Handlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(strings.TrimSuffix(r.URL.Path, "/"), "/bookmark") {
			h.Bookmarks.ToggleBookmark(w, r)
			return
		}
		h.Itineraries.ItineraryByID(w, r)
	}
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Wayfare backend is running."))
}
