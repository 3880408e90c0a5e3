package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventrsvp/internal/delivery/http/controllers"
	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
func NewRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	rsvpController *controllers.RSVPController,
	userController *controllers.UserController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()

	auth := middleware.RequireAuth(verifier)
	admin := func(perm middleware.Permission, h http.HandlerFunc) http.HandlerFunc {
		return auth(middleware.RequirePermission(perm)(h))
	}

	// Auth
	mux.HandleFunc("POST /api/auth/register", authController.Register)
	mux.HandleFunc("POST /api/auth/login", authController.Login)
	mux.HandleFunc("GET /api/auth/profile", auth(authController.GetProfile))
	mux.HandleFunc("PUT /api/auth/profile", auth(authController.UpdateProfile))

	// Events: browsing is public, management is admin only
	mux.HandleFunc("GET /api/events", eventController.List)
	mux.HandleFunc("GET /api/events/{eventID}", eventController.Get)
	mux.HandleFunc("POST /api/events", admin(middleware.PermManageEvents, eventController.Create))
	mux.HandleFunc("PUT /api/events/{eventID}", admin(middleware.PermManageEvents, eventController.Update))
	mux.HandleFunc("DELETE /api/events/{eventID}", admin(middleware.PermManageEvents, eventController.Delete))
	mux.HandleFunc("GET /api/events/{eventID}/rsvp-summary", admin(middleware.PermViewSummaries, eventController.RSVPSummary))

	// RSVPs
	mux.HandleFunc("POST /api/rsvps", auth(rsvpController.Upsert))
	mux.HandleFunc("GET /api/rsvps/my-rsvps", auth(rsvpController.MyRSVPs))
	mux.HandleFunc("GET /api/rsvps/my-stats", auth(rsvpController.MyStats))
	mux.HandleFunc("GET /api/rsvps/event/{eventID}", auth(rsvpController.GetForEvent))
	mux.HandleFunc("DELETE /api/rsvps/event/{eventID}", auth(rsvpController.Delete))

	// Users (admin)
	mux.HandleFunc("GET /api/users", admin(middleware.PermManageUsers, userController.List))
	mux.HandleFunc("DELETE /api/users/{userID}", admin(middleware.PermManageUsers, userController.Delete))

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONMessage(w, http.StatusOK, "ok", nil)
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
