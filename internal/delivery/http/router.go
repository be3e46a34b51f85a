package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	verifier domain.TokenVerifier,
	logger *slog.Logger,
	conferenceController *controllers.ConferenceController,
	sessionController *controllers.SessionController,
	speakerController *controllers.SpeakerController,
	wishlistController *controllers.WishlistController,
	profileController *controllers.ProfileController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Conferences
	mux.HandleFunc("POST /conferences", auth(conferenceController.CreateConference))
	mux.HandleFunc("GET /conferences/created", auth(conferenceController.GetConferencesCreated))
	mux.HandleFunc("GET /conferences/announcement", auth(conferenceController.GetAnnouncement))
	mux.HandleFunc("GET /conferences/{conferenceID}", auth(conferenceController.GetConference))
	mux.HandleFunc("POST /conferences/{conferenceID}/registration", auth(conferenceController.Register))
	mux.HandleFunc("DELETE /conferences/{conferenceID}/registration", auth(conferenceController.Unregister))
	mux.HandleFunc("GET /conferences/{conferenceID}/attendees", auth(conferenceController.GetAttendees))
	mux.HandleFunc("GET /conferences/{conferenceID}/featured-speaker", auth(conferenceController.GetFeaturedSpeaker))

	// Sessions
	mux.HandleFunc("POST /conferences/{conferenceID}/sessions", auth(sessionController.CreateSession))
	mux.HandleFunc("GET /conferences/{conferenceID}/sessions", auth(sessionController.GetConferenceSessions))
	mux.HandleFunc("POST /conferences/{conferenceID}/sessions/query", auth(sessionController.QuerySessions))
	mux.HandleFunc("GET /conferences/{conferenceID}/sessions/type/{type}", auth(sessionController.GetSessionsByType))
	mux.HandleFunc("GET /sessions/speaker/{speakerID}", auth(sessionController.GetSessionsBySpeaker))

	// Speakers
	mux.HandleFunc("POST /speakers", auth(speakerController.AddSpeaker))
	mux.HandleFunc("GET /speakers", auth(speakerController.GetSpeakers))
	mux.HandleFunc("GET /conferences/{conferenceID}/speakers", auth(speakerController.GetSpeakersByConference))

	// Wishlist
	mux.HandleFunc("GET /wishlist", auth(wishlistController.GetSessions))
	mux.HandleFunc("POST /wishlist/{sessionID}", auth(wishlistController.AddSession))
	mux.HandleFunc("DELETE /wishlist/{sessionID}", auth(wishlistController.RemoveSession))

	// Profile
	mux.HandleFunc("GET /profile", auth(profileController.GetProfile))
	mux.HandleFunc("PUT /profile", auth(profileController.SaveProfile))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
