package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

const dateLayout = "2006-01-02"

// CreateConferenceRequest is the request body for POST /conferences.
// Dates use the YYYY-MM-DD layout.
type CreateConferenceRequest struct {
	Name         string   `json:"name"`
	City         string   `json:"city"`
	Topics       []string `json:"topics"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	MaxAttendees int      `json:"max_attendees"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateConferenceRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.StartDate != "" {
		if _, err := time.Parse(dateLayout, c.StartDate); err != nil {
			errs = append(errs, "start_date must be YYYY-MM-DD")
		}
	}
	if c.EndDate != "" {
		if _, err := time.Parse(dateLayout, c.EndDate); err != nil {
			errs = append(errs, "end_date must be YYYY-MM-DD")
		}
	}
	if c.MaxAttendees < 0 {
		errs = append(errs, "max_attendees must not be negative")
	}
	return errs
}

// ConferenceSuccessResponse is the success response envelope for conference endpoints.
type ConferenceSuccessResponse struct {
	Data  *domain.Conference `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// RegistrationResponse reports the outcome of a registration mutation.
// Registered reflects the resulting state, not whether a row changed.
type RegistrationResponse struct {
	ConferenceID string `json:"conference_id"`
	Registered   bool   `json:"registered"`
}

// AnnouncementResponse carries the cached announcement text; empty when no
// announcement is published.
type AnnouncementResponse struct {
	Announcement string `json:"announcement"`
}

// FeaturedSpeakerResponse carries the cached featured-speaker announcement
// for a conference; empty when nothing has been published yet.
type FeaturedSpeakerResponse struct {
	ConferenceID string `json:"conference_id"`
	Announcement string `json:"announcement"`
}

type ConferenceController struct {
	Logger        *slog.Logger
	Service       domain.ConferenceService
	Announcements domain.AnnouncementService
	Featured      domain.FeaturedSpeakerService
}

func NewConferenceController(
	logger *slog.Logger,
	svc domain.ConferenceService,
	announcements domain.AnnouncementService,
	featured domain.FeaturedSpeakerService,
) *ConferenceController {
	return &ConferenceController{
		Logger:        logger,
		Service:       svc,
		Announcements: announcements,
		Featured:      featured,
	}
}

// CreateConference godoc
// @Summary Create a conference
// @Description Create a conference owned by the authenticated user. Missing city and topics get defaults; seats_available starts at max_attendees. A confirmation email is sent asynchronously.
// @Tags conferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conference body CreateConferenceRequest true "Conference data"
// @Success 201 {object} controllers.ConferenceSuccessResponse "data contains the created conference"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conferences [post]
func (c *ConferenceController) CreateConference(w http.ResponseWriter, r *http.Request) {
	var req CreateConferenceRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	conf := &domain.Conference{
		Name:         req.Name,
		City:         req.City,
		Topics:       req.Topics,
		MaxAttendees: req.MaxAttendees,
	}
	if req.StartDate != "" {
		conf.StartDate, _ = time.Parse(dateLayout, req.StartDate)
	}
	if req.EndDate != "" {
		conf.EndDate, _ = time.Parse(dateLayout, req.EndDate)
	}

	created, err := c.Service.CreateConference(r.Context(), userID, conf)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// GetConference godoc
// @Summary Get a conference by ID
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Success 200 {object} controllers.ConferenceSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID} [get]
func (c *ConferenceController) GetConference(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if conferenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing conferenceID")
		return
	}
	conf, err := c.Service.GetConference(r.Context(), conferenceID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conf)
}

// GetConferencesCreated godoc
// @Summary List conferences created by the authenticated user
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the caller's conferences"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /conferences/created [get]
func (c *ConferenceController) GetConferencesCreated(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	conferences, err := c.Service.GetConferencesCreated(r.Context(), userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, conferences)
}

// Register godoc
// @Summary Register the authenticated user for a conference
// @Description Registration is idempotent: registering twice leaves a single registration and still succeeds.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Success 200 {object} helpers.APIResponse "data contains the registration state"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/registration [post]
func (c *ConferenceController) Register(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if _, err := c.Service.RegisterForConference(r.Context(), conferenceID, userID); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RegistrationResponse{ConferenceID: conferenceID, Registered: true})
}

// Unregister godoc
// @Summary Remove the authenticated user's registration
// @Description Unregistering when not registered is a no-op and still succeeds.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Success 200 {object} helpers.APIResponse "data contains the registration state"
// @Router /conferences/{conferenceID}/registration [delete]
func (c *ConferenceController) Unregister(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if _, err := c.Service.UnregisterFromConference(r.Context(), conferenceID, userID); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RegistrationResponse{ConferenceID: conferenceID, Registered: false})
}

// GetAttendees godoc
// @Summary List profiles registered for a conference
// @Description Only the conference organizer may list attendees.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Success 200 {object} helpers.APIResponse "data contains the registered profiles"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/attendees [get]
func (c *ConferenceController) GetAttendees(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	attendees, err := c.Service.GetConferenceAttendees(r.Context(), conferenceID, userID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendees)
}

// GetAnnouncement godoc
// @Summary Get the nearly-sold-out conference announcement
// @Description Reads the cached announcement; data.announcement is empty when there is nothing to announce.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the announcement"
// @Router /conferences/announcement [get]
func (c *ConferenceController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	announcement, err := c.Announcements.GetAnnouncement(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, AnnouncementResponse{Announcement: announcement})
}

// GetFeaturedSpeaker godoc
// @Summary Get the featured-speaker announcement for a conference
// @Description Cache read only; data.announcement is empty when no announcement has been published for the conference yet.
// @Tags conferences
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Success 200 {object} helpers.APIResponse "data contains the featured-speaker announcement"
// @Router /conferences/{conferenceID}/featured-speaker [get]
func (c *ConferenceController) GetFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if conferenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing conferenceID")
		return
	}
	announcement, err := c.Featured.GetFeaturedSpeaker(r.Context(), conferenceID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, FeaturedSpeakerResponse{ConferenceID: conferenceID, Announcement: announcement})
}
