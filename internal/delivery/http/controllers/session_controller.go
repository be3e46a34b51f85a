package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

const timeLayout = "15:04"

// CreateSessionRequest is the request body for POST /conferences/{conferenceID}/sessions.
// start_date uses YYYY-MM-DD and start_time the 24h HH:MM layout.
type CreateSessionRequest struct {
	Name        string `json:"name"`
	Highlights  string `json:"highlights"`
	SessionType string `json:"session_type"`
	Duration    int    `json:"duration"`
	StartDate   string `json:"start_date"`
	StartTime   string `json:"start_time"`
	SpeakerID   string `json:"speaker_id"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (c CreateSessionRequest) Validate() []string {
	var errs []string
	if c.Name == "" {
		errs = append(errs, "name is required")
	}
	if c.SessionType == "" {
		errs = append(errs, "session_type is required")
	}
	if c.Duration <= 0 {
		errs = append(errs, "duration must be a positive number of minutes")
	}
	if c.StartDate != "" {
		if _, err := time.Parse(dateLayout, c.StartDate); err != nil {
			errs = append(errs, "start_date must be YYYY-MM-DD")
		}
	}
	if c.StartTime != "" {
		// Stored start_time orders lexicographically, so only the
		// zero-padded form is accepted.
		t, err := time.Parse(timeLayout, c.StartTime)
		if err != nil || t.Format(timeLayout) != c.StartTime {
			errs = append(errs, "start_time must be zero-padded HH:MM (24h)")
		}
	}
	return errs
}

// QuerySessionsRequest is the request body for POST /conferences/{conferenceID}/sessions/query.
// Any number of predicates may be combined; supported operators are
// EQ, LT, LTE, GT, GTE and NEQ.
type QuerySessionsRequest struct {
	Filters []domain.Predicate `json:"filters"`
}

// SessionSuccessResponse is the success response envelope for a single session.
type SessionSuccessResponse struct {
	Data  *domain.Session   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SessionListSuccessResponse is the success response envelope for session lists.
type SessionListSuccessResponse struct {
	Data  []*domain.Session `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type SessionController struct {
	Logger  *slog.Logger
	Service domain.SessionService
}

func NewSessionController(logger *slog.Logger, svc domain.SessionService) *SessionController {
	return &SessionController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateSession godoc
// @Summary Create a session in a conference
// @Description Only the conference organizer may create sessions. Creation triggers an asynchronous featured-speaker recomputation for the conference; the response never waits on it.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Param session body CreateSessionRequest true "Session data"
// @Success 201 {object} controllers.SessionSuccessResponse "data contains the created session"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/sessions [post]
func (c *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	var req CreateSessionRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	session := &domain.Session{
		Name:        req.Name,
		Highlights:  req.Highlights,
		SessionType: req.SessionType,
		Duration:    req.Duration,
		StartTime:   req.StartTime,
		SpeakerID:   req.SpeakerID,
	}
	if req.StartDate != "" {
		session.StartDate, _ = time.Parse(dateLayout, req.StartDate)
	}

	created, err := c.Service.CreateSession(r.Context(), conferenceID, userID, session)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// QuerySessions godoc
// @Summary Query a conference's sessions with compound predicates
// @Description Combines any number of equality and inequality predicates over name, session_type, duration, start_date, start_time and speaker_id. Results are equivalent to applying every predicate conjunctively.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Param query body QuerySessionsRequest true "Predicate list"
// @Success 200 {object} controllers.SessionListSuccessResponse "data contains the matching sessions"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request (unknown field or operator)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/sessions/query [post]
func (c *SessionController) QuerySessions(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	var req QuerySessionsRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	sessions, err := c.Service.QuerySessions(r.Context(), conferenceID, req.Filters)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// GetConferenceSessions godoc
// @Summary List all sessions of a conference
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/sessions [get]
func (c *SessionController) GetConferenceSessions(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	sessions, err := c.Service.GetConferenceSessions(r.Context(), conferenceID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// GetSessionsByType godoc
// @Summary List a conference's sessions of a given type
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Param type path string true "Session type (e.g. lecture, workshop, keynote)"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /conferences/{conferenceID}/sessions/type/{type} [get]
func (c *SessionController) GetSessionsByType(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	sessionType := r.PathValue("type")
	if sessionType == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing session type")
		return
	}
	sessions, err := c.Service.GetSessionsByType(r.Context(), conferenceID, sessionType)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}

// GetSessionsBySpeaker godoc
// @Summary List a speaker's sessions across all conferences
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param speakerID path string true "Speaker ID"
// @Success 200 {object} controllers.SessionListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /sessions/speaker/{speakerID} [get]
func (c *SessionController) GetSessionsBySpeaker(w http.ResponseWriter, r *http.Request) {
	speakerID := r.PathValue("speakerID")
	sessions, err := c.Service.GetSessionsBySpeaker(r.Context(), speakerID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, sessions)
}
