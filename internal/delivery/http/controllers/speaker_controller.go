package controllers

import (
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

// AddSpeakerRequest is the request body for POST /speakers.
type AddSpeakerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Bio   string `json:"bio"`
}

// Validate implements Validator.
func (s AddSpeakerRequest) Validate() []string {
	var errs []string
	if s.Name == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

// SpeakerSuccessResponse is the success response envelope for a single speaker.
type SpeakerSuccessResponse struct {
	Data  *domain.Speaker   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SpeakerListResponse is the paginated speaker list payload.
type SpeakerListResponse struct {
	Speakers   []*domain.Speaker      `json:"speakers"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type SpeakerController struct {
	Logger  *slog.Logger
	Service domain.SpeakerService
}

func NewSpeakerController(logger *slog.Logger, svc domain.SpeakerService) *SpeakerController {
	return &SpeakerController{
		Logger:  logger,
		Service: svc,
	}
}

// AddSpeaker godoc
// @Summary Create a speaker
// @Description Speakers exist independently of sessions; sessions reference them by ID.
// @Tags speakers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param speaker body AddSpeakerRequest true "Speaker data"
// @Success 201 {object} controllers.SpeakerSuccessResponse "data contains the created speaker"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /speakers [post]
func (c *SpeakerController) AddSpeaker(w http.ResponseWriter, r *http.Request) {
	var req AddSpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	created, err := c.Service.AddSpeaker(r.Context(), &domain.Speaker{
		Name:  req.Name,
		Email: req.Email,
		Bio:   req.Bio,
	})
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// GetSpeakers godoc
// @Summary List speakers
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains speakers and pagination metadata"
// @Router /speakers [get]
func (c *SpeakerController) GetSpeakers(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	speakers, total, err := c.Service.GetSpeakers(r.Context(), params)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SpeakerListResponse{
		Speakers:   speakers,
		Pagination: helpers.NewPaginationMeta(params.Page, params.PageSize, total),
	})
}

// GetSpeakersByConference godoc
// @Summary List the distinct speakers presenting at a conference
// @Description Dangling speaker references in sessions are skipped.
// @Tags speakers
// @Produce json
// @Security BearerAuth
// @Param conferenceID path string true "Conference ID"
// @Success 200 {object} helpers.APIResponse "data contains the conference's speakers"
// @Router /conferences/{conferenceID}/speakers [get]
func (c *SpeakerController) GetSpeakersByConference(w http.ResponseWriter, r *http.Request) {
	conferenceID := r.PathValue("conferenceID")
	if conferenceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing conferenceID")
		return
	}
	speakers, err := c.Service.GetSpeakersByConference(r.Context(), conferenceID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteDomainError(w, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, speakers)
}
