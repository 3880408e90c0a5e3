package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/delivery/http/middleware"
	"eventrsvp/internal/domain"
)

// UpsertRSVPRequest is the request body for POST /rsvps.
type UpsertRSVPRequest struct {
	EventID string `json:"event_id"`
	Status  string `json:"status"`
}

// Validate implements Validator.
func (req UpsertRSVPRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(req.EventID) == "" {
		errs = append(errs, "event_id is required")
	} else if !uuidRegex.MatchString(req.EventID) {
		errs = append(errs, "invalid event_id")
	}
	if req.Status == "" {
		errs = append(errs, "status is required")
	} else if !domain.ValidStatus(req.Status) {
		errs = append(errs, fmt.Sprintf("status must be one of: %s", strings.Join(domain.StatusDisplayOrder, ", ")))
	}
	return errs
}

type RSVPController struct {
	Logger  *slog.Logger
	Service domain.RSVPService
}

func NewRSVPController(logger *slog.Logger, svc domain.RSVPService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// Upsert godoc
// @Summary Create or update the caller's RSVP for an event
// @Description Creates an RSVP if the caller has none for the event, else updates its status. Returns 201 on create and 200 on update.
// @Tags rsvps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpsertRSVPRequest true "Event and status"
// @Success 200 {object} helpers.APIResponse "data contains the RSVP (updated)"
// @Success 201 {object} helpers.APIResponse "data contains the RSVP (created)"
// @Failure 400 {object} helpers.APIResponse "invalid status or event already ended"
// @Failure 401 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Router /rsvps [post]
func (c *RSVPController) Upsert(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req UpsertRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	rsvp, created, err := c.Service.Upsert(r.Context(), claims.UserID, req.EventID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			helpers.WriteJSONError(w, http.StatusNotFound, "event not found")
		case errors.Is(err, domain.ErrEventPast):
			helpers.WriteJSONError(w, http.StatusBadRequest, "cannot RSVP to a past event")
		case errors.Is(err, domain.ErrInvalidInput):
			helpers.WriteJSONError(w, http.StatusBadRequest, err.Error())
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	if created {
		helpers.WriteJSONMessage(w, http.StatusCreated, "RSVP created successfully", rsvp)
		return
	}
	helpers.WriteJSONMessage(w, http.StatusOK, "RSVP updated successfully", rsvp)
}

// GetForEvent godoc
// @Summary Get the caller's RSVP for an event
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse "data contains the RSVP with event details"
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Router /rsvps/event/{eventID} [get]
func (c *RSVPController) GetForEvent(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	rsvp, err := c.Service.GetForEvent(r.Context(), claims.UserID, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrRSVPNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, "RSVP not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rsvp)
}

// Delete godoc
// @Summary Delete the caller's RSVP for an event
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} helpers.APIResponse
// @Failure 400 {object} helpers.APIResponse
// @Failure 401 {object} helpers.APIResponse
// @Failure 404 {object} helpers.APIResponse
// @Router /rsvps/event/{eventID} [delete]
func (c *RSVPController) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	eventID := r.PathValue("eventID")
	if !uuidRegex.MatchString(eventID) {
		helpers.WriteJSONError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	if err := c.Service.Delete(r.Context(), claims.UserID, eventID); err != nil {
		if errors.Is(err, domain.ErrRSVPNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, "RSVP not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	helpers.WriteJSONMessage(w, http.StatusOK, "RSVP deleted successfully", nil)
}

// MyRSVPsResponse is the data payload for GET /rsvps/my-rsvps.
type MyRSVPsResponse struct {
	RSVPs      []*domain.RSVPWithEvent `json:"rsvps"`
	Pagination helpers.PaginationMeta  `json:"pagination"`
}

// MyRSVPs godoc
// @Summary List the caller's RSVPs
// @Description Lists the caller's RSVPs joined with event details, most recent event first. Each entry is annotated past or upcoming.
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Success 200 {object} helpers.APIResponse "data contains rsvps and pagination"
// @Failure 401 {object} helpers.APIResponse
// @Router /rsvps/my-rsvps [get]
func (c *RSVPController) MyRSVPs(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	p := helpers.ParsePagination(r)
	rsvps, err := c.Service.ListForUser(r.Context(), claims.UserID, p)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, MyRSVPsResponse{
		RSVPs:      rsvps,
		Pagination: helpers.NewPaginationMeta(p, len(rsvps)),
	})
}

// MyStats godoc
// @Summary Get the caller's RSVP counts for upcoming events
// @Tags rsvps
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains per-status counts"
// @Failure 401 {object} helpers.APIResponse
// @Router /rsvps/my-stats [get]
func (c *RSVPController) MyStats(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	stats, err := c.Service.UserStats(r.Context(), claims.UserID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, stats)
}
