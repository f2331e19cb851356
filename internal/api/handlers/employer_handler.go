package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/talentgrid/talentgrid-be/internal/api/respond"
	"github.com/talentgrid/talentgrid-be/internal/auth"
	"github.com/talentgrid/talentgrid-be/internal/models"
	"github.com/talentgrid/talentgrid-be/internal/services"
)

// EmployerHandler handles HTTP requests for employer profiles.
type EmployerHandler struct {
	service  services.EmployerServiceProvider
	userSvc  services.UserServiceProvider
	eventSvc services.EventServiceProvider
}

// NewEmployerHandler creates a new EmployerHandler.
func NewEmployerHandler(service services.EmployerServiceProvider, userSvc services.UserServiceProvider, eventSvc services.EventServiceProvider) *EmployerHandler {
	return &EmployerHandler{service: service, userSvc: userSvc, eventSvc: eventSvc}
}

// ownProfile resolves the path employer ID and verifies the acting identity
// owns it. Every mutating employer-scoped route goes through here.
func ownProfile(w http.ResponseWriter, r *http.Request, param string) (*auth.Identity, int64, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing auth token")
		return nil, 0, false
	}
	id, ok := pathID(w, r, param)
	if !ok {
		return nil, 0, false
	}
	if identity.Employer == nil || identity.Employer.ID != id {
		respond.Error(w, http.StatusForbidden, "forbidden")
		return nil, 0, false
	}
	return identity, id, true
}

// Create handles employer profile creation for the acting account.
func (h *EmployerHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing auth token")
		return
	}

	var payload EmployerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := payload.Validate(); len(errs) > 0 {
		respond.ValidationFailed(w, errs)
		return
	}

	actor, err := h.userSvc.GetUserByID(identity.UserID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	profile, err := h.service.CreateProfile(actor, payload.toInput())
	if err != nil {
		log.Warn().Err(err).Int64("user_id", actor.ID).Msg("Failed to create employer profile")
		writeServiceError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, profile)
}

// Get handles the public profile read, jobs included.
func (h *EmployerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	profile, err := h.service.GetProfile(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, profile)
}

// Update handles ownership-gated profile updates.
func (h *EmployerHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := ownProfile(w, r, "id")
	if !ok {
		return
	}

	var payload EmployerPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := payload.Validate(); len(errs) > 0 {
		respond.ValidationFailed(w, errs)
		return
	}

	profile, err := h.service.UpdateProfile(id, identity.UserID, payload.toInput())
	if err != nil {
		log.Error().Err(err).Int64("employer_id", id).Msg("Failed to update employer profile")
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, profile)
}

// Delete handles ownership-gated profile deletion.
func (h *EmployerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, id, ok := ownProfile(w, r, "id")
	if !ok {
		return
	}

	if err := h.service.DeleteProfile(id, identity.UserID); err != nil {
		log.Error().Err(err).Int64("employer_id", id).Msg("Failed to delete employer profile")
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats handles the aggregate dashboard counts.
func (h *EmployerHandler) Stats(w http.ResponseWriter, r *http.Request) {
	_, id, ok := ownProfile(w, r, "id")
	if !ok {
		return
	}

	stats, err := h.service.GetStats(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, stats)
}

// Activity returns the employer's recent activity log.
func (h *EmployerHandler) Activity(w http.ResponseWriter, r *http.Request) {
	_, id, ok := ownProfile(w, r, "id")
	if !ok {
		return
	}

	events, err := h.eventSvc.GetRecentEvents(id, 50)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if events == nil {
		events = []models.Event{}
	}
	respond.JSON(w, http.StatusOK, events)
}
