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

// JobSeekerHandler handles the job seeker side: profile creation, applying,
// and managing own applications.
type JobSeekerHandler struct {
	service services.JobSeekerServiceProvider
	userSvc services.UserServiceProvider
	appSvc  services.ApplicationServiceProvider
}

// NewJobSeekerHandler creates a new JobSeekerHandler.
func NewJobSeekerHandler(service services.JobSeekerServiceProvider, userSvc services.UserServiceProvider, appSvc services.ApplicationServiceProvider) *JobSeekerHandler {
	return &JobSeekerHandler{service: service, userSvc: userSvc, appSvc: appSvc}
}

func seekerIdentity(w http.ResponseWriter, r *http.Request) (*auth.Identity, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing auth token")
		return nil, false
	}
	return identity, true
}

// CreateProfile creates the seeker profile for the acting account.
func (h *JobSeekerHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := seekerIdentity(w, r)
	if !ok {
		return
	}

	var payload JobSeekerPayload
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

	profile, err := h.service.CreateProfile(actor, services.JobSeekerInput{
		Headline:  payload.Headline,
		ResumeURL: payload.ResumeURL,
		Skills:    payload.Skills,
	})
	if err != nil {
		log.Warn().Err(err).Int64("user_id", actor.ID).Msg("Failed to create job seeker profile")
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, profile)
}

// Apply submits an application to a job.
func (h *JobSeekerHandler) Apply(w http.ResponseWriter, r *http.Request) {
	identity, ok := seekerIdentity(w, r)
	if !ok {
		return
	}
	jobID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var payload ApplyPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := payload.Validate(); len(errs) > 0 {
		respond.ValidationFailed(w, errs)
		return
	}

	app, err := h.appSvc.Apply(identity.JobSeeker.ID, jobID, payload.toInputs())
	if err != nil {
		log.Warn().Err(err).Int64("job_id", jobID).Msg("Failed to submit application")
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, app)
}

// MyApplications lists the seeker's own applications.
func (h *JobSeekerHandler) MyApplications(w http.ResponseWriter, r *http.Request) {
	identity, ok := seekerIdentity(w, r)
	if !ok {
		return
	}

	page, limit := pageParams(r)
	apps, pagination, err := h.appSvc.ListForSeeker(identity.JobSeeker.ID, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if apps == nil {
		apps = []models.Application{}
	}
	respond.JSON(w, http.StatusOK, applicationPage{Applications: apps, Pagination: pagination})
}

// Withdraw sets the seeker's own application to WITHDRAWN.
func (h *JobSeekerHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	identity, ok := seekerIdentity(w, r)
	if !ok {
		return
	}
	applicationID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	app, err := h.appSvc.Withdraw(identity.JobSeeker.ID, applicationID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, app)
}
