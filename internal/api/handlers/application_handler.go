package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/talentgrid/talentgrid-be/internal/api/respond"
	"github.com/talentgrid/talentgrid-be/internal/models"
	"github.com/talentgrid/talentgrid-be/internal/services"
)

// ApplicationHandler handles the employer side of applications.
type ApplicationHandler struct {
	service services.ApplicationServiceProvider
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(service services.ApplicationServiceProvider) *ApplicationHandler {
	return &ApplicationHandler{service: service}
}

// applicationPage is the paginated listing envelope.
type applicationPage struct {
	Applications []models.Application `json:"applications"`
	Pagination   models.Pagination    `json:"pagination"`
}

// ListForJob handles the paginated applicant listing for one job. An unknown
// status filter is silently ignored.
func (h *ApplicationHandler) ListForJob(w http.ResponseWriter, r *http.Request) {
	_, employerID, ok := ownProfile(w, r, "employerId")
	if !ok {
		return
	}
	jobID, ok := pathID(w, r, "jobId")
	if !ok {
		return
	}

	page, limit := pageParams(r)
	statusFilter := r.URL.Query().Get("status")

	apps, pagination, err := h.service.ListForJob(employerID, jobID, page, limit, statusFilter)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if apps == nil {
		apps = []models.Application{}
	}
	respond.JSON(w, http.StatusOK, applicationPage{Applications: apps, Pagination: pagination})
}

// UpdateStatus handles the status write. The new value must be one of the
// seven statuses; there is no transition graph beyond set membership.
func (h *ApplicationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	_, employerID, ok := ownProfile(w, r, "employerId")
	if !ok {
		return
	}
	applicationID, ok := pathID(w, r, "applicationId")
	if !ok {
		return
	}

	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	status, valid := models.ParseStatus(payload.Status)
	if !valid {
		respond.ValidationFailed(w, []respond.FieldError{
			{Field: "status", Message: "must be one of PENDING, REVIEWING, SHORTLISTED, INTERVIEWED, ACCEPTED, REJECTED, WITHDRAWN"},
		})
		return
	}

	app, err := h.service.UpdateStatus(employerID, applicationID, status)
	if err != nil {
		log.Warn().Err(err).Int64("application_id", applicationID).Msg("Failed to update application status")
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, app)
}
