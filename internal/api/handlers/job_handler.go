package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/talentgrid/talentgrid-be/internal/api/respond"
	"github.com/talentgrid/talentgrid-be/internal/models"
	"github.com/talentgrid/talentgrid-be/internal/services"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service services.JobServiceProvider
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(service services.JobServiceProvider) *JobHandler {
	return &JobHandler{service: service}
}

// jobPage is the paginated listing envelope.
type jobPage struct {
	Jobs       []models.Job      `json:"jobs"`
	Pagination models.Pagination `json:"pagination"`
}

// List handles the employer's paginated job listing, filterable by status.
func (h *JobHandler) List(w http.ResponseWriter, r *http.Request) {
	_, id, ok := ownProfile(w, r, "id")
	if !ok {
		return
	}

	page, limit := pageParams(r)

	var active *bool
	switch strings.ToLower(r.URL.Query().Get("status")) {
	case "active":
		v := true
		active = &v
	case "inactive":
		v := false
		active = &v
	}

	jobs, pagination, err := h.service.ListEmployerJobs(id, page, limit, active)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	respond.JSON(w, http.StatusOK, jobPage{Jobs: jobs, Pagination: pagination})
}

// Create handles job creation, persisting the job and its form fields
// together.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, id, ok := ownProfile(w, r, "id")
	if !ok {
		return
	}

	var payload JobPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := payload.Validate(); len(errs) > 0 {
		respond.ValidationFailed(w, errs)
		return
	}

	job, err := h.service.CreateJob(id, payload.toInput(), toFieldInputs(payload.FormFields))
	if err != nil {
		log.Error().Err(err).Int64("employer_id", id).Msg("Failed to create job")
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusCreated, job)
}

// Update handles partial job updates. A supplied form-field list replaces the
// existing set atomically with the job fields.
func (h *JobHandler) Update(w http.ResponseWriter, r *http.Request) {
	_, employerID, ok := ownProfile(w, r, "employerId")
	if !ok {
		return
	}
	jobID, ok := pathID(w, r, "jobId")
	if !ok {
		return
	}

	var payload JobUpdatePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := payload.Validate(); len(errs) > 0 {
		respond.ValidationFailed(w, errs)
		return
	}

	job, err := h.service.UpdateJob(employerID, jobID, payload.toUpdate())
	if err != nil {
		log.Error().Err(err).Int64("job_id", jobID).Msg("Failed to update job")
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, job)
}

// Delete handles the composite-keyed hard delete.
func (h *JobHandler) Delete(w http.ResponseWriter, r *http.Request) {
	_, employerID, ok := ownProfile(w, r, "employerId")
	if !ok {
		return
	}
	jobID, ok := pathID(w, r, "jobId")
	if !ok {
		return
	}

	if err := h.service.DeleteJob(employerID, jobID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Search handles the public active-job listing.
func (h *JobHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	filter := services.JobFilter{
		Category:       r.URL.Query().Get("category"),
		Location:       r.URL.Query().Get("location"),
		EmploymentType: r.URL.Query().Get("employmentType"),
	}

	jobs, pagination, err := h.service.SearchJobs(filter, page, limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	respond.JSON(w, http.StatusOK, jobPage{Jobs: jobs, Pagination: pagination})
}

// Get handles the public single-job read, form fields included.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	job, err := h.service.GetJob(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, job)
}
