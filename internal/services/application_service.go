package services

import (
	"database/sql"
	"strings"

	"github.com/talentgrid/talentgrid-be/internal/models"
)

// ResponseInput is one answer to a job's form field in an apply payload.
type ResponseInput struct {
	FormFieldID int64
	Value       string
}

// ApplicationServiceProvider defines the interface for application services.
type ApplicationServiceProvider interface {
	ListForJob(employerID, jobID int64, page, limit int, statusFilter string) ([]models.Application, models.Pagination, error)
	UpdateStatus(employerID, applicationID int64, status models.ApplicationStatus) (models.Application, error)
	Apply(jobSeekerID, jobID int64, responses []ResponseInput) (models.Application, error)
	ListForSeeker(jobSeekerID int64, page, limit int) ([]models.Application, models.Pagination, error)
	Withdraw(jobSeekerID, applicationID int64) (models.Application, error)
}

// ApplicationService provides business logic for applications and responses.
type ApplicationService struct {
	db     *sql.DB
	events EventServiceProvider
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(db *sql.DB, events EventServiceProvider) *ApplicationService {
	return &ApplicationService{db: db, events: events}
}

func scanApplication(row interface{ Scan(...interface{}) error }) (models.Application, error) {
	var app models.Application
	err := row.Scan(&app.ID, &app.JobID, &app.JobSeekerID, &app.Status, &app.AppliedAt)
	if err == sql.ErrNoRows {
		return models.Application{}, ErrNotFound
	}
	return app, err
}

// GetApplication retrieves one application by ID.
func (s *ApplicationService) GetApplication(id int64) (models.Application, error) {
	return scanApplication(s.db.QueryRow(
		"SELECT id, job_id, jobseeker_id, status, applied_at FROM applications WHERE id = ?", id))
}

// ListForJob returns one page of a job's applications with nested seeker and
// account summaries and each response joined to its form field definition.
// An unknown status filter is silently ignored.
func (s *ApplicationService) ListForJob(employerID, jobID int64, page, limit int, statusFilter string) ([]models.Application, models.Pagination, error) {
	// Scope the job to the employer first so a foreign job reads as absent.
	var owned int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM jobs WHERE id = ? AND employer_id = ?", jobID, employerID).Scan(&owned)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	if owned == 0 {
		return nil, models.Pagination{}, ErrNotFound
	}

	page, limit = NormalizePagination(page, limit)

	where := "WHERE a.job_id = ?"
	args := []interface{}{jobID}
	if status, ok := models.ParseStatus(statusFilter); ok {
		where += " AND a.status = ?"
		args = append(args, string(status))
	}

	var total int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM applications a "+where, args...).Scan(&total); err != nil {
		return nil, models.Pagination{}, err
	}

	query := `
		SELECT a.id, a.job_id, a.jobseeker_id, a.status, a.applied_at,
		       p.id, p.user_id, COALESCE(p.headline, ''), COALESCE(p.resume_url, ''), COALESCE(p.skills, ''), p.created_at,
		       u.id, u.email, u.name
		FROM applications a
		JOIN jobseeker_profiles p ON a.jobseeker_id = p.id
		JOIN users u ON p.user_id = u.id
		` + where + ` ORDER BY a.applied_at DESC, a.id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var app models.Application
		var seeker models.JobSeekerProfile
		var account models.UserSummary
		if err := rows.Scan(&app.ID, &app.JobID, &app.JobSeekerID, &app.Status, &app.AppliedAt,
			&seeker.ID, &seeker.UserID, &seeker.Headline, &seeker.ResumeURL, &seeker.Skills, &seeker.CreatedAt,
			&account.ID, &account.Email, &account.Name); err != nil {
			return nil, models.Pagination{}, err
		}
		app.JobSeeker = &seeker
		app.Account = &account
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Pagination{}, err
	}

	for i := range apps {
		responses, err := s.loadResponses(apps[i].ID)
		if err != nil {
			return nil, models.Pagination{}, err
		}
		apps[i].Responses = responses
	}
	return apps, buildPagination(page, limit, total), nil
}

func (s *ApplicationService) loadResponses(applicationID int64) ([]models.Response, error) {
	rows, err := s.db.Query(`
		SELECT r.id, r.application_id, r.form_field_id, r.value,
		       f.id, f.job_id, f.label, f.field_type, f.required, f.position
		FROM application_responses r
		JOIN job_form_fields f ON r.form_field_id = f.id
		WHERE r.application_id = ? ORDER BY f.position, f.id`, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responses []models.Response
	for rows.Next() {
		var resp models.Response
		var field models.FormField
		if err := rows.Scan(&resp.ID, &resp.ApplicationID, &resp.FormFieldID, &resp.Value,
			&field.ID, &field.JobID, &field.Label, &field.Type, &field.Required, &field.Position); err != nil {
			return nil, err
		}
		resp.Field = &field
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

// UpdateStatus writes a new status onto an application under a job the
// employer owns. There is no transition graph; any member of the status set
// replaces any other. A foreign application reads as absent rather than
// forbidden so existence is not leaked.
func (s *ApplicationService) UpdateStatus(employerID, applicationID int64, status models.ApplicationStatus) (models.Application, error) {
	var owned int64
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM applications a JOIN jobs j ON a.job_id = j.id
		WHERE a.id = ? AND j.employer_id = ?`, applicationID, employerID).Scan(&owned)
	if err != nil {
		return models.Application{}, err
	}
	if owned == 0 {
		return models.Application{}, ErrNotFound
	}

	if _, err := s.db.Exec("UPDATE applications SET status = ? WHERE id = ?", string(status), applicationID); err != nil {
		return models.Application{}, err
	}

	app, err := s.GetApplication(applicationID)
	if err != nil {
		return models.Application{}, err
	}
	if s.events != nil {
		s.events.CreateEvent(employerID, "application.status", "info",
			"Application moved to "+strings.ToLower(string(status)))
	}
	return app, nil
}

// Apply creates a PENDING application with its responses in one transaction.
func (s *ApplicationService) Apply(jobSeekerID, jobID int64, responses []ResponseInput) (models.Application, error) {
	job, err := scanJob(s.db.QueryRow("SELECT "+jobColumns+" FROM jobs WHERE id = ?", jobID))
	if err != nil {
		return models.Application{}, err
	}
	if !job.IsActive {
		return models.Application{}, ErrInactiveJob
	}

	var existing int64
	err = s.db.QueryRow("SELECT COUNT(*) FROM applications WHERE job_id = ? AND jobseeker_id = ?",
		jobID, jobSeekerID).Scan(&existing)
	if err != nil {
		return models.Application{}, err
	}
	if existing > 0 {
		return models.Application{}, ErrConflict
	}

	tx, err := s.db.Begin()
	if err != nil {
		return models.Application{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec("INSERT INTO applications (job_id, jobseeker_id, status) VALUES (?, ?, ?)",
		jobID, jobSeekerID, string(models.StatusPending))
	if err != nil {
		return models.Application{}, err
	}
	appID, err := res.LastInsertId()
	if err != nil {
		return models.Application{}, err
	}

	for _, r := range responses {
		if _, err := tx.Exec(
			"INSERT INTO application_responses (application_id, form_field_id, value) VALUES (?, ?, ?)",
			appID, r.FormFieldID, r.Value); err != nil {
			return models.Application{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Application{}, err
	}

	if s.events != nil {
		s.events.CreateEvent(job.EmployerID, "application.received", "info",
			"New application for \""+job.Title+"\"")
	}
	return s.GetApplication(appID)
}

// ListForSeeker returns one page of the seeker's own applications, each with
// its job attached.
func (s *ApplicationService) ListForSeeker(jobSeekerID int64, page, limit int) ([]models.Application, models.Pagination, error) {
	page, limit = NormalizePagination(page, limit)

	var total int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM applications WHERE jobseeker_id = ?", jobSeekerID).Scan(&total); err != nil {
		return nil, models.Pagination{}, err
	}

	rows, err := s.db.Query(`
		SELECT a.id, a.job_id, a.jobseeker_id, a.status, a.applied_at,
		       j.id, j.employer_id, j.title, j.category, j.description, COALESCE(j.requirements, ''),
		       COALESCE(j.location, ''), j.employment_type, j.salary_min, j.salary_max, j.is_active,
		       j.expires_at, j.created_at
		FROM applications a JOIN jobs j ON a.job_id = j.id
		WHERE a.jobseeker_id = ? ORDER BY a.applied_at DESC, a.id DESC LIMIT ? OFFSET ?`,
		jobSeekerID, limit, (page-1)*limit)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	defer rows.Close()

	var apps []models.Application
	for rows.Next() {
		var app models.Application
		var job models.Job
		if err := rows.Scan(&app.ID, &app.JobID, &app.JobSeekerID, &app.Status, &app.AppliedAt,
			&job.ID, &job.EmployerID, &job.Title, &job.Category, &job.Description, &job.Requirements,
			&job.Location, &job.EmploymentType, &job.SalaryMin, &job.SalaryMax, &job.IsActive,
			&job.ExpiresAt, &job.CreatedAt); err != nil {
			return nil, models.Pagination{}, err
		}
		app.Job = &job
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Pagination{}, err
	}
	return apps, buildPagination(page, limit, total), nil
}

// Withdraw sets the seeker's own application to WITHDRAWN.
func (s *ApplicationService) Withdraw(jobSeekerID, applicationID int64) (models.Application, error) {
	app, err := s.GetApplication(applicationID)
	if err != nil {
		return models.Application{}, err
	}
	if app.JobSeekerID != jobSeekerID {
		return models.Application{}, ErrNotFound
	}

	if _, err := s.db.Exec("UPDATE applications SET status = ? WHERE id = ?",
		string(models.StatusWithdrawn), applicationID); err != nil {
		return models.Application{}, err
	}
	return s.GetApplication(applicationID)
}
