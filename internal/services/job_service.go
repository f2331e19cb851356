package services

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/talentgrid/talentgrid-be/internal/models"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// NormalizePagination applies defaults and clamps limit into [1, 100].
func NormalizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit == 0 {
		limit = defaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

func buildPagination(page, limit int, total int64) models.Pagination {
	pages := (total + int64(limit) - 1) / int64(limit)
	return models.Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// FormFieldInput describes one dynamic form field in a create/update payload.
type FormFieldInput struct {
	Label    string
	Type     string
	Required bool
	Position int
}

// JobInput carries the schema-validated job fields for creation.
type JobInput struct {
	Title          string
	Category       string
	Description    string
	Requirements   string
	Location       string
	EmploymentType string
	SalaryMin      *int64
	SalaryMax      *int64
	ExpiresAt      *time.Time
}

// JobUpdate carries a partial update; nil fields stay untouched. A non-nil
// Fields replaces the job's full form-field set.
type JobUpdate struct {
	Title          *string
	Category       *string
	Description    *string
	Requirements   *string
	Location       *string
	EmploymentType *string
	SalaryMin      *int64
	SalaryMax      *int64
	IsActive       *bool
	ExpiresAt      *time.Time
	Fields         *[]FormFieldInput
}

// JobFilter narrows the public job search.
type JobFilter struct {
	Category       string
	Location       string
	EmploymentType string
}

// JobServiceProvider defines the interface for job services.
type JobServiceProvider interface {
	ListEmployerJobs(employerID int64, page, limit int, active *bool) ([]models.Job, models.Pagination, error)
	SearchJobs(filter JobFilter, page, limit int) ([]models.Job, models.Pagination, error)
	GetJob(id int64) (models.Job, error)
	CreateJob(employerID int64, in JobInput, fields []FormFieldInput) (models.Job, error)
	UpdateJob(employerID, jobID int64, upd JobUpdate) (models.Job, error)
	DeleteJob(employerID, jobID int64) error
	DeactivateExpired() (map[int64]int, error)
}

// JobService provides business logic for job postings and their form fields.
type JobService struct {
	db *sql.DB
}

// NewJobService creates a new JobService.
func NewJobService(db *sql.DB) *JobService {
	return &JobService{db: db}
}

const jobColumns = `id, employer_id, title, category, description, COALESCE(requirements, ''),
	COALESCE(location, ''), employment_type, salary_min, salary_max, is_active, expires_at, created_at`

func scanJob(row interface{ Scan(...interface{}) error }) (models.Job, error) {
	var job models.Job
	err := row.Scan(&job.ID, &job.EmployerID, &job.Title, &job.Category, &job.Description,
		&job.Requirements, &job.Location, &job.EmploymentType, &job.SalaryMin, &job.SalaryMax,
		&job.IsActive, &job.ExpiresAt, &job.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Job{}, ErrNotFound
	}
	return job, err
}

// GetJob retrieves a single job with its form fields in display order.
func (s *JobService) GetJob(id int64) (models.Job, error) {
	job, err := scanJob(s.db.QueryRow("SELECT "+jobColumns+" FROM jobs WHERE id = ?", id))
	if err != nil {
		return models.Job{}, err
	}

	fields, err := s.loadFormFields(id)
	if err != nil {
		return models.Job{}, err
	}
	job.FormFields = fields
	return job, nil
}

func (s *JobService) loadFormFields(jobID int64) ([]models.FormField, error) {
	rows, err := s.db.Query(`
		SELECT id, job_id, label, field_type, required, position
		FROM job_form_fields WHERE job_id = ? ORDER BY position, id`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []models.FormField
	for rows.Next() {
		var f models.FormField
		if err := rows.Scan(&f.ID, &f.JobID, &f.Label, &f.Type, &f.Required, &f.Position); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// ListEmployerJobs returns one page of an employer's jobs, newest first,
// optionally filtered by active state.
func (s *JobService) ListEmployerJobs(employerID int64, page, limit int, active *bool) ([]models.Job, models.Pagination, error) {
	page, limit = NormalizePagination(page, limit)

	where := "WHERE employer_id = ?"
	args := []interface{}{employerID}
	if active != nil {
		where += " AND is_active = ?"
		args = append(args, *active)
	}

	var total int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM jobs "+where, args...).Scan(&total); err != nil {
		return nil, models.Pagination{}, err
	}

	query := "SELECT " + jobColumns + " FROM jobs " + where +
		" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	jobs, err := s.queryJobs(query, args...)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return jobs, buildPagination(page, limit, total), nil
}

// SearchJobs returns one page of active jobs matching the public filters.
func (s *JobService) SearchJobs(filter JobFilter, page, limit int) ([]models.Job, models.Pagination, error) {
	page, limit = NormalizePagination(page, limit)

	where := "WHERE is_active = TRUE"
	var args []interface{}
	if filter.Category != "" && models.ValidCategory(filter.Category) {
		where += " AND category = ?"
		args = append(args, strings.ToUpper(filter.Category))
	}
	if filter.EmploymentType != "" && models.ValidEmploymentType(filter.EmploymentType) {
		where += " AND employment_type = ?"
		args = append(args, strings.ToUpper(filter.EmploymentType))
	}
	if filter.Location != "" {
		where += " AND location LIKE ?"
		args = append(args, "%"+filter.Location+"%")
	}

	var total int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM jobs "+where, args...).Scan(&total); err != nil {
		return nil, models.Pagination{}, err
	}

	query := "SELECT " + jobColumns + " FROM jobs " + where +
		" ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	jobs, err := s.queryJobs(query, args...)
	if err != nil {
		return nil, models.Pagination{}, err
	}
	return jobs, buildPagination(page, limit, total), nil
}

func (s *JobService) queryJobs(query string, args ...interface{}) ([]models.Job, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []models.Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// CreateJob persists a job and its form fields together.
func (s *JobService) CreateJob(employerID int64, in JobInput, fields []FormFieldInput) (models.Job, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Job{}, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO jobs (employer_id, title, category, description, requirements, location,
			employment_type, salary_min, salary_max, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		employerID, in.Title, strings.ToUpper(in.Category), in.Description, in.Requirements,
		in.Location, strings.ToUpper(in.EmploymentType), in.SalaryMin, in.SalaryMax, in.ExpiresAt)
	if err != nil {
		return models.Job{}, err
	}
	jobID, err := res.LastInsertId()
	if err != nil {
		return models.Job{}, err
	}

	if err := insertFormFields(tx, jobID, fields); err != nil {
		return models.Job{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Job{}, err
	}
	return s.GetJob(jobID)
}

func insertFormFields(tx *sql.Tx, jobID int64, fields []FormFieldInput) error {
	if len(fields) == 0 {
		return nil
	}
	stmt, err := tx.Prepare(`
		INSERT INTO job_form_fields (job_id, label, field_type, required, position)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, f := range fields {
		// Re-checked here so a bad descriptor can never land mid-replacement.
		if !models.ValidFieldType(f.Type) {
			return fmt.Errorf("form field %d: invalid type %q", i, f.Type)
		}
		if _, err := stmt.Exec(jobID, f.Label, strings.ToUpper(f.Type), f.Required, f.Position); err != nil {
			return err
		}
	}
	return nil
}

// UpdateJob applies a partial update scoped to the owning employer. When the
// update supplies form fields, the existing set is deleted and the new set
// inserted in the same transaction as the job update; either everything
// applies or nothing does.
func (s *JobService) UpdateJob(employerID, jobID int64, upd JobUpdate) (models.Job, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return models.Job{}, err
	}
	defer tx.Rollback()

	job, err := scanJob(tx.QueryRow(
		"SELECT "+jobColumns+" FROM jobs WHERE id = ? AND employer_id = ?", jobID, employerID))
	if err != nil {
		return models.Job{}, err
	}

	if upd.Title != nil {
		job.Title = *upd.Title
	}
	if upd.Category != nil {
		job.Category = models.JobCategory(strings.ToUpper(*upd.Category))
	}
	if upd.Description != nil {
		job.Description = *upd.Description
	}
	if upd.Requirements != nil {
		job.Requirements = *upd.Requirements
	}
	if upd.Location != nil {
		job.Location = *upd.Location
	}
	if upd.EmploymentType != nil {
		job.EmploymentType = models.EmploymentType(strings.ToUpper(*upd.EmploymentType))
	}
	if upd.SalaryMin != nil {
		job.SalaryMin = upd.SalaryMin
	}
	if upd.SalaryMax != nil {
		job.SalaryMax = upd.SalaryMax
	}
	if upd.IsActive != nil {
		job.IsActive = *upd.IsActive
	}
	if upd.ExpiresAt != nil {
		job.ExpiresAt = upd.ExpiresAt
	}

	_, err = tx.Exec(`
		UPDATE jobs SET title = ?, category = ?, description = ?, requirements = ?, location = ?,
			employment_type = ?, salary_min = ?, salary_max = ?, is_active = ?, expires_at = ?
		WHERE id = ?`,
		job.Title, string(job.Category), job.Description, job.Requirements, job.Location,
		string(job.EmploymentType), job.SalaryMin, job.SalaryMax, job.IsActive, job.ExpiresAt, jobID)
	if err != nil {
		return models.Job{}, err
	}

	if upd.Fields != nil {
		if _, err := tx.Exec("DELETE FROM job_form_fields WHERE job_id = ?", jobID); err != nil {
			return models.Job{}, err
		}
		if err := insertFormFields(tx, jobID, *upd.Fields); err != nil {
			return models.Job{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return models.Job{}, err
	}
	return s.GetJob(jobID)
}

// DeleteJob removes a job by its composite (employer, job) key.
func (s *JobService) DeleteJob(employerID, jobID int64) error {
	res, err := s.db.Exec("DELETE FROM jobs WHERE id = ? AND employer_id = ?", jobID, employerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateExpired flips is_active off for every job whose expiry has passed
// and returns the count of deactivated jobs per employer.
func (s *JobService) DeactivateExpired() (map[int64]int, error) {
	rows, err := s.db.Query(`
		SELECT id, employer_id FROM jobs
		WHERE is_active = TRUE AND expires_at IS NOT NULL AND expires_at <= ?`, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	byEmployer := make(map[int64]int)
	for rows.Next() {
		var id, employerID int64
		if err := rows.Scan(&id, &employerID); err != nil {
			return nil, err
		}
		ids = append(ids, id)
		byEmployer[employerID]++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, id := range ids {
		if _, err := s.db.Exec("UPDATE jobs SET is_active = FALSE WHERE id = ?", id); err != nil {
			return nil, err
		}
	}
	return byEmployer, nil
}
