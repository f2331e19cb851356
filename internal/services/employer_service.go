package services

import (
	"database/sql"
	"sync"

	"github.com/talentgrid/talentgrid-be/internal/models"
)

// EmployerInput carries the schema-validated employer profile fields. Create
// and update share the same shape.
type EmployerInput struct {
	CompanyName string
	Website     string
	CompanySize string
	Industry    string
}

// EmployerServiceProvider defines the interface for employer profile services.
type EmployerServiceProvider interface {
	CreateProfile(actor models.User, in EmployerInput) (models.EmployerProfile, error)
	GetProfile(id int64) (models.EmployerProfile, error)
	UpdateProfile(id, actorUserID int64, in EmployerInput) (models.EmployerProfile, error)
	DeleteProfile(id, actorUserID int64) error
	GetStats(employerID int64) (models.EmployerStats, error)
}

// EmployerService provides business logic for employer profiles.
type EmployerService struct {
	db     *sql.DB
	events EventServiceProvider
}

// NewEmployerService creates a new EmployerService.
func NewEmployerService(db *sql.DB, events EventServiceProvider) *EmployerService {
	return &EmployerService{db: db, events: events}
}

func (s *EmployerService) scanProfile(row *sql.Row) (models.EmployerProfile, error) {
	var p models.EmployerProfile
	err := row.Scan(&p.ID, &p.UserID, &p.CompanyName, &p.Website, &p.CompanySize, &p.Industry, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.EmployerProfile{}, ErrNotFound
		}
		return models.EmployerProfile{}, err
	}
	return p, nil
}

const profileColumns = `id, user_id, company_name, COALESCE(website, ''), COALESCE(company_size, ''), COALESCE(industry, ''), created_at`

// CreateProfile creates the employer profile for the acting account. The
// account must carry the EMPLOYER role and must not already own a profile.
func (s *EmployerService) CreateProfile(actor models.User, in EmployerInput) (models.EmployerProfile, error) {
	if actor.Role != models.RoleEmployer {
		return models.EmployerProfile{}, ErrForbidden
	}

	var existing int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM employer_profiles WHERE user_id = ?", actor.ID).Scan(&existing)
	if err != nil {
		return models.EmployerProfile{}, err
	}
	if existing > 0 {
		return models.EmployerProfile{}, ErrConflict
	}

	res, err := s.db.Exec(`
		INSERT INTO employer_profiles (user_id, company_name, website, company_size, industry)
		VALUES (?, ?, ?, ?, ?)`,
		actor.ID, in.CompanyName, in.Website, in.CompanySize, in.Industry)
	if err != nil {
		return models.EmployerProfile{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.EmployerProfile{}, err
	}
	if s.events != nil {
		s.events.CreateEvent(id, "profile.created", "info", "Employer profile created")
	}
	return s.GetProfile(id)
}

// GetProfile retrieves an employer profile with its jobs, newest first, each
// annotated with its application count. It is a public read.
func (s *EmployerService) GetProfile(id int64) (models.EmployerProfile, error) {
	profile, err := s.scanProfile(s.db.QueryRow(
		"SELECT "+profileColumns+" FROM employer_profiles WHERE id = ?", id))
	if err != nil {
		return models.EmployerProfile{}, err
	}

	rows, err := s.db.Query(`
		SELECT j.id, j.employer_id, j.title, j.category, j.description, COALESCE(j.requirements, ''),
		       COALESCE(j.location, ''), j.employment_type, j.salary_min, j.salary_max,
		       j.is_active, j.expires_at, j.created_at,
		       (SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id)
		FROM jobs j WHERE j.employer_id = ? ORDER BY j.created_at DESC, j.id DESC`, id)
	if err != nil {
		return models.EmployerProfile{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var job models.Job
		if err := rows.Scan(&job.ID, &job.EmployerID, &job.Title, &job.Category, &job.Description,
			&job.Requirements, &job.Location, &job.EmploymentType, &job.SalaryMin, &job.SalaryMax,
			&job.IsActive, &job.ExpiresAt, &job.CreatedAt, &job.ApplicationCount); err != nil {
			return models.EmployerProfile{}, err
		}
		profile.Jobs = append(profile.Jobs, job)
	}
	return profile, rows.Err()
}

// UpdateProfile replaces the schema-validated fields of a profile the actor
// owns.
func (s *EmployerService) UpdateProfile(id, actorUserID int64, in EmployerInput) (models.EmployerProfile, error) {
	profile, err := s.scanProfile(s.db.QueryRow(
		"SELECT "+profileColumns+" FROM employer_profiles WHERE id = ?", id))
	if err != nil {
		return models.EmployerProfile{}, err
	}
	if profile.UserID != actorUserID {
		return models.EmployerProfile{}, ErrForbidden
	}

	_, err = s.db.Exec(`
		UPDATE employer_profiles SET company_name = ?, website = ?, company_size = ?, industry = ?
		WHERE id = ?`,
		in.CompanyName, in.Website, in.CompanySize, in.Industry, id)
	if err != nil {
		return models.EmployerProfile{}, err
	}
	if s.events != nil {
		s.events.CreateEvent(id, "profile.updated", "info", "Employer profile updated")
	}
	return s.GetProfile(id)
}

// DeleteProfile removes a profile the actor owns.
func (s *EmployerService) DeleteProfile(id, actorUserID int64) error {
	profile, err := s.scanProfile(s.db.QueryRow(
		"SELECT "+profileColumns+" FROM employer_profiles WHERE id = ?", id))
	if err != nil {
		return err
	}
	if profile.UserID != actorUserID {
		return ErrForbidden
	}

	_, err = s.db.Exec("DELETE FROM employer_profiles WHERE id = ?", id)
	return err
}

// GetStats computes the dashboard counts. The six base counts run as
// independent concurrent queries; inactive and reviewing are derived by
// arithmetic, so every status outside the three counted buckets folds into
// reviewing.
func (s *EmployerService) GetStats(employerID int64) (models.EmployerStats, error) {
	var stats models.EmployerStats

	counts := []struct {
		dest  *int64
		query string
		args  []interface{}
	}{
		{&stats.TotalJobs, "SELECT COUNT(*) FROM jobs WHERE employer_id = ?", []interface{}{employerID}},
		{&stats.ActiveJobs, "SELECT COUNT(*) FROM jobs WHERE employer_id = ? AND is_active = TRUE", []interface{}{employerID}},
		{&stats.TotalApplications,
			"SELECT COUNT(*) FROM applications a JOIN jobs j ON a.job_id = j.id WHERE j.employer_id = ?",
			[]interface{}{employerID}},
		{&stats.PendingApplications,
			"SELECT COUNT(*) FROM applications a JOIN jobs j ON a.job_id = j.id WHERE j.employer_id = ? AND a.status = ?",
			[]interface{}{employerID, string(models.StatusPending)}},
		{&stats.AcceptedApplications,
			"SELECT COUNT(*) FROM applications a JOIN jobs j ON a.job_id = j.id WHERE j.employer_id = ? AND a.status = ?",
			[]interface{}{employerID, string(models.StatusAccepted)}},
		{&stats.RejectedApplications,
			"SELECT COUNT(*) FROM applications a JOIN jobs j ON a.job_id = j.id WHERE j.employer_id = ? AND a.status = ?",
			[]interface{}{employerID, string(models.StatusRejected)}},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(counts))
	for i, c := range counts {
		wg.Add(1)
		go func(i int, dest *int64, query string, args []interface{}) {
			defer wg.Done()
			errs[i] = s.db.QueryRow(query, args...).Scan(dest)
		}(i, c.dest, c.query, c.args)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return models.EmployerStats{}, err
		}
	}

	stats.InactiveJobs = stats.TotalJobs - stats.ActiveJobs
	stats.ReviewingApplications = stats.TotalApplications - stats.PendingApplications -
		stats.AcceptedApplications - stats.RejectedApplications
	return stats, nil
}
