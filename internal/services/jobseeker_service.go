package services

import (
	"database/sql"

	"github.com/talentgrid/talentgrid-be/internal/models"
)

// JobSeekerInput carries the schema-validated seeker profile fields.
type JobSeekerInput struct {
	Headline  string
	ResumeURL string
	Skills    string
}

// JobSeekerServiceProvider defines the interface for job seeker profile
// services.
type JobSeekerServiceProvider interface {
	CreateProfile(actor models.User, in JobSeekerInput) (models.JobSeekerProfile, error)
}

// JobSeekerService provides business logic for job seeker profiles.
type JobSeekerService struct {
	db *sql.DB
}

// NewJobSeekerService creates a new JobSeekerService.
func NewJobSeekerService(db *sql.DB) *JobSeekerService {
	return &JobSeekerService{db: db}
}

// CreateProfile creates the seeker profile for the acting account. The account
// must carry the JOB_SEEKER role and must not already own a profile.
func (s *JobSeekerService) CreateProfile(actor models.User, in JobSeekerInput) (models.JobSeekerProfile, error) {
	if actor.Role != models.RoleJobSeeker {
		return models.JobSeekerProfile{}, ErrForbidden
	}

	var existing int64
	if err := s.db.QueryRow("SELECT COUNT(*) FROM jobseeker_profiles WHERE user_id = ?", actor.ID).Scan(&existing); err != nil {
		return models.JobSeekerProfile{}, err
	}
	if existing > 0 {
		return models.JobSeekerProfile{}, ErrConflict
	}

	res, err := s.db.Exec(`
		INSERT INTO jobseeker_profiles (user_id, headline, resume_url, skills)
		VALUES (?, ?, ?, ?)`,
		actor.ID, in.Headline, in.ResumeURL, in.Skills)
	if err != nil {
		return models.JobSeekerProfile{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.JobSeekerProfile{}, err
	}

	row := s.db.QueryRow(`
		SELECT id, user_id, COALESCE(headline, ''), COALESCE(resume_url, ''), COALESCE(skills, ''), created_at
		FROM jobseeker_profiles WHERE id = ?`, id)
	var p models.JobSeekerProfile
	if err := row.Scan(&p.ID, &p.UserID, &p.Headline, &p.ResumeURL, &p.Skills, &p.CreatedAt); err != nil {
		return models.JobSeekerProfile{}, err
	}
	return p, nil
}
