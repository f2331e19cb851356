package services

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/talentgrid/talentgrid-be/internal/models"
)

// UserServiceProvider defines the interface for user services. It is a
// superset of auth.Directory so the session resolver can share it.
type UserServiceProvider interface {
	GetUserByID(id int64) (models.User, error)
	GetUserByEmail(email string) (models.User, error)
	CreateUser(name, email, gender, studentNo, password string, role models.Role) (models.User, error)
	AuthenticateUser(email, password string, role models.Role) (models.User, error)
	GetEmployerByUserID(userID int64) (*models.EmployerProfile, error)
	GetJobSeekerByUserID(userID int64) (*models.JobSeekerProfile, error)
}

// UserService provides business logic for account management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id int64) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, email, name, role, COALESCE(gender, ''), COALESCE(student_no, ''), COALESCE(phone, ''), created_at
		FROM users WHERE id = ?`, id)

	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Role, &user.Gender, &user.StudentNo, &user.Phone, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByEmail retrieves a single user by email, including the password hash.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow(`
		SELECT id, email, name, password_hash, role, COALESCE(gender, ''), COALESCE(student_no, ''), COALESCE(phone, ''), created_at
		FROM users WHERE email = ?`, email)

	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.Role, &user.Gender, &user.StudentNo, &user.Phone, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// CreateUser creates a new account, hashing the password. A duplicate email is
// a conflict.
func (s *UserService) CreateUser(name, email, gender, studentNo, password string, role models.Role) (models.User, error) {
	if _, err := s.GetUserByEmail(email); err == nil {
		return models.User{}, ErrConflict
	} else if err != ErrNotFound {
		return models.User{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	stmt, err := s.db.Prepare(`
		INSERT INTO users(email, name, password_hash, role, gender, student_no)
		VALUES(?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	res, err := stmt.Exec(email, name, string(hashedPassword), string(role), gender, studentNo)
	if err != nil {
		return models.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(id)
}

// AuthenticateUser verifies a user's credentials against the stored hash and
// the requested role.
func (s *UserService) AuthenticateUser(email, password string, role models.Role) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if user.Role != role {
		return models.User{}, ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}

// GetEmployerByUserID loads the employer profile owned by the given account,
// or (nil, nil) when none exists.
func (s *UserService) GetEmployerByUserID(userID int64) (*models.EmployerProfile, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, company_name, COALESCE(website, ''), COALESCE(company_size, ''), COALESCE(industry, ''), created_at
		FROM employer_profiles WHERE user_id = ?`, userID)

	var p models.EmployerProfile
	err := row.Scan(&p.ID, &p.UserID, &p.CompanyName, &p.Website, &p.CompanySize, &p.Industry, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// GetJobSeekerByUserID loads the job seeker profile owned by the given
// account, or (nil, nil) when none exists.
func (s *UserService) GetJobSeekerByUserID(userID int64) (*models.JobSeekerProfile, error) {
	row := s.db.QueryRow(`
		SELECT id, user_id, COALESCE(headline, ''), COALESCE(resume_url, ''), COALESCE(skills, ''), created_at
		FROM jobseeker_profiles WHERE user_id = ?`, userID)

	var p models.JobSeekerProfile
	err := row.Scan(&p.ID, &p.UserID, &p.Headline, &p.ResumeURL, &p.Skills, &p.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}
