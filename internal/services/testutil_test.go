package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/talentgrid/talentgrid-be/internal/database"
	"github.com/talentgrid/talentgrid-be/internal/models"
)

// newTestDB opens an in-memory database with the full schema applied. A single
// connection keeps every query on the same in-memory store.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *sql.DB, email string, role models.Role) models.User {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO users (email, name, password_hash, role) VALUES (?, ?, ?, ?)",
		email, "Test "+email, "x", string(role))
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	id, _ := res.LastInsertId()
	return models.User{ID: id, Email: email, Role: role}
}

func seedEmployer(t *testing.T, db *sql.DB, userID int64, company string) int64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO employer_profiles (user_id, company_name) VALUES (?, ?)", userID, company)
	if err != nil {
		t.Fatalf("seed employer: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func seedSeeker(t *testing.T, db *sql.DB, userID int64) int64 {
	t.Helper()
	res, err := db.Exec("INSERT INTO jobseeker_profiles (user_id) VALUES (?)", userID)
	if err != nil {
		t.Fatalf("seed seeker: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func seedJob(t *testing.T, db *sql.DB, employerID int64, title string, active bool) int64 {
	t.Helper()
	res, err := db.Exec(`
		INSERT INTO jobs (employer_id, title, category, description, employment_type, is_active)
		VALUES (?, ?, 'ENGINEERING', 'desc', 'FULL_TIME', ?)`, employerID, title, active)
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func seedApplication(t *testing.T, db *sql.DB, jobID, seekerID int64, status models.ApplicationStatus) int64 {
	t.Helper()
	res, err := db.Exec(
		"INSERT INTO applications (job_id, jobseeker_id, status) VALUES (?, ?, ?)",
		jobID, seekerID, string(status))
	if err != nil {
		t.Fatalf("seed application: %v", err)
	}
	id, _ := res.LastInsertId()
	return id
}

func strPtr(s string) *string { return &s }

func int64Ptr(i int64) *int64 { return &i }

func timePtr(t time.Time) *time.Time { return &t }
