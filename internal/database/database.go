package database

import (
	"database/sql"

	_ "modernc.org/sqlite" // SQLite driver
)

// New creates a new database connection pool.
func New(dataSourceName string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dataSourceName+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate runs the SQL statements to set up the database schema.
func Migrate(db *sql.DB) error {
	const sqlStmt = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		gender TEXT,
		student_no TEXT,
		phone TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS employer_profiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL UNIQUE REFERENCES users(id),
		company_name TEXT NOT NULL,
		website TEXT,
		company_size TEXT,
		industry TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS jobseeker_profiles (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id INTEGER NOT NULL UNIQUE REFERENCES users(id),
		headline TEXT,
		resume_url TEXT,
		skills TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		employer_id INTEGER NOT NULL REFERENCES employer_profiles(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL,
		requirements TEXT,
		location TEXT,
		employment_type TEXT NOT NULL,
		salary_min INTEGER,
		salary_max INTEGER,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		expires_at DATETIME,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS job_form_fields (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id INTEGER NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		label TEXT NOT NULL,
		field_type TEXT NOT NULL,
		required BOOLEAN NOT NULL DEFAULT FALSE,
		position INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS applications (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		job_id INTEGER NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		jobseeker_id INTEGER NOT NULL REFERENCES jobseeker_profiles(id),
		status TEXT NOT NULL DEFAULT 'PENDING',
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(job_id, jobseeker_id)
	);

	CREATE TABLE IF NOT EXISTS application_responses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		application_id INTEGER NOT NULL REFERENCES applications(id) ON DELETE CASCADE,
		form_field_id INTEGER NOT NULL REFERENCES job_form_fields(id),
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT NOT NULL PRIMARY KEY,
		employer_id INTEGER NOT NULL REFERENCES employer_profiles(id) ON DELETE CASCADE,
		type TEXT NOT NULL,
		level TEXT NOT NULL,
		message TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_jobs_employer ON jobs(employer_id);
	CREATE INDEX IF NOT EXISTS idx_applications_job ON applications(job_id);
	CREATE INDEX IF NOT EXISTS idx_applications_seeker ON applications(jobseeker_id);
	CREATE INDEX IF NOT EXISTS idx_events_employer ON events(employer_id);
	`
	_, err := db.Exec(sqlStmt)
	return err
}
