package models

import "time"

// Event is one entry in an employer's activity log.
type Event struct {
	ID         string    `json:"id"`
	EmployerID int64     `json:"employerId"`
	Type       string    `json:"type"`
	Level      string    `json:"level"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Pagination is the envelope metadata for paginated listings.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}
