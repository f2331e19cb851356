package models

import (
	"strings"
	"time"
)

// ApplicationStatus is the closed set of application states. There is no
// transition graph: any member may replace any other.
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "PENDING"
	StatusReviewing   ApplicationStatus = "REVIEWING"
	StatusShortlisted ApplicationStatus = "SHORTLISTED"
	StatusInterviewed ApplicationStatus = "INTERVIEWED"
	StatusAccepted    ApplicationStatus = "ACCEPTED"
	StatusRejected    ApplicationStatus = "REJECTED"
	StatusWithdrawn   ApplicationStatus = "WITHDRAWN"
)

// ParseStatus matches a status case-insensitively, returning false for values
// outside the set.
func ParseStatus(s string) (ApplicationStatus, bool) {
	switch ApplicationStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, true
	case StatusReviewing:
		return StatusReviewing, true
	case StatusShortlisted:
		return StatusShortlisted, true
	case StatusInterviewed:
		return StatusInterviewed, true
	case StatusAccepted:
		return StatusAccepted, true
	case StatusRejected:
		return StatusRejected, true
	case StatusWithdrawn:
		return StatusWithdrawn, true
	}
	return "", false
}

// Application links a job seeker to a job.
type Application struct {
	ID          int64             `json:"id"`
	JobID       int64             `json:"jobId"`
	JobSeekerID int64             `json:"jobSeekerId"`
	Status      ApplicationStatus `json:"status"`
	AppliedAt   time.Time         `json:"appliedAt"`

	JobSeeker *JobSeekerProfile `json:"jobSeeker,omitempty"`
	Account   *UserSummary      `json:"account,omitempty"`
	Job       *Job              `json:"job,omitempty"`
	Responses []Response        `json:"responses,omitempty"`
}

// Response is a job seeker's answer to one form field within one application.
type Response struct {
	ID            int64  `json:"id"`
	ApplicationID int64  `json:"applicationId"`
	FormFieldID   int64  `json:"formFieldId"`
	Value         string `json:"value"`

	Field *FormField `json:"field,omitempty"`
}
