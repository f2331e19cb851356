package models

import "time"

// EmployerProfile extends an EMPLOYER account with company details. At most one
// profile exists per account, and UserID never changes after creation.
type EmployerProfile struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	CompanyName string    `json:"companyName"`
	Website     string    `json:"website,omitempty"`
	CompanySize string    `json:"companySize,omitempty"`
	Industry    string    `json:"industry,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`

	Jobs []Job `json:"jobs,omitempty"`
}

// JobSeekerProfile extends a JOB_SEEKER account and makes it eligible to apply.
type JobSeekerProfile struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Headline  string    `json:"headline,omitempty"`
	ResumeURL string    `json:"resumeUrl,omitempty"`
	Skills    string    `json:"skills,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// EmployerStats holds the aggregate counts for an employer dashboard.
type EmployerStats struct {
	TotalJobs             int64 `json:"totalJobs"`
	ActiveJobs            int64 `json:"activeJobs"`
	InactiveJobs          int64 `json:"inactiveJobs"`
	TotalApplications     int64 `json:"totalApplications"`
	PendingApplications   int64 `json:"pendingApplications"`
	ReviewingApplications int64 `json:"reviewingApplications"`
	AcceptedApplications  int64 `json:"acceptedApplications"`
	RejectedApplications  int64 `json:"rejectedApplications"`
}
