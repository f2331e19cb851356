package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/talentgrid/talentgrid-be/internal/models"
)

func TestNormalizePagination(t *testing.T) {
	cases := []struct {
		inPage, inLimit   int
		outPage, outLimit int
	}{
		{0, 0, 1, 10},
		{-3, 0, 1, 10},
		{1, -5, 1, 1},
		{2, 50, 2, 50},
		{1, 100, 1, 100},
		{1, 101, 1, 100},
		{1, 100000, 1, 100},
	}
	for _, c := range cases {
		page, limit := NormalizePagination(c.inPage, c.inLimit)
		if page != c.outPage || limit != c.outLimit {
			t.Errorf("NormalizePagination(%d, %d) = (%d, %d), want (%d, %d)",
				c.inPage, c.inLimit, page, limit, c.outPage, c.outLimit)
		}
	}
}

func TestListEmployerJobsPagination(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "e@corp.test", models.RoleEmployer)
	employerID := seedEmployer(t, db, user.ID, "Corp")
	for i := 0; i < 25; i++ {
		seedJob(t, db, employerID, fmt.Sprintf("Job %d", i), i%2 == 0)
	}

	svc := NewJobService(db)

	jobs, pagination, err := svc.ListEmployerJobs(employerID, 2, 10, nil)
	if err != nil {
		t.Fatalf("ListEmployerJobs: %v", err)
	}
	if len(jobs) != 10 {
		t.Errorf("page 2 returned %d jobs, want 10", len(jobs))
	}
	if pagination.Total != 25 {
		t.Errorf("total = %d, want 25", pagination.Total)
	}
	if pagination.Pages != 3 {
		t.Errorf("pages = %d, want ceil(25/10) = 3", pagination.Pages)
	}

	// Limit above the cap clamps to 100.
	jobs, pagination, err = svc.ListEmployerJobs(employerID, 1, 500, nil)
	if err != nil {
		t.Fatalf("ListEmployerJobs: %v", err)
	}
	if pagination.Limit != 100 {
		t.Errorf("limit = %d, want clamp to 100", pagination.Limit)
	}
	if len(jobs) != 25 {
		t.Errorf("returned %d jobs, want all 25", len(jobs))
	}

	// Active filter.
	active := true
	jobs, pagination, err = svc.ListEmployerJobs(employerID, 1, 100, &active)
	if err != nil {
		t.Fatalf("ListEmployerJobs: %v", err)
	}
	if pagination.Total != 13 {
		t.Errorf("active total = %d, want 13", pagination.Total)
	}
	for _, job := range jobs {
		if !job.IsActive {
			t.Errorf("job %d is inactive in active-filtered listing", job.ID)
		}
	}
}

func TestCreateJobWithFormFields(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "e@corp.test", models.RoleEmployer)
	employerID := seedEmployer(t, db, user.ID, "Corp")

	svc := NewJobService(db)
	job, err := svc.CreateJob(employerID, JobInput{
		Title:          "Backend Engineer",
		Category:       "engineering",
		Description:    "Build things",
		EmploymentType: "full_time",
		SalaryMin:      int64Ptr(50000),
		SalaryMax:      int64Ptr(90000),
	}, []FormFieldInput{
		{Label: "Cover letter", Type: "TEXTAREA", Required: true, Position: 1},
		{Label: "Portfolio", Type: "TEXT", Position: 2},
	})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	if job.Category != models.CategoryEngineering {
		t.Errorf("category = %q, want normalized ENGINEERING", job.Category)
	}
	if len(job.FormFields) != 2 {
		t.Fatalf("form fields = %d, want 2", len(job.FormFields))
	}
	if job.FormFields[0].Label != "Cover letter" || job.FormFields[1].Label != "Portfolio" {
		t.Errorf("form fields out of order: %+v", job.FormFields)
	}
	if !job.IsActive {
		t.Error("new job should default to active")
	}
}

func TestUpdateJobReplacesFormFieldsAtomically(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "e@corp.test", models.RoleEmployer)
	employerID := seedEmployer(t, db, user.ID, "Corp")

	svc := NewJobService(db)
	job, err := svc.CreateJob(employerID, JobInput{
		Title:          "Original",
		Category:       "DESIGN",
		Description:    "desc",
		EmploymentType: "CONTRACT",
	}, []FormFieldInput{{Label: "Old field", Type: "TEXT", Position: 1}})
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	// A bad descriptor after the job row was already updated must roll
	// everything back.
	fields := []FormFieldInput{
		{Label: "New field", Type: "TEXT", Position: 1},
		{Label: "Broken", Type: "NOT_A_TYPE", Position: 2},
	}
	_, err = svc.UpdateJob(employerID, job.ID, JobUpdate{
		Title:  strPtr("Changed"),
		Fields: &fields,
	})
	if err == nil {
		t.Fatal("UpdateJob accepted an invalid field type")
	}

	after, err := svc.GetJob(job.ID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if after.Title != "Original" {
		t.Errorf("title = %q after failed update, want unchanged %q", after.Title, "Original")
	}
	if len(after.FormFields) != 1 || after.FormFields[0].Label != "Old field" {
		t.Errorf("form fields changed after failed update: %+v", after.FormFields)
	}

	// The same update with valid fields applies both halves.
	fields = []FormFieldInput{
		{Label: "New field", Type: "TEXT", Position: 1},
		{Label: "Second", Type: "SELECT", Position: 2},
	}
	updated, err := svc.UpdateJob(employerID, job.ID, JobUpdate{
		Title:  strPtr("Changed"),
		Fields: &fields,
	})
	if err != nil {
		t.Fatalf("UpdateJob: %v", err)
	}
	if updated.Title != "Changed" {
		t.Errorf("title = %q, want Changed", updated.Title)
	}
	if len(updated.FormFields) != 2 {
		t.Errorf("form fields = %d, want 2", len(updated.FormFields))
	}
}

func TestUpdateJobScopedToEmployer(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@corp.test", models.RoleEmployer)
	other := seedUser(t, db, "other@corp.test", models.RoleEmployer)
	ownerID := seedEmployer(t, db, owner.ID, "Owner Corp")
	otherID := seedEmployer(t, db, other.ID, "Other Corp")
	jobID := seedJob(t, db, ownerID, "Job", true)

	svc := NewJobService(db)
	_, err := svc.UpdateJob(otherID, jobID, JobUpdate{Title: strPtr("Hijacked")})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign employer update = %v, want ErrNotFound", err)
	}

	job, err := svc.GetJob(jobID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if job.Title != "Job" {
		t.Errorf("title changed to %q by a foreign employer", job.Title)
	}
}

func TestDeleteJobCompositeKey(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner@corp.test", models.RoleEmployer)
	other := seedUser(t, db, "other@corp.test", models.RoleEmployer)
	ownerID := seedEmployer(t, db, owner.ID, "Owner Corp")
	otherID := seedEmployer(t, db, other.ID, "Other Corp")
	jobID := seedJob(t, db, ownerID, "Job", true)

	svc := NewJobService(db)
	if err := svc.DeleteJob(otherID, jobID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign delete = %v, want ErrNotFound", err)
	}
	if _, err := svc.GetJob(jobID); err != nil {
		t.Fatalf("job vanished after foreign delete attempt: %v", err)
	}

	if err := svc.DeleteJob(ownerID, jobID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if _, err := svc.GetJob(jobID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetJob after delete = %v, want ErrNotFound", err)
	}
}

func TestDeactivateExpired(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "e@corp.test", models.RoleEmployer)
	employerID := seedEmployer(t, db, user.ID, "Corp")

	svc := NewJobService(db)
	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(24 * time.Hour)

	expired, err := svc.CreateJob(employerID, JobInput{
		Title: "Expired", Category: "SALES", Description: "d",
		EmploymentType: "FULL_TIME", ExpiresAt: timePtr(past),
	}, nil)
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	fresh, err := svc.CreateJob(employerID, JobInput{
		Title: "Fresh", Category: "SALES", Description: "d",
		EmploymentType: "FULL_TIME", ExpiresAt: timePtr(future),
	}, nil)
	if err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	byEmployer, err := svc.DeactivateExpired()
	if err != nil {
		t.Fatalf("DeactivateExpired: %v", err)
	}
	if byEmployer[employerID] != 1 {
		t.Errorf("deactivated %d jobs for employer, want 1", byEmployer[employerID])
	}

	got, _ := svc.GetJob(expired.ID)
	if got.IsActive {
		t.Error("expired job still active after sweep")
	}
	got, _ = svc.GetJob(fresh.ID)
	if !got.IsActive {
		t.Error("unexpired job was deactivated")
	}
}
