package services

import (
	"errors"
	"testing"

	"github.com/talentgrid/talentgrid-be/internal/models"
)

func TestCreateUserAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user, err := svc.CreateUser("Stu", "s@uni.test", "F", "S123", "longenough", models.RoleStudent)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Email != "s@uni.test" || user.Role != models.RoleStudent {
		t.Errorf("user = %+v", user)
	}
	if user.PasswordHash != "" {
		t.Error("password hash leaked from CreateUser")
	}

	// Duplicate email is a conflict.
	if _, err := svc.CreateUser("Other", "s@uni.test", "", "", "longenough", models.RoleStudent); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate create = %v, want ErrConflict", err)
	}

	got, err := svc.AuthenticateUser("s@uni.test", "longenough", models.RoleStudent)
	if err != nil {
		t.Fatalf("AuthenticateUser: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("authenticated as %d, want %d", got.ID, user.ID)
	}
	if got.PasswordHash != "" {
		t.Error("password hash leaked from AuthenticateUser")
	}
}

func TestAuthenticateUserFailuresAreUniform(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	if _, err := svc.CreateUser("Stu", "s@uni.test", "", "", "longenough", models.RoleStudent); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	// Unknown account, wrong password and wrong role all collapse into the
	// same error.
	cases := []struct {
		name            string
		email, password string
		role            models.Role
	}{
		{"unknown email", "ghost@uni.test", "longenough", models.RoleStudent},
		{"wrong password", "s@uni.test", "wrong", models.RoleStudent},
		{"wrong role", "s@uni.test", "longenough", models.RoleEmployer},
	}
	for _, c := range cases {
		if _, err := svc.AuthenticateUser(c.email, c.password, c.role); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("%s: err = %v, want ErrInvalidCredentials", c.name, err)
		}
	}
}

func TestProfileLookupsReturnNilWhenAbsent(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)

	user := seedUser(t, db, "e@corp.test", models.RoleEmployer)

	profile, err := svc.GetEmployerByUserID(user.ID)
	if err != nil {
		t.Fatalf("GetEmployerByUserID: %v", err)
	}
	if profile != nil {
		t.Errorf("profile = %+v, want nil when none exists", profile)
	}

	id := seedEmployer(t, db, user.ID, "Corp")
	profile, err = svc.GetEmployerByUserID(user.ID)
	if err != nil {
		t.Fatalf("GetEmployerByUserID: %v", err)
	}
	if profile == nil || profile.ID != id {
		t.Errorf("profile = %+v, want id %d", profile, id)
	}
}

func TestJobSeekerCreateProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewJobSeekerService(db)

	employer := seedUser(t, db, "e@corp.test", models.RoleEmployer)
	if _, err := svc.CreateProfile(employer, JobSeekerInput{Headline: "Nope"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-seeker create = %v, want ErrForbidden", err)
	}

	seeker := seedUser(t, db, "s@seek.test", models.RoleJobSeeker)
	profile, err := svc.CreateProfile(seeker, JobSeekerInput{
		Headline: "Backend engineer", ResumeURL: "https://cv.test/s", Skills: "go,sql",
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	if profile.UserID != seeker.ID || profile.Headline != "Backend engineer" {
		t.Errorf("profile = %+v", profile)
	}

	if _, err := svc.CreateProfile(seeker, JobSeekerInput{}); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate create = %v, want ErrConflict", err)
	}
}
