package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/talentgrid/talentgrid-be/internal/auth"
	"github.com/talentgrid/talentgrid-be/internal/models"
	"github.com/talentgrid/talentgrid-be/internal/services"
)

// newRequest builds a request carrying chi URL params and, optionally, a
// resolved identity, the way the router and middleware would.
func newRequest(t *testing.T, method string, body interface{}, identity *auth.Identity, params map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, "/", &buf)

	rctx := chi.NewRouteContext()
	for name, value := range params {
		rctx.URLParams.Add(name, value)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if identity != nil {
		ctx = auth.ContextWithIdentity(ctx, identity)
	}
	return req.WithContext(ctx)
}

func employerIdentity(employerID int64) *auth.Identity {
	return &auth.Identity{
		UserID: 1,
		Email:  "e@corp.test",
		Name:   "Emp",
		Role:   models.RoleEmployer,
		Employer: &models.EmployerProfile{
			ID: employerID, UserID: 1, CompanyName: "Corp",
		},
	}
}

// decodeValidation unpacks the validation-failure envelope and returns the
// violated field names.
func decodeValidation(t *testing.T, rec *httptest.ResponseRecorder) []string {
	t.Helper()
	var body struct {
		Error  string `json:"error"`
		Fields []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"fields"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode validation body: %v", err)
	}
	if body.Error != "validation failed" {
		t.Errorf("error = %q, want %q", body.Error, "validation failed")
	}
	names := make([]string, 0, len(body.Fields))
	for _, f := range body.Fields {
		names = append(names, f.Field)
	}
	return names
}

func hasField(names []string, want string) bool {
	for _, name := range names {
		if name == want {
			return true
		}
	}
	return false
}

// fakeUserService implements services.UserServiceProvider with canned data.
type fakeUserService struct {
	authUser    models.User
	authErr     error
	createCalls int
	createdRole models.Role
}

func (s *fakeUserService) GetUserByID(id int64) (models.User, error) {
	return models.User{ID: id, Email: "e@corp.test", Role: models.RoleEmployer}, nil
}

func (s *fakeUserService) GetUserByEmail(email string) (models.User, error) {
	return models.User{ID: 1, Email: email}, nil
}

func (s *fakeUserService) CreateUser(name, email, gender, studentNo, password string, role models.Role) (models.User, error) {
	s.createCalls++
	s.createdRole = role
	return models.User{ID: 7, Name: name, Email: email, Role: role}, nil
}

func (s *fakeUserService) AuthenticateUser(email, password string, role models.Role) (models.User, error) {
	if s.authErr != nil {
		return models.User{}, s.authErr
	}
	return s.authUser, nil
}

func (s *fakeUserService) GetEmployerByUserID(userID int64) (*models.EmployerProfile, error) {
	return nil, nil
}

func (s *fakeUserService) GetJobSeekerByUserID(userID int64) (*models.JobSeekerProfile, error) {
	return nil, nil
}

// fakeJobService implements services.JobServiceProvider, recording calls.
type fakeJobService struct {
	createCalls int
	updateCalls int
	job         models.Job
	err         error
}

func (s *fakeJobService) ListEmployerJobs(employerID int64, page, limit int, active *bool) ([]models.Job, models.Pagination, error) {
	return []models.Job{s.job}, models.Pagination{Page: page, Limit: limit, Total: 1, Pages: 1}, s.err
}

func (s *fakeJobService) SearchJobs(filter services.JobFilter, page, limit int) ([]models.Job, models.Pagination, error) {
	return []models.Job{s.job}, models.Pagination{Page: page, Limit: limit, Total: 1, Pages: 1}, s.err
}

func (s *fakeJobService) GetJob(id int64) (models.Job, error) {
	return s.job, s.err
}

func (s *fakeJobService) CreateJob(employerID int64, in services.JobInput, fields []services.FormFieldInput) (models.Job, error) {
	s.createCalls++
	if s.err != nil {
		return models.Job{}, s.err
	}
	job := s.job
	job.Title = in.Title
	job.EmployerID = employerID
	return job, nil
}

func (s *fakeJobService) UpdateJob(employerID, jobID int64, upd services.JobUpdate) (models.Job, error) {
	s.updateCalls++
	return s.job, s.err
}

func (s *fakeJobService) DeleteJob(employerID, jobID int64) error {
	return s.err
}

func (s *fakeJobService) DeactivateExpired() (map[int64]int, error) {
	return nil, s.err
}

// fakeApplicationService implements services.ApplicationServiceProvider.
type fakeApplicationService struct {
	statusCalls int
	lastStatus  models.ApplicationStatus
	app         models.Application
	err         error
}

func (s *fakeApplicationService) ListForJob(employerID, jobID int64, page, limit int, statusFilter string) ([]models.Application, models.Pagination, error) {
	if s.err != nil {
		return nil, models.Pagination{}, s.err
	}
	return []models.Application{s.app}, models.Pagination{Page: page, Limit: limit, Total: 1, Pages: 1}, nil
}

func (s *fakeApplicationService) UpdateStatus(employerID, applicationID int64, status models.ApplicationStatus) (models.Application, error) {
	s.statusCalls++
	s.lastStatus = status
	if s.err != nil {
		return models.Application{}, s.err
	}
	app := s.app
	app.Status = status
	return app, nil
}

func (s *fakeApplicationService) Apply(jobSeekerID, jobID int64, responses []services.ResponseInput) (models.Application, error) {
	return s.app, s.err
}

func (s *fakeApplicationService) ListForSeeker(jobSeekerID int64, page, limit int) ([]models.Application, models.Pagination, error) {
	return []models.Application{s.app}, models.Pagination{Page: page, Limit: limit, Total: 1, Pages: 1}, s.err
}

func (s *fakeApplicationService) Withdraw(jobSeekerID, applicationID int64) (models.Application, error) {
	return s.app, s.err
}
