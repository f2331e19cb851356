package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/talentgrid/talentgrid-be/internal/auth"
	"github.com/talentgrid/talentgrid-be/internal/models"
	"github.com/talentgrid/talentgrid-be/internal/services"
)

func newAuthHandler(svc *fakeUserService) *AuthHandler {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthHandler(svc, tokens, time.Hour, false)
}

func TestLoginSuccess(t *testing.T) {
	svc := &fakeUserService{
		authUser: models.User{ID: 5, Name: "Emp", Email: "e@corp.test", Role: models.RoleEmployer},
	}
	h := newAuthHandler(svc)

	req := newRequest(t, http.MethodPost, LoginPayload{
		Email: "e@corp.test", Password: "secretpw", Role: "EMPLOYER",
	}, nil, nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	// The credential cookie is set httpOnly on the root path.
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("no token cookie set")
	}
	if !cookie.HttpOnly || cookie.Path != "/" || cookie.Value == "" {
		t.Errorf("cookie = %+v, want httpOnly with path /", cookie)
	}

	var body struct {
		Token string `json:"token"`
		User  struct {
			Email  string `json:"email"`
			UserID int64  `json:"userId"`
			Role   string `json:"role"`
			Name   string `json:"name"`
		} `json:"user"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Token != cookie.Value {
		t.Error("body token differs from cookie token")
	}
	if body.User.Email != "e@corp.test" || body.User.UserID != 5 ||
		body.User.Role != "EMPLOYER" || body.User.Name != "Emp" {
		t.Errorf("user view = %+v", body.User)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := &fakeUserService{authErr: services.ErrInvalidCredentials}
	h := newAuthHandler(svc)

	req := newRequest(t, http.MethodPost, LoginPayload{
		Email: "e@corp.test", Password: "wrong", Role: "EMPLOYER",
	}, nil, nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			t.Error("token cookie set on failed login")
		}
	}
}

func TestLoginUnknownRole(t *testing.T) {
	svc := &fakeUserService{}
	h := newAuthHandler(svc)

	req := newRequest(t, http.MethodPost, LoginPayload{
		Email: "e@corp.test", Password: "secretpw", Role: "SUPERUSER",
	}, nil, nil)
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if names := decodeValidation(t, rec); !hasField(names, "role") {
		t.Errorf("violated fields = %v, want role", names)
	}
}

func TestSignupDefaultsToStudent(t *testing.T) {
	svc := &fakeUserService{}
	h := newAuthHandler(svc)

	req := newRequest(t, http.MethodPost, SignupPayload{
		Name: "Stu", Email: "s@uni.test", Password: "longenough",
	}, nil, nil)
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}
	if svc.createdRole != models.RoleStudent {
		t.Errorf("role = %q, want STUDENT default", svc.createdRole)
	}
}

func TestSignupValidation(t *testing.T) {
	svc := &fakeUserService{}
	h := newAuthHandler(svc)

	req := newRequest(t, http.MethodPost, SignupPayload{
		Name: "", Email: "not-an-email", Password: "short",
	}, nil, nil)
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	names := decodeValidation(t, rec)
	for _, want := range []string{"name", "email", "password"} {
		if !hasField(names, want) {
			t.Errorf("violated fields = %v, missing %s", names, want)
		}
	}
	if svc.createCalls != 0 {
		t.Error("store touched despite validation failure")
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	h := newAuthHandler(&fakeUserService{})

	rec := httptest.NewRecorder()
	h.Logout(rec, newRequest(t, http.MethodPost, nil, nil, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("no token cookie in logout response")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Errorf("cookie not expired: %+v", cookie)
	}
}

func TestMeNestsProfile(t *testing.T) {
	h := newAuthHandler(&fakeUserService{})

	identity := employerIdentity(10)
	rec := httptest.NewRecorder()
	h.Me(rec, newRequest(t, http.MethodGet, nil, identity, nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := body["employer"]; !ok {
		t.Error("employer profile missing from identity view")
	}
}

func TestMeWithoutIdentity(t *testing.T) {
	h := newAuthHandler(&fakeUserService{})

	rec := httptest.NewRecorder()
	h.Me(rec, newRequest(t, http.MethodGet, nil, nil, nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
