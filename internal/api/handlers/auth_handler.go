package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/talentgrid/talentgrid-be/internal/api/respond"
	"github.com/talentgrid/talentgrid-be/internal/auth"
	"github.com/talentgrid/talentgrid-be/internal/models"
	"github.com/talentgrid/talentgrid-be/internal/services"
)

// AuthHandler handles signup, login, logout and identity introspection.
type AuthHandler struct {
	service    services.UserServiceProvider
	tokens     *auth.TokenManager
	cookieTTL  time.Duration
	production bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider, tokens *auth.TokenManager, cookieTTL time.Duration, production bool) *AuthHandler {
	return &AuthHandler{service: service, tokens: tokens, cookieTTL: cookieTTL, production: production}
}

// LoginPayload defines the structure for login requests.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// SignupPayload defines the structure for registration requests.
type SignupPayload struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Gender    string `json:"gender"`
	StudentNo string `json:"studentNo"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// Validate returns every violated field.
func (p SignupPayload) Validate() []respond.FieldError {
	var errs []respond.FieldError
	if p.Name == "" {
		errs = append(errs, respond.FieldError{Field: "name", Message: "is required"})
	}
	if p.Email == "" {
		errs = append(errs, respond.FieldError{Field: "email", Message: "is required"})
	} else if !emailPattern.MatchString(p.Email) {
		errs = append(errs, respond.FieldError{Field: "email", Message: "must be a valid email address"})
	}
	if len(p.Password) < 8 {
		errs = append(errs, respond.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}
	if p.Role != "" {
		if _, err := models.ParseRole(p.Role); err != nil {
			errs = append(errs, respond.FieldError{Field: "role", Message: "is not a known role"})
		}
	}
	return errs
}

// Signup handles new account registration. Without an explicit role the
// account is a STUDENT.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var payload SignupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if errs := payload.Validate(); len(errs) > 0 {
		respond.ValidationFailed(w, errs)
		return
	}

	role := models.RoleStudent
	if payload.Role != "" {
		role, _ = models.ParseRole(payload.Role)
	}

	user, err := h.service.CreateUser(payload.Name, payload.Email, payload.Gender, payload.StudentNo, payload.Password, role)
	if err != nil {
		log.Warn().Err(err).Str("email", payload.Email).Msg("Failed to register account")
		writeServiceError(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, user)
}

// Login handles authentication, sets the credential cookie and returns the
// curated user view.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var errs []respond.FieldError
	if payload.Email == "" {
		errs = append(errs, respond.FieldError{Field: "email", Message: "is required"})
	}
	if payload.Password == "" {
		errs = append(errs, respond.FieldError{Field: "password", Message: "is required"})
	}
	role, roleErr := models.ParseRole(payload.Role)
	if roleErr != nil {
		errs = append(errs, respond.FieldError{Field: "role", Message: "is not a known role"})
	}
	if len(errs) > 0 {
		respond.ValidationFailed(w, errs)
		return
	}

	user, err := h.service.AuthenticateUser(payload.Email, payload.Password, role)
	if err != nil {
		log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Generate(user)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate token")
		respond.Internal(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Expires:  time.Now().Add(h.cookieTTL),
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})

	respond.JSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user": map[string]interface{}{
			"email":  user.Email,
			"userId": user.ID,
			"role":   user.Role,
			"name":   user.Name,
		},
	})
}

// Logout clears the credential cookie. Tokens are stateless, so expiry and
// client-side clearing are the only invalidation.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.production,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	respond.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the attached identity.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "missing auth token")
		return
	}

	body := map[string]interface{}{
		"userId": identity.UserID,
		"email":  identity.Email,
		"name":   identity.Name,
		"role":   identity.Role,
	}
	if identity.Employer != nil {
		body["employer"] = identity.Employer
	}
	if identity.JobSeeker != nil {
		body["jobSeeker"] = identity.JobSeeker
	}
	respond.JSON(w, http.StatusOK, body)
}
