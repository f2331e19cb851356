package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/talentgrid/talentgrid-be/internal/api/respond"
	"github.com/talentgrid/talentgrid-be/internal/models"
)

// Directory loads accounts and their role profiles for the session resolver.
// Profile lookups return (nil, nil) when no profile exists.
type Directory interface {
	GetUserByID(id int64) (models.User, error)
	GetEmployerByUserID(userID int64) (*models.EmployerProfile, error)
	GetJobSeekerByUserID(userID int64) (*models.JobSeekerProfile, error)
}

// Identity is the request-scoped identity attached by the session resolver.
type Identity struct {
	UserID int64
	Email  string
	Name   string
	Role   models.Role

	// Populated for the matching role; nil otherwise or when no profile exists.
	Employer  *models.EmployerProfile
	JobSeeker *models.JobSeekerProfile
}

type contextKey string

const identityKey = contextKey("identity")

// IdentityFromContext returns the identity attached by the resolver, if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey).(*Identity)
	return id, ok
}

// ContextWithIdentity attaches an identity to the context the way the resolver
// does.
func ContextWithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// Authenticator resolves bearer credentials into request identities.
type Authenticator struct {
	tokens *TokenManager
	dir    Directory
}

// NewAuthenticator creates an Authenticator.
func NewAuthenticator(tokens *TokenManager, dir Directory) *Authenticator {
	return &Authenticator{tokens: tokens, dir: dir}
}

// extractToken prefers the Authorization header and falls back to the cookie.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if cookie, err := r.Cookie("token"); err == nil {
		return cookie.Value
	}
	return ""
}

// resolve verifies the credential and loads the matching identity. The int
// return is the HTTP status to fail with; 0 means success.
func (a *Authenticator) resolve(r *http.Request) (*Identity, int, string) {
	tokenStr := extractToken(r)
	if tokenStr == "" {
		return nil, http.StatusUnauthorized, "missing auth token"
	}

	claims, err := a.tokens.Validate(tokenStr)
	if err != nil {
		return nil, http.StatusUnauthorized, "invalid auth token"
	}

	claimedRole, err := models.ParseRole(claims.Role)
	if err != nil {
		return nil, http.StatusUnauthorized, "invalid auth token"
	}

	user, err := a.dir.GetUserByID(claims.UserID)
	if err != nil {
		return nil, http.StatusNotFound, "account not found"
	}

	// The stored role is authoritative; a stale or forged role claim fails.
	if user.Role != claimedRole {
		return nil, http.StatusUnauthorized, "role mismatch"
	}

	identity := &Identity{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
	}

	switch user.Role {
	case models.RoleEmployer:
		profile, err := a.dir.GetEmployerByUserID(user.ID)
		if err != nil {
			return nil, http.StatusInternalServerError, "internal server error"
		}
		identity.Employer = profile
	case models.RoleJobSeeker:
		profile, err := a.dir.GetJobSeekerByUserID(user.ID)
		if err != nil {
			return nil, http.StatusInternalServerError, "internal server error"
		}
		identity.JobSeeker = profile
	}

	return identity, 0, ""
}

// Require returns middleware that authenticates the request and, when roles
// are given, rejects identities outside the set with 403.
func (a *Authenticator) Require(roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, status, msg := a.resolve(r)
			if identity == nil {
				respond.Error(w, status, msg)
				return
			}
			if len(roles) > 0 {
				allowed := false
				for _, role := range roles {
					if identity.Role == role {
						allowed = true
						break
					}
				}
				if !allowed {
					respond.Error(w, http.StatusForbidden, "insufficient role")
					return
				}
			}
			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), identity)))
		})
	}
}

// Optional authenticates when a valid credential is present and proceeds
// without an identity otherwise. It never short-circuits the request.
func (a *Authenticator) Optional() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if identity, status, _ := a.resolve(r); status == 0 {
				r = r.WithContext(ContextWithIdentity(r.Context(), identity))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireCompleteProfile rejects EMPLOYER and JOB_SEEKER identities that have
// not created their role profile yet. Other roles pass through. It must be
// composed after Require.
func RequireCompleteProfile(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			respond.Error(w, http.StatusUnauthorized, "missing auth token")
			return
		}
		switch identity.Role {
		case models.RoleEmployer:
			if identity.Employer == nil {
				respond.Error(w, http.StatusBadRequest, "employer profile incomplete")
				return
			}
		case models.RoleJobSeeker:
			if identity.JobSeeker == nil {
				respond.Error(w, http.StatusBadRequest, "job seeker profile incomplete")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
