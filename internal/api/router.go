package api

import (
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/talentgrid/talentgrid-be/internal/api/handlers"
	"github.com/talentgrid/talentgrid-be/internal/auth"
	"github.com/talentgrid/talentgrid-be/internal/middleware"
	"github.com/talentgrid/talentgrid-be/internal/models"
)

// Deps bundles everything the router needs.
type Deps struct {
	Authenticator *auth.Authenticator
	RateLimiter   *middleware.RedisLimiter
	CORSOrigin    string

	Auth        *handlers.AuthHandler
	Employer    *handlers.EmployerHandler
	Job         *handlers.JobHandler
	Application *handlers.ApplicationHandler
	JobSeeker   *handlers.JobSeekerHandler
	Feed        *handlers.FeedHandler
}

// NewRouter creates and configures a new Chi router.
func NewRouter(d Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{d.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authn := d.Authenticator

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.With(d.RateLimiter.Handler).Post("/signup", d.Auth.Signup)
			r.With(d.RateLimiter.Handler).Post("/login", d.Auth.Login)
			r.Post("/logout", d.Auth.Logout)
			r.With(authn.Require()).Get("/me", d.Auth.Me)
		})

		// Public job browsing; an identity is attached when present but never
		// required.
		r.Route("/jobs", func(r chi.Router) {
			r.Use(authn.Optional())
			r.Get("/", d.Job.Search)
			r.Get("/{id}", d.Job.Get)
		})

		r.Route("/employer", func(r chi.Router) {
			// Public profile read.
			r.With(authn.Optional()).Get("/{id}", d.Employer.Get)

			// Profile creation needs the role but, by definition, no profile
			// yet.
			r.With(authn.Require(models.RoleEmployer)).Post("/", d.Employer.Create)

			r.Group(func(r chi.Router) {
				r.Use(authn.Require(models.RoleEmployer))
				r.Use(auth.RequireCompleteProfile)

				r.Put("/{id}", d.Employer.Update)
				r.Delete("/{id}", d.Employer.Delete)
				r.Get("/{id}/stats", d.Employer.Stats)
				r.Get("/{id}/activity", d.Employer.Activity)
				r.Get("/{id}/feed", d.Feed.Serve)

				r.Get("/{id}/jobs", d.Job.List)
				r.Post("/{id}/jobs", d.Job.Create)
				r.Put("/{employerId}/jobs/{jobId}", d.Job.Update)
				r.Delete("/{employerId}/jobs/{jobId}", d.Job.Delete)
				r.Get("/{employerId}/jobs/{jobId}/applications", d.Application.ListForJob)
				r.Patch("/{employerId}/applications/{applicationId}/status", d.Application.UpdateStatus)
			})
		})

		r.Route("/jobseeker", func(r chi.Router) {
			r.With(authn.Require(models.RoleJobSeeker)).Post("/profile", d.JobSeeker.CreateProfile)

			r.Group(func(r chi.Router) {
				r.Use(authn.Require(models.RoleJobSeeker))
				r.Use(auth.RequireCompleteProfile)

				r.Post("/jobs/{id}/apply", d.JobSeeker.Apply)
				r.Get("/applications", d.JobSeeker.MyApplications)
				r.Post("/applications/{id}/withdraw", d.JobSeeker.Withdraw)
			})
		})
	})

	return r
}
