package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/talentgrid/talentgrid-be/internal/api/respond"
	"github.com/talentgrid/talentgrid-be/internal/services"
)

// pathID parses a numeric path parameter. A non-numeric value is a validation
// error, reported before any store access.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		respond.ValidationFailed(w, []respond.FieldError{
			{Field: name, Message: "must be a positive integer"},
		})
		return 0, false
	}
	return id, true
}

// pageParams reads page/limit query values. Out-of-range values are clamped
// by the service layer.
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return page, limit
}

// writeServiceError maps service sentinel errors onto the HTTP taxonomy.
// Anything unrecognized is an internal error: logged, generic body.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrForbidden):
		respond.Error(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, services.ErrConflict):
		respond.Error(w, http.StatusBadRequest, "already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, services.ErrInactiveJob):
		respond.Error(w, http.StatusBadRequest, "job is not accepting applications")
	default:
		respond.Internal(w, err)
	}
}
