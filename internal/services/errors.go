package services

import "errors"

// Sentinel errors the handlers translate into the HTTP taxonomy.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveJob        = errors.New("job is not accepting applications")
)
