package models

import (
	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")
)

// Authentication related errors
var (
	ErrUnknownPrincipal  = errors.Wrap(UnAuthorizedError, "unknown principal")
	ErrDisabledPrincipal = errors.Wrap(UnAuthorizedError, "principal is disabled")
)

// Task lifecycle errors
var (
	ErrInvalidTransition = errors.Wrap(BadParameterError, "invalid task status transition")
	ErrInvalidProgress   = errors.Wrap(BadParameterError, "task progress is out of range or regressed")
	ErrUnknownTask       = errors.Wrap(NotFoundError, "unknown task")
)

// DB related errors
var ErrIgnoreRollBackError = errors.New("ignore rollback error")
