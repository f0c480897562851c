package errors

import "errors"

var (
	ErrAlreadyExists       = errors.New("already exists")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrPaymentIncomplete   = errors.New("payment incomplete")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidOrder        = errors.New("invalid order request")
)
