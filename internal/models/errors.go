package models

import "errors"

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrWriteFailed  = errors.New("write failed")
	ErrBadRequest   = errors.New("malformed upload request")
)
