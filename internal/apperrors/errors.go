// Package apperrors holds the sentinel errors the service layer
// classifies failures with. Handlers map them to response codes
// with errors.Is; anything unclassified is a storage error.
package apperrors

import "errors"

var (
	ErrValidation = errors.New("invalid input")
	ErrConflict   = errors.New("already registered")
	ErrNotFound   = errors.New("not found")
)
