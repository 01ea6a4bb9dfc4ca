package app

import "errors"

// Errors returned by the application services. Wrapped errors carry detail;
// match them with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid lifecycle transition")
	ErrMissionNotFound    = errors.New("mission not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrServerUnavailable  = errors.New("server error, please try again later")
)
