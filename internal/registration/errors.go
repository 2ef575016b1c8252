package registration

import "errors"

var (
	ErrRegistrationNotFound = errors.New("webhook registration not found")
	ErrAlreadyRegistered    = errors.New("source already registered")
	ErrNotOwner             = errors.New("registration belongs to another user")
	ErrInvalidSource        = errors.New("invalid source")
	ErrMissingAccessToken   = errors.New("github access token is required")
	ErrMissingCallbackURL   = errors.New("public callback url is not configured")
)
