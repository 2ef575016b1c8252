package http

import (
	"errors"
	"net/http"

	"push-to-memory/internal/registration"
	pkgErrors "push-to-memory/pkg/errors"
)

var (
	errInvalidKind = pkgErrors.NewHTTPError(http.StatusBadRequest, "kind must be organization or repository")
)

// mapError translates registration errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, registration.ErrAlreadyRegistered):
		return pkgErrors.NewHTTPError(http.StatusConflict, "source already registered")
	case errors.Is(err, registration.ErrNotOwner):
		return pkgErrors.NewHTTPError(http.StatusForbidden, "registration belongs to another user")
	case errors.Is(err, registration.ErrRegistrationNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "webhook registration not found")
	case errors.Is(err, registration.ErrInvalidSource),
		errors.Is(err, registration.ErrMissingAccessToken):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, registration.ErrMissingCallbackURL):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
