package http

import (
	"errors"
	"net/http"

	"push-to-memory/internal/reflection"
	pkgErrors "push-to-memory/pkg/errors"
)

// mapError translates reflection errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, reflection.ErrReflectionNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, "reflection not found")
	case errors.Is(err, reflection.ErrEmptyReflection),
		errors.Is(err, reflection.ErrInvalidStatus),
		errors.Is(err, reflection.ErrNothingToSummarize):
		return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, reflection.ErrSummaryUnavailable):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, err.Error())
	default:
		return pkgErrors.ErrInternalServerError
	}
}
