// Package httperr maps the engine's error kinds to HTTP status codes.
package httperr

import (
	"errors"
	"net/http"

	"github.com/mbertolucci/conciliador/internal/bankimport"
	"github.com/mbertolucci/conciliador/internal/reconciliation"
)

func Status(err error) int {
	switch {
	case errors.Is(err, reconciliation.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, reconciliation.ErrOwnershipMismatch):
		return http.StatusForbidden
	case errors.Is(err, reconciliation.ErrAlreadyReconciled):
		return http.StatusConflict
	case errors.Is(err, reconciliation.ErrIncompatibleKind),
		errors.Is(err, reconciliation.ErrInvalidInput),
		errors.Is(err, bankimport.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, reconciliation.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
