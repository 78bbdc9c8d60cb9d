package http

import (
	"errors"
	"net/http"

	"github.com/pfennigfuchs/pfennig/internal/finance/service"
	"github.com/pfennigfuchs/pfennig/internal/finance/store"
	"github.com/pfennigfuchs/pfennig/pkg/httpx"
	"github.com/pfennigfuchs/pfennig/pkg/slogx"
)

// writeServiceError maps service failures onto the response envelope. Only
// validation failures carry a message; everything else is just a status code,
// with unexpected errors logged and reported as 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validation service.ValidationError
	switch {
	case errors.As(err, &validation):
		httpx.WriteError(w, http.StatusBadRequest, validation.Error())
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "")
	case errors.Is(err, service.ErrNoSession):
		httpx.WriteError(w, http.StatusUnauthorized, "")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusForbidden, "")
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "")
	}
}
