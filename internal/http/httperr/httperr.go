// Package httperr maps domain errors onto HTTP responses.
package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/MrJamesThe3rd/homa/internal/building"
)

func Write(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, building.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, building.ErrMissingInput):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
