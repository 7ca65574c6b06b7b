package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"icatdirect/internal/domain"
	"icatdirect/internal/httputil"
)

// handleError converts domain errors to HTTP responses.
// Database failures are logged here and reported without driver detail.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var (
		argErr  *domain.InvalidArgumentError
		execErr *domain.QueryExecutionError
	)

	switch {
	case errors.As(err, &argErr):
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, err.Error(), map[string]interface{}{
			"argument": argErr.Argument,
		})
	case errors.Is(err, domain.ErrInvalidArgument):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.As(err, &execErr):
		logger.Error("catalog query failed", "query", execErr.Query, "error", execErr.Err)
		httputil.RespondErrorWithExtras(w, execErr.StatusCode(), "catalog query failed", map[string]interface{}{
			"query": execErr.Query,
		})
	case errors.Is(err, domain.ErrUnknownQuery):
		logger.Error("unknown catalog query", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	default:
		logger.Error("request failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
