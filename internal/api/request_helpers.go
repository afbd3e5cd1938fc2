package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// getPathID extracts a positive integer ID from the URL path parameters.
func getPathID(r *http.Request, paramName string) (int64, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return 0, domain.NewValidationError(paramName, "is required", nil)
	}

	id, err := strconv.ParseInt(pathParam, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(paramName, "must be a positive integer", domain.ErrInvalidID)
	}
	return id, nil
}

// requireIdentity returns the caller's identity, writing a 401 if the request
// is anonymous. Policy normally rejects such requests before they get here.
func requireIdentity(w http.ResponseWriter, r *http.Request) (shared.Identity, bool) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized)
		return shared.Identity{}, false
	}
	return identity, true
}

// parseTaskFilter reads the completada and orden query parameters.
func parseTaskFilter(r *http.Request) (domain.TaskFilter, error) {
	q := r.URL.Query()

	var filter domain.TaskFilter
	if raw := q.Get("completada"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return domain.TaskFilter{}, domain.NewValidationError("completada", "must be true or false", nil)
		}
		filter.Completed = &completed
	}
	filter.Order = domain.ParseTaskOrder(q.Get("orden"))
	return filter, nil
}

// decodeAndValidate decodes the JSON body into v and validates it, writing
// a 400 and returning false on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		handleDecodeError(w, r, err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		HandleValidationError(w, r, err)
		return false
	}
	return true
}
