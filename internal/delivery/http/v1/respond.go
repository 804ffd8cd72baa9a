package v1

import (
	"net/http"

	"geeta-backend/internal/domain"
	"geeta-backend/pkg/utils"
)

// writeDomainError maps the typed error taxonomy onto HTTP status codes:
// ValidationError/InvalidInputError -> 400, NotFoundError -> 404,
// TransientError -> 503 (retryable), anything else -> 500. The specific
// reason is always returned so the admin UI can highlight the offending
// field.
func writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case domain.IsValidation(err), domain.IsInvalidInput(err):
		status = http.StatusBadRequest
		message = err.Error()
	case domain.IsNotFound(err):
		status = http.StatusNotFound
		message = err.Error()
	case domain.IsTransient(err):
		status = http.StatusServiceUnavailable
		message = "service temporarily unavailable, retry later"
	}

	utils.WriteJSON(w, status, domain.Response{Success: false, Message: message})
}
