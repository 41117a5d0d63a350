package custom_error

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusCode maps a domain error to its HTTP status.
func StatusCode(err error) int {
	var validationErr *ValidationError

	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidEmail), errors.Is(err, ErrInvalidOrExpiredToken), errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnknownAccount), errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateAccount):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond aborts the request with the status and body matching err. Server
// errors carry only the message; the cause stays in the logs.
func Respond(c *gin.Context, err error, message string) {
	status := StatusCode(err)
	body := gin.H{"error": message}
	if status < http.StatusInternalServerError {
		body["details"] = err.Error()
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		body["fields"] = validationErr.Fields
	}

	c.AbortWithStatusJSON(status, body)
}
