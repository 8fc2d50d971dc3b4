package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-api/pkg/errors"
)

// ErrorResponse is the body written for every JSON error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusCode maps err onto an HTTP status. Anything that is not an
// AppError is a 500.
func StatusCode(err error) int {
	if appErr, ok := errors.As(err); ok {
		return appErr.StatusCode()
	}
	return http.StatusInternalServerError
}

// Message returns the client-safe text for err. Wrapped causes are never
// exposed.
func Message(err error) string {
	if appErr, ok := errors.As(err); ok {
		return appErr.Message
	}
	return "internal server error"
}

// RespondWithError writes {"error": ...} with the status mapped from err
// and records err on the gin context for the logging middleware.
func RespondWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(StatusCode(err), ErrorResponse{Error: Message(err)})
}

// RespondWithText writes a plain text body.
func RespondWithText(c *gin.Context, status int, text string) {
	c.String(status, text)
}
