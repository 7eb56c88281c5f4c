package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every endpoint answers with the same envelope: a success boolean plus
// either a payload or an error string.

// OK sends a success envelope merged with the given payload fields.
func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail sends a failure envelope with the given status and error message.
func Fail(c *gin.Context, statusCode int, errorMessage string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   errorMessage,
	})
}

// BadRequest sends a 400 failure envelope.
func BadRequest(c *gin.Context, errorMessage string) {
	Fail(c, http.StatusBadRequest, errorMessage)
}

// NotFound sends a 404 failure envelope.
func NotFound(c *gin.Context, errorMessage string) {
	Fail(c, http.StatusNotFound, errorMessage)
}

// InternalServerError sends a 500 failure envelope.
func InternalServerError(c *gin.Context, errorMessage string) {
	Fail(c, http.StatusInternalServerError, errorMessage)
}

// ServiceUnavailable sends a 503 failure envelope telling the caller to
// fall back to the step-by-step form.
func ServiceUnavailable(c *gin.Context, errorMessage string) {
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"success":          false,
		"error":            errorMessage,
		"fallback_to_form": true,
	})
}
