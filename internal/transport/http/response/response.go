package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"toodoo/internal/domain"
)

// StatusOf maps a domain error kind to its transport status. Anything
// outside the taxonomy is a 500.
func StatusOf(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// Fail terminates the request with the error's status and an
// {"error": message} body. Wrapped causes of storage errors stay
// server-side.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(StatusOf(err), gin.H{"error": err.Error()})
}

// BadRequest reports a malformed request body or parameter.
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
