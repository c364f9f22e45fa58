package api

import (
	"errors"   // Error kind matching
	"net/http" // HTTP status codes
	"strconv"  // Path ID parsing

	"wanderlist/internal/domain"     // Error kinds
	"wanderlist/internal/middleware" // Request context keys

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// statusFor maps an error kind to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrDuplicate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrMissingToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": message}. Unclassified errors are logged
// and answered with a generic 500 so driver messages never reach the client.
func respondError(c *gin.Context, err error) {
	var derr *domain.Error
	status := statusFor(err)
	if status == http.StatusInternalServerError || !errors.As(err, &derr) {
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.RequestIDKey), // Request ID
			"path":       c.FullPath(),                         // Route
			"error":      err.Error(),                          // Error message
		}).Error("Server error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(status, gin.H{"error": derr.Message})
}

// currentUserID reads the identity set by the JWT middleware, answering 401 when absent
func currentUserID(c *gin.Context) (uint, bool) {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok || identity.ID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return identity.ID, true
}

// pathID parses the :id route parameter, answering 400 when it is not a positive integer
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}
