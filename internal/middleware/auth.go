// Package middleware carries the gin middleware for request identity.
// Authentication itself happens at the edge proxy; the service trusts the
// forwarded user header and resolves it to a user record.
package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/anujghosh1220/restaurant-management-system/internal/models"
	"github.com/anujghosh1220/restaurant-management-system/internal/repository"
)

const (
	// HeaderUserID is set by the edge proxy after it authenticates the caller.
	HeaderUserID = "X-User-ID"

	// ContextUserKey is where the resolved user lives in the gin context.
	ContextUserKey = "user"
)

// RequireUser resolves the forwarded user header to a user record and aborts
// with 401 when the header is missing or does not match a user.
func RequireUser(userRepo repository.UserRepository, logger *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(HeaderUserID)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user identity"})
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"user_id": userID,
				"error":   err.Error(),
			}).Warn("Failed to resolve user header")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the resolved user is an administrator.
// It must run after RequireUser.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := UserFrom(c)
		if user == nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

// UserFrom returns the resolved user from the gin context, or nil.
func UserFrom(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}
