package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tripplanhq/tripplan-backend/models"
	"github.com/tripplanhq/tripplan-backend/utils"
)

const userContextKey = "userContext"

// UserContext extracts the caller identity the gateway forwards in
// headers. Identity is optional here; RequireAuth enforces it where
// routes need it.
func UserContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-Id")
		if userID == "" {
			c.Next()
			return
		}

		user := &models.UserContext{
			ID:    userID,
			Email: c.GetHeader("X-User-Email"),
		}
		if raw := c.GetHeader("X-User-Roles"); raw != "" {
			for _, role := range strings.Split(raw, ",") {
				if role = strings.TrimSpace(role); role != "" {
					user.Roles = append(user.Roles, role)
				}
			}
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAuth aborts requests that carry no caller identity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUser(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"message": utils.ErrAuthRequired,
			})
			return
		}
		c.Next()
	}
}

// GetUser returns the caller identity set by UserContext, or nil.
func GetUser(c *gin.Context) *models.UserContext {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.UserContext)
	if !ok {
		return nil
	}
	return user
}
