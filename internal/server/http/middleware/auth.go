package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/threadcart/garmentshop/internal/domain/model"
	pkgAuth "github.com/threadcart/garmentshop/internal/pkg/auth"
)

const (
	// UserContextKey is a gin context key for the authenticated account.
	UserContextKey = "currentUser"
	authCookieName = "garmentshop_token"
)

// Authenticator resolves a bearer token into an account.
type Authenticator interface {
	ParseToken(token string) (int64, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)
}

// AuthRequired ensures the caller presents a valid token before the handler
// runs and stores the resolved account in context.
func AuthRequired(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		userID, err := auth.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		user, err := auth.UserByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		c.Set(UserContextKey, user)
		c.Next()
	}
}

// ManagerRequired rejects callers whose account role is not manager.
// Must run after AuthRequired.
func ManagerRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := c.Get(UserContextKey)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		user, _ := val.(*model.User)
		if user == nil || user.Role != model.RoleManager {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

// SetAuthCookie writes the auth token cookie to the response.
func SetAuthCookie(c *gin.Context, token string) {
	c.SetCookie(authCookieName, token, 0, "/", "", false, true)
	c.Header("Authorization", "Bearer "+token)
}
