package middleware

import (
	"net/http"
	"strings"

	"github.com/vik9386/backend/internal/common/httpx"
	"github.com/vik9386/backend/internal/utils"

	"github.com/gin-gonic/gin"
)

// bearerToken pulls the access token from the accessToken cookie, falling
// back to an Authorization: Bearer header.
func bearerToken(c *gin.Context) string {
	if cookie, err := c.Cookie("accessToken"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// JWTAuth rejects requests without a valid access token and injects the
// caller's identity into the gin context.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			httpx.WriteError(c, http.StatusUnauthorized, "unauthorized request")
			c.Abort()
			return
		}

		claims, err := utils.ParseAccessToken(token)
		if err != nil {
			httpx.WriteError(c, http.StatusUnauthorized, "invalid access token")
			c.Abort()
			return
		}

		c.Set("id", claims.ID)
		c.Set("username", claims.Username)
		c.Next()
	}
}

// OptionalJWTAuth injects the caller's identity when a valid access token is
// present and lets anonymous requests through untouched.
func OptionalJWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if claims, err := utils.ParseAccessToken(token); err == nil {
				c.Set("id", claims.ID)
				c.Set("username", claims.Username)
			}
		}
		c.Next()
	}
}

// CurrentUserID reads the authenticated user id set by JWTAuth. The second
// return is false for anonymous requests.
func CurrentUserID(c *gin.Context) (uint, bool) {
	val, exists := c.Get("id")
	if !exists {
		return 0, false
	}
	id, ok := val.(uint)
	if !ok {
		return 0, false
	}
	return id, true
}
