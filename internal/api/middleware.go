package api

import (
	"net/http"

	"github.com/probtrack/probtrack/internal/auth"
	"github.com/probtrack/probtrack/internal/config"
	"github.com/probtrack/probtrack/internal/util"

	"github.com/gin-gonic/gin"
)

// sessionCookie carries the session token issued by the login exchange.
const sessionCookie = "token"

// CORSMiddleware provides a configurable CORS middleware.
func CORSMiddleware(cfg config.CORS) gin.HandlerFunc {
	return func(c *gin.Context) {
		// If no origins are configured, do nothing.
		if len(cfg.AllowedOrigins) == 0 {
			c.Next()
			return
		}

		origin := c.Request.Header.Get("Origin")
		allowOrigin := ""

		for _, o := range cfg.AllowedOrigins {
			if o == "*" {
				allowOrigin = "*"
				break
			}
			if o == origin {
				allowOrigin = origin
				break
			}
		}

		// Only set headers if the origin is allowed.
		if allowOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowOrigin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")

			if c.Request.Method == "OPTIONS" {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
		}
		c.Next()
	}
}

// AuthMiddleware resolves the session cookie to an internal user id. It
// never talks to the OAuth provider; the token was issued locally at login.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(sessionCookie)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, "login required")
			c.Abort()
			return
		}

		claims, err := auth.ValidateSessionToken(tokenString, secret)
		if err != nil {
			util.Error(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		c.Set("userID", claims.Subject)
		c.Next()
	}
}
