package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/social-blog-api/internal/auth"
)

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Str("path", c.Request.URL.Path).Msg("Panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		if id := identity(c); !id.Anonymous() {
			event = event.Str("user_id", id.UserID)
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// identityMiddleware resolves the bearer token, if any. Missing or invalid
// tokens leave the request anonymous; requireAuth decides whether that matters.
func identityMiddleware(verifier *auth.Verifier, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || verifier == nil {
			c.Next()
			return
		}

		id, err := verifier.FromHeader(header)
		if err != nil {
			log.Debug().Err(err).Msg("Ignoring bearer token")
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// requireAuth rejects anonymous callers with 401
func requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity(c).Anonymous() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// identity returns the caller, anonymous if unauthenticated
func identity(c *gin.Context) auth.Identity {
	return auth.FromContext(c.Request.Context())
}
