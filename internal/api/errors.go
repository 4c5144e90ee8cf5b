package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/social-blog-api/internal/service"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// respondError maps service errors to HTTP responses
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	status := http.StatusInternalServerError
	switch service.KindOf(err) {
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindForbidden:
		status = http.StatusForbidden
	case service.KindInvalidOperation, service.KindValidationFailed:
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// badRequest writes a 400 with the given message
func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// pagination reads page and limit query parameters
func pagination(c *gin.Context) (page, limit int, ok bool) {
	page, ok = intQuery(c, "page", defaultPage)
	if !ok {
		return 0, 0, false
	}
	limit, ok = intQuery(c, "limit", defaultLimit)
	return page, limit, ok
}

func intQuery(c *gin.Context, key string, def int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		badRequest(c, key+" must be an integer")
		return 0, false
	}
	return n, true
}
