package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/social-blog-api/internal/models"
	"github.com/social-blog-api/internal/service"
)

// AdminHandler handles moderation endpoints
type AdminHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(services *service.Services, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		services: services,
		log:      log.With().Str("handler", "admin").Logger(),
	}
}

// Stats handles GET /v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.services.Moderation.Stats(c.Request.Context(), identity(c).Email)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListUsers handles GET /v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, limit, ok := pagination(c)
	if !ok {
		return
	}
	users, err := h.services.Moderation.ListUsers(c.Request.Context(), identity(c).Email, page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// SetVerified handles PUT /v1/admin/users/:id/verify
func (h *AdminHandler) SetVerified(c *gin.Context) {
	var req struct {
		Verified *bool `json:"verified"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Verified == nil {
		badRequest(c, "verified must be a boolean")
		return
	}

	user, err := h.services.Moderation.SetVerified(c.Request.Context(), identity(c).Email, c.Param("id"), *req.Verified)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "verified": user.Verified})
}

// SetRole handles PUT /v1/admin/users/:id/role
func (h *AdminHandler) SetRole(c *gin.Context) {
	var req struct {
		Role models.Role `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	user, err := h.services.Moderation.SetRole(c.Request.Context(), identity(c).Email, c.Param("id"), req.Role)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "role": user.Role})
}
