package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/social-blog-api/internal/models"
	"github.com/social-blog-api/internal/service"
)

// UserHandler handles profile, search and follow endpoints
type UserHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(services *service.Services, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		services: services,
		log:      log.With().Str("handler", "user").Logger(),
	}
}

// Search handles GET /v1/users/search
func (h *UserHandler) Search(c *gin.Context) {
	results, err := h.services.Profiles.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// Get handles GET /v1/users/:id
func (h *UserHandler) Get(c *gin.Context) {
	profile, err := h.services.Profiles.Get(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// Update handles PUT /v1/users/:id
func (h *UserHandler) Update(c *gin.Context) {
	var in models.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	user, err := h.services.Profiles.Update(c.Request.Context(), identity(c).UserID, c.Param("id"), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// FollowStatus handles GET /v1/users/:id/follow-status
func (h *UserHandler) FollowStatus(c *gin.Context) {
	following, err := h.services.Engagement.IsFollowing(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": following})
}

// ToggleFollow handles POST /v1/users/:id/follow
func (h *UserHandler) ToggleFollow(c *gin.Context) {
	state, err := h.services.Engagement.ToggleFollow(c.Request.Context(), identity(c).UserID, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Followers handles GET /v1/users/:id/followers
func (h *UserHandler) Followers(c *gin.Context) {
	page, limit, ok := pagination(c)
	if !ok {
		return
	}
	result, err := h.services.Profiles.Followers(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Following handles GET /v1/users/:id/following
func (h *UserHandler) Following(c *gin.Context) {
	page, limit, ok := pagination(c)
	if !ok {
		return
	}
	result, err := h.services.Profiles.Following(c.Request.Context(), c.Param("id"), page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
