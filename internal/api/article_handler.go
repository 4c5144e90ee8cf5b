package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/social-blog-api/internal/models"
	"github.com/social-blog-api/internal/service"
)

// ArticleHandler handles article, like and comment endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// List handles GET /v1/articles
func (h *ArticleHandler) List(c *gin.Context) {
	page, limit, ok := pagination(c)
	if !ok {
		return
	}

	feed, err := h.services.Feed.List(c.Request.Context(), models.FeedQuery{
		Search: c.Query("search"),
		Sort:   models.FeedSort(c.Query("sort")),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// Create handles POST /v1/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	article, err := h.services.Articles.Create(c.Request.Context(), identity(c).UserID, in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// Get handles GET /v1/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	detail, err := h.services.Articles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// Update handles PUT /v1/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	article, err := h.services.Articles.Update(c.Request.Context(), identity(c).UserID, c.Param("id"), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /v1/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.services.Articles.Delete(c.Request.Context(), identity(c).UserID, c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "article deleted"})
}

// LikeStatus handles GET /v1/articles/:id/like
func (h *ArticleHandler) LikeStatus(c *gin.Context) {
	liked, err := h.services.Engagement.IsLiked(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

// ToggleLike handles POST /v1/articles/:id/like
func (h *ArticleHandler) ToggleLike(c *gin.Context) {
	state, err := h.services.Engagement.ToggleLike(c.Request.Context(), identity(c).UserID, c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// AddComment handles POST /v1/articles/:id/comments
func (h *ArticleHandler) AddComment(c *gin.Context) {
	var in models.CommentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid JSON body")
		return
	}

	comment, err := h.services.Articles.AddComment(c.Request.Context(), identity(c).UserID, c.Param("id"), in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
