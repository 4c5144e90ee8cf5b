package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/social-blog-api/internal/config"
	"github.com/social-blog-api/internal/service"
)

// multipartOverhead leaves room for form boundaries and headers
const multipartOverhead = 1 << 20

// UploadHandler handles image uploads
type UploadHandler struct {
	services *service.Services
	cfg      *config.Config
	log      zerolog.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		services: services,
		cfg:      cfg,
		log:      log.With().Str("handler", "upload").Logger(),
	}
}

// Upload handles POST /v1/uploads (multipart field "file")
func (h *UploadHandler) Upload(c *gin.Context) {
	maxSize := h.cfg.Upload.MaxSize
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxSize+multipartOverhead)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		badRequest(c, "file is required")
		return
	}
	defer file.Close()

	// Validate file size
	if header.Size > maxSize {
		badRequest(c, fmt.Sprintf("file too large, max size is %d MB", maxSize/(1024*1024)))
		return
	}

	url, err := h.services.Uploads.Upload(c.Request.Context(), identity(c).UserID, header.Filename, header.Size, file)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info().
		Str("file", header.Filename).
		Int64("size_bytes", header.Size).
		Msg("Upload accepted")

	c.JSON(http.StatusCreated, gin.H{"url": url})
}
