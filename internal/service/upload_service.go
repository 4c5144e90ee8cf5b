package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/social-blog-api/internal/storage"
)

// ImageStore persists uploaded images and returns their public URL
type ImageStore interface {
	Save(ctx context.Context, filename string, size int64, r io.Reader) (string, error)
}

// uploadService implements UploadService
type uploadService struct {
	store ImageStore
	log   zerolog.Logger
}

func newUploadService(store ImageStore, log zerolog.Logger) *uploadService {
	return &uploadService{
		store: store,
		log:   log.With().Str("component", "upload").Logger(),
	}
}

// Upload stores an image on behalf of actorID
func (s *uploadService) Upload(ctx context.Context, actorID, filename string, size int64, r io.Reader) (string, error) {
	url, err := s.store.Save(ctx, filename, size, r)
	switch {
	case errors.Is(err, storage.ErrNotImage):
		return "", validationFailed("only image files are allowed")
	case errors.Is(err, storage.ErrTooLarge):
		return "", validationFailed("file is too large")
	case errors.Is(err, storage.ErrEmpty):
		return "", validationFailed("file is empty")
	case err != nil:
		return "", fmt.Errorf("store upload: %w", err)
	}

	s.log.Info().Str("user_id", actorID).Str("url", url).Msg("Image uploaded")
	return url, nil
}
