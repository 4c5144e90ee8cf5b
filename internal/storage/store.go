package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/social-blog-api/internal/config"
)

// sniffLen is how much of the upload is inspected for its content type
const sniffLen = 3072

var (
	// ErrNotImage is returned when the content is not an image
	ErrNotImage = errors.New("storage: only image uploads are allowed")
	// ErrTooLarge is returned when the upload exceeds the configured limit
	ErrTooLarge = errors.New("storage: file too large")
	// ErrEmpty is returned for zero-byte uploads
	ErrEmpty = errors.New("storage: empty file")
)

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Store saves uploaded images to local disk and serves them under a URL prefix
type Store struct {
	dir       string
	urlPrefix string
	maxSize   int64
	now       func() time.Time
	log       zerolog.Logger
}

// NewStore creates a disk store from upload configuration
func NewStore(cfg config.UploadConfig, log zerolog.Logger) *Store {
	return &Store{
		dir:       cfg.Dir,
		urlPrefix: strings.TrimRight(cfg.URLPrefix, "/"),
		maxSize:   cfg.MaxSize,
		now:       time.Now,
		log:       log.With().Str("component", "storage").Logger(),
	}
}

// Save writes the upload and returns its public URL. size is the declared
// length; the limit is also enforced on the bytes actually read.
func (s *Store) Save(ctx context.Context, filename string, size int64, r io.Reader) (string, error) {
	if size > s.maxSize {
		return "", ErrTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if n == 0 {
		return "", ErrEmpty
	}
	head = head[:n]

	mtype := mimetype.Detect(head)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", ErrNotImage
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	name := fmt.Sprintf("%d-%s", s.now().UnixMilli(), sanitize(filename, mtype.Extension()))
	path := filepath.Join(s.dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}

	// one byte past the limit is enough to detect an oversized body
	body := io.MultiReader(bytes.NewReader(head), io.LimitReader(r, s.maxSize-int64(n)+1))
	written, copyErr := io.Copy(dst, body)
	closeErr := dst.Close()

	switch {
	case copyErr != nil:
		os.Remove(path)
		return "", fmt.Errorf("write file: %w", copyErr)
	case closeErr != nil:
		os.Remove(path)
		return "", fmt.Errorf("close file: %w", closeErr)
	case written > s.maxSize:
		os.Remove(path)
		return "", ErrTooLarge
	}

	s.log.Info().
		Str("file", name).
		Str("mime", mtype.String()).
		Int64("size_bytes", written).
		Msg("Upload stored")

	return s.urlPrefix + "/" + name, nil
}

// sanitize keeps the base name and replaces unsafe characters
func sanitize(filename, fallbackExt string) string {
	base := filepath.Base(strings.ReplaceAll(filename, `\`, "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		return "upload" + fallbackExt
	}
	return base
}
