package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/social-blog-api/internal/config"
)

// minimal PNG signature plus IHDR chunk header
var pngHeader = []byte{
	0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n',
	0x00, 0x00, 0x00, 0x0d, 'I', 'H', 'D', 'R',
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00,
}

func newTestStore(t *testing.T, maxSize int64) *Store {
	t.Helper()
	s := NewStore(config.UploadConfig{
		Dir:       t.TempDir(),
		URLPrefix: "/uploads/",
		MaxSize:   maxSize,
	}, zerolog.Nop())
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func TestStore_SaveImage(t *testing.T) {
	s := newTestStore(t, 1024)

	url, err := s.Save(context.Background(), "../My Photo!.png", int64(len(pngHeader)), bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/1700000000000-My_Photo_.png", url)

	data, err := os.ReadFile(filepath.Join(s.dir, "1700000000000-My_Photo_.png"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestStore_RejectsNonImage(t *testing.T) {
	s := newTestStore(t, 1024)

	_, err := s.Save(context.Background(), "notes.png", 11, strings.NewReader("hello world"))
	assert.ErrorIs(t, err, ErrNotImage)

	entries, err := os.ReadDir(s.dir)
	if err == nil {
		assert.Empty(t, entries)
	}
}

func TestStore_RejectsOversized(t *testing.T) {
	s := newTestStore(t, 64)

	t.Run("declared size", func(t *testing.T) {
		_, err := s.Save(context.Background(), "big.png", 65, bytes.NewReader(pngHeader))
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("actual size", func(t *testing.T) {
		body := append(append([]byte{}, pngHeader...), make([]byte, 100)...)
		_, err := s.Save(context.Background(), "big.png", 0, bytes.NewReader(body))
		assert.ErrorIs(t, err, ErrTooLarge)

		entries, err := os.ReadDir(s.dir)
		require.NoError(t, err)
		assert.Empty(t, entries, "partial file is removed")
	})
}

func TestStore_RejectsEmpty(t *testing.T) {
	s := newTestStore(t, 64)
	_, err := s.Save(context.Background(), "empty.png", 0, bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "photo.png", want: "photo.png"},
		{in: `C:\Users\me\cat pic.jpg`, want: "cat_pic.jpg"},
		{in: "../../etc/passwd", want: "passwd"},
		{in: "", want: "upload.png"},
		{in: "...", want: "upload.png"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitize(tt.in, ".png"), tt.in)
	}
}
