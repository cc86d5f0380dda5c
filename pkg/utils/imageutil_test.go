package utils

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResultFilename(t *testing.T) {
	ts := time.Date(2024, 1, 31, 15, 4, 5, 123456789, time.UTC)
	assert.Equal(t, "enlarged_image_20240131_150405_123456.png", GenerateResultFilename(ts))
}

func TestGenerateStorageKey(t *testing.T) {
	key := GenerateStorageKey("dir/photo.png")
	assert.Regexp(t, regexp.MustCompile(`^enlarged/photo_\d+_[0-9a-f-]{8}\.png$`), key)
}

func TestReplaceExt(t *testing.T) {
	assert.Equal(t, "photo.png", ReplaceExt("photo.jpeg", "png"))
	assert.Equal(t, "photo.png", ReplaceExt("photo", "png"))
}

func TestIsValidImageType(t *testing.T) {
	assert.True(t, IsValidImageType("image/png"))
	assert.True(t, IsValidImageType("IMAGE/JPEG"))
	assert.False(t, IsValidImageType("text/plain; charset=utf-8"))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestDownloadImage(t *testing.T) {
	data := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Write(data)
		case "/text":
			w.Write([]byte("hello world"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	got, ct, err := DownloadImage(ctx, srv.URL+"/ok.png", 1<<20)
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, "image/png", ct)

	_, _, err = DownloadImage(ctx, srv.URL+"/ok.png", int64(len(data)-1))
	assert.ErrorContains(t, err, "exceeds maximum size")

	_, _, err = DownloadImage(ctx, srv.URL+"/text", 1<<20)
	assert.ErrorContains(t, err, "invalid content type")

	_, _, err = DownloadImage(ctx, srv.URL+"/missing", 1<<20)
	assert.ErrorContains(t, err, "status 404")
}
