package utils

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsURL(t *testing.T) {
	assert.True(t, IsURL("http://example.com/a.png"))
	assert.True(t, IsURL("https://example.com/a.png"))
	assert.False(t, IsURL("ftp://example.com/a.png"))
	assert.False(t, IsURL("/tmp/a.png"))
}

func TestDownloadImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/image.png" {
			http.NotFound(w, r)
			return
		}
		io.WriteString(w, "image bytes")
	}))
	defer srv.Close()

	f, err := DownloadImage(context.Background(), srv.URL+"/image.png")
	require.NoError(t, err)
	defer os.Remove(f.Name())
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "image bytes", string(data))

	_, err = DownloadImage(context.Background(), srv.URL+"/missing.png")
	assert.ErrorContains(t, err, "404")
}

func TestDownloadImage_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DownloadImage(ctx, "http://127.0.0.1:1/image.png")
	assert.ErrorIs(t, err, context.Canceled)
}
