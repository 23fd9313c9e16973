package gcs

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtensionByMIME(t *testing.T) {
	tests := []struct {
		mime string
		ext  string
		ok   bool
	}{
		{"image/jpeg", ".jpg", true},
		{"IMAGE/PNG", ".png", true},
		{"image/webp; charset=binary", ".webp", true},
		{"image/gif", ".gif", true},
		{"text/plain", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.mime, func(t *testing.T) {
			ext, ok := extensionByMIME(tt.mime)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.ext, ext)
		})
	}
}

func TestProductImageObjectPath(t *testing.T) {
	p, err := productImageObjectPath(" p/1 ", "abc", ".png")
	require.NoError(t, err)
	assert.Equal(t, "products/p_1/abc.png", p)

	_, err = productImageObjectPath("..", "abc", ".png")
	require.Error(t, err)
}

func TestPublicURL(t *testing.T) {
	got := publicURL("", "my-bucket", "products/p 1/abc.png")
	assert.Equal(t, "https://storage.googleapis.com/my-bucket/products/p%201/abc.png", got)

	got = publicURL("http://localhost:4443/", "b", "/x.jpg")
	assert.Equal(t, "http://localhost:4443/b/x.jpg", got)
}

func TestNewObjectID_Unique(t *testing.T) {
	a, b := newObjectID(), newObjectID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
}

func TestUpload_RejectsBeforeTouchingStorage(t *testing.T) {
	r := NewProductImageRepositoryGCS(nil, "bucket", nil)
	_, err := r.Upload(context.Background(), "p1", "image/png", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client is nil")
}
