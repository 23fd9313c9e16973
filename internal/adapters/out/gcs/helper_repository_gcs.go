// internal/adapters/out/gcs/helper_repository_gcs.go
package gcs

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/google/uuid"
)

// DefaultPublicBaseURL is the public object host of Cloud Storage.
const DefaultPublicBaseURL = "https://storage.googleapis.com"

// sanitizePathSegment normalizes a path segment for GCS object paths.
// - removes separators
// - trims dots/spaces
func sanitizePathSegment(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.Trim(s, ". ")
	return s
}

// extensionByMIME returns the file extension for an accepted image MIME type.
// ok=false means the type is not accepted.
func extensionByMIME(mime string) (string, bool) {
	mime = strings.ToLower(strings.TrimSpace(mime))
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	switch mime {
	case "image/jpeg", "image/jpg":
		return ".jpg", true
	case "image/png":
		return ".png", true
	case "image/webp":
		return ".webp", true
	case "image/gif":
		return ".gif", true
	default:
		return "", false
	}
}

// newObjectID generates a time-ordered id for object names.
func newObjectID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}

// productImageObjectPath: "products/{productId}/{objectId}{ext}"
func productImageObjectPath(productID, objectID, ext string) (string, error) {
	pid := sanitizePathSegment(productID)
	if pid == "" {
		return "", fmt.Errorf("gcs: productID is empty")
	}
	oid := sanitizePathSegment(objectID)
	if oid == "" {
		return "", fmt.Errorf("gcs: objectID is empty")
	}
	return path.Join("products", pid, oid+ext), nil
}

// publicURL builds "{base}/{bucket}/{objectPath}" with each path segment escaped.
func publicURL(base, bucket, objectPath string) string {
	b := strings.TrimRight(strings.TrimSpace(base), "/")
	if b == "" {
		b = DefaultPublicBaseURL
	}
	segs := strings.Split(strings.TrimLeft(objectPath, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return b + "/" + url.PathEscape(strings.TrimSpace(bucket)) + "/" + strings.Join(segs, "/")
}
