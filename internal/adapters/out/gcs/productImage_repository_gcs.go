// internal/adapters/out/gcs/productImage_repository_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
)

var ErrUnsupportedImageType = errors.New("gcs: unsupported image content type")

// ProductImageRepositoryGCS uploads product images to a public bucket.
//
// Object layout:
//
//	gs://{Bucket}/products/{productId}/{uuidv7}.{ext}
type ProductImageRepositoryGCS struct {
	Client *storage.Client
	Bucket string

	// PublicBaseURL overrides DefaultPublicBaseURL (CDN / emulator).
	PublicBaseURL string

	// MaxBytes rejects larger bodies when > 0.
	MaxBytes int64

	log *zap.Logger
}

func NewProductImageRepositoryGCS(client *storage.Client, bucket string, logger *zap.Logger) *ProductImageRepositoryGCS {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductImageRepositoryGCS{
		Client:        client,
		Bucket:        strings.TrimSpace(bucket),
		PublicBaseURL: DefaultPublicBaseURL,
		MaxBytes:      5 << 20,
		log:           logger.Named("gcs_product_image"),
	}
}

// Upload writes body as a new object and returns its public URL.
func (r *ProductImageRepositoryGCS) Upload(ctx context.Context, productID, contentType string, body io.Reader) (string, error) {
	if r == nil || r.Client == nil {
		return "", errors.New("gcs: storage client is nil")
	}
	if r.Bucket == "" {
		return "", errors.New("gcs: bucket is empty")
	}
	if body == nil {
		return "", errors.New("gcs: body is nil")
	}

	ext, ok := extensionByMIME(contentType)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedImageType, contentType)
	}

	objectPath, err := productImageObjectPath(productID, newObjectID(), ext)
	if err != nil {
		return "", err
	}

	src := body
	if r.MaxBytes > 0 {
		src = io.LimitReader(body, r.MaxBytes+1)
	}

	// 同名オブジェクトは作らない
	oh := r.Client.Bucket(r.Bucket).Object(objectPath).If(storage.Conditions{DoesNotExist: true})
	w := oh.NewWriter(ctx)
	w.ContentType = strings.TrimSpace(contentType)
	w.CacheControl = "public, max-age=3600"

	n, err := io.Copy(w, src)
	if err != nil {
		_ = w.Close()
		return "", fmt.Errorf("gcs: write %s: %w", objectPath, err)
	}
	if r.MaxBytes > 0 && n > r.MaxBytes {
		// 上限超過: 書き込み済みオブジェクトは削除する
		_ = w.Close()
		_ = r.Client.Bucket(r.Bucket).Object(objectPath).Delete(ctx)
		return "", fmt.Errorf("gcs: image exceeds %d bytes", r.MaxBytes)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("gcs: close writer %s: %w", objectPath, err)
	}

	u := publicURL(r.PublicBaseURL, r.Bucket, objectPath)
	r.log.Info("product image uploaded",
		zap.String("productId", productID),
		zap.String("object", objectPath),
		zap.Int64("bytes", n),
	)
	return u, nil
}
