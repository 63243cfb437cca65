package service

import (
	"context"

	"bookswap/internal/domain/entity"
)

// ImageStore is the remote image host. Upload accepts a data URI or a URL.
type ImageStore interface {
	Upload(ctx context.Context, source string) (*entity.UploadedImage, error)
	Destroy(ctx context.Context, publicID string) error
}
