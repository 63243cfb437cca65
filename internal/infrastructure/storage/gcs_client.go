package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/vincent-petithory/dataurl"
	"google.golang.org/api/option"

	"bookswap/internal/domain/entity"
)

// objectWriter opens a writer for a new object and makes it world readable once written.
type objectWriter interface {
	Write(ctx context.Context, objectName, contentType string, body io.Reader) error
	Delete(ctx context.Context, objectName string) error
}

// CloudStorageClient stores listing images in a GCS bucket. The object name is
// the public id.
type CloudStorageClient struct {
	client     *storage.Client
	objects    objectWriter
	bucketName string
	folder     string
}

func NewCloudStorageClient(ctx context.Context, bucketName, folder string, opts ...option.ClientOption) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &CloudStorageClient{
		client:     client,
		objects:    &bucketObjects{bucket: client.Bucket(bucketName)},
		bucketName: bucketName,
		folder:     folder,
	}, nil
}

func (c *CloudStorageClient) Upload(ctx context.Context, source string) (*entity.UploadedImage, error) {
	decoded, err := dataurl.DecodeString(source)
	if err != nil {
		return nil, fmt.Errorf("gcs upload: source is not a data URI: %v", err)
	}

	contentType := decoded.MediaType.ContentType()
	objectName := fmt.Sprintf("%s/%s%s", c.folder, uuid.New().String(), extensionFor(contentType))

	if err := c.objects.Write(ctx, objectName, contentType, bytes.NewReader(decoded.Data)); err != nil {
		return nil, err
	}

	return &entity.UploadedImage{
		URL:      fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, objectName),
		PublicID: objectName,
	}, nil
}

func (c *CloudStorageClient) Destroy(ctx context.Context, publicID string) error {
	if err := c.objects.Delete(ctx, publicID); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	if strings.HasPrefix(contentType, "image/") {
		return "." + strings.TrimPrefix(contentType, "image/")
	}
	return ".bin"
}

type bucketObjects struct {
	bucket *storage.BucketHandle
}

func (b *bucketObjects) Write(ctx context.Context, objectName, contentType string, body io.Reader) error {
	obj := b.bucket.Object(objectName)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, body); err != nil {
		wc.Close()
		return fmt.Errorf("failed to copy file to GCS: %v", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("failed to close writer: %v", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return fmt.Errorf("failed to set ACL: %v", err)
	}
	return nil
}

func (b *bucketObjects) Delete(ctx context.Context, objectName string) error {
	return b.bucket.Object(objectName).Delete(ctx)
}
