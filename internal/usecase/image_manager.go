package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/vincent-petithory/dataurl"
	"golang.org/x/sync/errgroup"

	"bookswap/internal/domain/entity"
	"bookswap/internal/domain/service"
	"bookswap/pkg/errors"
	"bookswap/pkg/logger"
)

const defaultImageType = "image/jpeg"

// ImageMetrics receives one observation per remote image call.
type ImageMetrics interface {
	ObserveUpload(ok bool)
	ObserveDelete(ok bool)
}

type noopImageMetrics struct{}

func (noopImageMetrics) ObserveUpload(bool) {}
func (noopImageMetrics) ObserveDelete(bool) {}

// ImageManager keeps listing image references in step with the object store.
type ImageManager struct {
	store   service.ImageStore
	metrics ImageMetrics
}

func NewImageManager(store service.ImageStore, metrics ImageMetrics) *ImageManager {
	if metrics == nil {
		metrics = noopImageMetrics{}
	}
	return &ImageManager{
		store:   store,
		metrics: metrics,
	}
}

// NormalizeImageSource turns raw bytes into a base64 data URI and passes
// strings through trimmed.
func NormalizeImageSource(src entity.ImageSource) string {
	if len(src.Data) > 0 {
		contentType := mimetype.Detect(src.Data).String()
		if i := strings.IndexByte(contentType, ';'); i >= 0 {
			contentType = contentType[:i]
		}
		if !strings.HasPrefix(contentType, "image/") {
			contentType = defaultImageType
		}
		return dataurl.New(src.Data, contentType).String()
	}
	return strings.TrimSpace(src.DataURI)
}

// NonBlankSources drops sources carrying no bytes and only whitespace.
func NonBlankSources(sources []entity.ImageSource) []entity.ImageSource {
	kept := make([]entity.ImageSource, 0, len(sources))
	for _, src := range sources {
		if len(src.Data) == 0 && strings.TrimSpace(src.DataURI) == "" {
			continue
		}
		kept = append(kept, src)
	}
	return kept
}

func (m *ImageManager) Upload(ctx context.Context, src entity.ImageSource) (*entity.UploadedImage, error) {
	source := NormalizeImageSource(src)
	if source == "" {
		m.metrics.ObserveUpload(false)
		return nil, errors.UploadFailed("Image is empty", nil)
	}

	img, err := m.store.Upload(ctx, source)
	if err != nil {
		m.metrics.ObserveUpload(false)
		return nil, errors.UploadFailed("Failed to upload image", err)
	}
	if img == nil || img.URL == "" || img.PublicID == "" {
		m.metrics.ObserveUpload(false)
		return nil, errors.UploadFailed("Upload failed: no image reference returned", nil)
	}

	m.metrics.ObserveUpload(true)
	return img, nil
}

// UploadAll uploads every source concurrently. The result keeps input order;
// the first failure fails the whole batch and cancels the rest.
func (m *ImageManager) UploadAll(ctx context.Context, sources []entity.ImageSource) ([]entity.UploadedImage, error) {
	results := make([]entity.UploadedImage, len(sources))
	if len(sources) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			img, err := m.Upload(gctx, src)
			if err != nil {
				return err
			}
			results[i] = *img
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DeleteAll destroys every public id concurrently. Failures are logged and
// reported, never returned.
func (m *ImageManager) DeleteAll(ctx context.Context, publicIDs []string) entity.CleanupReport {
	report := entity.CleanupReport{Attempted: len(publicIDs)}
	if len(publicIDs) == 0 {
		return report
	}

	// Cleanup outlives a client that hangs up mid-request.
	ctx = context.WithoutCancel(ctx)

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	for _, publicID := range publicIDs {
		g.Go(func() error {
			err := m.store.Destroy(ctx, publicID)
			m.metrics.ObserveDelete(err == nil)
			if err != nil {
				logger.Warn("Failed to delete image %s: %v", publicID, err)
				mu.Lock()
				report.Failures = append(report.Failures, entity.CleanupFailure{PublicID: publicID, Err: err})
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return report
}

// Replace releases the old images while the new ones upload. Only upload
// failures are returned.
func (m *ImageManager) Replace(ctx context.Context, oldPublicIDs []string, sources []entity.ImageSource) ([]entity.UploadedImage, entity.CleanupReport, error) {
	var (
		report entity.CleanupReport
		done   = make(chan struct{})
	)
	go func() {
		defer close(done)
		report = m.DeleteAll(ctx, oldPublicIDs)
	}()

	uploaded, err := m.UploadAll(ctx, sources)
	<-done

	return uploaded, report, err
}

// SplitUploaded returns parallel url and public id slices.
func SplitUploaded(images []entity.UploadedImage) ([]string, []string) {
	urls := make([]string, len(images))
	ids := make([]string, len(images))
	for i, img := range images {
		urls[i] = img.URL
		ids[i] = img.PublicID
	}
	return urls, ids
}
