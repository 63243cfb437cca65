package cloudinary

import (
	"context"
	"fmt"

	cld "github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"bookswap/internal/domain/entity"
)

// Listing images are cropped to a 300x400 card.
const cardTransformation = "c_fill,g_center,h_400,q_auto,w_300"

type uploaderAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}

type ImageStore struct {
	uploader uploaderAPI
	folder   string
}

func NewImageStore(cloudName, apiKey, apiSecret, folder string) (*ImageStore, error) {
	client, err := cld.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	return newImageStore(&client.Upload, folder), nil
}

func newImageStore(u uploaderAPI, folder string) *ImageStore {
	return &ImageStore{
		uploader: u,
		folder:   folder,
	}
}

func (s *ImageStore) Upload(ctx context.Context, source string) (*entity.UploadedImage, error) {
	result, err := s.uploader.Upload(ctx, source, uploader.UploadParams{
		Folder:         s.folder,
		Overwrite:      api.Bool(true),
		Invalidate:     api.Bool(true),
		ResourceType:   "auto",
		Transformation: cardTransformation,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload: %w", err)
	}
	if result == nil {
		return nil, fmt.Errorf("cloudinary upload: empty response")
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload: %s", result.Error.Message)
	}

	return &entity.UploadedImage{
		URL:      result.SecureURL,
		PublicID: result.PublicID,
	}, nil
}

func (s *ImageStore) Destroy(ctx context.Context, publicID string) error {
	result, err := s.uploader.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy %s: %w", publicID, err)
	}
	if result == nil {
		return fmt.Errorf("cloudinary destroy %s: empty response", publicID)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy %s: %s", publicID, result.Error.Message)
	}

	switch result.Result {
	case "ok", "not found":
		return nil
	default:
		return fmt.Errorf("cloudinary destroy %s: result %q", publicID, result.Result)
	}
}
