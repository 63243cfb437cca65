package usecase

import (
	"context"
	"net/http"
	"time"

	"bookswap/internal/domain/entity"
	"bookswap/internal/domain/repository"
	"bookswap/internal/domain/service"
	"bookswap/pkg/errors"
	"bookswap/pkg/logger"
)

type ListingUseCase struct {
	listingRepo repository.ListingRepository
	images      *ImageManager
	events      service.ListingEventPublisher
	now         func() time.Time
}

func NewListingUseCase(
	listingRepo repository.ListingRepository,
	images *ImageManager,
	events service.ListingEventPublisher,
) *ListingUseCase {
	return &ListingUseCase{
		listingRepo: listingRepo,
		images:      images,
		events:      events,
		now:         time.Now,
	}
}

type ListingInput struct {
	Title       string
	Author      string
	Genre       string
	Condition   string
	Description string
	ContactApp  string
	ContactID   string
	IsPublic    bool
}

// AddListing uploads every image before writing the document, so a failed
// upload leaves no listing behind.
func (uc *ListingUseCase) AddListing(ctx context.Context, owner *entity.Identity, input ListingInput, images []entity.ImageSource) (*entity.Listing, error) {
	if owner == nil || owner.UID == "" {
		return nil, errors.Unauthenticated("No session cookie provided", nil)
	}

	uploaded, err := uc.images.UploadAll(ctx, NonBlankSources(images))
	if err != nil {
		return nil, err
	}
	urls, publicIDs := SplitUploaded(uploaded)

	now := uc.now()
	listing := &entity.Listing{
		OwnerID:        owner.UID,
		Title:          input.Title,
		Author:         input.Author,
		Genre:          input.Genre,
		Condition:      input.Condition,
		Description:    input.Description,
		ContactApp:     input.ContactApp,
		ContactID:      input.ContactID,
		ImageURLs:      urls,
		ImagePublicIDs: publicIDs,
		IsPublic:       input.IsPublic,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	id, err := uc.listingRepo.Create(ctx, listing)
	if err != nil {
		return nil, internal("Failed to create book", err)
	}
	listing.ID = id
	listing.Normalize()

	logger.Info("Book %s created by %s with %d image(s)", id, owner.UID, len(urls))
	uc.publish(ctx, entity.ListingCreated, listing)

	return listing, nil
}

// ListPublicFeed returns every listing, newest first. Visibility is not
// applied here; see DESIGN.md.
func (uc *ListingUseCase) ListPublicFeed(ctx context.Context) ([]*entity.Listing, error) {
	listings, err := uc.listingRepo.ListAll(ctx)
	if err != nil {
		return nil, internal("Failed to fetch books", err)
	}
	return listings, nil
}

// GetListing fetches one listing. requester may be nil for anonymous callers.
func (uc *ListingUseCase) GetListing(ctx context.Context, requester *entity.Identity, id string) (*entity.Listing, error) {
	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, internal("Failed to fetch book", err)
	}

	if !listing.VisibleTo(uidOf(requester)) {
		return nil, errors.Forbidden("Unauthorized access", nil)
	}
	return listing, nil
}

func (uc *ListingUseCase) ListOwnListings(ctx context.Context, owner *entity.Identity) ([]*entity.Listing, error) {
	if owner == nil || owner.UID == "" {
		return nil, errors.Unauthenticated("No session cookie provided", nil)
	}

	listings, err := uc.listingRepo.ListByOwner(ctx, owner.UID)
	if err != nil {
		return nil, internal("Failed to fetch user books", err)
	}
	return listings, nil
}

// UpdateListing merges patch into the caller's listing. Non-blank images
// replace the stored set; with none, the stored images are kept.
func (uc *ListingUseCase) UpdateListing(ctx context.Context, owner *entity.Identity, id string, patch entity.ListingPatch, images []entity.ImageSource) (*entity.CleanupReport, error) {
	listing, err := uc.ownedListing(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	report := entity.CleanupReport{}
	patch.ReplaceImages = false
	patch.ImageURLs, patch.ImagePublicIDs = nil, nil

	if fresh := NonBlankSources(images); len(fresh) > 0 {
		uploaded, cleanup, err := uc.images.Replace(ctx, listing.ImagePublicIDs, fresh)
		report = cleanup
		if err != nil {
			return &report, err
		}
		patch.ImageURLs, patch.ImagePublicIDs = SplitUploaded(uploaded)
		patch.ReplaceImages = true
	}
	patch.UpdatedAt = uc.now()

	if err := uc.listingRepo.Update(ctx, id, patch); err != nil {
		return &report, internal("Failed to update book", err)
	}

	patch.Apply(listing)
	uc.publish(ctx, entity.ListingUpdated, listing)

	return &report, nil
}

// DeleteListing releases the listing's images best effort, then removes the
// document whatever the cleanup outcome.
func (uc *ListingUseCase) DeleteListing(ctx context.Context, owner *entity.Identity, id string) (*entity.CleanupReport, error) {
	listing, err := uc.ownedListing(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	report := uc.images.DeleteAll(ctx, listing.ImagePublicIDs)
	if !report.OK() {
		logger.Warn("Book %s: %d of %d image(s) deleted, %d could not be deleted", id, report.Succeeded(), report.Attempted, len(report.Failures))
	}

	if err := uc.listingRepo.Delete(ctx, id); err != nil {
		return &report, internal("Failed to delete book", err)
	}

	uc.publish(ctx, entity.ListingDeleted, listing)
	return &report, nil
}

// ownedListing collapses "absent" and "owned by someone else" into NotFound.
func (uc *ListingUseCase) ownedListing(ctx context.Context, owner *entity.Identity, id string) (*entity.Listing, error) {
	if owner == nil || owner.UID == "" {
		return nil, errors.Unauthenticated("No session cookie provided", nil)
	}

	listing, err := uc.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, internal("Failed to fetch book", err)
	}
	if !listing.OwnedBy(owner.UID) {
		return nil, errors.New(errors.CodeNotFound, "Book not found or unauthorized", http.StatusNotFound, nil)
	}
	return listing, nil
}

func (uc *ListingUseCase) publish(ctx context.Context, eventType entity.ListingEventType, listing *entity.Listing) {
	if uc.events == nil {
		return
	}

	event := entity.ListingEvent{
		Type:      eventType,
		ListingID: listing.ID,
		OwnerID:   listing.OwnerID,
		IsPublic:  listing.IsPublic,
		At:        uc.now(),
	}
	if err := uc.events.PublishListingEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish %s event for book %s: %v", eventType, listing.ID, err)
	}
}

func uidOf(identity *entity.Identity) string {
	if identity == nil {
		return ""
	}
	return identity.UID
}

// internal keeps AppErrors raised below and wraps anything else.
func internal(message string, err error) error {
	if _, ok := errors.As(err); ok {
		return err
	}
	return errors.Internal(message, err)
}
