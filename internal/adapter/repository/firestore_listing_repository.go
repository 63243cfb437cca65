package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bookswap/internal/domain/entity"
	"bookswap/internal/domain/repository"
	"bookswap/pkg/errors"
)

const listingsCollection = "books"

type firestoreListingRepository struct {
	client *firestore.Client
}

func NewFirestoreListingRepository(client *firestore.Client) repository.ListingRepository {
	return &firestoreListingRepository{
		client: client,
	}
}

func (r *firestoreListingRepository) Create(ctx context.Context, listing *entity.Listing) (string, error) {
	doc := r.client.Collection(listingsCollection).NewDoc()
	listing.ID = doc.ID

	now := time.Now()
	if listing.CreatedAt.IsZero() {
		listing.CreatedAt = now
	}
	if listing.UpdatedAt.IsZero() {
		listing.UpdatedAt = listing.CreatedAt
	}
	listing.Normalize()

	if _, err := doc.Create(ctx, listing); err != nil {
		return "", errors.Internal("Failed to create book", err)
	}

	return doc.ID, nil
}

func (r *firestoreListingRepository) GetByID(ctx context.Context, id string) (*entity.Listing, error) {
	doc, err := r.client.Collection(listingsCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Book", err)
		}
		return nil, errors.Internal("Failed to fetch book", err)
	}

	return decodeListing(doc)
}

func (r *firestoreListingRepository) ListAll(ctx context.Context) ([]*entity.Listing, error) {
	query := r.client.Collection(listingsCollection).OrderBy("createdAt", firestore.Desc)
	return collectListings(query.Documents(ctx))
}

func (r *firestoreListingRepository) ListByOwner(ctx context.Context, ownerID string) ([]*entity.Listing, error) {
	query := r.client.Collection(listingsCollection).Where("ownerId", "==", ownerID)
	return collectListings(query.Documents(ctx))
}

func (r *firestoreListingRepository) Update(ctx context.Context, id string, patch entity.ListingPatch) error {
	updates := listingUpdates(patch)
	if len(updates) == 0 {
		return nil
	}

	_, err := r.client.Collection(listingsCollection).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return errors.NotFound("Book", err)
		}
		return errors.Internal("Failed to update book", err)
	}

	return nil
}

func (r *firestoreListingRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(listingsCollection).Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete book", err)
	}

	return nil
}

func listingUpdates(patch entity.ListingPatch) []firestore.Update {
	var updates []firestore.Update

	addString := func(path string, v *string) {
		if v != nil {
			updates = append(updates, firestore.Update{Path: path, Value: *v})
		}
	}

	addString("title", patch.Title)
	addString("author", patch.Author)
	addString("genre", patch.Genre)
	addString("condition", patch.Condition)
	addString("description", patch.Description)
	addString("contactApp", patch.ContactApp)
	addString("contactId", patch.ContactID)

	if patch.IsPublic != nil {
		updates = append(updates, firestore.Update{Path: "isPublic", Value: *patch.IsPublic})
	}

	if patch.ReplaceImages {
		urls, ids := patch.ImageURLs, patch.ImagePublicIDs
		if urls == nil {
			urls = []string{}
		}
		if ids == nil {
			ids = []string{}
		}
		updates = append(updates,
			firestore.Update{Path: "imageUrls", Value: urls},
			firestore.Update{Path: "imagePublicIds", Value: ids},
		)
	}

	if !patch.UpdatedAt.IsZero() {
		updates = append(updates, firestore.Update{Path: "updatedAt", Value: patch.UpdatedAt})
	}

	return updates
}

func collectListings(iter *firestore.DocumentIterator) ([]*entity.Listing, error) {
	defer iter.Stop()

	listings := []*entity.Listing{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to fetch books", err)
		}

		listing, err := decodeListing(doc)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

func decodeListing(doc *firestore.DocumentSnapshot) (*entity.Listing, error) {
	var listing entity.Listing
	if err := doc.DataTo(&listing); err != nil {
		return nil, errors.Internal("Failed to parse book data", err)
	}
	listing.ID = doc.Ref.ID

	return listing.Normalize(), nil
}
