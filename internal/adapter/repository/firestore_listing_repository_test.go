package repository

import (
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"

	"bookswap/internal/domain/entity"
)

func updatePaths(updates []firestore.Update) map[string]interface{} {
	paths := make(map[string]interface{}, len(updates))
	for _, u := range updates {
		paths[u.Path] = u.Value
	}
	return paths
}

func TestListingUpdatesOnlyCarriesSuppliedFields(t *testing.T) {
	title := "Dune"
	public := true
	now := time.Now()

	paths := updatePaths(listingUpdates(entity.ListingPatch{
		Title:     &title,
		IsPublic:  &public,
		UpdatedAt: now,
	}))

	assert.Equal(t, map[string]interface{}{
		"title":     "Dune",
		"isPublic":  true,
		"updatedAt": now,
	}, paths)
}

func TestListingUpdatesWritesImagesInPairs(t *testing.T) {
	paths := updatePaths(listingUpdates(entity.ListingPatch{
		ReplaceImages:  true,
		ImageURLs:      []string{"https://img/1", "https://img/2"},
		ImagePublicIDs: []string{"books/1", "books/2"},
	}))

	assert.Equal(t, []string{"https://img/1", "https://img/2"}, paths["imageUrls"])
	assert.Equal(t, []string{"books/1", "books/2"}, paths["imagePublicIds"])
}

func TestListingUpdatesClearsImagesWithEmptyArrays(t *testing.T) {
	paths := updatePaths(listingUpdates(entity.ListingPatch{ReplaceImages: true}))

	assert.Equal(t, []string{}, paths["imageUrls"])
	assert.Equal(t, []string{}, paths["imagePublicIds"])
}

func TestListingUpdatesEmptyPatch(t *testing.T) {
	assert.Empty(t, listingUpdates(entity.ListingPatch{}))
}
