package entity

import "time"

type ListingEventType string

const (
	ListingCreated ListingEventType = "created"
	ListingUpdated ListingEventType = "updated"
	ListingDeleted ListingEventType = "deleted"
)

// ListingEvent announces a listing mutation to feed subscribers. It never
// carries the listing body.
type ListingEvent struct {
	Type      ListingEventType `json:"type"`
	ListingID string           `json:"listingId"`
	OwnerID   string           `json:"ownerId"`
	IsPublic  bool             `json:"isPublic"`
	At        time.Time        `json:"at"`
}
