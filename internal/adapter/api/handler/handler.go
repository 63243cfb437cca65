package handler

// Handlers bundles every HTTP handler the router mounts.
type Handlers struct {
	Listing *ListingHandler
	Session *SessionHandler
	Account *AccountHandler
	Health  *HealthHandler
	Feed    *FeedHandler
}
