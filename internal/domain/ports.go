package domain

import "context"

// PlaceCandidate is one match from a listing lookup. Only the identifier and
// rating are carried; everything else comes from the detail fetch.
type PlaceCandidate struct {
	PlaceID string
	Name    string
	Rating  *float64
}

// PlacesClient is the business-listing lookup collaborator. Both lookup
// shapes share the same status contract: "no results" is an empty slice with
// a nil error; denied/invalid/quota statuses surface as errors that the
// caller treats identically to no match.
type PlacesClient interface {
	TextSearch(ctx context.Context, query string) ([]PlaceCandidate, error)
	FindPlace(ctx context.Context, query string) ([]PlaceCandidate, error)
	Details(ctx context.Context, placeID string) (*ListingRecord, error)
}

// SearchResult is one organic web-search hit.
type SearchResult struct {
	Link    string
	Title   string
	Snippet string
}

// SearchClient is the generic web-search collaborator, used only for the
// page-one visibility probe.
type SearchClient interface {
	Search(ctx context.Context, query string, n int) ([]SearchResult, error)
}

// PageFetcher retrieves and parses a web page. It never returns an error:
// any failure is the absent Page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) Page
}

// Cache stores finished reports keyed by normalized clinic query.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
