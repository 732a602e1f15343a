package domain

import (
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Page is a fetched and parsed clinic website. OK=false is the absence
// signal: the fetch failed, timed out, or no URL was given. Extractors must
// degrade to the sentinel on an absent page.
type Page struct {
	Doc     *goquery.Document
	Latency time.Duration
	OK      bool
}

// ListingRecord is the structured business-listing detail record, mapped
// from the lookup API's detail payload. A nil *ListingRecord is the absent
// listing (no identifier resolved, or the detail fetch failed).
type ListingRecord struct {
	Name             string
	FormattedAddress string
	Phone            string
	Website          string
	WeekdayHours     []string
	PhotoCount       int
	Rating           *float64
	RatingCount      *int
	Types            []string
	Accessibility    []string
	Reviews          []Review
}

// Review is one review excerpt from the listing.
type Review struct {
	Author string
	Text   string
	Rating *float64
}
