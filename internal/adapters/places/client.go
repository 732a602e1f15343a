package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"smileaudit/internal/adapters/observability"
	"smileaudit/internal/domain"
)

// Client talks to the business-listing lookup API (Google Places web
// service). Every call is a single GET bounded by the client timeout; there
// is no retry policy. A Client built without a key short-circuits every
// operation to ErrNoCredentials without touching the network.
type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

var (
	ErrNoCredentials = errors.New("places: no API key configured")
	ErrDenied        = errors.New("places: request denied")
	ErrInvalid       = errors.New("places: invalid request")
)

func New(base, key string, rps int, timeout time.Duration) *Client {
	if rps <= 0 {
		rps = 5
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// detailFields is the fixed field set requested in the single detail call.
var detailFields = strings.Join([]string{
	"name", "place_id", "formatted_address", "international_phone_number", "website",
	"opening_hours", "photos", "rating", "user_ratings_total", "types",
	"geometry/location", "wheelchair_accessible_entrance", "reviews",
}, ",")

// ---- wire payloads ----

type searchResponse struct {
	Status     string          `json:"status"`
	Results    []candidateJSON `json:"results"`    // text search
	Candidates []candidateJSON `json:"candidates"` // find place
}

type candidateJSON struct {
	PlaceID string   `json:"place_id"`
	Name    string   `json:"name"`
	Rating  *float64 `json:"rating"`
}

type detailsResponse struct {
	Status string     `json:"status"`
	Result detailJSON `json:"result"`
}

type detailJSON struct {
	Name             string `json:"name"`
	FormattedAddress string `json:"formatted_address"`
	Phone            string `json:"international_phone_number"`
	Website          string `json:"website"`
	OpeningHours     *struct {
		WeekdayText []string `json:"weekday_text"`
	} `json:"opening_hours"`
	Photos []struct {
		PhotoReference string `json:"photo_reference"`
	} `json:"photos"`
	Rating               *float64        `json:"rating"`
	UserRatingsTotal     *int            `json:"user_ratings_total"`
	Types                []string        `json:"types"`
	AccessibilityOptions map[string]bool `json:"accessibility_options"`
	WheelchairAccessible *bool           `json:"wheelchair_accessible_entrance"`
	Reviews              []struct {
		AuthorName string   `json:"author_name"`
		Text       string   `json:"text"`
		Rating     *float64 `json:"rating"`
	} `json:"reviews"`
}

// ---- public API ----

// TextSearch runs the broad free-text lookup. ZERO_RESULTS is a nil slice
// with a nil error.
func (c *Client) TextSearch(ctx context.Context, query string) ([]domain.PlaceCandidate, error) {
	var out searchResponse
	if err := c.get(ctx, "textsearch", url.Values{"query": {query}}, &out); err != nil {
		return nil, err
	}
	if err := statusErr(out.Status); err != nil {
		return nil, err
	}
	return mapCandidates(out.Results), nil
}

// FindPlace runs the narrower single-candidate fallback lookup.
func (c *Client) FindPlace(ctx context.Context, query string) ([]domain.PlaceCandidate, error) {
	v := url.Values{
		"input":     {query},
		"inputtype": {"textquery"},
		"fields":    {"place_id,name,formatted_address,rating"},
	}
	var out searchResponse
	if err := c.get(ctx, "findplacefromtext", v, &out); err != nil {
		return nil, err
	}
	if err := statusErr(out.Status); err != nil {
		return nil, err
	}
	return mapCandidates(out.Candidates), nil
}

// Details fetches the full detail record for one identifier in a single call.
func (c *Client) Details(ctx context.Context, placeID string) (*domain.ListingRecord, error) {
	if placeID == "" {
		return nil, fmt.Errorf("places: empty place id")
	}
	v := url.Values{"place_id": {placeID}, "fields": {detailFields}}
	var out detailsResponse
	if err := c.get(ctx, "details", v, &out); err != nil {
		return nil, err
	}
	if err := statusErr(out.Status); err != nil {
		return nil, err
	}
	if out.Status != "OK" {
		return nil, nil // ZERO_RESULTS / NOT_FOUND: absent listing, not an error
	}
	return mapDetails(out.Result), nil
}

// ---- internals ----

// statusErr maps upstream semantic failures to typed errors. "OK" and
// "ZERO_RESULTS" are non-errors per the lookup API contract.
func statusErr(status string) error {
	switch status {
	case "OK", "ZERO_RESULTS", "NOT_FOUND", "":
		return nil
	case "REQUEST_DENIED", "OVER_QUERY_LIMIT":
		return ErrDenied
	case "INVALID_REQUEST":
		return ErrInvalid
	default:
		return fmt.Errorf("places: unexpected status %q", status)
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if c.key == "" {
		return ErrNoCredentials
	}
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	params.Set("key", c.key)
	u := fmt.Sprintf("%s/%s/json?%s", c.base, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "smile-audit/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("places", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("places", endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("places: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func mapCandidates(in []candidateJSON) []domain.PlaceCandidate {
	if len(in) == 0 {
		return nil
	}
	out := make([]domain.PlaceCandidate, 0, len(in))
	for _, c := range in {
		out = append(out, domain.PlaceCandidate{PlaceID: c.PlaceID, Name: c.Name, Rating: c.Rating})
	}
	return out
}

func mapDetails(d detailJSON) *domain.ListingRecord {
	rec := &domain.ListingRecord{
		Name:             d.Name,
		FormattedAddress: d.FormattedAddress,
		Phone:            d.Phone,
		Website:          d.Website,
		PhotoCount:       len(d.Photos),
		Rating:           d.Rating,
		RatingCount:      d.UserRatingsTotal,
		Types:            d.Types,
	}
	if d.OpeningHours != nil {
		rec.WeekdayHours = d.OpeningHours.WeekdayText
	}
	for k, set := range d.AccessibilityOptions {
		if set {
			rec.Accessibility = append(rec.Accessibility, strings.ReplaceAll(k, "_", " "))
		}
	}
	sort.Strings(rec.Accessibility) // map iteration order must not leak into reports
	if d.WheelchairAccessible != nil && *d.WheelchairAccessible && len(d.AccessibilityOptions) == 0 {
		rec.Accessibility = append(rec.Accessibility, "wheelchair accessible entrance")
	}
	for _, rv := range d.Reviews {
		rec.Reviews = append(rec.Reviews, domain.Review{Author: rv.AuthorName, Text: rv.Text, Rating: rv.Rating})
	}
	return rec
}
