package app

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"smileaudit/internal/adapters/observability"
	"smileaudit/internal/domain"
)

// AuditService runs the full pipeline for one clinic query: fetch the site,
// resolve the listing, extract signals, analyze reviews, aggregate the
// score, and assemble the report. Within a run everything is sequential;
// across runs only the report cache is shared.
type AuditService struct {
	fetcher  domain.PageFetcher
	places   domain.PlacesClient
	search   domain.SearchClient
	cache    domain.Cache
	cacheTTL time.Duration
	sf       singleflight.Group
	now      func() time.Time
}

func NewAuditService(f domain.PageFetcher, p domain.PlacesClient, s domain.SearchClient,
	cache domain.Cache, ttl time.Duration) *AuditService {
	return &AuditService{
		fetcher:  f,
		places:   p,
		search:   s,
		cache:    cache,
		cacheTTL: ttl,
		now:      time.Now,
	}
}

// Run executes one audit. Identical concurrent queries collapse into a
// single upstream pass via singleflight; finished reports are cached for
// the configured TTL.
func (s *AuditService) Run(ctx context.Context, q domain.ClinicQuery) (domain.Report, error) {
	key := cacheKey(q)

	if s.cache != nil {
		var cached domain.Report
		if ok, _ := s.cache.Get(ctx, key, &cached); ok {
			observability.ObserveAudit("cached")
			return cached, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (any, error) {
		rep := s.runOnce(ctx, q)
		if s.cache != nil {
			_ = s.cache.Set(ctx, key, rep, int(s.cacheTTL.Seconds()))
		}
		return rep, nil
	})
	if err != nil {
		observability.ObserveAudit("error")
		return domain.Report{}, err
	}
	observability.ObserveAudit("ok")
	return v.(domain.Report), nil
}

// runOnce does the sequential network pass and the pure assembly. Every
// collaborator failure degrades to an absence; the run always completes.
func (s *AuditService) runOnce(ctx context.Context, q domain.ClinicQuery) domain.Report {
	page := s.fetcher.Fetch(ctx, q.Website)

	rec := s.resolveListing(ctx, q)
	visibility := s.searchVisibility(ctx, q)
	competitive := s.competitiveBenchmark(ctx, q)

	return assembleReport(q, page, rec, visibility, competitive, s.now().UTC())
}

// resolveListing runs the candidate-query cascade: broad text search over
// every candidate first, then the narrower find-place fallback. First
// status-OK non-empty result wins; both passes exhausting means no listing.
func (s *AuditService) resolveListing(ctx context.Context, q domain.ClinicQuery) *domain.ListingRecord {
	if s.places == nil {
		return nil
	}
	candidates := listingCandidates(q)
	if len(candidates) == 0 {
		return nil
	}

	lookups := []func(context.Context, string) ([]domain.PlaceCandidate, error){
		s.places.TextSearch,
		s.places.FindPlace,
	}

	var placeID string
	for _, lookup := range lookups {
		for _, cand := range candidates {
			matches, err := lookup(ctx, cand)
			if err != nil {
				// denied/invalid/network: same as no match, keep cascading
				log.Warn().Str("query", cand).Err(err).Msg("listing lookup failed")
				continue
			}
			if len(matches) > 0 {
				placeID = matches[0].PlaceID
				break
			}
		}
		if placeID != "" {
			break
		}
	}
	if placeID == "" {
		return nil
	}

	rec, err := s.places.Details(ctx, placeID)
	if err != nil {
		log.Warn().Str("place_id", placeID).Err(err).Msg("listing details failed")
		return nil
	}
	return rec
}

// listingCandidates builds the ordered lookup queries: most specific first.
func listingCandidates(q domain.ClinicQuery) []string {
	var out []string
	name := strings.TrimSpace(q.Name)
	addr := strings.TrimSpace(q.Address)
	if name != "" && addr != "" {
		out = append(out, name+" "+addr)
	}
	if name != "" {
		out = append(out, name)
	}
	if d := domainOf(q.Website); d != "" {
		out = append(out, d)
	}
	return out
}

// searchVisibility probes whether the clinic shows up in the top organic
// results for "dentist near <city>". Missing credentials or any search
// failure yield the sentinel, never an error.
func (s *AuditService) searchVisibility(ctx context.Context, q domain.ClinicQuery) domain.Value {
	if s.search == nil {
		return domain.Absent()
	}
	query := "dentist near me"
	if city := cityFromAddress(q.Address); city != "" {
		query = "dentist near " + city
	} else if q.Name != "" {
		query = strings.TrimSpace("dentist near me " + q.Name)
	}

	results, err := s.search.Search(ctx, query, 10)
	if err != nil {
		log.Debug().Str("query", query).Err(err).Msg("search visibility skipped")
		return domain.Absent()
	}

	site := domainOf(q.Website)
	name := strings.ToLower(q.Name)
	for _, r := range results {
		if site != "" && domainOf(r.Link) == site {
			return domain.SomeText(visibilityYes)
		}
		if name != "" && (strings.Contains(strings.ToLower(r.Title), name) ||
			strings.Contains(strings.ToLower(r.Snippet), name)) {
			return domain.SomeText(visibilityYes)
		}
	}
	return domain.SomeText(visibilityNo)
}

// competitiveBenchmark averages the ratings of the top three "dentist in
// <city>" text-search results.
func (s *AuditService) competitiveBenchmark(ctx context.Context, q domain.ClinicQuery) domain.Value {
	city := cityFromAddress(q.Address)
	if city == "" || s.places == nil {
		return domain.Absent()
	}
	matches, err := s.places.TextSearch(ctx, "dentist in "+city)
	if err != nil {
		log.Debug().Str("city", city).Err(err).Msg("competitive benchmark skipped")
		return domain.Absent()
	}
	if len(matches) > 3 {
		matches = matches[:3]
	}
	var sum float64
	var n int
	for _, m := range matches {
		if m.Rating != nil {
			sum += *m.Rating
			n++
		}
	}
	if n == 0 {
		return domain.Absent()
	}
	return formatAvgRating(sum / float64(n))
}

// cacheKey hashes the normalized query so equivalent inputs share a cache
// slot without leaking free text into key space.
func cacheKey(q domain.ClinicQuery) string {
	norm := strings.ToLower(strings.Join([]string{q.Name, q.Address, q.Phone, q.Website}, "|"))
	sum := sha1.Sum([]byte(strings.TrimSpace(norm)))
	return "audit:" + hex.EncodeToString(sum[:])
}
