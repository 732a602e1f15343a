package fetch

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"smileaudit/internal/adapters/observability"
	"smileaudit/internal/domain"
)

// Fetcher retrieves a clinic website once and measures load latency. It
// never reports an error: any failure, from an empty URL to an unparseable
// body, degrades to the absent Page and the audit proceeds.
type Fetcher struct {
	hc *http.Client
	ua string
}

func New(timeout time.Duration, userAgent string) *Fetcher {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (compatible; smile-audit/1.0)"
	}
	return &Fetcher{hc: &http.Client{Timeout: timeout}, ua: userAgent}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) domain.Page {
	if strings.TrimSpace(url) == "" {
		return domain.Page{}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.Page{}
	}
	req.Header.Set("User-Agent", f.ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := f.hc.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		observability.ObserveExternal("site", "fetch", 0, elapsed)
		log.Debug().Str("url", url).Err(err).Msg("site fetch failed")
		return domain.Page{}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("site", "fetch", resp.StatusCode, elapsed)

	if resp.StatusCode != http.StatusOK {
		return domain.Page{}
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return domain.Page{}
	}
	return domain.Page{Doc: doc, Latency: elapsed, OK: true}
}
