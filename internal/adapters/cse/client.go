package cse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"smileaudit/internal/adapters/observability"
	"smileaudit/internal/domain"
)

// Client talks to the generic web-search API (Google Custom Search). Like
// the listing client, it makes a single bounded attempt per call and
// short-circuits without credentials.
type Client struct {
	base string
	hc   *http.Client
	key  string
	cx   string
	rl   *rate.Limiter
}

var ErrNoCredentials = errors.New("cse: search credentials not configured")

func New(base, key, cx string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: timeout},
		key:  key,
		cx:   cx,
		rl:   rate.NewLimiter(rate.Limit(5), 5),
	}
}

type searchResponse struct {
	Items []struct {
		Link    string `json:"link"`
		Title   string `json:"title"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// Search returns up to n ranked organic results for the query.
func (c *Client) Search(ctx context.Context, query string, n int) ([]domain.SearchResult, error) {
	if c.key == "" || c.cx == "" {
		return nil, ErrNoCredentials
	}
	if n <= 0 || n > 10 {
		n = 10
	}
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	v := url.Values{"key": {c.key}, "cx": {c.cx}, "q": {query}, "num": {strconv.Itoa(n)}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"?"+v.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "smile-audit/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("cse", "search", 0, time.Since(start))
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("cse", "search", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("cse: bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	results := make([]domain.SearchResult, 0, len(out.Items))
	for _, it := range out.Items {
		results = append(results, domain.SearchResult{Link: it.Link, Title: it.Title, Snippet: it.Snippet})
	}
	return results, nil
}
