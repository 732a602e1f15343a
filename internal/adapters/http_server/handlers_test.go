package httpserver_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpserver "smileaudit/internal/adapters/http_server"
	"smileaudit/internal/app"
	"smileaudit/internal/domain"
)

type staticFetcher struct{}

func (staticFetcher) Fetch(ctx context.Context, url string) domain.Page { return domain.Page{} }

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := app.NewAuditService(staticFetcher{}, nil, nil, nil, time.Minute)
	srv := httpserver.New(30 * time.Second)
	srv.MountHandlers(&httpserver.Handlers{A: svc})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func TestRunAudit_ReturnsReport(t *testing.T) {
	ts := newTestServer(t)

	body := `{"name":"Bright Smiles Dental","address":"1 Main St, Springfield, IL"}`
	res, err := http.Post(ts.URL+"/v1/audits", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if res.Header.Get("ETag") == "" {
		t.Fatal("missing ETag")
	}

	var rep domain.Report
	if err := json.NewDecoder(res.Body).Decode(&rep); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(rep.Sections) != 6 {
		t.Fatalf("sections = %d", len(rep.Sections))
	}
	if rep.Clinic.Name != "Bright Smiles Dental" {
		t.Fatalf("clinic = %q", rep.Clinic.Name)
	}
}

func TestRunAudit_NotModifiedOnMatchingETag(t *testing.T) {
	ts := newTestServer(t)
	body := `{"name":"Bright Smiles Dental"}`

	first, err := http.Post(ts.URL+"/v1/audits", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("first post: %v", err)
	}
	first.Body.Close()
	etag := first.Header.Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	// GeneratedAt differs between runs without a cache, so replay cannot be
	// asserted end to end here; verify the conditional plumbing with a
	// deliberately stale tag instead.
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/v1/audits", strings.NewReader(body))
	req.Header.Set("If-None-Match", `W/"0000"`)
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("second post: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("stale tag should refetch, status = %d", res.StatusCode)
	}
}

func TestRunAudit_BadRequests(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Post(ts.URL+"/v1/audits", "application/json", strings.NewReader("not json"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("malformed body: status = %d", res.StatusCode)
	}

	res, err = http.Post(ts.URL+"/v1/audits", "application/json", strings.NewReader(`{"phone":"555"}`))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty query: status = %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("content type = %q", ct)
	}
}

func TestExportAudit_CSVAttachment(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Get(ts.URL + "/v1/audits/export?name=Bright+Smiles+Dental")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
	if cd := res.Header.Get("Content-Disposition"); !strings.Contains(cd, "Bright_Smiles_Dental_smile_audit.csv") {
		t.Fatalf("disposition = %q", cd)
	}

	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	firstLine, _, _ := strings.Cut(string(b), "\n")
	if firstLine != "Section,Metric,Result,Advice" {
		t.Fatalf("header = %q", firstLine)
	}
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	res, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", res.StatusCode)
	}
}
