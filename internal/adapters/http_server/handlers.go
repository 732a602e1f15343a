package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"smileaudit/internal/app"
	"smileaudit/internal/domain"
	"smileaudit/internal/export"
)

type Handlers struct{ A *app.AuditService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

// auditRequest is the POST body. All fields are optional individually, but a
// request with neither a name nor a website has nothing to audit.
type auditRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Website string `json:"website"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/audits", h.runAudit)
	s.mux.Get("/v1/audits/export", h.exportAudit)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func queryFrom(req auditRequest) (domain.ClinicQuery, bool) {
	q := domain.ClinicQuery{
		Name:    strings.TrimSpace(req.Name),
		Address: strings.TrimSpace(req.Address),
		Phone:   strings.TrimSpace(req.Phone),
		Website: strings.TrimSpace(req.Website),
	}
	return q, q.Name != "" || q.Website != ""
}

func (h *Handlers) runAudit(w http.ResponseWriter, r *http.Request) {
	var req auditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "body must be a JSON object")
		return
	}
	q, ok := queryFrom(req)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Missing Input", "provide at least a name or a website")
		return
	}

	rep, err := h.A.Run(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Audit Failed", err.Error())
		return
	}

	etag, body := calcETagAndBody(rep)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write audit body")
	}
}

// exportAudit runs (or replays from cache) an audit and streams it as CSV.
func (h *Handlers) exportAudit(w http.ResponseWriter, r *http.Request) {
	qs := r.URL.Query()
	q, ok := queryFrom(auditRequest{
		Name:    qs.Get("name"),
		Address: qs.Get("address"),
		Phone:   qs.Get("phone"),
		Website: qs.Get("website"),
	})
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Missing Input", "provide at least a name or a website")
		return
	}

	rep, err := h.A.Run(r.Context(), q)
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Audit Failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(q.Name)+`"`)
	w.WriteHeader(http.StatusOK)
	if err := export.WriteCSV(w, rep); err != nil {
		log.Error().Err(err).Msg("failed to write audit csv")
	}
}
