// Package httpapi exposes the resolver over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LumaLabs/lexipage"
	"go.uber.org/zap"
)

// resolverService is the slice of the resolver the handlers need.
type resolverService interface {
	ResolveWithStats(ctx context.Context, phrases []string) ([]lexipage.PhraseResult, lexipage.ResolveStats)
	ResolveOne(ctx context.Context, phrase string) lexipage.PhraseResult
}

// Handler serves the dictionary page and the translation endpoints.
type Handler struct {
	resolver resolverService
	page     string // pre-rendered page HTML, served at /
	log      *zap.Logger
}

// NewHandler creates a Handler. The page is the already-wrapped content
// HTML; pass an empty string to serve a placeholder.
func NewHandler(resolver resolverService, page string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if page == "" {
		page = "<p>No content file found. Please create content.md</p>"
	}
	return &Handler{
		resolver: resolver,
		page:     page,
		log:      log,
	}
}

// Routes returns the full handler with routing and request logging.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Index)
	mux.HandleFunc("GET /t/{phrase}", h.Translate)
	mux.HandleFunc("POST /batch", h.Batch)
	mux.HandleFunc("GET /healthz", h.Health)
	return requestLogger(h.log)(mux)
}

// entryResponse is the JSON shape of one resolved phrase.
type entryResponse struct {
	Phrase     string   `json:"phrase"`
	Definition string   `json:"definition"`
	Examples   []string `json:"examples"`
	Cached     bool     `json:"cached"`
	Error      string   `json:"error,omitempty"`
}

func toEntryResponse(res lexipage.PhraseResult) entryResponse {
	out := entryResponse{
		Phrase:     res.Phrase,
		Definition: res.Entry.Definition,
		Examples:   res.Entry.Examples,
		Cached:     res.FromCache,
	}
	if res.Err != nil {
		out.Error = res.Err.Error()
	}
	return out
}

// Index handles GET /, serving the rendered content page.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(renderShell(h.page)))
}

// Translate handles GET /t/{phrase}, resolving a single phrase.
func (h *Handler) Translate(w http.ResponseWriter, r *http.Request) {
	phrase := r.PathValue("phrase")

	res := h.resolver.ResolveOne(r.Context(), phrase)
	if res.Err != nil {
		writeJSON(w, statusFor(res.Err), map[string]string{"error": res.Err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, toEntryResponse(res))
}

// batchRequest is the JSON body of POST /batch. The legacy "words" key is
// accepted from older clients.
type batchRequest struct {
	Phrases []string `json:"phrases"`
	Words   []string `json:"words"`
}

// batchResponse is the JSON body returned by POST /batch.
type batchResponse struct {
	Results []entryResponse `json:"results"`
	Cached  int             `json:"cached"`
	Fetched int             `json:"fetched"`
	Failed  int             `json:"failed"`
}

// Batch handles POST /batch. Failures are reported per phrase; one bad
// phrase never aborts the rest of the batch.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	phrases := req.Phrases
	if len(phrases) == 0 {
		phrases = req.Words
	}
	if len(phrases) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no phrases provided"})
		return
	}
	if len(phrases) > lexipage.MaxBatchSize {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "too many phrases"})
		return
	}

	results, stats := h.resolver.ResolveWithStats(r.Context(), phrases)

	out := batchResponse{
		Results: make([]entryResponse, len(results)),
		Cached:  stats.Cached,
		Fetched: stats.Fetched,
		Failed:  stats.Failed,
	}
	for i, res := range results {
		out.Results[i] = toEntryResponse(res)
	}

	writeJSON(w, http.StatusOK, out)
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": lexipage.FullVersion(),
	})
}

// statusFor maps a per-phrase error to an HTTP status.
func statusFor(err error) int {
	var validationErr *lexipage.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
