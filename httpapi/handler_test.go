package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/LumaLabs/lexipage"
	"github.com/LumaLabs/lexipage/cache"
	"github.com/LumaLabs/lexipage/source"
)

func newTestHandler(t *testing.T) (*Handler, *source.MockSource, *cache.InMemoryStore) {
	t.Helper()
	src := source.NewMockSource()
	store := cache.NewInMemoryStore(0)
	resolver := lexipage.NewResolver(src, lexipage.WithStore(store))
	return NewHandler(resolver, "<p>test page</p>", nil), src, store
}

func TestHandler_Index(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "<p>test page</p>") {
		t.Error("page content should be served")
	}
}

func TestHandler_IndexPlaceholder(t *testing.T) {
	src := source.NewMockSource()
	resolver := lexipage.NewResolver(src)
	h := NewHandler(resolver, "", nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "No content file found") {
		t.Error("empty page should fall back to the placeholder")
	}
}

func TestHandler_Translate(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/t/cat", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp entryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Phrase != "cat" {
		t.Errorf("phrase = %q", resp.Phrase)
	}
	if resp.Definition == "" {
		t.Error("definition should be populated")
	}
	if resp.Cached {
		t.Error("first lookup should not be cached")
	}
}

func TestHandler_TranslateCached(t *testing.T) {
	h, _, store := newTestHandler(t)
	store.Put("cat", lexipage.Entry{Definition: "cached cat"})

	req := httptest.NewRequest(http.MethodGet, "/t/cat", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	var resp entryResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Cached {
		t.Error("cached lookup should be flagged")
	}
	if resp.Definition != "cached cat" {
		t.Errorf("definition = %q", resp.Definition)
	}
}

func TestHandler_TranslateValidation(t *testing.T) {
	h, _, _ := newTestHandler(t)

	long := strings.Repeat("a", lexipage.MaxPhraseLen+1)
	req := httptest.NewRequest(http.MethodGet, "/t/"+long, nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] == "" {
		t.Error("error body should carry a message")
	}
}

func TestHandler_TranslateUpstreamFailure(t *testing.T) {
	h, src, _ := newTestHandler(t)
	src.Fail["boom"] = &lexipage.ProviderError{Message: "upstream down", Retryable: true}

	req := httptest.NewRequest(http.MethodGet, "/t/boom", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
}

func TestHandler_Batch(t *testing.T) {
	h, src, _ := newTestHandler(t)
	src.Fail["boom"] = &lexipage.ProviderError{Message: "upstream down"}

	body := `{"phrases": ["cat", "boom"]}`
	req := httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp batchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 2 {
		t.Fatalf("got %d results, want 2", len(resp.Results))
	}
	if resp.Results[0].Error != "" {
		t.Errorf("cat slot should succeed: %q", resp.Results[0].Error)
	}
	if resp.Results[1].Error == "" {
		t.Error("boom slot should carry the failure")
	}
	if resp.Fetched != 1 || resp.Failed != 1 {
		t.Errorf("stats fetched=%d failed=%d, want 1/1", resp.Fetched, resp.Failed)
	}
}

func TestHandler_BatchLegacyWordsKey(t *testing.T) {
	h, _, _ := newTestHandler(t)

	body := `{"words": ["cat"]}`
	req := httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp batchResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 1 || resp.Results[0].Phrase != "cat" {
		t.Errorf("unexpected results: %+v", resp.Results)
	}
}

func TestHandler_BatchEmpty(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader(`{"phrases": []}`))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandler_BatchTooLarge(t *testing.T) {
	h, _, _ := newTestHandler(t)

	phrases := make([]string, lexipage.MaxBatchSize+1)
	for i := range phrases {
		phrases[i] = fmt.Sprintf("word-%d", i)
	}
	body, _ := json.Marshal(map[string][]string{"phrases": phrases})

	req := httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandler_BatchBadBody(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/batch", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandler_Health(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %q", resp["status"])
	}
	if resp["version"] == "" {
		t.Error("version should be populated")
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	h, _, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/batch", nil)
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
