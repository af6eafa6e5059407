package lexipage_test

import (
	"context"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/LumaLabs/lexipage"
	"github.com/LumaLabs/lexipage/cache"
	"github.com/LumaLabs/lexipage/content"
	"github.com/LumaLabs/lexipage/source"
)

// TestPageToResolution exercises the full path: markdown becomes a page of
// positioned word spans, a selection of positions becomes phrases, and the
// phrases resolve to entries.
func TestPageToResolution(t *testing.T) {
	page, err := content.Page([]byte("# Reading\n\nThe quick brown fox jumps over the lazy dog.\n"))
	if err != nil {
		t.Fatalf("rendering page: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatal(err)
	}

	var tokens []string
	doc.Find("span.cw").Each(func(_ int, s *goquery.Selection) {
		word, _ := s.Attr("data-word")
		tokens = append(tokens, word)
	})

	// "Reading" + 9 sentence words
	if len(tokens) != 10 {
		t.Fatalf("expected 10 word spans, got %d: %v", len(tokens), tokens)
	}

	// Click "quick", "brown", "fox" and, separately, "lazy".
	phrases := lexipage.MergePhrases([]int{2, 3, 4, 8}, tokens)
	if len(phrases) != 2 {
		t.Fatalf("expected 2 merged phrases, got %v", phrases)
	}
	if phrases[0] != "quick brown fox" {
		t.Errorf("adjacent selections should merge: %q", phrases[0])
	}
	if phrases[1] != "lazy" {
		t.Errorf("isolated selection should stand alone: %q", phrases[1])
	}

	src := source.NewMockSource()
	store := cache.NewInMemoryStore(0)
	resolver := lexipage.NewResolver(src, lexipage.WithStore(store))

	results := resolver.Resolve(context.Background(), phrases)
	for i, res := range results {
		if res.Err != nil {
			t.Errorf("slot %d failed: %v", i, res.Err)
		}
		if res.Entry.Definition == "" {
			t.Errorf("slot %d has no definition", i)
		}
	}
}

// TestResolveCachesAcrossCalls verifies a second resolution of the same
// phrase is served from the store.
func TestResolveCachesAcrossCalls(t *testing.T) {
	src := source.NewMockSource()
	store := cache.NewInMemoryStore(0)
	resolver := lexipage.NewResolver(src, lexipage.WithStore(store))

	ctx := context.Background()

	first := resolver.ResolveOne(ctx, "cat")
	if first.Err != nil {
		t.Fatalf("first resolution failed: %v", first.Err)
	}
	if first.FromCache {
		t.Error("first resolution should go upstream")
	}

	second := resolver.ResolveOne(ctx, "CAT ")
	if second.Err != nil {
		t.Fatalf("second resolution failed: %v", second.Err)
	}
	if !second.FromCache {
		t.Error("second resolution should hit the store")
	}
	if src.CallCount() != 1 {
		t.Errorf("expected 1 upstream call, got %d", src.CallCount())
	}
}

// TestDecoratedSourceStack runs the resolver through the full decorator
// stack the server assembles.
func TestDecoratedSourceStack(t *testing.T) {
	var src lexipage.ExampleSource = source.NewMockSource()
	src = lexipage.NewRateLimitedSource(src, lexipage.RateLimitConfig{RequestsPerMinute: 6000, BurstSize: 100})
	src = lexipage.NewRetryableSource(src, lexipage.RetryConfig{MaxRetries: 1, BaseDelay: 1, MaxDelay: 1})
	src = lexipage.NewBreakerSource(src, lexipage.BreakerConfig{Name: "test"})

	resolver := lexipage.NewResolver(src, lexipage.WithStore(cache.NewInMemoryStore(0)))

	results := resolver.Resolve(context.Background(), []string{"cat", "hot dog"})
	for i, res := range results {
		if res.Err != nil {
			t.Errorf("slot %d failed: %v", i, res.Err)
		}
	}
}

// TestFileStoreEndToEnd resolves against a file-backed store and confirms
// the cache survives a reopen.
func TestFileStoreEndToEnd(t *testing.T) {
	path := t.TempDir() + "/translations.json"

	store, err := cache.OpenFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	src := source.NewMockSource()
	resolver := lexipage.NewResolver(src, lexipage.WithStore(store))
	if res := resolver.ResolveOne(context.Background(), "cat"); res.Err != nil {
		t.Fatalf("resolution failed: %v", res.Err)
	}

	reopened, err := cache.OpenFileStore(path)
	if err != nil {
		t.Fatal(err)
	}

	resolver2 := lexipage.NewResolver(src, lexipage.WithStore(reopened))
	res := resolver2.ResolveOne(context.Background(), "cat")
	if !res.FromCache {
		t.Error("reopened store should serve the cached entry")
	}
	if src.CallCount() != 1 {
		t.Errorf("expected 1 upstream call, got %d", src.CallCount())
	}
}
