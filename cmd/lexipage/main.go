// Command lexipage serves a markdown document as an interactive dictionary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LumaLabs/lexipage"
	"github.com/LumaLabs/lexipage/cache"
	"github.com/LumaLabs/lexipage/content"
	"github.com/LumaLabs/lexipage/httpapi"
	"github.com/LumaLabs/lexipage/source"
	"go.uber.org/zap"
)

// Build-time variables (can be overridden with ldflags)
var (
	version = lexipage.Version
	commit  = lexipage.GitCommit
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("lexipage", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// Flags
	addr := fs.String("addr", "", "Listen address (default: :8080, or PORT env)")
	contentFile := fs.String("content", "content.md", "Markdown content file")
	cacheFile := fs.String("cache-file", "data/translations.json", "Flat-file cache path")
	redisURL := fs.String("redis", "", "Redis URL (overrides the file cache)")
	apiKey := fs.String("api-key", "", "API key (default: OPENAI_API_KEY or MISTRAL_API_KEY env)")
	baseURL := fs.String("base-url", "", "OpenAI-compatible API base URL (e.g. https://api.mistral.ai/v1)")
	model := fs.String("model", "gpt-4o-mini", "Model to use")
	rpm := fs.Int("rpm", 0, "Rate limit in requests per minute (0 to disable)")
	retries := fs.Int("retries", 3, "Upstream retry attempts (0 to disable)")
	concurrency := fs.Int("concurrency", 1, "Concurrent upstream lookups per batch")
	dev := fs.Bool("dev", false, "Human-readable logs")
	showVersion := fs.Bool("version", false, "Show version")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s %s\n", lexipage.Name, version)
		if commit != "unknown" && commit != "" {
			fmt.Fprintf(stdout, "  commit: %s\n", commit)
		}
		return nil
	}

	log, err := newLogger(*dev)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	// Get API key
	key := *apiKey
	if key == "" {
		key = os.Getenv("OPENAI_API_KEY")
	}
	if key == "" {
		key = os.Getenv("MISTRAL_API_KEY")
	}
	if key == "" {
		return fmt.Errorf("API key required (--api-key, OPENAI_API_KEY or MISTRAL_API_KEY env)")
	}

	// Render the content page once at startup
	page := ""
	data, err := os.ReadFile(*contentFile) // #nosec G304 - operator-provided path
	if err != nil {
		log.Warn("content file missing, serving placeholder",
			zap.String("path", *contentFile), zap.Error(err))
	} else {
		page, err = content.Page(data)
		if err != nil {
			return fmt.Errorf("processing content: %w", err)
		}
	}

	// Build the store
	var store lexipage.Store
	if *redisURL != "" {
		redisStore, err := cache.NewRedisStore(cache.RedisConfig{URL: *redisURL})
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer redisStore.Close()
		store = redisStore
	} else {
		fileStore, err := cache.OpenFileStore(*cacheFile, cache.WithFileLogger(log))
		if err != nil {
			return fmt.Errorf("opening cache file: %w", err)
		}
		store = fileStore
	}

	// Build the source with its decorators: rate limit closest to the
	// wire, retry above it, breaker outermost.
	var src lexipage.ExampleSource = source.NewOpenAISource(source.OpenAIConfig{
		APIKey:  key,
		Model:   *model,
		BaseURL: *baseURL,
	})
	if *rpm > 0 {
		src = lexipage.NewRateLimitedSource(src, lexipage.RateLimitConfig{RequestsPerMinute: *rpm})
	}
	if *retries > 0 {
		cfg := lexipage.DefaultRetryConfig()
		cfg.MaxRetries = *retries
		src = lexipage.NewRetryableSource(src, cfg)
	}
	src = lexipage.NewBreakerSource(src, lexipage.BreakerConfig{Name: "completion-api"})

	resolver := lexipage.NewResolver(src,
		lexipage.WithStore(store),
		lexipage.WithConcurrency(*concurrency),
		lexipage.WithLogger(log),
	)

	handler := httpapi.NewHandler(resolver, page, log)

	listenAddr := *addr
	if listenAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			listenAddr = ":" + port
		} else {
			listenAddr = ":8080"
		}
	}

	server := &http.Server{
		Addr:              listenAddr,
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", listenAddr), zap.String("version", lexipage.FullVersion()))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}

	return nil
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
