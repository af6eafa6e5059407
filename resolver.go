package lexipage

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ExampleSource is the interface for AI backends that generate dictionary
// entries for a phrase.
type ExampleSource interface {
	Examples(ctx context.Context, phrase string) (Entry, error)
}

// Store is the interface for entry caching. Get never errors on a miss;
// Put persists the entry before returning and overwrites any existing one.
type Store interface {
	Get(key string) (Entry, bool)
	Put(key string, e Entry) error
}

// Resolver is the batch orchestrator: it consults the store for each phrase,
// fetches only the misses from the example source, and writes new entries
// back to the store.
type Resolver struct {
	source       ExampleSource
	store        Store
	maxPhraseLen int
	concurrency  int
	log          *zap.Logger
}

// ResolverOption is a functional option for configuring the Resolver.
type ResolverOption func(*Resolver)

// WithStore sets the cache store. Without a store every phrase goes upstream.
func WithStore(store Store) ResolverOption {
	return func(r *Resolver) {
		r.store = store
	}
}

// WithMaxPhraseLen overrides the maximum phrase length in runes.
func WithMaxPhraseLen(n int) ResolverOption {
	return func(r *Resolver) {
		r.maxPhraseLen = n
	}
}

// WithConcurrency sets how many upstream lookups may run at once.
// The default is 1 (sequential).
func WithConcurrency(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(log *zap.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver creates a new Resolver backed by the given example source.
func NewResolver(source ExampleSource, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		source:       source,
		maxPhraseLen: MaxPhraseLen,
		concurrency:  1,
		log:          zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Resolve resolves a batch of phrases. The output always has one slot per
// input phrase, in input order. A failed lookup fills only its own slots
// with the error; other slots still carry their entries.
func (r *Resolver) Resolve(ctx context.Context, phrases []string) []PhraseResult {
	results, _ := r.ResolveWithStats(ctx, phrases)
	return results
}

// ResolveOne resolves a single phrase.
func (r *Resolver) ResolveOne(ctx context.Context, phrase string) PhraseResult {
	results, _ := r.ResolveWithStats(ctx, []string{phrase})
	return results[0]
}

// ResolveWithStats is Resolve with per-call statistics.
func (r *Resolver) ResolveWithStats(ctx context.Context, phrases []string) ([]PhraseResult, ResolveStats) {
	results := make([]PhraseResult, len(phrases))
	stats := ResolveStats{Total: len(phrases)}

	// Group slots by unique normalized key so duplicate phrases in one
	// batch consult the store and the source at most once each.
	keySlots := make(map[string][]int)
	var keys []string

	for i, phrase := range phrases {
		key := NormalizeKey(phrase)
		results[i].Phrase = phrase
		results[i].Key = key

		if err := ValidateKey(key, r.maxPhraseLen); err != nil {
			results[i].Err = err
			stats.Failed++
			continue
		}

		if _, seen := keySlots[key]; !seen {
			keys = append(keys, key)
		}
		keySlots[key] = append(keySlots[key], i)
	}

	missSlots := make(map[string][]int)
	var missKeys []string

	for _, key := range keys {
		slots := keySlots[key]

		if r.store != nil {
			if entry, ok := r.store.Get(key); ok {
				for _, slot := range slots {
					results[slot].Entry = entry
					results[slot].FromCache = true
				}
				stats.Cached += len(slots)
				continue
			}
		}

		missKeys = append(missKeys, key)
		missSlots[key] = slots
	}

	if len(missKeys) == 0 || r.source == nil {
		return results, stats
	}

	// Fetch misses with bounded concurrency. Failures stay in their own
	// slots, so the group never returns an error.
	type fetched struct {
		entry Entry
		err   error
	}
	out := make([]fetched, len(missKeys))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, key := range missKeys {
		g.Go(func() error {
			entry, err := r.source.Examples(ctx, key)
			out[i] = fetched{entry: entry, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for i, key := range missKeys {
		f := out[i]
		slots := missSlots[key]

		if f.err != nil {
			r.log.Warn("upstream lookup failed", zap.String("key", key), zap.Error(f.err))
			for _, slot := range slots {
				results[slot].Err = f.err
			}
			stats.Failed += len(slots)
			continue
		}

		if r.store != nil {
			if err := r.store.Put(key, f.entry); err != nil {
				// The entry is still returned; only persistence failed.
				r.log.Error("persisting entry failed", zap.String("key", key), zap.Error(err))
			}
		}

		for _, slot := range slots {
			results[slot].Entry = f.entry
		}
		stats.Fetched += len(slots)
	}

	return results, stats
}
