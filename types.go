package lexipage

import "time"

// Limits on inbound phrases, shared by the resolver and the HTTP layer.
const (
	// MaxPhraseLen is the maximum phrase length in runes after normalization.
	MaxPhraseLen = 100

	// MaxBatchSize is the maximum number of phrases in one batch request.
	MaxBatchSize = 50
)

// Entry is a dictionary entry for one normalized phrase: a brief definition
// plus one or more example sentences. An entry is immutable once cached;
// updates replace it wholesale.
type Entry struct {
	Definition string    `json:"definition"`
	Examples   []string  `json:"examples"`
	CreatedAt  time.Time `json:"created_at"`
}

// IsZero reports whether the entry carries no content.
func (e Entry) IsZero() bool {
	return e.Definition == "" && len(e.Examples) == 0
}

// PhraseResult is one output slot of a batch resolution.
// Exactly one of Entry or Err is meaningful.
type PhraseResult struct {
	Phrase    string // The phrase as submitted by the caller
	Key       string // Normalized cache key
	Entry     Entry  // Resolved entry (zero when Err is set)
	FromCache bool   // Whether the entry came from the store
	Err       error  // Per-slot failure; never aborts the batch
}

// ResolveStats summarizes one Resolve call.
type ResolveStats struct {
	Total   int // Input slots
	Cached  int // Slots served from the store
	Fetched int // Slots served by a fresh upstream lookup
	Failed  int // Slots that carry an error
}
