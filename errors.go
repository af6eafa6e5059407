package lexipage

import "fmt"

// ValidationError indicates a phrase that is rejected before any lookup
// (empty after normalization, or over the configured length limit).
type ValidationError struct {
	Phrase  string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid phrase %q: %s", e.Phrase, e.Message)
}

// ProviderError indicates an upstream AI source failure (API error, rate
// limit, network timeout, etc.).
type ProviderError struct {
	Message   string
	Cause     error
	Retryable bool // Whether the operation can be retried
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// CacheError indicates a cache store operation failure. A miss is not an
// error; stores report misses through their boolean return.
type CacheError struct {
	Message string
	Cause   error
}

func (e *CacheError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cache error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("cache error: %s", e.Message)
}

func (e *CacheError) Unwrap() error {
	return e.Cause
}

// ContentError indicates a content processing failure: unparseable markdown,
// unserializable HTML, or an AI completion that yielded no usable entry.
type ContentError struct {
	Message string
	Cause   error
}

func (e *ContentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("content error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("content error: %s", e.Message)
}

func (e *ContentError) Unwrap() error {
	return e.Cause
}
