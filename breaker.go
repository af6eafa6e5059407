package lexipage

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerConfig configures the circuit breaker.
type BreakerConfig struct {
	Name        string        // Breaker name for state-change reporting
	MaxFailures uint32        // Consecutive failures before the circuit opens (default: 5)
	Timeout     time.Duration // How long the circuit stays open (default: 30s)
}

// BreakerSource wraps an ExampleSource with a circuit breaker so a failing
// upstream API stops receiving traffic until it recovers.
type BreakerSource struct {
	source  ExampleSource
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerSource creates a new circuit-breaker-wrapped source.
func NewBreakerSource(source ExampleSource, cfg BreakerConfig) *BreakerSource {
	name := cfg.Name
	if name == "" {
		name = "example-source"
	}

	maxFailures := cfg.MaxFailures
	if maxFailures == 0 {
		maxFailures = 5
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &BreakerSource{
		source: source,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    name,
			Timeout: timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
		}),
	}
}

// Examples implements ExampleSource behind the circuit breaker.
func (s *BreakerSource) Examples(ctx context.Context, phrase string) (Entry, error) {
	v, err := s.breaker.Execute(func() (interface{}, error) {
		entry, err := s.source.Examples(ctx, phrase)
		return entry, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return Entry{}, &ProviderError{
				Message:   "circuit breaker open",
				Cause:     err,
				Retryable: true,
			}
		}
		return Entry{}, err
	}
	return v.(Entry), nil
}

// State returns the current breaker state.
func (s *BreakerSource) State() gobreaker.State {
	return s.breaker.State()
}
