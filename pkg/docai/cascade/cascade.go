// Package cascade implements the shared "ordered fallback, first
// success wins" combinator used by extraction, summarization and
// suggestion generation.
package cascade

import (
	"context"
	"errors"
	"time"

	"doc-intelligence-be/pkg/docai"
)

// ErrExhausted is returned when every step in a cascade failed.
var ErrExhausted = errors.New("all providers exhausted")

// Attempt records the outcome of a single provider call. Used for
// fallback control flow and logging only; never persisted.
type Attempt struct {
	ProviderID string
	OK         bool
	ErrKind    docai.ErrorKind
	Latency    time.Duration
}

// Step is one (providerId, callFn) pair in an ordered fallback list.
type Step[T any] struct {
	ProviderID string
	Run        func(ctx context.Context) (T, error)
}

// First executes steps strictly in declared order and returns the first
// successful result together with the winning provider id and the full
// attempt trail. Step k+1 never begins before step k resolves. Any step
// error is a soft failure; only exhaustion of the whole list surfaces
// ErrExhausted.
func First[T any](ctx context.Context, steps []Step[T]) (T, string, []Attempt, error) {
	var zero T
	attempts := make([]Attempt, 0, len(steps))

	for _, step := range steps {
		began := time.Now()
		out, err := step.Run(ctx)
		latency := time.Since(began)
		if err != nil {
			attempts = append(attempts, Attempt{
				ProviderID: step.ProviderID,
				OK:         false,
				ErrKind:    docai.KindOf(err),
				Latency:    latency,
			})
			continue
		}
		attempts = append(attempts, Attempt{
			ProviderID: step.ProviderID,
			OK:         true,
			Latency:    latency,
		})
		return out, step.ProviderID, attempts, nil
	}

	return zero, "", attempts, ErrExhausted
}
