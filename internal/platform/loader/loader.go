// Package loader centralizes the list-screen loading policy: fetch, and on
// an empty result or an error substitute the bundled sample dataset, tagging
// the result so the render layer can disclose why sample data is shown.
package loader

import (
	"context"

	"github.com/rs/zerolog"
)

// Kind tags how a Result was produced.
type Kind int

const (
	// KindReal means the fetch succeeded with a non-empty collection.
	KindReal Kind = iota
	// KindEmptyFallback means the fetch succeeded but returned nothing;
	// Data holds the sample set to invite first use.
	KindEmptyFallback
	// KindErrorFallback means the fetch failed; Data holds the sample set
	// and Err records the failure. The error is never re-thrown to the
	// render layer.
	KindErrorFallback
)

func (k Kind) String() string {
	switch k {
	case KindReal:
		return "real"
	case KindEmptyFallback:
		return "empty-fallback"
	case KindErrorFallback:
		return "error-fallback"
	}
	return "unknown"
}

// Result is the tagged outcome of a Load.
type Result[T any] struct {
	Kind Kind
	Data []T
	Err  error
}

// Fallback reports whether Data is sample data rather than backend data.
func (r Result[T]) Fallback() bool {
	return r.Kind != KindReal
}

// Load runs fetch and applies the three-way fallback policy. A cancelled
// context is reported as an error instead of a fallback so an abandoned
// screen never renders a stale result.
func Load[T any](ctx context.Context, log zerolog.Logger, fetch func(context.Context) ([]T, error), sample []T) (Result[T], error) {
	items, err := fetch(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result[T]{}, ctxErr
	}
	if err != nil {
		log.Warn().Err(err).Msg("fetch failed, substituting sample data")
		return Result[T]{Kind: KindErrorFallback, Data: sample, Err: err}, nil
	}
	if len(items) == 0 {
		return Result[T]{Kind: KindEmptyFallback, Data: sample}, nil
	}
	return Result[T]{Kind: KindReal, Data: items}, nil
}

// LoadStrict runs fetch without the sample-data substitution, for scripting
// contexts where masking a backend failure would be worse than failing.
func LoadStrict[T any](ctx context.Context, fetch func(context.Context) ([]T, error)) (Result[T], error) {
	items, err := fetch(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result[T]{}, ctxErr
	}
	if err != nil {
		return Result[T]{}, err
	}
	return Result[T]{Kind: KindReal, Data: items}, nil
}
