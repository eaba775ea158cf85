// Package embeddings adapts external embedding providers to a common
// interface. Providers must be deterministic for identical input and must
// not mutate it; chunk and query texts go through the same provider so
// their vectors share one space.
package embeddings

import (
	"context"
	"sync"
)

// Embedder generates fixed-dimension embeddings for text.
//
// Implementations backed by remote APIs are stateless and safe for
// concurrent use from multiple sessions. Wrap a non-thread-safe
// implementation with Serialized before handing it to the retrieval service.
type Embedder interface {
	// Embed generates embeddings for one or more texts, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the length of the vectors this embedder produces.
	Dimensions() int

	// Name identifies the underlying model.
	Name() string
}

// Serialized wraps an embedder so at most one Embed call runs at a time,
// without blocking unrelated index operations. Use it for local models that
// are not safe for concurrent invocation.
func Serialized(e Embedder) Embedder {
	return &serialEmbedder{inner: e}
}

type serialEmbedder struct {
	mu    sync.Mutex
	inner Embedder
}

func (s *serialEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Embed(ctx, texts)
}

func (s *serialEmbedder) Dimensions() int { return s.inner.Dimensions() }
func (s *serialEmbedder) Name() string    { return s.inner.Name() }
