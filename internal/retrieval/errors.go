package retrieval

import "errors"

var (
	// ErrNotFound means the session has no indexed dataset.
	ErrNotFound = errors.New("no collection for session")

	// ErrNoChunks means chunking produced nothing to index.
	ErrNoChunks = errors.New("dataset produced no chunks")

	// ErrEmbedding means the embedding backend failed for every chunk, or
	// for the query text.
	ErrEmbedding = errors.New("embedding failed")
)
