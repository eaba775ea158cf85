// Package vectordb provides per-session vector collections: each analysis
// session owns exactly one collection of embedded chunks, created at ingest
// and destroyed on teardown or re-ingest.
package vectordb

import (
	"context"
	"errors"
	"time"
)

// ErrCollectionNotFound is returned by operations against a collection name
// that does not exist.
var ErrCollectionNotFound = errors.New("collection not found")

// Record is one insertable entry: an embedded chunk with its raw text and
// flat metadata.
type Record struct {
	ID        string
	Embedding []float32
	Content   string
	Metadata  map[string]string
}

// Candidate is one nearest-neighbor result. Similarity is cosine similarity
// in [0, 1] for normalized embeddings (1 − distance).
type Candidate struct {
	ID         string
	Content    string
	Metadata   map[string]string
	Similarity float32
}

// CollectionMetadata describes a collection at creation time.
type CollectionMetadata struct {
	SessionID   string    `json:"session_id"`
	Filename    string    `json:"filename"`
	CreatedAt   time.Time `json:"created_at"`
	RowCount    int       `json:"row_count"`
	ColumnCount int       `json:"column_count"`
}

// CollectionInfo pairs a collection's creation metadata with its live count.
type CollectionInfo struct {
	Name     string             `json:"name"`
	Metadata CollectionMetadata `json:"metadata"`
	Count    int                `json:"count"`
}

// Store is the vector index consumed by the retrieval service. Collections
// are addressed by name; the name acts as the handle.
type Store interface {
	// CreateCollection creates (or replaces) the named collection.
	CreateCollection(ctx context.Context, name string, meta CollectionMetadata) error

	// DeleteCollection removes the named collection, reporting whether it
	// existed. Deleting an absent collection is not an error.
	DeleteCollection(ctx context.Context, name string) (bool, error)

	// Insert adds records to an existing collection.
	// Returns ErrCollectionNotFound if the collection does not exist.
	Insert(ctx context.Context, name string, records []Record) error

	// QueryEmbedding returns up to topK nearest neighbors of the query
	// vector, most similar first, optionally filtered by exact metadata
	// matches. Returns ErrCollectionNotFound if the collection is absent.
	QueryEmbedding(ctx context.Context, name string, query []float32, topK int, filter map[string]string) ([]Candidate, error)

	// GetCollectionInfo returns the collection's metadata and record count.
	// ok is false when the collection does not exist.
	GetCollectionInfo(name string) (info CollectionInfo, ok bool)

	// Count returns the number of records in the named collection.
	// Returns ErrCollectionNotFound if the collection is absent.
	Count(name string) (int, error)
}
