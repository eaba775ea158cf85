// Package retrieval orchestrates the ingest and query lifecycle: datasets are
// chunked, embedded, and indexed into a per-session collection; queries are
// classified, augmented, embedded, searched, and re-ranked by intent.
package retrieval

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/ziadkadry99/datachat/internal/chunker"
	"github.com/ziadkadry99/datachat/internal/dataset"
	"github.com/ziadkadry99/datachat/internal/embeddings"
	"github.com/ziadkadry99/datachat/internal/intent"
	"github.com/ziadkadry99/datachat/internal/vectordb"
)

// DefaultTopK is the result count when the caller does not specify one.
const DefaultTopK = 5

// Options tunes the service.
type Options struct {
	// Chunking is passed through to the chunker on every ingest.
	Chunking chunker.Options

	// DefaultTopK overrides DefaultTopK for queries with topK <= 0.
	DefaultTopK int
}

// Service is the retrieval orchestrator. All methods are safe for concurrent
// use across sessions; callers must not run concurrent ingests for the same
// session.
type Service struct {
	store    vectordb.Store
	embedder embeddings.Embedder
	opts     Options
}

// NewService wires a store and an embedder into a retrieval service.
func NewService(store vectordb.Store, embedder embeddings.Embedder, opts Options) *Service {
	if opts.DefaultTopK <= 0 {
		opts.DefaultTopK = DefaultTopK
	}
	return &Service{store: store, embedder: embedder, opts: opts}
}

func collectionName(sessionID string) string {
	return "session_" + sessionID
}

// Ingest indexes a dataset for a session, replacing any existing collection.
// On failure (or context cancellation) no partial collection is left behind.
func (s *Service) Ingest(ctx context.Context, sessionID string, table *dataset.Table, filename string) (*vectordb.CollectionInfo, error) {
	name := collectionName(sessionID)

	if _, err := s.store.DeleteCollection(ctx, name); err != nil {
		return nil, fmt.Errorf("drop previous collection: %w", err)
	}

	chunks := chunker.Chunk(table, s.opts.Chunking)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNoChunks)
	}

	meta := vectordb.CollectionMetadata{
		SessionID:   sessionID,
		Filename:    filename,
		RowCount:    table.NumRows(),
		ColumnCount: table.NumCols(),
	}
	if err := s.store.CreateCollection(ctx, name, meta); err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	records, err := s.embedChunks(ctx, chunks)
	if err != nil {
		s.cleanup(name)
		return nil, err
	}

	if err := s.store.Insert(ctx, name, records); err != nil {
		s.cleanup(name)
		return nil, fmt.Errorf("index chunks: %w", err)
	}
	if err := ctx.Err(); err != nil {
		s.cleanup(name)
		return nil, err
	}

	log.Printf("created collection for session %s with %d chunks", sessionID, len(records))

	info, ok := s.store.GetCollectionInfo(name)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	return &info, nil
}

// embedChunks embeds all chunk contents in one batch. If the batch call
// fails, it retries chunk by chunk, logging and skipping individual failures.
func (s *Service) embedChunks(ctx context.Context, chunks []chunker.DataChunk) ([]vectordb.Record, error) {
	contents := make([]string, len(chunks))
	for i, c := range chunks {
		contents[i] = c.Content
	}

	vectors, err := s.embedder.Embed(ctx, contents)
	if err == nil && len(vectors) == len(chunks) {
		records := make([]vectordb.Record, len(chunks))
		for i, c := range chunks {
			records[i] = toRecord(c, vectors[i])
		}
		return records, nil
	}
	if err != nil {
		log.Printf("batch embedding failed, retrying per chunk: %v", err)
	}

	var records []vectordb.Record
	for _, c := range chunks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vecs, err := s.embedder.Embed(ctx, []string{c.Content})
		if err != nil || len(vecs) != 1 {
			log.Printf("skipping chunk %s (%s): embed: %v", c.ID, c.Type, err)
			continue
		}
		records = append(records, toRecord(c, vecs[0]))
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no chunk could be embedded", ErrEmbedding)
	}
	return records, nil
}

func toRecord(c chunker.DataChunk, embedding []float32) vectordb.Record {
	return vectordb.Record{
		ID:        c.ID,
		Embedding: embedding,
		Content:   c.Content,
		Metadata: map[string]string{
			"chunk_type":          string(c.Type),
			"variables":           mustJSON(c.Variables),
			"data_types":          mustJSON(c.DataTypes),
			"statistical_context": mustJSON(c.StatisticalContext),
			"metadata":            mustJSON(c.Metadata),
		},
	}
}

// mustJSON serializes chunk provenance for flat string metadata. The chunker
// only produces JSON-encodable values, so a failure is a programming error;
// it degrades to an empty object rather than dropping the record.
func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("marshal chunk metadata: %v", err)
		return "{}"
	}
	return string(b)
}

// Query classifies the text, augments it with statistical context, and
// returns the re-ranked chunk contents plus the detected intent. An
// embedding failure is fatal for the call.
func (s *Service) Query(ctx context.Context, sessionID, query string, topK int) ([]string, intent.QueryIntent, error) {
	qi := intent.Classify(query)

	name := collectionName(sessionID)
	if _, ok := s.store.GetCollectionInfo(name); !ok {
		return nil, qi, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}

	enhanced := augmentQuery(query, qi)
	vectors, err := s.embedder.Embed(ctx, []string{enhanced})
	if err != nil {
		return nil, qi, fmt.Errorf("%w: query: %v", ErrEmbedding, err)
	}
	if len(vectors) != 1 {
		return nil, qi, fmt.Errorf("%w: expected 1 query vector, got %d", ErrEmbedding, len(vectors))
	}

	if topK <= 0 {
		topK = s.opts.DefaultTopK
	}

	candidates, err := s.store.QueryEmbedding(ctx, name, vectors[0], topK, nil)
	if err != nil {
		return nil, qi, fmt.Errorf("search session %s: %w", sessionID, err)
	}

	ranked := rerank(candidates, qi)
	contents := make([]string, len(ranked))
	for i, c := range ranked {
		contents[i] = c.Content
	}

	log.Printf("query processed for session %s: %s with %d results", sessionID, qi.Type, len(contents))
	return contents, qi, nil
}

// Delete removes the session's collection, reporting whether it existed.
// Deleting an absent session is not an error.
func (s *Service) Delete(ctx context.Context, sessionID string) bool {
	existed, err := s.store.DeleteCollection(ctx, collectionName(sessionID))
	if err != nil {
		log.Printf("delete collection for session %s: %v", sessionID, err)
		return false
	}
	if existed {
		log.Printf("deleted collection for session %s", sessionID)
	}
	return existed
}

// Info returns the session collection's metadata and chunk count; ok is
// false when the session has no collection.
func (s *Service) Info(ctx context.Context, sessionID string) (*vectordb.CollectionInfo, bool) {
	info, ok := s.store.GetCollectionInfo(collectionName(sessionID))
	if !ok {
		return nil, false
	}
	return &info, true
}

func (s *Service) cleanup(name string) {
	if _, err := s.store.DeleteCollection(context.Background(), name); err != nil {
		log.Printf("cleanup collection %s: %v", name, err)
	}
}
