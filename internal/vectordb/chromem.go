package vectordb

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	chromem "github.com/philippgille/chromem-go"

	"github.com/ziadkadry99/datachat/internal/embeddings"
)

// ChromemStore implements Store using chromem-go, one chromem collection per
// session. chromem does not expose collection metadata after creation, so the
// store keeps its own registry guarded by mu.
type ChromemStore struct {
	db        *chromem.DB
	embedFunc chromem.EmbeddingFunc

	mu   sync.RWMutex
	meta map[string]CollectionMetadata
}

// NewChromemStore creates an in-memory store. The embedder is used only as a
// fallback embedding function; records normally arrive with vectors already
// computed.
func NewChromemStore(embedder embeddings.Embedder) *ChromemStore {
	return &ChromemStore{
		db:        chromem.NewDB(),
		embedFunc: embeddings.ToChromemFunc(embedder),
		meta:      make(map[string]CollectionMetadata),
	}
}

// NewPersistentChromemStore creates a store backed by on-disk collections
// under dir.
func NewPersistentChromemStore(dir string, embedder embeddings.Embedder) (*ChromemStore, error) {
	db, err := chromem.NewPersistentDB(dir, false)
	if err != nil {
		return nil, fmt.Errorf("open persistent vector db: %w", err)
	}
	return &ChromemStore{
		db:        db,
		embedFunc: embeddings.ToChromemFunc(embedder),
		meta:      make(map[string]CollectionMetadata),
	}, nil
}

func (s *ChromemStore) CreateCollection(ctx context.Context, name string, meta CollectionMetadata) error {
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}

	// Replace semantics: a stale collection for the same session is dropped
	// before the new one is created.
	if s.db.GetCollection(name, s.embedFunc) != nil {
		if err := s.db.DeleteCollection(name); err != nil {
			return fmt.Errorf("replace collection %q: %w", name, err)
		}
	}

	_, err := s.db.CreateCollection(name, metadataToMap(meta), s.embedFunc)
	if err != nil {
		return fmt.Errorf("create collection %q: %w", name, err)
	}

	s.mu.Lock()
	s.meta[name] = meta
	s.mu.Unlock()
	return nil
}

func (s *ChromemStore) DeleteCollection(ctx context.Context, name string) (bool, error) {
	existed := s.db.GetCollection(name, s.embedFunc) != nil
	if existed {
		if err := s.db.DeleteCollection(name); err != nil {
			return false, fmt.Errorf("delete collection %q: %w", name, err)
		}
	}

	s.mu.Lock()
	delete(s.meta, name)
	s.mu.Unlock()
	return existed, nil
}

func (s *ChromemStore) Insert(ctx context.Context, name string, records []Record) error {
	col := s.db.GetCollection(name, s.embedFunc)
	if col == nil {
		return fmt.Errorf("insert into %q: %w", name, ErrCollectionNotFound)
	}
	if len(records) == 0 {
		return nil
	}

	docs := make([]chromem.Document, len(records))
	for i, rec := range records {
		docs[i] = chromem.Document{
			ID:        rec.ID,
			Embedding: rec.Embedding,
			Content:   rec.Content,
			Metadata:  rec.Metadata,
		}
	}

	if err := col.AddDocuments(ctx, docs, 1); err != nil {
		return fmt.Errorf("insert into %q: %w", name, err)
	}
	return nil
}

func (s *ChromemStore) QueryEmbedding(ctx context.Context, name string, query []float32, topK int, filter map[string]string) ([]Candidate, error) {
	col := s.db.GetCollection(name, s.embedFunc)
	if col == nil {
		return nil, fmt.Errorf("query %q: %w", name, ErrCollectionNotFound)
	}

	if topK <= 0 {
		topK = 10
	}

	// chromem-go requires nResults <= collection size.
	count := col.Count()
	if count == 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	results, err := col.QueryEmbedding(ctx, query, topK, filter, nil)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", name, err)
	}

	candidates := make([]Candidate, len(results))
	for i, r := range results {
		candidates[i] = Candidate{
			ID:         r.ID,
			Content:    r.Content,
			Metadata:   r.Metadata,
			Similarity: r.Similarity,
		}
	}
	return candidates, nil
}

func (s *ChromemStore) GetCollectionInfo(name string) (CollectionInfo, bool) {
	col := s.db.GetCollection(name, s.embedFunc)
	if col == nil {
		return CollectionInfo{}, false
	}

	s.mu.RLock()
	meta := s.meta[name]
	s.mu.RUnlock()

	return CollectionInfo{
		Name:     name,
		Metadata: meta,
		Count:    col.Count(),
	}, true
}

func (s *ChromemStore) Count(name string) (int, error) {
	col := s.db.GetCollection(name, s.embedFunc)
	if col == nil {
		return 0, fmt.Errorf("count %q: %w", name, ErrCollectionNotFound)
	}
	return col.Count(), nil
}

func metadataToMap(meta CollectionMetadata) map[string]string {
	return map[string]string{
		"session_id":   meta.SessionID,
		"filename":     meta.Filename,
		"created_at":   meta.CreatedAt.Format(time.RFC3339),
		"row_count":    strconv.Itoa(meta.RowCount),
		"column_count": strconv.Itoa(meta.ColumnCount),
	}
}
