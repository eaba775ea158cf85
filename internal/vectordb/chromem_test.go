package vectordb

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

// mockEmbedder returns deterministic embeddings based on text content.
// It produces a simple hash-based vector for reproducible tests.
type mockEmbedder struct {
	dims int
}

func newMockEmbedder(dims int) *mockEmbedder {
	return &mockEmbedder{dims: dims}
}

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	for i, text := range texts {
		results[i] = m.deterministicVector(text)
	}
	return results, nil
}

func (m *mockEmbedder) Dimensions() int { return m.dims }
func (m *mockEmbedder) Name() string    { return "mock" }

// deterministicVector produces a normalized vector from text. Similar texts
// produce similar vectors because shared characters contribute to the same
// positions.
func (m *mockEmbedder) deterministicVector(text string) []float32 {
	vec := make([]float32, m.dims)
	for i, ch := range text {
		idx := (int(ch) + i) % m.dims
		vec[idx] += 1.0
	}
	var norm float64
	for _, v := range vec {
		norm += float64(v * v)
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for i := range vec {
			vec[i] = float32(float64(vec[i]) / norm)
		}
	}
	return vec
}

func (m *mockEmbedder) embedOne(t *testing.T, text string) []float32 {
	t.Helper()
	vecs, err := m.Embed(context.Background(), []string{text})
	if err != nil {
		t.Fatalf("embed %q: %v", text, err)
	}
	return vecs[0]
}

func testRecords(t *testing.T, embedder *mockEmbedder) []Record {
	t.Helper()
	contents := map[string]string{
		"chunk-rows":    "Data subset from rows 0 to 99 with age and cholesterol values",
		"chunk-summary": "Comprehensive Dataset Statistical Summary of all variables",
		"chunk-corr":    "Correlation analysis between age and cholesterol",
	}
	records := make([]Record, 0, len(contents))
	for id, content := range contents {
		records = append(records, Record{
			ID:        id,
			Embedding: embedder.embedOne(t, content),
			Content:   content,
			Metadata:  map[string]string{"chunk_type": "row_group"},
		})
	}
	return records
}

func TestChromemStore_InsertAndQuery(t *testing.T) {
	ctx := context.Background()
	embedder := newMockEmbedder(64)
	store := NewChromemStore(embedder)

	meta := CollectionMetadata{
		SessionID:   "sess-1",
		Filename:    "heart.csv",
		RowCount:    100,
		ColumnCount: 5,
	}
	if err := store.CreateCollection(ctx, "sess-1", meta); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}

	if err := store.Insert(ctx, "sess-1", testRecords(t, embedder)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	query := embedder.embedOne(t, "Correlation analysis between age and cholesterol")
	results, err := store.QueryEmbedding(ctx, "sess-1", query, 2, nil)
	if err != nil {
		t.Fatalf("QueryEmbedding: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].ID != "chunk-corr" {
		t.Errorf("expected chunk-corr first, got %s", results[0].ID)
	}
	if results[0].Similarity < results[1].Similarity {
		t.Errorf("results not ordered by similarity: %v < %v", results[0].Similarity, results[1].Similarity)
	}
}

func TestChromemStore_QueryClampsTopK(t *testing.T) {
	ctx := context.Background()
	embedder := newMockEmbedder(32)
	store := NewChromemStore(embedder)

	if err := store.CreateCollection(ctx, "small", CollectionMetadata{SessionID: "small"}); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}
	if err := store.Insert(ctx, "small", testRecords(t, embedder)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	query := embedder.embedOne(t, "summary")
	results, err := store.QueryEmbedding(ctx, "small", query, 50, nil)
	if err != nil {
		t.Fatalf("QueryEmbedding with oversized topK: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected all 3 records, got %d", len(results))
	}
}

func TestChromemStore_QueryEmptyCollection(t *testing.T) {
	ctx := context.Background()
	embedder := newMockEmbedder(32)
	store := NewChromemStore(embedder)

	if err := store.CreateCollection(ctx, "empty", CollectionMetadata{SessionID: "empty"}); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}

	results, err := store.QueryEmbedding(ctx, "empty", embedder.embedOne(t, "anything"), 5, nil)
	if err != nil {
		t.Fatalf("QueryEmbedding on empty collection: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestChromemStore_MissingCollection(t *testing.T) {
	ctx := context.Background()
	embedder := newMockEmbedder(32)
	store := NewChromemStore(embedder)

	if err := store.Insert(ctx, "nope", testRecords(t, embedder)); !errors.Is(err, ErrCollectionNotFound) {
		t.Errorf("Insert: expected ErrCollectionNotFound, got %v", err)
	}
	if _, err := store.QueryEmbedding(ctx, "nope", embedder.embedOne(t, "q"), 3, nil); !errors.Is(err, ErrCollectionNotFound) {
		t.Errorf("QueryEmbedding: expected ErrCollectionNotFound, got %v", err)
	}
	if _, err := store.Count("nope"); !errors.Is(err, ErrCollectionNotFound) {
		t.Errorf("Count: expected ErrCollectionNotFound, got %v", err)
	}
	if _, ok := store.GetCollectionInfo("nope"); ok {
		t.Error("GetCollectionInfo: expected ok=false for missing collection")
	}
}

func TestChromemStore_DeleteCollection(t *testing.T) {
	ctx := context.Background()
	embedder := newMockEmbedder(32)
	store := NewChromemStore(embedder)

	if err := store.CreateCollection(ctx, "sess-2", CollectionMetadata{SessionID: "sess-2"}); err != nil {
		t.Fatalf("CreateCollection: %v", err)
	}

	existed, err := store.DeleteCollection(ctx, "sess-2")
	if err != nil {
		t.Fatalf("DeleteCollection: %v", err)
	}
	if !existed {
		t.Error("expected existed=true for present collection")
	}

	// Deleting again is idempotent.
	existed, err = store.DeleteCollection(ctx, "sess-2")
	if err != nil {
		t.Fatalf("second DeleteCollection: %v", err)
	}
	if existed {
		t.Error("expected existed=false after deletion")
	}
}

func TestChromemStore_CreateReplacesExisting(t *testing.T) {
	ctx := context.Background()
	embedder := newMockEmbedder(32)
	store := NewChromemStore(embedder)

	if err := store.CreateCollection(ctx, "sess-3", CollectionMetadata{SessionID: "sess-3", Filename: "old.csv"}); err != nil {
		t.Fatalf("first CreateCollection: %v", err)
	}
	if err := store.Insert(ctx, "sess-3", testRecords(t, embedder)); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if err := store.CreateCollection(ctx, "sess-3", CollectionMetadata{SessionID: "sess-3", Filename: "new.csv"}); err != nil {
		t.Fatalf("replacing CreateCollection: %v", err)
	}

	count, err := store.Count("sess-3")
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 0 {
		t.Errorf("expected replaced collection to be empty, got %d records", count)
	}

	info, ok := store.GetCollectionInfo("sess-3")
	if !ok {
		t.Fatal("GetCollectionInfo: missing replaced collection")
	}
	if info.Metadata.Filename != "new.csv" {
		t.Errorf("expected metadata from replacement, got filename %q", info.Metadata.Filename)
	}
	if info.Metadata.CreatedAt.IsZero() || info.Metadata.CreatedAt.After(time.Now().Add(time.Minute)) {
		t.Errorf("unexpected CreatedAt: %v", info.Metadata.CreatedAt)
	}
}
