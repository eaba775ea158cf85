package chunker

import "github.com/ziadkadry99/datachat/internal/values"

// ChunkType categorizes the strategy that produced a chunk.
type ChunkType string

const (
	ChunkRowGroup           ChunkType = "row_group"
	ChunkColumnGroup        ChunkType = "column_group"
	ChunkStatisticalSummary ChunkType = "statistical_summary"
	ChunkCorrelationMatrix  ChunkType = "correlation_matrix"
)

// DataChunk is one retrievable excerpt describing part of a dataset.
// Content is the text that gets embedded and matched; the remaining fields
// are structured provenance carried alongside it in the index.
type DataChunk struct {
	ID                 string                  `json:"id"`
	Content            string                  `json:"content"`
	Type               ChunkType               `json:"chunk_type"`
	Variables          []string                `json:"variables"`
	DataTypes          map[string]string       `json:"data_types"`
	StatisticalContext map[string]values.Value `json:"statistical_context"`
	Metadata           map[string]values.Value `json:"metadata"`
}

// Options configures chunk generation.
type Options struct {
	// RowChunkSize is the number of consecutive rows per row-group chunk.
	// Zero or negative selects DefaultRowChunkSize.
	RowChunkSize int
}

// DefaultRowChunkSize is the row-group partition size when unspecified.
const DefaultRowChunkSize = 100
