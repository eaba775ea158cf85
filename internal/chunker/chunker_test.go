package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ziadkadry99/datachat/internal/dataset"
)

// numericTable builds a rows x cols table of plain numeric columns named
// x1..xN with non-degenerate values.
func numericTable(rows, cols int) *dataset.Table {
	header := make([]string, cols)
	for c := 0; c < cols; c++ {
		header[c] = fmt.Sprintf("x%d", c+1)
	}
	data := make([][]string, rows)
	for r := 0; r < rows; r++ {
		row := make([]string, cols)
		for c := 0; c < cols; c++ {
			row[c] = fmt.Sprintf("%d", (r+1)*(c+2)%97)
		}
		data[r] = row
	}
	return dataset.New("numeric.csv", header, data)
}

func chunksOfType(chunks []DataChunk, ct ChunkType) []DataChunk {
	var out []DataChunk
	for _, c := range chunks {
		if c.Type == ct {
			out = append(out, c)
		}
	}
	return out
}

func TestChunk_RowChunkArithmetic(t *testing.T) {
	cases := []struct {
		rows, size, wantChunks, wantLast int
	}{
		{250, 100, 3, 50},
		{100, 100, 1, 100},
		{101, 100, 2, 1},
		{7, 3, 3, 1},
	}

	for _, tc := range cases {
		table := numericTable(tc.rows, 2)
		rowChunks := chunksOfType(Chunk(table, Options{RowChunkSize: tc.size}), ChunkRowGroup)

		if len(rowChunks) != tc.wantChunks {
			t.Errorf("rows=%d size=%d: got %d row chunks, want %d", tc.rows, tc.size, len(rowChunks), tc.wantChunks)
			continue
		}
		last := rowChunks[len(rowChunks)-1]
		if got := int(last.Metadata["row_count"].Num()); got != tc.wantLast {
			t.Errorf("rows=%d size=%d: last chunk rows got %d, want %d", tc.rows, tc.size, got, tc.wantLast)
		}
	}
}

func TestChunk_CorrelationChunkRules(t *testing.T) {
	single := dataset.New("one.csv", []string{"age", "city"}, [][]string{
		{"30", "Boston"}, {"41", "Denver"}, {"55", "Austin"},
	})
	if got := chunksOfType(Chunk(single, Options{}), ChunkCorrelationMatrix); len(got) != 0 {
		t.Errorf("one numeric column: got %d correlation chunks, want 0", len(got))
	}

	multi := numericTable(20, 3)
	if got := chunksOfType(Chunk(multi, Options{}), ChunkCorrelationMatrix); len(got) != 1 {
		t.Errorf("three numeric columns: got %d correlation chunks, want 1", len(got))
	}
}

func TestChunk_EndToEndCensus(t *testing.T) {
	// 250 rows, 5 numeric non-domain columns, chunk size 100:
	// 3 row chunks + 1 numeric column chunk + 1 summary + 1 correlation = 6.
	table := numericTable(250, 5)
	chunks := Chunk(table, Options{RowChunkSize: 100})

	if len(chunks) != 6 {
		t.Fatalf("total chunks: got %d, want 6", len(chunks))
	}
	if got := len(chunksOfType(chunks, ChunkRowGroup)); got != 3 {
		t.Errorf("row chunks: got %d, want 3", got)
	}
	if got := len(chunksOfType(chunks, ChunkColumnGroup)); got != 1 {
		t.Errorf("column chunks: got %d, want 1 (numeric bucket only)", got)
	}
	if got := len(chunksOfType(chunks, ChunkStatisticalSummary)); got != 1 {
		t.Errorf("summary chunks: got %d, want 1", got)
	}
	if got := len(chunksOfType(chunks, ChunkCorrelationMatrix)); got != 1 {
		t.Errorf("correlation chunks: got %d, want 1", got)
	}
}

func TestChunk_ColumnBuckets(t *testing.T) {
	table := dataset.New("mixed.csv", []string{"age", "score", "city"}, [][]string{
		{"30", "7.5", "Boston"},
		{"41", "8.1", "Denver"},
		{"55", "6.9", "Boston"},
	})
	colChunks := chunksOfType(Chunk(table, Options{}), ChunkColumnGroup)

	// numeric, categorical, and medical ("age") buckets.
	if len(colChunks) != 3 {
		t.Fatalf("column chunks: got %d, want 3", len(colChunks))
	}

	byGroup := make(map[string]DataChunk)
	for _, c := range colChunks {
		byGroup[c.Metadata["group_type"].Str()] = c
	}

	medical, ok := byGroup["medical"]
	if !ok {
		t.Fatal("missing medical bucket")
	}
	if len(medical.Variables) != 1 || medical.Variables[0] != "age" {
		t.Errorf("medical variables: got %v, want [age]", medical.Variables)
	}
	if !medical.Metadata["medical_context"].BoolVal() {
		t.Error("medical bucket must set medical_context")
	}

	numeric, ok := byGroup["numeric"]
	if !ok {
		t.Fatal("missing numeric bucket")
	}
	if len(numeric.Variables) != 2 {
		t.Errorf("numeric variables: got %v, want [age score]", numeric.Variables)
	}

	// Metadata mirrors the bucket's column list as a value list.
	cols := numeric.Metadata["columns"].ListVal()
	if len(cols) != 2 || cols[0].Str() != "age" || cols[1].Str() != "score" {
		t.Errorf("columns metadata: got %v", cols)
	}
}

func TestChunk_EmptyDatasetStillSummarized(t *testing.T) {
	table := dataset.New("empty.csv", []string{"a", "b"}, nil)
	chunks := Chunk(table, Options{})

	summaries := chunksOfType(chunks, ChunkStatisticalSummary)
	if len(summaries) != 1 {
		t.Fatalf("summary chunks: got %d, want 1", len(summaries))
	}
	if summaries[0].Content == "" {
		t.Error("summary content must be non-empty")
	}
	if got := chunksOfType(chunks, ChunkCorrelationMatrix); len(got) != 0 {
		t.Errorf("empty dataset: got %d correlation chunks, want 0", len(got))
	}
	if got := chunksOfType(chunks, ChunkRowGroup); len(got) != 0 {
		t.Errorf("empty dataset: got %d row chunks, want 0", len(got))
	}
}

func TestChunk_Invariants(t *testing.T) {
	table := dataset.New("mixed.csv", []string{"age", "gender", "bmi"}, [][]string{
		{"30", "male", "22.1"},
		{"41", "female", "27.9"},
		{"55", "female", "31.0"},
		{"29", "male", "24.4"},
	})
	chunks := Chunk(table, Options{RowChunkSize: 2})

	columnSet := map[string]bool{"age": true, "gender": true, "bmi": true}
	seenIDs := make(map[string]bool)

	for _, c := range chunks {
		if c.Content == "" {
			t.Errorf("chunk %s has empty content", c.ID)
		}
		if c.ID == "" {
			t.Error("chunk has empty id")
		}
		if seenIDs[c.ID] {
			t.Errorf("duplicate chunk id %s", c.ID)
		}
		seenIDs[c.ID] = true
		for _, v := range c.Variables {
			if !columnSet[v] {
				t.Errorf("chunk %s references unknown variable %q", c.Type, v)
			}
		}
	}
}

func TestChunk_StrongCorrelationCallout(t *testing.T) {
	// Perfectly correlated pair must appear in the strong-correlation list.
	table := dataset.New("corr.csv", []string{"age", "cholesterol"}, [][]string{
		{"30", "160"}, {"40", "180"}, {"50", "200"}, {"60", "220"},
	})
	corr := chunksOfType(Chunk(table, Options{}), ChunkCorrelationMatrix)
	if len(corr) != 1 {
		t.Fatalf("correlation chunks: got %d, want 1", len(corr))
	}
	if !strings.Contains(corr[0].Content, "Strong correlations") {
		t.Errorf("content missing strong-correlation section:\n%s", corr[0].Content)
	}
	if !strings.Contains(corr[0].Content, "age and cholesterol") {
		t.Errorf("content missing pair callout:\n%s", corr[0].Content)
	}
}

func TestChunk_RowChunkMetadataRanges(t *testing.T) {
	table := numericTable(5, 1)

	// Single numeric column: row chunks + column chunk + summary, no correlation.
	chunks := Chunk(table, Options{RowChunkSize: 2})
	rowChunks := chunksOfType(chunks, ChunkRowGroup)
	if len(rowChunks) != 3 {
		t.Fatalf("row chunks: got %d, want 3", len(rowChunks))
	}

	wantRanges := [][2]int{{0, 2}, {2, 4}, {4, 5}}
	for i, rc := range rowChunks {
		start := int(rc.Metadata["start_row"].Num())
		end := int(rc.Metadata["end_row"].Num())
		if start != wantRanges[i][0] || end != wantRanges[i][1] {
			t.Errorf("chunk %d range: got [%d,%d), want [%d,%d)", i, start, end, wantRanges[i][0], wantRanges[i][1])
		}
		if idx := int(rc.Metadata["chunk_index"].Num()); idx != i {
			t.Errorf("chunk %d index: got %d", i, idx)
		}
	}
}
