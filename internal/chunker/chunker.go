// Package chunker turns a tabular dataset into a set of heterogeneous,
// purpose-built text chunks: consecutive row groups, column groups, one
// comprehensive statistical summary, and one correlation analysis. All four
// strategies run over the same dataset and their outputs are concatenated.
package chunker

import (
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/ziadkadry99/datachat/internal/dataset"
	"github.com/ziadkadry99/datachat/internal/values"
)

// strongCorrelationThreshold marks variable pairs worth calling out
// explicitly in the correlation chunk.
const strongCorrelationThreshold = 0.5

// medicalVariables is the domain vocabulary used to group columns into the
// domain-recognized bucket. A column qualifies when its lowercased name
// contains any of these tokens.
var medicalVariables = []string{
	"age", "gender", "sex", "height", "weight", "bmi", "blood_pressure",
	"heart_rate", "temperature", "cholesterol", "glucose", "medication",
	"treatment", "diagnosis", "outcome", "survival", "mortality",
}

// Chunk materializes every chunk for one dataset. Strategies are isolated:
// a failing strategy is logged and skipped while the others still contribute.
// The returned slice is complete before return; ingestion embeds it in bulk.
func Chunk(table *dataset.Table, opts Options) []DataChunk {
	size := opts.RowChunkSize
	if size <= 0 {
		size = DefaultRowChunkSize
	}

	var chunks []DataChunk
	chunks = append(chunks, runStrategy("row_group", func() []DataChunk {
		return rowChunks(table, size)
	})...)
	chunks = append(chunks, runStrategy("column_group", func() []DataChunk {
		return columnChunks(table)
	})...)
	chunks = append(chunks, runStrategy("statistical_summary", func() []DataChunk {
		return summaryChunks(table)
	})...)
	chunks = append(chunks, runStrategy("correlation_matrix", func() []DataChunk {
		return correlationChunks(table)
	})...)
	return chunks
}

// runStrategy isolates one strategy so a malformed column cannot abort the
// remaining strategies.
func runStrategy(name string, fn func() []DataChunk) (chunks []DataChunk) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("chunker: %s strategy failed, skipping: %v", name, r)
			chunks = nil
		}
	}()
	return fn()
}

// rowChunks partitions the rows into consecutive groups of size rows
// (the last group may be smaller), one chunk per group.
func rowChunks(table *dataset.Table, size int) []DataChunk {
	var chunks []DataChunk
	for start := 0; start < table.NumRows(); start += size {
		end := start + size
		if end > table.NumRows() {
			end = table.NumRows()
		}
		group := table.Slice(start, end)

		chunks = append(chunks, DataChunk{
			ID:                 uuid.NewString(),
			Content:            rowChunkContent(group, start),
			Type:               ChunkRowGroup,
			Variables:          append([]string(nil), table.Columns...),
			DataTypes:          table.TypeLabels(),
			StatisticalContext: rowChunkStats(group),
			Metadata: map[string]values.Value{
				"start_row":   values.Int(start),
				"end_row":     values.Int(end),
				"row_count":   values.Int(group.NumRows()),
				"chunk_index": values.Int(start / size),
			},
		})
	}
	return chunks
}

// columnChunks groups columns into up to three buckets: all numeric, all
// categorical, and domain-recognized. Empty buckets are skipped.
func columnChunks(table *dataset.Table) []DataChunk {
	buckets := []struct {
		name    string
		columns []string
	}{
		{"numeric", table.NumericColumns()},
		{"categorical", table.CategoricalColumns()},
		{"medical", medicalColumns(table)},
	}

	var chunks []DataChunk
	for _, b := range buckets {
		if len(b.columns) == 0 {
			continue
		}
		chunks = append(chunks, DataChunk{
			ID:                 uuid.NewString(),
			Content:            columnChunkContent(table, b.columns, b.name),
			Type:               ChunkColumnGroup,
			Variables:          b.columns,
			DataTypes:          typeLabelsFor(table, b.columns),
			StatisticalContext: columnGroupStats(table, b.columns),
			Metadata: map[string]values.Value{
				"group_type":      values.String(b.name),
				"columns":         values.Strings(b.columns),
				"column_count":    values.Int(len(b.columns)),
				"medical_context": values.Bool(b.name == "medical"),
			},
		})
	}
	return chunks
}

// summaryChunks produces exactly one comprehensive statistical summary chunk,
// even for an empty or degenerate dataset.
func summaryChunks(table *dataset.Table) []DataChunk {
	return []DataChunk{{
		ID:                 uuid.NewString(),
		Content:            summaryContent(table),
		Type:               ChunkStatisticalSummary,
		Variables:          append([]string(nil), table.Columns...),
		DataTypes:          table.TypeLabels(),
		StatisticalContext: comprehensiveStats(table),
		Metadata: map[string]values.Value{
			"summary_type":           values.String("comprehensive"),
			"includes_all_variables": values.Bool(true),
		},
	}}
}

// correlationChunks produces one correlation chunk when the dataset has more
// than one numeric column, and nothing otherwise.
func correlationChunks(table *dataset.Table) []DataChunk {
	numeric := table.NumericColumns()
	if len(numeric) < 2 {
		return nil
	}

	cols, matrix := table.CorrelationMatrix()
	return []DataChunk{{
		ID:                 uuid.NewString(),
		Content:            correlationContent(cols, matrix),
		Type:               ChunkCorrelationMatrix,
		Variables:          cols,
		DataTypes:          typeLabelsFor(table, cols),
		StatisticalContext: correlationStats(cols, matrix),
		Metadata: map[string]values.Value{
			"analysis_type":  values.String("correlation"),
			"variable_count": values.Int(len(cols)),
		},
	}}
}

// medicalColumns returns the columns whose names contain a domain token.
func medicalColumns(table *dataset.Table) []string {
	var cols []string
	for _, col := range table.Columns {
		if isMedicalColumn(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

func isMedicalColumn(name string) bool {
	lower := strings.ToLower(name)
	for _, token := range medicalVariables {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func typeLabelsFor(table *dataset.Table, columns []string) map[string]string {
	labels := make(map[string]string, len(columns))
	for _, col := range columns {
		labels[col] = string(table.Type(col))
	}
	return labels
}

// rowChunkStats captures the statistical context of one row group.
func rowChunkStats(group *dataset.Table) map[string]values.Value {
	numeric := group.NumericColumns()
	stats := map[string]values.Value{
		"row_count":           values.Int(group.NumRows()),
		"column_count":        values.Int(group.NumCols()),
		"missing_values":      values.Int(group.TotalMissing()),
		"numeric_columns":     values.Int(len(numeric)),
		"categorical_columns": values.Int(len(group.CategoricalColumns())),
	}

	if len(numeric) > 0 {
		means := make(map[string]values.Value, len(numeric))
		stds := make(map[string]values.Value, len(numeric))
		mins := make(map[string]values.Value, len(numeric))
		maxs := make(map[string]values.Value, len(numeric))
		for _, col := range numeric {
			vals := group.Float64s(col)
			means[col] = values.Number(dataset.Mean(vals))
			stds[col] = values.Number(dataset.StdDev(vals))
			mins[col] = values.Number(dataset.Percentile(vals, 0))
			maxs[col] = values.Number(dataset.Percentile(vals, 100))
		}
		stats["numeric_stats"] = values.Map(map[string]values.Value{
			"means": values.Map(means),
			"stds":  values.Map(stds),
			"mins":  values.Map(mins),
			"maxs":  values.Map(maxs),
		})
	}
	return stats
}

// columnGroupStats captures the statistical context of one column bucket.
func columnGroupStats(table *dataset.Table, columns []string) map[string]values.Value {
	missing := 0
	for _, col := range columns {
		missing += table.MissingCount(col)
	}
	stats := map[string]values.Value{
		"column_count":   values.Int(len(columns)),
		"total_values":   values.Int(len(columns) * table.NumRows()),
		"missing_values": values.Int(missing),
	}

	var numeric []string
	for _, col := range columns {
		if table.Type(col) == dataset.TypeNumeric {
			numeric = append(numeric, col)
		}
	}

	if len(numeric) == 0 {
		categorical := make(map[string]values.Value)
		for _, col := range columns {
			entry := map[string]values.Value{
				"unique_count": values.Int(table.UniqueCount(col)),
			}
			if mode, ok := table.Mode(col); ok {
				entry["most_frequent"] = values.String(mode)
			}
			categorical[col] = values.Map(entry)
		}
		stats["categorical_stats"] = values.Map(categorical)
		return stats
	}

	means := make(map[string]values.Value, len(numeric))
	stds := make(map[string]values.Value, len(numeric))
	for _, col := range numeric {
		vals := table.Float64s(col)
		means[col] = values.Number(dataset.Mean(vals))
		stds[col] = values.Number(dataset.StdDev(vals))
	}
	numericStats := map[string]values.Value{
		"means": values.Map(means),
		"stds":  values.Map(stds),
	}
	if len(numeric) > 1 {
		numericStats["correlations"] = correlationMap(table, numeric)
	}
	stats["numeric_stats"] = values.Map(numericStats)
	return stats
}

// comprehensiveStats captures the statistical context of the summary chunk.
func comprehensiveStats(table *dataset.Table) map[string]values.Value {
	missing := make(map[string]values.Value, table.NumCols())
	types := make(map[string]values.Value, table.NumCols())
	for _, col := range table.Columns {
		missing[col] = values.Int(table.MissingCount(col))
		types[col] = values.String(string(table.Type(col)))
	}

	stats := map[string]values.Value{
		"dataset_shape":  values.List(values.Int(table.NumRows()), values.Int(table.NumCols())),
		"data_types":     values.Map(types),
		"missing_values": values.Map(missing),
	}

	numeric := table.NumericColumns()
	if len(numeric) > 0 {
		descriptive := make(map[string]values.Value, len(numeric))
		for _, col := range numeric {
			if d, ok := table.Describe(col); ok {
				descriptive[col] = values.Map(map[string]values.Value{
					"count": values.Int(d.Count),
					"mean":  values.Number(d.Mean),
					"std":   values.Number(d.Std),
					"min":   values.Number(d.Min),
					"25%":   values.Number(d.Q25),
					"50%":   values.Number(d.Q50),
					"75%":   values.Number(d.Q75),
					"max":   values.Number(d.Max),
				})
			}
		}
		stats["descriptive_stats"] = values.Map(descriptive)
		if len(numeric) > 1 {
			stats["correlation_matrix"] = correlationMap(table, numeric)
		}
	}

	categorical := table.CategoricalColumns()
	if len(categorical) > 0 {
		catStats := make(map[string]values.Value, len(categorical))
		for _, col := range categorical {
			counts := table.ValueCounts(col)
			countMap := make(map[string]values.Value, len(counts))
			for _, vc := range counts {
				countMap[vc.Value] = values.Int(vc.Count)
			}
			catStats[col] = values.Map(map[string]values.Value{
				"unique_count": values.Int(len(counts)),
				"value_counts": values.Map(countMap),
			})
		}
		stats["categorical_stats"] = values.Map(catStats)
	}

	return stats
}

// correlationStats captures the correlation chunk's structured context.
func correlationStats(cols []string, matrix [][]float64) map[string]values.Value {
	outer := make(map[string]values.Value, len(cols))
	for i, col := range cols {
		inner := make(map[string]values.Value, len(cols))
		for j, other := range cols {
			inner[other] = values.Number(matrix[i][j])
		}
		outer[col] = values.Map(inner)
	}
	return map[string]values.Value{
		"correlation_matrix": values.Map(outer),
	}
}

// correlationMap renders the pairwise matrix of the given numeric columns as
// a nested value map.
func correlationMap(table *dataset.Table, numeric []string) values.Value {
	outer := make(map[string]values.Value, len(numeric))
	for _, col := range numeric {
		inner := make(map[string]values.Value, len(numeric))
		for _, other := range numeric {
			if col == other {
				inner[other] = values.Number(1)
				continue
			}
			r, ok := table.Correlation(col, other)
			if !ok {
				r = 0
			}
			inner[other] = values.Number(r)
		}
		outer[col] = values.Map(inner)
	}
	return values.Map(outer)
}
