package chunker

import (
	"fmt"
	"math"
	"strings"

	"github.com/ziadkadry99/datachat/internal/dataset"
)

// sampleRowLimit is the number of literal rows quoted in a row chunk.
const sampleRowLimit = 3

// topCategoryLimit caps the categorical values listed per column.
const topCategoryLimit = 5

// rowChunkContent renders one row group as embeddable text: the row range,
// per-numeric mean/std, the top categorical values, and a literal sample.
func rowChunkContent(group *dataset.Table, startRow int) string {
	var sb strings.Builder
	endRow := startRow + group.NumRows() - 1
	if group.NumRows() == 0 {
		endRow = startRow
	}
	fmt.Fprintf(&sb, "Data subset from rows %d to %d:\n\n", startRow, endRow)

	sb.WriteString("Sample statistics:\n")
	for _, col := range group.NumericColumns() {
		vals := group.Float64s(col)
		fmt.Fprintf(&sb, "- %s: mean=%.2f, std=%.2f\n", col, dataset.Mean(vals), dataset.StdDev(vals))
	}
	for _, col := range group.CategoricalColumns() {
		counts := group.ValueCounts(col)
		if len(counts) > 3 {
			counts = counts[:3]
		}
		parts := make([]string, len(counts))
		for i, vc := range counts {
			parts[i] = fmt.Sprintf("%s (%d)", vc.Value, vc.Count)
		}
		fmt.Fprintf(&sb, "- %s: %s\n", col, strings.Join(parts, ", "))
	}

	sb.WriteString("\nSample data:\n")
	sb.WriteString(strings.Join(group.Columns, ", "))
	sb.WriteString("\n")
	limit := group.NumRows()
	if limit > sampleRowLimit {
		limit = sampleRowLimit
	}
	for _, row := range group.Rows[:limit] {
		sb.WriteString(strings.Join(row, ", "))
		sb.WriteString("\n")
	}

	return sb.String()
}

// columnChunkContent renders one column bucket: per-column type, range or
// top categories, and missing-value counts.
func columnChunkContent(table *dataset.Table, columns []string, groupName string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s variables analysis:\n\n", title(groupName))

	for _, col := range columns {
		fmt.Fprintf(&sb, "Variable: %s\n", col)
		fmt.Fprintf(&sb, "Type: %s\n", table.Type(col))

		if table.Type(col) == dataset.TypeNumeric {
			vals := table.Float64s(col)
			if len(vals) > 0 {
				fmt.Fprintf(&sb, "Range: %.2f to %.2f\n", dataset.Percentile(vals, 0), dataset.Percentile(vals, 100))
				fmt.Fprintf(&sb, "Mean: %.2f, Std: %.2f\n", dataset.Mean(vals), dataset.StdDev(vals))
			}
		} else {
			counts := table.ValueCounts(col)
			if len(counts) > 0 {
				top := counts
				if len(top) > topCategoryLimit {
					top = top[:topCategoryLimit]
				}
				names := make([]string, len(top))
				for i, vc := range top {
					names[i] = vc.Value
				}
				fmt.Fprintf(&sb, "Categories: %s\n", strings.Join(names, ", "))
				fmt.Fprintf(&sb, "Most frequent: %s (%d occurrences)\n", counts[0].Value, counts[0].Count)
			}
		}

		fmt.Fprintf(&sb, "Missing values: %d\n\n", table.MissingCount(col))
	}

	return sb.String()
}

// summaryContent renders the comprehensive dataset summary: shape, type
// census, missing totals, full numeric descriptives, and categorical
// unique-value counts.
func summaryContent(table *dataset.Table) string {
	var sb strings.Builder
	sb.WriteString("Comprehensive Dataset Statistical Summary:\n\n")

	numeric := table.NumericColumns()
	categorical := table.CategoricalColumns()

	fmt.Fprintf(&sb, "Dataset shape: %d rows, %d columns\n", table.NumRows(), table.NumCols())
	fmt.Fprintf(&sb, "Data types: %d numeric, %d categorical\n", len(numeric), len(categorical))
	fmt.Fprintf(&sb, "Missing values: %d total\n\n", table.TotalMissing())

	if len(numeric) > 0 {
		sb.WriteString("Numeric Variables Summary:\n")
		for _, col := range numeric {
			d, ok := table.Describe(col)
			if !ok {
				continue
			}
			fmt.Fprintf(&sb, "- %s: count=%d, mean=%.2f, std=%.2f, min=%.2f, 25%%=%.2f, 50%%=%.2f, 75%%=%.2f, max=%.2f\n",
				col, d.Count, d.Mean, d.Std, d.Min, d.Q25, d.Q50, d.Q75, d.Max)
		}
		sb.WriteString("\n")
	}

	if len(categorical) > 0 {
		sb.WriteString("Categorical Variables Summary:\n")
		for _, col := range categorical {
			fmt.Fprintf(&sb, "- %s: %d unique values\n", col, table.UniqueCount(col))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// correlationContent renders the strong-pair callouts followed by the full
// pairwise matrix.
func correlationContent(cols []string, matrix [][]float64) string {
	var sb strings.Builder
	sb.WriteString("Correlation Analysis:\n\n")

	type pair struct {
		a, b string
		r    float64
	}
	var strong []pair
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			if math.Abs(matrix[i][j]) > strongCorrelationThreshold {
				strong = append(strong, pair{cols[i], cols[j], matrix[i][j]})
			}
		}
	}

	if len(strong) > 0 {
		fmt.Fprintf(&sb, "Strong correlations (|r| > %.1f):\n", strongCorrelationThreshold)
		for _, p := range strong {
			fmt.Fprintf(&sb, "- %s and %s: %.3f\n", p.a, p.b, p.r)
		}
	} else {
		fmt.Fprintf(&sb, "No strong correlations found (|r| > %.1f)\n", strongCorrelationThreshold)
	}

	sb.WriteString("\nCorrelation matrix:\n")
	for i, col := range cols {
		entries := make([]string, len(cols))
		for j, other := range cols {
			entries[j] = fmt.Sprintf("%s=%.3f", other, matrix[i][j])
		}
		fmt.Fprintf(&sb, "%s: %s\n", col, strings.Join(entries, ", "))
	}

	return sb.String()
}

// title upper-cases the first letter of a bucket name.
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
