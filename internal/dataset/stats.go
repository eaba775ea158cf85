package dataset

import (
	"math"
	"sort"
)

// DescribeStats holds the descriptive statistics of one numeric column,
// matching the usual count/mean/std/min/quartiles/max summary.
type DescribeStats struct {
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Q25   float64
	Q50   float64
	Q75   float64
	Max   float64
}

// ValueCount is one categorical value and its occurrence count.
type ValueCount struct {
	Value string
	Count int
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// StdDev returns the sample standard deviation (n-1 denominator),
// or 0 when fewer than two values are present.
func StdDev(vals []float64) float64 {
	if len(vals) < 2 {
		return 0
	}
	mean := Mean(vals)
	sum := 0.0
	for _, v := range vals {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(vals)-1))
}

// Percentile returns the p-th percentile (0-100) of vals using linear
// interpolation between closest ranks. vals need not be sorted.
func Percentile(vals []float64, p float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// Pearson returns the Pearson correlation coefficient of two equal-length
// samples, or 0 when it is undefined (fewer than two pairs or zero variance).
func Pearson(x, y []float64) float64 {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	if n < 2 {
		return 0
	}

	meanX := Mean(x[:n])
	meanY := Mean(y[:n])

	var cov, varX, varY float64
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

// Describe computes descriptive statistics for a numeric column.
// The second return is false when the column has no parseable values.
func (t *Table) Describe(column string) (DescribeStats, bool) {
	vals := t.Float64s(column)
	if len(vals) == 0 {
		return DescribeStats{}, false
	}
	sorted := make([]float64, len(vals))
	copy(sorted, vals)
	sort.Float64s(sorted)

	return DescribeStats{
		Count: len(vals),
		Mean:  Mean(vals),
		Std:   StdDev(vals),
		Min:   sorted[0],
		Q25:   Percentile(vals, 25),
		Q50:   Percentile(vals, 50),
		Q75:   Percentile(vals, 75),
		Max:   sorted[len(sorted)-1],
	}, true
}

// Correlation computes the Pearson correlation between two numeric columns
// over rows where both cells are present. The second return is false when
// either column is unknown or fewer than two complete pairs exist.
func (t *Table) Correlation(col1, col2 string) (float64, bool) {
	x, y := t.pairedFloats(col1, col2)
	if len(x) < 2 {
		return 0, false
	}
	return Pearson(x, y), true
}

// CorrelationMatrix computes the full pairwise Pearson matrix over the
// numeric columns, in column order. The diagonal is always 1.
func (t *Table) CorrelationMatrix() ([]string, [][]float64) {
	cols := t.NumericColumns()
	matrix := make([][]float64, len(cols))
	for i := range cols {
		matrix[i] = make([]float64, len(cols))
		matrix[i][i] = 1
	}
	for i := 0; i < len(cols); i++ {
		for j := i + 1; j < len(cols); j++ {
			r, ok := t.Correlation(cols[i], cols[j])
			if !ok {
				r = 0
			}
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}
	return cols, matrix
}

// ValueCounts returns the distinct values of a column with their counts,
// missing cells excluded, ordered by descending count then ascending value.
func (t *Table) ValueCounts(column string) []ValueCount {
	counts := make(map[string]int)
	for _, raw := range t.Values(column) {
		if isMissing(raw) {
			continue
		}
		counts[raw]++
	}

	out := make([]ValueCount, 0, len(counts))
	for v, c := range counts {
		out = append(out, ValueCount{Value: v, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// Mode returns the most frequent value of a column. The second return is
// false when the column has no non-missing values.
func (t *Table) Mode(column string) (string, bool) {
	counts := t.ValueCounts(column)
	if len(counts) == 0 {
		return "", false
	}
	return counts[0].Value, true
}

// UniqueCount returns the number of distinct non-missing values of a column.
func (t *Table) UniqueCount(column string) int {
	return len(t.ValueCounts(column))
}

// pairedFloats extracts aligned numeric pairs from two columns, keeping only
// rows where both cells parse.
func (t *Table) pairedFloats(col1, col2 string) ([]float64, []float64) {
	v1 := t.Values(col1)
	v2 := t.Values(col2)
	n := len(v1)
	if len(v2) < n {
		n = len(v2)
	}

	var x, y []float64
	for i := 0; i < n; i++ {
		f1, ok1 := parseCell(v1[i])
		f2, ok2 := parseCell(v2[i])
		if ok1 && ok2 {
			x = append(x, f1)
			y = append(y, f2)
		}
	}
	return x, y
}
