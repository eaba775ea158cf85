// Package intent classifies natural-language data-analysis queries into a
// structured QueryIntent using a fixed regular-expression pattern library.
package intent

import (
	"strconv"
	"strings"

	"github.com/ziadkadry99/datachat/internal/values"
)

// fallbackConfidence is reported when no category pattern matches: a fixed
// constant signaling an uninformed default, not a probability.
const fallbackConfidence = 0.5

// Classify derives the intent of a query. It is a pure function of the query
// text and the static pattern library, and it never fails: a query matching
// nothing yields the descriptive fallback with confidence 0.5.
func Classify(query string) QueryIntent {
	lower := strings.ToLower(query)

	primary, confidence := scoreCategories(lower)

	return QueryIntent{
		Type:              primary,
		Variables:         extractVariables(lower),
		Operations:        extractOperations(lower),
		Filters:           extractFilters(lower),
		Confidence:        confidence,
		StatisticalTests:  extractTests(lower),
		VisualizationType: extractVisualization(lower),
	}
}

// scoreCategories counts pattern matches per category and picks the highest
// scorer. Ties break toward the earlier entry in categoryPatterns, which is
// the fixed precedence contract. Confidence is the winner's share of all
// match counts.
func scoreCategories(lower string) (QueryType, float64) {
	best := -1
	total := 0
	winner := TypeDescriptive

	for _, group := range categoryPatterns {
		score := 0
		for _, p := range group.Patterns {
			if p.MatchString(lower) {
				score++
			}
		}
		total += score
		if score > 0 && score > best {
			best = score
			winner = group.Type
		}
	}

	if total == 0 {
		return TypeDescriptive, fallbackConfidence
	}
	return winner, float64(best) / float64(total)
}

// extractVariables collects every distinct dataset-variable token, in first
// encounter order.
func extractVariables(lower string) []string {
	var vars []string
	seen := make(map[string]bool)
	for _, p := range variablePatterns {
		for _, match := range p.FindAllString(lower, -1) {
			if !seen[match] {
				seen[match] = true
				vars = append(vars, match)
			}
		}
	}
	return vars
}

func extractOperations(lower string) []string {
	var ops []string
	for _, np := range operationPatterns {
		if np.Pattern.MatchString(lower) {
			ops = append(ops, np.Name)
		}
	}
	return ops
}

func extractTests(lower string) []string {
	var tests []string
	for _, np := range statisticalTestPatterns {
		if np.Pattern.MatchString(lower) {
			tests = append(tests, np.Name)
		}
	}
	return tests
}

// extractVisualization returns the first chart family that matches, or "".
func extractVisualization(lower string) string {
	for _, np := range visualizationPatterns {
		if np.Pattern.MatchString(lower) {
			return np.Name
		}
	}
	return ""
}

// extractFilters attempts the three narrow extractions: an age threshold, a
// gender keyword, and a group label. Only successful extractions populate
// the map.
func extractFilters(lower string) map[string]values.Value {
	filters := make(map[string]values.Value)

	if m := ageFilterPattern.FindStringSubmatch(lower); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil {
			filters["age"] = values.Int(age)
		}
	}
	if m := genderFilterPattern.FindStringSubmatch(lower); m != nil {
		filters["gender"] = values.String(m[1])
	}
	if m := groupFilterPattern.FindStringSubmatch(lower); m != nil {
		filters["group"] = values.String(m[1])
	}

	return filters
}
