package retrieval

import (
	"strings"

	"github.com/ziadkadry99/datachat/internal/intent"
)

// queryTypeContext maps an intent to statistical vocabulary appended to the
// query before embedding, pulling semantically related chunks closer.
var queryTypeContext = map[intent.QueryType]string{
	intent.TypeDescriptive:   " statistical summary descriptive statistics mean median mode standard deviation",
	intent.TypeInferential:   " hypothesis testing statistical significance p-value confidence interval",
	intent.TypeCorrelation:   " correlation relationship association linear regression",
	intent.TypeVisualization: " plot graph chart visualization data display",
	intent.TypeComparison:    " comparison group difference statistical test",
	intent.TypePredictive:    " prediction modeling machine learning regression classification",
}

// augmentQuery expands the raw query with type-specific statistical context,
// the detected variables, and the detected test families.
func augmentQuery(query string, qi intent.QueryIntent) string {
	var sb strings.Builder
	sb.WriteString(query)

	if ctx, ok := queryTypeContext[qi.Type]; ok {
		sb.WriteString(ctx)
	}
	if len(qi.Variables) > 0 {
		sb.WriteString(" variables: ")
		sb.WriteString(strings.Join(qi.Variables, " "))
	}
	if len(qi.StatisticalTests) > 0 {
		sb.WriteString(" statistical tests: ")
		sb.WriteString(strings.Join(qi.StatisticalTests, " "))
	}
	return sb.String()
}
