package intent

import "github.com/ziadkadry99/datachat/internal/values"

// QueryType is the primary category of a classified query.
type QueryType string

const (
	TypeDescriptive   QueryType = "descriptive"
	TypeInferential   QueryType = "inferential"
	TypeCorrelation   QueryType = "correlation"
	TypeVisualization QueryType = "visualization"
	TypeComparison    QueryType = "comparison"
	TypePredictive    QueryType = "predictive"
	TypeTemporal      QueryType = "temporal"
	TypeDistribution  QueryType = "distribution"
	TypeOutlier       QueryType = "outlier"
	TypeSummary       QueryType = "summary"
)

// QueryIntent is the structured meaning of one natural-language query.
// It is constructed fresh per Classify call and never mutated afterwards.
type QueryIntent struct {
	Type              QueryType               `json:"type"`
	Variables         []string                `json:"variables"`
	Operations        []string                `json:"operations"`
	Filters           map[string]values.Value `json:"filters"`
	Confidence        float64                 `json:"confidence"`
	StatisticalTests  []string                `json:"statistical_tests"`
	VisualizationType string                  `json:"visualization_type,omitempty"`
}
