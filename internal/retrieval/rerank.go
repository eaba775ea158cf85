package retrieval

import (
	"encoding/json"
	"sort"

	"github.com/ziadkadry99/datachat/internal/chunker"
	"github.com/ziadkadry99/datachat/internal/intent"
	"github.com/ziadkadry99/datachat/internal/vectordb"
)

// Chunk-type affinity multipliers. A chunk whose type matches the query's
// intent gets its similarity boosted before the final sort; the values are
// relative weights between chunk families, not probabilities.
const (
	descriptiveSummaryBoost = 1.5
	descriptiveColumnBoost  = 1.2

	correlationMatrixBoost  = 1.8
	correlationSummaryBoost = 1.3

	visualizationColumnBoost = 1.4
	visualizationMatrixBoost = 1.3

	// variableOverlapBonus applies when a chunk covers at least one of the
	// variables named in the query.
	variableOverlapBonus = 1.3
)

type scoredCandidate struct {
	vectordb.Candidate
	score float64
}

// rerank orders candidates by intent-aware relevance: cosine similarity
// scaled by the chunk-type affinity for the query type and by the variable
// overlap bonus. The sort is stable, so equal scores keep the store's
// similarity order.
func rerank(candidates []vectordb.Candidate, qi intent.QueryIntent) []vectordb.Candidate {
	scored := make([]scoredCandidate, len(candidates))
	for i, c := range candidates {
		scored[i] = scoredCandidate{Candidate: c, score: relevanceScore(c, qi)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	out := make([]vectordb.Candidate, len(scored))
	for i, s := range scored {
		out[i] = s.Candidate
	}
	return out
}

func relevanceScore(c vectordb.Candidate, qi intent.QueryIntent) float64 {
	score := float64(c.Similarity)

	chunkType := chunker.ChunkType(c.Metadata["chunk_type"])
	switch qi.Type {
	case intent.TypeDescriptive:
		switch chunkType {
		case chunker.ChunkStatisticalSummary:
			score *= descriptiveSummaryBoost
		case chunker.ChunkColumnGroup:
			score *= descriptiveColumnBoost
		}
	case intent.TypeCorrelation:
		switch chunkType {
		case chunker.ChunkCorrelationMatrix:
			score *= correlationMatrixBoost
		case chunker.ChunkStatisticalSummary:
			score *= correlationSummaryBoost
		}
	case intent.TypeVisualization:
		switch chunkType {
		case chunker.ChunkColumnGroup:
			score *= visualizationColumnBoost
		case chunker.ChunkCorrelationMatrix:
			score *= visualizationMatrixBoost
		}
	}

	if len(qi.Variables) > 0 && overlapsVariables(c.Metadata["variables"], qi.Variables) {
		score *= variableOverlapBonus
	}
	return score
}

// overlapsVariables reports whether the JSON-encoded variable list from chunk
// metadata shares at least one entry with the query's variables. Malformed
// metadata contributes no bonus.
func overlapsVariables(encoded string, queryVars []string) bool {
	if encoded == "" {
		return false
	}
	var chunkVars []string
	if err := json.Unmarshal([]byte(encoded), &chunkVars); err != nil {
		return false
	}
	for _, qv := range queryVars {
		for _, cv := range chunkVars {
			if qv == cv {
				return true
			}
		}
	}
	return false
}
