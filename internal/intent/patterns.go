package intent

import "regexp"

// The classifier is a fixed table of pattern groups. Queries are lowercased
// once before matching, so none of these patterns need case flags.

// categoryGroup pairs a query category with its match patterns. A query
// scores one point per matching pattern in the group.
type categoryGroup struct {
	Type     QueryType
	Patterns []*regexp.Regexp
}

// categoryPatterns is iterated in definition order when scoring; when two
// categories tie, the earlier entry wins. This order is a documented
// tie-break contract: descriptive, inferential, correlation, visualization,
// comparison, predictive, temporal.
var categoryPatterns = []categoryGroup{
	{TypeDescriptive, compileAll(
		`\b(describe|summary|overview|statistics|mean|average|median|mode|std|variance|distribution)\b`,
		`\b(what is|what are|show me|tell me about|describe)\b`,
		`\b(characteristics|profile|basic stats|descriptive)\b`,
	)},
	{TypeInferential, compileAll(
		`\b(test|hypothesis|significance|p-value|confidence|interval)\b`,
		`\b(ttest|anova|chi-square|regression|correlation test)\b`,
		`\b(difference|association|relationship|effect)\b`,
	)},
	{TypeCorrelation, compileAll(
		// correlat is a stem: it must match correlation, correlate, correlated.
		`\b(correlat\w*|relationship|association|connect)\b`,
		`\b(relate|link|depend|influence|affect)\b`,
		`\b(between|among|with)\b.*\b(and|&)\b`,
	)},
	{TypeVisualization, compileAll(
		`\b(plot|graph|chart|visualize|show|display)\b`,
		`\b(histogram|scatter|bar|line|box|heatmap)\b`,
		`\b(trend|pattern|distribution)\b`,
	)},
	{TypeComparison, compileAll(
		`\b(compare|contrast|difference|versus|vs|against)\b`,
		`\b(group|category|segment|cohort)\b`,
		`\b(higher|lower|greater|less|more|fewer)\b`,
	)},
	{TypePredictive, compileAll(
		`\b(predict|forecast|model|estimate|project)\b`,
		`\b(future|outcome|result|prognosis)\b`,
		`\b(regression|machine learning|ml|classification)\b`,
	)},
	{TypeTemporal, compileAll(
		`\b(time|temporal|trend|over time|longitudinal)\b`,
		`\b(before|after|during|period|season)\b`,
		`\b(change|evolution|progression|development)\b`,
	)},
}

// variablePatterns recognize dataset variable names commonly mentioned in
// analysis questions. English-specific by design.
var variablePatterns = compileAll(
	`\b(age|gender|sex|height|weight|bmi|income|salary|education|experience)\b`,
	`\b(score|rating|price|cost|value|amount|quantity|count)\b`,
	`\b(blood_pressure|heart_rate|temperature|cholesterol|glucose)\b`,
	`\b(treatment|medication|therapy|intervention|group|category)\b`,
)

// namedPattern pairs a canonical token with its recognizer.
type namedPattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// operationPatterns map statistical operation tokens to their phrasings.
var operationPatterns = []namedPattern{
	{"mean", regexp.MustCompile(`\b(mean|average|avg)\b`)},
	{"median", regexp.MustCompile(`\b(median|middle)\b`)},
	{"mode", regexp.MustCompile(`\b(mode|most common)\b`)},
	{"std", regexp.MustCompile(`\b(standard deviation|std|variability)\b`)},
	{"var", regexp.MustCompile(`\b(variance|var)\b`)},
	{"min", regexp.MustCompile(`\b(minimum|min|lowest)\b`)},
	{"max", regexp.MustCompile(`\b(maximum|max|highest)\b`)},
	{"sum", regexp.MustCompile(`\b(sum|total|add)\b`)},
	{"count", regexp.MustCompile(`\b(count|number|frequency)\b`)},
	{"correlation", regexp.MustCompile(`\b(correlation|relate|associate)\b`)},
	{"regression", regexp.MustCompile(`\b(regression|predict|model)\b`)},
}

// statisticalTestPatterns map test-family tokens to their phrasings.
var statisticalTestPatterns = []namedPattern{
	{"ttest", regexp.MustCompile(`\b(t-test|ttest|paired|unpaired|independent|student)\b`)},
	{"anova", regexp.MustCompile(`\b(anova|analysis of variance|f-test|one-way|two-way)\b`)},
	{"chi_square", regexp.MustCompile(`\b(chi-square|chi2|contingency|independence)\b`)},
	{"correlation", regexp.MustCompile(`\b(correlation|pearson|spearman|kendall)\b`)},
	{"regression", regexp.MustCompile(`\b(regression|linear|logistic|multiple)\b`)},
	{"nonparametric", regexp.MustCompile(`\b(mann-whitney|wilcoxon|kruskal|friedman)\b`)},
}

// visualizationPatterns are checked in priority order; the first family that
// matches becomes the visualization type.
var visualizationPatterns = []namedPattern{
	{"histogram", regexp.MustCompile(`\b(histogram|distribution|frequency)\b`)},
	{"scatter", regexp.MustCompile(`\b(scatter|relationship|correlation)\b`)},
	{"bar", regexp.MustCompile(`\b(bar|category|group|count)\b`)},
	{"line", regexp.MustCompile(`\b(line|trend|time|temporal)\b`)},
	{"box", regexp.MustCompile(`\b(box|quartile|outlier|spread)\b`)},
	{"heatmap", regexp.MustCompile(`\b(heatmap|correlation matrix|intensity)\b`)},
}

// Narrow filter extractors. Known limitation: English-specific and tied to
// the age/gender/group vocabulary of the source datasets.
var (
	ageFilterPattern    = regexp.MustCompile(`age\s*[><=]\s*(\d+)`)
	genderFilterPattern = regexp.MustCompile(`\b(male|female|men|women)\b`)
	groupFilterPattern  = regexp.MustCompile(`group\s*[=:]\s*["']?([^"']+)["']?`)
)

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}
