package intent

import (
	"reflect"
	"testing"

	"github.com/ziadkadry99/datachat/internal/values"
)

func TestClassify_FallbackIsDescriptive(t *testing.T) {
	got := Classify("xylophone zebra qwerty")
	if got.Type != TypeDescriptive {
		t.Errorf("type: got %s, want descriptive", got.Type)
	}
	if got.Confidence != 0.5 {
		t.Errorf("confidence: got %f, want 0.5", got.Confidence)
	}
}

func TestClassify_ConfidenceBounds(t *testing.T) {
	queries := []string{
		"",
		"describe the dataset",
		"is there a correlation between age and cholesterol",
		"plot a histogram of bmi and compare groups over time with a t-test",
		"predict future outcomes with regression",
	}
	for _, q := range queries {
		got := Classify(q)
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Errorf("confidence out of range for %q: %f", q, got.Confidence)
		}
		if got.Type == "" {
			t.Errorf("type unset for %q", q)
		}
	}
}

func TestClassify_IsPure(t *testing.T) {
	q := "show me a scatter plot of age versus cholesterol for group = treatment"
	first := Classify(q)
	second := Classify(q)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Classify is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestClassify_CorrelationQuery(t *testing.T) {
	got := Classify("What is the correlation between age and cholesterol?")
	if got.Type != TypeCorrelation {
		t.Errorf("type: got %s, want correlation", got.Type)
	}
	if !hasAll(got.Variables, "age", "cholesterol") {
		t.Errorf("variables: got %v, want age and cholesterol", got.Variables)
	}
	if !hasAll(got.Operations, "correlation") {
		t.Errorf("operations: got %v, want correlation", got.Operations)
	}
	if !hasAll(got.StatisticalTests, "correlation") {
		t.Errorf("statistical tests: got %v, want correlation", got.StatisticalTests)
	}
}

func TestClassify_CorrelationStemForms(t *testing.T) {
	// The correlat stem must cover the inflected forms, so a correlation
	// question outranks descriptive's "what is" instead of tying with it.
	for _, q := range []string{
		"What is the correlation between age and cholesterol?",
		"are age and cholesterol correlated",
		"does weight correlate with blood_pressure",
	} {
		got := Classify(q)
		if got.Type != TypeCorrelation {
			t.Errorf("%q: type: got %s, want correlation", q, got.Type)
		}
	}

	got := Classify("What is the correlation between age and cholesterol?")
	if got.Confidence <= 0.5 {
		t.Errorf("confidence: got %f, want an outright win over descriptive", got.Confidence)
	}
}

func TestClassify_DescriptiveQuery(t *testing.T) {
	got := Classify("describe the basic statistics of the dataset")
	if got.Type != TypeDescriptive {
		t.Errorf("type: got %s, want descriptive", got.Type)
	}
	if got.Confidence <= 0 || got.Confidence > 1 {
		t.Errorf("confidence: got %f", got.Confidence)
	}
}

func TestClassify_VisualizationFirstFamilyWins(t *testing.T) {
	// Both histogram and scatter vocabularies appear; histogram has priority.
	got := Classify("plot the frequency distribution and the scatter relationship")
	if got.VisualizationType != "histogram" {
		t.Errorf("visualization: got %q, want histogram", got.VisualizationType)
	}

	got = Classify("draw a scatter of height and weight")
	if got.VisualizationType != "scatter" {
		t.Errorf("visualization: got %q, want scatter", got.VisualizationType)
	}

	got = Classify("just summarize please")
	if got.VisualizationType != "" {
		t.Errorf("visualization: got %q, want empty", got.VisualizationType)
	}
}

func TestClassify_Filters(t *testing.T) {
	got := Classify("mean bmi for female patients with age > 40 in group = control")

	age, ok := got.Filters["age"]
	if !ok || age.Num() != 40 {
		t.Errorf("age filter: got %+v (ok=%v), want 40", age, ok)
	}
	gender, ok := got.Filters["gender"]
	if !ok || gender.Str() != "female" {
		t.Errorf("gender filter: got %+v (ok=%v), want female", gender, ok)
	}
	group, ok := got.Filters["group"]
	if !ok || group.Kind() != values.KindString {
		t.Errorf("group filter: got %+v (ok=%v)", group, ok)
	}

	got = Classify("describe everything")
	if len(got.Filters) != 0 {
		t.Errorf("filters: got %v, want empty", got.Filters)
	}
}

func TestClassify_VariablesDeduplicated(t *testing.T) {
	got := Classify("age and age and more age with weight")
	ageCount := 0
	for _, v := range got.Variables {
		if v == "age" {
			ageCount++
		}
	}
	if ageCount != 1 {
		t.Errorf("age appears %d times in variables, want 1", ageCount)
	}
	if !hasAll(got.Variables, "weight") {
		t.Errorf("variables: got %v, want weight included", got.Variables)
	}
}

func TestClassify_TiePrecedence(t *testing.T) {
	// "distribution" matches descriptive and visualization group patterns
	// with one point each; the earlier-defined descriptive category wins.
	got := Classify("distribution")
	if got.Type != TypeDescriptive {
		t.Errorf("tie-break: got %s, want descriptive", got.Type)
	}
}

func TestClassify_StatisticalTests(t *testing.T) {
	got := Classify("run an anova and a chi-square test on treatment outcome")
	if !hasAll(got.StatisticalTests, "anova", "chi_square") {
		t.Errorf("tests: got %v, want anova and chi_square", got.StatisticalTests)
	}
}

func hasAll(haystack []string, wanted ...string) bool {
	set := make(map[string]bool, len(haystack))
	for _, s := range haystack {
		set[s] = true
	}
	for _, w := range wanted {
		if !set[w] {
			return false
		}
	}
	return true
}
