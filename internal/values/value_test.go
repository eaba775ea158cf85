package values

import (
	"encoding/json"
	"testing"
)

func TestValue_MarshalPlainJSON(t *testing.T) {
	v := Map(map[string]Value{
		"row_count": Int(100),
		"group":     String("treatment"),
		"numeric":   Bool(true),
		"means":     Map(map[string]Value{"age": Number(54.3)}),
		"columns":   Strings([]string{"age", "bmi"}),
	})

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal into plain map: %v", err)
	}

	if decoded["row_count"] != float64(100) {
		t.Errorf("row_count: got %v, want 100", decoded["row_count"])
	}
	if decoded["group"] != "treatment" {
		t.Errorf("group: got %v, want treatment", decoded["group"])
	}
	if decoded["numeric"] != true {
		t.Errorf("numeric: got %v, want true", decoded["numeric"])
	}
	means, ok := decoded["means"].(map[string]any)
	if !ok || means["age"] != 54.3 {
		t.Errorf("means: got %v", decoded["means"])
	}
	cols, ok := decoded["columns"].([]any)
	if !ok || len(cols) != 2 || cols[0] != "age" {
		t.Errorf("columns: got %v", decoded["columns"])
	}
}

func TestValue_RoundTrip(t *testing.T) {
	original := Map(map[string]Value{
		"shape":   List(Int(250), Int(5)),
		"missing": Int(0),
		"label":   String("summary"),
	})

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var restored Value
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if restored.Kind() != KindMap {
		t.Fatalf("restored kind: got %d, want map", restored.Kind())
	}
	shape := restored.MapVal()["shape"]
	if shape.Kind() != KindList || len(shape.ListVal()) != 2 {
		t.Fatalf("shape: got %+v", shape)
	}
	if shape.ListVal()[0].Num() != 250 {
		t.Errorf("shape[0]: got %v, want 250", shape.ListVal()[0].Num())
	}
	if restored.MapVal()["label"].Str() != "summary" {
		t.Errorf("label: got %q", restored.MapVal()["label"].Str())
	}
}

func TestValue_EmptyListMarshal(t *testing.T) {
	data, err := json.Marshal(List())
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("empty list: got %s, want []", data)
	}
}
