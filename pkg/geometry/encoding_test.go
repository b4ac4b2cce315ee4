package geometry

import (
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// TestCoordinateJSON verifies undefined components are written as null
func TestCoordinateJSON(t *testing.T) {
	c := NewCoord(Def(1), Undef[int](), Def(-3))
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if string(data) != "[1,null,-3]" {
		t.Errorf("Expected [1,null,-3], got %s", data)
	}

	var back Coordinate
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	assertCoord(t, "json", back, c)

	var f FloatCoordinate
	if err := json.Unmarshal([]byte("[0.5, 2, null]"), &f); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	assertCoord(t, "float json", f, NewCoord(Def(0.5), Def(2.0), Undef[float64]()))

	if err := json.Unmarshal([]byte(`["a"]`), &back); err == nil {
		t.Error("Expected error for non-numeric component")
	}
}

// TestRoiJSON verifies regions encode their offset and shape
func TestRoiJSON(t *testing.T) {
	r := roi(NewCoord(Def(1), u), NewCoord(Def(4), u))
	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	want := `{"offset":[1,null],"shape":[4,null]}`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}

	var back Roi
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	assertRoi(t, "json", back, r)

	// offsets of unbounded axes are dropped on decode
	if err := json.Unmarshal([]byte(`{"offset":[1,2],"shape":[4,null]}`), &back); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	assertRoi(t, "consolidated", back, r)

	if err := json.Unmarshal([]byte(`{"offset":[1,2],"shape":[4]}`), &back); err == nil {
		t.Error("Expected error for mismatched dimensions")
	}
}

// TestRoiYAML verifies the YAML form of regions
func TestRoiYAML(t *testing.T) {
	r := NewRegion(FC(0.5, 0), NewCoord(Def(2.5), Undef[float64]()))
	data, err := yaml.Marshal(r)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}
	if !strings.Contains(string(data), "null") {
		t.Errorf("Expected null for the unbounded axis, got %s", data)
	}

	var back FloatRoi
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	assertRoi(t, "yaml", back, r)

	doc := "offset: [1, ~]\nshape: [10, _]\n"
	var parsed Roi
	if err := yaml.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	assertRoi(t, "flow", parsed, roi(NewCoord(Def(1), u), NewCoord(Def(10), u)))

	if err := yaml.Unmarshal([]byte("offset: 1\nshape: [1]\n"), &parsed); err == nil {
		t.Error("Expected error for scalar offset")
	}
}
