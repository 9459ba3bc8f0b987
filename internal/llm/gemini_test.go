package llm

import (
	"testing"
)

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.0-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.input, geminiModels); got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"tip":   map[string]any{"type": "string", "enum": []string{"TF", "MCQ"}},
			"text":  map[string]any{"type": "string"},
			"tocan": map[string]any{"type": "boolean"},
			"opcije": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 4,
				"maxItems": 4,
			},
			"tocan_index": map[string]any{"type": "integer", "minimum": 0, "maximum": 3},
		},
		"required": []any{"tip", "text"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 5 {
		t.Fatalf("expected 5 properties, got %d", len(schema.Properties))
	}
	if got := schema.Properties["tip"].Enum; len(got) != 2 || got[0] != "TF" {
		t.Fatalf("unexpected tip enum: %v", got)
	}
	if schema.Properties["tocan"].Type != "BOOLEAN" {
		t.Fatalf("expected BOOLEAN for tocan, got %s", schema.Properties["tocan"].Type)
	}

	opts := schema.Properties["opcije"]
	if opts.Type != "ARRAY" || opts.Items.Type != "STRING" {
		t.Fatalf("unexpected opcije schema: %s of %s", opts.Type, opts.Items.Type)
	}
	if opts.MinItems == nil || *opts.MinItems != 4 || opts.MaxItems == nil || *opts.MaxItems != 4 {
		t.Fatalf("expected exactly 4 items, got min=%v max=%v", opts.MinItems, opts.MaxItems)
	}

	idx := schema.Properties["tocan_index"]
	if idx.Minimum == nil || *idx.Minimum != 0 || idx.Maximum == nil || *idx.Maximum != 3 {
		t.Fatalf("expected bounds [0,3], got min=%v max=%v", idx.Minimum, idx.Maximum)
	}
	if len(schema.Required) != 2 {
		t.Fatalf("expected 2 required fields, got %d", len(schema.Required))
	}
}

func TestGeminiProvider_Identity(t *testing.T) {
	p := &GeminiProvider{model: "gemini-2.0-flash"}
	if p.Name() != ProviderGemini || p.ModelID() != "gemini-2.0-flash" {
		t.Fatalf("unexpected identity %q/%q", p.Name(), p.ModelID())
	}
}
