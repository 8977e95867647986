package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_LexicalKeywords(t *testing.T) {
	err := Validate(LexicalKeywords, []byte(`{"keywords": ["python", "kubernetes"], "entities": ["google"]}`))
	assert.NoError(t, err)

	err = Validate(LexicalKeywords, []byte(`{"keywords": ["python"]}`))
	assert.NoError(t, err)
}

func TestValidate_LexicalKeywords_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "missing keywords", doc: `{"entities": []}`},
		{name: "wrong item type", doc: `{"keywords": [1, 2]}`},
		{name: "empty string item", doc: `{"keywords": [""]}`},
		{name: "unknown field", doc: `{"keywords": [], "score": 3}`},
		{name: "not an object", doc: `["python"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(LexicalKeywords, []byte(tt.doc))
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.NotEmpty(t, verr.Errors)
			assert.Equal(t, LexicalKeywords, verr.Schema)
		})
	}
}

func TestValidate_MalformedJSON(t *testing.T) {
	err := Validate(LexicalKeywords, []byte(`{"keywords": [`))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "(root)", verr.Errors[0].Field)
}

func TestValidate_ScoreResponse(t *testing.T) {
	valid := `{
		"ats_score": 100,
		"breakdown": {"experience": 71.5, "skills": 64.02, "education": 12, "bonus": 25},
		"keywords": {"matched": ["python"], "missing": []}
	}`
	assert.NoError(t, Validate(ScoreResponse, []byte(valid)))

	overCap := `{
		"ats_score": 101,
		"breakdown": {"experience": 0, "skills": 0, "education": 0, "bonus": 0},
		"keywords": {"matched": [], "missing": []}
	}`
	assert.Error(t, Validate(ScoreResponse, []byte(overCap)))
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope.schema.json", []byte(`{}`))
	var lerr *SchemaLoadError
	require.ErrorAs(t, err, &lerr)
	assert.Contains(t, err.Error(), "nope.schema.json")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Schema: "x.schema.json",
		Errors: []FieldError{{Field: "keywords", Message: "is required"}},
	}
	assert.Equal(t, "x.schema.json validation failed: 1. keywords: is required", err.Error())
}

func TestEmbeddedSchemasCompile(t *testing.T) {
	entries, err := schemaFiles.ReadDir(".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	for _, entry := range entries {
		t.Run(entry.Name(), func(t *testing.T) {
			_, err := load(entry.Name())
			assert.NoError(t, err)
		})
	}
}
