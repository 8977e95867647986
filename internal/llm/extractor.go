// Package llm - extractor.go builds prompts for structured extraction.
package llm

import (
	"fmt"
	"strings"

	"github.com/jonathan/ats-scorer/internal/prompts"
)

// ExtractionSchema defines what a model should pull out of a piece of text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "LexicalKeywords")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// LexicalKeywordsSchema returns the extraction schema for keyword and entity
// extraction. kind names the document, e.g. "job description" or "resume".
func LexicalKeywordsSchema(kind string) (ExtractionSchema, error) {
	desc, err := prompts.Render(prompts.LexicalKeywords, struct{ Kind string }{Kind: kind})
	if err != nil {
		return ExtractionSchema{}, err
	}
	return ExtractionSchema{
		Name:        "LexicalKeywords",
		Description: desc,
		Fields: []SchemaField{
			{Name: "keywords", Type: "[]string", Description: "lower-case single-word keywords", Required: true},
			{Name: "entities", Type: "[]string", Description: "lower-case named entities, multi-word where applicable"},
		},
	}, nil
}
